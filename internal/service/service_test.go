package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/codeai-site/internal/config"
	"github.com/codeai-site/internal/mocks"
	"github.com/codeai-site/internal/models"
	"github.com/codeai-site/internal/repository"
	"github.com/codeai-site/internal/service"
	"github.com/rs/zerolog"
)

func testArticle(slug string, date time.Time, category models.Category) *models.Article {
	return &models.Article{
		ArticleMetadata: models.ArticleMetadata{
			Title:       "Title of " + slug,
			Description: "Description of " + slug,
			Date:        date,
			Author:      "Alex Chen",
			Category:    category,
			Image:       "/placeholder.svg",
			Slug:        slug,
		},
		Content:     "<p>Body of " + slug + "</p>\n",
		ReadingTime: 1,
	}
}

type testHarness struct {
	services    *service.Services
	articleRepo *mocks.MockArticleRepository
}

func newTestHarness(t *testing.T, seed []models.Thread) *testHarness {
	t.Helper()

	articleRepo := mocks.NewMockArticleRepository()
	articleRepo.Add(testArticle("first-network", time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), models.CategoryMachineLearning))
	articleRepo.Add(testArticle("transformers", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), models.CategoryDeepLearning))
	articleRepo.Add(testArticle("rag-pipelines", time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), models.CategoryAIEngineering))

	repos := &repository.Repositories{Article: articleRepo}
	cfg := &config.Config{
		Comments: config.CommentsConfig{
			ViewTTL:         30 * time.Minute,
			JanitorInterval: time.Minute,
			MaxViews:        100,
		},
	}

	return &testHarness{
		services:    service.NewServices(repos, cfg, seed, zerolog.Nop()),
		articleRepo: articleRepo,
	}
}

func TestArticleService_ListArticles(t *testing.T) {
	h := newTestHarness(t, nil)

	articles, err := h.services.Articles.ListArticles(context.Background(), "")
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	want := []string{"first-network", "transformers", "rag-pipelines"}
	if len(articles) != len(want) {
		t.Fatalf("Expected %d articles, got %d", len(want), len(articles))
	}
	for i, slug := range want {
		if articles[i].Slug != slug {
			t.Errorf("Position %d: expected %s, got %s", i, slug, articles[i].Slug)
		}
	}
}

func TestArticleService_ListArticlesByCategory(t *testing.T) {
	h := newTestHarness(t, nil)

	articles, err := h.services.Articles.ListArticles(context.Background(), models.CategoryDeepLearning)
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(articles) != 1 || articles[0].Slug != "transformers" {
		t.Errorf("Expected only transformers, got %+v", articles)
	}

	articles, err = h.services.Articles.ListArticles(context.Background(), models.CategoryNeuralNetworks)
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("Expected no articles, got %d", len(articles))
	}
}

func TestArticleService_InvalidCategory(t *testing.T) {
	h := newTestHarness(t, nil)

	_, err := h.services.Articles.ListArticles(context.Background(), "Cooking")
	var verr *models.ValidationError
	if !errors.As(err, &verr) || verr.Field != "category" {
		t.Errorf("Expected category validation error, got %v", err)
	}
}

func TestArticleService_GetArticle(t *testing.T) {
	h := newTestHarness(t, nil)
	ctx := context.Background()

	article, err := h.services.Articles.GetArticle(ctx, "transformers")
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if article == nil || article.Title != "Title of transformers" {
		t.Fatalf("Unexpected article: %+v", article)
	}

	missing, err := h.services.Articles.GetArticle(ctx, "missing")
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if missing != nil {
		t.Error("Expected nil for an unknown slug")
	}

	exists, err := h.services.Articles.Exists(ctx, "first-network")
	if err != nil || !exists {
		t.Errorf("Expected first-network to exist, got %v, %v", exists, err)
	}
	if h.articleRepo.GetCalls != 3 {
		t.Errorf("Expected every lookup to reach the repository, got %d calls", h.articleRepo.GetCalls)
	}
}

func TestArticleService_SourceError(t *testing.T) {
	h := newTestHarness(t, nil)
	h.articleRepo.ListError = &models.ContentSourceError{Path: "content/articles", Err: os.ErrPermission}
	h.articleRepo.GetError = h.articleRepo.ListError

	var cse *models.ContentSourceError
	if _, err := h.services.Articles.ListArticles(context.Background(), ""); !errors.As(err, &cse) {
		t.Errorf("ListArticles: expected ContentSourceError, got %v", err)
	}
	if _, err := h.services.Articles.GetArticle(context.Background(), "first-network"); !errors.As(err, &cse) {
		t.Errorf("GetArticle: expected ContentSourceError, got %v", err)
	}
	if _, err := h.services.Views.Open(context.Background(), "first-network"); !errors.As(err, &cse) {
		t.Errorf("Open: expected ContentSourceError, got %v", err)
	}
}

func TestArticleService_ListSlugs(t *testing.T) {
	h := newTestHarness(t, nil)

	slugs, err := h.services.Articles.ListSlugs(context.Background())
	if err != nil {
		t.Fatalf("ListSlugs failed: %v", err)
	}
	want := []string{"first-network", "rag-pipelines", "transformers"}
	if strings.Join(slugs, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, slugs)
	}
}

func TestServices_ViewDiscussion(t *testing.T) {
	seed, err := service.LoadSeed(&config.CommentsConfig{SeedEnabled: true})
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}
	h := newTestHarness(t, seed)
	ctx := context.Background()

	view, err := h.services.Views.Open(ctx, "first-network")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	store := view.Store

	if _, err := store.ToggleLike(ctx, service.LikeTarget{CommentID: "3"}); !errors.Is(err, models.ErrAuthRequired) {
		t.Fatalf("Expected ErrAuthRequired, got %v", err)
	}
	if _, err := store.SignIn(ctx, "Ada", "ada@x.com"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	if _, err := store.SubmitComment(ctx, "Great read"); err != nil {
		t.Fatalf("SubmitComment failed: %v", err)
	}
	if _, err := store.SubmitReply(ctx, "2", "Try softmax"); err != nil {
		t.Fatalf("SubmitReply failed: %v", err)
	}
	post, err := store.ToggleLike(ctx, service.LikeTarget{CommentID: "3"})
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if post.Likes != 14 || post.IsLiked {
		t.Errorf("Expected comment 3 unliked with 14 likes, got %d/%v", post.Likes, post.IsLiked)
	}

	state := store.Snapshot()
	if len(state.Threads) != 4 || state.Threads[0].Content != "Great read" {
		t.Errorf("Expected the new comment first of 4, got %+v", state.Threads)
	}
	if replies := state.Threads[2].Replies; len(replies) != 1 || replies[0].Content != "Try softmax" {
		t.Errorf("Expected the reply under comment 2, got %+v", replies)
	}

	// A second view of the same article starts over from the seed
	other, err := h.services.Views.Open(ctx, "first-network")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if n := len(other.Store.Snapshot().Threads); n != 3 {
		t.Errorf("Expected the seed's 3 threads, got %d", n)
	}
	if h.services.Views.Count() != 2 {
		t.Errorf("Expected 2 open views, got %d", h.services.Views.Count())
	}
}

func TestLoadSeed(t *testing.T) {
	threads, err := service.LoadSeed(&config.CommentsConfig{SeedEnabled: true})
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}
	if len(threads) != 3 {
		t.Fatalf("Expected 3 threads, got %d", len(threads))
	}
	if threads[0].ID != "1" || len(threads[0].Replies) != 1 {
		t.Errorf("Unexpected first thread: %+v", threads[0])
	}
	reply := threads[0].Replies[0]
	if reply.ID != "1-1" || reply.ParentID != "1" || !reply.IsLiked || reply.Likes != 5 {
		t.Errorf("Unexpected reply: %+v", reply)
	}
	if threads[1].Replies == nil {
		t.Error("Threads without replies should have an empty reply list")
	}

	disabled, err := service.LoadSeed(&config.CommentsConfig{SeedEnabled: false})
	if err != nil || disabled != nil {
		t.Errorf("Disabled seed should yield nothing, got %v, %v", disabled, err)
	}
}

func TestLoadSeed_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	data := `
- id: "a"
  author:
    name: Grace
  content: Hello
  timestamp: 1 day ago
  likes: 1
  is_liked: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	threads, err := service.LoadSeed(&config.CommentsConfig{SeedEnabled: true, SeedFile: path})
	if err != nil {
		t.Fatalf("LoadSeed failed: %v", err)
	}
	if len(threads) != 1 || threads[0].Author.Name != "Grace" {
		t.Errorf("Unexpected threads: %+v", threads)
	}

	if _, err := service.LoadSeed(&config.CommentsConfig{SeedEnabled: true, SeedFile: path + ".missing"}); err == nil {
		t.Error("Expected error for a missing seed file")
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "duplicate id across levels",
			data: `
- id: "1"
  author: {name: A}
  content: x
  replies:
    - id: "1"
      author: {name: B}
      content: y
`,
			want: "duplicate id",
		},
		{
			name: "missing author",
			data: `
- id: "1"
  content: x
`,
			want: "author name is required",
		},
		{
			name: "negative likes",
			data: `
- id: "1"
  author: {name: A}
  content: x
  likes: -1
`,
			want: "must not be negative",
		},
		{
			name: "liked without count",
			data: `
- id: "1"
  author: {name: A}
  content: x
  likes: 0
  is_liked: true
`,
			want: "must count the like",
		},
		{
			name: "malformed yaml",
			data: "- id: [",
			want: "decode seed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.ParseSeed([]byte(tt.data))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
