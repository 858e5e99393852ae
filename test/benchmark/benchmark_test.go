package benchmark

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/codeai-site/internal/config"
	"github.com/codeai-site/internal/markdown"
	"github.com/codeai-site/internal/mocks"
	"github.com/codeai-site/internal/models"
	"github.com/codeai-site/internal/repository"
	"github.com/codeai-site/internal/service"
	"github.com/codeai-site/internal/validation"
	"github.com/rs/zerolog"
)

var categories = []string{"Machine Learning", "Deep Learning", "AI Engineering", "Neural Networks"}

var configWithSeed = config.CommentsConfig{SeedEnabled: true}

func articleBody(paragraphs int) string {
	var sb strings.Builder
	sb.WriteString("# Introduction\n\n")
	for i := 0; i < paragraphs; i++ {
		fmt.Fprintf(&sb, "## Section %d\n\nGradient descent updates each weight against the slope of the loss. ", i)
		sb.WriteString("Small learning rates converge slowly; large ones overshoot.\n\n")
		sb.WriteString("```python\nw -= lr * grad\n```\n\n- first point\n- second point\n\n")
	}
	return sb.String()
}

// contentFS builds n valid article files
func contentFS(n int) fstest.MapFS {
	fsys := fstest.MapFS{}
	body := articleBody(10)
	for i := 0; i < n; i++ {
		slug := fmt.Sprintf("article-%05d", i)
		fsys[slug+".md"] = &fstest.MapFile{Data: []byte(fmt.Sprintf(`---
title: "Article %d"
description: "Benchmark article"
date: "2025-%02d-%02d"
author: "Alex Chen"
category: "%s"
image: "/placeholder.svg"
slug: "%s"
---
%s`, i, i%12+1, i%28+1, categories[i%len(categories)], slug, body))}
	}
	return fsys
}

// BenchmarkListArticles benchmarks parsing and sorting a content directory
func BenchmarkListArticles(b *testing.B) {
	for _, workers := range []int{1, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			repo := repository.NewArticleRepo(contentFS(500), "content/articles", markdown.New(false), workers, zerolog.Nop())
			ctx := context.Background()

			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				if _, err := repo.ListArticles(ctx); err != nil {
					b.Fatal(err)
				}
			}

			b.ReportMetric(float64(500*b.N)/b.Elapsed().Seconds(), "files/sec")
		})
	}
}

// BenchmarkGetBySlug benchmarks reading and rendering one article
func BenchmarkGetBySlug(b *testing.B) {
	repo := repository.NewArticleRepo(contentFS(50), "content/articles", markdown.New(false), 1, zerolog.Nop())
	ctx := context.Background()

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := repo.GetBySlug(ctx, "article-00025"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRender benchmarks markdown rendering
func BenchmarkRender(b *testing.B) {
	src := []byte(articleBody(50))
	renderer := markdown.New(false)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		renderer.Render(src)
	}

	b.SetBytes(int64(len(src)))
}

// BenchmarkValidation benchmarks front-matter validation
func BenchmarkValidation(b *testing.B) {
	fm := &models.ArticleFrontMatter{
		Title:       "Building Your First Neural Network",
		Description: "A step-by-step guide.",
		Date:        "July 10, 2025",
		Author:      "Alex Chen",
		Category:    "Machine Learning",
		Image:       "/images/nn.png",
		Slug:        "first-neural-network",
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		validation.ValidateArticle(fm, "first-neural-network")
	}
}

// BenchmarkToggleLike benchmarks like toggles on a signed-in store
func BenchmarkToggleLike(b *testing.B) {
	seed, err := service.ParseSeed([]byte(`
- id: "1"
  author: {name: Sarah Chen}
  content: Excellent tutorial!
  likes: 12
  replies:
    - id: "1-1"
      author: {name: Alex Chen}
      content: Thanks!
      likes: 5
      is_liked: true
`))
	if err != nil {
		b.Fatal(err)
	}
	store := service.NewCommentStore("first-neural-network", mocks.NewMockCommentBackend(), service.NewSession(), seed, zerolog.Nop())
	ctx := context.Background()
	if _, err := store.SignIn(ctx, "Ada", "ada@x.com"); err != nil {
		b.Fatal(err)
	}
	target := service.LikeTarget{CommentID: "1-1", IsReply: true, ParentID: "1"}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := store.ToggleLike(ctx, target); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSnapshotParallel benchmarks concurrent readers of one discussion
func BenchmarkSnapshotParallel(b *testing.B) {
	seed, err := service.LoadSeed(&configWithSeed)
	if err != nil {
		b.Fatal(err)
	}
	store := service.NewCommentStore("first-neural-network", mocks.NewMockCommentBackend(), service.NewSession(), seed, zerolog.Nop())

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			store.Snapshot()
		}
	})
}
