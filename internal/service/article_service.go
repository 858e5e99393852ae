package service

import (
	"context"
	"time"

	"github.com/codeai-site/internal/models"
	"github.com/codeai-site/internal/repository"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	repo repository.ArticleRepository
	log  zerolog.Logger
}

// newArticleService creates a new ArticleService
func newArticleService(repo repository.ArticleRepository, log zerolog.Logger) *articleService {
	return &articleService{
		repo: repo,
		log:  log.With().Str("service", "articles").Logger(),
	}
}

// ListArticles returns article metadata newest first, optionally limited to one category
func (s *articleService) ListArticles(ctx context.Context, category models.Category) ([]models.ArticleMetadata, error) {
	if category != "" && !models.ValidCategories[category] {
		return nil, &models.ValidationError{
			Field:   "category",
			Message: "invalid category, must be one of: Machine Learning, Deep Learning, AI Engineering, Neural Networks",
			Value:   string(category),
		}
	}

	start := time.Now()
	articles, err := s.repo.ListArticles(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("Failed to list articles")
		return nil, err
	}

	if category != "" {
		filtered := articles[:0]
		for _, a := range articles {
			if a.Category == category {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
	}

	s.log.Debug().
		Int("count", len(articles)).
		Str("category", string(category)).
		Dur("duration", time.Since(start)).
		Msg("Articles loaded")

	return articles, nil
}

// GetArticle returns the rendered article, or nil when the slug is unknown
func (s *articleService) GetArticle(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		s.log.Error().Err(err).Str("slug", slug).Msg("Failed to read article")
		return nil, err
	}
	return article, nil
}

// ListSlugs returns every article slug
func (s *articleService) ListSlugs(ctx context.Context) ([]string, error) {
	return s.repo.ListSlugs(ctx)
}

// Exists reports whether an article with the slug can be served
func (s *articleService) Exists(ctx context.Context, slug string) (bool, error) {
	article, err := s.GetArticle(ctx, slug)
	if err != nil {
		return false, err
	}
	return article != nil, nil
}
