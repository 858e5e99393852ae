package mocks

import (
	"context"

	"github.com/codeai-site/internal/models"
	"github.com/codeai-site/internal/service"
)

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	ListFunc  func(ctx context.Context, category models.Category) ([]models.ArticleMetadata, error)
	GetFunc   func(ctx context.Context, slug string) (*models.Article, error)
	SlugsFunc func(ctx context.Context) ([]string, error)
}

// Verify interface compliance
var _ service.ArticleService = (*MockArticleService)(nil)

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{}
}

func (m *MockArticleService) ListArticles(ctx context.Context, category models.Category) ([]models.ArticleMetadata, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, category)
	}
	return []models.ArticleMetadata{}, nil
}

func (m *MockArticleService) GetArticle(ctx context.Context, slug string) (*models.Article, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockArticleService) ListSlugs(ctx context.Context) ([]string, error) {
	if m.SlugsFunc != nil {
		return m.SlugsFunc(ctx)
	}
	return []string{}, nil
}

func (m *MockArticleService) Exists(ctx context.Context, slug string) (bool, error) {
	article, err := m.GetArticle(ctx, slug)
	return article != nil, err
}
