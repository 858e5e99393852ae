package mocks

import (
	"context"
	"sort"

	"github.com/codeai-site/internal/models"
	"github.com/codeai-site/internal/repository"
)

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	Articles  map[string]*models.Article
	ListError error
	GetError  error
	GetCalls  int
}

// Verify interface compliance
var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles: make(map[string]*models.Article),
	}
}

// Add stores an article under its slug
func (m *MockArticleRepository) Add(article *models.Article) {
	m.Articles[article.Slug] = article
}

func (m *MockArticleRepository) ListArticles(ctx context.Context) ([]models.ArticleMetadata, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	list := make([]models.ArticleMetadata, 0, len(m.Articles))
	for _, a := range m.Articles {
		list = append(list, a.ArticleMetadata)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].Slug < list[j].Slug
	})
	return list, nil
}

func (m *MockArticleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	m.GetCalls++
	if m.GetError != nil {
		return nil, m.GetError
	}
	return m.Articles[slug], nil
}

func (m *MockArticleRepository) ListSlugs(ctx context.Context) ([]string, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	slugs := make([]string, 0, len(m.Articles))
	for slug := range m.Articles {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs, nil
}
