package service

import (
	"context"

	"github.com/codeai-site/internal/config"
	"github.com/codeai-site/internal/models"
	"github.com/codeai-site/internal/repository"
	"github.com/rs/zerolog"
)

// ArticleService defines the interface for article read operations
type ArticleService interface {
	ListArticles(ctx context.Context, category models.Category) ([]models.ArticleMetadata, error)
	GetArticle(ctx context.Context, slug string) (*models.Article, error)
	ListSlugs(ctx context.Context) ([]string, error)
	Exists(ctx context.Context, slug string) (bool, error)
}

// ViewService manages the per-viewer comment views of articles
type ViewService interface {
	Open(ctx context.Context, articleSlug string) (*View, error)
	Get(id string) (*View, error)
	Close(id string) error
	Count() int
	StartJanitor(ctx context.Context)
	StopJanitor()
}

// Services holds all service interfaces
type Services struct {
	Articles ArticleService
	Views    ViewService
}

// NewServices creates all services. seed is copied into every new view.
func NewServices(repos *repository.Repositories, cfg *config.Config, seed []models.Thread, log zerolog.Logger) *Services {
	articleSvc := newArticleService(repos.Article, log)
	backend := NewSimulatedBackend(Latency{
		SignIn: cfg.Comments.SignInDelay,
		Submit: cfg.Comments.SubmitDelay,
		Like:   cfg.Comments.LikeDelay,
	})
	viewSvc := newViewService(articleSvc, backend, seed, cfg.Comments, log)

	return &Services{
		Articles: articleSvc,
		Views:    viewSvc,
	}
}
