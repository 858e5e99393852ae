package repository

import (
	"context"
	"io/fs"

	"github.com/codeai-site/internal/config"
	"github.com/codeai-site/internal/markdown"
	"github.com/codeai-site/internal/models"
	"github.com/rs/zerolog"
)

// ArticleRepository defines the interface for article content operations.
// Every call is a fresh read of the content source; nothing is cached.
type ArticleRepository interface {
	// ListArticles returns the metadata of every valid article, newest first
	ListArticles(ctx context.Context) ([]models.ArticleMetadata, error)
	// GetBySlug returns the rendered article, or nil when no article has that slug
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	// ListSlugs returns the slugs of every article file, sorted
	ListSlugs(ctx context.Context) ([]string, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Article ArticleRepository
}

// New creates all repositories over the given content source
func New(fsys fs.FS, cfg *config.ContentConfig, log zerolog.Logger) *Repositories {
	return &Repositories{
		Article: NewArticleRepo(fsys, cfg.Dir, markdown.New(cfg.AllowRawHTML), cfg.ParseWorkers, log),
	}
}
