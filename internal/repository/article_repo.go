package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/codeai-site/internal/markdown"
	"github.com/codeai-site/internal/models"
	"github.com/codeai-site/internal/validation"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const articleExt = ".md"

// ErrInvalidArticle marks an article file whose front-matter is missing or invalid
var ErrInvalidArticle = errors.New("invalid article")

// articleRepo is the markdown file implementation of ArticleRepository
type articleRepo struct {
	fsys     fs.FS
	root     string
	renderer markdown.Renderer
	workers  int
	log      zerolog.Logger
}

// NewArticleRepo creates an article repository reading <slug>.md files from the root of fsys.
// root is only used in error messages and logs.
func NewArticleRepo(fsys fs.FS, root string, renderer markdown.Renderer, workers int, log zerolog.Logger) ArticleRepository {
	if workers < 1 {
		workers = 1
	}
	return &articleRepo{
		fsys:     fsys,
		root:     root,
		renderer: renderer,
		workers:  workers,
		log:      log.With().Str("component", "articles").Logger(),
	}
}

// ListArticles parses every article's front-matter. Invalid files are skipped and logged;
// an unreadable directory or file fails the whole listing.
func (r *articleRepo) ListArticles(ctx context.Context) ([]models.ArticleMetadata, error) {
	names, err := r.articleFiles()
	if err != nil {
		return nil, err
	}

	parsed := make([]*models.ArticleMetadata, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := fs.ReadFile(r.fsys, name)
			if err != nil {
				return &models.ContentSourceError{Path: path.Join(r.root, name), Err: err}
			}

			meta, _, err := parseArticle(name, data)
			if err != nil {
				r.log.Warn().Err(err).Str("file", name).Msg("Skipping invalid article")
				return nil
			}
			parsed[i] = &meta
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	articles := make([]models.ArticleMetadata, 0, len(parsed))
	for _, meta := range parsed {
		if meta != nil {
			articles = append(articles, *meta)
		}
	}

	// Newest first; equal dates fall back to slug order so listings are deterministic
	sort.SliceStable(articles, func(i, j int) bool {
		a, b := articles[i], articles[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.Slug < b.Slug
	})

	r.log.Debug().Int("count", len(articles)).Int("files", len(names)).Msg("Articles listed")

	return articles, nil
}

// GetBySlug reads <slug>.md and renders its body. A missing file is (nil, nil);
// a file that exists but cannot be read or parsed is a ContentSourceError.
func (r *articleRepo) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	if !validation.IsValidSlug(slug) {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := slug + articleExt
	data, err := fs.ReadFile(r.fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &models.ContentSourceError{Path: path.Join(r.root, name), Err: err}
	}

	meta, body, err := parseArticle(name, data)
	if err != nil {
		return nil, &models.ContentSourceError{Path: path.Join(r.root, name), Err: err}
	}

	return &models.Article{
		ArticleMetadata: meta,
		Content:         string(r.renderer.Render(body)),
		ReadingTime:     markdown.ReadingTime(body),
	}, nil
}

// ListSlugs derives slugs from file names alone
func (r *articleRepo) ListSlugs(ctx context.Context) ([]string, error) {
	names, err := r.articleFiles()
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(names))
	for _, name := range names {
		stem := strings.TrimSuffix(name, articleExt)
		if !validation.IsValidSlug(stem) {
			r.log.Warn().Str("file", name).Msg("Ignoring article file with non URL-safe name")
			continue
		}
		slugs = append(slugs, stem)
	}
	sort.Strings(slugs)

	return slugs, nil
}

// articleFiles lists the markdown files in the root of the content source
func (r *articleRepo) articleFiles() ([]string, error) {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil, &models.ContentSourceError{Path: r.root, Err: err}
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != articleExt {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// parseArticle splits front-matter from body and validates the metadata against the file name
func parseArticle(name string, data []byte) (models.ArticleMetadata, []byte, error) {
	var fm models.ArticleFrontMatter
	body, err := frontmatter.MustParse(bytes.NewReader(data), &fm)
	if err != nil {
		return models.ArticleMetadata{}, nil, fmt.Errorf("%w: %s: front-matter: %v", ErrInvalidArticle, name, err)
	}

	meta, verrs := validation.ValidateArticle(&fm, strings.TrimSuffix(name, articleExt))
	if len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i := range verrs {
			errs[i] = &verrs[i]
		}
		return models.ArticleMetadata{}, nil, fmt.Errorf("%w: %s: %w", ErrInvalidArticle, name, errors.Join(errs...))
	}

	return meta, body, nil
}
