package service

import (
	"context"
	"sync"
	"time"

	"github.com/codeai-site/internal/config"
	"github.com/codeai-site/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// View is one viewer's comment widget on one article
type View struct {
	ID          string
	ArticleSlug string
	Store       *CommentStore
	OpenedAt    time.Time

	lastSeen time.Time // guarded by viewService.mu
}

// viewService is the in-memory implementation of ViewService
type viewService struct {
	articles ArticleService
	backend  CommentBackend
	seed     []models.Thread
	cfg      config.CommentsConfig
	log      zerolog.Logger
	now      func() time.Time

	mu    sync.Mutex
	views map[string]*View

	// janitor lifecycle
	jmu     sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// newViewService creates a ViewService whose views start from a copy of seed
func newViewService(articles ArticleService, backend CommentBackend, seed []models.Thread, cfg config.CommentsConfig, log zerolog.Logger) *viewService {
	return &viewService{
		articles: articles,
		backend:  backend,
		seed:     seed,
		cfg:      cfg,
		log:      log.With().Str("service", "views").Logger(),
		now:      time.Now,
		views:    make(map[string]*View),
	}
}

// Open starts a view of an existing article with an anonymous session
func (s *viewService) Open(ctx context.Context, articleSlug string) (*View, error) {
	exists, err := s.articles.Exists(ctx, articleSlug)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.ErrArticleNotFound
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.views) >= s.cfg.MaxViews {
		s.log.Warn().Int("max_views", s.cfg.MaxViews).Msg("View limit reached")
		return nil, models.ErrTooManyViews
	}

	now := s.now()
	view := &View{
		ID:          uuid.New().String(),
		ArticleSlug: articleSlug,
		Store:       NewCommentStore(articleSlug, s.backend, NewSession(), s.seed, s.log),
		OpenedAt:    now,
		lastSeen:    now,
	}
	s.views[view.ID] = view

	s.log.Debug().Str("view_id", view.ID).Str("article", articleSlug).Msg("View opened")
	return view, nil
}

// Get returns an open view and marks it as active
func (s *viewService) Get(id string) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, ok := s.views[id]
	if !ok {
		return nil, models.ErrViewNotFound
	}
	view.lastSeen = s.now()
	return view, nil
}

// Close discards a view and everything in it
func (s *viewService) Close(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.views[id]; !ok {
		return models.ErrViewNotFound
	}
	delete(s.views, id)
	s.log.Debug().Str("view_id", id).Msg("View closed")
	return nil
}

// Count returns the number of open views
func (s *viewService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// StartJanitor evicts idle views until the context is cancelled or StopJanitor is called.
// It blocks, so callers run it in its own goroutine.
func (s *viewService) StartJanitor(ctx context.Context) {
	s.jmu.Lock()
	if s.running {
		s.jmu.Unlock()
		return
	}
	s.running = true
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	s.jmu.Unlock()
	defer s.wg.Done()

	s.log.Info().
		Dur("interval", s.cfg.JanitorInterval).
		Dur("ttl", s.cfg.ViewTTL).
		Msg("View janitor started")

	ticker := time.NewTicker(s.cfg.JanitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			s.log.Info().Msg("View janitor stopping")
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

// StopJanitor stops the janitor and waits for it to return
func (s *viewService) StopJanitor() {
	s.jmu.Lock()
	defer s.jmu.Unlock()

	if !s.running {
		return
	}

	s.cancel()
	s.wg.Wait()
	s.running = false
	s.log.Info().Msg("View janitor stopped")
}

// evictIdle drops views not seen within the TTL
func (s *viewService) evictIdle() int {
	cutoff := s.now().Add(-s.cfg.ViewTTL)

	s.mu.Lock()
	evicted := 0
	for id, view := range s.views {
		if view.lastSeen.Before(cutoff) {
			delete(s.views, id)
			evicted++
		}
	}
	remaining := len(s.views)
	s.mu.Unlock()

	if evicted > 0 {
		s.log.Info().Int("evicted", evicted).Int("remaining", remaining).Msg("Idle views evicted")
	}
	return evicted
}
