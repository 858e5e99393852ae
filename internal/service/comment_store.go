package service

import (
	"context"
	"strings"
	"sync"

	"github.com/codeai-site/internal/models"
	"github.com/codeai-site/internal/validation"
	"github.com/rs/zerolog"
)

// Single-flight slots. Each one is a form (or a like button) that may only have
// one submission outstanding at a time.
const (
	slotSignIn  = "sign-in"
	slotComment = "comment"
	slotReply   = "reply"
)

func likeSlot(commentID string) string {
	return "like:" + commentID
}

// LikeTarget identifies the comment whose like is toggled. IsReply and ParentID are
// lookup hints; the comment is still found when they are wrong.
type LikeTarget struct {
	CommentID string
	IsReply   bool
	ParentID  string
}

// CommentStore is the comment widget state of one article for one viewer.
//
// Mutations go through the backend with no lock held, then commit under the lock.
// A slot reserved before the backend call keeps a second submission of the same
// form from starting until the first has committed or failed.
type CommentStore struct {
	articleSlug string
	backend     CommentBackend
	session     *Session
	log         zerolog.Logger

	mu              sync.Mutex
	threads         []*models.Thread // newest first
	replyTarget     string
	signInRequested bool
	inFlight        map[string]bool
}

// NewCommentStore creates a store owning the given threads
func NewCommentStore(articleSlug string, backend CommentBackend, session *Session, threads []models.Thread, log zerolog.Logger) *CommentStore {
	s := &CommentStore{
		articleSlug: articleSlug,
		backend:     backend,
		session:     session,
		log:         log.With().Str("component", "comments").Str("article", articleSlug).Logger(),
		threads:     make([]*models.Thread, 0, len(threads)),
		inFlight:    make(map[string]bool),
	}
	for i := range threads {
		t := threads[i].Clone()
		s.threads = append(s.threads, &t)
	}
	return s
}

// SignIn authenticates the viewer and clears the sign-in prompt
func (s *CommentStore) SignIn(ctx context.Context, name, email string) (models.User, error) {
	if verr := validation.ValidateSignIn(name, email); verr != nil {
		return models.User{}, verr
	}
	if err := s.reserve(slotSignIn); err != nil {
		return models.User{}, err
	}
	defer s.release(slotSignIn)

	user, err := s.backend.Authenticate(ctx, name, email)
	if err != nil {
		s.log.Warn().Err(err).Msg("Sign in failed")
		return models.User{}, err
	}

	s.session.begin(user)
	s.mu.Lock()
	s.signInRequested = false
	s.mu.Unlock()

	s.log.Info().Str("user", user.Name).Msg("Viewer signed in")
	return user, nil
}

// SignOut clears the session immediately
func (s *CommentStore) SignOut() {
	s.session.end()
	s.log.Info().Msg("Viewer signed out")
}

// SubmitComment adds a new top-level comment at the front of the discussion
func (s *CommentStore) SubmitComment(ctx context.Context, text string) (models.Thread, error) {
	author, err := s.requireUser()
	if err != nil {
		return models.Thread{}, err
	}
	if verr := validation.ValidateCommentText(text); verr != nil {
		return models.Thread{}, verr
	}
	if err := s.reserve(slotComment); err != nil {
		return models.Thread{}, err
	}
	defer s.release(slotComment)

	thread, err := s.backend.CreateComment(ctx, author, strings.TrimSpace(text))
	if err != nil {
		s.log.Warn().Err(err).Msg("Comment submission failed")
		return models.Thread{}, err
	}

	s.mu.Lock()
	committed := thread.Clone()
	s.threads = append([]*models.Thread{&committed}, s.threads...)
	s.mu.Unlock()

	s.log.Info().Str("comment_id", thread.ID).Str("user", author.Name).Msg("Comment posted")
	return thread, nil
}

// SubmitReply appends a reply to a top-level comment. Replies to replies are rejected.
func (s *CommentStore) SubmitReply(ctx context.Context, parentID, text string) (models.Reply, error) {
	author, err := s.requireUser()
	if err != nil {
		return models.Reply{}, err
	}
	if verr := validation.ValidateCommentText(text); verr != nil {
		return models.Reply{}, verr
	}

	s.mu.Lock()
	err = s.checkReplyParentLocked(parentID)
	s.mu.Unlock()
	if err != nil {
		return models.Reply{}, err
	}

	if err := s.reserve(slotReply); err != nil {
		return models.Reply{}, err
	}
	defer s.release(slotReply)

	reply, err := s.backend.CreateReply(ctx, parentID, author, strings.TrimSpace(text))
	if err != nil {
		s.log.Warn().Err(err).Str("parent_id", parentID).Msg("Reply submission failed")
		return models.Reply{}, err
	}

	s.mu.Lock()
	parent := s.findThreadLocked(parentID)
	if parent == nil {
		// Threads are never removed, so the parent checked above is still here
		s.mu.Unlock()
		return models.Reply{}, models.ErrCommentNotFound
	}
	parent.Replies = append(parent.Replies, reply)
	s.replyTarget = ""
	s.mu.Unlock()

	s.log.Info().Str("comment_id", reply.ID).Str("parent_id", parentID).Msg("Reply posted")
	return reply, nil
}

// ToggleLike flips the viewer's like on a comment or reply and returns its new state
func (s *CommentStore) ToggleLike(ctx context.Context, target LikeTarget) (models.Post, error) {
	if _, err := s.requireUser(); err != nil {
		return models.Post{}, err
	}

	slot := likeSlot(target.CommentID)
	s.mu.Lock()
	post := s.findPostLocked(target)
	if post == nil {
		s.mu.Unlock()
		return models.Post{}, models.ErrCommentNotFound
	}
	if s.inFlight[slot] {
		s.mu.Unlock()
		return models.Post{}, models.ErrSubmissionInFlight
	}
	s.inFlight[slot] = true
	liked := !post.IsLiked
	s.mu.Unlock()
	defer s.release(slot)

	if err := s.backend.ToggleLike(ctx, target.CommentID, liked); err != nil {
		s.log.Warn().Err(err).Str("comment_id", target.CommentID).Msg("Like failed")
		return models.Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	post = s.findPostLocked(target)
	if post == nil {
		return models.Post{}, models.ErrCommentNotFound
	}
	post.ToggleLike()
	return *post, nil
}

// BeginReply opens the reply form under a top-level comment. Opening it on the
// comment that already has it open closes it.
func (s *CommentStore) BeginReply(parentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkReplyParentLocked(parentID); err != nil {
		return err
	}
	if s.replyTarget == parentID {
		s.replyTarget = ""
		return nil
	}
	s.replyTarget = parentID
	return nil
}

// CancelReply closes the reply form
func (s *CommentStore) CancelReply() {
	s.mu.Lock()
	s.replyTarget = ""
	s.mu.Unlock()
}

// Snapshot returns a deep copy of the widget state
func (s *CommentStore) Snapshot() models.DiscussionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := models.DiscussionState{
		ArticleSlug:     s.articleSlug,
		Threads:         make([]models.Thread, len(s.threads)),
		ReplyTarget:     s.replyTarget,
		Submitting:      len(s.inFlight) > 0,
		SignInRequested: s.signInRequested,
	}
	for i, t := range s.threads {
		state.Threads[i] = t.Clone()
	}
	if user, ok := s.session.User(); ok {
		state.User = &user
	}
	return state
}

// requireUser returns the signed-in user, or raises the sign-in prompt
func (s *CommentStore) requireUser() (models.User, error) {
	user, ok := s.session.User()
	if !ok {
		s.mu.Lock()
		s.signInRequested = true
		s.mu.Unlock()
		return models.User{}, models.ErrAuthRequired
	}
	return user, nil
}

func (s *CommentStore) reserve(slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[slot] {
		return models.ErrSubmissionInFlight
	}
	s.inFlight[slot] = true
	return nil
}

func (s *CommentStore) release(slot string) {
	s.mu.Lock()
	delete(s.inFlight, slot)
	s.mu.Unlock()
}

func (s *CommentStore) checkReplyParentLocked(parentID string) error {
	if s.findThreadLocked(parentID) != nil {
		return nil
	}
	for _, t := range s.threads {
		if t.FindReply(parentID) != nil {
			return models.ErrReplyDepth
		}
	}
	return models.ErrCommentNotFound
}

func (s *CommentStore) findThreadLocked(id string) *models.Thread {
	for _, t := range s.threads {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// findPostLocked resolves a like target. The returned pointer is only valid while s.mu is held.
func (s *CommentStore) findPostLocked(target LikeTarget) *models.Post {
	if target.IsReply && target.ParentID != "" {
		if parent := s.findThreadLocked(target.ParentID); parent != nil {
			if r := parent.FindReply(target.CommentID); r != nil {
				return &r.Post
			}
		}
	}
	for _, t := range s.threads {
		if t.ID == target.CommentID {
			return &t.Post
		}
		if r := t.FindReply(target.CommentID); r != nil {
			return &r.Post
		}
	}
	return nil
}
