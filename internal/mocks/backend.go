package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/codeai-site/internal/models"
	"github.com/codeai-site/internal/service"
)

// MockCommentBackend is a zero-latency CommentBackend with deterministic ids.
// When Gate is set every call blocks until Gate yields or is closed, and Started
// receives once per call that reached the gate.
type MockCommentBackend struct {
	Gate    chan struct{}
	Started chan string

	AuthError   error
	CreateError error
	LikeError   error

	mu     sync.Mutex
	nextID int
	Calls  map[string]int
	Likes  map[string]bool
}

// Verify interface compliance
var _ service.CommentBackend = (*MockCommentBackend)(nil)

func NewMockCommentBackend() *MockCommentBackend {
	return &MockCommentBackend{
		Calls: make(map[string]int),
		Likes: make(map[string]bool),
	}
}

// CallCount returns how many times op was called
func (m *MockCommentBackend) CallCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[op]
}

func (m *MockCommentBackend) enter(ctx context.Context, op string) error {
	m.mu.Lock()
	m.Calls[op]++
	m.mu.Unlock()

	if m.Gate == nil {
		return ctx.Err()
	}
	if m.Started != nil {
		m.Started <- op
	}
	select {
	case <-m.Gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *MockCommentBackend) newID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	return fmt.Sprintf("c-%d", m.nextID)
}

func (m *MockCommentBackend) Authenticate(ctx context.Context, name, email string) (models.User, error) {
	if err := m.enter(ctx, "authenticate"); err != nil {
		return models.User{}, err
	}
	if m.AuthError != nil {
		return models.User{}, m.AuthError
	}
	return models.User{Name: name, Email: email, Avatar: models.DefaultAvatar, Role: models.DefaultRole}, nil
}

func (m *MockCommentBackend) CreateComment(ctx context.Context, author models.User, content string) (models.Thread, error) {
	if err := m.enter(ctx, "create_comment"); err != nil {
		return models.Thread{}, err
	}
	if m.CreateError != nil {
		return models.Thread{}, m.CreateError
	}
	return models.Thread{
		Post: models.Post{
			ID:        m.newID(),
			Author:    author,
			Content:   content,
			Timestamp: models.JustNow,
		},
		Replies: []models.Reply{},
	}, nil
}

func (m *MockCommentBackend) CreateReply(ctx context.Context, parentID string, author models.User, content string) (models.Reply, error) {
	if err := m.enter(ctx, "create_reply"); err != nil {
		return models.Reply{}, err
	}
	if m.CreateError != nil {
		return models.Reply{}, m.CreateError
	}
	return models.Reply{
		Post: models.Post{
			ID:        m.newID(),
			Author:    author,
			Content:   content,
			Timestamp: models.JustNow,
		},
		ParentID: parentID,
	}, nil
}

func (m *MockCommentBackend) ToggleLike(ctx context.Context, commentID string, liked bool) error {
	if err := m.enter(ctx, "toggle_like"); err != nil {
		return err
	}
	if m.LikeError != nil {
		return m.LikeError
	}
	m.mu.Lock()
	m.Likes[commentID] = liked
	m.mu.Unlock()
	return nil
}
