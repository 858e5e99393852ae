package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/codeai-site/internal/models"
	"github.com/google/uuid"
)

// CommentBackend performs the network side of the comment widget: it authenticates users
// and mints comments, replies and like changes.
type CommentBackend interface {
	Authenticate(ctx context.Context, name, email string) (models.User, error)
	CreateComment(ctx context.Context, author models.User, content string) (models.Thread, error)
	CreateReply(ctx context.Context, parentID string, author models.User, content string) (models.Reply, error)
	ToggleLike(ctx context.Context, commentID string, liked bool) error
}

// Latency is the simulated round trip of each backend call. Zero resolves immediately.
type Latency struct {
	SignIn time.Duration
	Submit time.Duration
	Like   time.Duration
}

// simulatedBackend stands in for a comment API. Nothing leaves the process.
type simulatedBackend struct {
	latency Latency
	now     func() time.Time
}

// NewSimulatedBackend creates a backend that only waits out the configured latency
func NewSimulatedBackend(latency Latency) CommentBackend {
	return &simulatedBackend{latency: latency, now: time.Now}
}

// Authenticate accepts any name and email
func (b *simulatedBackend) Authenticate(ctx context.Context, name, email string) (models.User, error) {
	if err := wait(ctx, b.latency.SignIn); err != nil {
		return models.User{}, err
	}
	return models.User{
		Name:   strings.TrimSpace(name),
		Email:  strings.TrimSpace(email),
		Avatar: models.DefaultAvatar,
		Role:   models.DefaultRole,
	}, nil
}

// CreateComment mints a top-level comment
func (b *simulatedBackend) CreateComment(ctx context.Context, author models.User, content string) (models.Thread, error) {
	if err := wait(ctx, b.latency.Submit); err != nil {
		return models.Thread{}, err
	}
	post, err := b.newPost(author, content)
	if err != nil {
		return models.Thread{}, err
	}
	return models.Thread{Post: post, Replies: []models.Reply{}}, nil
}

// CreateReply mints a reply to parentID
func (b *simulatedBackend) CreateReply(ctx context.Context, parentID string, author models.User, content string) (models.Reply, error) {
	if err := wait(ctx, b.latency.Submit); err != nil {
		return models.Reply{}, err
	}
	post, err := b.newPost(author, content)
	if err != nil {
		return models.Reply{}, err
	}
	return models.Reply{Post: post, ParentID: parentID}, nil
}

// ToggleLike records a like change
func (b *simulatedBackend) ToggleLike(ctx context.Context, commentID string, liked bool) error {
	return wait(ctx, b.latency.Like)
}

func (b *simulatedBackend) newPost(author models.User, content string) (models.Post, error) {
	// Version 7 ids are time ordered, and unique across threads and replies
	id, err := uuid.NewV7()
	if err != nil {
		return models.Post{}, fmt.Errorf("generate comment id: %w", err)
	}
	return models.Post{
		ID:        id.String(),
		Author:    author,
		Content:   content,
		Timestamp: models.JustNow,
		CreatedAt: b.now(),
	}, nil
}

// wait blocks for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
