package api

import (
	"time"

	"github.com/codeai-site/internal/models"
	"github.com/dustin/go-humanize"
)

// postResponse is a comment or reply as the widget displays it
type postResponse struct {
	ID        string      `json:"id"`
	Author    models.User `json:"author"`
	Content   string      `json:"content"`
	Timestamp string      `json:"timestamp"`
	Likes     int         `json:"likes"`
	IsLiked   bool        `json:"is_liked"`
	ParentID  string      `json:"parent_id,omitempty"`
}

type threadResponse struct {
	postResponse
	Replies []postResponse `json:"replies"`
}

// viewResponse is the full widget state of one view
type viewResponse struct {
	ViewID          string           `json:"view_id"`
	ArticleSlug     string           `json:"article_slug"`
	User            *models.User     `json:"user"`
	Comments        []threadResponse `json:"comments"`
	ReplyTarget     string           `json:"reply_target,omitempty"`
	Submitting      bool             `json:"submitting"`
	SignInRequested bool             `json:"sign_in_requested"`
}

// displayTimestamp renders the relative time of a post. Posts without a creation
// time keep the label they were stored with.
func displayTimestamp(p models.Post, now time.Time) string {
	if p.CreatedAt.IsZero() {
		return p.Timestamp
	}
	if now.Sub(p.CreatedAt) < time.Minute {
		return models.JustNow
	}
	return humanize.RelTime(p.CreatedAt, now, "ago", "from now")
}

func newPostResponse(p models.Post, parentID string, now time.Time) postResponse {
	return postResponse{
		ID:        p.ID,
		Author:    p.Author,
		Content:   p.Content,
		Timestamp: displayTimestamp(p, now),
		Likes:     p.Likes,
		IsLiked:   p.IsLiked,
		ParentID:  parentID,
	}
}

func newThreadResponse(t models.Thread, now time.Time) threadResponse {
	resp := threadResponse{
		postResponse: newPostResponse(t.Post, "", now),
		Replies:      make([]postResponse, len(t.Replies)),
	}
	for i, r := range t.Replies {
		resp.Replies[i] = newPostResponse(r.Post, r.ParentID, now)
	}
	return resp
}

func newViewResponse(viewID string, state models.DiscussionState, now time.Time) viewResponse {
	resp := viewResponse{
		ViewID:          viewID,
		ArticleSlug:     state.ArticleSlug,
		User:            state.User,
		Comments:        make([]threadResponse, len(state.Threads)),
		ReplyTarget:     state.ReplyTarget,
		Submitting:      state.Submitting,
		SignInRequested: state.SignInRequested,
	}
	for i, t := range state.Threads {
		resp.Comments[i] = newThreadResponse(t, now)
	}
	return resp
}
