package models

import (
	"time"
)

// JustNow is the display timestamp of a freshly committed comment
const JustNow = "Just now"

// MaxCommentWords is the maximum allowed words in a comment body
const MaxCommentWords = 500

// Post holds the fields shared by threads and replies
type Post struct {
	ID        string    `json:"id"`
	Author    User      `json:"author"`
	Content   string    `json:"content"`
	Timestamp string    `json:"timestamp"`
	CreatedAt time.Time `json:"-"`
	Likes     int       `json:"likes"`
	IsLiked   bool      `json:"is_liked"`
}

// ToggleLike flips IsLiked and moves Likes by exactly one in the same direction
func (p *Post) ToggleLike() {
	if p.IsLiked {
		p.Likes--
	} else {
		p.Likes++
	}
	p.IsLiked = !p.IsLiked
}

// Thread is a top-level comment and its replies, oldest reply first
type Thread struct {
	Post
	Replies []Reply `json:"replies"`
}

// Reply answers a Thread. It has no replies of its own.
type Reply struct {
	Post
	ParentID string `json:"parent_id"`
}

// Clone returns a deep copy of the thread
func (t *Thread) Clone() Thread {
	c := Thread{Post: t.Post, Replies: make([]Reply, len(t.Replies))}
	copy(c.Replies, t.Replies)
	return c
}

// FindReply returns the reply with the given id, or nil
func (t *Thread) FindReply(id string) *Reply {
	for i := range t.Replies {
		if t.Replies[i].ID == id {
			return &t.Replies[i]
		}
	}
	return nil
}

// DiscussionState is a point-in-time copy of one viewer's comment widget
type DiscussionState struct {
	ArticleSlug     string   `json:"article_slug"`
	User            *User    `json:"user"`
	Threads         []Thread `json:"comments"`
	ReplyTarget     string   `json:"reply_target,omitempty"`
	Submitting      bool     `json:"submitting"`
	SignInRequested bool     `json:"sign_in_requested"`
}
