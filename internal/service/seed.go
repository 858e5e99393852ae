package service

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/codeai-site/internal/config"
	"github.com/codeai-site/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed seed_comments.yaml
var embeddedSeed []byte

type seedPost struct {
	ID        string      `yaml:"id"`
	Author    models.User `yaml:"author"`
	Content   string      `yaml:"content"`
	Timestamp string      `yaml:"timestamp"`
	Likes     int         `yaml:"likes"`
	IsLiked   bool        `yaml:"is_liked"`
}

type seedThread struct {
	seedPost `yaml:",inline"`
	Replies  []seedPost `yaml:"replies"`
}

// LoadSeed returns the discussion new views start with, as configured.
// A disabled seed yields no threads.
func LoadSeed(cfg *config.CommentsConfig) ([]models.Thread, error) {
	if !cfg.SeedEnabled {
		return nil, nil
	}
	data := embeddedSeed
	if cfg.SeedFile != "" {
		var err error
		data, err = os.ReadFile(cfg.SeedFile)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	return ParseSeed(data)
}

// ParseSeed decodes and checks a YAML seed discussion
func ParseSeed(data []byte) ([]models.Thread, error) {
	var raw []seedThread
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seen := make(map[string]bool)
	threads := make([]models.Thread, 0, len(raw))
	for _, rt := range raw {
		post, err := rt.seedPost.toPost(seen)
		if err != nil {
			return nil, err
		}
		thread := models.Thread{Post: post, Replies: make([]models.Reply, 0, len(rt.Replies))}
		for _, rr := range rt.Replies {
			reply, err := rr.toPost(seen)
			if err != nil {
				return nil, err
			}
			thread.Replies = append(thread.Replies, models.Reply{Post: reply, ParentID: post.ID})
		}
		threads = append(threads, thread)
	}
	return threads, nil
}

func (p seedPost) toPost(seen map[string]bool) (models.Post, error) {
	id := strings.TrimSpace(p.ID)
	switch {
	case id == "":
		return models.Post{}, fmt.Errorf("seed comment without id")
	case seen[id]:
		return models.Post{}, fmt.Errorf("seed comment %q: duplicate id", id)
	case strings.TrimSpace(p.Author.Name) == "":
		return models.Post{}, fmt.Errorf("seed comment %q: author name is required", id)
	case strings.TrimSpace(p.Content) == "":
		return models.Post{}, fmt.Errorf("seed comment %q: content is required", id)
	case p.Likes < 0:
		return models.Post{}, fmt.Errorf("seed comment %q: likes must not be negative", id)
	case p.IsLiked && p.Likes < 1:
		return models.Post{}, fmt.Errorf("seed comment %q: liked comment must count the like", id)
	}
	seen[id] = true

	return models.Post{
		ID:        id,
		Author:    p.Author,
		Content:   p.Content,
		Timestamp: p.Timestamp,
		Likes:     p.Likes,
		IsLiked:   p.IsLiked,
	}, nil
}
