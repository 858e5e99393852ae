package models

import (
	"time"
)

// Category is the editorial section an article belongs to
type Category string

const (
	CategoryMachineLearning Category = "Machine Learning"
	CategoryDeepLearning    Category = "Deep Learning"
	CategoryAIEngineering   Category = "AI Engineering"
	CategoryNeuralNetworks  Category = "Neural Networks"
)

// ValidCategories defines allowed article categories
var ValidCategories = map[Category]bool{
	CategoryMachineLearning: true,
	CategoryDeepLearning:    true,
	CategoryAIEngineering:   true,
	CategoryNeuralNetworks:  true,
}

// ArticleMetadata is the front-matter of an article file
type ArticleMetadata struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Author      string    `json:"author"`
	Category    Category  `json:"category"`
	Image       string    `json:"image"`
	Slug        string    `json:"slug"`
}

// Article is an article with its body rendered to HTML
type Article struct {
	ArticleMetadata
	Content     string `json:"content"`
	ReadingTime int    `json:"reading_time_minutes"`
}

// ArticleFrontMatter is the raw front-matter block as written by authors
type ArticleFrontMatter struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Date        string `yaml:"date" json:"date"`
	Author      string `yaml:"author" json:"author"`
	Category    string `yaml:"category" json:"category"`
	Image       string `yaml:"image" json:"image"`
	Slug        string `yaml:"slug" json:"slug"`
}

// DateLayouts are the accepted front-matter date formats, tried in order
var DateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
}
