package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/codeai-site/internal/models"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// IsValidSlug reports whether s is a URL-safe kebab-case slug
func IsValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// ValidateArticle validates a front-matter block read from <stem>.md and converts it to metadata.
// The metadata is only meaningful when no errors are returned.
func ValidateArticle(fm *models.ArticleFrontMatter, stem string) (models.ArticleMetadata, []models.ValidationError) {
	var errors []models.ValidationError
	meta := models.ArticleMetadata{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(fm.Description),
		Author:      strings.TrimSpace(fm.Author),
		Category:    models.Category(strings.TrimSpace(fm.Category)),
		Image:       strings.TrimSpace(fm.Image),
		Slug:        strings.TrimSpace(fm.Slug),
	}

	// Validate slug
	if meta.Slug == "" {
		errors = append(errors, models.ValidationError{Field: "slug", Message: "slug is required"})
	} else if !slugRegex.MatchString(meta.Slug) {
		errors = append(errors, models.ValidationError{Field: "slug", Message: "slug must be kebab-case (lowercase letters, numbers, hyphens)", Value: meta.Slug})
	} else if meta.Slug != stem {
		errors = append(errors, models.ValidationError{
			Field:   "slug",
			Message: fmt.Sprintf("slug must match file name %q", stem+".md"),
			Value:   meta.Slug,
		})
	}

	if meta.Title == "" {
		errors = append(errors, models.ValidationError{Field: "title", Message: "title is required"})
	}
	if meta.Description == "" {
		errors = append(errors, models.ValidationError{Field: "description", Message: "description is required"})
	}
	if meta.Author == "" {
		errors = append(errors, models.ValidationError{Field: "author", Message: "author is required"})
	}
	if meta.Image == "" {
		errors = append(errors, models.ValidationError{Field: "image", Message: "image is required"})
	}

	// Validate category
	if meta.Category == "" {
		errors = append(errors, models.ValidationError{Field: "category", Message: "category is required"})
	} else if !models.ValidCategories[meta.Category] {
		errors = append(errors, models.ValidationError{
			Field:   "category",
			Message: "invalid category, must be one of: Machine Learning, Deep Learning, AI Engineering, Neural Networks",
			Value:   fm.Category,
		})
	}

	// Validate date
	if strings.TrimSpace(fm.Date) == "" {
		errors = append(errors, models.ValidationError{Field: "date", Message: "date is required"})
	} else if date, err := ParseDate(fm.Date); err != nil {
		errors = append(errors, models.ValidationError{Field: "date", Message: "unrecognised date format", Value: fm.Date})
	} else {
		meta.Date = date
	}

	return meta, errors
}

// ParseDate parses a front-matter date using models.DateLayouts
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range models.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}

// ValidateCommentText validates a comment or reply body
func ValidateCommentText(text string) *models.ValidationError {
	if strings.TrimSpace(text) == "" {
		return &models.ValidationError{Field: "content", Message: "content is required"}
	}

	// Check word count (max 500 words)
	wordCount := len(strings.Fields(text))
	if wordCount > models.MaxCommentWords {
		return &models.ValidationError{
			Field:   "content",
			Message: fmt.Sprintf("content exceeds maximum of %d words (has %d)", models.MaxCommentWords, wordCount),
		}
	}
	return nil
}

// ValidateSignIn validates the sign-in form. No credential is checked.
func ValidateSignIn(name, email string) *models.ValidationError {
	if strings.TrimSpace(name) == "" {
		return &models.ValidationError{Field: "name", Message: "name is required"}
	}
	if email == "" {
		return &models.ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return &models.ValidationError{Field: "email", Message: "invalid email format", Value: email}
	}
	return nil
}
