// Package markdown renders article bodies to HTML.
package markdown

import (
	"github.com/russross/blackfriday/v2"
)

// Renderer turns a markdown body into HTML
type Renderer interface {
	Render(src []byte) []byte
}

const extensions = blackfriday.CommonExtensions | blackfriday.AutoHeadingIDs

// BlackfridayRenderer renders with blackfriday. Raw HTML is dropped and links with
// untrusted protocols are neutralised unless AllowRawHTML is set.
type BlackfridayRenderer struct {
	AllowRawHTML bool
}

// New creates a blackfriday backed renderer
func New(allowRawHTML bool) *BlackfridayRenderer {
	return &BlackfridayRenderer{AllowRawHTML: allowRawHTML}
}

// Render converts src to HTML
func (r *BlackfridayRenderer) Render(src []byte) []byte {
	flags := blackfriday.CommonHTMLFlags
	if !r.AllowRawHTML {
		flags |= blackfriday.SkipHTML | blackfriday.Safelink
	}

	// The HTML renderer remembers generated heading ids, so it must not be shared between calls.
	html := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: flags})
	return blackfriday.Run(src,
		blackfriday.WithExtensions(extensions),
		blackfriday.WithRenderer(html),
	)
}

// ReadingTime estimates minutes to read a markdown body at 200 words per minute
func ReadingTime(src []byte) int {
	words := 0
	inWord := false
	for _, b := range src {
		space := b == ' ' || b == '\n' || b == '\t' || b == '\r'
		if !space && !inWord {
			words++
		}
		inWord = !space
	}
	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
