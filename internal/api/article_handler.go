package api

import (
	"net/http"

	"github.com/codeai-site/internal/models"
	"github.com/codeai-site/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "articles").Logger(),
	}
}

// ListArticles handles GET /v1/articles
// Optional query param: category
func (h *ArticleHandler) ListArticles(c *gin.Context) {
	category := models.Category(c.Query("category"))

	articles, err := h.services.Articles.ListArticles(c.Request.Context(), category)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"articles": articles,
		"count":    len(articles),
	})
}

// GetArticle handles GET /v1/articles/:slug
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	slug := c.Param("slug")

	article, err := h.services.Articles.GetArticle(c.Request.Context(), slug)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if article == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
		return
	}

	c.JSON(http.StatusOK, article)
}

// ListSlugs handles GET /v1/slugs
func (h *ArticleHandler) ListSlugs(c *gin.Context) {
	slugs, err := h.services.Articles.ListSlugs(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"slugs": slugs})
}
