package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/codeai-site/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// respondError maps a service error to a status code and JSON body
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	var verr *models.ValidationError
	var cse *models.ContentSourceError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
	case errors.Is(err, models.ErrAuthRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "sign in required", "sign_in_required": true})
	case errors.Is(err, models.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "article not found"})
	case errors.Is(err, models.ErrViewNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "view not found"})
	case errors.Is(err, models.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	case errors.Is(err, models.ErrReplyDepth):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "replies can only be made to top-level comments"})
	case errors.Is(err, models.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": "a submission is already in progress"})
	case errors.Is(err, models.ErrTooManyViews):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "too many open views, try again later"})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "request timed out"})
	case errors.As(err, &cse):
		log.Error().Err(err).Str("path", cse.Path).Msg("Content source failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read article content"})
	default:
		log.Error().Err(err).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
