package api

import (
	"context"
	"net/http"
	"time"

	"github.com/codeai-site/internal/config"
	"github.com/codeai-site/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	// Handlers
	articleHandler := NewArticleHandler(services, log)
	viewHandler := NewViewHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services))

	// API v1
	v1 := router.Group("/v1")
	{
		// Article endpoints
		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.ListArticles)
			articles.GET("/:slug", articleHandler.GetArticle)
		}
		v1.GET("/slugs", articleHandler.ListSlugs)

		// Comment widget endpoints
		views := v1.Group("/views")
		{
			views.POST("", viewHandler.OpenView)
			views.GET("/:view_id", viewHandler.GetView)
			views.DELETE("/:view_id", viewHandler.CloseView)

			views.POST("/:view_id/session", viewHandler.SignIn)
			views.DELETE("/:view_id/session", viewHandler.SignOut)

			views.POST("/:view_id/comments", viewHandler.SubmitComment)
			views.POST("/:view_id/comments/:comment_id/replies", viewHandler.SubmitReply)
			views.POST("/:view_id/comments/:comment_id/like", viewHandler.ToggleLike)

			views.PUT("/:view_id/reply-target", viewHandler.BeginReply)
			views.DELETE("/:view_id/reply-target", viewHandler.CancelReply)
		}
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "codeai-site",
	})
}

// metricsHandler returns content and comment widget metrics
func metricsHandler(services *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		articles := gin.H{"available": true}
		slugs, err := services.Articles.ListSlugs(ctx)
		if err != nil {
			articles["available"] = false
		}
		articles["files"] = len(slugs)

		c.JSON(http.StatusOK, gin.H{
			"articles": articles,
			"views": gin.H{
				"open": services.Views.Count(),
			},
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// contextWithTimeout creates a context with timeout for handlers
func contextWithTimeout(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}
