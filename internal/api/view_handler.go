package api

import (
	"net/http"
	"time"

	"github.com/codeai-site/internal/config"
	"github.com/codeai-site/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// ViewHandler handles the comment widget endpoints of an open article view
type ViewHandler struct {
	services *service.Services
	timeout  time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewViewHandler creates a new ViewHandler
func NewViewHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ViewHandler {
	timeout := cfg.Server.WriteTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ViewHandler{
		services: services,
		timeout:  timeout,
		log:      log.With().Str("handler", "views").Logger(),
		now:      time.Now,
	}
}

type openViewRequest struct {
	ArticleSlug string `json:"article_slug" binding:"required"`
}

type signInRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type contentRequest struct {
	Content string `json:"content"`
}

type replyTargetRequest struct {
	CommentID string `json:"comment_id" binding:"required"`
}

type likeRequest struct {
	ParentID string `json:"parent_id"`
}

// OpenView handles POST /v1/views
func (h *ViewHandler) OpenView(c *gin.Context) {
	var req openViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "article_slug is required"})
		return
	}

	view, err := h.services.Views.Open(c.Request.Context(), req.ArticleSlug)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, newViewResponse(view.ID, view.Store.Snapshot(), h.now()))
}

// GetView handles GET /v1/views/:view_id
func (h *ViewHandler) GetView(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}
	h.respondState(c, http.StatusOK, view)
}

// CloseView handles DELETE /v1/views/:view_id
func (h *ViewHandler) CloseView(c *gin.Context) {
	if err := h.services.Views.Close(c.Param("view_id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SignIn handles POST /v1/views/:view_id/session
func (h *ViewHandler) SignIn(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if _, err := view.Store.SignIn(ctx, req.Name, req.Email); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondState(c, http.StatusOK, view)
}

// SignOut handles DELETE /v1/views/:view_id/session
func (h *ViewHandler) SignOut(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}
	view.Store.SignOut()
	h.respondState(c, http.StatusOK, view)
}

// SubmitComment handles POST /v1/views/:view_id/comments
func (h *ViewHandler) SubmitComment(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if _, err := view.Store.SubmitComment(ctx, req.Content); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondState(c, http.StatusCreated, view)
}

// SubmitReply handles POST /v1/views/:view_id/comments/:comment_id/replies
func (h *ViewHandler) SubmitReply(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	var req contentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	if _, err := view.Store.SubmitReply(ctx, c.Param("comment_id"), req.Content); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondState(c, http.StatusCreated, view)
}

// ToggleLike handles POST /v1/views/:view_id/comments/:comment_id/like
// Optional body: {"parent_id": "..."} when the comment is a reply
func (h *ViewHandler) ToggleLike(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	var req likeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	ctx, cancel := contextWithTimeout(c, h.timeout)
	defer cancel()

	target := service.LikeTarget{
		CommentID: c.Param("comment_id"),
		IsReply:   req.ParentID != "",
		ParentID:  req.ParentID,
	}
	if _, err := view.Store.ToggleLike(ctx, target); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondState(c, http.StatusOK, view)
}

// BeginReply handles PUT /v1/views/:view_id/reply-target
func (h *ViewHandler) BeginReply(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}

	var req replyTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment_id is required"})
		return
	}

	if err := view.Store.BeginReply(req.CommentID); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.respondState(c, http.StatusOK, view)
}

// CancelReply handles DELETE /v1/views/:view_id/reply-target
func (h *ViewHandler) CancelReply(c *gin.Context) {
	view, ok := h.view(c)
	if !ok {
		return
	}
	view.Store.CancelReply()
	h.respondState(c, http.StatusOK, view)
}

// view resolves the :view_id path parameter, writing the error response when it fails
func (h *ViewHandler) view(c *gin.Context) (*service.View, bool) {
	view, err := h.services.Views.Get(c.Param("view_id"))
	if err != nil {
		respondError(c, h.log, err)
		return nil, false
	}
	return view, true
}

func (h *ViewHandler) respondState(c *gin.Context, status int, view *service.View) {
	c.JSON(status, newViewResponse(view.ID, view.Store.Snapshot(), h.now()))
}
