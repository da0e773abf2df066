package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tazhibayda/posts-service/internal/domain"
	"github.com/tazhibayda/posts-service/internal/log"
	"github.com/tazhibayda/posts-service/internal/metrics"
	"github.com/tazhibayda/posts-service/internal/queue"
	"github.com/tazhibayda/posts-service/internal/repo"
	"github.com/tazhibayda/posts-service/internal/service"
	"go.uber.org/zap"
)

type Handler struct {
	Posts           *service.PostService
	JWTSecret       string
	Redis           *repo.Redis
	RateLimitPerMin int
	Events          queue.Publisher
	Store           *repo.Store // nil in tests; Healthz degrades gracefully
}

func NewHandler(posts *service.PostService, jwtSecret string, rds *repo.Redis, rlPerMin int, pub queue.Publisher, store *repo.Store) *Handler {
	return &Handler{
		Posts:           posts,
		JWTSecret:       jwtSecret,
		Redis:           rds,
		RateLimitPerMin: rlPerMin,
		Events:          pub,
		Store:           store,
	}
}

// respondErr maps each error kind to one stable status.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrPostNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
	case errors.Is(err, domain.ErrPostCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	case errors.Is(err, domain.ErrUnauthorizedPostDeleting):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the post owner"})
	case errors.Is(err, domain.ErrUnauthorizedPostCommentDeleting):
		c.JSON(http.StatusForbidden, gin.H{"error": "not the comment owner"})
	case errors.Is(err, domain.ErrPostDislikeUser):
		c.JSON(http.StatusConflict, gin.H{"error": "post not liked yet"})
	default:
		log.L().Error("post operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *Handler) publish(c *gin.Context, key string, event any) {
	if h.Events == nil {
		return
	}
	if err := h.Events.Publish(c.Request.Context(), queue.Exchange, key, event, c.GetString("X-Request-ID")); err != nil {
		log.L().Warn("event publish failed", zap.String("key", key), zap.Error(err))
	}
}

// ListPosts godoc
// @Summary List all posts
// @Tags posts
// @Produce json
// @Success 200 {array} domain.Post
// @Router /api/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.Posts.GetAllPosts(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Get a post
// @Tags posts
// @Param id path string true "post id"
// @Produce json
// @Success 200 {object} domain.Post
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.Posts.GetPostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// ListExtendedPosts godoc
// @Summary List all posts annotated for the viewer
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Success 200 {array} domain.PostView
// @Router /api/posts/extended [get]
func (h *Handler) ListExtendedPosts(c *gin.Context) {
	views, err := h.Posts.GetAllExtendedPosts(c.Request.Context(), viewer(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetExtendedPost godoc
// @Summary Get a post annotated for the viewer
// @Tags posts
// @Security BearerAuth
// @Param id path string true "post id"
// @Produce json
// @Success 200 {object} domain.PostView
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id}/extended [get]
func (h *Handler) GetExtendedPost(c *gin.Context) {
	view, err := h.Posts.GetExtendedPostByID(c.Request.Context(), c.Param("id"), viewer(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type createPostReq struct {
	Body string `json:"body"`
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body createPostReq true "post body"
// @Success 201 {object} domain.Post
// @Failure 400 {object} map[string]string
// @Router /api/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var in createPostReq
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body required"})
		return
	}
	post, err := h.Posts.CreatePost(c.Request.Context(), viewer(c).Owner(), in.Body)
	if err != nil {
		respondErr(c, err)
		return
	}
	metrics.PostsCreated.Inc()
	h.publish(c, queue.KeyPostCreated, queue.PostCreated{PostID: post.ID, OwnerID: post.Owner.ID})
	c.JSON(http.StatusCreated, post)
}

// DeletePost godoc
// @Summary Delete own post with everything embedded in it
// @Tags posts
// @Security BearerAuth
// @Param id path string true "post id"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if err := h.Posts.DeletePost(c.Request.Context(), id, viewer(c).ID); err != nil {
		respondErr(c, err)
		return
	}
	metrics.PostsDeleted.Inc()
	h.publish(c, queue.KeyPostDeleted, queue.PostDeleted{PostID: id, OwnerID: viewer(c).ID})
	c.Status(http.StatusNoContent)
}

type createCommentReq struct {
	Body string `json:"body"`
}

// CreateComment godoc
// @Summary Comment on a post
// @Tags comments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "post id"
// @Param payload body createCommentReq true "comment body"
// @Success 201 {object} domain.PostView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	var in createCommentReq
	if err := c.ShouldBindJSON(&in); err != nil || strings.TrimSpace(in.Body) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body required"})
		return
	}
	u := viewer(c)
	view, err := h.Posts.CreatePostComment(c.Request.Context(), c.Param("id"), in.Body, u.Owner())
	if err != nil {
		respondErr(c, err)
		return
	}
	metrics.CommentsAdded.Inc()
	if n := len(view.Comments); n > 0 {
		h.publish(c, queue.KeyPostCommented, queue.PostCommented{
			PostID:    view.ID,
			CommentID: view.Comments[n-1].ID,
			OwnerID:   u.ID,
		})
	}
	c.JSON(http.StatusCreated, view)
}

// DeleteComment godoc
// @Summary Delete own comment
// @Tags comments
// @Security BearerAuth
// @Param id path string true "post id"
// @Param commentId path string true "comment id"
// @Produce json
// @Success 200 {object} domain.PostView
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id}/comments/{commentId} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	view, err := h.Posts.DeletePostComment(c.Request.Context(), c.Param("id"), c.Param("commentId"), viewer(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// LikePost godoc
// @Summary Like a post
// @Tags likes
// @Security BearerAuth
// @Param id path string true "post id"
// @Produce json
// @Success 200 {object} domain.PostView
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/posts/{id}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
	u := viewer(c)
	id := c.Param("id")

	// LikePost itself appends unconditionally; the one-like-per-user
	// invariant is enforced here.
	existing, err := h.Posts.GetPostLikeByOwnerID(c.Request.Context(), id, u.ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "already liked"})
		return
	}

	view, err := h.Posts.LikePost(c.Request.Context(), id, u.Owner())
	if err != nil {
		respondErr(c, err)
		return
	}
	metrics.LikesAdded.Inc()
	h.publish(c, queue.KeyPostLiked, queue.PostLiked{PostID: id, OwnerID: u.ID})
	c.JSON(http.StatusOK, view)
}

// DislikePost godoc
// @Summary Remove own like from a post
// @Tags likes
// @Security BearerAuth
// @Param id path string true "post id"
// @Produce json
// @Success 200 {object} domain.Post
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/posts/{id}/like [delete]
func (h *Handler) DislikePost(c *gin.Context) {
	post, err := h.Posts.DislikePost(c.Request.Context(), c.Param("id"), viewer(c).ID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Store != nil {
		if err := h.Store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
