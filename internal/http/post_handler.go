package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/petermanchester1987/actor-connect/internal/service"
)

// PostHandler mantiene dependencias para los endpoints del feed.
type PostHandler struct {
	logger   *zap.Logger
	postServ *service.PostService
}

func NewPostHandler(logger *zap.Logger, postServ *service.PostService) *PostHandler {
	return &PostHandler{
		logger:   logger,
		postServ: postServ,
	}
}

// Create maneja POST /api/posts.
func (h *PostHandler) Create(c *gin.Context) {
	userID, _ := GetAuthUserID(c)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create post request", zap.Error(err))
		validationFailed(c, []fieldError{{Msg: "Invalid request body"}})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		validationFailed(c, []fieldError{{Msg: "Text is required"}})
		return
	}

	post, err := h.postServ.Create(c.Request.Context(), userID, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		h.logger.Error("create post failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, post)
}

// List maneja GET /api/posts, más reciente primero.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.postServ.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list posts failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	c.JSON(http.StatusOK, posts)
}

// Get maneja GET /api/posts/:id.
func (h *PostHandler) Get(c *gin.Context) {
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	post, err := h.postServ.Get(c.Request.Context(), postID)
	if err != nil {
		h.respondPostError(c, err, "get post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// Delete maneja DELETE /api/posts/:id, solo para el autor.
func (h *PostHandler) Delete(c *gin.Context) {
	userID, _ := GetAuthUserID(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	if err := h.postServ.Delete(c.Request.Context(), userID, postID); err != nil {
		if errors.Is(err, service.ErrNotOwner) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "User not authorized"})
			return
		}
		h.respondPostError(c, err, "delete post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Post removed"})
}

// Like maneja PUT /api/posts/like/:id.
func (h *PostHandler) Like(c *gin.Context) {
	userID, _ := GetAuthUserID(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	likes, err := h.postServ.Like(c.Request.Context(), userID, postID)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyLiked) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Post already liked"})
			return
		}
		h.respondPostError(c, err, "like post")
		return
	}
	c.JSON(http.StatusOK, likes)
}

// Unlike maneja PUT /api/posts/unlike/:id. Quitar un like que no
// existe deja la lista como está.
func (h *PostHandler) Unlike(c *gin.Context) {
	userID, _ := GetAuthUserID(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	likes, err := h.postServ.Unlike(c.Request.Context(), userID, postID)
	if err != nil {
		h.respondPostError(c, err, "unlike post")
		return
	}
	c.JSON(http.StatusOK, likes)
}

// AddComment maneja POST /api/posts/comment/:id.
func (h *PostHandler) AddComment(c *gin.Context) {
	userID, _ := GetAuthUserID(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add comment request", zap.Error(err))
		validationFailed(c, []fieldError{{Msg: "Invalid request body"}})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		validationFailed(c, []fieldError{{Msg: "Text is required"}})
		return
	}

	comments, err := h.postServ.AddComment(c.Request.Context(), userID, postID, req.Text)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		h.respondPostError(c, err, "add comment")
		return
	}
	c.JSON(http.StatusOK, comments)
}

// RemoveComment maneja DELETE /api/posts/comment/:id/:comment_id, solo
// para el autor del comentario.
func (h *PostHandler) RemoveComment(c *gin.Context) {
	userID, _ := GetAuthUserID(c)
	postID, ok := h.postID(c)
	if !ok {
		return
	}

	comments, err := h.postServ.RemoveComment(c.Request.Context(), userID, postID, c.Param("comment_id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCommentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Comment does not exist"})
		case errors.Is(err, service.ErrNotOwner):
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "User Not Authorised"})
		default:
			h.respondPostError(c, err, "remove comment")
		}
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *PostHandler) postID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid ID"})
		return "", false
	}
	return id, true
}

func (h *PostHandler) respondPostError(c *gin.Context, err error, op string) {
	if errors.Is(err, service.ErrPostNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Post not found"})
		return
	}
	h.logger.Error(op+" failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
}
