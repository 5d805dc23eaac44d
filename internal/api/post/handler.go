package post

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blogcraft/blogcraft/domain"
	"github.com/blogcraft/blogcraft/internal/api"
	apperrors "github.com/blogcraft/blogcraft/internal/errors"
	"github.com/blogcraft/blogcraft/internal/middleware"
	"github.com/blogcraft/blogcraft/internal/repository/interfaces"
	"github.com/blogcraft/blogcraft/internal/service"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 50
)

// Handler exposes the post endpoints.
type Handler struct {
	posts *service.PostService
}

// NewHandler creates the post handler.
func NewHandler(posts *service.PostService) *Handler {
	return &Handler{posts: posts}
}

// Register mounts the post routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	posts := r.Group("/api/posts")
	posts.GET("", h.list)
	posts.GET("/:id", h.get)

	authed := posts.Group("", middleware.Auth())
	authed.GET("/my-posts", h.myPosts)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.DELETE("/:id", h.delete)
	authed.POST("/:id/like", h.toggleLike)
	authed.POST("/:id/comments", h.addComment)
	authed.DELETE("/:id/comments/:commentId", h.deleteComment)
}

// pagination is the list metadata clients page with.
type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func paginate(page, limit, total int) pagination {
	pages := (total + limit - 1) / limit
	if pages < 1 {
		pages = 1
	}
	return pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = defaultPage
	}
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func (h *Handler) list(c *gin.Context) {
	page, limit := pageParams(c)
	q := interfaces.PostQuery{
		Search:        c.Query("search"),
		Tag:           c.Query("tag"),
		PublishedOnly: c.DefaultQuery("published", "true") != "false",
		Page:          page,
		Limit:         limit,
	}

	posts, total, err := h.posts.List(c.Request.Context(), q)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	apperrors.HandleSuccess(c, http.StatusOK, gin.H{
		"posts":      posts,
		"pagination": paginate(page, limit, total),
	}, "")
}

func (h *Handler) get(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	apperrors.HandleSuccess(c, http.StatusOK, post, "")
}

func (h *Handler) myPosts(c *gin.Context) {
	all, err := h.posts.MyPosts(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	page, limit := pageParams(c)
	start := (page - 1) * limit
	if start > len(all) {
		start = len(all)
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}

	apperrors.HandleSuccess(c, http.StatusOK, gin.H{
		"posts":      all[start:end],
		"pagination": paginate(page, limit, len(all)),
	}, "")
}

// postRequest is the create/update body. Tags arrive comma-separated.
type postRequest struct {
	Title     string `json:"title" binding:"required,min=5,max=200"`
	Content   string `json:"content" binding:"required,min=10"`
	Excerpt   string `json:"excerpt" binding:"max=500"`
	ImageURL  string `json:"imageUrl"`
	Tags      string `json:"tags"`
	Published bool   `json:"published"`
}

func (r postRequest) toInput() service.PostInput {
	var tags []string
	if r.Tags != "" {
		tags = strings.Split(r.Tags, ",")
	}
	return service.PostInput{
		Title:     r.Title,
		Content:   r.Content,
		Excerpt:   r.Excerpt,
		ImageURL:  r.ImageURL,
		Tags:      tags,
		Published: r.Published,
	}
}

func (h *Handler) create(c *gin.Context) {
	var req postRequest
	if err := api.BindJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), middleware.CurrentUserID(c), req.toInput())
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	apperrors.HandleSuccess(c, http.StatusCreated, post, "post created")
}

func (h *Handler) update(c *gin.Context) {
	var req postRequest
	if err := api.BindJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	post, err := h.posts.Update(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.toInput())
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	apperrors.HandleSuccess(c, http.StatusOK, post, "post updated")
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id")); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	apperrors.HandleSuccess(c, http.StatusOK, nil, "post deleted")
}

func (h *Handler) toggleLike(c *gin.Context) {
	postID := c.Param("id")
	liked, count, err := h.posts.ToggleLike(c.Request.Context(), middleware.CurrentUserID(c), postID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	apperrors.HandleSuccess(c, http.StatusOK, gin.H{
		"postId":    postID,
		"likeCount": count,
		"isLiked":   liked,
	}, "")
}

type commentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) addComment(c *gin.Context) {
	var req commentRequest
	if err := api.BindJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	comment, err := h.posts.AddComment(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), req.Content)
	if err != nil {
		if err == domain.ErrEmptyComment {
			apperrors.HandleError(c, apperrors.Validation(map[string]string{"content": "is required"}))
			return
		}
		apperrors.HandleError(c, err)
		return
	}
	apperrors.HandleSuccess(c, http.StatusCreated, comment, "comment added")
}

func (h *Handler) deleteComment(c *gin.Context) {
	err := h.posts.DeleteComment(c.Request.Context(),
		middleware.CurrentUserID(c), c.Param("id"), c.Param("commentId"))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	apperrors.HandleSuccess(c, http.StatusOK, nil, "comment deleted")
}
