package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blogcraft/blogcraft/internal/api"
	apperrors "github.com/blogcraft/blogcraft/internal/errors"
	"github.com/blogcraft/blogcraft/internal/middleware"
	"github.com/blogcraft/blogcraft/internal/service"
)

// Handler exposes the auth endpoints.
type Handler struct {
	users *service.UserService
}

// NewHandler creates the auth handler.
func NewHandler(users *service.UserService) *Handler {
	return &Handler{users: users}
}

// Register mounts the auth routes on the router.
func (h *Handler) Register(r gin.IRouter) {
	auth := r.Group("/api/auth")
	auth.POST("/register", h.register)
	auth.POST("/login", h.login)
	auth.GET("/me", middleware.Auth(), h.me)
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := api.BindJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	user, token, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	apperrors.HandleSuccess(c, http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	}, "registered")
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := api.BindJSON(c, &req); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	apperrors.HandleSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	}, "logged in")
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	apperrors.HandleSuccess(c, http.StatusOK, user, "")
}
