package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"doclearn-backend/internal/shared/server/middleware"
	"doclearn-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches auth and profile routes. The /auth/* routes are
// open; /logout and /me require an authenticated session.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.POST("/logout", h.logout)
	rg.GET("/me", h.me)
}

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Register(c.Request.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "email and a password of at least 8 characters are required", nil)
		case errors.Is(err, ErrEmailExists):
			respond.Error(c, http.StatusConflict, "email_exists", "email already registered", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "registration failed", nil)
		}
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	result, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "email and password are required", nil)
		case errors.Is(err, ErrInvalidCredential):
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "login failed", nil)
		}
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"token": result.Token,
		"user":  result.User,
	})
}

func (h *Handler) logout(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "guests have no session to end", nil)
		return
	}
	h.Svc.Logout(middleware.UserIDFromContext(c))
	respond.JSON(c, http.StatusOK, gin.H{"status": "logged_out"})
}

func (h *Handler) me(c *gin.Context) {
	if middleware.IsGuestFromContext(c) {
		respond.JSON(c, http.StatusOK, gin.H{
			"userId":  middleware.UserIDFromContext(c),
			"isGuest": true,
		})
		return
	}

	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Token is valid but the profile row is gone; answer from claims.
			respond.JSON(c, http.StatusOK, gin.H{
				"userId":  middleware.UserIDFromContext(c),
				"email":   middleware.UserEmailFromContext(c),
				"name":    middleware.UserNameFromContext(c),
				"isGuest": false,
			})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load profile", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"userId":  user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"isGuest": false,
	})
}
