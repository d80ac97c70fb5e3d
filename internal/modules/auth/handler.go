package auth

import (
	"net/http"

	"reviewtrust/internal/pkg/response"
	"reviewtrust/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	if public != nil {
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
	}
	if protected != nil {
		protected.GET("/auth/me", h.Me)
	}
}

// Register creates a user or business account.
// @Summary		Register
// @Tags		Auth
// @Param		request	body	RegisterRequest	true	"Account data; business role also needs business_name"
// @Success		201	{object}	map[string]interface{} "Created account"
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		409	{object}	map[string]interface{} "Email already registered"
// @Router		/auth/register [POST]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrEmailTaken:
			response.Error(c, http.StatusConflict, "CONFLICT", "Email is already registered")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":        user,
		"redirect_to": ResolveLandingRoute(user.Role),
	})
}

// Login authenticates a user and returns a bearer token.
// @Summary		Login
// @Tags		Auth
// @Param		request	body	LoginRequest	true	"Credentials"
// @Success		200	{object}	map[string]interface{} "Token, user and landing route"
// @Failure		401	{object}	map[string]interface{} "Invalid credentials"
// @Failure		403	{object}	map[string]interface{} "Account banned"
// @Router		/auth/login [POST]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid email or password")
		case ErrUserBanned:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Account is banned")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Me returns the authenticated user.
// @Summary		Current user
// @Tags		Auth
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{} "User"
// @Router		/auth/me [GET]
func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	user, err := h.svc.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, user)
}
