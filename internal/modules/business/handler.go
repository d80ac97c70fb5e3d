package business

import (
	"net/http"
	"strconv"

	"reviewtrust/internal/middleware"
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

func (h *Handler) RegisterRoutes(public, owner *gin.RouterGroup, oc *middleware.OwnershipChecker) {
	if public != nil {
		public.GET("/categories", h.ListCategories)
	}
	if owner != nil {
		owner.GET("/business/mine", h.GetMine)
		owner.PUT("/businesses/:id", oc.CheckBusinessOwnership(), h.Update)
		owner.PUT("/businesses/:id/categories", oc.CheckBusinessOwnership(), h.ReplaceCategories)
	}
}

// ListCategories returns every category with its subcategories.
// @Summary		Category catalog
// @Tags		Businesses
// @Success		200	{object}	map[string]interface{} "Categories"
// @Router		/categories [GET]
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// GetMine returns the caller's business with derived rating.
// @Summary		Own business dashboard
// @Tags		Businesses
// @Security	BearerAuth
// @Success		200	{object}	map[string]interface{} "Business with stats"
// @Failure		404	{object}	map[string]interface{} "No business for this account"
// @Router		/business/mine [GET]
func (h *Handler) GetMine(c *gin.Context) {
	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	dashboard, err := h.svc.GetMine(c.Request.Context(), userID)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "No business registered for this account")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, dashboard)
}

// Update rewrites the business profile.
// @Summary		Update business profile
// @Tags		Businesses
// @Security	BearerAuth
// @Param		id		path	int						true	"Business ID"
// @Param		request	body	UpdateBusinessRequest	true	"Profile fields"
// @Success		200	{object}	map[string]interface{} "Updated business"
// @Failure		403	{object}	map[string]interface{} "Not the owner"
// @Router		/businesses/:id [PUT]
func (h *Handler) Update(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || businessID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	userID := c.GetInt64("user_id")
	b, err := h.svc.Update(c.Request.Context(), userID, businessID, req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this business")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, b)
}

// ReplaceCategories swaps the category/subcategory links.
// @Summary		Set business categories
// @Tags		Businesses
// @Security	BearerAuth
// @Param		id		path	int							true	"Business ID"
// @Param		request	body	ReplaceCategoriesRequest	true	"Link ids"
// @Success		200	{object}	map[string]interface{} "Updated business"
// @Router		/businesses/:id/categories [PUT]
func (h *Handler) ReplaceCategories(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || businessID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	var req ReplaceCategoriesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	b, err := h.svc.ReplaceCategories(c.Request.Context(), userID, businessID, req)
	if err != nil {
		switch err {
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this business")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
		case ErrUnknownLink:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Unknown category or subcategory")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, b)
}
