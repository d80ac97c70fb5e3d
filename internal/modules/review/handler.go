package review

import (
	"net/http"
	"strconv"

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

func (h *Handler) RegisterRoutes(public, protected, admin *gin.RouterGroup) {
	if public != nil {
		public.GET("/businesses/:id/reviews", h.GetByBusiness)
	}
	if protected != nil {
		protected.POST("/reviews", h.Create)
		protected.POST("/reviews/:id/reply", h.AddOwnerReply)
	}
	if admin != nil {
		admin.PATCH("/reviews/:id/visibility", h.SetVisibility)
	}
}

// Create submits a new review for a business.
// @Summary		Write a review
// @Description	One review per user per business; a second submission is rejected with a conflict.
// @Tags		Reviews
// @Security	BearerAuth
// @Param		request	body	CreateReviewRequest	true	"Review data (business_id, rating, comment)"
// @Success		201	{object}	map[string]interface{} "Review stored"
// @Failure		400	{object}	map[string]interface{} "Validation error"
// @Failure		404	{object}	map[string]interface{} "Business absent or banned"
// @Failure		409	{object}	map[string]interface{} "Already reviewed"
// @Router		/reviews [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rv, err := h.svc.Create(c.Request.Context(), userID, req)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
		case ErrOwnBusiness:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You cannot review your own business")
		case ErrConflict:
			response.Error(c, http.StatusConflict, "CONFLICT", "You have already reviewed this business")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, rv)
}

// GetByBusiness lists a business's visible reviews, newest first.
// @Summary		Business reviews
// @Tags		Reviews
// @Param		id		path	int	true	"Business ID"
// @Param		limit	query	int	false	"Max reviews (default 20)"
// @Param		offset	query	int	false	"Offset"
// @Success		200	{object}	map[string]interface{} "Reviews"
// @Router		/businesses/:id/reviews [GET]
func (h *Handler) GetByBusiness(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || businessID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.svc.GetByBusiness(c.Request.Context(), businessID, limit, offset)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, items)
}

// AddOwnerReply posts the business owner's response to a review.
// @Summary		Reply to a review
// @Tags		Reviews
// @Security	BearerAuth
// @Param		id		path	int					true	"Review ID"
// @Param		request	body	OwnerReplyRequest	true	"Reply text"
// @Success		200	{object}	map[string]interface{} "Reply stored"
// @Failure		403	{object}	map[string]interface{} "Not the business owner"
// @Failure		404	{object}	map[string]interface{} "Review not found"
// @Router		/reviews/:id/reply [POST]
func (h *Handler) AddOwnerReply(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	var req OwnerReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", errs)
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rv, err := h.svc.AddOwnerReply(c.Request.Context(), reviewID, userID, req.Response)
	if err != nil {
		switch err {
		case ErrInvalidRequest:
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid input")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this business")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, rv)
}

// SetVisibility hides or unhides a review (moderation).
// @Summary		Moderate review visibility
// @Tags		Reviews
// @Security	BearerAuth
// @Param		id		path	int					true	"Review ID"
// @Param		request	body	VisibilityRequest	true	"hidden flag"
// @Success		200	{object}	map[string]interface{} "Updated review"
// @Router		/admin/reviews/:id/visibility [PATCH]
func (h *Handler) SetVisibility(c *gin.Context) {
	reviewID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || reviewID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return
	}

	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Hidden == nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	rv, err := h.svc.SetVisibility(c.Request.Context(), reviewID, *req.Hidden)
	if err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, rv)
}
