package admin

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"reviewtrust/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// users moderation
	admin.GET("/users", h.ListUsers)
	admin.PATCH("/users/:id/ban", h.BanUser)

	// businesses moderation
	admin.GET("/businesses", h.ListBusinesses)
	admin.PATCH("/businesses/:id/ban", h.BanBusiness)

	// reviews overview
	admin.GET("/reviews", h.ListReviews)

	// category catalog
	admin.GET("/categories", h.ListCategories)
	admin.POST("/categories", h.CreateCategory)
	admin.PUT("/categories/:id", h.UpdateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)
	admin.POST("/categories/:id/subcategories", h.CreateSubcategory)
	admin.DELETE("/subcategories/:id", h.DeleteSubcategory)

	// dashboard
	admin.GET("/statistics", h.Statistics)
	admin.GET("/chart", h.WeeklyChart)
}

// ListUsers returns a paginated user list with role/ban/text filters.
// @Summary		List users
// @Tags		Admin
// @Security	BearerAuth
// @Param		role	query	string	false	"Filter by role"
// @Param		banned	query	bool	false	"Filter by ban flag"
// @Param		q		query	string	false	"Name or email contains"
// @Success		200	{object}	map[string]interface{} "Users"
// @Router		/admin/users [GET]
func (h *Handler) ListUsers(c *gin.Context) {
	var filter UserListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid filter parameters")
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.service.ListUsers(c.Request.Context(), filter, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// BanUser sets or clears a user ban.
// @Summary		Ban or unban user
// @Tags		Admin
// @Security	BearerAuth
// @Param		id		path	int			true	"User ID"
// @Param		request	body	BanRequest	true	"banned flag and optional reason"
// @Success		200	{object}	map[string]interface{} "Updated user"
// @Router		/admin/users/:id/ban [PATCH]
func (h *Handler) BanUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid user ID")
		return
	}

	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Banned == nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	adminID := c.GetInt64("user_id")
	user, err := h.service.BanUser(c.Request.Context(), adminID, userID, *req.Banned, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfBan):
			response.Error(c, http.StatusBadRequest, "SELF_BAN", "You cannot ban your own account")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, user)
}

// ListBusinesses returns all businesses including banned ones.
// @Summary		List businesses
// @Tags		Admin
// @Security	BearerAuth
// @Router		/admin/businesses [GET]
func (h *Handler) ListBusinesses(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.service.ListBusinesses(c.Request.Context(), c.Query("q"), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// BanBusiness sets or clears a business ban. Banned businesses disappear
// from public listings on the next request.
// @Summary		Ban or unban business
// @Tags		Admin
// @Security	BearerAuth
// @Router		/admin/businesses/:id/ban [PATCH]
func (h *Handler) BanBusiness(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || businessID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Banned == nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	if err := h.service.BanBusiness(c.Request.Context(), businessID, *req.Banned); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": businessID, "banned": *req.Banned})
}

// ListReviews returns all reviews, hidden ones included.
// @Summary		List reviews
// @Tags		Admin
// @Security	BearerAuth
// @Router		/admin/reviews [GET]
func (h *Handler) ListReviews(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	result, err := h.service.ListReviews(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, result)
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, categories)
}

// CreateCategory adds a catalog category.
// @Summary		Create category
// @Tags		Admin
// @Security	BearerAuth
// @Router		/admin/categories [POST]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	cat, err := h.service.CreateCategory(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidRequest) {
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Category name is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	cat, err := h.service.UpdateCategory(c.Request.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		case errors.Is(err, ErrInvalidRequest):
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Category name is required")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, cat)
}

// DeleteCategory removes a category with its subcategories and business links.
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
		return
	}

	if err := h.service.DeleteCategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func (h *Handler) CreateSubcategory(c *gin.Context) {
	categoryID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || categoryID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid category ID")
		return
	}

	var req SubcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	sc, err := h.service.CreateSubcategory(c.Request.Context(), categoryID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Category not found")
		case errors.Is(err, ErrInvalidRequest):
			response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Subcategory name is required")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, sc)
}

func (h *Handler) DeleteSubcategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid subcategory ID")
		return
	}

	if err := h.service.DeleteSubcategory(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Subcategory not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Subcategory deleted successfully"})
}

// Statistics returns platform totals for the admin dashboard.
// @Summary		Platform statistics
// @Tags		Admin
// @Security	BearerAuth
// @Router		/admin/statistics [GET]
func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// WeeklyChart returns per-day activity since the most recent Monday.
// @Summary		Weekly activity chart
// @Tags		Admin
// @Security	BearerAuth
// @Router		/admin/chart [GET]
func (h *Handler) WeeklyChart(c *gin.Context) {
	points, err := h.service.WeeklyChart(c.Request.Context(), time.Now())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}
	response.Success(c, http.StatusOK, points)
}
