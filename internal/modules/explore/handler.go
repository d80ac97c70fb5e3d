package explore

import (
	"errors"
	"net/http"
	"strconv"

	"reviewtrust/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public *gin.RouterGroup) {
	public.GET("/listings", h.List)
	public.GET("/businesses/:id", h.Detail)
}

// List returns ranked, paginated business summaries.
// @Summary		Browse businesses
// @Description	Filter by name search, category and subcategory; sort by rating, review count or recency.
// @Tags		Explore
// @Param		search		query	string	false	"Case-insensitive name substring"
// @Param		category	query	int		false	"Category ID ('all' or empty for no filter)"
// @Param		subcategory	query	string	false	"Subcategory name, case-insensitive"
// @Param		sort		query	string	false	"rating | reviews | recent (default rating)"
// @Param		page		query	int		false	"Page, default 1"
// @Param		limit		query	int		false	"Page size, default 12"
// @Success		200	{object}	map[string]interface{} "Listing page"
// @Failure		500	{object}	map[string]interface{} "Store failure"
// @Router		/listings [GET]
func (h *Handler) List(c *gin.Context) {
	params := ListParams{
		Search:      c.Query("search"),
		Subcategory: c.Query("subcategory"),
		Sort:        c.Query("sort"),
	}

	// "all" and malformed values mean no category filter.
	if raw := c.Query("category"); raw != "" && raw != "all" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			params.CategoryID = id
		}
	}

	// Malformed paging is normalized to defaults, not rejected.
	params.Page, _ = strconv.Atoi(c.Query("page"))
	params.Limit, _ = strconv.Atoi(c.Query("limit"))

	result, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to load listings")
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Detail returns one business with categories and freshly derived rating.
// @Summary		Business detail
// @Tags		Explore
// @Param		id	path	int	true	"Business ID"
// @Success		200	{object}	map[string]interface{} "Business detail"
// @Failure		404	{object}	map[string]interface{} "Absent or banned"
// @Router		/businesses/:id [GET]
func (h *Handler) Detail(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	detail, err := h.svc.Detail(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to load business details")
		return
	}

	response.Success(c, http.StatusOK, detail)
}
