package image

import (
	"errors"
	"net/http"
	"strconv"

	"reviewtrust/internal/middleware"
	"reviewtrust/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type setPrimaryRequest struct {
	IsPrimary *bool `json:"is_primary" binding:"required"`
}

func (h *Handler) RegisterRoutes(public, owner *gin.RouterGroup, oc *middleware.OwnershipChecker) {
	if public != nil {
		public.GET("/businesses/:id/images", h.ListByBusiness)
	}
	if owner != nil {
		owner.POST("/businesses/:id/images", oc.CheckBusinessOwnership(), h.Upload)
		owner.PATCH("/business-images/:id", oc.CheckImageOwnership(), h.SetPrimary)
		owner.DELETE("/business-images/:id", oc.CheckImageOwnership(), h.Delete)
	}
}

// ListByBusiness returns a business's images.
// @Summary		Business images
// @Tags		Images
// @Param		id	path	int	true	"Business ID"
// @Success		200	{object}	map[string]interface{} "Images"
// @Router		/businesses/:id/images [GET]
func (h *Handler) ListByBusiness(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || businessID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	images, err := h.svc.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		return
	}

	response.Success(c, http.StatusOK, images)
}

// Upload stores a new image for the business.
// @Summary		Upload business image
// @Tags		Images
// @Security	BearerAuth
// @Param		id		path		int		true	"Business ID"
// @Param		file	formData	file	true	"Image file"
// @Success		201	{object}	map[string]interface{} "Stored image"
// @Failure		400	{object}	map[string]interface{} "Bad file"
// @Failure		403	{object}	map[string]interface{} "Not the owner"
// @Router		/businesses/:id/images [POST]
func (h *Handler) Upload(c *gin.Context) {
	businessID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || businessID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
		return
	}

	userID := c.GetInt64("user_id")
	if userID == 0 {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Missing file field")
		return
	}

	img, err := h.svc.Upload(c.Request.Context(), userID, businessID, fileHeader)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrFileTooLarge), errors.Is(err, ErrInvalidMimeType), errors.Is(err, ErrImageLimit):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this business")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusCreated, img)
}

// SetPrimary designates the business cover image.
// @Summary		Set primary image
// @Description	Clears the previous primary flag atomically before setting this one.
// @Tags		Images
// @Security	BearerAuth
// @Param		id		path	int					true	"Image ID"
// @Param		request	body	setPrimaryRequest	true	"is_primary flag"
// @Success		200	{object}	map[string]interface{} "Updated image"
// @Router		/business-images/:id [PATCH]
func (h *Handler) SetPrimary(c *gin.Context) {
	imageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || imageID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID")
		return
	}

	var req setPrimaryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsPrimary == nil {
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid request body")
		return
	}

	userID := c.GetInt64("user_id")
	img, err := h.svc.SetPrimary(c.Request.Context(), imageID, userID, *req.IsPrimary)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this resource")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Image not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, img)
}

// Delete removes the stored file and then the record.
// @Summary		Delete business image
// @Tags		Images
// @Security	BearerAuth
// @Param		id	path	int	true	"Image ID"
// @Success		200	{object}	map[string]interface{} "Deleted"
// @Failure		500	{object}	map[string]interface{} "File removal failed; record kept"
// @Router		/business-images/:id [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	imageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || imageID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID")
		return
	}

	userID := c.GetInt64("user_id")
	if err := h.svc.Delete(c.Request.Context(), imageID, userID); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this resource")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Image not found")
		case errors.Is(err, ErrFileRemoval):
			response.Error(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to delete file from storage")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Internal error")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
