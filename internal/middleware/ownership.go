package middleware

import (
	"net/http"
	"strconv"

	"reviewtrust/internal/pkg/response"
	"reviewtrust/internal/repository"

	"github.com/gin-gonic/gin"
)

// OwnershipChecker provides middleware to verify resource ownership
type OwnershipChecker struct {
	businessRepo *repository.BusinessRepository
	imageRepo    *repository.ImageRepository
}

func NewOwnershipChecker(
	businessRepo *repository.BusinessRepository,
	imageRepo *repository.ImageRepository,
) *OwnershipChecker {
	return &OwnershipChecker{
		businessRepo: businessRepo,
		imageRepo:    imageRepo,
	}
}

// CheckBusinessOwnership verifies the user owns the business.
// Expects business ID in URL param "id".
func (oc *OwnershipChecker) CheckBusinessOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		businessID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid business ID")
			c.Abort()
			return
		}

		business, err := oc.businessRepo.GetByID(c.Request.Context(), businessID)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
			c.Abort()
			return
		}

		if business.OwnerID != userID {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this business")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CheckImageOwnership verifies the user owns the business that owns the image.
// Expects image ID in URL param "id".
func (oc *OwnershipChecker) CheckImageOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetInt64("user_id")
		if userID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		imageID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid image ID")
			c.Abort()
			return
		}

		image, err := oc.imageRepo.GetByID(c.Request.Context(), imageID)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Image not found")
			c.Abort()
			return
		}

		business, err := oc.businessRepo.GetByID(c.Request.Context(), image.BusinessID)
		if err != nil {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Business not found")
			c.Abort()
			return
		}

		if business.OwnerID != userID {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this resource")
			c.Abort()
			return
		}

		c.Next()
	}
}
