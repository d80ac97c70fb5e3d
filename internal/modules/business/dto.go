package business

import "reviewtrust/internal/domain"

type UpdateBusinessRequest struct {
	Name          string `json:"name" validate:"required"`
	Location      string `json:"location"`
	Description   string `json:"description"`
	Website       string `json:"website"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	BusinessHours string `json:"business_hours"`
}

type ReplaceCategoriesRequest struct {
	CategoryIDs    []int64 `json:"category_ids"`
	SubcategoryIDs []int64 `json:"subcategory_ids"`
}

// OwnerDashboard is the owner's view of their own business: profile plus the
// same derived rating the public listing shows.
type OwnerDashboard struct {
	Business    *domain.Business `json:"business"`
	Rating      float64          `json:"rating"`
	ReviewCount int              `json:"review_count"`
}
