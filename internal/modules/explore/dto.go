package explore

import (
	"time"

	"reviewtrust/internal/domain"
)

const (
	SortRating  = "rating"
	SortReviews = "reviews"
	SortRecent  = "recent"

	DefaultPage  = 1
	DefaultLimit = 12

	placeholderImageURL  = "/placeholder-service-image.svg"
	defaultCategoryLabel = "Service"
)

// ListParams are the listing filters. Zero values mean "no filter"; Page,
// Limit and Sort are normalized to defaults rather than rejected.
type ListParams struct {
	Search      string
	CategoryID  int64
	Subcategory string
	Sort        string
	Page        int
	Limit       int
}

type ListingItem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	ImageURL    string  `json:"imageUrl"`
	Category    string  `json:"category"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

type ListResult struct {
	Items      []ListingItem `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

type BusinessDetail struct {
	ID            int64                `json:"id"`
	Name          string               `json:"name"`
	Location      string               `json:"location"`
	Address       string               `json:"address,omitempty"`
	Phone         string               `json:"phone,omitempty"`
	Website       string               `json:"website,omitempty"`
	BusinessHours string               `json:"businessHours,omitempty"`
	Description   string               `json:"description"`
	Rating        float64              `json:"rating"`
	ReviewCount   int                  `json:"reviewCount"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
	Categories    []domain.Category    `json:"categories"`
	Subcategories []domain.Subcategory `json:"subcategories"`
}
