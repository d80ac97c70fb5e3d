package explore

import (
	"context"
	"errors"
	"sort"

	"reviewtrust/internal/domain"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("not_found")

type BusinessSource interface {
	SearchActive(ctx context.Context, name string) ([]domain.Business, error)
	GetActiveByID(ctx context.Context, id int64) (*domain.Business, error)
}

type SubcategorySource interface {
	SubcategoryIDByName(ctx context.Context, name string) (int64, error)
	BusinessIDsBySubcategory(ctx context.Context, subcategoryID int64) ([]int64, error)
}

type ReviewSource interface {
	RatingsByRevieweeIDs(ctx context.Context, businessIDs []int64) ([]domain.ReviewRating, error)
}

type ImageSource interface {
	PrimaryURLsByBusinessIDs(ctx context.Context, businessIDs []int64) (map[int64]string, error)
}

// Service assembles ranked, paginated business listings. It is stateless
// between requests: every call recomputes rating aggregates from current
// review rows, so banned businesses and new reviews show up immediately.
type Service struct {
	businesses    BusinessSource
	subcategories SubcategorySource
	reviews       ReviewSource
	images        ImageSource
}

func NewService(
	businesses BusinessSource,
	subcategories SubcategorySource,
	reviews ReviewSource,
	images ImageSource,
) *Service {
	return &Service{
		businesses:    businesses,
		subcategories: subcategories,
		reviews:       reviews,
		images:        images,
	}
}

func normalizeParams(p ListParams) ListParams {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	switch p.Sort {
	case SortRating, SortReviews, SortRecent:
	default:
		p.Sort = SortRating
	}
	return p
}

// List runs the full pipeline: fetch candidates, filter by category and
// subcategory, aggregate review stats in one batch, sort, paginate, then
// fetch primary images for the page only.
func (s *Service) List(ctx context.Context, p ListParams) (*ListResult, error) {
	p = normalizeParams(p)

	businesses, err := s.businesses.SearchActive(ctx, p.Search)
	if err != nil {
		return nil, err
	}

	filtered := businesses
	if p.CategoryID > 0 {
		filtered = filterByCategory(filtered, p.CategoryID)
	}

	if p.Subcategory != "" {
		filtered, err = s.filterBySubcategory(ctx, filtered, p.Subcategory)
		if err != nil {
			return nil, err
		}
	}

	businessIDs := make([]int64, 0, len(filtered))
	for _, b := range filtered {
		businessIDs = append(businessIDs, b.ID)
	}

	pairs, err := s.reviews.RatingsByRevieweeIDs(ctx, businessIDs)
	if err != nil {
		return nil, err
	}
	stats := AccumulateRatingStats(pairs)

	sortBusinesses(filtered, stats, p.Sort)

	totalCount := len(filtered)
	totalPages := (totalCount + p.Limit - 1) / p.Limit

	start := (p.Page - 1) * p.Limit
	if start > totalCount {
		start = totalCount
	}
	end := start + p.Limit
	if end > totalCount {
		end = totalCount
	}
	page := filtered[start:end]

	// Image lookup is bounded by page size, not by the full result set.
	pageIDs := make([]int64, 0, len(page))
	for _, b := range page {
		pageIDs = append(pageIDs, b.ID)
	}
	imageURLs, err := s.images.PrimaryURLsByBusinessIDs(ctx, pageIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ListingItem, 0, len(page))
	for _, b := range page {
		st := stats[b.ID]

		category := defaultCategoryLabel
		if len(b.Categories) > 0 {
			category = b.Categories[0].Name
		}

		imageURL := imageURLs[b.ID]
		if imageURL == "" {
			imageURL = placeholderImageURL
		}

		items = append(items, ListingItem{
			ID:          b.ID,
			Name:        b.Name,
			Location:    b.Location,
			Description: b.Description,
			Rating:      st.Rounded(),
			ReviewCount: st.Count,
			ImageURL:    imageURL,
			Category:    category,
		})
	}

	return &ListResult{
		Items: items,
		Pagination: Pagination{
			CurrentPage: p.Page,
			TotalPages:  totalPages,
			TotalCount:  totalCount,
			HasNext:     p.Page < totalPages,
			HasPrev:     p.Page > 1,
		},
	}, nil
}

// Detail fetches one business with its links and freshly computed rating.
// Banned and missing are indistinguishable: both are ErrNotFound.
func (s *Service) Detail(ctx context.Context, id int64) (*BusinessDetail, error) {
	b, err := s.businesses.GetActiveByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	pairs, err := s.reviews.RatingsByRevieweeIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	st := AccumulateRatingStats(pairs)[id]

	categories := b.Categories
	if categories == nil {
		categories = []domain.Category{}
	}
	subcategories := b.Subcategories
	if subcategories == nil {
		subcategories = []domain.Subcategory{}
	}

	return &BusinessDetail{
		ID:            b.ID,
		Name:          b.Name,
		Location:      b.Location,
		Address:       b.Address,
		Phone:         b.Phone,
		Website:       b.Website,
		BusinessHours: b.BusinessHours,
		Description:   b.Description,
		Rating:        st.Rounded(),
		ReviewCount:   st.Count,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		Categories:    categories,
		Subcategories: subcategories,
	}, nil
}

func filterByCategory(businesses []domain.Business, categoryID int64) []domain.Business {
	out := make([]domain.Business, 0, len(businesses))
	for _, b := range businesses {
		for _, cat := range b.Categories {
			if cat.ID == categoryID {
				out = append(out, b)
				break
			}
		}
	}
	return out
}

// filterBySubcategory resolves the name to a subcategory; no match empties the
// result set instead of failing.
func (s *Service) filterBySubcategory(ctx context.Context, businesses []domain.Business, name string) ([]domain.Business, error) {
	subcategoryID, err := s.subcategories.SubcategoryIDByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	linkedIDs, err := s.subcategories.BusinessIDsBySubcategory(ctx, subcategoryID)
	if err != nil {
		return nil, err
	}

	linked := make(map[int64]bool, len(linkedIDs))
	for _, id := range linkedIDs {
		linked[id] = true
	}

	out := make([]domain.Business, 0, len(businesses))
	for _, b := range businesses {
		if linked[b.ID] {
			out = append(out, b)
		}
	}
	return out, nil
}

// sortBusinesses orders in place. Stable, so equal keys keep their fetch
// order and the full pipeline stays deterministic for a fixed data snapshot.
func sortBusinesses(businesses []domain.Business, stats map[int64]RatingStats, sortKey string) {
	sort.SliceStable(businesses, func(i, j int) bool {
		si, sj := stats[businesses[i].ID], stats[businesses[j].ID]

		switch sortKey {
		case SortReviews:
			return si.Count > sj.Count
		case SortRecent:
			// Zero timestamps sort as oldest.
			return businesses[i].CreatedAt.After(businesses[j].CreatedAt)
		default:
			ai, aj := si.Average(), sj.Average()
			if ai != aj {
				return ai > aj
			}
			return si.Count > sj.Count
		}
	})
}
