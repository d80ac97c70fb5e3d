package business

import (
	"context"
	"errors"
	"strings"

	"reviewtrust/internal/domain"
	"reviewtrust/internal/modules/explore"
	"reviewtrust/internal/repository"

	"gorm.io/gorm"
)

type ReviewSource interface {
	RatingsByRevieweeIDs(ctx context.Context, businessIDs []int64) ([]domain.ReviewRating, error)
}

type Service struct {
	businesses *repository.BusinessRepository
	categories *repository.CategoryRepository
	reviews    ReviewSource
}

func NewService(
	businesses *repository.BusinessRepository,
	categories *repository.CategoryRepository,
	reviews ReviewSource,
) *Service {
	return &Service{businesses: businesses, categories: categories, reviews: reviews}
}

// GetMine returns the caller's business with its freshly derived rating.
func (s *Service) GetMine(ctx context.Context, ownerID int64) (*OwnerDashboard, error) {
	b, err := s.businesses.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	pairs, err := s.reviews.RatingsByRevieweeIDs(ctx, []int64{b.ID})
	if err != nil {
		return nil, err
	}
	st := explore.AccumulateRatingStats(pairs)[b.ID]

	return &OwnerDashboard{
		Business:    b,
		Rating:      st.Rounded(),
		ReviewCount: st.Count,
	}, nil
}

// Update rewrites the business profile. Ownership is checked here as well as
// in middleware so the service stays safe on its own.
func (s *Service) Update(ctx context.Context, userID, businessID int64, req UpdateBusinessRequest) (*domain.Business, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidRequest
	}

	b, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.OwnerID != userID {
		return nil, ErrForbidden
	}

	b.Name = strings.TrimSpace(req.Name)
	b.Location = req.Location
	b.Description = req.Description
	b.Website = req.Website
	b.Phone = req.Phone
	b.Address = req.Address
	b.BusinessHours = req.BusinessHours

	if err := s.businesses.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ReplaceCategories swaps every category and subcategory link. All referenced
// ids must exist; unknown ids abort the whole replacement.
func (s *Service) ReplaceCategories(ctx context.Context, userID, businessID int64, req ReplaceCategoriesRequest) (*domain.Business, error) {
	b, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.OwnerID != userID {
		return nil, ErrForbidden
	}

	categories, err := s.categories.GetByIDs(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(req.CategoryIDs) {
		return nil, ErrUnknownLink
	}

	subcategories, err := s.categories.GetSubcategoriesByIDs(ctx, req.SubcategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(subcategories) != len(req.SubcategoryIDs) {
		return nil, ErrUnknownLink
	}

	if err := s.businesses.ReplaceCategories(ctx, b, categories, subcategories); err != nil {
		return nil, err
	}

	b.Categories = categories
	b.Subcategories = subcategories
	return b, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]repository.CategoryWithSubcategories, error) {
	return s.categories.List(ctx)
}
