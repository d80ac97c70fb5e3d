package review

import (
	"context"
	"errors"
	"strings"

	"reviewtrust/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type ReviewStore interface {
	Create(ctx context.Context, rv *domain.Review) error
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	GetByReviewee(ctx context.Context, businessID int64, limit, offset int) ([]domain.Review, error)
	SetOwnerResponse(ctx context.Context, reviewID int64, responseText string) (*domain.Review, error)
	SetHidden(ctx context.Context, reviewID int64, hidden bool) (*domain.Review, error)
}

type BusinessGate interface {
	GetActiveByID(ctx context.Context, id int64) (*domain.Business, error)
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

type Service struct {
	reviews    ReviewStore
	businesses BusinessGate
}

func NewService(reviews ReviewStore, businesses BusinessGate) *Service {
	return &Service{reviews: reviews, businesses: businesses}
}

// Create submits a review. Uniqueness of the (reviewer, reviewee) pair is the
// store's job: we insert and translate the constraint violation, instead of a
// race-prone read-then-write check.
func (s *Service) Create(ctx context.Context, reviewerID int64, req CreateReviewRequest) (*domain.Review, error) {
	if reviewerID <= 0 || req.BusinessID <= 0 || req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	business, err := s.businesses.GetActiveByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if business.OwnerID == reviewerID {
		return nil, ErrOwnBusiness
	}

	rv := &domain.Review{
		RevieweeID: req.BusinessID,
		ReviewerID: reviewerID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}

	if err := s.reviews.Create(ctx, rv); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}
	return rv, nil
}

func (s *Service) GetByBusiness(ctx context.Context, businessID int64, limit, offset int) ([]domain.Review, error) {
	if businessID <= 0 {
		return nil, ErrInvalidRequest
	}

	if _, err := s.businesses.GetActiveByID(ctx, businessID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.reviews.GetByReviewee(ctx, businessID, limit, offset)
}

// AddOwnerReply attaches the business owner's response to a review.
func (s *Service) AddOwnerReply(ctx context.Context, reviewID, userID int64, responseText string) (*domain.Review, error) {
	if reviewID <= 0 || userID <= 0 || strings.TrimSpace(responseText) == "" {
		return nil, ErrInvalidRequest
	}

	rv, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	business, err := s.businesses.GetByID(ctx, rv.RevieweeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if business.OwnerID != userID {
		return nil, ErrForbidden
	}

	updated, err := s.reviews.SetOwnerResponse(ctx, reviewID, responseText)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// SetVisibility hides or unhides a review (admin moderation).
func (s *Service) SetVisibility(ctx context.Context, reviewID int64, hidden bool) (*domain.Review, error) {
	if reviewID <= 0 {
		return nil, ErrInvalidRequest
	}

	updated, err := s.reviews.SetHidden(ctx, reviewID, hidden)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

// isUniqueViolation recognizes the store's uniqueness breach on both backends:
// a typed pgconn error on PostgreSQL, a message match on SQLite.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	msg := err.Error()
	return strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
