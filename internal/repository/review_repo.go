package repository

import (
	"context"
	"time"

	"reviewtrust/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).First(&rv, id).Error; err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) GetByReviewee(ctx context.Context, businessID int64, limit, offset int) ([]domain.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	var reviews []domain.Review
	err := r.db.WithContext(ctx).
		Where("reviewee_id = ? AND is_hidden = ?", businessID, false).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

// RatingsByRevieweeIDs fetches (reviewee_id, rating) pairs for the given
// businesses in one query. Hidden reviews do not count toward ratings.
func (r *ReviewRepository) RatingsByRevieweeIDs(ctx context.Context, businessIDs []int64) ([]domain.ReviewRating, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}

	var pairs []domain.ReviewRating
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("reviewee_id", "rating").
		Where("reviewee_id IN ? AND is_hidden = ?", businessIDs, false).
		Scan(&pairs).Error
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

func (r *ReviewRepository) SetOwnerResponse(ctx context.Context, reviewID int64, responseText string) (*domain.Review, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", reviewID).
		Updates(map[string]any{
			"owner_response": responseText,
			"responded_at":   now,
			"updated_at":     now,
		})
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, reviewID)
}

func (r *ReviewRepository) SetHidden(ctx context.Context, reviewID int64, hidden bool) (*domain.Review, error) {
	tx := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("id = ?", reviewID).
		Update("is_hidden", hidden)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetByID(ctx, reviewID)
}

func (r *ReviewRepository) ListAll(ctx context.Context, limit, offset int) ([]domain.Review, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Review{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []domain.Review
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	return reviews, total, err
}

func (r *ReviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Review{}).Count(&count).Error
	return count, err
}

func (r *ReviewRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Count(&count).Error
	return count, err
}

// CreatedDatesBetween returns created_at timestamps in [from, to).
func (r *ReviewRepository) CreatedDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Where("created_at >= ? AND created_at < ?", from, to).
		Pluck("created_at", &dates).Error
	return dates, err
}

func (r *ReviewRepository) DB() *gorm.DB {
	return r.db
}
