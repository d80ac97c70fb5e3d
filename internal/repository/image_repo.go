package repository

import (
	"context"

	"reviewtrust/internal/domain"

	"gorm.io/gorm"
)

type ImageRepository struct {
	db *gorm.DB
}

func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, img *domain.BusinessImage) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *ImageRepository) GetByID(ctx context.Context, id int64) (*domain.BusinessImage, error) {
	var img domain.BusinessImage
	if err := r.db.WithContext(ctx).First(&img, id).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *ImageRepository) ListByBusiness(ctx context.Context, businessID int64) ([]domain.BusinessImage, error) {
	var images []domain.BusinessImage
	err := r.db.WithContext(ctx).
		Where("business_id = ?", businessID).
		Order("created_at ASC").
		Find(&images).Error
	return images, err
}

func (r *ImageRepository) CountByBusiness(ctx context.Context, businessID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.BusinessImage{}).
		Where("business_id = ?", businessID).
		Count(&count).Error
	return count, err
}

// PrimaryURLsByBusinessIDs fetches primary image URLs for the given businesses
// in one query, keyed by business id.
func (r *ImageRepository) PrimaryURLsByBusinessIDs(ctx context.Context, businessIDs []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(businessIDs))
	if len(businessIDs) == 0 {
		return out, nil
	}

	var images []domain.BusinessImage
	err := r.db.WithContext(ctx).
		Select("business_id", "image_url").
		Where("business_id IN ? AND is_primary = ?", businessIDs, true).
		Find(&images).Error
	if err != nil {
		return nil, err
	}

	for _, img := range images {
		out[img.BusinessID] = img.ImageURL
	}
	return out, nil
}

// SetPrimary clears every other primary flag for the image's business before
// setting this one, inside a single transaction.
func (r *ImageRepository) SetPrimary(ctx context.Context, imageID, businessID int64, isPrimary bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isPrimary {
			if err := tx.Model(&domain.BusinessImage{}).
				Where("business_id = ? AND id <> ?", businessID, imageID).
				Update("is_primary", false).Error; err != nil {
				return err
			}
		}

		res := tx.Model(&domain.BusinessImage{}).
			Where("id = ?", imageID).
			Update("is_primary", isPrimary)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.BusinessImage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ImageRepository) DB() *gorm.DB {
	return r.db
}
