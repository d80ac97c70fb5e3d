package repository

import (
	"context"
	"strings"

	"reviewtrust/internal/domain"

	"gorm.io/gorm"
)

type BusinessRepository struct {
	db *gorm.DB
}

func NewBusinessRepository(db *gorm.DB) *BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) Create(ctx context.Context, b *domain.Business) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BusinessRepository) Update(ctx context.Context, b *domain.Business) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// GetByID fetches a business regardless of ban state (owner and admin paths).
func (r *BusinessRepository) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	var b domain.Business
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// GetActiveByID fetches a non-banned business with its category and
// subcategory links. Banned and missing are both gorm.ErrRecordNotFound.
func (r *BusinessRepository) GetActiveByID(ctx context.Context, id int64) (*domain.Business, error) {
	var b domain.Business
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_banned = ?", id, false).
		Preload("Categories").
		Preload("Subcategories").
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BusinessRepository) GetByOwnerID(ctx context.Context, ownerID int64) (*domain.Business, error) {
	var b domain.Business
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Preload("Categories").
		Preload("Subcategories").
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// SearchActive returns non-banned businesses with their category links,
// optionally narrowed by a case-insensitive substring of the display name.
func (r *BusinessRepository) SearchActive(ctx context.Context, name string) ([]domain.Business, error) {
	q := r.db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("is_banned = ?", false)

	if s := strings.TrimSpace(name); s != "" {
		q = q.Where("LOWER(business_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var businesses []domain.Business
	if err := q.Preload("Categories").Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

// ListAll returns businesses for the admin console, banned ones included.
func (r *BusinessRepository) ListAll(ctx context.Context, query string, limit, offset int) ([]domain.Business, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Business{})

	if s := strings.TrimSpace(query); s != "" {
		q = q.Where("LOWER(business_name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var businesses []domain.Business
	err := q.Preload("Categories").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&businesses).Error
	if err != nil {
		return nil, 0, err
	}
	return businesses, total, nil
}

func (r *BusinessRepository) SetBanned(ctx context.Context, id int64, banned bool) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("id = ?", id).
		Update("is_banned", banned)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ReplaceCategories swaps the business's category and subcategory links in one
// transaction.
func (r *BusinessRepository) ReplaceCategories(ctx context.Context, b *domain.Business, categories []domain.Category, subcategories []domain.Subcategory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(b).Association("Categories").Replace(categories); err != nil {
			return err
		}
		return tx.Model(b).Association("Subcategories").Replace(subcategories)
	})
}

func (r *BusinessRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Business{}).Count(&count).Error
	return count, err
}

func (r *BusinessRepository) CountBanned(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Business{}).
		Where("is_banned = ?", true).
		Count(&count).Error
	return count, err
}

func (r *BusinessRepository) DB() *gorm.DB {
	return r.db
}
