package repository

import (
	"context"
	"strings"

	"reviewtrust/internal/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

type CategoryWithSubcategories struct {
	domain.Category
	Subcategories []domain.Subcategory `json:"subcategories"`
}

func (r *CategoryRepository) List(ctx context.Context) ([]CategoryWithSubcategories, error) {
	var categories []domain.Category
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	var subcategories []domain.Subcategory
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&subcategories).Error; err != nil {
		return nil, err
	}

	byCategory := make(map[int64][]domain.Subcategory, len(categories))
	for _, sc := range subcategories {
		byCategory[sc.CategoryID] = append(byCategory[sc.CategoryID], sc)
	}

	out := make([]CategoryWithSubcategories, 0, len(categories))
	for _, cat := range categories {
		out = append(out, CategoryWithSubcategories{
			Category:      cat,
			Subcategories: byCategory[cat.ID],
		})
	}
	return out, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var cat domain.Category
	if err := r.db.WithContext(ctx).First(&cat, id).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByIDs(ctx context.Context, ids []int64) ([]domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []domain.Category
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Create(ctx context.Context, cat *domain.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

func (r *CategoryRepository) Update(ctx context.Context, cat *domain.Category) error {
	tx := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ?", cat.ID).
		Updates(map[string]any{
			"name":     cat.Name,
			"icon":     cat.Icon,
			"bg_color": cat.BgColor,
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the category together with its subcategories and any
// business links pointing at either.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var subcategoryIDs []int64
		if err := tx.Model(&domain.Subcategory{}).
			Where("category_id = ?", id).
			Pluck("id", &subcategoryIDs).Error; err != nil {
			return err
		}

		if len(subcategoryIDs) > 0 {
			if err := tx.Table("business_subcategories").
				Where("subcategory_id IN ?", subcategoryIDs).
				Delete(nil).Error; err != nil {
				return err
			}
			if err := tx.Where("category_id = ?", id).
				Delete(&domain.Subcategory{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Table("business_categories").
			Where("category_id = ?", id).
			Delete(nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&domain.Category{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *CategoryRepository) CreateSubcategory(ctx context.Context, sc *domain.Subcategory) error {
	return r.db.WithContext(ctx).Create(sc).Error
}

func (r *CategoryRepository) DeleteSubcategory(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("business_subcategories").
			Where("subcategory_id = ?", id).
			Delete(nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&domain.Subcategory{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *CategoryRepository) GetSubcategoriesByIDs(ctx context.Context, ids []int64) ([]domain.Subcategory, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var subcategories []domain.Subcategory
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&subcategories).Error
	return subcategories, err
}

// SubcategoryIDByName resolves a subcategory by case-insensitive name match.
// Returns gorm.ErrRecordNotFound when no subcategory matches.
func (r *CategoryRepository) SubcategoryIDByName(ctx context.Context, name string) (int64, error) {
	var sc domain.Subcategory
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&sc).Error
	if err != nil {
		return 0, err
	}
	return sc.ID, nil
}

// BusinessIDsBySubcategory returns ids of businesses linked to the subcategory.
func (r *CategoryRepository) BusinessIDsBySubcategory(ctx context.Context, subcategoryID int64) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Table("business_subcategories").
		Where("subcategory_id = ?", subcategoryID).
		Pluck("business_id", &ids).Error
	return ids, err
}

func (r *CategoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Category{}).Count(&count).Error
	return count, err
}

func (r *CategoryRepository) DB() *gorm.DB {
	return r.db
}
