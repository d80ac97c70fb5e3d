package repository

import (
	"context"
	"strings"
	"time"

	"reviewtrust/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(ctx context.Context, u *domain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

// UserFilter narrows admin user listings. Zero values mean no filter.
type UserFilter struct {
	Role   string
	Banned *bool
	Query  string
}

func (r *UserRepository) ListAll(ctx context.Context, f UserFilter, limit, offset int) ([]domain.User, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.User{})

	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.Banned != nil {
		q = q.Where("is_banned = ?", *f.Banned)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error
	return users, total, err
}

func (r *UserRepository) SetBanned(ctx context.Context, id int64, banned bool, reason string) error {
	res := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_banned": banned, "ban_reason": reason})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&count).Error
	return count, err
}

// RegistrationsBetween returns (role, created_at) pairs for accounts created
// in [from, to). Bucketing by day happens in the caller to stay portable
// across drivers.
func (r *UserRepository) RegistrationsBetween(ctx context.Context, from, to time.Time) ([]domain.UserRegistration, error) {
	var regs []domain.UserRegistration
	err := r.db.WithContext(ctx).
		Model(&domain.User{}).
		Select("role", "created_at").
		Where("created_at >= ? AND created_at < ?", from, to).
		Scan(&regs).Error
	return regs, err
}

func (r *UserRepository) DB() *gorm.DB {
	return r.db
}
