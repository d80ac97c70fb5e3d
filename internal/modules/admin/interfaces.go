package admin

import (
	"context"
	"time"

	"reviewtrust/internal/domain"
	"reviewtrust/internal/repository"
)

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListAll(ctx context.Context, f repository.UserFilter, limit, offset int) ([]domain.User, int64, error)
	SetBanned(ctx context.Context, id int64, banned bool, reason string) error
	Count(ctx context.Context) (int64, error)
	RegistrationsBetween(ctx context.Context, from, to time.Time) ([]domain.UserRegistration, error)
}

type BusinessStore interface {
	ListAll(ctx context.Context, query string, limit, offset int) ([]domain.Business, int64, error)
	SetBanned(ctx context.Context, id int64, banned bool) error
	Count(ctx context.Context) (int64, error)
	CountBanned(ctx context.Context) (int64, error)
}

type ReviewStore interface {
	ListAll(ctx context.Context, limit, offset int) ([]domain.Review, int64, error)
	Count(ctx context.Context) (int64, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	CreatedDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

type CategoryStore interface {
	List(ctx context.Context) ([]repository.CategoryWithSubcategories, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	Create(ctx context.Context, cat *domain.Category) error
	Update(ctx context.Context, cat *domain.Category) error
	Delete(ctx context.Context, id int64) error
	CreateSubcategory(ctx context.Context, sc *domain.Subcategory) error
	DeleteSubcategory(ctx context.Context, id int64) error
}
