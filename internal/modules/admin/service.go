package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"reviewtrust/internal/domain"
	"reviewtrust/internal/repository"

	"gorm.io/gorm"
)

type Service struct {
	users      UserStore
	businesses BusinessStore
	reviews    ReviewStore
	categories CategoryStore
}

func NewService(users UserStore, businesses BusinessStore, reviews ReviewStore, categories CategoryStore) *Service {
	return &Service{
		users:      users,
		businesses: businesses,
		reviews:    reviews,
		categories: categories,
	}
}

func normalizePaging(page, limit int) (int, int, int) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

// -------------------- Users --------------------

func (s *Service) ListUsers(ctx context.Context, f UserListFilter, page, limit int) (*UserListResponse, error) {
	page, limit, offset := normalizePaging(page, limit)

	filter := repository.UserFilter{
		Role:   strings.TrimSpace(f.Role),
		Banned: f.Banned,
		Query:  f.Query,
	}
	users, total, err := s.users.ListAll(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}

	return &UserListResponse{Users: users, Total: total, Page: page, Limit: limit}, nil
}

// BanUser flips a user's ban flag. A ban clears on unban together with its
// reason. Admin accounts cannot ban themselves.
func (s *Service) BanUser(ctx context.Context, adminID, userID int64, banned bool, reason string) (*domain.User, error) {
	if adminID == userID {
		return nil, ErrSelfBan
	}

	if !banned {
		reason = ""
	}
	if err := s.users.SetBanned(ctx, userID, banned, reason); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return s.users.GetByID(ctx, userID)
}

// -------------------- Businesses --------------------

func (s *Service) ListBusinesses(ctx context.Context, query string, page, limit int) (*BusinessListResponse, error) {
	page, limit, offset := normalizePaging(page, limit)

	businesses, total, err := s.businesses.ListAll(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}

	return &BusinessListResponse{Businesses: businesses, Total: total, Page: page, Limit: limit}, nil
}

// BanBusiness takes a business out of every public listing. Listings are
// recomputed per request, so the ban is visible immediately.
func (s *Service) BanBusiness(ctx context.Context, businessID int64, banned bool) error {
	if err := s.businesses.SetBanned(ctx, businessID, banned); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// -------------------- Reviews --------------------

func (s *Service) ListReviews(ctx context.Context, page, limit int) (*ReviewListResponse, error) {
	page, limit, offset := normalizePaging(page, limit)

	reviews, total, err := s.reviews.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	return &ReviewListResponse{Reviews: reviews, Total: total, Page: page, Limit: limit}, nil
}

// -------------------- Categories --------------------

func (s *Service) ListCategories(ctx context.Context) ([]repository.CategoryWithSubcategories, error) {
	return s.categories.List(ctx)
}

func (s *Service) CreateCategory(ctx context.Context, req CategoryRequest) (*domain.Category, error) {
	cat := &domain.Category{
		Name:    strings.TrimSpace(req.Name),
		Icon:    req.Icon,
		BgColor: req.BgColor,
	}
	if cat.Name == "" {
		return nil, ErrInvalidRequest
	}
	if err := s.categories.Create(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id int64, req CategoryRequest) (*domain.Category, error) {
	cat, err := s.categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	cat.Name = strings.TrimSpace(req.Name)
	cat.Icon = req.Icon
	cat.BgColor = req.BgColor
	if cat.Name == "" {
		return nil, ErrInvalidRequest
	}

	if err := s.categories.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) CreateSubcategory(ctx context.Context, categoryID int64, req SubcategoryRequest) (*domain.Subcategory, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	sc := &domain.Subcategory{
		CategoryID: categoryID,
		Name:       strings.TrimSpace(req.Name),
	}
	if sc.Name == "" {
		return nil, ErrInvalidRequest
	}
	if err := s.categories.CreateSubcategory(ctx, sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Service) DeleteSubcategory(ctx context.Context, id int64) error {
	if err := s.categories.DeleteSubcategory(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// -------------------- Dashboard --------------------

func (s *Service) Statistics(ctx context.Context) (*StatisticsResponse, error) {
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalBusinesses, err := s.businesses.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalReviews, err := s.reviews.Count(ctx)
	if err != nil {
		return nil, err
	}
	bannedBusinesses, err := s.businesses.CountBanned(ctx)
	if err != nil {
		return nil, err
	}

	dayStart := startOfDay(time.Now().UTC())
	reviewsToday, err := s.reviews.CountCreatedBetween(ctx, dayStart, dayStart.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	return &StatisticsResponse{
		TotalUsers:       totalUsers,
		TotalBusinesses:  totalBusinesses,
		TotalReviews:     totalReviews,
		BannedBusinesses: bannedBusinesses,
		ReviewsToday:     reviewsToday,
	}, nil
}

// WeeklyChart returns activity for the current week: seven days starting at
// the most recent Monday, one point per day with review, user-signup and
// business-signup counts. Admin accounts appear in neither signup series.
// Future days of the week come back with zero counts.
func (s *Service) WeeklyChart(ctx context.Context, now time.Time) ([]ChartPoint, error) {
	weekStart := startOfWeek(now.UTC())
	weekEnd := weekStart.AddDate(0, 0, 7)

	reviewDates, err := s.reviews.CreatedDatesBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	registrations, err := s.users.RegistrationsBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	points := make([]ChartPoint, 7)
	for i := range points {
		day := weekStart.AddDate(0, 0, i)
		points[i] = ChartPoint{
			Date: day.Format("2006-01-02"),
			Day:  day.Format("Mon"),
		}
	}

	for _, d := range reviewDates {
		if i := dayIndex(weekStart, d); i >= 0 && i < 7 {
			points[i].Reviews++
		}
	}
	for _, reg := range registrations {
		i := dayIndex(weekStart, reg.CreatedAt)
		if i < 0 || i >= 7 {
			continue
		}
		switch reg.Role {
		case domain.RoleUser:
			points[i].Users++
		case domain.RoleBusiness:
			points[i].Businesses++
		}
	}

	return points, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the most recent Monday.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

func dayIndex(weekStart, t time.Time) int {
	return int(t.UTC().Sub(weekStart).Hours() / 24)
}
