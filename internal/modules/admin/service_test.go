package admin

import (
	"context"
	"testing"
	"time"

	"reviewtrust/internal/domain"
	"reviewtrust/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserStore) ListAll(ctx context.Context, f repository.UserFilter, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, f, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.User), args.Get(1).(int64), args.Error(2)
}

func (m *mockUserStore) SetBanned(ctx context.Context, id int64, banned bool, reason string) error {
	args := m.Called(ctx, id, banned, reason)
	return args.Error(0)
}

func (m *mockUserStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserStore) RegistrationsBetween(ctx context.Context, from, to time.Time) ([]domain.UserRegistration, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserRegistration), args.Error(1)
}

type mockBusinessStore struct {
	mock.Mock
}

func (m *mockBusinessStore) ListAll(ctx context.Context, query string, limit, offset int) ([]domain.Business, int64, error) {
	args := m.Called(ctx, query, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Business), args.Get(1).(int64), args.Error(2)
}

func (m *mockBusinessStore) SetBanned(ctx context.Context, id int64, banned bool) error {
	args := m.Called(ctx, id, banned)
	return args.Error(0)
}

func (m *mockBusinessStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBusinessStore) CountBanned(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockReviewStore struct {
	mock.Mock
}

func (m *mockReviewStore) ListAll(ctx context.Context, limit, offset int) ([]domain.Review, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Review), args.Get(1).(int64), args.Error(2)
}

func (m *mockReviewStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewStore) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockReviewStore) CreatedDatesBetween(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

type mockCategoryStore struct {
	mock.Mock
}

func (m *mockCategoryStore) List(ctx context.Context) ([]repository.CategoryWithSubcategories, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.CategoryWithSubcategories), args.Error(1)
}

func (m *mockCategoryStore) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *mockCategoryStore) Create(ctx context.Context, cat *domain.Category) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *mockCategoryStore) Update(ctx context.Context, cat *domain.Category) error {
	args := m.Called(ctx, cat)
	return args.Error(0)
}

func (m *mockCategoryStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockCategoryStore) CreateSubcategory(ctx context.Context, sc *domain.Subcategory) error {
	args := m.Called(ctx, sc)
	return args.Error(0)
}

func (m *mockCategoryStore) DeleteSubcategory(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService() (*Service, *mockUserStore, *mockBusinessStore, *mockReviewStore, *mockCategoryStore) {
	users := new(mockUserStore)
	businesses := new(mockBusinessStore)
	reviews := new(mockReviewStore)
	categories := new(mockCategoryStore)
	return NewService(users, businesses, reviews, categories), users, businesses, reviews, categories
}

func TestListUsersNormalizesPaging(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	users.On("ListAll", mock.Anything, repository.UserFilter{}, 20, 0).
		Return([]domain.User{{ID: 1}}, int64(1), nil)

	result, err := svc.ListUsers(context.Background(), UserListFilter{}, -3, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.Limit)
	assert.Equal(t, int64(1), result.Total)
}

func TestBanUserRejectsSelfBan(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	_, err := svc.BanUser(context.Background(), 5, 5, true, "spam")
	assert.ErrorIs(t, err, ErrSelfBan)
	users.AssertNotCalled(t, "SetBanned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBanUserNotFound(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	users.On("SetBanned", mock.Anything, int64(42), true, "spam").Return(gorm.ErrRecordNotFound)

	_, err := svc.BanUser(context.Background(), 1, 42, true, "spam")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnbanClearsReason(t *testing.T) {
	svc, users, _, _, _ := newTestService()

	users.On("SetBanned", mock.Anything, int64(42), false, "").Return(nil)
	users.On("GetByID", mock.Anything, int64(42)).Return(&domain.User{ID: 42}, nil)

	u, err := svc.BanUser(context.Background(), 1, 42, false, "stale reason")
	require.NoError(t, err)
	assert.Equal(t, int64(42), u.ID)
	users.AssertCalled(t, "SetBanned", mock.Anything, int64(42), false, "")
}

func TestBanBusinessNotFound(t *testing.T) {
	svc, _, businesses, _, _ := newTestService()

	businesses.On("SetBanned", mock.Anything, int64(9), true).Return(gorm.ErrRecordNotFound)

	err := svc.BanBusiness(context.Background(), 9, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatisticsAggregatesCounters(t *testing.T) {
	svc, users, businesses, reviews, _ := newTestService()

	users.On("Count", mock.Anything).Return(int64(100), nil)
	businesses.On("Count", mock.Anything).Return(int64(40), nil)
	businesses.On("CountBanned", mock.Anything).Return(int64(3), nil)
	reviews.On("Count", mock.Anything).Return(int64(250), nil)
	reviews.On("CountCreatedBetween", mock.Anything, mock.Anything, mock.Anything).Return(int64(7), nil)

	stats, err := svc.Statistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(100), stats.TotalUsers)
	assert.Equal(t, int64(40), stats.TotalBusinesses)
	assert.Equal(t, int64(250), stats.TotalReviews)
	assert.Equal(t, int64(3), stats.BannedBusinesses)
	assert.Equal(t, int64(7), stats.ReviewsToday)
}

func TestWeeklyChartStartsAtMonday(t *testing.T) {
	svc, users, _, reviews, _ := newTestService()

	// Thursday 2025-01-16; week starts Monday 2025-01-13
	now := time.Date(2025, 1, 16, 15, 30, 0, 0, time.UTC)
	weekStart := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	reviews.On("CreatedDatesBetween", mock.Anything, weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]time.Time{
			weekStart.Add(2 * time.Hour),                  // Monday
			weekStart.AddDate(0, 0, 2).Add(9 * time.Hour), // Wednesday
			weekStart.AddDate(0, 0, 2).Add(22 * time.Hour),
		}, nil)
	users.On("RegistrationsBetween", mock.Anything, weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]domain.UserRegistration{
			{Role: domain.RoleUser, CreatedAt: weekStart.AddDate(0, 0, 1)}, // Tuesday
		}, nil)

	points, err := svc.WeeklyChart(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, points, 7)

	assert.Equal(t, "2025-01-13", points[0].Date)
	assert.Equal(t, "Mon", points[0].Day)
	assert.Equal(t, "2025-01-19", points[6].Date)
	assert.Equal(t, "Sun", points[6].Day)

	assert.Equal(t, 1, points[0].Reviews)
	assert.Equal(t, 2, points[2].Reviews)
	assert.Equal(t, 1, points[1].Users)

	// future days of the week stay at zero
	assert.Zero(t, points[4].Reviews)
	assert.Zero(t, points[5].Users)
}

func TestWeeklyChartSplitsSignupSeriesByRole(t *testing.T) {
	svc, users, _, reviews, _ := newTestService()

	now := time.Date(2025, 1, 16, 12, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	reviews.On("CreatedDatesBetween", mock.Anything, weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]time.Time{}, nil)
	users.On("RegistrationsBetween", mock.Anything, weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]domain.UserRegistration{
			{Role: domain.RoleUser, CreatedAt: weekStart.Add(1 * time.Hour)},
			{Role: domain.RoleUser, CreatedAt: weekStart.Add(5 * time.Hour)},
			{Role: domain.RoleBusiness, CreatedAt: weekStart.Add(8 * time.Hour)},
			{Role: domain.RoleAdmin, CreatedAt: weekStart.Add(9 * time.Hour)},
		}, nil)

	points, err := svc.WeeklyChart(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, 2, points[0].Users)
	assert.Equal(t, 1, points[0].Businesses)

	// admin signups appear in neither series
	total := 0
	for _, p := range points {
		total += p.Users + p.Businesses
	}
	assert.Equal(t, 3, total)
}

func TestWeeklyChartOnMonday(t *testing.T) {
	svc, users, _, reviews, _ := newTestService()

	now := time.Date(2025, 1, 13, 0, 5, 0, 0, time.UTC)
	weekStart := time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC)

	reviews.On("CreatedDatesBetween", mock.Anything, weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]time.Time{}, nil)
	users.On("RegistrationsBetween", mock.Anything, weekStart, weekStart.AddDate(0, 0, 7)).
		Return([]domain.UserRegistration{}, nil)

	points, err := svc.WeeklyChart(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-13", points[0].Date)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	svc, _, _, _, categories := newTestService()

	_, err := svc.CreateCategory(context.Background(), CategoryRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrInvalidRequest)
	categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSubcategoryUnknownCategory(t *testing.T) {
	svc, _, _, _, categories := newTestService()

	categories.On("GetByID", mock.Anything, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.CreateSubcategory(context.Background(), 77, SubcategoryRequest{Name: "Nails"})
	assert.ErrorIs(t, err, ErrNotFound)
	categories.AssertNotCalled(t, "CreateSubcategory", mock.Anything, mock.Anything)
}
