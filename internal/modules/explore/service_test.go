package explore

import (
	"context"
	"testing"
	"time"

	"reviewtrust/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockBusinessSource struct {
	mock.Mock
}

func (m *mockBusinessSource) SearchActive(ctx context.Context, name string) ([]domain.Business, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Business), args.Error(1)
}

func (m *mockBusinessSource) GetActiveByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

type mockSubcategorySource struct {
	mock.Mock
}

func (m *mockSubcategorySource) SubcategoryIDByName(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockSubcategorySource) BusinessIDsBySubcategory(ctx context.Context, subcategoryID int64) ([]int64, error) {
	args := m.Called(ctx, subcategoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

type mockReviewSource struct {
	mock.Mock
}

func (m *mockReviewSource) RatingsByRevieweeIDs(ctx context.Context, businessIDs []int64) ([]domain.ReviewRating, error) {
	args := m.Called(ctx, businessIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewRating), args.Error(1)
}

type mockImageSource struct {
	mock.Mock
}

func (m *mockImageSource) PrimaryURLsByBusinessIDs(ctx context.Context, businessIDs []int64) (map[int64]string, error) {
	args := m.Called(ctx, businessIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func newTestService() (*Service, *mockBusinessSource, *mockSubcategorySource, *mockReviewSource, *mockImageSource) {
	businesses := new(mockBusinessSource)
	subcategories := new(mockSubcategorySource)
	reviews := new(mockReviewSource)
	images := new(mockImageSource)
	return NewService(businesses, subcategories, reviews, images), businesses, subcategories, reviews, images
}

func business(id int64, name string) domain.Business {
	return domain.Business{ID: id, Name: name}
}

func ratings(pairs ...domain.ReviewRating) []domain.ReviewRating {
	return pairs
}

func repeatRating(businessID int64, rating, n int) []domain.ReviewRating {
	out := make([]domain.ReviewRating, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.ReviewRating{RevieweeID: businessID, Rating: rating})
	}
	return out
}

func TestRatingStatsRounding(t *testing.T) {
	// [5,4] -> 4.5
	stats := AccumulateRatingStats(ratings(
		domain.ReviewRating{RevieweeID: 1, Rating: 5},
		domain.ReviewRating{RevieweeID: 1, Rating: 4},
	))
	assert.Equal(t, 4.5, stats[1].Rounded())
	assert.Equal(t, 2, stats[1].Count)

	// [5,5,4] -> 14/3 = 4.666... -> 4.7 (half-up)
	stats = AccumulateRatingStats(ratings(
		domain.ReviewRating{RevieweeID: 2, Rating: 5},
		domain.ReviewRating{RevieweeID: 2, Rating: 5},
		domain.ReviewRating{RevieweeID: 2, Rating: 4},
	))
	assert.Equal(t, 4.7, stats[2].Rounded())

	// no reviews -> 0
	assert.Equal(t, 0.0, RatingStats{}.Rounded())
}

func TestAccumulateRatingStatsSinglePass(t *testing.T) {
	pairs := ratings(
		domain.ReviewRating{RevieweeID: 1, Rating: 5},
		domain.ReviewRating{RevieweeID: 2, Rating: 3},
		domain.ReviewRating{RevieweeID: 1, Rating: 4},
	)
	stats := AccumulateRatingStats(pairs)

	assert.Equal(t, RatingStats{Total: 9, Count: 2}, stats[1])
	assert.Equal(t, RatingStats{Total: 3, Count: 1}, stats[2])
	_, ok := stats[99]
	assert.False(t, ok)
}

func TestListRatingTieBrokenByReviewCount(t *testing.T) {
	svc, businesses, _, reviews, images := newTestService()
	ctx := context.Background()

	// A and B both average exactly 4.5; B has more reviews. C averages 4.9*.
	all := []domain.Business{business(1, "A"), business(2, "B"), business(3, "C")}

	var pairs []domain.ReviewRating
	pairs = append(pairs, repeatRating(1, 5, 5)...) // A: 45/10 = 4.5
	pairs = append(pairs, repeatRating(1, 4, 5)...)
	pairs = append(pairs, repeatRating(2, 5, 10)...) // B: 90/20 = 4.5
	pairs = append(pairs, repeatRating(2, 4, 10)...)
	pairs = append(pairs, repeatRating(3, 5, 9)...) // C: 49/10 = 4.9
	pairs = append(pairs, repeatRating(3, 4, 1)...)

	businesses.On("SearchActive", ctx, "").Return(all, nil)
	reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return(pairs, nil)
	images.On("PrimaryURLsByBusinessIDs", ctx, mock.Anything).Return(map[int64]string{}, nil)

	result, err := svc.List(ctx, ListParams{Sort: SortRating})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	assert.Equal(t, []string{"C", "B", "A"}, []string{
		result.Items[0].Name, result.Items[1].Name, result.Items[2].Name,
	})
	assert.Equal(t, 4.9, result.Items[0].Rating)
	assert.Equal(t, 4.5, result.Items[1].Rating)
	assert.Equal(t, 20, result.Items[1].ReviewCount)
}

func TestListZeroReviewBusinessesSortLast(t *testing.T) {
	svc, businesses, _, reviews, images := newTestService()
	ctx := context.Background()

	all := []domain.Business{business(1, "NoReviews1"), business(2, "Rated"), business(3, "NoReviews2")}
	pairs := ratings(domain.ReviewRating{RevieweeID: 2, Rating: 1})

	businesses.On("SearchActive", ctx, "").Return(all, nil)
	reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return(pairs, nil)
	images.On("PrimaryURLsByBusinessIDs", ctx, mock.Anything).Return(map[int64]string{}, nil)

	result, err := svc.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, result.Items, 3)

	// Even a 1-star business outranks zero-review businesses; the zero-review
	// group keeps its original relative order (stable sort, all keys equal).
	assert.Equal(t, "Rated", result.Items[0].Name)
	assert.Equal(t, "NoReviews1", result.Items[1].Name)
	assert.Equal(t, "NoReviews2", result.Items[2].Name)
	assert.Equal(t, 0.0, result.Items[1].Rating)
	assert.Equal(t, 0, result.Items[1].ReviewCount)
}

func TestListSortByReviewsAndRecent(t *testing.T) {
	svc, businesses, _, reviews, images := newTestService()
	ctx := context.Background()

	now := time.Now()
	all := []domain.Business{
		{ID: 1, Name: "Old", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: 2, Name: "New", CreatedAt: now},
		{ID: 3, Name: "NoTimestamp"}, // zero time sorts oldest
	}
	pairs := append(repeatRating(1, 4, 3), repeatRating(2, 5, 1)...)

	businesses.On("SearchActive", ctx, "").Return(all, nil)
	reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return(pairs, nil)
	images.On("PrimaryURLsByBusinessIDs", ctx, mock.Anything).Return(map[int64]string{}, nil)

	byReviews, err := svc.List(ctx, ListParams{Sort: SortReviews})
	require.NoError(t, err)
	assert.Equal(t, "Old", byReviews.Items[0].Name) // 3 reviews beats 1

	byRecent, err := svc.List(ctx, ListParams{Sort: SortRecent})
	require.NoError(t, err)
	assert.Equal(t, "New", byRecent.Items[0].Name)
	assert.Equal(t, "NoTimestamp", byRecent.Items[2].Name)
}

func TestListPaginationBounds(t *testing.T) {
	ctx := context.Background()

	all := make([]domain.Business, 0, 25)
	for i := int64(1); i <= 25; i++ {
		all = append(all, business(i, "B"))
	}

	// pageSize=12, totalCount=25 -> 3 pages; page 3 holds exactly one item.
	var seen []int64
	for page := 1; page <= 3; page++ {
		svc, businesses, _, reviews, images := newTestService()
		businesses.On("SearchActive", ctx, "").Return(all, nil)
		reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return([]domain.ReviewRating{}, nil)
		images.On("PrimaryURLsByBusinessIDs", ctx, mock.Anything).Return(map[int64]string{}, nil)

		result, err := svc.List(ctx, ListParams{Page: page, Limit: 12})
		require.NoError(t, err)

		assert.Equal(t, page, result.Pagination.CurrentPage)
		assert.Equal(t, 3, result.Pagination.TotalPages)
		assert.Equal(t, 25, result.Pagination.TotalCount)
		assert.Equal(t, page < 3, result.Pagination.HasNext)
		assert.Equal(t, page > 1, result.Pagination.HasPrev)

		for _, item := range result.Items {
			seen = append(seen, item.ID)
		}

		// Image lookup must cover exactly the page's businesses.
		images.AssertCalled(t, "PrimaryURLsByBusinessIDs", ctx, mock.MatchedBy(func(ids []int64) bool {
			return len(ids) == len(result.Items)
		}))
	}

	// Concatenating all pages reproduces the full list exactly once each.
	require.Len(t, seen, 25)
	unique := make(map[int64]bool, 25)
	for _, id := range seen {
		unique[id] = true
	}
	assert.Len(t, unique, 25)
}

func TestListPageBeyondEndIsEmptyNotError(t *testing.T) {
	svc, businesses, _, reviews, images := newTestService()
	ctx := context.Background()

	businesses.On("SearchActive", ctx, "").Return([]domain.Business{business(1, "A")}, nil)
	reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return([]domain.ReviewRating{}, nil)
	images.On("PrimaryURLsByBusinessIDs", ctx, mock.Anything).Return(map[int64]string{}, nil)

	result, err := svc.List(ctx, ListParams{Page: 7, Limit: 12})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, 1, result.Pagination.TotalCount)
	assert.False(t, result.Pagination.HasNext)
	assert.True(t, result.Pagination.HasPrev)
}

func TestListMalformedPagingNormalized(t *testing.T) {
	svc, businesses, _, reviews, images := newTestService()
	ctx := context.Background()

	businesses.On("SearchActive", ctx, "").Return([]domain.Business{business(1, "A")}, nil)
	reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return([]domain.ReviewRating{}, nil)
	images.On("PrimaryURLsByBusinessIDs", ctx, mock.Anything).Return(map[int64]string{}, nil)

	result, err := svc.List(ctx, ListParams{Page: -3, Limit: 0, Sort: "bogus"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Pagination.CurrentPage)
	require.Len(t, result.Items, 1)
}

func TestListCategoryFilter(t *testing.T) {
	svc, businesses, _, reviews, images := newTestService()
	ctx := context.Background()

	plumbing := domain.Category{ID: 10, Name: "Plumbing"}
	cleaning := domain.Category{ID: 20, Name: "Cleaning"}
	all := []domain.Business{
		{ID: 1, Name: "A", Categories: []domain.Category{plumbing}},
		{ID: 2, Name: "B", Categories: []domain.Category{cleaning}},
		{ID: 3, Name: "C", Categories: []domain.Category{plumbing, cleaning}},
	}

	businesses.On("SearchActive", ctx, "").Return(all, nil)
	reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return([]domain.ReviewRating{}, nil)
	images.On("PrimaryURLsByBusinessIDs", ctx, mock.Anything).Return(map[int64]string{}, nil)

	result, err := svc.List(ctx, ListParams{CategoryID: 10})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "Plumbing", result.Items[0].Category)
}

func TestListUnknownSubcategoryYieldsEmptyResult(t *testing.T) {
	svc, businesses, subcategories, reviews, images := newTestService()
	ctx := context.Background()

	businesses.On("SearchActive", ctx, "").Return([]domain.Business{business(1, "A")}, nil)
	subcategories.On("SubcategoryIDByName", ctx, "does-not-exist").Return(int64(0), gorm.ErrRecordNotFound)
	reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return([]domain.ReviewRating{}, nil)
	images.On("PrimaryURLsByBusinessIDs", ctx, mock.Anything).Return(map[int64]string{}, nil)

	result, err := svc.List(ctx, ListParams{Subcategory: "does-not-exist"})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.Equal(t, 0, result.Pagination.TotalCount)
	assert.Equal(t, 0, result.Pagination.TotalPages)
	assert.False(t, result.Pagination.HasNext)
	assert.False(t, result.Pagination.HasPrev)
}

func TestListSubcategoryFilterKeepsLinkedOnly(t *testing.T) {
	svc, businesses, subcategories, reviews, images := newTestService()
	ctx := context.Background()

	all := []domain.Business{business(1, "A"), business(2, "B")}

	businesses.On("SearchActive", ctx, "").Return(all, nil)
	subcategories.On("SubcategoryIDByName", ctx, "Drain Cleaning").Return(int64(5), nil)
	subcategories.On("BusinessIDsBySubcategory", ctx, int64(5)).Return([]int64{2}, nil)
	reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return([]domain.ReviewRating{}, nil)
	images.On("PrimaryURLsByBusinessIDs", ctx, mock.Anything).Return(map[int64]string{}, nil)

	result, err := svc.List(ctx, ListParams{Subcategory: "Drain Cleaning"})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "B", result.Items[0].Name)
}

func TestListImagePlaceholderAndPrimary(t *testing.T) {
	svc, businesses, _, reviews, images := newTestService()
	ctx := context.Background()

	all := []domain.Business{business(1, "WithImage"), business(2, "WithoutImage")}

	businesses.On("SearchActive", ctx, "").Return(all, nil)
	reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return([]domain.ReviewRating{}, nil)
	images.On("PrimaryURLsByBusinessIDs", ctx, mock.Anything).
		Return(map[int64]string{1: "/static/uploads/2026/01/01/a.jpg"}, nil)

	result, err := svc.List(ctx, ListParams{})
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "/static/uploads/2026/01/01/a.jpg", result.Items[0].ImageURL)
	assert.Equal(t, "/placeholder-service-image.svg", result.Items[1].ImageURL)
	assert.Equal(t, "Service", result.Items[1].Category)
}

func TestListStoreFailureReturnsNoPartialData(t *testing.T) {
	svc, businesses, _, reviews, _ := newTestService()
	ctx := context.Background()

	businesses.On("SearchActive", ctx, "").Return([]domain.Business{business(1, "A")}, nil)
	reviews.On("RatingsByRevieweeIDs", ctx, mock.Anything).Return(nil, gorm.ErrInvalidDB)

	result, err := svc.List(ctx, ListParams{})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestDetailBannedAndMissingIndistinguishable(t *testing.T) {
	svc, businesses, _, _, _ := newTestService()
	ctx := context.Background()

	// Repo surfaces both banned and missing as record-not-found.
	businesses.On("GetActiveByID", ctx, int64(42)).Return(nil, gorm.ErrRecordNotFound)

	detail, err := svc.Detail(ctx, 42)
	assert.Nil(t, detail)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDetailComputesStats(t *testing.T) {
	svc, businesses, _, reviews, _ := newTestService()
	ctx := context.Background()

	b := &domain.Business{ID: 7, Name: "Acme Plumbing", Categories: []domain.Category{{ID: 1, Name: "Plumbing"}}}
	businesses.On("GetActiveByID", ctx, int64(7)).Return(b, nil)
	reviews.On("RatingsByRevieweeIDs", ctx, []int64{7}).Return(ratings(
		domain.ReviewRating{RevieweeID: 7, Rating: 5},
		domain.ReviewRating{RevieweeID: 7, Rating: 4},
	), nil)

	detail, err := svc.Detail(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 4.5, detail.Rating)
	assert.Equal(t, 2, detail.ReviewCount)
	require.Len(t, detail.Categories, 1)
}
