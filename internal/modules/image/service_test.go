package image

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"reviewtrust/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockImageStore struct {
	mock.Mock
}

func (m *mockImageStore) Create(ctx context.Context, img *domain.BusinessImage) error {
	args := m.Called(ctx, img)
	return args.Error(0)
}

func (m *mockImageStore) GetByID(ctx context.Context, id int64) (*domain.BusinessImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BusinessImage), args.Error(1)
}

func (m *mockImageStore) ListByBusiness(ctx context.Context, businessID int64) ([]domain.BusinessImage, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BusinessImage), args.Error(1)
}

func (m *mockImageStore) CountByBusiness(ctx context.Context, businessID int64) (int64, error) {
	args := m.Called(ctx, businessID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockImageStore) SetPrimary(ctx context.Context, imageID, businessID int64, isPrimary bool) error {
	args := m.Called(ctx, imageID, businessID, isPrimary)
	return args.Error(0)
}

func (m *mockImageStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockBusinessGate struct {
	mock.Mock
}

func (m *mockBusinessGate) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Business), args.Error(1)
}

func pngFileHeader(t *testing.T) *multipart.FileHeader {
	t.Helper()

	// PNG signature is enough for content type sniffing
	content := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 64)...)

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	part, err := w.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["file"][0]
}

func TestUploadFirstImageBecomesPrimary(t *testing.T) {
	images := new(mockImageStore)
	businesses := new(mockBusinessGate)
	svc := NewService(images, businesses, t.TempDir(), "/static/uploads")

	businesses.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{ID: 7, OwnerID: 3}, nil)
	images.On("CountByBusiness", mock.Anything, int64(7)).Return(int64(0), nil)
	images.On("Create", mock.Anything, mock.AnythingOfType("*domain.BusinessImage")).Return(nil)

	img, err := svc.Upload(context.Background(), 3, 7, pngFileHeader(t))
	require.NoError(t, err)
	assert.True(t, img.IsPrimary)
	assert.Contains(t, img.ImageURL, "/static/uploads/")

	// file must exist on disk
	_, statErr := os.Stat(filepath.Join(svc.baseDir, img.FilePath))
	assert.NoError(t, statErr)
}

func TestUploadSecondImageNotPrimary(t *testing.T) {
	images := new(mockImageStore)
	businesses := new(mockBusinessGate)
	svc := NewService(images, businesses, t.TempDir(), "")

	businesses.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{ID: 7, OwnerID: 3}, nil)
	images.On("CountByBusiness", mock.Anything, int64(7)).Return(int64(1), nil)
	images.On("Create", mock.Anything, mock.AnythingOfType("*domain.BusinessImage")).Return(nil)

	img, err := svc.Upload(context.Background(), 3, 7, pngFileHeader(t))
	require.NoError(t, err)
	assert.False(t, img.IsPrimary)
}

func TestUploadRejectsNonOwner(t *testing.T) {
	images := new(mockImageStore)
	businesses := new(mockBusinessGate)
	svc := NewService(images, businesses, t.TempDir(), "")

	businesses.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{ID: 7, OwnerID: 3}, nil)

	_, err := svc.Upload(context.Background(), 99, 7, pngFileHeader(t))
	assert.ErrorIs(t, err, ErrForbidden)
	images.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUploadEnforcesImageLimit(t *testing.T) {
	images := new(mockImageStore)
	businesses := new(mockBusinessGate)
	svc := NewService(images, businesses, t.TempDir(), "")

	businesses.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{ID: 7, OwnerID: 3}, nil)
	images.On("CountByBusiness", mock.Anything, int64(7)).Return(int64(MaxImagesPerBusiness), nil)

	_, err := svc.Upload(context.Background(), 3, 7, pngFileHeader(t))
	assert.ErrorIs(t, err, ErrImageLimit)
}

func TestUploadRemovesFileWhenRecordFails(t *testing.T) {
	images := new(mockImageStore)
	businesses := new(mockBusinessGate)
	dir := t.TempDir()
	svc := NewService(images, businesses, dir, "")

	businesses.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{ID: 7, OwnerID: 3}, nil)
	images.On("CountByBusiness", mock.Anything, int64(7)).Return(int64(0), nil)
	images.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	_, err := svc.Upload(context.Background(), 3, 7, pngFileHeader(t))
	require.Error(t, err)

	// no files left behind
	var leftover int
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && info != nil && !info.IsDir() {
			leftover++
		}
		return nil
	})
	assert.Zero(t, leftover)
}

func TestDeleteRemovesFileBeforeRecord(t *testing.T) {
	images := new(mockImageStore)
	businesses := new(mockBusinessGate)
	dir := t.TempDir()
	svc := NewService(images, businesses, dir, "")

	relPath := filepath.Join("2025", "01", "02", "a.png")
	absPath := filepath.Join(dir, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(absPath), 0755))
	require.NoError(t, os.WriteFile(absPath, []byte("data"), 0644))

	images.On("GetByID", mock.Anything, int64(5)).Return(&domain.BusinessImage{ID: 5, BusinessID: 7, FilePath: relPath}, nil)
	businesses.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{ID: 7, OwnerID: 3}, nil)
	images.On("Delete", mock.Anything, int64(5)).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), 5, 3))

	_, statErr := os.Stat(absPath)
	assert.True(t, os.IsNotExist(statErr))
	images.AssertCalled(t, "Delete", mock.Anything, int64(5))
}

func TestDeleteToleratesMissingFile(t *testing.T) {
	images := new(mockImageStore)
	businesses := new(mockBusinessGate)
	svc := NewService(images, businesses, t.TempDir(), "")

	images.On("GetByID", mock.Anything, int64(5)).Return(&domain.BusinessImage{ID: 5, BusinessID: 7, FilePath: "2025/01/02/gone.png"}, nil)
	businesses.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{ID: 7, OwnerID: 3}, nil)
	images.On("Delete", mock.Anything, int64(5)).Return(nil)

	assert.NoError(t, svc.Delete(context.Background(), 5, 3))
}

func TestDeleteKeepsRecordWhenFileRemovalFails(t *testing.T) {
	images := new(mockImageStore)
	businesses := new(mockBusinessGate)
	dir := t.TempDir()
	svc := NewService(images, businesses, dir, "")

	// A path whose parent is a file makes os.Remove fail with ENOTDIR.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocker"), []byte("x"), 0644))
	relPath := filepath.Join("blocker", "a.png")

	images.On("GetByID", mock.Anything, int64(5)).Return(&domain.BusinessImage{ID: 5, BusinessID: 7, FilePath: relPath}, nil)
	businesses.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{ID: 7, OwnerID: 3}, nil)

	err := svc.Delete(context.Background(), 5, 3)
	assert.ErrorIs(t, err, ErrFileRemoval)
	images.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestSetPrimaryNotFound(t *testing.T) {
	images := new(mockImageStore)
	businesses := new(mockBusinessGate)
	svc := NewService(images, businesses, t.TempDir(), "")

	images.On("GetByID", mock.Anything, int64(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.SetPrimary(context.Background(), 5, 3, true)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPrimaryChecksOwnership(t *testing.T) {
	images := new(mockImageStore)
	businesses := new(mockBusinessGate)
	svc := NewService(images, businesses, t.TempDir(), "")

	images.On("GetByID", mock.Anything, int64(5)).Return(&domain.BusinessImage{ID: 5, BusinessID: 7}, nil)
	businesses.On("GetByID", mock.Anything, int64(7)).Return(&domain.Business{ID: 7, OwnerID: 3}, nil)

	_, err := svc.SetPrimary(context.Background(), 5, 99, true)
	assert.ErrorIs(t, err, ErrForbidden)
	images.AssertNotCalled(t, "SetPrimary", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
