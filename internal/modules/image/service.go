package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reviewtrust/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MaxFileSize          = 10 * 1024 * 1024 // 10 MB
	MaxImagesPerBusiness = 10
	UploadsBaseDir       = "./uploads"
	StaticURLBase        = "/static/uploads"
)

// AllowedMimeTypes defines which file types are accepted
var AllowedMimeTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

type ImageStore interface {
	Create(ctx context.Context, img *domain.BusinessImage) error
	GetByID(ctx context.Context, id int64) (*domain.BusinessImage, error)
	ListByBusiness(ctx context.Context, businessID int64) ([]domain.BusinessImage, error)
	CountByBusiness(ctx context.Context, businessID int64) (int64, error)
	SetPrimary(ctx context.Context, imageID, businessID int64, isPrimary bool) error
	Delete(ctx context.Context, id int64) error
}

type BusinessGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Business, error)
}

// Service stores business photos on local disk: save file -> record in DB ->
// return record with public URL.
type Service struct {
	images     ImageStore
	businesses BusinessGate
	baseDir    string // absolute path to uploads dir
	staticBase string // URL prefix for serving files
}

func NewService(images ImageStore, businesses BusinessGate, baseDir, staticBase string) *Service {
	if baseDir == "" {
		baseDir = UploadsBaseDir
	}
	if staticBase == "" {
		staticBase = StaticURLBase
	}
	return &Service{images: images, businesses: businesses, baseDir: baseDir, staticBase: staticBase}
}

// Upload saves a photo for the business. The first image of a business
// becomes its primary automatically.
func (s *Service) Upload(ctx context.Context, userID, businessID int64, fileHeader *multipart.FileHeader) (*domain.BusinessImage, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if business.OwnerID != userID {
		return nil, ErrForbidden
	}

	existing, err := s.images.CountByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if existing >= MaxImagesPerBusiness {
		return nil, ErrImageLimit
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	// Detect MIME type from first 512 bytes
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := http.DetectContentType(buf[:n])
	mimeType = strings.Split(mimeType, ";")[0]

	if !AllowedMimeTypes[mimeType] {
		return nil, ErrInvalidMimeType
	}

	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	// Build directory: uploads/YYYY/MM/DD/
	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := filepath.Ext(fileHeader.Filename)
	if ext == "" {
		ext = mimeToExt(mimeType)
	}
	filename := uuid.New().String() + ext

	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	relPath := filepath.Join(relDir, filename)
	fileURL := s.staticBase + "/" + strings.ReplaceAll(relPath, "\\", "/")

	img := &domain.BusinessImage{
		BusinessID: businessID,
		ImageURL:   fileURL,
		FilePath:   relPath,
		IsPrimary:  existing == 0,
		CreatedAt:  now,
	}

	if err := s.images.Create(ctx, img); err != nil {
		_ = os.Remove(absPath) // rollback file on DB error
		return nil, fmt.Errorf("failed to save image record: %w", err)
	}

	return img, nil
}

func (s *Service) ListByBusiness(ctx context.Context, businessID int64) ([]domain.BusinessImage, error) {
	return s.images.ListByBusiness(ctx, businessID)
}

// SetPrimary flips the primary flag. The store clears the business's other
// primary flags in the same transaction, so two primaries never coexist.
func (s *Service) SetPrimary(ctx context.Context, imageID, userID int64, isPrimary bool) (*domain.BusinessImage, error) {
	img, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.checkOwner(ctx, img.BusinessID, userID); err != nil {
		return nil, err
	}

	if err := s.images.SetPrimary(ctx, imageID, img.BusinessID, isPrimary); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	img.IsPrimary = isPrimary
	return img, nil
}

// Delete removes the stored file, then the record. When file removal fails
// the record stays: an orphaned record is recoverable, an orphaned file on
// disk with no record is not.
func (s *Service) Delete(ctx context.Context, imageID, userID int64) error {
	img, err := s.images.GetByID(ctx, imageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := s.checkOwner(ctx, img.BusinessID, userID); err != nil {
		return err
	}

	absPath := filepath.Join(s.baseDir, img.FilePath)
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		return ErrFileRemoval
	}

	return s.images.Delete(ctx, imageID)
}

func (s *Service) checkOwner(ctx context.Context, businessID, userID int64) error {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if business.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}

func mimeToExt(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ""
	}
}
