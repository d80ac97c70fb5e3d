package image

import "errors"

var (
	ErrNotFound        = errors.New("image not found")
	ErrForbidden       = errors.New("you do not own this image")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidMimeType = errors.New("file type is not allowed")
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileRemoval     = errors.New("failed to delete file from storage")
	ErrImageLimit      = errors.New("image limit reached")
)
