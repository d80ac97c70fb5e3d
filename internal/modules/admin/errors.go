package admin

import "errors"

var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrSelfBan        = errors.New("admins cannot ban themselves")
)
