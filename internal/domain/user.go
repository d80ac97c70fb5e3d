package domain

import "time"

type UserRole string

const (
	RoleUser     UserRole = "user"
	RoleBusiness UserRole = "business"
	RoleAdmin    UserRole = "admin"
)

// UserRegistration is the slim projection the admin chart consumes: one row
// per account, keyed by signup time and role.
type UserRegistration struct {
	Role      UserRole
	CreatedAt time.Time
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	Name         string    `json:"name"`
	IsBanned     bool      `json:"is_banned"`
	BanReason    string    `json:"ban_reason,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
