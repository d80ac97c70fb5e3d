package auth

import "reviewtrust/internal/domain"

// ResolveLandingRoute maps a role to the page an authenticated caller lands
// on. Single policy function; middleware and handlers must not duplicate it.
func ResolveLandingRoute(role domain.UserRole) string {
	switch role {
	case domain.RoleUser:
		return "/categories"
	case domain.RoleBusiness:
		return "/business/dashboard"
	case domain.RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/"
	}
}
