package admin

import "reviewtrust/internal/domain"

type BanRequest struct {
	Banned *bool  `json:"banned" binding:"required"`
	Reason string `json:"reason"`
}

type UserListFilter struct {
	Role   string `form:"role"`
	Banned *bool  `form:"banned"`
	Query  string `form:"q"` // name/email contains
}

type UserListResponse struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type BusinessListResponse struct {
	Businesses []domain.Business `json:"businesses"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type ReviewListResponse struct {
	Reviews []domain.Review `json:"reviews"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

type CategoryRequest struct {
	Name    string `json:"name" binding:"required"`
	Icon    string `json:"icon"`
	BgColor string `json:"bg_color"`
}

type SubcategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type StatisticsResponse struct {
	TotalUsers       int64 `json:"total_users"`
	TotalBusinesses  int64 `json:"total_businesses"`
	TotalReviews     int64 `json:"total_reviews"`
	BannedBusinesses int64 `json:"banned_businesses"`
	ReviewsToday     int64 `json:"reviews_today"`
}

// ChartPoint is one day of the weekly activity chart. User and business
// signups are separate series; admin accounts count in neither.
type ChartPoint struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Day        string `json:"day"`  // Mon..Sun
	Reviews    int    `json:"reviews"`
	Users      int    `json:"users"`
	Businesses int    `json:"businesses"`
}
