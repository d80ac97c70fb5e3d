package domain

import "time"

type Business struct {
	ID            int64     `json:"id"`
	OwnerID       int64     `json:"owner_id"`
	Name          string    `json:"name" gorm:"column:business_name"`
	Location      string    `json:"location"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Address       string    `json:"address,omitempty"`
	BusinessHours string    `json:"business_hours,omitempty"`
	IsBanned      bool      `json:"is_banned"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Categories    []Category    `json:"categories,omitempty" gorm:"many2many:business_categories"`
	Subcategories []Subcategory `json:"subcategories,omitempty" gorm:"many2many:business_subcategories"`
}

type Category struct {
	ID      int64  `json:"id"`
	Name    string `json:"name" validate:"required"`
	Icon    string `json:"icon,omitempty"`
	BgColor string `json:"bg_color,omitempty"`
}

type Subcategory struct {
	ID         int64  `json:"id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name" validate:"required"`
}

// BusinessImage is a stored photo of a business. At most one image per
// business carries the primary flag; it is the cover shown in listings.
type BusinessImage struct {
	ID         int64     `json:"id"`
	BusinessID int64     `json:"business_id"`
	ImageURL   string    `json:"image_url"`
	FilePath   string    `json:"-"`
	IsPrimary  bool      `json:"is_primary"`
	CreatedAt  time.Time `json:"created_at"`
}
