package domain

import "time"

// Review is a user's rating of a business. The (reviewer, reviewee) pair is
// unique at the database level; a second submission surfaces as a conflict,
// never as a silent overwrite.
type Review struct {
	ID            int64      `json:"id"`
	RevieweeID    int64      `json:"reviewee_id" gorm:"uniqueIndex:uq_reviews_reviewer_reviewee"`
	ReviewerID    int64      `json:"reviewer_id" gorm:"uniqueIndex:uq_reviews_reviewer_reviewee"`
	Rating        int        `json:"rating"`
	Comment       string     `json:"comment,omitempty"`
	OwnerResponse *string    `json:"owner_response,omitempty"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
	IsVerified    bool       `json:"is_verified"`
	IsHidden      bool       `json:"is_hidden"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ReviewRating is the slim projection the listing aggregator consumes: one
// row per review, keyed by the reviewed business.
type ReviewRating struct {
	RevieweeID int64
	Rating     int
}
