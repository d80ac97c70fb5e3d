package review

type CreateReviewRequest struct {
	BusinessID int64  `json:"business_id" validate:"required,gt=0"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string `json:"comment,omitempty"`
}

type OwnerReplyRequest struct {
	Response string `json:"response" validate:"required,max=500"`
}

type VisibilityRequest struct {
	Hidden *bool `json:"hidden" validate:"required"`
}
