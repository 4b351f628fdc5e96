package dto

import "time"

type ReviewResponse struct {
	ID        uint      `json:"id"`
	Booking   uint      `json:"booking"`
	User      string    `json:"user"`
	Hotel     string    `json:"hotel"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateReviewRequest struct {
	Booking uint   `json:"booking" binding:"required,min=1"`
	Text    string `json:"text"`
	Rating  int    `json:"rating" binding:"required"`
}

type UpdateReviewRequest struct {
	Text   *string `json:"text"`
	Rating *int    `json:"rating"`
}
