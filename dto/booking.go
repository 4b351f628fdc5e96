package dto

import "time"

type BookingRoomRef struct {
	ID    uint `json:"id"`
	Hotel uint `json:"hotel"`
}

// BookingResponse là view đọc của booking
type BookingResponse struct {
	ID              uint           `json:"id"`
	Room            BookingRoomRef `json:"room"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	Guests          int            `json:"guests"`
	FirstName       string         `json:"first_name"`
	LastName        string         `json:"last_name"`
	Email           string         `json:"email"`
	Phone           string         `json:"phone"`
	DiscountApplied bool           `json:"discount_applied"`
	TotalPrice      float64        `json:"total_price"`
	Status          string         `json:"status"`
	CreatedAt       time.Time      `json:"created_at"`
	HasReview       bool           `json:"has_review"`
}

type CreateBookingRequest struct {
	Room      uint   `json:"room" binding:"required,min=1"`
	StartDate string `json:"start_date" binding:"required,isodate"`
	EndDate   string `json:"end_date" binding:"required,isodate"`
	Guests    int    `json:"guests" binding:"required,min=1"`
	FirstName string `json:"first_name" binding:"max=255"`
	LastName  string `json:"last_name" binding:"max=255"`
	Phone     string `json:"phone" binding:"max=30"`
}

// UpdateBookingStatusRequest chỉ dùng cho tài liệu swagger; handler đọc body
// dạng map để phát hiện field thừa.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required,bookingstatus"`
}
