package events

import (
	"time"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	ReviewSubmitted      = "review.submitted"
	DiscountDrawn        = "discount.drawn"
)

// Event is the envelope written to the broker. Key orders events of the same
// aggregate, e.g. "booking:12".
type Event struct {
	Type       string      `json:"type"`
	Key        string      `json:"key"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

func New(eventType, key string, payload interface{}) Event {
	return Event{
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

type BookingPayload struct {
	BookingID       uint    `json:"bookingId"`
	UserID          uint    `json:"userId"`
	RoomID          uint    `json:"roomId"`
	StartDate       string  `json:"startDate"`
	EndDate         string  `json:"endDate"`
	TotalPrice      float64 `json:"totalPrice"`
	DiscountApplied bool    `json:"discountApplied"`
	Status          string  `json:"status"`
	PreviousStatus  string  `json:"previousStatus,omitempty"`
}

type ReviewPayload struct {
	ReviewID  uint    `json:"reviewId"`
	BookingID uint    `json:"bookingId"`
	HotelID   uint    `json:"hotelId"`
	Rating    int     `json:"rating"`
	NewRating float64 `json:"hotelRating"`
}

type DiscountPayload struct {
	DiscountID uint      `json:"discountId"`
	UserID     uint      `json:"userId"`
	Amount     int       `json:"amount"`
	ExpiresAt  time.Time `json:"expiresAt"`
}
