package models

import "time"

// Review is one-to-one with a confirmed booking.
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	BookingID uint      `json:"bookingId" gorm:"not null;uniqueIndex"`
	Booking   Booking   `json:"-" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE"`
	Text      string    `json:"text"`
	Rating    int       `json:"rating" gorm:"not null;default:1"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}
