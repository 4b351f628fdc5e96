package models

import (
	"time"

	"hotelbooking/constants"
)

type Booking struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	UserID          uint      `json:"userId" gorm:"not null;index"`
	User            User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	RoomID          uint      `json:"roomId" gorm:"not null;index:idx_booking_room_dates"`
	Room            Room      `json:"-" gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE"`
	StartDate       Date      `json:"startDate" gorm:"not null;index:idx_booking_room_dates"`
	EndDate         Date      `json:"endDate" gorm:"not null;index:idx_booking_room_dates"`
	Guests          int       `json:"guests" gorm:"not null"`
	FirstName       string    `json:"firstName" gorm:"size:255"`
	LastName        string    `json:"lastName" gorm:"size:255"`
	Phone           string    `json:"phone" gorm:"size:30"`
	TotalPrice      float64   `json:"totalPrice" gorm:"type:decimal(10,2)"`
	DiscountApplied bool      `json:"discountApplied" gorm:"default:false"`
	Status          string    `json:"status" gorm:"size:20;default:pending;index"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
	Review          *Review   `json:"-" gorm:"foreignKey:BookingID"`
}

// ActiveBookingStatuses block the room for their date range.
var ActiveBookingStatuses = []string{constants.BookingStatusPending, constants.BookingStatusConfirmed}

func (b *Booking) Nights() int {
	return b.StartDate.DaysUntil(b.EndDate)
}

// Overlaps uses half-open [start, end) intervals.
func (b *Booking) Overlaps(start, end Date) bool {
	return b.StartDate.Before(end) && start.Before(b.EndDate)
}

func IsValidBookingStatus(status string) bool {
	switch status {
	case constants.BookingStatusPending, constants.BookingStatusConfirmed, constants.BookingStatusCanceled:
		return true
	}
	return false
}
