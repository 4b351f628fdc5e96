package builders

import (
	"math"

	"hotelbooking/constants"
	"hotelbooking/models"
)

// BookingBuilder giúp tạo booking theo từng bước
type BookingBuilder struct {
	booking *models.Booking
}

// NewBookingBuilder tạo instance mới của BookingBuilder
func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		booking: &models.Booking{Status: constants.BookingStatusPending},
	}
}

// WithUser thêm thông tin user
func (b *BookingBuilder) WithUser(userID uint) *BookingBuilder {
	b.booking.UserID = userID
	return b
}

// WithRoom thêm thông tin phòng
func (b *BookingBuilder) WithRoom(roomID uint) *BookingBuilder {
	b.booking.RoomID = roomID
	return b
}

// WithStay thêm ngày nhận, trả phòng và số khách
func (b *BookingBuilder) WithStay(start, end models.Date, guests int) *BookingBuilder {
	b.booking.StartDate = start
	b.booking.EndDate = end
	b.booking.Guests = guests
	return b
}

// WithGuestInfo thêm thông tin khách
func (b *BookingBuilder) WithGuestInfo(firstName, lastName, phone string) *BookingBuilder {
	b.booking.FirstName = firstName
	b.booking.LastName = lastName
	b.booking.Phone = phone
	return b
}

// WithStatus thêm trạng thái
func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.booking.Status = status
	return b
}

// WithPrice tính tổng giá: số đêm x giá mỗi đêm, trừ phần trăm giảm giá.
func (b *BookingBuilder) WithPrice(nightly float64, discount *models.Discount) *BookingBuilder {
	base := float64(b.booking.Nights()) * nightly
	if discount != nil {
		base = ApplyDiscount(base, discount.Amount)
		b.booking.DiscountApplied = true
	}
	b.booking.TotalPrice = RoundMoney(base)
	return b
}

// Build trả về booking đã được tạo
func (b *BookingBuilder) Build() *models.Booking {
	return b.booking
}

func ApplyDiscount(base float64, percent int) float64 {
	return base * (1 - float64(percent)/100)
}

func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
