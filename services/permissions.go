package services

import (
	"hotelbooking/models"
)

// Permission predicates. A nil principal is an anonymous caller.

func IsAuthenticated(u *models.User) bool {
	return u != nil
}

func IsNotBlocked(u *models.User) bool {
	return u != nil && !u.IsBlocked
}

func IsStaff(u *models.User) bool {
	return u != nil && u.IsStaff()
}

func IsAdmin(u *models.User) bool {
	return u != nil && u.IsAdmin()
}

func IsSelf(u *models.User, userID uint) bool {
	return u != nil && u.ID == userID
}

// CanManageHotel: admins, or staff managing this hotel.
func CanManageHotel(u *models.User, hotel *models.Hotel) bool {
	if IsAdmin(u) {
		return true
	}
	return IsStaff(u) && hotel != nil && hotel.IsManagedBy(u.ID)
}

func CanViewBooking(u *models.User, booking *models.Booking) bool {
	if IsAdmin(u) {
		return true
	}
	return u != nil && booking != nil && booking.UserID == u.ID
}

func CanChangeBookingStatus(u *models.User) bool {
	return IsAdmin(u)
}

func CanReviewBooking(u *models.User, booking *models.Booking) bool {
	return u != nil && booking != nil && booking.UserID == u.ID
}

func CanEditReview(u *models.User, review *models.Review) bool {
	return u != nil && review != nil && review.Booking.UserID == u.ID
}
