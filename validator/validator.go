package validator

import (
	"strconv"
	"strings"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterBindings adds the custom tags used by request DTOs to gin's
// validator engine.
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("theme", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == constants.ThemeLight || s == constants.ThemeDark
	}); err != nil {
		return err
	}
	if err := v.RegisterValidation("bookingstatus", func(fl validator.FieldLevel) bool {
		return models.IsValidBookingStatus(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
}

// ValidateStay checks start < end.
func ValidateStay(start, end models.Date) error {
	if !start.Before(end) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidDates, "Check-in must be before check-out", nil)
	}
	return nil
}

// ValidateGuests checks guests against a room's capacity.
func ValidateGuests(guests int, room *models.Room) error {
	if guests < 1 {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, "Guests must be at least 1", nil)
	}
	if room != nil && guests > room.Capacity {
		return apperrors.NewAppError(apperrors.ErrCodeValidation,
			"Guests exceed room capacity of "+strconv.Itoa(room.Capacity), nil)
	}
	return nil
}

func ValidateRating(rating int) error {
	if !models.IsValidRating(rating) {
		return apperrors.NewAppError(apperrors.ErrCodeInvalidRating, "Rating must be between 1 and 5", nil)
	}
	return nil
}

func ValidateRoom(room *models.Room) error {
	if strings.TrimSpace(room.RoomType) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Room type is required", nil)
	}
	if err := room.Validate(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), nil)
	}
	return nil
}

func ValidateHotel(hotel *models.Hotel) error {
	if strings.TrimSpace(hotel.Name) == "" {
		return apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Hotel name is required", nil)
	}
	if err := hotel.Validate(); err != nil {
		return apperrors.NewAppError(apperrors.ErrCodeValidation, err.Error(), nil)
	}
	return nil
}

// ParseStayQuery parses the check_in/check_out/guests triple. Every value is
// required.
func ParseStayQuery(checkIn, checkOut, guests string) (models.Date, models.Date, int, error) {
	if checkIn == "" || checkOut == "" || guests == "" {
		return models.Date{}, models.Date{}, 0,
			apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Missing required parameters", nil)
	}
	start, err := models.ParseDate(checkIn)
	if err != nil {
		return models.Date{}, models.Date{}, 0,
			apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid date or guests format", err)
	}
	end, err := models.ParseDate(checkOut)
	if err != nil {
		return models.Date{}, models.Date{}, 0,
			apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid date or guests format", err)
	}
	n, err := strconv.Atoi(guests)
	if err != nil || n < 1 {
		return models.Date{}, models.Date{}, 0,
			apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, "Invalid date or guests format", err)
	}
	if err := ValidateStay(start, end); err != nil {
		return models.Date{}, models.Date{}, 0, err
	}
	return start, end, n, nil
}
