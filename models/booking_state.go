package models

import (
	"fmt"

	"hotelbooking/constants"
)

// BookingState defines the transitions an administrator may apply.
type BookingState interface {
	Confirm(booking *Booking) error
	Cancel(booking *Booking) error
}

// PendingState trạng thái chờ xác nhận
type PendingState struct{}

func (s *PendingState) Confirm(booking *Booking) error {
	booking.Status = constants.BookingStatusConfirmed
	return nil
}

func (s *PendingState) Cancel(booking *Booking) error {
	booking.Status = constants.BookingStatusCanceled
	return nil
}

// ConfirmedState trạng thái đã xác nhận
type ConfirmedState struct{}

func (s *ConfirmedState) Confirm(booking *Booking) error {
	return fmt.Errorf("booking already confirmed")
}

func (s *ConfirmedState) Cancel(booking *Booking) error {
	booking.Status = constants.BookingStatusCanceled
	return nil
}

// CanceledState is terminal.
type CanceledState struct{}

func (s *CanceledState) Confirm(booking *Booking) error {
	return fmt.Errorf("cannot confirm canceled booking")
}

func (s *CanceledState) Cancel(booking *Booking) error {
	return fmt.Errorf("booking already canceled")
}

// GetBookingState trả về state tương ứng với trạng thái booking
func GetBookingState(status string) BookingState {
	switch status {
	case constants.BookingStatusConfirmed:
		return &ConfirmedState{}
	case constants.BookingStatusCanceled:
		return &CanceledState{}
	default:
		return &PendingState{}
	}
}

// TransitionBooking applies the transition that leads to target.
func TransitionBooking(booking *Booking, target string) error {
	state := GetBookingState(booking.Status)
	switch target {
	case constants.BookingStatusConfirmed:
		return state.Confirm(booking)
	case constants.BookingStatusCanceled:
		return state.Cancel(booking)
	case constants.BookingStatusPending:
		return fmt.Errorf("cannot move booking from %s back to pending", booking.Status)
	default:
		return fmt.Errorf("unknown booking status %q", target)
	}
}
