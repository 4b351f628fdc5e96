package services

import (
	"context"
	"fmt"

	"hotelbooking/models"
	"hotelbooking/services/events"
	"hotelbooking/services/logger"
	"hotelbooking/services/notification"
)

// BookingFacade đơn giản hóa việc tương tác với các service: chạy transaction
// booking, sau đó publish event và báo cho chủ booking. Lỗi sau khi commit chỉ
// được ghi log, không làm hỏng request.
type BookingFacade struct {
	bookings  *BookingService
	publisher events.Publisher
	notifier  notification.Service
	logger    logger.Logger
}

type BookingFacadeOptions struct {
	Bookings  *BookingService
	Publisher events.Publisher
	Notifier  notification.Service
	Logger    logger.Logger
}

// NewBookingFacade tạo instance mới của BookingFacade
func NewBookingFacade(opts BookingFacadeOptions) *BookingFacade {
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &BookingFacade{
		bookings:  opts.Bookings,
		publisher: opts.Publisher,
		notifier:  opts.Notifier,
		logger:    opts.Logger,
	}
}

func bookingPayload(b *models.Booking, previous string) events.BookingPayload {
	return events.BookingPayload{
		BookingID:       b.ID,
		UserID:          b.UserID,
		RoomID:          b.RoomID,
		StartDate:       b.StartDate.String(),
		EndDate:         b.EndDate.String(),
		TotalPrice:      b.TotalPrice,
		DiscountApplied: b.DiscountApplied,
		Status:          b.Status,
		PreviousStatus:  previous,
	}
}

// CreateBooking tạo booking mới
func (f *BookingFacade) CreateBooking(ctx context.Context, user *models.User, in CreateBookingInput) (*models.Booking, error) {
	booking, err := f.bookings.Create(ctx, user, in)
	if err != nil {
		return nil, err
	}

	ev := events.New(events.BookingCreated, fmt.Sprintf("booking:%d", booking.ID), bookingPayload(booking, ""))
	if err := f.publisher.Publish(ctx, ev); err != nil {
		f.logger.Warn("failed to publish %s: %v", ev.Type, err)
	}
	return booking, nil
}

// ChangeStatus cập nhật trạng thái và báo cho chủ booking qua websocket
func (f *BookingFacade) ChangeStatus(ctx context.Context, user *models.User, id uint, patch map[string]interface{}) (*models.Booking, error) {
	booking, previous, err := f.bookings.UpdateStatus(ctx, user, id, patch)
	if err != nil {
		return nil, err
	}

	ev := events.New(events.BookingStatusChanged, fmt.Sprintf("booking:%d", booking.ID), bookingPayload(booking, previous))
	if err := f.publisher.Publish(ctx, ev); err != nil {
		f.logger.Warn("failed to publish %s: %v", ev.Type, err)
	}

	if f.notifier != nil {
		msg := notification.NewMessageBuilder(booking.ID, booking.RoomID, booking.Status).Build()
		if err := f.notifier.SendToUser(booking.UserID, msg); err != nil {
			f.logger.Warn("failed to notify user %d: %v", booking.UserID, err)
		}
	}
	return booking, nil
}

func (f *BookingFacade) ListBookings(ctx context.Context, user *models.User, page, limit int) ([]models.Booking, int64, error) {
	return f.bookings.List(ctx, user, page, limit)
}

func (f *BookingFacade) GetBooking(ctx context.Context, user *models.User, id uint) (*models.Booking, error) {
	return f.bookings.Get(ctx, user, id)
}
