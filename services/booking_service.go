package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelbooking/builders"
	"hotelbooking/commands"
	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"
	"hotelbooking/validator"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// exclusion_violation, raised by the bookings_no_overlap constraint
const pqExclusionViolation = "23P01"

type CreateBookingInput struct {
	RoomID    uint
	StartDate models.Date
	EndDate   models.Date
	Guests    int
	FirstName string
	LastName  string
	Phone     string
}

type BookingService struct {
	db           *gorm.DB
	logger       logger.Logger
	locker       Locker
	availability *AvailabilityService
	discounts    *DiscountService
}

type BookingServiceOptions struct {
	DB           *gorm.DB
	Logger       logger.Logger
	Locker       Locker
	Availability *AvailabilityService
	Discounts    *DiscountService
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Locker == nil {
		opts.Locker = NopLocker{}
	}
	if opts.Availability == nil {
		opts.Availability = NewAvailabilityService(AvailabilityServiceOptions{DB: opts.DB, Logger: opts.Logger})
	}
	if opts.Discounts == nil {
		opts.Discounts = NewDiscountService(DiscountServiceOptions{DB: opts.DB, Logger: opts.Logger})
	}
	return &BookingService{
		db:           opts.DB,
		logger:       opts.Logger,
		locker:       opts.Locker,
		availability: opts.Availability,
		discounts:    opts.Discounts,
	}
}

func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation
}

// Create đặt phòng trong một transaction: khóa phòng, kiểm tra trùng lịch,
// tính giá và dùng mã giảm giá đang hiệu lực.
func (s *BookingService) Create(ctx context.Context, user *models.User, in CreateBookingInput) (*models.Booking, error) {
	if !IsAuthenticated(user) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Authentication required", nil)
	}
	if !IsNotBlocked(user) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUserBlocked, "Your account is blocked", nil)
	}
	if err := validator.ValidateStay(in.StartDate, in.EndDate); err != nil {
		return nil, err
	}

	key := roomLockKey(in.RoomID)
	token, ok, err := s.locker.Acquire(ctx, key)
	if err != nil {
		// row locks still serialize writers
		s.logger.Warn("room lock unavailable for room %d: %v", in.RoomID, err)
	} else if !ok {
		return nil, apperrors.Conflict("Room is being booked by another request, please retry")
	} else {
		defer func() {
			if err := s.locker.Release(context.Background(), key, token); err != nil {
				s.logger.Warn("failed to release %s: %v", key, err)
			}
		}()
	}

	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, apperrors.Internal("Failed to start transaction", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()
	fail := func(err error) (*models.Booking, error) {
		tx.Rollback()
		return nil, err
	}

	var room models.Room
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&room, in.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(apperrors.NotFound("Room not found"))
		}
		return fail(apperrors.Internal("Failed to load room", err))
	}

	if err := validator.ValidateGuests(in.Guests, &room); err != nil {
		return fail(err)
	}

	overlap, err := s.availability.HasOverlap(tx, room.ID, in.StartDate, in.EndDate)
	if err != nil {
		return fail(apperrors.Internal("Failed to check availability", err))
	}
	if overlap {
		return fail(apperrors.NewAppError(apperrors.ErrCodeRoomOccupied, "Room is already booked for the selected dates", nil))
	}

	discount, err := s.discounts.LockActive(tx, user.ID)
	if err != nil {
		return fail(apperrors.Internal("Failed to load discount", err))
	}

	booking := builders.NewBookingBuilder().
		WithUser(user.ID).
		WithRoom(room.ID).
		WithStay(in.StartDate, in.EndDate, in.Guests).
		WithGuestInfo(in.FirstName, in.LastName, in.Phone).
		WithStatus(constants.BookingStatusPending).
		WithPrice(room.Price, discount).
		Build()

	cmds := []commands.BookingCommand{}
	if discount != nil {
		cmds = append(cmds, commands.NewConsumeDiscountCommand(discount, tx))
	}
	cmds = append(cmds, commands.NewCreateBookingCommand(booking, tx))
	if err := commands.ExecuteAll(cmds...); err != nil {
		if isOverlapViolation(err) {
			return fail(apperrors.Conflict("Room was booked by another request for these dates"))
		}
		return fail(apperrors.Internal("Failed to create booking", err))
	}

	if err := tx.Commit().Error; err != nil {
		if isOverlapViolation(err) {
			return nil, apperrors.Conflict("Room was booked by another request for these dates")
		}
		return nil, apperrors.Internal("Failed to commit booking", err)
	}

	booking.Room = room
	booking.User = *user
	s.logger.Info("booking %d created for room %d by user %d (%.2f)", booking.ID, room.ID, user.ID, booking.TotalPrice)
	return booking, nil
}

func (s *BookingService) withDetails(db *gorm.DB) *gorm.DB {
	return db.Preload("User").Preload("Room").Preload("Review")
}

// List trả về booking của user, admin thấy tất cả
func (s *BookingService) List(ctx context.Context, user *models.User, page, limit int) ([]models.Booking, int64, error) {
	if !IsAuthenticated(user) {
		return nil, 0, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Authentication required", nil)
	}
	owned := func(db *gorm.DB) *gorm.DB {
		if IsAdmin(user) {
			return db
		}
		return db.Where("user_id = ?", user.ID)
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Booking{}).Scopes(owned).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}

	var bookings []models.Booking
	err := s.withDetails(s.db.WithContext(ctx)).Scopes(owned).
		Order("created_at DESC").Order("id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to load bookings", err)
	}
	return bookings, total, nil
}

func (s *BookingService) Get(ctx context.Context, user *models.User, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.withDetails(s.db.WithContext(ctx)).First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Booking not found")
		}
		return nil, apperrors.Internal("Failed to load booking", err)
	}
	if !CanViewBooking(user, &booking) {
		return nil, apperrors.Permission("You do not have permission to view this booking")
	}
	return &booking, nil
}

// UpdateStatus applies an admin status change. patch must contain the
// status key and nothing else.
func (s *BookingService) UpdateStatus(ctx context.Context, user *models.User, id uint, patch map[string]interface{}) (*models.Booking, string, error) {
	if !CanChangeBookingStatus(user) {
		return nil, "", apperrors.Permission("Only administrators can change booking status")
	}

	for k := range patch {
		if k != "status" {
			return nil, "", apperrors.Permission(fmt.Sprintf("Field %q cannot be changed", k))
		}
	}
	raw, ok := patch["status"]
	if !ok {
		return nil, "", apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Status is required", nil)
	}
	target, ok := raw.(string)
	if !ok || !models.IsValidBookingStatus(target) {
		return nil, "", apperrors.Validation("Invalid booking status")
	}

	var booking models.Booking
	var previous string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Booking not found")
			}
			return err
		}
		previous = booking.Status
		if err := models.TransitionBooking(&booking, target); err != nil {
			return apperrors.Validation(err.Error())
		}
		return commands.NewUpdateBookingStatusCommand(&booking, tx).Execute()
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, "", err
		}
		return nil, "", apperrors.Internal("Failed to update booking", err)
	}

	if err := s.withDetails(s.db.WithContext(ctx)).First(&booking, id).Error; err != nil {
		return nil, "", apperrors.Internal("Failed to load booking", err)
	}
	s.logger.Info("booking %d: %s -> %s by admin %d", booking.ID, previous, booking.Status, user.ID)
	return &booking, previous, nil
}

// CountSince counts bookings created since, and how many used a discount.
func (s *BookingService) CountSince(ctx context.Context, since time.Time) (total, discounted int64, err error) {
	err = s.db.WithContext(ctx).Model(&models.Booking{}).Where("created_at >= ?", since).Count(&total).Error
	if err != nil {
		return 0, 0, err
	}
	err = s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("created_at >= ? AND discount_applied = ?", since, true).
		Count(&discounted).Error
	return total, discounted, err
}
