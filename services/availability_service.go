package services

import (
	"context"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"

	"gorm.io/gorm"
)

// RoomScope narrows an availability query. Exactly one id should be set.
type RoomScope struct {
	RoomID  uint
	HotelID uint
	CityID  uint
}

type AvailabilityService struct {
	db     *gorm.DB
	logger logger.Logger
}

type AvailabilityServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewAvailabilityService(opts AvailabilityServiceOptions) *AvailabilityService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &AvailabilityService{db: opts.DB, logger: opts.Logger}
}

// blockingBookings selects bookings on rooms.id that overlap [start, end).
func blockingBookings(db *gorm.DB, start, end models.Date) *gorm.DB {
	return db.Model(&models.Booking{}).
		Select("1").
		Where("bookings.room_id = rooms.id").
		Where("bookings.status IN ?", models.ActiveBookingStatuses).
		Where("bookings.start_date < ? AND bookings.end_date > ?", end, start)
}

// availableRooms builds the room query; the caller picks columns and scope.
func availableRooms(db *gorm.DB, start, end models.Date, guests int) *gorm.DB {
	sub := blockingBookings(db.Session(&gorm.Session{NewDB: true}), start, end)
	return db.Model(&models.Room{}).
		Where("rooms.capacity >= ?", guests).
		Where("NOT EXISTS (?)", sub)
}

// AvailableRooms trả về các phòng còn trống trong khoảng [start, end)
func (s *AvailabilityService) AvailableRooms(ctx context.Context, scope RoomScope, start, end models.Date, guests int) ([]models.Room, error) {
	q := availableRooms(s.db.WithContext(ctx), start, end, guests)
	switch {
	case scope.RoomID != 0:
		q = q.Where("rooms.id = ?", scope.RoomID)
	case scope.HotelID != 0:
		q = q.Where("rooms.hotel_id = ?", scope.HotelID)
	case scope.CityID != 0:
		q = q.Joins("JOIN hotels ON hotels.id = rooms.hotel_id").Where("hotels.city_id = ?", scope.CityID)
	}

	var rooms []models.Room
	if err := q.Order("rooms.id").Find(&rooms).Error; err != nil {
		return nil, apperrors.Internal("Failed to load rooms", err)
	}
	return rooms, nil
}

// SearchHotels returns hotels of the city with at least one available room.
func (s *AvailabilityService) SearchHotels(ctx context.Context, cityID uint, start, end models.Date, guests int) ([]models.Hotel, error) {
	db := s.db.WithContext(ctx)
	hotelIDs := availableRooms(db.Session(&gorm.Session{NewDB: true}), start, end, guests).Select("rooms.hotel_id")

	var hotels []models.Hotel
	err := db.Preload("City.Country").
		Where("city_id = ?", cityID).
		Where("id IN (?)", hotelIDs).
		Order("id").
		Find(&hotels).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to search hotels", err)
	}
	return hotels, nil
}

// HasOverlap checks a room inside the booking transaction.
func (s *AvailabilityService) HasOverlap(tx *gorm.DB, roomID uint, start, end models.Date) (bool, error) {
	var count int64
	err := tx.Model(&models.Booking{}).
		Where("room_id = ? AND status IN ?", roomID, models.ActiveBookingStatuses).
		Where("start_date < ? AND end_date > ?", end, start).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
