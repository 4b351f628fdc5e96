package services

import (
	"context"
	"errors"
	"strings"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"
	"hotelbooking/validator"

	"gorm.io/gorm"
)

type RoomInput struct {
	RoomType    *string
	Capacity    *int
	Description *string
	Price       *float64
	Image       *string
}

// StayQuery is the raw check_in/check_out/guests filter of a room listing.
type StayQuery struct {
	CheckIn  string
	CheckOut string
	Guests   string
}

func (q StayQuery) Empty() bool {
	return q.CheckIn == "" && q.CheckOut == "" && q.Guests == ""
}

type RoomService struct {
	db           *gorm.DB
	logger       logger.Logger
	availability *AvailabilityService
	images       ImageStore
	imageFolder  string
	cache        *Cache
}

type RoomServiceOptions struct {
	DB           *gorm.DB
	Logger       logger.Logger
	Availability *AvailabilityService
	Images       ImageStore
	ImageFolder  string
	Cache        *Cache
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Availability == nil {
		opts.Availability = NewAvailabilityService(AvailabilityServiceOptions{DB: opts.DB, Logger: opts.Logger})
	}
	if opts.ImageFolder == "" {
		opts.ImageFolder = "rooms"
	}
	return &RoomService{
		db:           opts.DB,
		logger:       opts.Logger,
		availability: opts.Availability,
		images:       opts.Images,
		imageFolder:  opts.ImageFolder,
		cache:        opts.Cache,
	}
}

func (s *RoomService) hotel(ctx context.Context, hotelID uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.db.WithContext(ctx).First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Hotel not found")
		}
		return nil, apperrors.Internal("Failed to load hotel", err)
	}
	return &hotel, nil
}

// List trả về phòng của khách sạn. Không có bộ lọc thì trả về mọi phòng; bộ
// lọc thiếu hoặc sai định dạng trả về danh sách rỗng.
func (s *RoomService) List(ctx context.Context, hotelID uint, stay StayQuery) ([]models.Room, error) {
	if _, err := s.hotel(ctx, hotelID); err != nil {
		return nil, err
	}

	if stay.Empty() {
		var rooms []models.Room
		if err := s.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("id").Find(&rooms).Error; err != nil {
			return nil, apperrors.Internal("Failed to load rooms", err)
		}
		return rooms, nil
	}

	start, end, guests, err := validator.ParseStayQuery(stay.CheckIn, stay.CheckOut, stay.Guests)
	if err != nil {
		return []models.Room{}, nil
	}
	return s.availability.AvailableRooms(ctx, RoomScope{HotelID: hotelID}, start, end, guests)
}

func (s *RoomService) Get(ctx context.Context, hotelID, roomID uint) (*models.Room, error) {
	var room models.Room
	err := s.db.WithContext(ctx).Where("hotel_id = ?", hotelID).First(&room, roomID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Room not found")
		}
		return nil, apperrors.Internal("Failed to load room", err)
	}
	return &room, nil
}

func (s *RoomService) apply(ctx context.Context, room *models.Room, in RoomInput) error {
	if in.RoomType != nil {
		room.RoomType = strings.TrimSpace(*in.RoomType)
	}
	if in.Capacity != nil {
		room.Capacity = *in.Capacity
	}
	if in.Description != nil {
		room.Description = *in.Description
	}
	if in.Price != nil {
		room.Price = *in.Price
	}
	if in.Image != nil {
		url, err := ResolveImage(ctx, s.images, *in.Image, s.imageFolder)
		if err != nil {
			return err
		}
		room.Image = url
	}
	return validator.ValidateRoom(room)
}

func (s *RoomService) requireManager(ctx context.Context, user *models.User, hotelID uint) error {
	hotel, err := s.hotel(ctx, hotelID)
	if err != nil {
		return err
	}
	if !CanManageHotel(user, hotel) {
		return apperrors.Permission("You do not manage this hotel")
	}
	return nil
}

func (s *RoomService) Create(ctx context.Context, user *models.User, hotelID uint, in RoomInput) (*models.Room, error) {
	if err := s.requireManager(ctx, user, hotelID); err != nil {
		return nil, err
	}
	if in.RoomType == nil || in.Capacity == nil || in.Price == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Room type, capacity and price are required", nil)
	}

	room := &models.Room{HotelID: hotelID}
	if err := s.apply(ctx, room, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit("Hotel").Create(room).Error; err != nil {
		return nil, apperrors.Internal("Failed to create room", err)
	}
	s.invalidate(ctx)
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, user *models.User, hotelID, roomID uint, in RoomInput, partial bool) (*models.Room, error) {
	if err := s.requireManager(ctx, user, hotelID); err != nil {
		return nil, err
	}
	room, err := s.Get(ctx, hotelID, roomID)
	if err != nil {
		return nil, err
	}
	if !partial && (in.RoomType == nil || in.Capacity == nil || in.Price == nil) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Room type, capacity and price are required", nil)
	}
	if err := s.apply(ctx, room, in); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(room).
		Select("room_type", "capacity", "description", "price", "image").
		Updates(room).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to update room", err)
	}
	s.invalidate(ctx)
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, user *models.User, hotelID, roomID uint) error {
	if err := s.requireManager(ctx, user, hotelID); err != nil {
		return err
	}
	room, err := s.Get(ctx, hotelID, roomID)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(room).Error; err != nil {
		return apperrors.Internal("Failed to delete room", err)
	}
	s.invalidate(ctx)
	return nil
}

// hotel payloads embed rooms, so room writes drop hotel caches too
func (s *RoomService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, hotelCachePrefix); err != nil {
		s.logger.Warn("failed to invalidate hotel cache: %v", err)
	}
}
