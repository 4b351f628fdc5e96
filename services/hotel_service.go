package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/logger"
	"hotelbooking/validator"

	"gorm.io/gorm"
)

const hotelCachePrefix = "hotels:"

// HotelInput carries writable hotel fields; nil means "not sent".
type HotelInput struct {
	Name        *string
	City        *string
	Address     *string
	Description *string
	Image       *string
}

type HotelFilter struct {
	City  string
	Page  int
	Limit int
}

type HotelService struct {
	db          *gorm.DB
	logger      logger.Logger
	cache       *Cache
	cities      *CityService
	images      ImageStore
	imageFolder string
}

type HotelServiceOptions struct {
	DB          *gorm.DB
	Logger      logger.Logger
	Cache       *Cache
	Cities      *CityService
	Images      ImageStore
	ImageFolder string
}

func NewHotelService(opts HotelServiceOptions) *HotelService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Cities == nil {
		opts.Cities = NewCityService(CityServiceOptions{DB: opts.DB, Logger: opts.Logger, Cache: opts.Cache})
	}
	if opts.ImageFolder == "" {
		opts.ImageFolder = "hotels"
	}
	return &HotelService{
		db:          opts.DB,
		logger:      opts.Logger,
		cache:       opts.Cache,
		cities:      opts.Cities,
		images:      opts.Images,
		imageFolder: opts.ImageFolder,
	}
}

type hotelPage struct {
	Hotels []models.Hotel `json:"hotels"`
	Total  int64          `json:"total"`
}

func (s *HotelService) List(ctx context.Context, filter HotelFilter) ([]models.Hotel, int64, error) {
	cacheKey := fmt.Sprintf("%slist:%s:%d:%d", hotelCachePrefix, strings.ToLower(filter.City), filter.Page, filter.Limit)
	var cached hotelPage
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached.Hotels, cached.Total, nil
	}

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.City == "" {
			return db
		}
		return db.Joins("JOIN cities ON cities.id = hotels.city_id").
			Where("LOWER(cities.name) = ?", strings.ToLower(strings.TrimSpace(filter.City)))
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Hotel{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("Failed to count hotels", err)
	}

	var hotels []models.Hotel
	err := s.db.WithContext(ctx).Preload("City.Country").Scopes(scope).
		Order("hotels.id").
		Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit).
		Find(&hotels).Error
	if err != nil {
		return nil, 0, apperrors.Internal("Failed to load hotels", err)
	}

	if err := s.cache.Set(ctx, cacheKey, hotelPage{Hotels: hotels, Total: total}); err != nil {
		s.logger.Warn("Lỗi khi lưu hotels vào Redis: %v", err)
	}
	return hotels, total, nil
}

func (s *HotelService) Get(ctx context.Context, id uint) (*models.Hotel, error) {
	cacheKey := fmt.Sprintf("%sdetail:%d", hotelCachePrefix, id)
	var hotel models.Hotel
	if s.cache.Get(ctx, cacheKey, &hotel) {
		return &hotel, nil
	}
	err := s.db.WithContext(ctx).
		Preload("City.Country").
		Preload("Rooms", func(db *gorm.DB) *gorm.DB { return db.Order("rooms.id") }).
		First(&hotel, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Hotel not found")
		}
		return nil, apperrors.Internal("Failed to load hotel", err)
	}
	if err := s.cache.Set(ctx, cacheKey, hotel); err != nil {
		s.logger.Warn("Lỗi khi lưu hotel vào Redis: %v", err)
	}
	return &hotel, nil
}

func (s *HotelService) apply(ctx context.Context, hotel *models.Hotel, in HotelInput) error {
	if in.Name != nil {
		hotel.Name = strings.TrimSpace(*in.Name)
	}
	if in.City != nil {
		city, err := s.cities.ByName(ctx, *in.City)
		if err != nil {
			return err
		}
		hotel.CityID = city.ID
		hotel.City = *city
	}
	if in.Address != nil {
		hotel.Address = *in.Address
	}
	if in.Description != nil {
		hotel.Description = *in.Description
	}
	if in.Image != nil {
		url, err := ResolveImage(ctx, s.images, *in.Image, s.imageFolder)
		if err != nil {
			return err
		}
		hotel.Image = url
	}
	return validator.ValidateHotel(hotel)
}

// Create tạo khách sạn mới, người tạo trở thành manager
func (s *HotelService) Create(ctx context.Context, user *models.User, in HotelInput) (*models.Hotel, error) {
	if !IsStaff(user) {
		return nil, apperrors.Permission("Only staff can create hotels")
	}
	if in.Name == nil || in.City == nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Name and city are required", nil)
	}

	managerID := user.ID
	hotel := &models.Hotel{ManagerID: &managerID}
	if err := s.apply(ctx, hotel, in); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Omit("City", "Manager").Create(hotel).Error; err != nil {
		return nil, apperrors.Internal("Failed to create hotel", err)
	}
	s.invalidate(ctx)
	s.logger.Info("hotel %d created by user %d", hotel.ID, user.ID)
	return hotel, nil
}

// Update ghi đè (PUT) hoặc cập nhật một phần (PATCH) khách sạn
func (s *HotelService) Update(ctx context.Context, user *models.User, id uint, in HotelInput, partial bool) (*models.Hotel, error) {
	hotel, err := s.loadForWrite(ctx, user, id)
	if err != nil {
		return nil, err
	}
	if !partial && (in.Name == nil || in.City == nil) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "Name and city are required", nil)
	}
	if err := s.apply(ctx, hotel, in); err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Model(hotel).
		Select("name", "city_id", "address", "description", "image").
		Updates(hotel).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to update hotel", err)
	}
	s.invalidate(ctx)
	return hotel, nil
}

func (s *HotelService) Delete(ctx context.Context, user *models.User, id uint) error {
	hotel, err := s.loadForWrite(ctx, user, id)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Select("Rooms").Delete(hotel).Error; err != nil {
		return apperrors.Internal("Failed to delete hotel", err)
	}
	s.invalidate(ctx)
	s.logger.Info("hotel %d deleted by user %d", id, user.ID)
	return nil
}

// loadForWrite reads the hotel from the database, never the cache.
func (s *HotelService) loadForWrite(ctx context.Context, user *models.User, id uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.db.WithContext(ctx).Preload("City.Country").First(&hotel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Hotel not found")
		}
		return nil, apperrors.Internal("Failed to load hotel", err)
	}
	if !CanManageHotel(user, &hotel) {
		return nil, apperrors.Permission("You do not manage this hotel")
	}
	return &hotel, nil
}

func (s *HotelService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, hotelCachePrefix); err != nil {
		s.logger.Warn("failed to invalidate hotel cache: %v", err)
	}
}
