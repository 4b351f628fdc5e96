package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/events"
	"hotelbooking/services/logger"
	"hotelbooking/validator"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const pqUniqueViolation = "23505"

// mã extended của SQLite: SQLITE_CONSTRAINT_PRIMARYKEY, SQLITE_CONSTRAINT_UNIQUE
const (
	sqlitePrimaryKeyViolation = 1555
	sqliteUniqueViolation     = 2067
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	var coded interface{ Code() int }
	if errors.As(err, &coded) {
		code := coded.Code()
		return code == sqliteUniqueViolation || code == sqlitePrimaryKeyViolation
	}
	return false
}

// lockHotel khóa dòng hotel đến hết transaction để các lần tính rating chạy lần lượt
func lockHotel(tx *gorm.DB, hotelID uint) error {
	var hotel models.Hotel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Hotel not found")
		}
		return err
	}
	return nil
}

type ReviewInput struct {
	BookingID uint
	Text      string
	Rating    int
}

type ReviewService struct {
	db        *gorm.DB
	logger    logger.Logger
	publisher events.Publisher
	cache     *Cache
}

type ReviewServiceOptions struct {
	DB        *gorm.DB
	Logger    logger.Logger
	Publisher events.Publisher
	Cache     *Cache
}

func NewReviewService(opts ReviewServiceOptions) *ReviewService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	return &ReviewService{
		db:        opts.DB,
		logger:    opts.Logger,
		publisher: opts.Publisher,
		cache:     opts.Cache,
	}
}

// RecomputeHotelRating ghi lại rating trung bình của khách sạn: trung bình mọi
// review có booking thuộc phòng của khách sạn, làm tròn 2 chữ số, 0 khi chưa có
// review. Caller phải giữ khóa hotel (lockHotel) trong cùng transaction.
func RecomputeHotelRating(tx *gorm.DB, hotelID uint) (float64, error) {
	var avg sql.NullFloat64
	row := tx.Model(&models.Review{}).
		Select("AVG(reviews.rating)").
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("rooms.hotel_id = ?", hotelID).
		Row()
	if err := row.Scan(&avg); err != nil {
		return 0, err
	}

	rating := 0.0
	if avg.Valid {
		rating = models.RoundRating(avg.Float64)
	}
	if err := tx.Model(&models.Hotel{}).Where("id = ?", hotelID).Update("rating", rating).Error; err != nil {
		return 0, err
	}
	return rating, nil
}

func (s *ReviewService) List(ctx context.Context, hotelID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("Booking.User").
		Preload("Booking.Room.Hotel").
		Joins("JOIN bookings ON bookings.id = reviews.booking_id").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Where("rooms.hotel_id = ?", hotelID).
		Order("reviews.created_at DESC").Order("reviews.id DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to load reviews", err)
	}
	return reviews, nil
}

func (s *ReviewService) Get(ctx context.Context, hotelID, reviewID uint) (*models.Review, error) {
	var review models.Review
	err := s.db.WithContext(ctx).
		Preload("Booking.User").
		Preload("Booking.Room.Hotel").
		First(&review, reviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Review not found")
		}
		return nil, apperrors.Internal("Failed to load review", err)
	}
	if review.Booking.Room.HotelID != hotelID {
		return nil, apperrors.NotFound("Review not found")
	}
	return &review, nil
}

// Submit tạo review cho một booking đã xác nhận và cập nhật rating khách sạn
// trong cùng transaction.
func (s *ReviewService) Submit(ctx context.Context, user *models.User, hotelID uint, in ReviewInput) (*models.Review, error) {
	if !IsAuthenticated(user) {
		return nil, apperrors.NewAppError(apperrors.ErrCodeUnauthorized, "Authentication required", nil)
	}
	if err := validator.ValidateRating(in.Rating); err != nil {
		return nil, err
	}

	var review *models.Review
	var rating float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Room").First(&booking, in.BookingID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Booking not found")
			}
			return err
		}
		if !CanReviewBooking(user, &booking) {
			return apperrors.Permission("You can only review your own bookings")
		}
		if booking.Room.HotelID != hotelID {
			return apperrors.Validation("Booking does not belong to this hotel")
		}
		if booking.Status != constants.BookingStatusConfirmed {
			return apperrors.Validation("Only confirmed bookings can be reviewed")
		}
		if err := lockHotel(tx, hotelID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Review{}).Where("booking_id = ?", booking.ID).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return apperrors.Validation("This booking has already been reviewed")
		}

		review = &models.Review{BookingID: booking.ID, Text: in.Text, Rating: in.Rating}
		if err := tx.Create(review).Error; err != nil {
			return err
		}

		rating, err = RecomputeHotelRating(tx, hotelID)
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		if isUniqueViolation(err) {
			return nil, apperrors.Validation("This booking has already been reviewed")
		}
		return nil, apperrors.Internal("Failed to submit review", err)
	}

	s.afterRatingChange(ctx, hotelID, review, rating)
	return s.Get(ctx, hotelID, review.ID)
}

// Update lets the reviewer edit their review text and rating.
func (s *ReviewService) Update(ctx context.Context, user *models.User, hotelID, reviewID uint, text *string, ratingIn *int) (*models.Review, error) {
	if ratingIn != nil {
		if err := validator.ValidateRating(*ratingIn); err != nil {
			return nil, err
		}
	}
	review, err := s.Get(ctx, hotelID, reviewID)
	if err != nil {
		return nil, err
	}
	if !CanEditReview(user, review) {
		return nil, apperrors.Permission("You can only edit your own review")
	}

	updates := map[string]interface{}{}
	if text != nil {
		updates["text"] = *text
	}
	if ratingIn != nil {
		updates["rating"] = *ratingIn
	}
	if len(updates) == 0 {
		return review, nil
	}

	var rating float64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockHotel(tx, hotelID); err != nil {
			return err
		}
		if err := tx.Model(&models.Review{}).Where("id = ?", review.ID).Updates(updates).Error; err != nil {
			return err
		}
		var err error
		rating, err = RecomputeHotelRating(tx, hotelID)
		return err
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("Failed to update review", err)
	}
	if ratingIn != nil {
		review.Rating = *ratingIn
	}

	s.afterRatingChange(ctx, hotelID, review, rating)
	return s.Get(ctx, hotelID, review.ID)
}

func (s *ReviewService) afterRatingChange(ctx context.Context, hotelID uint, review *models.Review, rating float64) {
	if err := s.cache.Invalidate(ctx, hotelCachePrefix); err != nil {
		s.logger.Warn("failed to invalidate hotel cache: %v", err)
	}
	ev := events.New(events.ReviewSubmitted, fmt.Sprintf("hotel:%d", hotelID), events.ReviewPayload{
		ReviewID:  review.ID,
		BookingID: review.BookingID,
		HotelID:   hotelID,
		Rating:    review.Rating,
		NewRating: rating,
	})
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish %s: %v", ev.Type, err)
	}
}

// RecomputeAllRatings reconciles every hotel rating; run by the nightly job.
func (s *ReviewService) RecomputeAllRatings(ctx context.Context) (int, error) {
	var ids []uint
	if err := s.db.WithContext(ctx).Model(&models.Hotel{}).Pluck("id", &ids).Error; err != nil {
		return 0, err
	}
	for _, id := range ids {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := lockHotel(tx, id); err != nil {
				return err
			}
			_, err := RecomputeHotelRating(tx, id)
			return err
		})
		if err != nil {
			return 0, err
		}
	}
	if err := s.cache.Invalidate(ctx, hotelCachePrefix); err != nil {
		s.logger.Warn("failed to invalidate hotel cache: %v", err)
	}
	return len(ids), nil
}
