package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"hotelbooking/constants"
	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/services/events"
	"hotelbooking/services/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockedRand makes a *rand.Rand safe for concurrent draws.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

type DiscountService struct {
	db        *gorm.DB
	logger    logger.Logger
	locker    Locker
	publisher events.Publisher
	rng       *lockedRand
	now       func() time.Time
}

type DiscountServiceOptions struct {
	DB        *gorm.DB
	Logger    logger.Logger
	Locker    Locker
	Publisher events.Publisher
	// Rand is the roulette source; seed it in tests for repeatable draws.
	Rand *rand.Rand
	Now  func() time.Time
}

func NewDiscountService(opts DiscountServiceOptions) *DiscountService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Locker == nil {
		opts.Locker = NopLocker{}
	}
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	return &DiscountService{
		db:        opts.DB,
		logger:    opts.Logger,
		locker:    opts.Locker,
		publisher: opts.Publisher,
		rng:       &lockedRand{rng: opts.Rand},
		now:       opts.Now,
	}
}

// findActive returns the user's active discount or nil. Expiry is evaluated
// in Go so expired rows are never touched.
func findActive(tx *gorm.DB, userID uint, now time.Time, forUpdate bool) (*models.Discount, error) {
	q := tx.Where("user_id = ? AND used = ?", userID, false)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var discounts []models.Discount
	if err := q.Order("expires_at DESC").Order("id DESC").Find(&discounts).Error; err != nil {
		return nil, err
	}
	for i := range discounts {
		if discounts[i].IsActive(now) {
			return &discounts[i], nil
		}
	}
	return nil, nil
}

// Active trả về discount còn hiệu lực của user, nil nếu không có
func (s *DiscountService) Active(ctx context.Context, userID uint) (*models.Discount, error) {
	d, err := findActive(s.db.WithContext(ctx), userID, s.now(), false)
	if err != nil {
		return nil, apperrors.Internal("Failed to load discount", err)
	}
	return d, nil
}

// LockActive reads the active discount inside the booking transaction.
func (s *DiscountService) LockActive(tx *gorm.DB, userID uint) (*models.Discount, error) {
	return findActive(tx, userID, s.now(), true)
}

// Draw quay vòng quay may mắn. Nếu user còn mã giảm giá hiệu lực thì trả về mã
// đó kèm lỗi ACTIVE_DISCOUNT_EXISTS và không ghi gì thêm.
func (s *DiscountService) Draw(ctx context.Context, userID uint) (*models.Discount, error) {
	key := userDiscountLockKey(userID)
	token, ok, err := s.locker.Acquire(ctx, key)
	if err != nil {
		s.logger.Warn("discount lock unavailable for user %d: %v", userID, err)
	} else if !ok {
		return nil, apperrors.Conflict("Another draw is in progress")
	} else {
		defer func() {
			if err := s.locker.Release(context.Background(), key, token); err != nil {
				s.logger.Warn("failed to release %s: %v", key, err)
			}
		}()
	}

	now := s.now()
	var drawn *models.Discount
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("User not found")
			}
			return err
		}

		existing, err := findActive(tx, userID, now, true)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperrors.NewAppError(apperrors.ErrCodeActiveDiscount, "You already have an active discount", nil).
				WithData(existing)
		}

		span := constants.DiscountMaxPercent - constants.DiscountMinPercent + 1
		drawn = &models.Discount{
			UserID:    userID,
			Amount:    constants.DiscountMinPercent + s.rng.Intn(span),
			ExpiresAt: now.Add(constants.DiscountLifetimeHours * time.Hour),
		}
		return tx.Create(drawn).Error
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.Internal("Failed to draw discount", err)
	}

	s.logger.Info("user %d drew %d%% discount", userID, drawn.Amount)
	ev := events.New(events.DiscountDrawn, fmt.Sprintf("user:%d", userID), events.DiscountPayload{
		DiscountID: drawn.ID,
		UserID:     userID,
		Amount:     drawn.Amount,
		ExpiresAt:  drawn.ExpiresAt,
	})
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.logger.Warn("failed to publish %s: %v", ev.Type, err)
	}
	return drawn, nil
}

// DiscountStats is the daily roulette report.
type DiscountStats struct {
	Drawn   int64
	Used    int64
	Active  int64
	Average float64
}

// Stats tổng hợp các discount được tạo từ since
func (s *DiscountService) Stats(ctx context.Context, since time.Time) (DiscountStats, error) {
	var discounts []models.Discount
	if err := s.db.WithContext(ctx).Where("created_at >= ?", since).Find(&discounts).Error; err != nil {
		return DiscountStats{}, err
	}
	now := s.now()
	var stats DiscountStats
	total := 0
	for i := range discounts {
		stats.Drawn++
		total += discounts[i].Amount
		if discounts[i].Used {
			stats.Used++
		}
		if discounts[i].IsActive(now) {
			stats.Active++
		}
	}
	if stats.Drawn > 0 {
		stats.Average = float64(total) / float64(stats.Drawn)
	}
	return stats, nil
}
