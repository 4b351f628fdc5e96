package jobs

import (
	"context"
	"time"

	"hotelbooking/services"
	"hotelbooking/services/logger"

	"github.com/robfig/cron/v3"
)

// RatingReconciler tính lại rating của mọi khách sạn
type RatingReconciler interface {
	RecomputeAllRatings(ctx context.Context) (int, error)
}

type DiscountStatsSource interface {
	Stats(ctx context.Context, since time.Time) (services.DiscountStats, error)
}

type BookingCounter interface {
	CountSince(ctx context.Context, since time.Time) (total, discounted int64, err error)
}

type Options struct {
	RatingSpec   string
	DiscountSpec string
	Ratings      RatingReconciler
	Discounts    DiscountStatsSource
	Bookings     BookingCounter
	Logger       logger.Logger
	Now          func() time.Time
	Timeout      time.Duration
}

type Runner struct {
	opts Options
}

func NewRunner(opts Options) *Runner {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Minute
	}
	return &Runner{opts: opts}
}

// ReconcileRatings sửa rating bị lệch khi dữ liệu bị đổi ngoài API
func (r *Runner) ReconcileRatings() {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
	defer cancel()

	n, err := r.opts.Ratings.RecomputeAllRatings(ctx)
	if err != nil {
		r.opts.Logger.Error("Lỗi khi tính lại rating khách sạn: %v", err)
		return
	}
	r.opts.Logger.Info("Đã tính lại rating cho %d khách sạn", n)
}

// DiscountReport ghi log thống kê vòng quay và booking trong 24 giờ qua
func (r *Runner) DiscountReport() {
	ctx, cancel := context.WithTimeout(context.Background(), r.opts.Timeout)
	defer cancel()

	since := r.opts.Now().Add(-24 * time.Hour)
	stats, err := r.opts.Discounts.Stats(ctx, since)
	if err != nil {
		r.opts.Logger.Error("Lỗi khi thống kê discount: %v", err)
		return
	}
	total, discounted, err := r.opts.Bookings.CountSince(ctx, since)
	if err != nil {
		r.opts.Logger.Error("Lỗi khi đếm booking: %v", err)
		return
	}
	r.opts.Logger.Info("discount report since %s: drawn=%d used=%d active=%d avg=%.1f%% bookings=%d discounted=%d",
		since.Format(time.RFC3339), stats.Drawn, stats.Used, stats.Active, stats.Average, total, discounted)
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, opts Options) (*Runner, error) {
	r := NewRunner(opts)

	if opts.Ratings != nil && opts.RatingSpec != "" {
		if _, err := c.AddFunc(opts.RatingSpec, r.ReconcileRatings); err != nil {
			return nil, err
		}
	}
	if opts.Discounts != nil && opts.Bookings != nil && opts.DiscountSpec != "" {
		if _, err := c.AddFunc(opts.DiscountSpec, r.DiscountReport); err != nil {
			return nil, err
		}
	}

	c.Start()
	r.opts.Logger.Info("Cron jobs initialized successfully")
	return r, nil
}
