package commands

import (
	"hotelbooking/models"

	"gorm.io/gorm"
)

// BookingCommand định nghĩa interface cho các command chạy trong transaction
type BookingCommand interface {
	Execute() error
}

// CreateBookingCommand command để tạo booking mới
type CreateBookingCommand struct {
	booking *models.Booking
	db      *gorm.DB
}

func NewCreateBookingCommand(booking *models.Booking, db *gorm.DB) *CreateBookingCommand {
	return &CreateBookingCommand{
		booking: booking,
		db:      db,
	}
}

func (c *CreateBookingCommand) Execute() error {
	return c.db.Create(c.booking).Error
}

// UpdateBookingStatusCommand chỉ ghi cột status
type UpdateBookingStatusCommand struct {
	booking *models.Booking
	db      *gorm.DB
}

func NewUpdateBookingStatusCommand(booking *models.Booking, db *gorm.DB) *UpdateBookingStatusCommand {
	return &UpdateBookingStatusCommand{
		booking: booking,
		db:      db,
	}
}

func (c *UpdateBookingStatusCommand) Execute() error {
	return c.db.Model(c.booking).Update("status", c.booking.Status).Error
}

// ConsumeDiscountCommand đánh dấu discount đã dùng
type ConsumeDiscountCommand struct {
	discount *models.Discount
	db       *gorm.DB
}

func NewConsumeDiscountCommand(discount *models.Discount, db *gorm.DB) *ConsumeDiscountCommand {
	return &ConsumeDiscountCommand{
		discount: discount,
		db:       db,
	}
}

func (c *ConsumeDiscountCommand) Execute() error {
	c.discount.Used = true
	return c.db.Model(c.discount).Update("used", true).Error
}

// ExecuteAll chạy lần lượt các command, dừng ở lỗi đầu tiên
func ExecuteAll(cmds ...BookingCommand) error {
	for _, cmd := range cmds {
		if err := cmd.Execute(); err != nil {
			return err
		}
	}
	return nil
}
