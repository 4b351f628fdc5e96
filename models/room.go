package models

import (
	"fmt"
	"time"
)

type Room struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	HotelID     uint      `json:"hotelId" gorm:"not null;index"`
	Hotel       Hotel     `json:"-" gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE"`
	RoomType    string    `json:"roomType" gorm:"size:100;not null"`
	Capacity    int       `json:"capacity" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (r *Room) Validate() error {
	if r.Capacity < 1 {
		return fmt.Errorf("invalid capacity: %d, must be at least 1", r.Capacity)
	}
	if r.Price <= 0 {
		return fmt.Errorf("invalid price: %.2f, must be greater than 0", r.Price)
	}
	return nil
}
