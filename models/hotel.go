package models

import (
	"fmt"
	"math"
	"time"
)

type Hotel struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:255;not null"`
	CityID      uint      `json:"cityId" gorm:"not null;index"`
	City        City      `json:"city" gorm:"foreignKey:CityID;constraint:OnDelete:CASCADE"`
	Address     string    `json:"address" gorm:"size:255"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Rating      float64   `json:"rating" gorm:"default:0"`
	ManagerID   *uint     `json:"managerId" gorm:"index"`
	Manager     *User     `json:"-" gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL"`
	Rooms       []Room    `json:"rooms,omitempty" gorm:"foreignKey:HotelID"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (h *Hotel) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("hotel name is required")
	}
	if h.CityID == 0 {
		return fmt.Errorf("hotel city is required")
	}
	return nil
}

// IsManagedBy reports whether userID is the hotel's manager.
func (h *Hotel) IsManagedBy(userID uint) bool {
	return h.ManagerID != nil && *h.ManagerID == userID
}

// RoundRating rounds a mean rating to 2 decimal places.
func RoundRating(avg float64) float64 {
	return math.Round(avg*100) / 100
}
