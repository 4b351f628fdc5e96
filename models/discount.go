package models

import "time"

// Discount is a single-use roulette prize. Amount is a percentage.
type Discount struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"not null;index"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Amount    int       `json:"amount" gorm:"not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"not null;index"`
	Used      bool      `json:"used" gorm:"default:false;index"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsActive: unused and not yet expired at now.
func (d *Discount) IsActive(now time.Time) bool {
	return !d.Used && d.ExpiresAt.After(now)
}
