package models

import "time"

type Country struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

type City struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;not null;index"`
	CountryID uint      `json:"countryId" gorm:"not null"`
	Country   Country   `json:"country" gorm:"foreignKey:CountryID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (c City) Label() string {
	if c.Country.Name == "" {
		return c.Name
	}
	return c.Name + ", " + c.Country.Name
}
