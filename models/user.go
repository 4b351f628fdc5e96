package models

import (
	"time"

	"hotelbooking/constants"
)

// User rows are written by the auth service; this API only reads them and
// flips IsBlocked and Theme.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Username  string    `gorm:"size:150;not null" json:"username"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Role      int       `gorm:"default:0" json:"role"`
	IsBlocked bool      `gorm:"default:false" json:"isBlocked"`
	Theme     string    `gorm:"size:10;default:light" json:"theme"`
}

func (u *User) IsAdmin() bool { return u.Role == constants.RoleAdmin }

// IsStaff is true for staff and admins, like a superuser that is also staff.
func (u *User) IsStaff() bool {
	return u.Role == constants.RoleStaff || u.Role == constants.RoleAdmin
}

func (u *User) ToggleTheme() {
	if u.Theme == constants.ThemeDark {
		u.Theme = constants.ThemeLight
		return
	}
	u.Theme = constants.ThemeDark
}
