package dto

// UserAdminResponse là view của user cho admin
type UserAdminResponse struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	Username    string `json:"username"`
	IsBlocked   bool   `json:"is_blocked"`
	Theme       string `json:"theme"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
}

type ToggleActiveResponse struct {
	User   string `json:"user"`
	Active bool   `json:"active"`
	Status string `json:"status"`
}

type ToggleThemeResponse struct {
	User  string `json:"user"`
	Theme string `json:"theme"`
}
