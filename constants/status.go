package constants

// User roles
const (
	RoleUser  = 0
	RoleAdmin = 1
	RoleStaff = 2
)

// Booking status
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCanceled  = "canceled"
)

// UI theme
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Roulette
const (
	DiscountMinPercent    = 5
	DiscountMaxPercent    = 30
	DiscountLifetimeHours = 24
)

// Date layout used by every date-only field
const DateLayout = "2006-01-02"

// Pagination
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)
