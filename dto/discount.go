package dto

import "time"

// DiscountResponse là kết quả vòng quay; discount_code là id của discount
type DiscountResponse struct {
	Code      uint      `json:"discount_code"`
	Amount    int       `json:"discount_amount"`
	ExpiresAt time.Time `json:"expires_at"`
}
