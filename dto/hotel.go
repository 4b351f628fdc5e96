package dto

import "time"

type CityRef struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type HotelResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	City        CityRef        `json:"city"`
	Address     string         `json:"address"`
	Description string         `json:"description"`
	Image       string         `json:"image"`
	Rating      float64        `json:"rating"`
	ManagerID   *uint          `json:"manager_id,omitempty"`
	Rooms       []RoomResponse `json:"rooms,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// HotelRequest dùng cho POST, PUT và PATCH; city là tên thành phố.
// Rating và manager không nhận từ client.
type HotelRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	City        *string `json:"city" binding:"omitempty,min=1"`
	Address     *string `json:"address" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}
