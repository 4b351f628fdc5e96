package dto

type RoomResponse struct {
	ID          uint    `json:"id"`
	HotelID     uint    `json:"hotel"`
	RoomType    string  `json:"room_type"`
	Capacity    int     `json:"capacity"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

type RoomRequest struct {
	RoomType    *string  `json:"room_type" binding:"omitempty,min=1,max=100"`
	Capacity    *int     `json:"capacity" binding:"omitempty,min=1"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}
