package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/models"
)

func convertToHotelResponse(h models.Hotel) dto.HotelResponse {
	resp := dto.HotelResponse{
		ID:          h.ID,
		Name:        h.Name,
		City:        dto.CityRef{Name: h.City.Name, Country: h.City.Country.Name},
		Address:     h.Address,
		Description: h.Description,
		Image:       h.Image,
		Rating:      h.Rating,
		ManagerID:   h.ManagerID,
		CreatedAt:   h.CreatedAt,
	}
	for _, r := range h.Rooms {
		resp.Rooms = append(resp.Rooms, convertToRoomResponse(r))
	}
	return resp
}

func convertToHotelResponses(hotels []models.Hotel) []dto.HotelResponse {
	out := make([]dto.HotelResponse, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, convertToHotelResponse(h))
	}
	return out
}

func convertToRoomResponse(r models.Room) dto.RoomResponse {
	return dto.RoomResponse{
		ID:          r.ID,
		HotelID:     r.HotelID,
		RoomType:    r.RoomType,
		Capacity:    r.Capacity,
		Price:       r.Price,
		Description: r.Description,
		Image:       r.Image,
	}
}

func convertToRoomResponses(rooms []models.Room) []dto.RoomResponse {
	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, convertToRoomResponse(r))
	}
	return out
}

func convertToBookingResponse(b models.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:              b.ID,
		Room:            dto.BookingRoomRef{ID: b.RoomID, Hotel: b.Room.HotelID},
		StartDate:       b.StartDate.String(),
		EndDate:         b.EndDate.String(),
		Guests:          b.Guests,
		FirstName:       b.FirstName,
		LastName:        b.LastName,
		Email:           b.User.Email,
		Phone:           b.Phone,
		DiscountApplied: b.DiscountApplied,
		TotalPrice:      b.TotalPrice,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		HasReview:       b.Review != nil,
	}
}

func convertToBookingResponses(bookings []models.Booking) []dto.BookingResponse {
	out := make([]dto.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, convertToBookingResponse(b))
	}
	return out
}

func convertToReviewResponse(r models.Review) dto.ReviewResponse {
	return dto.ReviewResponse{
		ID:        r.ID,
		Booking:   r.BookingID,
		User:      r.Booking.User.Username,
		Hotel:     r.Booking.Room.Hotel.Name,
		Text:      r.Text,
		Rating:    r.Rating,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func convertToDiscountResponse(d models.Discount) dto.DiscountResponse {
	return dto.DiscountResponse{
		Code:      d.ID,
		Amount:    d.Amount,
		ExpiresAt: d.ExpiresAt,
	}
}

func convertToUserAdminResponse(u models.User) dto.UserAdminResponse {
	return dto.UserAdminResponse{
		ID:          u.ID,
		Email:       u.Email,
		Username:    u.Username,
		IsBlocked:   u.IsBlocked,
		Theme:       u.Theme,
		IsStaff:     u.IsStaff(),
		IsSuperuser: u.IsAdmin(),
	}
}

func convertToCityResponse(c models.City) dto.CityResponse {
	return dto.CityResponse{
		ID:      c.ID,
		Name:    c.Name,
		Country: dto.CountryResponse{Name: c.Country.Name},
	}
}
