package dto

import "hotelbooking/response"

// PaginatedResponse là struct chung cho các response có phân trang
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// PageQuery đọc page/limit từ query string
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// StayQuery là bộ lọc check_in/check_out/guests
type StayQuery struct {
	CheckIn  string `form:"check_in"`
	CheckOut string `form:"check_out"`
	Guests   string `form:"guests"`
}

// SearchRequest là query của /search, mọi field đều bắt buộc
type SearchRequest struct {
	CityID   uint   `form:"city_id" binding:"required,min=1"`
	CheckIn  string `form:"check_in" binding:"required,isodate"`
	CheckOut string `form:"check_out" binding:"required,isodate"`
	Guests   int    `form:"guests" binding:"required,min=1"`
}
