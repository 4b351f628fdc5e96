package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"
	"hotelbooking/validator"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	availability *services.AvailabilityService
	cities       *services.CityService
}

func NewSearchController(availability *services.AvailabilityService, cities *services.CityService) *SearchController {
	return &SearchController{availability: availability, cities: cities}
}

// SearchHotels godoc
// @Summary      Khách sạn còn ít nhất một phòng trống
// @Tags         search
// @Produce      json
// @Param        city_id    query  int     true  "City ID"
// @Param        check_in   query  string  true  "YYYY-MM-DD"
// @Param        check_out  query  string  true  "YYYY-MM-DD"
// @Param        guests     query  int     true  "Số khách"
// @Success      200  {object}  response.Response{data=[]dto.HotelResponse}
// @Failure      400  {object}  response.Response
// @Router       /search [get]
func (s *SearchController) SearchHotels(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}
	start, _ := models.ParseDate(req.CheckIn)
	end, _ := models.ParseDate(req.CheckOut)
	if err := validator.ValidateStay(start, end); err != nil {
		response.FromError(c, err)
		return
	}

	hotels, err := s.availability.SearchHotels(c.Request.Context(), req.CityID, start, end, req.Guests)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToHotelResponses(hotels))
}

func (s *SearchController) SearchCities(c *gin.Context) {
	cities, err := s.cities.Search(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]dto.CityResponse, 0, len(cities))
	for _, city := range cities {
		out = append(out, convertToCityResponse(city))
	}
	response.Success(c, out)
}
