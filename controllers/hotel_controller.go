package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type HotelController struct {
	hotels *services.HotelService
}

func NewHotelController(hotels *services.HotelService) *HotelController {
	return &HotelController{hotels: hotels}
}

func toHotelInput(req dto.HotelRequest) services.HotelInput {
	return services.HotelInput{
		Name:        req.Name,
		City:        req.City,
		Address:     req.Address,
		Description: req.Description,
		Image:       req.Image,
	}
}

// GetHotels godoc
// @Summary      Danh sách khách sạn
// @Tags         hotels
// @Produce      json
// @Param        city   query  string  false  "Tên thành phố"
// @Param        page   query  int     false  "Trang"
// @Param        limit  query  int     false  "Số bản ghi mỗi trang"
// @Success      200  {object}  response.Response{data=[]dto.HotelResponse}
// @Router       /hotels [get]
func (h *HotelController) GetHotels(c *gin.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}
	hotels, total, err := h.hotels.List(c.Request.Context(), services.HotelFilter{
		City:  c.Query("city"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, convertToHotelResponses(hotels), page, limit, int(total))
}

func (h *HotelController) GetHotelDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hotel, err := h.hotels.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToHotelResponse(*hotel))
}

// CreateHotel godoc
// @Summary      Tạo khách sạn
// @Tags         hotels
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.HotelRequest  true  "Khách sạn, city là tên thành phố"
// @Success      201  {object}  response.Response{data=dto.HotelResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /hotels [post]
func (h *HotelController) CreateHotel(c *gin.Context) {
	var req dto.HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	hotel, err := h.hotels.Create(c.Request.Context(), middleware.CurrentUser(c), toHotelInput(req))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, convertToHotelResponse(*hotel))
}

// UpdateHotel xử lý cả PUT và PATCH
func (h *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.HotelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	partial := c.Request.Method == "PATCH"
	hotel, err := h.hotels.Update(c.Request.Context(), middleware.CurrentUser(c), id, toHotelInput(req), partial)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToHotelResponse(*hotel))
}

func (h *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.hotels.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
