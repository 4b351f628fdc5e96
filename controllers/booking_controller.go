package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type BookingController struct {
	facade *services.BookingFacade
}

func NewBookingController(facade *services.BookingFacade) *BookingController {
	return &BookingController{facade: facade}
}

func (b *BookingController) GetBookings(c *gin.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}
	bookings, total, err := b.facade.ListBookings(c.Request.Context(), middleware.CurrentUser(c), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithPagination(c, convertToBookingResponses(bookings), page, limit, int(total))
}

func (b *BookingController) GetBookingDetail(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := b.facade.GetBooking(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToBookingResponse(*booking))
}

// CreateBooking godoc
// @Summary      Đặt phòng
// @Description  Tổng tiền = số đêm x giá phòng, trừ discount đang hiệu lực nếu có
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateBookingRequest  true  "Booking"
// @Success      201  {object}  response.Response{data=dto.BookingResponse}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /bookings [post]
func (b *BookingController) CreateBooking(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	start, _ := models.ParseDate(req.StartDate)
	end, _ := models.ParseDate(req.EndDate)

	booking, err := b.facade.CreateBooking(c.Request.Context(), middleware.CurrentUser(c), services.CreateBookingInput{
		RoomID:    req.Room,
		StartDate: start,
		EndDate:   end,
		Guests:    req.Guests,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, convertToBookingResponse(*booking))
}

// UpdateBookingStatus godoc
// @Summary      Admin đổi trạng thái booking
// @Description  Body chỉ được chứa field status
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                             true  "Booking ID"
// @Param        body  body  dto.UpdateBookingStatusRequest  true  "Trạng thái mới"
// @Success      200  {object}  response.Response{data=dto.BookingResponse}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /bookings/{id} [patch]
func (b *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	// map để biết client gửi những field nào
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "Dữ liệu không hợp lệ")
		return
	}
	booking, err := b.facade.ChangeStatus(c.Request.Context(), middleware.CurrentUser(c), id, patch)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToBookingResponse(*booking))
}
