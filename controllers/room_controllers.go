package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{rooms: rooms}
}

func toRoomInput(req dto.RoomRequest) services.RoomInput {
	return services.RoomInput{
		RoomType:    req.RoomType,
		Capacity:    req.Capacity,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
	}
}

// GetAllRooms godoc
// @Summary      Danh sách phòng của khách sạn
// @Description  Lọc theo check_in, check_out, guests; bộ lọc thiếu hoặc sai trả về danh sách rỗng
// @Tags         rooms
// @Produce      json
// @Param        id         path   int     true   "Hotel ID"
// @Param        check_in   query  string  false  "YYYY-MM-DD"
// @Param        check_out  query  string  false  "YYYY-MM-DD"
// @Param        guests     query  int     false  "Số khách"
// @Success      200  {object}  response.Response{data=[]dto.RoomResponse}
// @Router       /hotels/{id}/rooms [get]
func (r *RoomController) GetAllRooms(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var q dto.StayQuery
	// form tags only, binding cannot fail on strings
	_ = c.ShouldBindQuery(&q)

	rooms, err := r.rooms.List(c.Request.Context(), hotelID, services.StayQuery{
		CheckIn:  q.CheckIn,
		CheckOut: q.CheckOut,
		Guests:   q.Guests,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToRoomResponses(rooms))
}

func (r *RoomController) GetRoomDetail(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	room, err := r.rooms.Get(c.Request.Context(), hotelID, roomID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToRoomResponse(*room))
}

func (r *RoomController) CreateRoom(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	room, err := r.rooms.Create(c.Request.Context(), middleware.CurrentUser(c), hotelID, toRoomInput(req))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Created(c, convertToRoomResponse(*room))
}

func (r *RoomController) UpdateRoom(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	var req dto.RoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	partial := c.Request.Method == "PATCH"
	room, err := r.rooms.Update(c.Request.Context(), middleware.CurrentUser(c), hotelID, roomID, toRoomInput(req), partial)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToRoomResponse(*room))
}

func (r *RoomController) DeleteRoom(c *gin.Context) {
	hotelID, ok := parseID(c, "id")
	if !ok {
		return
	}
	roomID, ok := parseID(c, "roomId")
	if !ok {
		return
	}
	if err := r.rooms.Delete(c.Request.Context(), middleware.CurrentUser(c), hotelID, roomID); err != nil {
		response.FromError(c, err)
		return
	}
	response.NoContent(c)
}
