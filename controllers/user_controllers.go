package controllers

import (
	"hotelbooking/dto"
	"hotelbooking/middleware"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users services.UserServiceInterface
}

func NewUserController(users services.UserServiceInterface) *UserController {
	return &UserController{users: users}
}

func (u *UserController) GetUsers(c *gin.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}
	users, total, err := u.users.List(c.Request.Context(), middleware.CurrentUser(c), page, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]dto.UserAdminResponse, 0, len(users))
	for _, user := range users {
		out = append(out, convertToUserAdminResponse(user))
	}
	response.SuccessWithPagination(c, out, page, limit, int(total))
}

func (u *UserController) GetUserByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := u.users.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, convertToUserAdminResponse(*user))
}

// ToggleActive khóa/mở khóa user, chỉ admin
func (u *UserController) ToggleActive(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := u.users.ToggleActive(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	status := "User activated"
	if user.IsBlocked {
		status = "User blocked"
	}
	response.Success(c, dto.ToggleActiveResponse{
		User:   user.Username,
		Active: !user.IsBlocked,
		Status: status,
	})
}

// ToggleTheme đổi giao diện sáng/tối của chính mình
func (u *UserController) ToggleTheme(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := u.users.ToggleTheme(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, dto.ToggleThemeResponse{User: user.Username, Theme: user.Theme})
}
