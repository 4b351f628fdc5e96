package controllers

import (
	apperrors "hotelbooking/errors"
	"hotelbooking/middleware"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

type RouletteController struct {
	discounts *services.DiscountService
}

func NewRouletteController(discounts *services.DiscountService) *RouletteController {
	return &RouletteController{discounts: discounts}
}

// GetActiveDiscount godoc
// @Summary      Kiểm tra discount đang hiệu lực
// @Tags         discounts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=dto.DiscountResponse}
// @Success      204
// @Router       /discounts/roulette [get]
func (d *RouletteController) GetActiveDiscount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c)
		return
	}
	discount, err := d.discounts.Active(c.Request.Context(), user.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if discount == nil {
		response.NoContent(c)
		return
	}
	response.Success(c, convertToDiscountResponse(*discount))
}

// Spin godoc
// @Summary      Quay nhận discount 5-30%, hiệu lực 24 giờ
// @Tags         discounts
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  response.Response{data=dto.DiscountResponse}
// @Failure      400  {object}  response.Response{data=dto.DiscountResponse}
// @Failure      409  {object}  response.Response
// @Router       /discounts/roulette [post]
func (d *RouletteController) Spin(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		response.Unauthorized(c)
		return
	}
	discount, err := d.discounts.Draw(c.Request.Context(), user.ID)
	if err != nil {
		// trả về discount hiện có theo cùng format
		if appErr := apperrors.GetAppError(err); appErr != nil && appErr.Code == apperrors.ErrCodeActiveDiscount {
			if existing, ok := appErr.Data.(*models.Discount); ok && existing != nil {
				appErr.Data = convertToDiscountResponse(*existing)
			}
		}
		response.FromError(c, err)
		return
	}
	response.Created(c, convertToDiscountResponse(*discount))
}
