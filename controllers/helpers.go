package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"hotelbooking/constants"
	"hotelbooking/dto"
	"hotelbooking/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// parseID đọc path param dạng số dương
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "ID không hợp lệ")
		return 0, false
	}
	return uint(id), true
}

func pageParams(c *gin.Context) (int, int, bool) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return 0, 0, false
	}
	if q.Page == 0 {
		q.Page = constants.DefaultPage
	}
	if q.Limit == 0 {
		q.Limit = constants.DefaultLimit
	}
	if q.Limit > constants.MaxLimit {
		q.Limit = constants.MaxLimit
	}
	return q.Page, q.Limit, true
}

// bindError trả 400 với tên field và rule bị vi phạm
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fmt.Sprintf("%s: failed on '%s'", fe.Field(), fe.Tag()))
		}
		response.BadRequest(c, strings.Join(msgs, "; "))
		return
	}
	response.BadRequest(c, "Dữ liệu không hợp lệ")
}
