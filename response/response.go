package response

import (
	"net/http"

	apperrors "hotelbooking/errors"

	"github.com/gin-gonic/gin"
)

// Response là envelope chung cho mọi response
type Response struct {
	Code       int         `json:"code"`
	Mess       string      `json:"mess"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// Success trả về response thành công
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
	})
}

// Created trả về 201 kèm tài nguyên vừa tạo
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code: 1,
		Mess: "Created",
		Data: data,
	})
}

// NoContent has no body; gin drops it for 204 anyway.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, Response{
		Code: 1,
		Mess: "Success",
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error trả về lỗi với status tùy chọn
func Error(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Code: 0,
		Mess: message,
	})
}

// FromError chuyển lỗi của service thành response
func FromError(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		ServerError(c)
		return
	}
	status := apperrors.HTTPStatus(appErr.Code)
	if status == http.StatusInternalServerError {
		ServerError(c)
		return
	}
	c.JSON(status, Response{
		Code: 0,
		Mess: appErr.Message,
		Data: appErr.Data,
	})
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, Response{
		Code: 0,
		Mess: "Internal server error",
	})
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code: 0,
		Mess: "Authentication required",
	})
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Permission denied"
	}
	c.JSON(http.StatusForbidden, Response{
		Code: 0,
		Mess: message,
	})
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code: 0,
		Mess: "Not found",
	})
}

// BadRequest trả về response lỗi bad request
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code: 0,
		Mess: message,
	})
}

func TooManyRequests(c *gin.Context, retryAfter int) {
	c.JSON(http.StatusTooManyRequests, Response{
		Code: 0,
		Mess: "Rate limit exceeded",
		Data: gin.H{"retry_after": retryAfter},
	})
}
