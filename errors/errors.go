package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode định danh loại lỗi trả về cho client
type ErrorCode string

const (
	// Auth errors
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeUserBlocked  ErrorCode = "USER_BLOCKED"

	// Database errors
	ErrCodeDBError    ErrorCode = "DB_ERROR"
	ErrCodeDBNotFound ErrorCode = "DB_NOT_FOUND"

	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeRequiredField ErrorCode = "REQUIRED_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeInvalidDates  ErrorCode = "INVALID_DATES"
	ErrCodeRoomOccupied  ErrorCode = "ROOM_OCCUPIED"
	ErrCodeInvalidRating ErrorCode = "INVALID_RATING"

	// Business errors
	ErrCodeActiveDiscount   ErrorCode = "ACTIVE_DISCOUNT_EXISTS"
	ErrCodeBookingConflict  ErrorCode = "BOOKING_CONFLICT"
	ErrCodeInvalidOperation ErrorCode = "INVALID_OPERATION"
	ErrCodeUpstream         ErrorCode = "UPSTREAM_ERROR"
)

// AppError is the error type returned by services. Data optionally carries
// the resource the error refers to, e.g. the discount that blocked a draw.
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
	Data    interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError tạo một AppError mới
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithData gắn tài nguyên liên quan vào lỗi
func (e *AppError) WithData(data interface{}) *AppError {
	e.Data = data
	return e
}

func Validation(message string) *AppError {
	return NewAppError(ErrCodeValidation, message, nil)
}

func Permission(message string) *AppError {
	return NewAppError(ErrCodeForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return NewAppError(ErrCodeDBNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return NewAppError(ErrCodeBookingConflict, message, nil)
}

func Internal(message string, err error) *AppError {
	return NewAppError(ErrCodeDBError, message, err)
}

// IsAppError kiểm tra xem error có phải là AppError không
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetAppError lấy AppError từ chuỗi lỗi
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HasCode reports whether err is an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

// HTTPStatus maps an error code to its HTTP status.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeValidation, ErrCodeRequiredField, ErrCodeInvalidFormat, ErrCodeInvalidDates,
		ErrCodeRoomOccupied, ErrCodeInvalidRating, ErrCodeActiveDiscount, ErrCodeInvalidOperation:
		return http.StatusBadRequest
	case ErrCodeUnauthorized, ErrCodeInvalidToken, ErrCodeMissingToken:
		return http.StatusUnauthorized
	case ErrCodeForbidden, ErrCodeUserBlocked:
		return http.StatusForbidden
	case ErrCodeDBNotFound:
		return http.StatusNotFound
	case ErrCodeBookingConflict:
		return http.StatusConflict
	case ErrCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

var ErrUserNotFound = errors.New("user not found")
