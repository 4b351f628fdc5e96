package middleware

import (
	"context"
	"strings"

	apperrors "hotelbooking/errors"
	"hotelbooking/models"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserKey   = "user"
	ctxUserIDKey = "userID"
	ctxRoleKey   = "userRole"
)

// UserLoader đọc user hiện tại từ DB (role và trạng thái khóa có thể đã đổi
// sau khi token được cấp).
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

type Authenticator struct {
	tokens *services.TokenParser
	users  UserLoader
}

func NewAuthenticator(tokens *services.TokenParser, users UserLoader) *Authenticator {
	return &Authenticator{tokens: tokens, users: users}
}

func (a *Authenticator) resolve(c *gin.Context) (*models.User, error) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	userID, _, err := a.tokens.GetUserIDFromToken(tokenString)
	if err != nil {
		return nil, err
	}
	user, err := a.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeDBNotFound) {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "User not found", err)
		}
		return nil, err
	}
	return user, nil
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(ctxUserKey, user)
	c.Set(ctxUserIDKey, user.ID)
	c.Set(ctxRoleKey, user.Role)
}

// AuthMiddleware xử lý authentication. Nếu truyền roles thì role hiện tại của
// user phải nằm trong danh sách đó.
func (a *Authenticator) AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		// OptionalAuth có thể đã nạp user
		user := CurrentUser(c)
		if user == nil {
			if c.GetHeader("Authorization") == "" {
				response.Unauthorized(c)
				c.Abort()
				return
			}
			var err error
			user, err = a.resolve(c)
			if err != nil {
				if apperrors.HTTPStatus(codeOf(err)) == 401 {
					response.Unauthorized(c)
				} else {
					response.FromError(c, err)
				}
				c.Abort()
				return
			}
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == user.Role {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c, "")
				c.Abort()
				return
			}
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth nhận diện user nếu có token. Không có token thì tiếp tục như
// khách ẩn danh, token sai vẫn bị từ chối.
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.Next()
			return
		}
		user, err := a.resolve(c)
		if err != nil {
			if apperrors.HTTPStatus(codeOf(err)) == 401 {
				response.Unauthorized(c)
			} else {
				response.FromError(c, err)
			}
			c.Abort()
			return
		}
		setUser(c, user)
		c.Next()
	}
}

// NotBlocked chặn user đã bị khóa. Must run after AuthMiddleware.
func NotBlocked() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !services.IsNotBlocked(user) {
			response.Forbidden(c, "Your account is blocked")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleMiddleware kiểm tra role của user
func RoleMiddleware(allowed func(*models.User) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		if !allowed(user) {
			response.Forbidden(c, "")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

func codeOf(err error) apperrors.ErrorCode {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.Code
	}
	return apperrors.ErrCodeDBError
}

// ErrorHandler xử lý lỗi được đẩy vào c.Errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			response.FromError(c, c.Errors.Last().Err)
		}
	}
}
