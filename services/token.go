package services

import (
	"strings"

	apperrors "hotelbooking/errors"

	"github.com/dgrijalva/jwt-go"
)

// UserInfo is the identity block the auth service puts in access tokens.
type UserInfo struct {
	UserId uint `json:"userid"`
	Role   int  `json:"role"`
}

type Claims struct {
	UserInfo UserInfo `json:"userinfo"`
	jwt.StandardClaims
}

// TokenParser verifies HS256 access tokens issued by the auth service.
type TokenParser struct {
	secret []byte
}

func NewTokenParser(secret string) *TokenParser {
	return &TokenParser{secret: []byte(secret)}
}

// GetUserIDFromToken lấy userID và role từ token đã kiểm tra chữ ký
func (p *TokenParser) GetUserIDFromToken(tokenString string) (uint, int, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return 0, 0, apperrors.NewAppError(apperrors.ErrCodeMissingToken, "Missing token", nil)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Unexpected signing method", nil)
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Invalid token", err)
	}

	if claims.UserInfo.UserId == 0 {
		return 0, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidToken, "Token has no user id", nil)
	}
	return claims.UserInfo.UserId, claims.UserInfo.Role, nil
}
