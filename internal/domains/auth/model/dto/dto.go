package dto

import (
	"giftlist/infras/jwt"
	"giftlist/shared/failure"
	"strings"
)

const MinPasswordLength = 4

var (
	ErrPasswordRequired  = failure.BadRequestFromString("password is required")
	ErrPasswordTooShort  = failure.BadRequestFromString("password must be at least 4 characters")
	ErrPasswordTooLong   = failure.BadRequestFromString("password must not exceed 72 bytes")
	ErrIncorrectPassword = failure.Unauthorized("incorrect password")
	ErrNotConfigured     = failure.Unauthorized("admin password is not configured")
	ErrTokenExpired      = failure.Unauthorized("Token has expired")
	ErrTokenInvalid      = failure.Unauthorized("Invalid token")
)

type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

func (r LoginRequest) Validate() error {
	if strings.TrimSpace(r.Password) == "" {
		return ErrPasswordRequired
	}

	return nil
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

func (l *LoginResponse) FromToken(token *jwt.Token) {
	l.Token = token.Token
	l.ExpiresIn = token.ExpiresIn
}

type VerifyResponse struct {
	AdminID int64 `json:"admin_id"`
}
