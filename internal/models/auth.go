package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// RegisterRequest holds the payload for creating a faculty account.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest holds credentials for authenticating a user.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and user info.
type LoginResponse struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}
