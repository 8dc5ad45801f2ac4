package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // Segundos
}

// Claims identifica o administrador autenticado
type Claims struct {
	UserEmail string `json:"user_email"`
	jwt.RegisteredClaims
}
