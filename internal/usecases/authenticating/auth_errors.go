package authenticating

import (
	"errors"
	"fmt"

	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
)

var (
	ErrInvalidCredentials  = errors.New("credenciais inválidas")
	ErrInvalidToken        = errors.New("token inválido")
	ErrExpiredToken        = errors.New("token expirado")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrAuthNotConfigured   = errors.New("autenticação não configurada")
)

// Código da API usado quando o erro não traz um código próprio
var defaultCodes = map[error]string{
	ErrInvalidCredentials:  apiErrors.ErrInvalidCredentials,
	ErrAuthNotConfigured:   apiErrors.ErrInvalidCredentials,
	ErrMissingRequiredData: apiErrors.ErrMissingRequiredData,
	ErrInvalidToken:        apiErrors.ErrInvalidToken,
	ErrExpiredToken:        apiErrors.ErrExpiredToken,
}

// AuthError associa um erro de autenticação ao código devolvido pela API
type AuthError struct {
	Err     error
	Code    string
	Details string
}

func (e *AuthError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(baseErr error, code string, details string) *AuthError {
	return &AuthError{
		Err:     baseErr,
		Code:    code,
		Details: details,
	}
}

// IsAuthorizationError indica falha no token, não nas credenciais
func IsAuthorizationError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}

// CodeOf retorna o código da API para um erro de autenticação, ou ErrInternalServer
func CodeOf(err error) string {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Code != "" {
		return authErr.Code
	}

	for base, code := range defaultCodes {
		if errors.Is(err, base) {
			return code
		}
	}

	return apiErrors.ErrInternalServer
}
