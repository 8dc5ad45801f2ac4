package authenticating

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	require.NoError(t, err)

	return &Service{
		cfg: &config.Config{
			Auth: config.Auth{
				Secret:            "segredo-de-teste",
				AdminEmail:        "Admin@Example.com",
				AdminPasswordHash: string(hash),
				TokenTTL:          24 * time.Hour,
			},
		},
		now: time.Now,
	}
}

func TestService_LoginUser(t *testing.T) {
	service := newTestService(t)

	tests := []struct {
		name        string
		email       string
		password    string
		expectedErr error
	}{
		{name: "Login válido", email: " admin@example.com ", password: "senha-forte"},
		{name: "Senha incorreta", email: "admin@example.com", password: "errada", expectedErr: ErrInvalidCredentials},
		{name: "Email desconhecido", email: "outro@example.com", password: "senha-forte", expectedErr: ErrInvalidCredentials},
		{name: "Campos vazios", email: "", password: "", expectedErr: ErrMissingRequiredData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := service.LoginUser(tt.email, tt.password)

			if tt.expectedErr != nil {
				assert.Empty(t, token)
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)

			claims, err := service.ValidateToken(token)
			require.NoError(t, err)
			assert.Equal(t, "admin@example.com", claims.UserEmail)
			assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
		})
	}
}

func TestService_LoginUser_NotConfigured(t *testing.T) {
	service := newTestService(t)
	service.cfg.Auth.AdminPasswordHash = ""

	_, err := service.LoginUser("admin@example.com", "senha-forte")

	assert.ErrorIs(t, err, ErrAuthNotConfigured)
}

func TestService_ValidateToken(t *testing.T) {
	service := newTestService(t)

	token, err := service.LoginUser("admin@example.com", "senha-forte")
	require.NoError(t, err)

	t.Run("Token expirado", func(t *testing.T) {
		expired := newTestService(t)
		expired.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

		_, err := expired.ValidateToken(token)

		assert.ErrorIs(t, err, ErrExpiredToken)
		assert.True(t, IsAuthorizationError(err))
	})

	t.Run("Token assinado com outro segredo", func(t *testing.T) {
		other := newTestService(t)
		other.cfg.Auth.Secret = "outro-segredo"

		_, err := other.ValidateToken(token)

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Token malformado", func(t *testing.T) {
		_, err := service.ValidateToken("nao-e-um-jwt")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "AuthError com código", err: NewAuthError(ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, ""), expected: apiErrors.ErrInvalidCredentials},
		{name: "Sentinela embrulhada", err: fmt.Errorf("login: %w", ErrMissingRequiredData), expected: apiErrors.ErrMissingRequiredData},
		{name: "Token expirado sem código", err: ErrExpiredToken, expected: apiErrors.ErrExpiredToken},
		{name: "Erro desconhecido", err: errors.New("falha"), expected: apiErrors.ErrInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CodeOf(tt.err))
		})
	}
}
