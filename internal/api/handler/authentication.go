package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(req.Email, req.Password)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Falha no login")
			handleLoginError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, domain.LoginResponse{
			Token:     token,
			ExpiresIn: int(service.TokenTTL().Seconds()),
		})
	}
}

// handleLoginError devolve o código do erro de autenticação; erros sem código viram 500
func handleLoginError(w http.ResponseWriter, err error) {
	code := authenticating.CodeOf(err)
	if code == apiErrors.ErrInternalServer {
		apiErrors.WriteError(w, code, "Erro interno ao realizar login", nil)
		return
	}

	apiErrors.WriteError(w, code, err.Error(), nil)
}
