package apiErrors

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Códigos de erro da API
const (
	// Erros de autenticação
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrInvalidToken       = "AUTH_006" // Token inválido
	ErrExpiredToken       = "AUTH_007" // Token expirado

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Limite de requisições
	ErrTooManyRequests = "RATE_001"

	// Roteamento
	ErrRouteNotFound    = "ROUTE_001"
	ErrMethodNotAllowed = "ROUTE_002"

	// Erros do servidor
	ErrInternalServer  = domain.CodeConfiguration // Erro interno ou de configuração
	ErrExternalService = domain.CodeDataSource    // Falha ao ler a planilha
	ErrDelivery        = domain.CodeDelivery      // Falha no envio do e-mail
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrExpiredToken:        http.StatusUnauthorized,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrTooManyRequests:     http.StatusTooManyRequests,
	ErrRouteNotFound:       http.StatusNotFound,
	ErrMethodNotAllowed:    http.StatusMethodNotAllowed,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrDelivery:            http.StatusBadGateway,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusFor retorna o status HTTP de um código de erro
func StatusFor(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusFor(code))
	json.NewEncoder(w).Encode(apiErr)
}

// WriteDomainError traduz os erros tipados do pipeline para a resposta da API
func WriteDomainError(w http.ResponseWriter, err error) {
	var (
		dataSourceErr *domain.DataSourceError
		deliveryErr   *domain.DeliveryError
		configErr     *domain.ConfigurationError
	)

	switch {
	case errors.As(err, &dataSourceErr):
		WriteError(w, dataSourceErr.Code, "Não foi possível ler a planilha de vendas", dataSourceErr.Error())
	case errors.As(err, &deliveryErr):
		WriteError(w, deliveryErr.Code, "Não foi possível enviar o e-mail", deliveryErr.Error())
	case errors.As(err, &configErr):
		WriteError(w, configErr.Code, "Configuração inválida", configErr.Error())
	default:
		WriteError(w, ErrInternalServer, "Erro interno", FromError(err, ErrInternalServer).Message)
	}
}

// FromError cria um erro de API a partir de um erro Go
// Útil para quando você quer envolver um erro existente em um erro de API
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Message: err.Error(),
	}
}
