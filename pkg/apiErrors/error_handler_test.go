package apiErrors

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

func TestWriteDomainError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "Falha na planilha",
			err:            domain.NewDataSourceError(domain.ErrWorksheetNotFound, "Vendas", ""),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   "SRV_003",
		},
		{
			name:           "Falha no envio",
			err:            domain.NewDeliveryError(domain.ErrTransportRejected, "smtp", ""),
			expectedStatus: http.StatusBadGateway,
			expectedCode:   "SRV_004",
		},
		{
			name:           "Configuração inválida",
			err:            domain.NewConfigurationError(domain.ErrMissingSpreadsheetID, ""),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "SRV_001",
		},
		{
			name:           "Erro genérico",
			err:            errors.New("boom"),
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "SRV_001",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()

			WriteDomainError(rec, tt.err)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body APIError
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.expectedCode, body.Code)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusTooManyRequests, StatusFor(ErrTooManyRequests))
	assert.Equal(t, http.StatusBadRequest, StatusFor(ErrInvalidFormat))
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XYZ_999"))
}
