package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/vfg2006/sales-dashboard/internal/usecases/notifying"
	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard/pkg/log"
	"github.com/vfg2006/sales-dashboard/pkg/middleware"
)

type SendReportRequest struct {
	Recipients []string `json:"recipients"`
	FiltersRequest
}

// SendReportEmail executa o pipeline e envia o resumo. Sem destinatários usa EMAIL_RECIPIENTS.
func SendReportEmail(notifier notifying.Notifier, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var req SendReportRequest
		if r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
				return
			}
		}

		filters, err := req.FiltersRequest.ToDomain(location)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		if claims, ok := middleware.UserFromContext(r.Context()); ok {
			logger = logger.WithField("user", claims.UserEmail)
		}

		receipt, err := notifier.SendSummary(r.Context(), req.Recipients, filters)
		if err != nil {
			logger.WithError(err).Error("Erro ao enviar resumo por e-mail")
			apiErrors.WriteDomainError(w, err)
			return
		}

		logger.WithFields(log.Fields{
			"run_id":   receipt.RunID,
			"provider": receipt.Provider,
		}).Info("Resumo enviado pela API")

		writeJSON(w, r, http.StatusOK, receipt)
	}
}

// PreviewReportEmail renderiza o e-mail sem enviar. format=text retorna a versão em texto.
func PreviewReportEmail(notifier notifying.Notifier, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := filtersFromQuery(r.URL.Query()).ToDomain(location)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		email, err := notifier.Preview(r.Context(), filters)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar prévia do e-mail")
			apiErrors.WriteDomainError(w, err)
			return
		}

		w.Header().Set("X-Email-Subject", email.Subject)
		if strings.EqualFold(r.URL.Query().Get("format"), "text") {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = w.Write([]byte(email.Text))
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(email.HTML))
	}
}
