package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

// CronJobTypeEmailDigest é o único tipo de cron do painel
const CronJobTypeEmailDigest = "digest"

// CronJob é um serviço agendado que pode ser disparado manualmente
type CronJob interface {
	TriggerManualSync() bool
	GetStatus() map[string]any
}

// CronJobServices contém os serviços de cron que podem ser executados manualmente
type CronJobServices struct {
	EmailDigestService CronJob
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices, cronType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch cronType {
		case CronJobTypeEmailDigest:
			if services.EmailDigestService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de resumo por e-mail não disponível", nil)
				return
			}

			log.ForContext(r.Context()).WithField("type", cronType).Info("Execução manual de cron solicitada")

			if !services.EmailDigestService.TriggerManualSync() {
				writeJSON(w, r, http.StatusConflict, map[string]any{
					"message": "Cron job já está em execução",
					"type":    cronType,
				})
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: digest", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
		})
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.EmailDigestService != nil {
			status[CronJobTypeEmailDigest] = services.EmailDigestService.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	}
}
