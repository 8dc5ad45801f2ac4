package handler

import (
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

// GetMetrics retorna o relatório agregado em JSON
func GetMetrics(reporter reporting.Reporter, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := filtersFromQuery(r.URL.Query()).ToDomain(location)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		report, err := reporter.GetReport(r.Context(), filters)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar métricas")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, report)
	}
}

// GetSales retorna os registros filtrados da planilha
func GetSales(reporter reporting.Reporter, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := filtersFromQuery(r.URL.Query()).ToDomain(location)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		table, err := reporter.GetSales(r.Context(), filters)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao listar vendas")
			apiErrors.WriteDomainError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, table)
	}
}
