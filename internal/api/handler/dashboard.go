package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/internal/presenter"
	"github.com/vfg2006/sales-dashboard/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

const dataSourceWarning = "Não foi possível ler a planilha de vendas. Os dados serão exibidos quando a planilha estiver acessível."

// Dashboard renderiza a página principal. Falhas na planilha viram um aviso na própria página.
func Dashboard(reporter reporting.Reporter, p *presenter.Presenter, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		status := http.StatusOK

		filters, err := filtersFromQuery(r.URL.Query()).ToDomain(location)
		if err != nil {
			view := p.NewDashboardView(nil, nil, "Filtros inválidos: "+err.Error())
			renderDashboard(w, r, p, view, http.StatusBadRequest)
			return
		}

		var report *domain.SalesReport
		var warning string

		report, err = reporter.GetReport(r.Context(), filters)
		if err != nil {
			if !domain.IsDataSourceError(err) {
				logger.WithError(err).Error("Erro ao gerar o painel")
				apiErrors.WriteDomainError(w, err)
				return
			}

			logger.WithError(err).Warn("Planilha indisponível, exibindo painel vazio")
			report = nil
			warning = dataSourceWarning
		}

		renderDashboard(w, r, p, p.NewDashboardView(report, filters, warning), status)
	}
}

// Charts renderiza a página de gráficos usada no iframe do painel
func Charts(reporter reporting.Reporter, p *presenter.Presenter, location *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		filters, err := filtersFromQuery(r.URL.Query()).ToDomain(location)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		var metrics *domain.SummaryMetrics
		report, err := reporter.GetReport(r.Context(), filters)
		switch {
		case err == nil:
			metrics = report.Metrics
		case domain.IsDataSourceError(err):
			logger.WithError(err).Warn("Planilha indisponível, exibindo gráficos vazios")
			metrics = domain.NewEmptySummaryMetrics(filters.Granularity)
		default:
			logger.WithError(err).Error("Erro ao gerar os gráficos")
			apiErrors.WriteDomainError(w, err)
			return
		}

		var buf bytes.Buffer
		if err := p.RenderCharts(&buf, metrics); err != nil {
			logger.WithError(err).Error("Erro ao renderizar os gráficos")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao renderizar os gráficos", nil)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}

// renderDashboard renderiza em buffer para não enviar HTML parcial em caso de erro
func renderDashboard(w http.ResponseWriter, r *http.Request, p *presenter.Presenter, view presenter.DashboardView, status int) {
	var buf bytes.Buffer
	if err := p.RenderDashboard(&buf, view); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao renderizar o painel")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao renderizar o painel", nil)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
