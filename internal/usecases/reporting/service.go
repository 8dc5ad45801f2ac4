package reporting

import (
	"context"
	"time"

	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/googlesheets"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/log"
	"github.com/vfg2006/sales-dashboard/pkg/utils"
)

type Reporter interface {
	// GetReport executa o pipeline completo: leitura da planilha, filtros e agregação
	GetReport(ctx context.Context, filters *domain.ReportFilters) (*domain.SalesReport, error)

	// GetSales retorna os registros da planilha que atendem aos filtros
	GetSales(ctx context.Context, filters *domain.ReportFilters) (*domain.SalesTable, error)
}

type Service struct {
	sheetReader googlesheets.SheetReader
	now         func() time.Time
}

func NewService(sheetReader googlesheets.SheetReader) Reporter {
	return &Service{
		sheetReader: sheetReader,
		now:         time.Now,
	}
}

func (s *Service) GetReport(ctx context.Context, filters *domain.ReportFilters) (*domain.SalesReport, error) {
	if filters == nil {
		filters = &domain.ReportFilters{Granularity: domain.GranularityDay}
	}

	if err := filters.Validate(); err != nil {
		return nil, err
	}

	runID, err := utils.GenerateRunID()
	if err != nil {
		return nil, err
	}

	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx)

	table, err := s.sheetReader.ReadSalesTable(ctx)
	if err != nil {
		logger.WithError(err).Error("Erro ao ler a planilha de vendas")
		return nil, err
	}

	filtered := table.Filter(filters)
	metrics := Aggregate(filtered, filters.Granularity)

	report := &domain.SalesReport{
		RunID:   runID,
		Metrics: metrics,
		Table: domain.TableInfo{
			Source:      table.Source,
			Rows:        table.Len(),
			Filtered:    filtered.Len(),
			SkippedRows: len(table.SkippedRows),
			FetchedAt:   table.FetchedAt,
		},
		Filters:     filters,
		GeneratedAt: s.now(),
	}

	logger.WithField("rows", report.Table.Rows).
		WithField("filtered", report.Table.Filtered).
		WithField("total_revenue", metrics.TotalRevenue).
		Info("Relatório de vendas gerado")

	return report, nil
}

func (s *Service) GetSales(ctx context.Context, filters *domain.ReportFilters) (*domain.SalesTable, error) {
	if err := filters.Validate(); err != nil {
		return nil, err
	}

	table, err := s.sheetReader.ReadSalesTable(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao ler a planilha de vendas")
		return nil, err
	}

	return table.Filter(filters), nil
}
