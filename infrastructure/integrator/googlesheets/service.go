package googlesheets

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/googlesheets/sheetsclient"
	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/log"
)

type SheetReader interface {
	// ReadSalesTable lê todas as linhas da aba configurada
	ReadSalesTable(ctx context.Context) (*domain.SalesTable, error)
}

type SheetsService struct {
	cfg    *config.Config
	Client sheetsclient.Client
	now    func() time.Time
}

func New(cfg *config.Config, client sheetsclient.Client) SheetReader {
	return &SheetsService{
		cfg:    cfg,
		Client: client,
		now:    time.Now,
	}
}

func (s *SheetsService) ReadSalesTable(ctx context.Context) (*domain.SalesTable, error) {
	source := domain.SheetSource{
		SpreadsheetID: s.cfg.Sheet.SpreadsheetID,
		Worksheet:     s.cfg.Sheet.WorksheetName,
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Sheet.RequestTimeout)
	defer cancel()

	worksheets, err := s.Client.ListWorksheets(ctx, source.SpreadsheetID)
	if err != nil {
		if sheetsclient.IsNotFound(err) {
			return nil, domain.NewDataSourceError(domain.ErrSpreadsheetNotFound, source.Worksheet, source.SpreadsheetID)
		}
		return nil, domain.NewDataSourceError(fmt.Errorf("%w: %w", domain.ErrSheetRequest, err), source.Worksheet, "")
	}

	if !slices.Contains(worksheets, source.Worksheet) {
		return nil, domain.NewDataSourceError(
			domain.ErrWorksheetNotFound,
			source.Worksheet,
			fmt.Sprintf("abas disponíveis: %s", strings.Join(worksheets, ", ")),
		)
	}

	values, err := s.Client.GetValues(ctx, source.SpreadsheetID, sheetsclient.WorksheetRange(source.Worksheet))
	if err != nil {
		return nil, domain.NewDataSourceError(fmt.Errorf("%w: %w", domain.ErrSheetRequest, err), source.Worksheet, "")
	}

	table, err := s.buildTable(ctx, values, source)
	if err != nil {
		return nil, err
	}

	log.ForContext(ctx).WithFields(log.Fields{
		"worksheet":    source.Worksheet,
		"records":      len(table.Records),
		"skipped_rows": len(table.SkippedRows),
	}).Debug("Planilha lida com sucesso")

	return table, nil
}

// buildTable converte as células brutas em registros. A primeira linha é o cabeçalho.
func (s *SheetsService) buildTable(ctx context.Context, values [][]interface{}, source domain.SheetSource) (*domain.SalesTable, error) {
	table := domain.NewEmptySalesTable(source)
	table.FetchedAt = s.now()

	if len(values) == 0 {
		return table, nil
	}

	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = cellString(cell)
	}
	table.Columns = header

	columns, err := resolveColumns(header, s.cfg.Columns)
	if err != nil {
		return nil, domain.NewDataSourceError(err, source.Worksheet, "")
	}

	location := s.cfg.App.Location
	if location == nil {
		location = time.UTC
	}

	for i, row := range values[1:] {
		rowNumber := i + 2

		if isBlankRow(row) {
			continue
		}

		amount, err := parseAmount(cellAt(row, columns.amount), s.cfg.App.CurrencySymbol)
		if err != nil {
			table.SkippedRows = append(table.SkippedRows, domain.SkippedRow{
				Row:    rowNumber,
				Reason: err.Error(),
			})
			continue
		}

		record := domain.SalesRecord{
			Row:         rowNumber,
			SubmittedAt: parseDate(cellAt(row, columns.timestamp), location),
			Date:        parseDate(cellAt(row, columns.date), location),
			SalesRep:    cellString(cellAt(row, columns.salesRep)),
			Amount:      amount,
			Status:      cellString(cellAt(row, columns.status)),
			Customer:    cellString(cellAt(row, columns.customer)),
			Product:     cellString(cellAt(row, columns.product)),
			Extra:       extraColumns(header, row, columns),
		}

		table.Records = append(table.Records, record)
	}

	if len(table.SkippedRows) > 0 {
		log.ForContext(ctx).WithFields(log.Fields{
			"worksheet":    source.Worksheet,
			"skipped_rows": len(table.SkippedRows),
		}).Warn("Linhas descartadas por valor inválido")
	}

	return table, nil
}
