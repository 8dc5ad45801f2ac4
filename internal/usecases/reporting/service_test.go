package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard/infrastructure/integrator/googlesheets/mocks"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/utils"
	"go.uber.org/mock/gomock"
)

func TestService_GetReport(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := mocks.NewMockSheetReader(ctrl)
	generatedAt := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	service := &Service{
		sheetReader: mockReader,
		now:         func() time.Time { return generatedAt },
	}

	table := newTable(
		domain.SalesRecord{Row: 2, SalesRep: "A", Amount: 100, Status: "Fechado", Date: datePtr(2024, 3, 1)},
		domain.SalesRecord{Row: 3, SalesRep: "B", Amount: 200, Status: "Fechado", Date: datePtr(2024, 3, 5)},
		domain.SalesRecord{Row: 4, SalesRep: "A", Amount: 300, Status: "Aberto", Date: datePtr(2024, 3, 10)},
	)
	table.SkippedRows = []domain.SkippedRow{{Row: 5, Reason: "valor vazio"}}

	tests := []struct {
		name     string
		filters  *domain.ReportFilters
		setup    func()
		validate func(t *testing.T, report *domain.SalesReport, err error)
	}{
		{
			name:    "Sem filtros considera todas as vendas",
			filters: nil,
			setup: func() {
				mockReader.EXPECT().ReadSalesTable(gomock.Any()).Return(table, nil)
			},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				assert.NoError(t, err)
				assert.Len(t, report.RunID, utils.RunIDLength)
				assert.Equal(t, 600.0, report.Metrics.TotalRevenue)
				assert.Equal(t, 3, report.Table.Rows)
				assert.Equal(t, 3, report.Table.Filtered)
				assert.Equal(t, 1, report.Table.SkippedRows)
				assert.Equal(t, generatedAt, report.GeneratedAt)
			},
		},
		{
			name: "Filtro por vendedor e período",
			filters: &domain.ReportFilters{
				StartDate:   datePtr(2024, 3, 1),
				EndDate:     datePtr(2024, 3, 5),
				SalesRep:    "a",
				Granularity: domain.GranularityDay,
			},
			setup: func() {
				mockReader.EXPECT().ReadSalesTable(gomock.Any()).Return(table, nil)
			},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				assert.NoError(t, err)
				assert.Equal(t, 100.0, report.Metrics.TotalRevenue)
				assert.Equal(t, 1, report.Table.Filtered)
				assert.Equal(t, 3, report.Table.Rows)
			},
		},
		{
			name: "Período invertido não consulta a planilha",
			filters: &domain.ReportFilters{
				StartDate: datePtr(2024, 3, 10),
				EndDate:   datePtr(2024, 3, 1),
			},
			setup: func() {},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				assert.Error(t, err)
				assert.Nil(t, report)
			},
		},
		{
			name:    "Erro da planilha é repassado",
			filters: &domain.ReportFilters{},
			setup: func() {
				mockReader.EXPECT().
					ReadSalesTable(gomock.Any()).
					Return(nil, domain.NewDataSourceError(domain.ErrWorksheetNotFound, "Vendas", ""))
			},
			validate: func(t *testing.T, report *domain.SalesReport, err error) {
				assert.Nil(t, report)
				assert.True(t, domain.IsDataSourceError(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			report, err := service.GetReport(context.Background(), tt.filters)

			tt.validate(t, report, err)
		})
	}
}

func TestService_GetSales(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := mocks.NewMockSheetReader(ctrl)
	service := NewService(mockReader)

	table := newTable(
		domain.SalesRecord{Row: 2, SalesRep: "A", Amount: 100, Status: "Fechado"},
		domain.SalesRecord{Row: 3, SalesRep: "B", Amount: 200, Status: "aberto"},
	)

	mockReader.EXPECT().ReadSalesTable(gomock.Any()).Return(table, nil)

	sales, err := service.GetSales(context.Background(), &domain.ReportFilters{Status: "Aberto"})

	assert.NoError(t, err)
	assert.Equal(t, 1, sales.Len())
	assert.Equal(t, 3, sales.Records[0].Row)
	assert.Len(t, table.Records, 2)
}
