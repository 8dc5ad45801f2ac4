package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/vfg2006/sales-dashboard/pkg/utils"
)

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity converte o parâmetro recebido; vazio significa diário
func ParseGranularity(value string) (Granularity, error) {
	switch Granularity(value) {
	case "", GranularityDay:
		return GranularityDay, nil
	case GranularityWeek:
		return GranularityWeek, nil
	case GranularityMonth:
		return GranularityMonth, nil
	}

	return "", fmt.Errorf("granularidade inválida: %s (use day, week ou month)", value)
}

// ReportFilters restringe os registros considerados no relatório
type ReportFilters struct {
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	SalesRep    string      `json:"sales_rep,omitempty"`
	Status      string      `json:"status,omitempty"`
	Granularity Granularity `json:"granularity"`
}

// ParseReportFilters converte os filtros recebidos como texto (query string, corpo JSON ou flags).
// Datas usam o formato YYYY-MM-DD no fuso informado.
func ParseReportFilters(startDate, endDate, salesRep, status, granularity string, location *time.Location) (*ReportFilters, error) {
	start, err := utils.ParseDate(startDate, location)
	if err != nil {
		return nil, fmt.Errorf("start_date inválida, use o formato YYYY-MM-DD")
	}

	end, err := utils.ParseDate(endDate, location)
	if err != nil {
		return nil, fmt.Errorf("end_date inválida, use o formato YYYY-MM-DD")
	}

	parsedGranularity, err := ParseGranularity(strings.ToLower(strings.TrimSpace(granularity)))
	if err != nil {
		return nil, err
	}

	filters := &ReportFilters{
		StartDate:   start,
		EndDate:     end,
		SalesRep:    strings.TrimSpace(salesRep),
		Status:      strings.TrimSpace(status),
		Granularity: parsedGranularity,
	}

	if err := filters.Validate(); err != nil {
		return nil, err
	}

	return filters, nil
}

// Validate verifica se o intervalo de datas é coerente
func (f *ReportFilters) Validate() error {
	if f == nil {
		return nil
	}

	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return fmt.Errorf("a data de início não pode ser posterior à data de fim")
	}

	return nil
}

// Match indica se o registro atende aos filtros. Datas são comparadas por dia,
// com o fim do intervalo inclusivo. Registros sem data são descartados quando
// há filtro de período.
func (f *ReportFilters) Match(record SalesRecord) bool {
	if f == nil {
		return true
	}

	if f.SalesRep != "" && NormalizeKey(record.SalesRep) != NormalizeKey(f.SalesRep) {
		return false
	}

	if f.Status != "" && NormalizeKey(record.Status) != NormalizeKey(f.Status) {
		return false
	}

	if f.StartDate == nil && f.EndDate == nil {
		return true
	}

	saleDate := record.SaleDate()
	if saleDate == nil {
		return false
	}

	day := truncateDay(*saleDate)
	if f.StartDate != nil && day.Before(truncateDay(*f.StartDate)) {
		return false
	}

	if f.EndDate != nil && day.After(truncateDay(*f.EndDate)) {
		return false
	}

	return true
}

// HasPeriod indica se algum limite de data foi informado
func (f *ReportFilters) HasPeriod() bool {
	return f != nil && (f.StartDate != nil || f.EndDate != nil)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
