package domain

import (
	"strings"
	"time"
)

// SalesRecord representa uma linha da planilha preenchida pelo formulário
type SalesRecord struct {
	Row         int               `json:"row"` // Linha na planilha (1 = cabeçalho)
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
	Date        *time.Time        `json:"date,omitempty"`
	SalesRep    string            `json:"sales_rep"`
	Amount      float64           `json:"amount"`
	Status      string            `json:"status"`
	Customer    string            `json:"customer,omitempty"`
	Product     string            `json:"product,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// SkippedRow registra uma linha descartada durante a leitura e o motivo
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

type SheetSource struct {
	SpreadsheetID string `json:"spreadsheet_id"`
	Worksheet     string `json:"worksheet"`
}

// SalesTable é o conjunto de registros lidos da aba, na ordem da planilha.
// É montada a cada leitura e descartada ao final da execução.
type SalesTable struct {
	Columns     []string      `json:"columns"`
	Records     []SalesRecord `json:"records"`
	SkippedRows []SkippedRow  `json:"skipped_rows"`
	Source      SheetSource   `json:"source"`
	FetchedAt   time.Time     `json:"fetched_at"`
}

// NewEmptySalesTable cria uma tabela vazia para a origem informada
func NewEmptySalesTable(source SheetSource) *SalesTable {
	return &SalesTable{
		Columns:     []string{},
		Records:     []SalesRecord{},
		SkippedRows: []SkippedRow{},
		Source:      source,
	}
}

// Len retorna a quantidade de registros válidos
func (t *SalesTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Filter retorna uma nova tabela contendo apenas os registros que atendem aos filtros.
// A tabela original não é alterada.
func (t *SalesTable) Filter(filters *ReportFilters) *SalesTable {
	if t == nil {
		return NewEmptySalesTable(SheetSource{})
	}

	filtered := &SalesTable{
		Columns:     t.Columns,
		Records:     make([]SalesRecord, 0, len(t.Records)),
		SkippedRows: t.SkippedRows,
		Source:      t.Source,
		FetchedAt:   t.FetchedAt,
	}

	for _, record := range t.Records {
		if filters.Match(record) {
			filtered.Records = append(filtered.Records, record)
		}
	}

	return filtered
}

// SaleDate retorna a data da venda, usando o carimbo do formulário quando a data não foi informada
func (r SalesRecord) SaleDate() *time.Time {
	if r.Date != nil {
		return r.Date
	}
	return r.SubmittedAt
}

// NormalizeKey normaliza nomes para agrupamento (vendedor, status)
func NormalizeKey(value string) string {
	return strings.ToLower(strings.Join(strings.Fields(value), " "))
}
