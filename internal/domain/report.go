package domain

import "time"

// TableInfo resume a tabela lida sem expor os registros
type TableInfo struct {
	Source      SheetSource `json:"source"`
	Rows        int         `json:"rows"`
	Filtered    int         `json:"filtered"`
	SkippedRows int         `json:"skipped_rows"`
	FetchedAt   time.Time   `json:"fetched_at"`
}

// SalesReport é o resultado de uma execução completa do pipeline
type SalesReport struct {
	RunID       string          `json:"run_id"`
	Metrics     *SummaryMetrics `json:"metrics"`
	Table       TableInfo       `json:"table"`
	Filters     *ReportFilters  `json:"filters"`
	GeneratedAt time.Time       `json:"generated_at"`
}

// PeriodLabel descreve o período coberto pelo relatório
func (r *SalesReport) PeriodLabel() string {
	if r == nil {
		return ""
	}

	if r.Filters.HasPeriod() {
		start, end := "início", "hoje"
		if r.Filters.StartDate != nil {
			start = r.Filters.StartDate.Format("02/01/2006")
		}
		if r.Filters.EndDate != nil {
			end = r.Filters.EndDate.Format("02/01/2006")
		}
		return start + " a " + end
	}

	if r.Metrics != nil && r.Metrics.FirstSaleAt != nil && r.Metrics.LastSaleAt != nil {
		return r.Metrics.FirstSaleAt.Format("02/01/2006") + " a " + r.Metrics.LastSaleAt.Format("02/01/2006")
	}

	return "todo o período"
}

// DeliveryReceipt registra um envio de e-mail aceito pelo transporte
type DeliveryReceipt struct {
	RunID      string    `json:"run_id"`
	Provider   string    `json:"provider"`
	MessageID  string    `json:"message_id,omitempty"`
	Recipients []string  `json:"recipients"`
	Subject    string    `json:"subject"`
	SentAt     time.Time `json:"sent_at"`
}
