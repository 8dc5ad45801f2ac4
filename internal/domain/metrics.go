package domain

import "time"

const (
	UnassignedSalesRep = "Sem vendedor"
	UnknownStatus      = "Sem status"
)

// SummaryMetrics são os agregados calculados a partir de uma SalesTable.
// Recalculados a cada execução, nunca persistidos.
type SummaryMetrics struct {
	TotalRevenue  float64         `json:"total_revenue"`
	SalesQuantity int             `json:"sales_quantity"`
	AverageTicket float64         `json:"average_ticket"`
	TopRep        string          `json:"top_rep,omitempty"`
	ByRep         []RepMetrics    `json:"by_rep"`
	ByStatus      []StatusMetrics `json:"by_status"`
	Trend         []TrendPoint    `json:"trend"`
	Granularity   Granularity     `json:"granularity"`
	FirstSaleAt   *time.Time      `json:"first_sale_at,omitempty"`
	LastSaleAt    *time.Time      `json:"last_sale_at,omitempty"`
}

type RepMetrics struct {
	Name          string  `json:"name"`
	TotalRevenue  float64 `json:"total_revenue"`
	SalesQuantity int     `json:"sales_quantity"`
	AverageTicket float64 `json:"average_ticket"`
	Share         float64 `json:"share"` // Percentual da receita total
}

type StatusMetrics struct {
	Status        string  `json:"status"`
	TotalRevenue  float64 `json:"total_revenue"`
	SalesQuantity int     `json:"sales_quantity"`
	Share         float64 `json:"share"`
}

type TrendPoint struct {
	Period        time.Time `json:"period"`
	Label         string    `json:"label"`
	TotalRevenue  float64   `json:"total_revenue"`
	SalesQuantity int       `json:"sales_quantity"`
}

// NewEmptySummaryMetrics retorna métricas zeradas, com listas vazias (não nulas)
func NewEmptySummaryMetrics(granularity Granularity) *SummaryMetrics {
	if granularity == "" {
		granularity = GranularityDay
	}

	return &SummaryMetrics{
		ByRep:       []RepMetrics{},
		ByStatus:    []StatusMetrics{},
		Trend:       []TrendPoint{},
		Granularity: granularity,
	}
}

// IsEmpty indica se não há vendas nas métricas
func (m *SummaryMetrics) IsEmpty() bool {
	return m == nil || m.SalesQuantity == 0
}
