package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/sales-dashboard/internal/domain"
	"github.com/vfg2006/sales-dashboard/pkg/utils"
)

// Estrutura para acumular receita e quantidade de um grupo (vendedor ou status)
type groupAggregator struct {
	name          string
	totalRevenue  float64
	salesQuantity int
}

// Aggregate calcula as métricas de resumo a partir da tabela de vendas.
// É uma função pura: a mesma tabela produz sempre as mesmas métricas.
func Aggregate(table *domain.SalesTable, granularity domain.Granularity) *domain.SummaryMetrics {
	metrics := domain.NewEmptySummaryMetrics(granularity)

	if table.Len() == 0 {
		return metrics
	}

	reps := make(map[string]*groupAggregator)
	statuses := make(map[string]*groupAggregator)
	trend := make(map[string]*domain.TrendPoint)

	for _, record := range table.Records {
		metrics.TotalRevenue += record.Amount
		metrics.SalesQuantity++

		accumulate(reps, record.SalesRep, domain.UnassignedSalesRep, record.Amount)
		accumulate(statuses, record.Status, domain.UnknownStatus, record.Amount)

		saleDate := record.SaleDate()
		if saleDate == nil {
			continue
		}

		if metrics.FirstSaleAt == nil || saleDate.Before(*metrics.FirstSaleAt) {
			metrics.FirstSaleAt = saleDate
		}
		if metrics.LastSaleAt == nil || saleDate.After(*metrics.LastSaleAt) {
			metrics.LastSaleAt = saleDate
		}

		// Chave pela data de calendário: time.Time compara também o ponteiro do fuso
		period := PeriodStart(*saleDate, metrics.Granularity)
		key := period.Format(utils.DateLayout)
		point, ok := trend[key]
		if !ok {
			point = &domain.TrendPoint{
				Period: period,
				Label:  PeriodLabel(period, metrics.Granularity),
			}
			trend[key] = point
		}
		point.TotalRevenue += record.Amount
		point.SalesQuantity++
	}

	metrics.AverageTicket = averageTicket(metrics.TotalRevenue, metrics.SalesQuantity)

	for _, rep := range sortedGroups(reps) {
		metrics.ByRep = append(metrics.ByRep, domain.RepMetrics{
			Name:          rep.name,
			TotalRevenue:  utils.RoundCurrency(rep.totalRevenue),
			SalesQuantity: rep.salesQuantity,
			AverageTicket: averageTicket(rep.totalRevenue, rep.salesQuantity),
			Share:         share(rep.totalRevenue, metrics.TotalRevenue),
		})
	}

	if len(metrics.ByRep) > 0 {
		metrics.TopRep = metrics.ByRep[0].Name
	}

	for _, status := range sortedGroups(statuses) {
		metrics.ByStatus = append(metrics.ByStatus, domain.StatusMetrics{
			Status:        status.name,
			TotalRevenue:  utils.RoundCurrency(status.totalRevenue),
			SalesQuantity: status.salesQuantity,
			Share:         share(status.totalRevenue, metrics.TotalRevenue),
		})
	}

	for _, point := range trend {
		point.TotalRevenue = utils.RoundCurrency(point.TotalRevenue)
		metrics.Trend = append(metrics.Trend, *point)
	}
	sort.Slice(metrics.Trend, func(i, j int) bool {
		return metrics.Trend[i].Period.Format(utils.DateLayout) < metrics.Trend[j].Period.Format(utils.DateLayout)
	})

	return metrics
}

// accumulate agrupa sem diferenciar caixa ou espaços; o primeiro nome encontrado é o exibido
func accumulate(groups map[string]*groupAggregator, name, fallback string, amount float64) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}

	key := domain.NormalizeKey(name)
	group, ok := groups[key]
	if !ok {
		group = &groupAggregator{name: name}
		groups[key] = group
	}

	group.totalRevenue += amount
	group.salesQuantity++
}

// sortedGroups ordena por receita decrescente e, em caso de empate, pelo nome
func sortedGroups(groups map[string]*groupAggregator) []*groupAggregator {
	result := make([]*groupAggregator, 0, len(groups))
	for _, group := range groups {
		result = append(result, group)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].totalRevenue != result[j].totalRevenue {
			return result[i].totalRevenue > result[j].totalRevenue
		}
		return result[i].name < result[j].name
	})

	return result
}

func averageTicket(revenue float64, quantity int) float64 {
	return utils.Average(revenue, quantity)
}

func share(value, total float64) float64 {
	return utils.Percentage(value, total)
}

// PeriodStart retorna o início do período que contém a data. Semanas começam na segunda-feira.
func PeriodStart(date time.Time, granularity domain.Granularity) time.Time {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	switch granularity {
	case domain.GranularityWeek:
		offset := (int(day.Weekday()) + 6) % 7
		return day.AddDate(0, 0, -offset)
	case domain.GranularityMonth:
		return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	default:
		return day
	}
}

// PeriodLabel formata o período para exibição em tabelas e gráficos
func PeriodLabel(period time.Time, granularity domain.Granularity) string {
	switch granularity {
	case domain.GranularityWeek:
		return "Semana de " + period.Format("02/01/2006")
	case domain.GranularityMonth:
		return period.Format("01/2006")
	default:
		return period.Format("02/01/2006")
	}
}
