package presenter

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

const (
	chartWidth  = "900px"
	chartHeight = "400px"
)

// RenderCharts gera a página de gráficos: receita por vendedor, evolução e status
func (p *Presenter) RenderCharts(w io.Writer, metrics *domain.SummaryMetrics) error {
	if metrics == nil {
		metrics = domain.NewEmptySummaryMetrics(domain.GranularityDay)
	}

	page := components.NewPage()
	page.PageTitle = p.title
	page.AddCharts(
		repBarChart(metrics),
		trendLineChart(metrics),
		statusPieChart(metrics),
	)

	return page.Render(w)
}

func initOpts() charts.GlobalOpts {
	return charts.WithInitializationOpts(opts.Initialization{
		Width:  chartWidth,
		Height: chartHeight,
	})
}

func repBarChart(metrics *domain.SummaryMetrics) *charts.Bar {
	names := make([]string, 0, len(metrics.ByRep))
	data := make([]opts.BarData, 0, len(metrics.ByRep))
	for _, rep := range metrics.ByRep {
		names = append(names, rep.Name)
		data = append(data, opts.BarData{Name: rep.Name, Value: rep.TotalRevenue})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Receita por vendedor"}),
	)
	bar.SetXAxis(names).AddSeries("Receita", data)

	return bar
}

func trendLineChart(metrics *domain.SummaryMetrics) *charts.Line {
	labels := make([]string, 0, len(metrics.Trend))
	revenue := make([]opts.LineData, 0, len(metrics.Trend))
	quantity := make([]opts.LineData, 0, len(metrics.Trend))
	for _, point := range metrics.Trend {
		labels = append(labels, point.Label)
		revenue = append(revenue, opts.LineData{Value: point.TotalRevenue})
		quantity = append(quantity, opts.LineData{Value: point.SalesQuantity})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Evolução das vendas"}),
	)
	line.SetXAxis(labels).
		AddSeries("Receita", revenue).
		AddSeries("Vendas", quantity)

	return line
}

func statusPieChart(metrics *domain.SummaryMetrics) *charts.Pie {
	data := make([]opts.PieData, 0, len(metrics.ByStatus))
	for _, status := range metrics.ByStatus {
		data = append(data, opts.PieData{Name: status.Status, Value: status.TotalRevenue})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		initOpts(),
		charts.WithTitleOpts(opts.Title{Title: "Receita por status"}),
	)
	pie.AddSeries("Status", data)

	return pie
}
