package presenter

import (
	"bytes"
	"embed"
	htmltemplate "html/template"
	"io"
	"net/url"
	texttemplate "text/template"
	"time"

	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
)

//go:embed templates/*
var templatesFS embed.FS

// QueryValues guarda os filtros no formato dos parâmetros da URL
type QueryValues struct {
	StartDate   string
	EndDate     string
	SalesRep    string
	Status      string
	Granularity string
}

func NewQueryValues(filters *domain.ReportFilters) QueryValues {
	query := QueryValues{Granularity: string(domain.GranularityDay)}
	if filters == nil {
		return query
	}

	if filters.StartDate != nil {
		query.StartDate = filters.StartDate.Format(time.DateOnly)
	}
	if filters.EndDate != nil {
		query.EndDate = filters.EndDate.Format(time.DateOnly)
	}
	if filters.Granularity != "" {
		query.Granularity = string(filters.Granularity)
	}
	query.SalesRep = filters.SalesRep
	query.Status = filters.Status

	return query
}

// Encode gera a query string omitindo filtros vazios
func (q QueryValues) Encode() string {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}

	set("start_date", q.StartDate)
	set("end_date", q.EndDate)
	set("rep", q.SalesRep)
	set("status", q.Status)
	set("granularity", q.Granularity)

	return values.Encode()
}

type DashboardView struct {
	Title     string
	Period    string
	Warning   string
	Report    *domain.SalesReport
	Metrics   *domain.SummaryMetrics
	Query     QueryValues
	ChartsURL htmltemplate.URL
}

type emailView struct {
	Title   string
	Subject string
	Period  string
	Report  *domain.SalesReport
	Metrics *domain.SummaryMetrics
}

// RenderedEmail contém as duas versões do corpo do e-mail
type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

type Presenter struct {
	title     string
	subject   string
	formatter Formatter
	dashboard *htmltemplate.Template
	emailHTML *htmltemplate.Template
	emailText *texttemplate.Template
}

func New(cfg *config.Config) (*Presenter, error) {
	formatter := NewFormatter(cfg.App.CurrencySymbol, cfg.App.Location)
	funcs := formatter.funcMap()

	dashboard, err := htmltemplate.New("dashboard.html").Funcs(funcs).ParseFS(templatesFS, "templates/dashboard.html")
	if err != nil {
		return nil, err
	}

	emailHTML, err := htmltemplate.New("email.html").Funcs(funcs).ParseFS(templatesFS, "templates/email.html")
	if err != nil {
		return nil, err
	}

	emailText, err := texttemplate.New("email.txt").Funcs(funcs).ParseFS(templatesFS, "templates/email.txt")
	if err != nil {
		return nil, err
	}

	title := cfg.App.Title
	if title == "" {
		title = "Painel de Vendas"
	}

	subject := cfg.Email.Subject
	if subject == "" {
		subject = "Resumo de vendas"
	}

	return &Presenter{
		title:     title,
		subject:   subject,
		formatter: formatter,
		dashboard: dashboard,
		emailHTML: emailHTML,
		emailText: emailText,
	}, nil
}

// NewDashboardView monta a tela. Sem relatório (falha na planilha) a tela mostra o estado vazio.
func (p *Presenter) NewDashboardView(report *domain.SalesReport, filters *domain.ReportFilters, warning string) DashboardView {
	query := NewQueryValues(filters)

	view := DashboardView{
		Title:     p.title,
		Warning:   warning,
		Report:    report,
		Query:     query,
		ChartsURL: htmltemplate.URL("/charts?" + query.Encode()),
	}

	if report != nil && report.Metrics != nil {
		view.Metrics = report.Metrics
		view.Period = report.PeriodLabel()
	} else {
		granularity := domain.Granularity(query.Granularity)
		view.Metrics = domain.NewEmptySummaryMetrics(granularity)
		view.Period = (&domain.SalesReport{Filters: filters}).PeriodLabel()
	}

	return view
}

func (p *Presenter) RenderDashboard(w io.Writer, view DashboardView) error {
	return p.dashboard.Execute(w, view)
}

// RenderEmail gera o assunto e os corpos HTML e texto do resumo
func (p *Presenter) RenderEmail(report *domain.SalesReport) (*RenderedEmail, error) {
	metrics := report.Metrics
	if metrics == nil {
		metrics = domain.NewEmptySummaryMetrics(domain.GranularityDay)
	}

	period := report.PeriodLabel()
	view := emailView{
		Title:   p.title,
		Subject: p.subject + " (" + period + ")",
		Period:  period,
		Report:  report,
		Metrics: metrics,
	}

	var html bytes.Buffer
	if err := p.emailHTML.Execute(&html, view); err != nil {
		return nil, err
	}

	var text bytes.Buffer
	if err := p.emailText.Execute(&text, view); err != nil {
		return nil, err
	}

	return &RenderedEmail{
		Subject: view.Subject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

func (p *Presenter) Formatter() Formatter {
	return p.formatter
}
