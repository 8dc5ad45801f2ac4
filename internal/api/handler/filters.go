package handler

import (
	"net/url"
	"time"

	"github.com/vfg2006/sales-dashboard/internal/domain"
)

// FiltersRequest são os filtros aceitos na query string e no corpo das requisições
type FiltersRequest struct {
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	SalesRep    string `json:"rep"`
	Status      string `json:"status"`
	Granularity string `json:"granularity"`
}

func filtersFromQuery(query url.Values) FiltersRequest {
	return FiltersRequest{
		StartDate:   query.Get("start_date"),
		EndDate:     query.Get("end_date"),
		SalesRep:    query.Get("rep"),
		Status:      query.Get("status"),
		Granularity: query.Get("granularity"),
	}
}

// ToDomain valida e converte os filtros no fuso do painel
func (f FiltersRequest) ToDomain(location *time.Location) (*domain.ReportFilters, error) {
	return domain.ParseReportFilters(f.StartDate, f.EndDate, f.SalesRep, f.Status, f.Granularity, location)
}
