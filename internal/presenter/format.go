package presenter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// Formatter converte valores para o padrão brasileiro usado nas telas e e-mails
type Formatter struct {
	CurrencySymbol string
	Location       *time.Location
}

func NewFormatter(currencySymbol string, location *time.Location) Formatter {
	if location == nil {
		location = time.UTC
	}
	return Formatter{
		CurrencySymbol: strings.TrimSpace(currencySymbol),
		Location:       location,
	}
}

// Money formata valores como "R$ 1.234,56"
func (f Formatter) Money(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	formatted := humanize.FormatFloat("#.###,##", value)
	if f.CurrencySymbol == "" {
		return sign + formatted
	}
	return sign + f.CurrencySymbol + " " + formatted
}

// Number formata inteiros com separador de milhar
func (f Formatter) Number(value int) string {
	return humanize.FormatInteger("#.###,", value)
}

// Percent formata percentuais já multiplicados por 100, com uma casa decimal
func (f Formatter) Percent(value float64) string {
	return humanize.FormatFloat("#.###,#", value) + "%"
}

func (f Formatter) Date(value *time.Time) string {
	if value == nil {
		return "-"
	}
	return value.In(f.Location).Format("02/01/2006")
}

func (f Formatter) DateTime(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.In(f.Location).Format("02/01/2006 15:04")
}

// BarWidth limita a largura da barra de participação entre 0 e 100
func (f Formatter) BarWidth(share float64) int {
	if share <= 0 || math.IsNaN(share) {
		return 0
	}
	if share >= 100 {
		return 100
	}
	width := int(math.Round(share))
	if width == 0 {
		return 1
	}
	return width
}

func (f Formatter) funcMap() map[string]any {
	return map[string]any{
		"money":    f.Money,
		"number":   f.Number,
		"percent":  f.Percent,
		"date":     f.Date,
		"datetime": f.DateTime,
		"bar":      f.BarWidth,
		"plural": func(n int, singular, plural string) string {
			if n == 1 {
				return fmt.Sprintf("%d %s", n, singular)
			}
			return fmt.Sprintf("%d %s", n, plural)
		},
	}
}
