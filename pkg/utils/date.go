package utils

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate interpreta uma data no formato YYYY-MM-DD no fuso informado.
// Valor vazio retorna nil sem erro.
func ParseDate(dateStr string, location *time.Location) (*time.Time, error) {
	dateStr = strings.TrimSpace(dateStr)
	if dateStr == "" {
		return nil, nil
	}

	if location == nil {
		location = time.UTC
	}

	date, err := time.ParseInLocation(DateLayout, dateStr, location)
	if err != nil {
		return nil, err
	}

	return &date, nil
}
