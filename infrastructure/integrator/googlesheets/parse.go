package googlesheets

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/vfg2006/sales-dashboard/internal/config"
	"github.com/vfg2006/sales-dashboard/internal/domain"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Formatos aceitos para datas vindas do formulário (dia antes do mês)
var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006 15:04:05",
	"2/1/2006",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC3339,
}

var (
	errEmptyAmount   = errors.New("valor vazio")
	errInvalidAmount = errors.New("valor inválido")
)

const noColumn = -1

type columnIndex struct {
	timestamp int
	date      int
	salesRep  int
	amount    int
	status    int
	customer  int
	product   int
}

// resolveColumns localiza as colunas configuradas no cabeçalho.
// Apenas a coluna de valor é obrigatória.
func resolveColumns(header []string, columns config.Columns) (columnIndex, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		key := normalizeHeader(name)
		if _, exists := positions[key]; !exists {
			positions[key] = i
		}
	}

	find := func(name string) int {
		if name == "" {
			return noColumn
		}
		if i, ok := positions[normalizeHeader(name)]; ok {
			return i
		}
		return noColumn
	}

	index := columnIndex{
		timestamp: find(columns.Timestamp),
		date:      find(columns.Date),
		salesRep:  find(columns.SalesRep),
		amount:    find(columns.Amount),
		status:    find(columns.Status),
		customer:  find(columns.Customer),
		product:   find(columns.Product),
	}

	if index.amount == noColumn {
		return index, fmt.Errorf("%w: %q", domain.ErrMissingColumn, columns.Amount)
	}

	return index, nil
}

func (c columnIndex) isMapped(i int) bool {
	return i == c.timestamp || i == c.date || i == c.salesRep || i == c.amount ||
		i == c.status || i == c.customer || i == c.product
}

// normalizeHeader remove acentos, espaços duplicados e diferenças de caixa
func normalizeHeader(name string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, name)
	if err != nil {
		result = name
	}
	return domain.NormalizeKey(result)
}

func cellAt(row []interface{}, i int) interface{} {
	if i == noColumn || i >= len(row) {
		return nil
	}
	return row[i]
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func isBlankRow(row []interface{}) bool {
	for _, cell := range row {
		if cellString(cell) != "" {
			return false
		}
	}
	return true
}

func extraColumns(header []string, row []interface{}, columns columnIndex) map[string]string {
	var extra map[string]string
	for i, name := range header {
		if columns.isMapped(i) || name == "" {
			continue
		}

		value := cellString(cellAt(row, i))
		if value == "" {
			continue
		}

		if extra == nil {
			extra = make(map[string]string)
		}
		extra[name] = value
	}
	return extra
}

// Símbolos de moeda removidos do início do valor, além do configurado em APP_CURRENCY_SYMBOL
var currencySymbols = []string{"R$", "US$", "$", "€"}

// parseAmount aceita números da API e textos como "R$ 1.234,56", "1,234.56" ou "(50,00)".
// Qualquer caractere além de dígitos e separadores invalida a célula. Um único ponto seguido
// de exatamente três dígitos é separador de milhar ("R$ 1.500" vale 1500).
func parseAmount(cell interface{}, currencySymbol string) (float64, error) {
	switch v := cell.(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, errInvalidAmount
		}
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}

	raw := cellString(cell)
	if raw == "" {
		return 0, errEmptyAmount
	}
	invalid := fmt.Errorf("%w: %q", errInvalidAmount, raw)

	text := raw
	negative := false
	if strings.HasPrefix(text, "(") && strings.HasSuffix(text, ")") {
		negative = true
		text = strings.TrimSpace(text[1 : len(text)-1])
	}

	// O sinal pode vir antes ou depois do símbolo: "-R$ 10" ou "R$ -10"
	rest, signed := strings.CutPrefix(text, "-")
	text = trimCurrencySymbol(strings.TrimSpace(rest), currencySymbol)
	if !signed {
		text, signed = strings.CutPrefix(text, "-")
	}
	if signed {
		negative = !negative
	}

	if !isAmountText(text) {
		return 0, invalid
	}

	normalized, ok := normalizeSeparators(text)
	if !ok {
		return 0, invalid
	}

	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, invalid
	}

	if negative {
		value = -value
	}

	return value, nil
}

func trimCurrencySymbol(text, configured string) string {
	symbols := currencySymbols
	if configured = strings.TrimSpace(configured); configured != "" {
		symbols = append([]string{configured}, symbols...)
	}

	for _, symbol := range symbols {
		if rest, ok := strings.CutPrefix(text, symbol); ok {
			return strings.TrimSpace(rest)
		}
	}
	return text
}

// isAmountText exige dígitos nas pontas e apenas dígitos, vírgulas e pontos no meio
func isAmountText(text string) bool {
	if text == "" {
		return false
	}

	for _, r := range text {
		if !isDigit(r) && r != ',' && r != '.' {
			return false
		}
	}

	return isDigit(rune(text[0])) && isDigit(rune(text[len(text)-1]))
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// normalizeSeparators converte o texto para o formato aceito por strconv.ParseFloat
func normalizeSeparators(text string) (string, bool) {
	lastComma := strings.LastIndex(text, ",")
	lastDot := strings.LastIndex(text, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		thousands, decimal := ".", ","
		if lastDot > lastComma {
			thousands, decimal = ",", "."
		}
		if strings.Count(text, decimal) > 1 {
			return "", false
		}
		integer, fraction, _ := strings.Cut(text, decimal)
		if !validGrouping(integer, thousands) {
			return "", false
		}
		return strings.ReplaceAll(integer, thousands, "") + "." + fraction, true

	case lastComma >= 0:
		if strings.Count(text, ",") > 1 {
			if !validGrouping(text, ",") {
				return "", false
			}
			return strings.ReplaceAll(text, ",", ""), true
		}
		return strings.Replace(text, ",", ".", 1), true

	case lastDot >= 0:
		if strings.Count(text, ".") > 1 || len(text)-lastDot-1 == 3 && validGrouping(text, ".") {
			if !validGrouping(text, ".") {
				return "", false
			}
			return strings.ReplaceAll(text, ".", ""), true
		}
		return text, true
	}

	return text, true
}

// validGrouping confere grupos de milhar: o primeiro com 1 a 3 dígitos, os demais com 3
func validGrouping(text, separator string) bool {
	groups := strings.Split(text, separator)
	if len(groups[0]) == 0 || len(groups[0]) > 3 || groups[0][0] == '0' {
		return false
	}
	for _, group := range groups[1:] {
		if len(group) != 3 {
			return false
		}
	}
	return true
}

// parseDate tenta os formatos conhecidos; retorna nil quando a célula está vazia ou é inválida
func parseDate(cell interface{}, location *time.Location) *time.Time {
	raw := cellString(cell)
	if raw == "" {
		return nil
	}

	for _, layout := range dateLayouts {
		parsed, err := time.ParseInLocation(layout, raw, location)
		if err == nil {
			// Valores com fuso próprio (RFC3339) passam para o fuso da aplicação
			parsed = parsed.In(location)
			return &parsed
		}
	}

	return nil
}
