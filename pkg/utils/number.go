package utils

import "math"

// RoundCurrency arredonda valores monetários para centavos. NaN e infinitos viram zero.
func RoundCurrency(f float64) float64 {
	if f == 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}

	return math.Round(f*100) / 100
}

// Average retorna total/count arredondado; zero quando não há itens
func Average(total float64, count int) float64 {
	if count <= 0 {
		return 0
	}
	return RoundCurrency(total / float64(count))
}

// Percentage retorna a participação de part em total, de 0 a 100
func Percentage(part, total float64) float64 {
	if total == 0 {
		return 0
	}
	return RoundCurrency(part / total * 100)
}
