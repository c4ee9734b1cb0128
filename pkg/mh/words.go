package mh

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	units = []string{"", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE",
		"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE", "DIECISÉIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE",
		"VEINTE", "VEINTIUNO", "VEINTIDÓS", "VEINTITRÉS", "VEINTICUATRO", "VEINTICINCO", "VEINTISÉIS",
		"VEINTISIETE", "VEINTIOCHO", "VEINTINUEVE"}
	tens     = []string{"", "", "", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}
	hundreds = []string{"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS", "QUINIENTOS",
		"SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS"}
)

// AmountInWords monto en letras como lo exige el resumen del DTE:
// 113.50 -> "CIENTO TRECE 50/100 USD".
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Abs().Round(2)
	whole := amount.Truncate(0)
	cents := amount.Sub(whole).Mul(decimal.NewFromInt(100)).IntPart()

	words := "CERO"
	if n := whole.IntPart(); n > 0 {
		words = integerWords(n)
	}
	return fmt.Sprintf("%s %02d/100 USD", words, cents)
}

func integerWords(n int64) string {
	var parts []string
	if millions := n / 1_000_000; millions > 0 {
		if millions == 1 {
			parts = append(parts, "UN MILLÓN")
		} else {
			parts = append(parts, apocope(integerWords(millions))+" MILLONES")
		}
		n %= 1_000_000
	}
	if thousands := n / 1000; thousands > 0 {
		if thousands == 1 {
			parts = append(parts, "MIL")
		} else {
			parts = append(parts, apocope(below1000(thousands))+" MIL")
		}
		n %= 1000
	}
	if n > 0 {
		parts = append(parts, below1000(n))
	}
	return strings.Join(parts, " ")
}

func below1000(n int64) string {
	if n == 100 {
		return "CIEN"
	}
	var parts []string
	if h := n / 100; h > 0 {
		parts = append(parts, hundreds[h])
		n %= 100
	}
	switch {
	case n == 0:
	case n < 30:
		parts = append(parts, units[n])
	default:
		w := tens[n/10]
		if u := n % 10; u > 0 {
			w += " Y " + units[u]
		}
		parts = append(parts, w)
	}
	return strings.Join(parts, " ")
}

// apocope "VEINTIUNO MIL" -> "VEINTIÚN MIL", "TREINTA Y UNO MIL" -> "TREINTA Y UN MIL".
func apocope(s string) string {
	switch {
	case strings.HasSuffix(s, "VEINTIUNO"):
		return strings.TrimSuffix(s, "VEINTIUNO") + "VEINTIÚN"
	case strings.HasSuffix(s, "UNO"):
		return strings.TrimSuffix(s, "UNO") + "UN"
	}
	return s
}
