package mh

import (
	"fmt"
	"unicode"
)

const (
	duiLength = 9
	nitLength = 14
)

// NormalizeDUI deja solo dígitos y completa con ceros a la izquierda hasta 9.
// "01234567-8" -> "012345678".
func NormalizeDUI(s string) (string, error) {
	digits := extractDigits(s)
	if len(digits) == 0 || len(digits) > duiLength {
		return "", fmt.Errorf("mh: DUI debe tener hasta %d dígitos, se encontraron %d", duiLength, len(digits))
	}
	return leftPad(digits, duiLength), nil
}

// ValidateDUICheckDigit verifica el dígito verificador del DUI (módulo 10 con pesos 9..2).
func ValidateDUICheckDigit(dui string) error {
	d, err := NormalizeDUI(dui)
	if err != nil {
		return err
	}
	var sum int
	for i := 0; i < duiLength-1; i++ {
		sum += int(d[i]-'0') * (duiLength - i)
	}
	expected := (10 - sum%10) % 10
	if got := int(d[duiLength-1] - '0'); got != expected {
		return fmt.Errorf("mh: dígito verificador del DUI inválido: esperado %d, recibido %d", expected, got)
	}
	return nil
}

// NormalizeNIT deja solo dígitos. Un NIT de 9 dígitos es un DUI homologado y se conserva;
// el resto se completa a 14 dígitos.
func NormalizeNIT(s string) (string, error) {
	digits := extractDigits(s)
	switch {
	case len(digits) == duiLength:
		return string(digits), nil
	case len(digits) == 0 || len(digits) > nitLength:
		return "", fmt.Errorf("mh: NIT debe tener 9 o 14 dígitos, se encontraron %d", len(digits))
	default:
		return leftPad(digits, nitLength), nil
	}
}

// NormalizeIdentifier normaliza según el tipo de documento de identificación (CAT-022).
func NormalizeIdentifier(idType, number string) (string, error) {
	switch idType {
	case IDTypeNIT:
		return NormalizeNIT(number)
	case IDTypeDUI:
		return NormalizeDUI(number)
	default:
		if len(number) < 3 {
			return "", fmt.Errorf("mh: número de documento demasiado corto")
		}
		return number, nil
	}
}

func leftPad(digits []byte, n int) string {
	out := make([]byte, 0, n)
	for i := len(digits); i < n; i++ {
		out = append(out, '0')
	}
	return string(append(out, digits...))
}

func extractDigits(s string) []byte {
	var out []byte
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, byte(r))
		}
	}
	return out
}

// DigitsOnly quita separadores y letras; útil para búsquedas por prefijo de NIT, DUI o NRC.
func DigitsOnly(s string) string {
	return string(extractDigits(s))
}
