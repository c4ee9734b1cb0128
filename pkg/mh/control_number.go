package mh

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ControlNumberLength longitud fija del número de control.
const ControlNumberLength = 31

// ControlNumber arma el número de control: DTE-{tipo}-{establecimiento}{punto de venta}-{correlativo}.
// Establecimiento y punto de venta se ajustan a 4 caracteres; el correlativo a 15 dígitos.
func ControlNumber(docType, establishment, pointOfSale string, correlative int64) (string, error) {
	if len(docType) != 2 {
		return "", fmt.Errorf("mh: tipo de documento inválido %q", docType)
	}
	if correlative <= 0 {
		return "", fmt.Errorf("mh: correlativo debe ser positivo")
	}
	est := fit4(establishment)
	pos := fit4(pointOfSale)
	n := fmt.Sprintf("DTE-%s-%s%s-%015d", docType, est, pos, correlative)
	if len(n) != ControlNumberLength {
		return "", fmt.Errorf("mh: número de control con longitud %d", len(n))
	}
	return n, nil
}

// ValidControlNumber verifica el formato de un número de control electrónico.
func ValidControlNumber(s string) bool {
	if len(s) != ControlNumberLength || !strings.HasPrefix(s, "DTE-") {
		return false
	}
	return s[6] == '-' && s[15] == '-'
}

// NewGenerationCode devuelve un UUID v4 en mayúsculas (formato exigido por MH).
func NewGenerationCode() string {
	return strings.ToUpper(uuid.NewString())
}

// ValidGenerationCode indica si s es un UUID válido.
func ValidGenerationCode(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func fit4(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) >= 4 {
		return s[:4]
	}
	return s + strings.Repeat("0", 4-len(s))
}
