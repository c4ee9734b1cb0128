// Package dte contiene el núcleo fiscal de los documentos tributarios electrónicos:
// cálculo de IVA, totales, clasificación por tipo, validación y ciclo de vida.
package dte

import (
	"fmt"
	"math"

	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Mode modo de cálculo del IVA.
type Mode int

const (
	// ModeExclusive el operador ingresa la base; el IVA se suma (CCF y notas).
	ModeExclusive Mode = iota + 1
	// ModeInclusive el operador ingresa el total con IVA incluido (factura consumidor final).
	ModeInclusive
)

func (m Mode) String() string {
	switch m {
	case ModeExclusive:
		return "exclusive"
	case ModeInclusive:
		return "inclusive"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode convierte "exclusive"/"inclusive".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "exclusive":
		return ModeExclusive, nil
	case "inclusive":
		return ModeInclusive, nil
	}
	return 0, domain.NewValidationError("mode", "debe ser exclusive o inclusive")
}

// DefaultVATRate tasa de IVA vigente.
var DefaultVATRate = decimal.RequireFromString("0.13")

// Round2 redondeo half-up a 2 decimales. Para montos no negativos Round equivale a half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat convierte un float a decimal rechazando NaN e infinitos.
func FromFloat(field string, f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, domain.NewValidationError(field, "debe ser un número finito")
	}
	return decimal.NewFromFloat(f), nil
}

// Amounts desglose base / IVA / total.
type Amounts struct {
	Base  decimal.Decimal
	VAT   decimal.Decimal
	Total decimal.Decimal
}

// Calculator calcula bases e IVA en cualquiera de los dos modos.
type Calculator struct {
	rate    decimal.Decimal
	divisor decimal.Decimal
}

// NewCalculator construye el calculador con la tasa indicada (ej. 0.13).
func NewCalculator(rate decimal.Decimal) *Calculator {
	return &Calculator{rate: rate, divisor: decimal.NewFromInt(1).Add(rate)}
}

// Rate devuelve la tasa configurada.
func (c *Calculator) Rate() decimal.Decimal { return c.rate }

// FromBase modo exclusivo: IVA = round2(base * tasa); total = base + IVA.
func (c *Calculator) FromBase(base decimal.Decimal) (Amounts, error) {
	if base.IsNegative() {
		return Amounts{}, domain.NewValidationError("base", "no puede ser negativa")
	}
	base = Round2(base)
	vat := Round2(base.Mul(c.rate))
	return Amounts{Base: base, VAT: vat, Total: base.Add(vat)}, nil
}

// FromTotal modo inclusivo: base = round2(total / (1 + tasa)); IVA = total - base.
// El IVA se obtiene por diferencia para que base + IVA == total sin centavos de desvío.
func (c *Calculator) FromTotal(total decimal.Decimal) (Amounts, error) {
	if total.IsNegative() {
		return Amounts{}, domain.NewValidationError("total", "no puede ser negativo")
	}
	total = Round2(total)
	base := Round2(total.Div(c.divisor))
	return Amounts{Base: base, VAT: Round2(total.Sub(base)), Total: total}, nil
}

// Split aplica el modo indicado sobre amount (base en exclusivo, total en inclusivo).
func (c *Calculator) Split(mode Mode, amount decimal.Decimal) (Amounts, error) {
	switch mode {
	case ModeExclusive:
		return c.FromBase(amount)
	case ModeInclusive:
		return c.FromTotal(amount)
	}
	return Amounts{}, domain.NewValidationError("mode", "modo de cálculo desconocido")
}

// LineInput datos de una línea tal como los ingresa el operador.
type LineInput struct {
	ItemCode    string
	Description string
	Kind        entity.LineKind
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
}

// Line valida y calcula una línea. n es el número de línea (desde 1).
// En modo inclusivo el precio unitario trae el IVA incluido.
// Devuelve todos los errores de la línea en un ValidationErrors.
func (c *Calculator) Line(mode Mode, vatApplicable bool, n int, in LineInput) (entity.LineItem, error) {
	field := func(name string) string { return fmt.Sprintf("lines[%d].%s", n-1, name) }
	var errs domain.ValidationErrors

	kind := in.Kind
	if kind == "" {
		kind = entity.LineTaxable
	}
	switch kind {
	case entity.LineTaxable, entity.LineExempt, entity.LineNonSubject:
	default:
		errs = append(errs, domain.NewValidationError(field("kind"), "clasificación de venta desconocida"))
	}
	if in.Description == "" {
		errs = append(errs, domain.NewValidationError(field("description"), "requerida"))
	}
	if !in.Quantity.IsPositive() {
		errs = append(errs, domain.NewValidationError(field("quantity"), "debe ser mayor que cero"))
	}
	if in.UnitPrice.IsNegative() {
		errs = append(errs, domain.NewValidationError(field("unit_price"), "no puede ser negativo"))
	}
	gross := in.Quantity.Mul(in.UnitPrice)
	switch {
	case in.Discount.IsNegative():
		errs = append(errs, domain.NewValidationError(field("discount"), "no puede ser negativo"))
	case in.Discount.GreaterThan(gross) && !gross.IsNegative():
		errs = append(errs, domain.NewValidationError(field("discount"), "no puede superar cantidad × precio"))
	}
	if len(errs) > 0 {
		return entity.LineItem{}, errs
	}

	amount := Round2(gross.Sub(in.Discount))
	item := entity.LineItem{
		LineNumber:  n,
		ItemCode:    in.ItemCode,
		Description: in.Description,
		Kind:        kind,
		Quantity:    in.Quantity,
		UnitPrice:   in.UnitPrice,
		Discount:    in.Discount,
	}
	if kind != entity.LineTaxable || !vatApplicable {
		item.TaxableBase = amount
		item.VATAmount = decimal.Zero
		item.LineTotal = amount
		return item, nil
	}
	a, err := c.Split(mode, amount)
	if err != nil {
		return entity.LineItem{}, err
	}
	item.TaxableBase = a.Base
	item.VATAmount = a.VAT
	item.LineTotal = a.Total
	return item, nil
}
