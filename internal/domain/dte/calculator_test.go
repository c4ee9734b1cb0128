package dte_test

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/dte"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal, msg string) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msg)
}

func newCalc() *dte.Calculator { return dte.NewCalculator(dte.DefaultVATRate) }

// ──────────────────────────────────────────────────────────────────────────────
// Modos de cálculo
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: 2 × 50.00 en modo exclusivo -> base 100.00, IVA 13.00, total 113.00.
func TestLine_ExclusivoDosPorCincuenta(t *testing.T) {
	item, err := newCalc().Line(dte.ModeExclusive, true, 1, dte.LineInput{
		Description: "Servicio",
		Quantity:    dec("2"),
		UnitPrice:   dec("50.00"),
	})
	require.NoError(t, err)
	assertMoney(t, "100.00", item.TaxableBase, "base imponible")
	assertMoney(t, "13.00", item.VATAmount, "IVA")
	assertMoney(t, "113.00", item.LineTotal, "total de línea")
	assert.Equal(t, entity.LineTaxable, item.Kind, "sin clasificación la línea es gravada")
}

// Escenario B: total 113.00 con IVA incluido -> base 100.00, IVA 13.00.
func TestFromTotal_Inclusivo113(t *testing.T) {
	a, err := newCalc().FromTotal(dec("113.00"))
	require.NoError(t, err)
	assertMoney(t, "100.00", a.Base, "base")
	assertMoney(t, "13.00", a.VAT, "IVA")
}

func TestFromBase_RedondeoHalfUp(t *testing.T) {
	// 0.50 * 0.13 = 0.065 -> 0.07
	a, err := newCalc().FromBase(dec("0.50"))
	require.NoError(t, err)
	assertMoney(t, "0.07", a.VAT, "0.065 debe redondear hacia arriba")
	assertMoney(t, "0.57", a.Total, "total")
}

// base + IVA == total para todo total en modo inclusivo.
func TestFromTotal_CierreDeRedondeo(t *testing.T) {
	calc := newCalc()
	for cents := int64(0); cents <= 20000; cents++ {
		total := decimal.New(cents, -2)
		a, err := calc.FromTotal(total)
		require.NoError(t, err)
		require.True(t, a.Base.Add(a.VAT).Equal(total), "base + IVA debe igualar %s", total.StringFixed(2))
	}
}

// Exclusivo -> total -> inclusivo recupera la base con diferencia de a lo sumo 0.01.
func TestModos_Simetria(t *testing.T) {
	calc := newCalc()
	oneCent := dec("0.01")
	for cents := int64(0); cents <= 20000; cents += 7 {
		base := decimal.New(cents, -2)
		ex, err := calc.FromBase(base)
		require.NoError(t, err)
		in, err := calc.FromTotal(ex.Total)
		require.NoError(t, err)
		require.True(t, in.Base.Sub(base).Abs().LessThanOrEqual(oneCent),
			"base %s recuperada como %s", base.StringFixed(2), in.Base.StringFixed(2))
	}
}

func TestLine_InclusivoConDescuento(t *testing.T) {
	// 3 × 10.00 - 3.00 = 27.00 con IVA incluido -> base 23.89, IVA 3.11
	item, err := newCalc().Line(dte.ModeInclusive, true, 1, dte.LineInput{
		Description: "Producto",
		Quantity:    dec("3"),
		UnitPrice:   dec("10.00"),
		Discount:    dec("3.00"),
	})
	require.NoError(t, err)
	assertMoney(t, "23.89", item.TaxableBase, "base")
	assertMoney(t, "3.11", item.VATAmount, "IVA")
	assertMoney(t, "27.00", item.LineTotal, "total")
}

func TestLine_ExentaNoLlevaIVA(t *testing.T) {
	item, err := newCalc().Line(dte.ModeExclusive, true, 1, dte.LineInput{
		Description: "Medicamento",
		Kind:        entity.LineExempt,
		Quantity:    dec("1"),
		UnitPrice:   dec("25.00"),
	})
	require.NoError(t, err)
	assertMoney(t, "25.00", item.TaxableBase, "base exenta")
	assert.True(t, item.VATAmount.IsZero(), "las líneas exentas no llevan IVA")
}

func TestLine_TipoSinIVA(t *testing.T) {
	item, err := newCalc().Line(dte.ModeExclusive, false, 1, dte.LineInput{
		Description: "Compra a sujeto excluido",
		Quantity:    dec("4"),
		UnitPrice:   dec("12.50"),
	})
	require.NoError(t, err)
	assertMoney(t, "50.00", item.TaxableBase, "base")
	assert.True(t, item.VATAmount.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de validación
// ──────────────────────────────────────────────────────────────────────────────

func TestLine_AcumulaErroresDeCampo(t *testing.T) {
	_, err := newCalc().Line(dte.ModeExclusive, true, 2, dte.LineInput{
		Quantity:  dec("0"),
		UnitPrice: dec("-1"),
		Discount:  dec("-5"),
	})
	require.Error(t, err)

	var list domain.ValidationErrors
	require.True(t, errors.As(err, &list))
	fields := map[string]bool{}
	for _, fe := range list.Fields() {
		fields[fe.Field] = true
	}
	assert.True(t, fields["lines[1].description"])
	assert.True(t, fields["lines[1].quantity"])
	assert.True(t, fields["lines[1].unit_price"])
	assert.True(t, fields["lines[1].discount"])
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "los errores de campo son ErrInvalidInput")
}

func TestLine_DescuentoMayorAlBruto(t *testing.T) {
	_, err := newCalc().Line(dte.ModeExclusive, true, 1, dte.LineInput{
		Description: "x",
		Quantity:    dec("1"),
		UnitPrice:   dec("10"),
		Discount:    dec("10.01"),
	})
	var fe *domain.ValidationError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "lines[0].discount", fe.Field)
}

func TestFromFloat_RechazaNoFinitos(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := dte.FromFloat("unit_price", f)
		var fe *domain.ValidationError
		require.True(t, errors.As(err, &fe), "%v debe rechazarse", f)
		assert.Equal(t, "unit_price", fe.Field)
	}
	v, err := dte.FromFloat("unit_price", 12.5)
	require.NoError(t, err)
	assertMoney(t, "12.50", v, "valor finito")
}

func TestFromBase_Negativa(t *testing.T) {
	_, err := newCalc().FromBase(dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
