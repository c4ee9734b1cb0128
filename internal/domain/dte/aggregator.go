package dte

import (
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Aggregate suma las líneas ya redondeadas en los totales del documento.
// Total = gravado + exento + no sujeto + IVA.
func Aggregate(lines []entity.LineItem) entity.Totals {
	t := entity.Totals{
		Taxable:    decimal.Zero,
		Exempt:     decimal.Zero,
		NonSubject: decimal.Zero,
		VAT:        decimal.Zero,
	}
	for _, l := range lines {
		switch l.Kind {
		case entity.LineExempt:
			t.Exempt = t.Exempt.Add(l.TaxableBase)
		case entity.LineNonSubject:
			t.NonSubject = t.NonSubject.Add(l.TaxableBase)
		default:
			t.Taxable = t.Taxable.Add(l.TaxableBase)
		}
		t.VAT = t.VAT.Add(l.VATAmount)
	}
	t.Total = t.Taxable.Add(t.Exempt).Add(t.NonSubject).Add(t.VAT)
	return t
}
