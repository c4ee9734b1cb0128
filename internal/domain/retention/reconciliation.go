// Package retention concilia comprobantes de retención de IVA contra ventas del período.
package retention

import (
	"strings"
	"time"

	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	// DefaultRate retención de IVA del 1% sobre la base gravada.
	DefaultRate = decimal.RequireFromString("0.01")
	// DefaultTolerance diferencia máxima aceptada sin justificación.
	DefaultTolerance = decimal.RequireFromString("0.01")
)

// DefaultLookbackMonths ventana por defecto de ventas candidatas antes de la fecha del comprobante.
const DefaultLookbackMonths = 3

// Engine decide la conciliación con tolerancia y justificación.
type Engine struct {
	rate      decimal.Decimal
	tolerance decimal.Decimal
}

// NewEngine construye el motor con la tasa de retención y la tolerancia.
func NewEngine(rate, tolerance decimal.Decimal) *Engine {
	return &Engine{rate: rate, tolerance: tolerance}
}

// ExpectedRetention round2(base * tasa).
func (e *Engine) ExpectedRetention(base decimal.Decimal) decimal.Decimal {
	return base.Mul(e.rate).Round(2)
}

// Candidate arma un SaleCandidate calculando la retención esperada.
func (e *Engine) Candidate(id string, emission time.Time, docType string, base decimal.Decimal) entity.SaleCandidate {
	return entity.SaleCandidate{
		ID:                id,
		EmissionDate:      emission,
		DocumentType:      docType,
		TaxableBase:       base,
		ExpectedRetention: e.ExpectedRetention(base),
	}
}

// Window rango de fechas [desde, hasta] de ventas candidatas para un comprobante.
func Window(certDate time.Time, months int) (from, to time.Time) {
	if months <= 0 {
		months = DefaultLookbackMonths
	}
	return certDate.AddDate(0, -months, 0), certDate
}

// Reconcile filtra las candidatas seleccionadas, suma sus retenciones esperadas y compara
// contra el monto retenido. Si diff > tolerancia exige justificación. En éxito marca el
// comprobante como APLICADO con las ventas y la justificación.
func (e *Engine) Reconcile(
	cert *entity.RetentionCertificate,
	candidates []entity.SaleCandidate,
	selected []string,
	justification string,
	at time.Time,
) (entity.ReconciliationResult, error) {
	if cert == nil {
		return entity.ReconciliationResult{}, domain.NewValidationError("certificate_id", "requerido")
	}
	if cert.State == entity.RetentionApplied {
		return entity.ReconciliationResult{}, domain.ErrAlreadyApplied
	}

	ids := dedupe(selected)
	if len(ids) == 0 {
		return entity.ReconciliationResult{}, &domain.EmptySelectionError{}
	}

	pool := make(map[string]entity.SaleCandidate, len(candidates))
	for _, c := range candidates {
		pool[c.ID] = c
	}
	var errs domain.ValidationErrors
	sum := decimal.Zero
	for _, id := range ids {
		c, ok := pool[id]
		if !ok {
			errs = append(errs, domain.NewValidationError("selected_sale_ids", "venta "+id+" no es candidata"))
			continue
		}
		sum = sum.Add(c.ExpectedRetention)
	}
	if len(errs) > 0 {
		return entity.ReconciliationResult{}, errs
	}

	diff := sum.Sub(cert.RetainedAmount)
	justification = strings.TrimSpace(justification)
	res := entity.ReconciliationResult{
		MatchedSaleIDs:        ids,
		Sum:                   sum,
		Diff:                  diff,
		JustificationRequired: diff.GreaterThan(e.tolerance),
		Justification:         justification,
	}
	if res.JustificationRequired && justification == "" {
		return res, &domain.ToleranceExceededError{Sum: sum, Available: cert.RetainedAmount, Diff: diff}
	}

	applied := at
	cert.State = entity.RetentionApplied
	cert.MatchedSaleIDs = append([]string(nil), ids...)
	cert.Justification = justification
	cert.AppliedAt = &applied
	return res, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
