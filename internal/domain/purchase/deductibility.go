// Package purchase aplica la regla de antigüedad del crédito fiscal en compras.
package purchase

import (
	"fmt"
	"time"

	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

// DefaultWindowDays días calendario desde la emisión hasta el cierre del período
// dentro de los cuales el crédito fiscal es deducible.
const DefaultWindowDays = 90

// Códigos de advertencia.
const (
	WarningReclassified   = "RECLASSIFIED_NON_DEDUCTIBLE"
	WarningFutureEmission = "FUTURE_EMISSION_DATE"
	WarningAfterPeriod    = "EMISSION_AFTER_PERIOD"
)

// Warning advertencia no bloqueante que el llamador debe mostrar.
type Warning struct {
	Code    string
	Message string
	Days    int
}

// Outcome resultado explícito de la evaluación. El llamador decide cómo aplicarlo
// (ver Apply); el evaluador nunca modifica el registro por su cuenta.
type Outcome struct {
	State         entity.DeductibilityState
	OriginalType  string
	EffectiveType string
	DaysElapsed   int
	Reclassified  bool
	Warnings      []Warning
}

// Evaluator evalúa la deducibilidad de una compra respecto al período de trabajo.
type Evaluator struct {
	windowDays int
	now        func() time.Time
}

// NewEvaluator construye el evaluador. windowDays <= 0 usa DefaultWindowDays; now nil usa time.Now.
func NewEvaluator(windowDays int, now func() time.Time) *Evaluator {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	if now == nil {
		now = time.Now
	}
	return &Evaluator{windowDays: windowDays, now: now}
}

// WindowDays ventana configurada.
func (e *Evaluator) WindowDays() int { return e.windowDays }

// PeriodEnd último día calendario del período "YYYY-MM".
func PeriodEnd(period string) (time.Time, error) {
	start, err := time.Parse("2006-01", period)
	if err != nil {
		return time.Time{}, domain.NewValidationError("applied_period", "formato esperado YYYY-MM")
	}
	return start.AddDate(0, 1, -1), nil
}

// DaysBetween días calendario completos de from a to (fechas civiles, sin hora).
func DaysBetween(from, to time.Time) int {
	return int(civil(to).Sub(civil(from)).Hours() / 24)
}

func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Evaluate calcula días = fin del período - emisión. Con días > ventana un documento con IVA
// pasa a NON_DEDUCTIBLE y se reclasifica como sujeto excluido, sin importar el tipo elegido.
func (e *Evaluator) Evaluate(period string, emission time.Time, docType string) (Outcome, error) {
	var errs domain.ValidationErrors
	end, err := PeriodEnd(period)
	if err != nil {
		errs = append(errs, err)
	}
	if emission.IsZero() {
		errs = append(errs, domain.NewValidationError("emission_date", "requerida"))
	}
	if docType == "" {
		errs = append(errs, domain.NewValidationError("document_type", "requerido"))
	}
	if len(errs) > 0 {
		return Outcome{}, errs
	}

	out := Outcome{
		State:         entity.Deductible,
		OriginalType:  docType,
		EffectiveType: docType,
		DaysElapsed:   DaysBetween(emission, end),
	}
	if civil(emission).After(civil(e.now())) {
		out.Warnings = append(out.Warnings, Warning{
			Code:    WarningFutureEmission,
			Message: "la fecha de emisión es posterior a la fecha actual",
		})
	}
	if out.DaysElapsed < 0 {
		out.Warnings = append(out.Warnings, Warning{
			Code:    WarningAfterPeriod,
			Message: fmt.Sprintf("la fecha de emisión es posterior al cierre del período %s", period),
			Days:    out.DaysElapsed,
		})
	}

	if !mh.PurchaseVATBearingTypes[docType] {
		// Sin IVA trasladado no hay crédito fiscal que perder; el tipo se conserva.
		out.State = entity.NonDeductible
		return out, nil
	}
	if out.DaysElapsed > e.windowDays {
		e.reclassify(&out)
	}
	return out, nil
}

func (e *Evaluator) reclassify(out *Outcome) {
	out.State = entity.NonDeductible
	out.EffectiveType = mh.DocTypeSujetoExcluido
	out.Reclassified = true
	out.Warnings = append(out.Warnings, Warning{
		Code: WarningReclassified,
		Message: fmt.Sprintf("el documento tiene %d días de antigüedad al cierre del período (máximo %d); se registra como no deducible",
			out.DaysElapsed, e.windowDays),
		Days: out.DaysElapsed,
	})
}

// Entry sesión de captura de una compra. Una vez reclasificada, la compra sigue
// como no deducible aunque el operador cambie fecha o tipo en la misma sesión.
type Entry struct {
	ev      *Evaluator
	latched bool
}

// NewEntry abre una sesión de captura.
func (e *Evaluator) NewEntry() *Entry {
	return &Entry{ev: e}
}

// Latched indica si la sesión ya quedó reclasificada.
func (s *Entry) Latched() bool { return s.latched }

// Evaluate igual que Evaluator.Evaluate pero respetando la reclasificación previa de la sesión.
func (s *Entry) Evaluate(period string, emission time.Time, docType string) (Outcome, error) {
	out, err := s.ev.Evaluate(period, emission, docType)
	if err != nil {
		return Outcome{}, err
	}
	if out.Reclassified {
		s.latched = true
		return out, nil
	}
	if s.latched {
		s.ev.reclassify(&out)
	}
	return out, nil
}

// Apply aplica el resultado al registro de compra.
func Apply(rec *entity.PurchaseRecord, out Outcome) {
	rec.OriginalDocumentType = out.OriginalType
	rec.DocumentType = out.EffectiveType
	rec.Deductibility = out.State
}

// ResumeEntry reabre una sesión de captura. latched indica que la compra ya fue
// reclasificada antes en la misma sesión (por ejemplo, en una vista previa).
func (e *Evaluator) ResumeEntry(latched bool) *Entry {
	return &Entry{ev: e, latched: latched}
}
