package dte

import (
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

// PeriodLayout formato del período de aplicación.
const PeriodLayout = "2006-01"

// Header cabecera del documento tal como la ingresa el operador.
// CompanyID es explícito: el núcleo no lee la empresa activa de ningún estado global.
type Header struct {
	CompanyID          string
	DocumentType       string
	Counterparty       entity.Counterparty
	OperationCondition int
	CreditTerm         *entity.CreditTerm
	EmissionDate       time.Time
	AppliedPeriod      string
}

// Builder compone cabecera + líneas + referencia en un FiscalDocument válido.
type Builder struct {
	calc *Calculator
}

// NewBuilder construye el builder con el calculador de IVA.
func NewBuilder(calc *Calculator) *Builder {
	return &Builder{calc: calc}
}

// Build valida todo en una sola pasada y devuelve el documento en estado GENERATED.
// Un tipo desconocido corta de inmediato con ClassificationError; el resto de problemas
// se acumulan en un ValidationErrors.
func (b *Builder) Build(h Header, lines []LineInput, related *entity.RelatedDocumentRef) (*entity.FiscalDocument, error) {
	class, err := Classify(h.DocumentType)
	if err != nil {
		return nil, err
	}

	var errs domain.ValidationErrors
	add := func(err error) {
		if err == nil {
			return
		}
		var list domain.ValidationErrors
		if errors.As(err, &list) {
			errs = append(errs, list...)
			return
		}
		errs = append(errs, err)
	}

	if strings.TrimSpace(h.CompanyID) == "" {
		add(domain.NewValidationError("company_id", "requerido"))
	}
	if h.EmissionDate.IsZero() {
		add(domain.NewValidationError("emission_date", "requerida"))
	}
	period := h.AppliedPeriod
	if period == "" && !h.EmissionDate.IsZero() {
		period = h.EmissionDate.Format(PeriodLayout)
	}
	if _, perr := time.Parse(PeriodLayout, period); perr != nil {
		add(domain.NewValidationError("applied_period", "formato esperado YYYY-MM"))
	}

	counterparty, cerr := validateCounterparty(class, h.Counterparty)
	add(cerr)

	term, terr := validateCondition(h.OperationCondition, h.CreditTerm)
	add(terr)

	add(ValidateRelatedDocument(class, related, h.EmissionDate))

	items := make([]entity.LineItem, 0, len(lines))
	if len(lines) == 0 {
		add(domain.NewValidationError("lines", "debe incluir al menos una línea"))
	}
	for i, in := range lines {
		item, lerr := b.calc.Line(class.Mode, class.VATApplicable, i+1, in)
		if lerr != nil {
			add(lerr)
			continue
		}
		items = append(items, item)
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &entity.FiscalDocument{
		CompanyID:          h.CompanyID,
		DocumentType:       class.Code,
		Counterparty:       counterparty,
		OperationCondition: h.OperationCondition,
		CreditTerm:         term,
		EmissionDate:       h.EmissionDate,
		AppliedPeriod:      period,
		Lines:              items,
		Related:            normalizeRelated(related),
		Totals:             Aggregate(items),
		State:              entity.StateGenerated,
	}, nil
}

func validateCounterparty(class Classification, c entity.Counterparty) (entity.Counterparty, error) {
	var errs domain.ValidationErrors
	for _, f := range class.ReceptorFieldsRequired {
		if !c.HasField(f) {
			errs = append(errs, domain.NewValidationError("counterparty."+f, "requerido para "+class.Name))
		}
	}
	if c.IDType != "" && !mh.ValidIDTypes[c.IDType] {
		errs = append(errs, domain.NewValidationError("counterparty.id_type", "tipo de documento de identificación inválido"))
	} else if c.IDType != "" && c.IDNumber != "" {
		n, err := mh.NormalizeIdentifier(c.IDType, c.IDNumber)
		if err != nil {
			errs = append(errs, domain.NewValidationError("counterparty.id_number", err.Error()))
		} else {
			c.IDNumber = n
		}
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		errs = append(errs, domain.NewValidationError("counterparty.email", "formato inválido"))
	}
	return c, errs.ErrOrNil()
}

func validateCondition(condition int, term *entity.CreditTerm) (*entity.CreditTerm, error) {
	switch condition {
	case mh.ConditionCash, mh.ConditionOther:
		return nil, nil
	case mh.ConditionCredit:
	default:
		return nil, domain.NewValidationError("operation_condition", "debe ser 1 (contado), 2 (crédito) o 3 (otro)")
	}
	if term == nil {
		return nil, domain.NewValidationError("credit_term", "requerido para operaciones a crédito")
	}
	var errs domain.ValidationErrors
	if !mh.ValidTermUnits[term.UnitCode] {
		errs = append(errs, domain.NewValidationError("credit_term.unit_code", "debe ser 01 (días), 02 (semanas) o 03 (meses)"))
	}
	if term.Count <= 0 {
		errs = append(errs, domain.NewValidationError("credit_term.count", "debe ser mayor que cero"))
	}
	if len(errs) > 0 {
		return nil, errs
	}
	t := *term
	return &t, nil
}
