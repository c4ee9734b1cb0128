package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
	ErrSubmissionInFlight = errors.New("el documento ya tiene un envío en curso")
	ErrAlreadyApplied     = errors.New("la retención ya fue aplicada")
	ErrStaleLookup        = errors.New("consulta reemplazada por una más reciente")
	ErrSubmissionFailed   = errors.New("el servicio de recepción no procesó el envío")
)

// ValidationError error a nivel de campo; el llamador puede corregir y reintentar.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Is permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError atajo para construir un ValidationError.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidationErrors agrupa todos los errores encontrados en una sola pasada.
// Unwrap expone cada entrada para errors.As / errors.Is.
type ValidationErrors []error

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return "validación fallida: " + strings.Join(msgs, "; ")
}

func (v ValidationErrors) Unwrap() []error { return v }

// Fields devuelve solo los errores de campo.
func (v ValidationErrors) Fields() []*ValidationError {
	var out []*ValidationError
	for _, e := range v {
		var fe *ValidationError
		if errors.As(e, &fe) {
			out = append(out, fe)
		}
	}
	return out
}

// ErrOrNil devuelve nil cuando no hay errores acumulados.
func (v ValidationErrors) ErrOrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// ClassificationError tipo de documento desconocido o no soportado. No es reintentable.
type ClassificationError struct {
	Code string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("tipo de documento no soportado: %q", e.Code)
}

// MissingRelatedDocumentError nota de crédito/débito sin documento relacionado.
type MissingRelatedDocumentError struct {
	DocumentType string
}

func (e *MissingRelatedDocumentError) Error() string {
	return fmt.Sprintf("el tipo de documento %s requiere documento relacionado con código de generación", e.DocumentType)
}

// InvalidationError solicitud de invalidación incompleta o no permitida.
type InvalidationError struct {
	Reason string
}

func (e *InvalidationError) Error() string {
	return "invalidación: " + e.Reason
}

// EmptySelectionError conciliación sin ventas seleccionadas.
type EmptySelectionError struct{}

func (e *EmptySelectionError) Error() string {
	return "debe seleccionar al menos una venta para conciliar"
}

// ToleranceExceededError la suma seleccionada supera el monto retenido más la tolerancia
// y no se indicó justificación.
type ToleranceExceededError struct {
	Sum       decimal.Decimal
	Available decimal.Decimal
	Diff      decimal.Decimal
}

func (e *ToleranceExceededError) Error() string {
	return fmt.Sprintf("la suma seleccionada %s excede el monto retenido %s por %s; se requiere justificación",
		e.Sum.StringFixed(2), e.Available.StringFixed(2), e.Diff.StringFixed(2))
}

// NetworkError falla transitoria al hablar con un servicio externo.
// El resultado es desconocido: nunca debe interpretarse como rechazo.
type NetworkError struct {
	Op      string
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s: tiempo de espera agotado: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: error de red: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// Retryable siempre true: el mismo envío puede repetirse.
func (e *NetworkError) Retryable() bool { return true }

// IsRetryable indica si err (o alguno de sus envueltos) es una falla transitoria.
func IsRetryable(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne) && ne.Retryable()
}
