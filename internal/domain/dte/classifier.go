package dte

import (
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

// CounterpartyRole papel de la contraparte según el tipo de documento.
type CounterpartyRole string

const (
	RoleReceptor        CounterpartyRole = "RECEPTOR"         // cliente que recibe el documento
	RoleSupplier        CounterpartyRole = "SUPPLIER"         // proveedor sujeto excluido
	RoleRetainedSubject CounterpartyRole = "RETAINED_SUBJECT" // sujeto al que se le retiene
)

// Classification reglas estructurales de un tipo de documento.
type Classification struct {
	Code                    string
	Name                    string
	VATApplicable           bool
	Mode                    Mode
	RequiresRelatedDocument bool
	ReceptorFieldsRequired  []string
	CounterpartyRole        CounterpartyRole
}

var taxpayerFields = []string{"name", "id_type", "id_number", "nrc", "activity_code", "address"}

var classifications = map[string]Classification{
	mh.DocTypeFactura: {
		Code: mh.DocTypeFactura, Name: "Factura",
		VATApplicable: true, Mode: ModeInclusive,
		ReceptorFieldsRequired: []string{"name"},
		CounterpartyRole:       RoleReceptor,
	},
	mh.DocTypeCreditoFiscal: {
		Code: mh.DocTypeCreditoFiscal, Name: "Comprobante de Crédito Fiscal",
		VATApplicable: true, Mode: ModeExclusive,
		ReceptorFieldsRequired: taxpayerFields,
		CounterpartyRole:       RoleReceptor,
	},
	mh.DocTypeNotaCredito: {
		Code: mh.DocTypeNotaCredito, Name: "Nota de Crédito",
		VATApplicable: true, Mode: ModeExclusive, RequiresRelatedDocument: true,
		ReceptorFieldsRequired: taxpayerFields,
		CounterpartyRole:       RoleReceptor,
	},
	mh.DocTypeNotaDebito: {
		Code: mh.DocTypeNotaDebito, Name: "Nota de Débito",
		VATApplicable: true, Mode: ModeExclusive, RequiresRelatedDocument: true,
		ReceptorFieldsRequired: taxpayerFields,
		CounterpartyRole:       RoleReceptor,
	},
	mh.DocTypeSujetoExcluido: {
		Code: mh.DocTypeSujetoExcluido, Name: "Factura de Sujeto Excluido",
		VATApplicable: false, Mode: ModeExclusive,
		ReceptorFieldsRequired: []string{"name", "id_type", "id_number", "address"},
		CounterpartyRole:       RoleSupplier,
	},
	mh.DocTypeComprobanteRetencion: {
		Code: mh.DocTypeComprobanteRetencion, Name: "Comprobante de Retención",
		VATApplicable: false, Mode: ModeExclusive,
		ReceptorFieldsRequired: []string{"name", "id_type", "id_number", "nrc"},
		CounterpartyRole:       RoleRetainedSubject,
	},
}

// Classify devuelve las reglas del tipo de documento o ClassificationError si no está soportado.
func Classify(code string) (Classification, error) {
	c, ok := classifications[code]
	if !ok {
		return Classification{}, &domain.ClassificationError{Code: code}
	}
	out := c
	out.ReceptorFieldsRequired = append([]string(nil), c.ReceptorFieldsRequired...)
	return out, nil
}

// SupportedTypes códigos de documento emitibles.
func SupportedTypes() []string {
	return []string{
		mh.DocTypeFactura, mh.DocTypeCreditoFiscal, mh.DocTypeComprobanteRetencion,
		mh.DocTypeNotaCredito, mh.DocTypeNotaDebito, mh.DocTypeSujetoExcluido,
	}
}
