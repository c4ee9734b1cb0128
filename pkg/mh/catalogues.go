// Package mh contiene catálogos y formatos de la normativa de Documentos Tributarios
// Electrónicos (DTE) del Ministerio de Hacienda de El Salvador.
package mh

// =============================================================================
// CAT-002 - Tipo de Documento
// =============================================================================

const (
	DocTypeFactura              = "01" // Factura (consumidor final)
	DocTypeCreditoFiscal        = "03" // Comprobante de Crédito Fiscal
	DocTypeNotaRemision         = "04" // Nota de Remisión (no soportada)
	DocTypeNotaCredito          = "05" // Nota de Crédito
	DocTypeNotaDebito           = "06" // Nota de Débito
	DocTypeComprobanteRetencion = "07" // Comprobante de Retención
	DocTypeImportacion          = "12" // Declaración de mercancías / importación (solo compras)
	DocTypeSujetoExcluido       = "14" // Factura de Sujeto Excluido
)

// PurchaseVATBearingTypes tipos de compra que generan crédito fiscal deducible.
var PurchaseVATBearingTypes = map[string]bool{
	DocTypeCreditoFiscal: true,
	DocTypeNotaCredito:   true,
	DocTypeNotaDebito:    true,
	DocTypeImportacion:   true,
}

// ReconcilableSaleTypes tipos de venta que pueden recibir retención de IVA 1%.
var ReconcilableSaleTypes = []string{DocTypeFactura, DocTypeCreditoFiscal}

// =============================================================================
// CAT-022 - Tipo de documento de identificación
// =============================================================================

const (
	IDTypeNIT       = "36"
	IDTypeDUI       = "13"
	IDTypeOther     = "37"
	IDTypePassport  = "03"
	IDTypeResidence = "02"
)

// ValidIDTypes tipos de identificación aceptados para receptor, responsable y solicitante.
var ValidIDTypes = map[string]bool{
	IDTypeNIT: true, IDTypeDUI: true, IDTypeOther: true, IDTypePassport: true, IDTypeResidence: true,
}

// =============================================================================
// CAT-016 - Condición de la operación
// =============================================================================

const (
	ConditionCash   = 1 // Contado
	ConditionCredit = 2 // A crédito
	ConditionOther  = 3 // Otro
)

// =============================================================================
// CAT-018 - Plazo
// =============================================================================

const (
	TermUnitDays   = "01"
	TermUnitWeeks  = "02"
	TermUnitMonths = "03"
)

// ValidTermUnits unidades de plazo para operaciones a crédito.
var ValidTermUnits = map[string]bool{TermUnitDays: true, TermUnitWeeks: true, TermUnitMonths: true}

// =============================================================================
// CAT-007 - Tipo de generación del documento relacionado
// =============================================================================

const (
	GenerationPhysical   = 1 // Documento físico: se referencia por número de control / correlativo
	GenerationElectronic = 2 // DTE: se referencia por código de generación (UUID)
)

// =============================================================================
// CAT-024 - Tipo de invalidación
// =============================================================================

const (
	InvalidationRescission = 2 // Rescindir de la operación realizada
	InvalidationNullity    = 3 // Anulación con documento de reemplazo
)

// =============================================================================
// Ambiente de destino
// =============================================================================

const (
	EnvironmentProduction = "00"
	EnvironmentTest       = "01"
)

// Estado devuelto por el servicio de recepción cuando el documento fue procesado.
const ReceptionProcessed = "PROCESADO"
