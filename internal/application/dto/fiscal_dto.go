package dto

import "github.com/shopspring/decimal"

// RegisterPurchaseRequest body para POST /api/purchases.
// Reclassified indica que una vista previa de la misma captura ya reclasificó la compra.
type RegisterPurchaseRequest struct {
	SupplierName     string          `json:"supplier_name"`
	SupplierNRC      string          `json:"supplier_nrc,omitempty"`
	SupplierNIT      string          `json:"supplier_nit,omitempty"`
	DocumentNumber   string          `json:"document_number"`
	DocumentType     string          `json:"document_type"`
	EmissionDate     string          `json:"emission_date"`
	AppliedPeriod    string          `json:"applied_period"`
	Classification   string          `json:"classification,omitempty"`
	CostType         string          `json:"cost_type,omitempty"`
	TaxableAmount    decimal.Decimal `json:"taxable_amount"`
	VATAmount        decimal.Decimal `json:"vat_amount"`
	PerceptionAmount decimal.Decimal `json:"perception_amount"`
	Reclassified     bool            `json:"reclassified,omitempty"`
	DryRun           bool            `json:"dry_run,omitempty"`
}

// WarningDTO advertencia no bloqueante.
type WarningDTO struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Days    int    `json:"days,omitempty"`
}

// PurchaseResponse compra registrada (o evaluada si dry_run).
type PurchaseResponse struct {
	ID                   string          `json:"id,omitempty"`
	OriginalDocumentType string          `json:"original_document_type"`
	DocumentType         string          `json:"document_type"`
	Deductibility        string          `json:"deductibility"`
	DaysElapsed          int             `json:"days_elapsed"`
	Reclassified         bool            `json:"reclassified"`
	Total                decimal.Decimal `json:"total"`
	Warnings             []WarningDTO    `json:"warnings"`
	Saved                bool            `json:"saved"`
}

// PurchaseBookEntryDTO fila del libro de compras (GET /api/purchases?period=YYYY-MM).
type PurchaseBookEntryDTO struct {
	ID                   string          `json:"id"`
	SupplierName         string          `json:"supplier_name"`
	SupplierNRC          string          `json:"supplier_nrc,omitempty"`
	DocumentNumber       string          `json:"document_number"`
	OriginalDocumentType string          `json:"original_document_type"`
	DocumentType         string          `json:"document_type"`
	EmissionDate         string          `json:"emission_date"`
	AppliedPeriod        string          `json:"applied_period"`
	Classification       string          `json:"classification"`
	CostType             string          `json:"cost_type"`
	TaxableAmount        decimal.Decimal `json:"taxable_amount"`
	VATAmount            decimal.Decimal `json:"vat_amount"`
	PerceptionAmount     decimal.Decimal `json:"perception_amount"`
	Total                decimal.Decimal `json:"total"`
	Deductibility        string          `json:"deductibility"`
}

// SaleCandidateDTO venta candidata para conciliar.
type SaleCandidateDTO struct {
	ID                string          `json:"id"`
	EmissionDate      string          `json:"emission_date"`
	DocumentType      string          `json:"document_type"`
	ControlNumber     string          `json:"control_number,omitempty"`
	CounterpartyName  string          `json:"counterparty_name,omitempty"`
	TaxableBase       decimal.Decimal `json:"taxable_base"`
	ExpectedRetention decimal.Decimal `json:"expected_retention"`
}

// RetentionCandidatesResponse respuesta de GET /api/retentions/:id/candidates.
type RetentionCandidatesResponse struct {
	CertificateID  string             `json:"certificate_id"`
	RetainedAmount decimal.Decimal    `json:"retained_amount"`
	From           string             `json:"from"`
	To             string             `json:"to"`
	Candidates     []SaleCandidateDTO `json:"candidates"`
}

// ReconcileRequest body para POST /api/retentions/:id/reconcile.
// From/To (YYYY-MM-DD, opcionales) deben ser los mismos usados al listar candidatas.
type ReconcileRequest struct {
	SelectedSaleIDs []string `json:"selected_sale_ids"`
	Justification   string   `json:"justification,omitempty"`
	From            string   `json:"from,omitempty"`
	To              string   `json:"to,omitempty"`
}

// ReconcileResponse resultado de la conciliación.
type ReconcileResponse struct {
	CertificateID         string          `json:"certificate_id"`
	State                 string          `json:"state"`
	MatchedSaleIDs        []string        `json:"matched_sale_ids"`
	Sum                   decimal.Decimal `json:"sum"`
	RetainedAmount        decimal.Decimal `json:"retained_amount"`
	Diff                  decimal.Decimal `json:"diff"`
	JustificationRequired bool            `json:"justification_required"`
	Justification         string          `json:"justification,omitempty"`
}

// CounterpartyLookupDTO resultado de búsqueda de contrapartes.
type CounterpartyLookupDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IDType   string `json:"id_type"`
	IDNumber string `json:"id_number"`
	NRC      string `json:"nrc,omitempty"`
}

// ItemLookupDTO resultado de búsqueda en el catálogo.
type ItemLookupDTO struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Kind        string          `json:"kind"`
}
