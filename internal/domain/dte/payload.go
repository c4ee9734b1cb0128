package dte

import (
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DateLayout formato de fechas del payload.
const DateLayout = "2006-01-02"

// Payload representación canónica que consume el servicio de recepción.
type Payload struct {
	CompanyID          string          `json:"company_id"`
	DocumentTypeCode   string          `json:"document_type_code"`
	GenerationCode     string          `json:"generation_code,omitempty"`
	ControlNumber      string          `json:"control_number,omitempty"`
	Counterparty       PayloadParty    `json:"counterparty"`
	EmissionDate       string          `json:"emission_date"`
	AppliedPeriod      string          `json:"applied_period"`
	OperationCondition int             `json:"operation_condition"`
	CreditTerm         *PayloadTerm    `json:"credit_term,omitempty"`
	RelatedDocument    *PayloadRelated `json:"related_document,omitempty"`
	Lines              []PayloadLine   `json:"lines"`
	Totals             PayloadTotals   `json:"totals"`
}

// PayloadParty identidad de la contraparte.
type PayloadParty struct {
	Name         string `json:"name"`
	IDType       string `json:"id_type,omitempty"`
	IDNumber     string `json:"id_number,omitempty"`
	NRC          string `json:"nrc,omitempty"`
	Address      string `json:"address,omitempty"`
	Email        string `json:"email,omitempty"`
	ActivityCode string `json:"activity_code,omitempty"`
}

// PayloadTerm plazo de crédito.
type PayloadTerm struct {
	UnitCode string `json:"unit_code"`
	Count    int    `json:"count"`
}

// PayloadRelated documento relacionado.
type PayloadRelated struct {
	DocumentType   string `json:"document_type"`
	GenerationType int    `json:"generation_type"`
	GenerationCode string `json:"generation_code"`
	EmissionDate   string `json:"emission_date"`
	ControlNumber  string `json:"control_number,omitempty"`
}

// PayloadLine línea del documento.
type PayloadLine struct {
	LineNumber  int             `json:"line_number"`
	Description string          `json:"description"`
	Kind        entity.LineKind `json:"kind"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TaxableBase decimal.Decimal `json:"taxable_base"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
}

// PayloadTotals resumen.
type PayloadTotals struct {
	Taxable    decimal.Decimal `json:"taxable"`
	Exempt     decimal.Decimal `json:"exempt"`
	NonSubject decimal.Decimal `json:"non_subject"`
	VAT        decimal.Decimal `json:"vat"`
	Total      decimal.Decimal `json:"total"`
}

// NewPayload proyecta el documento a su forma canónica.
func NewPayload(doc *entity.FiscalDocument) Payload {
	p := Payload{
		CompanyID:        doc.CompanyID,
		DocumentTypeCode: doc.DocumentType,
		GenerationCode:   doc.GenerationCode,
		ControlNumber:    doc.ControlNumber,
		Counterparty: PayloadParty{
			Name:         doc.Counterparty.Name,
			IDType:       doc.Counterparty.IDType,
			IDNumber:     doc.Counterparty.IDNumber,
			NRC:          doc.Counterparty.NRC,
			Address:      doc.Counterparty.Address,
			Email:        doc.Counterparty.Email,
			ActivityCode: doc.Counterparty.ActivityCode,
		},
		EmissionDate:       doc.EmissionDate.Format(DateLayout),
		AppliedPeriod:      doc.AppliedPeriod,
		OperationCondition: doc.OperationCondition,
		Lines:              make([]PayloadLine, 0, len(doc.Lines)),
		Totals: PayloadTotals{
			Taxable:    doc.Totals.Taxable,
			Exempt:     doc.Totals.Exempt,
			NonSubject: doc.Totals.NonSubject,
			VAT:        doc.Totals.VAT,
			Total:      doc.Totals.Total,
		},
	}
	if doc.CreditTerm != nil {
		p.CreditTerm = &PayloadTerm{UnitCode: doc.CreditTerm.UnitCode, Count: doc.CreditTerm.Count}
	}
	if r := doc.Related; r != nil {
		p.RelatedDocument = &PayloadRelated{
			DocumentType:   r.DocumentType,
			GenerationType: r.GenerationType,
			GenerationCode: r.GenerationCode,
			EmissionDate:   r.EmissionDate.Format(DateLayout),
			ControlNumber:  r.ControlNumber,
		}
	}
	for _, l := range doc.Lines {
		p.Lines = append(p.Lines, PayloadLine{
			LineNumber:  l.LineNumber,
			Description: l.Description,
			Kind:        l.Kind,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Discount:    l.Discount,
			TaxableBase: l.TaxableBase,
			VATAmount:   l.VATAmount,
		})
	}
	return p
}
