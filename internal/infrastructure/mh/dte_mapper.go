package mh

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/facturacion-sv/internal/application/billing"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	pkgmh "github.com/jhoicas/facturacion-sv/pkg/mh"
)

const (
	unitOfMeasure   = 59   // CAT-014: unidad
	itemGoods       = 1    // CAT-011: bienes
	taxCodeVAT      = "20" // CAT-015: IVA 13%
	taxDescVAT      = "Impuesto al Valor Agregado 13%"
	paymentCash     = "01" // CAT-017: billetes y monedas
	paymentCredit   = "99" // CAT-017: otros (crédito)
	establishmentHQ = "01" // CAT-009: sucursal / casa matriz
	timeLayout      = "15:04:05"
)

// El Salvador no aplica horario de verano.
var svZone = time.FixedZone("CST", -6*60*60)

// schemaVersion versión del esquema JSON por tipo de documento; la misma viaja en el sobre.
func schemaVersion(docType string) int {
	switch docType {
	case pkgmh.DocTypeCreditoFiscal, pkgmh.DocTypeNotaCredito, pkgmh.DocTypeNotaDebito:
		return 3
	default:
		return 1
	}
}

func strPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func companyAddress(c *entity.CompanyProfile) *address {
	if strings.TrimSpace(c.Address) == "" {
		return nil
	}
	return &address{Complemento: c.Address}
}

// buildDTE traduce el documento al esquema JSON del tipo correspondiente.
func buildDTE(company *entity.CompanyProfile, doc *entity.FiscalDocument, environment string, issuedAt time.Time) dteDocument {
	issuedAt = issuedAt.In(svZone)
	out := dteDocument{
		Identificacion: identificacion{
			Version:          schemaVersion(doc.DocumentType),
			Ambiente:         environment,
			TipoDte:          doc.DocumentType,
			NumeroControl:    doc.ControlNumber,
			CodigoGeneracion: strings.ToUpper(doc.GenerationCode),
			TipoModelo:       1,
			TipoOperacion:    1,
			FecEmi:           doc.EmissionDate.Format("2006-01-02"),
			HorEmi:           issuedAt.Format(timeLayout),
			TipoMoneda:       "USD",
		},
		Emisor: issuer{
			NIT:                 pkgmh.DigitsOnly(company.NIT),
			NRC:                 pkgmh.DigitsOnly(company.NRC),
			Nombre:              company.Name,
			CodActividad:        company.ActivityCode,
			TipoEstablecimiento: establishmentHQ,
			Direccion:           companyAddress(company),
			Telefono:            strPtr(company.Phone),
			Correo:              strPtr(company.Email),
			CodEstableMH:        company.EstablishmentCode,
			CodEstable:          company.EstablishmentCode,
			CodPuntoVentaMH:     company.PointOfSaleCode,
			CodPuntoVenta:       company.PointOfSaleCode,
		},
	}

	if r := doc.Related; r != nil {
		out.DocumentoRelacionado = []relatedDocument{{
			TipoDocumento:   r.DocumentType,
			TipoGeneracion:  r.GenerationType,
			NumeroDocumento: relatedNumber(r),
			FechaEmision:    r.EmissionDate.Format("2006-01-02"),
		}}
	}

	party := buildReceiver(doc)
	if doc.DocumentType == pkgmh.DocTypeSujetoExcluido {
		out.SujetoExcluido = party
	} else {
		out.Receptor = party
	}

	var discount decimal.Decimal
	out.CuerpoDocumento = make([]bodyItem, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		discount = discount.Add(l.Discount)
		out.CuerpoDocumento = append(out.CuerpoDocumento, buildItem(doc, l))
	}
	out.Resumen = buildSummary(doc, discount)
	return out
}

func relatedNumber(r *entity.RelatedDocumentRef) string {
	if r.GenerationType == pkgmh.GenerationElectronic {
		return strings.ToUpper(r.GenerationCode)
	}
	if r.ControlNumber != "" {
		return r.ControlNumber
	}
	return r.GenerationCode
}

func buildReceiver(doc *entity.FiscalDocument) *receiver {
	c := doc.Counterparty
	r := &receiver{
		Nombre:    c.Name,
		Telefono:  strPtr(c.Phone),
		Correo:    strPtr(c.Email),
		Direccion: nil,
	}
	if strings.TrimSpace(c.Address) != "" {
		r.Direccion = &address{Complemento: c.Address}
	}
	switch doc.DocumentType {
	case pkgmh.DocTypeCreditoFiscal, pkgmh.DocTypeNotaCredito, pkgmh.DocTypeNotaDebito:
		// CCF y notas identifican al receptor por NIT + NRC.
		r.NIT = strPtr(pkgmh.DigitsOnly(c.IDNumber))
		r.NRC = strPtr(pkgmh.DigitsOnly(c.NRC))
		r.CodActividad = strPtr(c.ActivityCode)
	default:
		r.TipoDocumento = strPtr(c.IDType)
		r.NumDocumento = strPtr(pkgmh.DigitsOnly(c.IDNumber))
		if doc.DocumentType == pkgmh.DocTypeComprobanteRetencion {
			r.NRC = strPtr(pkgmh.DigitsOnly(c.NRC))
			r.CodActividad = strPtr(c.ActivityCode)
		}
	}
	return r
}

func buildItem(doc *entity.FiscalDocument, l entity.LineItem) bodyItem {
	item := bodyItem{
		NumItem:     l.LineNumber,
		TipoItem:    itemGoods,
		Cantidad:    number(l.Quantity),
		Codigo:      strPtr(l.ItemCode),
		UniMedida:   unitOfMeasure,
		Descripcion: l.Description,
		PrecioUni:   number(l.UnitPrice),
		MontoDescu:  money(l.Discount),
	}
	if doc.Related != nil {
		item.NumeroDocumento = strPtr(relatedNumber(doc.Related))
	}

	if doc.DocumentType == pkgmh.DocTypeSujetoExcluido {
		item.Compra = moneyPtr(l.LineTotal)
		return item
	}

	noSuj, exenta, gravada := zero, zero, zero
	switch l.Kind {
	case entity.LineNonSubject:
		noSuj = money(l.TaxableBase)
	case entity.LineExempt:
		exenta = money(l.TaxableBase)
	default:
		gravada = money(l.TaxableBase)
	}
	item.VentaNoSuj, item.VentaExenta, item.VentaGravada = &noSuj, &exenta, &gravada

	switch doc.DocumentType {
	case pkgmh.DocTypeFactura:
		// Factura: la venta gravada se informa con IVA incluido y el IVA por ítem aparte.
		if l.Kind == entity.LineTaxable {
			*item.VentaGravada = money(l.LineTotal)
		}
		item.IvaItem = moneyPtr(l.VATAmount)
	case pkgmh.DocTypeCreditoFiscal, pkgmh.DocTypeNotaCredito, pkgmh.DocTypeNotaDebito:
		if l.Kind == entity.LineTaxable {
			item.Tributos = []string{taxCodeVAT}
		}
	}
	return item
}

func buildSummary(doc *entity.FiscalDocument, discount decimal.Decimal) summary {
	t := doc.Totals
	s := summary{
		TotalDescu:         money(discount),
		IvaRete1:           zero,
		ReteRenta:          zero,
		TotalPagar:         money(t.Total),
		TotalLetras:        pkgmh.AmountInWords(t.Total),
		CondicionOperacion: doc.OperationCondition,
		Pagos:              buildPayments(doc),
	}

	if doc.DocumentType == pkgmh.DocTypeSujetoExcluido {
		s.TotalCompra = moneyPtr(t.Total)
		s.SubTotal = money(t.Total)
		return s
	}

	sales := t.Taxable.Add(t.Exempt).Add(t.NonSubject)
	s.TotalNoSuj = moneyPtr(t.NonSubject)
	s.TotalExenta = moneyPtr(t.Exempt)
	s.TotalGravada = moneyPtr(t.Taxable)
	s.SubTotalVentas = moneyPtr(sales)
	s.SubTotal = money(sales)
	s.MontoTotalOperacion = moneyPtr(t.Total)

	switch doc.DocumentType {
	case pkgmh.DocTypeFactura:
		// En factura los montos gravados ya incluyen IVA.
		gross := t.Taxable.Add(t.VAT)
		s.TotalGravada = moneyPtr(gross)
		s.SubTotalVentas = moneyPtr(gross.Add(t.Exempt).Add(t.NonSubject))
		s.SubTotal = money(gross.Add(t.Exempt).Add(t.NonSubject))
		s.TotalIva = moneyPtr(t.VAT)
	case pkgmh.DocTypeCreditoFiscal, pkgmh.DocTypeNotaCredito, pkgmh.DocTypeNotaDebito:
		if t.VAT.IsPositive() {
			s.Tributos = []tax{{Codigo: taxCodeVAT, Descripcion: taxDescVAT, Valor: money(t.VAT)}}
		}
	}
	return s
}

func buildPayments(doc *entity.FiscalDocument) []payment {
	if doc.DocumentType == pkgmh.DocTypeNotaCredito || doc.DocumentType == pkgmh.DocTypeComprobanteRetencion {
		return nil
	}
	p := payment{Codigo: paymentCash, MontoPago: money(doc.Totals.Total)}
	if t := doc.CreditTerm; t != nil && doc.OperationCondition == pkgmh.ConditionCredit {
		p.Codigo = paymentCredit
		p.Plazo = strPtr(t.UnitCode)
		count := t.Count
		p.Periodo = &count
	}
	return []payment{p}
}

// buildInvalidation arma el evento de invalidación (esquema versión 2).
func buildInvalidation(company *entity.CompanyProfile, doc *entity.FiscalDocument, ev billing.InvalidationEvent, environment string) invalidationEvent {
	at := ev.IssuedAt.In(svZone)
	req := ev.Request

	kind := pkgmh.InvalidationRescission
	var replacement *string
	if req.Reason == entity.ReasonNullity {
		kind = pkgmh.InvalidationNullity
		replacement = strPtr(strings.ToUpper(req.ReplacementCode))
	}

	return invalidationEvent{
		Identificacion: invalidationID{
			Version:          2,
			Ambiente:         environment,
			CodigoGeneracion: strings.ToUpper(ev.Code),
			FecAnula:         at.Format("2006-01-02"),
			HorAnula:         at.Format(timeLayout),
		},
		Emisor: invalidationIssuer{
			NIT:                 pkgmh.DigitsOnly(company.NIT),
			Nombre:              company.Name,
			TipoEstablecimiento: establishmentHQ,
			NomEstablecimiento:  company.Name,
			CodEstableMH:        company.EstablishmentCode,
			CodEstable:          company.EstablishmentCode,
			CodPuntoVentaMH:     company.PointOfSaleCode,
			CodPuntoVenta:       company.PointOfSaleCode,
			Telefono:            strPtr(company.Phone),
			Correo:              strPtr(company.Email),
		},
		Documento: invalidatedDocument{
			TipoDte:           doc.DocumentType,
			CodigoGeneracion:  strings.ToUpper(doc.GenerationCode),
			SelloRecibido:     doc.ReceptionSeal,
			NumeroControl:     doc.ControlNumber,
			FecEmi:            doc.EmissionDate.Format("2006-01-02"),
			MontoIva:          money(doc.Totals.VAT),
			CodigoGeneracionR: replacement,
			TipoDocumento:     strPtr(doc.Counterparty.IDType),
			NumDocumento:      strPtr(pkgmh.DigitsOnly(doc.Counterparty.IDNumber)),
			Nombre:            doc.Counterparty.Name,
		},
		Motivo: invalidationMotive{
			TipoAnulacion:     kind,
			MotivoAnulacion:   req.Motive,
			NombreResponsable: req.Responsible.Name,
			TipDocResponsable: req.Responsible.IDType,
			NumDocResponsable: pkgmh.DigitsOnly(req.Responsible.IDNumber),
			NombreSolicita:    req.Requester.Name,
			TipDocSolicita:    req.Requester.IDType,
			NumDocSolicita:    pkgmh.DigitsOnly(req.Requester.IDNumber),
		},
	}
}
