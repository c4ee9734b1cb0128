package mh

import (
	"github.com/shopspring/decimal"
)

// number serializa montos como número JSON (el servicio rechaza montos entre comillas).
type number decimal.Decimal

func (n number) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(n).String()), nil
}

func money(d decimal.Decimal) number { return number(d.Round(2)) }

func moneyPtr(d decimal.Decimal) *number {
	n := money(d)
	return &n
}

var zero = money(decimal.Zero)

// ── Documento DTE ─────────────────────────────────────────────────────────────

type dteDocument struct {
	Identificacion       identificacion    `json:"identificacion"`
	DocumentoRelacionado []relatedDocument `json:"documentoRelacionado"`
	Emisor               issuer            `json:"emisor"`
	Receptor             *receiver         `json:"receptor,omitempty"`
	SujetoExcluido       *receiver         `json:"sujetoExcluido,omitempty"`
	OtrosDocumentos      any               `json:"otrosDocumentos"`
	VentaTercero         any               `json:"ventaTercero"`
	CuerpoDocumento      []bodyItem        `json:"cuerpoDocumento"`
	Resumen              summary           `json:"resumen"`
	Extension            any               `json:"extension"`
	Apendice             any               `json:"apendice"`
}

type identificacion struct {
	Version          int     `json:"version"`
	Ambiente         string  `json:"ambiente"`
	TipoDte          string  `json:"tipoDte"`
	NumeroControl    string  `json:"numeroControl"`
	CodigoGeneracion string  `json:"codigoGeneracion"`
	TipoModelo       int     `json:"tipoModelo"`
	TipoOperacion    int     `json:"tipoOperacion"`
	TipoContingencia *int    `json:"tipoContingencia"`
	MotivoContin     *string `json:"motivoContin"`
	FecEmi           string  `json:"fecEmi"`
	HorEmi           string  `json:"horEmi"`
	TipoMoneda       string  `json:"tipoMoneda"`
}

type relatedDocument struct {
	TipoDocumento   string `json:"tipoDocumento"`
	TipoGeneracion  int    `json:"tipoGeneracion"`
	NumeroDocumento string `json:"numeroDocumento"`
	FechaEmision    string `json:"fechaEmision"`
}

type address struct {
	Departamento string `json:"departamento,omitempty"`
	Municipio    string `json:"municipio,omitempty"`
	Complemento  string `json:"complemento"`
}

type issuer struct {
	NIT                 string   `json:"nit"`
	NRC                 string   `json:"nrc"`
	Nombre              string   `json:"nombre"`
	CodActividad        string   `json:"codActividad"`
	TipoEstablecimiento string   `json:"tipoEstablecimiento"`
	Direccion           *address `json:"direccion"`
	Telefono            *string  `json:"telefono"`
	Correo              *string  `json:"correo"`
	CodEstableMH        string   `json:"codEstableMH"`
	CodEstable          string   `json:"codEstable"`
	CodPuntoVentaMH     string   `json:"codPuntoVentaMH"`
	CodPuntoVenta       string   `json:"codPuntoVenta"`
}

// receiver cubre receptor (01, 03, 05, 06, 07) y sujetoExcluido (14). Cada esquema usa un
// subconjunto; los campos de identificación se llenan según el tipo.
type receiver struct {
	NIT           *string  `json:"nit,omitempty"`
	TipoDocumento *string  `json:"tipoDocumento,omitempty"`
	NumDocumento  *string  `json:"numDocumento,omitempty"`
	NRC           *string  `json:"nrc"`
	Nombre        string   `json:"nombre"`
	CodActividad  *string  `json:"codActividad"`
	Direccion     *address `json:"direccion"`
	Telefono      *string  `json:"telefono"`
	Correo        *string  `json:"correo"`
}

type bodyItem struct {
	NumItem         int      `json:"numItem"`
	TipoItem        int      `json:"tipoItem"`
	NumeroDocumento *string  `json:"numeroDocumento"`
	Cantidad        number   `json:"cantidad"`
	Codigo          *string  `json:"codigo"`
	UniMedida       int      `json:"uniMedida"`
	Descripcion     string   `json:"descripcion"`
	PrecioUni       number   `json:"precioUni"`
	MontoDescu      number   `json:"montoDescu"`
	VentaNoSuj      *number  `json:"ventaNoSuj,omitempty"`
	VentaExenta     *number  `json:"ventaExenta,omitempty"`
	VentaGravada    *number  `json:"ventaGravada,omitempty"`
	Compra          *number  `json:"compra,omitempty"`
	Tributos        []string `json:"tributos"`
	IvaItem         *number  `json:"ivaItem,omitempty"`
}

type tax struct {
	Codigo      string `json:"codigo"`
	Descripcion string `json:"descripcion"`
	Valor       number `json:"valor"`
}

type payment struct {
	Codigo     string  `json:"codigo"`
	MontoPago  number  `json:"montoPago"`
	Referencia *string `json:"referencia"`
	Plazo      *string `json:"plazo"`
	Periodo    *int    `json:"periodo"`
}

// summary resumen; los campos con puntero solo existen en algunos esquemas.
type summary struct {
	TotalNoSuj          *number   `json:"totalNoSuj,omitempty"`
	TotalExenta         *number   `json:"totalExenta,omitempty"`
	TotalGravada        *number   `json:"totalGravada,omitempty"`
	SubTotalVentas      *number   `json:"subTotalVentas,omitempty"`
	TotalCompra         *number   `json:"totalCompra,omitempty"`
	TotalDescu          number    `json:"totalDescu"`
	Tributos            []tax     `json:"tributos"`
	SubTotal            number    `json:"subTotal"`
	IvaRete1            number    `json:"ivaRete1"`
	ReteRenta           number    `json:"reteRenta"`
	MontoTotalOperacion *number   `json:"montoTotalOperacion,omitempty"`
	TotalIva            *number   `json:"totalIva,omitempty"`
	TotalPagar          number    `json:"totalPagar"`
	TotalLetras         string    `json:"totalLetras"`
	CondicionOperacion  int       `json:"condicionOperacion"`
	Pagos               []payment `json:"pagos"`
}

// ── Evento de invalidación ────────────────────────────────────────────────────

type invalidationEvent struct {
	Identificacion invalidationID      `json:"identificacion"`
	Emisor         invalidationIssuer  `json:"emisor"`
	Documento      invalidatedDocument `json:"documento"`
	Motivo         invalidationMotive  `json:"motivo"`
}

type invalidationID struct {
	Version          int    `json:"version"`
	Ambiente         string `json:"ambiente"`
	CodigoGeneracion string `json:"codigoGeneracion"`
	FecAnula         string `json:"fecAnula"`
	HorAnula         string `json:"horAnula"`
}

type invalidationIssuer struct {
	NIT                 string  `json:"nit"`
	Nombre              string  `json:"nombre"`
	TipoEstablecimiento string  `json:"tipoEstablecimiento"`
	NomEstablecimiento  string  `json:"nomEstablecimiento"`
	CodEstableMH        string  `json:"codEstableMH"`
	CodEstable          string  `json:"codEstable"`
	CodPuntoVentaMH     string  `json:"codPuntoVentaMH"`
	CodPuntoVenta       string  `json:"codPuntoVenta"`
	Telefono            *string `json:"telefono"`
	Correo              *string `json:"correo"`
}

type invalidatedDocument struct {
	TipoDte           string  `json:"tipoDte"`
	CodigoGeneracion  string  `json:"codigoGeneracion"`
	SelloRecibido     string  `json:"selloRecibido"`
	NumeroControl     string  `json:"numeroControl"`
	FecEmi            string  `json:"fecEmi"`
	MontoIva          number  `json:"montoIva"`
	CodigoGeneracionR *string `json:"codigoGeneracionR"`
	TipoDocumento     *string `json:"tipoDocumento"`
	NumDocumento      *string `json:"numDocumento"`
	Nombre            string  `json:"nombre"`
}

type invalidationMotive struct {
	TipoAnulacion     int    `json:"tipoAnulacion"`
	MotivoAnulacion   string `json:"motivoAnulacion"`
	NombreResponsable string `json:"nombreResponsable"`
	TipDocResponsable string `json:"tipDocResponsable"`
	NumDocResponsable string `json:"numDocResponsable"`
	NombreSolicita    string `json:"nombreSolicita"`
	TipDocSolicita    string `json:"tipDocSolicita"`
	NumDocSolicita    string `json:"numDocSolicita"`
}

// ── Sobres y respuestas ───────────────────────────────────────────────────────

type receptionEnvelope struct {
	Ambiente         string `json:"ambiente"`
	IDEnvio          int    `json:"idEnvio"`
	Version          int    `json:"version"`
	TipoDte          string `json:"tipoDte"`
	TipoEvento       string `json:"tipoEvento,omitempty"`
	Documento        string `json:"documento"`
	CodigoGeneracion string `json:"codigoGeneracion"`
}

type receptionResponse struct {
	Estado           string   `json:"estado"`
	CodigoGeneracion string   `json:"codigoGeneracion"`
	SelloRecibido    string   `json:"selloRecibido"`
	FhProcesamiento  string   `json:"fhProcesamiento"`
	CodigoMsg        string   `json:"codigoMsg"`
	DescripcionMsg   string   `json:"descripcionMsg"`
	Observaciones    []string `json:"observaciones"`
}

type authResponse struct {
	Status string `json:"status"`
	Body   struct {
		Token string `json:"token"`
	} `json:"body"`
}
