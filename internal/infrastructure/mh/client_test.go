package mh_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sv/internal/application/billing"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	"github.com/jhoicas/facturacion-sv/internal/infrastructure/mh"
)

// fakeSigner deja el payload legible en la segunda parte del JWS.
type fakeSigner struct{}

func (fakeSigner) Sign(payload []byte) (string, error) {
	return "eyJhbGciOiJSUzUxMiJ9." + base64.RawURLEncoding.EncodeToString(payload) + ".c2ln", nil
}

type envelope struct {
	Ambiente         string `json:"ambiente"`
	IDEnvio          int    `json:"idEnvio"`
	Version          int    `json:"version"`
	TipoDte          string `json:"tipoDte"`
	TipoEvento       string `json:"tipoEvento"`
	Documento        string `json:"documento"`
	CodigoGeneracion string `json:"codigoGeneracion"`
}

func (e envelope) payload(t *testing.T) map[string]any {
	t.Helper()
	parts := strings.Split(e.Documento, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

// fakeMH simula auth + recepción; reception decide la respuesta de cada envío.
type fakeMH struct {
	authCalls atomic.Int32
	sent      chan envelope
	reception func(w http.ResponseWriter, r *http.Request, n int32)
	recvCalls atomic.Int32
}

func newFakeMH(t *testing.T, reception func(w http.ResponseWriter, r *http.Request, n int32)) (*fakeMH, *httptest.Server) {
	t.Helper()
	f := &fakeMH{sent: make(chan envelope, 10), reception: reception}
	mux := http.NewServeMux()
	mux.HandleFunc("/seguridad/auth", func(w http.ResponseWriter, r *http.Request) {
		f.authCalls.Add(1)
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("user") != "06142901861013" || r.PostForm.Get("pwd") != "clave-api" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"status":"ERROR","body":{"descripcionMsg":"Usuario no válido"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"OK","body":{"user":"06142901861013","token":"Bearer tok-1","tokenType":"Bearer"}}`))
	})
	handler := func(w http.ResponseWriter, r *http.Request) {
		n := f.recvCalls.Add(1)
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var env envelope
		require.NoError(t, json.NewDecoder(r.Body).Decode(&env))
		f.sent <- env
		f.reception(w, r, n)
	}
	mux.HandleFunc("/fesv/recepciondte", handler)
	mux.HandleFunc("/fesv/anulardte", handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return f, srv
}

func newClient(t *testing.T, baseURL string) *mh.Client {
	t.Helper()
	c, err := mh.NewClient(mh.Config{
		BaseURL:     baseURL,
		Environment: "01",
		User:        "06142901861013",
		Password:    "clave-api",
	}, fakeSigner{}, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func company() *entity.CompanyProfile {
	return &entity.CompanyProfile{
		ID:                "c1",
		Name:              "Distribuidora El Roble, S.A. de C.V.",
		NIT:               "0614-290186-101-3",
		NRC:               "123456-7",
		ActivityCode:      "46900",
		EstablishmentCode: "M001",
		PointOfSaleCode:   "P001",
		Environment:       "01",
		Address:           "Col. Escalón, San Salvador",
		Email:             "facturas@elroble.com.sv",
	}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ccf() *entity.FiscalDocument {
	return &entity.FiscalDocument{
		ID:                 "doc-1",
		CompanyID:          "c1",
		DocumentType:       "03",
		GenerationCode:     "7da1d2b4-3c5e-4f60-9a1b-2c3d4e5f6a7b",
		ControlNumber:      "DTE-03-M001P001-000000000000042",
		Counterparty:       entity.Counterparty{Name: "Ferretería La Tuerca", IDType: "36", IDNumber: "0614-010190-102-5", NRC: "98765-4", ActivityCode: "47521", Address: "Santa Tecla"},
		OperationCondition: 1,
		EmissionDate:       time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC),
		AppliedPeriod:      "2024-05",
		Lines: []entity.LineItem{{
			LineNumber: 1, ItemCode: "TOR-001", Description: "Tornillo", Kind: entity.LineTaxable,
			Quantity: d("2"), UnitPrice: d("50"), Discount: decimal.Zero,
			TaxableBase: d("100"), VATAmount: d("13"), LineTotal: d("113"),
		}},
		Totals: entity.Totals{Taxable: d("100"), Exempt: decimal.Zero, NonSubject: decimal.Zero, VAT: d("13"), Total: d("113")},
		State:  entity.StateSubmitted,
	}
}

func processed(w http.ResponseWriter) {
	_, _ = w.Write([]byte(`{"version":2,"ambiente":"01","estado":"PROCESADO","codigoGeneracion":"7DA1D2B4-3C5E-4F60-9A1B-2C3D4E5F6A7B",
		"selloRecibido":"2024A1B2C3D4E5F6","fhProcesamiento":"20/05/2024 10:15:30","codigoMsg":"001","descripcionMsg":"RECIBIDO","observaciones":[]}`))
}

// ── Recepción ─────────────────────────────────────────────────────────────────

func TestClient_Submit_Processed(t *testing.T) {
	f, srv := newFakeMH(t, func(w http.ResponseWriter, _ *http.Request, _ int32) { processed(w) })
	c := newClient(t, srv.URL)

	out, err := c.Submit(context.Background(), company(), ccf())
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, "2024A1B2C3D4E5F6", out.ReceptionSeal)
	assert.Equal(t, 2024, out.ProcessedAt.Year())

	env := <-f.sent
	assert.Equal(t, "01", env.Ambiente)
	assert.Equal(t, 3, env.Version, "CCF usa esquema versión 3")
	assert.Equal(t, "03", env.TipoDte)
	assert.Equal(t, "7DA1D2B4-3C5E-4F60-9A1B-2C3D4E5F6A7B", env.CodigoGeneracion, "código en mayúsculas")

	p := env.payload(t)
	ident := p["identificacion"].(map[string]any)
	assert.Equal(t, "DTE-03-M001P001-000000000000042", ident["numeroControl"])
	assert.Equal(t, "2024-05-20", ident["fecEmi"])

	emisor := p["emisor"].(map[string]any)
	assert.Equal(t, "06142901861013", emisor["nit"], "NIT sin guiones")

	receptor := p["receptor"].(map[string]any)
	assert.Equal(t, "06140101901025", receptor["nit"])
	assert.Equal(t, "987654", receptor["nrc"])

	items := p["cuerpoDocumento"].([]any)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, 100.0, item["ventaGravada"], "en CCF la venta gravada es neta de IVA")
	assert.Equal(t, []any{"20"}, item["tributos"])

	resumen := p["resumen"].(map[string]any)
	assert.Equal(t, 113.0, resumen["totalPagar"])
	assert.Equal(t, "CIENTO TRECE 00/100 USD", resumen["totalLetras"])
	tributos := resumen["tributos"].([]any)
	require.Len(t, tributos, 1)
	assert.Equal(t, 13.0, tributos[0].(map[string]any)["valor"])
}

func TestClient_Submit_InvoiceReportsGrossAmounts(t *testing.T) {
	f, srv := newFakeMH(t, func(w http.ResponseWriter, _ *http.Request, _ int32) { processed(w) })
	c := newClient(t, srv.URL)

	doc := ccf()
	doc.DocumentType = "01"
	doc.ControlNumber = "DTE-01-M001P001-000000000000007"
	doc.Counterparty = entity.Counterparty{Name: "Consumidor Final"}
	doc.Lines[0].UnitPrice = d("56.50")

	_, err := c.Submit(context.Background(), company(), doc)
	require.NoError(t, err)

	env := <-f.sent
	assert.Equal(t, 1, env.Version, "factura usa esquema versión 1")
	p := env.payload(t)
	item := p["cuerpoDocumento"].([]any)[0].(map[string]any)
	assert.Equal(t, 113.0, item["ventaGravada"], "la factura informa precio con IVA")
	assert.Equal(t, 13.0, item["ivaItem"])
	resumen := p["resumen"].(map[string]any)
	assert.Equal(t, 13.0, resumen["totalIva"])
	assert.Equal(t, 113.0, resumen["totalGravada"])
	assert.Nil(t, p["receptor"].(map[string]any)["nrc"], "nrc nulo en factura")
}

func TestClient_Submit_RejectionKeptVerbatim(t *testing.T) {
	_, srv := newFakeMH(t, func(w http.ResponseWriter, _ *http.Request, _ int32) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"estado":"RECHAZADO","codigoMsg":"004","descripcionMsg":"[identificacion.codigoGeneracion] YA EXISTE UN REGISTRO CON ESE VALOR",
			"observaciones":["Campo resumen.totalLetras no coincide","Receptor sin NRC"]}`))
	})
	c := newClient(t, srv.URL)

	out, err := c.Submit(context.Background(), company(), ccf())
	require.NoError(t, err, "un rechazo es un resultado, no un error")
	assert.False(t, out.Accepted)
	require.NotNil(t, out.Rejection)
	assert.Equal(t, "004", out.Rejection.Code)
	assert.Equal(t, "[identificacion.codigoGeneracion] YA EXISTE UN REGISTRO CON ESE VALOR", out.Rejection.Description)
	assert.Equal(t, []string{"Campo resumen.totalLetras no coincide", "Receptor sin NRC"}, out.Rejection.Observations)
}

func TestClient_Submit_ServerErrorIsRetryable(t *testing.T) {
	_, srv := newFakeMH(t, func(w http.ResponseWriter, _ *http.Request, _ int32) {
		w.WriteHeader(http.StatusBadGateway)
	})
	c := newClient(t, srv.URL)

	_, err := c.Submit(context.Background(), company(), ccf())
	var netErr *domain.NetworkError
	require.True(t, errors.As(err, &netErr), "5xx debe ser NetworkError")
	assert.True(t, domain.IsRetryable(err))
	assert.False(t, netErr.Timeout)
}

func TestClient_Submit_ClientErrorIsNotRetryable(t *testing.T) {
	_, srv := newFakeMH(t, func(w http.ResponseWriter, _ *http.Request, _ int32) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`payload inválido`))
	})
	c := newClient(t, srv.URL)

	_, err := c.Submit(context.Background(), company(), ccf())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSubmissionFailed)
	assert.False(t, domain.IsRetryable(err))
}

func TestClient_Submit_DeadlineIsNetworkTimeout(t *testing.T) {
	_, srv := newFakeMH(t, func(w http.ResponseWriter, r *http.Request, _ int32) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})
	c := newClient(t, srv.URL)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err := c.Submit(ctx, company(), ccf())

	var netErr *domain.NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.True(t, netErr.Timeout, "plazo vencido se reporta como timeout")
	assert.True(t, domain.IsRetryable(err))
}

func TestClient_Submit_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newClient(t, url)
	_, err := c.Submit(context.Background(), company(), ccf())
	assert.True(t, domain.IsRetryable(err), "servidor inalcanzable es reintentable")
}

// ── Autenticación ─────────────────────────────────────────────────────────────

func TestClient_TokenIsCached(t *testing.T) {
	f, srv := newFakeMH(t, func(w http.ResponseWriter, _ *http.Request, _ int32) { processed(w) })
	c := newClient(t, srv.URL)

	for i := 0; i < 3; i++ {
		_, err := c.Submit(context.Background(), company(), ccf())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), f.authCalls.Load(), "el token se reutiliza entre envíos")
}

func TestClient_ExpiredTokenIsRenewedOnce(t *testing.T) {
	f, srv := newFakeMH(t, func(w http.ResponseWriter, _ *http.Request, n int32) {
		if n == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		processed(w)
	})
	c := newClient(t, srv.URL)

	out, err := c.Submit(context.Background(), company(), ccf())
	require.NoError(t, err)
	assert.True(t, out.Accepted)
	assert.Equal(t, int32(2), f.authCalls.Load(), "un 401 fuerza una nueva autenticación")
}

func TestClient_AuthenticationRejected(t *testing.T) {
	_, srv := newFakeMH(t, func(w http.ResponseWriter, _ *http.Request, _ int32) { processed(w) })
	c, err := mh.NewClient(mh.Config{BaseURL: srv.URL, User: "06142901861013", Password: "mala"}, fakeSigner{}, zerolog.Nop())
	require.NoError(t, err)

	_, err = c.Submit(context.Background(), company(), ccf())
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, domain.IsRetryable(err))
}

// ── Invalidación ──────────────────────────────────────────────────────────────

func TestClient_Invalidate_Nullity(t *testing.T) {
	f, srv := newFakeMH(t, func(w http.ResponseWriter, r *http.Request, _ int32) {
		assert.Equal(t, "/fesv/anulardte", r.URL.Path)
		processed(w)
	})
	c := newClient(t, srv.URL)

	doc := ccf()
	doc.State = entity.StateAccepted
	doc.ReceptionSeal = "2024A1B2C3D4E5F6"
	ev := billing.InvalidationEvent{
		Code: "0f1e2d3c-4b5a-4968-8776-655443322110",
		Request: entity.InvalidationRequest{
			DocumentID:      doc.ID,
			Reason:          entity.ReasonNullity,
			Motive:          "Error en datos del receptor",
			ReplacementCode: "9a8b7c6d-5e4f-4a3b-9c2d-1e0f9a8b7c6d",
			Responsible:     entity.PartyIdentity{IDType: "13", IDNumber: "04567890-3", Name: "Ana López"},
			Requester:       entity.PartyIdentity{IDType: "36", IDNumber: "0614-010190-102-5", Name: "Carlos Pérez"},
		},
		IssuedAt: time.Date(2024, 5, 21, 16, 0, 0, 0, time.UTC),
	}

	out, err := c.Invalidate(context.Background(), company(), doc, ev)
	require.NoError(t, err)
	assert.True(t, out.Accepted)

	env := <-f.sent
	assert.Equal(t, "invalidacion", env.TipoEvento)
	assert.Equal(t, 2, env.Version)
	assert.Equal(t, "0F1E2D3C-4B5A-4968-8776-655443322110", env.CodigoGeneracion)

	p := env.payload(t)
	ident := p["identificacion"].(map[string]any)
	assert.Equal(t, "2024-05-21", ident["fecAnula"])
	assert.Equal(t, "10:00:00", ident["horAnula"], "hora local de El Salvador")

	docPart := p["documento"].(map[string]any)
	assert.Equal(t, "2024A1B2C3D4E5F6", docPart["selloRecibido"])
	assert.Equal(t, "9A8B7C6D-5E4F-4A3B-9C2D-1E0F9A8B7C6D", docPart["codigoGeneracionR"])

	motivo := p["motivo"].(map[string]any)
	assert.Equal(t, 3.0, motivo["tipoAnulacion"], "nulidad es tipo 3")
	assert.Equal(t, "045678903", motivo["numDocResponsable"])
}

func TestClient_Invalidate_RescissionHasNoReplacement(t *testing.T) {
	f, srv := newFakeMH(t, func(w http.ResponseWriter, _ *http.Request, _ int32) { processed(w) })
	c := newClient(t, srv.URL)

	doc := ccf()
	doc.ReceptionSeal = "SELLO"
	ev := billing.InvalidationEvent{
		Code:    "0f1e2d3c-4b5a-4968-8776-655443322110",
		Request: entity.InvalidationRequest{Reason: entity.ReasonRescission, Motive: "Operación rescindida"},
	}
	_, err := c.Invalidate(context.Background(), company(), doc, ev)
	require.NoError(t, err)

	p := (<-f.sent).payload(t)
	assert.Nil(t, p["documento"].(map[string]any)["codigoGeneracionR"])
	assert.Equal(t, 2.0, p["motivo"].(map[string]any)["tipoAnulacion"])
}

func TestNewClient_Validation(t *testing.T) {
	_, err := mh.NewClient(mh.Config{}, fakeSigner{}, zerolog.Nop())
	assert.Error(t, err)
	_, err = mh.NewClient(mh.Config{BaseURL: "http://x"}, nil, zerolog.Nop())
	assert.Error(t, err)
}
