package mh

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/facturacion-sv/internal/application/billing"
	"github.com/jhoicas/facturacion-sv/internal/domain"
	"github.com/jhoicas/facturacion-sv/internal/domain/entity"
	pkgmh "github.com/jhoicas/facturacion-sv/pkg/mh"
)

const (
	pathAuth       = "/seguridad/auth"
	pathReception  = "/fesv/recepciondte"
	pathInvalidate = "/fesv/anulardte"

	// El token de MH dura 24 h en pruebas y 48 h en producción; se renueva antes.
	tokenTTL     = 23 * time.Hour
	maxBodyBytes = 1 << 20
	userAgent    = "facturacion-sv/1.0"

	// Formato de fhProcesamiento en las respuestas.
	processedLayout = "02/01/2006 15:04:05"
)

// Signer firma el JSON del documento y devuelve el JWS compacto.
type Signer interface {
	Sign(payload []byte) (string, error)
}

// Config parámetros del cliente.
type Config struct {
	BaseURL     string
	Environment string // "00" producción, "01" pruebas
	User        string
	Password    string
	HTTPClient  *http.Client
}

// Client implementa billing.SubmissionService sobre la API REST de recepción de MH.
type Client struct {
	cfg    Config
	http   *http.Client
	signer Signer
	log    zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

var _ billing.SubmissionService = (*Client)(nil)

// NewClient construye el cliente. Sin HTTPClient usa uno sin timeout propio: el límite
// de cada intento lo impone el contexto del caso de uso.
func NewClient(cfg Config, signer Signer, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("mh: base URL requerida")
	}
	if signer == nil {
		return nil, fmt.Errorf("mh: firmador requerido")
	}
	if cfg.Environment == "" {
		cfg.Environment = pkgmh.EnvironmentTest
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{cfg: cfg, http: hc, signer: signer, log: log, now: time.Now}, nil
}

// Submit firma y transmite el documento. El código de generación es el del documento,
// de modo que un reintento es idempotente del lado del servicio.
func (c *Client) Submit(ctx context.Context, company *entity.CompanyProfile, doc *entity.FiscalDocument) (*billing.SubmissionOutcome, error) {
	issuedAt := doc.CreatedAt
	if issuedAt.IsZero() {
		issuedAt = c.now()
	}
	body, err := json.Marshal(buildDTE(company, doc, c.cfg.Environment, issuedAt))
	if err != nil {
		return nil, fmt.Errorf("mh: serializar DTE: %w", err)
	}
	signed, err := c.signer.Sign(body)
	if err != nil {
		return nil, fmt.Errorf("mh: firmar DTE: %w", err)
	}
	env := receptionEnvelope{
		Ambiente:         c.cfg.Environment,
		IDEnvio:          1,
		Version:          schemaVersion(doc.DocumentType),
		TipoDte:          doc.DocumentType,
		Documento:        signed,
		CodigoGeneracion: strings.ToUpper(doc.GenerationCode),
	}
	return c.transmit(ctx, "recepción", pathReception, env)
}

// Invalidate firma y transmite el evento de invalidación.
func (c *Client) Invalidate(ctx context.Context, company *entity.CompanyProfile, doc *entity.FiscalDocument, ev billing.InvalidationEvent) (*billing.SubmissionOutcome, error) {
	if ev.IssuedAt.IsZero() {
		ev.IssuedAt = c.now()
	}
	body, err := json.Marshal(buildInvalidation(company, doc, ev, c.cfg.Environment))
	if err != nil {
		return nil, fmt.Errorf("mh: serializar evento: %w", err)
	}
	signed, err := c.signer.Sign(body)
	if err != nil {
		return nil, fmt.Errorf("mh: firmar evento: %w", err)
	}
	env := receptionEnvelope{
		Ambiente:         c.cfg.Environment,
		IDEnvio:          1,
		Version:          2,
		TipoDte:          doc.DocumentType,
		TipoEvento:       "invalidacion",
		Documento:        signed,
		CodigoGeneracion: strings.ToUpper(ev.Code),
	}
	return c.transmit(ctx, "invalidación", pathInvalidate, env)
}

// transmit envía el sobre. Un 401 descarta el token y reintenta una vez con uno nuevo.
func (c *Client) transmit(ctx context.Context, op, path string, env receptionEnvelope) (*billing.SubmissionOutcome, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("mh: serializar sobre: %w", err)
	}

	for attempt := 0; ; attempt++ {
		token, err := c.authenticate(ctx)
		if err != nil {
			return nil, err
		}
		status, raw, err := c.post(ctx, op, path, "application/json", token, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		if status == http.StatusUnauthorized && attempt == 0 {
			c.dropToken()
			continue
		}
		return c.parseReception(op, status, raw)
	}
}

func (c *Client) parseReception(op string, status int, raw []byte) (*billing.SubmissionOutcome, error) {
	if status >= 500 {
		return nil, &domain.NetworkError{Op: op, Err: fmt.Errorf("HTTP %d", status)}
	}

	var resp receptionResponse
	// El servicio responde 400 con el detalle de rechazo en el cuerpo.
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Estado == "" {
		if status >= 400 {
			return nil, fmt.Errorf("%w: HTTP %d: %s", domain.ErrSubmissionFailed, status, snippet(raw))
		}
		return nil, fmt.Errorf("%w: respuesta ilegible: %s", domain.ErrSubmissionFailed, snippet(raw))
	}

	out := &billing.SubmissionOutcome{ProcessedAt: parseProcessed(resp.FhProcesamiento)}
	if resp.Estado == pkgmh.ReceptionProcessed {
		out.Accepted = true
		out.ReceptionSeal = resp.SelloRecibido
		return out, nil
	}
	obs := resp.Observaciones
	if obs == nil {
		obs = []string{}
	}
	out.Rejection = &entity.RejectionDetail{
		Code:         resp.CodigoMsg,
		Description:  resp.DescripcionMsg,
		Observations: obs,
	}
	return out, nil
}

// authenticate devuelve el token vigente o solicita uno nuevo (POST form user/pwd).
func (c *Client) authenticate(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && c.now().Before(c.tokenExp) {
		t := c.token
		c.mu.Unlock()
		return t, nil
	}
	c.mu.Unlock()

	form := url.Values{"user": {c.cfg.User}, "pwd": {c.cfg.Password}}
	status, raw, err := c.post(ctx, "autenticación", pathAuth, "application/x-www-form-urlencoded", "", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	if status >= 500 {
		return "", &domain.NetworkError{Op: "autenticación", Err: fmt.Errorf("HTTP %d", status)}
	}
	var resp authResponse
	if err := json.Unmarshal(raw, &resp); err != nil || status != http.StatusOK || resp.Body.Token == "" {
		return "", fmt.Errorf("%w: autenticación rechazada (HTTP %d)", domain.ErrUnauthorized, status)
	}

	c.mu.Lock()
	c.token = resp.Body.Token
	c.tokenExp = c.now().Add(tokenTTL)
	c.mu.Unlock()
	c.log.Debug().Str("user", c.cfg.User).Msg("token MH renovado")
	return resp.Body.Token, nil
}

func (c *Client) dropToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// post ejecuta la petición. Fallas de transporte y plazos vencidos son NetworkError.
func (c *Client) post(ctx context.Context, op, path, contentType, token string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("mh: crear request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	if err != nil {
		timeout := errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)
		var ne interface{ Timeout() bool }
		if errors.As(err, &ne) && ne.Timeout() {
			timeout = true
		}
		return 0, nil, &domain.NetworkError{Op: op, Timeout: timeout, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, &domain.NetworkError{Op: op, Err: fmt.Errorf("leer respuesta: %w", err)}
	}
	c.log.Debug().
		Str("op", op).
		Int("http_status", resp.StatusCode).
		Dur("elapsed", c.now().Sub(start)).
		Msg("respuesta MH")
	return resp.StatusCode, raw, nil
}

func parseProcessed(s string) time.Time {
	t, err := time.ParseInLocation(processedLayout, strings.TrimSpace(s), svZone)
	if err != nil {
		return time.Time{}
	}
	return t
}

func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 300 {
		s = s[:300] + "..."
	}
	return s
}
