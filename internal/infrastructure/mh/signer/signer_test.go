package signer_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha512"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/facturacion-sv/internal/infrastructure/mh/signer"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func sha512Hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}

// certificateXML arma un certificado con la estructura que descarga el portal de MH.
func certificateXML(t *testing.T, key *rsa.PrivateKey, password string) string {
	t.Helper()
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	b64 := base64.StdEncoding.EncodeToString(der)
	// El portal parte el base64 en líneas de 64 caracteres.
	var wrapped strings.Builder
	for i := 0; i < len(b64); i += 64 {
		end := min(i+64, len(b64))
		wrapped.WriteString(b64[i:end])
		wrapped.WriteString("\n")
	}
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<CertificadoMH>
  <_id>06142901861013</_id>
  <nit>06142901861013</nit>
  <privateKey>
    <keyType>PRIVATE</keyType>
    <algorithm>RSA</algorithm>
    <encodied>%s</encodied>
    <format>PKCS#8</format>
    <clave>%s</clave>
  </privateKey>
</CertificadoMH>`, wrapped.String(), sha512Hex(password))
}

// ── JWS ───────────────────────────────────────────────────────────────────────

func TestJWSSigner_SignAndVerify(t *testing.T) {
	key := newKey(t)
	s, err := signer.NewJWSSigner(key)
	require.NoError(t, err)

	payload := []byte(`{"identificacion":{"tipoDte":"01","codigoGeneracion":"7DA1D2B4-3C5E-4F60-9A1B-2C3D4E5F6A7B"}}`)
	compact, err := s.Sign(payload)
	require.NoError(t, err)

	parts := strings.Split(compact, ".")
	require.Len(t, parts, 3, "JWS compacto de tres partes")

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"alg":"RS512"}`, string(header))

	got, err := s.Verify(compact)
	require.NoError(t, err)
	assert.Equal(t, payload, got, "el payload viaja sin re-serializar")
}

func TestJWSSigner_VerifyDetectsTampering(t *testing.T) {
	s, err := signer.NewJWSSigner(newKey(t))
	require.NoError(t, err)

	compact, err := s.Sign([]byte(`{"total":113.00}`))
	require.NoError(t, err)
	parts := strings.Split(compact, ".")
	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(`{"total":1.00}`)) + "." + parts[2]

	_, err = s.Verify(tampered)
	assert.Error(t, err, "una firma alterada no debe verificar")
}

func TestJWSSigner_RejectsEmptyInput(t *testing.T) {
	_, err := signer.NewJWSSigner(nil)
	assert.Error(t, err)

	s, err := signer.NewJWSSigner(newKey(t))
	require.NoError(t, err)
	_, err = s.Sign(nil)
	assert.Error(t, err)
}

// ── Certificado XML de MH ─────────────────────────────────────────────────────

func TestParseMHCertificate_ValidPassword(t *testing.T) {
	key := newKey(t)
	raw := certificateXML(t, key, "Secreta#2024")

	got, err := signer.ParseMHCertificate([]byte(raw), "Secreta#2024")
	require.NoError(t, err)
	assert.True(t, key.Equal(got), "la llave extraída debe ser la misma")
}

func TestParseMHCertificate_WrongPassword(t *testing.T) {
	raw := certificateXML(t, newKey(t), "Secreta#2024")

	_, err := signer.ParseMHCertificate([]byte(raw), "otra")
	assert.ErrorIs(t, err, signer.ErrInvalidPassword)
}

func TestParseMHCertificate_Latin1(t *testing.T) {
	key := newKey(t)
	raw := certificateXML(t, key, "clave")
	raw = strings.Replace(raw, `encoding="UTF-8"`, `encoding="ISO-8859-1"`, 1)
	raw = strings.Replace(raw, "<nit>", "<nombre>Compañía Ñandú</nombre>\n  <nit>", 1)
	latin1, err := charmap.ISO8859_1.NewEncoder().String(raw)
	require.NoError(t, err)

	got, err := signer.ParseMHCertificate([]byte(latin1), "clave")
	require.NoError(t, err)
	assert.True(t, key.Equal(got))
}

func TestParseMHCertificate_MissingKey(t *testing.T) {
	_, err := signer.ParseMHCertificate([]byte(`<CertificadoMH><nit>1</nit></CertificadoMH>`), "x")
	assert.Error(t, err)

	_, err = signer.ParseMHCertificate([]byte(`no es xml`), "x")
	assert.Error(t, err)
}

func TestPasswordMatches(t *testing.T) {
	h := sha512Hex("abc")
	assert.True(t, signer.PasswordMatches(h, "abc"))
	assert.True(t, signer.PasswordMatches(strings.ToUpper(h), "abc"), "el hash no distingue mayúsculas")
	assert.False(t, signer.PasswordMatches(h, "abd"))
}

// ── Archivo ───────────────────────────────────────────────────────────────────

func TestNewJWSSignerFromFile(t *testing.T) {
	key := newKey(t)
	path := filepath.Join(t.TempDir(), "06142901861013.crt")
	require.NoError(t, os.WriteFile(path, []byte(certificateXML(t, key, "pw")), 0o600))

	s, err := signer.NewJWSSignerFromFile(path, "pw")
	require.NoError(t, err)
	compact, err := s.Sign([]byte(`{}`))
	require.NoError(t, err)
	_, err = s.Verify(compact)
	assert.NoError(t, err)

	_, err = signer.NewJWSSignerFromFile(filepath.Join(t.TempDir(), "no-existe.crt"), "pw")
	assert.Error(t, err)
}
