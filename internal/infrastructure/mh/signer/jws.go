package signer

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// jwsHeader cabecera fija que espera el servicio de recepción.
const jwsHeader = `{"alg":"RS512"}`

// JWSSigner firma documentos JSON como JWS compacto RS512.
type JWSSigner struct {
	key *rsa.PrivateKey
}

// NewJWSSigner construye el firmador con una llave RSA ya cargada.
func NewJWSSigner(key *rsa.PrivateKey) (*JWSSigner, error) {
	if key == nil {
		return nil, fmt.Errorf("firma: llave privada requerida")
	}
	return &JWSSigner{key: key}, nil
}

// NewJWSSignerFromFile carga el certificado (XML de MH o .p12) y construye el firmador.
func NewJWSSignerFromFile(path, password string) (*JWSSigner, error) {
	key, err := Load(path, password)
	if err != nil {
		return nil, err
	}
	return NewJWSSigner(key)
}

// Sign devuelve header.payload.signature con el payload tal cual (sin re-serializar).
func (s *JWSSigner) Sign(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("firma: documento vacío")
	}
	signingString := base64.RawURLEncoding.EncodeToString([]byte(jwsHeader)) + "." +
		base64.RawURLEncoding.EncodeToString(payload)
	sig, err := jwt.SigningMethodRS512.Sign(signingString, s.key)
	if err != nil {
		return "", fmt.Errorf("firma: %w", err)
	}
	return signingString + "." + base64.RawURLEncoding.EncodeToString(sig), nil
}

// Verify comprueba una firma compacta con la llave pública del firmador.
func (s *JWSSigner) Verify(compact string) ([]byte, error) {
	return verifyCompact(compact, &s.key.PublicKey)
}

func verifyCompact(compact string, pub *rsa.PublicKey) ([]byte, error) {
	parts := strings.Split(compact, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("firma: JWS compacto inválido")
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("firma: firma no es base64url: %w", err)
	}
	if err := jwt.SigningMethodRS512.Verify(parts[0]+"."+parts[1], sig, pub); err != nil {
		return nil, fmt.Errorf("firma: %w", err)
	}
	return base64.RawURLEncoding.DecodeString(parts[1])
}
