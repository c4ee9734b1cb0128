// Carga de la llave privada de firma: certificado XML emitido por MH o archivo .p12 (PKCS#12).

package signer

import (
	"crypto/rsa"
	"crypto/sha512"
	"crypto/subtle"
	"crypto/x509"
	"encoding/base64"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/crypto/pkcs12"

	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

// ErrInvalidPassword la contraseña no corresponde al hash guardado en el certificado.
var ErrInvalidPassword = errors.New("firma: contraseña del certificado no válida")

// Load detecta el formato por extensión: .p12/.pfx se decodifica como PKCS#12,
// cualquier otro archivo se trata como certificado XML de MH (.crt descargado del portal).
func Load(path, password string) (*rsa.PrivateKey, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".p12", ".pfx":
		key, _, err := LoadFromP12(path, password)
		return key, err
	default:
		return LoadMHCertificate(path, password)
	}
}

// LoadFromP12 carga llave privada y certificado desde un archivo .p12/.pfx.
func LoadFromP12(path, password string) (*rsa.PrivateKey, *x509.Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("leer p12: %w", err)
	}
	priv, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return nil, nil, fmt.Errorf("decodificar p12: %w", err)
	}
	key, ok := priv.(*rsa.PrivateKey)
	if !ok {
		return nil, nil, fmt.Errorf("firma: el p12 debe contener una llave RSA")
	}
	return key, cert, nil
}

// LoadMHCertificate lee el certificado XML de MH desde disco.
func LoadMHCertificate(path, password string) (*rsa.PrivateKey, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer certificado: %w", err)
	}
	return ParseMHCertificate(raw, password)
}

// ParseMHCertificate extrae la llave de <CertificadoMH><privateKey>:
//
//	<encodied> llave PKCS#8 en base64
//	<clave>    SHA-512 hex de la contraseña
//
// Si el certificado trae clave y password no coincide devuelve ErrInvalidPassword.
func ParseMHCertificate(raw []byte, password string) (*rsa.PrivateKey, error) {
	text, err := mh.DecodeLegacyText(raw)
	if err != nil {
		return nil, fmt.Errorf("decodificar certificado: %w", err)
	}
	doc := etree.NewDocument()
	// El texto ya es UTF-8; la declaración puede seguir diciendo ISO-8859-1.
	doc.ReadSettings.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}
	if err := doc.ReadFromString(text); err != nil {
		return nil, fmt.Errorf("parsear certificado XML: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("firma: certificado XML vacío")
	}
	privNode := childFold(root, "privateKey")
	if privNode == nil {
		return nil, fmt.Errorf("firma: el certificado no contiene privateKey")
	}

	if clave := childText(privNode, "clave"); clave != "" {
		if !PasswordMatches(clave, password) {
			return nil, ErrInvalidPassword
		}
	}

	encoded := childText(privNode, "encodied")
	if encoded == "" {
		return nil, fmt.Errorf("firma: privateKey/encodied vacío")
	}
	der, err := decodeBase64Loose(encoded)
	if err != nil {
		return nil, fmt.Errorf("firma: encodied no es base64: %w", err)
	}
	return parsePrivateKey(der)
}

// PasswordMatches compara password contra el hash SHA-512 hex del certificado.
func PasswordMatches(claveHex, password string) bool {
	sum := sha512.Sum512([]byte(password))
	got := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(got), []byte(strings.ToLower(strings.TrimSpace(claveHex)))) == 1
}

// childFold busca un hijo directo sin distinguir mayúsculas ni prefijo de namespace.
func childFold(parent *etree.Element, tag string) *etree.Element {
	for _, c := range parent.ChildElements() {
		if strings.EqualFold(c.Tag, tag) {
			return c
		}
	}
	return nil
}

func childText(parent *etree.Element, tag string) string {
	if c := childFold(parent, tag); c != nil {
		return strings.TrimSpace(c.Text())
	}
	return ""
}

// decodeBase64Loose tolera saltos de línea, espacios y padding omitido.
func decodeBase64Loose(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\n', '\r', '\t':
			return -1
		}
		return r
	}, s)
	clean = strings.TrimRight(clean, "=")
	if strings.ContainsAny(clean, "-_") {
		return base64.RawURLEncoding.DecodeString(clean)
	}
	return base64.RawStdEncoding.DecodeString(clean)
}

// parsePrivateKey acepta DER PKCS#8 o PKCS#1, o el texto PEM codificado en base64.
func parsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	if block, _ := pem.Decode(der); block != nil {
		der = block.Bytes
	}
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("firma: la llave del certificado no es RSA")
		}
		return rsaKey, nil
	}
	key, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("firma: llave privada ilegible: %w", err)
	}
	return key, nil
}
