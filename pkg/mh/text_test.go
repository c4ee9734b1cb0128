package mh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturacion-sv/pkg/mh"
)

func TestSearchKey_SinTildes(t *testing.T) {
	assert.Equal(t, "credito fiscal", mh.SearchKey("  Crédito   FISCAL "))
	assert.Equal(t, "nino y pina", mh.SearchKey("Niño y Piña"))
}

func TestDecodeLegacyText(t *testing.T) {
	latin1 := []byte{'c', 'l', 'a', 'v', 'e', ' ', 0xF1} // "clave ñ" en ISO-8859-1
	s, err := mh.DecodeLegacyText(latin1)
	require.NoError(t, err)
	assert.Equal(t, "clave ñ", s)

	s, err = mh.DecodeLegacyText([]byte("\xef\xbb\xbf<CertificadoMH/>"))
	require.NoError(t, err)
	assert.Equal(t, "<CertificadoMH/>", s, "se descarta el BOM")
}
