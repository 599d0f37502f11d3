package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiFieldTokenRoundTrip(t *testing.T) {
	token := EncodeMultiFieldToken("2024-03-15", "acc-123")

	fields, err := DecodeMultiFieldToken(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-15", "acc-123"}, fields)
}

func TestDecodeMultiFieldToken_InvalidBase64(t *testing.T) {
	_, err := DecodeMultiFieldToken("not%%base64")
	assert.Error(t, err)
}

func TestMultiFieldToken_SingleField(t *testing.T) {
	fields, err := DecodeMultiFieldToken(EncodeMultiFieldToken("only"))
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, fields)
}
