package localstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	raw, err := encode(map[string]int{"a": 1})
	require.NoError(t, err)

	var out map[string]int
	require.True(t, decode(raw, &out))
	assert.Equal(t, map[string]int{"a": 1}, out)
}

func TestDecode_MalformedJSON(t *testing.T) {
	var out []string
	assert.False(t, decode([]byte("{not json"), &out))
	assert.Empty(t, out)
}

func TestDecode_UnknownVersion(t *testing.T) {
	var out []string
	assert.False(t, decode([]byte(`{"v":99,"data":["x"]}`), &out))
}

func TestDecode_MissingEnvelope(t *testing.T) {
	// Values written before versioning have no envelope and must be
	// treated as undecodable rather than half-parsed.
	var out []string
	assert.False(t, decode([]byte(`["bare","list"]`), &out))
}

func TestDecode_ShapeMismatch(t *testing.T) {
	var out []string
	assert.False(t, decode([]byte(`{"v":1,"data":{"k":1}}`), &out))
}
