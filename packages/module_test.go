package packages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleRoundTrip(t *testing.T) {
	t.Parallel()

	m := &Module{Name: "counter", Code: []byte{0x01, 0x02, 0x03}}

	decoded, err := ParseModule(EncodeModule(m))
	require.NoError(t, err)

	assert.Equal(t, m.Name, decoded.Name)
	assert.Equal(t, m.Code, decoded.Code)
}

func TestParseModule_Rejects(t *testing.T) {
	t.Parallel()

	_, err := ParseModule(nil)
	assert.Error(t, err)

	_, err = ParseModule([]byte{0xde, 0xad})
	assert.Error(t, err)

	// A module must declare a name.
	_, err = ParseModule(EncodeModule(&Module{Code: []byte{0x01}}))
	assert.Error(t, err)
}
