package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectRefEqual(t *testing.T) {
	t.Parallel()

	base := ObjectRef{
		ID:      BytesToObjectID([]byte{0x01}),
		Version: 3,
		Digest:  BytesToDigest([]byte{0xaa}),
	}

	assert.True(t, base.Equal(base))

	other := base
	other.Version = 4
	assert.False(t, base.Equal(other))

	other = base
	other.Digest = DeletedDigest
	assert.False(t, base.Equal(other))
}

func TestObjectRefRLP(t *testing.T) {
	t.Parallel()

	refs := []ObjectRef{
		{
			ID:      BytesToObjectID([]byte{0x01}),
			Version: 42,
			Digest:  BytesToDigest([]byte{0xaa, 0xbb}),
		},
		{
			ID:      BytesToObjectID([]byte{0x02}),
			Version: 7,
			Digest:  WrappedDigest,
		},
	}

	for _, ref := range refs {
		decoded := ObjectRef{}
		require.NoError(t, decoded.UnmarshalRLP(ref.MarshalRLPTo(nil)))
		assert.True(t, ref.Equal(decoded))
	}
}
