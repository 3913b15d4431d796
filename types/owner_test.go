package types

import (
	"testing"

	"github.com/dogechain-lab/fastrlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnerRLPRoundTrip(t *testing.T) {
	t.Parallel()

	owners := []Owner{
		AddressOwner(BytesToAddress([]byte{0xaa})),
		ObjectOwner(BytesToObjectID([]byte{0x01})),
		SharedOwner(7),
		ImmutableOwner(),
	}

	for _, owner := range owners {
		owner := owner

		t.Run(owner.String(), func(t *testing.T) {
			t.Parallel()

			ar := &fastrlp.Arena{}
			buf := owner.MarshalWith(ar).MarshalTo(nil)

			p := &fastrlp.Parser{}
			v, err := p.Parse(buf)
			require.NoError(t, err)

			decoded := Owner{}
			require.NoError(t, decoded.UnmarshalRLPFrom(v))
			assert.True(t, owner.Equal(decoded))
		})
	}
}

func TestOwnerString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Immutable", ImmutableOwner().String())
	assert.Equal(t, "Shared(7)", SharedOwner(7).String())
	assert.Contains(t, AddressOwner(BytesToAddress([]byte{0xaa})).String(), "AddressOwner")
	assert.Contains(t, ObjectOwner(BytesToObjectID([]byte{0x01})).String(), "ObjectOwner")
}
