package stypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectledger-lab/objectledger/types"
)

func testObject() *Object {
	return &Object{
		ID:      types.BytesToObjectID([]byte{0x10}),
		Version: 3,
		Owner:   types.AddressOwner(types.BytesToAddress([]byte{0xaa})),
		Type:    types.TypeTag{Package: types.BytesToObjectID([]byte{0x01}), Module: "coin", Name: "Coin"},
		Payload: []byte("payload"),
	}
}

func TestObjectRLPRoundTrip(t *testing.T) {
	t.Parallel()

	obj := testObject()

	decoded := &Object{}
	require.NoError(t, decoded.UnmarshalRLP(obj.MarshalRLPTo(nil)))

	assert.Equal(t, obj.ID, decoded.ID)
	assert.Equal(t, obj.Version, decoded.Version)
	assert.Equal(t, obj.Owner, decoded.Owner)
	assert.Equal(t, obj.Type, decoded.Type)
	assert.Equal(t, obj.Payload, decoded.Payload)
}

func TestObjectDigest(t *testing.T) {
	t.Parallel()

	obj := testObject()

	base := obj.Digest()
	assert.True(t, base.IsLive())
	assert.Equal(t, base, obj.Digest())

	// Payload, type and owner all contribute to the fingerprint.
	mutated := obj.Copy()
	mutated.Payload = []byte("other")
	assert.NotEqual(t, base, mutated.Digest())

	transferred := obj.Copy()
	transferred.Owner = types.AddressOwner(types.BytesToAddress([]byte{0xbb}))
	assert.NotEqual(t, base, transferred.Digest())

	retyped := obj.Copy()
	retyped.Type.Name = "Token"
	assert.NotEqual(t, base, retyped.Digest())

	// Version alone does not.
	bumped := obj.Copy()
	bumped.Version = 9
	assert.Equal(t, base, bumped.Digest())
}

func TestObjectCopyIsDeep(t *testing.T) {
	t.Parallel()

	obj := testObject()
	cp := obj.Copy()

	cp.Payload[0] = 'X'

	assert.Equal(t, byte('p'), obj.Payload[0])
}

func TestObjectRef(t *testing.T) {
	t.Parallel()

	obj := testObject()
	ref := obj.Ref()

	assert.Equal(t, obj.ID, ref.ID)
	assert.Equal(t, obj.Version, ref.Version)
	assert.Equal(t, obj.Digest(), ref.Digest)
}
