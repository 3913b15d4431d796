package stypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectledger-lab/objectledger/types"
)

func TestExecutionStatus(t *testing.T) {
	t.Parallel()

	ok := SuccessStatus()
	assert.True(t, ok.Success)
	assert.Equal(t, int64(-1), ok.Command)

	failed := FailureStatus(assert.AnError, 2)
	assert.False(t, failed.Success)
	assert.Equal(t, assert.AnError.Error(), failed.Error)
	assert.Equal(t, int64(2), failed.Command)
}

func TestEffectsDigest(t *testing.T) {
	t.Parallel()

	obj := testObject()
	record := &EffectsRecord{
		Status:    SuccessStatus(),
		Mutated:   []OwnedRef{{Ref: obj.Ref(), Owner: obj.Owner}},
		GasObject: OwnedRef{Ref: obj.Ref(), Owner: obj.Owner},
	}

	base := record.Digest()
	assert.Equal(t, base, record.Digest())

	// Any classified change produces a different fingerprint.
	altered := &EffectsRecord{
		Status:    SuccessStatus(),
		Deleted:   []types.ObjectRef{{ID: obj.ID, Version: 4, Digest: types.DeletedDigest}},
		GasObject: OwnedRef{Ref: obj.Ref(), Owner: obj.Owner},
	}

	assert.NotEqual(t, base, altered.Digest())

	failed := &EffectsRecord{
		Status:    FailureStatus(assert.AnError, 0),
		Mutated:   record.Mutated,
		GasObject: record.GasObject,
	}

	assert.NotEqual(t, base, failed.Digest())
}

func TestEffectsFindRef(t *testing.T) {
	t.Parallel()

	obj := testObject()
	wrapped := types.ObjectRef{
		ID:      types.BytesToObjectID([]byte{0x20}),
		Version: 4,
		Digest:  types.WrappedDigest,
	}

	record := &EffectsRecord{
		Status:  SuccessStatus(),
		Mutated: []OwnedRef{{Ref: obj.Ref(), Owner: obj.Owner}},
		Wrapped: []types.ObjectRef{wrapped},
	}

	ref, set, ok := record.FindRef(obj.ID)
	require.True(t, ok)
	assert.Equal(t, "mutated", set)
	assert.Equal(t, obj.Ref(), ref)

	ref, set, ok = record.FindRef(wrapped.ID)
	require.True(t, ok)
	assert.Equal(t, "wrapped", set)
	assert.Equal(t, wrapped, ref)

	_, _, ok = record.FindRef(types.BytesToObjectID([]byte{0x99}))
	assert.False(t, ok)
}
