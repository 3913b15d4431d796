package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/objectledger-lab/objectledger/state/stypes"
	"github.com/objectledger-lab/objectledger/types"
)

func callCmd(args ...types.CallArg) types.Command {
	return types.Command{
		Kind:     types.CommandCall,
		Package:  oid(0x01),
		Module:   "coin",
		Function: "transfer",
		Args:     args,
	}
}

func TestValidateCommands_DuplicateScalarUse(t *testing.T) {
	t.Parallel()

	signer := addr(0xaa)
	obj := ownedObject(0x10, signer, 1)
	store := newMockStore(obj)

	cmds := []types.Command{
		callCmd(types.ObjectArg(obj.ID)),
		callCmd(types.PureArg([]byte{1}), types.ObjectArg(obj.ID)),
	}

	err := NewArgContext(authFor(store, signer, obj.ID)).ValidateCommands(cmds)

	argErr := &types.CommandArgumentError{}
	require.ErrorAs(t, err, &argErr)

	assert.Equal(t, types.InvalidUsageOfTakenValue, argErr.Kind)
	assert.Equal(t, 1, argErr.Command)
	assert.Equal(t, 1, argErr.Arg)
}

// A duplicate between a scalar use and a vector use is reported at the
// vector's position regardless of which came first.
func TestValidateCommands_DuplicateReportedAtVector(t *testing.T) {
	t.Parallel()

	signer := addr(0xaa)
	obj := ownedObject(0x10, signer, 1)
	other := ownedObject(0x11, signer, 1)

	store := newMockStore(obj, other)

	t.Run("scalar then vector", func(t *testing.T) {
		t.Parallel()

		cmds := []types.Command{
			callCmd(types.ObjectArg(obj.ID)),
			callCmd(types.ObjVecArg(other.ID, obj.ID)),
		}

		err := NewArgContext(authFor(store, signer, obj.ID, other.ID)).ValidateCommands(cmds)

		argErr := &types.CommandArgumentError{}
		require.ErrorAs(t, err, &argErr)

		assert.Equal(t, types.InvalidUsageOfTakenValue, argErr.Kind)
		assert.Equal(t, 1, argErr.Command)
		assert.Equal(t, 0, argErr.Arg)
	})

	t.Run("vector then scalar", func(t *testing.T) {
		t.Parallel()

		cmds := []types.Command{
			callCmd(types.ObjVecArg(other.ID, obj.ID)),
			callCmd(types.ObjectArg(obj.ID)),
		}

		err := NewArgContext(authFor(store, signer, obj.ID, other.ID)).ValidateCommands(cmds)

		argErr := &types.CommandArgumentError{}
		require.ErrorAs(t, err, &argErr)

		assert.Equal(t, types.InvalidUsageOfTakenValue, argErr.Kind)
		assert.Equal(t, 0, argErr.Command)
		assert.Equal(t, 0, argErr.Arg)
	})
}

func TestValidateCommands_EmptyObjectVector(t *testing.T) {
	t.Parallel()

	store := newMockStore()
	signer := addr(0xaa)

	// Untagged and empty: the element type cannot be inferred.
	untagged := []types.Command{{Kind: types.CommandMakeObjVec}}

	err := NewArgContext(authFor(store, signer)).ValidateCommands(untagged)
	assert.ErrorIs(t, err, types.ErrEmptyCommandInput)

	// A declared element type makes the empty vector well formed.
	tag := coinType()
	tagged := []types.Command{{Kind: types.CommandMakeObjVec, ElemType: &tag}}

	assert.NoError(t, NewArgContext(authFor(store, signer)).ValidateCommands(tagged))
}

func TestValidateCommands_SharedObjectInVector(t *testing.T) {
	t.Parallel()

	signer := addr(0xaa)
	shared := &stypes.Object{
		ID:      oid(0x10),
		Version: 1,
		Owner:   types.SharedOwner(1),
		Type:    coinType(),
	}

	store := newMockStore(shared)

	cmds := []types.Command{callCmd(types.ObjVecArg(shared.ID))}

	ctx := authFor(store, signer, shared.ID)
	ctx.ConsensusOrdered = true

	err := NewArgContext(ctx).ValidateCommands(cmds)

	argErr := &types.CommandArgumentError{}
	require.ErrorAs(t, err, &argErr)

	assert.Equal(t, types.SharedObjectInVector, argErr.Kind)
	assert.Equal(t, 0, argErr.Command)
}

func TestValidateCommands_VectorElementTypeMismatch(t *testing.T) {
	t.Parallel()

	signer := addr(0xaa)

	coin := ownedObject(0x10, signer, 1)
	pass := &stypes.Object{
		ID:      oid(0x11),
		Version: 1,
		Owner:   types.AddressOwner(signer),
		Type:    types.TypeTag{Package: oid(0x01), Module: "pass", Name: "Pass"},
	}

	store := newMockStore(coin, pass)

	// The element type is inferred from the first element; the second
	// element contradicts it.
	cmds := []types.Command{
		{Kind: types.CommandMakeObjVec, Elements: []types.ObjectID{coin.ID, pass.ID}},
	}

	err := NewArgContext(authFor(store, signer, coin.ID, pass.ID)).ValidateCommands(cmds)
	assert.ErrorIs(t, err, types.ErrVerification)

	verErr := &types.VerificationError{}
	require.ErrorAs(t, err, &verErr)
	assert.Equal(t, 0, verErr.Command)
}

func TestValidateCommands_DeclaredTagMismatch(t *testing.T) {
	t.Parallel()

	signer := addr(0xaa)
	coin := ownedObject(0x10, signer, 1)
	store := newMockStore(coin)

	tag := types.TypeTag{Package: oid(0x01), Module: "pass", Name: "Pass"}
	cmds := []types.Command{
		{Kind: types.CommandMakeObjVec, ElemType: &tag, Elements: []types.ObjectID{coin.ID}},
	}

	err := NewArgContext(authFor(store, signer, coin.ID)).ValidateCommands(cmds)
	assert.ErrorIs(t, err, types.ErrVerification)
}

func TestValidateCommands_HomogeneousVector(t *testing.T) {
	t.Parallel()

	signer := addr(0xaa)
	a := ownedObject(0x10, signer, 1)
	b := ownedObject(0x11, signer, 1)
	store := newMockStore(a, b)

	cmds := []types.Command{
		{Kind: types.CommandMakeObjVec, Elements: []types.ObjectID{a.ID, b.ID}},
	}

	err := NewArgContext(authFor(store, signer, a.ID, b.ID)).ValidateCommands(cmds)
	assert.NoError(t, err)
}
