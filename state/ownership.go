package state

import (
	"errors"

	"github.com/objectledger-lab/objectledger/state/stypes"
	"github.com/objectledger-lab/objectledger/types"
)

// maxOwnerChainDepth bounds parent chain resolution so that cyclic or
// inconsistent ownership data cannot loop the authenticator.
const maxOwnerChainDepth = 128

var errOwnerChainTooDeep = errors.New("ownership chain exceeds maximum depth")

// ObjectResolver looks up the current state of an object by id. It is
// backed by the id-indexed object table of the store, never by
// in-memory back-references.
type ObjectResolver interface {
	ResolveObject(id types.ObjectID) (*stypes.Object, error)
}

// AuthContext carries everything needed to authenticate one input
// object: the transaction signer and the set of object ids present as
// inputs of the same transaction.
type AuthContext struct {
	Signer   types.Address
	Inputs   map[types.ObjectID]struct{}
	Resolver ObjectResolver

	// ConsensusOrdered is set when the object arrives through the
	// shared-object consensus path rather than as a plain owned input.
	ConsensusOrdered bool
}

func (c *AuthContext) hasInput(id types.ObjectID) bool {
	_, ok := c.Inputs[id]

	return ok
}

// Authenticate decides whether the transaction may mutate the given
// object. The switch over owner kinds is exhaustive; a new owner kind
// must be handled here deliberately.
func Authenticate(ctx *AuthContext, obj *stypes.Object) error {
	switch obj.Owner.Kind {
	case types.OwnerAddress:
		if obj.Owner.Address != ctx.Signer {
			return types.ErrNotAuthorized
		}

		return nil
	case types.OwnerObject:
		return authenticateChild(ctx, obj, obj.Owner.Parent, 0)
	case types.OwnerShared:
		if !ctx.ConsensusOrdered {
			return types.ErrSharedObjectAsOwnedInput
		}

		return nil
	case types.OwnerImmutable:
		return types.ErrImmutableObjectMutation
	default:
		return types.ErrNotAuthorized
	}
}

// authenticateChild walks the parent chain rooted at parentID. The
// child is only usable when its authenticating parent is itself an
// input of this transaction; reaching for a child while bypassing the
// chain is a distinct ownership error, not a plain authorization one.
func authenticateChild(ctx *AuthContext, child *stypes.Object, parentID types.ObjectID, depth int) error {
	if depth >= maxOwnerChainDepth {
		return errOwnerChainTooDeep
	}

	parent, err := ctx.Resolver.ResolveObject(parentID)
	if err != nil {
		notFound := &types.ObjectNotFoundError{}
		if errors.As(err, &notFound) {
			return &types.InvalidChildObjectArgumentError{Child: child.ID, Parent: parentID}
		}

		return err
	}

	switch parent.Owner.Kind {
	case types.OwnerAddress:
		if parent.Owner.Address != ctx.Signer {
			return types.ErrNotAuthorized
		}

		if !ctx.hasInput(parent.ID) {
			return &types.InvalidChildObjectArgumentError{Child: child.ID, Parent: parent.ID}
		}

		return nil
	case types.OwnerObject:
		return authenticateChild(ctx, child, parent.Owner.Parent, depth+1)
	case types.OwnerShared:
		if !ctx.ConsensusOrdered {
			return types.ErrSharedObjectAsOwnedInput
		}

		return nil
	case types.OwnerImmutable:
		return types.ErrImmutableObjectMutation
	default:
		return types.ErrNotAuthorized
	}
}
