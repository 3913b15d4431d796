package types

import (
	"fmt"

	"github.com/dogechain-lab/fastrlp"
)

// OwnerKind discriminates the closed set of ownership variants. Every
// authorization site switches exhaustively over it; adding a kind is a
// deliberate change everywhere ownership is checked.
type OwnerKind uint8

const (
	// OwnerAddress objects are mutable only by transactions signed by
	// the owning account.
	OwnerAddress OwnerKind = iota

	// OwnerObject objects are owned by a field of another object and
	// authenticated through the parent chain.
	OwnerObject

	// OwnerShared objects require a consensus-agreed total order for
	// every mutating access. Sharing is permanent.
	OwnerShared

	// OwnerImmutable objects may be read freely but never mutated.
	// Freezing is permanent.
	OwnerImmutable
)

// Owner is the tagged variant over who may authorize mutation of an
// object. Only the field selected by Kind is meaningful.
type Owner struct {
	Kind OwnerKind

	// Address of the owning account, for OwnerAddress.
	Address Address

	// Parent field object id, for OwnerObject.
	Parent ObjectID

	// InitialSharedVersion is the version at which the object became
	// shared, for OwnerShared.
	InitialSharedVersion Version
}

func AddressOwner(addr Address) Owner {
	return Owner{Kind: OwnerAddress, Address: addr}
}

func ObjectOwner(parent ObjectID) Owner {
	return Owner{Kind: OwnerObject, Parent: parent}
}

func SharedOwner(initial Version) Owner {
	return Owner{Kind: OwnerShared, InitialSharedVersion: initial}
}

func ImmutableOwner() Owner {
	return Owner{Kind: OwnerImmutable}
}

func (o Owner) String() string {
	switch o.Kind {
	case OwnerAddress:
		return fmt.Sprintf("AddressOwner(%s)", o.Address)
	case OwnerObject:
		return fmt.Sprintf("ObjectOwner(%s)", o.Parent)
	case OwnerShared:
		return fmt.Sprintf("Shared(%d)", o.InitialSharedVersion)
	case OwnerImmutable:
		return "Immutable"
	}

	return fmt.Sprintf("Owner(%d)", o.Kind)
}

func (o Owner) Equal(other Owner) bool {
	return o == other
}

func (o *Owner) MarshalWith(ar *fastrlp.Arena) *fastrlp.Value {
	v := ar.NewArray()
	v.Set(ar.NewUint(uint64(o.Kind)))

	switch o.Kind {
	case OwnerAddress:
		v.Set(ar.NewBytes(o.Address.Bytes()))
	case OwnerObject:
		v.Set(ar.NewBytes(o.Parent.Bytes()))
	case OwnerShared:
		v.Set(ar.NewUint(uint64(o.InitialSharedVersion)))
	case OwnerImmutable:
	}

	return v
}

func (o *Owner) UnmarshalRLPFrom(v *fastrlp.Value) error {
	elems, err := v.GetElems()
	if err != nil {
		return err
	}

	if len(elems) < 1 {
		return fmt.Errorf("incorrect number of elements to decode owner, found %d", len(elems))
	}

	kind, err := elems[0].GetUint64()
	if err != nil {
		return err
	}

	o.Kind = OwnerKind(kind)

	switch o.Kind {
	case OwnerAddress, OwnerObject, OwnerShared:
		if len(elems) < 2 {
			return fmt.Errorf("owner kind %d requires a payload element", kind)
		}
	case OwnerImmutable:
		return nil
	default:
		return fmt.Errorf("unknown owner kind %d", kind)
	}

	switch o.Kind {
	case OwnerAddress:
		buf, err := elems[1].GetBytes(nil)
		if err != nil {
			return err
		}

		o.Address = BytesToAddress(buf)
	case OwnerObject:
		buf, err := elems[1].GetBytes(nil)
		if err != nil {
			return err
		}

		o.Parent = BytesToObjectID(buf)
	case OwnerShared:
		raw, err := elems[1].GetUint64()
		if err != nil {
			return err
		}

		o.InitialSharedVersion = Version(raw)
	case OwnerImmutable:
	}

	return nil
}
