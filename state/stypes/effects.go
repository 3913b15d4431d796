package stypes

import (
	"fmt"

	"github.com/dogechain-lab/fastrlp"

	"github.com/objectledger-lab/objectledger/helper/keccak"
	"github.com/objectledger-lab/objectledger/types"
)

// ExecutionStatus records whether the opaque execution step succeeded.
// A failed execution still commits a gas-only effects record; the
// status distinguishes "ran and failed" from "invalid to submit".
type ExecutionStatus struct {
	Success bool
	Error   string

	// Command is the index of the failing command, or -1 when the
	// failure is not tied to one.
	Command int64
}

func SuccessStatus() ExecutionStatus {
	return ExecutionStatus{Success: true, Command: -1}
}

func FailureStatus(err error, command int64) ExecutionStatus {
	return ExecutionStatus{Error: err.Error(), Command: command}
}

// OwnedRef pairs an object reference with its resulting owner.
type OwnedRef struct {
	Ref   types.ObjectRef
	Owner types.Owner
}

// ModifiedAt records the version an object had at the start of the
// transaction, used by storage to detect conflicting concurrent reads.
type ModifiedAt struct {
	ID      types.ObjectID
	Version types.Version
}

// EffectsRecord is the deterministic, independently recomputable output
// of one transaction. Every touched object id appears in exactly one of
// the classification sets.
type EffectsRecord struct {
	Status ExecutionStatus

	Created   []OwnedRef
	Mutated   []OwnedRef
	Unwrapped []OwnedRef

	Wrapped              []types.ObjectRef
	Deleted              []types.ObjectRef
	UnwrappedThenDeleted []types.ObjectRef

	ModifiedAtVersions []ModifiedAt

	GasObject OwnedRef
}

// Digest fingerprints the whole record so that validators can compare
// independently computed effects.
func (e *EffectsRecord) Digest() types.Digest {
	ar := marshalArenaPool.Get()
	defer marshalArenaPool.Put(ar)

	buf := e.MarshalWith(ar).MarshalTo(nil)

	return types.BytesToDigest(keccak.Keccak256(nil, buf))
}

func (e *EffectsRecord) MarshalRLPTo(dst []byte) []byte {
	ar := marshalArenaPool.Get()
	defer marshalArenaPool.Put(ar)

	return e.MarshalWith(ar).MarshalTo(dst)
}

func (e *EffectsRecord) MarshalWith(ar *fastrlp.Arena) *fastrlp.Value {
	v := ar.NewArray()

	st := ar.NewArray()
	if e.Status.Success {
		st.Set(ar.NewUint(1))
	} else {
		st.Set(ar.NewUint(0))
	}

	st.Set(ar.NewBytes([]byte(e.Status.Error)))
	st.Set(ar.NewUint(uint64(e.Status.Command + 1)))
	v.Set(st)

	v.Set(marshalOwnedRefs(ar, e.Created))
	v.Set(marshalOwnedRefs(ar, e.Mutated))
	v.Set(marshalOwnedRefs(ar, e.Unwrapped))
	v.Set(marshalRefs(ar, e.Wrapped))
	v.Set(marshalRefs(ar, e.Deleted))
	v.Set(marshalRefs(ar, e.UnwrappedThenDeleted))

	mv := ar.NewArray()
	for i := range e.ModifiedAtVersions {
		m := ar.NewArray()
		m.Set(ar.NewBytes(e.ModifiedAtVersions[i].ID.Bytes()))
		m.Set(ar.NewUint(uint64(e.ModifiedAtVersions[i].Version)))
		mv.Set(m)
	}

	v.Set(mv)

	g := ar.NewArray()
	g.Set(e.GasObject.Ref.MarshalWith(ar))
	g.Set(e.GasObject.Owner.MarshalWith(ar))
	v.Set(g)

	return v
}

func marshalOwnedRefs(ar *fastrlp.Arena, refs []OwnedRef) *fastrlp.Value {
	v := ar.NewArray()

	for i := range refs {
		r := ar.NewArray()
		r.Set(refs[i].Ref.MarshalWith(ar))
		r.Set(refs[i].Owner.MarshalWith(ar))
		v.Set(r)
	}

	return v
}

func marshalRefs(ar *fastrlp.Arena, refs []types.ObjectRef) *fastrlp.Value {
	v := ar.NewArray()

	for i := range refs {
		v.Set(refs[i].MarshalWith(ar))
	}

	return v
}

// FindRef returns the classified ref of the given id, if any, together
// with the name of the set holding it.
func (e *EffectsRecord) FindRef(id types.ObjectID) (types.ObjectRef, string, bool) {
	for _, r := range e.Created {
		if r.Ref.ID == id {
			return r.Ref, "created", true
		}
	}

	for _, r := range e.Mutated {
		if r.Ref.ID == id {
			return r.Ref, "mutated", true
		}
	}

	for _, r := range e.Unwrapped {
		if r.Ref.ID == id {
			return r.Ref, "unwrapped", true
		}
	}

	for _, r := range e.Wrapped {
		if r.ID == id {
			return r, "wrapped", true
		}
	}

	for _, r := range e.Deleted {
		if r.ID == id {
			return r, "deleted", true
		}
	}

	for _, r := range e.UnwrappedThenDeleted {
		if r.ID == id {
			return r, "unwrapped_then_deleted", true
		}
	}

	return types.ObjectRef{}, "", false
}

func (e *EffectsRecord) String() string {
	return fmt.Sprintf(
		"effects{created=%d mutated=%d unwrapped=%d wrapped=%d deleted=%d unwrapped_then_deleted=%d}",
		len(e.Created), len(e.Mutated), len(e.Unwrapped),
		len(e.Wrapped), len(e.Deleted), len(e.UnwrappedThenDeleted),
	)
}
