package runtime

import (
	"github.com/objectledger-lab/objectledger/state/stypes"
	"github.com/objectledger-lab/objectledger/types"
)

// Host is the view of the object table exposed to the interpreter
// while a transaction runs.
type Host interface {
	ResolveObject(id types.ObjectID) (*stypes.Object, error)
}

// Wrap records one object being absorbed into a container's state.
type Wrap struct {
	ID        types.ObjectID
	Container types.ObjectID
}

// TxWrites is the raw mutation set produced by executing a
// transaction's commands. Written objects carry post-state payloads
// and owners but no versions; version stamping belongs to the effects
// computation.
type TxWrites struct {
	// Written objects are live after the transaction: created,
	// mutated, or unwrapped.
	Written []*stypes.Object

	// Wrapped objects were absorbed into another object's state.
	Wrapped []Wrap

	// Deleted ids were explicitly destroyed. Transitively owned or
	// wrapped descendants are expanded during effects computation.
	Deleted []types.ObjectID
}

// ExecutionResult is the opaque interpreter's outcome. A set Err means
// the transaction ran and failed: gas is still charged and a failed
// effects record is still committed.
type ExecutionResult struct {
	Writes TxWrites

	Err error

	// FailedCommand is the index of the failing command, or -1.
	FailedCommand int64
}

func (r *ExecutionResult) Failed() bool {
	return r.Err != nil
}

// Engine executes contract logic against a host view of the object
// table. Implementations are external to this core; tests use mocks.
type Engine interface {
	Execute(tx *types.Transaction, host Host) (*ExecutionResult, error)
}
