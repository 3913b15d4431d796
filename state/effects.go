package state

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/objectledger-lab/objectledger/state/runtime"
	"github.com/objectledger-lab/objectledger/state/stypes"
	"github.com/objectledger-lab/objectledger/types"
)

// maxCascadeObjects bounds cascading deletion so that an inconsistent
// or adversarial ownership graph cannot expand without limit.
const maxCascadeObjects = 4096

var errCascadeTooLarge = errors.New("cascading deletion exceeds maximum object count")

// PreObject is the pre-transaction view of one touched object: its
// version and its digest, which is the wrapped tombstone for objects
// that were embedded when the transaction started.
type PreObject struct {
	Version types.Version
	Digest  types.Digest
}

// ObjectSource provides the id-indexed lookups the effects computation
// needs beyond the resolved inputs: descendant enumeration for cascades
// and latest-ref tombstones for objects known only as embedded state.
type ObjectSource interface {
	OwnedChildren(id types.ObjectID) ([]types.ObjectID, error)
	WrappedChildren(id types.ObjectID) ([]types.ObjectID, error)
	LatestRef(id types.ObjectID) (types.ObjectRef, bool, error)
}

// BuildEffects reconciles the pre-transaction object table (restricted
// to touched ids) with the raw post-state write set into a classified
// effects record: a pure reducer over two maps keyed by ObjectID. The
// new version of every written object is one past the greatest version
// among the resolved inputs; wrapping, unwrapping and deletion bump
// versions exactly like mutation.
func BuildEffects(
	pre map[types.ObjectID]*PreObject,
	writes *runtime.TxWrites,
	src ObjectSource,
	gasID types.ObjectID,
	status stypes.ExecutionStatus,
) (*stypes.EffectsRecord, error) {
	inputs := make([]types.Version, 0, len(pre))
	for _, p := range pre {
		inputs = append(inputs, p.Version)
	}

	version := NextLamportVersion(inputs...)

	written := make(map[types.ObjectID]*stypes.Object, len(writes.Written))
	for _, obj := range writes.Written {
		written[obj.ID] = obj
	}

	wrapSet := make(map[types.ObjectID]struct{}, len(writes.Wrapped))
	for _, w := range writes.Wrapped {
		wrapSet[w.ID] = struct{}{}
	}

	deleteSet, err := expandDeletes(writes.Deleted, written, src)
	if err != nil {
		return nil, err
	}

	// preAt falls back to the latest-ref index for objects the
	// transaction touches without having read: wrapped tombstones
	// surfaced by unwrapping or by a cascade.
	preAt := func(id types.ObjectID) (*PreObject, error) {
		if p, ok := pre[id]; ok {
			return p, nil
		}

		ref, ok, err := src.LatestRef(id)
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, nil
		}

		p := &PreObject{Version: ref.Version, Digest: ref.Digest}
		pre[id] = p

		return p, nil
	}

	effects := &stypes.EffectsRecord{Status: status}
	touched := make(map[types.ObjectID]struct{})

	for id, obj := range written {
		if _, gone := deleteSet[id]; gone {
			continue
		}

		if _, w := wrapSet[id]; w {
			continue
		}

		p, err := preAt(id)
		if err != nil {
			return nil, err
		}

		if p != nil {
			checkVersionAdvance(id, p.Version, version)
		}

		obj.Version = version
		ref := stypes.OwnedRef{Ref: obj.Ref(), Owner: obj.Owner}

		switch {
		case p == nil:
			effects.Created = append(effects.Created, ref)
		case p.Digest.IsWrapped():
			effects.Unwrapped = append(effects.Unwrapped, ref)
			touched[id] = struct{}{}
		default:
			effects.Mutated = append(effects.Mutated, ref)
			touched[id] = struct{}{}
		}
	}

	for id := range wrapSet {
		if _, gone := deleteSet[id]; gone {
			continue
		}

		p, err := preAt(id)
		if err != nil {
			return nil, err
		}

		if p == nil || !p.Digest.IsLive() {
			// Created and wrapped within this transaction: never
			// independently visible, nothing to report.
			continue
		}

		checkVersionAdvance(id, p.Version, version)

		effects.Wrapped = append(effects.Wrapped, types.ObjectRef{
			ID:      id,
			Version: version,
			Digest:  types.WrappedDigest,
		})
		touched[id] = struct{}{}
	}

	for id := range deleteSet {
		p, err := preAt(id)
		if err != nil {
			return nil, err
		}

		ref := types.ObjectRef{ID: id, Version: version, Digest: types.DeletedDigest}

		switch {
		case p == nil:
			// Only report the removal when the object briefly existed
			// as a first-class object within this transaction.
			if _, w := written[id]; w {
				effects.Deleted = append(effects.Deleted, ref)
			}
		case p.Digest.IsWrapped():
			effects.UnwrappedThenDeleted = append(effects.UnwrappedThenDeleted, ref)
			touched[id] = struct{}{}
		default:
			checkVersionAdvance(id, p.Version, version)

			effects.Deleted = append(effects.Deleted, ref)
			touched[id] = struct{}{}
		}
	}

	for id := range touched {
		effects.ModifiedAtVersions = append(effects.ModifiedAtVersions, stypes.ModifiedAt{
			ID:      id,
			Version: pre[id].Version,
		})
	}

	sortEffects(effects)

	gas, ok := written[gasID]
	if !ok {
		return nil, fmt.Errorf("gas object %s missing from write set", gasID)
	}

	effects.GasObject = stypes.OwnedRef{Ref: gas.Ref(), Owner: gas.Owner}

	return effects, nil
}

// expandDeletes grows the explicit delete set with every transitively
// owned or wrapped descendant that did not survive the transaction.
func expandDeletes(
	deleted []types.ObjectID,
	written map[types.ObjectID]*stypes.Object,
	src ObjectSource,
) (map[types.ObjectID]struct{}, error) {
	set := make(map[types.ObjectID]struct{}, len(deleted))
	queue := append([]types.ObjectID{}, deleted...)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		if _, ok := set[id]; ok {
			continue
		}

		set[id] = struct{}{}

		if len(set) > maxCascadeObjects {
			return nil, errCascadeTooLarge
		}

		owned, err := src.OwnedChildren(id)
		if err != nil {
			return nil, err
		}

		wrapped, err := src.WrappedChildren(id)
		if err != nil {
			return nil, err
		}

		for _, child := range append(owned, wrapped...) {
			if _, survives := written[child]; survives {
				// Re-parented or re-written in the same transaction.
				continue
			}

			queue = append(queue, child)
		}
	}

	return set, nil
}

func sortEffects(e *stypes.EffectsRecord) {
	sortOwnedRefs(e.Created)
	sortOwnedRefs(e.Mutated)
	sortOwnedRefs(e.Unwrapped)
	sortRefs(e.Wrapped)
	sortRefs(e.Deleted)
	sortRefs(e.UnwrappedThenDeleted)

	sort.Slice(e.ModifiedAtVersions, func(i, j int) bool {
		return bytes.Compare(
			e.ModifiedAtVersions[i].ID.Bytes(),
			e.ModifiedAtVersions[j].ID.Bytes(),
		) < 0
	})
}

func sortOwnedRefs(refs []stypes.OwnedRef) {
	sort.Slice(refs, func(i, j int) bool {
		return bytes.Compare(refs[i].Ref.ID.Bytes(), refs[j].Ref.ID.Bytes()) < 0
	})
}

func sortRefs(refs []types.ObjectRef) {
	sort.Slice(refs, func(i, j int) bool {
		return bytes.Compare(refs[i].ID.Bytes(), refs[j].ID.Bytes()) < 0
	})
}
