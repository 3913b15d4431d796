package storage

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru"

	"github.com/objectledger-lab/objectledger/helper/kvdb"
	"github.com/objectledger-lab/objectledger/state/runtime"
	"github.com/objectledger-lab/objectledger/state/stypes"
	"github.com/objectledger-lab/objectledger/types"
)

const refCacheSize = 8192

// Store is the id-indexed object table: live objects at their latest
// version, a latest-ref index that survives wrapping and deletion as
// tombstones, and the parent/wrap indexes cascade expansion walks.
// Commits are serialized; reads are safe concurrently with each other.
type Store struct {
	logger   hclog.Logger
	db       kvdb.KVBatchStorage
	refCache *lru.Cache
	metrics  *Metrics

	commitLock sync.Mutex
}

func NewStore(logger hclog.Logger, db kvdb.KVBatchStorage, metrics *Metrics) (*Store, error) {
	cache, err := lru.New(refCacheSize)
	if err != nil {
		return nil, err
	}

	return &Store{
		logger:   logger.Named("storage"),
		db:       db,
		refCache: cache,
		metrics:  metrics,
	}, nil
}

// ResolveObject returns the live object at its latest version. Wrapped
// and deleted objects are not resolvable; callers that need their
// tombstone refs use LatestRef.
func (s *Store) ResolveObject(id types.ObjectID) (*stypes.Object, error) {
	s.metrics.ReadObserve()

	data, ok, err := s.db.Get(objectKey(id))
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, &types.ObjectNotFoundError{ID: id}
	}

	obj := &stypes.Object{}
	if err := obj.UnmarshalRLP(data); err != nil {
		return nil, fmt.Errorf("corrupt object record %s: %w", id, err)
	}

	return obj, nil
}

// GetObject is the external lookup surface: latest ref plus payload,
// or a distinct not-found error.
func (s *Store) GetObject(id types.ObjectID) (*stypes.Object, error) {
	return s.ResolveObject(id)
}

// LatestRef returns the most recent ref recorded for an id, including
// wrapped and deleted tombstones.
func (s *Store) LatestRef(id types.ObjectID) (types.ObjectRef, bool, error) {
	if cached, ok := s.refCache.Get(id); ok {
		ref, _ := cached.(types.ObjectRef)

		return ref, true, nil
	}

	data, ok, err := s.db.Get(refKey(id))
	if err != nil {
		return types.ObjectRef{}, false, err
	}

	if !ok {
		return types.ObjectRef{}, false, nil
	}

	ref := types.ObjectRef{}
	if err := ref.UnmarshalRLP(data); err != nil {
		return types.ObjectRef{}, false, fmt.Errorf("corrupt ref record %s: %w", id, err)
	}

	s.refCache.Add(id, ref)

	return ref, true, nil
}

// OwnedChildren lists the objects directly owned by the given object
// through parent fields.
func (s *Store) OwnedChildren(id types.ObjectID) ([]types.ObjectID, error) {
	return s.scanIndex(ownerIndexPrefix, id)
}

// WrappedChildren lists the objects embedded inside the given object.
func (s *Store) WrappedChildren(id types.ObjectID) ([]types.ObjectID, error) {
	return s.scanIndex(wrapIndexPrefix, id)
}

func (s *Store) scanIndex(prefix []byte, id types.ObjectID) ([]types.ObjectID, error) {
	full := append(append([]byte{}, prefix...), id.Bytes()...)

	it := s.db.NewIterator(full, nil)
	defer it.Release()

	var children []types.ObjectID

	for it.Next() {
		key := it.Key()
		if len(key) != len(full)+types.ObjectIDLength {
			return nil, fmt.Errorf("corrupt index key of length %d", len(key))
		}

		children = append(children, types.BytesToObjectID(key[len(full):]))
	}

	return children, it.Error()
}

// Commit atomically persists one transaction's outcome: the effects
// record drives classification, the raw write set supplies payloads
// and wrap containers.
func (s *Store) Commit(effects *stypes.EffectsRecord, writes *runtime.TxWrites) error {
	s.commitLock.Lock()
	defer s.commitLock.Unlock()

	batch := s.db.NewBatch()

	written := make(map[types.ObjectID]*stypes.Object, len(writes.Written))
	for _, obj := range writes.Written {
		written[obj.ID] = obj
	}

	containers := make(map[types.ObjectID]types.ObjectID, len(writes.Wrapped))
	for _, w := range writes.Wrapped {
		containers[w.ID] = w.Container
	}

	refs := make(map[types.ObjectID]types.ObjectRef)

	for _, set := range [][]stypes.OwnedRef{effects.Created, effects.Mutated, effects.Unwrapped} {
		for _, ref := range set {
			obj, ok := written[ref.Ref.ID]
			if !ok {
				return fmt.Errorf("effects reference unwritten object %s", ref.Ref.ID)
			}

			if err := s.putObject(batch, obj); err != nil {
				return err
			}

			refs[ref.Ref.ID] = ref.Ref
		}
	}

	for _, ref := range effects.Wrapped {
		container, ok := containers[ref.ID]
		if !ok {
			return fmt.Errorf("wrapped object %s has no container in write set", ref.ID)
		}

		if err := s.markWrapped(batch, ref, container); err != nil {
			return err
		}

		refs[ref.ID] = ref
	}

	for _, set := range [][]types.ObjectRef{effects.Deleted, effects.UnwrappedThenDeleted} {
		for _, ref := range set {
			if err := s.markDeleted(batch, ref); err != nil {
				return err
			}

			refs[ref.ID] = ref
		}
	}

	if err := batch.Write(); err != nil {
		return err
	}

	for id, ref := range refs {
		s.refCache.Add(id, ref)
	}

	s.metrics.CommitObserve(len(refs))

	s.logger.Debug("effects committed",
		"objects", len(refs),
		"digest", effects.Digest(),
	)

	return nil
}

// putObject writes a live object record, its latest ref, and keeps the
// owner and wrap indexes consistent with its previous state.
func (s *Store) putObject(batch kvdb.Batch, obj *stypes.Object) error {
	if err := s.clearLinks(batch, obj.ID, &obj.Owner); err != nil {
		return err
	}

	if err := batch.Set(objectKey(obj.ID), obj.MarshalRLPTo(nil)); err != nil {
		return err
	}

	ref := obj.Ref()
	if err := batch.Set(refKey(obj.ID), ref.MarshalRLPTo(nil)); err != nil {
		return err
	}

	if obj.Owner.Kind == types.OwnerObject {
		if err := batch.Set(ownerIndexKey(obj.Owner.Parent, obj.ID), indexMarker); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) markWrapped(batch kvdb.Batch, ref types.ObjectRef, container types.ObjectID) error {
	if err := s.clearLinks(batch, ref.ID, nil); err != nil {
		return err
	}

	if err := batch.Delete(objectKey(ref.ID)); err != nil {
		return err
	}

	if err := batch.Set(refKey(ref.ID), ref.MarshalRLPTo(nil)); err != nil {
		return err
	}

	if err := batch.Set(wrapIndexKey(container, ref.ID), indexMarker); err != nil {
		return err
	}

	return batch.Set(wrappedInKey(ref.ID), container.Bytes())
}

func (s *Store) markDeleted(batch kvdb.Batch, ref types.ObjectRef) error {
	if err := s.clearLinks(batch, ref.ID, nil); err != nil {
		return err
	}

	if err := batch.Delete(objectKey(ref.ID)); err != nil {
		return err
	}

	return batch.Set(refKey(ref.ID), ref.MarshalRLPTo(nil))
}

// clearLinks removes the object's previous owner and wrap index
// entries. newOwner, when known, avoids a pointless delete+set of an
// unchanged owner link.
func (s *Store) clearLinks(batch kvdb.Batch, id types.ObjectID, newOwner *types.Owner) error {
	if old, err := s.ResolveObject(id); err == nil {
		if old.Owner.Kind == types.OwnerObject {
			unchanged := newOwner != nil &&
				newOwner.Kind == types.OwnerObject &&
				newOwner.Parent == old.Owner.Parent

			if !unchanged {
				if err := batch.Delete(ownerIndexKey(old.Owner.Parent, id)); err != nil {
					return err
				}
			}
		}
	}

	data, ok, err := s.db.Get(wrappedInKey(id))
	if err != nil {
		return err
	}

	if ok {
		container := types.BytesToObjectID(data)

		if err := batch.Delete(wrapIndexKey(container, id)); err != nil {
			return err
		}

		if err := batch.Delete(wrappedInKey(id)); err != nil {
			return err
		}
	}

	return nil
}

// SeedObject installs an object directly, bypassing effects
// computation. Used for genesis state and tests.
func (s *Store) SeedObject(obj *stypes.Object) error {
	s.commitLock.Lock()
	defer s.commitLock.Unlock()

	batch := s.db.NewBatch()

	if err := s.putObject(batch, obj); err != nil {
		return err
	}

	if err := batch.Write(); err != nil {
		return err
	}

	s.refCache.Add(obj.ID, obj.Ref())

	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
