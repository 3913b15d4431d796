package state

import (
	"github.com/objectledger-lab/objectledger/state/runtime"
	"github.com/objectledger-lab/objectledger/state/stypes"
	"github.com/objectledger-lab/objectledger/types"
)

func oid(b byte) types.ObjectID {
	return types.BytesToObjectID([]byte{b})
}

func addr(b byte) types.Address {
	return types.BytesToAddress([]byte{b})
}

func coinType() types.TypeTag {
	return types.TypeTag{Package: oid(0x01), Module: "coin", Name: "Coin"}
}

func ownedObject(id byte, owner types.Address, version types.Version) *stypes.Object {
	return &stypes.Object{
		ID:      oid(id),
		Version: version,
		Owner:   types.AddressOwner(owner),
		Type:    coinType(),
		Payload: []byte{id},
	}
}

// mockStore is an in-memory StoreReader fixture.
type mockStore struct {
	objects map[types.ObjectID]*stypes.Object
	refs    map[types.ObjectID]types.ObjectRef
	owned   map[types.ObjectID][]types.ObjectID
	wrapped map[types.ObjectID][]types.ObjectID
}

func newMockStore(objs ...*stypes.Object) *mockStore {
	s := &mockStore{
		objects: make(map[types.ObjectID]*stypes.Object),
		refs:    make(map[types.ObjectID]types.ObjectRef),
		owned:   make(map[types.ObjectID][]types.ObjectID),
		wrapped: make(map[types.ObjectID][]types.ObjectID),
	}

	for _, obj := range objs {
		s.add(obj)
	}

	return s
}

func (s *mockStore) add(obj *stypes.Object) {
	s.objects[obj.ID] = obj

	if obj.Owner.Kind == types.OwnerObject {
		s.owned[obj.Owner.Parent] = append(s.owned[obj.Owner.Parent], obj.ID)
	}
}

func (s *mockStore) setTombstone(ref types.ObjectRef) {
	delete(s.objects, ref.ID)
	s.refs[ref.ID] = ref
}

func (s *mockStore) wrapInto(container, child types.ObjectID) {
	s.wrapped[container] = append(s.wrapped[container], child)
}

func (s *mockStore) ResolveObject(id types.ObjectID) (*stypes.Object, error) {
	obj, ok := s.objects[id]
	if !ok {
		return nil, &types.ObjectNotFoundError{ID: id}
	}

	return obj.Copy(), nil
}

func (s *mockStore) OwnedChildren(id types.ObjectID) ([]types.ObjectID, error) {
	return s.owned[id], nil
}

func (s *mockStore) WrappedChildren(id types.ObjectID) ([]types.ObjectID, error) {
	return s.wrapped[id], nil
}

func (s *mockStore) LatestRef(id types.ObjectID) (types.ObjectRef, bool, error) {
	if ref, ok := s.refs[id]; ok {
		return ref, true, nil
	}

	if obj, ok := s.objects[id]; ok {
		return obj.Ref(), true, nil
	}

	return types.ObjectRef{}, false, nil
}

// mockEngine runs a caller-supplied function as the opaque execution
// step.
type mockEngine struct {
	fn func(tx *types.Transaction, host runtime.Host) (*runtime.ExecutionResult, error)
}

func (e *mockEngine) Execute(tx *types.Transaction, host runtime.Host) (*runtime.ExecutionResult, error) {
	if e.fn == nil {
		return &runtime.ExecutionResult{FailedCommand: -1}, nil
	}

	return e.fn(tx, host)
}
