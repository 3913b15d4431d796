package storage

import "github.com/objectledger-lab/objectledger/types"

// object store key schema
var (
	// objectPrefix + id -> RLP object record, live objects only
	objectPrefix = []byte("o")

	// refPrefix + id -> RLP latest ObjectRef, live or tombstone
	refPrefix = []byte("r")

	// ownerIndexPrefix + parent id + child id -> marker, for objects
	// owned by a parent field
	ownerIndexPrefix = []byte("p")

	// wrapIndexPrefix + container id + child id -> marker, for objects
	// embedded inside a container
	wrapIndexPrefix = []byte("w")

	// wrappedInPrefix + child id -> container id, reverse wrap link
	wrappedInPrefix = []byte("W")
)

var indexMarker = []byte{1}

func objectKey(id types.ObjectID) []byte {
	return append(append([]byte{}, objectPrefix...), id.Bytes()...)
}

func refKey(id types.ObjectID) []byte {
	return append(append([]byte{}, refPrefix...), id.Bytes()...)
}

func ownerIndexKey(parent, child types.ObjectID) []byte {
	key := append(append([]byte{}, ownerIndexPrefix...), parent.Bytes()...)

	return append(key, child.Bytes()...)
}

func wrapIndexKey(container, child types.ObjectID) []byte {
	key := append(append([]byte{}, wrapIndexPrefix...), container.Bytes()...)

	return append(key, child.Bytes()...)
}

func wrappedInKey(child types.ObjectID) []byte {
	return append(append([]byte{}, wrappedInPrefix...), child.Bytes()...)
}
