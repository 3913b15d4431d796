package types

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	ObjectIDLength = 32
	AddressLength  = 20
	DigestLength   = 32
)

// ObjectID is the globally unique identifier of a logical object. It is
// stable across the object's entire lifecycle and never reused.
type ObjectID [ObjectIDLength]byte

// Address identifies an external account that can sign transactions.
type Address [AddressLength]byte

// Version is the logical clock value of an object. It strictly increases
// on every state change, including wrapping and unwrapping.
type Version uint64

var ZeroObjectID = ObjectID{}

var ZeroAddress = Address{}

func BytesToObjectID(b []byte) ObjectID {
	var id ObjectID

	size := len(b)
	min := min(size, ObjectIDLength)

	copy(id[ObjectIDLength-min:], b[len(b)-min:])

	return id
}

func StringToObjectID(str string) ObjectID {
	return BytesToObjectID(StringToBytes(str))
}

func (id ObjectID) Bytes() []byte {
	return id[:]
}

func (id ObjectID) String() string {
	return "0x" + hex.EncodeToString(id[:])
}

func BytesToAddress(b []byte) Address {
	var a Address

	size := len(b)
	min := min(size, AddressLength)

	copy(a[AddressLength-min:], b[len(b)-min:])

	return a
}

func StringToAddress(str string) Address {
	return BytesToAddress(StringToBytes(str))
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

func (v Version) Uint64() uint64 {
	return uint64(v)
}

func (v Version) String() string {
	return fmt.Sprintf("%d", uint64(v))
}

// CopyBytes returns an exact copy of the provided bytes.
func CopyBytes(b []byte) (copiedBytes []byte) {
	if b == nil {
		return nil
	}

	copiedBytes = make([]byte, len(b))
	copy(copiedBytes, b)

	return
}

func StringToBytes(str string) []byte {
	str = strings.TrimPrefix(str, "0x")
	if len(str)%2 == 1 {
		str = "0" + str
	}

	b, _ := hex.DecodeString(str)

	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}

	return b
}
