package common

import (
	"crypto/rand"

	"github.com/objectledger-lab/objectledger/types"
)

// RandomObjectID returns a cryptographically random object id. Used by
// tests and fixtures that need fresh, collision-free ids.
func RandomObjectID() types.ObjectID {
	var id types.ObjectID

	if _, err := rand.Read(id[:]); err != nil {
		panic(err)
	}

	return id
}

// RandomAddress returns a cryptographically random account address.
func RandomAddress() types.Address {
	var addr types.Address

	if _, err := rand.Read(addr[:]); err != nil {
		panic(err)
	}

	return addr
}
