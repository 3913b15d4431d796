package keccak

import (
	"hash"
	"sync"

	"golang.org/x/crypto/sha3"
)

var keccakPool = sync.Pool{
	New: func() interface{} {
		return sha3.NewLegacyKeccak256()
	},
}

// Keccak256 hashes the concatenation of the inputs and appends the
// 32-byte digest to dst.
func Keccak256(dst []byte, src ...[]byte) []byte {
	h, ok := keccakPool.Get().(hash.Hash)
	if !ok {
		panic("invalid keccak hash in pool")
	}

	defer func() {
		h.Reset()
		keccakPool.Put(h)
	}()

	for _, b := range src {
		h.Write(b)
	}

	return h.Sum(dst)
}
