package state

import (
	"fmt"

	"github.com/objectledger-lab/objectledger/types"
)

// NextLamportVersion returns the logical clock value stamped on every
// object written by a transaction: one past the greatest version among
// all objects the write causally depends on. Wrapping and unwrapping
// are version-bumping events exactly like mutation.
func NextLamportVersion(inputs ...types.Version) types.Version {
	var max types.Version

	for _, v := range inputs {
		if v > max {
			max = v
		}
	}

	return max + 1
}

// checkVersionAdvance panics if a write would not strictly advance the
// object's version. A collision means the causal input set was computed
// wrong; it is a fatal invariant violation, never retried.
func checkVersionAdvance(id types.ObjectID, prev, next types.Version) {
	if next <= prev {
		panic(fmt.Sprintf("version collision on object %s: %d -> %d", id, prev, next))
	}
}
