package types

import (
	"bytes"
	"encoding/hex"
)

// Digest is the content fingerprint of an object's state, or one of the
// two lifecycle sentinels below.
type Digest [DigestLength]byte

// Lifecycle sentinels. They are only ever attached at the version
// transition where the transformation occurs, never persisted as the
// digest of a live object.
var (
	// WrappedDigest marks an object embedded inside another object and
	// not separately accessible.
	WrappedDigest = sentinelDigest(0xfe)

	// DeletedDigest marks an object that no longer exists.
	DeletedDigest = sentinelDigest(0xff)
)

func sentinelDigest(fill byte) Digest {
	var d Digest
	for i := range d {
		d[i] = fill
	}

	return d
}

func BytesToDigest(b []byte) Digest {
	var d Digest

	size := len(b)
	min := min(size, DigestLength)

	copy(d[DigestLength-min:], b[len(b)-min:])

	return d
}

func (d Digest) Bytes() []byte {
	return d[:]
}

func (d Digest) String() string {
	return "0x" + hex.EncodeToString(d[:])
}

func (d Digest) IsWrapped() bool {
	return bytes.Equal(d[:], WrappedDigest[:])
}

func (d Digest) IsDeleted() bool {
	return bytes.Equal(d[:], DeletedDigest[:])
}

// IsLive reports whether the digest fingerprints actual object state
// rather than a lifecycle sentinel.
func (d Digest) IsLive() bool {
	return !d.IsWrapped() && !d.IsDeleted()
}
