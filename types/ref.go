package types

import (
	"fmt"

	"github.com/dogechain-lab/fastrlp"
)

// ObjectRef is the caller-visible identity of an object at a point in
// time. Two refs are equal only if all three fields match.
type ObjectRef struct {
	ID      ObjectID
	Version Version
	Digest  Digest
}

func (r ObjectRef) Equal(o ObjectRef) bool {
	return r.ID == o.ID && r.Version == o.Version && r.Digest == o.Digest
}

func (r ObjectRef) String() string {
	return fmt.Sprintf("%s@%d:%s", r.ID, r.Version, r.Digest)
}

func (r *ObjectRef) MarshalWith(ar *fastrlp.Arena) *fastrlp.Value {
	v := ar.NewArray()
	v.Set(ar.NewBytes(r.ID.Bytes()))
	v.Set(ar.NewUint(uint64(r.Version)))
	v.Set(ar.NewBytes(r.Digest.Bytes()))

	return v
}

var refParserPool fastrlp.ParserPool

func (r *ObjectRef) UnmarshalRLP(b []byte) error {
	p := refParserPool.Get()
	defer refParserPool.Put(p)

	v, err := p.Parse(b)
	if err != nil {
		return err
	}

	return r.UnmarshalRLPFrom(v)
}

func (r *ObjectRef) UnmarshalRLPFrom(v *fastrlp.Value) error {
	elems, err := v.GetElems()
	if err != nil {
		return err
	}

	if len(elems) < 3 {
		return fmt.Errorf("incorrect number of elements to decode ref, expected 3 but found %d", len(elems))
	}

	buf, err := elems[0].GetBytes(nil)
	if err != nil {
		return err
	}

	r.ID = BytesToObjectID(buf)

	raw, err := elems[1].GetUint64()
	if err != nil {
		return err
	}

	r.Version = Version(raw)

	if buf, err = elems[2].GetBytes(buf[:0]); err != nil {
		return err
	}

	r.Digest = BytesToDigest(buf)

	return nil
}

func (r *ObjectRef) MarshalRLPTo(dst []byte) []byte {
	ar := &fastrlp.Arena{}

	return r.MarshalWith(ar).MarshalTo(dst)
}
