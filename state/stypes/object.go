package stypes

import (
	"fmt"

	"github.com/dogechain-lab/fastrlp"

	"github.com/objectledger-lab/objectledger/helper/keccak"
	"github.com/objectledger-lab/objectledger/types"
)

// Object is the stored representation of one versioned object.
type Object struct {
	ID      types.ObjectID
	Version types.Version
	Owner   types.Owner
	Type    types.TypeTag
	Payload []byte
}

// Ref returns the caller-visible reference of the object at its current
// version, with the digest recomputed from its state.
func (o *Object) Ref() types.ObjectRef {
	return types.ObjectRef{
		ID:      o.ID,
		Version: o.Version,
		Digest:  o.Digest(),
	}
}

// Digest fingerprints the object's current state: payload, type and
// owner all contribute, so an ownership transfer alone changes it.
func (o *Object) Digest() types.Digest {
	ar := digestArenaPool.Get()
	defer digestArenaPool.Put(ar)

	v := ar.NewArray()
	v.Set(ar.NewBytes(o.Payload))
	v.Set(ar.NewBytes([]byte(o.Type.String())))
	v.Set(o.Owner.MarshalWith(ar))

	buf := v.MarshalTo(nil)

	return types.BytesToDigest(keccak.Keccak256(nil, buf))
}

func (o *Object) Copy() *Object {
	oo := new(Object)

	oo.ID = o.ID
	oo.Version = o.Version
	oo.Owner = o.Owner
	oo.Type = o.Type
	oo.Payload = types.CopyBytes(o.Payload)

	return oo
}

func (o *Object) String() string {
	return fmt.Sprintf("%s@%d owner=%s", o.ID, o.Version, o.Owner)
}

var (
	digestArenaPool  fastrlp.ArenaPool
	marshalArenaPool fastrlp.ArenaPool
	objectParserPool fastrlp.ParserPool
)

func (o *Object) MarshalWith(ar *fastrlp.Arena) *fastrlp.Value {
	v := ar.NewArray()
	v.Set(ar.NewBytes(o.ID.Bytes()))
	v.Set(ar.NewUint(uint64(o.Version)))
	v.Set(o.Owner.MarshalWith(ar))
	v.Set(ar.NewBytes(o.Type.Package.Bytes()))
	v.Set(ar.NewBytes([]byte(o.Type.Module)))
	v.Set(ar.NewBytes([]byte(o.Type.Name)))
	v.Set(ar.NewBytes(o.Payload))

	return v
}

func (o *Object) MarshalRLPTo(dst []byte) []byte {
	ar := marshalArenaPool.Get()
	defer marshalArenaPool.Put(ar)

	return o.MarshalWith(ar).MarshalTo(dst)
}

func (o *Object) UnmarshalRLP(b []byte) error {
	p := objectParserPool.Get()
	defer objectParserPool.Put(p)

	v, err := p.Parse(b)
	if err != nil {
		return err
	}

	elems, err := v.GetElems()
	if err != nil {
		return err
	}

	if len(elems) < 7 {
		return fmt.Errorf("incorrect number of elements to decode object, expected 7 but found %d", len(elems))
	}

	buf, err := elems[0].GetBytes(nil)
	if err != nil {
		return err
	}

	o.ID = types.BytesToObjectID(buf)

	raw, err := elems[1].GetUint64()
	if err != nil {
		return err
	}

	o.Version = types.Version(raw)

	if err := o.Owner.UnmarshalRLPFrom(elems[2]); err != nil {
		return err
	}

	if buf, err = elems[3].GetBytes(buf[:0]); err != nil {
		return err
	}

	o.Type.Package = types.BytesToObjectID(buf)

	if buf, err = elems[4].GetBytes(buf[:0]); err != nil {
		return err
	}

	o.Type.Module = string(buf)

	if buf, err = elems[5].GetBytes(buf[:0]); err != nil {
		return err
	}

	o.Type.Name = string(buf)

	if o.Payload, err = elems[6].GetBytes(nil); err != nil {
		return err
	}

	return nil
}
