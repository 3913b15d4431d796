package packages

import (
	"fmt"

	"github.com/dogechain-lab/fastrlp"
)

// Module is one compiled module: its declared name and its bytecode.
// The wire form of a module blob is the RLP pair [name, code].
type Module struct {
	Name string
	Code []byte
}

var moduleParserPool fastrlp.ParserPool

// ParseModule decodes a serialized module blob. Empty or malformed
// blobs are a deserialization failure.
func ParseModule(b []byte) (*Module, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("empty module blob")
	}

	p := moduleParserPool.Get()
	defer moduleParserPool.Put(p)

	v, err := p.Parse(b)
	if err != nil {
		return nil, err
	}

	elems, err := v.GetElems()
	if err != nil {
		return nil, err
	}

	if len(elems) < 2 {
		return nil, fmt.Errorf("incorrect number of elements to decode module, expected 2 but found %d", len(elems))
	}

	name, err := elems[0].GetBytes(nil)
	if err != nil {
		return nil, err
	}

	if len(name) == 0 {
		return nil, fmt.Errorf("module declares no name")
	}

	code, err := elems[1].GetBytes(nil)
	if err != nil {
		return nil, err
	}

	return &Module{Name: string(name), Code: code}, nil
}

// EncodeModule serializes a module into its wire blob form.
func EncodeModule(m *Module) []byte {
	ar := &fastrlp.Arena{}

	v := ar.NewArray()
	v.Set(ar.NewBytes([]byte(m.Name)))
	v.Set(ar.NewBytes(m.Code))

	return v.MarshalTo(nil)
}
