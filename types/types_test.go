package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytesToObjectID_Padding(t *testing.T) {
	t.Parallel()

	id := BytesToObjectID([]byte{0x01, 0x02})

	assert.Equal(t, byte(0x01), id[ObjectIDLength-2])
	assert.Equal(t, byte(0x02), id[ObjectIDLength-1])
	assert.Equal(t, byte(0x00), id[0])

	// Oversized input keeps the trailing bytes.
	long := make([]byte, ObjectIDLength+4)
	long[len(long)-1] = 0xab

	assert.Equal(t, byte(0xab), BytesToObjectID(long)[ObjectIDLength-1])
}

func TestStringToObjectID(t *testing.T) {
	t.Parallel()

	id := StringToObjectID("0x0102")

	assert.Equal(t, byte(0x01), id[ObjectIDLength-2])
	assert.Equal(t, byte(0x02), id[ObjectIDLength-1])

	assert.Equal(t, id, StringToObjectID(id.String()))
}

func TestStringToAddress(t *testing.T) {
	t.Parallel()

	a := StringToAddress("0xff")

	assert.Equal(t, byte(0xff), a[AddressLength-1])
	assert.Equal(t, a, StringToAddress(a.String()))
}
