// Package argenc implements the canonical, length-prefixed,
// deterministic serialization used for pure call arguments: unsigned
// LEB128 length prefixes, little-endian fixed-width integers, one-byte
// booleans. Every value has exactly one encoding, so independently
// built transactions agree byte-for-byte.
package argenc

import (
	"encoding/binary"
	"errors"
	"unicode/utf8"
)

var (
	ErrInvalidBytes   = errors.New("invalid canonical encoding")
	ErrTrailingBytes  = errors.New("trailing bytes after value")
	ErrLengthOverflow = errors.New("length prefix overflows")
)

// maxLengthBytes bounds uleb128 length prefixes to 32 bits.
const maxLengthBytes = 5

func appendULEB128(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}

	return append(dst, byte(v))
}

func readULEB128(b []byte) (uint64, int, error) {
	var (
		value uint64
		shift uint
	)

	for i := 0; i < len(b); i++ {
		if i == maxLengthBytes {
			return 0, 0, ErrLengthOverflow
		}

		value |= uint64(b[i]&0x7f) << shift

		if b[i]&0x80 == 0 {
			// Reject padded encodings: the canonical form is minimal.
			if i > 0 && b[i] == 0 {
				return 0, 0, ErrInvalidBytes
			}

			// The fifth byte contributes bits 28..34, only four of
			// which fit in 32 bits.
			if i == maxLengthBytes-1 && b[i] > 0x0f {
				return 0, 0, ErrLengthOverflow
			}

			return value, i + 1, nil
		}

		shift += 7
	}

	return 0, 0, ErrInvalidBytes
}

func EncodeBytes(v []byte) []byte {
	return append(appendULEB128(nil, uint64(len(v))), v...)
}

func EncodeString(s string) []byte {
	return EncodeBytes([]byte(s))
}

func EncodeU64(v uint64) []byte {
	var buf [8]byte

	binary.LittleEndian.PutUint64(buf[:], v)

	return buf[:]
}

func EncodeBool(v bool) []byte {
	if v {
		return []byte{1}
	}

	return []byte{0}
}

// EncodeStringVector encodes a vector of strings: element count, then
// each element length-prefixed.
func EncodeStringVector(elems []string) []byte {
	out := appendULEB128(nil, uint64(len(elems)))

	for _, s := range elems {
		out = append(out, EncodeString(s)...)
	}

	return out
}

// EncodeOptionString encodes an optional string as an empty or
// one-element vector.
func EncodeOptionString(s *string) []byte {
	if s == nil {
		return appendULEB128(nil, 0)
	}

	return append(appendULEB128(nil, 1), EncodeString(*s)...)
}

func DecodeBytes(b []byte) ([]byte, error) {
	v, rest, err := readBytes(b)
	if err != nil {
		return nil, err
	}

	if len(rest) != 0 {
		return nil, ErrTrailingBytes
	}

	return v, nil
}

// DecodeString rejects both malformed length prefixes and non-UTF-8
// payloads; contract strings are textual by definition.
func DecodeString(b []byte) (string, error) {
	v, err := DecodeBytes(b)
	if err != nil {
		return "", err
	}

	if !utf8.Valid(v) {
		return "", ErrInvalidBytes
	}

	return string(v), nil
}

func DecodeU64(b []byte) (uint64, error) {
	if len(b) != 8 {
		return 0, ErrInvalidBytes
	}

	return binary.LittleEndian.Uint64(b), nil
}

func DecodeBool(b []byte) (bool, error) {
	if len(b) != 1 || b[0] > 1 {
		return false, ErrInvalidBytes
	}

	return b[0] == 1, nil
}

func DecodeStringVector(b []byte) ([]string, error) {
	count, n, err := readULEB128(b)
	if err != nil {
		return nil, err
	}

	rest := b[n:]
	out := make([]string, 0, count)

	for i := uint64(0); i < count; i++ {
		var elem []byte

		elem, rest, err = readBytes(rest)
		if err != nil {
			return nil, err
		}

		if !utf8.Valid(elem) {
			return nil, ErrInvalidBytes
		}

		out = append(out, string(elem))
	}

	if len(rest) != 0 {
		return nil, ErrTrailingBytes
	}

	return out, nil
}

// DecodeOptionString decodes an optional string; a count above one is
// malformed.
func DecodeOptionString(b []byte) (*string, error) {
	count, n, err := readULEB128(b)
	if err != nil {
		return nil, err
	}

	rest := b[n:]

	switch count {
	case 0:
		if len(rest) != 0 {
			return nil, ErrTrailingBytes
		}

		return nil, nil
	case 1:
		elem, rest, err := readBytes(rest)
		if err != nil {
			return nil, err
		}

		if len(rest) != 0 {
			return nil, ErrTrailingBytes
		}

		if !utf8.Valid(elem) {
			return nil, ErrInvalidBytes
		}

		s := string(elem)

		return &s, nil
	default:
		return nil, ErrInvalidBytes
	}
}

func readBytes(b []byte) (value, rest []byte, err error) {
	length, n, err := readULEB128(b)
	if err != nil {
		return nil, nil, err
	}

	b = b[n:]
	if uint64(len(b)) < length {
		return nil, nil, ErrInvalidBytes
	}

	return b[:length], b[length:], nil
}
