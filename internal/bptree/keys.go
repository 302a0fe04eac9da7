package bptree

import "bytes"

// Key4, Key8, Key16, Key32, and Key64 are the fixed-width key types the
// spec asks for ("4/8/16/32/64-byte generic keys", §4.4/§9): a systems
// implementation parameterizes the page view by a compile-time key size,
// which in Go means instantiating basePage[K, V] at one of these concrete
// array types rather than a runtime-chosen width.
type (
	Key4  [4]byte
	Key8  [8]byte
	Key16 [16]byte
	Key32 [32]byte
	Key64 [64]byte
)

// CompareKey4 orders Key4 values lexicographically by byte.
func CompareKey4(a, b Key4) int { return bytes.Compare(a[:], b[:]) }

// CompareKey8 orders Key8 values lexicographically by byte.
func CompareKey8(a, b Key8) int { return bytes.Compare(a[:], b[:]) }

// CompareKey16 orders Key16 values lexicographically by byte.
func CompareKey16(a, b Key16) int { return bytes.Compare(a[:], b[:]) }

// CompareKey32 orders Key32 values lexicographically by byte.
func CompareKey32(a, b Key32) int { return bytes.Compare(a[:], b[:]) }

// CompareKey64 orders Key64 values lexicographically by byte.
func CompareKey64(a, b Key64) int { return bytes.Compare(a[:], b[:]) }

type key4Codec struct{}

func (key4Codec) Size() int                 { return 4 }
func (key4Codec) Encode(v Key4, dst []byte) { copy(dst, v[:]) }
func (key4Codec) Decode(src []byte) Key4 {
	var k Key4
	copy(k[:], src)
	return k
}

type key8Codec struct{}

func (key8Codec) Size() int                 { return 8 }
func (key8Codec) Encode(v Key8, dst []byte) { copy(dst, v[:]) }
func (key8Codec) Decode(src []byte) Key8 {
	var k Key8
	copy(k[:], src)
	return k
}

type key16Codec struct{}

func (key16Codec) Size() int                  { return 16 }
func (key16Codec) Encode(v Key16, dst []byte) { copy(dst, v[:]) }
func (key16Codec) Decode(src []byte) Key16 {
	var k Key16
	copy(k[:], src)
	return k
}

type key32Codec struct{}

func (key32Codec) Size() int                  { return 32 }
func (key32Codec) Encode(v Key32, dst []byte) { copy(dst, v[:]) }
func (key32Codec) Decode(src []byte) Key32 {
	var k Key32
	copy(k[:], src)
	return k
}

type key64Codec struct{}

func (key64Codec) Size() int                  { return 64 }
func (key64Codec) Encode(v Key64, dst []byte) { copy(dst, v[:]) }
func (key64Codec) Decode(src []byte) Key64 {
	var k Key64
	copy(k[:], src)
	return k
}

// KeyCodec4, KeyCodec8, KeyCodec16, KeyCodec32, and KeyCodec64 are the
// Codec[K] values for each fixed-width key type above.
var (
	KeyCodec4  Codec[Key4]  = key4Codec{}
	KeyCodec8  Codec[Key8]  = key8Codec{}
	KeyCodec16 Codec[Key16] = key16Codec{}
	KeyCodec32 Codec[Key32] = key32Codec{}
	KeyCodec64 Codec[Key64] = key64Codec{}
)

// BytesToKey8 truncates or zero-pads b into a Key8, for callers building
// keys from variable-length application data (e.g. an integer or a short
// string column).
func BytesToKey8(b []byte) Key8 {
	var k Key8
	copy(k[:], b)
	return k
}
