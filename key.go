package mumhash

import (
	"fmt"
	"math"
)

// WriteKey feeds key into h using the write that matches its dynamic type.
// Signed integers are written as their two's-complement bits at the same
// width, floats as their IEEE-754 bits with -0 folded into +0. Types without a fixed-width encoding
// fall back to their %v text.
func WriteKey[K comparable](h Hasher, key K) {
	switch k := any(key).(type) {
	case string:
		h.WriteString(k)
	case bool:
		if k {
			h.WriteUint8(1)
		} else {
			h.WriteUint8(0)
		}
	case int:
		h.WriteUint(uint(k))
	case int8:
		h.WriteUint8(uint8(k))
	case int16:
		h.WriteUint16(uint16(k))
	case int32:
		h.WriteUint32(uint32(k))
	case int64:
		h.WriteUint64(uint64(k))
	case uint:
		h.WriteUint(k)
	case uint8:
		h.WriteUint8(k)
	case uint16:
		h.WriteUint16(k)
	case uint32:
		h.WriteUint32(k)
	case uint64:
		h.WriteUint64(k)
	case uintptr:
		h.WriteUint64(uint64(k))
	case float32:
		h.WriteUint32(float32bits(k))
	case float64:
		h.WriteUint64(float64bits(k))
	case complex64:
		h.WriteUint32(float32bits(real(k)))
		h.WriteUint32(float32bits(imag(k)))
	case complex128:
		h.WriteUint64(float64bits(real(k)))
		h.WriteUint64(float64bits(imag(k)))
	default:
		h.WriteString(fmt.Sprintf("%v", k))
	}
}

// -0 and +0 compare equal, so they must hash equal.
func float32bits(f float32) uint32 {
	if f == 0 {
		return 0
	}
	return math.Float32bits(f)
}

func float64bits(f float64) uint64 {
	if f == 0 {
		return 0
	}
	return math.Float64bits(f)
}

// Sum64 hashes b as a single byte write under variant v with seed 0.
func Sum64(v Variant, b []byte) uint64 {
	h := New(v, 0)
	h.WriteBytes(b)
	return h.Sum64()
}

// Sum64String is Sum64 for a string.
func Sum64String(v Variant, s string) uint64 {
	h := New(v, 0)
	h.WriteString(s)
	return h.Sum64()
}
