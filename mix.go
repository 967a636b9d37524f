package mumhash

import (
	"encoding/binary"
	"math/bits"
)

// smallInputThreshold is the largest input handled without the block loop.
const smallInputThreshold = 16

// laneKeys holds the starting values of the two lanes used by hashBytes and
// the constant XORed into every second block word. Each hasher variant owns
// its own triple.
type laneKeys struct {
	s0    uint64
	s1    uint64
	guard uint64 // keeps all-zero blocks from collapsing both lanes
}

// multiplyMix folds the full 128-bit product of x and y into 64 bits.
//
// The middle bits of the product (top of lo, bottom of hi) react the most to
// small input changes, XOR brings them together. Addition and subtraction are
// deliberately not used: 2^64+1 and 2^64-1 both have small prime factors.
func multiplyMix(x, y uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	return hi ^ lo
}

// hashBytes folds b into a single word. Inputs up to 16 bytes are read with
// at most two (possibly overlapping) loads; longer inputs run through 16-byte
// blocks and always finish with the last 16 bytes, so every byte is read.
func hashBytes(k laneKeys, b []byte) uint64 {
	n := len(b)
	s0, s1 := k.s0, k.s1

	if n <= smallInputThreshold {
		switch {
		case n >= 8:
			s0 ^= binary.LittleEndian.Uint64(b)
			s1 ^= binary.LittleEndian.Uint64(b[n-8:])
		case n >= 4:
			s0 ^= uint64(binary.LittleEndian.Uint32(b))
			s1 ^= uint64(binary.LittleEndian.Uint32(b[n-4:]))
		case n > 0:
			s0 ^= uint64(b[0])
			s1 ^= uint64(b[n-1])<<8 | uint64(b[n/2])
		}
	} else {
		// s0 and s1 swap roles each block so the two chains stay independent.
		for off := 0; off < n-16; off += 16 {
			x := binary.LittleEndian.Uint64(b[off:])
			y := binary.LittleEndian.Uint64(b[off+8:])
			t := multiplyMix(s0^x, k.guard^y)
			s0, s1 = s1, t
		}
		s0 ^= binary.LittleEndian.Uint64(b[n-16:])
		s1 ^= binary.LittleEndian.Uint64(b[n-8:])
	}

	return multiplyMix(s0, s1) ^ uint64(n)
}

// hashString is hashBytes over the bytes of s without copying them.
func hashString(k laneKeys, s string) uint64 {
	return hashBytes(k, stringBytes(s))
}
