package mumhash

import "math/bits"

// Digits of pi.
var multilinearLanes = laneKeys{
	s0:    0x243f6a8885a308d3,
	s1:    0x13198a2e03707344,
	guard: 0x452821e638d01377,
}

const (
	multilinearRngA = 0xa4093822299f31d0
	multilinearRngB = 0x082efa98ec4e6c89

	multilinearRot = 27
)

// MultilinearHasher multiplies every word by a fresh odd number from a small
// non-linear PRNG and adds the product into the accumulator.
//
// 128-bit writes are two scalar writes, low half first.
type MultilinearHasher struct {
	hash uint64
	rngA uint64
	rngB uint64
	seed uint64
}

var _ Hasher = (*MultilinearHasher)(nil)

// NewMultilinear returns a MultilinearHasher with seed 0.
func NewMultilinear() MultilinearHasher { return NewMultilinearWithSeed(0) }

// NewMultilinearWithSeed XORs seed into the accumulator and both PRNG words.
func NewMultilinearWithSeed(seed uint64) MultilinearHasher {
	return MultilinearHasher{
		hash: seed,
		rngA: seed ^ multilinearRngA,
		rngB: seed ^ multilinearRngB,
		seed: seed,
	}
}

// next is a mediocre RNG, but it must not be linear or the whole hash
// degrades to a plain sum.
func (h *MultilinearHasher) next() uint64 {
	h.rngB += h.rngA
	h.rngA ^= bits.RotateLeft64(h.rngB, -multilinearRot)
	return h.rngA
}

func (h *MultilinearHasher) add(x uint64) {
	// |1 keeps the multiplier odd, hence invertible mod 2^64.
	h.hash += x * (h.next() | 1)
}

func (h *MultilinearHasher) WriteBytes(b []byte)   { h.add(hashBytes(multilinearLanes, b)) }
func (h *MultilinearHasher) WriteString(s string)  { h.add(hashString(multilinearLanes, s)) }
func (h *MultilinearHasher) WriteUint8(v uint8)    { h.add(uint64(v)) }
func (h *MultilinearHasher) WriteUint16(v uint16)  { h.add(uint64(v)) }
func (h *MultilinearHasher) WriteUint32(v uint32)  { h.add(uint64(v)) }
func (h *MultilinearHasher) WriteUint64(v uint64)  { h.add(v) }
func (h *MultilinearHasher) WriteUint(v uint)      { h.add(uint64(v)) }
func (h *MultilinearHasher) WriteLengthPrefix(int) {}
func (h *MultilinearHasher) Sum64() uint64         { return h.hash }
func (h *MultilinearHasher) Reset()                { *h = NewMultilinearWithSeed(h.seed) }
func (h *MultilinearHasher) Clone() Hasher         { c := *h; return &c }

func (h *MultilinearHasher) WriteUint128(hi, lo uint64) {
	h.add(lo)
	h.add(hi)
}
