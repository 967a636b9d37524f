package mumhash

import "math/bits"

var polyLanes = laneKeys{
	s0:    0x243f6a8885a308d3,
	s1:    0x13198a2e03707344,
	guard: 0xa4093822299f31d0,
}

const (
	// polyK is an LCG multiplier from Steele & Vigna, "Computationally Easy,
	// Spectrally Good Multipliers for Congruential Pseudorandom Number
	// Generators".
	polyK = 0xf1357aea2e62a9c5

	// polyFinishRot moves the high bits, where a multiplicative hash keeps
	// its entropy, down to the bits hash tables mask for a bucket. 20 gives
	// good buckets up to 2^20 slots.
	polyFinishRot = 20
)

// PolyHasher evaluates hash = (hash + x) * K per word.
//
// 128-bit writes are two scalar writes, low half first.
type PolyHasher struct {
	hash uint64
	seed uint64
}

var _ Hasher = (*PolyHasher)(nil)

// NewPoly returns a PolyHasher with seed 0.
func NewPoly() PolyHasher { return PolyHasher{} }

// NewPolyWithSeed starts the accumulator at seed.
func NewPolyWithSeed(seed uint64) PolyHasher {
	return PolyHasher{hash: seed, seed: seed}
}

func (h *PolyHasher) add(x uint64) {
	h.hash = (h.hash + x) * polyK
}

func (h *PolyHasher) WriteBytes(b []byte)   { h.add(hashBytes(polyLanes, b)) }
func (h *PolyHasher) WriteString(s string)  { h.add(hashString(polyLanes, s)) }
func (h *PolyHasher) WriteUint8(v uint8)    { h.add(uint64(v)) }
func (h *PolyHasher) WriteUint16(v uint16)  { h.add(uint64(v)) }
func (h *PolyHasher) WriteUint32(v uint32)  { h.add(uint64(v)) }
func (h *PolyHasher) WriteUint64(v uint64)  { h.add(v) }
func (h *PolyHasher) WriteUint(v uint)      { h.add(uint64(v)) }
func (h *PolyHasher) WriteLengthPrefix(int) {}
func (h *PolyHasher) Reset()                { *h = NewPolyWithSeed(h.seed) }
func (h *PolyHasher) Clone() Hasher         { c := *h; return &c }

func (h *PolyHasher) WriteUint128(hi, lo uint64) {
	h.add(lo)
	h.add(hi)
}

func (h *PolyHasher) Sum64() uint64 {
	return bits.RotateLeft64(h.hash, polyFinishRot)
}
