package mumhash

// entropy is a fixed buffer of random bits (the fractional hex digits of pi)
// that MumAddHasher steps through in place of a real RNG. Adding a fresh word
// per write keeps the additive structure free of swap collisions:
// mix(a, k0) + mix(b, k1) differs from mix(b, k0) + mix(a, k1).
var entropy = [16]uint64{
	0x243f6a8885a308d3, 0x13198a2e03707344, 0xa4093822299f31d0, 0x082efa98ec4e6c89,
	0x452821e638d01377, 0xbe5466cf34e90c6c, 0xc0ac29b7c97c50dd, 0x3f84d5b5b5470917,
	0x9216d5d98979fb1b, 0xd1310ba698dfb5ac, 0x2ffd72dbd01adfb7, 0xb8e1afed6a267e96,
	0xba7c9045f12c7f99, 0x24a19947b3916cf7, 0x0801f2e2858efc16, 0x636920d871574e69,
}

// Further digits of pi.
var mumAddLanes = laneKeys{
	s0:    0xa458fea3f4933d7e,
	s1:    0x0d95748f728eb658,
	guard: 0x718bcd5882154aee,
}

// MumAddHasher adds multiply-mixed words into an accumulator. Writes do not
// depend on each other's result, which lets the CPU overlap them.
//
// After 16 writes the entropy buffer wraps, so the stream becomes a + i*sum
// for some a. multiplyMix hides that unless the input is built to target it.
type MumAddHasher struct {
	hash uint64
	rng  uint64
	idx  uint8 // next entropy word, always < len(entropy)
	seed uint64
}

var _ Hasher = (*MumAddHasher)(nil)

// NewMumAdd returns a MumAddHasher with seed 0.
func NewMumAdd() MumAddHasher { return MumAddHasher{} }

// NewMumAddWithSeed returns a MumAddHasher whose accumulator and RNG both
// start at seed.
func NewMumAddWithSeed(seed uint64) MumAddHasher {
	return MumAddHasher{hash: seed, rng: seed, seed: seed}
}

func (h *MumAddHasher) next() uint64 {
	h.rng += entropy[h.idx]
	h.idx = (h.idx + 1) % uint8(len(entropy))
	return h.rng
}

func (h *MumAddHasher) add(x uint64) {
	h.hash += multiplyMix(x, h.next())
}

func (h *MumAddHasher) addPair(x, y uint64) {
	// Draw order matters: x takes the first word.
	a := h.next()
	b := h.next()
	h.hash += multiplyMix(x^a, y^b)
}

func (h *MumAddHasher) WriteBytes(b []byte)   { h.add(hashBytes(mumAddLanes, b)) }
func (h *MumAddHasher) WriteString(s string)  { h.add(hashString(mumAddLanes, s)) }
func (h *MumAddHasher) WriteUint8(v uint8)    { h.add(uint64(v)) }
func (h *MumAddHasher) WriteUint16(v uint16)  { h.add(uint64(v)) }
func (h *MumAddHasher) WriteUint32(v uint32)  { h.add(uint64(v)) }
func (h *MumAddHasher) WriteUint64(v uint64)  { h.add(v) }
func (h *MumAddHasher) WriteUint(v uint)      { h.add(uint64(v)) }
func (h *MumAddHasher) WriteLengthPrefix(int) {}
func (h *MumAddHasher) Sum64() uint64         { return h.hash }
func (h *MumAddHasher) Reset()                { *h = NewMumAddWithSeed(h.seed) }
func (h *MumAddHasher) Clone() Hasher         { c := *h; return &c }

// WriteUint128 mixes both halves in a single step using two entropy words.
func (h *MumAddHasher) WriteUint128(hi, lo uint64) { h.addPair(lo, hi) }
