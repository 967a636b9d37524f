package mumhash

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// BuildHasher hands out fresh hashers. Containers call Build once per key.
type BuildHasher interface {
	Build() Hasher
}

// DefaultState builds unseeded hashers. Digests are reproducible across
// processes, which also makes them predictable to an attacker choosing keys.
type DefaultState struct {
	Variant Variant
}

func (s DefaultState) Build() Hasher { return New(s.Variant, 0) }

// SeededState builds hashers that all start from Seed.
type SeededState struct {
	Variant Variant
	Seed    uint64
}

func (s SeededState) Build() Hasher { return New(s.Variant, s.Seed) }

// RandomState is a SeededState whose seed was drawn from the OS when it was
// created. Every hasher it builds shares that seed.
type RandomState struct {
	SeededState
}

// NewRandomState draws a seed for variant v from crypto/rand.
func NewRandomState(v Variant) (RandomState, error) {
	if !v.Valid() {
		return RandomState{}, newOpError("random state", v.String(), ErrUnknownVariant)
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return RandomState{}, newOpError("random state", v.String(), fmt.Errorf("%w: %v", ErrNoEntropy, err))
	}
	return RandomState{SeededState{Variant: v, Seed: binary.LittleEndian.Uint64(buf[:])}}, nil
}

// HashOne builds a hasher, writes key into it and returns the digest.
func HashOne[K comparable](b BuildHasher, key K) uint64 {
	h := b.Build()
	WriteKey(h, key)
	return h.Sum64()
}
