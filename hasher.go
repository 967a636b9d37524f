package mumhash

import (
	"strconv"
	"strings"
)

// Hasher is the streaming contract shared by every variant.
//
// Each Write* call is one step of the hash: unlike hash.Hash, writing "ab"
// followed by "c" is not the same as writing "abc". Callers hashing composite
// values should write each field with the method matching its type.
type Hasher interface {
	WriteBytes(b []byte)
	WriteString(s string)
	WriteUint8(v uint8)
	WriteUint16(v uint16)
	WriteUint32(v uint32)
	WriteUint64(v uint64)
	// WriteUint widens v to 64 bits, so digests do not depend on the
	// platform word size.
	WriteUint(v uint)
	WriteUint128(hi, lo uint64)
	// WriteLengthPrefix is a no-op: WriteBytes already folds the length in.
	WriteLengthPrefix(n int)

	// Sum64 returns the digest so far. It does not change the state.
	Sum64() uint64
	// Reset restores the state New returned, seed included.
	Reset()
	// Clone returns an independent copy, for hashing a shared prefix once.
	Clone() Hasher
}

// Variant selects the per-write mixing strategy.
type Variant uint8

const (
	MumAdd      Variant = iota // additive, multiply-mixed with an entropy buffer
	Multilinear                // multiplicative with a two-word PRNG
	Poly                       // polynomial / LCG

	numVariants
)

var variantNames = [numVariants]string{
	MumAdd:      "mumadd",
	Multilinear: "multilinear",
	Poly:        "poly",
}

func (v Variant) String() string {
	if v < numVariants {
		return variantNames[v]
	}
	return "variant(" + strconv.Itoa(int(v)) + ")"
}

// Valid reports whether v is one of the declared variants.
func (v Variant) Valid() bool { return v < numVariants }

// Variants lists every supported variant in declaration order.
func Variants() []Variant {
	return []Variant{MumAdd, Multilinear, Poly}
}

// ParseVariant maps a name (case-insensitive) to a Variant. "fx" and
// "default" name MumAdd.
func ParseVariant(name string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mumadd", "mum-add", "fx", "default":
		return MumAdd, nil
	case "multilinear":
		return Multilinear, nil
	case "poly", "polynomial":
		return Poly, nil
	}
	return 0, newOpError("parse", name, ErrUnknownVariant)
}

// New returns a hasher of variant v seeded with seed. It panics if v is not
// one of the declared variants.
func New(v Variant, seed uint64) Hasher {
	switch v {
	case MumAdd:
		h := NewMumAddWithSeed(seed)
		return &h
	case Multilinear:
		h := NewMultilinearWithSeed(seed)
		return &h
	case Poly:
		h := NewPolyWithSeed(seed)
		return &h
	}
	panic(newOpError("new", v.String(), ErrUnknownVariant))
}
