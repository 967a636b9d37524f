package mumhash

import (
	"errors"
	"testing"
)

func TestDefaultStateIsUnseeded(t *testing.T) {
	for _, v := range Variants() {
		if got := HashOne(DefaultState{Variant: v}, "uwu"); got != goldens[v].uwu {
			t.Errorf("%s: got %#x want %#x", v, got, goldens[v].uwu)
		}
	}
}

func TestSeededState(t *testing.T) {
	for _, v := range Variants() {
		s := SeededState{Variant: v, Seed: 42}
		if got := HashOne(s, "uwu"); got != goldens[v].seeded {
			t.Errorf("%s: got %#x want %#x", v, got, goldens[v].seeded)
		}

		// Build hands out fresh, independent hashers.
		a, b := s.Build(), s.Build()
		a.WriteUint8(1)
		if b.Sum64() != New(v, 42).Sum64() {
			t.Errorf("%s: second hasher saw writes to the first", v)
		}
	}
}

func TestRandomState(t *testing.T) {
	a, err := NewRandomState(MumAdd)
	if err != nil {
		t.Fatalf("NewRandomState: %v", err)
	}
	b, err := NewRandomState(MumAdd)
	if err != nil {
		t.Fatalf("NewRandomState: %v", err)
	}
	if a.Seed == b.Seed {
		t.Fatalf("two random states drew the same seed %#x", a.Seed)
	}

	// One state is stable across builds.
	if HashOne(a, "key") != HashOne(a, "key") {
		t.Fatal("random state is not stable across Build calls")
	}
	if HashOne(a, "key") != HashOne(SeededState{Variant: MumAdd, Seed: a.Seed}, "key") {
		t.Fatal("random state does not behave like a seeded state")
	}

	if _, err := NewRandomState(numVariants); !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("NewRandomState(invalid) err = %v", err)
	}
}
