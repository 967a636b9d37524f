package mumhash

import (
	"bytes"
	"fmt"
	"testing"
)

func TestMultiplyMix(t *testing.T) {
	tests := []struct {
		x, y uint64
		want uint64
	}{
		{0, 0, 0},
		{0, 0xdeadbeefcafebabe, 0},
		{1, 0xdeadbeefcafebabe, 0xdeadbeefcafebabe},
		{1 << 32, 1 << 32, 1},                // hi=1, lo=0
		{^uint64(0), ^uint64(0), ^uint64(0)}, // hi=2^64-2, lo=1
		{^uint64(0), 2, ^uint64(0)},          // hi=1, lo=2^64-2
	}

	for _, tt := range tests {
		if got := multiplyMix(tt.x, tt.y); got != tt.want {
			t.Errorf("multiplyMix(%#x, %#x) = %#x, want %#x", tt.x, tt.y, got, tt.want)
		}
		if got := multiplyMix(tt.y, tt.x); got != tt.want {
			t.Errorf("multiplyMix(%#x, %#x) not symmetric: %#x", tt.y, tt.x, got)
		}
	}
}

type boundaryWant struct {
	n                  int
	zero, ones, ascend uint64
}

// Golden values for every branch edge of hashBytes, per variant lane set.
var boundaryTests = []struct {
	name string
	keys laneKeys
	want []boundaryWant
}{
	{
		name: "mumAdd",
		keys: mumAddLanes,
		want: []boundaryWant{
			{0, 0x8355b3220b442b5c, 0x8355b3220b442b5c, 0x8355b3220b442b5c},
			{1, 0x8355b3220b442b5d, 0x8f00905feb58be63, 0x8355b3220b442b5d},
			{3, 0x8355b3220b442b5f, 0x8f00905feb58be61, 0x76f10ce9352c6209},
			{4, 0x8355b3220b442b58, 0x3d5dd15ea73aa21c, 0x7bc968566ded7d71},
			{7, 0x8355b3220b442b5b, 0x3d5dd15ea73aa21f, 0x987dd39c19f61f59},
			{8, 0x8355b3220b442b54, 0x6b1633bbd300031a, 0x04284494642f8a1d},
			{15, 0x8355b3220b442b53, 0x6b1633bbd300031d, 0xb2f885bdd341a1ee},
			{16, 0x8355b3220b442b4c, 0x6b1633bbd3000302, 0x02ea332202c72713},
			{17, 0x2e21a61f7e6ea993, 0x88651a5e7e2388dd, 0x2051848cd72d5d05},
			{32, 0x2e21a61f7e6ea9a2, 0x88651a5e7e2388ec, 0x7067be72e2fe7e19},
			{33, 0xb8487ad4fc285b0e, 0x83c05ed04af791b0, 0x7af0eace5c21e842},
		},
	},
	{
		name: "multilinear",
		keys: multilinearLanes,
		want: []boundaryWant{
			{0, 0xbc13060e2d1aac79, 0xbc13060e2d1aac79, 0xbc13060e2d1aac79},
			{1, 0xbc13060e2d1aac78, 0x51545988e1409921, 0xbc13060e2d1aac78},
			{3, 0xbc13060e2d1aac7a, 0x51545988e1409923, 0x66a5fc8b6da90ef1},
			{4, 0xbc13060e2d1aac7d, 0x8637216bc456cd00, 0xef5fdf7de52a98f2},
			{7, 0xbc13060e2d1aac7e, 0x8637216bc456cd03, 0x834d638cf2427b01},
			{8, 0xbc13060e2d1aac71, 0x3d5b14a929d48c70, 0x503376c58048ffd7},
			{15, 0xbc13060e2d1aac76, 0x3d5b14a929d48c77, 0xe2ae8bff60a1dfb6},
			{16, 0xbc13060e2d1aac69, 0x3d5b14a929d48c68, 0x27345d07a1f33e57},
			{17, 0xa9a736fb61214d53, 0xa2ada988d53545f6, 0xfb63c88d8bb3e89a},
			{32, 0xa9a736fb61214d62, 0xa2ada988d53545c7, 0xdf5a4c1273308c76},
			{33, 0x620f3ff27a9e4aac, 0x359e067b9017042b, 0x1dc1bb72eefa3e1c},
		},
	},
	{
		name: "poly",
		keys: polyLanes,
		want: []boundaryWant{
			{0, 0xbc13060e2d1aac79, 0xbc13060e2d1aac79, 0xbc13060e2d1aac79},
			{1, 0xbc13060e2d1aac78, 0x51545988e1409921, 0xbc13060e2d1aac78},
			{3, 0xbc13060e2d1aac7a, 0x51545988e1409923, 0x66a5fc8b6da90ef1},
			{4, 0xbc13060e2d1aac7d, 0x8637216bc456cd00, 0xef5fdf7de52a98f2},
			{7, 0xbc13060e2d1aac7e, 0x8637216bc456cd03, 0x834d638cf2427b01},
			{8, 0xbc13060e2d1aac71, 0x3d5b14a929d48c70, 0x503376c58048ffd7},
			{15, 0xbc13060e2d1aac76, 0x3d5b14a929d48c77, 0xe2ae8bff60a1dfb6},
			{16, 0xbc13060e2d1aac69, 0x3d5b14a929d48c68, 0x27345d07a1f33e57},
			{17, 0x112463e8fdb2da04, 0x90445d806ac613ed, 0x817f39f785df7f17},
			{32, 0x112463e8fdb2da35, 0x90445d806ac613dc, 0xc0ac448a25fbd897},
			{33, 0x950212f7dcc92e66, 0xb015bd08ccaa5637, 0xc5bec7e75911fa3b},
		},
	},
}

func TestHashBytesBoundaries(t *testing.T) {
	for _, tt := range boundaryTests {
		for _, w := range tt.want {
			t.Run(fmt.Sprintf("%s/len_%d", tt.name, w.n), func(t *testing.T) {
				if got := hashBytes(tt.keys, make([]byte, w.n)); got != w.zero {
					t.Errorf("zeros: got %#016x want %#016x", got, w.zero)
				}
				if got := hashBytes(tt.keys, bytes.Repeat([]byte{0xff}, w.n)); got != w.ones {
					t.Errorf("0xff: got %#016x want %#016x", got, w.ones)
				}
				if got := hashBytes(tt.keys, ascending(w.n)); got != w.ascend {
					t.Errorf("ascending: got %#016x want %#016x", got, w.ascend)
				}
			})
		}
	}
}

func TestHashBytesEmptyIsLaneMix(t *testing.T) {
	for _, k := range []laneKeys{mumAddLanes, multilinearLanes, polyLanes} {
		if got, want := hashBytes(k, nil), multiplyMix(k.s0, k.s1); got != want {
			t.Errorf("hashBytes(nil) = %#x, want %#x", got, want)
		}
		if hashBytes(k, nil) != hashBytes(k, []byte{}) {
			t.Error("nil and empty slice differ")
		}
	}
}

func TestHashBytesLengthSensitive(t *testing.T) {
	// Zero-filled inputs share all their content, only the length differs.
	for _, k := range []laneKeys{mumAddLanes, multilinearLanes, polyLanes} {
		seen := make(map[uint64]int)
		for n := 0; n <= 128; n++ {
			h := hashBytes(k, make([]byte, n))
			if prev, ok := seen[h]; ok {
				t.Errorf("zero inputs of length %d and %d collide: %#x", prev, n, h)
			}
			seen[h] = n
		}
	}
}

func TestHashBytesEveryByteCounts(t *testing.T) {
	// Flipping any single byte must change the digest, including bytes only
	// covered by the overlapping tail read.
	for _, k := range []laneKeys{mumAddLanes, multilinearLanes, polyLanes} {
		for _, n := range []int{1, 2, 3, 4, 5, 7, 8, 9, 15, 16, 17, 31, 32, 33, 47, 48, 100} {
			base := ascending(n)
			h0 := hashBytes(k, base)
			for i := 0; i < n; i++ {
				mod := append([]byte(nil), base...)
				mod[i] ^= 0x80
				if hashBytes(k, mod) == h0 {
					t.Errorf("len %d: flipping byte %d did not change the digest", n, i)
				}
			}
		}
	}
}

func TestHashStringMatchesBytes(t *testing.T) {
	for _, s := range []string{"", "a", "uwu", "hello, world", "These are some bytes for testing rustc_hash."} {
		if hashString(mumAddLanes, s) != hashBytes(mumAddLanes, []byte(s)) {
			t.Errorf("hashString(%q) differs from hashBytes", s)
		}
	}
}

func TestHashBytesDoesNotAllocate(t *testing.T) {
	buf := ascending(100)
	allocs := testing.AllocsPerRun(100, func() {
		_ = hashBytes(polyLanes, buf)
		_ = hashString(polyLanes, "not allocating")
	})
	if allocs != 0 {
		t.Errorf("hashBytes allocated %.1f times per run", allocs)
	}
}

func ascending(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}
