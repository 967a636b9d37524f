// Package quality measures how well a 64-bit hash spreads its input: the
// strict avalanche criterion and low-bit bucket occupancy, which is what a
// power-of-two hash table sees.
package quality

import (
	"errors"
	"math"
	"math/bits"
	"math/rand"
	"strconv"
	"time"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/unkn0wn-root/mumhash"
	"github.com/unkn0wn-root/mumhash/internal/mathutil"
)

var ErrBucketCount = errors.New("bucket count must be a power of two")

// Func hashes one input. Implementations must be deterministic.
type Func func([]byte) uint64

// Named pairs a hash function with the label reports use for it.
type Named struct {
	Name string
	Fn   Func
}

// VariantFunc hashes its input as one WriteBytes under variant v.
func VariantFunc(v mumhash.Variant, seed uint64) Func {
	return func(b []byte) uint64 {
		h := mumhash.New(v, seed)
		h.WriteBytes(b)
		return h.Sum64()
	}
}

// Baselines returns every mumhash variant under seed plus xxhash64 as the
// reference point.
func Baselines(seed uint64) []Named {
	out := make([]Named, 0, 4)
	for _, v := range mumhash.Variants() {
		out = append(out, Named{Name: v.String(), Fn: VariantFunc(v, seed)})
	}
	return append(out, Named{Name: "xxhash", Fn: xxhash.Sum64})
}

// AvalancheReport summarises how often each output bit flips when a single
// input bit flips. Bias is |2p-1|: 0 is ideal, 1 means the output bit never
// (or always) reacts.
type AvalancheReport struct {
	InputLen int     `cbor:"len"`
	Trials   int     `cbor:"trials"`
	MaxBias  float64 `cbor:"max"`
	MeanBias float64 `cbor:"mean"`
	// WorstIn and WorstOut locate MaxBias (input bit, output bit).
	WorstIn  int `cbor:"win"`
	WorstOut int `cbor:"wout"`
}

// Avalanche hashes trials random inputs of inputLen bytes, flips each input
// bit in turn and records which output bits change.
func Avalanche(f Func, inputLen, trials int, rnd *rand.Rand) AvalancheReport {
	rep := AvalancheReport{InputLen: inputLen, Trials: trials}
	if inputLen <= 0 || trials <= 0 {
		return rep
	}

	inBits := inputLen * 8
	counts := make([][64]int, inBits)
	buf := make([]byte, inputLen)

	for t := 0; t < trials; t++ {
		rnd.Read(buf)
		h0 := f(buf)
		for i := 0; i < inBits; i++ {
			buf[i/8] ^= 1 << (i % 8)
			diff := h0 ^ f(buf)
			buf[i/8] ^= 1 << (i % 8)

			for diff != 0 {
				j := bits.TrailingZeros64(diff)
				counts[i][j]++
				diff &= diff - 1
			}
		}
	}

	var sum float64
	for i := range counts {
		for j, c := range counts[i] {
			bias := math.Abs(2*float64(c)/float64(trials) - 1)
			sum += bias
			if bias > rep.MaxBias {
				rep.MaxBias, rep.WorstIn, rep.WorstOut = bias, i, j
			}
		}
	}
	rep.MeanBias = sum / float64(inBits*64)
	return rep
}

// Distribution describes bucket occupancy for hash & (Buckets-1).
type Distribution struct {
	Keys      int     `cbor:"keys"`
	Buckets   int     `cbor:"buckets"`
	ChiSquare float64 `cbor:"chi2"`
	MaxLoad   int     `cbor:"max"`
	Empty     int     `cbor:"empty"`
}

// Expected is the ideal per-bucket load.
func (d Distribution) Expected() float64 {
	if d.Buckets == 0 {
		return 0
	}
	return float64(d.Keys) / float64(d.Buckets)
}

// Buckets places keys with the low bits of f and measures the spread.
// A uniform hash gives a chi-square close to nbuckets-1.
func Buckets(f Func, keys [][]byte, nbuckets int) (Distribution, error) {
	if !mathutil.IsPowerOf2(nbuckets) {
		return Distribution{}, ErrBucketCount
	}

	mask := uint64(nbuckets - 1)
	loads := make([]int, nbuckets)
	for _, k := range keys {
		loads[f(k)&mask]++
	}

	d := Distribution{Keys: len(keys), Buckets: nbuckets}
	exp := d.Expected()
	for _, l := range loads {
		if l > d.MaxLoad {
			d.MaxLoad = l
		}
		if l == 0 {
			d.Empty++
		}
		if exp > 0 {
			diff := float64(l) - exp
			d.ChiSquare += diff * diff / exp
		}
	}
	return d, nil
}

// SequentialKeys returns n keys of the form prefix + decimal index, the
// shape that trips up weak table hashes.
func SequentialKeys(prefix string, n int) [][]byte {
	keys := make([][]byte, n)
	for i := range keys {
		k := make([]byte, 0, len(prefix)+10)
		k = append(k, prefix...)
		keys[i] = strconv.AppendInt(k, int64(i), 10)
	}
	return keys
}

// Throughput is the measured speed of one function at one input size.
type Throughput struct {
	Size     int     `cbor:"size"`
	Ops      int64   `cbor:"ops"`
	NsPerOp  float64 `cbor:"ns"`
	MBPerSec float64 `cbor:"mbs"`
}

var sink uint64

// Measure calls f on a size-byte input in batches until at least d has
// passed.
func Measure(f Func, size int, d time.Duration) Throughput {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = byte(i*7 + 1)
	}

	const batch = 1024
	var (
		ops   int64
		acc   uint64
		start = time.Now()
	)
	for {
		for i := 0; i < batch; i++ {
			acc += f(buf)
		}
		ops += batch
		if time.Since(start) >= d {
			break
		}
	}
	elapsed := time.Since(start)
	sink += acc

	tp := Throughput{Size: size, Ops: ops}
	tp.NsPerOp = float64(elapsed.Nanoseconds()) / float64(ops)
	if secs := elapsed.Seconds(); secs > 0 {
		tp.MBPerSec = float64(int64(size)*ops) / secs / 1e6
	}
	return tp
}
