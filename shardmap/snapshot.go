package shardmap

import (
	"fmt"
	"io"

	cbor "github.com/fxamacker/cbor/v2"

	"github.com/unkn0wn-root/mumhash"
)

const snapshotVersion = 1

// Entry is one exported key/value pair. Val holds the codec's encoding.
type Entry[K comparable] struct {
	Key K      `cbor:"k"`
	Val []byte `cbor:"v"`
}

// Snapshot is the on-disk form written by Export. Variant and Seed describe
// the hasher of the exporting map so NewFromSnapshot can recreate the same
// shard layout. Digests themselves are never stored.
type Snapshot[K comparable] struct {
	Version uint8      `cbor:"ver"`
	Variant string     `cbor:"var"`
	Seed    uint64     `cbor:"seed"`
	Entries []Entry[K] `cbor:"e"`
}

// Export writes every entry as a CBOR snapshot, encoding values with codec.
// Shards are read one at a time, so concurrent writers may or may not be
// reflected.
func (m *Map[K, V]) Export(w io.Writer, codec Codec[V]) error {
	snap := Snapshot[K]{
		Version: snapshotVersion,
		Variant: m.state.Variant.String(),
		Seed:    m.state.Seed,
		Entries: make([]Entry[K], 0, m.Len()),
	}

	for _, s := range m.shards {
		s.mu.RLock()
		// Walk LRU order back to front so Import replays recency.
		for e := s.tail.prev; e != s.head; e = e.prev {
			b, err := codec.Encode(e.value)
			if err != nil {
				s.mu.RUnlock()
				return fmt.Errorf("shardmap export: encode value: %w", err)
			}
			snap.Entries = append(snap.Entries, Entry[K]{Key: e.key, Val: b})
		}
		s.mu.RUnlock()
	}

	return cborEnc.NewEncoder(w).Encode(snap)
}

// Import reads a snapshot and Sets every entry. Keys are rehashed with this
// map's own hasher, so the snapshot's variant and seed need not match.
func (m *Map[K, V]) Import(r io.Reader, codec Codec[V]) error {
	snap, err := ReadSnapshot[K](r)
	if err != nil {
		return err
	}
	return m.load(snap, codec)
}

// NewFromSnapshot builds a map that hashes with the snapshot's variant and
// seed, then loads its entries. config's own Variant, Seed and RandomSeed
// are ignored.
func NewFromSnapshot[K comparable, V any](config Config, r io.Reader, codec Codec[V]) (*Map[K, V], error) {
	snap, err := ReadSnapshot[K](r)
	if err != nil {
		return nil, err
	}
	v, err := mumhash.ParseVariant(snap.Variant)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnapshotDecode, err)
	}

	config.Variant = v
	config.Seed = snap.Seed
	config.RandomSeed = false
	m, err := New[K, V](config)
	if err != nil {
		return nil, err
	}
	if err := m.load(snap, codec); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadSnapshot decodes a snapshot without loading it anywhere.
func ReadSnapshot[K comparable](r io.Reader) (Snapshot[K], error) {
	var snap Snapshot[K]
	if err := cbor.NewDecoder(r).Decode(&snap); err != nil {
		return snap, fmt.Errorf("%w: %v", ErrSnapshotDecode, err)
	}
	if snap.Version != snapshotVersion {
		return snap, fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.Version)
	}
	return snap, nil
}

func (m *Map[K, V]) load(snap Snapshot[K], codec Codec[V]) error {
	for _, e := range snap.Entries {
		v, err := codec.Decode(e.Val)
		if err != nil {
			return fmt.Errorf("%w: decode value: %v", ErrSnapshotDecode, err)
		}
		m.Set(e.Key, v)
	}
	return nil
}
