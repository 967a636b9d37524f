// Package shardmap is a concurrent map split into independently locked
// shards. Keys are routed to a shard by a mumhash digest.
package shardmap

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/mumhash"
	"github.com/unkn0wn-root/mumhash/internal/mathutil"
)

const (
	// Sharding: cap shard count, scale by CPUs, and round to power-of-two for mask-based modulo.
	maxShardCount   = 256
	shardMultiplier = 4
)

// Config groups sharding, capacity and hashing options.
type Config struct {
	MaxSize      int64 // 0 => unbounded; otherwise LRU eviction per shard
	ShardCount   int   // 0 => derived from NumCPU
	Variant      mumhash.Variant
	Seed         uint64
	RandomSeed   bool // draw Seed from crypto/rand, overriding Seed
	StatsEnabled bool
}

// DefaultConfig returns an unbounded map hashed with a random MumAdd seed.
func DefaultConfig() Config {
	return Config{
		Variant:      mumhash.MumAdd,
		RandomSeed:   true,
		StatsEnabled: true,
	}
}

// Stats exposes approximate telemetry aggregated across shards.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int64
	Capacity  int64
	HitRatio  float64
	Shards    int
}

// Map is a sharded, lock-based map. The zero value is not usable, call New.
type Map[K comparable, V any] struct {
	shards      []*shard[K, V]
	shardMask   uint64 // shards is power-of-two; mask = shards-1
	config      Config
	state       mumhash.SeededState
	perShardCap int64 // floor(MaxSize / shards); 0 => unlimited
	itemPool    sync.Pool
}

// New builds a map, sizes shards and per-shard capacity, and fixes the seed.
func New[K comparable, V any](config Config) (*Map[K, V], error) {
	if config.MaxSize < 0 || config.ShardCount < 0 {
		return nil, ErrInvalidConfig
	}

	state := mumhash.SeededState{Variant: config.Variant, Seed: config.Seed}
	if config.RandomSeed {
		rs, err := mumhash.NewRandomState(config.Variant)
		if err != nil {
			return nil, err
		}
		state = rs.SeededState
		config.Seed = rs.Seed
		config.RandomSeed = false
	} else if !config.Variant.Valid() {
		return nil, ErrInvalidConfig
	}

	shardCount := config.ShardCount
	if shardCount <= 0 {
		// Over-provision shards to reduce lock contention.
		shardCount = runtime.NumCPU() * shardMultiplier
		if shardCount > maxShardCount {
			shardCount = maxShardCount
		}
	}

	// Guard against zero per-shard capacity when MaxSize is small.
	if config.MaxSize > 0 {
		limit := config.MaxSize
		if limit > int64(maxShardCount) {
			limit = int64(maxShardCount)
		}
		maxPow2 := 1
		for (int64(maxPow2) << 1) <= limit {
			maxPow2 <<= 1
		}
		if shardCount > maxPow2 {
			shardCount = maxPow2
		}
	}
	shardCount = mathutil.NextPowerOf2(shardCount)

	m := &Map[K, V]{
		shards:    make([]*shard[K, V], shardCount),
		shardMask: uint64(shardCount - 1),
		config:    config,
		state:     state,
		itemPool: sync.Pool{
			New: func() any { return &entry[K, V]{} },
		},
	}
	if config.MaxSize > 0 {
		m.perShardCap = config.MaxSize / int64(shardCount)
	}

	capHint := 0
	if m.perShardCap > 0 {
		capHint = int(m.perShardCap)
	}
	for i := range m.shards {
		s := &shard[K, V]{data: make(map[K]*entry[K, V], capHint)}
		s.initLRU()
		m.shards[i] = s
	}
	return m, nil
}

// Hasher returns the hasher factory the map routes keys with.
func (m *Map[K, V]) Hasher() mumhash.BuildHasher { return m.state }

// Config returns the effective configuration, with a drawn seed filled in.
func (m *Map[K, V]) Config() Config { return m.config }

// getShard maps key → shard using hash & mask (fast modulo).
func (m *Map[K, V]) getShard(key K) *shard[K, V] {
	return m.shards[mumhash.HashOne(m.state, key)&m.shardMask]
}

func (m *Map[K, V]) bounded() bool { return m.perShardCap > 0 }

// Get returns the value for key. In a bounded map a hit also marks key as
// most recently used.
func (m *Map[K, V]) Get(key K) (V, bool) {
	var zero V
	s := m.getShard(key)

	if m.bounded() {
		s.mu.Lock()
		defer s.mu.Unlock()
	} else {
		s.mu.RLock()
		defer s.mu.RUnlock()
	}

	e, ok := s.data[key]
	if !ok {
		if m.config.StatsEnabled {
			atomic.AddInt64(&s.misses, 1)
		}
		return zero, false
	}
	if m.bounded() {
		s.moveToLRUHead(e)
	}
	if m.config.StatsEnabled {
		atomic.AddInt64(&s.hits, 1)
	}
	return e.value, true
}

// Set inserts or replaces key. It reports whether another key was evicted
// to make room.
func (m *Map[K, V]) Set(key K, value V) (evicted bool) {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	// In-place update for existing key to preserve list links.
	if e, ok := s.data[key]; ok {
		e.value = value
		s.moveToLRUHead(e)
		return false
	}

	if m.bounded() && atomic.LoadInt64(&s.size) >= m.perShardCap {
		evicted = s.evictLRU(&m.itemPool)
		if evicted && m.config.StatsEnabled {
			atomic.AddInt64(&s.evictions, 1)
		}
	}

	e := m.itemPool.Get().(*entry[K, V])
	e.key = key
	e.value = value
	s.data[key] = e
	s.addToLRUHead(e)
	atomic.AddInt64(&s.size, 1)
	return evicted
}

// Delete removes key and reports whether it was present.
func (m *Map[K, V]) Delete(key K) bool {
	s := m.getShard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return false
	}
	s.remove(e, &m.itemPool)
	return true
}

// Exists checks membership without touching recency or stats.
func (m *Map[K, V]) Exists(key K) bool {
	s := m.getShard(key)
	s.mu.RLock()
	_, ok := s.data[key]
	s.mu.RUnlock()
	return ok
}

// Len sums per-shard sizes via atomic loads (O(shards)).
func (m *Map[K, V]) Len() int64 {
	var n int64
	for _, s := range m.shards {
		n += atomic.LoadInt64(&s.size)
	}
	return n
}

// Keys returns a point-in-time snapshot of keys, shard by shard.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	for _, s := range m.shards {
		s.mu.RLock()
		for k := range s.data {
			keys = append(keys, k)
		}
		s.mu.RUnlock()
	}
	return keys
}

// Range calls fn for every entry until fn returns false. Each shard is read
// locked while it is visited, so fn must not call back into the map.
func (m *Map[K, V]) Range(fn func(K, V) bool) {
	for _, s := range m.shards {
		s.mu.RLock()
		for k, e := range s.data {
			if !fn(k, e.value) {
				s.mu.RUnlock()
				return
			}
		}
		s.mu.RUnlock()
	}
}

// Clear empties every shard and resets its LRU list.
func (m *Map[K, V]) Clear() {
	for _, s := range m.shards {
		s.mu.Lock()
		for _, e := range s.data {
			*e = entry[K, V]{}
			m.itemPool.Put(e)
		}
		s.data = make(map[K]*entry[K, V])
		s.initLRU()
		atomic.StoreInt64(&s.size, 0)
		s.mu.Unlock()
	}
}

// Stats aggregates counters and computes hit ratio.
func (m *Map[K, V]) Stats() Stats {
	st := Stats{
		Size:     m.Len(),
		Capacity: m.config.MaxSize,
		Shards:   len(m.shards),
	}
	if !m.config.StatsEnabled {
		return st
	}
	for _, s := range m.shards {
		st.Hits += atomic.LoadInt64(&s.hits)
		st.Misses += atomic.LoadInt64(&s.misses)
		st.Evictions += atomic.LoadInt64(&s.evictions)
	}
	if total := st.Hits + st.Misses; total > 0 {
		st.HitRatio = float64(st.Hits) / float64(total)
	}
	return st
}

// ShardLoads returns the number of entries in each shard, in shard order.
func (m *Map[K, V]) ShardLoads() []int64 {
	out := make([]int64, len(m.shards))
	for i, s := range m.shards {
		out[i] = atomic.LoadInt64(&s.size)
	}
	return out
}
