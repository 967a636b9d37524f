package shardmap

import (
	"sync"
	"sync/atomic"
)

// entry is the node stored in shard maps and the LRU list.
type entry[K comparable, V any] struct {
	key   K
	value V
	prev  *entry[K, V]
	next  *entry[K, V]
}

// shard represents a map partition to reduce lock contention.
type shard[K comparable, V any] struct {
	mu        sync.RWMutex
	data      map[K]*entry[K, V]
	head      *entry[K, V] // LRU head (most recently used)
	tail      *entry[K, V] // LRU tail (least recently used)
	size      int64
	hits      int64
	misses    int64
	evictions int64
}

// initLRU links fresh head and tail sentinels so insert and unlink never
// check for nil neighbours.
func (s *shard[K, V]) initLRU() {
	s.head = &entry[K, V]{}
	s.tail = &entry[K, V]{}
	s.head.next = s.tail
	s.tail.prev = s.head
}

func (s *shard[K, V]) addToLRUHead(e *entry[K, V]) {
	oldNext := s.head.next
	s.head.next = e
	e.next = oldNext
	e.prev = s.head
	oldNext.prev = e
}

func (s *shard[K, V]) removeFromLRU(e *entry[K, V]) {
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (s *shard[K, V]) moveToLRUHead(e *entry[K, V]) {
	if s.head.next == e {
		return
	}
	s.removeFromLRU(e)
	s.addToLRUHead(e)
}

// remove unlinks e, drops it from data and recycles it. Caller holds mu.
func (s *shard[K, V]) remove(e *entry[K, V], pool *sync.Pool) {
	delete(s.data, e.key)
	s.removeFromLRU(e)
	*e = entry[K, V]{}
	pool.Put(e)
	atomic.AddInt64(&s.size, -1)
}

// evictLRU drops the least recently used entry. Caller holds mu.
func (s *shard[K, V]) evictLRU(pool *sync.Pool) bool {
	victim := s.tail.prev
	if victim == s.head {
		return false
	}
	s.remove(victim, pool)
	return true
}
