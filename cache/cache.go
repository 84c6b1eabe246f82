// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

// Package cache provides a small thread-safe in-memory cache with TTL and
// least-recently-used eviction. weburl uses it to memoize parser output for
// repeated inputs.
package cache

import (
	"sync"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Options configures a cache Manager.
type Options struct {
	MaxEntries int              // Entry limit; the least recently used entry is evicted first. 0 means unbounded.
	TTL        time.Duration    // Time-to-live for entries. 0 means entries never expire.
	Clock      func() time.Time // Time source, defaults to time.Now
}

// Stats tracks cache hit/miss statistics.
type Stats struct {
	Hits      int
	Misses    int
	Evictions int
}

type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Manager is a thread-safe in-memory cache keyed by string.
// Entries are kept oldest-first by last use.
type Manager[V any] struct {
	mu         sync.Mutex
	entries    *orderedmap.OrderedMap[string, entry[V]]
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
	stats      Stats
}

// NewManager creates a new cache manager.
func NewManager[V any](opts Options) *Manager[V] {
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	return &Manager[V]{
		entries:    orderedmap.New[string, entry[V]](),
		maxEntries: opts.MaxEntries,
		ttl:        opts.TTL,
		now:        now,
	}
}

// Get returns the cached value for key and marks it as recently used.
// Expired entries are removed and reported as misses.
func (m *Manager[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	e, ok := m.entries.Get(key)
	if !ok {
		m.stats.Misses++
		return zero, false
	}

	if m.ttl > 0 && m.now().Sub(e.storedAt) > m.ttl {
		m.entries.Delete(key)
		m.stats.Misses++
		return zero, false
	}

	m.entries.Delete(key)
	m.entries.Set(key, e)
	m.stats.Hits++
	return e.value, true
}

// Set stores a value, evicting least recently used entries past MaxEntries.
func (m *Manager[V]) Set(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries.Delete(key)
	m.entries.Set(key, entry[V]{value: value, storedAt: m.now()})

	for m.maxEntries > 0 && m.entries.Len() > m.maxEntries {
		oldest := m.entries.Oldest()
		m.entries.Delete(oldest.Key)
		m.stats.Evictions++
	}
}

// Invalidate removes a specific cache entry.
func (m *Manager[V]) Invalidate(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries.Delete(key)
}

// Clear removes all cache entries. Stats are kept.
func (m *Manager[V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = orderedmap.New[string, entry[V]]()
}

// Len returns the number of stored entries, including expired ones not yet
// observed by Get.
func (m *Manager[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries.Len()
}

// GetStats returns cache hit/miss statistics.
func (m *Manager[V]) GetStats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
