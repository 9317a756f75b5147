package linereader

import (
	"sort"

	"github.com/jtmoon79/s4/internal/blockreader"
)

// OffsetMap is a sorted map keyed by FileOffset, giving the O(log n) range
// queries the spec requires of the lines/syslines maps (§3 "the map is
// ordered so range queries are O(log n)"). Go has no builtin ordered map;
// this is a small sorted-slice index with binary search via sort.Search,
// the same idiom the teacher's own table formatters use for other sorted
// lookups (e.g. AnalyzePrefixes's width computations), generalized here
// into a reusable keyed index.
type OffsetMap[V any] struct {
	keys   []blockreader.FileOffset
	values map[blockreader.FileOffset]V
}

// NewOffsetMap returns an empty ordered map.
func NewOffsetMap[V any]() *OffsetMap[V] {
	return &OffsetMap[V]{values: make(map[blockreader.FileOffset]V)}
}

// Get returns the value stored exactly at key, if any.
func (m *OffsetMap[V]) Get(key blockreader.FileOffset) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Insert adds or overwrites the value at key, maintaining sort order.
func (m *OffsetMap[V]) Insert(key blockreader.FileOffset, v V) {
	if _, exists := m.values[key]; !exists {
		i := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= key })
		m.keys = append(m.keys, 0)
		copy(m.keys[i+1:], m.keys[i:])
		m.keys[i] = key
	}
	m.values[key] = v
}

// Delete removes key from the map.
func (m *OffsetMap[V]) Delete(key blockreader.FileOffset) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	i := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= key })
	if i < len(m.keys) && m.keys[i] == key {
		m.keys = append(m.keys[:i], m.keys[i+1:]...)
	}
}

// CeilingEntry returns the entry with the smallest key >= target, if any.
// This is the primitive behind the §4.2 "search foend_to_fobeg for the
// smallest end >= fo" step.
func (m *OffsetMap[V]) CeilingEntry(target blockreader.FileOffset) (blockreader.FileOffset, V, bool) {
	i := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= target })
	if i >= len(m.keys) {
		var zero V
		return 0, zero, false
	}
	k := m.keys[i]
	return k, m.values[k], true
}

// FloorEntry returns the entry with the largest key <= target, if any. Used
// by the syslinereader binary search to locate the sysline anchoring a
// probe offset.
func (m *OffsetMap[V]) FloorEntry(target blockreader.FileOffset) (blockreader.FileOffset, V, bool) {
	i := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] > target })
	if i == 0 {
		var zero V
		return 0, zero, false
	}
	k := m.keys[i-1]
	return k, m.values[k], true
}

// Len returns the number of entries.
func (m *OffsetMap[V]) Len() int { return len(m.keys) }
