// Package boulder is the public façade over internal/arena and
// internal/skiplist: a concurrent ordered set backed by a skip list whose
// nodes live in a single owned arena. It re-exports just enough of the two
// internal packages to construct and use a set, the same "thin root package
// over internal/ packages" shape the teacher used for its memtable.
//
// A Set admits exactly one writer goroutine calling Insert at a time; any
// number of goroutines may call Contains or read through a Cursor
// concurrently with that writer and with each other. See internal/skiplist
// for the full single-writer/many-reader discipline this relies on.
package boulder

import (
	"boulder/internal/arena"
	"boulder/internal/compare"
	"boulder/internal/skiplist"
)

// Compare reports whether a is less than (negative), equal to (zero), or
// greater than (positive) b.
type Compare[K any] = compare.Compare[K]

// Set is a concurrent ordered set over K.
type Set[K any] struct {
	list *skiplist.SkipList[K]
}

// New constructs an empty Set ordered by cmp. All memory the set ever
// allocates comes from a freshly created, privately owned arena; callers
// never interact with the arena directly.
func New[K any](cmp Compare[K]) *Set[K] {
	return &Set[K]{list: skiplist.New[K](arena.New(), cmp)}
}

// NewOrdered constructs an empty Set over a built-in ordered key type,
// using its natural `<` ordering.
func NewOrdered[K compare.Ordered]() *Set[K] {
	return New[K](compare.NewOrdered[K]())
}

// Contains reports whether key is present in the set.
func (s *Set[K]) Contains(key K) bool {
	return s.list.Contains(key)
}

// Insert adds key to the set. The caller must ensure key is not already
// present and that no other goroutine is concurrently inserting. Inserting
// a duplicate key panics; concurrent inserts are not detected.
func (s *Set[K]) Insert(key K) {
	s.list.Insert(key)
}

// Height returns the set's current skip-list height, mostly useful for
// diagnostics and tests.
func (s *Set[K]) Height() uint {
	return s.list.Height()
}

// MemoryUsage returns the cumulative number of bytes the set's backing
// arena has requested from the Go allocator.
func (s *Set[K]) MemoryUsage() uint {
	return s.list.MemoryUsage()
}

// Validate walks the set's internal structure checking its invariants,
// aggregating every violation it finds into a single error. It is meant for
// tests and diagnostics, not the hot path.
func (s *Set[K]) Validate() error {
	return s.list.Validate()
}

// Close releases every block the set's backing arena holds. No key
// previously inserted may be looked up, and no further Insert may be made,
// once Close returns. Close is idempotent.
func (s *Set[K]) Close() {
	s.list.Close()
}

// Cursor is a position handle for reading a Set in key order. A Cursor is
// not safe to share between goroutines; construct one per reading
// goroutine, same as internal/skiplist.Cursor.
type Cursor[K any] struct {
	cursor *skiplist.Cursor[K]
}

// NewCursor returns a fresh, invalid Cursor over s.
func (s *Set[K]) NewCursor() *Cursor[K] {
	return &Cursor[K]{cursor: skiplist.NewCursor(s.list)}
}

// Valid reports whether the cursor currently points at a real key.
func (c *Cursor[K]) Valid() bool { return c.cursor.Valid() }

// Key returns the key at the cursor's current position. It panics if the
// cursor is invalid.
func (c *Cursor[K]) Key() K { return c.cursor.Key() }

// SeekToFirst positions the cursor at the smallest key in the set.
func (c *Cursor[K]) SeekToFirst() { c.cursor.SeekToFirst() }

// SeekToLast positions the cursor at the largest key in the set.
func (c *Cursor[K]) SeekToLast() { c.cursor.SeekToLast() }

// Seek positions the cursor at the smallest key >= target, or invalidates
// it if every key in the set is less than target.
func (c *Cursor[K]) Seek(target K) { c.cursor.Seek(target) }

// Next advances the cursor to the next larger key, invalidating it if
// already at the largest key. It panics on an invalid cursor.
func (c *Cursor[K]) Next() { c.cursor.Next() }

// Prev moves the cursor to the previous smaller key, invalidating it if
// already at the smallest key. It panics on an invalid cursor.
func (c *Cursor[K]) Prev() { c.cursor.Prev() }
