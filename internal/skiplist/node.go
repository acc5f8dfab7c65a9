package skiplist

import (
	"sync/atomic"
	"unsafe"

	"boulder/internal/arena"
)

const (
	// MaxHeight bounds a node's forward-pointer array length (spec.md §3,
	// §4.2). original_source/src/lib.rs uses the same constant.
	MaxHeight = 12

	// KBranching controls how quickly height probability decays: a node's
	// height is incremented while a uniform draw from [0, KBranching) is 0.
	// With KBranching == 4, expected height is 4/3 (spec.md §4.2).
	KBranching = 4
)

// node is a skip-list node: an immutable key plus a forward-pointer array of
// length exactly height(n), allocated from an Arena and never resized.
// Indices at or beyond a node's height are never accessed, mirroring
// boulder/internal/skiplist's node.tower truncation trick (see newNode) —
// the difference is that a node here holds direct, typed *node pointers
// rather than arena byte offsets, since spec.md §3 requires each forward
// pointer to be "an atomically readable/writable pointer to another Node",
// and the single-writer contract (spec.md §5) removes the need for the
// CAS-based multi-writer publication boulder's pebble-derived tower used.
type node[K any] struct {
	key   K
	tower [MaxHeight]atomic.Pointer[node[K]]
}

// next loads the forward pointer at level with acquire ordering, the
// reader's half of the release/acquire contract in spec.md §4.2.
// atomic.Pointer.Load already provides at least acquire semantics under the
// Go memory model, so no additional barrier is needed here.
func (n *node[K]) next(level int) *node[K] {
	return n.tower[level].Load()
}

// setNext stores the forward pointer at level with release ordering,
// publishing both the pointer itself and every plain (non-atomic) write the
// writer made to the target node before this call — spec.md §4.2's
// "release on the publishing pointer is what synchronizes them into every
// acquiring reader."
func (n *node[K]) setNext(level int, next *node[K]) {
	n.tower[level].Store(next)
}

// height returns the number of valid levels for a node allocated with the
// given byte size, the inverse of nodeSize. Only used by tests that need to
// sanity-check the truncation math; normal code always knows the height it
// asked for.
func height[K any](size uint) uint {
	var zero node[K]
	towerOffset := uint(unsafe.Offsetof(zero.tower))
	linkSize := uint(unsafe.Sizeof(zero.tower[0]))
	return (size - towerOffset) / linkSize
}

// nodeSize returns the number of bytes a node of the given height occupies:
// the fixed header (the key) plus only the forward-pointer slots that will
// actually be used. Node structs declare the maximum-height array so that
// field offsets are compile-time constants, then only the prefix of that
// array up to height is ever allocated — the same "truncate the unused
// tower tail" trick as boulder/internal/skiplist/node.go's newRawNode.
func nodeSize[K any](ht uint) uint {
	var zero node[K]
	towerOffset := uint(unsafe.Offsetof(zero.tower))
	linkSize := uint(unsafe.Sizeof(zero.tower[0]))
	return towerOffset + ht*linkSize
}

// newNode allocates a node of the given height from a, carrying key.
// height must be in [1, MaxHeight]; violating that is a contract violation
// and panics, matching boulder's newNode ("height cannot be less than one
// or greater than the max height").
func newNode[K any](a *arena.Arena, ht uint, key K) *node[K] {
	if ht < 1 || ht > MaxHeight {
		panic("skiplist: height must be between 1 and MaxHeight")
	}

	buf := a.AllocateAligned(nodeSize[K](ht))
	nd := (*node[K])(unsafe.Pointer(&buf[0]))

	// Only the key is written here, with an ordinary (non-atomic) store,
	// before the node is reachable from anywhere; the forward-pointer slots
	// start out nil in the freshly allocated memory and are set by Insert.
	// The key becomes visible to readers only via the release store that
	// later publishes this node into the list (spec.md §4.2).
	nd.key = relocate(a, key)
	return nd
}

// relocate copies a key's indirect storage into a before the key is
// written into the node, per spec.md §6's "the key's storage may be
// relocated into an arena-allocated slot once and never again."
//
// buf (the block newNode's node was carved from) is allocated with
// make([]byte, ...) in internal/arena, so it is a noscan allocation: the
// garbage collector never scans it for embedded pointers. Writing a string
// or []byte value directly into that memory would leave the only live
// reference to its backing array sitting in memory the collector never
// visits — if the caller's own reference to that backing array later goes
// out of scope, the collector can reclaim it out from under the node,
// corrupting the key in place. Copying the bytes into a fresh arena
// allocation and rebuilding the key over that copy avoids this: the copy's
// backing array is itself anchored by Arena.blocks (an ordinary, scanned
// field), independently of whether anything ever scans the node that
// points into it.
//
// This only special-cases the two variable-length key representations the
// public API exposes: string (compare.Ordered's ~string arm, reached
// through NewOrdered[string]) and []byte (compare.Bytes). A custom K that
// embeds its own indirect storage (a struct holding a slice, say) needs
// the same treatment before insertion or must avoid embedding pointers
// altogether; plain value types (ints, floats, fixed-size arrays and
// structs built only from those) hold no indirect storage and pass
// through unchanged.
func relocate[K any](a *arena.Arena, key K) K {
	switch v := any(key).(type) {
	case []byte:
		if len(v) == 0 {
			return key
		}
		cp := a.Allocate(uint(len(v)))
		copy(cp, v)
		return any(cp).(K)
	case string:
		if len(v) == 0 {
			return key
		}
		cp := a.Allocate(uint(len(v)))
		copy(cp, v)
		return any(unsafe.String(&cp[0], len(cp))).(K)
	default:
		return key
	}
}

// newHead allocates the sentinel head node at the maximum height. Its key
// is the zero value of K and is never compared: every search starts by
// following the head's forward pointers, never by reading its key (see
// DESIGN.md's resolution of spec.md §9's first Open Question).
func newHead[K any](a *arena.Arena) *node[K] {
	var zero K
	return newNode[K](a, MaxHeight, zero)
}
