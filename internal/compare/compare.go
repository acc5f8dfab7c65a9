// Package compare generalizes the teacher's byte-slice Compare function type
// (boulder/internal/compare) into a generic comparator so the skip list in
// internal/skiplist can be built over any totally-ordered key type rather
// than only []byte. The Ordered constraint and the pattern of deriving a
// comparator from it follow thebagchi/arena-go's generic skip list, the one
// repo in the retrieved corpus that builds a skip list over type parameters
// instead of bytes.
package compare

import "bytes"

// Compare reports whether a is less than (negative), equal to (zero), or
// greater than (positive) b. The skip list never relies on the magnitude of
// the result, only its sign.
type Compare[K any] func(a, b K) int

// Ordered constrains the built-in types for which `<` already defines a
// total order, so callers of NewOrdered don't need to write a comparator
// for an int or string key by hand.
type Ordered interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}

// NewOrdered returns the natural Compare for any Ordered type.
func NewOrdered[K Ordered]() Compare[K] {
	return func(a, b K) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}

// Bytes compares two byte slices lexicographically. Provided for keys that
// are raw byte strings, the common case for a log-structured memtable index,
// the same role boulder/internal/compare.Compare played for InternalKey.
func Bytes(a, b []byte) int {
	return bytes.Compare(a, b)
}
