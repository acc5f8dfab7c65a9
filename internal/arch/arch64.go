//go:build amd64 || arm64

// Package arch hides the native word size behind a pair of type aliases so
// that the arena's memory-usage counter and the skip list's height counter
// use the widest lock-free atomic available on the target, without every
// caller needing its own build tags.
package arch

import "sync/atomic"

type (
	AtomicInt  = atomic.Int64
	AtomicUint = atomic.Uint64
)

func IntToArchSize(n int) int64 {
	return int64(n)
}

func UintToArchSize(n uint) uint64 {
	return uint64(n)
}
