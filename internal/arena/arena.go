// Package arena implements a bump (pointer) allocator that serves many small
// requests out of a handful of pooled blocks and frees them all in a single
// step. It backs the skip list in internal/skiplist: nodes and their forward
// arrays are allocated here and live as long as the arena does.
//
// Adapted from alexhholmes/boulder's internal/arena, which allocated a
// single fixed-size mmap'd buffer up front and served requests by bumping an
// atomic offset into it. That shape doesn't fit this spec: blocks must be
// handed out and reused on demand with no fixed upper bound on total size,
// which a buffer sized once at construction can't do. This version instead
// pools regular Go-allocated byte blocks, growing the block list as needed.
// Those blocks are []byte allocations and therefore noscan: like mmap'd
// memory, the garbage collector never scans them, so a Go pointer stored in
// a block does not keep its target alive (see relocate in
// internal/skiplist/node.go). The block handling
// follows the block-reuse and large-request fallback policy of the arena
// this module was distilled from (see original_source/src/arena.rs).
package arena

import (
	"unsafe"

	"boulder/internal/arch"
)

// BlockSize is the size, in bytes, of a normal block. Allocation requests
// larger than BlockSize/4 bypass block reuse entirely and get a dedicated
// block sized to exactly fit the request.
const BlockSize = 4096

// smallRequestLimit is the largest request size that is still served out of
// a shared BlockSize block. Anything bigger gets its own dedicated block.
const smallRequestLimit = BlockSize / 4

// alignment is the quantum used by AllocateAligned: the larger of 8 bytes
// and a native pointer, matching the alignment requirement of an
// atomic.Pointer stored inside an arena-allocated node.
const alignment = 8

func init() {
	if ptrSize := uint(unsafe.Sizeof(uintptr(0))); ptrSize > alignment {
		panic("arena: alignment constant is smaller than a pointer")
	}
}

// Arena is a single-writer bump allocator. Allocate/AllocateAligned are only
// ever called by the owning SkipList's writer goroutine; MemoryUsage is safe
// to read from any goroutine, concurrently with allocation.
type Arena struct {
	// current is the block currently being bumped from, and remaining is
	// the number of unused bytes left at its tail. Both are touched only
	// by the writer.
	current   []byte
	remaining uint

	// blocks holds every block ever handed out, including dedicated blocks
	// for large requests, in allocation order, so Close can drop them all
	// at once.
	blocks [][]byte

	// memoryUsage is bytes requested from the Go allocator for blocks,
	// including a constant per-block bookkeeping charge. It only grows and
	// is read without synchronizing with the writer, per spec.md §4.1.
	memoryUsage arch.AtomicUint

	closed bool
}

// New returns an empty Arena. No block is allocated until the first
// allocation request.
func New() *Arena {
	return &Arena{}
}

// Allocate returns a byte range of exactly n bytes with no alignment
// guarantee. n must be greater than zero; allocate(0) is a contract
// violation (spec.md §7) and panics.
func (a *Arena) Allocate(n uint) []byte {
	if n == 0 {
		panic("arena: allocate(0) is undefined")
	}

	if n <= a.remaining {
		buf := a.current[:n:n]
		a.current = a.current[n:]
		a.remaining -= n
		return buf
	}

	return a.allocateFallback(n)
}

// AllocateAligned returns a byte range of exactly n bytes whose first byte
// falls on an `alignment`-byte boundary. n must be greater than zero.
func (a *Arena) AllocateAligned(n uint) []byte {
	if n == 0 {
		panic("arena: allocate(0) is undefined")
	}

	padding := a.paddingFor(a.current)
	needed := padding + n
	if needed <= a.remaining {
		a.current = a.current[padding:]
		a.remaining -= padding
		buf := a.current[:n:n]
		a.current = a.current[n:]
		a.remaining -= n
		return buf
	}

	// The fallback always hands back a fresh block, whose first byte
	// (a freshly made []byte's backing array) is allocator-aligned well
	// beyond our 8-byte quantum, so no extra padding is needed here.
	return a.allocateFallback(n)
}

// paddingFor returns the number of bytes that must be skipped at the start
// of buf for its first usable byte to be aligned.
func (a *Arena) paddingFor(buf []byte) uint {
	if len(buf) == 0 {
		return 0
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	mod := uint(addr) & (alignment - 1)
	if mod == 0 {
		return 0
	}
	return alignment - mod
}

// allocateFallback implements the fallback policy of spec.md §4.1: requests
// bigger than smallRequestLimit get a dedicated block sized to exactly fit
// them, leaving the current block (and its remaining small-request space)
// untouched. Everything else abandons whatever's left of the current block
// and starts a fresh BlockSize block.
func (a *Arena) allocateFallback(n uint) []byte {
	if n > smallRequestLimit {
		buf := a.newBlock(n)
		return buf[:n:n]
	}

	a.current = a.newBlock(BlockSize)
	a.remaining = BlockSize

	buf := a.current[:n:n]
	a.current = a.current[n:]
	a.remaining -= n
	return buf
}

// newBlock allocates a fresh block of exactly size bytes, appends it to the
// block list for bulk release, and charges memoryUsage for it.
func (a *Arena) newBlock(size uint) []byte {
	buf := make([]byte, size)
	a.blocks = append(a.blocks, buf)

	// Each new block costs its own bytes plus a pointer-sized bookkeeping
	// charge for its entry in the block list, per spec.md §4.1.
	a.memoryUsage.Add(arch.UintToArchSize(size + uint(unsafe.Sizeof(uintptr(0)))))

	return buf
}

// MemoryUsage returns the cumulative number of bytes requested from the
// underlying allocator for blocks, including per-block bookkeeping. It is
// monotonically non-decreasing for the life of the arena and is safe to
// call from any goroutine.
func (a *Arena) MemoryUsage() uint {
	return uint(a.memoryUsage.Load())
}

// Close releases every block owned by the arena. No pointer previously
// returned by Allocate or AllocateAligned may be dereferenced afterward.
// Close is idempotent and, like the rest of Arena, is only ever called by
// the single writer after all readers are known to be done.
func (a *Arena) Close() {
	if a.closed {
		return
	}
	a.closed = true
	a.current = nil
	a.remaining = 0
	a.blocks = nil
}
