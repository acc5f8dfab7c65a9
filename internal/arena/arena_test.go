package arena

import (
	"math/rand"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// TestArenaEmpty mirrors spec.md §8 scenario S1's expectation that a fresh
// Arena is usable with nothing allocated yet.
func TestArenaEmpty(t *testing.T) {
	a := New()
	require.Zero(t, a.MemoryUsage())
}

// TestAllocateZeroPanics checks the one documented contract violation of
// Allocate/AllocateAligned (spec.md §7, §8 property 1).
func TestAllocateZeroPanics(t *testing.T) {
	a := New()
	require.Panics(t, func() { a.Allocate(0) })
	require.Panics(t, func() { a.AllocateAligned(0) })
}

// TestAlignment checks spec.md §8 property 5: every AllocateAligned result
// is aligned to the arena's alignment quantum.
func TestAlignment(t *testing.T) {
	a := New()
	for i := 0; i < 5000; i++ {
		n := uint(1 + rand.Intn(200))
		buf := a.AllocateAligned(n)
		require.Len(t, buf, int(n))
		addr := uintptr(unsafe.Pointer(&buf[0]))
		require.Zero(t, addr%alignment, "allocation %d of size %d misaligned", i, n)
	}
}

// TestArenaStress mirrors spec.md §8 scenario S5 and
// original_source/src/arena.rs's test_arena_simple: interleave many
// allocations of mixed sizes, occasionally large enough to hit the
// dedicated-block fallback, and check that every byte written is read back
// unchanged and that the memory-usage counter tracks requested bytes within
// the documented 10% overhead bound.
func TestArenaStress(t *testing.T) {
	a := New()
	rnd := rand.New(rand.NewSource(301))

	const n = 100_000
	type allocation struct {
		size uint
		buf  []byte
	}
	allocations := make([]allocation, 0, n)

	var bytesRequested uint
	for i := 0; i < n; i++ {
		var size uint
		switch {
		case i%(n/10) == 0:
			size = uint(i)
		case rnd.Float64() < 1.0/4000.0:
			size = uint(rnd.Intn(6000))
		case rnd.Float64() < 0.1:
			size = uint(rnd.Intn(100))
		default:
			size = uint(rnd.Intn(20))
		}
		if size == 0 {
			size = 1
		}

		var buf []byte
		if rnd.Float64() < 0.1 {
			buf = a.AllocateAligned(size)
		} else {
			buf = a.Allocate(size)
		}

		for b := range buf {
			buf[b] = byte(i % 256)
		}

		bytesRequested += size
		allocations = append(allocations, allocation{size: size, buf: buf})

		require.GreaterOrEqualf(t, a.MemoryUsage(), bytesRequested,
			"memory_usage must be >= cumulative bytes requested (property 3)")
		if i > n/10 {
			require.LessOrEqualf(t, float64(a.MemoryUsage()), float64(bytesRequested)*1.10,
				"memory_usage must stay within 10%% overhead after warmup (property 4)")
		}
	}

	for i, al := range allocations {
		for b, got := range al.buf {
			require.Equal(t, byte(i%256), got, "allocation %d byte %d corrupted", i, b)
		}
	}
}

// TestAllocateFallbackPreservesCurrentBlock checks spec.md §4.1's fallback
// policy: a request larger than BlockSize/4 gets its own dedicated block and
// does not disturb the bump pointer of the block currently in use for small
// requests.
func TestAllocateFallbackPreservesCurrentBlock(t *testing.T) {
	a := New()

	small := a.Allocate(8)
	remainingBefore := a.remaining

	big := a.Allocate(smallRequestLimit + 1)
	require.Len(t, big, smallRequestLimit+1)

	require.Equal(t, remainingBefore, a.remaining, "large allocation must not touch the current block")

	// The small allocation's bytes must still be writable and distinct from
	// the large one's.
	small[0] = 0xAB
	big[0] = 0xCD
	require.Equal(t, byte(0xAB), small[0])
	require.Equal(t, byte(0xCD), big[0])
}

// TestArenaClose checks spec.md §4.1's Disposal operation: Close drops
// every block, and calling it more than once is safe.
func TestArenaClose(t *testing.T) {
	a := New()
	a.Allocate(16)
	require.Positive(t, a.MemoryUsage())

	a.Close()
	require.Nil(t, a.blocks)

	require.NotPanics(t, a.Close, "Close must be idempotent")
}
