package boulder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetBasic(t *testing.T) {
	s := NewOrdered[int]()
	require.False(t, s.Contains(1))

	s.Insert(1)
	s.Insert(3)
	s.Insert(2)
	require.True(t, s.Contains(1))
	require.True(t, s.Contains(2))
	require.True(t, s.Contains(3))
	require.False(t, s.Contains(4))

	var got []int
	c := s.NewCursor()
	for c.SeekToFirst(); c.Valid(); c.Next() {
		got = append(got, c.Key())
	}
	require.Equal(t, []int{1, 2, 3}, got)

	require.NoError(t, s.Validate())
	require.Positive(t, s.MemoryUsage())
	require.GreaterOrEqual(t, s.Height(), uint(1))
}

func TestSetDuplicateInsertPanics(t *testing.T) {
	s := NewOrdered[string]()
	s.Insert("a")
	require.Panics(t, func() { s.Insert("a") })
}

func TestSetClose(t *testing.T) {
	s := NewOrdered[int]()
	s.Insert(1)

	s.Close()
	require.NotPanics(t, s.Close, "Close must be idempotent")
}

func TestSetCustomComparator(t *testing.T) {
	type point struct{ x, y int }
	byX := func(a, b point) int {
		switch {
		case a.x < b.x:
			return -1
		case a.x > b.x:
			return 1
		default:
			return 0
		}
	}

	s := New[point](byX)
	s.Insert(point{x: 3})
	s.Insert(point{x: 1})
	s.Insert(point{x: 2})

	c := s.NewCursor()
	c.SeekToFirst()
	require.Equal(t, point{x: 1}, c.Key())
}
