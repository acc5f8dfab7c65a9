package skiplist

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Validate walks every level of the list checking the invariants of
// spec.md §3 — strictly increasing keys at each level, no cycles, every
// node reachable above level 0 also reachable at level 0, and a current
// height within [1, MaxHeight] — and reports every violation it finds
// rather than stopping at the first one.
//
// This is a diagnostic, not part of the hot path: it is used by tests to
// double-check the structure after a run. Multiple independent problems can exist in a
// single corrupt list, so they are collected with
// github.com/hashicorp/go-multierror rather than returning only the first
// one found — the same aggregation boulder.DB.Close uses (there via
// errors.Join) when more than one of its resources fails to close.
//
// Validate may be called concurrently with a live writer; a transient
// "violation" caused by a write landing mid-walk is possible in that case
// and should be treated as advisory rather than authoritative.
func (s *SkipList[K]) Validate() error {
	var result *multierror.Error

	curHeight := s.Height()
	if curHeight < 1 || curHeight > MaxHeight {
		result = multierror.Append(result, fmt.Errorf("current height %d outside [1,%d]", curHeight, MaxHeight))
	}

	level0 := make(map[*node[K]]bool)
	for n := s.head.next(0); n != nil && !level0[n]; n = n.next(0) {
		level0[n] = true
	}

	for level := 0; level < int(curHeight); level++ {
		seen := make(map[*node[K]]bool)
		var prevKey K
		havePrev := false

		for n := s.head.next(level); n != nil; n = n.next(level) {
			if seen[n] {
				result = multierror.Append(result, fmt.Errorf("level %d: cycle detected", level))
				break
			}
			seen[n] = true

			if level > 0 && !level0[n] {
				result = multierror.Append(result, fmt.Errorf("level %d: node reachable but absent from level 0", level))
			}

			if havePrev && s.cmp(prevKey, n.key) >= 0 {
				result = multierror.Append(result, fmt.Errorf("level %d: keys out of order", level))
			}
			prevKey = n.key
			havePrev = true
		}
	}

	return result.ErrorOrNil()
}
