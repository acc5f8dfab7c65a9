package skiplist

// Cursor is a position handle over a SkipList: either invalid (not
// pointing at any node) or valid and pointing at a real inserted node,
// never the head sentinel (spec.md §3, §4.2). A Cursor holds no state
// beyond that single node pointer and a reference to its list, so it is
// cheap to construct — one per reading goroutine, per spec.md §6's
// "Cursors are not shared between threads; construct one per thread."
//
// Unlike boulder/pkg/iterator.Iterator (which wraps InternalKV byte pairs
// behind an io.Closer and a sync.Pool), a Cursor here needs no pooling or
// Close: there is nothing to release back, since the Cursor doesn't own
// any resource beyond the pointer itself.
type Cursor[K any] struct {
	list *SkipList[K]
	node *node[K]
}

// NewCursor returns a fresh, invalid Cursor over list.
func NewCursor[K any](list *SkipList[K]) *Cursor[K] {
	return &Cursor[K]{list: list}
}

// Valid reports whether the cursor currently points at a real node.
func (c *Cursor[K]) Valid() bool {
	return c.node != nil
}

// Key returns the key at the cursor's current position. Key is a contract
// violation, and panics, when the cursor is invalid (spec.md §4.2, §7).
func (c *Cursor[K]) Key() K {
	if c.node == nil {
		panic("skiplist: Key called on an invalid cursor")
	}
	return c.node.key
}

// SeekToFirst positions the cursor at the smallest key in the list, or
// leaves it invalid if the list is empty.
func (c *Cursor[K]) SeekToFirst() {
	c.node = c.list.head.next(0)
}

// SeekToLast positions the cursor at the largest key in the list, or
// leaves it invalid if the list is empty.
func (c *Cursor[K]) SeekToLast() {
	last := c.list.findLast()
	if last == c.list.head {
		c.node = nil
		return
	}
	c.node = last
}

// Seek positions the cursor at the smallest key >= target, or leaves it
// invalid if every key in the list is < target.
func (c *Cursor[K]) Seek(target K) {
	c.node = c.list.findGreaterOrEqual(target, nil)
}

// Next advances the cursor to the next larger key, or invalidates it if
// already at the last key. Next is a contract violation, and panics, on an
// invalid cursor (spec.md §4.2, §7).
func (c *Cursor[K]) Next() {
	if c.node == nil {
		panic("skiplist: Next called on an invalid cursor")
	}
	c.node = c.node.next(0)
}

// Prev moves the cursor to the previous smaller key, or invalidates it if
// already at the first key. Prev re-searches the list from the head rather
// than following a back pointer — there is none (spec.md §9's "Cyclic/shared
// graph": back pointers would need atomic updates visible to readers and
// would double the cost of Insert). Prev is a contract violation, and
// panics, on an invalid cursor.
func (c *Cursor[K]) Prev() {
	if c.node == nil {
		panic("skiplist: Prev called on an invalid cursor")
	}
	prev := c.list.findLessThan(c.node.key)
	if prev == c.list.head {
		c.node = nil
		return
	}
	c.node = prev
}
