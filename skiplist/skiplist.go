// Package skiplist implements the ordered multiset ("conical list"): a
// probabilistic, order-preserving, multi-level structure with a circular
// per-level doubly-linked topology and a dynamically-growing/shrinking
// head vector.
//
// A List is single-owner and not safe for concurrent use; callers must
// call Deinitialize exactly once when done with it.
package skiplist

import (
	"github.com/ordinal-ds/conical/internal/assert"
	"github.com/ordinal-ds/conical/rng"
)

// skipListSeed is the fixed LCG seed, kept constant so height sequences
// stay bit-exact across runs and implementations.
const skipListSeed = 24

const initialHeadCapacity = 8

// Less reports whether a orders strictly before b. Implementations must
// provide a total strict order; equal keys (neither a<b nor b<a) are
// inserted after existing equal keys at level 0, giving multiset
// semantics under a strict-less-than comparison.
type Less[V any] func(a, b V) bool

// List is an ordered multiset backed by a skip list.
type List[V any] struct {
	head   *Node[V]
	less   Less[V]
	gen    *rng.LCG
	length int
}

// New creates an empty skip list. less must implement a total strict
// less-than relation over V.
func New[V any](less Less[V]) *List[V] {
	if less == nil {
		panic("skiplist: less must not be nil")
	}
	return &List[V]{
		head: newHeadVector[V](initialHeadCapacity),
		less: less,
		gen:  rng.New(skipListSeed),
	}
}

// Len returns the number of live nodes.
func (l *List[V]) Len() int {
	return l.length
}

// level returns the current level count L.
func (l *List[V]) level() int {
	return l.head.height()
}

// Insert samples a random height, splices a new node into levels
// [0, height) in sorted position, and returns a stable handle to it.
func (l *List[V]) Insert(v V) *Node[V] {
	h := l.gen.Height()
	n := newNode(v, h)

	L := l.level()
	if h > L {
		l.growHead(h, n)
		if L == 0 {
			// The list was empty: N is now the sole node at every
			// level it occupies, and growHead already linked it as a
			// self-loop ring at each. Nothing left to splice.
			l.length++
			return n
		}
	}

	current := l.head
	for level := min(L, h) - 1; level >= 0; level-- {
		current = l.descendToInsertionPoint(level, current, v)
		if current == l.head {
			l.insertAsNewSmallest(level, n)
		} else {
			l.insertAfter(level, current, n)
		}
	}

	l.length++
	return n
}

// descendToInsertionPoint advances current forward at level as long as
// the next node's value is not greater than v (so a new key lands after
// any existing equal keys), guarded against wrapping
// past the discontinuity (the single edge from the largest node back to
// the smallest). current starts at some position already known to be at
// or before the insertion point for this level.
func (l *List[V]) descendToInsertionPoint(level int, current *Node[V], v V) *Node[V] {
	headNext := l.head.At(level).next
	for {
		next := current.At(level).next
		if next == nil {
			return current
		}
		if l.less(v, next.Value()) {
			return current
		}
		// The discontinuity guard: once current has moved off head, a
		// next pointer equal to head's smallest means we have
		// completed a full cycle at this level and must stop here
		// (descend), not wrap around again.
		if current != l.head && next == headNext {
			return current
		}
		current = next
	}
}

// insertAsNewSmallest splices n in as the new smallest node at level,
// when the descent never left the head (n compares less than every
// existing node at this level).
func (l *List[V]) insertAsNewSmallest(level int, n *Node[V]) {
	head := l.head
	oldSmallest := head.At(level).next
	largest := oldSmallest.At(level).prev

	n.SetAt(level, link[V]{prev: largest, next: oldSmallest})
	setNext(largest, level, n)
	setPrev(oldSmallest, level, n)

	// head[level].prev is deliberately set to n here, not to largest.
	// Nothing in this package ever reads head[level].prev directly (the
	// "current largest" is always recomputed as
	// head[level].next[level].prev), so this assignment is inert rather
	// than wrong. Preserved exactly as the original behaves.
	head.SetAt(level, link[V]{prev: n, next: n})
}

// insertAfter splices n in immediately after current at level.
func (l *List[V]) insertAfter(level int, current, n *Node[V]) {
	next := current.At(level).next
	n.SetAt(level, link[V]{prev: current, next: next})
	setPrev(next, level, n)
	setNext(current, level, n)
}

// growHead grows the head vector to at least newHeight capacity if
// needed, then initializes levels [L, newHeight) as self-loop rings
// containing only n, and advances L to newHeight.
func (l *List[V]) growHead(newHeight int, n *Node[V]) {
	if newHeight > l.head.Capacity() {
		newCap := l.head.Capacity()
		for newCap < newHeight {
			newCap = newCap + newCap/2 + 8
		}
		grown := newHeadVector[V](newCap)
		oldL := l.head.height()
		grown.MoveInitializeHeader(&l.head.Block)
		grown.MoveInitializeElements(&l.head.Block, oldL)
		l.head.Deallocate()
		l.head = grown
	}

	head := l.head
	L := head.height()
	assert.Capacity(head.Capacity(), newHeight)
	for level := L; level < newHeight; level++ {
		n.SetAt(level, link[V]{prev: n, next: n})
		head.SetAt(level, link[V]{prev: n, next: n})
	}
	head.SetHeader(header[V]{height: newHeight})
}

// Delete unlinks n from every level it participates in and deallocates
// it. n must refer to a currently-live node of this list.
func (l *List[V]) Delete(n *Node[V]) {
	head := l.head
	h := n.height()
	newL := -1

	for level := h - 1; level >= 0; level-- {
		lk := n.At(level)
		if lk.next == n {
			// n is alone at this level; the level count shrinks to
			// (at most) this level once the loop finishes descending.
			newL = level
			continue
		}

		wasSmallest := head.At(level).next == n
		setNext(lk.prev, level, lk.next)
		setPrev(lk.next, level, lk.prev)

		if wasSmallest {
			// Known tolerated inconsistency: head[level].prev is set to
			// the new smallest rather than left at the unchanged
			// largest. Self-healing, because insertion never reads
			// head[level].prev directly either (see
			// insertAsNewSmallest). Preserved exactly.
			head.SetAt(level, link[V]{prev: lk.next, next: lk.next})
		}
	}

	if newL >= 0 {
		head.SetHeader(header[V]{height: newL})
	}

	n.DeinitializeHeader()
	n.Deallocate()
	l.length--
}

// First returns the smallest live node, or nil if the list is empty.
func (l *List[V]) First() *Node[V] {
	if l.length == 0 {
		return nil
	}
	return l.head.At(0).next
}

// Next returns the node immediately after n in sorted order at level 0,
// or nil if n is the largest (the next step would cross the
// discontinuity back to the smallest).
func (l *List[V]) Next(n *Node[V]) *Node[V] {
	next := n.At(0).next
	if next == l.head.At(0).next {
		return nil
	}
	return next
}

// Deinitialize walks the level-0 ring, deinitializing and deallocating
// every live node, then frees the head vector. The List must not be used
// afterward.
func (l *List[V]) Deinitialize() {
	n := l.First()
	for n != nil {
		next := l.Next(n)
		n.DeinitializeHeader()
		n.Deallocate()
		n = next
	}
	l.head.DeinitializeHeader()
	l.head.Deallocate()
	l.length = 0
}
