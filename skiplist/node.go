package skiplist

import "github.com/ordinal-ds/conical/block"

// header is a skip-list node's header: its element and the number of
// levels it participates in. For the head vector this struct is
// repurposed: value is unused and height carries the current level count
// L, giving the head vector and ordinary nodes a single shared
// representation instead of a separate unused generic slot.
type header[V any] struct {
	value  V
	height int
}

// link is one level's forward/backward pointer pair. It is trivial: a
// pointer pair with no drop side effects, safe to store as a block
// element.
type link[V any] struct {
	prev, next *Node[V]
}

// Node is a stable handle to a live skip-list node, or (internally) to the
// head vector. It embeds block.Block so the header-block lifecycle
// (Header/At/Deallocate/...) is available directly, and adds the
// value/height accessors callers need.
//
// Two *Node[V] are the same node iff they are the same pointer: every
// live node is exactly one allocation behind exactly one *Node[V], so Go
// pointer identity already gives the block's identity-equality contract.
type Node[V any] struct {
	block.Block[header[V], link[V]]
}

// Value returns the element stored at this node.
func (n *Node[V]) Value() V {
	return n.Header().value
}

func (n *Node[V]) height() int {
	return n.Header().height
}

func newNode[V any](v V, height int) *Node[V] {
	n := &Node[V]{Block: block.Allocate[header[V], link[V]](height)}
	n.InitializeHeader(header[V]{value: v, height: height})
	return n
}

func newHeadVector[V any](capacity int) *Node[V] {
	n := &Node[V]{Block: block.Allocate[header[V], link[V]](capacity)}
	n.InitializeHeader(header[V]{height: 0})
	return n
}

func setNext[V any](n *Node[V], level int, next *Node[V]) {
	lk := n.At(level)
	lk.next = next
	n.SetAt(level, lk)
}

func setPrev[V any](n *Node[V], level int, prev *Node[V]) {
	lk := n.At(level)
	lk.prev = prev
	n.SetAt(level, lk)
}
