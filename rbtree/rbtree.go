// Package rbtree implements the ordered multiset backed by a red-black
// tree: a deterministically balanced binary search tree reachable only
// through an explicit root-and-links structure, with caller-visible node
// handles and an insertion API that supports both comparison-driven
// placement (Insort) and positional placement (Append, InsertAfter) for
// callers that already know where a value belongs.
//
// A Tree is single-owner and not safe for concurrent use; callers must
// call Deallocate exactly once when done with it.
package rbtree

import "github.com/ordinal-ds/conical/internal/assert"

// Less reports whether a orders strictly before b. Implementations must
// provide a total strict order over V for BinarySearch and Insort to be
// meaningful; Append and InsertAfter never call it.
type Less[V any] func(a, b V) bool

// Tree is an ordered multiset backed by a red-black tree.
type Tree[V any] struct {
	root   *Node[V]
	less   Less[V]
	length int
}

// New creates an empty tree. less must implement a total strict
// less-than relation over V.
func New[V any](less Less[V]) *Tree[V] {
	if less == nil {
		panic("rbtree: less must not be nil")
	}
	return &Tree[V]{less: less}
}

// Len returns the number of live nodes.
func (t *Tree[V]) Len() int {
	return t.length
}

// First returns the smallest live node, or nil if the tree is empty.
func (t *Tree[V]) First() *Node[V] {
	return leftmost(t.root)
}

// Last returns the largest live node, or nil if the tree is empty.
func (t *Tree[V]) Last() *Node[V] {
	return rightmost(t.root)
}

// BinarySearch locates v by comparison, descending from the root. It
// reports the matching node and true, or the last node visited before a
// mismatch and false if no equal node exists.
func (t *Tree[V]) BinarySearch(v V) (*Node[V], bool) {
	cur := t.root
	for cur != nil {
		switch {
		case t.less(v, cur.value):
			if cur.left == nil {
				return cur, false
			}
			cur = cur.left
		case t.less(cur.value, v):
			if cur.right == nil {
				return cur, false
			}
			cur = cur.right
		default:
			return cur, true
		}
	}
	return nil, false
}

// Insort inserts v by descending the tree via less, placing it as a new
// leaf among equal keys' existing occupants, then runs insertion-fixup.
func (t *Tree[V]) Insort(v V) *Node[V] {
	if t.root == nil {
		n := t.insertRoot(v)
		t.assertValid()
		return n
	}

	n := &Node[V]{value: v, color: red}
	cur := t.root
	for {
		if t.less(v, cur.value) {
			if cur.left == nil {
				cur.left = n
				break
			}
			cur = cur.left
		} else {
			if cur.right == nil {
				cur.right = n
				break
			}
			cur = cur.right
		}
	}
	n.parent = cur
	t.insertFixup(n)
	t.length++
	t.assertValid()
	return n
}

// Append inserts v as the immediate in-order successor of the current
// last node, without consulting less. If the tree is empty v becomes the
// root.
func (t *Tree[V]) Append(v V) *Node[V] {
	var n *Node[V]
	if t.root == nil {
		n = t.insertRoot(v)
	} else {
		n = t.insertAfterNode(t.Last(), v)
	}
	t.assertValid()
	return n
}

// InsertAfter places v as p's right child if p has none, else as the
// leftmost descendant of p's right subtree, then runs insertion-fixup.
// Either way v becomes p's immediate in-order successor. p must be a
// live node of this tree.
func (t *Tree[V]) InsertAfter(p *Node[V], v V) *Node[V] {
	n := t.insertAfterNode(p, v)
	t.assertValid()
	return n
}

func (t *Tree[V]) insertRoot(v V) *Node[V] {
	n := &Node[V]{value: v, color: black}
	t.root = n
	t.length++
	return n
}

func (t *Tree[V]) insertAfterNode(p *Node[V], v V) *Node[V] {
	n := &Node[V]{value: v, color: red}
	if p.right == nil {
		p.right = n
		n.parent = p
	} else {
		cur := p.right
		for cur.left != nil {
			cur = cur.left
		}
		cur.left = n
		n.parent = cur
	}
	t.insertFixup(n)
	t.length++
	return n
}

func (t *Tree[V]) rotateLeft(p *Node[V]) {
	r := p.right
	p.right = r.left
	if r.left != nil {
		r.left.parent = p
	}
	r.parent = p.parent
	switch {
	case p.parent == nil:
		t.root = r
	case p.parent.left == p:
		p.parent.left = r
	default:
		p.parent.right = r
	}
	r.left = p
	p.parent = r
}

func (t *Tree[V]) rotateRight(p *Node[V]) {
	l := p.left
	p.left = l.right
	if l.right != nil {
		l.right.parent = p
	}
	l.parent = p.parent
	switch {
	case p.parent == nil:
		t.root = l
	case p.parent.left == p:
		p.parent.left = l
	default:
		p.parent.right = l
	}
	l.right = p
	p.parent = l
}

// insertFixup restores the red-black invariants after n has been spliced
// in red. Cases follow the standard CLRS numbering: case 1 (n is root) and
// case 2 (parent already black) terminate immediately; case 3 (red uncle)
// recolors and recurses on the grandparent; cases 4 and 5 (black uncle)
// rotate and terminate.
func (t *Tree[V]) insertFixup(n *Node[V]) {
	for n.parent != nil && n.parent.color == red {
		gp := n.parent.parent
		if n.parent == gp.left {
			uncle := gp.right
			if !isBlack(uncle) {
				n.parent.color = black
				uncle.color = black
				gp.color = red
				n = gp
				continue
			}
			if n == n.parent.right {
				n = n.parent
				t.rotateLeft(n)
			}
			n.parent.color = black
			gp.color = red
			t.rotateRight(gp)
			break
		}
		uncle := gp.left
		if !isBlack(uncle) {
			n.parent.color = black
			uncle.color = black
			gp.color = red
			n = gp
			continue
		}
		if n == n.parent.left {
			n = n.parent
			t.rotateRight(n)
		}
		n.parent.color = black
		gp.color = red
		t.rotateLeft(gp)
		break
	}
	t.root.color = black
}

// Delete removes n from the tree. n must be a live node of this tree.
func (t *Tree[V]) Delete(n *Node[V]) {
	removed := n
	fast := true
	var child, parent *Node[V]
	var col color

	if n.left == nil {
		child = n.right
	} else if n.right == nil {
		child = n.left
	} else {
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		child = succ.right
		parent = succ.parent
		col = succ.color

		if child != nil {
			child.parent = parent
		}
		if parent.left == succ {
			parent.left = child
		} else {
			parent.right = child
		}

		if succ.parent == removed {
			// succ is removed's immediate right child: the unlink above
			// just wrote removed.right = child, which the four-way swap
			// below carries over into succ.right. Re-anchor the rebalance parent
			// at succ, which is about to occupy removed's position.
			parent = succ
		}

		succ.parent = removed.parent
		succ.left = removed.left
		succ.right = removed.right
		succ.color = removed.color

		if removed.parent == nil {
			t.root = succ
		} else if removed.parent.left == removed {
			removed.parent.left = succ
		} else {
			removed.parent.right = succ
		}

		removed.left.parent = succ
		if removed.right != nil {
			removed.right.parent = succ
		}
		fast = false
	}

	if fast {
		parent = n.parent
		col = n.color
		if child != nil {
			child.parent = parent
		}
		if parent == nil {
			t.root = child
		} else if parent.left == n {
			parent.left = child
		} else {
			parent.right = child
		}
	}

	if col == black {
		t.deleteFixup(parent, child)
	}
	t.length--
	t.assertValid()
}

// assertValid runs Verify under the debug build tag only; assert.Enabled
// guards it so a release build never pays for the tree-wide walk.
func (t *Tree[V]) assertValid() {
	if assert.Enabled {
		assert.That(t.Verify(), "red-black invariants violated after mutation")
	}
}

// deleteFixup restores the red-black invariants after a black node was
// removed, leaving n (possibly nil) in child's place under parent. It
// implements the standard 6-case analysis: cases 3 and 4 (black sibling
// with both children black) share one branch, distinguished only by
// whether the loop's exit condition fires on the next iteration. When
// parent was red, recoloring it black here is exactly case 4's "swap
// parent and sibling colors, done".
func (t *Tree[V]) deleteFixup(parent, n *Node[V]) {
	for n != t.root && isBlack(n) {
		if parent.left == n {
			sibling := parent.right
			if sibling.color == red {
				sibling.color = black
				parent.color = red
				t.rotateLeft(parent)
				sibling = parent.right
			}
			if isBlack(sibling.left) && isBlack(sibling.right) {
				sibling.color = red
				n = parent
				parent = n.parent
				continue
			}
			if isBlack(sibling.right) {
				if sibling.left != nil {
					sibling.left.color = black
				}
				sibling.color = red
				t.rotateRight(sibling)
				sibling = parent.right
			}
			sibling.color = parent.color
			parent.color = black
			if sibling.right != nil {
				sibling.right.color = black
			}
			t.rotateLeft(parent)
			n = t.root
			break
		}

		sibling := parent.left
		if sibling.color == red {
			sibling.color = black
			parent.color = red
			t.rotateRight(parent)
			sibling = parent.left
		}
		if isBlack(sibling.left) && isBlack(sibling.right) {
			sibling.color = red
			n = parent
			parent = n.parent
			continue
		}
		if isBlack(sibling.left) {
			if sibling.right != nil {
				sibling.right.color = black
			}
			sibling.color = red
			t.rotateLeft(sibling)
			sibling = parent.left
		}
		sibling.color = parent.color
		parent.color = black
		if sibling.left != nil {
			sibling.left.color = black
		}
		t.rotateRight(parent)
		n = t.root
		break
	}
	if n != nil {
		n.color = black
	}
}

// Verify reports whether the tree currently satisfies the red-black
// invariants: the root is black, every red node has two black children,
// and every root-to-leaf path carries the same black height.
func (t *Tree[V]) Verify() bool {
	if t.root == nil {
		return true
	}
	if t.root.color != black {
		return false
	}
	_, ok := blackHeight(t.root)
	return ok
}

func blackHeight[V any](n *Node[V]) (int, bool) {
	if n == nil {
		return 0, true
	}
	if n.color == red && (!isBlack(n.left) || !isBlack(n.right)) {
		return 0, false
	}
	lh, ok := blackHeight(n.left)
	if !ok {
		return 0, false
	}
	rh, ok := blackHeight(n.right)
	if !ok || lh != rh {
		return 0, false
	}
	if n.color == black {
		lh++
	}
	return lh, true
}

// Deallocate frees every node and resets the tree to empty. The Tree must
// not be used afterward.
func (t *Tree[V]) Deallocate() {
	deallocateSubtree(t.root)
	t.root = nil
	t.length = 0
}

func deallocateSubtree[V any](n *Node[V]) {
	if n == nil {
		return
	}
	deallocateSubtree(n.left)
	deallocateSubtree(n.right)
	n.left, n.right, n.parent = nil, nil, nil
}
