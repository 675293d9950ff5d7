package skiplist

// Iterator walks a List in ascending order, level 0. The typical use:
//
//	it := l.NewIterator()
//	for it.Next() {
//		v := it.Value()
//		// ...
//	}
//
// An Iterator is invalidated by any Delete of the node it currently
// points at; deletes of other nodes do not affect it, since handles stay
// stable until the node they name is itself deleted.
type Iterator[V any] struct {
	list    *List[V]
	current *Node[V]
	started bool
}

// NewIterator returns an iterator positioned before the first element. A
// call to Next is required to reach it.
func (l *List[V]) NewIterator() *Iterator[V] {
	return &Iterator[V]{list: l}
}

// Next advances the iterator and reports whether a value is available.
func (it *Iterator[V]) Next() bool {
	if !it.started {
		it.started = true
		it.current = it.list.First()
		return it.current != nil
	}
	if it.current == nil {
		return false
	}
	it.current = it.list.Next(it.current)
	return it.current != nil
}

// Value returns the element at the iterator's current position. Valid
// only after a call to Next returned true.
func (it *Iterator[V]) Value() V {
	return it.current.Value()
}

// Node returns the handle at the iterator's current position.
func (it *Iterator[V]) Node() *Node[V] {
	return it.current
}
