package rbtree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordinal-ds/conical/rng"
)

func intLess(a, b int) bool { return a < b }

func inorderValues(t *Tree[int]) []int {
	var out []int
	for n := t.First(); n != nil; n = n.Successor() {
		out = append(out, n.Value())
	}
	return out
}

// TestInsortBuildsValidTreeAtEveryStep insorts 0..11 in order, verifying
// red-black validity after every insert, then checks the in-order
// traversal and deletes everything.
func TestInsortBuildsValidTreeAtEveryStep(t *testing.T) {
	tr := New[int](intLess)
	var handles []*Node[int]
	for i := 0; i < 12; i++ {
		h := tr.Insort(i)
		handles = append(handles, h)
		require.True(t, tr.Verify(), "tree invalid after inserting %d", i)
		require.Equal(t, i+1, tr.Len())
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, inorderValues(tr))

	for _, h := range handles {
		tr.Delete(h)
		assert.True(t, tr.Verify(), "tree invalid after a delete")
	}
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.First())
}

func TestBinarySearchFindsAndMisses(t *testing.T) {
	tr := New[int](intLess)
	for _, v := range []int{5, 3, 8, 1, 4, 7, 9} {
		tr.Insort(v)
	}

	n, ok := tr.BinarySearch(7)
	require.True(t, ok)
	assert.Equal(t, 7, n.Value())

	_, ok = tr.BinarySearch(6)
	assert.False(t, ok)
}

func TestSuccessorPredecessorMatchTraversal(t *testing.T) {
	tr := New[int](intLess)
	for _, v := range []int{4, 2, 6, 1, 3, 5, 7} {
		tr.Insort(v)
	}

	first := tr.First()
	assert.Equal(t, 1, first.Value())
	assert.Nil(t, first.Predecessor())

	last := tr.Last()
	assert.Equal(t, 7, last.Value())
	assert.Nil(t, last.Successor())

	n, _ := tr.BinarySearch(4)
	assert.Equal(t, 3, n.Predecessor().Value())
	assert.Equal(t, 5, n.Successor().Value())
}

func TestAppendAndInsertAfterDoNotConsultLess(t *testing.T) {
	tr := New[int](intLess)
	a := tr.Append(10)
	b := tr.Append(5) // would sort before a under intLess, but Append ignores less
	assert.Equal(t, []int{10, 5}, inorderValues(tr))
	assert.True(t, tr.Verify())

	c := tr.InsertAfter(a, 999)
	assert.Equal(t, []int{10, 999, 5}, inorderValues(tr))
	assert.True(t, tr.Verify())

	assert.Equal(t, b, tr.Last())
	assert.Equal(t, c, a.Successor())
}

// TestAppendMatchesInsortForIncreasingSequence checks that appending
// 0..N-1 in order produces the same in-order sequence as insorting the
// same increasing sequence.
func TestAppendMatchesInsortForIncreasingSequence(t *testing.T) {
	const n = 64

	appended := New[int](intLess)
	for i := 0; i < n; i++ {
		appended.Append(i)
		assert.True(t, appended.Verify())
	}

	insorted := New[int](intLess)
	for i := 0; i < n; i++ {
		insorted.Insort(i)
		assert.True(t, insorted.Verify())
	}

	assert.Equal(t, inorderValues(insorted), inorderValues(appended))
}

func TestDuplicateKeysInsortAfterExisting(t *testing.T) {
	tr := New[int](intLess)
	a := tr.Insort(5)
	b := tr.Insort(5)
	c := tr.Insort(5)
	assert.Equal(t, []int{5, 5, 5}, inorderValues(tr))
	assert.Same(t, a, tr.First())
	assert.Same(t, b, a.Successor())
	assert.Same(t, c, b.Successor())
	assert.True(t, tr.Verify())
}

func TestNewPanicsOnNilLess(t *testing.T) {
	assert.Panics(t, func() {
		New[int](nil)
	})
}

func TestDeallocateEmptiesTree(t *testing.T) {
	tr := New[int](intLess)
	for i := 0; i < 20; i++ {
		tr.Insort(i)
	}
	tr.Deallocate()
	assert.Equal(t, 0, tr.Len())
	assert.Nil(t, tr.First())
}

// TestRandomChurnPreservesInvariants runs a larger randomized sequence of
// inserts interleaved with deletes, checking that the red-black
// invariants and sorted order survive throughout. Skipped under -short,
// since the point is exhaustive churn rather than fast feedback.
func TestRandomChurnPreservesInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("stress test skipped in short mode")
	}

	tr := New[int](intLess)
	src := rand.New(rand.NewSource(99))

	var live []*Node[int]
	for i := 0; i < 5000; i++ {
		v := src.Intn(1 << 20)
		live = append(live, tr.Insort(v))
		require.True(t, tr.Verify())

		if len(live) > 32 && src.Intn(3) == 0 {
			idx := src.Intn(len(live))
			tr.Delete(live[idx])
			live = append(live[:idx], live[idx+1:]...)
			require.True(t, tr.Verify())
		}
	}

	values := inorderValues(tr)
	require.Len(t, values, tr.Len())
	for i := 1; i < len(values); i++ {
		assert.LessOrEqual(t, values[i-1], values[i])
	}

	for _, h := range live {
		tr.Delete(h)
	}
	assert.True(t, tr.Verify())
	assert.Equal(t, 0, tr.Len())
}

// TestLargeSequenceInsertThenDeleteAll builds a tree from a deterministic
// LCG-driven key sequence, binary-searches and deletes every key in
// insertion order, and checks the tree ends empty and verified at each
// checkpoint. The full checkpoint set reaches up to n=100000 inserts;
// -short runs a reduced set for fast feedback.
func TestLargeSequenceInsertThenDeleteAll(t *testing.T) {
	sizes := []int{1000, 10000, 40000, 100000}
	if testing.Short() {
		sizes = []int{1000}
	}

	for _, n := range sizes {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			tr := New[int](intLess)
			g := rng.New(13)

			keys := make([]int, n)
			for i := range keys {
				keys[i] = int(g.Next() >> 32)
				tr.Insort(keys[i])
			}
			require.Equal(t, n, tr.Len())
			require.True(t, tr.Verify())

			values := inorderValues(tr)
			require.Len(t, values, n)
			for i := 1; i < len(values); i++ {
				assert.LessOrEqual(t, values[i-1], values[i])
			}

			for _, k := range keys {
				node, ok := tr.BinarySearch(k)
				require.True(t, ok)
				tr.Delete(node)
			}
			require.True(t, tr.Verify())
			require.Equal(t, 0, tr.Len())
			assert.Nil(t, tr.First())
		})
	}
}
