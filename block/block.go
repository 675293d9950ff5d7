// Package block provides the flexible-array header-block allocator
// shared by this module's containers: one contiguous allocation holding a
// fixed header of type H followed by a capacity-sized, aligned array of
// elements of type E.
//
// A Block has identity equality (two handles refer to the same block iff
// Base returns the same pointer) and single-owner lifetime by convention:
// the caller must call Deinitialize* and then Deallocate exactly once.
package block

import (
	"unsafe"

	"github.com/ordinal-ds/conical/internal/assert"
)

// Block is one allocation: a header H at offset 0, followed by padding up
// to alignof(E), followed by capacity elements of E spaced stride(E) apart.
//
// The zero Block is not allocated; use Allocate.
type Block[H, E any] struct {
	buf      []byte
	capacity int
}

// headerOffset returns off(H,E): the header's size rounded up to E's
// alignment, i.e. the byte offset of element 0 within the block.
func headerOffset[H, E any]() uintptr {
	var h H
	var e E
	return alignUp(unsafe.Sizeof(h), unsafe.Alignof(e))
}

func alignUp(n, align uintptr) uintptr {
	if align == 0 {
		return n
	}
	return (n + align - 1) &^ (align - 1)
}

// Allocate requests a raw block sized for one H and `capacity` elements of
// E. Elements are conceptually uninitialized: nothing may read At(i) before
// a matching InitializeElements/SetAt, and nothing may read Header before a
// matching InitializeHeader/SetHeader.
//
// Go's slice allocator aligns []byte backing arrays to at least pointer
// width, which covers every H/E this module instantiates; a hypothetical H
// or E requiring a wider natural alignment would need a different backing
// type here, mirroring the same assumption INLOpen/skiplist's Arena.Alloc
// makes for its own raw []byte arena.
func Allocate[H, E any](capacity int) Block[H, E] {
	if capacity < 0 {
		panic("block: negative capacity")
	}
	var e E
	off := headerOffset[H, E]()
	size := off + uintptr(capacity)*unsafe.Sizeof(e)
	return Block[H, E]{buf: make([]byte, size), capacity: capacity}
}

// Capacity returns the number of element slots the block was allocated
// with.
func (b Block[H, E]) Capacity() int {
	return b.capacity
}

// Base is the block's identity: the address of the header slot. Two
// blocks are the same allocation iff their Base values are equal.
func (b Block[H, E]) Base() unsafe.Pointer {
	if len(b.buf) == 0 {
		return nil
	}
	return unsafe.Pointer(&b.buf[0])
}

// Equal reports whether a and b address the same allocation.
func Equal[H, E any](a, b Block[H, E]) bool {
	return a.Base() == b.Base()
}

// headerPtr returns a pointer to the header slot. Panics if the block was
// never allocated.
func (b *Block[H, E]) headerPtr() *H {
	if len(b.buf) == 0 {
		panic("block: use of unallocated block")
	}
	return (*H)(unsafe.Pointer(&b.buf[0]))
}

// elemPtr returns a pointer to element i. Subscript access outside
// [0, Capacity()) is undefined, per spec.
func (b *Block[H, E]) elemPtr(i int) *E {
	var e E
	off := headerOffset[H, E]() + uintptr(i)*unsafe.Sizeof(e)
	return (*E)(unsafe.Pointer(&b.buf[off]))
}

// Header returns a copy of the header value.
func (b *Block[H, E]) Header() H {
	return *b.headerPtr()
}

// SetHeader writes h into the header slot. It may be called any number of
// times after allocation; callers only need "at most once before any
// header read", which this unconditionally permissive implementation
// trivially satisfies.
func (b *Block[H, E]) SetHeader(h H) {
	*b.headerPtr() = h
}

// InitializeHeader writes h into the header slot. Semantically identical
// to SetHeader in a garbage-collected target: there is no copy-constructor
// distinction to preserve.
func (b *Block[H, E]) InitializeHeader(h H) {
	b.SetHeader(h)
}

// At returns a copy of element i. i must be in [0, Capacity()).
func (b *Block[H, E]) At(i int) E {
	b.checkRange(i)
	return *b.elemPtr(i)
}

// SetAt writes v into element i. i must be in [0, Capacity()).
func (b *Block[H, E]) SetAt(i int, v E) {
	b.checkRange(i)
	*b.elemPtr(i) = v
}

func (b *Block[H, E]) checkRange(i int) {
	assert.Range(i, b.capacity)
	if i < 0 || i >= b.capacity {
		panic("block: subscript out of range")
	}
}

// InitializeElements copy-initializes the first n elements from src.
func (b *Block[H, E]) InitializeElements(src []E, n int) {
	for i := 0; i < n; i++ {
		b.SetAt(i, src[i])
	}
}

// MoveInitializeHeader takes ownership of other's header value without
// running any copy side effects (E/H here are plain Go values, so this is
// a move in the conventional sense: after this call other's header slot
// is conceptually moved-from and must not be read again).
func (b *Block[H, E]) MoveInitializeHeader(other *Block[H, E]) {
	b.SetHeader(other.Header())
}

// MoveInitializeElements takes ownership of the first n elements of other,
// copying their values across (Go has no non-trivial move constructors to
// elide) and leaving other's slots conceptually moved-from.
func (b *Block[H, E]) MoveInitializeElements(other *Block[H, E], n int) {
	for i := 0; i < n; i++ {
		b.SetAt(i, other.At(i))
	}
}

// DeinitializeHeader runs teardown for the header slot. E and H in this
// module never carry drop side effects (they are link records and plain
// value headers), so this only clears the slot to drop any references it
// holds, helping the garbage collector reclaim what it points to promptly.
func (b *Block[H, E]) DeinitializeHeader() {
	var zero H
	b.SetHeader(zero)
}

// DeinitializeElements clears the first n elements for the same reason as
// DeinitializeHeader.
func (b *Block[H, E]) DeinitializeElements(n int) {
	var zero E
	for i := 0; i < n; i++ {
		b.SetAt(i, zero)
	}
}

// Deallocate releases the block. Go has no explicit free primitive; this
// drops the owning slice reference so the backing array becomes eligible
// for garbage collection. No sentinel capacity value is needed to mean
// "free everything": there is exactly one allocation per Block and this
// call always frees all of it.
func (b *Block[H, E]) Deallocate() {
	b.buf = nil
	b.capacity = 0
}

// Allocated reports whether Allocate has been called and Deallocate has
// not yet reclaimed the block.
func (b Block[H, E]) Allocated() bool {
	return b.buf != nil
}
