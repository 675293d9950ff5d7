// Package assert provides debug-only invariant checks (subscript range,
// capacity vs. requested height, post-mutation structural checks). They
// compile to no-ops unless the module is built with the conical_debug
// tag, so release builds pay nothing for them.
package assert

// Enabled is true when the module is built with the conical_debug tag.
// Callers guard expensive checks (e.g. a tree-wide Verify walk) behind
// this so the check itself isn't even evaluated in release builds.
const Enabled = enabled

// Capacity panics if a block's capacity cannot hold the requested height.
// No-op in release builds; see assert_debug.go / assert_release.go.
func Capacity(capacity, height int) {
	capacityImpl(capacity, height)
}

// Range panics if i is outside [0, capacity). No-op in release builds.
func Range(i, capacity int) {
	rangeImpl(i, capacity)
}

// That panics with msg if ok is false. No-op in release builds.
func That(ok bool, msg string) {
	thatImpl(ok, msg)
}
