// Package boundary implements descriptor marshaling and result buffer
// ownership: the seam between a caller with manual memory management and
// the garbage-collected core.
//
// Two disjoint allocation domains exist. Input descriptors are borrowed
// views into caller memory; the bridge copies out of them during the call
// and never frees or retains them. Result buffers are produced through the
// session's Allocator, owned by the bridge and returned to that same
// allocator through Release, exactly once per result. The two domains never
// mix; that pairing is the single most safety-critical invariant of the
// whole system.
//
// The package is written against the root Memory and Allocator interfaces,
// so the identical marshaling code serves a WASM guest's linear memory
// (package wasmhost), a C caller across cgo (cmd/libevds) and the
// slice-backed Heap used in-process and in tests.
package boundary
