// Package ffi is the native C ABI boundary spec.md §6 names: opaque
// handles plus constructor/destructor/byte-round-trip/equality/ordering
// functions, grounded on original_source/rust-src/aggregate_sig/src/ffi.rs
// and ffi_helpers/src/ffi_macros.rs's macro family
// (macro_derive_from_bytes!, macro_free_ffi!, macro_derive_to_bytes!,
// macro_derive_binary!, the unnamed $cmp macro). Rust hands raw
// Box::into_raw pointers across the boundary; Go's garbage collector makes
// that unsafe (a Go pointer stored and later dereferenced by C outlives
// the collector's view of it), so this package keeps every value GC-owned
// in a process-wide handle table and hands the caller an opaque integer
// key instead. Covers GlobalContext, IpInfo, ArInfo, the PS public key,
// and the BLS aggregate signature — representative of the full surface
// the Rust macro family would generate per type.
package ffi

import "sync"

// handle is the opaque integer key this boundary hands to C callers in
// place of a pointer. Zero is reserved as the null/invalid handle,
// matching spec.md §6's "null-pointer inputs return sentinel values"
// rule translated to an integer-handle world.
type handle uint64

type handleTable struct {
	mu   sync.Mutex
	next handle
	vals map[handle]interface{}
}

func newHandleTable() *handleTable {
	return &handleTable{next: 1, vals: make(map[handle]interface{})}
}

func (t *handleTable) put(v interface{}) handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	h := t.next
	t.next++
	t.vals[h] = v
	return h
}

func (t *handleTable) get(h handle) (interface{}, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	v, ok := t.vals[h]
	return v, ok
}

func (t *handleTable) free(h handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.vals, h)
}

// table is shared across all types this package exposes; handles from
// different types are never comparable to each other anyway (the typed
// wrapper functions below only ever look a handle up as the type they
// expect), so one table suffices instead of one per type.
var table = newHandleTable()
