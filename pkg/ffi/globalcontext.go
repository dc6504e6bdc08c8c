package ffi

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"bytes"
	"unsafe"

	"github.com/veyra-id/idcore/pkg/id"
	"github.com/veyra-id/idcore/pkg/wire"
)

// GlobalContextNew constructs a GlobalContext from a domain-separation
// seed and returns a handle, or 0 on failure — mirroring
// bls_generate_secretkey's "pointer, or null on failure" convention from
// the Rust ffi.rs this package is grounded on.
//
//export GlobalContextNew
func GlobalContextNew(seedPtr *C.uint8_t, seedLen C.size_t) C.uint64_t {
	seed := C.GoBytes(unsafe.Pointer(seedPtr), C.int(seedLen))
	ctx, err := id.GenerateGlobalContext(seed)
	if err != nil {
		return 0
	}
	return C.uint64_t(table.put(ctx))
}

// GlobalContextFree releases a handle. Freeing an already-freed or
// unknown handle is a silent no-op, matching the Rust macro_free_ffi!
// behaviour of treating a null pointer as harmless.
//
//export GlobalContextFree
func GlobalContextFree(h C.uint64_t) {
	table.free(handle(h))
}

func lookupGlobalContext(h C.uint64_t) (*id.GlobalContext, bool) {
	v, ok := table.get(handle(h))
	if !ok {
		return nil, false
	}
	ctx, ok := v.(*id.GlobalContext)
	return ctx, ok
}

// GlobalContextToBytes writes the canonical RLP envelope encoding of the
// referenced GlobalContext into a freshly C-allocated buffer and returns
// it with its length; the caller owns the buffer and must free it with
// the platform's free() (or FfiFreeBytes below). Returns NULL on an
// invalid handle, per spec.md §6's "null for constructors" sentinel.
//
//export GlobalContextToBytes
func GlobalContextToBytes(h C.uint64_t, outLen *C.size_t) *C.uint8_t {
	ctx, ok := lookupGlobalContext(h)
	if !ok {
		*outLen = 0
		return nil
	}
	b, err := wire.Encode(wire.GlobalContextToWire(ctx))
	if err != nil {
		*outLen = 0
		return nil
	}
	*outLen = C.size_t(len(b))
	return (*C.uint8_t)(C.CBytes(b))
}

// GlobalContextFromBytes decodes a canonical envelope and returns a fresh
// handle, or 0 on a malformed encoding.
//
//export GlobalContextFromBytes
func GlobalContextFromBytes(ptr *C.uint8_t, length C.size_t) C.uint64_t {
	b := C.GoBytes(unsafe.Pointer(ptr), C.int(length))
	var w wire.GlobalContext
	if err := wire.Decode(b, &w); err != nil {
		return 0
	}
	ctx, err := wire.GlobalContextFromWire(w)
	if err != nil {
		return 0
	}
	return C.uint64_t(table.put(ctx))
}

// GlobalContextEq reports byte-encoding equality of the two handles.
// Unknown handles compare unequal to everything, including each other,
// matching "0 for booleans" on invalid input.
//
//export GlobalContextEq
func GlobalContextEq(h1, h2 C.uint64_t) C.int {
	a, ok1 := lookupGlobalContext(h1)
	b, ok2 := lookupGlobalContext(h2)
	if !ok1 || !ok2 {
		return 0
	}
	ab, err1 := wire.Encode(wire.GlobalContextToWire(a))
	bb, err2 := wire.Encode(wire.GlobalContextToWire(b))
	if err1 != nil || err2 != nil {
		return 0
	}
	if bytes.Equal(ab, bb) {
		return 1
	}
	return 0
}

// FfiFreeBytes releases a buffer returned by any *ToBytes function in
// this package.
//
//export FfiFreeBytes
func FfiFreeBytes(ptr *C.uint8_t) {
	C.free(unsafe.Pointer(ptr))
}
