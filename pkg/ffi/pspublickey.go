package ffi

/*
#include <stdint.h>
*/
import "C"

import (
	"bytes"
	"unsafe"

	"github.com/veyra-id/idcore/pkg/pssig"
	"github.com/veyra-id/idcore/pkg/wire"
)

//export PsPublicKeyFree
func PsPublicKeyFree(h C.uint64_t) {
	table.free(handle(h))
}

func lookupPSPublicKey(h C.uint64_t) (*pssig.PublicKey, bool) {
	v, ok := table.get(handle(h))
	if !ok {
		return nil, false
	}
	pk, ok := v.(*pssig.PublicKey)
	return pk, ok
}

//export PsPublicKeyToBytes
func PsPublicKeyToBytes(h C.uint64_t, outLen *C.size_t) *C.uint8_t {
	pk, ok := lookupPSPublicKey(h)
	if !ok {
		*outLen = 0
		return nil
	}
	b, err := wire.Encode(wire.PSPublicKeyToWire(pk))
	if err != nil {
		*outLen = 0
		return nil
	}
	*outLen = C.size_t(len(b))
	return (*C.uint8_t)(C.CBytes(b))
}

//export PsPublicKeyFromBytes
func PsPublicKeyFromBytes(ptr *C.uint8_t, length C.size_t) C.uint64_t {
	b := C.GoBytes(unsafe.Pointer(ptr), C.int(length))
	var w wire.PSPublicKey
	if err := wire.Decode(b, &w); err != nil {
		return 0
	}
	pk, err := wire.PSPublicKeyFromWire(w)
	if err != nil {
		return 0
	}
	return C.uint64_t(table.put(pk))
}

//export PsPublicKeyEq
func PsPublicKeyEq(h1, h2 C.uint64_t) C.int {
	a, ok1 := lookupPSPublicKey(h1)
	b, ok2 := lookupPSPublicKey(h2)
	if !ok1 || !ok2 {
		return 0
	}
	ab, err1 := wire.Encode(wire.PSPublicKeyToWire(a))
	bb, err2 := wire.Encode(wire.PSPublicKeyToWire(b))
	if err1 != nil || err2 != nil {
		return 0
	}
	if bytes.Equal(ab, bb) {
		return 1
	}
	return 0
}
