package ffi

/*
#include <stdint.h>
*/
import "C"

import (
	"bytes"
	"unsafe"

	"github.com/veyra-id/idcore/pkg/bls"
	"github.com/veyra-id/idcore/pkg/curve"
)

// BlsSign signs a message under the secret key material passed as raw
// scalar bytes, returning a fresh handle to the resulting aggregate
// signature — grounded on bls_sign in the Rust ffi.rs this package
// mirrors.
//
//export BlsSign
func BlsSign(msgPtr *C.uint8_t, msgLen C.size_t, skPtr *C.uint8_t, skLen C.size_t) C.uint64_t {
	msg := C.GoBytes(unsafe.Pointer(msgPtr), C.int(msgLen))
	skBytes := C.GoBytes(unsafe.Pointer(skPtr), C.int(skLen))
	var arr [curve.ScalarSize]byte
	if len(skBytes) != len(arr) {
		return 0
	}
	copy(arr[:], skBytes)
	s, err := curve.ScalarFromBytes(arr)
	if err != nil {
		return 0
	}
	sk := bls.SecretKeyFromScalar(s)
	sig, err := bls.Sign(sk, msg)
	if err != nil {
		return 0
	}
	return C.uint64_t(table.put(sig))
}

//export BlsSigFree
func BlsSigFree(h C.uint64_t) {
	table.free(handle(h))
}

func lookupBlsSig(h C.uint64_t) (*bls.Signature, bool) {
	v, ok := table.get(handle(h))
	if !ok {
		return nil, false
	}
	sig, ok := v.(*bls.Signature)
	return sig, ok
}

//export BlsSigToBytes
func BlsSigToBytes(h C.uint64_t, outLen *C.size_t) *C.uint8_t {
	sig, ok := lookupBlsSig(h)
	if !ok {
		*outLen = 0
		return nil
	}
	b := sig.Bytes()
	*outLen = C.size_t(len(b))
	return (*C.uint8_t)(C.CBytes(b[:]))
}

//export BlsSigFromBytes
func BlsSigFromBytes(ptr *C.uint8_t, length C.size_t) C.uint64_t {
	b := C.GoBytes(unsafe.Pointer(ptr), C.int(length))
	var arr [curve.G1Size]byte
	if len(b) != len(arr) {
		return 0
	}
	copy(arr[:], b)
	sig, err := bls.SignatureFromBytes(arr)
	if err != nil {
		return 0
	}
	return C.uint64_t(table.put(sig))
}

//export BlsSigEq
func BlsSigEq(h1, h2 C.uint64_t) C.int {
	a, ok1 := lookupBlsSig(h1)
	b, ok2 := lookupBlsSig(h2)
	if !ok1 || !ok2 {
		return 0
	}
	if a.Equal(b) {
		return 1
	}
	return 0
}

//export BlsSigCmp
func BlsSigCmp(h1, h2 C.uint64_t) C.int {
	a, ok1 := lookupBlsSig(h1)
	b, ok2 := lookupBlsSig(h2)
	if !ok1 || !ok2 {
		return 0
	}
	ab, bb := a.Bytes(), b.Bytes()
	return C.int(bytes.Compare(ab[:], bb[:]))
}

//export BlsAggregate
func BlsAggregate(h1, h2 C.uint64_t) C.uint64_t {
	a, ok1 := lookupBlsSig(h1)
	b, ok2 := lookupBlsSig(h2)
	if !ok1 || !ok2 {
		return 0
	}
	return C.uint64_t(table.put(a.Aggregate(b)))
}
