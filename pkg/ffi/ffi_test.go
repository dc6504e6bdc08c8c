package ffi

/*
#include <stdint.h>
#include <stdlib.h>
*/
import "C"

import (
	"bytes"
	"testing"
	"unsafe"

	"github.com/veyra-id/idcore/pkg/bls"
	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/pssig"
)

func rng() *bytes.Reader { return bytes.NewReader(bytes.Repeat([]byte{0x29}, 65536)) }

func cBytes(b []byte) (*C.uint8_t, C.size_t) {
	if len(b) == 0 {
		return nil, 0
	}
	return (*C.uint8_t)(C.CBytes(b)), C.size_t(len(b))
}

func TestGlobalContextRoundTrip(t *testing.T) {
	seedPtr, seedLen := cBytes([]byte("ffi-test-global-context"))
	defer C.free(unsafe.Pointer(seedPtr))

	h1 := GlobalContextNew(seedPtr, seedLen)
	if h1 == 0 {
		t.Fatal("GlobalContextNew returned the null handle")
	}
	defer GlobalContextFree(h1)

	var outLen C.size_t
	encoded := GlobalContextToBytes(h1, &outLen)
	if encoded == nil {
		t.Fatal("GlobalContextToBytes returned nil")
	}
	defer FfiFreeBytes(encoded)

	h2 := GlobalContextFromBytes(encoded, outLen)
	if h2 == 0 {
		t.Fatal("GlobalContextFromBytes returned the null handle")
	}
	defer GlobalContextFree(h2)

	if GlobalContextEq(h1, h2) != 1 {
		t.Fatal("round-tripped global context does not equal the original")
	}
}

func TestGlobalContextFromBytesRejectsGarbage(t *testing.T) {
	garbage := []byte{0x01, 0x02, 0x03}
	ptr, length := cBytes(garbage)
	defer C.free(unsafe.Pointer(ptr))

	if h := GlobalContextFromBytes(ptr, length); h != 0 {
		t.Fatal("GlobalContextFromBytes must return the null handle for a malformed envelope")
	}
}

func TestArInfoRoundTrip(t *testing.T) {
	pk := curve.G1Generator()
	compressed := pk.Compress()
	pkPtr, pkLen := cBytes(compressed[:])
	defer C.free(unsafe.Pointer(pkPtr))

	desc := "ffi test anonymity revoker"
	descPtr := C.CString(desc)
	defer C.free(unsafe.Pointer(descPtr))

	h1 := ArInfoNew(C.uint32_t(7), descPtr, C.size_t(len(desc)), pkPtr, pkLen)
	if h1 == 0 {
		t.Fatal("ArInfoNew returned the null handle")
	}
	defer ArInfoFree(h1)

	var outLen C.size_t
	encoded := ArInfoToBytes(h1, &outLen)
	if encoded == nil {
		t.Fatal("ArInfoToBytes returned nil")
	}
	defer FfiFreeBytes(encoded)

	h2 := ArInfoFromBytes(encoded, outLen)
	if h2 == 0 {
		t.Fatal("ArInfoFromBytes returned the null handle")
	}
	defer ArInfoFree(h2)

	if ArInfoEq(h1, h2) != 1 {
		t.Fatal("round-tripped AR info does not equal the original")
	}
	if ArInfoCmp(h1, h2) != 0 {
		t.Fatal("a handle must compare equal to its own round trip")
	}
}

func TestPsPublicKeyRoundTrip(t *testing.T) {
	_, pk, err := pssig.GenerateKeys(3, rng())
	if err != nil {
		t.Fatalf("pssig.GenerateKeys: %v", err)
	}
	h1 := table.put(pk)
	defer PsPublicKeyFree(h1)

	var outLen C.size_t
	encoded := PsPublicKeyToBytes(h1, &outLen)
	if encoded == nil {
		t.Fatal("PsPublicKeyToBytes returned nil")
	}
	defer FfiFreeBytes(encoded)

	h2 := PsPublicKeyFromBytes(encoded, outLen)
	if h2 == 0 {
		t.Fatal("PsPublicKeyFromBytes returned the null handle")
	}
	defer PsPublicKeyFree(h2)

	if PsPublicKeyEq(h1, h2) != 1 {
		t.Fatal("round-tripped PS public key does not equal the original")
	}
}

func TestBlsSignAggregateRoundTrip(t *testing.T) {
	sk1, err := curve.RandomScalar(rng())
	if err != nil {
		t.Fatal(err)
	}
	skBytes1 := sk1.Bytes()
	skPtr1, skLen1 := cBytes(skBytes1[:])
	defer C.free(unsafe.Pointer(skPtr1))

	sk2, err := curve.RandomScalar(rng())
	if err != nil {
		t.Fatal(err)
	}
	skBytes2 := sk2.Bytes()
	skPtr2, skLen2 := cBytes(skBytes2[:])
	defer C.free(unsafe.Pointer(skPtr2))

	msg := []byte("ffi bls test message")
	msgPtr, msgLen := cBytes(msg)
	defer C.free(unsafe.Pointer(msgPtr))

	sig1 := BlsSign(msgPtr, msgLen, skPtr1, skLen1)
	if sig1 == 0 {
		t.Fatal("BlsSign returned the null handle")
	}
	defer BlsSigFree(sig1)

	sig2 := BlsSign(msgPtr, msgLen, skPtr2, skLen2)
	if sig2 == 0 {
		t.Fatal("BlsSign returned the null handle")
	}
	defer BlsSigFree(sig2)

	if BlsSigEq(sig1, sig2) == 1 {
		t.Fatal("signatures from distinct keys must not be equal")
	}

	var outLen C.size_t
	encoded := BlsSigToBytes(sig1, &outLen)
	if encoded == nil {
		t.Fatal("BlsSigToBytes returned nil")
	}
	defer FfiFreeBytes(encoded)

	decoded := BlsSigFromBytes(encoded, outLen)
	if decoded == 0 {
		t.Fatal("BlsSigFromBytes returned the null handle")
	}
	defer BlsSigFree(decoded)

	if BlsSigEq(sig1, decoded) != 1 {
		t.Fatal("round-tripped signature does not equal the original")
	}
	if BlsSigCmp(sig1, decoded) != 0 {
		t.Fatal("a signature must compare equal to its own round trip")
	}

	agg := BlsAggregate(sig1, sig2)
	if agg == 0 {
		t.Fatal("BlsAggregate returned the null handle")
	}
	defer BlsSigFree(agg)

	a, ok := lookupBlsSig(agg)
	if !ok {
		t.Fatal("aggregate handle did not resolve")
	}
	s1, _ := lookupBlsSig(sig1)
	s2, _ := lookupBlsSig(sig2)
	want := bls.AggregateSignatures([]*bls.Signature{s1, s2})
	if !a.Equal(want) {
		t.Fatal("BlsAggregate does not match bls.AggregateSignatures")
	}
}
