package ffi

/*
#include <stdint.h>
*/
import "C"

import (
	"bytes"
	"unsafe"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/id"
	"github.com/veyra-id/idcore/pkg/wire"
)

//export ArInfoNew
func ArInfoNew(arIdentity C.uint32_t, descPtr *C.char, descLen C.size_t, pkPtr *C.uint8_t, pkLen C.size_t) C.uint64_t {
	ident, err := id.NewArIdentity(uint32(arIdentity))
	if err != nil {
		return 0
	}
	desc := C.GoStringN(descPtr, C.int(descLen))
	pkBytes := C.GoBytes(unsafe.Pointer(pkPtr), C.int(pkLen))
	var arr [curve.G1Size]byte
	if len(pkBytes) != len(arr) {
		return 0
	}
	copy(arr[:], pkBytes)
	pk, err := curve.DecompressG1(arr)
	if err != nil {
		return 0
	}
	info := id.ArInfo{ArIdentity: ident, Description: desc, ArPublicKey: pk}
	return C.uint64_t(table.put(info))
}

//export ArInfoFree
func ArInfoFree(h C.uint64_t) {
	table.free(handle(h))
}

func lookupArInfo(h C.uint64_t) (id.ArInfo, bool) {
	v, ok := table.get(handle(h))
	if !ok {
		return id.ArInfo{}, false
	}
	info, ok := v.(id.ArInfo)
	return info, ok
}

//export ArInfoToBytes
func ArInfoToBytes(h C.uint64_t, outLen *C.size_t) *C.uint8_t {
	info, ok := lookupArInfo(h)
	if !ok {
		*outLen = 0
		return nil
	}
	b, err := wire.Encode(wire.ArInfoToWire(info))
	if err != nil {
		*outLen = 0
		return nil
	}
	*outLen = C.size_t(len(b))
	return (*C.uint8_t)(C.CBytes(b))
}

//export ArInfoFromBytes
func ArInfoFromBytes(ptr *C.uint8_t, length C.size_t) C.uint64_t {
	b := C.GoBytes(unsafe.Pointer(ptr), C.int(length))
	var w wire.ArInfo
	if err := wire.Decode(b, &w); err != nil {
		return 0
	}
	info, err := wire.ArInfoFromWire(w)
	if err != nil {
		return 0
	}
	return C.uint64_t(table.put(info))
}

//export ArInfoEq
func ArInfoEq(h1, h2 C.uint64_t) C.int {
	a, ok1 := lookupArInfo(h1)
	b, ok2 := lookupArInfo(h2)
	if !ok1 || !ok2 {
		return 0
	}
	ab, err1 := wire.Encode(wire.ArInfoToWire(a))
	bb, err2 := wire.Encode(wire.ArInfoToWire(b))
	if err1 != nil || err2 != nil {
		return 0
	}
	if bytes.Equal(ab, bb) {
		return 1
	}
	return 0
}

// ArInfoCmp gives the lexicographic order over canonical encodings spec.md
// §6 requires for ordered external containers (the same role the Rust
// macro_cmp! family plays for Haskell's Ord instances).
//
//export ArInfoCmp
func ArInfoCmp(h1, h2 C.uint64_t) C.int {
	a, ok1 := lookupArInfo(h1)
	b, ok2 := lookupArInfo(h2)
	if !ok1 || !ok2 {
		return 0
	}
	ab, err1 := wire.Encode(wire.ArInfoToWire(a))
	bb, err2 := wire.Encode(wire.ArInfoToWire(b))
	if err1 != nil || err2 != nil {
		return 0
	}
	return C.int(bytes.Compare(ab, bb))
}
