// Package wire implements the canonical byte and JSON encodings every
// entity in pkg/id, pkg/pssig, pkg/sigma, pkg/elgamal, and pkg/pedersen is
// transmitted as: fixed-size compressed group elements and big-endian
// scalars wrapped in a versioned RLP envelope for the binary form
// (grounded on the teacher's in-house pkg/rlp, the same reflective
// encoder that frames eth2030's own blocks and transactions), and
// `0x`-prefixed hex strings via go-ethereum's hexutil for the JSON form
// (spec.md §6). Every exported type here is a wire DTO: a flat mirror of
// a domain type with unexported-field group/scalar values replaced by
// byte slices, the same separation eth2030's pkg/rpc draws between
// core.types.Block and rpc.RPCBlock.
package wire

import (
	"encoding/binary"
	"errors"

	"github.com/veyra-id/idcore/pkg/rlp"
)

// CurrentVersion is the only envelope version this module emits.
const CurrentVersion uint32 = 0

// ErrUnsupportedVersion is returned by Unwrap when an envelope names a
// version this module does not know how to decode.
var ErrUnsupportedVersion = errors.New("wire: unsupported envelope version")

// ErrTruncatedEnvelope is returned by Unwrap when the input is shorter
// than the 4-byte version prefix.
var ErrTruncatedEnvelope = errors.New("wire: truncated envelope")

// Wrap frames an RLP-encoded payload in a Versioned{version, value}
// envelope: a 4-byte big-endian version followed by the payload bytes.
// Mirrors spec.md §6's "versioned envelopes" requirement directly, rather
// than folding the version into the RLP structure itself, so that an
// unsupported version can be rejected before attempting to decode a
// payload shaped for a future version.
func Wrap(version uint32, payload []byte) []byte {
	out := make([]byte, 4+len(payload))
	binary.BigEndian.PutUint32(out, version)
	copy(out[4:], payload)
	return out
}

// Unwrap splits an envelope into its version and payload, without
// decoding the payload itself.
func Unwrap(envelope []byte) (uint32, []byte, error) {
	if len(envelope) < 4 {
		return 0, nil, ErrTruncatedEnvelope
	}
	version := binary.BigEndian.Uint32(envelope[:4])
	return version, envelope[4:], nil
}

// Encode RLP-encodes val and wraps it in a CurrentVersion envelope.
func Encode(val interface{}) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(val)
	if err != nil {
		return nil, err
	}
	return Wrap(CurrentVersion, payload), nil
}

// Decode unwraps an envelope, rejects anything but CurrentVersion, and
// RLP-decodes the payload into out.
func Decode(envelope []byte, out interface{}) error {
	version, payload, err := Unwrap(envelope)
	if err != nil {
		return err
	}
	if version != CurrentVersion {
		return ErrUnsupportedVersion
	}
	return rlp.DecodeBytes(payload, out)
}
