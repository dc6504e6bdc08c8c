// Package ro implements the Fiat–Shamir random oracle this module's sigma
// protocols use to turn an interactive Σ-protocol into a non-interactive
// proof: every challenge is derived by hashing a domain tag and the full
// sequence of public values a verifier would otherwise send randomness for,
// following the same "hash challenge_prefix || public data, resample on a
// zero scalar" construction as the sigma-protocol literature this module's
// proofs are ported from.
package ro

import (
	"crypto/sha256"
	"encoding"
	"encoding/binary"

	"github.com/veyra-id/idcore/pkg/curve"
)

// RandomOracle is an append-only Fiat–Shamir transcript. Callers append
// every public value a proof depends on — commitments, randomized points,
// statement inputs — in a fixed, protocol-defined order, then derive the
// challenge scalar. Two transcripts started with the same Domain and fed
// the same sequence of appends always yield the same challenge; this is
// what makes a prover's output reproducible under a fixed RNG stream.
type RandomOracle struct {
	h *sha256digest
}

// sha256digest is the concrete hash.Hash returned by sha256.New(). The
// stdlib type also implements encoding.BinaryMarshaler/BinaryUnmarshaler,
// which is what lets Split clone the running hash state without
// re-hashing everything appended so far.
type sha256digest = marshalableHash

type marshalableHash interface {
	Write([]byte) (int, error)
	Sum([]byte) []byte
	Reset()
	Size() int
	BlockSize() int
	encoding.BinaryMarshaler
	encoding.BinaryUnmarshaler
}

// New starts a transcript tagged with domain. domain should be a short,
// protocol-unique ASCII string (e.g. "com_eq_different_groups") so that a
// transcript for one sigma-protocol relation can never collide with
// another's, even if both happen to hash the same public values.
func New(domain string) *RandomOracle {
	h := sha256.New()
	ro := &RandomOracle{h: h.(marshalableHash)}
	ro.AppendBytes([]byte(domain))
	return ro
}

// AppendBytes feeds raw bytes into the transcript, length-prefixed so that
// appending ["ab","c"] can never collide with appending ["a","bc"].
func (ro *RandomOracle) AppendBytes(b []byte) {
	var lenBuf [8]byte
	binary.BigEndian.PutUint64(lenBuf[:], uint64(len(b)))
	ro.h.Write(lenBuf[:])
	ro.h.Write(b)
}

// Append feeds the canonical encoding of a curve element or scalar into
// the transcript. Accepts *curve.Scalar, *curve.G1, *curve.G2.
func (ro *RandomOracle) Append(v any) {
	switch x := v.(type) {
	case *curve.Scalar:
		b := x.Bytes()
		ro.AppendBytes(b[:])
	case *curve.G1:
		b := x.Compress()
		ro.AppendBytes(b[:])
	case *curve.G2:
		b := x.Compress()
		ro.AppendBytes(b[:])
	default:
		panic("ro: unsupported Append type")
	}
}

// Split clones the oracle's current state into an independent branch. Used
// by AND-composed sigma protocols (pkg/sigma) where a shared prefix (the
// statement) is hashed once and then several sub-proofs each continue
// hashing their own randomized points from that common point, without
// re-hashing the shared prefix per branch.
func (ro *RandomOracle) Split() *RandomOracle {
	state, err := ro.h.MarshalBinary()
	if err != nil {
		panic("ro: hash state is not marshalable: " + err.Error())
	}
	clone := sha256.New().(marshalableHash)
	if err := clone.UnmarshalBinary(state); err != nil {
		panic("ro: hash state clone failed: " + err.Error())
	}
	return &RandomOracle{h: clone}
}

// challengeOversample mirrors curve.randomScalarOversample: reading extra
// bytes before reducing mod r keeps the reduction bias cryptographically
// negligible.
const challengeOversample = curve.ScalarSize + 16

// FinishToScalar consumes the transcript and derives the Fiat–Shamir
// challenge scalar. If the raw hash output reduces to zero mod r — which
// happens with probability ~2^-252, but the sigma-protocol literature this
// is ported from handles explicitly rather than assuming away — the
// transcript is re-hashed with an incrementing counter appended until a
// non-zero challenge is produced. This consumes the oracle: callers that
// need the pre-finish state for a later Split must call Split first.
func (ro *RandomOracle) FinishToScalar() *curve.Scalar {
	counter := uint64(0)
	for {
		h := ro.h
		state, err := h.MarshalBinary()
		if err != nil {
			panic("ro: hash state is not marshalable: " + err.Error())
		}
		attempt := sha256.New().(marshalableHash)
		if err := attempt.UnmarshalBinary(state); err != nil {
			panic("ro: hash state clone failed: " + err.Error())
		}
		var counterBuf [8]byte
		binary.BigEndian.PutUint64(counterBuf[:], counter)
		attempt.Write(counterBuf[:])

		digest := attempt.Sum(nil)
		wide := make([]byte, challengeOversample)
		copy(wide, digest)
		// Extend beyond one SHA-256 block deterministically so the
		// oversampled reduction has enough input entropy even though
		// the digest itself is only 32 bytes.
		second := sha256.Sum256(append(digest, counterBuf[:]...))
		copy(wide[sha256.Size:], second[:challengeOversample-sha256.Size])

		c := scalarFromWideBytes(wide)
		if !c.IsZero() {
			return c
		}
		counter++
	}
}

// scalarFromWideBytes reduces an oversampled byte string mod r the same
// way curve.RandomScalar does, without requiring an io.Reader plumb-through
// for a one-shot reduction.
func scalarFromWideBytes(wide []byte) *curve.Scalar {
	return curve.ScalarFromWideBytes(wide)
}
