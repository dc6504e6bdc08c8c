// Package bls implements the aggregate BLS signature scheme this module
// uses wherever multiple independent signers must jointly attest to a
// statement with a single compact signature — e.g. an anonymity revoker
// quorum co-signing a revocation record. Grounded on the reference corpus's
// crypto/bls_aggregate.go and crypto/bls_blst_adapter.go (signature shape,
// aggregate/verify naming, serialization flag conventions), but re-targeted
// from Ethereum's MinPk convention (public keys in G1, signatures in G2) to
// this protocol's MinSig convention (signatures in G1, public keys in G2),
// per spec.md §4.7 and original_source's aggregate_sig crate.
package bls

import (
	"bytes"
	"errors"
	"io"
	"sort"

	"github.com/veyra-id/idcore/pkg/curve"
)

// dst is the domain separation tag for this module's hash-to-G1 signing
// construction, fixed so that sign and verify always hash a message to the
// same curve point.
const dst = "idcore-bls-sig-v1"

// ErrDuplicateMessage is returned by AggregateVerify when the message list
// contains a repeat — the distinct-message verification equation is only
// sound if every message is unique.
var ErrDuplicateMessage = errors.New("bls: duplicate message in distinct-message aggregate verify")

// ErrLengthMismatch is returned when a signatures/public-keys/messages
// slice triple disagrees in length.
var ErrLengthMismatch = errors.New("bls: mismatched input slice lengths")

// SecretKey is a BLS signing key sk ∈ Fr.
type SecretKey struct {
	s *curve.Scalar
}

// PublicKey is pk = g̃^sk ∈ G2.
type PublicKey struct {
	p *curve.G2
}

// GenerateKey samples a fresh BLS key pair.
func GenerateKey(rng io.Reader) (*SecretKey, *PublicKey, error) {
	sk, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	pk := curve.G2Generator().ScalarMul(sk)
	return &SecretKey{s: sk}, &PublicKey{p: pk}, nil
}

// SecretKeyFromScalar wraps a raw scalar as a SecretKey, for callers (such
// as pkg/ffi) that decode the scalar from an external byte encoding rather
// than sampling it via GenerateKey.
func SecretKeyFromScalar(s *curve.Scalar) *SecretKey { return &SecretKey{s: s} }

// PublicKeyFromPoint wraps a raw G2 element as a PublicKey.
func PublicKeyFromPoint(p *curve.G2) *PublicKey { return &PublicKey{p: p} }

// Point returns pk's underlying G2 element.
func (pk *PublicKey) Point() *curve.G2 { return pk.p }

// Signature is a BLS signature σ = H(m)^sk ∈ G1.
type Signature struct {
	p *curve.G1
}

// SignatureFromPoint wraps a raw G1 element as a Signature.
func SignatureFromPoint(p *curve.G1) *Signature { return &Signature{p: p} }

// Point returns sig's underlying G1 element.
func (sig *Signature) Point() *curve.G1 { return sig.p }

// Empty returns the G1 identity, used as the aggregation zero: Aggregate of
// zero signatures equals Empty(), and Empty().Aggregate(sig) == sig for any
// sig.
func Empty() *Signature {
	return &Signature{p: curve.G1Identity()}
}

// hashMessage maps msg to a G1 point via RFC 9380 hash-to-curve, the point
// Sign raises to sk and Verify pairs against pk.
func hashMessage(msg []byte) (*curve.G1, error) {
	return curve.HashToG1(msg, []byte(dst))
}

// Sign produces a BLS signature on msg under sk.
func Sign(sk *SecretKey, msg []byte) (*Signature, error) {
	h, err := hashMessage(msg)
	if err != nil {
		return nil, err
	}
	return &Signature{p: h.ScalarMul(sk.s)}, nil
}

// Aggregate combines sig into this signature by G1 point addition,
// returning the combined signature. Aggregation is commutative and
// associative: the result does not depend on the order signatures are
// folded in.
func (sig *Signature) Aggregate(other *Signature) *Signature {
	return &Signature{p: sig.p.Add(other.p)}
}

// AggregateSignatures folds a slice of signatures into one via repeated
// Aggregate, starting from Empty().
func AggregateSignatures(sigs []*Signature) *Signature {
	acc := Empty()
	for _, s := range sigs {
		acc = acc.Aggregate(s)
	}
	return acc
}

// AggregatePublicKeys additively combines public keys in G2 — the
// same-message trusted-key verification variant's companion operation: a
// verifier checks one aggregate signature against one aggregate public key
// rather than iterating per signer.
func AggregatePublicKeys(pks []*PublicKey) *PublicKey {
	acc := curve.G2Identity()
	for _, pk := range pks {
		acc = acc.Add(pk.p)
	}
	return &PublicKey{p: acc}
}

// Verify checks a single signature against a single public key and
// message: e(σ, g̃) = e(H(m), pk).
func Verify(pk *PublicKey, msg []byte, sig *Signature) (bool, error) {
	h, err := hashMessage(msg)
	if err != nil {
		return false, err
	}
	return curve.PairingCheck(
		[]*curve.G1{sig.p, h},
		[]*curve.G2{curve.G2Generator().Neg(), pk.p},
	)
}

// FastAggregateVerify checks an aggregate signature against a single
// message and a set of trusted public keys (the "same message" variant of
// spec.md §4.7): e(σ, g̃) = e(H(m), Σ pk_i).
func FastAggregateVerify(pks []*PublicKey, msg []byte, sig *Signature) (bool, error) {
	agg := AggregatePublicKeys(pks)
	return Verify(agg, msg, sig)
}

// AggregateVerify checks an aggregate signature against a list of distinct
// messages, one public key per message: Π e(H(m_i), pk_i) = e(σ, g̃).
// Rejects any input containing a duplicate message, since the
// distinct-message verification equation is forgeable otherwise (an
// attacker could aggregate a single real signature with itself under two
// public keys for the same message).
func AggregateVerify(pks []*PublicKey, msgs [][]byte, sig *Signature) (bool, error) {
	if len(pks) != len(msgs) {
		return false, ErrLengthMismatch
	}
	if err := checkDistinctMessages(msgs); err != nil {
		return false, err
	}

	g1s := make([]*curve.G1, 0, len(msgs)+1)
	g2s := make([]*curve.G2, 0, len(msgs)+1)
	for i, m := range msgs {
		h, err := hashMessage(m)
		if err != nil {
			return false, err
		}
		g1s = append(g1s, h)
		g2s = append(g2s, pks[i].p)
	}
	g1s = append(g1s, sig.p)
	g2s = append(g2s, curve.G2Generator().Neg())

	return curve.PairingCheck(g1s, g2s)
}

func checkDistinctMessages(msgs [][]byte) error {
	seen := make(map[string]bool, len(msgs))
	for _, m := range msgs {
		key := string(m)
		if seen[key] {
			return ErrDuplicateMessage
		}
		seen[key] = true
	}
	return nil
}

// Bytes returns sig's compressed 48-byte encoding.
func (sig *Signature) Bytes() [curve.G1Size]byte { return sig.p.Compress() }

// Equal reports whether two signatures encode the same compressed bytes.
func (sig *Signature) Equal(other *Signature) bool { return sig.p.Equal(other.p) }

// Less reports whether sig sorts before other under byte-lexicographic
// order on their compressed encodings — required by spec.md §4.7 so
// external ordered containers (e.g. a sorted revocation-record index) have
// a total order to sort BLS signatures by.
func (sig *Signature) Less(other *Signature) bool {
	a := sig.Bytes()
	b := other.Bytes()
	return bytes.Compare(a[:], b[:]) < 0
}

// SortSignatures sorts sigs in place by byte-lexicographic order.
func SortSignatures(sigs []*Signature) {
	sort.Slice(sigs, func(i, j int) bool { return sigs[i].Less(sigs[j]) })
}

// SignatureFromBytes decodes a compressed BLS signature, rejecting
// non-canonical or out-of-subgroup encodings.
func SignatureFromBytes(b [curve.G1Size]byte) (*Signature, error) {
	p, err := curve.DecompressG1(b)
	if err != nil {
		return nil, err
	}
	return &Signature{p: p}, nil
}
