// Package pssig implements the Pointcheval–Sanders blinded signature scheme
// this module's Identity Provider uses to certify a holder's committed
// attribute list without ever seeing the plaintext values: the IP signs an
// "unknown message" — a multi-base Pedersen-style commitment M ∈ G1 — and
// the holder unblinds the result into an ordinary PS signature over the
// plain attribute vector. Grounded on
// original_source/rust-src/ps_sig/src/unknown_message.rs for the
// UnknownMessage abstraction (a thin wrapper around a G1 commitment point)
// and spec.md §4.6 for the signing/verification equations.
package pssig

import (
	"errors"
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
)

// ErrKeyLengthMismatch is returned when a messages slice's length does not
// match the number of per-attribute bases a key was generated with.
var ErrKeyLengthMismatch = errors.New("pssig: message count does not match key length")

// ErrDegenerateSignature is returned by Verify when sigma1 is the G1
// identity, which would make the pairing equation trivially satisfiable
// for any message.
var ErrDegenerateSignature = errors.New("pssig: sigma1 must not be the group identity")

// SecretKey is an Identity Provider's signing key: (x, y_1, ..., y_L) ∈
// Fr^{L+1}, one y_i per attribute slot the key can sign over.
type SecretKey struct {
	X  *curve.Scalar
	Ys []*curve.Scalar
}

// PublicKey is the corresponding verification key. G and Ys are the G1
// forms a holder needs to build a commitment to an attribute vector before
// asking the IP to sign it; GTilde, XTilde, and YTildes are the G2 forms a
// verifier needs to check the resulting signature.
type PublicKey struct {
	G       *curve.G1
	Ys      []*curve.G1
	GTilde  *curve.G2
	XTilde  *curve.G2
	YTildes []*curve.G2
}

// L reports the number of attribute slots this key pair supports.
func (pk *PublicKey) L() int { return len(pk.Ys) }

// GenerateKeys samples a fresh PS key pair supporting messages of length l.
func GenerateKeys(l int, rng io.Reader) (*SecretKey, *PublicKey, error) {
	x, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	ys := make([]*curve.Scalar, l)
	for i := range ys {
		y, err := curve.RandomScalar(rng)
		if err != nil {
			return nil, nil, err
		}
		ys[i] = y
	}

	g := curve.G1Generator()
	gTilde := curve.G2Generator()

	ysG1 := make([]*curve.G1, l)
	ysG2 := make([]*curve.G2, l)
	for i, y := range ys {
		ysG1[i] = g.ScalarMul(y)
		ysG2[i] = gTilde.ScalarMul(y)
	}

	sk := &SecretKey{X: x, Ys: ys}
	pk := &PublicKey{
		G:       g,
		Ys:      ysG1,
		GTilde:  gTilde,
		XTilde:  gTilde.ScalarMul(x),
		YTildes: ysG2,
	}
	return sk, pk, nil
}

// UnknownMessage is a commitment to an attribute vector the IP signs
// without learning the individual attribute values — named after
// unknown_message.rs's UnknownMessage(pub C::G1), which this type mirrors
// as a direct wrapper around the committed G1 point.
type UnknownMessage struct {
	point *curve.G1
}

// NewUnknownMessage wraps a raw commitment point as an UnknownMessage.
func NewUnknownMessage(point *curve.G1) UnknownMessage { return UnknownMessage{point: point} }

// Point returns the underlying G1 commitment point.
func (m UnknownMessage) Point() *curve.G1 { return m.point }

// CommitMessages builds M = g^r · Π Ys[i]^{m_i}, the multi-base
// Pedersen-style commitment a holder presents to the IP as an
// UnknownMessage, using the IP's own public bases so that the resulting
// signature validates under that same IP's public key. r is the
// commitment's blinding randomness, which the holder must keep in order to
// unblind the resulting signature.
func CommitMessages(pk *PublicKey, messages []*curve.Scalar, r *curve.Scalar) (UnknownMessage, error) {
	if len(messages) != len(pk.Ys) {
		return UnknownMessage{}, ErrKeyLengthMismatch
	}
	acc := pk.G.ScalarMul(r)
	for i, m := range messages {
		acc = acc.Add(pk.Ys[i].ScalarMul(m))
	}
	return UnknownMessage{point: acc}, nil
}

// Signature is a PS signature (σ1, σ2) ∈ G1². Freshly produced by
// SignUnknownMessage it is blinded by the commitment randomness r the IP
// never sees; Unblind removes that blinding to produce a signature that
// verifies directly over the plain message vector.
type Signature struct {
	Sigma1 *curve.G1
	Sigma2 *curve.G1
}

// SignUnknownMessage signs a commitment to a message vector: samples fresh
// u and returns (g^u, (X·M)^u), where X = g^x. The IP never learns the
// message vector or the commitment randomness — only that the holder has
// proven, via the sigma protocols in pkg/sigma, that M is well-formed with
// respect to material the IP has already validated.
func SignUnknownMessage(sk *SecretKey, pk *PublicKey, m UnknownMessage, rng io.Reader) (*Signature, error) {
	u, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	x := pk.G.ScalarMul(sk.X)
	sigma1 := pk.G.ScalarMul(u)
	sigma2 := x.Add(m.point).ScalarMul(u)
	return &Signature{Sigma1: sigma1, Sigma2: sigma2}, nil
}

// Unblind removes the commitment randomness r from a signature produced
// over CommitMessages(pk, messages, r), yielding a signature that verifies
// directly against the plain messages via Verify.
func Unblind(sig *Signature, r *curve.Scalar) *Signature {
	correction := sig.Sigma1.ScalarMul(r).Neg()
	return &Signature{Sigma1: sig.Sigma1, Sigma2: sig.Sigma2.Add(correction)}
}

// Randomize produces a fresh, unlinkable re-randomization of sig: for any
// nonzero scalar t, (σ1^t, σ2^t) verifies under the same key and messages
// as (σ1, σ2), since the pairing verification equation is homogeneous in
// the exponent. The identity layer's chain side uses this once per
// CredentialDeploymentInfo so distinct deployments derived from the same
// IdentityObject cannot be linked via their signature bytes.
func Randomize(sig *Signature, rng io.Reader) (*Signature, error) {
	t, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	return &Signature{Sigma1: sig.Sigma1.ScalarMul(t), Sigma2: sig.Sigma2.ScalarMul(t)}, nil
}

// Verify checks sig against the plain message vector under pk via the
// pairing equation e(σ1, X̃·Π Ỹ_i^{m_i}) = e(σ2, g̃), reporting an error
// naming the reason for any failure and (true, nil) on success.
func Verify(pk *PublicKey, messages []*curve.Scalar, sig *Signature) (bool, error) {
	if len(messages) != len(pk.YTildes) {
		return false, ErrKeyLengthMismatch
	}
	if sig.Sigma1.IsIdentity() {
		return false, ErrDegenerateSignature
	}

	rhs := pk.XTilde
	for i, m := range messages {
		rhs = rhs.Add(pk.YTildes[i].ScalarMul(m))
	}

	ok, err := curve.PairingCheck(
		[]*curve.G1{sig.Sigma1, sig.Sigma2},
		[]*curve.G2{rhs, pk.GTilde.Neg()},
	)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// SignatureSize is the fixed-size wire encoding length of a Signature: two
// compressed G1 points.
const SignatureSize = 2 * curve.G1Size

// Bytes returns sig's canonical fixed-size encoding: σ1 ‖ σ2, each
// compressed.
func (sig *Signature) Bytes() [SignatureSize]byte {
	var out [SignatureSize]byte
	s1 := sig.Sigma1.Compress()
	s2 := sig.Sigma2.Compress()
	copy(out[:curve.G1Size], s1[:])
	copy(out[curve.G1Size:], s2[:])
	return out
}

// SignatureFromBytes decodes a signature from its canonical encoding,
// rejecting non-canonical or out-of-subgroup component points.
func SignatureFromBytes(b [SignatureSize]byte) (*Signature, error) {
	var s1b [curve.G1Size]byte
	var s2b [curve.G1Size]byte
	copy(s1b[:], b[:curve.G1Size])
	copy(s2b[:], b[curve.G1Size:])

	s1, err := curve.DecompressG1(s1b)
	if err != nil {
		return nil, err
	}
	s2, err := curve.DecompressG1(s2b)
	if err != nil {
		return nil, err
	}
	return &Signature{Sigma1: s1, Sigma2: s2}, nil
}
