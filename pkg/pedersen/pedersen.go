// Package pedersen implements the Pedersen commitment scheme this module
// uses wherever a value must be bound without revealing it: commitments to
// id_cred_sec, to each attribute, and to the coefficients of an AR sharing
// polynomial. A commitment C = g^v·h^r hides v unconditionally (for a
// random r) and binds the committer to v computationally, under the
// discrete-log assumption relating g and h — and, unlike the teacher's
// KZG/IPA polynomial commitments, needs no trusted setup.
package pedersen

import (
	"errors"
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
)

// ErrCommitmentMismatch is returned by Open when the supplied opening does
// not reproduce the commitment.
var ErrCommitmentMismatch = errors.New("pedersen: opening does not match commitment")

// CommitmentKey holds the pair of independent G1 generators (g, h) a
// commitment is computed against. Every party committing to the same kind
// of value (e.g. all commitments inside one PreIdentityObject) must use the
// same key, since commitments under different keys cannot be compared or
// combined.
type CommitmentKey struct {
	G *curve.G1
	H *curve.G1
}

// GenerateCommitmentKey derives a fresh (g, h) pair by hashing two distinct
// domain-separated tags to G1, so that nobody — including the key's own
// generator — learns the discrete log of h with respect to g.
func GenerateCommitmentKey(seed []byte) (*CommitmentKey, error) {
	g, err := curve.HashToG1(seed, []byte("idcore-pedersen-g"))
	if err != nil {
		return nil, err
	}
	h, err := curve.HashToG1(seed, []byte("idcore-pedersen-h"))
	if err != nil {
		return nil, err
	}
	return &CommitmentKey{G: g, H: h}, nil
}

// Value is the committed value.
type Value struct{ s *curve.Scalar }

// NewValue wraps a scalar as a committable Value.
func NewValue(s *curve.Scalar) Value { return Value{s: s} }

// Scalar returns the underlying scalar, for sigma-protocol code that needs
// to use a committed value as a witness.
func (v Value) Scalar() *curve.Scalar { return v.s }

// Randomness is the blinding factor used to hide a Value.
type Randomness struct{ s *curve.Scalar }

// Scalar returns the underlying scalar, for sigma-protocol code that needs
// to use a commitment's randomness as a witness.
func (r Randomness) Scalar() *curve.Scalar { return r.s }

// GenerateRandomness samples fresh commitment randomness from rng.
func GenerateRandomness(rng io.Reader) (Randomness, error) {
	s, err := curve.RandomScalar(rng)
	if err != nil {
		return Randomness{}, err
	}
	return Randomness{s: s}, nil
}

// Commitment is a Pedersen commitment C = g^v·h^r.
type Commitment struct {
	c *curve.G1
}

// Commit computes C = key.G^v · key.H^r.
func (key *CommitmentKey) Commit(v Value, r Randomness) Commitment {
	gv := key.G.ScalarMul(v.s)
	hr := key.H.ScalarMul(r.s)
	return Commitment{c: gv.Add(hr)}
}

// Open reports whether (v, r) is a valid opening of c under key.
func (key *CommitmentKey) Open(c Commitment, v Value, r Randomness) error {
	if !key.Commit(v, r).c.Equal(c.c) {
		return ErrCommitmentMismatch
	}
	return nil
}

// Point returns the underlying G1 group element, for use by sigma-protocol
// and wire-encoding code that operates on commitments as raw curve points.
func (c Commitment) Point() *curve.G1 { return c.c }

// CommitmentFromPoint wraps a raw G1 element as a Commitment, e.g. after
// decoding one off the wire.
func CommitmentFromPoint(p *curve.G1) Commitment { return Commitment{c: p} }

// Add homomorphically combines two commitments: Commit(v1,r1) + Commit(v2,r2)
// == Commit(v1+v2, r1+r2). Used when combining per-coefficient commitments
// into a commitment to a polynomial evaluation (Feldman-style, see
// pkg/sharing).
func (c Commitment) Add(other Commitment) Commitment {
	return Commitment{c: c.c.Add(other.c)}
}

// ScalarMul returns Commit(v,r) raised to the given exponent, i.e. a
// commitment to (s*v, s*r). Used when weighting a coefficient commitment by
// a Lagrange-style power of the evaluation point.
func (c Commitment) ScalarMul(s *curve.Scalar) Commitment {
	return Commitment{c: c.c.ScalarMul(s)}
}

// Equal reports whether two commitments encode the same group element.
func (c Commitment) Equal(other Commitment) bool { return c.c.Equal(other.c) }
