package curve

import (
	"errors"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// G1Size is the compressed encoding length of a G1 element.
const G1Size = bls12381.SizeOfG1AffineCompressed

// ErrInvalidG1 is returned when a byte string does not decode to a valid,
// on-curve, in-subgroup G1 point.
var ErrInvalidG1 = errors.New("curve: invalid G1 encoding")

// G1 is a point on the BLS12-381 G1 subgroup.
type G1 struct {
	p bls12381.G1Affine
}

var g1Gen = func() *G1 {
	_, _, g1aff, _ := bls12381.Generators()
	return &G1{p: g1aff}
}()

// G1Generator returns the standard BLS12-381 G1 generator.
func G1Generator() *G1 {
	out := *g1Gen
	return &out
}

// G1Identity returns the G1 group identity (point at infinity).
func G1Identity() *G1 {
	var g G1
	g.p.X.SetZero()
	g.p.Y.SetZero()
	return &g
}

// IsIdentity reports whether g is the point at infinity.
func (g *G1) IsIdentity() bool {
	return g.p.IsInfinity()
}

// Add returns g + other.
func (g *G1) Add(other *G1) *G1 {
	var gj, oj, rj bls12381.G1Jac
	gj.FromAffine(&g.p)
	oj.FromAffine(&other.p)
	rj.Set(&gj).AddAssign(&oj)
	var out G1
	out.p.FromJacobian(&rj)
	return &out
}

// Neg returns -g.
func (g *G1) Neg() *G1 {
	var out G1
	out.p.Neg(&g.p)
	return &out
}

// ScalarMul returns s*g.
func (g *G1) ScalarMul(s *Scalar) *G1 {
	var gj, rj bls12381.G1Jac
	gj.FromAffine(&g.p)
	bi := s.v.BigInt(new(big.Int))
	rj.ScalarMultiplication(&gj, bi)
	var out G1
	out.p.FromJacobian(&rj)
	return &out
}

// Equal reports whether g and other encode the same point.
func (g *G1) Equal(other *G1) bool {
	return g.p.Equal(&other.p)
}

// Compress returns the 48-byte compressed encoding of g.
func (g *G1) Compress() [G1Size]byte {
	return g.p.Bytes()
}

// DecompressG1 decodes a compressed G1 point, rejecting any encoding that
// is non-canonical, not on the curve, or not in the prime-order subgroup
// (gnark-crypto's Bytes/SetBytes round trip already performs the subgroup
// check for compressed points).
func DecompressG1(b [G1Size]byte) (*G1, error) {
	var out G1
	if _, err := out.p.SetBytes(b[:]); err != nil {
		return nil, ErrInvalidG1
	}
	return &out, nil
}

// MultiScalarMulG1 computes Σ scalars[i]·points[i]. This is the
// unoptimized reference form (repeated scalar multiplication and
// addition); callers with large batches may prefer gnark-crypto's native
// windowed MultiExp directly.
func MultiScalarMulG1(scalars []*Scalar, points []*G1) (*G1, error) {
	if len(scalars) != len(points) {
		return nil, errors.New("curve: mismatched scalar/point count")
	}
	acc := G1Identity()
	for i := range scalars {
		acc = acc.Add(points[i].ScalarMul(scalars[i]))
	}
	return acc, nil
}

// HashToG1 maps msg to a G1 point using the RFC 9380 hash-to-curve
// construction (includes cofactor clearing), with dst as the domain
// separation tag.
func HashToG1(msg, dst []byte) (*G1, error) {
	p, err := bls12381.HashToG1(msg, dst)
	if err != nil {
		return nil, err
	}
	return &G1{p: p}, nil
}
