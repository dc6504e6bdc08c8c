package curve

import (
	"errors"
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// G2Size is the compressed encoding length of a G2 element.
const G2Size = bls12381.SizeOfG2AffineCompressed

// ErrInvalidG2 is returned when a byte string does not decode to a valid,
// on-curve, in-subgroup G2 point.
var ErrInvalidG2 = errors.New("curve: invalid G2 encoding")

// G2 is a point on the BLS12-381 G2 subgroup.
type G2 struct {
	p bls12381.G2Affine
}

var g2Gen = func() *G2 {
	_, _, _, g2aff := bls12381.Generators()
	return &G2{p: g2aff}
}()

// G2Generator returns the standard BLS12-381 G2 generator, conventionally
// written g̃ in the sigma-protocol and PS-signature literature.
func G2Generator() *G2 {
	out := *g2Gen
	return &out
}

// G2Identity returns the G2 group identity.
func G2Identity() *G2 {
	var g G2
	g.p.X.SetZero()
	g.p.Y.SetZero()
	return &g
}

// IsIdentity reports whether g is the point at infinity.
func (g *G2) IsIdentity() bool {
	return g.p.IsInfinity()
}

// Add returns g + other.
func (g *G2) Add(other *G2) *G2 {
	var gj, oj, rj bls12381.G2Jac
	gj.FromAffine(&g.p)
	oj.FromAffine(&other.p)
	rj.Set(&gj).AddAssign(&oj)
	var out G2
	out.p.FromJacobian(&rj)
	return &out
}

// Neg returns -g.
func (g *G2) Neg() *G2 {
	var out G2
	out.p.Neg(&g.p)
	return &out
}

// ScalarMul returns s*g.
func (g *G2) ScalarMul(s *Scalar) *G2 {
	var gj, rj bls12381.G2Jac
	gj.FromAffine(&g.p)
	bi := s.v.BigInt(new(big.Int))
	rj.ScalarMultiplication(&gj, bi)
	var out G2
	out.p.FromJacobian(&rj)
	return &out
}

// Equal reports whether g and other encode the same point.
func (g *G2) Equal(other *G2) bool {
	return g.p.Equal(&other.p)
}

// Compress returns the 96-byte compressed encoding of g.
func (g *G2) Compress() [G2Size]byte {
	return g.p.Bytes()
}

// DecompressG2 decodes a compressed G2 point, rejecting non-canonical,
// off-curve, or out-of-subgroup encodings.
func DecompressG2(b [G2Size]byte) (*G2, error) {
	var out G2
	if _, err := out.p.SetBytes(b[:]); err != nil {
		return nil, ErrInvalidG2
	}
	return &out, nil
}

// HashToG2 maps msg to a G2 point using the RFC 9380 hash-to-curve
// construction, with dst as the domain separation tag.
func HashToG2(msg, dst []byte) (*G2, error) {
	p, err := bls12381.HashToG2(msg, dst)
	if err != nil {
		return nil, err
	}
	return &G2{p: p}, nil
}
