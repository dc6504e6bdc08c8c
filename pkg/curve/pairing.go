package curve

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// PairingCheck reports whether Π e(g1s[i], g2s[i]) == 1 over all i. Both
// slices must have equal, non-zero length. This is the single primitive
// every pairing-product verification in this module reduces to: PS
// signature verification checks e(σ', X̃·Ỹ^m) == e(σ'', g̃) by folding the
// left-hand pairing's inverse into the product, and BLS aggregate
// verification folds one pairing per aggregated message the same way.
func PairingCheck(g1s []*G1, g2s []*G2) (bool, error) {
	a := make([]bls12381.G1Affine, len(g1s))
	b := make([]bls12381.G2Affine, len(g2s))
	for i := range g1s {
		a[i] = g1s[i].p
	}
	for i := range g2s {
		b[i] = g2s[i].p
	}
	return bls12381.PairingCheck(a, b)
}

// Pair computes the single pairing e(p, q) in the target group GT,
// returned as a gnark-crypto GT element. Exposed for callers (the PS
// signature and PRF-derived reg_id code) that need to compare two
// pairings directly rather than fold them into a PairingCheck product.
func Pair(p *G1, q *G2) (bls12381.GT, error) {
	return bls12381.Pair([]bls12381.G1Affine{p.p}, []bls12381.G2Affine{q.p})
}
