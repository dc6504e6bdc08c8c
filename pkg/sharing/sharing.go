// Package sharing implements Shamir secret sharing with Feldman verifiable
// commitments over the BLS12-381 scalar field and G1, the mechanism this
// module uses to split id_cred_sec among the anonymity revokers so that no
// single AR can deanonymize a holder, while any threshold-sized coalition
// can. The polynomial arithmetic and Lagrange-at-0 reconstruction mirror
// the teacher's safe-prime threshold scheme one-for-one; only the group
// (Fr/G1 instead of a hand-picked safe-prime subgroup) and the Feldman
// commitment form (a Pedersen-style curve.G1 exponentiation instead of
// big.Int modexp) change.
package sharing

import (
	"errors"
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
)

var (
	ErrInvalidThreshold    = errors.New("sharing: threshold must be >= 1 and <= number of shares")
	ErrInsufficientShares  = errors.New("sharing: fewer shares supplied than the threshold requires")
	ErrDuplicateShareIndex = errors.New("sharing: duplicate share index")
	ErrInvalidShare        = errors.New("sharing: share does not match its commitment")
)

// Threshold is the minimum number of shares required to reconstruct a
// shared secret.
type Threshold uint32

// Share is one party's point on the sharing polynomial: (Index, f(Index)).
// Index is 1-based; index 0 is reserved for the secret itself.
type Share struct {
	Index uint32
	Value *curve.Scalar
}

// Commitments are the Feldman VSS commitments to a sharing polynomial's
// coefficients: Commitments[i] = g^{a_i}. Commitments[0] therefore commits
// to the shared secret itself (the polynomial's constant term), which is
// what lets a verifier check Commitments[0] against a previously-published
// id_cred_pub = g^{id_cred_sec} without learning any individual share.
type Commitments []*curve.G1

// Polynomial is a degree-(t-1) polynomial over Fr, coeffs[0] is the secret.
type Polynomial struct {
	coeffs []*curve.Scalar
}

// GeneratePolynomial samples a random degree-(threshold-1) polynomial whose
// constant term is the given secret.
func GeneratePolynomial(secret *curve.Scalar, threshold Threshold, rng io.Reader) (*Polynomial, error) {
	if threshold < 1 {
		return nil, ErrInvalidThreshold
	}
	coeffs := make([]*curve.Scalar, threshold)
	coeffs[0] = secret
	for i := 1; i < int(threshold); i++ {
		c, err := curve.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		coeffs[i] = c
	}
	return &Polynomial{coeffs: coeffs}, nil
}

// Coefficients returns p's coefficients, constant term first. Exposed for
// callers (the holder's AR-sharing commitment construction) that need to
// Pedersen-commit each coefficient individually rather than only the
// Feldman base^{a_i} form Commit produces.
func (p *Polynomial) Coefficients() []*curve.Scalar {
	out := make([]*curve.Scalar, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// Evaluate computes f(x) = Σ coeffs[i]·x^i.
func (p *Polynomial) Evaluate(x *curve.Scalar) *curve.Scalar {
	result := curve.ZeroScalar()
	xPow := curve.OneScalar()
	for _, c := range p.coeffs {
		result = result.Add(c.Mul(xPow))
		xPow = xPow.Mul(x)
	}
	return result
}

// Commit computes the Feldman VSS commitments g^{a_i} to p's coefficients,
// against the given base generator (conventionally curve.G1Generator()).
func (p *Polynomial) Commit(base *curve.G1) Commitments {
	out := make(Commitments, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = base.ScalarMul(c)
	}
	return out
}

// Share returns the polynomial's value at the given 1-based party index.
func (p *Polynomial) Share(index uint32) Share {
	x := curve.ScalarFromUint64(uint64(index))
	return Share{Index: index, Value: p.Evaluate(x)}
}

// SplitSecret samples a fresh degree-(threshold-1) polynomial with the given
// constant term and returns one share per index in 1..numShares, along with
// the Feldman commitments to the polynomial's coefficients.
func SplitSecret(secret *curve.Scalar, threshold Threshold, numShares uint32, base *curve.G1, rng io.Reader) ([]Share, Commitments, error) {
	if threshold < 1 || uint32(threshold) > numShares {
		return nil, nil, ErrInvalidThreshold
	}
	poly, err := GeneratePolynomial(secret, threshold, rng)
	if err != nil {
		return nil, nil, err
	}
	shares := make([]Share, numShares)
	for i := uint32(0); i < numShares; i++ {
		shares[i] = poly.Share(i + 1)
	}
	return shares, poly.Commit(base), nil
}

// VerifyShare checks share against the Feldman commitments: it reports
// whether base^{share.Value} == Π Commitments[j]^{share.Index^j}.
func VerifyShare(share Share, commitments Commitments, base *curve.G1) bool {
	if len(commitments) == 0 {
		return false
	}
	lhs := base.ScalarMul(share.Value)

	x := curve.ScalarFromUint64(uint64(share.Index))
	xPow := curve.OneScalar()
	rhs := curve.G1Identity()
	for _, cj := range commitments {
		rhs = rhs.Add(cj.ScalarMul(xPow))
		xPow = xPow.Mul(x)
	}
	return lhs.Equal(rhs)
}

func checkDuplicates(shares []Share) error {
	seen := make(map[uint32]bool, len(shares))
	for _, s := range shares {
		if seen[s.Index] {
			return ErrDuplicateShareIndex
		}
		seen[s.Index] = true
	}
	return nil
}

// lagrangeCoefficientAtZero computes the Lagrange basis coefficient for the
// share at position idx among shares, evaluated at x=0.
func lagrangeCoefficientAtZero(shares []Share, idx int) *curve.Scalar {
	num := curve.OneScalar()
	den := curve.OneScalar()
	xi := curve.ScalarFromUint64(uint64(shares[idx].Index))

	for j, sj := range shares {
		if j == idx {
			continue
		}
		xj := curve.ScalarFromUint64(uint64(sj.Index))
		num = num.Mul(xj.Neg())
		den = den.Mul(xi.Sub(xj))
	}
	return num.Mul(den.Inverse())
}

// Reconstruct recombines threshold-or-more shares into f(0), the shared
// secret, via Lagrange interpolation. Requires at least one share; callers
// are responsible for having collected at least the original threshold
// count — Reconstruct has no way to know what threshold produced the
// shares it's handed, and will (silently, per the underlying math) return
// the wrong value if given too few.
func Reconstruct(shares []Share) (*curve.Scalar, error) {
	if len(shares) == 0 {
		return nil, ErrInsufficientShares
	}
	if err := checkDuplicates(shares); err != nil {
		return nil, err
	}

	result := curve.ZeroScalar()
	for i, s := range shares {
		lambda := lagrangeCoefficientAtZero(shares, i)
		result = result.Add(s.Value.Mul(lambda))
	}
	return result, nil
}

// ReconstructInExponent recombines ElGamal-in-the-exponent decryption
// shares D_i = base^{f(i)} directly into base^{f(0)}, without ever
// recovering f(0) itself in the clear. This is what anonymity revokers use
// to jointly recover id_cred_pub = g^{id_cred_sec} from their individual
// decryption shares without any one of them learning id_cred_sec.
func ReconstructInExponent(shares []Share, exponentiated []*curve.G1) (*curve.G1, error) {
	if len(shares) == 0 || len(shares) != len(exponentiated) {
		return nil, ErrInsufficientShares
	}
	if err := checkDuplicates(shares); err != nil {
		return nil, err
	}

	acc := curve.G1Identity()
	for i := range shares {
		lambda := lagrangeCoefficientAtZero(shares, i)
		acc = acc.Add(exponentiated[i].ScalarMul(lambda))
	}
	return acc, nil
}
