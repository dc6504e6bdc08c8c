package sigma

import (
	"errors"
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/ro"
)

// ErrComLinLengthMismatch is returned when the input commitments, values,
// randomness, and coefficient slices passed to ComLin don't all agree in
// length.
var ErrComLinLengthMismatch = errors.New("sigma: com_lin input slices must have equal length")

// ComLinProof proves a public linear relation Σ coeffs[i]·v[i] = vTarget
// among the values committed in Commitments[i] (under key) and Target
// (under key), without revealing any v[i] or vTarget. This generalizes the
// spec's "com_mult" (a single-term relation, a·v = vTarget) and is used for
// the chunked-ElGamal recombination proof (spec.md §4.5) and for proving an
// AR's encrypted share matches a sharing-polynomial evaluation (spec.md
// §4.8 step 4), where the evaluation point's powers are the public
// coefficients.
type ComLinProof struct {
	Challenge  *curve.Scalar
	As         []*curve.G1 // one randomized commitment per input, in order
	WitnessesV []*curve.Scalar
	WitnessesR []*curve.Scalar
}

// ComLinSecret is one input's witness opening.
type ComLinSecret struct {
	Value      *curve.Scalar
	Randomness *curve.Scalar
}

// ProveComLin proves that Σ coeffs[i]·v[i] = vTarget, where commitments[i] =
// key.Commit(secrets[i].Value, secrets[i].Randomness). target's own
// randomness is not an independent witness: the verifier's check only holds
// when target == Σ coeffs[i]·commitments[i] as group elements (Pedersen
// commitments combine homomorphically, so this forces target's opening to be
// exactly (vTarget, Σ coeffs[i]·secrets[i].Randomness)). Callers must build
// target that way — see id.GeneratePreIdentityObject's share commitment —
// rather than committing to vTarget under independently sampled randomness.
func ProveComLin(
	oracle *ro.RandomOracle,
	key *pedersen.CommitmentKey,
	coeffs []*curve.Scalar,
	commitments []pedersen.Commitment,
	secrets []ComLinSecret,
	target pedersen.Commitment,
	rng io.Reader,
) (*ComLinProof, error) {
	n := len(coeffs)
	if len(commitments) != n || len(secrets) != n {
		return nil, ErrComLinLengthMismatch
	}

	oracle.AppendBytes([]byte("com_lin"))
	oracle.Append(key.G)
	oracle.Append(key.H)
	for i := 0; i < n; i++ {
		oracle.Append(coeffs[i])
		oracle.Append(commitments[i].Point())
	}
	oracle.Append(target.Point())

	alphaV := make([]*curve.Scalar, n)
	alphaR := make([]*curve.Scalar, n)
	as := make([]*curve.G1, n)
	for i := 0; i < n; i++ {
		av, err := curve.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		ar, err := curve.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		alphaV[i] = av
		alphaR[i] = ar
		as[i] = key.G.ScalarMul(av).Add(key.H.ScalarMul(ar))
		oracle.Append(as[i])
	}

	challenge := oracle.FinishToScalar()

	witnessesV := make([]*curve.Scalar, n)
	witnessesR := make([]*curve.Scalar, n)
	for i := 0; i < n; i++ {
		witnessesV[i] = alphaV[i].Sub(challenge.Mul(secrets[i].Value))
		witnessesR[i] = alphaR[i].Sub(challenge.Mul(secrets[i].Randomness))
	}

	return &ComLinProof{
		Challenge:  challenge,
		As:         as,
		WitnessesV: witnessesV,
		WitnessesR: witnessesR,
	}, nil
}

// VerifyComLin checks proof against commitments/target under key and the
// public coefficient vector coeffs.
func VerifyComLin(
	oracle *ro.RandomOracle,
	key *pedersen.CommitmentKey,
	coeffs []*curve.Scalar,
	commitments []pedersen.Commitment,
	target pedersen.Commitment,
	proof *ComLinProof,
) bool {
	n := len(coeffs)
	if len(commitments) != n || len(proof.As) != n || len(proof.WitnessesV) != n || len(proof.WitnessesR) != n {
		return false
	}

	oracle.AppendBytes([]byte("com_lin"))
	oracle.Append(key.G)
	oracle.Append(key.H)
	for i := 0; i < n; i++ {
		oracle.Append(coeffs[i])
		oracle.Append(commitments[i].Point())
	}
	oracle.Append(target.Point())

	recomputedAs := make([]*curve.G1, n)
	zTarget := curve.ZeroScalar()
	wTarget := curve.ZeroScalar()
	for i := 0; i < n; i++ {
		recomputedAs[i] = commitments[i].Point().ScalarMul(proof.Challenge).
			Add(key.G.ScalarMul(proof.WitnessesV[i])).
			Add(key.H.ScalarMul(proof.WitnessesR[i]))
		oracle.Append(recomputedAs[i])

		zTarget = zTarget.Add(coeffs[i].Mul(proof.WitnessesV[i]))
		wTarget = wTarget.Add(coeffs[i].Mul(proof.WitnessesR[i]))
	}

	challenge := oracle.FinishToScalar()
	if !challenge.Equal(proof.Challenge) {
		return false
	}
	for i := 0; i < n; i++ {
		if !recomputedAs[i].Equal(proof.As[i]) {
			return false
		}
	}

	// The per-input equations bind each commitments[i] to (v[i], r[i])
	// consistent with proof.WitnessesV/R; this final check ties the public
	// linear combination of those same witnesses to the target commitment,
	// which only holds if Σ coeffs[i]·v[i] == vTarget.
	lhs := target.Point().ScalarMul(challenge).Add(key.G.ScalarMul(zTarget)).Add(key.H.ScalarMul(wTarget))
	rhs := curve.G1Identity()
	for i := 0; i < n; i++ {
		rhs = rhs.Add(recomputedAs[i].ScalarMul(coeffs[i]))
	}
	return lhs.Equal(rhs)
}
