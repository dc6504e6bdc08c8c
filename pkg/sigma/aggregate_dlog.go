package sigma

import (
	"errors"
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/ro"
)

// ErrAggregateDlogLengthMismatch is returned when bases/publics/secrets
// disagree in length.
var ErrAggregateDlogLengthMismatch = errors.New("sigma: aggregate dlog input slices must have equal length")

// AggregateDlogProof is an AND-composition of n independent dlog statements
// publics[i] = bases[i]^secrets[i], all answered under one shared
// Fiat-Shamir challenge. Used where a bundle of otherwise-unrelated dlog
// knowledge proofs (e.g. one per revealed attribute commitment opening in a
// CredentialDeploymentInfo) should be transcript-bound together rather than
// verified as n separate, independently forgeable proofs.
type AggregateDlogProof struct {
	Challenge        *curve.Scalar
	RandomizedPoints []*curve.G1
	Witnesses        []*curve.Scalar
}

// ProveAggregateDlog proves knowledge of secrets[i] for every i such that
// publics[i] = bases[i]^secrets[i], under one shared challenge.
func ProveAggregateDlog(oracle *ro.RandomOracle, bases, publics []*curve.G1, secrets []*curve.Scalar, rng io.Reader) (*AggregateDlogProof, error) {
	n := len(bases)
	if len(publics) != n || len(secrets) != n {
		return nil, ErrAggregateDlogLengthMismatch
	}

	oracle.AppendBytes([]byte("aggregate_dlog"))
	for i := 0; i < n; i++ {
		oracle.Append(bases[i])
		oracle.Append(publics[i])
	}

	alphas := make([]*curve.Scalar, n)
	randomizedPoints := make([]*curve.G1, n)
	for i := 0; i < n; i++ {
		alpha, err := curve.RandomScalar(rng)
		if err != nil {
			return nil, err
		}
		alphas[i] = alpha
		randomizedPoints[i] = bases[i].ScalarMul(alpha)
		oracle.Append(randomizedPoints[i])
	}

	challenge := oracle.FinishToScalar()
	witnesses := make([]*curve.Scalar, n)
	for i := 0; i < n; i++ {
		witnesses[i] = alphas[i].Sub(challenge.Mul(secrets[i]))
	}

	return &AggregateDlogProof{
		Challenge:        challenge,
		RandomizedPoints: randomizedPoints,
		Witnesses:        witnesses,
	}, nil
}

// VerifyAggregateDlog checks proof against (bases, publics).
func VerifyAggregateDlog(oracle *ro.RandomOracle, bases, publics []*curve.G1, proof *AggregateDlogProof) bool {
	n := len(bases)
	if len(publics) != n || len(proof.RandomizedPoints) != n || len(proof.Witnesses) != n {
		return false
	}

	oracle.AppendBytes([]byte("aggregate_dlog"))
	for i := 0; i < n; i++ {
		oracle.Append(bases[i])
		oracle.Append(publics[i])
	}

	recomputed := make([]*curve.G1, n)
	for i := 0; i < n; i++ {
		recomputed[i] = publics[i].ScalarMul(proof.Challenge).Add(bases[i].ScalarMul(proof.Witnesses[i]))
		oracle.Append(recomputed[i])
	}

	challenge := oracle.FinishToScalar()
	if !challenge.Equal(proof.Challenge) {
		return false
	}
	for i := 0; i < n; i++ {
		if !recomputed[i].Equal(proof.RandomizedPoints[i]) {
			return false
		}
	}
	return true
}
