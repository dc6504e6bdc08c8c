package sigma

import (
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/ro"
)

// comEqDiffGroupsDomain is the literal Fiat-Shamir domain tag this proof
// must use, preserved byte-exactly per spec.md §9's open question and §4.3:
// "Domain string: com_eq_different_groups". Any implementation of this
// protocol that absorbs a different tag produces an incompatible
// transcript.
const comEqDiffGroupsDomain = "com_eq_different_groups"

// ComEqDiffGroupsProof proves that a G1 commitment and a G2 commitment
// commit to the same underlying scalar, even though the two commitments
// live in different groups with (potentially) different commitment keys.
// Used to bind cmm_sc (G1) to a G2-side statement when the two sides of the
// identity protocol need to agree on id_cred_sec without a direct dlog
// comparison. Grounded on
// original_source/rust-src/id/src/sigma_protocols/com_eq_different_groups.rs.
type ComEqDiffGroupsProof struct {
	Challenge *curve.Scalar
	S1        *curve.Scalar
	S2        *curve.Scalar
	T         *curve.Scalar
}

// ComEqDiffGroupsSecret is the witness: the shared value and the two
// commitments' individual randomness.
type ComEqDiffGroupsSecret struct {
	Value      *curve.Scalar
	RandCommit1 *curve.Scalar
	RandCommit2 *curve.Scalar
}

// ProveComEqDiffGroups proves commitment1 (under key1, in G1) and
// commitment2 (under key2, in G2) commit to the same scalar.
func ProveComEqDiffGroups(
	oracle *ro.RandomOracle,
	key1 *pedersen.CommitmentKey,
	key2 *pedersen.CommitmentKeyG2,
	commitment1 pedersen.Commitment,
	commitment2 pedersen.CommitmentG2,
	secret ComEqDiffGroupsSecret,
	rng io.Reader,
) (*ComEqDiffGroupsProof, error) {
	oracle.AppendBytes([]byte(comEqDiffGroupsDomain))
	oracle.Append(commitment1.Point())
	oracle.Append(commitment2.Point())
	oracle.Append(key1.G)
	oracle.Append(key1.H)
	oracle.Append(key2.G)
	oracle.Append(key2.H)

	alpha1, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	alpha2, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	cR, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}

	u := key1.G.ScalarMul(alpha1).Add(key1.H.ScalarMul(alpha2))
	v := key2.G.ScalarMul(alpha1).Add(key2.H.ScalarMul(cR))

	oracle.Append(u)
	oracle.Append(v)
	challenge := oracle.FinishToScalar()

	s1 := alpha1.Sub(challenge.Mul(secret.Value))
	s2 := alpha2.Sub(challenge.Mul(secret.RandCommit1))
	t := cR.Sub(challenge.Mul(secret.RandCommit2))

	return &ComEqDiffGroupsProof{Challenge: challenge, S1: s1, S2: s2, T: t}, nil
}

// VerifyComEqDiffGroups checks proof against (commitment1, commitment2)
// under (key1, key2).
func VerifyComEqDiffGroups(
	oracle *ro.RandomOracle,
	key1 *pedersen.CommitmentKey,
	key2 *pedersen.CommitmentKeyG2,
	commitment1 pedersen.Commitment,
	commitment2 pedersen.CommitmentG2,
	proof *ComEqDiffGroupsProof,
) bool {
	oracle.AppendBytes([]byte(comEqDiffGroupsDomain))
	oracle.Append(commitment1.Point())
	oracle.Append(commitment2.Point())
	oracle.Append(key1.G)
	oracle.Append(key1.H)
	oracle.Append(key2.G)
	oracle.Append(key2.H)

	u := commitment1.Point().ScalarMul(proof.Challenge).
		Add(key1.G.ScalarMul(proof.S1)).
		Add(key1.H.ScalarMul(proof.S2))
	v := commitment2.Point().ScalarMul(proof.Challenge).
		Add(key2.G.ScalarMul(proof.S1)).
		Add(key2.H.ScalarMul(proof.T))

	oracle.Append(u)
	oracle.Append(v)
	challenge := oracle.FinishToScalar()
	return challenge.Equal(proof.Challenge)
}
