package sigma

import (
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/ro"
)

// comEqTwoKeysDomain tags transcripts for ComEqTwoKeysProof, the same-group
// sibling of comEqDiffGroupsDomain: two G1 Pedersen commitments under
// independent commitment keys, rather than one G1 and one G2 key.
const comEqTwoKeysDomain = "com_eq_two_keys"

// ComEqTwoKeysProof proves that two G1 Pedersen commitments — under
// independent commitment keys, each possibly unrelated to the other —
// commit to the same scalar. Structurally this is
// ComEqDiffGroupsProof (same three-witness shape: a shared value witness
// plus one randomness witness per commitment) specialized to both
// commitments living in G1 instead of one G1 and one G2. Used to bind the
// holder's on-chain-commitment-key commitment to id_cred_sec (cmm_sc) to
// the independent blinded commitment the holder builds under the Identity
// Provider's own PS-signature bases when constructing the "unknown
// message" the IP blind-signs (spec.md §4.6) — two different commitment
// keys over the same value, both in G1.
type ComEqTwoKeysProof struct {
	Challenge *curve.Scalar
	S1        *curve.Scalar
	S2        *curve.Scalar
	T         *curve.Scalar
}

// ComEqTwoKeysSecret is the witness: the shared value and each
// commitment's individual randomness.
type ComEqTwoKeysSecret struct {
	Value       *curve.Scalar
	RandCommit1 *curve.Scalar
	RandCommit2 *curve.Scalar
}

// ProveComEqTwoKeys proves commitment1 (under key1) and commitment2 (under
// key2) commit to the same scalar.
func ProveComEqTwoKeys(
	oracle *ro.RandomOracle,
	key1 *pedersen.CommitmentKey,
	key2 *pedersen.CommitmentKey,
	commitment1 pedersen.Commitment,
	commitment2 pedersen.Commitment,
	secret ComEqTwoKeysSecret,
	rng io.Reader,
) (*ComEqTwoKeysProof, error) {
	oracle.AppendBytes([]byte(comEqTwoKeysDomain))
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
	alpha3, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}

	u := key1.G.ScalarMul(alpha1).Add(key1.H.ScalarMul(alpha2))
	w := key2.G.ScalarMul(alpha1).Add(key2.H.ScalarMul(alpha3))

	oracle.Append(u)
	oracle.Append(w)
	challenge := oracle.FinishToScalar()

	s1 := alpha1.Sub(challenge.Mul(secret.Value))
	s2 := alpha2.Sub(challenge.Mul(secret.RandCommit1))
	t := alpha3.Sub(challenge.Mul(secret.RandCommit2))

	return &ComEqTwoKeysProof{Challenge: challenge, S1: s1, S2: s2, T: t}, nil
}

// VerifyComEqTwoKeys checks proof against (commitment1, commitment2) under
// (key1, key2).
func VerifyComEqTwoKeys(
	oracle *ro.RandomOracle,
	key1 *pedersen.CommitmentKey,
	key2 *pedersen.CommitmentKey,
	commitment1 pedersen.Commitment,
	commitment2 pedersen.Commitment,
	proof *ComEqTwoKeysProof,
) bool {
	oracle.AppendBytes([]byte(comEqTwoKeysDomain))
	oracle.Append(commitment1.Point())
	oracle.Append(commitment2.Point())
	oracle.Append(key1.G)
	oracle.Append(key1.H)
	oracle.Append(key2.G)
	oracle.Append(key2.H)

	u := commitment1.Point().ScalarMul(proof.Challenge).
		Add(key1.G.ScalarMul(proof.S1)).
		Add(key1.H.ScalarMul(proof.S2))
	w := commitment2.Point().ScalarMul(proof.Challenge).
		Add(key2.G.ScalarMul(proof.S1)).
		Add(key2.H.ScalarMul(proof.T))

	oracle.Append(u)
	oracle.Append(w)
	challenge := oracle.FinishToScalar()
	return challenge.Equal(proof.Challenge)
}
