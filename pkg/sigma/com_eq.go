package sigma

import (
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/ro"
)

// ComEqProof proves knowledge of (v, r) such that commitment = key.Commit(v,
// r) and public = base^v — i.e. that a Pedersen commitment and a bare dlog
// statement commit to the same scalar. Used for pok_sc/proof_com_eq_sc in
// spec.md §3: binding cmm_sc to id_cred_pub = g^id_cred_sec.
type ComEqProof struct {
	Challenge  *curve.Scalar
	A1         *curve.G1 // randomized commitment
	A2         *curve.G1 // randomized dlog point
	WitnessV   *curve.Scalar
	WitnessR   *curve.Scalar
}

// ComEqSecret is the witness for ComEqProof.
type ComEqSecret struct {
	Value      *curve.Scalar
	Randomness *curve.Scalar
}

// ProveComEq proves that commitment and public commit to/encode the same
// scalar under key and base respectively.
func ProveComEq(oracle *ro.RandomOracle, key *pedersen.CommitmentKey, base *curve.G1, commitment pedersen.Commitment, public *curve.G1, secret ComEqSecret, rng io.Reader) (*ComEqProof, error) {
	oracle.AppendBytes([]byte("com_eq"))
	oracle.Append(key.G)
	oracle.Append(key.H)
	oracle.Append(base)
	oracle.Append(commitment.Point())
	oracle.Append(public)

	alphaV, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	alphaR, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}

	a1 := key.G.ScalarMul(alphaV).Add(key.H.ScalarMul(alphaR))
	a2 := base.ScalarMul(alphaV)
	oracle.Append(a1)
	oracle.Append(a2)

	challenge := oracle.FinishToScalar()
	witnessV := alphaV.Sub(challenge.Mul(secret.Value))
	witnessR := alphaR.Sub(challenge.Mul(secret.Randomness))

	return &ComEqProof{
		Challenge: challenge,
		A1:        a1,
		A2:        a2,
		WitnessV:  witnessV,
		WitnessR:  witnessR,
	}, nil
}

// VerifyComEq checks proof against the statement (commitment, public) under
// (key, base).
func VerifyComEq(oracle *ro.RandomOracle, key *pedersen.CommitmentKey, base *curve.G1, commitment pedersen.Commitment, public *curve.G1, proof *ComEqProof) bool {
	oracle.AppendBytes([]byte("com_eq"))
	oracle.Append(key.G)
	oracle.Append(key.H)
	oracle.Append(base)
	oracle.Append(commitment.Point())
	oracle.Append(public)

	a1 := commitment.Point().ScalarMul(proof.Challenge).
		Add(key.G.ScalarMul(proof.WitnessV)).
		Add(key.H.ScalarMul(proof.WitnessR))
	a2 := public.ScalarMul(proof.Challenge).Add(base.ScalarMul(proof.WitnessV))

	oracle.Append(a1)
	oracle.Append(a2)
	challenge := oracle.FinishToScalar()

	return challenge.Equal(proof.Challenge) && a1.Equal(proof.A1) && a2.Equal(proof.A2)
}
