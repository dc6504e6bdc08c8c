package sigma

import (
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/elgamal"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/ro"
)

// ComEncEqProof proves that a Pedersen commitment and an ElGamal ciphertext
// encrypt/commit to the same scalar in the exponent — the proof each
// PreIdentityObject attaches per anonymity revoker (spec.md §3's
// proof_com_enc_eq) binding the AR's enc_id_cred_pub_share to the sharing
// polynomial's commitment at that AR's identity.
type ComEncEqProof struct {
	Challenge *curve.Scalar
	A1        *curve.G1 // randomized commitment opening
	A2        *curve.G1 // randomized ciphertext first coordinate
	A3        *curve.G1 // randomized ciphertext second coordinate
	WitnessV  *curve.Scalar
	WitnessR  *curve.Scalar
	WitnessS  *curve.Scalar
}

// ComEncEqSecret is the witness for ComEncEqProof: the shared value, the
// commitment's randomness, and the ciphertext's encryption randomness.
type ComEncEqSecret struct {
	Value               *curve.Scalar
	CommitmentRandomness *curve.Scalar
	EncryptionRandomness *curve.Scalar
}

// ProveComEncEq proves that commitment (under key) and ciphertext (under pk,
// encryption base, and exponent base h) both bind to the same scalar value.
func ProveComEncEq(
	oracle *ro.RandomOracle,
	key *pedersen.CommitmentKey,
	pk *elgamal.PublicKey,
	encBase, h *curve.G1,
	commitment pedersen.Commitment,
	ciphertext *elgamal.Ciphertext,
	secret ComEncEqSecret,
	rng io.Reader,
) (*ComEncEqProof, error) {
	oracle.AppendBytes([]byte("com_enc_eq"))
	oracle.Append(key.G)
	oracle.Append(key.H)
	oracle.Append(pk.Point())
	oracle.Append(encBase)
	oracle.Append(h)
	oracle.Append(commitment.Point())
	oracle.Append(ciphertext.C1)
	oracle.Append(ciphertext.C2)

	alphaV, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	alphaR, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	alphaS, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}

	a1 := key.G.ScalarMul(alphaV).Add(key.H.ScalarMul(alphaR))
	a2 := encBase.ScalarMul(alphaS)
	a3 := pk.Point().ScalarMul(alphaS).Add(h.ScalarMul(alphaV))

	oracle.Append(a1)
	oracle.Append(a2)
	oracle.Append(a3)
	challenge := oracle.FinishToScalar()

	return &ComEncEqProof{
		Challenge: challenge,
		A1:        a1,
		A2:        a2,
		A3:        a3,
		WitnessV:  alphaV.Sub(challenge.Mul(secret.Value)),
		WitnessR:  alphaR.Sub(challenge.Mul(secret.CommitmentRandomness)),
		WitnessS:  alphaS.Sub(challenge.Mul(secret.EncryptionRandomness)),
	}, nil
}

// VerifyComEncEq checks proof against (commitment, ciphertext) under (key,
// pk, encBase, h).
func VerifyComEncEq(
	oracle *ro.RandomOracle,
	key *pedersen.CommitmentKey,
	pk *elgamal.PublicKey,
	encBase, h *curve.G1,
	commitment pedersen.Commitment,
	ciphertext *elgamal.Ciphertext,
	proof *ComEncEqProof,
) bool {
	oracle.AppendBytes([]byte("com_enc_eq"))
	oracle.Append(key.G)
	oracle.Append(key.H)
	oracle.Append(pk.Point())
	oracle.Append(encBase)
	oracle.Append(h)
	oracle.Append(commitment.Point())
	oracle.Append(ciphertext.C1)
	oracle.Append(ciphertext.C2)

	a1 := commitment.Point().ScalarMul(proof.Challenge).
		Add(key.G.ScalarMul(proof.WitnessV)).
		Add(key.H.ScalarMul(proof.WitnessR))
	a2 := ciphertext.C1.ScalarMul(proof.Challenge).Add(encBase.ScalarMul(proof.WitnessS))
	a3 := ciphertext.C2.ScalarMul(proof.Challenge).
		Add(pk.Point().ScalarMul(proof.WitnessS)).
		Add(h.ScalarMul(proof.WitnessV))

	oracle.Append(a1)
	oracle.Append(a2)
	oracle.Append(a3)
	challenge := oracle.FinishToScalar()

	return challenge.Equal(proof.Challenge)
}
