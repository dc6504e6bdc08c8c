package id

import (
	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/elgamal"
	"github.com/veyra-id/idcore/pkg/sharing"
)

// ArSecretKey is one anonymity revoker's ElGamal decryption key. Kept
// offline except when that AR is participating in a legally ordered
// de-anonymization.
type ArSecretKey struct {
	Identity ArIdentity
	Secret   *elgamal.SecretKey
}

// DecryptShare recovers this AR's share of id_cred_sec's sharing
// polynomial, still in the exponent: g^{p(ar.Identity)}. No single AR's
// share — nor any coalition smaller than the original sharing threshold —
// reveals anything about id_cred_sec.
func (ar *ArSecretKey) DecryptShare(ct *elgamal.Ciphertext) *curve.G1 {
	return elgamal.Decrypt(ar.Secret, ct)
}

// RevealIdCredPub recombines threshold-or-more anonymity revokers'
// decrypted shares into id_cred_pub = g^{id_cred_sec}, via Lagrange
// interpolation in the exponent (pkg/sharing's ReconstructInExponent), so
// that the reconstructing parties never learn id_cred_sec itself — only
// enough to match it against the id_cred_pub already published in every
// CredentialDeploymentInfo the holder created.
func RevealIdCredPub(shares map[ArIdentity]*curve.G1) (*curve.G1, error) {
	sh := make([]sharing.Share, 0, len(shares))
	points := make([]*curve.G1, 0, len(shares))
	for arID, point := range shares {
		sh = append(sh, sharing.Share{Index: uint32(arID)})
		points = append(points, point)
	}
	return sharing.ReconstructInExponent(sh, points)
}
