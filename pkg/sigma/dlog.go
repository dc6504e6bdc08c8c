// Package sigma implements the non-interactive sigma-protocol proofs of
// knowledge this module's identity layer composes into PreIdentityObject and
// CredentialDeploymentInfo proofs: dlog, commitment-to-dlog equality
// (possibly across two groups), commitment-to-encryption equality, linear
// relations among committed values, and an aggregate (AND-composed) dlog
// proof sharing a single challenge. Every protocol follows the same
// Schnorr-style shape: sample masking randomness, commit to it, derive a
// challenge from the transcript, respond, and let the verifier recompute the
// masking commitment from the response and challenge alone. Grounded on
// original_source/rust-src/sigma_protocols/src/dlog.rs (prove/verify pair)
// and original_source/rust-src/id/src/sigma_protocols/com_eq_different_groups.rs
// (multi-witness transcript shape, domain string convention).
package sigma

import (
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/ro"
)

// Because pkg/ro's FinishToScalar already guarantees a non-zero challenge by
// resampling internally (see pkg/ro/oracle.go), the protocols in this
// package never need their own mask-resampling loop: a single masking
// scalar per witness always yields a usable proof.

// DlogProof proves knowledge of secret x such that public = base^x, without
// revealing x.
type DlogProof struct {
	Challenge       *curve.Scalar
	RandomizedPoint *curve.G1
	Witness         *curve.Scalar
}

// ProveDlog proves knowledge of secret = x where public = base^x. oracle
// must already be positioned at the start of this sub-proof's transcript
// (callers compose several sigma proofs typically fork a shared RO via
// Split beforehand).
func ProveDlog(oracle *ro.RandomOracle, base, public *curve.G1, secret *curve.Scalar, rng io.Reader) (*DlogProof, error) {
	oracle.AppendBytes([]byte("dlog"))
	oracle.Append(base)
	oracle.Append(public)

	alpha, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	randomizedPoint := base.ScalarMul(alpha)
	oracle.Append(randomizedPoint)

	challenge := oracle.FinishToScalar()
	witness := alpha.Sub(challenge.Mul(secret))

	return &DlogProof{
		Challenge:       challenge,
		RandomizedPoint: randomizedPoint,
		Witness:         witness,
	}, nil
}

// VerifyDlog checks proof against the statement public = base^x.
func VerifyDlog(oracle *ro.RandomOracle, base, public *curve.G1, proof *DlogProof) bool {
	oracle.AppendBytes([]byte("dlog"))
	oracle.Append(base)
	oracle.Append(public)

	recomputed := public.ScalarMul(proof.Challenge).Add(base.ScalarMul(proof.Witness))
	oracle.Append(recomputed)

	challenge := oracle.FinishToScalar()
	return challenge.Equal(proof.Challenge) && recomputed.Equal(proof.RandomizedPoint)
}
