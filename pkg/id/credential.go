package id

import (
	"crypto/ed25519"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/elgamal"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/pssig"
	"github.com/veyra-id/idcore/pkg/sharing"
	"github.com/veyra-id/idcore/pkg/sigma"
)

// ChoiceArParameters names the anonymity revokers a holder has chosen to
// share id_cred_sec among, and the threshold required to reconstruct it.
type ChoiceArParameters struct {
	ArIdentities []ArIdentity
	Threshold    sharing.Threshold
}

// IpArData is one anonymity revoker's payload inside a PreIdentityObject:
// its encrypted share of the id_cred_sec sharing polynomial evaluated at
// its own identity, the linear proof tying that share back to the
// Feldman-committed polynomial coefficients, and the proof tying the
// encryption to the share's own Pedersen commitment.
type IpArData struct {
	ArIdentity        ArIdentity
	ShareCommitment   pedersen.Commitment
	EncIdCredSecShare *elgamal.Ciphertext
	ProofLinShare     *sigma.ComLinProof
	ProofComEncEq     *sigma.ComEncEqProof
}

// PreIdentityObject is what a holder sends an Identity Provider to request
// an IdentityObject: a commitment to id_cred_sec and id_cred_sec's
// Shamir/Feldman sharing among the chosen anonymity revokers, a commitment
// to a PRF key, and a blinded commitment to id_cred_sec under the IP's own
// PS-signature bases (the "unknown message" the IP signs without ever
// learning id_cred_sec). Grounded on
// original_source/rust-src/id/benches/verify_cdi.rs's PreIdentityObject
// and spec.md §3/§4.6.
type PreIdentityObject struct {
	IdCredPub            *curve.G1
	ChoiceArData         ChoiceArParameters
	IpArData             []IpArData
	CmmSc                pedersen.Commitment
	CmmPrf               pedersen.Commitment
	CmmSharingCoeff      []pedersen.Commitment
	ProofComEqSc         *sigma.ComEqProof
	UnknownMessage       pssig.UnknownMessage
	ProofComEqTwoKeys    *sigma.ComEqTwoKeysProof
}

// PreIdentityObjectSecrets is the holder-side state GeneratePreIdentityObject
// produces alongside the PreIdentityObject itself: values that never leave
// the holder and are needed later to finalize the signature the IP returns
// and to build a CredentialDeploymentInfo. Never serialized or transmitted.
type PreIdentityObjectSecrets struct {
	BlindingRandomness *curve.Scalar // r0: blinds UnknownMessage
	ScRandomness       *curve.Scalar // randomness behind CmmSc
	PrfRandomness      *curve.Scalar // randomness behind CmmPrf
}

// Zeroize overwrites every secret scalar this struct holds.
func (s *PreIdentityObjectSecrets) Zeroize() {
	s.BlindingRandomness.Zeroize()
	s.ScRandomness.Zeroize()
	s.PrfRandomness.Zeroize()
}

// IdentityObject is the Identity Provider's response to a PreIdentityObject:
// the same PreIdentityObject data, the attribute list the IP has certified,
// and the PS signature over the full message vector (id_cred_sec, followed
// by one slot per attribute tag). As returned by SignIdentityObject the
// signature is still blinded by the holder's own commitment randomness;
// FinalizeIdentityObject removes that blinding.
type IdentityObject struct {
	PreIdentityObject PreIdentityObject
	AttributeList     AttributeList
	Signature         pssig.Signature
}

// HiddenAttribute is one attribute a CredentialDeploymentInfo keeps hidden
// from the chain: a fresh Pedersen commitment to its value, the signature's
// re-randomized first component raised to that value, and the proof tying
// the two together — exactly the "commitment opens to the same value this
// point is the base-σ1 exponentiation of" relation pkg/sigma's ComEq
// already proves generically.
type HiddenAttribute struct {
	Tag        AttributeTag
	Commitment pedersen.Commitment
	D          *curve.G1
	Proof      *sigma.ComEqProof
}

// ArDataEntry is an anonymity revoker's encrypted id_cred_sec share as
// carried on-chain in a CredentialDeploymentInfo, so that a future
// revocation order has something to point ARs at without needing to go
// back to the original PreIdentityObject.
type ArDataEntry struct {
	ArIdentity        ArIdentity
	EncIdCredSecShare *elgamal.Ciphertext
}

// CredentialPublicKeys is the set of account signing keys a credential
// deployment installs, and the number of them required to authorize a
// transaction.
type CredentialPublicKeys struct {
	Keys      map[KeyIndex]ed25519.PublicKey
	Threshold SignatureThreshold
}

// CredentialDeploymentInfo is the on-chain artifact a chain verifies and
// deploys: a PRF-derived reg_id unique to this account, the anonymity
// revokers' encrypted id_cred_sec shares, the revealed policy, the
// account's signing keys, and a re-randomized PS signature together with
// per-hidden-value proofs that let a verifier check the signature's
// pairing equation without learning id_cred_sec or any unrevealed
// attribute. Grounded on verify_cdi.rs's CredentialDeploymentInfo and
// verify_cdi benchmark flow.
type CredentialDeploymentInfo struct {
	RegId                *curve.G1
	AccountIndex         uint32
	IpIdentity           IpIdentity
	ArData               []ArDataEntry
	Policy               Policy
	CredentialPublicKeys CredentialPublicKeys

	Signature pssig.Signature // re-randomized by the holder per deployment

	IdCredSecCommitment pedersen.Commitment
	IdCredSecD          *curve.G1
	IdCredSecProof      *sigma.ComEqProof

	HiddenAttributes []HiddenAttribute

	CmmPrf     pedersen.Commitment
	RegIdProof *sigma.ComEqProof
}
