package id

import (
	"errors"
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/elgamal"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/pssig"
	"github.com/veyra-id/idcore/pkg/ro"
	"github.com/veyra-id/idcore/pkg/sigma"
)

// PSKeyLength is the number of message slots this module's PS key pairs
// are generated with: one for id_cred_sec, one per attribute tag in
// 0..MaxAttributeTag. Production deployments would size this to the full
// 256 possible AttributeTag values; this module covers every tag its
// worked examples and tests use, trading key-generation and signing cost
// for coverage beyond what it exercises.
const PSKeyLength = 1 + MaxAttributeTag + 1

var (
	// ErrArDataCountMismatch is returned when a PreIdentityObject's
	// IpArData doesn't name exactly the anonymity revokers its
	// ChoiceArData chose.
	ErrArDataCountMismatch = errors.New("id: ip_ar_data does not match choice_ar_data")
	// ErrSharingCoeffCountMismatch is returned when the number of Feldman
	// coefficient commitments doesn't match the declared threshold.
	ErrSharingCoeffCountMismatch = errors.New("id: cmm_sharing_coeff length does not match threshold")
	// ErrAttributeTagOutOfRange is returned when an attribute list names
	// a tag beyond MaxAttributeTag, which this module's fixed-size PS key
	// has no slot for.
	ErrAttributeTagOutOfRange = errors.New("id: attribute tag exceeds this key's maximum slot")
)

// ValidatePreIdentityObject checks every structural invariant and
// zero-knowledge proof a PreIdentityObject must satisfy before an Identity
// Provider is willing to sign it: the Feldman/ElGamal sharing data for
// every chosen anonymity revoker, the id_cred_pub/id_cred_sec binding, and
// the blinded PS commitment's consistency with that same id_cred_sec.
// Mirrors verify_cdi.rs's verify_credentials structure, adapted to this
// module's proof set.
func ValidatePreIdentityObject(ctx *IPContext, pio *PreIdentityObject) error {
	arInfos, err := ctx.ResolveArs(pio.ChoiceArData.ArIdentities)
	if err != nil {
		return err
	}
	if len(pio.IpArData) != len(arInfos) {
		return newError(StructuralInvalid, "ip_ar_data", ErrArDataCountMismatch)
	}
	if uint32(pio.ChoiceArData.Threshold) > uint32(len(arInfos)) || pio.ChoiceArData.Threshold < 1 {
		return newError(StructuralInvalid, "choice_ar_data.threshold", ErrTooFewArs)
	}
	if len(pio.CmmSharingCoeff) != int(pio.ChoiceArData.Threshold) {
		return newError(StructuralInvalid, "cmm_sharing_coeff", ErrSharingCoeffCountMismatch)
	}
	if !pio.CmmSharingCoeff[0].Equal(pio.CmmSc) {
		return newError(StructuralInvalid, "cmm_sharing_coeff[0]", errors.New("must equal cmm_sc"))
	}

	onChainKey := ctx.Global.OnChainCommitmentKey
	oracle := ro.New("pre_identity_object")

	byIdentity := make(map[ArIdentity]ArInfo, len(arInfos))
	for _, ar := range arInfos {
		byIdentity[ar.ArIdentity] = ar
	}

	for i, data := range pio.IpArData {
		ar, ok := byIdentity[data.ArIdentity]
		if !ok || ar.ArIdentity != pio.ChoiceArData.ArIdentities[i] {
			return newError(StructuralInvalid, "ip_ar_data", ErrArDataCountMismatch)
		}

		idx := uint64(ar.ArIdentity)
		powers := make([]*curve.Scalar, len(pio.CmmSharingCoeff))
		p := curve.OneScalar()
		x := curve.ScalarFromUint64(idx)
		for j := range powers {
			powers[j] = p
			p = p.Mul(x)
		}

		target := data.ShareCommitment
		if !sigma.VerifyComLin(oracle.Split(), onChainKey, powers, pio.CmmSharingCoeff, target, data.ProofLinShare) {
			return newError(ProofInvalid, "ip_ar_data.proof_lin_share", nil)
		}

		arPk := elgamal.PublicKeyFromPoint(ar.ArPublicKey)
		if !sigma.VerifyComEncEq(oracle.Split(), onChainKey, arPk, ctx.Global.Generator, ctx.Global.Generator, target, data.EncIdCredSecShare, data.ProofComEncEq) {
			return newError(ProofInvalid, "ip_ar_data.proof_com_enc_eq", nil)
		}
	}

	if !sigma.VerifyComEq(oracle.Split(), onChainKey, ctx.Global.Generator, pio.CmmSc, pio.IdCredPub, pio.ProofComEqSc) {
		return newError(ProofInvalid, "proof_com_eq_sc", nil)
	}

	pk := ctx.IpInfo.IpVerifyKey
	psBaseKey := &pedersen.CommitmentKey{G: pk.Ys[0], H: pk.G}
	m0Commitment := pedersen.CommitmentFromPoint(pio.UnknownMessage.Point())
	if !sigma.VerifyComEqTwoKeys(oracle.Split(), onChainKey, psBaseKey, pio.CmmSc, m0Commitment, pio.ProofComEqTwoKeys) {
		return newError(ProofInvalid, "proof_com_eq_two_keys", nil)
	}

	return nil
}

// SignIdentityObject blind-signs a validated PreIdentityObject's unknown
// message after folding in the IP's own knowledge of attrs, the attribute
// list this IP is willing to certify about the holder. The IP never
// recovers id_cred_sec: it only ever multiplies additional, plainly-known
// terms into the same G1 point the holder already blinded.
func SignIdentityObject(ip *IpData, pio *PreIdentityObject, attrs *AttributeList, rng io.Reader) (*IdentityObject, error) {
	if err := attrs.Validate(); err != nil {
		return nil, newError(StructuralInvalid, "attribute_list", err)
	}
	pk := ip.IpInfo.IpVerifyKey

	augmented := pio.UnknownMessage.Point()
	for tag, val := range attrs.Alist {
		slot := int(tag) + 1
		if slot >= pk.L() {
			return nil, newError(StructuralInvalid, "attribute_list.alist", ErrAttributeTagOutOfRange)
		}
		augmented = augmented.Add(pk.Ys[slot].ScalarMul(val.ToScalar()))
	}

	sig, err := pssig.SignUnknownMessage(ip.IpSecretKey, pk, pssig.NewUnknownMessage(augmented), rng)
	if err != nil {
		return nil, err
	}

	return &IdentityObject{
		PreIdentityObject: *pio,
		AttributeList:     *attrs,
		Signature:         *sig,
	}, nil
}
