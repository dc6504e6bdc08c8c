package id

import (
	"errors"
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/pssig"
	"github.com/veyra-id/idcore/pkg/ro"
	"github.com/veyra-id/idcore/pkg/sigma"
)

var (
	// ErrUnrevealedAttributeMissing is returned when the attribute list
	// an IdentityObject certifies names a tag the deployment neither
	// reveals nor hides, leaving a PS message slot unaccounted for.
	ErrUnrevealedAttributeMissing = errors.New("id: attribute tag neither revealed nor hidden")
	// ErrAttributeTagDoubleCounted is returned when a tag is both in the
	// revealed policy and the hidden-attribute set.
	ErrAttributeTagDoubleCounted = errors.New("id: attribute tag both revealed and hidden")
	// ErrKeyThresholdInvalid is returned when a CredentialPublicKeys
	// threshold is zero or exceeds the number of keys supplied.
	ErrKeyThresholdInvalid = errors.New("id: credential key threshold must be in 1..len(keys)")
)

// CreateCredentialDeploymentInfo builds the on-chain artifact a holder
// submits to deploy an account from a finalized IdentityObject: a
// PRF-derived reg_id, a fresh re-randomization of the IP's PS signature,
// and per-hidden-value commitments and proofs for id_cred_sec and every
// attribute not named in revealedTags. Mirrors verify_cdi.rs's
// create_credential, adapted to this module's selective-disclosure scheme
// (pkg/sigma's ComEq reused with base = the randomized signature's first
// component, see SPEC_FULL.md §4.8).
func CreateCredentialDeploymentInfo(
	global *GlobalContext,
	ipIdentity IpIdentity,
	finalized *IdentityObject,
	acc *AccCredentialInfo,
	secrets *PreIdentityObjectSecrets,
	accountIndex uint32,
	revealedTags []AttributeTag,
	keys CredentialPublicKeys,
	rng io.Reader,
) (*CredentialDeploymentInfo, error) {
	if keys.Threshold < 1 || uint32(keys.Threshold) > uint32(len(keys.Keys)) {
		return nil, newError(StructuralInvalid, "credential_public_keys.threshold", ErrKeyThresholdInvalid)
	}

	revealed := make(map[AttributeTag]bool, len(revealedTags))
	for _, t := range revealedTags {
		revealed[t] = true
	}

	al := finalized.AttributeList
	onChainKey := global.OnChainCommitmentKey

	regId, err := ComputeRegId(global, acc.PrfKey, accountIndex)
	if err != nil {
		return nil, err
	}

	randomizedSig, err := pssig.Randomize(&finalized.Signature, rng)
	if err != nil {
		return nil, err
	}

	oracle := ro.New("credential_deployment_info")

	regIdProof, err := proveRegId(oracle.Split(), global, regId, accountIndex, finalized.PreIdentityObject.CmmPrf, acc.PrfKey, secrets.PrfRandomness, rng)
	if err != nil {
		return nil, err
	}

	idCredSecD := randomizedSig.Sigma1.ScalarMul(acc.CredHolderInfo.IdCredSec)
	idCredSecProof, err := sigma.ProveComEq(
		oracle.Split(), onChainKey, randomizedSig.Sigma1,
		finalized.PreIdentityObject.CmmSc, idCredSecD,
		sigma.ComEqSecret{Value: acc.CredHolderInfo.IdCredSec, Randomness: secrets.ScRandomness}, rng,
	)
	if err != nil {
		return nil, err
	}

	policyVec := make(map[AttributeTag]AttributeKind, len(revealedTags))
	var hidden []HiddenAttribute
	for tag, val := range al.Alist {
		if revealed[tag] {
			policyVec[tag] = val
			continue
		}
		rAttr, err := pedersen.GenerateRandomness(rng)
		if err != nil {
			return nil, err
		}
		scalar := val.ToScalar()
		commitment := onChainKey.Commit(pedersen.NewValue(scalar), rAttr)
		d := randomizedSig.Sigma1.ScalarMul(scalar)
		proof, err := sigma.ProveComEq(
			oracle.Split(), onChainKey, randomizedSig.Sigma1, commitment, d,
			sigma.ComEqSecret{Value: scalar, Randomness: rAttr.Scalar()}, rng,
		)
		if err != nil {
			return nil, err
		}
		hidden = append(hidden, HiddenAttribute{Tag: tag, Commitment: commitment, D: d, Proof: proof})
	}
	for t := range revealed {
		if _, ok := al.Alist[t]; !ok {
			return nil, newError(StructuralInvalid, "policy.reveal", ErrUnrevealedAttributeMissing)
		}
	}

	arData := make([]ArDataEntry, len(finalized.PreIdentityObject.IpArData))
	for i, d := range finalized.PreIdentityObject.IpArData {
		arData[i] = ArDataEntry{ArIdentity: d.ArIdentity, EncIdCredSecShare: d.EncIdCredSecShare}
	}

	policy := Policy{
		ValidTo:       al.ValidTo,
		CreatedAt:     al.CreatedAt,
		PolicyVersion: 0,
		PolicyVec:     policyVec,
	}

	return &CredentialDeploymentInfo{
		RegId:                regId,
		AccountIndex:         accountIndex,
		IpIdentity:           ipIdentity,
		ArData:               arData,
		Policy:               policy,
		CredentialPublicKeys: keys,
		Signature:            *randomizedSig,
		IdCredSecCommitment:  finalized.PreIdentityObject.CmmSc,
		IdCredSecD:           idCredSecD,
		IdCredSecProof:       idCredSecProof,
		HiddenAttributes:     hidden,
		CmmPrf:               finalized.PreIdentityObject.CmmPrf,
		RegIdProof:           regIdProof,
	}, nil
}

// VerifyCredentialDeploymentInfo checks a CredentialDeploymentInfo against
// an Identity Provider's public key: the reg_id derivation proof, the
// id_cred_sec and hidden-attribute opening proofs, and the folded
// pairing-product check standing in for pssig.Verify over a message vector
// where some slots are only known through their ComEq-proved D_j points.
func VerifyCredentialDeploymentInfo(global *GlobalContext, ipInfo IpInfo, cdi *CredentialDeploymentInfo) (bool, error) {
	onChainKey := global.OnChainCommitmentKey
	pk := ipInfo.IpVerifyKey

	accounted := make(map[AttributeTag]bool, len(cdi.Policy.PolicyVec)+len(cdi.HiddenAttributes))
	for t := range cdi.Policy.PolicyVec {
		accounted[t] = true
	}
	for _, h := range cdi.HiddenAttributes {
		if accounted[h.Tag] {
			return false, newError(StructuralInvalid, "hidden_attributes", ErrAttributeTagDoubleCounted)
		}
		accounted[h.Tag] = true
	}

	oracle := ro.New("credential_deployment_info")

	if !verifyRegId(oracle.Split(), global, cdi.RegId, cdi.AccountIndex, cdi.CmmPrf, cdi.RegIdProof) {
		return false, newError(ProofInvalid, "reg_id_proof", nil)
	}

	if !sigma.VerifyComEq(oracle.Split(), onChainKey, cdi.Signature.Sigma1, cdi.IdCredSecCommitment, cdi.IdCredSecD, cdi.IdCredSecProof) {
		return false, newError(ProofInvalid, "id_cred_sec_proof", nil)
	}

	rhs := pk.XTilde
	for tag, val := range cdi.Policy.PolicyVec {
		slot := int(tag) + 1
		if slot >= pk.L() {
			return false, newError(StructuralInvalid, "policy.policy_vec.tag", ErrAttributeTagOutOfRange)
		}
		rhs = rhs.Add(pk.YTildes[slot].ScalarMul(val.ToScalar()))
	}

	g1s := []*curve.G1{cdi.Signature.Sigma1, cdi.IdCredSecD}
	g2s := []*curve.G2{rhs, pk.YTildes[0]}

	for _, h := range cdi.HiddenAttributes {
		if !sigma.VerifyComEq(oracle.Split(), onChainKey, cdi.Signature.Sigma1, h.Commitment, h.D, h.Proof) {
			return false, newError(ProofInvalid, "hidden_attribute_proof", nil)
		}
		slot := int(h.Tag) + 1
		if slot >= pk.L() {
			return false, newError(StructuralInvalid, "hidden_attributes.tag", ErrAttributeTagOutOfRange)
		}
		g1s = append(g1s, h.D)
		g2s = append(g2s, pk.YTildes[slot])
	}

	g1s = append(g1s, cdi.Signature.Sigma2)
	g2s = append(g2s, pk.GTilde.Neg())

	ok, err := curve.PairingCheck(g1s, g2s)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, newError(SignatureInvalid, "signature", nil)
	}
	return true, nil
}
