package id

import (
	"crypto/sha256"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/elgamal"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/pssig"
	"github.com/veyra-id/idcore/pkg/ro"
	"github.com/veyra-id/idcore/pkg/sharing"
	"github.com/veyra-id/idcore/pkg/sigma"
)

var (
	// ErrDuplicateArIdentity and ErrUnknownArIdentity are the two ways a
	// holder's chosen anonymity-revoker set can fail to resolve against
	// an IPContext.
	ErrDuplicateArIdentity = errors.New("id: duplicate anonymity revoker identity")
	ErrUnknownArIdentity   = errors.New("id: unknown anonymity revoker identity")

	// ErrTooFewArs is returned when fewer anonymity revokers are chosen
	// than the requested threshold requires.
	ErrTooFewArs = errors.New("id: fewer anonymity revokers chosen than the threshold requires")
)

// hkdfInfoCredentialHolder domain-separates the credential-holder-info
// derivation from any other secret this module might derive from the same
// root seed (e.g. a future account-level signing key derivation).
const hkdfInfoCredentialHolder = "idcore-credential-holder-info-v1"

// DeriveCredentialHolderInfo derives a CredentialHolderInfo deterministically
// from a root seed and an identity index, via HKDF-SHA256: expand(extract(seed),
// info ‖ identityIndex) reduced into Fr. Unlike GenerateCredentialHolderInfo
// (which samples a fresh id_cred_sec from an arbitrary CSPRNG stream), this
// is what lets a holder recover the same id_cred_sec across devices from a
// single backed-up seed phrase, the way a BIP-32-style wallet derives
// per-account keys — grounded on golang.org/x/crypto/hkdf's Extract/Expand
// split, the standard construction the rest of the pack's wallet-adjacent
// code reaches for over a hand-rolled HMAC chain.
func DeriveCredentialHolderInfo(global *GlobalContext, seed []byte, identityIndex uint32) (*CredentialHolderInfo, error) {
	info := []byte(hkdfInfoCredentialHolder)
	info = append(info, byte(identityIndex>>24), byte(identityIndex>>16), byte(identityIndex>>8), byte(identityIndex))

	reader := hkdf.New(sha256.New, seed, nil, info)
	wide := make([]byte, curve.ScalarSize+16)
	if _, err := io.ReadFull(reader, wide); err != nil {
		return nil, newError(UpstreamUnavailable, "hkdf", err)
	}
	idCredSec := curve.ScalarFromWideBytes(wide)
	return &CredentialHolderInfo{
		IdCredSec: idCredSec,
		IdCredPub: global.Generator.ScalarMul(idCredSec),
	}, nil
}

// GeneratePreIdentityObject builds the holder's request to an Identity
// Provider: commitments to id_cred_sec and a fresh PRF key, id_cred_sec's
// Shamir/Feldman sharing among the chosen anonymity revokers (each
// encrypted under that AR's ElGamal key and bound back to the sharing
// polynomial's commitments via a linear proof), a proof that id_cred_pub
// and the id_cred_sec commitment agree, and the blinded "unknown message"
// commitment the IP will sign without ever learning id_cred_sec. Grounded
// on original_source/rust-src/id/benches/verify_cdi.rs's generate_pio and
// spec.md §4.6/§4.8.
func GeneratePreIdentityObject(
	ctx *IPContext,
	acc *AccCredentialInfo,
	chosenArs []ArIdentity,
	threshold sharing.Threshold,
	rng io.Reader,
) (*PreIdentityObject, *PreIdentityObjectSecrets, error) {
	arInfos, err := ctx.ResolveArs(chosenArs)
	if err != nil {
		return nil, nil, err
	}
	if uint32(threshold) > uint32(len(arInfos)) {
		return nil, nil, newError(StructuralInvalid, "choice_ar_data.threshold", ErrTooFewArs)
	}

	global := ctx.Global
	onChainKey := global.OnChainCommitmentKey
	idCredSec := acc.CredHolderInfo.IdCredSec
	idCredPub := acc.CredHolderInfo.IdCredPub

	oracle := ro.New("pre_identity_object")

	rSc, err := pedersen.GenerateRandomness(rng)
	if err != nil {
		return nil, nil, err
	}
	cmmSc := onChainKey.Commit(pedersen.NewValue(idCredSec), rSc)

	rPrf, err := pedersen.GenerateRandomness(rng)
	if err != nil {
		return nil, nil, err
	}
	cmmPrf := onChainKey.Commit(pedersen.NewValue(acc.PrfKey), rPrf)

	poly, err := sharing.GeneratePolynomial(idCredSec, threshold, rng)
	if err != nil {
		return nil, nil, err
	}
	coeffs := poly.Coefficients()
	coeffRand := make([]pedersen.Randomness, len(coeffs))
	coeffRand[0] = rSc
	cmmSharingCoeff := make([]pedersen.Commitment, len(coeffs))
	cmmSharingCoeff[0] = cmmSc
	for i := 1; i < len(coeffs); i++ {
		r, err := pedersen.GenerateRandomness(rng)
		if err != nil {
			return nil, nil, err
		}
		coeffRand[i] = r
		cmmSharingCoeff[i] = onChainKey.Commit(pedersen.NewValue(coeffs[i]), r)
	}

	ipArData := make([]IpArData, len(arInfos))
	for i, ar := range arInfos {
		idx := uint64(ar.ArIdentity)
		share := poly.Evaluate(curve.ScalarFromUint64(idx))

		powers := make([]*curve.Scalar, len(coeffs))
		p := curve.OneScalar()
		x := curve.ScalarFromUint64(idx)
		for j := range powers {
			powers[j] = p
			p = p.Mul(x)
		}

		// The share commitment must be the homomorphic combination of the
		// coefficient commitments at this AR's evaluation point, not an
		// independently randomized commitment to share: VerifyComLin's
		// public check only holds when cmmShare == Σ powers[j]·cmmSharingCoeff[j],
		// since a Pedersen commitment's randomness combines exactly the way
		// its value does (Feldman's verifiable-secret-sharing trick).
		cmmShare := cmmSharingCoeff[0].ScalarMul(powers[0])
		rShare := powers[0].Mul(coeffRand[0].Scalar())
		for j := 1; j < len(coeffs); j++ {
			cmmShare = cmmShare.Add(cmmSharingCoeff[j].ScalarMul(powers[j]))
			rShare = rShare.Add(powers[j].Mul(coeffRand[j].Scalar()))
		}

		linSecrets := make([]sigma.ComLinSecret, len(coeffs))
		for j := range coeffs {
			linSecrets[j] = sigma.ComLinSecret{Value: coeffs[j], Randomness: coeffRand[j].Scalar()}
		}
		linProof, err := sigma.ProveComLin(oracle.Split(), onChainKey, powers, cmmSharingCoeff, linSecrets, cmmShare, rng)
		if err != nil {
			return nil, nil, err
		}

		arPk := elgamal.PublicKeyFromPoint(ar.ArPublicKey)
		ct, rEnc, err := elgamal.Encrypt(arPk, global.Generator, global.Generator, share, rng)
		if err != nil {
			return nil, nil, err
		}
		encEqProof, err := sigma.ProveComEncEq(
			oracle.Split(), onChainKey, arPk, global.Generator, global.Generator,
			cmmShare, ct, sigma.ComEncEqSecret{Value: share, CommitmentRandomness: rShare, EncryptionRandomness: rEnc}, rng,
		)
		if err != nil {
			return nil, nil, err
		}

		ipArData[i] = IpArData{
			ArIdentity:        ar.ArIdentity,
			ShareCommitment:   cmmShare,
			EncIdCredSecShare: ct,
			ProofLinShare:     linProof,
			ProofComEncEq:     encEqProof,
		}
	}

	proofComEqSc, err := sigma.ProveComEq(
		oracle.Split(), onChainKey, global.Generator, cmmSc, idCredPub,
		sigma.ComEqSecret{Value: idCredSec, Randomness: rSc.Scalar()}, rng,
	)
	if err != nil {
		return nil, nil, err
	}

	r0, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	pk := ctx.IpInfo.IpVerifyKey
	m0Point := pk.G.ScalarMul(r0).Add(pk.Ys[0].ScalarMul(idCredSec))
	unknownMessage := pssig.NewUnknownMessage(m0Point)

	psBaseKey := &pedersen.CommitmentKey{G: pk.Ys[0], H: pk.G}
	m0Commitment := pedersen.CommitmentFromPoint(m0Point)
	proofTwoKeys, err := sigma.ProveComEqTwoKeys(
		oracle.Split(), onChainKey, psBaseKey, cmmSc, m0Commitment,
		sigma.ComEqTwoKeysSecret{Value: idCredSec, RandCommit1: rSc.Scalar(), RandCommit2: r0}, rng,
	)
	if err != nil {
		return nil, nil, err
	}

	pio := &PreIdentityObject{
		IdCredPub:         idCredPub,
		ChoiceArData:      ChoiceArParameters{ArIdentities: chosenArs, Threshold: threshold},
		IpArData:          ipArData,
		CmmSc:             cmmSc,
		CmmPrf:            cmmPrf,
		CmmSharingCoeff:   cmmSharingCoeff,
		ProofComEqSc:      proofComEqSc,
		UnknownMessage:    unknownMessage,
		ProofComEqTwoKeys: proofTwoKeys,
	}
	secrets := &PreIdentityObjectSecrets{
		BlindingRandomness: r0,
		ScRandomness:       rSc.Scalar(),
		PrfRandomness:      rPrf.Scalar(),
	}
	return pio, secrets, nil
}

// FinalizeIdentityObject removes the blinding the holder introduced when
// constructing the PreIdentityObject's unknown message, yielding an
// IdentityObject whose Signature verifies directly via pssig.Verify
// against the plain message vector (id_cred_sec, attr_1, ..., attr_L-1).
func FinalizeIdentityObject(obj *IdentityObject, secrets *PreIdentityObjectSecrets) *IdentityObject {
	out := *obj
	out.Signature = *pssig.Unblind(&obj.Signature, secrets.BlindingRandomness)
	return &out
}
