package id

import (
	"errors"
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/ro"
	"github.com/veyra-id/idcore/pkg/sigma"
)

// ErrDegeneratePRF is returned when an account's PRF key and index happen
// to sum to zero mod the scalar field order, the one input for which the
// Dodis–Yampolskiy PRF reg_id = g^{1/(k+x)} is undefined.
var ErrDegeneratePRF = errors.New("id: prf key and account index sum to zero")

// ComputeRegId derives an account's registration id via the
// Dodis–Yampolskiy PRF: g^{1/(k+x)}, where k is the holder's PRF key and x
// the account index. Two different account indices under the same PRF key
// yield unlinkable reg_ids; recomputing with the same (k, x) always yields
// the same reg_id, which is what lets a chain reject a second deployment
// attempting to reuse one.
func ComputeRegId(global *GlobalContext, prfKey *curve.Scalar, accountIndex uint32) (*curve.G1, error) {
	denom := prfKey.Add(curve.ScalarFromUint64(uint64(accountIndex)))
	if denom.IsZero() {
		return nil, ErrDegeneratePRF
	}
	return global.Generator.ScalarMul(denom.Inverse()), nil
}

// regIdProofPublic computes g·reg_id^{-x}, the dlog-style public value
// proveRegId/verifyRegId tie to reg_id^k: from reg_id^{k+x} = g it follows
// reg_id^k = g·reg_id^{-x}, turning the PRF relation into an ordinary dlog
// statement with base reg_id, so pkg/sigma's generic ComEq can prove it
// without a dedicated PRF-proof primitive.
func regIdProofPublic(global *GlobalContext, regId *curve.G1, accountIndex uint32) *curve.G1 {
	x := curve.ScalarFromUint64(uint64(accountIndex))
	return global.Generator.Add(regId.ScalarMul(x).Neg())
}

// proveRegId proves that reg_id was correctly derived from the same PRF
// key committed to in cmmPrf, binding the two together with the
// accountIndex as a public input.
func proveRegId(
	oracle *ro.RandomOracle,
	global *GlobalContext,
	regId *curve.G1,
	accountIndex uint32,
	cmmPrf pedersen.Commitment,
	prfKey *curve.Scalar,
	prfRandomness *curve.Scalar,
	rng io.Reader,
) (*sigma.ComEqProof, error) {
	public := regIdProofPublic(global, regId, accountIndex)
	return sigma.ProveComEq(oracle, global.OnChainCommitmentKey, regId, cmmPrf, public,
		sigma.ComEqSecret{Value: prfKey, Randomness: prfRandomness}, rng)
}

// verifyRegId checks proof against (reg_id, accountIndex, cmmPrf).
func verifyRegId(
	oracle *ro.RandomOracle,
	global *GlobalContext,
	regId *curve.G1,
	accountIndex uint32,
	cmmPrf pedersen.Commitment,
	proof *sigma.ComEqProof,
) bool {
	public := regIdProofPublic(global, regId, accountIndex)
	return sigma.VerifyComEq(oracle, global.OnChainCommitmentKey, regId, cmmPrf, public, proof)
}
