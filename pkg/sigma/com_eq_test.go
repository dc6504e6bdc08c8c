package sigma

import (
	"testing"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/ro"
)

func mustComEqKey(t *testing.T) *pedersen.CommitmentKey {
	t.Helper()
	key, err := pedersen.GenerateCommitmentKey([]byte("sigma-com-eq-seed"))
	if err != nil {
		t.Fatalf("GenerateCommitmentKey: %v", err)
	}
	return key
}

func TestComEqCorrectness(t *testing.T) {
	key := mustComEqKey(t)
	base := curve.G1Generator().Add(curve.G1Generator())

	v := curve.ScalarFromUint64(17)
	r, err := pedersen.GenerateRandomness(rng())
	if err != nil {
		t.Fatal(err)
	}
	commitment := key.Commit(pedersen.NewValue(v), r)
	public := base.ScalarMul(v)

	secret := ComEqSecret{Value: v, Randomness: r.Scalar()}
	proof, err := ProveComEq(ro.New("test-com-eq"), key, base, commitment, public, secret, rng())
	if err != nil {
		t.Fatalf("ProveComEq: %v", err)
	}

	if !VerifyComEq(ro.New("test-com-eq"), key, base, commitment, public, proof) {
		t.Fatal("honest com_eq proof failed to verify")
	}
}

func TestComEqSoundnessRejectsMismatchedValue(t *testing.T) {
	key := mustComEqKey(t)
	base := curve.G1Generator().Add(curve.G1Generator())

	v := curve.ScalarFromUint64(17)
	r, _ := pedersen.GenerateRandomness(rng())
	commitment := key.Commit(pedersen.NewValue(v), r)

	// public commits to a different value than the commitment.
	wrongV := curve.ScalarFromUint64(18)
	public := base.ScalarMul(wrongV)

	secret := ComEqSecret{Value: v, Randomness: r.Scalar()}
	proof, err := ProveComEq(ro.New("test-com-eq"), key, base, commitment, public, secret, rng())
	if err != nil {
		t.Fatal(err)
	}

	if VerifyComEq(ro.New("test-com-eq"), key, base, commitment, public, proof) {
		t.Fatal("proof must not verify when commitment and public disagree on the value")
	}
}

func TestComEqSoundnessRejectsWrongDomain(t *testing.T) {
	key := mustComEqKey(t)
	base := curve.G1Generator().Add(curve.G1Generator())

	v := curve.ScalarFromUint64(5)
	r, _ := pedersen.GenerateRandomness(rng())
	commitment := key.Commit(pedersen.NewValue(v), r)
	public := base.ScalarMul(v)

	secret := ComEqSecret{Value: v, Randomness: r.Scalar()}
	proof, err := ProveComEq(ro.New("test-com-eq"), key, base, commitment, public, secret, rng())
	if err != nil {
		t.Fatal(err)
	}

	if VerifyComEq(ro.New("different-domain"), key, base, commitment, public, proof) {
		t.Fatal("proof must not verify under a different transcript domain")
	}
}
