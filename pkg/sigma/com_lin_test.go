package sigma

import (
	"testing"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/ro"
)

func mustComLinKey(t *testing.T) *pedersen.CommitmentKey {
	t.Helper()
	key, err := pedersen.GenerateCommitmentKey([]byte("sigma-com-lin-seed"))
	if err != nil {
		t.Fatalf("GenerateCommitmentKey: %v", err)
	}
	return key
}

// buildHonestComLin mirrors id.GeneratePreIdentityObject's share-commitment
// construction: target must be the homomorphic combination of commitments
// under coeffs, not an independently randomized commitment to the same
// value, since that is the only target opening VerifyComLin's check accepts.
func buildHonestComLin(t *testing.T) (key *pedersen.CommitmentKey, coeffs []*curve.Scalar, commitments []pedersen.Commitment, secrets []ComLinSecret, target pedersen.Commitment) {
	t.Helper()
	key = mustComLinKey(t)

	values := []*curve.Scalar{curve.ScalarFromUint64(3), curve.ScalarFromUint64(11), curve.ScalarFromUint64(29)}
	coeffs = []*curve.Scalar{curve.ScalarFromUint64(1), curve.ScalarFromUint64(2), curve.ScalarFromUint64(4)}

	commitments = make([]pedersen.Commitment, len(values))
	secrets = make([]ComLinSecret, len(values))
	for i, v := range values {
		r, err := pedersen.GenerateRandomness(rng())
		if err != nil {
			t.Fatal(err)
		}
		commitments[i] = key.Commit(pedersen.NewValue(v), r)
		secrets[i] = ComLinSecret{Value: v, Randomness: r.Scalar()}
	}

	target = commitments[0].ScalarMul(coeffs[0])
	for i := 1; i < len(commitments); i++ {
		target = target.Add(commitments[i].ScalarMul(coeffs[i]))
	}
	return key, coeffs, commitments, secrets, target
}

func TestComLinCorrectness(t *testing.T) {
	key, coeffs, commitments, secrets, target := buildHonestComLin(t)

	proof, err := ProveComLin(ro.New("test-com-lin"), key, coeffs, commitments, secrets, target, rng())
	if err != nil {
		t.Fatalf("ProveComLin: %v", err)
	}

	if !VerifyComLin(ro.New("test-com-lin"), key, coeffs, commitments, target, proof) {
		t.Fatal("honest com_lin proof failed to verify")
	}
}

func TestComLinSoundnessRejectsIndependentTarget(t *testing.T) {
	key, coeffs, commitments, secrets, _ := buildHonestComLin(t)

	// target commits to the same linear combination of values, but under
	// freshly sampled randomness instead of the coeffs-weighted combination
	// of the inputs' own randomness — this is exactly the bug this test
	// guards against: an independently randomized target commitment must
	// not verify, since VerifyComLin's check is a public group-element
	// equality that only holds for the homomorphic combination.
	wrongR, err := pedersen.GenerateRandomness(rng())
	if err != nil {
		t.Fatal(err)
	}
	wrongTarget := key.Commit(pedersen.NewValue(curve.ScalarFromUint64(3+2*11+4*29)), wrongR)

	proof, err := ProveComLin(ro.New("test-com-lin"), key, coeffs, commitments, secrets, wrongTarget, rng())
	if err != nil {
		t.Fatal(err)
	}

	if VerifyComLin(ro.New("test-com-lin"), key, coeffs, commitments, wrongTarget, proof) {
		t.Fatal("proof must not verify against an independently randomized target commitment")
	}
}

func TestComLinSoundnessRejectsWrongDomain(t *testing.T) {
	key, coeffs, commitments, secrets, target := buildHonestComLin(t)

	proof, err := ProveComLin(ro.New("test-com-lin"), key, coeffs, commitments, secrets, target, rng())
	if err != nil {
		t.Fatal(err)
	}

	if VerifyComLin(ro.New("different-domain"), key, coeffs, commitments, target, proof) {
		t.Fatal("proof must not verify under a different transcript domain")
	}
}
