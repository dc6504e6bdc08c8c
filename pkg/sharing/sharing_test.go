package sharing

import (
	"bytes"
	"testing"

	"github.com/veyra-id/idcore/pkg/curve"
)

func rng() *bytes.Reader {
	return bytes.NewReader(bytes.Repeat([]byte{0x5c}, 8192))
}

func TestSplitAndReconstruct(t *testing.T) {
	secret := curve.ScalarFromUint64(123456789)
	shares, _, err := SplitSecret(secret, 3, 5, curve.G1Generator(), rng())
	if err != nil {
		t.Fatalf("SplitSecret: %v", err)
	}

	subset := shares[1:4] // any 3 of 5
	got, err := Reconstruct(subset)
	if err != nil {
		t.Fatalf("Reconstruct: %v", err)
	}
	if !got.Equal(secret) {
		t.Fatal("reconstructed secret does not match original")
	}
}

func TestReconstructDifferentSubsetsAgree(t *testing.T) {
	secret := curve.ScalarFromUint64(987654321)
	shares, _, err := SplitSecret(secret, 3, 5, curve.G1Generator(), rng())
	if err != nil {
		t.Fatalf("SplitSecret: %v", err)
	}

	a, err := Reconstruct(shares[0:3])
	if err != nil {
		t.Fatalf("Reconstruct a: %v", err)
	}
	b, err := Reconstruct([]Share{shares[0], shares[2], shares[4]})
	if err != nil {
		t.Fatalf("Reconstruct b: %v", err)
	}
	if !a.Equal(b) {
		t.Fatal("different qualifying subsets must reconstruct the same secret")
	}
}

func TestVerifyShare(t *testing.T) {
	secret := curve.ScalarFromUint64(42)
	base := curve.G1Generator()
	shares, commitments, err := SplitSecret(secret, 2, 4, base, rng())
	if err != nil {
		t.Fatalf("SplitSecret: %v", err)
	}

	for _, s := range shares {
		if !VerifyShare(s, commitments, base) {
			t.Fatalf("share %d failed Feldman verification", s.Index)
		}
	}
}

func TestVerifyShareRejectsTamperedValue(t *testing.T) {
	secret := curve.ScalarFromUint64(7)
	base := curve.G1Generator()
	shares, commitments, err := SplitSecret(secret, 2, 3, base, rng())
	if err != nil {
		t.Fatalf("SplitSecret: %v", err)
	}

	tampered := shares[0]
	tampered.Value = tampered.Value.Add(curve.OneScalar())
	if VerifyShare(tampered, commitments, base) {
		t.Fatal("tampered share must fail Feldman verification")
	}
}

func TestCommitmentsToZeroMatchesPublicKey(t *testing.T) {
	secret := curve.ScalarFromUint64(555)
	base := curve.G1Generator()
	_, commitments, err := SplitSecret(secret, 2, 3, base, rng())
	if err != nil {
		t.Fatalf("SplitSecret: %v", err)
	}
	want := base.ScalarMul(secret)
	if !commitments[0].Equal(want) {
		t.Fatal("commitments[0] must equal base^secret")
	}
}

func TestReconstructInExponent(t *testing.T) {
	secret := curve.ScalarFromUint64(99)
	base := curve.G1Generator()
	shares, _, err := SplitSecret(secret, 2, 3, base, rng())
	if err != nil {
		t.Fatalf("SplitSecret: %v", err)
	}

	// Simulate an ElGamal-in-the-exponent base distinct from the
	// commitment base, e.g. a per-session ephemeral point.
	expBase := base.Add(base)
	exponentiated := make([]*curve.G1, len(shares))
	for i, s := range shares {
		exponentiated[i] = expBase.ScalarMul(s.Value)
	}

	got, err := ReconstructInExponent(shares, exponentiated)
	if err != nil {
		t.Fatalf("ReconstructInExponent: %v", err)
	}
	want := expBase.ScalarMul(secret)
	if !got.Equal(want) {
		t.Fatal("exponent reconstruction must equal expBase^secret")
	}
}

func TestReconstructRejectsDuplicateIndex(t *testing.T) {
	secret := curve.ScalarFromUint64(1)
	shares, _, err := SplitSecret(secret, 2, 3, curve.G1Generator(), rng())
	if err != nil {
		t.Fatalf("SplitSecret: %v", err)
	}
	dup := []Share{shares[0], shares[0]}
	if _, err := Reconstruct(dup); err != ErrDuplicateShareIndex {
		t.Fatalf("expected ErrDuplicateShareIndex, got %v", err)
	}
}

func TestSplitSecretRejectsInvalidThreshold(t *testing.T) {
	secret := curve.ScalarFromUint64(1)
	if _, _, err := SplitSecret(secret, 5, 3, curve.G1Generator(), rng()); err != ErrInvalidThreshold {
		t.Fatalf("expected ErrInvalidThreshold, got %v", err)
	}
}
