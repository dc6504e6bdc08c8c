package pedersen

import (
	"bytes"
	"testing"

	"github.com/veyra-id/idcore/pkg/curve"
)

func mustKey(t *testing.T) *CommitmentKey {
	t.Helper()
	key, err := GenerateCommitmentKey([]byte("test-key-seed"))
	if err != nil {
		t.Fatalf("GenerateCommitmentKey: %v", err)
	}
	return key
}

func TestCommitOpenRoundTrip(t *testing.T) {
	key := mustKey(t)
	rng := bytes.NewReader(bytes.Repeat([]byte{0x42}, 4096))

	v := NewValue(curve.ScalarFromUint64(7))
	r, err := GenerateRandomness(rng)
	if err != nil {
		t.Fatalf("GenerateRandomness: %v", err)
	}

	c := key.Commit(v, r)
	if err := key.Open(c, v, r); err != nil {
		t.Fatalf("Open: %v", err)
	}
}

func TestOpenRejectsWrongValue(t *testing.T) {
	key := mustKey(t)
	rng := bytes.NewReader(bytes.Repeat([]byte{0x7a}, 4096))

	v := NewValue(curve.ScalarFromUint64(7))
	r, _ := GenerateRandomness(rng)
	c := key.Commit(v, r)

	wrong := NewValue(curve.ScalarFromUint64(8))
	if err := key.Open(c, wrong, r); err == nil {
		t.Fatal("expected Open to reject a mismatched value")
	}
}

func TestCommitmentHiding(t *testing.T) {
	key := mustKey(t)

	v := NewValue(curve.ScalarFromUint64(42))
	r1, _ := GenerateRandomness(bytes.NewReader(bytes.Repeat([]byte{0x11}, 4096)))
	r2, _ := GenerateRandomness(bytes.NewReader(bytes.Repeat([]byte{0x22}, 4096)))

	c1 := key.Commit(v, r1)
	c2 := key.Commit(v, r2)
	if c1.Equal(c2) {
		t.Fatal("commitments to the same value under different randomness must differ")
	}
}

func TestCommitmentHomomorphism(t *testing.T) {
	key := mustKey(t)

	v1 := NewValue(curve.ScalarFromUint64(3))
	v2 := NewValue(curve.ScalarFromUint64(5))
	r1, _ := GenerateRandomness(bytes.NewReader(bytes.Repeat([]byte{0x99}, 4096)))
	r2, _ := GenerateRandomness(bytes.NewReader(bytes.Repeat([]byte{0x88}, 4096)))

	c1 := key.Commit(v1, r1)
	c2 := key.Commit(v2, r2)
	sum := c1.Add(c2)

	expected := key.Commit(NewValue(curve.ScalarFromUint64(8)), Randomness{s: r1.s.Add(r2.s)})
	if !sum.Equal(expected) {
		t.Fatal("commitment addition must match commitment to the summed value/randomness")
	}
}
