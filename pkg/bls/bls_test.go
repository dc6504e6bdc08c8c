package bls

import (
	"bytes"
	"testing"
)

func rng() *bytes.Reader { return bytes.NewReader(bytes.Repeat([]byte{0x42}, 16384)) }

func TestSignVerifyRoundTrip(t *testing.T) {
	sk, pk, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	msg := []byte("revoke account 7")
	sig, err := Sign(sk, msg)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err := Verify(pk, msg, sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("signature must verify under its own key and message")
	}
}

func TestFastAggregateVerify(t *testing.T) {
	const n = 4
	msg := []byte("shared revocation statement")
	pks := make([]*PublicKey, n)
	sigs := make([]*Signature, n)
	for i := 0; i < n; i++ {
		sk, pk, err := GenerateKey(rng())
		if err != nil {
			t.Fatalf("GenerateKey: %v", err)
		}
		sig, err := Sign(sk, msg)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		pks[i] = pk
		sigs[i] = sig
	}

	agg := AggregateSignatures(sigs)
	ok, err := FastAggregateVerify(pks, msg, agg)
	if err != nil {
		t.Fatalf("FastAggregateVerify: %v", err)
	}
	if !ok {
		t.Fatal("aggregate signature must verify under the aggregate public key")
	}

	// Tamper with one contributing signature: replace it with a signature
	// over a different message before aggregating.
	sk, _, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	wrongSig, err := Sign(sk, []byte("a different message"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	tamperedSigs := append([]*Signature{}, sigs...)
	tamperedSigs[0] = wrongSig
	tamperedAgg := AggregateSignatures(tamperedSigs)
	ok, err = FastAggregateVerify(pks, msg, tamperedAgg)
	if err != nil {
		t.Fatalf("FastAggregateVerify: %v", err)
	}
	if ok {
		t.Fatal("aggregate verify must fail when one contributing signature is wrong")
	}
}

func TestFastAggregateVerifyWrongMessageFails(t *testing.T) {
	sk1, pk1, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sk2, pk2, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	msg := []byte("m")
	sig1, _ := Sign(sk1, msg)
	sig2, _ := Sign(sk2, msg)
	agg := sig1.Aggregate(sig2)

	ok, err := FastAggregateVerify([]*PublicKey{pk1, pk2}, []byte("m-prime"), agg)
	if err != nil {
		t.Fatalf("FastAggregateVerify: %v", err)
	}
	if ok {
		t.Fatal("verification under a different message must fail")
	}
}

func TestAggregateVerifyDistinctMessages(t *testing.T) {
	sk1, pk1, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sk2, pk2, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	msg1 := []byte("message one")
	msg2 := []byte("message two")
	sig1, _ := Sign(sk1, msg1)
	sig2, _ := Sign(sk2, msg2)
	agg := sig1.Aggregate(sig2)

	ok, err := AggregateVerify([]*PublicKey{pk1, pk2}, [][]byte{msg1, msg2}, agg)
	if err != nil {
		t.Fatalf("AggregateVerify: %v", err)
	}
	if !ok {
		t.Fatal("distinct-message aggregate verify must succeed")
	}
}

func TestAggregateVerifyRejectsDuplicateMessages(t *testing.T) {
	sk1, pk1, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sk2, pk2, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	msg := []byte("same message twice")
	sig1, _ := Sign(sk1, msg)
	sig2, _ := Sign(sk2, msg)
	agg := sig1.Aggregate(sig2)

	_, err = AggregateVerify([]*PublicKey{pk1, pk2}, [][]byte{msg, msg}, agg)
	if err != ErrDuplicateMessage {
		t.Fatalf("expected ErrDuplicateMessage, got %v", err)
	}
}

func TestEmptyIsAggregationIdentity(t *testing.T) {
	sk, _, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sig, err := Sign(sk, []byte("x"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	combined := Empty().Aggregate(sig)
	if !combined.Equal(sig) {
		t.Fatal("Empty() must be the aggregation identity")
	}
}

func TestSignatureBytesRoundTrip(t *testing.T) {
	sk, _, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sig, err := Sign(sk, []byte("roundtrip"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	decoded, err := SignatureFromBytes(sig.Bytes())
	if err != nil {
		t.Fatalf("SignatureFromBytes: %v", err)
	}
	if !decoded.Equal(sig) {
		t.Fatal("signature must round-trip through bytes")
	}
}

func TestSortSignaturesIsLexicographic(t *testing.T) {
	sk1, _, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sk2, _, err := GenerateKey(rng())
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	sig1, _ := Sign(sk1, []byte("a"))
	sig2, _ := Sign(sk2, []byte("b"))
	sigs := []*Signature{sig2, sig1}
	SortSignatures(sigs)
	if !sigs[0].Less(sigs[1]) && !sigs[0].Equal(sigs[1]) {
		t.Fatal("signatures must be sorted byte-lexicographically")
	}
}
