package wire

import (
	"bytes"
	"crypto/ed25519"
	"reflect"
	"testing"

	"github.com/holiman/uint256"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/elgamal"
	"github.com/veyra-id/idcore/pkg/id"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/pssig"
	"github.com/veyra-id/idcore/pkg/ro"
	"github.com/veyra-id/idcore/pkg/sharing"
	"github.com/veyra-id/idcore/pkg/sigma"
)

func rng() *bytes.Reader { return bytes.NewReader(bytes.Repeat([]byte{0x53}, 65536)) }

// buildIdentityObject drives the Holder -> IP issuance half of the pipeline
// id_test.go's fixtures exercise, so the wire round trips below work on
// real protocol output rather than hand-assembled structs.
func buildIdentityObject(t *testing.T) (*id.GlobalContext, id.IpInfo, *id.AccCredentialInfo, *id.PreIdentityObjectSecrets, *id.IdentityObject) {
	t.Helper()

	global, err := id.GenerateGlobalContext([]byte("wire-test-global-context"))
	if err != nil {
		t.Fatalf("GenerateGlobalContext: %v", err)
	}

	sk, pk, err := pssig.GenerateKeys(id.PSKeyLength, rng())
	if err != nil {
		t.Fatalf("pssig.GenerateKeys: %v", err)
	}
	ipInfo := id.IpInfo{IpIdentity: 1, Description: "wire test IP", IpVerifyKey: pk}
	ipData := &id.IpData{IpInfo: ipInfo, IpSecretKey: sk}

	arID := id.ArIdentity(2)
	_, arPk, err := elgamal.GenerateKey(global.Generator, rng())
	if err != nil {
		t.Fatalf("elgamal.GenerateKey: %v", err)
	}
	ars := map[id.ArIdentity]id.ArInfo{arID: {ArIdentity: arID, Description: "wire test AR", ArPublicKey: arPk.Point()}}
	ctx := &id.IPContext{IpInfo: ipInfo, ArsInfos: ars, Global: global}

	acc, err := id.GenerateAccCredentialInfo(global, rng())
	if err != nil {
		t.Fatalf("GenerateAccCredentialInfo: %v", err)
	}

	pio, secrets, err := id.GeneratePreIdentityObject(ctx, acc, []id.ArIdentity{arID}, sharing.Threshold(1), rng())
	if err != nil {
		t.Fatalf("GeneratePreIdentityObject: %v", err)
	}

	validTo, err := id.NewYearMonth(2030, 12)
	if err != nil {
		t.Fatalf("NewYearMonth: %v", err)
	}
	createdAt, err := id.NewYearMonth(2026, 7)
	if err != nil {
		t.Fatalf("NewYearMonth: %v", err)
	}
	countryOfResidence, err := id.NewStringAttribute("DE")
	if err != nil {
		t.Fatalf("NewStringAttribute: %v", err)
	}
	attrs := &id.AttributeList{
		ValidTo:     validTo,
		CreatedAt:   createdAt,
		MaxAccounts: 8,
		Alist: map[id.AttributeTag]id.AttributeKind{
			id.AttributeTag(0): countryOfResidence,
			id.AttributeTag(8): id.NewNumericAttribute(uint256.NewInt(25)),
		},
	}

	idObj, err := id.SignIdentityObject(ipData, pio, attrs, rng())
	if err != nil {
		t.Fatalf("SignIdentityObject: %v", err)
	}
	finalized := id.FinalizeIdentityObject(idObj, secrets)
	return global, ipInfo, acc, secrets, finalized
}

// buildCDI extends buildIdentityObject through CreateCredentialDeploymentInfo.
func buildCDI(t *testing.T) (*id.GlobalContext, id.IpInfo, *id.CredentialDeploymentInfo) {
	t.Helper()
	global, ipInfo, acc, secrets, finalized := buildIdentityObject(t)

	keys := id.CredentialPublicKeys{
		Keys:      map[id.KeyIndex]ed25519.PublicKey{0: make(ed25519.PublicKey, ed25519.PublicKeySize)},
		Threshold: 1,
	}
	cdi, err := id.CreateCredentialDeploymentInfo(global, ipInfo.IpIdentity, finalized, acc, secrets, 0, []id.AttributeTag{8}, keys, rng())
	if err != nil {
		t.Fatalf("CreateCredentialDeploymentInfo: %v", err)
	}
	return global, ipInfo, cdi
}

func TestCommitmentRoundTrip(t *testing.T) {
	key, err := pedersen.GenerateCommitmentKey([]byte("wire-commitment-seed"))
	if err != nil {
		t.Fatalf("GenerateCommitmentKey: %v", err)
	}
	r, err := pedersen.GenerateRandomness(rng())
	if err != nil {
		t.Fatal(err)
	}
	original := key.Commit(pedersen.NewValue(curve.ScalarFromUint64(42)), r)

	data, err := Encode(CommitmentToWire(original))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var w Commitment
	if err := Decode(data, &w); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	decoded, err := CommitmentFromWire(w)
	if err != nil {
		t.Fatalf("CommitmentFromWire: %v", err)
	}
	if !decoded.Equal(original) {
		t.Fatal("decoded commitment does not match the original")
	}
}

func TestComEqProofRoundTrip(t *testing.T) {
	key, err := pedersen.GenerateCommitmentKey([]byte("wire-com-eq-seed"))
	if err != nil {
		t.Fatalf("GenerateCommitmentKey: %v", err)
	}
	base := curve.G1Generator().Add(curve.G1Generator())
	v := curve.ScalarFromUint64(7)
	r, err := pedersen.GenerateRandomness(rng())
	if err != nil {
		t.Fatal(err)
	}
	commitment := key.Commit(pedersen.NewValue(v), r)
	public := base.ScalarMul(v)

	secret := sigma.ComEqSecret{Value: v, Randomness: r.Scalar()}
	proof, err := sigma.ProveComEq(ro.New("wire-test-com-eq"), key, base, commitment, public, secret, rng())
	if err != nil {
		t.Fatalf("ProveComEq: %v", err)
	}

	data, err := Encode(ComEqProofToWire(proof))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	var w ComEqProof
	if err := Decode(data, &w); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	decoded, err := ComEqProofFromWire(w)
	if err != nil {
		t.Fatalf("ComEqProofFromWire: %v", err)
	}
	if !sigma.VerifyComEq(ro.New("wire-test-com-eq"), key, base, commitment, public, decoded) {
		t.Fatal("proof decoded off the wire failed to verify")
	}
}

func TestIdentityObjectRoundTrip(t *testing.T) {
	_, _, _, _, finalized := buildIdentityObject(t)

	original := IdentityObjectToWire(finalized)
	data, err := Encode(original)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var decodedWire IdentityObject
	if err := Decode(data, &decodedWire); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !reflect.DeepEqual(original, decodedWire) {
		t.Fatal("decoded wire form does not match the original")
	}

	decoded, err := IdentityObjectFromWire(decodedWire)
	if err != nil {
		t.Fatalf("IdentityObjectFromWire: %v", err)
	}
	if !decoded.PreIdentityObject.IdCredPub.Equal(finalized.PreIdentityObject.IdCredPub) {
		t.Fatal("decoded identity object does not match the original id_cred_pub")
	}
}

func TestCredentialDeploymentInfoRoundTrip(t *testing.T) {
	global, ipInfo, cdi := buildCDI(t)

	data, err := Encode(CredentialDeploymentInfoToWire(cdi))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var w CredentialDeploymentInfo
	if err := Decode(data, &w); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	decoded, err := CredentialDeploymentInfoFromWire(w)
	if err != nil {
		t.Fatalf("CredentialDeploymentInfoFromWire: %v", err)
	}

	ok, err := id.VerifyCredentialDeploymentInfo(global, ipInfo, decoded)
	if err != nil {
		t.Fatalf("VerifyCredentialDeploymentInfo: %v", err)
	}
	if !ok {
		t.Fatal("a CredentialDeploymentInfo round-tripped through the wire encoding must still verify")
	}
}

func TestDecodeRejectsNonCanonicalG1Encoding(t *testing.T) {
	key, err := pedersen.GenerateCommitmentKey([]byte("wire-non-canonical-seed"))
	if err != nil {
		t.Fatalf("GenerateCommitmentKey: %v", err)
	}
	r, err := pedersen.GenerateRandomness(rng())
	if err != nil {
		t.Fatal(err)
	}
	original := key.Commit(pedersen.NewValue(curve.ScalarFromUint64(9)), r)

	data, err := Encode(CommitmentToWire(original))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var w Commitment
	if err := Decode(data, &w); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	// Corrupt the compressed point so it no longer encodes a valid curve
	// element: CommitmentFromWire must reject it rather than silently
	// accepting a malformed group element.
	corrupted := append([]byte(nil), w.C...)
	corrupted[len(corrupted)-1] ^= 0xFF
	w.C = corrupted

	if _, err := CommitmentFromWire(w); err == nil {
		t.Fatal("CommitmentFromWire must reject a non-canonical G1 encoding")
	}
}

func TestEnvelopeRejectsUnsupportedVersion(t *testing.T) {
	payload := []byte("irrelevant payload")
	envelope := Wrap(CurrentVersion+1, payload)

	var out struct{}
	if err := Decode(envelope, &out); err == nil {
		t.Fatal("Decode must reject an envelope naming an unsupported version")
	}
}
