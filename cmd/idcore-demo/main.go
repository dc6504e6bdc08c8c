// Command idcore-demo drives the library's Holder -> IP -> Chain -> AR
// pipeline end to end against a fixed, deterministic RNG stream (spec.md
// §8 scenario S1/S2), for manual inspection of a working run. It holds no
// persistent state and is not a wallet: grounded on
// pkg/cmd/eth2030/main.go's run(args []string) int testable-entrypoint
// shape and startup-banner logging style, minimized to this one scenario.
package main

import (
	"bytes"
	"crypto/ed25519"
	"os"

	"github.com/holiman/uint256"

	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/elgamal"
	"github.com/veyra-id/idcore/pkg/id"
	"github.com/veyra-id/idcore/pkg/log"
	"github.com/veyra-id/idcore/pkg/pssig"
	"github.com/veyra-id/idcore/pkg/sharing"
)

func main() {
	os.Exit(run())
}

// run is the actual entry point, returning spec.md §6's exit-code
// convention: 0 on success, non-zero on I/O, parse, or crypto failure.
func run() int {
	logger := log.Default()
	logger.Info("idcore-demo starting")

	rng := bytes.NewReader(bytes.Repeat([]byte{0x01}, 1<<20))

	global, err := id.GenerateGlobalContext([]byte("idcore-demo-global-context"))
	if err != nil {
		logger.Error("generate global context", "err", err)
		return 1
	}
	logger.Info("global context ready")

	ipSk, ipPk, err := pssig.GenerateKeys(id.PSKeyLength, rng)
	if err != nil {
		logger.Error("generate IP keys", "err", err)
		return 1
	}
	ipData := &id.IpData{
		IpInfo:      id.IpInfo{IpIdentity: 1, Description: "demo identity provider", IpVerifyKey: ipPk},
		IpSecretKey: ipSk,
	}
	logger.Module("ip").Info("identity provider ready", "ip_identity", ipData.IpInfo.IpIdentity)

	ars := make(map[id.ArIdentity]id.ArInfo, 4)
	arSecrets := make(map[id.ArIdentity]*id.ArSecretKey, 4)
	for _, arID := range []id.ArIdentity{1, 2, 3, 4} {
		arSk, arPk, err := elgamal.GenerateKey(global.Generator, rng)
		if err != nil {
			logger.Error("generate AR key", "ar_identity", arID, "err", err)
			return 1
		}
		ars[arID] = id.ArInfo{ArIdentity: arID, Description: "demo anonymity revoker", ArPublicKey: arPk.Point()}
		arSecrets[arID] = &id.ArSecretKey{Identity: arID, Secret: arSk}
	}
	logger.Module("ar").Info("anonymity revokers ready", "count", len(ars))

	ctx := &id.IPContext{IpInfo: ipData.IpInfo, ArsInfos: ars, Global: global}

	acc, err := id.GenerateAccCredentialInfo(global, rng)
	if err != nil {
		logger.Error("generate holder credential info", "err", err)
		return 1
	}
	logger.Module("holder").Info("credential holder ready")

	threshold := sharing.Threshold(2)
	chosenArs := []id.ArIdentity{1, 2, 3, 4}
	pio, secrets, err := id.GeneratePreIdentityObject(ctx, acc, chosenArs, threshold, rng)
	if err != nil {
		logger.Error("generate pre-identity object", "err", err)
		return 1
	}
	logger.Module("holder").Info("pre-identity object generated", "ar_count", len(pio.IpArData), "threshold", threshold)

	if err := id.ValidatePreIdentityObject(ctx, pio); err != nil {
		logger.Module("ip").Error("validate pre-identity object", "err", err)
		return 1
	}
	logger.Module("ip").Info("pre-identity object validated")

	validTo, err := id.NewYearMonth(2030, 12)
	if err != nil {
		logger.Error("build valid-to year-month", "err", err)
		return 1
	}
	createdAt, err := id.NewYearMonth(2026, 7)
	if err != nil {
		logger.Error("build created-at year-month", "err", err)
		return 1
	}
	countryOfResidence, err := id.NewStringAttribute("DE")
	if err != nil {
		logger.Error("build attribute", "err", err)
		return 1
	}
	attrs := &id.AttributeList{
		ValidTo:     validTo,
		CreatedAt:   createdAt,
		MaxAccounts: 8,
		Alist: map[id.AttributeTag]id.AttributeKind{
			id.AttributeTag(0): countryOfResidence,
			id.AttributeTag(8): id.NewNumericAttribute(uint256.NewInt(31)),
		},
	}

	idObj, err := id.SignIdentityObject(ipData, pio, attrs, rng)
	if err != nil {
		logger.Module("ip").Error("sign identity object", "err", err)
		return 1
	}
	logger.Module("ip").Info("identity object signed")

	finalized := id.FinalizeIdentityObject(idObj, secrets)
	logger.Module("holder").Info("identity object unblinded")

	keys := id.CredentialPublicKeys{
		Keys:      map[id.KeyIndex]ed25519.PublicKey{0: make(ed25519.PublicKey, ed25519.PublicKeySize)},
		Threshold: 1,
	}
	cdi, err := id.CreateCredentialDeploymentInfo(global, ipData.IpInfo.IpIdentity, finalized, acc, secrets, 0, []id.AttributeTag{8}, keys, rng)
	if err != nil {
		logger.Module("holder").Error("create CDI", "err", err)
		return 1
	}
	logger.Module("holder").Info("credential deployment info #0 created", "reg_id", cdi.RegId.Compress())

	ok, err := id.VerifyCredentialDeploymentInfo(global, ipData.IpInfo, cdi)
	if err != nil {
		logger.Module("chain").Error("verify CDI", "err", err)
		return 1
	}
	if !ok {
		logger.Module("chain").Error("CDI failed to verify")
		return 1
	}
	logger.Module("chain").Info("credential deployment info verified")

	byAr := make(map[id.ArIdentity]*elgamal.Ciphertext, len(pio.IpArData))
	for _, d := range pio.IpArData {
		byAr[d.ArIdentity] = d.EncIdCredSecShare
	}
	decryptedShares := make(map[id.ArIdentity]*curve.G1, 2)
	for _, arID := range []id.ArIdentity{2, 4} {
		decryptedShares[arID] = arSecrets[arID].DecryptShare(byAr[arID])
	}
	reconstructed, err := id.RevealIdCredPub(decryptedShares)
	if err != nil {
		logger.Module("ar").Error("reveal id_cred_pub", "err", err)
		return 1
	}
	if !reconstructed.Equal(acc.CredHolderInfo.IdCredPub) {
		logger.Module("ar").Error("reconstructed id_cred_pub does not match original")
		return 1
	}
	logger.Module("ar").Info("anonymity revokers reconstructed id_cred_pub", "ar_quorum", []id.ArIdentity{2, 4})

	logger.Info("idcore-demo finished: full issuance and revocation pipeline succeeded")
	return 0
}
