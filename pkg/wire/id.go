package wire

import (
	"crypto/ed25519"
	"sort"

	"github.com/holiman/uint256"
	"github.com/veyra-id/idcore/pkg/id"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/pssig"
	"github.com/veyra-id/idcore/pkg/sharing"
)

// GlobalContext is the wire form of id.GlobalContext.
type GlobalContext struct {
	CommitmentKeyG []byte
	CommitmentKeyH []byte
	Generator      []byte
}

func GlobalContextToWire(g *id.GlobalContext) GlobalContext {
	return GlobalContext{
		CommitmentKeyG: EncodeG1(g.OnChainCommitmentKey.G),
		CommitmentKeyH: EncodeG1(g.OnChainCommitmentKey.H),
		Generator:      EncodeG1(g.Generator),
	}
}

func GlobalContextFromWire(w GlobalContext) (*id.GlobalContext, error) {
	gg, err := DecodeG1(w.CommitmentKeyG)
	if err != nil {
		return nil, err
	}
	hh, err := DecodeG1(w.CommitmentKeyH)
	if err != nil {
		return nil, err
	}
	gen, err := DecodeG1(w.Generator)
	if err != nil {
		return nil, err
	}
	return &id.GlobalContext{
		OnChainCommitmentKey: &pedersen.CommitmentKey{G: gg, H: hh},
		Generator:            gen,
	}, nil
}

// ArInfo is the wire form of id.ArInfo.
type ArInfo struct {
	ArIdentity  id.ArIdentity
	Description string
	ArPublicKey []byte
}

func ArInfoToWire(a id.ArInfo) ArInfo {
	return ArInfo{ArIdentity: a.ArIdentity, Description: a.Description, ArPublicKey: EncodeG1(a.ArPublicKey)}
}

func ArInfoFromWire(w ArInfo) (id.ArInfo, error) {
	p, err := DecodeG1(w.ArPublicKey)
	if err != nil {
		return id.ArInfo{}, err
	}
	return id.ArInfo{ArIdentity: w.ArIdentity, Description: w.Description, ArPublicKey: p}, nil
}

// IpInfo is the wire form of id.IpInfo.
type IpInfo struct {
	IpIdentity  id.IpIdentity
	Description string
	IpVerifyKey PSPublicKey
}

func IpInfoToWire(ip id.IpInfo) IpInfo {
	return IpInfo{IpIdentity: ip.IpIdentity, Description: ip.Description, IpVerifyKey: PSPublicKeyToWire(ip.IpVerifyKey)}
}

func IpInfoFromWire(w IpInfo) (id.IpInfo, error) {
	pk, err := PSPublicKeyFromWire(w.IpVerifyKey)
	if err != nil {
		return id.IpInfo{}, err
	}
	return id.IpInfo{IpIdentity: w.IpIdentity, Description: w.Description, IpVerifyKey: pk}, nil
}

// AttributeKind is the wire form of id.AttributeKind.
type AttributeKind struct {
	IsString bool
	Str      string
	Num      []byte // 32-byte big-endian, present iff !IsString
}

func AttributeKindToWire(a id.AttributeKind) AttributeKind {
	if s, ok := a.StringValue(); ok {
		return AttributeKind{IsString: true, Str: s}
	}
	n, _ := a.NumericValue()
	var numBytes []byte
	if n != nil {
		b := n.Bytes32()
		numBytes = b[:]
	}
	return AttributeKind{IsString: false, Num: numBytes}
}

func AttributeKindFromWire(w AttributeKind) (id.AttributeKind, error) {
	if w.IsString {
		return id.NewStringAttribute(w.Str)
	}
	var buf [32]byte
	copy(buf[:], w.Num)
	n := new(uint256.Int).SetBytes32(buf[:])
	return id.NewNumericAttribute(n), nil
}

// AttributeEntry is one (tag, value) pair of an attribute list or policy,
// in the length-prefixed sorted-by-key sequence spec.md §6 requires in
// place of a JSON/RLP-unsupported map.
type AttributeEntry struct {
	Tag   id.AttributeTag
	Value AttributeKind
}

// AttributeList is the wire form of id.AttributeList.
type AttributeList struct {
	ValidTo     id.YearMonth
	CreatedAt   id.YearMonth
	MaxAccounts uint8
	Alist       []AttributeEntry
}

func AttributeListToWire(al *id.AttributeList) AttributeList {
	tags := al.SortedTags()
	entries := make([]AttributeEntry, len(tags))
	for i, t := range tags {
		entries[i] = AttributeEntry{Tag: t, Value: AttributeKindToWire(al.Alist[t])}
	}
	return AttributeList{ValidTo: al.ValidTo, CreatedAt: al.CreatedAt, MaxAccounts: al.MaxAccounts, Alist: entries}
}

func AttributeListFromWire(w AttributeList) (*id.AttributeList, error) {
	alist := make(map[id.AttributeTag]id.AttributeKind, len(w.Alist))
	for _, e := range w.Alist {
		v, err := AttributeKindFromWire(e.Value)
		if err != nil {
			return nil, err
		}
		alist[e.Tag] = v
	}
	return &id.AttributeList{ValidTo: w.ValidTo, CreatedAt: w.CreatedAt, MaxAccounts: w.MaxAccounts, Alist: alist}, nil
}

// Policy is the wire form of id.Policy.
type Policy struct {
	ValidTo       id.YearMonth
	CreatedAt     id.YearMonth
	PolicyVersion uint32
	PolicyVec     []AttributeEntry
}

func PolicyToWire(p id.Policy) Policy {
	tags := p.RevealedTags()
	entries := make([]AttributeEntry, len(tags))
	for i, t := range tags {
		entries[i] = AttributeEntry{Tag: t, Value: AttributeKindToWire(p.PolicyVec[t])}
	}
	return Policy{ValidTo: p.ValidTo, CreatedAt: p.CreatedAt, PolicyVersion: p.PolicyVersion, PolicyVec: entries}
}

func PolicyFromWire(w Policy) (id.Policy, error) {
	vec := make(map[id.AttributeTag]id.AttributeKind, len(w.PolicyVec))
	for _, e := range w.PolicyVec {
		v, err := AttributeKindFromWire(e.Value)
		if err != nil {
			return id.Policy{}, err
		}
		vec[e.Tag] = v
	}
	return id.Policy{ValidTo: w.ValidTo, CreatedAt: w.CreatedAt, PolicyVersion: w.PolicyVersion, PolicyVec: vec}, nil
}

// ChoiceArParameters is the wire form of id.ChoiceArParameters.
type ChoiceArParameters struct {
	ArIdentities []id.ArIdentity
	Threshold    sharing.Threshold
}

// IpArData is the wire form of id.IpArData.
type IpArData struct {
	ArIdentity        id.ArIdentity
	ShareCommitment   Commitment
	EncIdCredSecShare Ciphertext
	ProofLinShare     ComLinProof
	ProofComEncEq     ComEncEqProof
}

func IpArDataToWire(d id.IpArData) IpArData {
	return IpArData{
		ArIdentity:        d.ArIdentity,
		ShareCommitment:   CommitmentToWire(d.ShareCommitment),
		EncIdCredSecShare: CiphertextToWire(d.EncIdCredSecShare),
		ProofLinShare:     ComLinProofToWire(d.ProofLinShare),
		ProofComEncEq:     ComEncEqProofToWire(d.ProofComEncEq),
	}
}

func IpArDataFromWire(w IpArData) (id.IpArData, error) {
	sc, err := CommitmentFromWire(w.ShareCommitment)
	if err != nil {
		return id.IpArData{}, err
	}
	ct, err := CiphertextFromWire(w.EncIdCredSecShare)
	if err != nil {
		return id.IpArData{}, err
	}
	lin, err := ComLinProofFromWire(w.ProofLinShare)
	if err != nil {
		return id.IpArData{}, err
	}
	enc, err := ComEncEqProofFromWire(w.ProofComEncEq)
	if err != nil {
		return id.IpArData{}, err
	}
	return id.IpArData{
		ArIdentity: w.ArIdentity, ShareCommitment: sc, EncIdCredSecShare: ct,
		ProofLinShare: lin, ProofComEncEq: enc,
	}, nil
}

// PreIdentityObject is the wire form of id.PreIdentityObject.
type PreIdentityObject struct {
	IdCredPub         []byte
	ChoiceArData      ChoiceArParameters
	IpArData          []IpArData
	CmmSc             Commitment
	CmmPrf            Commitment
	CmmSharingCoeff   []Commitment
	ProofComEqSc      ComEqProof
	UnknownMessage    []byte
	ProofComEqTwoKeys ComEqTwoKeysProof
}

func PreIdentityObjectToWire(p *id.PreIdentityObject) PreIdentityObject {
	ipArData := make([]IpArData, len(p.IpArData))
	for i, d := range p.IpArData {
		ipArData[i] = IpArDataToWire(d)
	}
	coeff := make([]Commitment, len(p.CmmSharingCoeff))
	for i, c := range p.CmmSharingCoeff {
		coeff[i] = CommitmentToWire(c)
	}
	return PreIdentityObject{
		IdCredPub:         EncodeG1(p.IdCredPub),
		ChoiceArData:      ChoiceArParameters{ArIdentities: p.ChoiceArData.ArIdentities, Threshold: p.ChoiceArData.Threshold},
		IpArData:          ipArData,
		CmmSc:             CommitmentToWire(p.CmmSc),
		CmmPrf:            CommitmentToWire(p.CmmPrf),
		CmmSharingCoeff:   coeff,
		ProofComEqSc:      ComEqProofToWire(p.ProofComEqSc),
		UnknownMessage:    EncodeG1(p.UnknownMessage.Point()),
		ProofComEqTwoKeys: ComEqTwoKeysProofToWire(p.ProofComEqTwoKeys),
	}
}

func PreIdentityObjectFromWire(w PreIdentityObject) (*id.PreIdentityObject, error) {
	idCredPub, err := DecodeG1(w.IdCredPub)
	if err != nil {
		return nil, err
	}
	ipArData := make([]id.IpArData, len(w.IpArData))
	for i, d := range w.IpArData {
		v, err := IpArDataFromWire(d)
		if err != nil {
			return nil, err
		}
		ipArData[i] = v
	}
	coeffs := make([]pedersen.Commitment, len(w.CmmSharingCoeff))
	for i, c := range w.CmmSharingCoeff {
		v, err := CommitmentFromWire(c)
		if err != nil {
			return nil, err
		}
		coeffs[i] = v
	}
	cmmSc, err := CommitmentFromWire(w.CmmSc)
	if err != nil {
		return nil, err
	}
	cmmPrf, err := CommitmentFromWire(w.CmmPrf)
	if err != nil {
		return nil, err
	}
	proofSc, err := ComEqProofFromWire(w.ProofComEqSc)
	if err != nil {
		return nil, err
	}
	msgPoint, err := DecodeG1(w.UnknownMessage)
	if err != nil {
		return nil, err
	}
	proofTwoKeys, err := ComEqTwoKeysProofFromWire(w.ProofComEqTwoKeys)
	if err != nil {
		return nil, err
	}
	return &id.PreIdentityObject{
		IdCredPub:         idCredPub,
		ChoiceArData:      id.ChoiceArParameters{ArIdentities: w.ChoiceArData.ArIdentities, Threshold: w.ChoiceArData.Threshold},
		IpArData:          ipArData,
		CmmSc:             cmmSc,
		CmmPrf:            cmmPrf,
		CmmSharingCoeff:   coeffs,
		ProofComEqSc:      proofSc,
		UnknownMessage:    pssig.NewUnknownMessage(msgPoint),
		ProofComEqTwoKeys: proofTwoKeys,
	}, nil
}

// IdentityObject is the wire form of id.IdentityObject.
type IdentityObject struct {
	PreIdentityObject PreIdentityObject
	AttributeList     AttributeList
	Signature         PSSignature
}

func IdentityObjectToWire(o *id.IdentityObject) IdentityObject {
	return IdentityObject{
		PreIdentityObject: PreIdentityObjectToWire(&o.PreIdentityObject),
		AttributeList:     AttributeListToWire(&o.AttributeList),
		Signature:         PSSignatureToWire(&o.Signature),
	}
}

func IdentityObjectFromWire(w IdentityObject) (*id.IdentityObject, error) {
	pio, err := PreIdentityObjectFromWire(w.PreIdentityObject)
	if err != nil {
		return nil, err
	}
	al, err := AttributeListFromWire(w.AttributeList)
	if err != nil {
		return nil, err
	}
	sig, err := PSSignatureFromWire(w.Signature)
	if err != nil {
		return nil, err
	}
	return &id.IdentityObject{PreIdentityObject: *pio, AttributeList: *al, Signature: *sig}, nil
}

// HiddenAttribute is the wire form of id.HiddenAttribute.
type HiddenAttribute struct {
	Tag        id.AttributeTag
	Commitment Commitment
	D          []byte
	Proof      ComEqProof
}

func HiddenAttributeToWire(h id.HiddenAttribute) HiddenAttribute {
	return HiddenAttribute{Tag: h.Tag, Commitment: CommitmentToWire(h.Commitment), D: EncodeG1(h.D), Proof: ComEqProofToWire(h.Proof)}
}

func HiddenAttributeFromWire(w HiddenAttribute) (id.HiddenAttribute, error) {
	c, err := CommitmentFromWire(w.Commitment)
	if err != nil {
		return id.HiddenAttribute{}, err
	}
	d, err := DecodeG1(w.D)
	if err != nil {
		return id.HiddenAttribute{}, err
	}
	p, err := ComEqProofFromWire(w.Proof)
	if err != nil {
		return id.HiddenAttribute{}, err
	}
	return id.HiddenAttribute{Tag: w.Tag, Commitment: c, D: d, Proof: p}, nil
}

// ArDataEntry is the wire form of id.ArDataEntry.
type ArDataEntry struct {
	ArIdentity        id.ArIdentity
	EncIdCredSecShare Ciphertext
}

// KeyEntry is one (index, key) pair of a CredentialPublicKeys map.
type KeyEntry struct {
	Index id.KeyIndex
	Key   []byte
}

// CredentialPublicKeys is the wire form of id.CredentialPublicKeys.
type CredentialPublicKeys struct {
	Keys      []KeyEntry
	Threshold id.SignatureThreshold
}

func CredentialPublicKeysToWire(k id.CredentialPublicKeys) CredentialPublicKeys {
	indices := make([]int, 0, len(k.Keys))
	for idx := range k.Keys {
		indices = append(indices, int(idx))
	}
	sort.Ints(indices)
	entries := make([]KeyEntry, len(indices))
	for i, idx := range indices {
		entries[i] = KeyEntry{Index: id.KeyIndex(idx), Key: []byte(k.Keys[id.KeyIndex(idx)])}
	}
	return CredentialPublicKeys{Keys: entries, Threshold: k.Threshold}
}

func CredentialPublicKeysFromWire(w CredentialPublicKeys) id.CredentialPublicKeys {
	keys := make(map[id.KeyIndex]ed25519.PublicKey, len(w.Keys))
	for _, e := range w.Keys {
		keys[e.Index] = ed25519.PublicKey(e.Key)
	}
	return id.CredentialPublicKeys{Keys: keys, Threshold: w.Threshold}
}

// CredentialDeploymentInfo is the wire form of id.CredentialDeploymentInfo.
type CredentialDeploymentInfo struct {
	RegId                []byte
	AccountIndex         uint32
	IpIdentity           id.IpIdentity
	ArData               []ArDataEntry
	Policy               Policy
	CredentialPublicKeys CredentialPublicKeys
	Signature            PSSignature
	IdCredSecCommitment  Commitment
	IdCredSecD           []byte
	IdCredSecProof       ComEqProof
	HiddenAttributes     []HiddenAttribute
	CmmPrf               Commitment
	RegIdProof           ComEqProof
}

func CredentialDeploymentInfoToWire(c *id.CredentialDeploymentInfo) CredentialDeploymentInfo {
	arData := make([]ArDataEntry, len(c.ArData))
	for i, d := range c.ArData {
		arData[i] = ArDataEntry{ArIdentity: d.ArIdentity, EncIdCredSecShare: CiphertextToWire(d.EncIdCredSecShare)}
	}
	hidden := make([]HiddenAttribute, len(c.HiddenAttributes))
	for i, h := range c.HiddenAttributes {
		hidden[i] = HiddenAttributeToWire(h)
	}
	return CredentialDeploymentInfo{
		RegId:                EncodeG1(c.RegId),
		AccountIndex:         c.AccountIndex,
		IpIdentity:           c.IpIdentity,
		ArData:               arData,
		Policy:               PolicyToWire(c.Policy),
		CredentialPublicKeys: CredentialPublicKeysToWire(c.CredentialPublicKeys),
		Signature:            PSSignatureToWire(&c.Signature),
		IdCredSecCommitment:  CommitmentToWire(c.IdCredSecCommitment),
		IdCredSecD:           EncodeG1(c.IdCredSecD),
		IdCredSecProof:       ComEqProofToWire(c.IdCredSecProof),
		HiddenAttributes:     hidden,
		CmmPrf:               CommitmentToWire(c.CmmPrf),
		RegIdProof:           ComEqProofToWire(c.RegIdProof),
	}
}

func CredentialDeploymentInfoFromWire(w CredentialDeploymentInfo) (*id.CredentialDeploymentInfo, error) {
	regId, err := DecodeG1(w.RegId)
	if err != nil {
		return nil, err
	}
	arData := make([]id.ArDataEntry, len(w.ArData))
	for i, d := range w.ArData {
		ct, err := CiphertextFromWire(d.EncIdCredSecShare)
		if err != nil {
			return nil, err
		}
		arData[i] = id.ArDataEntry{ArIdentity: d.ArIdentity, EncIdCredSecShare: ct}
	}
	policy, err := PolicyFromWire(w.Policy)
	if err != nil {
		return nil, err
	}
	sig, err := PSSignatureFromWire(w.Signature)
	if err != nil {
		return nil, err
	}
	idCredSecCommitment, err := CommitmentFromWire(w.IdCredSecCommitment)
	if err != nil {
		return nil, err
	}
	idCredSecD, err := DecodeG1(w.IdCredSecD)
	if err != nil {
		return nil, err
	}
	idCredSecProof, err := ComEqProofFromWire(w.IdCredSecProof)
	if err != nil {
		return nil, err
	}
	hidden := make([]id.HiddenAttribute, len(w.HiddenAttributes))
	for i, h := range w.HiddenAttributes {
		v, err := HiddenAttributeFromWire(h)
		if err != nil {
			return nil, err
		}
		hidden[i] = v
	}
	cmmPrf, err := CommitmentFromWire(w.CmmPrf)
	if err != nil {
		return nil, err
	}
	regIdProof, err := ComEqProofFromWire(w.RegIdProof)
	if err != nil {
		return nil, err
	}
	return &id.CredentialDeploymentInfo{
		RegId:                regId,
		AccountIndex:         w.AccountIndex,
		IpIdentity:           w.IpIdentity,
		ArData:               arData,
		Policy:               policy,
		CredentialPublicKeys: CredentialPublicKeysFromWire(w.CredentialPublicKeys),
		Signature:            *sig,
		IdCredSecCommitment:  idCredSecCommitment,
		IdCredSecD:           idCredSecD,
		IdCredSecProof:       idCredSecProof,
		HiddenAttributes:     hidden,
		CmmPrf:               cmmPrf,
		RegIdProof:           regIdProof,
	}, nil
}
