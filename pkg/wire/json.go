// Human-readable encodings (spec.md §6 "JSON"): every byte-encoded
// primitive becomes a `0x`-prefixed hex string via go-ethereum's
// hexutil.Bytes, the same convention the teacher's pkg/rpc DTOs use for
// hashes and addresses. Each type below follows the standard
// "type alias + embedding" idiom for overriding a subset of a struct's
// JSON fields: the unexported `alias` type sees the same field layout
// without the MarshalJSON/UnmarshalJSON method set, so embedding it
// supplies default encoding for every field except the raw byte ones
// declared explicitly in the wrapper, which take priority as the
// shallower field of the same name (encoding/json's dominant-field rule).
package wire

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

func hexSlice(bs [][]byte) []hexutil.Bytes {
	out := make([]hexutil.Bytes, len(bs))
	for i, b := range bs {
		out[i] = hexutil.Bytes(b)
	}
	return out
}

func byteSlice(hs []hexutil.Bytes) [][]byte {
	out := make([][]byte, len(hs))
	for i, h := range hs {
		out[i] = []byte(h)
	}
	return out
}

func (c Commitment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		C hexutil.Bytes
	}{hexutil.Bytes(c.C)})
}

func (c *Commitment) UnmarshalJSON(data []byte) error {
	var aux struct {
		C hexutil.Bytes
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.C = []byte(aux.C)
	return nil
}

func (ct Ciphertext) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		C1 hexutil.Bytes
		C2 hexutil.Bytes
	}{hexutil.Bytes(ct.C1), hexutil.Bytes(ct.C2)})
}

func (ct *Ciphertext) UnmarshalJSON(data []byte) error {
	var aux struct {
		C1 hexutil.Bytes
		C2 hexutil.Bytes
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	ct.C1, ct.C2 = []byte(aux.C1), []byte(aux.C2)
	return nil
}

func (p ComEqProof) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Challenge hexutil.Bytes
		A1        hexutil.Bytes
		A2        hexutil.Bytes
		WitnessV  hexutil.Bytes
		WitnessR  hexutil.Bytes
	}{
		hexutil.Bytes(p.Challenge), hexutil.Bytes(p.A1), hexutil.Bytes(p.A2),
		hexutil.Bytes(p.WitnessV), hexutil.Bytes(p.WitnessR),
	})
}

func (p *ComEqProof) UnmarshalJSON(data []byte) error {
	var aux struct {
		Challenge hexutil.Bytes
		A1        hexutil.Bytes
		A2        hexutil.Bytes
		WitnessV  hexutil.Bytes
		WitnessR  hexutil.Bytes
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Challenge, p.A1, p.A2 = []byte(aux.Challenge), []byte(aux.A1), []byte(aux.A2)
	p.WitnessV, p.WitnessR = []byte(aux.WitnessV), []byte(aux.WitnessR)
	return nil
}

func (p ComEncEqProof) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Challenge hexutil.Bytes
		A1        hexutil.Bytes
		A2        hexutil.Bytes
		A3        hexutil.Bytes
		WitnessV  hexutil.Bytes
		WitnessR  hexutil.Bytes
		WitnessS  hexutil.Bytes
	}{
		hexutil.Bytes(p.Challenge), hexutil.Bytes(p.A1), hexutil.Bytes(p.A2), hexutil.Bytes(p.A3),
		hexutil.Bytes(p.WitnessV), hexutil.Bytes(p.WitnessR), hexutil.Bytes(p.WitnessS),
	})
}

func (p *ComEncEqProof) UnmarshalJSON(data []byte) error {
	var aux struct {
		Challenge hexutil.Bytes
		A1        hexutil.Bytes
		A2        hexutil.Bytes
		A3        hexutil.Bytes
		WitnessV  hexutil.Bytes
		WitnessR  hexutil.Bytes
		WitnessS  hexutil.Bytes
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Challenge, p.A1, p.A2, p.A3 = []byte(aux.Challenge), []byte(aux.A1), []byte(aux.A2), []byte(aux.A3)
	p.WitnessV, p.WitnessR, p.WitnessS = []byte(aux.WitnessV), []byte(aux.WitnessR), []byte(aux.WitnessS)
	return nil
}

func (p ComLinProof) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Challenge  hexutil.Bytes
		As         []hexutil.Bytes
		WitnessesV []hexutil.Bytes
		WitnessesR []hexutil.Bytes
	}{
		hexutil.Bytes(p.Challenge), hexSlice(p.As), hexSlice(p.WitnessesV), hexSlice(p.WitnessesR),
	})
}

func (p *ComLinProof) UnmarshalJSON(data []byte) error {
	var aux struct {
		Challenge  hexutil.Bytes
		As         []hexutil.Bytes
		WitnessesV []hexutil.Bytes
		WitnessesR []hexutil.Bytes
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Challenge = []byte(aux.Challenge)
	p.As, p.WitnessesV, p.WitnessesR = byteSlice(aux.As), byteSlice(aux.WitnessesV), byteSlice(aux.WitnessesR)
	return nil
}

func (p ComEqTwoKeysProof) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Challenge hexutil.Bytes
		S1        hexutil.Bytes
		S2        hexutil.Bytes
		T         hexutil.Bytes
	}{hexutil.Bytes(p.Challenge), hexutil.Bytes(p.S1), hexutil.Bytes(p.S2), hexutil.Bytes(p.T)})
}

func (p *ComEqTwoKeysProof) UnmarshalJSON(data []byte) error {
	var aux struct {
		Challenge hexutil.Bytes
		S1        hexutil.Bytes
		S2        hexutil.Bytes
		T         hexutil.Bytes
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Challenge, p.S1, p.S2, p.T = []byte(aux.Challenge), []byte(aux.S1), []byte(aux.S2), []byte(aux.T)
	return nil
}

func (pk PSPublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		G       hexutil.Bytes
		Ys      []hexutil.Bytes
		GTilde  hexutil.Bytes
		XTilde  hexutil.Bytes
		YTildes []hexutil.Bytes
	}{
		hexutil.Bytes(pk.G), hexSlice(pk.Ys), hexutil.Bytes(pk.GTilde), hexutil.Bytes(pk.XTilde), hexSlice(pk.YTildes),
	})
}

func (pk *PSPublicKey) UnmarshalJSON(data []byte) error {
	var aux struct {
		G       hexutil.Bytes
		Ys      []hexutil.Bytes
		GTilde  hexutil.Bytes
		XTilde  hexutil.Bytes
		YTildes []hexutil.Bytes
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	pk.G, pk.GTilde, pk.XTilde = []byte(aux.G), []byte(aux.GTilde), []byte(aux.XTilde)
	pk.Ys, pk.YTildes = byteSlice(aux.Ys), byteSlice(aux.YTildes)
	return nil
}

func (sig PSSignature) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Sigma1 hexutil.Bytes
		Sigma2 hexutil.Bytes
	}{hexutil.Bytes(sig.Sigma1), hexutil.Bytes(sig.Sigma2)})
}

func (sig *PSSignature) UnmarshalJSON(data []byte) error {
	var aux struct {
		Sigma1 hexutil.Bytes
		Sigma2 hexutil.Bytes
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	sig.Sigma1, sig.Sigma2 = []byte(aux.Sigma1), []byte(aux.Sigma2)
	return nil
}

func (g GlobalContext) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CommitmentKeyG hexutil.Bytes
		CommitmentKeyH hexutil.Bytes
		Generator      hexutil.Bytes
	}{hexutil.Bytes(g.CommitmentKeyG), hexutil.Bytes(g.CommitmentKeyH), hexutil.Bytes(g.Generator)})
}

func (g *GlobalContext) UnmarshalJSON(data []byte) error {
	var aux struct {
		CommitmentKeyG hexutil.Bytes
		CommitmentKeyH hexutil.Bytes
		Generator      hexutil.Bytes
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	g.CommitmentKeyG, g.CommitmentKeyH, g.Generator = []byte(aux.CommitmentKeyG), []byte(aux.CommitmentKeyH), []byte(aux.Generator)
	return nil
}

func (a ArInfo) MarshalJSON() ([]byte, error) {
	type alias ArInfo
	return json.Marshal(struct {
		ArPublicKey hexutil.Bytes
		alias
	}{hexutil.Bytes(a.ArPublicKey), alias(a)})
}

func (a *ArInfo) UnmarshalJSON(data []byte) error {
	type alias ArInfo
	aux := struct {
		ArPublicKey hexutil.Bytes
		*alias
	}{alias: (*alias)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.ArPublicKey = []byte(aux.ArPublicKey)
	return nil
}

func (k AttributeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		IsString bool
		Str      string `json:",omitempty"`
		Num      hexutil.Bytes `json:",omitempty"`
	}{k.IsString, k.Str, hexutil.Bytes(k.Num)})
}

func (k *AttributeKind) UnmarshalJSON(data []byte) error {
	var aux struct {
		IsString bool
		Str      string
		Num      hexutil.Bytes
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	k.IsString, k.Str, k.Num = aux.IsString, aux.Str, []byte(aux.Num)
	return nil
}

func (h HiddenAttribute) MarshalJSON() ([]byte, error) {
	type alias HiddenAttribute
	return json.Marshal(struct {
		D hexutil.Bytes
		alias
	}{hexutil.Bytes(h.D), alias(h)})
}

func (h *HiddenAttribute) UnmarshalJSON(data []byte) error {
	type alias HiddenAttribute
	aux := struct {
		D hexutil.Bytes
		*alias
	}{alias: (*alias)(h)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	h.D = []byte(aux.D)
	return nil
}

func (e KeyEntry) MarshalJSON() ([]byte, error) {
	type alias KeyEntry
	return json.Marshal(struct {
		Key hexutil.Bytes
		alias
	}{hexutil.Bytes(e.Key), alias(e)})
}

func (e *KeyEntry) UnmarshalJSON(data []byte) error {
	type alias KeyEntry
	aux := struct {
		Key hexutil.Bytes
		*alias
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	e.Key = []byte(aux.Key)
	return nil
}

func (p PreIdentityObject) MarshalJSON() ([]byte, error) {
	type alias PreIdentityObject
	return json.Marshal(struct {
		IdCredPub      hexutil.Bytes
		UnknownMessage hexutil.Bytes
		alias
	}{hexutil.Bytes(p.IdCredPub), hexutil.Bytes(p.UnknownMessage), alias(p)})
}

func (p *PreIdentityObject) UnmarshalJSON(data []byte) error {
	type alias PreIdentityObject
	aux := struct {
		IdCredPub      hexutil.Bytes
		UnknownMessage hexutil.Bytes
		*alias
	}{alias: (*alias)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.IdCredPub, p.UnknownMessage = []byte(aux.IdCredPub), []byte(aux.UnknownMessage)
	return nil
}

func (c CredentialDeploymentInfo) MarshalJSON() ([]byte, error) {
	type alias CredentialDeploymentInfo
	return json.Marshal(struct {
		RegId      hexutil.Bytes
		IdCredSecD hexutil.Bytes
		alias
	}{hexutil.Bytes(c.RegId), hexutil.Bytes(c.IdCredSecD), alias(c)})
}

func (c *CredentialDeploymentInfo) UnmarshalJSON(data []byte) error {
	type alias CredentialDeploymentInfo
	aux := struct {
		RegId      hexutil.Bytes
		IdCredSecD hexutil.Bytes
		*alias
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	c.RegId, c.IdCredSecD = []byte(aux.RegId), []byte(aux.IdCredSecD)
	return nil
}

// ToJSON and FromJSON are the entry points orchestration code (the
// out-of-scope HTTP front end) calls: id.PreIdentityObject and friends
// never import encoding/json themselves, matching the same core/wire
// separation spec.md §6 draws for the binary envelope.
func ToJSON(v interface{}) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

func FromJSON(data []byte, out interface{}) error {
	return json.Unmarshal(data, out)
}
