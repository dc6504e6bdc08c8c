package wire

import "github.com/veyra-id/idcore/pkg/pssig"

// PSPublicKey is the wire form of pssig.PublicKey.
type PSPublicKey struct {
	G       []byte
	Ys      [][]byte
	GTilde  []byte
	XTilde  []byte
	YTildes [][]byte
}

func PSPublicKeyToWire(pk *pssig.PublicKey) PSPublicKey {
	return PSPublicKey{
		G:       EncodeG1(pk.G),
		Ys:      EncodeG1s(pk.Ys),
		GTilde:  EncodeG2(pk.GTilde),
		XTilde:  EncodeG2(pk.XTilde),
		YTildes: EncodeG2s(pk.YTildes),
	}
}

func PSPublicKeyFromWire(w PSPublicKey) (*pssig.PublicKey, error) {
	g, err := DecodeG1(w.G)
	if err != nil {
		return nil, err
	}
	ys, err := DecodeG1s(w.Ys)
	if err != nil {
		return nil, err
	}
	gTilde, err := DecodeG2(w.GTilde)
	if err != nil {
		return nil, err
	}
	xTilde, err := DecodeG2(w.XTilde)
	if err != nil {
		return nil, err
	}
	yTildes, err := DecodeG2s(w.YTildes)
	if err != nil {
		return nil, err
	}
	return &pssig.PublicKey{G: g, Ys: ys, GTilde: gTilde, XTilde: xTilde, YTildes: yTildes}, nil
}

// PSSignature is the wire form of pssig.Signature.
type PSSignature struct {
	Sigma1 []byte
	Sigma2 []byte
}

func PSSignatureToWire(sig *pssig.Signature) PSSignature {
	return PSSignature{Sigma1: EncodeG1(sig.Sigma1), Sigma2: EncodeG1(sig.Sigma2)}
}

func PSSignatureFromWire(w PSSignature) (*pssig.Signature, error) {
	s1, err := DecodeG1(w.Sigma1)
	if err != nil {
		return nil, err
	}
	s2, err := DecodeG1(w.Sigma2)
	if err != nil {
		return nil, err
	}
	return &pssig.Signature{Sigma1: s1, Sigma2: s2}, nil
}
