package wire

import (
	"github.com/veyra-id/idcore/pkg/elgamal"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/sigma"
)

// Commitment is the wire form of a pedersen.Commitment: its underlying G1
// point, compressed.
type Commitment struct {
	C []byte
}

func CommitmentToWire(c pedersen.Commitment) Commitment {
	return Commitment{C: EncodeG1(c.Point())}
}

func CommitmentFromWire(w Commitment) (pedersen.Commitment, error) {
	p, err := DecodeG1(w.C)
	if err != nil {
		return pedersen.Commitment{}, err
	}
	return pedersen.CommitmentFromPoint(p), nil
}

// Ciphertext is the wire form of an elgamal.Ciphertext.
type Ciphertext struct {
	C1 []byte
	C2 []byte
}

func CiphertextToWire(ct *elgamal.Ciphertext) Ciphertext {
	return Ciphertext{C1: EncodeG1(ct.C1), C2: EncodeG1(ct.C2)}
}

func CiphertextFromWire(w Ciphertext) (*elgamal.Ciphertext, error) {
	c1, err := DecodeG1(w.C1)
	if err != nil {
		return nil, err
	}
	c2, err := DecodeG1(w.C2)
	if err != nil {
		return nil, err
	}
	return &elgamal.Ciphertext{C1: c1, C2: c2}, nil
}

// ComEqProof is the wire form of sigma.ComEqProof.
type ComEqProof struct {
	Challenge []byte
	A1        []byte
	A2        []byte
	WitnessV  []byte
	WitnessR  []byte
}

func ComEqProofToWire(p *sigma.ComEqProof) ComEqProof {
	return ComEqProof{
		Challenge: EncodeScalar(p.Challenge),
		A1:        EncodeG1(p.A1),
		A2:        EncodeG1(p.A2),
		WitnessV:  EncodeScalar(p.WitnessV),
		WitnessR:  EncodeScalar(p.WitnessR),
	}
}

func ComEqProofFromWire(w ComEqProof) (*sigma.ComEqProof, error) {
	challenge, err := DecodeScalar(w.Challenge)
	if err != nil {
		return nil, err
	}
	a1, err := DecodeG1(w.A1)
	if err != nil {
		return nil, err
	}
	a2, err := DecodeG1(w.A2)
	if err != nil {
		return nil, err
	}
	witnessV, err := DecodeScalar(w.WitnessV)
	if err != nil {
		return nil, err
	}
	witnessR, err := DecodeScalar(w.WitnessR)
	if err != nil {
		return nil, err
	}
	return &sigma.ComEqProof{Challenge: challenge, A1: a1, A2: a2, WitnessV: witnessV, WitnessR: witnessR}, nil
}

// ComEncEqProof is the wire form of sigma.ComEncEqProof.
type ComEncEqProof struct {
	Challenge []byte
	A1        []byte
	A2        []byte
	A3        []byte
	WitnessV  []byte
	WitnessR  []byte
	WitnessS  []byte
}

func ComEncEqProofToWire(p *sigma.ComEncEqProof) ComEncEqProof {
	return ComEncEqProof{
		Challenge: EncodeScalar(p.Challenge),
		A1:        EncodeG1(p.A1),
		A2:        EncodeG1(p.A2),
		A3:        EncodeG1(p.A3),
		WitnessV:  EncodeScalar(p.WitnessV),
		WitnessR:  EncodeScalar(p.WitnessR),
		WitnessS:  EncodeScalar(p.WitnessS),
	}
}

func ComEncEqProofFromWire(w ComEncEqProof) (*sigma.ComEncEqProof, error) {
	challenge, err := DecodeScalar(w.Challenge)
	if err != nil {
		return nil, err
	}
	a1, err := DecodeG1(w.A1)
	if err != nil {
		return nil, err
	}
	a2, err := DecodeG1(w.A2)
	if err != nil {
		return nil, err
	}
	a3, err := DecodeG1(w.A3)
	if err != nil {
		return nil, err
	}
	witnessV, err := DecodeScalar(w.WitnessV)
	if err != nil {
		return nil, err
	}
	witnessR, err := DecodeScalar(w.WitnessR)
	if err != nil {
		return nil, err
	}
	witnessS, err := DecodeScalar(w.WitnessS)
	if err != nil {
		return nil, err
	}
	return &sigma.ComEncEqProof{
		Challenge: challenge, A1: a1, A2: a2, A3: a3,
		WitnessV: witnessV, WitnessR: witnessR, WitnessS: witnessS,
	}, nil
}

// ComLinProof is the wire form of sigma.ComLinProof.
type ComLinProof struct {
	Challenge  []byte
	As         [][]byte
	WitnessesV [][]byte
	WitnessesR [][]byte
}

func ComLinProofToWire(p *sigma.ComLinProof) ComLinProof {
	return ComLinProof{
		Challenge:  EncodeScalar(p.Challenge),
		As:         EncodeG1s(p.As),
		WitnessesV: EncodeScalars(p.WitnessesV),
		WitnessesR: EncodeScalars(p.WitnessesR),
	}
}

func ComLinProofFromWire(w ComLinProof) (*sigma.ComLinProof, error) {
	challenge, err := DecodeScalar(w.Challenge)
	if err != nil {
		return nil, err
	}
	as, err := DecodeG1s(w.As)
	if err != nil {
		return nil, err
	}
	wv, err := DecodeScalars(w.WitnessesV)
	if err != nil {
		return nil, err
	}
	wr, err := DecodeScalars(w.WitnessesR)
	if err != nil {
		return nil, err
	}
	return &sigma.ComLinProof{Challenge: challenge, As: as, WitnessesV: wv, WitnessesR: wr}, nil
}

// ComEqTwoKeysProof is the wire form of sigma.ComEqTwoKeysProof.
type ComEqTwoKeysProof struct {
	Challenge []byte
	S1        []byte
	S2        []byte
	T         []byte
}

func ComEqTwoKeysProofToWire(p *sigma.ComEqTwoKeysProof) ComEqTwoKeysProof {
	return ComEqTwoKeysProof{
		Challenge: EncodeScalar(p.Challenge),
		S1:        EncodeScalar(p.S1),
		S2:        EncodeScalar(p.S2),
		T:         EncodeScalar(p.T),
	}
}

func ComEqTwoKeysProofFromWire(w ComEqTwoKeysProof) (*sigma.ComEqTwoKeysProof, error) {
	challenge, err := DecodeScalar(w.Challenge)
	if err != nil {
		return nil, err
	}
	s1, err := DecodeScalar(w.S1)
	if err != nil {
		return nil, err
	}
	s2, err := DecodeScalar(w.S2)
	if err != nil {
		return nil, err
	}
	t, err := DecodeScalar(w.T)
	if err != nil {
		return nil, err
	}
	return &sigma.ComEqTwoKeysProof{Challenge: challenge, S1: s1, S2: s2, T: t}, nil
}
