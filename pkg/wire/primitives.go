package wire

import (
	"errors"

	"github.com/veyra-id/idcore/pkg/curve"
)

// ErrWrongLength is returned when a decoded byte string does not match
// the fixed length a scalar or group element encoding requires.
var ErrWrongLength = errors.New("wire: wrong-length encoding")

// EncodeScalar returns s's canonical 32-byte big-endian encoding.
func EncodeScalar(s *curve.Scalar) []byte {
	b := s.Bytes()
	return b[:]
}

// DecodeScalar decodes a canonical 32-byte big-endian scalar encoding,
// rejecting any value not fully reduced mod the scalar field.
func DecodeScalar(b []byte) (*curve.Scalar, error) {
	if len(b) != curve.ScalarSize {
		return nil, ErrWrongLength
	}
	var arr [curve.ScalarSize]byte
	copy(arr[:], b)
	return curve.ScalarFromBytes(arr)
}

// EncodeG1 returns p's compressed encoding.
func EncodeG1(p *curve.G1) []byte {
	b := p.Compress()
	return b[:]
}

// DecodeG1 decodes a compressed G1 point, rejecting non-canonical or
// out-of-subgroup encodings.
func DecodeG1(b []byte) (*curve.G1, error) {
	if len(b) != curve.G1Size {
		return nil, ErrWrongLength
	}
	var arr [curve.G1Size]byte
	copy(arr[:], b)
	return curve.DecompressG1(arr)
}

// EncodeG2 returns p's compressed encoding.
func EncodeG2(p *curve.G2) []byte {
	b := p.Compress()
	return b[:]
}

// DecodeG2 decodes a compressed G2 point, rejecting non-canonical or
// out-of-subgroup encodings.
func DecodeG2(b []byte) (*curve.G2, error) {
	if len(b) != curve.G2Size {
		return nil, ErrWrongLength
	}
	var arr [curve.G2Size]byte
	copy(arr[:], b)
	return curve.DecompressG2(arr)
}

// EncodeScalars and EncodeG1s/EncodeG2s map the above over a slice, for
// DTO fields backed by []*curve.Scalar / []*curve.G1 / []*curve.G2.
func EncodeScalars(ss []*curve.Scalar) [][]byte {
	out := make([][]byte, len(ss))
	for i, s := range ss {
		out[i] = EncodeScalar(s)
	}
	return out
}

func DecodeScalars(bs [][]byte) ([]*curve.Scalar, error) {
	out := make([]*curve.Scalar, len(bs))
	for i, b := range bs {
		s, err := DecodeScalar(b)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func EncodeG1s(ps []*curve.G1) [][]byte {
	out := make([][]byte, len(ps))
	for i, p := range ps {
		out[i] = EncodeG1(p)
	}
	return out
}

func DecodeG1s(bs [][]byte) ([]*curve.G1, error) {
	out := make([]*curve.G1, len(bs))
	for i, b := range bs {
		p, err := DecodeG1(b)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}

func EncodeG2s(ps []*curve.G2) [][]byte {
	out := make([][]byte, len(ps))
	for i, p := range ps {
		out[i] = EncodeG2(p)
	}
	return out
}

func DecodeG2s(bs [][]byte) ([]*curve.G2, error) {
	out := make([]*curve.G2, len(bs))
	for i, b := range bs {
		p, err := DecodeG2(b)
		if err != nil {
			return nil, err
		}
		out[i] = p
	}
	return out, nil
}
