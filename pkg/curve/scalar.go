// Package curve implements the elliptic-curve and pairing primitives this
// module is built on: BLS12-381 scalars (Fr), G1/G2 group elements, and
// pairing-product verification. It is a thin wrapper around
// consensys/gnark-crypto's ecc/bls12-381 package, chosen because its
// canonical byte sizes (32-byte scalars, 48-byte compressed G1, 96-byte
// compressed G2) match this protocol's wire format without any adapter
// shims.
package curve

import (
	"errors"
	"io"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// ScalarSize is the canonical big-endian encoding length of an Fr element.
const ScalarSize = fr.Bytes

// ErrNonCanonicalScalar is returned when decoding a scalar whose value is
// not reduced modulo the BLS12-381 scalar field order r.
var ErrNonCanonicalScalar = errors.New("curve: scalar is not canonically reduced mod r")

// Scalar is an element of the BLS12-381 scalar field Fr.
type Scalar struct {
	v fr.Element
}

// randomScalarOversample is the number of extra bytes read beyond
// ScalarSize before reducing mod r, so that the reduction bias is
// negligible (2^-128) regardless of which 32-byte window ends up
// dominant.
const randomScalarOversample = ScalarSize + 16

// RandomScalar samples a uniformly random, non-zero element of Fr from the
// supplied CSPRNG. Unlike fr.Element.SetRandom (which always reads from
// crypto/rand.Reader), this draws from the caller-supplied stream so that
// prover output is bit-identical for a fixed RNG stream, per spec.md §5.
func RandomScalar(rng io.Reader) (*Scalar, error) {
	buf := make([]byte, randomScalarOversample)
	for {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, err
		}
		var s Scalar
		s.v.SetBytes(buf)
		if !s.v.IsZero() {
			return &s, nil
		}
	}
}

// ScalarFromWideBytes reduces an oversampled (at least ScalarSize+16 bytes)
// byte string mod r. Used by callers, such as pkg/ro's Fiat–Shamir
// challenge derivation, that already have oversampled entropy in hand and
// only need the final reduction step RandomScalar performs internally.
func ScalarFromWideBytes(wide []byte) *Scalar {
	var s Scalar
	s.v.SetBytes(wide)
	return &s
}

// ScalarFromUint64 lifts a small integer into Fr. Used for polynomial
// evaluation points (AR identities) and account counters.
func ScalarFromUint64(x uint64) *Scalar {
	var s Scalar
	s.v.SetUint64(x)
	return &s
}

// ScalarFromBytes decodes a 32-byte big-endian canonical scalar. Rejects
// values not already reduced modulo r, per spec.md's non-canonical
// encoding rejection rule.
func ScalarFromBytes(b [ScalarSize]byte) (*Scalar, error) {
	var s Scalar
	if err := s.v.SetBytesCanonical(b[:]); err != nil {
		return nil, ErrNonCanonicalScalar
	}
	return &s, nil
}

// Bytes returns the canonical 32-byte big-endian encoding of s.
func (s *Scalar) Bytes() [ScalarSize]byte {
	return s.v.Bytes()
}

// Zero reports the additive identity.
func ZeroScalar() *Scalar { return &Scalar{} }

// OneScalar reports the multiplicative identity.
func OneScalar() *Scalar {
	var s Scalar
	s.v.SetOne()
	return &s
}

// Add returns s + other.
func (s *Scalar) Add(other *Scalar) *Scalar {
	var out Scalar
	out.v.Add(&s.v, &other.v)
	return &out
}

// Sub returns s - other.
func (s *Scalar) Sub(other *Scalar) *Scalar {
	var out Scalar
	out.v.Sub(&s.v, &other.v)
	return &out
}

// Mul returns s * other.
func (s *Scalar) Mul(other *Scalar) *Scalar {
	var out Scalar
	out.v.Mul(&s.v, &other.v)
	return &out
}

// Neg returns -s.
func (s *Scalar) Neg() *Scalar {
	var out Scalar
	out.v.Neg(&s.v)
	return &out
}

// Inverse returns s^-1. Panics if s is zero; callers must check IsZero
// first since a zero PRF/sharing denominator indicates a protocol-level
// failure, not a recoverable error.
func (s *Scalar) Inverse() *Scalar {
	if s.v.IsZero() {
		panic("curve: inverse of zero scalar")
	}
	var out Scalar
	out.v.Inverse(&s.v)
	return &out
}

// IsZero reports whether s is the additive identity.
func (s *Scalar) IsZero() bool { return s.v.IsZero() }

// Equal reports whether s and other encode the same field element.
func (s *Scalar) Equal(other *Scalar) bool { return s.v.Equal(&other.v) }

// Zeroize overwrites the scalar's memory. Callers holding id_cred_sec,
// prf_key, AR/IP secret keys, or sharing-polynomial coefficients must call
// this once the value is no longer needed; Go has no destructors, so this
// cannot happen automatically.
func (s *Scalar) Zeroize() {
	s.v.SetZero()
}

// Clone returns an independent copy of s.
func (s *Scalar) Clone() *Scalar {
	out := *s
	return &out
}
