// Package elgamal implements ElGamal encryption in the exponent over G1:
// the mechanism each anonymity revoker's share of id_cred_sec (in the form
// of id_cred_pub's partial reconstruction) is encrypted under, so that only
// that AR — or a later threshold-sized coalition of ARs — can recover it.
// Because the plaintext lives in the exponent, decryption only ever
// recovers h^m, never m itself; every consumer of a decrypted value in
// this module (reveal_id_cred_pub, revocation) only ever needs the group
// element, not the scalar, so this is not a limitation here. Grounded on
// the reference corpus's threshold.go ShareEncrypt/ShareDecrypt shape,
// adapted from big.Int modular exponentiation to BLS12-381 G1 and from
// AES-GCM-wrapped key encapsulation to bare in-exponent encryption (this
// module's consumers need the group element itself, not a derived
// symmetric key).
package elgamal

import (
	"errors"
	"io"

	"github.com/veyra-id/idcore/pkg/curve"
)

// ErrInvalidCiphertext is returned by Decrypt on a structurally invalid
// ciphertext (currently unused since Ciphertext is always well-formed once
// constructed, but kept for parity with callers that decode one off the
// wire into a possibly-malformed value).
var ErrInvalidCiphertext = errors.New("elgamal: invalid ciphertext")

// SecretKey is an ElGamal decryption key sk ∈ Fr.
type SecretKey struct {
	s *curve.Scalar
}

// PublicKey is pk = g^sk.
type PublicKey struct {
	p *curve.G1
}

// GenerateKey samples a fresh ElGamal keypair against the given base
// generator (conventionally curve.G1Generator()).
func GenerateKey(base *curve.G1, rng io.Reader) (*SecretKey, *PublicKey, error) {
	sk, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	pk := base.ScalarMul(sk)
	return &SecretKey{s: sk}, &PublicKey{p: pk}, nil
}

// PublicKeyFromPoint wraps a raw G1 element as a PublicKey, e.g. one
// decoded off the wire as part of an ArInfo/IpInfo structure.
func PublicKeyFromPoint(p *curve.G1) *PublicKey { return &PublicKey{p: p} }

// Point returns pk's underlying G1 element.
func (pk *PublicKey) Point() *curve.G1 { return pk.p }

// Ciphertext is an in-exponent ElGamal ciphertext (c1, c2) = (g^r, pk^r·h^m).
type Ciphertext struct {
	C1 *curve.G1
	C2 *curve.G1
}

// Encrypt encrypts the scalar m in the exponent of h: ciphertext =
// (base^r, pk^r · h^m) for fresh randomness r. base is the generator pk
// was derived against; h is a distinct system-wide generator (so that
// h's discrete log with respect to base is unknown to anyone).
func Encrypt(pk *PublicKey, base, h *curve.G1, m *curve.Scalar, rng io.Reader) (*Ciphertext, *curve.Scalar, error) {
	r, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	c1 := base.ScalarMul(r)
	c2 := pk.p.ScalarMul(r).Add(h.ScalarMul(m))
	return &Ciphertext{C1: c1, C2: c2}, r, nil
}

// EncryptPoint encrypts an already-exponentiated group element M = h^m
// directly, for callers (e.g. AR share encryption) that start from the
// group element rather than the scalar.
func EncryptPoint(pk *PublicKey, base *curve.G1, m *curve.G1, rng io.Reader) (*Ciphertext, *curve.Scalar, error) {
	r, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	c1 := base.ScalarMul(r)
	c2 := pk.p.ScalarMul(r).Add(m)
	return &Ciphertext{C1: c1, C2: c2}, r, nil
}

// Decrypt recovers h^m = c2 - sk·c1 from the ciphertext. The caller gets
// back the group element, not the scalar m; recovering m itself would
// require a bounded discrete-log search (baby-step/giant-step), which this
// module never needs since every consumer of a decrypted AR share only
// ever wants the group element (id_cred_pub's partial reconstruction).
func Decrypt(sk *SecretKey, ct *Ciphertext) *curve.G1 {
	skc1 := ct.C1.ScalarMul(sk.s)
	return ct.C2.Add(skc1.Neg())
}

// Chunk is one fixed-width piece of a chunked exponent encryption. Values
// whose range exceeds what's feasible to brute-force out of the exponent
// (e.g. a 254-bit scalar) are split into ChunkBits-wide pieces, each
// individually encryptable/decryptable within a bounded discrete-log
// search, with a linear sigma proof (pkg/sigma's com_lin) binding the
// chunks back to the original scalar.
const ChunkBits = 32

// ChunkMask isolates the low ChunkBits bits of a uint64 chunk value.
const ChunkMask = (uint64(1) << ChunkBits) - 1

// SplitIntoChunks decomposes s into big-endian base-2^ChunkBits chunks,
// most significant chunk first, using numChunks chunks total.
func SplitIntoChunks(s *curve.Scalar, numChunks int) []*curve.Scalar {
	// Extract bytes in big-endian order and regroup into ChunkBits-wide
	// words; ChunkBits=32 divides evenly into byte boundaries so this is
	// a plain re-slicing rather than arbitrary bit-shifting arithmetic.
	raw := s.Bytes()
	const bytesPerChunk = ChunkBits / 8
	chunks := make([]*curve.Scalar, numChunks)
	for i := 0; i < numChunks; i++ {
		start := len(raw) - (numChunks-i)*bytesPerChunk
		var word uint64
		for b := 0; b < bytesPerChunk; b++ {
			idx := start + b
			var byteVal byte
			if idx >= 0 && idx < len(raw) {
				byteVal = raw[idx]
			}
			word = (word << 8) | uint64(byteVal)
		}
		chunks[i] = curve.ScalarFromUint64(word)
	}
	return chunks
}

// RecombineChunks reassembles chunks (most significant first, each a
// ChunkBits-wide value) back into the original scalar: Σ chunks[i] ·
// 2^{ChunkBits·(numChunks-1-i)}.
func RecombineChunks(chunks []*curve.Scalar) *curve.Scalar {
	base := curve.ScalarFromUint64(uint64(1) << ChunkBits)
	acc := curve.ZeroScalar()
	for _, c := range chunks {
		acc = acc.Mul(base).Add(c)
	}
	return acc
}

// EncryptChunked encrypts s as a sequence of numChunks fixed-width
// ciphertexts. Returns the ciphertexts, the per-chunk scalar values (for
// the accompanying com_lin proof of correct recombination), and the
// per-chunk encryption randomness.
func EncryptChunked(pk *PublicKey, base, h *curve.G1, s *curve.Scalar, numChunks int, rng io.Reader) ([]*Ciphertext, []*curve.Scalar, []*curve.Scalar, error) {
	chunks := SplitIntoChunks(s, numChunks)
	cts := make([]*Ciphertext, numChunks)
	rs := make([]*curve.Scalar, numChunks)
	for i, c := range chunks {
		ct, r, err := Encrypt(pk, base, h, c, rng)
		if err != nil {
			return nil, nil, nil, err
		}
		cts[i] = ct
		rs[i] = r
	}
	return cts, chunks, rs, nil
}
