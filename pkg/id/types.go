// Package id composes the leaf cryptographic primitives (pkg/curve,
// pkg/ro, pkg/pedersen, pkg/pssig, pkg/elgamal, pkg/sharing, pkg/sigma,
// pkg/bls) into the identity-issuance protocol's data model and
// Holder/IP/Chain/AR operations: PreIdentityObject generation and
// validation, PS-signature issuance, CredentialDeploymentInfo creation and
// verification, and threshold anonymity revocation. Grounded throughout on
// original_source/rust-src/id/benches/verify_cdi.rs for type and function
// naming (CredentialHolderInfo, ArInfo, GlobalContext, IPContext,
// generate_pio, verify_credentials, create_credential, verify_cdi,
// reveal_id_cred_pub) and on dodis_yampolskiy_prf::secret for the reg_id
// derivation, which is what resolves spec.md §9's sharing-target Open
// Question: see SPEC_FULL.md §4.8.
package id

import (
	"errors"
	"io"

	"github.com/holiman/uint256"
	"github.com/veyra-id/idcore/pkg/curve"
	"github.com/veyra-id/idcore/pkg/pedersen"
	"github.com/veyra-id/idcore/pkg/pssig"
)

// ArIdentity identifies an anonymity revoker. Zero is reserved and never
// valid, per spec.md §3.
type ArIdentity uint32

// ErrZeroArIdentity is returned wherever an ArIdentity of 0 is rejected.
var ErrZeroArIdentity = errors.New("id: anonymity revoker identity 0 is reserved")

// NewArIdentity validates and wraps a raw identifier.
func NewArIdentity(v uint32) (ArIdentity, error) {
	if v == 0 {
		return 0, ErrZeroArIdentity
	}
	return ArIdentity(v), nil
}

// ArInfo describes one anonymity revoker's public material.
type ArInfo struct {
	ArIdentity   ArIdentity
	Description  string
	ArPublicKey  *curve.G1 // ElGamal public key, against GlobalContext.Generator as base
}

// IpIdentity identifies an Identity Provider.
type IpIdentity uint32

// IpInfo is an Identity Provider's public material.
type IpInfo struct {
	IpIdentity   IpIdentity
	Description  string
	IpVerifyKey  *pssig.PublicKey
}

// IpData additionally holds the IP's secret signing key; never transmitted.
type IpData struct {
	IpInfo        IpInfo
	IpSecretKey   *pssig.SecretKey
}

// GlobalContext is the process-wide, immutable set of system parameters
// every participant shares: the on-chain Pedersen commitment key and a
// distinguished generator used for id_cred_pub, PRF-derived reg_ids, and
// AR ElGamal encryption.
type GlobalContext struct {
	OnChainCommitmentKey *pedersen.CommitmentKey
	Generator            *curve.G1
}

// GenerateGlobalContext derives a fresh GlobalContext by hashing
// domain-separated tags to G1, so no participant (including whoever runs
// this function) learns a discrete-log relation among its generators.
func GenerateGlobalContext(seed []byte) (*GlobalContext, error) {
	key, err := pedersen.GenerateCommitmentKey(seed)
	if err != nil {
		return nil, err
	}
	gen, err := curve.HashToG1(seed, []byte("idcore-global-generator"))
	if err != nil {
		return nil, err
	}
	return &GlobalContext{OnChainCommitmentKey: key, Generator: gen}, nil
}

// CredentialHolderInfo holds the holder's long-term identity secret and its
// public counterpart.
type CredentialHolderInfo struct {
	IdCredSec *curve.Scalar
	IdCredPub *curve.G1
}

// AccCredentialInfo bundles the holder's identity secret with the PRF key
// used to derive per-account reg_ids.
type AccCredentialInfo struct {
	CredHolderInfo CredentialHolderInfo
	PrfKey         *curve.Scalar
}

// GenerateCredentialHolderInfo samples a fresh id_cred_sec against the
// given GlobalContext's generator.
func GenerateCredentialHolderInfo(global *GlobalContext, rng io.Reader) (*CredentialHolderInfo, error) {
	idCredSec, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	return &CredentialHolderInfo{
		IdCredSec: idCredSec,
		IdCredPub: global.Generator.ScalarMul(idCredSec),
	}, nil
}

// GenerateAccCredentialInfo samples a fresh (id_cred_sec, prf_key) pair.
func GenerateAccCredentialInfo(global *GlobalContext, rng io.Reader) (*AccCredentialInfo, error) {
	chi, err := GenerateCredentialHolderInfo(global, rng)
	if err != nil {
		return nil, err
	}
	prfKey, err := curve.RandomScalar(rng)
	if err != nil {
		return nil, err
	}
	return &AccCredentialInfo{CredHolderInfo: *chi, PrfKey: prfKey}, nil
}

// YearMonth is a calendar month, used for attribute-list and policy
// validity windows.
type YearMonth struct {
	Year  uint16
	Month uint8 // 1..12
}

// ErrInvalidMonth is returned when Month is outside 1..12.
var ErrInvalidMonth = errors.New("id: month must be in 1..12")

// NewYearMonth validates and constructs a YearMonth.
func NewYearMonth(year uint16, month uint8) (YearMonth, error) {
	if month < 1 || month > 12 {
		return YearMonth{}, ErrInvalidMonth
	}
	return YearMonth{Year: year, Month: month}, nil
}

// Before reports whether ym sorts strictly before other.
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// AtMost reports whether ym is not after other.
func (ym YearMonth) AtMost(other YearMonth) bool {
	return ym == other || ym.Before(other)
}

// AttributeTag indexes an attribute slot. spec.md §3 fixes this at one
// byte.
type AttributeTag uint8

// MaxAttributeTag bounds the attribute slots this module's fixed-size PS
// key supports. A production key would size this to cover every attribute
// tag the protocol defines (up to 255); this module uses a reduced demo
// size (spanning tags 0..15, enough to cover every tag spec.md's worked
// examples use) to keep key generation and the end-to-end tests cheap —
// see pssig key sizing in pkg/id/identity_provider.go.
const MaxAttributeTag = 15

// AttributeKind is a tagged union of a short string or a 256-bit integer,
// the two attribute value shapes
// original_source/rust-src/id/benches/verify_cdi.rs's ExampleAttribute
// (AttributeKind) represents. Numeric is backed by uint256.Int, reduced
// mod Fr when committed to, since that's the one fixed-width
// canonically-encoded unsigned integer type in the reference corpus.
type AttributeKind struct {
	isString bool
	str      string
	num      *uint256.Int
}

// ErrAttributeStringTooLong is returned when a string attribute exceeds
// what fits in a single committed scalar (31 bytes, leaving one byte of
// encoding headroom below Fr's 32-byte canonical width).
var ErrAttributeStringTooLong = errors.New("id: attribute string exceeds 31 bytes")

// NewStringAttribute constructs a string-valued attribute.
func NewStringAttribute(s string) (AttributeKind, error) {
	if len(s) > 31 {
		return AttributeKind{}, ErrAttributeStringTooLong
	}
	return AttributeKind{isString: true, str: s}, nil
}

// NewNumericAttribute constructs an integer-valued attribute.
func NewNumericAttribute(v *uint256.Int) AttributeKind {
	return AttributeKind{isString: false, num: v}
}

// IsString reports whether the attribute is string-valued.
func (a AttributeKind) IsString() bool { return a.isString }

// StringValue returns the attribute's string payload and true if it is
// string-valued, for wire encoding that needs the original representation
// rather than ToScalar's Fr-reduced form.
func (a AttributeKind) StringValue() (string, bool) { return a.str, a.isString }

// NumericValue returns the attribute's integer payload and true if it is
// numeric-valued, for wire encoding that needs the original representation
// rather than ToScalar's Fr-reduced form.
func (a AttributeKind) NumericValue() (*uint256.Int, bool) { return a.num, !a.isString }

// String returns the human-readable form: the string itself, or the
// integer's decimal representation.
func (a AttributeKind) String() string {
	if a.isString {
		return a.str
	}
	if a.num == nil {
		return "0"
	}
	return a.num.Dec()
}

// ToScalar reduces the attribute's canonical byte encoding modulo Fr, the
// form every attribute takes once committed or signed over. A string
// attribute is encoded as a one-byte type tag (0) followed by its UTF-8
// bytes, left-padded; a numeric attribute as a one-byte tag (1) followed
// by its 31 low-order bytes — both fit in the 32-byte window
// ScalarFromWideBytes reduces.
func (a AttributeKind) ToScalar() *curve.Scalar {
	var wide [32]byte
	if a.isString {
		wide[0] = 0
		copy(wide[1:], []byte(a.str))
	} else {
		wide[0] = 1
		if a.num != nil {
			b := a.num.Bytes32()
			copy(wide[1:], b[1:])
		}
	}
	return curve.ScalarFromWideBytes(wide[:])
}

// AttributeList is the set of attributes the Identity Provider certifies
// about a holder, along with the window it is valid for and the maximum
// number of accounts it may be used to derive.
type AttributeList struct {
	ValidTo     YearMonth
	CreatedAt   YearMonth
	MaxAccounts uint8
	Alist       map[AttributeTag]AttributeKind
}

// ErrMaxAccountsZero and ErrValidityWindowInverted correspond to spec.md
// §7's StructuralInvalid cases for AttributeList.
var (
	ErrMaxAccountsZero         = errors.New("id: max_accounts must be nonzero")
	ErrValidityWindowInverted  = errors.New("id: created_at must be at most valid_to")
)

// Validate checks AttributeList's structural invariants (spec.md §3, §7).
func (al *AttributeList) Validate() error {
	if al.MaxAccounts == 0 {
		return ErrMaxAccountsZero
	}
	if !al.CreatedAt.AtMost(al.ValidTo) {
		return ErrValidityWindowInverted
	}
	return nil
}

// SortedTags returns al's attribute tags in ascending order, the
// canonical iteration order for both the wire encoding and the PS message
// vector construction.
func (al *AttributeList) SortedTags() []AttributeTag {
	tags := make([]AttributeTag, 0, len(al.Alist))
	for t := range al.Alist {
		tags = append(tags, t)
	}
	sortTags(tags)
	return tags
}

func sortTags(tags []AttributeTag) {
	for i := 1; i < len(tags); i++ {
		for j := i; j > 0 && tags[j-1] > tags[j]; j-- {
			tags[j-1], tags[j] = tags[j], tags[j-1]
		}
	}
}

// Policy is the subset of an AttributeList's attributes a holder reveals
// in one CredentialDeploymentInfo, plus the same validity window
// (carried through so a verifier need not look the attribute list back up
// anywhere else). PolicyVersion is an [EXPANSION] forward-compatibility
// field (see SPEC_FULL.md §4.8); this module only ever emits version 0.
type Policy struct {
	ValidTo       YearMonth
	CreatedAt     YearMonth
	PolicyVersion uint32
	PolicyVec     map[AttributeTag]AttributeKind
}

// RevealedTags returns the policy's attribute tags in ascending order.
func (p *Policy) RevealedTags() []AttributeTag {
	tags := make([]AttributeTag, 0, len(p.PolicyVec))
	for t := range p.PolicyVec {
		tags = append(tags, t)
	}
	sortTags(tags)
	return tags
}

// KeyIndex indexes one of an account's Ed25519 signing keys.
type KeyIndex uint8

// SignatureThreshold is the number of account-key signatures required to
// authorize a transaction from the deployed credential's account.
type SignatureThreshold uint8
