package pedersen

import (
	"github.com/veyra-id/idcore/pkg/curve"
)

// CommitmentKeyG2 is the G2 analogue of CommitmentKey, used where a value
// must be committed to in G2 rather than G1 — chiefly the cross-group
// equality proof (com_eq_different_groups) that binds a G1 commitment and
// a G2 commitment to the same underlying scalar.
type CommitmentKeyG2 struct {
	G *curve.G2
	H *curve.G2
}

// GenerateCommitmentKeyG2 derives a fresh (g, h) pair in G2 the same way
// GenerateCommitmentKey does in G1.
func GenerateCommitmentKeyG2(seed []byte) (*CommitmentKeyG2, error) {
	g, err := curve.HashToG2(seed, []byte("idcore-pedersen-g2-g"))
	if err != nil {
		return nil, err
	}
	h, err := curve.HashToG2(seed, []byte("idcore-pedersen-g2-h"))
	if err != nil {
		return nil, err
	}
	return &CommitmentKeyG2{G: g, H: h}, nil
}

// CommitmentG2 is a Pedersen commitment in G2.
type CommitmentG2 struct {
	c *curve.G2
}

// Commit computes C = key.G^v · key.H^r in G2.
func (key *CommitmentKeyG2) Commit(v Value, r Randomness) CommitmentG2 {
	gv := key.G.ScalarMul(v.s)
	hr := key.H.ScalarMul(r.s)
	return CommitmentG2{c: gv.Add(hr)}
}

// Open reports whether (v, r) is a valid opening of c under key.
func (key *CommitmentKeyG2) Open(c CommitmentG2, v Value, r Randomness) error {
	if !key.Commit(v, r).c.Equal(c.c) {
		return ErrCommitmentMismatch
	}
	return nil
}

// Point returns the underlying G2 group element.
func (c CommitmentG2) Point() *curve.G2 { return c.c }

// CommitmentG2FromPoint wraps a raw G2 element as a CommitmentG2.
func CommitmentG2FromPoint(p *curve.G2) CommitmentG2 { return CommitmentG2{c: p} }

// Equal reports whether two G2 commitments encode the same group element.
func (c CommitmentG2) Equal(other CommitmentG2) bool { return c.c.Equal(other.c) }
