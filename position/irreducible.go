package position

import (
	"encoding/json"

	"github.com/jdclarke5/sylver-go/internal/bitarray"
)

// Irreducible classifies the reduced semigroup of a Position: whether
// it is symmetric, pseudosymmetric, or neither.
type Irreducible int

const (
	// IrreducibleNone means the reduced semigroup is neither
	// symmetric nor pseudosymmetric.
	IrreducibleNone Irreducible = iota
	// IrreducibleSymmetric ("s") means perfect antisymmetry holds
	// around the Frobenius number.
	IrreducibleSymmetric
	// IrreduciblePseudosymmetric ("p") means antisymmetry holds
	// everywhere except at the (even) midpoint, which must be a gap.
	IrreduciblePseudosymmetric
)

// String renders the canonical one-character (or empty) token used in
// the derived record: "s", "p", or "" for IrreducibleNone.
func (k Irreducible) String() string {
	switch k {
	case IrreducibleSymmetric:
		return "s"
	case IrreduciblePseudosymmetric:
		return "p"
	default:
		return ""
	}
}

// MarshalJSON renders "s" or "p", and null for IrreducibleNone rather
// than an empty string.
func (k Irreducible) MarshalJSON() ([]byte, error) {
	if k == IrreducibleNone {
		return []byte("null"), nil
	}
	return json.Marshal(k.String())
}

// classifyIrreducible tests the reduced array for perfect antisymmetry
// around Fr = frobenius/gcd. Fr == 0 means the reduced semigroup is
// all of N; by convention the generators == [1] position is
// classified pseudosymmetric rather than symmetric or none.
func classifyIrreducible(reduced *bitarray.BitArray, fr int) Irreducible {
	if fr == 0 {
		return IrreduciblePseudosymmetric
	}

	symmetric := true
	for i := 1; i < fr; i++ {
		if reduced.Get(i) == reduced.Get(fr-i) {
			symmetric = false
			break
		}
	}
	if symmetric {
		return IrreducibleSymmetric
	}

	if fr%2 != 0 {
		return IrreducibleNone
	}
	mid := fr / 2
	if reduced.Get(mid) {
		return IrreducibleNone
	}
	pseudosymmetric := true
	for i := 1; i < fr; i++ {
		if i == mid {
			continue
		}
		if reduced.Get(i) == reduced.Get(fr-i) {
			pseudosymmetric = false
			break
		}
	}
	if pseudosymmetric {
		return IrreduciblePseudosymmetric
	}
	return IrreducibleNone
}
