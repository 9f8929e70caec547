package solver

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/jdclarke5/sylver-go/internal/storebackend"
	"github.com/jdclarke5/sylver-go/position"
)

// genPosition generates small constructible Positions, replacing any
// seed list that fails to construct with <2,3> (duplicates collapse
// harmlessly).
func genPosition() gopter.Gen {
	return gen.SliceOfN(2, gen.IntRange(1, 12)).Map(func(seeds []int) *position.Position {
		pos, err := position.Construct(seeds)
		if err != nil {
			pos, _ = position.Construct([]int{2, 3})
		}
		return pos
	})
}

func TestPropertySolveIsDeterministic(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// P7: solve(P) is deterministic given fixed options and a clean
	// store.
	properties.Property("repeated solves of the same position agree", prop.ForAll(
		func(pos *position.Position) bool {
			first := Solve(pos, Options{})
			second := Solve(pos, Options{})
			return first.Status == second.Status
		},
		genPosition(),
	))

	properties.TestingRun(t)
}

func TestPropertyDeepFindsASupersetOfNonDeepReplies(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// P8: deep mode's replies are a superset of non-deep mode's; in
	// non-deep mode exactly one reply is reported when N.
	properties.Property("deep replies contain the non-deep reply", prop.ForAll(
		func(pos *position.Position) bool {
			shallow := Solve(pos, Options{})
			deep := Solve(pos, Options{Deep: true})
			if shallow.Status != storebackend.StatusN {
				return true
			}
			if len(shallow.Replies) != 1 {
				return false
			}
			for _, reply := range shallow.Replies {
				found := false
				for _, deepReply := range deep.Replies {
					if deepReply == reply {
						found = true
						break
					}
				}
				if !found {
					return false
				}
			}
			return true
		},
		genPosition(),
	))

	properties.TestingRun(t)
}

func TestPropertyNRepliesLeadToAPChild(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// P9: for every N position, at least one returned reply leads to
	// a child classified P.
	properties.Property("an N position has a witnessing P child", prop.ForAll(
		func(pos *position.Position) bool {
			backend := storebackend.NewMemory()
			result := Solve(pos, Options{Deep: true, Backend: backend})
			if result.Status != storebackend.StatusN {
				return true
			}
			for _, reply := range result.Replies {
				child, err := pos.Add(reply)
				if err != nil {
					continue
				}
				childResult := Solve(child, Options{Backend: backend})
				if childResult.Status == storebackend.StatusP {
					return true
				}
			}
			return false
		},
		genPosition(),
	))

	properties.TestingRun(t)
}

func TestPropertyPPositionsHaveOnlyNChildren(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// P10: for every P position, every gap leads to a child classified
	// N.
	properties.Property("a P position has no P child", prop.ForAll(
		func(pos *position.Position) bool {
			backend := storebackend.NewMemory()
			result := Solve(pos, Options{Backend: backend})
			if result.Status != storebackend.StatusP {
				return true
			}
			for _, gap := range pos.Gaps(false) {
				child, err := pos.Add(gap)
				if err != nil {
					continue
				}
				childResult := Solve(child, Options{Backend: backend})
				if childResult.Status == storebackend.StatusP {
					return false
				}
			}
			return true
		},
		genPosition(),
	))

	properties.TestingRun(t)
}
