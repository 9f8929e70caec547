// Package oracle implements the solver's "quick" shortcut: a pure,
// pluggable policy over a Position's derived fields that can decide a
// status without any recursive search.
package oracle

import (
	"math/big"

	"github.com/jdclarke5/sylver-go/internal/storebackend"
	"github.com/jdclarke5/sylver-go/position"
)

// SafePosition is a hard-coded gcd>1 P-position: an empirical result
// the solver cannot derive from first principles and must honor
// directly. Generators lists the exact generator set; when Family is
// non-nil the entry instead matches a parametric family and
// Generators is informational only.
type SafePosition struct {
	Generators []int
	Family     func(generators []int) bool
}

// DefaultSafePositions is the oracle's hard-coded table of known gcd>1
// P-positions, exposed as data rather than hard-wired so a host can
// extend or replace it.
var DefaultSafePositions = []SafePosition{
	{Generators: []int{8, 10, 22}},
	{Generators: []int{8, 10, 12, 16}},
	{Generators: []int{8, 10, 12, 14}},
	{Generators: []int{8, 12, 18, 22}},
	{Generators: []int{8, 12, 26, 30}},
	{Generators: []int{8, 12, 34, 38}},
	{Generators: []int{8, 12, 42, 46}},
	{Generators: []int{8, 12, 50, 54}},
	{Family: matchesEightTwelveFamily},
}

// matchesEightTwelveFamily implements the parametric family
// [8, 12, k, k+4] with k ≡ 2 (mod 8).
func matchesEightTwelveFamily(generators []int) bool {
	if len(generators) != 4 {
		return false
	}
	if generators[0] != 8 || generators[1] != 12 {
		return false
	}
	k, kPlus4 := generators[2], generators[3]
	return kPlus4 == k+4 && ((k-2)%8 == 0)
}

// Options configures Quick. The zero value uses DefaultSafePositions
// and DefaultIsPrime; a host environment can inject its own primality
// tester or safe-position table without touching the core solver.
type Options struct {
	SafePositions []SafePosition
	IsPrime       func(int) bool
}

// Quick evaluates the shortcut oracle against a Position's derived
// fields only, without touching the bit array. It returns ("", false)
// when no shortcut fires, in which case the caller must fall through
// to the store lookup and recursive solve.
func Quick(p *position.Position, opts Options) (storebackend.Status, bool) {
	generators := p.Generators()

	if len(generators) == 1 && generators[0] == 1 {
		return storebackend.StatusN, true
	}

	if p.GCD() == 1 && p.Irreducible() != position.IrreducibleNone && !equalInts(generators, []int{2, 3}) {
		return storebackend.StatusN, true
	}

	isPrime := opts.IsPrime
	if isPrime == nil {
		isPrime = DefaultIsPrime
	}
	if len(generators) == 1 && generators[0] > 3 && isPrime(generators[0]) {
		return storebackend.StatusP, true
	}

	safePositions := opts.SafePositions
	if safePositions == nil {
		safePositions = DefaultSafePositions
	}
	for _, sp := range safePositions {
		if sp.Family != nil {
			if sp.Family(generators) {
				return storebackend.StatusP, true
			}
			continue
		}
		if equalInts(generators, sp.Generators) {
			return storebackend.StatusP, true
		}
	}

	return "", false
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// DefaultIsPrime uses math/big's deterministic-for-practical-sizes
// primality test.
func DefaultIsPrime(n int) bool {
	if n < 2 {
		return false
	}
	return big.NewInt(int64(n)).ProbablyPrime(20)
}
