// Package position implements the Sylver Coinage position engine: a
// dense bit-array model of a numerical semigroup (or, when the
// generators share a common factor, its gcd-reduced variant) and the
// algebraic derivations performed directly on that bit array —
// minimal generators, Frobenius number, genus, and irreducibility
// classification. The package is pure and side-effect free; every
// operation returns a new Position rather than mutating its receiver.
package position

import (
	"fmt"
	"sort"

	"github.com/jdclarke5/sylver-go/internal/bitarray"
)

// Position is an immutable numerical-semigroup state.
// Equality of two Positions for caching/store purposes is by value of
// Generators (see Identity), not by the chosen bit-array length.
type Position struct {
	seeds       []int
	bits        *bitarray.BitArray
	gcd         int
	generators  []int
	frobenius   int
	irreducible Irreducible
}

// Record is the small derived view of a Position persisted alongside
// each Status-store save. It never carries the bit array.
type Record struct {
	Generators   []int       `json:"generators"`
	GCD          int         `json:"gcd"`
	Multiplicity int         `json:"multiplicity"`
	Genus        int         `json:"genus"`
	Frobenius    int         `json:"frobenius"`
	Irreducible  Irreducible `json:"irreducible"`
}

// Construct builds a Position from a list of positive integer seeds.
// Seeds are deduplicated and sorted; an empty list or any seed below 1
// is an InvalidSeedsError. If no Option supplies a length the
// bit-array length is chosen per the classical Frobenius upper bound.
func Construct(seeds []int, opts ...Option) (*Position, error) {
	if len(seeds) == 0 {
		return nil, invalidSeeds(seeds, "seed list must not be empty")
	}
	unique := dedupeSorted(seeds)
	for _, s := range unique {
		if s < 1 {
			return nil, invalidSeeds(seeds, "seeds must be positive integers")
		}
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	length := cfg.length
	if length == 0 {
		length = defaultLength(unique)
	}

	bits := bitarray.New(length)
	bits.Set(0)
	var generators []int
	for _, s := range unique {
		newBits, newGenerators, _ := rawAdd(bits, generators, s)
		if newBits == nil {
			return nil, lengthError(suggestedLength(unique), "seed %d exceeds bit-array length %d", s, length)
		}
		bits, generators = newBits, newGenerators
	}

	gcd, frobenius, irr, err := finalize(bits, generators)
	if err != nil {
		return nil, err
	}

	return &Position{
		seeds:       unique,
		bits:        bits,
		gcd:         gcd,
		generators:  generators,
		frobenius:   frobenius,
		irreducible: irr,
	}, nil
}

// Option configures Construct.
type Option func(*config)

type config struct {
	length int
}

// WithLength overrides the automatically chosen bit-array length.
func WithLength(n int) Option {
	return func(c *config) { c.length = n }
}

// defaultLength picks a bit-array length large enough to hold the
// classical Frobenius bound for the given generator seeds.
func defaultLength(seeds []int) int {
	if len(seeds) == 1 {
		return seeds[0] + seeds[0]
	}
	g := gcdOf(seeds)
	gMax := seeds[len(seeds)-1]
	gSecond := seeds[len(seeds)-2]
	return g*suggestedReducedBound(gMax, gSecond, g) + seeds[0] + g
}

// suggestedLength mirrors defaultLength but is used for the
// LengthError hint when a caller-supplied length is insufficient.
func suggestedLength(seeds []int) int {
	if len(seeds) == 1 {
		return seeds[0] + seeds[0]
	}
	g := gcdOf(seeds)
	return suggestedReducedBound(seeds[len(seeds)-1], seeds[len(seeds)-2], g)
}

// suggestedReducedBound is the classical two-generator Frobenius
// upper bound (G_max/g - 1)(G_2nd/g - 1) - 1, floored.
func suggestedReducedBound(gMax, gSecond, g int) int {
	a := gMax/g - 1
	b := gSecond/g - 1
	return a*b - 1
}

// Add returns a new Position with n played as a move. If n is already
// a member the call is a no-op and returns an equivalent Position. n
// must be a positive integer; an out-of-range or insufficiently-sized
// n produces a LengthError.
func (p *Position) Add(n int) (*Position, error) {
	if n < 1 {
		return nil, invalidSeeds([]int{n}, "move must be a positive integer")
	}
	if n >= p.bits.Len() {
		return nil, lengthError(n+n, "move %d does not fit in bit-array length %d", n, p.bits.Len())
	}
	newBits, newGenerators, noop := rawAdd(p.bits, p.generators, n)
	if noop {
		return p, nil
	}

	gcd, frobenius, irr, err := finalize(newBits, newGenerators)
	if err != nil {
		return nil, err
	}

	newSeeds := dedupeSorted(append(append([]int{}, p.seeds...), n))
	return &Position{
		seeds:       newSeeds,
		bits:        newBits,
		gcd:         gcd,
		generators:  newGenerators,
		frobenius:   frobenius,
		irreducible: irr,
	}, nil
}

// rawAdd performs the bit-propagation and generator-minimization steps
// of a move without recomputing gcd, Frobenius, or irreducibility —
// callers finalize once, after all moves of a batch (e.g. the seeds
// of Construct) have been applied.
func rawAdd(bits *bitarray.BitArray, generators []int, n int) (*bitarray.BitArray, []int, bool) {
	if n >= bits.Len() {
		return nil, nil, false
	}
	if bits.Get(n) {
		return bits, generators, true
	}

	newBits := bits.Clone()
	newBits.PropagateMove(n)

	survivors := make([]int, 0, len(generators)+1)
	for _, g := range generators {
		switch {
		case g < n:
			survivors = append(survivors, g)
		case g > n:
			if bitarray.EliminatesBeyond(newBits, g, n) {
				survivors = append(survivors, g)
			}
		}
	}
	survivors = append(survivors, n)
	sort.Ints(survivors)

	return newBits, survivors, false
}

// finalize computes gcd, Frobenius number, and irreducibility from a
// bit array and generator list, verifying the generator tail is fully
// saturated along the way.
func finalize(bits *bitarray.BitArray, generators []int) (gcd, frobenius int, irr Irreducible, err error) {
	gcd = gcdOf(generators)
	reduced := reduceByGCD(bits, gcd)

	multiplicity := minInt(generators)
	tailLen := multiplicity / gcd
	if !tailAllSet(reduced, tailLen) {
		return 0, 0, IrreducibleNone, lengthError(
			suggestedLength(generators),
			"generator tail of length %d not saturated in reduced array of length %d", tailLen, reduced.Len())
	}

	lastClear := reduced.LastClear()
	if lastClear < 0 {
		frobenius = 0
	} else {
		frobenius = lastClear * gcd
	}
	irr = classifyIrreducible(reduced, lastClearIndex(lastClear))
	return gcd, frobenius, irr, nil
}

func lastClearIndex(lastClear int) int {
	if lastClear < 0 {
		return 0
	}
	return lastClear
}

func tailAllSet(reduced *bitarray.BitArray, tailLen int) bool {
	if tailLen <= 0 {
		return true
	}
	start := reduced.Len() - tailLen
	if start < 0 {
		return false
	}
	for i := start; i < reduced.Len(); i++ {
		if !reduced.Get(i) {
			return false
		}
	}
	return true
}

// reduceByGCD samples bits at every multiple of gcd, producing the
// reduced semigroup's membership array.
func reduceByGCD(bits *bitarray.BitArray, gcd int) *bitarray.BitArray {
	if gcd <= 0 {
		gcd = 1
	}
	reducedLen := (bits.Len()-1)/gcd + 1
	reduced := bitarray.New(reducedLen)
	for i := 0; i < reducedLen; i++ {
		if bits.Get(i * gcd) {
			reduced.Set(i)
		}
	}
	return reduced
}

// Gaps returns the indices of the non-members of the semigroup,
// ascending, or descending when reverse is true. Each call returns a
// fresh slice.
func (p *Position) Gaps(reverse bool) []int {
	return p.bits.Gaps(reverse)
}

// ReduceLength shrinks the bit array to the minimum size implied by
// the Frobenius number, rounded up to a multiple of mod. mod <= 0 is
// treated as 1 (no rounding).
func (p *Position) ReduceLength(mod int) *Position {
	if mod <= 0 {
		mod = 1
	}
	minLen := p.frobenius + minInt(p.generators) + p.gcd
	newLen := roundUp(minLen, mod)
	if newLen >= p.bits.Len() {
		return p
	}
	clone := &Position{
		seeds:       p.seeds,
		bits:        bitarray.New(newLen),
		gcd:         p.gcd,
		generators:  p.generators,
		frobenius:   p.frobenius,
		irreducible: p.irreducible,
	}
	for i := 0; i < newLen; i++ {
		if p.bits.Get(i) {
			clone.bits.Set(i)
		}
	}
	return clone
}

func roundUp(n, mod int) int {
	if mod <= 1 {
		return n
	}
	if n%mod == 0 {
		return n
	}
	return n + (mod - n%mod)
}

// AperySet returns the Apery set of the semigroup with respect to n:
// entry i is the least member e with e mod n == i.
func (p *Position) AperySet(n int) ([]int, error) {
	if n < 1 {
		return nil, invalidSeeds([]int{n}, "apery modulus must be positive")
	}
	result := make([]int, n)
	for i := 0; i < n; i++ {
		found := false
		for e := i; e < p.bits.Len(); e += n {
			if p.bits.Get(e) {
				result[i] = e
				found = true
				break
			}
		}
		if !found {
			return nil, lengthError(p.bits.Len()*2, "apery set entry %d not found within length %d", i, p.bits.Len())
		}
	}
	return result, nil
}

// FromIdentity reconstructs a Position from a canonical identity
// string produced by Identity, e.g. "{8, 10, 22}" — the Status
// store's round-trip path.
func FromIdentity(identity string, opts ...Option) (*Position, error) {
	seeds, err := ParseIdentity(identity)
	if err != nil {
		return nil, err
	}
	return Construct(seeds, opts...)
}

// ParseIdentity parses a canonical identity string into its seed
// list.
func ParseIdentity(identity string) ([]int, error) {
	trimmed := identity
	if len(trimmed) >= 2 && trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}' {
		trimmed = trimmed[1 : len(trimmed)-1]
	}
	if trimmed == "" {
		return nil, invalidSeeds(nil, "empty identity %q", identity)
	}
	var seeds []int
	start := 0
	for i := 0; i <= len(trimmed); i++ {
		if i == len(trimmed) || trimmed[i] == ',' {
			token := trimmed[start:i]
			for len(token) > 0 && token[0] == ' ' {
				token = token[1:]
			}
			var n int
			if _, err := fmt.Sscanf(token, "%d", &n); err != nil {
				return nil, invalidSeeds(nil, "malformed identity token %q in %q", token, identity)
			}
			seeds = append(seeds, n)
			start = i + 1
		}
	}
	return seeds, nil
}

// Identity returns the canonical position identity: the generator
// list rendered as "{g1, g2, ..., gk}". This is the primary key used
// by the Status store.
func (p *Position) Identity() string {
	return identityString(p.generators)
}

func identityString(generators []int) string {
	s := "{"
	for i, g := range generators {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", g)
	}
	return s + "}"
}

// Record returns the derived view persisted with each Status-store
// save. It never includes the bit array.
func (p *Position) Record() Record {
	return Record{
		Generators:   append([]int{}, p.generators...),
		GCD:          p.gcd,
		Multiplicity: p.Multiplicity(),
		Genus:        p.Genus(),
		Frobenius:    p.frobenius,
		Irreducible:  p.irreducible,
	}
}

// Generators returns the minimal generating set, ascending.
func (p *Position) Generators() []int {
	return append([]int{}, p.generators...)
}

// Seeds returns the moves played so far, ascending and deduplicated.
func (p *Position) Seeds() []int {
	return append([]int{}, p.seeds...)
}

// GCD returns the greatest common divisor of the generators.
func (p *Position) GCD() int {
	return p.gcd
}

// Frobenius returns the largest non-member of the reduced semigroup,
// scaled by GCD (0 if the reduced semigroup has no gap).
func (p *Position) Frobenius() int {
	return p.frobenius
}

// Multiplicity returns the least generator.
func (p *Position) Multiplicity() int {
	return minInt(p.generators)
}

// Genus returns the number of gaps of the reduced semigroup.
func (p *Position) Genus() int {
	reduced := reduceByGCD(p.bits, p.gcd)
	return reduced.Len() - reduced.CountSet()
}

// Irreducible classifies the reduced semigroup.
func (p *Position) Irreducible() Irreducible {
	return p.irreducible
}

// Length returns the current bit-array length, an implementation
// detail that is not part of Position identity.
func (p *Position) Length() int {
	return p.bits.Len()
}

// Bits returns the raw membership array (index i set means i is in
// the semigroup), for collaborators that want to inspect it directly
// (e.g. the HTTP surface's "bitarray" field).
func (p *Position) Bits() []bool {
	out := make([]bool, p.bits.Len())
	for i := range out {
		out[i] = p.bits.Get(i)
	}
	return out
}

func dedupeSorted(values []int) []int {
	sorted := append([]int{}, values...)
	sort.Ints(sorted)
	out := sorted[:0]
	var prev int
	for i, v := range sorted {
		if i == 0 || v != prev {
			out = append(out, v)
		}
		prev = v
	}
	return out
}

func minInt(values []int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func gcdOf(values []int) int {
	g := 0
	for _, v := range values {
		g = gcdTwo(g, v)
	}
	return g
}

func gcdTwo(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
