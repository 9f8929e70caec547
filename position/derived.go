package position

// This file holds read-only derived views over an already-constructed
// Position that Construct and Add do not need to compute eagerly:
// special/lonely/ender gap classification and the quiet-ender test.
// They are opt-in and may cost more than the O(length) construction
// budget.

// SpecialGaps returns the gaps x such that adjoining x alone (without
// needing any other gap first) yields a numerical semigroup: playing x
// eliminates no larger gap.
func (p *Position) SpecialGaps() []int {
	gaps := p.bits.Gaps(false)
	notSpecial := make(map[int]bool, len(gaps))
	for i, gap := range gaps {
		for _, higher := range gaps[i+1:] {
			if eliminatesIndex(p, higher, gap) {
				notSpecial[gap] = true
				break
			}
		}
	}
	return filterGaps(gaps, notSpecial)
}

// LonelyGaps returns the gaps eliminated by every smaller gap.
func (p *Position) LonelyGaps() []int {
	gaps := p.bits.Gaps(false)
	notLonely := make(map[int]bool, len(gaps))
	for i, gap := range gaps {
		for _, lower := range gaps[:i] {
			if !eliminatesIndex(p, gap, lower) {
				notLonely[gap] = true
				break
			}
		}
	}
	return filterGaps(gaps, notLonely)
}

// EnderGaps returns the gaps x for which playing x makes the
// resulting position irreducible. Gaps that would require a larger
// bit array are silently skipped.
func (p *Position) EnderGaps() []int {
	var enders []int
	for _, gap := range p.bits.Gaps(false) {
		child, err := p.Add(gap)
		if err != nil {
			continue
		}
		if child.Irreducible() != IrreducibleNone {
			enders = append(enders, gap)
		}
	}
	return enders
}

// IsQuietEnder reports whether no two legal moves (gaps not exceeding
// the Frobenius number) sum to the Frobenius number. The solver does
// not call it; its "short" case prunes gaps above the Frobenius number
// directly.
func (p *Position) IsQuietEnder() bool {
	if p.frobenius == 0 {
		return true
	}
	legal := make(map[int]bool)
	for _, gap := range p.bits.Gaps(false) {
		if gap <= p.frobenius {
			legal[gap] = true
		}
	}
	for gap := range legal {
		if legal[p.frobenius-gap] {
			return false
		}
	}
	return true
}

// eliminatesIndex reports whether stepping back from target in
// increments of step ever lands on a member.
func eliminatesIndex(p *Position, target, step int) bool {
	if step <= 0 {
		return false
	}
	for i := target; i >= 0; i -= step {
		if p.bits.Get(i) {
			return true
		}
	}
	return false
}

func filterGaps(gaps []int, exclude map[int]bool) []int {
	result := make([]int, 0, len(gaps))
	for _, g := range gaps {
		if !exclude[g] {
			result = append(result, g)
		}
	}
	return result
}
