package solver

import (
	"fmt"

	"github.com/jdclarke5/sylver-go/internal/storebackend"
	"github.com/jdclarke5/sylver-go/position"
)

// node holds one position reachable from a seed, plus the identities
// of its children (one per legal gap).
type node struct {
	pos      *position.Position
	children []string
}

// ClassifyReachableSet builds the bounded game graph reachable from
// seed and classifies every node by repeated fixpoint passes: a node
// is N if any child is P, P if every child is N, otherwise left for
// the next pass. This is an independent, non-recursive solving
// strategy used to cross-check the recursive solver on the same
// bounded graph. Classifying the complete reachable set of an
// arbitrary position is generally infeasible, so the traversal stops
// at maxNodes and reports how many positions it left unclassified.
//
// It returns the identity -> status map and the number of reachable
// positions that exceeded maxNodes and were not visited.
func ClassifyReachableSet(seed *position.Position, maxNodes int) (map[string]storebackend.Status, int, error) {
	nodes := make(map[string]*node)
	order := []string{seed.Identity()}
	nodes[seed.Identity()] = &node{pos: seed}

	queue := []*position.Position{seed}
	truncated := 0
	skipped := make(map[string]bool)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		n := nodes[p.Identity()]

		for _, gap := range p.Gaps(false) {
			child, err := p.Add(gap)
			if err != nil {
				continue
			}
			identity := child.Identity()
			n.children = append(n.children, identity)
			if _, seen := nodes[identity]; seen {
				continue
			}
			if len(nodes) >= maxNodes {
				if !skipped[identity] {
					skipped[identity] = true
					truncated++
				}
				continue
			}
			nodes[identity] = &node{pos: child}
			order = append(order, identity)
			queue = append(queue, child)
		}
	}

	statuses := make(map[string]storebackend.Status, len(nodes))
	for {
		progressed := false
		complete := true
		for _, identity := range order {
			if _, done := statuses[identity]; done {
				continue
			}
			n := nodes[identity]
			if n.pos.GCD() == 1 && n.pos.Irreducible() != position.IrreducibleNone && !isTwoThree(n.pos) {
				statuses[identity] = storebackend.StatusN
				progressed = true
				continue
			}

			sawUnknownChild := false
			foundP := false
			for _, childIdentity := range n.children {
				childStatus, ok := statuses[childIdentity]
				if !ok {
					sawUnknownChild = true
					break
				}
				if childStatus == storebackend.StatusP {
					foundP = true
					break
				}
			}
			switch {
			case foundP:
				statuses[identity] = storebackend.StatusN
				progressed = true
			case !sawUnknownChild:
				statuses[identity] = storebackend.StatusP
				progressed = true
			default:
				complete = false
			}
		}
		if complete || !progressed {
			break
		}
	}

	for _, identity := range order {
		if _, done := statuses[identity]; !done {
			statuses[identity] = storebackend.StatusUnknown
		}
	}

	if truncated > 0 {
		return statuses, truncated, fmt.Errorf("solver: reachable set truncated at %d nodes, %d unvisited", maxNodes, truncated)
	}
	return statuses, 0, nil
}

func isTwoThree(p *position.Position) bool {
	g := p.Generators()
	return len(g) == 2 && g[0] == 2 && g[1] == 3
}
