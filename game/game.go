// Package game tracks the history of an interactively played position,
// recording each move so it can be undone.
package game

import "github.com/jdclarke5/sylver-go/position"

// Game manages a stack of Positions reached by a sequence of moves.
// The initial position is never removed by Undo.
type Game struct {
	history []*position.Position
	played  []int
}

// New starts a Game at the given initial position.
func New(initial *position.Position) *Game {
	return &Game{history: []*position.Position{initial}}
}

// State returns the current position.
func (g *Game) State() *position.Position {
	return g.history[len(g.history)-1]
}

// Played returns the moves played so far, in order.
func (g *Game) Played() []int {
	return append([]int{}, g.played...)
}

// Play adds n to the current position and pushes the result onto the
// history stack.
func (g *Game) Play(n int) error {
	next, err := g.State().Add(n)
	if err != nil {
		return err
	}
	g.history = append(g.history, next)
	g.played = append(g.played, n)
	return nil
}

// Undo rolls back to the previous state. Infinite undos are allowed;
// the initial position is never removed.
func (g *Game) Undo() {
	if len(g.history) == 1 {
		return
	}
	g.history = g.history[:len(g.history)-1]
	g.played = g.played[:len(g.played)-1]
}
