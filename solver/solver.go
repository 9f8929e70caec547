// Package solver implements the recursive P/N classifier for Sylver
// Coinage positions: a case split on gcd and irreducibility, backed
// by a memoizing Status store and a quick shortcut oracle, with an
// optional deep mode that enumerates every winning reply.
package solver

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/jdclarke5/sylver-go/internal/storebackend"
	"github.com/jdclarke5/sylver-go/oracle"
	"github.com/jdclarke5/sylver-go/position"
)

// Options configures a Solve call.
type Options struct {
	// Backend is the Status store to consult/update. A fresh
	// in-memory store is used when nil.
	Backend storebackend.Store
	// Reverse enumerates gaps descending instead of ascending.
	Reverse bool
	// Deep explores every gap and accumulates all winning replies,
	// instead of stopping at the first.
	Deep bool
	// Verbose emits a structured log event per position classified.
	Verbose bool
	// Oracle overrides the quick shortcut's table/primality tester.
	// The zero value uses oracle's defaults.
	Oracle oracle.Options
	// Logger receives verbose events; the package default (a
	// human-readable console writer on stderr) is used when nil.
	Logger *zerolog.Logger
}

// Result is the outcome of a single Solve call: the position's
// status and, when N, the winning replies found by the search (one in
// non-deep mode, all of them in deep mode). When the quick oracle or
// a stored entry decides the status, no search runs and Replies is
// empty, so an N result can carry no replies.
type Result struct {
	Status  storebackend.Status
	Replies []int
}

// Solve classifies a position as P, N, or ?. It is deterministic
// given fixed options and a clean store.
func Solve(p *position.Position, opts Options) Result {
	backend := opts.Backend
	if backend == nil {
		backend = storebackend.NewMemory()
	}
	logger := opts.Logger
	if logger == nil {
		logger = defaultLogger()
	}
	return solve(p, opts, backend, logger)
}

func solve(p *position.Position, opts Options, backend storebackend.Store, logger *zerolog.Logger) Result {
	identity := p.Identity()

	// Step 1 — quick shortcut oracle, skipped in deep mode so that
	// every reply is enumerated.
	if !opts.Deep {
		if status, ok := oracle.Quick(p, opts.Oracle); ok {
			logVerbose(opts, logger, identity, status, nil)
			return Result{Status: status}
		}
	} else if generators := p.Generators(); len(generators) == 1 && generators[0] == 1 {
		// [1] is N regardless of mode: there is no search to force.
		logVerbose(opts, logger, identity, storebackend.StatusN, nil)
		return Result{Status: storebackend.StatusN}
	}

	// Step 2 — store lookup.
	if status, ok := backend.GetStatus(identity); ok && status != storebackend.StatusUnknown {
		return Result{Status: status}
	}

	// Step 3 — recursive case split.
	var status storebackend.Status
	var replies []int

	isPrime := opts.Oracle.IsPrime
	if isPrime == nil {
		isPrime = oracle.DefaultIsPrime
	}

	switch {
	case p.GCD() == 1:
		status, replies = solveCaseA(p, opts, backend, logger)
	case p.Irreducible() == position.IrreducibleSymmetric && isPrime(p.GCD()):
		status, replies = solveCaseB(p, opts, backend, logger)
	default:
		status, replies = solveCaseC(p, opts, backend, logger)
	}

	// Step 4 — finalize: Cases A and B return status == "" when they
	// found no P-child and no ?-child, meaning every child was N with
	// certainty. Case C never returns an empty status.
	if status == "" {
		status = storebackend.StatusP
	}

	// Step 5 — persist and return.
	backend.Save(identity, p.Record(), status, replies)
	logVerbose(opts, logger, identity, status, replies)
	return Result{Status: status, Replies: replies}
}

// solveCaseA handles gcd == 1 positions.
func solveCaseA(p *position.Position, opts Options, backend storebackend.Store, logger *zerolog.Logger) (storebackend.Status, []int) {
	p = p.ReduceLength(1)
	var status storebackend.Status
	var replies []int
	for _, gap := range p.Gaps(opts.Reverse) {
		child, err := p.Add(gap)
		if err != nil {
			continue
		}
		childResult := solve(child, opts, backend, logger)
		switch childResult.Status {
		case storebackend.StatusP:
			status = storebackend.StatusN
			replies = append(replies, gap)
			if !opts.Deep {
				return status, replies
			}
		case storebackend.StatusUnknown:
			if status == "" {
				status = storebackend.StatusUnknown
			}
		}
	}
	return status, replies
}

// solveCaseB handles "short" gcd > 1 positions: the reduced semigroup
// is symmetric and gcd is prime. Quiet End pruning skips any gap
// beyond the Frobenius number; ? children propagate ?.
func solveCaseB(p *position.Position, opts Options, backend storebackend.Store, logger *zerolog.Logger) (storebackend.Status, []int) {
	var status storebackend.Status
	var replies []int
	for _, gap := range p.Gaps(opts.Reverse) {
		if gap > p.Frobenius() {
			continue
		}
		child, err := p.Add(gap)
		if err != nil {
			continue
		}
		childResult := solve(child, opts, backend, logger)
		switch childResult.Status {
		case storebackend.StatusP:
			status = storebackend.StatusN
			replies = append(replies, gap)
			if !opts.Deep {
				return status, replies
			}
		case storebackend.StatusUnknown:
			if status == "" {
				status = storebackend.StatusUnknown
			}
		}
	}
	return status, replies
}

// solveCaseC handles every other gcd > 1 position (the "long" case).
// Add failures (LengthError) are recoverable: the gap is skipped.
// Absence of a witness is not proof of P, so the finalize step is
// explicitly bypassed here when nothing was found.
func solveCaseC(p *position.Position, opts Options, backend storebackend.Store, logger *zerolog.Logger) (storebackend.Status, []int) {
	var status storebackend.Status
	var replies []int
	anyAttempted := false
	for _, gap := range p.Gaps(opts.Reverse) {
		child, err := p.Add(gap)
		if err != nil {
			continue
		}
		anyAttempted = true
		childResult := solve(child, opts, backend, logger)
		switch childResult.Status {
		case storebackend.StatusP:
			status = storebackend.StatusN
			replies = append(replies, gap)
			if !opts.Deep {
				return status, replies
			}
		case storebackend.StatusUnknown:
			if status == "" {
				status = storebackend.StatusUnknown
			}
		}
	}
	if status == "" {
		logger.Warn().Str("position", p.Identity()).Bool("any_move_attempted", anyAttempted).
			Msg("long case: no winning reply found; cannot conclude P")
		status = storebackend.StatusUnknown
	}
	return status, replies
}

func logVerbose(opts Options, logger *zerolog.Logger, identity string, status storebackend.Status, replies []int) {
	if !opts.Verbose {
		return
	}
	logger.Info().Str("position", identity).Str("status", string(status)).Ints("replies", replies).Msg("classified")
}

func defaultLogger() *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return &logger
}
