// Package httpapi implements the HTTP collaborator surface: a single
// read endpoint that reports a position's status, consulting the
// quick oracle and the Status store before falling back to an
// asynchronous background solve.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jdclarke5/sylver-go/internal/storebackend"
	"github.com/jdclarke5/sylver-go/internal/workerpool"
	"github.com/jdclarke5/sylver-go/oracle"
	"github.com/jdclarke5/sylver-go/position"
	"github.com/jdclarke5/sylver-go/solver"
)

var errMissingInput = errors.New(`httpapi: missing required "input" query parameter`)

// Server holds the shared state backing the HTTP surface: a Status
// store, the background solve pool, and the quick oracle's
// configuration.
type Server struct {
	Backend storebackend.Store
	Pool    *workerpool.Pool
	Oracle  oracle.Options
	Logger  zerolog.Logger
}

// New returns a Server with a 4-worker background solve pool.
func New(backend storebackend.Store, logger zerolog.Logger) *Server {
	return &Server{
		Backend: backend,
		Pool:    workerpool.New(4),
		Logger:  logger,
	}
}

// Handler returns the HTTP mux for this server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/get", s.handleGet)
	return mux
}

// positionView is the JSON shape returned for a position: its derived
// Record fields, status, and (optionally) raw membership array and
// children.
type positionView struct {
	position.Record
	Status   storebackend.Status     `json:"status"`
	BitArray []bool                  `json:"bitarray,omitempty"`
	Children map[string]positionView `json:"children,omitempty"`
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	query := r.URL.Query()

	seeds, err := parseSeeds(query.Get("input"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var opts []position.Option
	if raw := query.Get("length"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid length: "+err.Error())
			return
		}
		opts = append(opts, position.WithLength(n))
	}

	pos, err := position.Construct(seeds, opts...)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	status := s.lookup(pos)
	if status == storebackend.StatusUnknown {
		s.submit(pos)
	}

	view := positionView{Record: pos.Record(), Status: status, BitArray: pos.Bits()}
	if query.Get("children") != "" {
		view.Children = s.children(pos)
	}

	s.Logger.Info().
		Str("method", r.Method).
		Ints("seeds", seeds).
		Str("status", string(status)).
		Dur("latency", time.Since(start)).
		Msg("handled request")

	writeJSON(w, http.StatusOK, view)
}

// lookup tries the quick shortcut, then the backend, and otherwise
// reports unknown.
func (s *Server) lookup(pos *position.Position) storebackend.Status {
	if status, ok := oracle.Quick(pos, s.Oracle); ok {
		return status
	}
	if status, ok := s.Backend.GetStatus(pos.Identity()); ok {
		return status
	}
	return storebackend.StatusUnknown
}

// submit schedules a background, non-deep, non-verbose solve so a
// later request for the same identity can be answered from the
// backend instead of recomputing.
func (s *Server) submit(pos *position.Position) {
	s.Pool.Submit(pos.Identity(), func(ctx context.Context) {
		solver.Solve(pos, solver.Options{Backend: s.Backend, Oracle: s.Oracle})
	})
}

// children reports the status of every position reachable by one
// legal move, skipping any move the current bit-array length cannot
// support.
func (s *Server) children(pos *position.Position) map[string]positionView {
	children := make(map[string]positionView)
	for _, gap := range pos.Gaps(false) {
		child, err := pos.Add(gap)
		if err != nil {
			continue
		}
		children[strconv.Itoa(gap)] = positionView{
			Record: child.Record(),
			Status: s.lookup(child),
		}
	}
	return children
}

func parseSeeds(raw string) ([]int, error) {
	if raw == "" {
		return nil, errMissingInput
	}
	parts := strings.Split(raw, ",")
	seeds := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		seeds[i] = n
	}
	return seeds, nil
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
