// Command sylver is the Sylver Coinage command-line front end: solve
// a single position, or run the HTTP collaborator with -serve.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/jdclarke5/sylver-go/internal/httpapi"
	"github.com/jdclarke5/sylver-go/internal/storebackend"
	"github.com/jdclarke5/sylver-go/oracle"
	"github.com/jdclarke5/sylver-go/position"
	"github.com/jdclarke5/sylver-go/solver"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("sylver", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: sylver [flags] seed [seed...]")
		fs.PrintDefaults()
	}

	length := fs.Int("length", 0, "length of the underlying bit array (0 picks a default)")
	backendName := fs.String("backend", "", "persistent status-store backend: kv, relational, or empty for in-memory")
	verbose := fs.Bool("verbose", false, "solve verbosely, logging every position classified")
	deep := fs.Bool("deep", false, "solve deeply: don't stop at the first winning reply")
	reverse := fs.Bool("reverse", false, "traverse gaps in descending order")
	serve := fs.Bool("serve", false, "run the HTTP collaborator instead of solving a single position")
	addr := fs.String("addr", ":8080", "address to listen on with -serve")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *serve {
		return runServer(*addr, *backendName, stdout, stderr)
	}

	seeds, err := parseSeeds(fs.Args())
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	var opts []position.Option
	if *length > 0 {
		opts = append(opts, position.WithLength(*length))
	}
	pos, err := position.Construct(seeds, opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	fmt.Fprintf(stdout, "Solving position: %+v\n", pos.Record())
	if *verbose {
		fmt.Fprintf(stdout, "Quiet ender: %v\n", pos.IsQuietEnder())
	}

	logger := newLogger(stderr)
	backend, note := resolveBackend(*backendName)
	if note != "" {
		logger.Warn().Str("backend", *backendName).Msg(note)
	}

	result := solver.Solve(pos, solver.Options{
		Backend: backend,
		Reverse: *reverse,
		Deep:    *deep,
		Verbose: *verbose,
		Oracle:  oracle.Options{},
		Logger:  &logger,
	})

	fmt.Fprintf(stdout, "Solution: status=%s replies=%v\n", result.Status, result.Replies)
	return 0
}

// runServer starts the HTTP collaborator instead of solving a single
// position from the command line.
func runServer(addr, backendName string, stdout, stderr *os.File) int {
	logger := newLogger(stderr)
	backend, note := resolveBackend(backendName)
	if note != "" {
		logger.Warn().Str("backend", backendName).Msg(note)
	}

	server := httpapi.New(backend, logger)
	fmt.Fprintf(stdout, "Listening on %s\n", addr)
	if err := http.ListenAndServe(addr, server.Handler()); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func parseSeeds(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("sylver: at least one seed is required")
	}
	seeds := make([]int, len(args))
	for i, arg := range args {
		n, err := parseInt(arg)
		if err != nil {
			return nil, fmt.Errorf("sylver: invalid seed %q: %w", arg, err)
		}
		seeds[i] = n
	}
	return seeds, nil
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

// resolveBackend names a durable backend on the command line, but
// this repository ships only the in-memory reference Store; a real
// kv/relational implementation is a collaborator's concern.
func resolveBackend(name string) (storebackend.Store, string) {
	switch name {
	case "":
		return storebackend.NewMemory(), ""
	case "kv", "relational":
		return storebackend.NewMemory(), fmt.Sprintf("backend %q is not built into this binary; using in-memory store", name)
	default:
		return storebackend.NewMemory(), fmt.Sprintf("unknown backend %q; using in-memory store", name)
	}
}

func newLogger(stderr *os.File) zerolog.Logger {
	if isTerminal(stderr) {
		return zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(stderr).With().Timestamp().Logger()
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
