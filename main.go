package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"time"

	"labyrinth/internal/logio"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run parses flags, loads a program, and plays it to completion. The
// final process exit code is the engine's own (0 for Q/D, n for q(n)),
// not logio's binary ExitCode() scheme — a fatal runtime error still
// exits 1 per §7, but a successful cooperative exit can be any value, so
// the code is threaded back explicitly rather than inferred from the log.
func run(argv []string) int {
	var log logio.Logger
	log.SetOutput(os.Stderr)

	fs := flag.NewFlagSet("labyrinth", flag.ContinueOnError)
	file := fs.String("f", "", "path to a program file")
	expr := fs.String("e", "", "inline program text")
	debug := fs.Bool("d", false, "enable debug rendering (board + stacks)")
	timeout := fs.Duration("timeout", 0, "abort play after this long (0 disables)")
	seed := fs.Int64("seed", 1, "PRNG seed for R")
	pacing := fs.Duration("pacing", 100*time.Millisecond, "delay between rendered debug frames")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	if (*file == "") == (*expr == "") {
		log.Errorf("exactly one of -f or -e is required")
		return log.ExitCode()
	}

	var src string
	if *file != "" {
		b, err := os.ReadFile(*file)
		if err != nil {
			log.Errorf("%v", loadError{path: *file, err: err})
			return log.ExitCode()
		}
		src = string(b)
	} else {
		src = *expr
	}

	var seedValues []int64
	for _, arg := range fs.Args() {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			log.Errorf("invalid positional integer %q: %v", arg, err)
			return log.ExitCode()
		}
		seedValues = append(seedValues, n)
	}

	opts := []EngineOption{
		WithOutput(os.Stdout),
		WithInput(os.Stdin),
		WithRandSeed(*seed),
		WithSeedValues(seedValues...),
	}
	if *debug {
		opts = append(opts,
			WithDebug(DebugOptions{Enabled: true, PrintBoard: true, PrintStacks: true}),
			WithPacing(*pacing),
			WithLogf(log.Leveledf("TRACE")),
		)
	}

	e := New(src, opts...)

	ctx := context.Background()
	if *timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *timeout)
		defer cancel()
	}

	code, err := e.Run(ctx)
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	return code
}
