package main

import (
	"io"
	"os"
	"strings"
	"time"
)

// EngineOption configures an Engine at construction, mirroring gothird's
// VMOption combinator: options compose via EngineOptions rather than a
// growing constructor parameter list.
type EngineOption interface {
	apply(e *Engine)
}

type optionFunc func(e *Engine)

func (f optionFunc) apply(e *Engine) { f(e) }

type options []EngineOption

func (opts options) apply(e *Engine) {
	for _, opt := range opts {
		if opt != nil {
			opt.apply(e)
		}
	}
}

// EngineOptions flattens a list of options into one, applied in order.
func EngineOptions(opts ...EngineOption) EngineOption {
	return options(opts)
}

var defaultOptions = EngineOptions(
	withOutput(io.Discard),
	withDebugOutput(os.Stderr),
	withInput(strings.NewReader("")),
	withRandSeed(1),
)

func withOutput(w io.Writer) EngineOption {
	return optionFunc(func(e *Engine) { e.out = newOutWriter(w) })
}

func withDebugOutput(w io.Writer) EngineOption {
	return optionFunc(func(e *Engine) { e.dbg = newOutWriter(w) })
}

func withInput(r io.Reader) EngineOption {
	return optionFunc(func(e *Engine) { e.in = newInReader(r) })
}

func withRandSeed(seed int64) EngineOption {
	return optionFunc(func(e *Engine) { e.rand = newRandSource(seed) })
}

func withPacing(d time.Duration) EngineOption {
	return optionFunc(func(e *Engine) { e.pacing = d })
}

func withDebugOptions(d DebugOptions) EngineOption {
	return optionFunc(func(e *Engine) { e.debug = d })
}

func withLogf(fn func(string, ...interface{})) EngineOption {
	return optionFunc(func(e *Engine) { e.logf = fn })
}

func withSeedValues(vals []int64) EngineOption {
	return optionFunc(func(e *Engine) {
		for _, v := range vals {
			e.original.push(intValue(v))
		}
	})
}

// WithOutput sets the stream P/p/N/n write to. Defaults to io.Discard.
func WithOutput(w io.Writer) EngineOption { return withOutput(w) }

// WithDebugOutput sets the stream debug frames and D/d dumps write to.
func WithDebugOutput(w io.Writer) EngineOption { return withDebugOutput(w) }

// WithInput sets the stream U reads from. Defaults to an empty reader, so
// U immediately observes EOF (pushes 0) unless an input is supplied.
func WithInput(r io.Reader) EngineOption { return withInput(r) }

// WithRandSeed seeds the R instruction's PRNG.
func WithRandSeed(seed int64) EngineOption { return withRandSeed(seed) }

// WithPacing sets the sleep between rendered debug frames. Zero (the
// default) renders as fast as the renderer goroutine can keep up.
func WithPacing(d time.Duration) EngineOption { return withPacing(d) }

// WithDebug enables and configures debug rendering.
func WithDebug(d DebugOptions) EngineOption { return withDebugOptions(d) }

// WithLogf installs a per-instruction trace hook, mirroring logio's
// leveled trace logging in the teacher's VM.
func WithLogf(fn func(string, ...interface{})) EngineOption { return withLogf(fn) }

// WithSeedValues pushes the given ints onto the original maiden's stack
// before play begins — the CLI's positional-argument behavior.
func WithSeedValues(vals ...int64) EngineOption { return withSeedValues(vals) }
