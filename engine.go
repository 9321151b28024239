package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"labyrinth/internal/panicerr"
)

// DebugOptions gates the optional debug instrumentation supplementing the
// core spec: per-tick board/stack rendering and the pacing between frames.
// None of it changes play() semantics — only what gets written to the
// debug stream and how quickly ticks are displayed.
type DebugOptions struct {
	Enabled     bool
	PrintBoard  bool
	PrintStacks bool
}

// Engine is a single play session: a Grid, its ordered Maiden roster
// (maidens[0] is always the original, identified by pointer rather than
// index so fires/reaps elsewhere in the roster never ambiguate it), and
// the session-scoped state (PRNG, I/O, debug options, pacing) that used
// to live in a process-wide singleton in the source.
type Engine struct {
	grid     Grid
	maidens  []*Maiden
	original *Maiden

	rand randSource
	out  *outWriter
	dbg  *outWriter
	in   *inReader

	debug  DebugOptions
	pacing time.Duration
	logf   func(string, ...interface{})
}

// indexOf finds m's current slot, or -1 if it has already been reaped
// this tick (by a Fire instruction executed by an earlier maiden).
func (e *Engine) indexOf(m *Maiden) int {
	for i, mm := range e.maidens {
		if mm == m {
			return i
		}
	}
	return -1
}

// reapAt removes the maiden at i via swap-remove (the last maiden takes
// slot i) and drops its stack. No iteration index is rewound: play() walks
// a per-tick snapshot and skips maidens that indexOf no longer finds.
func (e *Engine) reapAt(i int) {
	n := len(e.maidens)
	m := e.maidens[i]
	e.maidens[i] = e.maidens[n-1]
	e.maidens = e.maidens[:n-1]
	m.destroy()
}

// fork implements H/h: a new maiden is appended at m's position, with a
// deep-cloned stack and a velocity rotated off m's. Appending means the
// tick's length snapshot leaves it untouched until the next tick.
func (e *Engine) fork(m *Maiden, left bool) {
	vel := m.velocity
	if left {
		vel = vel.rotateLeft()
	} else {
		vel = vel.rotateRight()
	}
	child := &Maiden{position: m.position, velocity: vel, stack: m.forkStack()}
	e.maidens = append(e.maidens, child)
}

// fireOne implements F: n is a 1-based index counted among the
// currently-active non-original maidens, i.e. directly e.maidens[n].
func (e *Engine) fireOne(pos Coordinate, n int64) {
	if n < 1 || int(n) >= len(e.maidens) {
		halt(newError(pos, "InvalidMaidenIndex", "no maiden at index %d", n))
	}
	e.reapAt(int(n))
}

// fireN implements f: the last n non-original maidens are reaped from the
// tail, per §9's resolution of the otherwise-unimplemented fire rule.
func (e *Engine) fireN(n int64) {
	for i := int64(0); i < n && len(e.maidens) > 1; i++ {
		e.reapAt(len(e.maidens) - 1)
	}
}

// New builds an Engine over src, applying defaults then the given
// options. One Maiden exists from the start, at the origin, facing
// RIGHT — the original.
func New(src string, opts ...EngineOption) *Engine {
	e := &Engine{grid: newGrid(src)}
	m := newMaiden(zeroCoord)
	e.maidens = []*Maiden{m}
	e.original = m

	defaultOptions.apply(e)
	EngineOptions(opts...).apply(e)
	return e
}

// Run plays the program to completion, returning the original maiden's
// exit code. A second goroutine renders debug frames off a channel when
// DebugOptions.Enabled is set; golang.org/x/sync/errgroup ties its
// lifetime to the play loop's and propagates either side's error.
func (e *Engine) Run(ctx context.Context) (int, error) {
	g, gctx := errgroup.WithContext(ctx)

	var frames chan debugFrame
	if e.debug.Enabled {
		frames = make(chan debugFrame, 4)
		g.Go(func() error { return e.renderLoop(gctx, frames) })
	}

	var code int64
	g.Go(func() error {
		if frames != nil {
			defer close(frames)
		}
		return panicerr.Recover("engine", func() error {
			defer e.out.flush()
			c, err := e.play(gctx, frames)
			code = c
			return err
		})
	})

	if err := g.Wait(); err != nil {
		var he haltError
		if errors.As(err, &he) {
			return 1, he.error
		}
		return 1, err
	}
	return int(code), nil
}

// play is the §4.6 step loop: unstep every maiden once at startup so the
// first move() lands on the intended start cell, then repeatedly take a
// length-snapshot of the roster and give each maiden in it one turn.
func (e *Engine) play(ctx context.Context, frames chan<- debugFrame) (int64, error) {
	for _, m := range e.maidens {
		m.unstep()
	}

	tick := 0
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		snapshot := append([]*Maiden(nil), e.maidens...)
		for _, m := range snapshot {
			if e.indexOf(m) == -1 {
				continue // reaped earlier this tick by a Fire instruction
			}
			if m.stepsAhead > 0 {
				m.stepsAhead--
				continue
			}

			f := m.move(e.grid)
			if e.logf != nil {
				e.logf("tick=%d pos=%v f=%q stack=%s", tick, m.position, f, dumpStackString(m.stack))
			}
			res := e.dispatch(m, f)
			if res.exit {
				if m == e.original {
					return res.code, nil
				}
				if idx := e.indexOf(m); idx >= 0 {
					e.reapAt(idx)
				}
			}
		}

		tick++
		if frames != nil {
			select {
			case frames <- e.snapshotFrame(tick):
			case <-ctx.Done():
				return 0, ctx.Err()
			}
		}
	}
}

func dumpStackString(a *array) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		dumpValue(v, &sb)
	}
	sb.WriteByte(']')
	return sb.String()
}

// dumpState writes a full engine snapshot to the debug stream for D/d,
// grounded on original_source's DEBUG dump options.
func (e *Engine) dumpState() {
	var sb strings.Builder
	fmt.Fprintf(&sb, "grid: %dx%d\n", e.grid.width(), e.grid.height())
	fmt.Fprintf(&sb, "maidens: %d\n", len(e.maidens))
	for i, m := range e.maidens {
		tag := ""
		if m == e.original {
			tag = " (original)"
		}
		fmt.Fprintf(&sb, "  [%d]%s pos=%v vel=%v steps_ahead=%d stack=%s\n",
			i, tag, m.position, m.velocity, m.stepsAhead, dumpStackString(m.stack))
	}
	e.dbg.writeString(sb.String())
	e.dbg.flush()
}
