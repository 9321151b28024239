package main

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// debugFrame is a fully pre-rendered snapshot handed from play() to
// renderLoop over a channel. Rendering the text before sending keeps the
// two goroutines from touching the same Maiden/array memory concurrently.
type debugFrame struct {
	text string
}

// snapshotFrame builds one frame per DebugOptions, grounded on the
// source's DEBUG_PRINT_BOARD / DEBUG_PRINT_STACKS flags.
func (e *Engine) snapshotFrame(tick int) debugFrame {
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== tick %d ===\n", tick)
	if e.debug.PrintBoard {
		e.renderBoard(&sb)
	}
	if e.debug.PrintStacks {
		e.renderStacks(&sb)
	}
	return debugFrame{text: sb.String()}
}

// renderBoard draws the grid with each maiden's position marked by its
// roster index (0 for the original), falling back to the raw character.
// Control bytes are rendered in caret notation so NUL cells are legible.
func (e *Engine) renderBoard(sb *strings.Builder) {
	marks := make(map[Coordinate]int, len(e.maidens))
	for i, m := range e.maidens {
		marks[m.position] = i
	}

	for y := 0; y < e.grid.height(); y++ {
		for x := 0; x < e.grid.width(); x++ {
			c := Coordinate{X: x, Y: y}
			if idx, ok := marks[c]; ok {
				fmt.Fprintf(sb, "%d", idx%10)
				continue
			}
			b := e.grid.at(c)
			if b < 0x20 || b == 0x7f {
				sb.WriteString(caretName(b))
			} else {
				sb.WriteByte(b)
			}
		}
		sb.WriteByte('\n')
	}
}

// renderStacks lists each maiden's position and operand stack.
func (e *Engine) renderStacks(sb *strings.Builder) {
	for i, m := range e.maidens {
		tag := ""
		if m == e.original {
			tag = " (original)"
		}
		fmt.Fprintf(sb, "maiden %d%s @ %v: %s\n", i, tag, m.position, dumpStackString(m.stack))
	}
}

// renderLoop drains frames and writes them to the debug stream, pacing
// itself between writes. Pacing lives here rather than in play(): play()
// runs ahead of the renderer by up to the frame channel's buffer and then
// waits for it, so pacing slows the ticks without changing what the
// program does — §5: debug pacing does not affect semantics.
func (e *Engine) renderLoop(ctx context.Context, frames <-chan debugFrame) error {
	for {
		select {
		case fr, ok := <-frames:
			if !ok {
				return nil
			}
			e.dbg.writeString(fr.text)
			e.dbg.flush()
			if e.pacing > 0 {
				select {
				case <-time.After(e.pacing):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
