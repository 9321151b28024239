package main

// Maiden is one execution agent: a position/velocity pair tracing the
// grid, and an operand stack it exclusively owns. steps_ahead holds the
// number of upcoming ticks this maiden sits idle (set by the integer/
// string literal scanners and by z/sleep).
type Maiden struct {
	position   Coordinate
	velocity   Coordinate
	stack      *array
	stepsAhead int
}

// newMaiden creates a Maiden with RIGHT velocity and an empty, exclusively
// owned stack.
func newMaiden(pos Coordinate) *Maiden {
	return &Maiden{position: pos, velocity: rightCoord, stack: newArray()}
}

func (m *Maiden) push(v Value) {
	m.stack.items = append(m.stack.items, v)
}

// pop errors (via halt) on an empty stack.
func (m *Maiden) pop(pos Coordinate) Value {
	n := len(m.stack.items)
	if n == 0 {
		halt(stackUnderflow(pos, "pop from empty stack"))
	}
	v := m.stack.items[n-1]
	m.stack.items = m.stack.items[:n-1]
	return v
}

// nth views the i-th item from the top (1-indexed) without removing it.
func (m *Maiden) nth(pos Coordinate, i int) Value {
	n := len(m.stack.items)
	if i < 1 || i > n {
		halt(stackUnderflow(pos, "index %d out of bounds for stack of length %d", i, n))
	}
	return m.stack.items[n-i]
}

// dupn clones the i-th item from the top onto the top.
func (m *Maiden) dupn(pos Coordinate, i int) {
	m.push(clone(m.nth(pos, i)))
}

// popn removes and returns the i-th item from the top; the rest shift down.
func (m *Maiden) popn(pos Coordinate, i int) Value {
	n := len(m.stack.items)
	if i < 1 || i > n {
		halt(stackUnderflow(pos, "index %d out of bounds for stack of length %d", i, n))
	}
	idx := n - i
	v := m.stack.items[idx]
	m.stack.items = append(m.stack.items[:idx], m.stack.items[idx+1:]...)
	return v
}

func (m *Maiden) stacklen() int { return len(m.stack.items) }

func (m *Maiden) step() { m.position = m.position.add(m.velocity) }

func (m *Maiden) unstep() { m.position = m.position.sub(m.velocity) }

// move steps the maiden, then reads the cell under the new position.
func (m *Maiden) move(g Grid) byte {
	m.step()
	return g.at(m.position)
}

// destroy drops the maiden's stack, matching §3's "destroying a Maiden
// drops its stack's refcount."
func (m *Maiden) destroy() {
	drop(arrValue(m.stack))
}

// forkStack builds a deep clone of m's stack, for a new maiden spawned by H/h.
func (m *Maiden) forkStack() *array {
	return deepClone(m.stack)
}
