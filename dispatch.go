package main

// dispatchResult is the Dispatcher's two-state return: CONTINUE or
// EXIT(code). §4.5 leaves the concrete encoding open ("any isomorphic
// two-state return is fine"); a plain struct reads better in Go than an
// encoded sentinel integer.
type dispatchResult struct {
	exit bool
	code int64
}

// arityOf returns the fixed operand count for f per §6's function
// character table, and false if f names no known instruction (including
// NUL, i.e. running off the grid).
func arityOf(f byte) (int, bool) {
	switch {
	case f >= '0' && f <= '9':
		return 0, true
	case containsByte(arity0, f):
		return 0, true
	case containsByte(arity1, f):
		return 1, true
	case containsByte(arity2, f):
		return 2, true
	case f == 'G':
		return arityG, true
	case f == 'S':
		return aritySSet, true
	default:
		return 0, false
	}
}

func containsByte(set string, f byte) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == f {
			return true
		}
	}
	return false
}

const (
	arity0 = "\"[].:;$C-|><^v{}JrRHhDdQU"
	arity1 = ",#@jz?ITFfXxAasiLPpNnq!"
	arity2 = "Kk+_*/%=lgc"
)

// arityG and aritySSet resolve §9's G/S open question: the source never
// implements either (they permanently `die()`), and its stub arity table
// (G=3, S=4) carries one operand with no semantic role. Since we're
// supplying the first real implementation, we size the arity to match the
// operands the spec's own description actually names — array+index for
// G, array+index+value for S — rather than propagate a dead stub's
// bookkeeping. See DESIGN.md.
const (
	arityG   = 2
	aritySSet = 3
)

func intArg(pos Coordinate, v Value) int64 {
	if !v.isInt() {
		halt(typeError(pos, "expected an integer argument"))
	}
	return v.i
}

// scanInt implements the multi-character integer literal scanner (§4.5):
// the maiden's position is already on `first` (a digit 0-9); subsequent
// digits are read by repeatedly stepping the maiden, and the terminating
// non-digit, non-NUL character is rewound so it is re-executed next tick.
// steps_ahead absorbs the characters consumed beyond the first.
func (e *Engine) scanInt(m *Maiden, first byte) Value {
	sign := int64(1)
	var n int64
	if first == '-' {
		sign = -1
	} else {
		n = int64(first - '0')
	}

	consumed := 0
	for {
		c := m.move(e.grid)
		if c >= '0' && c <= '9' {
			n = n*10 + int64(c-'0')
			consumed++
			continue
		}
		if c != 0 {
			m.unstep()
		}
		break
	}
	m.stepsAhead += consumed
	return intValue(n * sign)
}

// scanString implements the string literal scanner (§4.5): characters are
// read until (and including) the closing quote, which is consumed rather
// than rewound — there is no "re-execute next tick" for the terminator
// here, unlike the integer scanner.
func (e *Engine) scanString(m *Maiden) Value {
	var items []Value
	consumed := 0
	for {
		c := m.move(e.grid)
		consumed++
		if c == '"' {
			break
		}
		if c == 0 {
			halt(unterminatedString(m.position))
		}
		items = append(items, intValue(int64(c)))
	}
	m.stepsAhead += consumed
	return arrValue(newArray(items...))
}

// dispatch decodes f, pops its arity, runs its effect on m and/or e, and
// drops the captured args — mirroring original_source/src/handmaiden.c's
// do_chores, generalized to the Go Value/Array model.
func (e *Engine) dispatch(m *Maiden, f byte) dispatchResult {
	pos := m.position
	a, ok := arityOf(f)
	if !ok {
		halt(unknownInstruction(pos, f))
	}

	args := make([]Value, a)
	for i := 0; i < a; i++ {
		args[i] = m.pop(pos)
	}

	var result dispatchResult
	skipDrop := false

	switch {
	case f >= '0' && f <= '9':
		m.push(e.scanInt(m, f))

	case f == '"':
		m.push(e.scanString(m))

	case f == '[' || f == ']':
		halt(unimplemented(pos, f))

	case f == '.':
		m.dupn(pos, 1)
	case f == ':':
		m.dupn(pos, 2)
	case f == '#':
		m.dupn(pos, int(intArg(pos, args[0])))
	case f == ',':
		// arity 1 already popped and will be dropped below.
	case f == ';':
		drop(m.popn(pos, 2))
	case f == '@':
		drop(m.popn(pos, int(intArg(pos, args[0]))))
	case f == '$':
		m.push(m.popn(pos, 2))
	case f == 'C':
		m.push(intValue(int64(m.stacklen())))

	case f == '-' || f == '|':
		// visual axis markers; no-op.

	case f == '>':
		m.velocity = rightCoord
	case f == '<':
		m.velocity = leftCoord
	case f == '^':
		m.velocity = upCoord
	case f == 'v':
		m.velocity = downCoord
	case f == '{':
		m.velocity = m.velocity.add(m.velocity.direction())
	case f == '}':
		before := m.velocity.direction()
		m.velocity = m.velocity.sub(before)
		if m.velocity.isZero() {
			m.velocity = m.velocity.sub(before)
		}
	case f == 'J':
		m.step()
	case f == 'j':
		for i := int64(0); i < intArg(pos, args[0]); i++ {
			m.step()
		}
	case f == 'z':
		m.stepsAhead += int(intArg(pos, args[0]))
	case f == 'r':
		m.push(intValue(int64(m.position.X)))
		m.push(intValue(int64(m.position.Y)))
	case f == 'R':
		m.push(intValue(e.rand.next()))

	case f == '?':
		if !isTruthy(args[0]) {
			m.velocity = m.velocity.rotateRight()
		}
	case f == 'I':
		if !isTruthy(args[0]) {
			m.velocity = m.velocity.rotateLeft()
		}
	case f == 'T':
		if !isTruthy(args[0]) {
			drop(m.pop(pos))
		}
	case f == 'K':
		if isTruthy(args[0]) {
			for i := int64(0); i < intArg(pos, args[1]); i++ {
				m.step()
			}
		}
	case f == 'k':
		if !isTruthy(args[0]) {
			for i := int64(0); i < intArg(pos, args[1]); i++ {
				m.step()
			}
		}

	case f == 'H':
		e.fork(m, true)
	case f == 'h':
		e.fork(m, false)
	case f == 'F':
		e.fireOne(pos, intArg(pos, args[0]))
	case f == 'f':
		e.fireN(intArg(pos, args[0]))

	case f == '+':
		m.push(vadd(pos, args[1], args[0]))
	case f == '_':
		m.push(vsub(pos, args[1], args[0]))
	case f == '*':
		m.push(vmul(pos, args[1], args[0]))
	case f == '/':
		m.push(vdiv(pos, args[1], args[0]))
	case f == '%':
		m.push(vmod(pos, args[1], args[0]))
	case f == 'X':
		m.push(vadd(pos, args[0], intValue(1)))
	case f == 'x':
		m.push(vsub(pos, args[0], intValue(1)))

	case f == '=':
		m.push(intValue(boolInt(eql(args[1], args[0]))))
	case f == 'l':
		m.push(vlth(pos, args[1], args[0]))
	case f == 'g':
		m.push(vgth(pos, args[1], args[0]))
	case f == 'c':
		m.push(vcmp(pos, args[1], args[0]))
	case f == '!':
		m.push(intValue(boolInt(!isTruthy(args[0]))))

	case f == 'A':
		m.push(chr(args[0]))
	case f == 'a':
		m.push(ord(pos, args[0]))
	case f == 's':
		m.push(toString(args[0]))
	case f == 'i':
		m.push(intValue(parseInt(args[0])))

	case f == 'L':
		m.push(intValue(int64(valueLen(args[0]))))
	case f == 'G':
		m.push(e.arrayGet(pos, args[1], args[0]))
	case f == 'S':
		m.push(e.arraySet(pos, args[2], args[1], args[0]))
		skipDrop = true

	case f == 'P' || f == 'p':
		valuePrint(pos, args[0], e.out)
		if f == 'P' {
			e.out.writeByte('\n')
			e.out.flush()
		}
	case f == 'N' || f == 'n':
		e.out.writeString(dumpValueString(args[0]))
		if f == 'N' {
			e.out.writeByte('\n')
			e.out.flush()
		}
	case f == 'D' || f == 'd':
		e.dumpState()
		if f == 'D' {
			result = dispatchResult{exit: true, code: 0}
		}
	case f == 'Q':
		result = dispatchResult{exit: true, code: 0}
	case f == 'q':
		result = dispatchResult{exit: true, code: intArg(pos, args[0])}
	case f == 'U':
		if b, ok := e.in.readByte(); ok {
			m.push(intValue(int64(b)))
		} else {
			m.push(intValue(0))
		}

	default:
		halt(unknownInstruction(pos, f))
	}

	if !skipDrop {
		for _, v := range args {
			drop(v)
		}
	}
	return result
}

// arrayGet implements G: 1-based index into arr, out-of-range is fatal.
func (e *Engine) arrayGet(pos Coordinate, arrv, idxv Value) Value {
	if arrv.isInt() {
		halt(typeError(pos, "G requires an array"))
	}
	idx := intArg(pos, idxv)
	n := len(arrv.arr.items)
	if idx < 1 || idx > int64(n) {
		halt(newError(pos, "IndexError", "index %d out of bounds for array of length %d", idx, n))
	}
	return clone(arrv.arr.items[idx-1])
}

// arraySet implements S: 1-based index, copy-on-write when arr is shared,
// returns the (possibly new) mutated array. Ownership of arrv and val is
// fully transferred here — the caller must not also drop them.
func (e *Engine) arraySet(pos Coordinate, arrv, idxv, val Value) Value {
	if arrv.isInt() {
		halt(typeError(pos, "S requires an array"))
	}
	idx := intArg(pos, idxv)
	target := cow(arrv.arr)
	n := len(target.items)
	if idx < 1 || idx > int64(n) {
		halt(newError(pos, "IndexError", "index %d out of bounds for array of length %d", idx, n))
	}
	drop(target.items[idx-1])
	target.items[idx-1] = val
	return arrValue(target)
}
