package main

import "fmt"

// runtimeError is the common shape of every fatal error the interpreter can
// raise while playing a program. All of them are terminal: §7 gives runtime
// errors no in-language exception mechanism, so they are raised by panic and
// recovered exactly once, at Engine.Run's boundary.
type runtimeError struct {
	kind string
	pos  Coordinate
	msg  string
}

func (e runtimeError) Error() string {
	return fmt.Sprintf("%s at %v: %s", e.kind, e.pos, e.msg)
}

func newError(pos Coordinate, kind, format string, args ...interface{}) runtimeError {
	return runtimeError{kind: kind, pos: pos, msg: fmt.Sprintf(format, args...)}
}

func unknownInstruction(pos Coordinate, f byte) runtimeError {
	return newError(pos, "UnknownInstruction", "unknown function %q (%d)", f, f)
}

func stackUnderflow(pos Coordinate, format string, args ...interface{}) runtimeError {
	return newError(pos, "StackUnderflow", format, args...)
}

func typeError(pos Coordinate, format string, args ...interface{}) runtimeError {
	return newError(pos, "TypeError", format, args...)
}

func unterminatedString(pos Coordinate) runtimeError {
	return newError(pos, "UnterminatedString", "unterminated string literal")
}

func divisionByZero(pos Coordinate) runtimeError {
	return newError(pos, "DivisionByZero", "division or modulo by zero")
}

func unimplemented(pos Coordinate, f byte) runtimeError {
	return newError(pos, "Unimplemented", "function %q is not implemented", f)
}

type loadError struct {
	path string
	err  error
}

func (e loadError) Error() string { return fmt.Sprintf("cannot load %q: %v", e.path, e.err) }
func (e loadError) Unwrap() error { return e.err }

// halt raises err as the single unwinding panic that terminates a play()
// call; Engine.Run recovers it via internal/panicerr.
func halt(err error) {
	panic(haltError{err})
}

// haltError distinguishes a fatal runtimeError/loadError from the
// cooperative exit status produced by Q, q, or D.
type haltError struct{ error }

func (e haltError) Unwrap() error { return e.error }
