package main

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runProgram(t *testing.T, src string, opts ...EngineOption) (stdout string, code int, err error) {
	t.Helper()
	var buf bytes.Buffer
	opts = append([]EngineOption{WithOutput(&buf)}, opts...)
	e := New(src, opts...)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	code, err = e.Run(ctx)
	return buf.String(), code, err
}

func TestEngineBareExit(t *testing.T) {
	out, code, err := runProgram(t, "9Q")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestEngineDuplicateAddPrintDump(t *testing.T) {
	out, code, err := runProgram(t, "12.+nQ")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "24", out)
}

func TestEngineStringLiteralPrint(t *testing.T) {
	out, code, err := runProgram(t, `"ab"PQ`)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "ab\n", out)
}

func TestEngineCooperativeExitCode(t *testing.T) {
	_, code, err := runProgram(t, "5q")
	require.NoError(t, err)
	assert.Equal(t, 5, code)
}

func TestEngineUnknownInstructionIsFatal(t *testing.T) {
	_, _, err := runProgram(t, "~Q")
	require.Error(t, err)
}

func TestEngineStackUnderflowIsFatal(t *testing.T) {
	_, _, err := runProgram(t, "+Q")
	require.Error(t, err)
}

// H forks a child that would run straight off the top of the grid on its
// very next move; since the original reaches its own Q the very next
// tick, it returns before the child's snapshot slot is ever reached.
func TestEngineForkDoesNotActSameTick(t *testing.T) {
	out, code, err := runProgram(t, "HQ")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

// h forks a child moving down onto a harmless second row; the original
// then fires it by index before it takes a second step.
func TestEngineFireReapsNonOriginalMaiden(t *testing.T) {
	_, code, err := runProgram(t, "h1FQ\n-")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestEngineSeedValuesPushedOntoOriginalStack(t *testing.T) {
	out, code, err := runProgram(t, "+nQ", WithSeedValues(3, 4))
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "7", out)
}

func TestEngineReadsStdinViaU(t *testing.T) {
	out, code, err := runProgram(t, "UnQ", WithInput(bytes.NewReader([]byte("A"))))
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "65", out)
}

// d must dump to the dump stream unconditionally, with no dependency on
// -d/DebugOptions.Enabled — it's a core instruction, not part of the
// supplemented per-tick render channel.
func TestEngineDumpWritesRegardlessOfDebugFlag(t *testing.T) {
	var dbgBuf bytes.Buffer
	_, code, err := runProgram(t, "dQ", WithDebugOutput(&dbgBuf))
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.NotEmpty(t, dbgBuf.String())
}
