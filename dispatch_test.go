package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine() *Engine {
	return New("")
}

func TestDispatchGet(t *testing.T) {
	e := newTestEngine()
	m := e.original
	m.push(arrValue(newArray(intValue(10), intValue(20), intValue(30))))
	m.push(intValue(2))

	e.dispatch(m, 'G')
	require.Equal(t, 1, m.stacklen())
	assert.Equal(t, int64(20), m.pop(m.position).i)
}

func TestDispatchGetOutOfRangeIsFatal(t *testing.T) {
	e := newTestEngine()
	m := e.original
	m.push(arrValue(newArray(intValue(10))))
	m.push(intValue(5))

	assert.Panics(t, func() { e.dispatch(m, 'G') })
}

func TestDispatchSetExclusiveMutatesInPlace(t *testing.T) {
	e := newTestEngine()
	m := e.original
	arr := newArray(intValue(1), intValue(2), intValue(3))
	m.push(arrValue(arr))
	m.push(intValue(2))
	m.push(intValue(99))

	e.dispatch(m, 'S')
	require.Equal(t, 1, m.stacklen())
	result := m.pop(m.position)
	assert.Same(t, arr, result.arr)
	assert.Equal(t, int64(99), arr.items[1].i)
}

func TestDispatchSetSharedCopiesOnWrite(t *testing.T) {
	e := newTestEngine()
	m := e.original
	arr := newArray(intValue(1), intValue(2), intValue(3))
	other := clone(arrValue(arr)) // shares arr, rc now 2
	m.push(arrValue(arr))
	m.push(intValue(1))
	m.push(intValue(7))

	e.dispatch(m, 'S')
	result := m.pop(m.position)
	assert.NotSame(t, arr, result.arr)
	assert.Equal(t, int64(7), result.arr.items[0].i)
	assert.Equal(t, int64(1), arr.items[0].i, "original array untouched")
	drop(other)
}

func TestDispatchTLeavesValueWhenTruthy(t *testing.T) {
	e := newTestEngine()
	m := e.original
	m.push(intValue(42))
	m.push(intValue(1))

	e.dispatch(m, 'T')
	require.Equal(t, 1, m.stacklen())
	assert.Equal(t, int64(42), m.pop(m.position).i)
}

func TestDispatchTDropsValueWhenFalsey(t *testing.T) {
	e := newTestEngine()
	m := e.original
	m.push(intValue(42))
	m.push(intValue(0))

	e.dispatch(m, 'T')
	assert.Equal(t, 0, m.stacklen())
}

func TestDispatchSwap(t *testing.T) {
	e := newTestEngine()
	m := e.original
	m.push(intValue(1))
	m.push(intValue(2))

	e.dispatch(m, '$')
	assert.Equal(t, int64(1), m.pop(m.position).i)
	assert.Equal(t, int64(2), m.pop(m.position).i)
}

func TestDispatchSemicolonDropsSecondFromTop(t *testing.T) {
	e := newTestEngine()
	m := e.original
	m.push(intValue(1))
	m.push(intValue(2))
	m.push(intValue(3))

	e.dispatch(m, ';')
	require.Equal(t, 2, m.stacklen())
	assert.Equal(t, int64(3), m.pop(m.position).i)
	assert.Equal(t, int64(1), m.pop(m.position).i)
}

// } must reverse a unit-magnitude velocity rather than get stuck at zero:
// the first subtraction zeroes it, so the second subtraction must reuse
// the original (pre-subtraction) direction, not the now-zero velocity's.
func TestDispatchSlowDownReversesUnitVelocity(t *testing.T) {
	e := newTestEngine()
	m := e.original // starts facing RIGHT

	e.dispatch(m, '}')
	assert.Equal(t, leftCoord, m.velocity)
	assert.False(t, m.velocity.isZero())
}

func TestDispatchSpeedUpDoublesVelocity(t *testing.T) {
	e := newTestEngine()
	m := e.original

	e.dispatch(m, '{')
	assert.Equal(t, Coordinate{X: 2, Y: 0}, m.velocity)
}

func TestDispatchPositionPush(t *testing.T) {
	e := newTestEngine()
	m := e.original
	m.position = Coordinate{X: 3, Y: 4}

	e.dispatch(m, 'r')
	require.Equal(t, 2, m.stacklen())
	assert.Equal(t, int64(4), m.pop(m.position).i)
	assert.Equal(t, int64(3), m.pop(m.position).i)
}
