// Package main implements labyrinth, an interpreter for a 2D grid-based
// esoteric language: execution agents ("maidens") trace a character grid,
// each owning a stack of tagged Int/Arr values, dispatching the function
// character under their position every tick.
package main
