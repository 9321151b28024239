package main

import "math/rand"

// randSource is the engine-scoped pseudorandom state backing the R
// instruction. §9 warns against a process-wide singleton so that tests can
// seed it; Engine owns one per play.
type randSource struct {
	r *rand.Rand
}

func newRandSource(seed int64) randSource {
	return randSource{r: rand.New(rand.NewSource(seed))}
}

func (rs randSource) next() int64 {
	return rs.r.Int63()
}
