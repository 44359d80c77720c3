package rng

import "math/rand/v2"

// Stream is a deterministic bit source. It is not safe for concurrent use;
// the session serializes access to it.
type Stream struct {
	src *rand.PCG
	r   *rand.Rand
}

func New(seed uint64) *Stream {
	src := rand.NewPCG(seed, seed)

	return &Stream{
		src: src,
		r:   rand.New(src), //nolint: gosec // reproducible boards, not secrets
	}
}

// Seed - rewinds the stream to the starting state for seed.
func (that *Stream) Seed(seed uint64) {
	that.src.Seed(seed, seed)
}

// Bool - advances the stream by one step.
func (that *Stream) Bool() bool {
	return that.r.Uint64()&1 == 1
}
