package mtwist

import (
	"math/rand"
)

// Int63 returns the top 63 bits of the next word as a non-negative int64.
func (g *MT64) Int63() int64 {
	return int64(g.Uint64() >> 1)
}

// source32 adapts an MT32 to math/rand.Source64.
type source32 struct {
	g MT32
}

// NewSource32 returns a math/rand.Source64 backed by an MT32. The 64-bit seed is folded to
// 32 bits by xoring its halves. Each Uint64 consumes two words, high half first.
func NewSource32(seed int64) rand.Source64 {
	s := &source32{}
	s.Seed(seed)
	return s
}

func (s *source32) Seed(seed int64) {
	s.g.Seed(int32(seed>>32 ^ seed))
}

func (s *source32) Uint64() uint64 {
	hi := uint64(s.g.Uint32())
	return hi<<32 | uint64(s.g.Uint32())
}

func (s *source32) Int63() int64 {
	return int64(s.Uint64() >> 1)
}

// NewSource64 returns a math/rand.Source64 backed by an MT64 seeded with seed.
// The returned source also satisfies math/rand/v2.Source.
func NewSource64(seed int64) rand.Source64 {
	return New64(seed)
}
