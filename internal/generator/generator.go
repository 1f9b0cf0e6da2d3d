// Package generator provides the random source used to build challenges.
package generator

import (
	"math/rand"
	"time"
)

// Generator wraps a seeded random source. It is not safe for concurrent use.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator with a fixed seed, for reproducible rounds.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Intn returns a uniform integer in [0, n). It returns 0 when n <= 0.
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rnd.Intn(n)
}

// Between returns a uniform integer in [lo, hi].
func (g *Generator) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return lo + g.Intn(hi-lo+1)
}

// Shuffle returns a uniformly permuted copy of items (Fisher-Yates).
func Shuffle[T any](g *Generator, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := g.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns n distinct items chosen uniformly. n is clamped to len(items).
func Sample[T any](g *Generator, items []T, n int) []T {
	if n > len(items) {
		n = len(items)
	}
	if n <= 0 {
		return []T{}
	}
	return Shuffle(g, items)[:n]
}

// Pick returns one item chosen uniformly. items must not be empty.
func Pick[T any](g *Generator, items []T) T {
	return items[g.Intn(len(items))]
}
