// Package names generates the random file names.
package names

import (
	"math/rand/v2"
	"sync"
)

// Alphabet is the 62-symbol set names are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the length of every generated name.
const DefaultLength = 6

// Generator produces fixed-length names, each character sampled uniformly
// and independently from Alphabet.
type Generator struct {
	mu     sync.Mutex
	rng    *rand.Rand
	length int
}

// New returns a Generator drawing from rng. A nil rng uses the process-wide
// source. A non-positive length falls back to DefaultLength.
func New(rng *rand.Rand, length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{rng: rng, length: length}
}

// NewSeeded returns a deterministic Generator of DefaultLength names.
func NewSeeded(seed uint64) *Generator {
	return New(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), DefaultLength)
}

// Next returns a new name. Repeats are possible.
func (g *Generator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return String(g.rng, g.length)
}

// String returns n characters from Alphabet. rng may be nil.
func String(rng *rand.Rand, n int) string {
	if n <= 0 {
		return ""
	}
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = Alphabet[intN(len(Alphabet))]
	}
	return string(b)
}
