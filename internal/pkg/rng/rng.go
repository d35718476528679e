// Package rng provides the random sources used by weighted draws and shuffles.
//
// Every selection entry point in the engine takes a Source explicitly so a
// craft can be replayed from a seed or a scripted sequence of draws.
package rng

import (
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/dice"
)

// Source yields uniform random values
type Source interface {
	// Float64 returns a value in [0, 1)
	Float64() float64
	// IntN returns a value in [0, n). n must be > 0.
	IntN(n int) int
}

// toolkitResolution is the die size used to derive a float from a single roll
const toolkitResolution = 1 << 30

type toolkitSource struct {
	roller   dice.Roller
	fallback *rand.Rand
	mu       sync.Mutex
}

// NewToolkit adapts an rpg-toolkit dice roller into a Source. When the
// roller fails, draws fall back to math/rand/v2 so a craft never stalls.
func NewToolkit(roller dice.Roller) Source {
	if roller == nil {
		roller = dice.DefaultRoller
	}
	return &toolkitSource{
		roller:   roller,
		fallback: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (s *toolkitSource) Float64() float64 {
	v, err := s.roller.Roll(toolkitResolution)
	if err != nil {
		slog.Warn("dice roll failed, using fallback source", "error", err)
		return s.fallbackFloat()
	}
	return float64(v-1) / toolkitResolution
}

func (s *toolkitSource) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	v, err := s.roller.Roll(n)
	if err != nil {
		slog.Warn("dice roll failed, using fallback source", "error", err, "size", n)
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.fallback.IntN(n)
	}
	return v - 1
}

func (s *toolkitSource) fallbackFloat() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fallback.Float64()
}

// Seeded is a reproducible Source. It is not safe for concurrent use.
type Seeded struct {
	r *rand.Rand
}

// NewSeeded returns a PCG-backed source for the given seed
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a value in [0, 1)
func (s *Seeded) Float64() float64 { return s.r.Float64() }

// IntN returns a value in [0, n)
func (s *Seeded) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	return s.r.IntN(n)
}

// Scripted replays a fixed list of values in [0, 1), cycling when exhausted.
// IntN scales the next value to [0, n).
type Scripted struct {
	values []float64
	next   int
}

// NewScripted returns a source that yields values in order
func NewScripted(values ...float64) *Scripted {
	return &Scripted{values: values}
}

// Float64 returns the next scripted value
func (s *Scripted) Float64() float64 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// IntN returns the next scripted value scaled to [0, n)
func (s *Scripted) IntN(n int) int {
	if n <= 1 {
		return 0
	}
	i := int(s.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// Draws reports how many values have been consumed
func (s *Scripted) Draws() int {
	return s.next
}
