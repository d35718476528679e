package rng_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

type stubDiceRoller struct {
	value int
	err   error
	sizes []int
}

func (s *stubDiceRoller) Roll(size int) (int, error) {
	s.sizes = append(s.sizes, size)
	return s.value, s.err
}

func (s *stubDiceRoller) RollN(count, _ int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		out[i] = s.value
	}
	return out, s.err
}

type RNGTestSuite struct {
	suite.Suite
}

func TestRNGSuite(t *testing.T) {
	suite.Run(t, new(RNGTestSuite))
}

func (s *RNGTestSuite) TestToolkitMapsRollsToUnitInterval() {
	roller := &stubDiceRoller{value: 1}
	src := rng.NewToolkit(roller)

	s.Equal(0.0, src.Float64())

	roller.value = 1 << 30
	v := src.Float64()
	s.Less(v, 1.0)
	s.Greater(v, 0.99)
}

func (s *RNGTestSuite) TestToolkitIntN() {
	roller := &stubDiceRoller{value: 4}
	src := rng.NewToolkit(roller)

	s.Equal(3, src.IntN(6))
	s.Equal([]int{6}, roller.sizes)
	s.Equal(0, src.IntN(1))
}

func (s *RNGTestSuite) TestToolkitFallsBackOnError() {
	src := rng.NewToolkit(&stubDiceRoller{err: errors.New("no dice")})

	for range 100 {
		v := src.Float64()
		s.GreaterOrEqual(v, 0.0)
		s.Less(v, 1.0)

		n := src.IntN(5)
		s.GreaterOrEqual(n, 0)
		s.Less(n, 5)
	}
}

func (s *RNGTestSuite) TestSeededIsReproducible() {
	a, b := rng.NewSeeded(42), rng.NewSeeded(42)
	for range 10 {
		s.Equal(a.Float64(), b.Float64())
		s.Equal(a.IntN(100), b.IntN(100))
	}
}

func TestScripted(t *testing.T) {
	src := rng.NewScripted(0.1, 0.99)

	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 9, src.IntN(10))
	assert.Equal(t, 0.1, src.Float64())
	assert.Equal(t, 3, src.Draws())

	assert.Equal(t, 0.0, rng.NewScripted().Float64())
}
