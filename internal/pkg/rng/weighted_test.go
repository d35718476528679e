package rng_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

func TestWeightedIndex(t *testing.T) {
	testCases := []struct {
		name     string
		weights  []float64
		draw     float64
		expected int
	}{
		{"first bucket", []float64{1, 1, 2}, 0.1, 0},
		{"boundary goes to earlier", []float64{1, 1, 2}, 0.25, 0},
		{"last bucket", []float64{1, 1, 2}, 0.9, 2},
		{"skips zero weights", []float64{0, 3, 0}, 0.99, 1},
		{"no positive weight", []float64{0, -1}, 0.5, -1},
		{"empty", nil, 0.5, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, rng.WeightedIndex(rng.NewScripted(tc.draw), tc.weights))
		})
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	values := []int{0, 1, 2, 3, 4, 5}
	rng.Shuffle(rng.NewSeeded(7), len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
	assert.ElementsMatch(t, []int{0, 1, 2, 3, 4, 5}, values)
}
