package rng

// WeightedIndex draws an index with probability proportional to its weight.
// The draw is uniform in [0, total); the first index whose running sum
// reaches it wins and rounding overshoot falls back to the last positive
// weight. Returns -1 when the total weight is not positive.
func WeightedIndex(src Source, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}

	roll := src.Float64() * total
	acc := 0.0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		acc += w
		last = i
		if roll <= acc {
			return i
		}
	}
	return last
}

// Shuffle permutes n elements in place with Fisher-Yates
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		swap(i, j)
	}
}
