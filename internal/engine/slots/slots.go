// Package slots arbitrates pending output modifiers competing for a recipe's
// typed modifier slots.
package slots

import (
	"sort"

	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

// Selection orders slotted candidates before assignment
type Selection string

// Selection modes
const (
	HighestWeight Selection = "HighestWeight"
	Random        Selection = "Random"
)

// Slot is one chair for modifiers carrying SlotTag. Several slots may share a
// tag.
type Slot struct {
	SlotTag tags.Tag `json:"slotTag"`
	Name    string   `json:"name,omitempty"`
}

// Candidate is the part of a pending modifier the resolver looks at
type Candidate struct {
	SlotTag         tags.Tag
	EffectiveWeight float64
}

// Resolve returns the indices of the candidates that apply: every unslotted
// candidate first, then the slotted winners in assignment order. Candidates
// whose tag no slot declares are dropped.
func Resolve(candidates []Candidate, defined []Slot, maxUsableSlots int, mode Selection, src rng.Source) []int {
	if len(candidates) == 0 {
		return nil
	}

	var unslotted, slotted []int
	for i, c := range candidates {
		if c.SlotTag.IsValid() {
			slotted = append(slotted, i)
		} else {
			unslotted = append(unslotted, i)
		}
	}

	capacity := make(map[tags.Tag]int)
	for _, s := range defined {
		if s.SlotTag.IsValid() {
			capacity[s.SlotTag]++
		}
	}

	effective := len(defined)
	if maxUsableSlots > 0 {
		effective = min(effective, maxUsableSlots)
	}
	if effective <= 0 {
		return unslotted
	}

	eligible := make([]int, 0, len(slotted))
	for _, i := range slotted {
		if capacity[candidates[i].SlotTag] > 0 {
			eligible = append(eligible, i)
		}
	}

	switch mode {
	case Random:
		rng.Shuffle(src, len(eligible), func(a, b int) {
			eligible[a], eligible[b] = eligible[b], eligible[a]
		})
	default:
		sort.SliceStable(eligible, func(a, b int) bool {
			return candidates[eligible[a]].EffectiveWeight > candidates[eligible[b]].EffectiveWeight
		})
	}

	result := append(make([]int, 0, len(unslotted)+effective), unslotted...)
	assigned := 0
	for _, i := range eligible {
		if assigned >= effective {
			break
		}
		tag := candidates[i].SlotTag
		if capacity[tag] > 0 {
			capacity[tag]--
			result = append(result, i)
			assigned++
		}
	}
	return result
}
