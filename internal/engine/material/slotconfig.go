package material

import (
	"sort"

	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

// SlotSelection is the policy a slot config uses when more evaluations route
// to it than it can hold
type SlotSelection string

// Slot selection policies
const (
	SlotHighestWeight SlotSelection = "HighestWeight"
	SlotRandom        SlotSelection = "Random"
	SlotAll           SlotSelection = "All"
)

// SlotConfig limits how many evaluations a given output tag may contribute
type SlotConfig struct {
	SlotTag  tags.Tag      `json:"slotTag"`
	MaxCount int           `json:"maxCount"`
	Mode     SlotSelection `json:"mode"`
}

// FilterBySlotConfig limits evaluations per slot config. An evaluation belongs
// to the first config whose SlotTag its rule's output tags match; evaluations
// that belong to no config pass through. The kept evaluations stay in their
// original order.
func FilterBySlotConfig(evaluations []RuleEvaluation, configs []SlotConfig, src rng.Source) []RuleEvaluation {
	if len(configs) == 0 || len(evaluations) == 0 {
		return evaluations
	}

	groups := make([][]int, len(configs))
	keep := make([]bool, len(evaluations))
	for i, eval := range evaluations {
		cfg := routeEvaluation(eval, configs)
		if cfg < 0 {
			keep[i] = true
			continue
		}
		groups[cfg] = append(groups[cfg], i)
	}

	for c, members := range groups {
		cfg := configs[c]
		if cfg.Mode == SlotAll || cfg.MaxCount <= 0 || len(members) <= cfg.MaxCount {
			for _, i := range members {
				keep[i] = true
			}
			continue
		}

		switch cfg.Mode {
		case SlotRandom:
			rng.Shuffle(src, len(members), func(a, b int) {
				members[a], members[b] = members[b], members[a]
			})
		default:
			sort.SliceStable(members, func(a, b int) bool {
				return evaluations[members[a]].EffectiveWeight > evaluations[members[b]].EffectiveWeight
			})
		}
		for _, i := range members[:cfg.MaxCount] {
			keep[i] = true
		}
	}

	out := make([]RuleEvaluation, 0, len(evaluations))
	for i, eval := range evaluations {
		if keep[i] {
			out = append(out, eval)
		}
	}
	return out
}

func routeEvaluation(eval RuleEvaluation, configs []SlotConfig) int {
	if eval.Rule == nil || eval.Rule.OutputTags.IsEmpty() {
		return -1
	}
	for i, cfg := range configs {
		if cfg.SlotTag.IsValid() && eval.Rule.OutputTags.HasTag(cfg.SlotTag) {
			return i
		}
	}
	return -1
}
