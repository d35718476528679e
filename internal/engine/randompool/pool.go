// Package randompool implements flat random pools of modifier entries and the
// strategies used to draw from them.
package randompool

import (
	"github.com/iniside/velesarc-craft/internal/engine/modifier"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

// WeightModifier adjusts an entry's weight when RequiredTags are present
type WeightModifier struct {
	RequiredTags     tags.Container `json:"requiredTags"`
	BonusWeight      float64        `json:"bonusWeight"`
	WeightMultiplier float64        `json:"weightMultiplier"`
}

// ValueSkewRule adjusts an entry's quality when RequiredTags are present
type ValueSkewRule struct {
	RequiredTags tags.Container `json:"requiredTags"`
	ValueScale   float64        `json:"valueScale"`
	ValueOffset  float64        `json:"valueOffset"`
}

// Entry is one selectable outcome of a pool
type Entry struct {
	DisplayName            string                   `json:"name"`
	RequiredIngredientTags tags.Container           `json:"requiredIngredientTags"`
	DenyIngredientTags     tags.Container           `json:"denyIngredientTags"`
	MinQualityThreshold    float64                  `json:"minQuality"`
	BaseWeight             float64                  `json:"baseWeight"`
	QualityWeightScaling   float64                  `json:"qualityWeightScaling"`
	WeightModifiers        []WeightModifier         `json:"weightModifiers,omitempty"`
	Cost                   float64                  `json:"cost"`
	ValueScale             float64                  `json:"valueScale"`
	ValueSkew              float64                  `json:"valueSkew"`
	ScaleByQuality         bool                     `json:"scaleByQuality"`
	ValueSkewRules         []ValueSkewRule          `json:"valueSkewRules,omitempty"`
	Modifiers              []modifier.CraftModifier `json:"-"`
}

// DefaultEntry returns an entry with the authoring defaults applied
func DefaultEntry(name string) Entry {
	return Entry{
		DisplayName:    name,
		BaseWeight:     1,
		Cost:           1,
		ValueScale:     1,
		ScaleByQuality: true,
	}
}

// Definition is a flat list of entries
type Definition struct {
	Name    string  `json:"name"`
	Entries []Entry `json:"entries"`
}

// SelectionContext holds the eligible entries of one draw and their
// effective weights. EligibleIndices and EffectiveWeights are parallel.
type SelectionContext struct {
	Entries          []Entry
	EligibleIndices  []int
	EffectiveWeights []float64
	AverageQuality   float64
}

// Eligible filters def's entries for the given ingredient tags and quality and
// computes their effective weights
func Eligible(def *Definition, aggregatedTags tags.Container, quality float64) SelectionContext {
	ctx := SelectionContext{AverageQuality: quality}
	if def == nil {
		return ctx
	}
	ctx.Entries = def.Entries

	for i := range def.Entries {
		e := &def.Entries[i]
		if e.MinQualityThreshold > 0 && quality < e.MinQualityThreshold {
			continue
		}
		if !e.RequiredIngredientTags.IsEmpty() && !aggregatedTags.HasAll(e.RequiredIngredientTags) {
			continue
		}
		if !e.DenyIngredientTags.IsEmpty() && aggregatedTags.HasAny(e.DenyIngredientTags) {
			continue
		}

		ctx.EligibleIndices = append(ctx.EligibleIndices, i)
		ctx.EffectiveWeights = append(ctx.EffectiveWeights, e.effectiveWeight(aggregatedTags, quality))
	}
	return ctx
}

func (e *Entry) effectiveWeight(aggregatedTags tags.Container, quality float64) float64 {
	weight := e.BaseWeight
	multiplier := 1.0
	for _, wm := range e.WeightModifiers {
		if !wm.RequiredTags.IsEmpty() && aggregatedTags.HasAll(wm.RequiredTags) {
			weight += wm.BonusWeight
			multiplier *= wm.WeightMultiplier
		}
	}
	weight *= multiplier
	weight *= 1 + (quality-1)*e.QualityWeightScaling
	return max(weight, 0)
}

// WeightedRandomPick draws one eligible entry not in alreadySelected. The
// returned index points into ctx.Entries.
func WeightedRandomPick(ctx SelectionContext, alreadySelected map[int]bool, src rng.Source) (int, bool) {
	weights := make([]float64, len(ctx.EligibleIndices))
	for i, idx := range ctx.EligibleIndices {
		if alreadySelected[idx] {
			continue
		}
		weights[i] = ctx.EffectiveWeights[i]
	}

	pick := rng.WeightedIndex(src, weights)
	if pick < 0 {
		return -1, false
	}
	return ctx.EligibleIndices[pick], true
}

// EntryQuality is the quality the entry's modifiers are applied at
func EntryQuality(e *Entry, aggregatedTags tags.Container, quality float64) float64 {
	var q float64
	if e.ScaleByQuality {
		q = quality*e.ValueScale + e.ValueSkew
	} else {
		q = e.ValueScale + e.ValueSkew
	}
	for _, rule := range e.ValueSkewRules {
		if !rule.RequiredTags.IsEmpty() && aggregatedTags.HasAll(rule.RequiredTags) {
			q = q*rule.ValueScale + rule.ValueOffset
		}
	}
	return q
}
