// Package material implements material-driven crafting: property rules that
// match ingredient tags, quality bands chosen by weighted draw and the
// evaluator that turns them into output modifiers.
package material

import (
	"github.com/iniside/velesarc-craft/internal/engine/modifier"
	"github.com/iniside/velesarc-craft/internal/engine/quality"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/softref"
)

// Band is one quality tier of a rule's outcome
type Band struct {
	Name              string                   `json:"name"`
	MinQuality        float64                  `json:"minQuality"`
	BaseWeight        float64                  `json:"baseWeight"`
	QualityWeightBias float64                  `json:"qualityWeightBias"`
	Modifiers         []modifier.CraftModifier `json:"-"`
}

// EffectiveWeight is the selection weight of the band at eligibility quality
// q with the given weight bonus
func (b *Band) EffectiveWeight(q, weightBonus float64) float64 {
	above := max(0, q-b.MinQuality)
	return b.BaseWeight * (1 + (above+weightBonus)*b.QualityWeightBias)
}

// Preset is a named, reusable list of bands
type Preset struct {
	Name  string `json:"name"`
	Bands []Band `json:"qualityBands"`
}

// Rule maps a tag match to a set of quality bands
type Rule struct {
	Name               string              `json:"name"`
	TagQuery           tags.Query          `json:"tagQuery"`
	RequiredRecipeTags tags.Container      `json:"requiredRecipeTags"`
	Priority           int                 `json:"priority"`
	MaxContributions   int                 `json:"maxContributions"`
	Bands              []Band              `json:"-"`
	Preset             softref.Ref[Preset] `json:"qualityBandPreset"`
	OutputTags         tags.Container      `json:"outputTags"`
}

// EffectiveBands returns the preset's bands when the preset is set and
// loaded, otherwise the inline bands
func (r *Rule) EffectiveBands() []Band {
	if r.Preset.IsSet() {
		if p := r.Preset.Get(); p != nil {
			return p.Bands
		}
	}
	return r.Bands
}

// Contributions is the number of band draws the rule makes, at least one
func (r *Rule) Contributions() int {
	return max(1, r.MaxContributions)
}

// Table is a read-only set of rules plus table-wide limits
type Table struct {
	Name                       string                         `json:"name"`
	Rules                      []Rule                         `json:"rules"`
	MaxActiveRules             int                            `json:"maxActiveRules"`
	DefaultTierTable           softref.Ref[quality.TierTable] `json:"defaultTierTable"`
	ExtraIngredientWeightBonus float64                        `json:"extraIngredientWeightBonus"`
	ExtraTimeWeightBonusCap    float64                        `json:"extraTimeWeightBonusCap"`
	BaseBandBudget             float64                        `json:"baseBandBudget"`
	BudgetPerQuality           float64                        `json:"budgetPerQuality"`
}

// UsesBudget reports whether band selection is budget constrained
func (t *Table) UsesBudget() bool {
	return t != nil && t.BaseBandBudget > 0
}

// InitialBudget is the band budget available at eligibility quality q
func (t *Table) InitialBudget(q float64) float64 {
	return t.BaseBandBudget + max(0, q-1)*t.BudgetPerQuality
}
