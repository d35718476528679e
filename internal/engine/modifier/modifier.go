// Package modifier defines the terminal craft modifiers: stat, ability and
// effect contributions gated by quality and ingredient tags.
package modifier

import (
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

// Kind names a craft modifier variant. It is also the JSON "type" value.
type Kind string

// Modifier variants
const (
	KindStats      Kind = "Stats"
	KindAbilities  Kind = "Abilities"
	KindEffects    Kind = "Effects"
	KindRandomPool Kind = "RandomPool"
)

// CraftModifier is one modifier a band, pool entry or recipe can carry.
// Collect reports what the modifier would add; Apply writes it to the
// output item. Neither mutates the modifier or its inputs.
type CraftModifier interface {
	Kind() Kind
	Common() Base
	Collect(aggregatedTags tags.Container, quality float64, src rng.Source) []Result
	Apply(out *item.Spec, aggregatedTags tags.Container, quality float64, src rng.Source)
}

// Base carries the gates shared by every variant
type Base struct {
	MinQualityThreshold  float64        `json:"minQuality,omitempty"`
	TriggerTags          tags.Container `json:"triggerTags"`
	Weight               float64        `json:"weight"`
	QualityScalingFactor float64        `json:"qualityScaling"`
}

// DefaultBase returns a base with the authoring defaults applied
func DefaultBase() Base {
	return Base{Weight: 1, QualityScalingFactor: 1}
}

// MatchesTriggerTags is true when no trigger tags are set or all of them are
// present in ingredientTags
func (b Base) MatchesTriggerTags(ingredientTags tags.Container) bool {
	if b.TriggerTags.IsEmpty() {
		return true
	}
	return ingredientTags.HasAll(b.TriggerTags)
}

// PassesQualityGate is false only when a threshold is set and quality is below it
func (b Base) PassesQualityGate(quality float64) bool {
	return b.MinQualityThreshold <= 0 || quality >= b.MinQualityThreshold
}

// IsEligible combines the quality and trigger-tag gates
func (b Base) IsEligible(ingredientTags tags.Container, quality float64) bool {
	return b.PassesQualityGate(quality) && b.MatchesTriggerTags(ingredientTags)
}

// QualityScale is the multiplier applied to scaled values at quality
func (b Base) QualityScale(quality float64) float64 {
	return 1 + (quality-1)*b.QualityScalingFactor
}

// Stats adds a single stat scaled by quality
type Stats struct {
	Base
	Stat item.StatModifier `json:"stat"`
}

// Kind implements CraftModifier
func (m *Stats) Kind() Kind { return KindStats }

// Common implements CraftModifier
func (m *Stats) Common() Base { return m.Base }

// Collect implements CraftModifier
func (m *Stats) Collect(aggregatedTags tags.Container, quality float64, _ rng.Source) []Result {
	if !m.IsEligible(aggregatedTags, quality) {
		return nil
	}
	stat := m.Stat
	stat.Value = m.Stat.Value * m.QualityScale(quality)
	return []Result{StatResult(stat)}
}

// Apply implements CraftModifier
func (m *Stats) Apply(out *item.Spec, aggregatedTags tags.Container, quality float64, src rng.Source) {
	ApplyResults(out, m.Collect(aggregatedTags, quality, src))
}

// Abilities grants an ability class
type Abilities struct {
	Base
	Ability item.AbilityGrant `json:"ability"`
}

// Kind implements CraftModifier
func (m *Abilities) Kind() Kind { return KindAbilities }

// Common implements CraftModifier
func (m *Abilities) Common() Base { return m.Base }

// Collect implements CraftModifier
func (m *Abilities) Collect(aggregatedTags tags.Container, quality float64, _ rng.Source) []Result {
	if m.Ability.Class == "" || !m.IsEligible(aggregatedTags, quality) {
		return nil
	}
	return []Result{AbilityResult(m.Ability)}
}

// Apply implements CraftModifier
func (m *Abilities) Apply(out *item.Spec, aggregatedTags tags.Container, quality float64, src rng.Source) {
	ApplyResults(out, m.Collect(aggregatedTags, quality, src))
}

// Effects grants a gameplay effect class
type Effects struct {
	Base
	Effect item.EffectGrant `json:"effect"`
}

// Kind implements CraftModifier
func (m *Effects) Kind() Kind { return KindEffects }

// Common implements CraftModifier
func (m *Effects) Common() Base { return m.Base }

// Collect implements CraftModifier
func (m *Effects) Collect(aggregatedTags tags.Container, quality float64, _ rng.Source) []Result {
	if m.Effect.Class == "" || !m.IsEligible(aggregatedTags, quality) {
		return nil
	}
	return []Result{EffectResult(m.Effect)}
}

// Apply implements CraftModifier
func (m *Effects) Apply(out *item.Spec, aggregatedTags tags.Container, quality float64, src rng.Source) {
	ApplyResults(out, m.Collect(aggregatedTags, quality, src))
}

var (
	_ CraftModifier = (*Stats)(nil)
	_ CraftModifier = (*Abilities)(nil)
	_ CraftModifier = (*Effects)(nil)
)
