// Package quality maps ingredient tier tags to tier values and quality
// multipliers.
package quality

import (
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/errors"
)

// NeutralMultiplier is returned for anything the table does not map
const NeutralMultiplier = 1.0

// UnmappedTierValue is returned for tags the table does not map
const UnmappedTierValue = -1

// TierMapping binds a tier tag to its value and multiplier
type TierMapping struct {
	TierTag           tags.Tag `json:"tierTag"`
	TierValue         int      `json:"tierValue"`
	QualityMultiplier float64  `json:"qualityMultiplier"`
}

// TierTable is an ordered list of tier mappings with at most one mapping per
// tag. A nil table answers every lookup with the neutral default.
type TierTable struct {
	Name  string        `json:"name,omitempty"`
	Tiers []TierMapping `json:"tiers"`
}

// NewTierTable builds a table, rejecting duplicate or blank tier tags
func NewTierTable(name string, tiers []TierMapping) (*TierTable, error) {
	t := &TierTable{Name: name, Tiers: tiers}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the one-mapping-per-tag invariant
func (t *TierTable) Validate() error {
	vb := errors.NewValidationBuilder()
	seen := make(map[tags.Tag]bool, len(t.Tiers))
	for i, m := range t.Tiers {
		if !m.TierTag.IsValid() {
			vb.Fieldf("Tiers", "entry %d has no tier tag", i)
			continue
		}
		if seen[m.TierTag] {
			vb.Fieldf("Tiers", "duplicate tier tag %s", m.TierTag)
		}
		seen[m.TierTag] = true
	}
	return vb.Build()
}

func (t *TierTable) find(tag tags.Tag) (TierMapping, bool) {
	if t == nil || !tag.IsValid() {
		return TierMapping{}, false
	}
	for _, m := range t.Tiers {
		if m.TierTag == tag {
			return m, true
		}
	}
	return TierMapping{}, false
}

// GetTierValue returns the tier value of tag, or -1 when unmapped
func (t *TierTable) GetTierValue(tag tags.Tag) int {
	if m, ok := t.find(tag); ok {
		return m.TierValue
	}
	return UnmappedTierValue
}

// GetQualityMultiplier returns the multiplier of tag, or 1.0 when unmapped
func (t *TierTable) GetQualityMultiplier(tag tags.Tag) float64 {
	if m, ok := t.find(tag); ok {
		return m.QualityMultiplier
	}
	return NeutralMultiplier
}

// FindBestTierTag returns the mapped tag with the highest tier value present
// in the container. Ties go to the mapping declared first. Returns the empty
// tag when nothing is present.
func (t *TierTable) FindBestTierTag(c tags.Container) tags.Tag {
	if t == nil {
		return ""
	}
	var best tags.Tag
	bestValue := 0
	for _, m := range t.Tiers {
		if !c.HasTagExact(m.TierTag) {
			continue
		}
		if !best.IsValid() || m.TierValue > bestValue {
			best = m.TierTag
			bestValue = m.TierValue
		}
	}
	return best
}

// EvaluateQuality returns the multiplier of the best tier present in itemTags
func (t *TierTable) EvaluateQuality(itemTags tags.Container) float64 {
	best := t.FindBestTierTag(itemTags)
	if !best.IsValid() {
		return NeutralMultiplier
	}
	return t.GetQualityMultiplier(best)
}

// BestTierValue returns the tier value of the best tier in itemTags, or -1
func (t *TierTable) BestTierValue(itemTags tags.Container) int {
	return t.GetTierValue(t.FindBestTierTag(itemTags))
}
