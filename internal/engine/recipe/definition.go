// Package recipe holds recipe definitions, ingredient matching and the output
// builder that turns matched ingredients into a crafted item.
package recipe

import (
	"time"

	"github.com/iniside/velesarc-craft/internal/engine/quality"
	"github.com/iniside/velesarc-craft/internal/engine/slots"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/softref"
)

// Authoring defaults
const (
	DefaultCraftTime    = 5 * time.Second
	DefaultOutputAmount = 1
	DefaultOutputLevel  = 1
)

// Definition is an authored recipe
type Definition struct {
	ID                     string
	Name                   string
	Tags                   tags.Container
	CraftTime              time.Duration
	RequiredStationTags    tags.Container
	RequiredInstigatorTags tags.Container
	Ingredients            []Ingredient

	OutputItemDefinition softref.Ref[item.Definition]
	OutputAmount         int
	OutputLevel          int
	OutputModifiers      []OutputModifier

	ModifierSlots     []slots.Slot
	MaxUsableSlots    int
	SlotSelectionMode slots.Selection

	QualityTierTable    softref.Ref[quality.TierTable]
	QualityAffectsLevel bool
}

// NewDefinition returns a recipe with the authoring defaults applied
func NewDefinition(id string) *Definition {
	return &Definition{
		ID:                id,
		CraftTime:         DefaultCraftTime,
		OutputAmount:      DefaultOutputAmount,
		OutputLevel:       DefaultOutputLevel,
		SlotSelectionMode: slots.HighestWeight,
	}
}

// TierTable returns the bound quality tier table, or nil
func (d *Definition) TierTable() *quality.TierTable {
	return d.QualityTierTable.Get()
}

// Ingredient returns the ingredient at slot, or nil when out of range
func (d *Definition) Ingredient(slot int) Ingredient {
	if slot < 0 || slot >= len(d.Ingredients) {
		return nil
	}
	return d.Ingredients[slot]
}

// MatchesStation reports whether a station carrying stationTags can craft
// the recipe
func (d *Definition) MatchesStation(stationTags tags.Container) bool {
	return d.RequiredStationTags.IsEmpty() || stationTags.HasAll(d.RequiredStationTags)
}

// AverageQuality is the amount-weighted mean of the per-slot multipliers,
// 1.0 when there is nothing to average
func AverageQuality(d *Definition, multipliers []float64) float64 {
	total := 0.0
	weight := 0
	for i, m := range multipliers {
		w := 1
		if ing := d.Ingredient(i); ing != nil {
			w = ing.Common().Amount
		}
		total += m * float64(w)
		weight += w
	}
	if weight <= 0 {
		return 1.0
	}
	return total / float64(weight)
}
