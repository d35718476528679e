package material

import (
	"github.com/iniside/velesarc-craft/internal/entities/tags"
)

// Context is the per-craft evaluation input
type Context struct {
	PerSlotTags                  []tags.Container
	RecipeTags                   tags.Container
	IngredientQualityMultipliers []float64
	AverageQuality               float64
	BandEligibilityQuality       float64
	BandWeightBonus              float64
	IngredientCount              int
	BaseIngredientCount          int
	ExtraCraftTimeBonus          float64
}

// Ingredient is one consumed ingredient as seen by the evaluator
type Ingredient struct {
	Tags              tags.Container
	QualityMultiplier float64
}

// BuildInput carries what BuildContext needs
type BuildInput struct {
	Ingredients         []Ingredient
	AverageQuality      float64
	RecipeTags          tags.Container
	BaseIngredientCount int
	ExtraCraftTimeBonus float64
}

// BuildContext creates a fresh context from consumed ingredients. A zero
// BaseIngredientCount means "exactly what was supplied".
func BuildContext(input BuildInput) *Context {
	ctx := &Context{
		PerSlotTags:                  make([]tags.Container, len(input.Ingredients)),
		IngredientQualityMultipliers: make([]float64, len(input.Ingredients)),
		RecipeTags:                   input.RecipeTags,
		AverageQuality:               input.AverageQuality,
		BandEligibilityQuality:       input.AverageQuality,
		IngredientCount:              len(input.Ingredients),
		BaseIngredientCount:          input.BaseIngredientCount,
		ExtraCraftTimeBonus:          input.ExtraCraftTimeBonus,
	}
	for i, ing := range input.Ingredients {
		ctx.PerSlotTags[i] = ing.Tags
		ctx.IngredientQualityMultipliers[i] = ing.QualityMultiplier
	}
	if ctx.BaseIngredientCount <= 0 {
		ctx.BaseIngredientCount = ctx.IngredientCount
	}
	return ctx
}

// AggregatedTags is the union of every slot's tags
func (c *Context) AggregatedTags() tags.Container {
	return tags.Union(c.PerSlotTags...)
}
