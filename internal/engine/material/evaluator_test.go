package material_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/iniside/velesarc-craft/internal/engine/material"
	"github.com/iniside/velesarc-craft/internal/engine/modifier"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
	"github.com/iniside/velesarc-craft/internal/pkg/softref"
)

type EvaluatorTestSuite struct {
	suite.Suite
}

func TestEvaluatorSuite(t *testing.T) {
	suite.Run(t, new(EvaluatorTestSuite))
}

func statBand(name string, minQuality, baseWeight, bias float64, attr string, value float64) material.Band {
	return material.Band{
		Name:              name,
		MinQuality:        minQuality,
		BaseWeight:        baseWeight,
		QualityWeightBias: bias,
		Modifiers: []modifier.CraftModifier{
			&modifier.Stats{Base: modifier.DefaultBase(), Stat: item.StatModifier{Attribute: attr, Value: value}},
		},
	}
}

func metalRule(bands ...material.Band) material.Rule {
	return material.Rule{
		Name:     "metal",
		TagQuery: tags.AnyOf("Resource.Metal"),
		Bands:    bands,
	}
}

func metalContext(avgQuality float64, count, base int) *material.Context {
	ingredients := make([]material.Ingredient, count)
	for i := range ingredients {
		ingredients[i] = material.Ingredient{Tags: tags.New("Resource.Metal.Iron"), QualityMultiplier: avgQuality}
	}
	return material.BuildContext(material.BuildInput{
		Ingredients:         ingredients,
		AverageQuality:      avgQuality,
		BaseIngredientCount: base,
	})
}

func (s *EvaluatorTestSuite) TestBuildContext() {
	ctx := material.BuildContext(material.BuildInput{
		Ingredients: []material.Ingredient{
			{Tags: tags.New("Resource.Metal.Iron"), QualityMultiplier: 1.5},
			{Tags: tags.New("Resource.Wood"), QualityMultiplier: 1.0},
		},
		AverageQuality: 1.25,
	})

	s.Equal(2, ctx.IngredientCount)
	s.Equal(2, ctx.BaseIngredientCount)
	s.Equal(1.25, ctx.BandEligibilityQuality)
	s.Equal(0.0, ctx.BandWeightBonus)
	s.Equal([]float64{1.5, 1.0}, ctx.IngredientQualityMultipliers)
	s.Equal([]string{"Resource.Metal.Iron", "Resource.Wood"}, ctx.AggregatedTags().Strings())
}

func (s *EvaluatorTestSuite) TestBandBelowEligibilityIsNeverSelected() {
	table := &material.Table{Rules: []material.Rule{metalRule(statBand("fine", 1.0, 1.0, 0, "Damage", 1))}}
	ctx := metalContext(0.5, 1, 1)

	material.ComputeQualityAndWeightBonus(table, ctx)
	s.Empty(material.EvaluateRules(table, ctx, rng.NewSeeded(1)))
}

func (s *EvaluatorTestSuite) TestSingleEligibleBand() {
	table := &material.Table{Rules: []material.Rule{metalRule(statBand("fine", 1.0, 1.0, 0, "Damage", 1))}}
	ctx := metalContext(1.0, 2, 2)

	material.ComputeQualityAndWeightBonus(table, ctx)
	evals := material.EvaluateRules(table, ctx, rng.NewSeeded(1))

	s.Require().Len(evals, 1)
	s.Equal(0, evals[0].RuleIndex)
	s.Equal(0, evals[0].SelectedBandIndex)
	s.Equal(1.0, evals[0].EffectiveWeight)
	s.Equal(1.0, evals[0].BandEligibilityQuality)
	s.Equal("fine", evals[0].Band.Name)
}

func (s *EvaluatorTestSuite) TestWeightBonusNeverUnlocksBands() {
	table := &material.Table{
		ExtraIngredientWeightBonus: 100,
		ExtraTimeWeightBonusCap:    100,
		Rules: []material.Rule{metalRule(
			statBand("common", 0, 1, 1, "Damage", 1),
			statBand("masterwork", 3, 1, 1, "Damage", 10),
		)},
	}
	ctx := metalContext(1.0, 10, 1)
	ctx.ExtraCraftTimeBonus = 50

	material.ComputeQualityAndWeightBonus(table, ctx)
	s.Equal(1.0, ctx.BandEligibilityQuality)
	s.Equal(950.0, ctx.BandWeightBonus)

	src := rng.NewSeeded(11)
	for range 200 {
		for _, eval := range material.EvaluateRules(table, ctx, src) {
			s.Equal(0, eval.SelectedBandIndex)
		}
	}
}

func (s *EvaluatorTestSuite) TestWeightBonusSeparation() {
	table := &material.Table{ExtraIngredientWeightBonus: 0.5, ExtraTimeWeightBonusCap: 1}

	few := metalContext(1.5, 2, 2)
	many := metalContext(1.5, 5, 2)
	material.ComputeQualityAndWeightBonus(table, few)
	material.ComputeQualityAndWeightBonus(table, many)

	s.Equal(few.BandEligibilityQuality, many.BandEligibilityQuality)
	s.Equal(0.0, few.BandWeightBonus)
	s.Equal(1.5, many.BandWeightBonus)

	many.ExtraCraftTimeBonus = 4
	material.ComputeQualityAndWeightBonus(table, many)
	s.Equal(2.5, many.BandWeightBonus)

	material.ComputeQualityAndWeightBonus(nil, many)
	s.Equal(0.0, many.BandWeightBonus)
}

func (s *EvaluatorTestSuite) TestEffectiveWeightFormula() {
	b := statBand("b", 1.0, 2.0, 0.5, "x", 1)
	// 2 * (1 + ((2 - 1) + 1) * 0.5)
	s.InDelta(4.0, b.EffectiveWeight(2.0, 1.0), 1e-9)
	s.InDelta(2.0, b.EffectiveWeight(0.5, 0), 1e-9)
}

func (s *EvaluatorTestSuite) TestBudgetFallsBackToAffordableBand() {
	bands := func() []material.Band {
		return []material.Band{
			statBand("cheap", 0, 1, 0, "Damage", 1),
			statBand("dear", 0, 1, 0, "Damage", 5),
		}
	}
	table := &material.Table{
		BaseBandBudget: 1,
		Rules: []material.Rule{
			{Name: "first", TagQuery: tags.AnyOf("Resource.Metal"), Bands: bands()},
			{Name: "second", TagQuery: tags.AnyOf("Resource.Metal"), Bands: bands()},
		},
	}
	ctx := metalContext(1.0, 1, 1)
	material.ComputeQualityAndWeightBonus(table, ctx)

	// first: draws "dear" (cost 2), redraws among affordable -> "cheap"
	// second: draws "dear", nothing affordable left -> skipped
	evals := material.EvaluateRules(table, ctx, rng.NewScripted(0.99, 0.1, 0.99))

	s.Require().Len(evals, 1)
	s.Equal(0, evals[0].RuleIndex)
	s.Equal(0, evals[0].SelectedBandIndex)
}

func (s *EvaluatorTestSuite) TestBudgetSkipsWhenNothingAffordable() {
	table := &material.Table{
		BaseBandBudget: 1,
		Rules: []material.Rule{metalRule(
			statBand("locked", 5, 1, 0, "Damage", 1),
			statBand("dear", 0, 1, 0, "Damage", 5),
		)},
	}
	ctx := metalContext(1.0, 1, 1)
	material.ComputeQualityAndWeightBonus(table, ctx)

	s.Empty(material.EvaluateRules(table, ctx, rng.NewSeeded(2)))
}

func (s *EvaluatorTestSuite) TestBudgetMonotonicity() {
	makeTable := func(perQuality float64) *material.Table {
		rules := make([]material.Rule, 4)
		for i := range rules {
			rules[i] = metalRule(
				statBand("locked", 99, 1, 0, "Damage", 1),
				statBand("second", 0, 1, 0, "Damage", 2),
			)
		}
		return &material.Table{BaseBandBudget: 1, BudgetPerQuality: perQuality, Rules: rules}
	}

	previous := -1
	for _, perQuality := range []float64{0, 1, 2, 4, 8} {
		table := makeTable(perQuality)
		ctx := metalContext(2.0, 1, 1)
		material.ComputeQualityAndWeightBonus(table, ctx)

		count := len(material.EvaluateRules(table, ctx, rng.NewSeeded(5)))
		s.GreaterOrEqual(count, previous)
		previous = count
	}
	s.Equal(4, previous)
}

func (s *EvaluatorTestSuite) TestPriorityOrderAndMaxActiveRules() {
	band := statBand("any", 0, 1, 0, "Damage", 1)
	table := &material.Table{
		MaxActiveRules: 2,
		Rules: []material.Rule{
			{Name: "low", Priority: 1, Bands: []material.Band{band}},
			{Name: "high-a", Priority: 5, Bands: []material.Band{band}},
			{Name: "high-b", Priority: 5, Bands: []material.Band{band}},
		},
	}
	ctx := metalContext(1.0, 1, 1)

	evals := material.EvaluateRules(table, ctx, rng.NewSeeded(1))
	s.Require().Len(evals, 2)
	s.Equal(1, evals[0].RuleIndex)
	s.Equal(2, evals[1].RuleIndex)
}

func (s *EvaluatorTestSuite) TestMaxContributions() {
	rule := metalRule(statBand("any", 0, 1, 0, "Damage", 1))
	rule.MaxContributions = 3
	table := &material.Table{Rules: []material.Rule{rule}}

	evals := material.EvaluateRules(table, metalContext(1.0, 1, 1), rng.NewSeeded(1))
	s.Len(evals, 3)
}

func (s *EvaluatorTestSuite) TestDoesRuleMatch() {
	rule := metalRule()

	s.Run("union satisfies query", func() {
		s.True(material.DoesRuleMatch(&rule, metalContext(1, 1, 1)))
	})

	s.Run("empty union does not satisfy non-empty query", func() {
		s.False(material.DoesRuleMatch(&rule, material.BuildContext(material.BuildInput{})))
	})

	s.Run("empty query always matches", func() {
		s.True(material.DoesRuleMatch(&material.Rule{}, material.BuildContext(material.BuildInput{})))
	})

	s.Run("required recipe tags", func() {
		gated := metalRule()
		gated.RequiredRecipeTags = tags.New("Recipe.Weapon")
		ctx := metalContext(1, 1, 1)
		s.False(material.DoesRuleMatch(&gated, ctx))

		ctx.RecipeTags = tags.New("Recipe.Weapon.Sword")
		s.True(material.DoesRuleMatch(&gated, ctx))
	})
}

func (s *EvaluatorTestSuite) TestEffectiveBandsPreset() {
	inline := statBand("inline", 0, 1, 0, "Damage", 1)
	preset := &material.Preset{Name: "metals", Bands: []material.Band{statBand("preset", 0, 1, 0, "Damage", 2)}}

	loaded := material.Rule{Bands: []material.Band{inline}, Preset: softref.Of("presets/metals", preset)}
	s.Equal("preset", loaded.EffectiveBands()[0].Name)

	unloadable := material.Rule{Bands: []material.Band{inline}, Preset: softref.To[material.Preset]("presets/missing")}
	s.Equal("inline", unloadable.EffectiveBands()[0].Name)
}

func (s *EvaluatorTestSuite) TestNoTableNoEvaluations() {
	s.Empty(material.EvaluateRules(nil, metalContext(1, 1, 1), rng.NewSeeded(1)))
	s.Empty(material.EvaluateRules(&material.Table{}, metalContext(1, 1, 1), rng.NewSeeded(1)))
}

func (s *EvaluatorTestSuite) TestDeterministicUnderFixedDraws() {
	table := &material.Table{Rules: []material.Rule{
		metalRule(
			statBand("common", 0, 1, 0.5, "Damage", 1),
			statBand("fine", 1, 1, 0.5, "Damage", 3),
		),
		{Name: "fire", TagQuery: tags.AnyOf("Resource"), Bands: []material.Band{statBand("hot", 0, 1, 0, "Heat", 2)}},
	}}

	run := func() *item.Spec {
		ctx := metalContext(1.5, 2, 2)
		material.ComputeQualityAndWeightBonus(table, ctx)
		src := rng.NewScripted(0.3, 0.8, 0.6)
		out := &item.Spec{ID: "out"}
		evals := material.EvaluateRules(table, ctx, src)
		material.ApplyEvaluations(evals, out, ctx.AggregatedTags(), ctx.BandEligibilityQuality, src)
		return out
	}

	s.Equal(run(), run())
}

func (s *EvaluatorTestSuite) TestApplyEvaluations() {
	band := statBand("fine", 0, 1, 0, "Damage", 10)
	evals := []material.RuleEvaluation{{Band: &band}, {Band: nil}}
	out := &item.Spec{}

	material.ApplyEvaluations(evals, out, tags.Container{}, 2.0, rng.NewSeeded(1))

	s.Require().Len(out.Stats, 1)
	s.InDelta(20.0, out.Stats[0].Value, 1e-9)
}
