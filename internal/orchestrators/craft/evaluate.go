package craft

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/iniside/velesarc-craft/internal/engine/material"
	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

const (
	// DefaultIterations is used when a simulation does not name a count
	DefaultIterations = 1000
	// MaxIterations caps one simulation request
	MaxIterations = 100000
)

// prepared is a recipe matched against a set of loose ingredients
type prepared struct {
	recipe *recipe.Definition
	match  *recipe.Match
	avg    float64
}

func (o *orchestrator) prepare(ctx context.Context, recipeID string, ingredients []ItemInput) (*prepared, error) {
	if recipeID == "" {
		return nil, errors.InvalidArgument("recipe ID is required")
	}
	def, err := o.assets.Recipe(ctx, recipeID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recipe")
	}
	if def.OutputItemDefinition.Get() == nil {
		return nil, errors.FailedPreconditionf("recipe %s has no loaded output item definition", def.ID)
	}

	stacks, err := o.resolveItems(ctx, ingredients, func(i int) string {
		return fmt.Sprintf("ingredient_%d", i)
	})
	if err != nil {
		return nil, err
	}
	match, err := recipe.MatchIngredients(def, stacks, def.TierTable())
	if err != nil {
		return nil, errors.Wrapf(err, "cannot evaluate recipe %s", def.ID)
	}

	return &prepared{recipe: def, match: match, avg: match.AverageQuality(def)}, nil
}

func (p *prepared) build(src rng.Source) (*item.Spec, *recipe.BuildReport) {
	return recipe.Build(recipe.BuildInput{
		Recipe:             p.recipe,
		Ingredients:        p.match.Items,
		QualityMultipliers: p.match.QualityMultipliers,
		AverageQuality:     p.avg,
		Source:             src,
	})
}

// EvaluateOutput builds one output from loose ingredients without touching
// any station
func (o *orchestrator) EvaluateOutput(ctx context.Context, input *EvaluateOutputInput) (*EvaluateOutputOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	p, err := o.prepare(ctx, input.RecipeID, input.Ingredients)
	if err != nil {
		return nil, err
	}

	var (
		spec   *item.Spec
		report *recipe.BuildReport
	)
	if input.Seed != 0 {
		spec, report = p.build(rng.NewSeeded(input.Seed))
	} else {
		o.randMu.Lock()
		spec, report = p.build(o.random)
		o.randMu.Unlock()
	}
	spec.ID = o.idGen.Generate()

	slog.Debug("Output evaluated",
		"recipe_id", p.recipe.ID,
		"average_quality", p.avg,
		"level", spec.Level,
		"pending", len(report.Pending),
		"applied", len(report.Applied),
	)

	return &EvaluateOutputOutput{
		Item:               spec,
		Report:             report,
		QualityMultipliers: p.match.QualityMultipliers,
	}, nil
}

type statKey struct {
	attribute string
	modType   item.ModType
}

type tally struct {
	counts map[string]int
}

func newTally() *tally {
	return &tally{counts: make(map[string]int)}
}

func (t *tally) add(key string) {
	t.counts[key]++
}

// frequencies sorts by count, most frequent first
func (t *tally) frequencies(iterations int) []Frequency {
	out := make([]Frequency, 0, len(t.counts))
	for k, n := range t.counts {
		out = append(out, Frequency{Key: k, Count: n, Rate: float64(n) / float64(iterations)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func ruleName(ev material.RuleEvaluation) string {
	if ev.Rule != nil && ev.Rule.Name != "" {
		return ev.Rule.Name
	}
	return fmt.Sprintf("Rule[%d]", ev.RuleIndex)
}

func bandName(ev material.RuleEvaluation) string {
	if ev.Band != nil && ev.Band.Name != "" {
		return ev.Band.Name
	}
	return fmt.Sprintf("Band[%d]", ev.SelectedBandIndex)
}

// Simulate builds the same craft many times and reports how often each
// rule, band, stat, ability and effect came out
func (o *orchestrator) Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	iterations := input.Iterations
	if iterations == 0 {
		iterations = DefaultIterations
	}
	if iterations < 0 || iterations > MaxIterations {
		return nil, errors.InvalidArgumentf("iterations must be between 1 and %d (got %d)", MaxIterations, input.Iterations)
	}

	p, err := o.prepare(ctx, input.RecipeID, input.Ingredients)
	if err != nil {
		return nil, err
	}

	var seeded rng.Source
	if input.Seed != 0 {
		seeded = rng.NewSeeded(input.Seed)
	}

	rules, bands := newTally(), newTally()
	abilities, effects, outTags := newTally(), newTally(), newTally()
	stats := make(map[statKey]*StatSummary)
	level := 0

	for i := 0; i < iterations; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, "simulation cancelled")
			}
		}

		var (
			spec   *item.Spec
			report *recipe.BuildReport
		)
		if seeded != nil {
			spec, report = p.build(seeded)
		} else {
			o.randMu.Lock()
			spec, report = p.build(o.random)
			o.randMu.Unlock()
		}
		level = report.Level

		for _, ev := range report.RuleEvaluations {
			rules.add(ruleName(ev))
			bands.add(ruleName(ev) + " / " + bandName(ev))
		}
		for _, m := range spec.Stats {
			k := statKey{attribute: m.Attribute, modType: m.ModType}
			s, ok := stats[k]
			if !ok {
				s = &StatSummary{Attribute: m.Attribute, ModType: m.ModType, Min: m.Value, Max: m.Value}
				stats[k] = s
			}
			s.Count++
			s.Mean += m.Value
			s.Min = min(s.Min, m.Value)
			s.Max = max(s.Max, m.Value)
		}
		for _, a := range spec.Abilities {
			abilities.add(a.Class)
		}
		for _, e := range spec.Effects {
			effects.add(e.Class)
		}
		for _, t := range spec.Tags.Strings() {
			outTags.add(t)
		}
	}

	summaries := make([]StatSummary, 0, len(stats))
	for _, s := range stats {
		s.Mean /= float64(s.Count)
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Attribute != summaries[j].Attribute {
			return summaries[i].Attribute < summaries[j].Attribute
		}
		return summaries[i].ModType < summaries[j].ModType
	})

	slog.Info("Simulation finished",
		"recipe_id", p.recipe.ID,
		"iterations", iterations,
		"average_quality", p.avg,
		"rules", len(rules.counts),
		"stats", len(summaries),
	)

	return &SimulateOutput{
		RecipeID:       p.recipe.ID,
		Iterations:     iterations,
		AverageQuality: p.avg,
		Level:          level,
		Rules:          rules.frequencies(iterations),
		Bands:          bands.frequencies(iterations),
		Stats:          summaries,
		Abilities:      abilities.frequencies(iterations),
		Effects:        effects.frequencies(iterations),
		Tags:           outTags.frequencies(iterations),
	}, nil
}
