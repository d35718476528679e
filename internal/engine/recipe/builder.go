package recipe

import (
	"log/slog"
	"math"

	"github.com/iniside/velesarc-craft/internal/engine/material"
	"github.com/iniside/velesarc-craft/internal/engine/slots"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

const maxOutputLevel = 255

// BuildReport explains how an output was produced
type BuildReport struct {
	Level           int                       `json:"level"`
	AverageQuality  float64                   `json:"averageQuality"`
	Pending         []PendingModifier         `json:"pending"`
	Applied         []int                     `json:"applied"`
	RuleEvaluations []material.RuleEvaluation `json:"-"`
}

// AppliedModifiers returns the pending modifiers that made it onto the item
func (r *BuildReport) AppliedModifiers() []PendingModifier {
	out := make([]PendingModifier, 0, len(r.Applied))
	for _, idx := range r.Applied {
		if idx >= 0 && idx < len(r.Pending) {
			out = append(out, r.Pending[idx])
		}
	}
	return out
}

// BuildInput carries the matched ingredients of one craft
type BuildInput struct {
	Recipe             *Definition
	Ingredients        []*item.Stack
	QualityMultipliers []float64
	AverageQuality     float64
	Source             rng.Source
}

// Build produces the output item of a craft. A recipe without a loaded output
// definition yields nil. Results are evaluated, resolved through the recipe's
// slots when it has any, then applied in resolution order.
func Build(input BuildInput) (*item.Spec, *BuildReport) {
	r := input.Recipe
	report := &BuildReport{AverageQuality: input.AverageQuality}
	if r == nil {
		return nil, report
	}
	def := r.OutputItemDefinition.Get()
	if def == nil {
		slog.Debug("recipe output definition not loaded",
			"recipe_id", r.ID,
			"output", r.OutputItemDefinition.Path)
		return nil, report
	}

	src := input.Source
	if src == nil {
		src = rng.NewToolkit(nil)
	}

	report.Level = outputLevel(r, input.Ingredients)
	out := &item.Spec{
		DefinitionID: def.ID,
		Level:        report.Level,
		Amount:       r.OutputAmount,
		Tags:         tags.Union(def.Tags),
	}
	if out.DefinitionID == "" {
		out.DefinitionID = r.OutputItemDefinition.Path
	}

	evalInput := &EvaluateInput{
		Ingredients:        input.Ingredients,
		QualityMultipliers: input.QualityMultipliers,
		AverageQuality:     input.AverageQuality,
		Source:             src,
		Report:             report,
	}
	for idx, mod := range r.OutputModifiers {
		if mod == nil {
			continue
		}
		for _, p := range mod.Evaluate(evalInput) {
			p.ModifierIndex = idx
			report.Pending = append(report.Pending, p)
		}
	}

	if len(r.ModifierSlots) > 0 {
		candidates := make([]slots.Candidate, len(report.Pending))
		for i, p := range report.Pending {
			candidates[i] = slots.Candidate{SlotTag: p.SlotTag, EffectiveWeight: p.EffectiveWeight}
		}
		report.Applied = slots.Resolve(candidates, r.ModifierSlots, r.MaxUsableSlots, r.SlotSelectionMode, src)
	} else {
		report.Applied = make([]int, len(report.Pending))
		for i := range report.Pending {
			report.Applied[i] = i
		}
	}

	for _, idx := range report.Applied {
		report.Pending[idx].Result.ApplyTo(out)
	}

	return out, report
}

// outputLevel is the authored level, or the rounded mean best tier value of
// the ingredients when quality drives the level
func outputLevel(r *Definition, ingredients []*item.Stack) int {
	level := r.OutputLevel
	tt := r.TierTable()
	if !r.QualityAffectsLevel || tt == nil {
		return level
	}

	total, count := 0, 0
	for _, st := range ingredients {
		if st == nil || st.DefinitionID == "" {
			continue
		}
		best := tt.FindBestTierTag(st.Tags)
		if !best.IsValid() {
			continue
		}
		total += tt.GetTierValue(best)
		count++
	}
	if count == 0 {
		return level
	}
	avg := int(math.Round(float64(total) / float64(count)))
	return min(max(avg, 1), maxOutputLevel)
}
