package recipe

import (
	"log/slog"

	"github.com/iniside/velesarc-craft/internal/engine/material"
	"github.com/iniside/velesarc-craft/internal/engine/modifier"
	"github.com/iniside/velesarc-craft/internal/engine/quality"
	"github.com/iniside/velesarc-craft/internal/engine/randompool"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
	"github.com/iniside/velesarc-craft/internal/pkg/softref"
)

// OutputKind is the JSON "type" of an output modifier
type OutputKind string

// Output modifier kinds
const (
	OutputStats              OutputKind = "Stats"
	OutputAbilities          OutputKind = "Abilities"
	OutputEffects            OutputKind = "Effects"
	OutputTransferStats      OutputKind = "TransferStats"
	OutputRandomPool         OutputKind = "RandomPool"
	OutputMaterialProperties OutputKind = "MaterialProperties"
)

// PendingModifier is one evaluated result waiting for slot resolution
type PendingModifier struct {
	SlotTag         tags.Tag        `json:"slotTag,omitempty"`
	EffectiveWeight float64         `json:"effectiveWeight"`
	ModifierIndex   int             `json:"modifierIndex"`
	Result          modifier.Result `json:"result"`
}

// EvaluateInput is what an output modifier sees. Ingredients and
// QualityMultipliers are parallel to the recipe's ingredient slots.
type EvaluateInput struct {
	Ingredients        []*item.Stack
	QualityMultipliers []float64
	AverageQuality     float64
	Source             rng.Source
	// Report receives material rule evaluations when set
	Report *BuildReport
}

// AggregatedTags is the union of every matched ingredient's tags
func (in *EvaluateInput) AggregatedTags() tags.Container {
	var out tags.Container
	for _, st := range in.Ingredients {
		if st != nil {
			out.Append(st.Tags)
		}
	}
	return out
}

func (in *EvaluateInput) anyIngredientHasAll(required tags.Container) bool {
	for _, st := range in.Ingredients {
		if st != nil && st.Tags.HasAll(required) {
			return true
		}
	}
	return false
}

func (in *EvaluateInput) source() rng.Source {
	if in.Source == nil {
		return rng.NewToolkit(nil)
	}
	return in.Source
}

// OutputModifier is one entry of a recipe's output modifier list
type OutputModifier interface {
	Kind() OutputKind
	Common() OutputBase
	Evaluate(in *EvaluateInput) []PendingModifier
}

// OutputBase is shared by every output modifier. Unlike band modifiers, the
// trigger tags must all be present on a single ingredient.
type OutputBase struct {
	modifier.Base
	SlotTag tags.Tag `json:"slotTag,omitempty"`
}

// DefaultOutputBase returns a base with the authoring defaults applied
func DefaultOutputBase() OutputBase {
	return OutputBase{Base: modifier.DefaultBase()}
}

// Eligible applies the quality gate and the per-ingredient trigger tag gate
func (b OutputBase) Eligible(in *EvaluateInput) bool {
	if !b.PassesQualityGate(in.AverageQuality) {
		return false
	}
	if !b.TriggerTags.IsEmpty() && !in.anyIngredientHasAll(b.TriggerTags) {
		return false
	}
	return true
}

// EffectiveWeight is Weight scaled by the quality scale at q
func (b OutputBase) EffectiveWeight(q float64) float64 {
	return b.Weight * b.QualityScale(q)
}

func (b OutputBase) pending(q float64, results ...modifier.Result) []PendingModifier {
	if len(results) == 0 {
		return nil
	}
	w := b.EffectiveWeight(q)
	out := make([]PendingModifier, len(results))
	for i, r := range results {
		out[i] = PendingModifier{SlotTag: b.SlotTag, EffectiveWeight: w, Result: r}
	}
	return out
}

// Stats adds one stat scaled by average quality
type Stats struct {
	OutputBase
	Stat item.StatModifier `json:"stat"`
}

// Kind implements OutputModifier
func (m *Stats) Kind() OutputKind { return OutputStats }

// Common implements OutputModifier
func (m *Stats) Common() OutputBase { return m.OutputBase }

// Evaluate implements OutputModifier
func (m *Stats) Evaluate(in *EvaluateInput) []PendingModifier {
	if !m.Eligible(in) {
		return nil
	}
	stat := m.Stat
	stat.Value = m.Stat.Value * m.QualityScale(in.AverageQuality)
	return m.pending(in.AverageQuality, modifier.StatResult(stat))
}

// Abilities grants one ability
type Abilities struct {
	OutputBase
	Ability item.AbilityGrant `json:"ability"`
}

// Kind implements OutputModifier
func (m *Abilities) Kind() OutputKind { return OutputAbilities }

// Common implements OutputModifier
func (m *Abilities) Common() OutputBase { return m.OutputBase }

// Evaluate implements OutputModifier
func (m *Abilities) Evaluate(in *EvaluateInput) []PendingModifier {
	if !m.Eligible(in) {
		return nil
	}
	return m.pending(in.AverageQuality, modifier.AbilityResult(m.Ability))
}

// Effects grants one effect
type Effects struct {
	OutputBase
	Effect item.EffectGrant `json:"effect"`
}

// Kind implements OutputModifier
func (m *Effects) Kind() OutputKind { return OutputEffects }

// Common implements OutputModifier
func (m *Effects) Common() OutputBase { return m.OutputBase }

// Evaluate implements OutputModifier
func (m *Effects) Evaluate(in *EvaluateInput) []PendingModifier {
	if !m.Eligible(in) {
		return nil
	}
	return m.pending(in.AverageQuality, modifier.EffectResult(m.Effect))
}

// TransferStats copies the stats of one ingredient onto the output
type TransferStats struct {
	OutputBase
	IngredientSlot int     `json:"ingredientSlot"`
	TransferScale  float64 `json:"transferScale"`
	ScaleByQuality bool    `json:"scaleByQuality"`
}

// NewTransferStats returns a transfer from slot with the authoring defaults
func NewTransferStats(slot int) *TransferStats {
	return &TransferStats{
		OutputBase:     DefaultOutputBase(),
		IngredientSlot: slot,
		TransferScale:  1,
		ScaleByQuality: true,
	}
}

// Kind implements OutputModifier
func (m *TransferStats) Kind() OutputKind { return OutputTransferStats }

// Common implements OutputModifier
func (m *TransferStats) Common() OutputBase { return m.OutputBase }

// Evaluate implements OutputModifier
func (m *TransferStats) Evaluate(in *EvaluateInput) []PendingModifier {
	if !m.Eligible(in) {
		return nil
	}
	if m.IngredientSlot < 0 || m.IngredientSlot >= len(in.Ingredients) {
		return nil
	}
	src := in.Ingredients[m.IngredientSlot]
	if src == nil || src.DefinitionID == "" || len(src.Stats) == 0 {
		return nil
	}

	slotQuality := quality.NeutralMultiplier
	if m.IngredientSlot < len(in.QualityMultipliers) {
		slotQuality = in.QualityMultipliers[m.IngredientSlot]
	}

	results := make([]modifier.Result, 0, len(src.Stats))
	for _, stat := range src.Stats {
		stat.Value *= m.TransferScale
		if m.ScaleByQuality {
			stat.Value *= slotQuality
		}
		results = append(results, modifier.StatResult(stat))
	}
	return m.pending(in.AverageQuality, results...)
}

// RandomPool draws entries from a pool definition and contributes their
// modifiers
type RandomPool struct {
	OutputBase
	Pool softref.Ref[randompool.Definition] `json:"poolDefinition"`
	Mode randompool.SelectionMode           `json:"-"`
}

// Kind implements OutputModifier
func (m *RandomPool) Kind() OutputKind { return OutputRandomPool }

// Common implements OutputModifier
func (m *RandomPool) Common() OutputBase { return m.OutputBase }

// Evaluate implements OutputModifier
func (m *RandomPool) Evaluate(in *EvaluateInput) []PendingModifier {
	if !m.Eligible(in) {
		return nil
	}
	draw := randompool.Modifier{Pool: m.Pool, Mode: m.Mode}
	results := draw.Collect(in.AggregatedTags(), in.AverageQuality, in.source())
	return m.pending(in.AverageQuality, results...)
}

// MaterialProperties evaluates a material property table against the
// matched ingredients
type MaterialProperties struct {
	OutputBase
	Table               softref.Ref[material.Table] `json:"propertyTable"`
	BaseIngredientCount int                         `json:"baseIngredientCount"`
	ExtraCraftTimeBonus float64                     `json:"extraCraftTimeBonus"`
	UseRecipeTierTable  bool                        `json:"useRecipeTierTable"`
	RecipeTags          tags.Container              `json:"recipeTags"`
	SlotConfigs         []material.SlotConfig       `json:"slotConfigs,omitempty"`
}

// NewMaterialProperties returns a modifier over table with the authoring
// defaults applied
func NewMaterialProperties(table softref.Ref[material.Table]) *MaterialProperties {
	return &MaterialProperties{
		OutputBase:         DefaultOutputBase(),
		Table:              table,
		UseRecipeTierTable: true,
	}
}

// Kind implements OutputModifier
func (m *MaterialProperties) Kind() OutputKind { return OutputMaterialProperties }

// Common implements OutputModifier
func (m *MaterialProperties) Common() OutputBase { return m.OutputBase }

// Evaluate implements OutputModifier. The modifier's own gates do not apply;
// each band modifier is gated at band eligibility quality instead.
func (m *MaterialProperties) Evaluate(in *EvaluateInput) []PendingModifier {
	table := m.Table.Get()
	if table == nil || len(table.Rules) == 0 {
		if m.Table.IsSet() && table == nil {
			slog.Debug("material property table not loaded", "table", m.Table.Path)
		}
		return nil
	}

	multipliers, avgQuality := in.QualityMultipliers, in.AverageQuality
	if !m.UseRecipeTierTable {
		if tt := table.DefaultTierTable.Get(); tt != nil {
			multipliers, avgQuality = m.requalify(in, tt)
		}
	}

	ingredients := make([]material.Ingredient, 0, len(in.Ingredients))
	for i, st := range in.Ingredients {
		ing := material.Ingredient{QualityMultiplier: quality.NeutralMultiplier}
		if st != nil {
			ing.Tags = st.Tags
		}
		if i < len(multipliers) {
			ing.QualityMultiplier = multipliers[i]
		}
		ingredients = append(ingredients, ing)
	}

	ctx := material.BuildContext(material.BuildInput{
		Ingredients:         ingredients,
		AverageQuality:      avgQuality,
		RecipeTags:          m.RecipeTags,
		BaseIngredientCount: m.BaseIngredientCount,
		ExtraCraftTimeBonus: m.ExtraCraftTimeBonus,
	})
	material.ComputeQualityAndWeightBonus(table, ctx)

	src := in.source()
	evaluations := material.EvaluateRules(table, ctx, src)
	if len(m.SlotConfigs) > 0 {
		evaluations = material.FilterBySlotConfig(evaluations, m.SlotConfigs, src)
	}
	if in.Report != nil {
		in.Report.RuleEvaluations = append(in.Report.RuleEvaluations, evaluations...)
	}
	if len(evaluations) == 0 {
		return nil
	}

	aggregated := ctx.AggregatedTags()
	q := ctx.BandEligibilityQuality

	var out []PendingModifier
	for _, eval := range evaluations {
		if eval.Band == nil {
			continue
		}
		slotTag := m.SlotTag
		if eval.Rule != nil && !eval.Rule.OutputTags.IsEmpty() {
			slotTag = eval.Rule.OutputTags.First()
		}
		for _, mod := range eval.Band.Modifiers {
			if mod == nil {
				continue
			}
			for _, r := range mod.Collect(aggregated, q, src) {
				out = append(out, PendingModifier{
					SlotTag:         slotTag,
					EffectiveWeight: eval.EffectiveWeight,
					Result:          r,
				})
			}
		}
	}
	return out
}

// requalify recomputes the slot multipliers and their plain mean with the
// table's own tier table
func (m *MaterialProperties) requalify(in *EvaluateInput, tt *quality.TierTable) ([]float64, float64) {
	multipliers := make([]float64, len(in.Ingredients))
	total := 0.0
	for i, st := range in.Ingredients {
		multipliers[i] = QualityMultiplier(st, tt)
		total += multipliers[i]
	}
	if len(multipliers) == 0 {
		return multipliers, 1.0
	}
	return multipliers, total / float64(len(multipliers))
}

var (
	_ OutputModifier = (*Stats)(nil)
	_ OutputModifier = (*Abilities)(nil)
	_ OutputModifier = (*Effects)(nil)
	_ OutputModifier = (*TransferStats)(nil)
	_ OutputModifier = (*RandomPool)(nil)
	_ OutputModifier = (*MaterialProperties)(nil)
)
