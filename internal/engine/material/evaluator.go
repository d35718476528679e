package material

import (
	"log/slog"
	"sort"

	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

// RuleEvaluation records one band chosen for one matched rule
type RuleEvaluation struct {
	RuleIndex              int
	SelectedBandIndex      int
	BandEligibilityQuality float64
	EffectiveWeight        float64
	Rule                   *Rule
	Band                   *Band
}

// ComputeQualityAndWeightBonus fixes the eligibility quality to the pure
// ingredient quality and routes extra ingredients and craft time into the
// weight bonus only
func ComputeQualityAndWeightBonus(table *Table, ctx *Context) {
	ctx.BandEligibilityQuality = ctx.AverageQuality

	bonus := 0.0
	if table != nil {
		extra := max(0, ctx.IngredientCount-ctx.BaseIngredientCount)
		bonus += float64(extra) * table.ExtraIngredientWeightBonus
		bonus += min(ctx.ExtraCraftTimeBonus, table.ExtraTimeWeightBonusCap)
	}
	ctx.BandWeightBonus = bonus
}

// DoesRuleMatch tests the rule's tag query against the union of slot tags
// and its required recipe tags against the context's recipe tags. An empty
// query matches anything; a non-empty query is never satisfied by an empty
// union.
func DoesRuleMatch(rule *Rule, ctx *Context) bool {
	if !rule.TagQuery.IsEmpty() && !rule.TagQuery.Matches(ctx.AggregatedTags()) {
		return false
	}
	if !rule.RequiredRecipeTags.IsEmpty() && !ctx.RecipeTags.HasAll(rule.RequiredRecipeTags) {
		return false
	}
	return true
}

type eligibleBands struct {
	indices []int
	weights []float64
}

func collectEligibleBands(bands []Band, q, weightBonus float64) eligibleBands {
	var out eligibleBands
	for i := range bands {
		if q < bands[i].MinQuality {
			continue
		}
		w := bands[i].EffectiveWeight(q, weightBonus)
		if w > 0 {
			out.indices = append(out.indices, i)
			out.weights = append(out.weights, w)
		}
	}
	return out
}

func (e eligibleBands) affordable(budget float64) eligibleBands {
	var out eligibleBands
	for i, idx := range e.indices {
		if bandCost(idx) <= budget {
			out.indices = append(out.indices, idx)
			out.weights = append(out.weights, e.weights[i])
		}
	}
	return out
}

func (e eligibleBands) pick(src rng.Source) int {
	i := rng.WeightedIndex(src, e.weights)
	if i < 0 {
		return -1
	}
	return e.indices[i]
}

// bandCost is the budget price of a band; later bands cost more
func bandCost(bandIndex int) float64 {
	return float64(bandIndex + 1)
}

// EvaluateRules matches the table's rules against the context and draws a
// band for each match. Matched rules are ordered by priority, highest first,
// with declaration order breaking ties.
func EvaluateRules(table *Table, ctx *Context, src rng.Source) []RuleEvaluation {
	if table == nil || len(table.Rules) == 0 {
		return nil
	}

	var matched []int
	for i := range table.Rules {
		if DoesRuleMatch(&table.Rules[i], ctx) {
			matched = append(matched, i)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	sort.SliceStable(matched, func(a, b int) bool {
		return table.Rules[matched[a]].Priority > table.Rules[matched[b]].Priority
	})
	if table.MaxActiveRules > 0 && len(matched) > table.MaxActiveRules {
		matched = matched[:table.MaxActiveRules]
	}

	q := ctx.BandEligibilityQuality
	bonus := ctx.BandWeightBonus
	useBudget := table.UsesBudget()
	remaining := 0.0
	if useBudget {
		remaining = table.InitialBudget(q)
	}

	var evaluations []RuleEvaluation
	for _, ruleIdx := range matched {
		rule := &table.Rules[ruleIdx]
		bands := rule.EffectiveBands()
		if len(bands) == 0 {
			continue
		}

		for range rule.Contributions() {
			eligible := collectEligibleBands(bands, q, bonus)
			bandIdx := eligible.pick(src)
			if bandIdx < 0 {
				break
			}

			if useBudget && bandCost(bandIdx) > remaining {
				bandIdx = eligible.affordable(remaining).pick(src)
				if bandIdx < 0 {
					break
				}
			}
			if useBudget {
				remaining -= bandCost(bandIdx)
			}

			band := &bands[bandIdx]
			evaluations = append(evaluations, RuleEvaluation{
				RuleIndex:              ruleIdx,
				SelectedBandIndex:      bandIdx,
				BandEligibilityQuality: q,
				EffectiveWeight:        band.EffectiveWeight(q, bonus),
				Rule:                   rule,
				Band:                   band,
			})
		}
	}

	budgetLeft := -1.0
	if useBudget {
		budgetLeft = remaining
	}
	slog.Debug("material rules evaluated",
		"table", table.Name,
		"matched", len(matched),
		"evaluations", len(evaluations),
		"eligibility_quality", q,
		"weight_bonus", bonus,
		"budget_left", budgetLeft)

	return evaluations
}

// ApplyEvaluations applies every modifier of each selected band to out, in
// evaluation order
func ApplyEvaluations(evaluations []RuleEvaluation, out *item.Spec, aggregatedTags tags.Container, q float64, src rng.Source) {
	for _, eval := range evaluations {
		if eval.Band == nil {
			continue
		}
		for _, m := range eval.Band.Modifiers {
			if m == nil {
				continue
			}
			m.Apply(out, aggregatedTags, q, src)
		}
	}
}
