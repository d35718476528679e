package randompool

import (
	"math"

	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

// ModeName identifies a selection strategy in authored data
type ModeName string

// Selection strategies
const (
	ModeSimpleRandom ModeName = "SimpleRandom"
	ModeBudget       ModeName = "Budget"
)

// budgetSelectionGuard caps unlimited budget draws. Zero-cost entries with
// duplicates allowed would otherwise never exhaust the budget.
const budgetSelectionGuard = 256

// SelectionMode picks entries out of an eligible context
type SelectionMode interface {
	Name() ModeName
	Select(ctx SelectionContext, src rng.Source) []int
}

// SimpleRandom performs a fixed number of weighted draws
type SimpleRandom struct {
	MaxSelections            int     `json:"maxSelections"`
	AllowDuplicates          bool    `json:"allowDuplicates"`
	QualityAffectsSelections bool    `json:"qualityAffectsSelections"`
	QualityBonusThreshold    float64 `json:"qualityBonusThreshold"`
}

// Name implements SelectionMode
func (m *SimpleRandom) Name() ModeName { return ModeSimpleRandom }

// Draws returns how many picks are attempted at quality
func (m *SimpleRandom) Draws(quality float64) int {
	total := m.MaxSelections
	if m.QualityAffectsSelections && m.QualityBonusThreshold > 0 {
		total += int(math.Floor(quality / m.QualityBonusThreshold))
	}
	return total
}

// Select implements SelectionMode
func (m *SimpleRandom) Select(ctx SelectionContext, src rng.Source) []int {
	if len(ctx.EligibleIndices) == 0 {
		return nil
	}

	var selected []int
	already := make(map[int]bool)
	for range m.Draws(ctx.AverageQuality) {
		var exclude map[int]bool
		if !m.AllowDuplicates {
			exclude = already
		}
		idx, ok := WeightedRandomPick(ctx, exclude, src)
		if !ok {
			break
		}
		selected = append(selected, idx)
		already[idx] = true
	}
	return selected
}

// Budget draws affordable entries until the quality-scaled budget runs out
type Budget struct {
	AllowDuplicates     bool    `json:"allowDuplicates"`
	BaseBudget          float64 `json:"baseBudget"`
	BudgetPerQuality    float64 `json:"budgetPerQuality"`
	MaxBudgetSelections int     `json:"maxBudgetSelections"`
}

// Name implements SelectionMode
func (m *Budget) Name() ModeName { return ModeBudget }

// InitialBudget is the budget available at quality
func (m *Budget) InitialBudget(quality float64) float64 {
	return m.BaseBudget + max(0, quality-1)*m.BudgetPerQuality
}

// Select implements SelectionMode
func (m *Budget) Select(ctx SelectionContext, src rng.Source) []int {
	if len(ctx.EligibleIndices) == 0 {
		return nil
	}

	limit := m.MaxBudgetSelections
	if limit <= 0 {
		limit = budgetSelectionGuard
	}

	remaining := m.InitialBudget(ctx.AverageQuality)
	already := make(map[int]bool)
	var selected []int

	for remaining > 0 && len(selected) < limit {
		affordable := SelectionContext{Entries: ctx.Entries, AverageQuality: ctx.AverageQuality}
		for i, idx := range ctx.EligibleIndices {
			if !m.AllowDuplicates && already[idx] {
				continue
			}
			if ctx.Entries[idx].Cost <= remaining {
				affordable.EligibleIndices = append(affordable.EligibleIndices, idx)
				affordable.EffectiveWeights = append(affordable.EffectiveWeights, ctx.EffectiveWeights[i])
			}
		}
		if len(affordable.EligibleIndices) == 0 {
			break
		}

		idx, ok := WeightedRandomPick(affordable, nil, src)
		if !ok {
			break
		}
		selected = append(selected, idx)
		remaining -= ctx.Entries[idx].Cost
		already[idx] = true
	}
	return selected
}

var (
	_ SelectionMode = (*SimpleRandom)(nil)
	_ SelectionMode = (*Budget)(nil)
)
