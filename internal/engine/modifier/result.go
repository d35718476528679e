package modifier

import (
	"github.com/iniside/velesarc-craft/internal/entities/item"
)

// ResultKind says which field of a Result is set
type ResultKind string

// Result kinds
const (
	ResultStat    ResultKind = "Stat"
	ResultAbility ResultKind = "Ability"
	ResultEffect  ResultKind = "Effect"
)

// Result is one atomic change to an output item
type Result struct {
	Kind    ResultKind        `json:"kind"`
	Stat    item.StatModifier `json:"stat,omitempty"`
	Ability item.AbilityGrant `json:"ability,omitempty"`
	Effect  item.EffectGrant  `json:"effect,omitempty"`
}

// StatResult wraps a stat modifier
func StatResult(s item.StatModifier) Result {
	return Result{Kind: ResultStat, Stat: s}
}

// AbilityResult wraps an ability grant
func AbilityResult(a item.AbilityGrant) Result {
	return Result{Kind: ResultAbility, Ability: a}
}

// EffectResult wraps an effect grant
func EffectResult(e item.EffectGrant) Result {
	return Result{Kind: ResultEffect, Effect: e}
}

// ApplyTo appends the result to out
func (r Result) ApplyTo(out *item.Spec) {
	switch r.Kind {
	case ResultStat:
		out.AddStat(r.Stat)
	case ResultAbility:
		out.GrantAbility(r.Ability)
	case ResultEffect:
		out.GrantEffect(r.Effect)
	}
}

// ApplyResults appends every result to out in order
func ApplyResults(out *item.Spec, results []Result) {
	if out == nil {
		return
	}
	for _, r := range results {
		r.ApplyTo(out)
	}
}
