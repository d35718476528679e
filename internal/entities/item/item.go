// Package item holds the item shapes that flow through a craft: ingredient
// stacks on the way in and the output spec on the way out.
package item

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/iniside/velesarc-craft/internal/entities/tags"
)

// EntityType is the core.Entity type of crafted items
const EntityType = "item"

// ModType says how a stat modifier combines with the base attribute
type ModType string

// Stat combination modes
const (
	ModAdditive ModType = "Additive"
	ModMultiply ModType = "Multiply"
	ModDivision ModType = "Division"
)

// StatModifier is a single stat contribution
type StatModifier struct {
	Attribute string  `json:"attribute"`
	Value     float64 `json:"value"`
	ModType   ModType `json:"modType"`
}

// AbilityGrant grants an ability class, optionally bound to an input tag
type AbilityGrant struct {
	Class    string   `json:"class"`
	InputTag tags.Tag `json:"inputTag,omitempty"`
}

// EffectGrant grants a gameplay effect class
type EffectGrant struct {
	Class string `json:"class"`
}

// Definition is an authored item type
type Definition struct {
	ID    string         `json:"id"`
	Name  string         `json:"name,omitempty"`
	Tags  tags.Container `json:"tags"`
	Stats []StatModifier `json:"stats,omitempty"`
}

// Stack is an amount of one item sitting in a station inventory. Tags and
// stats are copied from the definition when the stack is created, plus any
// instance tags such as a quality tier.
type Stack struct {
	ID           string         `json:"id"`
	DefinitionID string         `json:"definitionId"`
	Amount       int            `json:"amount"`
	Tags         tags.Container `json:"tags"`
	Stats        []StatModifier `json:"stats,omitempty"`
}

// NewStack creates a stack of def with extra instance tags appended
func NewStack(id string, def *Definition, amount int, extra tags.Container) *Stack {
	st := &Stack{
		ID:           id,
		DefinitionID: def.ID,
		Amount:       amount,
		Tags:         tags.Union(def.Tags, extra),
	}
	if len(def.Stats) > 0 {
		st.Stats = append([]StatModifier(nil), def.Stats...)
	}
	return st
}

// Spec is the item produced by a craft
type Spec struct {
	ID           string         `json:"id"`
	DefinitionID string         `json:"definitionId"`
	Level        int            `json:"level"`
	Amount       int            `json:"amount"`
	Tags         tags.Container `json:"tags"`
	Stats        []StatModifier `json:"stats,omitempty"`
	Abilities    []AbilityGrant `json:"abilities,omitempty"`
	Effects      []EffectGrant  `json:"effects,omitempty"`
}

// GetID implements core.Entity
func (s *Spec) GetID() string {
	return s.ID
}

// GetType implements core.Entity
func (s *Spec) GetType() string {
	return EntityType
}

// AddStat appends a stat modifier
func (s *Spec) AddStat(m StatModifier) {
	s.Stats = append(s.Stats, m)
}

// GrantAbility appends an ability grant
func (s *Spec) GrantAbility(a AbilityGrant) {
	s.Abilities = append(s.Abilities, a)
}

// GrantEffect appends an effect grant
func (s *Spec) GrantEffect(e EffectGrant) {
	s.Effects = append(s.Effects, e)
}

// Clone returns a deep copy
func (s *Spec) Clone() *Spec {
	out := *s
	out.Tags = tags.New(s.Tags.Tags()...)
	out.Stats = append([]StatModifier(nil), s.Stats...)
	out.Abilities = append([]AbilityGrant(nil), s.Abilities...)
	out.Effects = append([]EffectGrant(nil), s.Effects...)
	return &out
}

var _ core.Entity = (*Spec)(nil)
