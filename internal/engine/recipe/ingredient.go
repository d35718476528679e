package recipe

import (
	"github.com/iniside/velesarc-craft/internal/engine/quality"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/errors"
)

// IngredientKind is the JSON "type" of an ingredient
type IngredientKind string

// Ingredient kinds
const (
	IngredientItemDef IngredientKind = "ItemDef"
	IngredientTags    IngredientKind = "Tags"
)

// Ingredient is one input slot of a recipe
type Ingredient interface {
	Kind() IngredientKind
	Common() IngredientBase
	// Satisfies ignores the amount; matching checks it separately
	Satisfies(stack *item.Stack, tierTable *quality.TierTable) bool
}

// IngredientBase carries the fields every ingredient has
type IngredientBase struct {
	Amount         int    `json:"amount"`
	ConsumeOnCraft bool   `json:"consume"`
	SlotName       string `json:"slotName,omitempty"`
}

// DefaultIngredientBase returns a base with the authoring defaults applied
func DefaultIngredientBase() IngredientBase {
	return IngredientBase{Amount: 1, ConsumeOnCraft: true}
}

// ItemDef requires a specific item definition
type ItemDef struct {
	IngredientBase
	ItemDefinition string `json:"itemDefinition"`
}

// Kind implements Ingredient
func (i *ItemDef) Kind() IngredientKind { return IngredientItemDef }

// Common implements Ingredient
func (i *ItemDef) Common() IngredientBase { return i.IngredientBase }

// Satisfies implements Ingredient
func (i *ItemDef) Satisfies(stack *item.Stack, _ *quality.TierTable) bool {
	return stack != nil && i.ItemDefinition != "" && stack.DefinitionID == i.ItemDefinition
}

// TagsIngredient accepts any item carrying the required tags, none of the
// denied ones and at least the minimum tier
type TagsIngredient struct {
	IngredientBase
	RequiredTags tags.Container `json:"requiredTags"`
	DenyTags     tags.Container `json:"denyTags"`
	MinimumTier  tags.Tag       `json:"minimumTier,omitempty"`
}

// Kind implements Ingredient
func (i *TagsIngredient) Kind() IngredientKind { return IngredientTags }

// Common implements Ingredient
func (i *TagsIngredient) Common() IngredientBase { return i.IngredientBase }

// Satisfies implements Ingredient
func (i *TagsIngredient) Satisfies(stack *item.Stack, tierTable *quality.TierTable) bool {
	if stack == nil {
		return false
	}
	if !i.RequiredTags.IsEmpty() && !stack.Tags.HasAll(i.RequiredTags) {
		return false
	}
	if !i.DenyTags.IsEmpty() && stack.Tags.HasAny(i.DenyTags) {
		return false
	}
	if i.MinimumTier.IsValid() && tierTable != nil {
		if tierTable.BestTierValue(stack.Tags) < tierTable.GetTierValue(i.MinimumTier) {
			return false
		}
	}
	return true
}

// QualityMultiplier is the multiplier of the stack's best tier, 1.0 without
// a tier table
func QualityMultiplier(stack *item.Stack, tierTable *quality.TierTable) float64 {
	if stack == nil {
		return quality.NeutralMultiplier
	}
	return tierTable.EvaluateQuality(stack.Tags)
}

// Consumption removes Amount from the stack StackID
type Consumption struct {
	StackID string `json:"stackId"`
	Amount  int    `json:"amount"`
}

// Match is the result of matching a recipe against an inventory. Items and
// QualityMultipliers are parallel to the recipe's ingredients.
type Match struct {
	Items              []*item.Stack
	QualityMultipliers []float64
	Consumption        []Consumption
}

// AverageQuality of the match for recipe d
func (m *Match) AverageQuality(d *Definition) float64 {
	return AverageQuality(d, m.QualityMultipliers)
}

// MatchIngredients assigns one inventory stack to each ingredient slot, first
// fit in inventory order. A stack is used at most once and must hold at
// least the slot's amount.
func MatchIngredients(d *Definition, inventory []*item.Stack, tierTable *quality.TierTable) (*Match, error) {
	if d == nil {
		return nil, errors.InvalidArgument("recipe is required")
	}

	m := &Match{
		Items:              make([]*item.Stack, len(d.Ingredients)),
		QualityMultipliers: make([]float64, len(d.Ingredients)),
	}
	used := make(map[int]bool, len(d.Ingredients))

	for slot, ing := range d.Ingredients {
		if ing == nil {
			return nil, errors.InvalidArgumentf("recipe %s has an empty ingredient slot %d", d.ID, slot)
		}
		base := ing.Common()

		matched := -1
		for idx, stack := range inventory {
			if used[idx] || stack == nil || stack.DefinitionID == "" {
				continue
			}
			if !ing.Satisfies(stack, tierTable) {
				continue
			}
			if stack.Amount < base.Amount {
				continue
			}
			matched = idx
			break
		}
		if matched < 0 {
			return nil, errors.FailedPreconditionf("recipe %s: no item satisfies ingredient slot %d", d.ID, slot).
				WithMeta("slot", slot)
		}

		used[matched] = true
		stack := inventory[matched]
		m.Items[slot] = stack
		m.QualityMultipliers[slot] = QualityMultiplier(stack, tierTable)
		if base.ConsumeOnCraft {
			m.Consumption = append(m.Consumption, Consumption{StackID: stack.ID, Amount: base.Amount})
		}
	}

	return m, nil
}

// Consume returns the inventory with the consumption plan applied. Emptied
// stacks are removed; the input slice and stacks are not modified.
func Consume(inventory []*item.Stack, plan []Consumption) []*item.Stack {
	take := make(map[string]int, len(plan))
	for _, c := range plan {
		take[c.StackID] += c.Amount
	}

	out := make([]*item.Stack, 0, len(inventory))
	for _, stack := range inventory {
		if stack == nil {
			continue
		}
		n, ok := take[stack.ID]
		if !ok {
			out = append(out, stack)
			continue
		}
		if stack.Amount <= n {
			continue
		}
		left := *stack
		left.Amount = stack.Amount - n
		out = append(out, &left)
	}
	return out
}

var (
	_ Ingredient = (*ItemDef)(nil)
	_ Ingredient = (*TagsIngredient)(nil)
)
