package item_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
)

func TestNewStack(t *testing.T) {
	def := &item.Definition{
		ID:    "items/iron_ingot",
		Tags:  tags.FromStrings("Material.Iron"),
		Stats: []item.StatModifier{{Attribute: "Hardness", Value: 4, ModType: item.ModAdditive}},
	}

	st := item.NewStack("stack_1", def, 3, tags.FromStrings("Quality.Fine", "Material.Iron"))

	assert.Equal(t, "stack_1", st.ID)
	assert.Equal(t, "items/iron_ingot", st.DefinitionID)
	assert.Equal(t, 3, st.Amount)
	assert.Equal(t, []string{"Material.Iron", "Quality.Fine"}, st.Tags.Strings())

	st.Stats[0].Value = 10
	assert.Equal(t, 4.0, def.Stats[0].Value, "stack stats must not alias the definition")
}

func TestSpecClone(t *testing.T) {
	spec := &item.Spec{
		ID:           "out_1",
		DefinitionID: "items/iron_sword",
		Level:        2,
		Amount:       1,
		Tags:         tags.FromStrings("Item.Weapon.Sword"),
	}
	spec.AddStat(item.StatModifier{Attribute: "Damage", Value: 10, ModType: item.ModAdditive})
	spec.GrantAbility(item.AbilityGrant{Class: "Ability.Cleave"})
	spec.GrantEffect(item.EffectGrant{Class: "Effect.Burning"})

	clone := spec.Clone()
	assert.Equal(t, spec, clone)

	clone.Stats[0].Value = 99
	clone.Tags.Add("Item.Broken")
	clone.AddStat(item.StatModifier{Attribute: "Weight", Value: 1, ModType: item.ModMultiply})

	assert.Equal(t, 10.0, spec.Stats[0].Value)
	assert.Len(t, spec.Stats, 1)
	assert.False(t, spec.Tags.HasTagExact("Item.Broken"))
	assert.Equal(t, item.EntityType, spec.GetType())
	assert.Equal(t, "out_1", spec.GetID())
}
