package assets

import (
	"github.com/iniside/velesarc-craft/internal/engine/material"
	"github.com/iniside/velesarc-craft/internal/engine/modifier"
	"github.com/iniside/velesarc-craft/internal/engine/quality"
	"github.com/iniside/velesarc-craft/internal/engine/randompool"
	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/errors"
)

// doc is one JSON object being written
type doc map[string]any

func wrongType(v any, want Type) error {
	return errors.Internalf("codec for %s received %T", want, v)
}

func tagStrings(c tags.Container) []string {
	if c.IsEmpty() {
		return []string{}
	}
	return c.Strings()
}

func encodeQuery(q tags.Query) doc {
	d := doc{"type": string(q.Type), "tags": tagStrings(q.Tags)}
	if len(q.Expressions) > 0 {
		exprs := make([]doc, len(q.Expressions))
		for i, e := range q.Expressions {
			exprs[i] = encodeQuery(e)
		}
		d["expressions"] = exprs
	}
	return d
}

func encodeBase(d doc, b modifier.Base) {
	d["minQuality"] = b.MinQualityThreshold
	d["triggerTags"] = tagStrings(b.TriggerTags)
	d["weight"] = b.Weight
	d["qualityScaling"] = b.QualityScalingFactor
}

func encodeStat(s item.StatModifier) doc {
	return doc{"attribute": s.Attribute, "value": s.Value, "modType": string(s.ModType)}
}

func encodeAbility(a item.AbilityGrant) doc {
	d := doc{"class": a.Class}
	if a.InputTag.IsValid() {
		d["inputTag"] = a.InputTag.String()
	}
	return d
}

func encodeSelectionMode(d doc, mode randompool.SelectionMode) {
	switch m := mode.(type) {
	case *randompool.Budget:
		d["selectionMode"] = string(randompool.ModeBudget)
		d["allowDuplicates"] = m.AllowDuplicates
		d["baseBudget"] = m.BaseBudget
		d["budgetPerQuality"] = m.BudgetPerQuality
		d["maxBudgetSelections"] = m.MaxBudgetSelections
	case *randompool.SimpleRandom:
		d["selectionMode"] = string(randompool.ModeSimpleRandom)
		d["allowDuplicates"] = m.AllowDuplicates
		d["maxSelections"] = m.MaxSelections
		d["qualityAffectsSelections"] = m.QualityAffectsSelections
		d["qualityBonusThreshold"] = m.QualityBonusThreshold
	}
}

func encodeCraftModifiers(mods []modifier.CraftModifier) []doc {
	out := make([]doc, 0, len(mods))
	for _, m := range mods {
		if m == nil {
			continue
		}
		d := doc{"type": string(m.Kind())}
		encodeBase(d, m.Common())
		switch v := m.(type) {
		case *modifier.Stats:
			d["stat"] = encodeStat(v.Stat)
		case *modifier.Abilities:
			d["ability"] = encodeAbility(v.Ability)
		case *modifier.Effects:
			d["effect"] = doc{"class": v.Effect.Class}
		case *randompool.Modifier:
			d["poolDefinition"] = v.Pool.Path
			encodeSelectionMode(d, v.Mode)
		}
		out = append(out, d)
	}
	return out
}

func encodeBands(bands []material.Band) []doc {
	out := make([]doc, len(bands))
	for i, b := range bands {
		out[i] = doc{
			"name":              b.Name,
			"minQuality":        b.MinQuality,
			"baseWeight":        b.BaseWeight,
			"qualityWeightBias": b.QualityWeightBias,
			"modifiers":         encodeCraftModifiers(b.Modifiers),
		}
	}
	return out
}

func encodeTable(v any) (doc, error) {
	t, ok := v.(*material.Table)
	if !ok {
		return nil, wrongType(v, TypeTable)
	}
	rules := make([]doc, len(t.Rules))
	for i, r := range t.Rules {
		rules[i] = doc{
			"name":               r.Name,
			"tagQuery":           encodeQuery(r.TagQuery),
			"requiredRecipeTags": tagStrings(r.RequiredRecipeTags),
			"priority":           r.Priority,
			"maxContributions":   r.MaxContributions,
			"qualityBands":       encodeBands(r.Bands),
			"qualityBandPreset":  r.Preset.Path,
			"outputTags":         tagStrings(r.OutputTags),
		}
	}
	return doc{
		"name":                       t.Name,
		"rules":                      rules,
		"maxActiveRules":             t.MaxActiveRules,
		"defaultTierTable":           t.DefaultTierTable.Path,
		"extraIngredientWeightBonus": t.ExtraIngredientWeightBonus,
		"extraTimeWeightBonusCap":    t.ExtraTimeWeightBonusCap,
		"baseBandBudget":             t.BaseBandBudget,
		"budgetPerQuality":           t.BudgetPerQuality,
	}, nil
}

func encodePreset(v any) (doc, error) {
	p, ok := v.(*material.Preset)
	if !ok {
		return nil, wrongType(v, TypePreset)
	}
	return doc{"name": p.Name, "qualityBands": encodeBands(p.Bands)}, nil
}

func encodePool(v any) (doc, error) {
	p, ok := v.(*randompool.Definition)
	if !ok {
		return nil, wrongType(v, TypePool)
	}
	entries := make([]doc, len(p.Entries))
	for i, e := range p.Entries {
		weightMods := make([]doc, len(e.WeightModifiers))
		for j, w := range e.WeightModifiers {
			weightMods[j] = doc{
				"requiredTags":     tagStrings(w.RequiredTags),
				"bonusWeight":      w.BonusWeight,
				"weightMultiplier": w.WeightMultiplier,
			}
		}
		skewRules := make([]doc, len(e.ValueSkewRules))
		for j, s := range e.ValueSkewRules {
			skewRules[j] = doc{
				"requiredTags": tagStrings(s.RequiredTags),
				"valueScale":   s.ValueScale,
				"valueOffset":  s.ValueOffset,
			}
		}
		entries[i] = doc{
			"name":                   e.DisplayName,
			"requiredIngredientTags": tagStrings(e.RequiredIngredientTags),
			"denyIngredientTags":     tagStrings(e.DenyIngredientTags),
			"minQuality":             e.MinQualityThreshold,
			"baseWeight":             e.BaseWeight,
			"qualityWeightScaling":   e.QualityWeightScaling,
			"weightModifiers":        weightMods,
			"cost":                   e.Cost,
			"valueScale":             e.ValueScale,
			"valueSkew":              e.ValueSkew,
			"scaleByQuality":         e.ScaleByQuality,
			"valueSkewRules":         skewRules,
			"modifiers":              encodeCraftModifiers(e.Modifiers),
		}
	}
	return doc{"name": p.Name, "entries": entries}, nil
}

func encodeTierTable(v any) (doc, error) {
	t, ok := v.(*quality.TierTable)
	if !ok {
		return nil, wrongType(v, TypeTierTable)
	}
	tiers := make([]doc, len(t.Tiers))
	for i, m := range t.Tiers {
		tiers[i] = doc{
			"tag":        m.TierTag.String(),
			"value":      m.TierValue,
			"multiplier": m.QualityMultiplier,
		}
	}
	return doc{"name": t.Name, "tiers": tiers}, nil
}

func encodeItem(v any) (doc, error) {
	d, ok := v.(*item.Definition)
	if !ok {
		return nil, wrongType(v, TypeItem)
	}
	stats := make([]doc, len(d.Stats))
	for i, s := range d.Stats {
		stats[i] = encodeStat(s)
	}
	return doc{"id": d.ID, "name": d.Name, "tags": tagStrings(d.Tags), "stats": stats}, nil
}

func encodeIngredient(ing recipe.Ingredient) doc {
	base := ing.Common()
	d := doc{
		"type":    string(ing.Kind()),
		"amount":  base.Amount,
		"consume": base.ConsumeOnCraft,
	}
	if base.SlotName != "" {
		d["slotName"] = base.SlotName
	}
	switch v := ing.(type) {
	case *recipe.ItemDef:
		d["itemDefinition"] = v.ItemDefinition
	case *recipe.TagsIngredient:
		d["requiredTags"] = tagStrings(v.RequiredTags)
		d["denyTags"] = tagStrings(v.DenyTags)
		if v.MinimumTier.IsValid() {
			d["minimumTier"] = v.MinimumTier.String()
		}
	}
	return d
}

func encodeOutputModifier(m recipe.OutputModifier) doc {
	base := m.Common()
	d := doc{"type": string(m.Kind())}
	encodeBase(d, base.Base)
	if base.SlotTag.IsValid() {
		d["slotTag"] = base.SlotTag.String()
	}
	switch v := m.(type) {
	case *recipe.Stats:
		d["stat"] = encodeStat(v.Stat)
	case *recipe.Abilities:
		d["ability"] = encodeAbility(v.Ability)
	case *recipe.Effects:
		d["effect"] = doc{"class": v.Effect.Class}
	case *recipe.TransferStats:
		d["ingredientSlot"] = v.IngredientSlot
		d["transferScale"] = v.TransferScale
		d["scaleByQuality"] = v.ScaleByQuality
	case *recipe.RandomPool:
		d["poolDefinition"] = v.Pool.Path
		encodeSelectionMode(d, v.Mode)
	case *recipe.MaterialProperties:
		d["propertyTable"] = v.Table.Path
		d["baseIngredientCount"] = v.BaseIngredientCount
		d["extraCraftTimeBonus"] = v.ExtraCraftTimeBonus
		d["useRecipeTierTable"] = v.UseRecipeTierTable
		d["recipeTags"] = tagStrings(v.RecipeTags)
		if len(v.SlotConfigs) > 0 {
			configs := make([]doc, len(v.SlotConfigs))
			for i, c := range v.SlotConfigs {
				configs[i] = doc{"slotTag": c.SlotTag.String(), "maxCount": c.MaxCount, "mode": string(c.Mode)}
			}
			d["slotConfigs"] = configs
		}
	}
	return d
}

func encodeRecipe(v any) (doc, error) {
	r, ok := v.(*recipe.Definition)
	if !ok {
		return nil, wrongType(v, TypeRecipe)
	}

	ingredients := make([]doc, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if ing != nil {
			ingredients = append(ingredients, encodeIngredient(ing))
		}
	}
	modifiers := make([]doc, 0, len(r.OutputModifiers))
	for _, m := range r.OutputModifiers {
		if m != nil {
			modifiers = append(modifiers, encodeOutputModifier(m))
		}
	}

	d := doc{
		"id":                     r.ID,
		"name":                   r.Name,
		"tags":                   tagStrings(r.Tags),
		"craftTime":              r.CraftTime.Seconds(),
		"requiredStationTags":    tagStrings(r.RequiredStationTags),
		"requiredInstigatorTags": tagStrings(r.RequiredInstigatorTags),
		"ingredients":            ingredients,
		"output": doc{
			"itemDefinition": r.OutputItemDefinition.Path,
			"amount":         r.OutputAmount,
			"level":          r.OutputLevel,
			"modifiers":      modifiers,
		},
		"qualityTierTable":    r.QualityTierTable.Path,
		"qualityAffectsLevel": r.QualityAffectsLevel,
		"maxUsableSlots":      r.MaxUsableSlots,
		"slotSelectionMode":   string(r.SlotSelectionMode),
	}
	if len(r.ModifierSlots) > 0 {
		slotDocs := make([]doc, len(r.ModifierSlots))
		for i, s := range r.ModifierSlots {
			slotDocs[i] = doc{"slotTag": s.SlotTag.String(), "name": s.Name}
		}
		d["modifierSlots"] = slotDocs
	}
	return d, nil
}
