package assets

import (
	"log/slog"
	"math"
	"time"

	"github.com/tidwall/gjson"

	"github.com/iniside/velesarc-craft/internal/engine/material"
	"github.com/iniside/velesarc-craft/internal/engine/modifier"
	"github.com/iniside/velesarc-craft/internal/engine/quality"
	"github.com/iniside/velesarc-craft/internal/engine/randompool"
	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/engine/slots"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/softref"
)

// object reads fields of a JSON object, falling back to authoring defaults
// for absent keys
type object struct {
	gjson.Result
}

func (o object) field(key string) gjson.Result {
	return o.Get(key)
}

// first returns the first of keys present on the object
func (o object) first(keys ...string) gjson.Result {
	for _, k := range keys {
		if v := o.field(k); v.Exists() {
			return v
		}
	}
	return gjson.Result{}
}

func (o object) str(key string) string {
	return o.field(key).String()
}

func (o object) num(key string, def float64) float64 {
	v := o.field(key)
	if !v.Exists() {
		return def
	}
	return v.Float()
}

func (o object) integer(key string, def int) int {
	v := o.field(key)
	if !v.Exists() {
		return def
	}
	return int(v.Int())
}

func (o object) boolean(key string, def bool) bool {
	v := o.field(key)
	if !v.Exists() {
		return def
	}
	return v.Bool()
}

func (o object) tag(key string) tags.Tag {
	return tags.Tag(o.str(key))
}

func (o object) tagList(key string) tags.Container {
	var out tags.Container
	for _, v := range o.field(key).Array() {
		if s := v.String(); s != "" {
			out.Add(tags.Tag(s))
		}
	}
	return out
}

func (o object) objects(key string) []object {
	arr := o.field(key).Array()
	out := make([]object, 0, len(arr))
	for _, v := range arr {
		if v.IsObject() {
			out = append(out, object{v})
		}
	}
	return out
}

func (o object) query(key string) tags.Query {
	v := o.field(key)
	if !v.IsObject() {
		return tags.Query{}
	}
	return decodeQuery(object{v})
}

func decodeQuery(o object) tags.Query {
	q := tags.Query{
		Type: tags.QueryType(o.str("type")),
		Tags: o.tagList("tags"),
	}
	for _, e := range o.objects("expressions") {
		q.Expressions = append(q.Expressions, decodeQuery(e))
	}
	return q
}

func decodeBase(o object) modifier.Base {
	return modifier.Base{
		MinQualityThreshold:  o.num("minQuality", 0),
		TriggerTags:          o.tagList("triggerTags"),
		Weight:               o.num("weight", 1),
		QualityScalingFactor: o.num("qualityScaling", 1),
	}
}

func decodeStat(o object) item.StatModifier {
	s := object{o.field("stat")}
	modType := item.ModType(s.str("modType"))
	if modType == "" {
		modType = item.ModAdditive
	}
	return item.StatModifier{
		Attribute: s.str("attribute"),
		Value:     s.num("value", 0),
		ModType:   modType,
	}
}

func decodeAbility(o object) item.AbilityGrant {
	a := object{o.field("ability")}
	return item.AbilityGrant{Class: a.str("class"), InputTag: a.tag("inputTag")}
}

func decodeEffect(o object) item.EffectGrant {
	return item.EffectGrant{Class: object{o.field("effect")}.str("class")}
}

// decodeSelectionMode reads the flat selection fields of a random pool
// modifier. Anything other than "Budget" is a simple random draw.
func decodeSelectionMode(o object) randompool.SelectionMode {
	if randompool.ModeName(o.str("selectionMode")) == randompool.ModeBudget {
		return &randompool.Budget{
			AllowDuplicates:     o.boolean("allowDuplicates", false),
			BaseBudget:          o.num("baseBudget", 3),
			BudgetPerQuality:    o.num("budgetPerQuality", 1),
			MaxBudgetSelections: o.integer("maxBudgetSelections", 0),
		}
	}
	return &randompool.SimpleRandom{
		MaxSelections:            max(1, o.integer("maxSelections", 1)),
		AllowDuplicates:          o.boolean("allowDuplicates", false),
		QualityAffectsSelections: o.boolean("qualityAffectsSelections", false),
		QualityBonusThreshold:    o.num("qualityBonusThreshold", 2),
	}
}

// decodeCraftModifiers reads band and pool entry modifiers. Unknown types are
// skipped with a warning.
func decodeCraftModifiers(o object, key, where string) []modifier.CraftModifier {
	var out []modifier.CraftModifier
	for i, m := range o.objects(key) {
		base := decodeBase(m)
		switch kind := modifier.Kind(m.str("type")); kind {
		case modifier.KindStats:
			out = append(out, &modifier.Stats{Base: base, Stat: decodeStat(m)})
		case modifier.KindAbilities:
			out = append(out, &modifier.Abilities{Base: base, Ability: decodeAbility(m)})
		case modifier.KindEffects:
			out = append(out, &modifier.Effects{Base: base, Effect: decodeEffect(m)})
		case modifier.KindRandomPool:
			out = append(out, &randompool.Modifier{
				Base: base,
				Pool: softref.To[randompool.Definition](m.str("poolDefinition")),
				Mode: decodeSelectionMode(m),
			})
		default:
			slog.Warn("skipping craft modifier of unknown type",
				"where", where,
				"index", i,
				"type", string(kind))
		}
	}
	return out
}

func decodeBands(o object, where string) []material.Band {
	var out []material.Band
	for _, b := range o.objects("qualityBands") {
		name := b.str("name")
		out = append(out, material.Band{
			Name:              name,
			MinQuality:        b.num("minQuality", 0),
			BaseWeight:        b.num("baseWeight", 1),
			QualityWeightBias: b.num("qualityWeightBias", 0),
			Modifiers:         decodeCraftModifiers(b, "modifiers", where+"/"+name),
		})
	}
	return out
}

func decodeTable(path string, o object) (any, error) {
	t := &material.Table{
		Name:                       o.str("name"),
		MaxActiveRules:             o.integer("maxActiveRules", 0),
		DefaultTierTable:           softref.To[quality.TierTable](o.str("defaultTierTable")),
		ExtraIngredientWeightBonus: o.num("extraIngredientWeightBonus", 0),
		ExtraTimeWeightBonusCap:    o.num("extraTimeWeightBonusCap", 0),
		BaseBandBudget:             o.num("baseBandBudget", 0),
		BudgetPerQuality:           o.num("budgetPerQuality", 0),
	}
	for _, r := range o.objects("rules") {
		name := r.str("name")
		t.Rules = append(t.Rules, material.Rule{
			Name:               name,
			TagQuery:           r.query("tagQuery"),
			RequiredRecipeTags: r.tagList("requiredRecipeTags"),
			Priority:           r.integer("priority", 0),
			MaxContributions:   r.integer("maxContributions", 1),
			Bands:              decodeBands(r, path+"/"+name),
			Preset:             softref.To[material.Preset](r.str("qualityBandPreset")),
			OutputTags:         r.tagList("outputTags"),
		})
	}
	return t, nil
}

func decodePreset(path string, o object) (any, error) {
	return &material.Preset{
		Name:  o.str("name"),
		Bands: decodeBands(o, path),
	}, nil
}

func decodePool(path string, o object) (any, error) {
	p := &randompool.Definition{Name: o.str("name")}
	for _, e := range o.objects("entries") {
		name := e.str("name")
		entry := randompool.Entry{
			DisplayName:            name,
			RequiredIngredientTags: e.tagList("requiredIngredientTags"),
			DenyIngredientTags:     e.tagList("denyIngredientTags"),
			MinQualityThreshold:    e.num("minQuality", 0),
			BaseWeight:             e.num("baseWeight", 1),
			QualityWeightScaling:   e.num("qualityWeightScaling", 0),
			Cost:                   e.num("cost", 1),
			ValueScale:             e.num("valueScale", 1),
			ValueSkew:              e.num("valueSkew", 0),
			ScaleByQuality:         e.boolean("scaleByQuality", true),
			Modifiers:              decodeCraftModifiers(e, "modifiers", path+"/"+name),
		}
		for _, w := range e.objects("weightModifiers") {
			entry.WeightModifiers = append(entry.WeightModifiers, randompool.WeightModifier{
				RequiredTags:     w.tagList("requiredTags"),
				BonusWeight:      w.num("bonusWeight", 0),
				WeightMultiplier: w.num("weightMultiplier", 1),
			})
		}
		for _, s := range e.objects("valueSkewRules") {
			entry.ValueSkewRules = append(entry.ValueSkewRules, randompool.ValueSkewRule{
				RequiredTags: s.tagList("requiredTags"),
				ValueScale:   s.num("valueScale", 1),
				ValueOffset:  s.num("valueOffset", 0),
			})
		}
		p.Entries = append(p.Entries, entry)
	}
	return p, nil
}

func decodeTierTable(_ string, o object) (any, error) {
	t := &quality.TierTable{Name: o.str("name")}
	for _, m := range o.objects("tiers") {
		t.Tiers = append(t.Tiers, quality.TierMapping{
			TierTag:           tags.Tag(m.first("tag", "tierTag").String()),
			TierValue:         int(m.first("value", "tierValue").Int()),
			QualityMultiplier: m.num("multiplier", m.num("qualityMultiplier", 1)),
		})
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func decodeItem(path string, o object) (any, error) {
	d := &item.Definition{
		ID:   o.str("id"),
		Name: o.str("name"),
		Tags: o.tagList("tags"),
	}
	if d.ID == "" {
		d.ID = path
	}
	for _, s := range o.objects("stats") {
		modType := item.ModType(s.str("modType"))
		if modType == "" {
			modType = item.ModAdditive
		}
		d.Stats = append(d.Stats, item.StatModifier{
			Attribute: s.str("attribute"),
			Value:     s.num("value", 0),
			ModType:   modType,
		})
	}
	return d, nil
}

func decodeIngredients(o object, where string) []recipe.Ingredient {
	var out []recipe.Ingredient
	for i, ing := range o.objects("ingredients") {
		base := recipe.IngredientBase{
			Amount:         ing.integer("amount", 1),
			ConsumeOnCraft: ing.boolean("consume", true),
			SlotName:       ing.str("slotName"),
		}
		switch kind := recipe.IngredientKind(ing.str("type")); kind {
		case recipe.IngredientItemDef:
			out = append(out, &recipe.ItemDef{IngredientBase: base, ItemDefinition: ing.str("itemDefinition")})
		case recipe.IngredientTags:
			out = append(out, &recipe.TagsIngredient{
				IngredientBase: base,
				RequiredTags:   ing.tagList("requiredTags"),
				DenyTags:       ing.tagList("denyTags"),
				MinimumTier:    ing.tag("minimumTier"),
			})
		default:
			slog.Warn("skipping ingredient of unknown type",
				"where", where,
				"index", i,
				"type", string(kind))
		}
	}
	return out
}

func decodeOutputModifiers(o object, where string) []recipe.OutputModifier {
	var out []recipe.OutputModifier
	for i, m := range o.objects("modifiers") {
		base := recipe.OutputBase{Base: decodeBase(m), SlotTag: m.tag("slotTag")}
		switch kind := recipe.OutputKind(m.str("type")); kind {
		case recipe.OutputStats:
			out = append(out, &recipe.Stats{OutputBase: base, Stat: decodeStat(m)})
		case recipe.OutputAbilities:
			out = append(out, &recipe.Abilities{OutputBase: base, Ability: decodeAbility(m)})
		case recipe.OutputEffects:
			out = append(out, &recipe.Effects{OutputBase: base, Effect: decodeEffect(m)})
		case recipe.OutputTransferStats:
			out = append(out, &recipe.TransferStats{
				OutputBase:     base,
				IngredientSlot: m.integer("ingredientSlot", 0),
				TransferScale:  m.num("transferScale", 1),
				ScaleByQuality: m.boolean("scaleByQuality", true),
			})
		case recipe.OutputRandomPool:
			out = append(out, &recipe.RandomPool{
				OutputBase: base,
				Pool:       softref.To[randompool.Definition](m.str("poolDefinition")),
				Mode:       decodeSelectionMode(m),
			})
		case recipe.OutputMaterialProperties:
			mp := &recipe.MaterialProperties{
				OutputBase:          base,
				Table:               softref.To[material.Table](m.str("propertyTable")),
				BaseIngredientCount: max(0, m.integer("baseIngredientCount", 0)),
				ExtraCraftTimeBonus: m.num("extraCraftTimeBonus", 0),
				UseRecipeTierTable:  m.boolean("useRecipeTierTable", true),
				RecipeTags:          m.tagList("recipeTags"),
			}
			for _, c := range m.objects("slotConfigs") {
				mode := material.SlotSelection(c.str("mode"))
				if mode == "" {
					mode = material.SlotHighestWeight
				}
				mp.SlotConfigs = append(mp.SlotConfigs, material.SlotConfig{
					SlotTag:  c.tag("slotTag"),
					MaxCount: c.integer("maxCount", 1),
					Mode:     mode,
				})
			}
			out = append(out, mp)
		default:
			slog.Warn("skipping output modifier of unknown type",
				"where", where,
				"index", i,
				"type", string(kind))
		}
	}
	return out
}

func decodeRecipe(path string, o object) (any, error) {
	d := recipe.NewDefinition(o.str("id"))
	if d.ID == "" {
		d.ID = path
	}
	d.Name = o.str("name")
	d.Tags = o.tagList("tags")
	d.RequiredStationTags = o.tagList("requiredStationTags")
	d.RequiredInstigatorTags = o.tagList("requiredInstigatorTags")
	d.QualityTierTable = softref.To[quality.TierTable](o.str("qualityTierTable"))
	d.QualityAffectsLevel = o.boolean("qualityAffectsLevel", false)
	if secs := o.field("craftTime"); secs.Exists() {
		d.CraftTime = time.Duration(math.Round(secs.Float() * float64(time.Second)))
	}
	d.Ingredients = decodeIngredients(o, path)

	out := object{o.field("output")}
	d.OutputItemDefinition = softref.To[item.Definition](out.str("itemDefinition"))
	d.OutputAmount = out.integer("amount", recipe.DefaultOutputAmount)
	d.OutputLevel = out.integer("level", recipe.DefaultOutputLevel)
	d.OutputModifiers = decodeOutputModifiers(out, path)

	for _, s := range o.objects("modifierSlots") {
		d.ModifierSlots = append(d.ModifierSlots, slots.Slot{SlotTag: s.tag("slotTag"), Name: s.str("name")})
	}
	d.MaxUsableSlots = o.integer("maxUsableSlots", 0)
	if mode := slots.Selection(o.str("slotSelectionMode")); mode != "" {
		d.SlotSelectionMode = mode
	}
	return d, nil
}
