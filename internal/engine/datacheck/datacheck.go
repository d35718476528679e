// Package datacheck validates authored crafting data before it is used.
//
// Checks never stop at the first problem. Errors make the asset unusable;
// warnings flag data that loads but probably does not do what the author
// meant.
package datacheck

import (
	"fmt"
	"strings"

	"github.com/iniside/velesarc-craft/internal/engine/material"
	"github.com/iniside/velesarc-craft/internal/engine/quality"
	"github.com/iniside/velesarc-craft/internal/engine/randompool"
	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/pkg/suggest"
)

// Report collects the findings for one asset
type Report struct {
	Asset    string   `json:"asset"`
	Warnings []string `json:"warnings,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// Warnf records a warning
func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Errorf records an error
func (r *Report) Errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Valid reports whether no errors were found
func (r *Report) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a valid report, otherwise an InvalidArgument error
// listing every problem
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	return errors.InvalidArgumentf("%s: %s", r.Asset, strings.Join(r.Errors, "; ")).
		WithMeta(errors.MetaAssetPath, r.Asset)
}

// Checker validates assets against a known tag dictionary. An empty
// dictionary disables unknown tag warnings.
type Checker struct {
	KnownTags []string
}

// NewChecker returns a checker over the given tag dictionary. Every parent
// of a known tag is known too.
func NewChecker(known tags.Container) *Checker {
	var all tags.Container
	for _, t := range known.Tags() {
		for p := t; p.IsValid(); p = p.Parent() {
			all.Add(p)
		}
	}
	return &Checker{KnownTags: all.Strings()}
}

func (c *Checker) tagKnown(t tags.Tag) bool {
	for _, k := range c.KnownTags {
		if tags.Tag(k).MatchesTag(t) {
			return true
		}
	}
	return false
}

func (c *Checker) checkTags(r *Report, where string, container tags.Container) {
	if len(c.KnownTags) == 0 {
		return
	}
	for _, t := range container.Tags() {
		if c.tagKnown(t) {
			continue
		}
		if s := suggest.Closest(t.String(), c.KnownTags); s != "" {
			r.Warnf("%s: unknown tag %q, did you mean %q?", where, t, s)
		} else {
			r.Warnf("%s: unknown tag %q", where, t)
		}
	}
}

func displayName(name, kind string, idx int) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("%s[%d]", kind, idx)
}

func (c *Checker) checkBands(r *Report, prefix string, bands []material.Band) {
	for i := range bands {
		b := &bands[i]
		name := prefix + displayName(b.Name, "Band", i)
		if b.BaseWeight <= 0 {
			r.Errorf("%s: BaseWeight must be > 0 (got %.3f)", name, b.BaseWeight)
		}
		if len(b.Modifiers) == 0 {
			r.Warnf("%s: band has no modifiers", name)
		}
		if b.MinQuality < 0 {
			r.Errorf("%s: MinQuality must be >= 0 (got %.3f)", name, b.MinQuality)
		}
	}
}

// CheckTable validates a material property table
func (c *Checker) CheckTable(path string, t *material.Table) *Report {
	r := &Report{Asset: path}
	if t == nil {
		r.Errorf("table is nil")
		return r
	}
	if len(t.Rules) == 0 {
		r.Warnf("material property table %q has no rules", t.Name)
	}

	for i := range t.Rules {
		rule := &t.Rules[i]
		name := displayName(rule.Name, "Rule", i)

		if rule.TagQuery.IsEmpty() {
			r.Warnf("%s: tag query is empty, rule matches every craft", name)
		}
		if rule.Preset.IsSet() && rule.Preset.Get() == nil {
			r.Errorf("%s: quality band preset %q is set but cannot be loaded", name, rule.Preset.Path)
		}
		if rule.MaxContributions < 1 {
			r.Errorf("%s: MaxContributions must be >= 1 (got %d)", name, rule.MaxContributions)
		}

		bands := rule.EffectiveBands()
		if len(bands) == 0 {
			r.Warnf("%s: no quality bands defined (inline or preset)", name)
		}
		c.checkBands(r, name+" / ", bands)

		c.checkTags(r, name+" tag query", rule.TagQuery.AllTags())
		c.checkTags(r, name+" required recipe tags", rule.RequiredRecipeTags)
		c.checkTags(r, name+" output tags", rule.OutputTags)
	}

	if t.BaseBandBudget < 0 {
		r.Errorf("BaseBandBudget must be >= 0 (got %.3f)", t.BaseBandBudget)
	}
	if t.BudgetPerQuality < 0 {
		r.Errorf("BudgetPerQuality must be >= 0 (got %.3f)", t.BudgetPerQuality)
	}
	if t.ExtraIngredientWeightBonus < 0 {
		r.Errorf("ExtraIngredientWeightBonus must be >= 0 (got %.3f)", t.ExtraIngredientWeightBonus)
	}
	if t.ExtraTimeWeightBonusCap < 0 {
		r.Errorf("ExtraTimeWeightBonusCap must be >= 0 (got %.3f)", t.ExtraTimeWeightBonusCap)
	}
	if t.MaxActiveRules < 0 {
		r.Errorf("MaxActiveRules must be >= 0 (got %d)", t.MaxActiveRules)
	}
	if t.DefaultTierTable.IsSet() && t.DefaultTierTable.Get() == nil {
		r.Errorf("default tier table %q is set but cannot be loaded", t.DefaultTierTable.Path)
	}
	return r
}

// CheckPreset validates a quality band preset
func (c *Checker) CheckPreset(path string, p *material.Preset) *Report {
	r := &Report{Asset: path}
	if p == nil {
		r.Errorf("preset is nil")
		return r
	}
	if len(p.Bands) == 0 {
		r.Warnf("quality band preset %q has no bands", p.Name)
	}
	c.checkBands(r, "", p.Bands)
	return r
}

// CheckPool validates a random pool definition
func (c *Checker) CheckPool(path string, p *randompool.Definition) *Report {
	r := &Report{Asset: path}
	if p == nil {
		r.Errorf("pool is nil")
		return r
	}
	if len(p.Entries) == 0 {
		r.Warnf("random pool %q has no entries", p.Name)
	}
	for i := range p.Entries {
		e := &p.Entries[i]
		name := displayName(e.DisplayName, "Entry", i)
		if e.BaseWeight <= 0 {
			r.Errorf("%s: BaseWeight must be > 0 (got %.3f)", name, e.BaseWeight)
		}
		if e.Cost < 0 {
			r.Errorf("%s: Cost must be >= 0 (got %.3f)", name, e.Cost)
		}
		if len(e.Modifiers) == 0 {
			r.Warnf("%s: entry has no modifiers", name)
		}
		c.checkTags(r, name+" required tags", e.RequiredIngredientTags)
		c.checkTags(r, name+" deny tags", e.DenyIngredientTags)
	}
	return r
}

// CheckTierTable validates a quality tier table
func (c *Checker) CheckTierTable(path string, t *quality.TierTable) *Report {
	r := &Report{Asset: path}
	if t == nil {
		r.Errorf("tier table is nil")
		return r
	}
	if err := t.Validate(); err != nil {
		r.Errorf("%s", errors.GetMessage(err))
	}
	for _, m := range t.Tiers {
		if m.QualityMultiplier <= 0 {
			r.Warnf("tier %q: quality multiplier %.3f removes all quality", m.TierTag, m.QualityMultiplier)
		}
	}
	return r
}

// CheckRecipe validates a recipe definition
func (c *Checker) CheckRecipe(path string, d *recipe.Definition) *Report {
	r := &Report{Asset: path}
	if d == nil {
		r.Errorf("recipe is nil")
		return r
	}
	if len(d.Ingredients) == 0 {
		r.Errorf("recipe %q has no ingredients", d.ID)
	}
	if !d.OutputItemDefinition.IsSet() {
		r.Errorf("recipe %q has no output item definition", d.ID)
	}
	if d.OutputAmount < 1 {
		r.Errorf("OutputAmount must be >= 1 (got %d)", d.OutputAmount)
	}
	if d.MaxUsableSlots < 0 {
		r.Errorf("MaxUsableSlots must be >= 0 (got %d)", d.MaxUsableSlots)
	}
	if d.CraftTime < 0 {
		r.Errorf("CraftTime must be >= 0 (got %s)", d.CraftTime)
	}

	for i, ing := range d.Ingredients {
		name := fmt.Sprintf("Ingredient[%d]", i)
		if ing == nil {
			r.Errorf("%s: ingredient is empty", name)
			continue
		}
		if ing.Common().Amount < 1 {
			r.Errorf("%s: Amount must be >= 1 (got %d)", name, ing.Common().Amount)
		}
		switch v := ing.(type) {
		case *recipe.ItemDef:
			if v.ItemDefinition == "" {
				r.Errorf("%s: item definition is not set", name)
			}
		case *recipe.TagsIngredient:
			if v.RequiredTags.IsEmpty() {
				r.Warnf("%s: no required tags, any item satisfies the slot", name)
			}
			c.checkTags(r, name+" required tags", v.RequiredTags)
			c.checkTags(r, name+" deny tags", v.DenyTags)
		}
	}

	slotTags := make(map[tags.Tag]bool, len(d.ModifierSlots))
	for _, s := range d.ModifierSlots {
		slotTags[s.SlotTag] = true
	}
	for i, m := range d.OutputModifiers {
		name := fmt.Sprintf("OutputModifier[%d]", i)
		if m == nil {
			r.Errorf("%s: modifier is empty", name)
			continue
		}
		base := m.Common()
		if base.SlotTag.IsValid() && len(d.ModifierSlots) > 0 && !slotTags[base.SlotTag] {
			r.Warnf("%s: slot tag %q has no matching modifier slot and will be dropped", name, base.SlotTag)
		}
		switch v := m.(type) {
		case *recipe.TransferStats:
			if v.IngredientSlot < 0 || v.IngredientSlot >= len(d.Ingredients) {
				r.Errorf("%s: ingredient slot %d out of range", name, v.IngredientSlot)
			}
		case *recipe.RandomPool:
			if !v.Pool.IsSet() {
				r.Errorf("%s: pool definition is not set", name)
			} else if v.Pool.Get() == nil {
				r.Errorf("%s: pool definition %q cannot be loaded", name, v.Pool.Path)
			}
			if v.Mode == nil {
				r.Errorf("%s: selection mode is not set", name)
			}
		case *recipe.MaterialProperties:
			if !v.Table.IsSet() {
				r.Errorf("%s: property table is not set", name)
			} else if v.Table.Get() == nil {
				r.Errorf("%s: property table %q cannot be loaded", name, v.Table.Path)
			}
		}
		c.checkTags(r, name+" trigger tags", base.TriggerTags)
	}

	if d.QualityTierTable.IsSet() && d.TierTable() == nil {
		r.Errorf("quality tier table %q is set but cannot be loaded", d.QualityTierTable.Path)
	}
	return r
}
