package randompool

import (
	"log/slog"

	"github.com/iniside/velesarc-craft/internal/engine/modifier"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
	"github.com/iniside/velesarc-craft/internal/pkg/softref"
)

// Modifier is a craft modifier that draws from a pool and contributes the
// selected entries' modifiers, each at its own entry quality
type Modifier struct {
	modifier.Base
	Pool softref.Ref[Definition] `json:"poolDefinition"`
	Mode SelectionMode           `json:"-"`
}

// Kind implements modifier.CraftModifier
func (m *Modifier) Kind() modifier.Kind { return modifier.KindRandomPool }

// Common implements modifier.CraftModifier
func (m *Modifier) Common() modifier.Base { return m.Base }

// Select runs the pool and returns the chosen entry indices
func (m *Modifier) Select(aggregatedTags tags.Container, quality float64, src rng.Source) []int {
	if !m.IsEligible(aggregatedTags, quality) {
		return nil
	}
	def := m.Pool.Get()
	if def == nil || len(def.Entries) == 0 {
		if m.Pool.IsSet() && def == nil {
			slog.Debug("random pool not loaded", "pool", m.Pool.Path)
		}
		return nil
	}
	if m.Mode == nil {
		return nil
	}

	ctx := Eligible(def, aggregatedTags, quality)
	if len(ctx.EligibleIndices) == 0 {
		return nil
	}
	return m.Mode.Select(ctx, src)
}

// Collect implements modifier.CraftModifier
func (m *Modifier) Collect(aggregatedTags tags.Container, quality float64, src rng.Source) []modifier.Result {
	selected := m.Select(aggregatedTags, quality, src)
	if len(selected) == 0 {
		return nil
	}

	def := m.Pool.Get()
	var results []modifier.Result
	for _, idx := range selected {
		if idx < 0 || idx >= len(def.Entries) {
			continue
		}
		entry := &def.Entries[idx]
		entryQuality := EntryQuality(entry, aggregatedTags, quality)
		for _, sub := range entry.Modifiers {
			if sub == nil {
				continue
			}
			results = append(results, sub.Collect(aggregatedTags, entryQuality, src)...)
		}
	}
	return results
}

// Apply implements modifier.CraftModifier
func (m *Modifier) Apply(out *item.Spec, aggregatedTags tags.Container, quality float64, src rng.Source) {
	modifier.ApplyResults(out, m.Collect(aggregatedTags, quality, src))
}

var _ modifier.CraftModifier = (*Modifier)(nil)
