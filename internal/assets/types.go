package assets

import (
	"github.com/iniside/velesarc-craft/internal/engine/material"
	"github.com/iniside/velesarc-craft/internal/engine/quality"
	"github.com/iniside/velesarc-craft/internal/engine/randompool"
	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/entities/item"
)

// Type is the "$type" discriminator of an asset document
type Type string

// Asset types
const (
	TypeRecipe    Type = "ArcRecipeDefinition"
	TypeTable     Type = "ArcMaterialPropertyTable"
	TypePreset    Type = "ArcQualityBandPreset"
	TypePool      Type = "ArcRandomPoolDefinition"
	TypeTierTable Type = "ArcQualityTierTable"
	TypeItem      Type = "ArcItemDefinition"
)

// TypeOf returns the asset type of a decoded value, or "" for values no
// codec produces
func TypeOf(v any) Type {
	switch v.(type) {
	case *recipe.Definition:
		return TypeRecipe
	case *material.Table:
		return TypeTable
	case *material.Preset:
		return TypePreset
	case *randompool.Definition:
		return TypePool
	case *quality.TierTable:
		return TypeTierTable
	case *item.Definition:
		return TypeItem
	default:
		return ""
	}
}
