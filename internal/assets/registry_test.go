package assets_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/iniside/velesarc-craft/internal/assets"
	"github.com/iniside/velesarc-craft/internal/engine/material"
	"github.com/iniside/velesarc-craft/internal/engine/randompool"
	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/engine/slots"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/errors"
	assetsrepo "github.com/iniside/velesarc-craft/internal/repositories/assets"
)

const (
	tierTableJSON = `{
		"$type": "ArcQualityTierTable",
		"name": "Standard",
		"tiers": [
			{"tag": "Quality.Common", "value": 1, "multiplier": 1.0},
			{"tag": "Quality.Rare", "value": 3, "multiplier": 1.5}
		]
	}`

	itemsJSON = `[
		{"$type": "ArcItemDefinition", "id": "items/iron_ingot", "tags": ["Resource.Metal.Iron"],
		 "stats": [{"attribute": "Hardness", "value": 2}]},
		{"$type": "ArcItemDefinition", "id": "items/iron_sword", "tags": ["Item.Weapon.Sword"]}
	]`

	poolJSON = `{
		"$type": "ArcRandomPoolDefinition",
		"name": "Affixes",
		"entries": [
			{"name": "Sharp", "baseWeight": 2,
			 "modifiers": [{"type": "Stats", "stat": {"attribute": "Damage", "value": 3}}]},
			{"name": "Gold Bonus", "minQuality": 3, "cost": 5,
			 "modifiers": [{"type": "Bogus"}]}
		]
	}`

	presetJSON = `{
		"$type": "ArcQualityBandPreset",
		"name": "Standard",
		"qualityBands": [
			{"name": "Crude", "modifiers": [{"type": "Stats", "stat": {"attribute": "Hardness", "value": 1}}]},
			{"name": "Fine", "minQuality": 1.5, "baseWeight": 0.5, "qualityWeightBias": 1,
			 "modifiers": [{"type": "Stats", "stat": {"attribute": "Hardness", "value": 3}}]}
		]
	}`

	tableJSON = `{
		"$type": "ArcMaterialPropertyTable",
		"name": "Metals",
		"defaultTierTable": "tiers/standard",
		"rules": [
			{"name": "Iron",
			 "tagQuery": {"type": "AnyTagsMatch", "tags": ["Resource.Metal.Iron"]},
			 "qualityBandPreset": "presets/standard",
			 "outputTags": ["Slot.Material"]}
		]
	}`

	recipeJSON = `{
		"$type": "ArcRecipeDefinition",
		"id": "recipes/iron_sword",
		"name": "Iron Sword",
		"craftTime": 2.5,
		"tags": ["Recipe.Weapon"],
		"requiredStationTags": ["Station.Forge"],
		"qualityTierTable": "tiers/standard",
		"qualityAffectsLevel": true,
		"ingredients": [
			{"type": "ItemDef", "itemDefinition": "items/iron_ingot", "amount": 2},
			{"type": "Tags", "requiredTags": ["Resource.Metal"], "denyTags": ["Resource.Metal.Gold"],
			 "minimumTier": "Quality.Common", "consume": false}
		],
		"output": {
			"itemDefinition": "items/iron_sword",
			"modifiers": [
				{"type": "Stats", "slotTag": "Slot.Primary", "weight": 2,
				 "stat": {"attribute": "Damage", "value": 10, "modType": "Multiply"}},
				{"type": "RandomPool", "poolDefinition": "pools/affixes", "selectionMode": "Budget", "baseBudget": 4},
				{"type": "MaterialProperties", "propertyTable": "tables/metals", "baseIngredientCount": 1},
				{"type": "TransferStats", "ingredientSlot": 0},
				{"type": "Random", "chooserTable": "/Game/Choosers/Old"}
			]
		},
		"modifierSlots": [{"slotTag": "Slot.Primary"}],
		"maxUsableSlots": 2
	}`
)

type RegistryTestSuite struct {
	suite.Suite
	ctx      context.Context
	root     string
	registry *assets.Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) write(rel, body string) {
	name := filepath.Join(s.root, filepath.FromSlash(rel))
	s.Require().NoError(os.MkdirAll(filepath.Dir(name), 0o755))
	s.Require().NoError(os.WriteFile(name, []byte(body), 0o644))
}

func (s *RegistryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.root = s.T().TempDir()

	s.write("tiers/standard.json", tierTableJSON)
	s.write("items/metals.json", itemsJSON)
	s.write("pools/affixes.json", poolJSON)
	s.write("presets/standard.json", presetJSON)
	s.write("tables/metals.json", tableJSON)
	s.write("recipes/iron_sword.json", recipeJSON)

	store, err := assetsrepo.NewFilesystemRepository(&assetsrepo.FilesystemConfig{Root: s.root})
	s.Require().NoError(err)

	s.registry, err = assets.NewRegistry(&assets.Config{Store: store})
	s.Require().NoError(err)
}

func (s *RegistryTestSuite) TestNewRegistryValidation() {
	_, err := assets.NewRegistry(nil)
	s.Require().Error(err)

	_, err = assets.NewRegistry(&assets.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid config")

	store, err := assetsrepo.NewFilesystemRepository(&assetsrepo.FilesystemConfig{Root: s.root})
	s.Require().NoError(err)
	_, err = assets.NewRegistry(&assets.Config{Store: store, CacheTTL: -time.Second})
	s.Require().Error(err)
}

func (s *RegistryTestSuite) TestRecipeDecodeAndBind() {
	r, err := s.registry.Recipe(s.ctx, "recipes/iron_sword")
	s.Require().NoError(err)

	s.Equal("recipes/iron_sword", r.ID)
	s.Equal("Iron Sword", r.Name)
	s.Equal(2500*time.Millisecond, r.CraftTime)
	s.True(r.QualityAffectsLevel)
	s.Equal(slots.HighestWeight, r.SlotSelectionMode)
	s.Equal(2, r.MaxUsableSlots)
	s.Equal(1, r.OutputAmount)
	s.Equal(1, r.OutputLevel)

	s.Require().NotNil(r.OutputItemDefinition.Get())
	s.Equal("items/iron_sword", r.OutputItemDefinition.Get().ID)
	s.Require().NotNil(r.TierTable())
	s.Len(r.TierTable().Tiers, 2)

	s.Require().Len(r.Ingredients, 2)
	byDef, ok := r.Ingredients[0].(*recipe.ItemDef)
	s.Require().True(ok)
	s.Equal("items/iron_ingot", byDef.ItemDefinition)
	s.Equal(2, byDef.Amount)
	s.True(byDef.ConsumeOnCraft)

	byTags, ok := r.Ingredients[1].(*recipe.TagsIngredient)
	s.Require().True(ok)
	s.Equal(1, byTags.Amount)
	s.False(byTags.ConsumeOnCraft)
	s.Equal(tags.Tag("Quality.Common"), byTags.MinimumTier)
	s.Equal([]string{"Resource.Metal.Gold"}, byTags.DenyTags.Strings())

	// the unknown "Random" modifier is skipped
	s.Require().Len(r.OutputModifiers, 4)

	stats, ok := r.OutputModifiers[0].(*recipe.Stats)
	s.Require().True(ok)
	s.Equal(tags.Tag("Slot.Primary"), stats.SlotTag)
	s.Equal(2.0, stats.Weight)
	s.Equal(1.0, stats.QualityScalingFactor)
	s.Equal(item.ModMultiply, stats.Stat.ModType)

	pool, ok := r.OutputModifiers[1].(*recipe.RandomPool)
	s.Require().True(ok)
	s.Require().NotNil(pool.Pool.Get())
	s.Equal(&randompool.Budget{BaseBudget: 4, BudgetPerQuality: 1}, pool.Mode)

	props, ok := r.OutputModifiers[2].(*recipe.MaterialProperties)
	s.Require().True(ok)
	s.True(props.UseRecipeTierTable)
	s.Equal(1, props.BaseIngredientCount)
	table := props.Table.Get()
	s.Require().NotNil(table)
	s.True(table.DefaultTierTable.IsBound())
	s.Require().Len(table.Rules, 1)
	s.True(table.Rules[0].Preset.IsBound())
	s.Len(table.Rules[0].EffectiveBands(), 2)

	transfer, ok := r.OutputModifiers[3].(*recipe.TransferStats)
	s.Require().True(ok)
	s.Equal(1.0, transfer.TransferScale)
	s.True(transfer.ScaleByQuality)
}

func (s *RegistryTestSuite) TestPoolDefaults() {
	p, err := s.registry.Pool(s.ctx, "pools/affixes")
	s.Require().NoError(err)
	s.Require().Len(p.Entries, 2)

	sharp := p.Entries[0]
	s.Equal(2.0, sharp.BaseWeight)
	s.Equal(1.0, sharp.Cost)
	s.Len(sharp.Modifiers, 1)

	gold := p.Entries[1]
	s.Equal(3.0, gold.MinQualityThreshold)
	s.Equal(1.0, gold.BaseWeight)
	s.Equal(5.0, gold.Cost)
	s.Equal(1.0, gold.ValueScale)
	s.True(gold.ScaleByQuality)
	s.Empty(gold.Modifiers)
}

func (s *RegistryTestSuite) TestSimpleRandomDefaults() {
	s.write("recipes/plain.json", `{
		"$type": "ArcRecipeDefinition",
		"output": {"modifiers": [{"type": "RandomPool", "poolDefinition": "pools/affixes", "maxSelections": 0}]}
	}`)

	r, err := s.registry.Recipe(s.ctx, "recipes/plain")
	s.Require().NoError(err)
	s.Equal("recipes/plain", r.ID)
	s.Equal(recipe.DefaultCraftTime, r.CraftTime)

	pool := r.OutputModifiers[0].(*recipe.RandomPool)
	s.Equal(&randompool.SimpleRandom{MaxSelections: 1, QualityBonusThreshold: 2}, pool.Mode)
}

func (s *RegistryTestSuite) TestNotFoundSuggestsClosestPath() {
	_, err := s.registry.Load(s.ctx, "recipes/iron_swrd")
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Equal("recipes/iron_sword", errors.GetSuggestion(err))
	s.Equal("recipes/iron_swrd", errors.GetMeta(err)[errors.MetaAssetPath])
}

func (s *RegistryTestSuite) TestWrongTypeGetter() {
	_, err := s.registry.Recipe(s.ctx, "items/iron_ingot")
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RegistryTestSuite) TestMissingReferenceStaysUnbound() {
	s.write("recipes/orphan.json", `{
		"$type": "ArcRecipeDefinition",
		"ingredients": [{"type": "ItemDef", "itemDefinition": "items/iron_ingot"}],
		"output": {"itemDefinition": "items/ghost"}
	}`)

	r, err := s.registry.Recipe(s.ctx, "recipes/orphan")
	s.Require().NoError(err)
	s.True(r.OutputItemDefinition.IsSet())
	s.Nil(r.OutputItemDefinition.Get())
}

func (s *RegistryTestSuite) TestReferenceCycleStaysUnbound() {
	s.write("pools/loop.json", `{
		"$type": "ArcRandomPoolDefinition",
		"entries": [{"name": "Again", "modifiers": [{"type": "RandomPool", "poolDefinition": "pools/loop"}]}]
	}`)

	p, err := s.registry.Pool(s.ctx, "pools/loop")
	s.Require().NoError(err)
	nested, ok := p.Entries[0].Modifiers[0].(*randompool.Modifier)
	s.Require().True(ok)
	s.False(nested.Pool.IsBound())
}

func (s *RegistryTestSuite) TestLoadIsCachedUntilInvalidate() {
	first, err := s.registry.Table(s.ctx, "tables/metals")
	s.Require().NoError(err)

	s.Require().NoError(os.Remove(filepath.Join(s.root, "tables", "metals.json")))

	second, err := s.registry.Table(s.ctx, "tables/metals")
	s.Require().NoError(err)
	s.Same(first, second)

	s.registry.Invalidate()
	_, err = s.registry.Table(s.ctx, "tables/metals")
	s.True(errors.IsNotFound(err))
}

func (s *RegistryTestSuite) TestLoadAsync() {
	var got []assets.LoadResult
	for res := range s.registry.LoadAsync(s.ctx, "presets/standard", "nope/missing", "tiers/standard") {
		got = append(got, res)
	}

	s.Require().Len(got, 3)
	s.Equal("presets/standard", got[0].Path)
	s.NoError(got[0].Err)
	s.IsType(&material.Preset{}, got[0].Asset)
	s.True(errors.IsNotFound(got[1].Err))
	s.NoError(got[2].Err)
}

func (s *RegistryTestSuite) TestPathsAndListRecipes() {
	paths, err := s.registry.Paths(s.ctx, assets.TypeItem)
	s.Require().NoError(err)
	s.Equal([]string{"items/iron_ingot", "items/iron_sword"}, paths)

	recipes, err := s.registry.ListRecipes(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(recipes, 1)
	s.Equal("recipes/iron_sword", recipes[0].ID)
}

func (s *RegistryTestSuite) TestValidate() {
	report, err := s.registry.Validate(s.ctx, "recipes/iron_sword")
	s.Require().NoError(err)
	s.True(report.Valid(), report.Errors)
	s.Contains(strings.Join(report.Warnings, "\n"), `unknown tag "Resource.Metal.Gold"`)

	s.write("presets/empty.json", `{"$type": "ArcQualityBandPreset", "qualityBands": [{"name": "Zero", "baseWeight": 0}]}`)
	report, err = s.registry.Validate(s.ctx, "presets/empty")
	s.Require().NoError(err)
	s.False(report.Valid())
	s.Contains(report.Errors, "Zero: BaseWeight must be > 0 (got 0.000)")
}

func (s *RegistryTestSuite) TestImport() {
	created, err := s.registry.Import(s.ctx, "items/gold_ingot",
		[]byte(`{"$type": "ArcItemDefinition", "tags": ["Resource.Metal.Gold"]}`))
	s.Require().NoError(err)
	s.True(created)

	def, err := s.registry.Item(s.ctx, "items/gold_ingot")
	s.Require().NoError(err)
	s.Equal("items/gold_ingot", def.ID)

	_, err = s.registry.Import(s.ctx, "items/bad", []byte(`{"$type": "ArcItemDefinitio"}`))
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.Equal(string(assets.TypeItem), errors.GetSuggestion(err))
}
