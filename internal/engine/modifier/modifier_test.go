package modifier_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/iniside/velesarc-craft/internal/engine/modifier"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
)

type ModifierTestSuite struct {
	suite.Suite
	src rng.Source
}

func TestModifierSuite(t *testing.T) {
	suite.Run(t, new(ModifierTestSuite))
}

func (s *ModifierTestSuite) SetupTest() {
	s.src = rng.NewScripted(0.5)
}

func (s *ModifierTestSuite) TestMatchesTriggerTags() {
	b := modifier.DefaultBase()
	s.True(b.MatchesTriggerTags(tags.Container{}))

	b.TriggerTags = tags.New("Resource.Metal", "Element.Fire")
	s.True(b.MatchesTriggerTags(tags.New("Resource.Metal.Iron", "Element.Fire")))
	s.False(b.MatchesTriggerTags(tags.New("Resource.Metal.Iron")))
}

func (s *ModifierTestSuite) TestStatsScaleWithQuality() {
	m := &modifier.Stats{
		Base: modifier.Base{QualityScalingFactor: 0.5},
		Stat: item.StatModifier{Attribute: "Damage", Value: 10, ModType: item.ModAdditive},
	}

	results := m.Collect(tags.Container{}, 3.0, s.src)
	s.Require().Len(results, 1)
	s.Equal(modifier.ResultStat, results[0].Kind)
	s.InDelta(20.0, results[0].Stat.Value, 1e-9)
	s.Equal("Damage", results[0].Stat.Attribute)
	s.Equal(10.0, m.Stat.Value)
}

func (s *ModifierTestSuite) TestQualityGate() {
	m := &modifier.Stats{
		Base: modifier.Base{MinQualityThreshold: 2, QualityScalingFactor: 1},
		Stat: item.StatModifier{Attribute: "Armor", Value: 1},
	}

	s.Empty(m.Collect(tags.Container{}, 1.9, s.src))
	s.Len(m.Collect(tags.Container{}, 2.0, s.src), 1)
}

func (s *ModifierTestSuite) TestApplyOnlyTouchesOutput() {
	aggregated := tags.New("Element.Fire")
	out := &item.Spec{ID: "out"}

	mods := []modifier.CraftModifier{
		&modifier.Stats{Base: modifier.DefaultBase(), Stat: item.StatModifier{Attribute: "Heat", Value: 2}},
		&modifier.Abilities{Base: modifier.DefaultBase(), Ability: item.AbilityGrant{Class: "GA_Ignite"}},
		&modifier.Effects{
			Base:   modifier.Base{TriggerTags: tags.New("Element.Fire")},
			Effect: item.EffectGrant{Class: "GE_Burn"},
		},
		&modifier.Effects{
			Base:   modifier.Base{TriggerTags: tags.New("Element.Ice")},
			Effect: item.EffectGrant{Class: "GE_Chill"},
		},
	}
	for _, m := range mods {
		m.Apply(out, aggregated, 1.0, s.src)
	}

	s.Len(out.Stats, 1)
	s.Equal([]item.AbilityGrant{{Class: "GA_Ignite"}}, out.Abilities)
	s.Equal([]item.EffectGrant{{Class: "GE_Burn"}}, out.Effects)
	s.Equal([]string{"Element.Fire"}, aggregated.Strings())
}

func (s *ModifierTestSuite) TestEmptyClassProducesNothing() {
	s.Empty((&modifier.Abilities{}).Collect(tags.Container{}, 1, s.src))
	s.Empty((&modifier.Effects{}).Collect(tags.Container{}, 1, s.src))
}
