package tags_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/iniside/velesarc-craft/internal/entities/tags"
)

type TagsTestSuite struct {
	suite.Suite
}

func TestTagsSuite(t *testing.T) {
	suite.Run(t, new(TagsTestSuite))
}

func (s *TagsTestSuite) TestHierarchicalMatch() {
	iron := tags.Tag("Resource.Metal.Iron")

	s.True(iron.MatchesTag("Resource.Metal"))
	s.True(iron.MatchesTag("Resource"))
	s.True(iron.MatchesTag(iron))
	s.False(iron.MatchesTag("Resource.Met"))
	s.False(tags.Tag("Resource").MatchesTag("Resource.Metal"))
	s.Equal(tags.Tag("Resource.Metal"), iron.Parent())
}

func (s *TagsTestSuite) TestContainerIsOrderedSet() {
	c := tags.New("B", "A", "B", "")

	s.Equal(2, c.Len())
	s.Equal(tags.Tag("B"), c.First())
	s.Equal([]string{"B", "A"}, c.Strings())
}

func (s *TagsTestSuite) TestHasAllHasAny() {
	c := tags.New("Resource.Metal.Iron", "Quality.Tier.2")

	s.True(c.HasAll(tags.New("Resource.Metal", "Quality")))
	s.False(c.HasAll(tags.New("Resource.Metal", "Resource.Wood")))
	s.True(c.HasAll(tags.Container{}))
	s.False(c.HasAny(tags.Container{}))
	s.True(c.HasAny(tags.New("Resource.Wood", "Quality.Tier")))

	s.False(c.HasAllExact(tags.New("Resource.Metal")))
	s.True(c.HasAnyExact(tags.New("Quality.Tier.2")))
}

func (s *TagsTestSuite) TestUnion() {
	u := tags.Union(tags.New("A", "B"), tags.New("B", "C"))
	s.Equal([]string{"A", "B", "C"}, u.Strings())
}

func (s *TagsTestSuite) TestContainerJSON() {
	data, err := json.Marshal(tags.New("A.B", "C"))
	s.Require().NoError(err)
	s.JSONEq(`["A.B","C"]`, string(data))

	var back tags.Container
	s.Require().NoError(json.Unmarshal(data, &back))
	s.True(back.HasTagExact("A.B"))
}

func (s *TagsTestSuite) TestQueryMatches() {
	c := tags.New("Resource.Metal.Iron", "Element.Fire")

	testCases := []struct {
		name     string
		query    tags.Query
		expected bool
	}{
		{"any hierarchical", tags.AnyOf("Resource.Metal", "Resource.Wood"), true},
		{"all hierarchical", tags.AllOf("Resource.Metal", "Element"), true},
		{"all missing one", tags.AllOf("Resource.Metal", "Element.Ice"), false},
		{"none", tags.NoneOf("Element.Ice"), true},
		{"none blocked", tags.NoneOf("Element"), false},
		{"exact any", tags.Query{Type: tags.QueryAnyTagsExactMatch, Tags: tags.New("Resource.Metal")}, false},
		{"exact all", tags.Query{Type: tags.QueryAllTagsExactMatch, Tags: tags.New("Element.Fire")}, true},
		{"and of or", tags.AllExpr(tags.AnyOf("Resource.Wood", "Resource.Metal"), tags.NoneOf("Element.Ice")), true},
		{"any expr none match", tags.AnyExpr(tags.AnyOf("Resource.Wood")), false},
		{"no expr", tags.Query{Type: tags.QueryNoExprMatch, Expressions: []tags.Query{tags.AnyOf("Element.Ice")}}, true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, tc.query.Matches(c))
		})
	}
}

func (s *TagsTestSuite) TestQueryIsEmpty() {
	s.True(tags.Query{}.IsEmpty())
	s.True(tags.AnyOf().IsEmpty())
	s.True(tags.AllExpr().IsEmpty())
	s.False(tags.AnyOf("A").IsEmpty())
	s.False(tags.AllExpr(tags.AnyOf("A")).IsEmpty())
}

func (s *TagsTestSuite) TestQueryAllTags() {
	q := tags.AllExpr(tags.AnyOf("A", "B"), tags.NoneOf("C"))
	s.Equal([]string{"A", "B", "C"}, q.AllTags().Strings())
}
