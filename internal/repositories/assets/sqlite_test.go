package assets_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/pkg/clock"
	"github.com/iniside/velesarc-craft/internal/repositories/assets"
)

type SQLiteRepositoryTestSuite struct {
	suite.Suite
	ctx   context.Context
	clock *clock.Manual
	repo  assets.Repository
	close func() error
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewManual(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	repo, closeFn, err := assets.NewSQLiteRepository(s.ctx, &assets.SQLiteConfig{
		Path:  filepath.Join(s.T().TempDir(), "assets.db"),
		Clock: s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.close = closeFn
}

func (s *SQLiteRepositoryTestSuite) TearDownTest() {
	if s.close != nil {
		s.Require().NoError(s.close())
	}
}

func (s *SQLiteRepositoryTestSuite) TestConfigValidation() {
	_, _, err := assets.NewSQLiteRepository(s.ctx, &assets.SQLiteConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "invalid config")
}

func (s *SQLiteRepositoryTestSuite) TestPutGetRoundTrip() {
	rec := &assets.Record{
		Path: "recipes/iron_sword",
		Type: "ArcRecipeDefinition",
		Body: []byte(`{"$type":"ArcRecipeDefinition","id":"iron_sword"}`),
	}

	out, err := s.repo.Put(s.ctx, assets.PutInput{Record: rec})
	s.Require().NoError(err)
	s.True(out.Created)

	got, err := s.repo.Get(s.ctx, assets.GetInput{Path: "recipes/iron_sword"})
	s.Require().NoError(err)
	s.Equal("ArcRecipeDefinition", got.Record.Type)
	s.JSONEq(string(rec.Body), string(got.Record.Body))
	s.Equal(s.clock.Now(), got.Record.UpdatedAt)

	s.clock.Advance(time.Minute)
	rec.Body = []byte(`{"$type":"ArcRecipeDefinition","id":"iron_sword","name":"Iron Sword"}`)
	out, err = s.repo.Put(s.ctx, assets.PutInput{Record: rec})
	s.Require().NoError(err)
	s.False(out.Created)

	got, err = s.repo.Get(s.ctx, assets.GetInput{Path: "recipes/iron_sword"})
	s.Require().NoError(err)
	s.Contains(string(got.Record.Body), "Iron Sword")
	s.Equal(s.clock.Now(), got.Record.UpdatedAt)
}

func (s *SQLiteRepositoryTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, assets.GetInput{Path: "recipes/missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
	s.Equal("recipes/missing", errors.GetMeta(err)[errors.MetaAssetPath])
}

func (s *SQLiteRepositoryTestSuite) TestPutValidation() {
	testCases := []struct {
		name   string
		record *assets.Record
	}{
		{"nil record", nil},
		{"empty path", &assets.Record{Type: "T", Body: []byte(`{}`)}},
		{"empty type", &assets.Record{Path: "p", Body: []byte(`{}`)}},
		{"array body", &assets.Record{Path: "p", Type: "T", Body: []byte(`[]`)}},
		{"broken body", &assets.Record{Path: "p", Type: "T", Body: []byte(`{"a":`)}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Put(s.ctx, assets.PutInput{Record: tc.record})
			s.Require().Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *SQLiteRepositoryTestSuite) TestListAndDelete() {
	for _, rec := range []*assets.Record{
		{Path: "tables/metals", Type: "ArcMaterialPropertyTable", Body: []byte(`{}`)},
		{Path: "recipes/b", Type: "ArcRecipeDefinition", Body: []byte(`{}`)},
		{Path: "recipes/a", Type: "ArcRecipeDefinition", Body: []byte(`{}`)},
	} {
		_, err := s.repo.Put(s.ctx, assets.PutInput{Record: rec})
		s.Require().NoError(err)
	}

	all, err := s.repo.List(s.ctx, assets.ListInput{})
	s.Require().NoError(err)
	s.Len(all.Summaries, 3)
	s.Equal("recipes/a", all.Summaries[0].Path)

	recipes, err := s.repo.List(s.ctx, assets.ListInput{Type: "ArcRecipeDefinition"})
	s.Require().NoError(err)
	s.Equal([]assets.Summary{
		{Path: "recipes/a", Type: "ArcRecipeDefinition"},
		{Path: "recipes/b", Type: "ArcRecipeDefinition"},
	}, recipes.Summaries)

	s.Require().NoError(s.repo.Delete(s.ctx, assets.DeleteInput{Path: "recipes/a"}))
	err = s.repo.Delete(s.ctx, assets.DeleteInput{Path: "recipes/a"})
	s.True(errors.IsNotFound(err))
}
