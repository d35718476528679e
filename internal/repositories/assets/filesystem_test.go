package assets_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/repositories/assets"
)

type FilesystemRepositoryTestSuite struct {
	suite.Suite
	ctx  context.Context
	root string
	repo assets.Repository
}

func TestFilesystemRepositorySuite(t *testing.T) {
	suite.Run(t, new(FilesystemRepositoryTestSuite))
}

func (s *FilesystemRepositoryTestSuite) write(rel, body string) {
	name := filepath.Join(s.root, filepath.FromSlash(rel))
	s.Require().NoError(os.MkdirAll(filepath.Dir(name), 0o755))
	s.Require().NoError(os.WriteFile(name, []byte(body), 0o644))
}

func (s *FilesystemRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.root = s.T().TempDir()

	s.write("recipes/iron_sword.json", `{"$type":"ArcRecipeDefinition","id":"recipes/iron_sword"}`)
	s.write("items/metals.json", `[
		{"$type":"ArcItemDefinition","id":"items/iron_ingot","tags":["Resource.Metal.Iron"]},
		{"$type":"ArcItemDefinition","tags":["Resource.Metal.Gold"]}
	]`)
	s.write("README.md", "not an asset")

	repo, err := assets.NewFilesystemRepository(&assets.FilesystemConfig{Root: s.root})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *FilesystemRepositoryTestSuite) TestRootMustExist() {
	_, err := assets.NewFilesystemRepository(&assets.FilesystemConfig{Root: filepath.Join(s.root, "nope")})
	s.Require().Error(err)

	_, err = assets.NewFilesystemRepository(&assets.FilesystemConfig{})
	s.Require().Error(err)
}

func (s *FilesystemRepositoryTestSuite) TestList() {
	out, err := s.repo.List(s.ctx, assets.ListInput{})
	s.Require().NoError(err)
	s.Equal([]assets.Summary{
		{Path: "items/iron_ingot", Type: "ArcItemDefinition"},
		{Path: "items/metals#1", Type: "ArcItemDefinition"},
		{Path: "recipes/iron_sword", Type: "ArcRecipeDefinition"},
	}, out.Summaries)

	out, err = s.repo.List(s.ctx, assets.ListInput{Type: "ArcRecipeDefinition"})
	s.Require().NoError(err)
	s.Len(out.Summaries, 1)
}

func (s *FilesystemRepositoryTestSuite) TestGet() {
	got, err := s.repo.Get(s.ctx, assets.GetInput{Path: "recipes/iron_sword"})
	s.Require().NoError(err)
	s.Equal("ArcRecipeDefinition", got.Record.Type)

	got, err = s.repo.Get(s.ctx, assets.GetInput{Path: "items/iron_ingot"})
	s.Require().NoError(err)
	s.Contains(string(got.Record.Body), "Resource.Metal.Iron")

	_, err = s.repo.Get(s.ctx, assets.GetInput{Path: "items/missing"})
	s.True(errors.IsNotFound(err))
}

func (s *FilesystemRepositoryTestSuite) TestPutAndDelete() {
	out, err := s.repo.Put(s.ctx, assets.PutInput{Record: &assets.Record{
		Path: "pools/affixes",
		Type: "ArcRandomPoolDefinition",
		Body: []byte(`{"$type":"ArcRandomPoolDefinition","entries":[]}`),
	}})
	s.Require().NoError(err)
	s.True(out.Created)
	s.FileExists(filepath.Join(s.root, "pools", "affixes.json"))

	s.Require().NoError(s.repo.Delete(s.ctx, assets.DeleteInput{Path: "pools/affixes"}))
	s.NoFileExists(filepath.Join(s.root, "pools", "affixes.json"))

	err = s.repo.Delete(s.ctx, assets.DeleteInput{Path: "items/iron_ingot"})
	s.True(errors.IsFailedPrecondition(err))

	err = s.repo.Delete(s.ctx, assets.DeleteInput{Path: "items/nothing"})
	s.True(errors.IsNotFound(err))
}
