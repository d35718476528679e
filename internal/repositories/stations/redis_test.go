package stations_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/station"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/repositories/stations"
	"github.com/iniside/velesarc-craft/internal/testutils"
)

const testStationID = "forge"

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	repo      stations.Repository
	ctx       context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.miniRedis = mr

	repo, err := stations.NewRedis(&stations.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) forge() *station.Station {
	return &station.Station{
		ID:           testStationID,
		Tags:         tags.FromStrings("Station.Forge"),
		TimeMode:     station.TimeModeAutoTick,
		MaxQueueSize: 4,
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedis() {
	_, err := stations.NewRedis(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = stations.NewRedis(&stations.RedisConfig{})
	s.Contains(err.Error(), "redis client is required")
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	_, err := s.repo.Create(s.ctx, stations.CreateInput{Station: s.forge()})
	s.Require().NoError(err)
	s.True(s.miniRedis.Exists("station:forge"))

	got, err := s.repo.Get(s.ctx, stations.GetInput{ID: testStationID})
	s.Require().NoError(err)
	s.Equal(s.forge(), got.Station)

	_, err = s.repo.Create(s.ctx, stations.CreateInput{Station: s.forge()})
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, stations.CreateInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, stations.CreateInput{Station: &station.Station{}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, stations.GetInput{ID: "loom"})
	s.True(errors.IsNotFound(err))
	s.Equal("loom", errors.GetMeta(err)[errors.MetaStationID])
}

func (s *RedisRepositoryTestSuite) TestList() {
	for _, id := range []string{"loom", "anvil"} {
		_, err := s.repo.Create(s.ctx, stations.CreateInput{Station: &station.Station{ID: id}})
		s.Require().NoError(err)
	}
	s.miniRedis.Del("station:loom")

	out, err := s.repo.List(s.ctx, stations.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(out.Stations, 1)
	s.Equal("anvil", out.Stations[0].ID)

	members, err := s.miniRedis.Members("stations:index")
	s.Require().NoError(err)
	s.Equal([]string{"anvil"}, members)
}

func (s *RedisRepositoryTestSuite) TestInventory() {
	out, err := s.repo.GetInventory(s.ctx, stations.GetInventoryInput{StationID: testStationID})
	s.Require().NoError(err)
	s.Empty(out.Items)

	items := []*item.Stack{
		{ID: "stack_1", DefinitionID: "items/iron_ingot", Amount: 3, Tags: tags.FromStrings("Resource.Metal.Iron")},
		{ID: "stack_2", DefinitionID: "items/oak_plank", Amount: 1},
	}
	_, err = s.repo.SaveInventory(s.ctx, stations.SaveInventoryInput{StationID: testStationID, Items: items})
	s.Require().NoError(err)

	out, err = s.repo.GetInventory(s.ctx, stations.GetInventoryInput{StationID: testStationID})
	s.Require().NoError(err)
	s.Equal(items, out.Items)

	_, err = s.repo.SaveInventory(s.ctx, stations.SaveInventoryInput{StationID: testStationID})
	s.Require().NoError(err)
	s.False(s.miniRedis.Exists("station:forge:inventory"))
}

func (s *RedisRepositoryTestSuite) TestOutputs() {
	add, err := s.repo.AddOutputs(s.ctx, stations.AddOutputsInput{
		StationID: testStationID,
		Outputs: []*item.Spec{
			{ID: "out_1", DefinitionID: "items/iron_sword", Level: 1, Amount: 1},
			{ID: "out_2", DefinitionID: "items/iron_sword", Level: 2, Amount: 1},
			{ID: "out_3", DefinitionID: "items/iron_sword", Level: 3, Amount: 1},
		},
	})
	s.Require().NoError(err)
	s.Equal(3, add.Pending)

	list, err := s.repo.ListOutputs(s.ctx, stations.ListOutputsInput{StationID: testStationID})
	s.Require().NoError(err)
	s.Require().Len(list.Outputs, 3)
	s.Equal("out_1", list.Outputs[0].ID)

	taken, err := s.repo.TakeOutputs(s.ctx, stations.TakeOutputsInput{StationID: testStationID, Count: 2})
	s.Require().NoError(err)
	s.Require().Len(taken.Outputs, 2)
	s.Equal("out_1", taken.Outputs[0].ID)
	s.Equal("out_2", taken.Outputs[1].ID)

	taken, err = s.repo.TakeOutputs(s.ctx, stations.TakeOutputsInput{StationID: testStationID})
	s.Require().NoError(err)
	s.Require().Len(taken.Outputs, 1)
	s.Equal(3, taken.Outputs[0].Level)

	taken, err = s.repo.TakeOutputs(s.ctx, stations.TakeOutputsInput{StationID: testStationID})
	s.Require().NoError(err)
	s.Empty(taken.Outputs)

	_, err = s.repo.TakeOutputs(s.ctx, stations.TakeOutputsInput{StationID: testStationID, Count: -1})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
