package craftqueue_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/iniside/velesarc-craft/internal/entities/station"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/errors"
	craftqueue "github.com/iniside/velesarc-craft/internal/repositories/craft_queue"
	"github.com/iniside/velesarc-craft/internal/testutils"
)

const (
	testStationID = "station_forge"
	testEntryKey  = "craft_queue:entry:entry_1"
	testIndexKey  = "craft_queue:station:station_forge"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	repo      craftqueue.Repository
	ctx       context.Context
	start     time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.miniRedis = mr

	repo, err := craftqueue.NewRedis(&craftqueue.RedisConfig{Client: client})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
	s.start = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) entry(id string, priority int) *station.QueueEntry {
	return &station.QueueEntry{
		EntryID:        id,
		StationID:      testStationID,
		RecipeID:       "recipes/iron_sword",
		Amount:         2,
		Priority:       priority,
		StartTimestamp: s.start,
		TimeMode:       station.TimeModeAutoTick,
		Ingredients: []station.MatchedIngredient{
			{
				Slot:              0,
				DefinitionID:      "items/iron_ingot",
				Tags:              tags.FromStrings("Resource.Metal.Iron", "Quality.Tier.Fine"),
				QualityMultiplier: 1.25,
				ConsumedAmount:    3,
			},
		},
	}
}

func (s *RedisRepositoryTestSuite) TestNewRedis() {
	_, err := craftqueue.NewRedis(nil)
	s.Error(err)
	s.True(errors.IsInvalidArgument(err))

	_, err = craftqueue.NewRedis(&craftqueue.RedisConfig{})
	s.Error(err)
	s.Contains(err.Error(), "redis client is required")
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	in := s.entry("entry_1", 0)

	out, err := s.repo.Create(s.ctx, craftqueue.CreateInput{Entry: in})
	s.Require().NoError(err)
	s.Equal(in, out.Entry)

	s.True(s.miniRedis.Exists(testEntryKey))
	members, err := s.miniRedis.ZMembers(testIndexKey)
	s.Require().NoError(err)
	s.Equal([]string{"entry_1"}, members)

	got, err := s.repo.Get(s.ctx, craftqueue.GetInput{StationID: testStationID, EntryID: "entry_1"})
	s.Require().NoError(err)
	s.Equal("recipes/iron_sword", got.Entry.RecipeID)
	s.Equal(2, got.Entry.Amount)
	s.True(s.start.Equal(got.Entry.StartTimestamp))
	s.Require().Len(got.Entry.Ingredients, 1)
	s.Equal(3, got.Entry.Ingredients[0].ConsumedAmount)
	s.InDelta(1.25, got.Entry.Ingredients[0].QualityMultiplier, 1e-9)
	s.True(got.Entry.Ingredients[0].Tags.HasTagExact("Quality.Tier.Fine"))
}

func (s *RedisRepositoryTestSuite) TestCreateDuplicate() {
	_, err := s.repo.Create(s.ctx, craftqueue.CreateInput{Entry: s.entry("entry_1", 0)})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, craftqueue.CreateInput{Entry: s.entry("entry_1", 1)})
	s.Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	testCases := []struct {
		name  string
		entry *station.QueueEntry
	}{
		{name: "nil entry"},
		{name: "missing entry id", entry: &station.QueueEntry{StationID: testStationID}},
		{name: "missing station id", entry: &station.QueueEntry{EntryID: "entry_1"}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.repo.Create(s.ctx, craftqueue.CreateInput{Entry: tc.entry})
			s.Error(err)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, craftqueue.GetInput{StationID: testStationID, EntryID: "missing"})
	s.Error(err)
	s.True(errors.IsNotFound(err))
	s.Equal("missing", errors.GetMeta(err)[errors.MetaEntryID])
}

func (s *RedisRepositoryTestSuite) TestGetOtherStation() {
	_, err := s.repo.Create(s.ctx, craftqueue.CreateInput{Entry: s.entry("entry_1", 0)})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, craftqueue.GetInput{StationID: "station_loom", EntryID: "entry_1"})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	e := s.entry("entry_1", 0)
	_, err := s.repo.Create(s.ctx, craftqueue.CreateInput{Entry: e})
	s.Require().NoError(err)

	e.CompletedAmount = 1
	e.ElapsedTickTime = 500 * time.Millisecond
	_, err = s.repo.Update(s.ctx, craftqueue.UpdateInput{Entry: e})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, craftqueue.GetInput{StationID: testStationID, EntryID: "entry_1"})
	s.Require().NoError(err)
	s.Equal(1, got.Entry.CompletedAmount)
	s.Equal(500*time.Millisecond, got.Entry.ElapsedTickTime)

	_, err = s.repo.Update(s.ctx, craftqueue.UpdateInput{Entry: s.entry("entry_2", 1)})
	s.Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestListByStationOrdersByPriority() {
	for _, e := range []*station.QueueEntry{
		s.entry("entry_c", 2),
		s.entry("entry_a", 0),
		s.entry("entry_b", 1),
	} {
		_, err := s.repo.Create(s.ctx, craftqueue.CreateInput{Entry: e})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListByStation(s.ctx, craftqueue.ListByStationInput{StationID: testStationID})
	s.Require().NoError(err)
	s.Require().Len(out.Entries, 3)
	s.Equal("entry_a", out.Entries[0].EntryID)
	s.Equal("entry_b", out.Entries[1].EntryID)
	s.Equal("entry_c", out.Entries[2].EntryID)
}

func (s *RedisRepositoryTestSuite) TestListByStationEmpty() {
	out, err := s.repo.ListByStation(s.ctx, craftqueue.ListByStationInput{StationID: testStationID})
	s.Require().NoError(err)
	s.Empty(out.Entries)

	_, err = s.repo.ListByStation(s.ctx, craftqueue.ListByStationInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestListByStationDropsDanglingIndex() {
	_, err := s.repo.Create(s.ctx, craftqueue.CreateInput{Entry: s.entry("entry_1", 0)})
	s.Require().NoError(err)
	s.miniRedis.Del(testEntryKey)

	out, err := s.repo.ListByStation(s.ctx, craftqueue.ListByStationInput{StationID: testStationID})
	s.Require().NoError(err)
	s.Empty(out.Entries)
	s.False(s.miniRedis.Exists(testIndexKey))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, craftqueue.CreateInput{Entry: s.entry("entry_1", 0)})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, craftqueue.DeleteInput{StationID: testStationID, EntryID: "entry_1"})
	s.Require().NoError(err)
	s.False(s.miniRedis.Exists(testEntryKey))
	s.False(s.miniRedis.Exists(testIndexKey))

	_, err = s.repo.Delete(s.ctx, craftqueue.DeleteInput{StationID: testStationID, EntryID: "entry_1"})
	s.True(errors.IsNotFound(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
