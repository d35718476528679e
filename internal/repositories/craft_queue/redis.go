package craftqueue

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/iniside/velesarc-craft/internal/entities/station"
	"github.com/iniside/velesarc-craft/internal/errors"
	redisclient "github.com/iniside/velesarc-craft/internal/redis"
)

const (
	// Key patterns: craft_queue:entry:{entry_id}, craft_queue:station:{station_id}
	entryKeyPrefix   = "craft_queue:entry:"
	stationKeyPrefix = "craft_queue:station:"

	// Error messages
	errEntryNil       = "entry cannot be nil"
	errEntryIDEmpty   = "entry ID cannot be empty"
	errStationIDEmpty = "station ID cannot be empty"
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

// redisRepository keeps each entry as JSON and a per-station sorted set of
// entry IDs scored by priority
type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a new Redis-backed craft queue repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

func validateEntry(e *station.QueueEntry) error {
	if e == nil {
		return errors.InvalidArgument(errEntryNil)
	}
	if e.EntryID == "" {
		return errors.InvalidArgument(errEntryIDEmpty)
	}
	if e.StationID == "" {
		return errors.InvalidArgument(errStationIDEmpty)
	}
	return nil
}

func (r *redisRepository) save(ctx context.Context, e *station.QueueEntry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal queue entry")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.entryKey(e.EntryID), data, 0)
	pipe.ZAdd(ctx, r.stationKey(e.StationID), redis.Z{Score: float64(e.Priority), Member: e.EntryID})
	if _, err := pipe.Exec(ctx); err != nil {
		return errors.Wrapf(err, "failed to store queue entry %s", e.EntryID)
	}
	return nil
}

func (r *redisRepository) exists(ctx context.Context, entryID string) (bool, error) {
	n, err := r.client.Exists(ctx, r.entryKey(entryID)).Result()
	if err != nil {
		return false, errors.Wrapf(err, "failed to check queue entry %s", entryID)
	}
	return n > 0, nil
}

// Create stores a new entry
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if err := validateEntry(input.Entry); err != nil {
		return nil, err
	}

	exists, err := r.exists(ctx, input.Entry.EntryID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.AlreadyExistsf("queue entry %s already exists", input.Entry.EntryID).
			WithMeta(errors.MetaEntryID, input.Entry.EntryID)
	}

	if err := r.save(ctx, input.Entry); err != nil {
		return nil, err
	}
	return &CreateOutput{Entry: input.Entry}, nil
}

// Get retrieves one entry of a station
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.EntryID == "" {
		return nil, errors.InvalidArgument(errEntryIDEmpty)
	}
	if input.StationID == "" {
		return nil, errors.InvalidArgument(errStationIDEmpty)
	}

	data, err := r.client.Get(ctx, r.entryKey(input.EntryID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, r.notFound(input.StationID, input.EntryID)
		}
		return nil, errors.Wrapf(err, "failed to get queue entry %s", input.EntryID)
	}

	var entry station.QueueEntry
	if err := json.Unmarshal([]byte(data), &entry); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal queue entry")
	}
	if entry.StationID != input.StationID {
		return nil, r.notFound(input.StationID, input.EntryID)
	}

	return &GetOutput{Entry: &entry}, nil
}

// Update replaces an existing entry
func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if err := validateEntry(input.Entry); err != nil {
		return nil, err
	}

	exists, err := r.exists(ctx, input.Entry.EntryID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, r.notFound(input.Entry.StationID, input.Entry.EntryID)
	}

	if err := r.save(ctx, input.Entry); err != nil {
		return nil, err
	}
	return &UpdateOutput{Entry: input.Entry}, nil
}

// Delete removes an entry
func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if _, err := r.Get(ctx, GetInput(input)); err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.entryKey(input.EntryID))
	pipe.ZRem(ctx, r.stationKey(input.StationID), input.EntryID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete queue entry %s", input.EntryID)
	}

	return &DeleteOutput{}, nil
}

// ListByStation returns a station's queue, lowest priority first
func (r *redisRepository) ListByStation(ctx context.Context, input ListByStationInput) (*ListByStationOutput, error) {
	if input.StationID == "" {
		return nil, errors.InvalidArgument(errStationIDEmpty)
	}

	indexKey := r.stationKey(input.StationID)
	ids, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list queue of station %s", input.StationID)
	}
	if len(ids) == 0 {
		return &ListByStationOutput{Entries: []*station.QueueEntry{}}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.entryKey(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load queue of station %s", input.StationID)
	}

	entries := make([]*station.QueueEntry, 0, len(values))
	for i, v := range values {
		data, ok := v.(string)
		if !ok {
			// Index points at a missing entry, clean it up
			r.client.ZRem(ctx, indexKey, ids[i])
			continue
		}
		var entry station.QueueEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal queue entry %s", ids[i])
		}
		entries = append(entries, &entry)
	}

	return &ListByStationOutput{Entries: entries}, nil
}

func (r *redisRepository) notFound(stationID, entryID string) error {
	return errors.NotFoundf("queue entry %s not found on station %s", entryID, stationID).
		WithMeta(errors.MetaStationID, stationID).
		WithMeta(errors.MetaEntryID, entryID)
}

func (r *redisRepository) entryKey(entryID string) string {
	return fmt.Sprintf("%s%s", entryKeyPrefix, entryID)
}

func (r *redisRepository) stationKey(stationID string) string {
	return fmt.Sprintf("%s%s", stationKeyPrefix, stationID)
}
