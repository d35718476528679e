package stations

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	redis "github.com/redis/go-redis/v9"

	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/station"
	"github.com/iniside/velesarc-craft/internal/errors"
	redisclient "github.com/iniside/velesarc-craft/internal/redis"
)

const (
	// Key patterns: station:{id}, station:{id}:inventory, station:{id}:outputs
	stationKeyPrefix = "station:"
	inventorySuffix  = ":inventory"
	outputsSuffix    = ":outputs"
	// Set of every station ID
	indexKey = "stations:index"

	errStationNil     = "station cannot be nil"
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

type redisRepository struct {
	client redisclient.Client
}

// NewRedis creates a new Redis-backed station repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{client: cfg.Client}, nil
}

var _ Repository = (*redisRepository)(nil)

// Create stores a new station
func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Station == nil {
		return nil, errors.InvalidArgument(errStationNil)
	}
	if input.Station.ID == "" {
		return nil, errors.InvalidArgument(errStationIDEmpty)
	}

	data, err := json.Marshal(input.Station)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal station")
	}

	// SetNX keeps an existing station untouched
	created, err := r.client.SetNX(ctx, r.stationKey(input.Station.ID), data, 0).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store station %s", input.Station.ID)
	}
	if !created {
		return nil, errors.AlreadyExistsf("station %s already exists", input.Station.ID).
			WithMeta(errors.MetaStationID, input.Station.ID)
	}
	if err := r.client.SAdd(ctx, indexKey, input.Station.ID).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to index station %s", input.Station.ID)
	}

	return &CreateOutput{Station: input.Station}, nil
}

// Get retrieves a station by ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errStationIDEmpty)
	}

	data, err := r.client.Get(ctx, r.stationKey(input.ID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("station %s not found", input.ID).
				WithMeta(errors.MetaStationID, input.ID)
		}
		return nil, errors.Wrapf(err, "failed to get station %s", input.ID)
	}

	var st station.Station
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal station")
	}

	return &GetOutput{Station: &st}, nil
}

// List returns every station
func (r *redisRepository) List(ctx context.Context, _ ListInput) (*ListOutput, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stations")
	}
	sort.Strings(ids)

	out := make([]*station.Station, 0, len(ids))
	for _, id := range ids {
		got, err := r.Get(ctx, GetInput{ID: id})
		if err != nil {
			if errors.IsNotFound(err) {
				// Index points at a missing station, clean it up
				r.client.SRem(ctx, indexKey, id)
				continue
			}
			return nil, err
		}
		out = append(out, got.Station)
	}

	return &ListOutput{Stations: out}, nil
}

// GetInventory returns the items deposited in a station
func (r *redisRepository) GetInventory(ctx context.Context, input GetInventoryInput) (*GetInventoryOutput, error) {
	if input.StationID == "" {
		return nil, errors.InvalidArgument(errStationIDEmpty)
	}

	data, err := r.client.Get(ctx, r.inventoryKey(input.StationID)).Result()
	if err != nil {
		if err == redis.Nil {
			return &GetInventoryOutput{Items: []*item.Stack{}}, nil
		}
		return nil, errors.Wrapf(err, "failed to get inventory of station %s", input.StationID)
	}

	var items []*item.Stack
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal inventory")
	}
	if items == nil {
		items = []*item.Stack{}
	}

	return &GetInventoryOutput{Items: items}, nil
}

// SaveInventory replaces the items deposited in a station
func (r *redisRepository) SaveInventory(ctx context.Context, input SaveInventoryInput) (*SaveInventoryOutput, error) {
	if input.StationID == "" {
		return nil, errors.InvalidArgument(errStationIDEmpty)
	}

	key := r.inventoryKey(input.StationID)
	if len(input.Items) == 0 {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return nil, errors.Wrapf(err, "failed to clear inventory of station %s", input.StationID)
		}
		return &SaveInventoryOutput{}, nil
	}

	data, err := json.Marshal(input.Items)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal inventory")
	}
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to save inventory of station %s", input.StationID)
	}

	return &SaveInventoryOutput{}, nil
}

// AddOutputs appends finished items to the station's output storage
func (r *redisRepository) AddOutputs(ctx context.Context, input AddOutputsInput) (*AddOutputsOutput, error) {
	if input.StationID == "" {
		return nil, errors.InvalidArgument(errStationIDEmpty)
	}

	key := r.outputsKey(input.StationID)
	if len(input.Outputs) == 0 {
		n, err := r.client.LLen(ctx, key).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to count outputs of station %s", input.StationID)
		}
		return &AddOutputsOutput{Pending: int(n)}, nil
	}

	values := make([]any, 0, len(input.Outputs))
	for _, spec := range input.Outputs {
		if spec == nil {
			continue
		}
		data, err := json.Marshal(spec)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to marshal output %s", spec.ID)
		}
		values = append(values, data)
	}

	n, err := r.client.RPush(ctx, key, values...).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to add outputs to station %s", input.StationID)
	}

	return &AddOutputsOutput{Pending: int(n)}, nil
}

// ListOutputs returns the finished items without removing them
func (r *redisRepository) ListOutputs(ctx context.Context, input ListOutputsInput) (*ListOutputsOutput, error) {
	if input.StationID == "" {
		return nil, errors.InvalidArgument(errStationIDEmpty)
	}

	raw, err := r.client.LRange(ctx, r.outputsKey(input.StationID), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list outputs of station %s", input.StationID)
	}

	outputs, err := decodeSpecs(raw)
	if err != nil {
		return nil, err
	}
	return &ListOutputsOutput{Outputs: outputs}, nil
}

// TakeOutputs removes and returns finished items
func (r *redisRepository) TakeOutputs(ctx context.Context, input TakeOutputsInput) (*TakeOutputsOutput, error) {
	if input.StationID == "" {
		return nil, errors.InvalidArgument(errStationIDEmpty)
	}
	if input.Count < 0 {
		return nil, errors.InvalidArgumentf("count must be >= 0 (got %d)", input.Count)
	}

	key := r.outputsKey(input.StationID)
	count := input.Count
	if count == 0 {
		n, err := r.client.LLen(ctx, key).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to count outputs of station %s", input.StationID)
		}
		count = int(n)
	}
	if count == 0 {
		return &TakeOutputsOutput{Outputs: []*item.Spec{}}, nil
	}

	raw, err := r.client.LPopCount(ctx, key, count).Result()
	if err != nil && err != redis.Nil {
		return nil, errors.Wrapf(err, "failed to take outputs of station %s", input.StationID)
	}

	outputs, err := decodeSpecs(raw)
	if err != nil {
		return nil, err
	}
	return &TakeOutputsOutput{Outputs: outputs}, nil
}

func decodeSpecs(raw []string) ([]*item.Spec, error) {
	out := make([]*item.Spec, 0, len(raw))
	for _, data := range raw {
		var spec item.Spec
		if err := json.Unmarshal([]byte(data), &spec); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal output")
		}
		out = append(out, &spec)
	}
	return out, nil
}

func (r *redisRepository) stationKey(id string) string {
	return fmt.Sprintf("%s%s", stationKeyPrefix, id)
}

func (r *redisRepository) inventoryKey(id string) string {
	return fmt.Sprintf("%s%s%s", stationKeyPrefix, id, inventorySuffix)
}

func (r *redisRepository) outputsKey(id string) string {
	return fmt.Sprintf("%s%s%s", stationKeyPrefix, id, outputsSuffix)
}
