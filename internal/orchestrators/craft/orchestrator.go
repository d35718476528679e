// Package craft implements the craft station orchestrator: station state,
// the craft queue and one-shot output evaluation
package craft

//go:generate mockgen -destination=mock/mock_service.go -package=craftmock github.com/iniside/velesarc-craft/internal/orchestrators/craft Service
//go:generate mockgen -destination=mock/mock_assets.go -package=craftmock github.com/iniside/velesarc-craft/internal/orchestrators/craft Assets

import (
	"context"
	"log/slog"
	"sync"

	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/station"
	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/pkg/clock"
	"github.com/iniside/velesarc-craft/internal/pkg/idgen"
	"github.com/iniside/velesarc-craft/internal/pkg/rng"
	craftqueue "github.com/iniside/velesarc-craft/internal/repositories/craft_queue"
	"github.com/iniside/velesarc-craft/internal/repositories/stations"
)

// Service defines the craft station operations
type Service interface {
	// Stations
	CreateStation(ctx context.Context, input *CreateStationInput) (*CreateStationOutput, error)
	GetStation(ctx context.Context, input *GetStationInput) (*GetStationOutput, error)
	ListStations(ctx context.Context, input *ListStationsInput) (*ListStationsOutput, error)
	DepositItems(ctx context.Context, input *DepositItemsInput) (*DepositItemsOutput, error)
	WithdrawOutput(ctx context.Context, input *WithdrawOutputInput) (*WithdrawOutputOutput, error)

	// Queue
	QueueRecipe(ctx context.Context, input *QueueRecipeInput) (*QueueRecipeOutput, error)
	CancelEntry(ctx context.Context, input *CancelEntryInput) (*CancelEntryOutput, error)
	Tick(ctx context.Context, input *TickInput) (*TickOutput, error)
	Interact(ctx context.Context, input *InteractInput) (*InteractOutput, error)

	// Recipes and stateless evaluation
	ListRecipes(ctx context.Context, input *ListRecipesInput) (*ListRecipesOutput, error)
	EvaluateOutput(ctx context.Context, input *EvaluateOutputInput) (*EvaluateOutputOutput, error)
	Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error)
}

// Assets resolves authored data by asset path
type Assets interface {
	Recipe(ctx context.Context, path string) (*recipe.Definition, error)
	Item(ctx context.Context, path string) (*item.Definition, error)
	ListRecipes(ctx context.Context) ([]*recipe.Definition, error)
}

// Config holds the dependencies for the craft orchestrator
type Config struct {
	Assets      Assets
	QueueRepo   craftqueue.Repository
	StationRepo stations.Repository
	Clock       clock.Clock
	IDGenerator idgen.Generator
	// Random defaults to the rpg-toolkit dice roller
	Random rng.Source
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if c.Assets == nil {
		vb.RequiredField("Assets")
	}
	if c.QueueRepo == nil {
		vb.RequiredField("QueueRepo")
	}
	if c.StationRepo == nil {
		vb.RequiredField("StationRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	assets      Assets
	queueRepo   craftqueue.Repository
	stationRepo stations.Repository
	clock       clock.Clock
	idGen       idgen.Generator

	// randMu guards random, which may be a non thread-safe seeded source
	randMu sync.Mutex
	random rng.Source

	stationLocks sync.Map // station ID -> *sync.Mutex
}

// NewOrchestrator creates a new craft orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		assets:      cfg.Assets,
		queueRepo:   cfg.QueueRepo,
		stationRepo: cfg.StationRepo,
		clock:       cfg.Clock,
		idGen:       cfg.IDGenerator,
		random:      cfg.Random,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.random == nil {
		o.random = rng.NewToolkit(nil)
	}
	return o, nil
}

// lockStation serializes read-modify-write sequences on one station
func (o *orchestrator) lockStation(id string) func() {
	v, _ := o.stationLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func (o *orchestrator) getStation(ctx context.Context, id string) (*station.Station, error) {
	if id == "" {
		return nil, errors.InvalidArgument("station ID is required")
	}
	out, err := o.stationRepo.Get(ctx, stations.GetInput{ID: id})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get station %s", id)
	}
	return out.Station, nil
}

func (o *orchestrator) getInventory(ctx context.Context, stationID string) ([]*item.Stack, error) {
	out, err := o.stationRepo.GetInventory(ctx, stations.GetInventoryInput{StationID: stationID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get inventory of station %s", stationID)
	}
	return out.Items, nil
}

func (o *orchestrator) saveInventory(ctx context.Context, stationID string, items []*item.Stack) error {
	_, err := o.stationRepo.SaveInventory(ctx, stations.SaveInventoryInput{StationID: stationID, Items: items})
	if err != nil {
		return errors.Wrapf(err, "failed to save inventory of station %s", stationID)
	}
	return nil
}

// CreateStation stores a new station
func (o *orchestrator) CreateStation(ctx context.Context, input *CreateStationInput) (*CreateStationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.MaxQueueSize < 0 {
		return nil, errors.InvalidArgumentf("max queue size must be >= 0 (got %d)", input.MaxQueueSize)
	}

	mode := input.TimeMode
	switch mode {
	case "":
		mode = station.TimeModeAutoTick
	case station.TimeModeAutoTick, station.TimeModeInteractionCheck:
	default:
		return nil, errors.InvalidArgumentf("unknown time mode %q", mode)
	}

	id := input.ID
	if id == "" {
		id = o.idGen.Generate()
	}

	st := &station.Station{
		ID:           id,
		Tags:         input.Tags,
		TimeMode:     mode,
		MaxQueueSize: input.MaxQueueSize,
	}
	if _, err := o.stationRepo.Create(ctx, stations.CreateInput{Station: st}); err != nil {
		return nil, errors.Wrap(err, "failed to create station")
	}

	slog.Info("Station created",
		"station_id", st.ID,
		"time_mode", st.TimeMode,
		"tags", st.Tags.Strings(),
	)

	return &CreateStationOutput{Station: st}, nil
}

// GetStation returns a station with its inventory, queue and outputs
func (o *orchestrator) GetStation(ctx context.Context, input *GetStationInput) (*GetStationOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	st, err := o.getStation(ctx, input.StationID)
	if err != nil {
		return nil, err
	}
	inventory, err := o.getInventory(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	queue, err := o.queueRepo.ListByStation(ctx, craftqueue.ListByStationInput{StationID: st.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list queue")
	}
	outputs, err := o.stationRepo.ListOutputs(ctx, stations.ListOutputsInput{StationID: st.ID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list outputs")
	}

	return &GetStationOutput{
		Station:   st,
		Inventory: inventory,
		Queue:     queue.Entries,
		Outputs:   outputs.Outputs,
	}, nil
}

// ListStations returns every station
func (o *orchestrator) ListStations(ctx context.Context, _ *ListStationsInput) (*ListStationsOutput, error) {
	out, err := o.stationRepo.List(ctx, stations.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list stations")
	}
	return &ListStationsOutput{Stations: out.Stations}, nil
}

// resolveItems turns item inputs into stacks using the authored definitions
func (o *orchestrator) resolveItems(ctx context.Context, items []ItemInput, id func(i int) string) ([]*item.Stack, error) {
	out := make([]*item.Stack, 0, len(items))
	for i, in := range items {
		if in.DefinitionID == "" {
			return nil, errors.InvalidArgumentf("item %d: definition ID is required", i)
		}
		amount := in.Amount
		if amount == 0 {
			amount = 1
		}
		if amount < 0 {
			return nil, errors.InvalidArgumentf("item %d: amount must be >= 1 (got %d)", i, in.Amount)
		}
		def, err := o.assets.Item(ctx, in.DefinitionID)
		if err != nil {
			return nil, errors.Wrapf(err, "item %d", i)
		}
		out = append(out, item.NewStack(id(i), def, amount, in.Tags))
	}
	return out, nil
}

// DepositItems adds items to a station's inventory
func (o *orchestrator) DepositItems(ctx context.Context, input *DepositItemsInput) (*DepositItemsOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Items) == 0 {
		return nil, errors.InvalidArgument("at least one item is required")
	}

	st, err := o.getStation(ctx, input.StationID)
	if err != nil {
		return nil, err
	}

	deposited, err := o.resolveItems(ctx, input.Items, func(int) string { return o.idGen.Generate() })
	if err != nil {
		return nil, err
	}

	unlock := o.lockStation(st.ID)
	defer unlock()

	inventory, err := o.getInventory(ctx, st.ID)
	if err != nil {
		return nil, err
	}
	inventory = append(inventory, deposited...)
	if err := o.saveInventory(ctx, st.ID, inventory); err != nil {
		return nil, err
	}

	slog.Info("Items deposited",
		"station_id", st.ID,
		"stacks", len(deposited),
		"inventory_size", len(inventory),
	)

	return &DepositItemsOutput{Deposited: deposited, Inventory: inventory}, nil
}

// WithdrawOutput removes finished items from a station
func (o *orchestrator) WithdrawOutput(ctx context.Context, input *WithdrawOutputInput) (*WithdrawOutputOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if input.Count < 0 {
		return nil, errors.InvalidArgumentf("count must be >= 0 (got %d)", input.Count)
	}

	st, err := o.getStation(ctx, input.StationID)
	if err != nil {
		return nil, err
	}

	out, err := o.stationRepo.TakeOutputs(ctx, stations.TakeOutputsInput{StationID: st.ID, Count: input.Count})
	if err != nil {
		return nil, errors.Wrap(err, "failed to withdraw outputs")
	}

	slog.Info("Outputs withdrawn",
		"station_id", st.ID,
		"count", len(out.Outputs),
	)

	return &WithdrawOutputOutput{Items: out.Outputs}, nil
}

// ListRecipes returns the authored recipes, optionally only those a station
// can craft
func (o *orchestrator) ListRecipes(ctx context.Context, input *ListRecipesInput) (*ListRecipesOutput, error) {
	if input == nil {
		input = &ListRecipesInput{}
	}

	all, err := o.assets.ListRecipes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list recipes")
	}
	if input.StationID == "" {
		return &ListRecipesOutput{Recipes: all}, nil
	}

	st, err := o.getStation(ctx, input.StationID)
	if err != nil {
		return nil, err
	}
	out := make([]*recipe.Definition, 0, len(all))
	for _, r := range all {
		if r.MatchesStation(st.Tags) {
			out = append(out, r)
		}
	}
	return &ListRecipesOutput{Recipes: out}, nil
}
