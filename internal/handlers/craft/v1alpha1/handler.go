// Package v1alpha1 handles the craft gRPC service interface
package v1alpha1

import (
	"context"

	"golang.org/x/time/rate"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/entities/station"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
	"github.com/iniside/velesarc-craft/internal/errors"
	"github.com/iniside/velesarc-craft/internal/orchestrators/craft"
)

// HandlerConfig holds dependencies for the craft handler
type HandlerConfig struct {
	CraftService craft.Service
	// SimulateRPS limits Simulate calls per second; zero means no limit
	SimulateRPS   float64
	SimulateBurst int
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.CraftService == nil {
		return errors.InvalidArgument("craft service is required")
	}
	if c.SimulateRPS < 0 {
		return errors.InvalidArgument("simulate rps cannot be negative")
	}
	if c.SimulateBurst < 0 {
		return errors.InvalidArgument("simulate burst cannot be negative")
	}
	return nil
}

// Handler implements the craft gRPC service
type Handler struct {
	craftService    craft.Service
	simulateLimiter *rate.Limiter
}

// NewHandler creates a new craft handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	limit := rate.Inf
	if cfg.SimulateRPS > 0 {
		limit = rate.Limit(cfg.SimulateRPS)
	}
	burst := cfg.SimulateBurst
	if burst == 0 {
		burst = 1
	}

	return &Handler{
		craftService:    cfg.CraftService,
		simulateLimiter: rate.NewLimiter(limit, burst),
	}, nil
}

var _ CraftServiceServer = (*Handler)(nil)

func respond(v any) (*structpb.Struct, error) {
	out, err := encode(v)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return out, nil
}

func requireStation(id string) error {
	if id == "" {
		return errors.ToGRPCError(errors.InvalidArgument("stationId is required"))
	}
	return nil
}

func emptyIfNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// CreateStation creates a crafting station
func (h *Handler) CreateStation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in createStationRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.craftService.CreateStation(ctx, &craft.CreateStationInput{
		ID:           in.ID,
		Tags:         tags.FromStrings(in.Tags...),
		TimeMode:     station.TimeMode(in.TimeMode),
		MaxQueueSize: in.MaxQueueSize,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"station": out.Station})
}

// GetStation returns the full state of a station
func (h *Handler) GetStation(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in stationRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireStation(in.StationID); err != nil {
		return nil, err
	}

	out, err := h.craftService.GetStation(ctx, &craft.GetStationInput{StationID: in.StationID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"station":   out.Station,
		"inventory": emptyIfNil(out.Inventory),
		"queue":     toQueueEntries(out.Queue),
		"outputs":   emptyIfNil(out.Outputs),
	})
}

// ListStations returns every station
func (h *Handler) ListStations(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.craftService.ListStations(ctx, &craft.ListStationsInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"stations": emptyIfNil(out.Stations)})
}

// DepositItems adds items to a station's inventory
func (h *Handler) DepositItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in depositItemsRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireStation(in.StationID); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("items are required"))
	}

	out, err := h.craftService.DepositItems(ctx, &craft.DepositItemsInput{
		StationID: in.StationID,
		Items:     toItemInputs(in.Items),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"deposited": emptyIfNil(out.Deposited),
		"inventory": emptyIfNil(out.Inventory),
	})
}

// WithdrawOutput takes finished items off a station
func (h *Handler) WithdrawOutput(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in withdrawOutputRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireStation(in.StationID); err != nil {
		return nil, err
	}

	out, err := h.craftService.WithdrawOutput(ctx, &craft.WithdrawOutputInput{
		StationID: in.StationID,
		Count:     in.Count,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{"items": emptyIfNil(out.Items)})
}

// QueueRecipe adds a recipe to a station's queue
func (h *Handler) QueueRecipe(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in queueRecipeRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireStation(in.StationID); err != nil {
		return nil, err
	}
	if in.RecipeID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("recipeId is required"))
	}

	out, err := h.craftService.QueueRecipe(ctx, &craft.QueueRecipeInput{
		StationID:      in.StationID,
		RecipeID:       in.RecipeID,
		Amount:         in.Amount,
		InstigatorTags: tags.FromStrings(in.InstigatorTags...),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"entry":     toQueueEntry(out.Entry),
		"inventory": emptyIfNil(out.Inventory),
	})
}

// CancelEntry removes a queue entry
func (h *Handler) CancelEntry(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in cancelEntryRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireStation(in.StationID); err != nil {
		return nil, err
	}
	if in.EntryID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("entryId is required"))
	}

	out, err := h.craftService.CancelEntry(ctx, &craft.CancelEntryInput{
		StationID: in.StationID,
		EntryID:   in.EntryID,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(map[string]any{
		"refunded":  emptyIfNil(out.Refunded),
		"inventory": emptyIfNil(out.Inventory),
	})
}

// Tick advances a station's active entry by a time delta
func (h *Handler) Tick(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in tickRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireStation(in.StationID); err != nil {
		return nil, err
	}
	if in.DeltaSeconds < 0 {
		return nil, errors.ToGRPCError(errors.InvalidArgument("deltaSeconds cannot be negative"))
	}

	out, err := h.craftService.Tick(ctx, &craft.TickInput{
		StationID: in.StationID,
		DeltaTime: in.delta(),
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(toProgress(out.Progress))
}

// Interact runs the interaction check on a station's active entry
func (h *Handler) Interact(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in stationRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if err := requireStation(in.StationID); err != nil {
		return nil, err
	}

	out, err := h.craftService.Interact(ctx, &craft.InteractInput{StationID: in.StationID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(toProgress(out.Progress))
}

// ListRecipes returns recipe summaries, optionally limited to one station
func (h *Handler) ListRecipes(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in stationRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.craftService.ListRecipes(ctx, &craft.ListRecipesInput{StationID: in.StationID})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	recipes := make([]recipeSummary, 0, len(out.Recipes))
	for _, d := range out.Recipes {
		if d != nil {
			recipes = append(recipes, toRecipeSummary(d))
		}
	}
	return respond(map[string]any{"recipes": recipes})
}

// EvaluateOutput builds one output from the given ingredients
func (h *Handler) EvaluateOutput(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in evaluateRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.RecipeID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("recipeId is required"))
	}

	out, err := h.craftService.EvaluateOutput(ctx, &craft.EvaluateOutputInput{
		RecipeID:    in.RecipeID,
		Ingredients: toItemInputs(in.Ingredients),
		Seed:        in.Seed,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	report := out.Report
	if report == nil {
		report = &recipe.BuildReport{}
	}
	return respond(map[string]any{
		"item":               out.Item,
		"level":              report.Level,
		"averageQuality":     report.AverageQuality,
		"pending":            emptyIfNil(report.Pending),
		"applied":            emptyIfNil(report.Applied),
		"qualityMultipliers": emptyIfNil(out.QualityMultipliers),
	})
}

// Simulate runs a recipe many times and reports output frequencies
func (h *Handler) Simulate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if !h.simulateLimiter.Allow() {
		return nil, errors.ToGRPCError(errors.ResourceExhausted("simulate rate limit exceeded"))
	}

	var in evaluateRequest
	if err := decode(req, &in); err != nil {
		return nil, errors.ToGRPCError(err)
	}
	if in.RecipeID == "" {
		return nil, errors.ToGRPCError(errors.InvalidArgument("recipeId is required"))
	}

	out, err := h.craftService.Simulate(ctx, &craft.SimulateInput{
		RecipeID:    in.RecipeID,
		Ingredients: toItemInputs(in.Ingredients),
		Iterations:  in.Iterations,
		Seed:        in.Seed,
	})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	return respond(out)
}
