package craft

import (
	"time"

	"github.com/iniside/velesarc-craft/internal/engine/recipe"
	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/station"
	"github.com/iniside/velesarc-craft/internal/entities/tags"
)

// ItemInput names an item by definition with an amount and instance tags
// such as a quality tier
type ItemInput struct {
	DefinitionID string
	Amount       int
	Tags         tags.Container
}

// CreateStationInput defines the request for creating a station
type CreateStationInput struct {
	// ID is generated when empty
	ID           string
	Tags         tags.Container
	TimeMode     station.TimeMode
	MaxQueueSize int
}

// CreateStationOutput defines the response for creating a station
type CreateStationOutput struct {
	Station *station.Station
}

// GetStationInput defines the request for reading a station
type GetStationInput struct {
	StationID string
}

// GetStationOutput is the full state of a station
type GetStationOutput struct {
	Station   *station.Station
	Inventory []*item.Stack
	Queue     []*station.QueueEntry
	Outputs   []*item.Spec
}

// ListStationsInput defines the request for listing stations
type ListStationsInput struct{}

// ListStationsOutput defines the response for listing stations
type ListStationsOutput struct {
	Stations []*station.Station
}

// DepositItemsInput defines the request for adding items to a station
type DepositItemsInput struct {
	StationID string
	Items     []ItemInput
}

// DepositItemsOutput defines the response for adding items to a station
type DepositItemsOutput struct {
	Deposited []*item.Stack
	Inventory []*item.Stack
}

// QueueRecipeInput defines the request for queueing a recipe
type QueueRecipeInput struct {
	StationID      string
	RecipeID       string
	Amount         int
	InstigatorTags tags.Container
}

// QueueRecipeOutput defines the response for queueing a recipe
type QueueRecipeOutput struct {
	Entry     *station.QueueEntry
	Inventory []*item.Stack
}

// CancelEntryInput defines the request for cancelling a queue entry
type CancelEntryInput struct {
	StationID string
	EntryID   string
}

// CancelEntryOutput defines the response for cancelling a queue entry
type CancelEntryOutput struct {
	// Refunded holds the returned ingredients, empty once any craft of the
	// entry has finished
	Refunded  []*item.Stack
	Inventory []*item.Stack
}

// TickInput defines the request for advancing a station's active entry
type TickInput struct {
	StationID string
	DeltaTime time.Duration
}

// Progress is the result of advancing or checking an entry
type Progress struct {
	// Entry is nil when the station had nothing to advance
	Entry     *station.QueueEntry
	Completed int
	Removed   bool
	Outputs   []*item.Spec
}

// TickOutput defines the response for a tick
type TickOutput struct {
	Progress
}

// InteractInput defines the request for an interaction check
type InteractInput struct {
	StationID string
}

// InteractOutput defines the response for an interaction check
type InteractOutput struct {
	Progress
}

// WithdrawOutputInput defines the request for taking finished items
type WithdrawOutputInput struct {
	StationID string
	// Count zero withdraws everything
	Count int
}

// WithdrawOutputOutput defines the response for taking finished items
type WithdrawOutputOutput struct {
	Items []*item.Spec
}

// ListRecipesInput defines the request for listing recipes
type ListRecipesInput struct {
	// StationID limits the list to recipes the station can craft
	StationID string
}

// ListRecipesOutput defines the response for listing recipes
type ListRecipesOutput struct {
	Recipes []*recipe.Definition
}

// EvaluateOutputInput defines the request for a one-shot craft evaluation
type EvaluateOutputInput struct {
	RecipeID    string
	Ingredients []ItemInput
	// Seed makes the evaluation reproducible when non-zero
	Seed uint64
}

// EvaluateOutputOutput defines the response for a one-shot evaluation
type EvaluateOutputOutput struct {
	Item               *item.Spec
	Report             *recipe.BuildReport
	QualityMultipliers []float64
}

// SimulateInput defines the request for a Monte Carlo run
type SimulateInput struct {
	RecipeID    string
	Ingredients []ItemInput
	Iterations  int
	Seed        uint64
}

// Frequency counts how often something showed up across a simulation
type Frequency struct {
	Key   string  `json:"key"`
	Count int     `json:"count"`
	Rate  float64 `json:"rate"`
}

// StatSummary aggregates the values one stat took across a simulation
type StatSummary struct {
	Attribute string       `json:"attribute"`
	ModType   item.ModType `json:"modType"`
	Count     int          `json:"count"`
	Mean      float64      `json:"mean"`
	Min       float64      `json:"min"`
	Max       float64      `json:"max"`
}

// SimulateOutput defines the response for a Monte Carlo run. Rates are per
// craft and can exceed one when a rule contributes several times.
type SimulateOutput struct {
	RecipeID       string        `json:"recipeId"`
	Iterations     int           `json:"iterations"`
	AverageQuality float64       `json:"averageQuality"`
	Level          int           `json:"level"`
	Rules          []Frequency   `json:"rules"`
	Bands          []Frequency   `json:"bands"`
	Stats          []StatSummary `json:"stats"`
	Abilities      []Frequency   `json:"abilities"`
	Effects        []Frequency   `json:"effects"`
	Tags           []Frequency   `json:"tags"`
}
