// Package stations stores craft stations with their input inventory and the
// finished outputs waiting to be withdrawn
package stations

import (
	"context"

	"github.com/iniside/velesarc-craft/internal/entities/item"
	"github.com/iniside/velesarc-craft/internal/entities/station"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=stationsmock github.com/iniside/velesarc-craft/internal/repositories/stations Repository

// CreateInput contains the station to store
type CreateInput struct {
	Station *station.Station
}

// CreateOutput contains the stored station
type CreateOutput struct {
	Station *station.Station
}

// GetInput identifies a station
type GetInput struct {
	ID string
}

// GetOutput contains the station
type GetOutput struct {
	Station *station.Station
}

// ListInput is empty for now
type ListInput struct{}

// ListOutput contains every station ordered by ID
type ListOutput struct {
	Stations []*station.Station
}

// GetInventoryInput identifies a station's inventory
type GetInventoryInput struct {
	StationID string
}

// GetInventoryOutput contains the inventory in deposit order
type GetInventoryOutput struct {
	Items []*item.Stack
}

// SaveInventoryInput replaces a station's inventory
type SaveInventoryInput struct {
	StationID string
	Items     []*item.Stack
}

// SaveInventoryOutput is empty for now
type SaveInventoryOutput struct{}

// AddOutputsInput appends finished items to a station
type AddOutputsInput struct {
	StationID string
	Outputs   []*item.Spec
}

// AddOutputsOutput reports the number of outputs now waiting
type AddOutputsOutput struct {
	Pending int
}

// ListOutputsInput identifies a station's outputs
type ListOutputsInput struct {
	StationID string
}

// ListOutputsOutput contains the waiting outputs, oldest first
type ListOutputsOutput struct {
	Outputs []*item.Spec
}

// TakeOutputsInput removes the oldest outputs. Count zero takes all of them.
type TakeOutputsInput struct {
	StationID string
	Count     int
}

// TakeOutputsOutput contains the removed outputs, oldest first
type TakeOutputsOutput struct {
	Outputs []*item.Spec
}

// Repository defines the storage operations for craft stations
type Repository interface {
	// Create stores a new station
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a station by ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns every station
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// GetInventory returns the items deposited in a station
	GetInventory(ctx context.Context, input GetInventoryInput) (*GetInventoryOutput, error)

	// SaveInventory replaces the items deposited in a station
	SaveInventory(ctx context.Context, input SaveInventoryInput) (*SaveInventoryOutput, error)

	// AddOutputs appends finished items to the station's output storage
	AddOutputs(ctx context.Context, input AddOutputsInput) (*AddOutputsOutput, error)

	// ListOutputs returns the finished items without removing them
	ListOutputs(ctx context.Context, input ListOutputsInput) (*ListOutputsOutput, error)

	// TakeOutputs removes and returns finished items
	TakeOutputs(ctx context.Context, input TakeOutputsInput) (*TakeOutputsOutput, error)
}
