// Package craftqueue stores the queued recipes of craft stations
package craftqueue

import (
	"context"

	"github.com/iniside/velesarc-craft/internal/entities/station"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=craftqueuemock github.com/iniside/velesarc-craft/internal/repositories/craft_queue Repository

// CreateInput contains parameters for queueing an entry
type CreateInput struct {
	Entry *station.QueueEntry
}

// CreateOutput contains the stored entry
type CreateOutput struct {
	Entry *station.QueueEntry
}

// GetInput identifies one entry
type GetInput struct {
	StationID string
	EntryID   string
}

// GetOutput contains the entry
type GetOutput struct {
	Entry *station.QueueEntry
}

// UpdateInput contains the entry to replace
type UpdateInput struct {
	Entry *station.QueueEntry
}

// UpdateOutput contains the stored entry
type UpdateOutput struct {
	Entry *station.QueueEntry
}

// DeleteInput identifies the entry to remove
type DeleteInput struct {
	StationID string
	EntryID   string
}

// DeleteOutput is empty for now
type DeleteOutput struct{}

// ListByStationInput selects one station's queue
type ListByStationInput struct {
	StationID string
}

// ListByStationOutput contains the queue ordered by ascending priority
type ListByStationOutput struct {
	Entries []*station.QueueEntry
}

// Repository defines the storage operations for craft queue entries
type Repository interface {
	// Create stores a new entry
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves one entry of a station
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update replaces an existing entry
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes an entry
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByStation returns a station's queue, lowest priority first
	ListByStation(ctx context.Context, input ListByStationInput) (*ListByStationOutput, error)
}
