// Package assets provides storage for authored crafting data documents
package assets

import (
	"context"
	"time"
)

// Record is one stored JSON document
type Record struct {
	// Asset path, e.g. "recipes/iron_sword"
	Path string

	// Value of the document's "$type" field
	Type string

	// Raw JSON body
	Body []byte

	UpdatedAt time.Time
}

// Summary identifies a stored document without its body
type Summary struct {
	Path string
	Type string
}

// GetInput contains parameters for retrieving a document
type GetInput struct {
	Path string
}

// GetOutput contains the retrieved document
type GetOutput struct {
	Record *Record
}

// PutInput contains the document to store
type PutInput struct {
	Record *Record
}

// PutOutput contains the result of storing a document
type PutOutput struct {
	Created bool
}

// ListInput filters the listed documents. An empty Type lists everything.
type ListInput struct {
	Type string
}

// ListOutput contains the matching documents ordered by path
type ListOutput struct {
	Summaries []Summary
}

// DeleteInput contains parameters for deleting a document
type DeleteInput struct {
	Path string
}

// Repository defines storage operations for asset documents
type Repository interface {
	// Get retrieves a document by path
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put creates or replaces a document
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// List returns the stored documents
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// Delete removes a document
	Delete(ctx context.Context, input DeleteInput) error
}

const (
	errPathEmpty   = "path cannot be empty"
	errRecordNil   = "record cannot be nil"
	errTypeEmpty   = "record type cannot be empty"
	errBodyInvalid = "record body must be a JSON object"
)
