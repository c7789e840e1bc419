// Package store provides persistence for graph documents.
//
// This package defines an interface for graph storage with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for server deployments
//
// # Usage
//
// Create a store:
//
//	// Development
//	st := store.NewMemoryStore()
//
//	// Production
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "netplot")
//
// Manage graphs:
//
//	rec := store.NewRecord("social-network", graph.Export(g))
//	if err := st.Put(ctx, rec); err != nil {
//	    return err
//	}
//
//	rec, err := st.Get(ctx, rec.ID)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/fleckenm/netplot/pkg/graph"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a graph record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateID is returned when storing a record whose ID already
	// exists.
	ErrDuplicateID = errors.New("duplicate record ID")
)

// Record is one stored graph with its metadata.
type Record struct {
	ID        string         `json:"id" bson:"_id"`
	Name      string         `json:"name" bson:"name"`
	Graph     graph.Document `json:"graph" bson:"graph"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time      `json:"updated_at" bson:"updated_at"`
}

// NewRecord creates a record with a fresh UUID and timestamps.
func NewRecord(name string, doc graph.Document) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Graph:     doc,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes the modification timestamp.
func (r *Record) Touch() {
	r.UpdatedAt = time.Now().UTC()
}

// Store is the interface for graph persistence backends.
type Store interface {
	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns all records ordered by creation time.
	List(ctx context.Context) ([]*Record, error)

	// Put inserts a record. Returns ErrDuplicateID if the ID exists.
	Put(ctx context.Context, rec *Record) error

	// Update replaces an existing record. Returns ErrNotFound if absent.
	Update(ctx context.Context, rec *Record) error

	// Delete removes a record. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
