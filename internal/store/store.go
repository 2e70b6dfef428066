// Package store provides the memory storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/recall-cli/recall/internal/model"
)

// Sentinel errors checked with errors.Is at the CLI boundary.
var (
	// ErrNotFound reports an unknown memory id. Informational at the CLI.
	ErrNotFound = errors.New("memory not found")

	// ErrValidation reports rejected input (empty content, bad status,
	// conflicting pagination).
	ErrValidation = errors.New("invalid input")

	// ErrNotTask reports a status operation on a memory without the task
	// tag. Informational at the CLI, like ErrNotFound.
	ErrNotTask = errors.New("not a task")

	// ErrNoEmbedder reports that an operation requiring embeddings ran
	// without a configured provider.
	ErrNoEmbedder = errors.New("no embedding provider configured")
)

// Filter restricts listing operations. Zero value matches all non-archived
// memories.
type Filter struct {
	Tags            []string // any-of
	From            string   // inclusive RFC3339 lower bound
	To              string   // inclusive RFC3339 upper bound
	IncludeArchived bool
}

// Page selects a window of an ordered result set. Limit and Tail are
// mutually exclusive; if neither is set, Limit defaults to 20.
type Page struct {
	Limit  int
	Tail   int
	Offset int
}

// normalize applies the default window and validates the combination.
func (p Page) normalize() (Page, error) {
	if p.Limit > 0 && p.Tail > 0 {
		return p, fmt.Errorf("%w: limit and tail are mutually exclusive", ErrValidation)
	}
	if p.Limit < 0 || p.Tail < 0 || p.Offset < 0 {
		return p, fmt.Errorf("%w: negative pagination value", ErrValidation)
	}
	if p.Limit == 0 && p.Tail == 0 {
		p.Limit = 20
	}
	return p, nil
}

// ListResult is one page of memories plus window-independent counts.
type ListResult struct {
	Memories  []model.Memory `json:"memories"`
	Total     int            `json:"total"`
	Remaining int            `json:"remaining"`
}

// SimilarResult is one page of scored memories plus counts.
type SimilarResult struct {
	Results   []model.Scored `json:"results"`
	Total     int            `json:"total"`
	Remaining int            `json:"remaining"`
}

// Summary is the status overview: open tasks and recent activity.
type Summary struct {
	OpenTasks []model.Memory `json:"open_tasks"`
	Recent    []model.Memory `json:"recent"`
}

// Store defines the memory storage interface.
type Store interface {
	// Add stores a new memory with a deduplicated tag set.
	Add(ctx context.Context, content string, tags []string) (*model.Memory, error)

	// Get retrieves a memory by id.
	Get(ctx context.Context, id int64) (*model.Memory, error)

	// List returns memories matching the filter in chronological order.
	List(ctx context.Context, f Filter, p Page) (*ListResult, error)

	// Find returns memories whose content contains every whitespace-split
	// token of query (case-insensitive substrings), chronological order.
	Find(ctx context.Context, query string, f Filter, p Page) (*ListResult, error)

	// Similar ranks matching memories by cosine similarity to query.
	Similar(ctx context.Context, query string, f Filter, p Page) (*SimilarResult, error)

	// Edit archives the memory and inserts a new version with content.
	Edit(ctx context.Context, id int64, content string) (*model.Memory, error)

	// AddTag idempotently tags a memory. Reports whether the set changed.
	AddTag(ctx context.Context, id int64, tag string) (bool, error)

	// RemoveTag idempotently untags a memory. Reports whether the set changed.
	RemoveTag(ctx context.Context, id int64, tag string) (bool, error)

	// Archive soft-deletes a memory. Reports whether it was already archived.
	Archive(ctx context.Context, id int64) (bool, error)

	// Restore undoes a soft delete. Reports whether it was archived.
	Restore(ctx context.Context, id int64) (bool, error)

	// CreateTask stores a new task memory starting at status todo.
	CreateTask(ctx context.Context, content string, tags []string) (*model.Memory, error)

	// ListTasks lists task memories, optionally restricted to one status.
	ListTasks(ctx context.Context, status string, f Filter, p Page) (*ListResult, error)

	// Mark moves a task to the given status.
	Mark(ctx context.Context, id int64, status string) (*model.Memory, error)

	// StatusSummary returns open tasks and recent memories.
	StatusSummary(ctx context.Context) (*Summary, error)

	// ReembedAll embeds every memory lacking a vector for the current model.
	ReembedAll(ctx context.Context) (int, error)

	// Close closes the store.
	Close() error
}
