package repositories

import (
	"context"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
)

// SequenceRepository owns the document_sequences counters. All mutation of a
// scope's high-water mark goes through IncrementAndGet so two concurrent
// allocations can never observe the same value.
type SequenceRepository interface {
	// IncrementAndGet atomically bumps the scope's high-water mark and
	// returns the resulting counter state. An unknown scope is created with
	// the default pad width and a high-water mark of 1 (first allocation is
	// not an error).
	IncrementAndGet(ctx context.Context, scopeName string) (*domain.DocumentSequence, error)

	// FindSequenceByScope retrieves a scope's counter without mutating it.
	FindSequenceByScope(ctx context.Context, scopeName string) (*domain.DocumentSequence, error)

	// ConfigureScope creates the scope if absent and sets its pad width.
	// The high-water mark is never decremented.
	ConfigureScope(ctx context.Context, scopeName string, padWidth int) (*domain.DocumentSequence, error)
}
