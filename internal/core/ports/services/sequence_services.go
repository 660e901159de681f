package services

import (
	"context"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/quarrydesk/quarrydesk/internal/dto"
)

// SequenceSvcFacade allocates document numbers per numbering scope.
// Allocations for one scope are linearized by the repository's atomic
// increment; different scopes proceed independently.
type SequenceSvcFacade interface {
	// NextNumber allocates and formats the next document number for a
	// scope. A scope seen for the first time starts at "01" (with the
	// default pad width). Committed allocations are never rolled back.
	NextNumber(ctx context.Context, scopeName string) (*dto.DocumentNumberResponse, error)

	// GetScope retrieves the current counter state without allocating.
	GetScope(ctx context.Context, scopeName string) (*domain.DocumentSequence, error)

	// ConfigureScope sets a scope's zero-padding width.
	ConfigureScope(ctx context.Context, scopeName string, req dto.ConfigureScopeRequest) (*domain.DocumentSequence, error)
}
