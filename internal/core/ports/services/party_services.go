package services

import (
	"context"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/quarrydesk/quarrydesk/internal/dto"
)

// PartyReaderSvc defines read operations for party master data
type PartyReaderSvc interface {
	// GetPartyByID retrieves a party by ID.
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties.
	ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.Party, error)
}

// PartyWriterSvc defines write operations for party master data
type PartyWriterSvc interface {
	// CreateParty creates a new customer or supplier.
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error)

	// UpdateParty updates a party's mutable contact fields.
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Party, error)
}

// PartySvcFacade combines all party-related service interfaces
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
}
