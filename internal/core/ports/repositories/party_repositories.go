package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
)

// PartyReader defines read operations for party master data
type PartyReader interface {
	// FindPartyByID retrieves a specific party by its unique identifier.
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties retrieves a paginated list of parties, optionally filtered by kind.
	ListParties(ctx context.Context, kind *domain.PartyKind, limit int, offset int) ([]domain.Party, error)
}

// PartyWriter defines write operations for party master data
type PartyWriter interface {
	// SaveParty persists a new party.
	SaveParty(ctx context.Context, party domain.Party) error

	// UpdatePartyContact updates the mutable contact fields of a party.
	// Identity fields (PartyID, Kind) are immutable after creation.
	UpdatePartyContact(ctx context.Context, party domain.Party) error
}

// PartyTransactionSupport defines operations that participate in ledger transactions
type PartyTransactionSupport interface {
	// FindPartyByIDForUpdate selects a party row and locks it for update within
	// a transaction. This row lock is the per-party serialization point for
	// the payment check-then-append sequence.
	FindPartyByIDForUpdate(ctx context.Context, tx pgx.Tx, partyID string) (*domain.Party, error)
}

// PartyRepositoryFacade combines all party-related repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
	PartyTransactionSupport
}
