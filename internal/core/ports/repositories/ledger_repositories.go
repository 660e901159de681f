package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
)

// EventFilter narrows a ledger event listing. A nil bound leaves that side
// of the occurred-at window open; a nil Kind returns every event kind.
type EventFilter struct {
	Kind *domain.EventKind
	From *time.Time
	To   *time.Time
}

// LedgerReader defines read operations over the append-only event log.
// Listings are ordered by occurred_at ascending with insertion order as the
// tiebreak, and are re-iterable plain reads with no side effects.
type LedgerReader interface {
	// ListEventsByParty retrieves a party's ledger events matching the filter.
	ListEventsByParty(ctx context.Context, partyID string, filter EventFilter) ([]domain.LedgerEvent, error)

	// CountEventsByParty returns the number of events matching the filter.
	CountEventsByParty(ctx context.Context, partyID string, filter EventFilter) (int64, error)
}

// LedgerWriter defines append operations. Events are never updated or
// deleted; corrections are new adjustment events.
type LedgerWriter interface {
	// AppendEvent persists a single charge or adjustment event.
	// Payment events must go through the transactional path instead.
	AppendEvent(ctx context.Context, event domain.LedgerEvent) error
}

// LedgerTransactionSupport defines the tx-scoped operations the payment
// validator composes under the party row lock.
type LedgerTransactionSupport interface {
	// ListEventsByPartyInTx reads a party's full event history inside the
	// given transaction, so the balance recomputation sees a state that
	// cannot change before the payment row is inserted.
	ListEventsByPartyInTx(ctx context.Context, tx pgx.Tx, partyID string) ([]domain.LedgerEvent, error)

	// AppendEventInTx inserts an event inside the given transaction.
	AppendEventInTx(ctx context.Context, tx pgx.Tx, event domain.LedgerEvent) error

	// InsertIdempotencyKeyInTx records an idempotency key inside the given
	// transaction. Returns apperrors.ErrDuplicate if the key was already used.
	InsertIdempotencyKeyInTx(ctx context.Context, tx pgx.Tx, key string, module string) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
	LedgerTransactionSupport
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
