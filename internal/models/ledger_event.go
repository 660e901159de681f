package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind mirrors domain.EventKind at the persistence layer.
type EventKind string

// LedgerEvent represents one append-only row in the ledger_events table.
// Rows are never updated or deleted; corrections are new adjustment rows.
type LedgerEvent struct {
	EventID    string          `db:"event_id"`
	PartyID    string          `db:"party_id"`
	Kind       EventKind       `db:"kind"`
	SourceKind string          `db:"source_kind"` // Empty for payments
	Amount     decimal.Decimal `db:"amount"`
	OccurredAt time.Time       `db:"occurred_at"`
	AuditFields
}
