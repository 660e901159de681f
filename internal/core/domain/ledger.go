package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind classifies a ledger event row.
type EventKind string

const (
	EventCharge     EventKind = "CHARGE"
	EventPayment    EventKind = "PAYMENT"
	EventAdjustment EventKind = "ADJUSTMENT"
)

// ChargeSourceKind records which business document produced a charge.
type ChargeSourceKind string

const (
	SourceSaleInvoice  ChargeSourceKind = "SALE_INVOICE"
	SourcePurchaseBill ChargeSourceKind = "PURCHASE_BILL"
	SourceBlasting     ChargeSourceKind = "BLASTING"
	// SourceAdjustment marks a correction entry. Adjustments carry a signed
	// amount; every other source kind must be strictly positive.
	SourceAdjustment ChargeSourceKind = "ADJUSTMENT"
)

// LedgerEvent is a single immutable row in a party's ledger. Charges and
// adjustments increase (or, for negative adjustments, decrease) what the
// party owes; payments reduce it. Corrections are new offsetting events,
// never in-place edits.
type LedgerEvent struct {
	EventID    string           `json:"eventID"` // Primary Key (UUID)
	PartyID    string           `json:"partyID"` // FK -> Party.partyID (Not Null)
	Kind       EventKind        `json:"kind"`
	SourceKind ChargeSourceKind `json:"sourceKind,omitempty"` // Empty for payments
	Amount     decimal.Decimal  `json:"amount"`
	OccurredAt time.Time        `json:"occurredAt"`
	AuditFields
}

// IsCharge reports whether the event adds to the charged total
// (regular charges and signed adjustments alike).
func (e LedgerEvent) IsCharge() bool {
	return e.Kind == EventCharge || e.Kind == EventAdjustment
}
