package services

import (
	"context"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/quarrydesk/quarrydesk/internal/dto"
)

// LedgerReaderSvc defines read operations over a party's ledger.
type LedgerReaderSvc interface {
	// ListCharges retrieves a party's charge and adjustment events,
	// ascending by occurred-at, optionally windowed.
	ListCharges(ctx context.Context, partyID string, params dto.ListEventsParams) ([]domain.LedgerEvent, error)

	// ListPayments retrieves a party's payment events, ascending by
	// occurred-at, optionally windowed.
	ListPayments(ctx context.Context, partyID string, params dto.ListEventsParams) ([]domain.LedgerEvent, error)
}

// BalanceCalculatorSvc recomputes a party's position from stored events.
type BalanceCalculatorSvc interface {
	// GetBalance derives {totalCharged, totalPaid, outstanding} from the
	// party's full event history. The outstanding figure is the raw
	// arithmetic value; a negative result is reported, not clamped.
	GetBalance(ctx context.Context, partyID string) (*domain.BalanceSummary, error)
}

// ChargeWriterSvc appends charge and adjustment events.
type ChargeWriterSvc interface {
	// AppendCharge records an amount owed by a party when a sale, purchase
	// or blasting entry is finalized. ADJUSTMENT source kinds carry a signed
	// amount; all others must be strictly positive.
	AppendCharge(ctx context.Context, partyID string, req dto.CreateChargeRequest, creatorUserID string) (*domain.LedgerEvent, error)
}

// LedgerSvcFacade combines all ledger-related service interfaces
type LedgerSvcFacade interface {
	LedgerReaderSvc
	BalanceCalculatorSvc
	ChargeWriterSvc
}

// PaymentSvcFacade is the only route by which payment events reach the
// ledger store. ApplyPayment validates every invariant server-side and
// executes the check-then-append under per-party mutual exclusion.
type PaymentSvcFacade interface {
	// ApplyPayment validates and persists a payment, returning the stored
	// event and the recomputed balance. idempotencyKey may be empty; when
	// set, a repeated key is rejected without a second append.
	ApplyPayment(ctx context.Context, partyID string, req dto.CreatePaymentRequest, idempotencyKey string, creatorUserID string) (*domain.LedgerEvent, *domain.BalanceSummary, error)
}
