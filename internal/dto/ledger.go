package dto

import (
	"time"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateChargeRequest defines the data needed to append a charge event.
// For ADJUSTMENT source kinds the amount is signed (may be negative,
// never zero); every other kind must be strictly positive.
type CreateChargeRequest struct {
	Amount     decimal.Decimal         `json:"amount" binding:"required"`
	OccurredAt time.Time               `json:"occurredAt" binding:"required"`
	SourceKind domain.ChargeSourceKind `json:"sourceKind" binding:"required,oneof=SALE_INVOICE PURCHASE_BILL BLASTING ADJUSTMENT"`
}

// CreatePaymentRequest defines the data needed to apply a payment.
type CreatePaymentRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	OccurredAt time.Time       `json:"occurredAt" binding:"required"`
}

// ListEventsParams holds the optional occurred-at window for event listings.
type ListEventsParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
}

// LedgerEventResponse defines the data returned for a single ledger event.
type LedgerEventResponse struct {
	EventID    string                  `json:"eventID"`
	PartyID    string                  `json:"partyID"`
	Kind       domain.EventKind        `json:"kind"`
	SourceKind domain.ChargeSourceKind `json:"sourceKind,omitempty"`
	Amount     decimal.Decimal         `json:"amount"`
	OccurredAt time.Time               `json:"occurredAt"`
	CreatedAt  time.Time               `json:"createdAt"`
	CreatedBy  string                  `json:"createdBy"`
}

// ToLedgerEventResponse converts a domain.LedgerEvent to its response DTO
func ToLedgerEventResponse(e *domain.LedgerEvent) LedgerEventResponse {
	return LedgerEventResponse{
		EventID:    e.EventID,
		PartyID:    e.PartyID,
		Kind:       e.Kind,
		SourceKind: e.SourceKind,
		Amount:     e.Amount,
		OccurredAt: e.OccurredAt,
		CreatedAt:  e.CreatedAt,
		CreatedBy:  e.CreatedBy,
	}
}

// ToLedgerEventResponses converts a slice of domain events to response DTOs
func ToLedgerEventResponses(events []domain.LedgerEvent) []LedgerEventResponse {
	resp := make([]LedgerEventResponse, len(events))
	for i := range events {
		resp[i] = ToLedgerEventResponse(&events[i])
	}
	return resp
}

// BalanceResponse reports a party's derived balance position.
type BalanceResponse struct {
	PartyID      string          `json:"partyID"`
	TotalCharged decimal.Decimal `json:"totalCharged"`
	TotalPaid    decimal.Decimal `json:"totalPaid"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// ToBalanceResponse converts a domain.BalanceSummary to BalanceResponse
func ToBalanceResponse(s *domain.BalanceSummary) BalanceResponse {
	return BalanceResponse{
		PartyID:      s.PartyID,
		TotalCharged: s.TotalCharged,
		TotalPaid:    s.TotalPaid,
		Outstanding:  s.Outstanding,
	}
}

// PaymentResponse returns the stored payment together with the recomputed
// balance so the UI can refresh its outstanding panel in one round trip.
type PaymentResponse struct {
	Payment LedgerEventResponse `json:"payment"`
	Balance BalanceResponse     `json:"balance"`
}
