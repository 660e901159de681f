package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	portssvc "github.com/quarrydesk/quarrydesk/internal/core/ports/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
	"github.com/quarrydesk/quarrydesk/internal/middleware"
	"github.com/quarrydesk/quarrydesk/internal/utils/accounting"
)

// Payment rejection reasons, in the order the validator checks them.
var (
	// ErrInvalidAmount rejects zero and negative payment amounts.
	ErrInvalidAmount = errors.New("payment amount must be positive")
	// ErrUnknownParty rejects payments against a party that does not exist.
	ErrUnknownParty = errors.New("unknown party")
	// ErrNoChargesRecorded rejects payments against a party with no charge
	// history at all.
	ErrNoChargesRecorded = errors.New("no charges recorded for party")
	// ErrNoOutstandingBalance rejects payments when the balance is exactly
	// settled.
	ErrNoOutstandingBalance = errors.New("no outstanding balance")
	// ErrPaymentExceedsOutstanding rejects overpayments. The ledger never
	// goes into credit via the payment path.
	ErrPaymentExceedsOutstanding = errors.New("payment exceeds outstanding balance")
	// ErrDataIntegrityViolation reports a negative outstanding balance found
	// during validation. It means an adjustment was posted after payments
	// and needs manual review before more payments are accepted.
	ErrDataIntegrityViolation = errors.New("outstanding balance is negative")
)

const paymentIdempotencyModule = "payment"

// PaymentService is the only write path for payment events. It runs the
// check-then-append inside one transaction under the party row lock, so two
// concurrent payments against the same party validate against serialized
// balance states.
type PaymentService struct {
	ledgerRepo portsrepo.LedgerRepositoryWithTx
	partyRepo  portsrepo.PartyRepositoryFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(lr portsrepo.LedgerRepositoryWithTx, pr portsrepo.PartyRepositoryFacade) portssvc.PaymentSvcFacade {
	return &PaymentService{ledgerRepo: lr, partyRepo: pr}
}

var _ portssvc.PaymentSvcFacade = (*PaymentService)(nil)

// validatePayment applies the rejection checks against a balance recomputed
// from the locked event history. Order matters: amount, party existence and
// charge history are ruled out before the outstanding comparison.
func validatePayment(req dto.CreatePaymentRequest, summary domain.BalanceSummary) error {
	if !summary.TotalCharged.IsPositive() {
		return ErrNoChargesRecorded
	}

	if summary.Outstanding.IsNegative() {
		return ErrDataIntegrityViolation
	}
	if summary.Outstanding.IsZero() {
		return ErrNoOutstandingBalance
	}
	if req.Amount.GreaterThan(summary.Outstanding) {
		return ErrPaymentExceedsOutstanding
	}
	return nil
}

// ApplyPayment validates and persists a payment event, returning the stored
// event and the recomputed balance after it. Every rejection leaves the
// ledger untouched.
func (s *PaymentService) ApplyPayment(ctx context.Context, partyID string, req dto.CreatePaymentRequest, idempotencyKey string, creatorUserID string) (*domain.LedgerEvent, *domain.BalanceSummary, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = s.ledgerRepo.Rollback(ctx, tx)
	}()

	// Lock the party row. Everything from here to commit is serialized
	// against other payments for the same party.
	if _, err := s.partyRepo.FindPartyByIDForUpdate(ctx, tx, partyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, ErrUnknownParty
		}
		return nil, nil, err
	}

	events, err := s.ledgerRepo.ListEventsByPartyInTx(ctx, tx, partyID)
	if err != nil {
		return nil, nil, err
	}

	summary := accounting.Summarize(partyID, events)
	if err := validatePayment(req, summary); err != nil {
		if errors.Is(err, ErrDataIntegrityViolation) {
			logger.Error("Negative outstanding balance detected",
				slog.String("party_id", partyID),
				slog.String("outstanding", summary.Outstanding.String()))
		}
		return nil, nil, err
	}

	if idempotencyKey != "" {
		if err := s.ledgerRepo.InsertIdempotencyKeyInTx(ctx, tx, idempotencyKey, paymentIdempotencyModule); err != nil {
			return nil, nil, err
		}
	}

	now := time.Now()
	event := domain.LedgerEvent{
		EventID:    uuid.NewString(),
		PartyID:    partyID,
		Kind:       domain.EventPayment,
		Amount:     req.Amount,
		OccurredAt: req.OccurredAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.AppendEventInTx(ctx, tx, event); err != nil {
		logger.Error("Failed to append payment event", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return nil, nil, fmt.Errorf("failed to append payment: %w", err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	after := domain.BalanceSummary{
		PartyID:      partyID,
		TotalCharged: summary.TotalCharged,
		TotalPaid:    summary.TotalPaid.Add(req.Amount),
		Outstanding:  summary.Outstanding.Sub(req.Amount),
	}

	logger.Info("Payment applied",
		slog.String("event_id", event.EventID),
		slog.String("party_id", partyID),
		slog.String("amount", req.Amount.String()),
		slog.String("outstanding_after", after.Outstanding.String()))
	return &event, &after, nil
}
