package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
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

// LedgerService handles charge appends, event listings and balance
// derivation over the append-only ledger.
type LedgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	partyRepo  portsrepo.PartyReader
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(lr portsrepo.LedgerRepositoryFacade, pr portsrepo.PartyReader) portssvc.LedgerSvcFacade {
	return &LedgerService{ledgerRepo: lr, partyRepo: pr}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// AppendCharge records an amount owed by a party. ADJUSTMENT source kinds
// carry a signed non-zero amount; every other kind must be strictly positive.
func (s *LedgerService) AppendCharge(ctx context.Context, partyID string, req dto.CreateChargeRequest, creatorUserID string) (*domain.LedgerEvent, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.SourceKind == domain.SourceAdjustment {
		if req.Amount.IsZero() {
			return nil, fmt.Errorf("%w: adjustment amount must be non-zero", apperrors.ErrValidation)
		}
	} else if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: charge amount must be positive", apperrors.ErrValidation)
	}

	if _, err := s.partyRepo.FindPartyByID(ctx, partyID); err != nil {
		return nil, err
	}

	kind := domain.EventCharge
	if req.SourceKind == domain.SourceAdjustment {
		kind = domain.EventAdjustment
	}

	now := time.Now()
	event := domain.LedgerEvent{
		EventID:    uuid.NewString(),
		PartyID:    partyID,
		Kind:       kind,
		SourceKind: req.SourceKind,
		Amount:     req.Amount,
		OccurredAt: req.OccurredAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.AppendEvent(ctx, event); err != nil {
		logger.Error("Failed to append charge event", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to append charge: %w", err)
	}

	logger.Info("Charge appended",
		slog.String("event_id", event.EventID),
		slog.String("party_id", partyID),
		slog.String("source_kind", string(req.SourceKind)),
		slog.String("amount", req.Amount.String()))
	return &event, nil
}

func (s *LedgerService) listEvents(ctx context.Context, partyID string, kinds []domain.EventKind, params dto.ListEventsParams) ([]domain.LedgerEvent, error) {
	if _, err := s.partyRepo.FindPartyByID(ctx, partyID); err != nil {
		return nil, err
	}

	events := []domain.LedgerEvent{}
	for _, kind := range kinds {
		k := kind
		batch, err := s.ledgerRepo.ListEventsByParty(ctx, partyID, portsrepo.EventFilter{
			Kind: &k,
			From: params.From,
			To:   params.To,
		})
		if err != nil {
			return nil, err
		}
		events = append(events, batch...)
	}
	if len(kinds) > 1 {
		sortEventsByOccurrence(events)
	}
	return events, nil
}

// sortEventsByOccurrence restores occurred-at ordering after merging
// per-kind listings, keeping creation time as the tiebreak.
func sortEventsByOccurrence(events []domain.LedgerEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].OccurredAt.Equal(events[j].OccurredAt) {
			return events[i].CreatedAt.Before(events[j].CreatedAt)
		}
		return events[i].OccurredAt.Before(events[j].OccurredAt)
	})
}

// ListCharges retrieves a party's charge and adjustment events.
func (s *LedgerService) ListCharges(ctx context.Context, partyID string, params dto.ListEventsParams) ([]domain.LedgerEvent, error) {
	return s.listEvents(ctx, partyID, []domain.EventKind{domain.EventCharge, domain.EventAdjustment}, params)
}

// ListPayments retrieves a party's payment events.
func (s *LedgerService) ListPayments(ctx context.Context, partyID string, params dto.ListEventsParams) ([]domain.LedgerEvent, error) {
	return s.listEvents(ctx, partyID, []domain.EventKind{domain.EventPayment}, params)
}

// GetBalance derives a party's balance position from its full event history.
// The result is recomputed on every call; nothing is cached or stored.
func (s *LedgerService) GetBalance(ctx context.Context, partyID string) (*domain.BalanceSummary, error) {
	if _, err := s.partyRepo.FindPartyByID(ctx, partyID); err != nil {
		return nil, err
	}

	events, err := s.ledgerRepo.ListEventsByParty(ctx, partyID, portsrepo.EventFilter{})
	if err != nil {
		return nil, err
	}

	summary := accounting.Summarize(partyID, events)
	return &summary, nil
}
