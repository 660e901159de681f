package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	portssvc "github.com/quarrydesk/quarrydesk/internal/core/ports/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
	"github.com/quarrydesk/quarrydesk/internal/middleware"
)

const defaultListLimit = 50

// PartyService handles business logic for party master data.
type PartyService struct {
	partyRepo portsrepo.PartyRepositoryFacade
}

// NewPartyService creates a new PartyService.
func NewPartyService(pr portsrepo.PartyRepositoryFacade) portssvc.PartySvcFacade {
	return &PartyService{partyRepo: pr}
}

var _ portssvc.PartySvcFacade = (*PartyService)(nil)

// CreateParty creates a new customer or supplier.
func (s *PartyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, creatorUserID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	party := domain.Party{
		PartyID: uuid.NewString(),
		Kind:    req.Kind,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		logger.Error("Failed to save party in repository", slog.String("error", err.Error()), slog.String("party_name", req.Name))
		return nil, fmt.Errorf("failed to create party: %w", err)
	}

	logger.Info("Party created successfully", slog.String("party_id", party.PartyID), slog.String("kind", string(party.Kind)))
	return &party, nil
}

// GetPartyByID retrieves a party by ID.
func (s *PartyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	return s.partyRepo.FindPartyByID(ctx, partyID)
}

// ListParties retrieves a paginated list of parties.
func (s *PartyService) ListParties(ctx context.Context, params dto.ListPartiesParams) ([]domain.Party, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}
	return s.partyRepo.ListParties(ctx, params.Kind, limit, offset)
}

// UpdateParty updates a party's mutable contact fields. Identity (ID, kind)
// is immutable; only provided fields change.
func (s *PartyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, requestingUserID string) (*domain.Party, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		party.Name = *req.Name
	}
	if req.Phone != nil {
		party.Phone = *req.Phone
	}
	if req.Address != nil {
		party.Address = *req.Address
	}
	party.LastUpdatedAt = time.Now()
	party.LastUpdatedBy = requestingUserID

	if err := s.partyRepo.UpdatePartyContact(ctx, *party); err != nil {
		logger.Error("Failed to update party in repository", slog.String("error", err.Error()), slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to update party: %w", err)
	}

	logger.Info("Party updated successfully", slog.String("party_id", partyID))
	return party, nil
}
