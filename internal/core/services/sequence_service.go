package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	portssvc "github.com/quarrydesk/quarrydesk/internal/core/ports/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
	"github.com/quarrydesk/quarrydesk/internal/middleware"
)

// SequenceService allocates and formats document numbers per scope.
type SequenceService struct {
	sequenceRepo portsrepo.SequenceRepository
}

// NewSequenceService creates a new SequenceService.
func NewSequenceService(sr portsrepo.SequenceRepository) portssvc.SequenceSvcFacade {
	return &SequenceService{sequenceRepo: sr}
}

var _ portssvc.SequenceSvcFacade = (*SequenceService)(nil)

// FormatNumber zero-pads a counter value to the scope's width. Values wider
// than the pad width print unpadded at their natural length ("99" is
// followed by "100").
func FormatNumber(value int64, padWidth int) string {
	return fmt.Sprintf("%0*d", padWidth, value)
}

// NextNumber allocates and formats the next document number for a scope.
// Allocation happens even if the caller later discards the number; gaps are
// acceptable, duplicates are not.
func (s *SequenceService) NextNumber(ctx context.Context, scopeName string) (*dto.DocumentNumberResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	seq, err := s.sequenceRepo.IncrementAndGet(ctx, scopeName)
	if err != nil {
		logger.Error("Failed to allocate document number", slog.String("error", err.Error()), slog.String("scope", scopeName))
		return nil, fmt.Errorf("failed to allocate document number: %w", err)
	}

	logger.Info("Document number allocated",
		slog.String("scope", scopeName),
		slog.Int64("value", seq.HighWaterMark))
	return &dto.DocumentNumberResponse{
		ScopeName: seq.ScopeName,
		Number:    FormatNumber(seq.HighWaterMark, seq.PadWidth),
		Value:     seq.HighWaterMark,
	}, nil
}

// GetScope retrieves the current counter state without allocating.
func (s *SequenceService) GetScope(ctx context.Context, scopeName string) (*domain.DocumentSequence, error) {
	return s.sequenceRepo.FindSequenceByScope(ctx, scopeName)
}

// ConfigureScope sets a scope's zero-padding width, creating it if absent.
func (s *SequenceService) ConfigureScope(ctx context.Context, scopeName string, req dto.ConfigureScopeRequest) (*domain.DocumentSequence, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	seq, err := s.sequenceRepo.ConfigureScope(ctx, scopeName, req.PadWidth)
	if err != nil {
		logger.Error("Failed to configure sequence scope", slog.String("error", err.Error()), slog.String("scope", scopeName))
		return nil, fmt.Errorf("failed to configure scope: %w", err)
	}

	logger.Info("Sequence scope configured", slog.String("scope", scopeName), slog.Int("pad_width", req.PadWidth))
	return seq, nil
}
