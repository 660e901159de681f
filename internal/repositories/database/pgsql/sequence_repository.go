package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	"github.com/quarrydesk/quarrydesk/internal/models"
)

// PgxSequenceRepository implements SequenceRepository using pgx
type PgxSequenceRepository struct {
	BaseRepository
}

var _ portsrepo.SequenceRepository = (*PgxSequenceRepository)(nil)

// NewPgxSequenceRepository creates a new sequence repository backed by a pgx pool
func NewPgxSequenceRepository(pool *pgxpool.Pool) *PgxSequenceRepository {
	return &PgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func toDomainSequence(m models.DocumentSequence) *domain.DocumentSequence {
	return &domain.DocumentSequence{
		ScopeName:     m.ScopeName,
		HighWaterMark: m.HighWaterMark,
		PadWidth:      m.PadWidth,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

// IncrementAndGet atomically bumps the scope's high-water mark and returns the
// resulting counter. The single-statement upsert is the linearization point:
// Postgres row locking guarantees two concurrent calls observe distinct values.
// An unknown scope is created with the default pad width and a mark of 1.
func (r *PgxSequenceRepository) IncrementAndGet(ctx context.Context, scopeName string) (*domain.DocumentSequence, error) {
	query := `INSERT INTO document_sequences (scope_name, high_water_mark, pad_width, created_at, last_updated_at)
		VALUES ($1, 1, $2, NOW(), NOW())
		ON CONFLICT (scope_name) DO UPDATE
		SET high_water_mark = document_sequences.high_water_mark + 1, last_updated_at = NOW()
		RETURNING scope_name, high_water_mark, pad_width, created_at, last_updated_at`
	var m models.DocumentSequence
	err := r.Pool.QueryRow(ctx, query, scopeName, domain.DefaultSequencePadWidth).Scan(
		&m.ScopeName, &m.HighWaterMark, &m.PadWidth, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to increment sequence", err)
	}
	return toDomainSequence(m), nil
}

// FindSequenceByScope retrieves a scope's counter without mutating it
func (r *PgxSequenceRepository) FindSequenceByScope(ctx context.Context, scopeName string) (*domain.DocumentSequence, error) {
	query := `SELECT scope_name, high_water_mark, pad_width, created_at, last_updated_at
		FROM document_sequences WHERE scope_name = $1`
	var m models.DocumentSequence
	err := r.Pool.QueryRow(ctx, query, scopeName).Scan(
		&m.ScopeName, &m.HighWaterMark, &m.PadWidth, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("sequence scope %s not found", scopeName))
		}
		return nil, apperrors.NewAppError(500, "failed to find sequence scope", err)
	}
	return toDomainSequence(m), nil
}

// ConfigureScope creates the scope if absent and sets its pad width. The
// high-water mark is left untouched for an existing scope.
func (r *PgxSequenceRepository) ConfigureScope(ctx context.Context, scopeName string, padWidth int) (*domain.DocumentSequence, error) {
	query := `INSERT INTO document_sequences (scope_name, high_water_mark, pad_width, created_at, last_updated_at)
		VALUES ($1, 0, $2, NOW(), NOW())
		ON CONFLICT (scope_name) DO UPDATE
		SET pad_width = EXCLUDED.pad_width, last_updated_at = NOW()
		RETURNING scope_name, high_water_mark, pad_width, created_at, last_updated_at`
	var m models.DocumentSequence
	err := r.Pool.QueryRow(ctx, query, scopeName, padWidth).Scan(
		&m.ScopeName, &m.HighWaterMark, &m.PadWidth, &m.CreatedAt, &m.LastUpdatedAt,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to configure sequence scope", err)
	}
	return toDomainSequence(m), nil
}
