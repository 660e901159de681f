package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	"github.com/quarrydesk/quarrydesk/internal/models"
	"github.com/quarrydesk/quarrydesk/internal/utils/mapping"
)

const ledgerEventColumns = `event_id, party_id, kind, source_kind, amount, occurred_at, created_at, created_by, last_updated_at, last_updated_by`

// eventOrdering keeps listings deterministic: occurred-at ascending with
// insertion order (seq) as the tiebreak for same-instant events.
const eventOrdering = ` ORDER BY occurred_at ASC, seq ASC`

// PgxLedgerRepository implements the ledger repository interfaces using pgx
type PgxLedgerRepository struct {
	BaseRepository
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// NewPgxLedgerRepository creates a new ledger repository backed by a pgx pool
func NewPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func buildEventFilter(partyID string, filter portsrepo.EventFilter) (string, []any) {
	where := " WHERE party_id = $1"
	args := []any{partyID}
	argPos := 2
	if filter.Kind != nil {
		where += fmt.Sprintf(" AND kind = $%d", argPos)
		args = append(args, string(*filter.Kind))
		argPos++
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND occurred_at >= $%d", argPos)
		args = append(args, *filter.From)
		argPos++
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND occurred_at <= $%d", argPos)
		args = append(args, *filter.To)
	}
	return where, args
}

func scanLedgerEvents(rows pgx.Rows) ([]models.LedgerEvent, error) {
	defer rows.Close()
	events := []models.LedgerEvent{}
	for rows.Next() {
		var m models.LedgerEvent
		if err := rows.Scan(
			&m.EventID, &m.PartyID, &m.Kind, &m.SourceKind, &m.Amount, &m.OccurredAt,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, err
		}
		events = append(events, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// ListEventsByParty retrieves a party's ledger events matching the filter
func (r *PgxLedgerRepository) ListEventsByParty(ctx context.Context, partyID string, filter portsrepo.EventFilter) ([]domain.LedgerEvent, error) {
	where, args := buildEventFilter(partyID, filter)
	query := fmt.Sprintf(`SELECT %s FROM ledger_events`, ledgerEventColumns) + where + eventOrdering
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list ledger events", err)
	}
	events, err := scanLedgerEvents(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan ledger events", err)
	}
	return mapping.ToDomainLedgerEventSlice(events), nil
}

// CountEventsByParty returns the number of events matching the filter
func (r *PgxLedgerRepository) CountEventsByParty(ctx context.Context, partyID string, filter portsrepo.EventFilter) (int64, error) {
	where, args := buildEventFilter(partyID, filter)
	query := `SELECT COUNT(*) FROM ledger_events` + where
	var count int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count ledger events", err)
	}
	return count, nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

func insertEvent(ctx context.Context, db execer, event domain.LedgerEvent) error {
	model := mapping.ToModelLedgerEvent(event)
	query := fmt.Sprintf(`INSERT INTO ledger_events (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`, ledgerEventColumns)
	_, err := db.Exec(ctx, query,
		model.EventID, model.PartyID, model.Kind, model.SourceKind, model.Amount, model.OccurredAt,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return apperrors.NewAppError(409, "ledger event already exists", apperrors.ErrDuplicate)
			case "23503":
				return apperrors.NewAppError(404, "party does not exist", apperrors.ErrNotFound)
			}
		}
		return apperrors.NewAppError(500, "failed to append ledger event", err)
	}
	return nil
}

// AppendEvent persists a single charge or adjustment event
func (r *PgxLedgerRepository) AppendEvent(ctx context.Context, event domain.LedgerEvent) error {
	return insertEvent(ctx, r.Pool, event)
}

// ListEventsByPartyInTx reads a party's full event history inside the given transaction
func (r *PgxLedgerRepository) ListEventsByPartyInTx(ctx context.Context, tx pgx.Tx, partyID string) ([]domain.LedgerEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM ledger_events WHERE party_id = $1`, ledgerEventColumns) + eventOrdering
	rows, err := tx.Query(ctx, query, partyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list ledger events in tx", err)
	}
	events, err := scanLedgerEvents(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan ledger events in tx", err)
	}
	return mapping.ToDomainLedgerEventSlice(events), nil
}

// AppendEventInTx inserts an event inside the given transaction
func (r *PgxLedgerRepository) AppendEventInTx(ctx context.Context, tx pgx.Tx, event domain.LedgerEvent) error {
	return insertEvent(ctx, tx, event)
}

// InsertIdempotencyKeyInTx records an idempotency key inside the given transaction.
// A unique violation means the key was already used and the whole transaction
// must be abandoned by the caller.
func (r *PgxLedgerRepository) InsertIdempotencyKeyInTx(ctx context.Context, tx pgx.Tx, key string, module string) error {
	query := `INSERT INTO idempotency_keys (idempotency_key, module, created_at) VALUES ($1, $2, NOW())`
	_, err := tx.Exec(ctx, query, key, module)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "idempotency key already used", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert idempotency key", err)
	}
	return nil
}
