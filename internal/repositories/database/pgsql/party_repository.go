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

const partyColumns = `party_id, kind, name, phone, address, created_at, created_by, last_updated_at, last_updated_by`

// PgxPartyRepository implements the party repository interfaces using pgx
type PgxPartyRepository struct {
	BaseRepository
}

var _ portsrepo.PartyRepositoryFacade = (*PgxPartyRepository)(nil)

// NewPgxPartyRepository creates a new party repository backed by a pgx pool
func NewPgxPartyRepository(pool *pgxpool.Pool) *PgxPartyRepository {
	return &PgxPartyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func scanParty(row pgx.Row) (*models.Party, error) {
	var m models.Party
	err := row.Scan(
		&m.PartyID, &m.Kind, &m.Name, &m.Phone, &m.Address,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveParty persists a new party
func (r *PgxPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	model := mapping.ToModelParty(party)
	query := fmt.Sprintf(`INSERT INTO parties (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`, partyColumns)
	_, err := r.Pool.Exec(ctx, query,
		model.PartyID, model.Kind, model.Name, model.Phone, model.Address,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "party already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save party", err)
	}
	return nil
}

// FindPartyByID retrieves a party by its ID
func (r *PgxPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	query := fmt.Sprintf(`SELECT %s FROM parties WHERE party_id = $1`, partyColumns)
	model, err := scanParty(r.Pool.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("party %s not found", partyID))
		}
		return nil, apperrors.NewAppError(500, "failed to find party", err)
	}
	party := mapping.ToDomainParty(*model)
	return &party, nil
}

// ListParties retrieves a paginated list of parties, optionally filtered by kind
func (r *PgxPartyRepository) ListParties(ctx context.Context, kind *domain.PartyKind, limit int, offset int) ([]domain.Party, error) {
	query := fmt.Sprintf(`SELECT %s FROM parties`, partyColumns)
	args := []any{}
	argPos := 1
	if kind != nil {
		query += fmt.Sprintf(" WHERE kind = $%d", argPos)
		args = append(args, string(*kind))
		argPos++
	}
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, limit, offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list parties", err)
	}
	defer rows.Close()

	parties := []models.Party{}
	for rows.Next() {
		var m models.Party
		if err := rows.Scan(
			&m.PartyID, &m.Kind, &m.Name, &m.Phone, &m.Address,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan party row", err)
		}
		parties = append(parties, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate party rows", err)
	}
	return mapping.ToDomainPartySlice(parties), nil
}

// UpdatePartyContact updates the mutable contact fields of a party
func (r *PgxPartyRepository) UpdatePartyContact(ctx context.Context, party domain.Party) error {
	model := mapping.ToModelParty(party)
	query := `UPDATE parties
		SET name = $2, phone = $3, address = $4, last_updated_at = $5, last_updated_by = $6
		WHERE party_id = $1`
	tag, err := r.Pool.Exec(ctx, query,
		model.PartyID, model.Name, model.Phone, model.Address,
		model.LastUpdatedAt, model.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update party", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("party %s not found", party.PartyID))
	}
	return nil
}

// FindPartyByIDForUpdate retrieves a party within a transaction, locking the row
func (r *PgxPartyRepository) FindPartyByIDForUpdate(ctx context.Context, tx pgx.Tx, partyID string) (*domain.Party, error) {
	query := fmt.Sprintf(`SELECT %s FROM parties WHERE party_id = $1 FOR UPDATE`, partyColumns)
	model, err := scanParty(tx.QueryRow(ctx, query, partyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("party %s not found", partyID))
		}
		return nil, apperrors.NewAppError(500, "failed to lock party row", err)
	}
	party := mapping.ToDomainParty(*model)
	return &party, nil
}
