package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	"github.com/quarrydesk/quarrydesk/internal/models"
	"github.com/quarrydesk/quarrydesk/internal/utils/mapping"
)

const userColumns = `user_id, username, password_hash, name, email, auth_provider, provider_id, created_at, created_by, last_updated_at, last_updated_by, deleted_at, refresh_token_hash, refresh_token_expiry_time`

// PgxUserRepository implements the user repository interfaces using pgx
type PgxUserRepository struct {
	BaseRepository
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// NewPgxUserRepository creates a new user repository backed by a pgx pool
func NewPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var m models.User
	err := row.Scan(
		&m.UserID, &m.Username, &m.PasswordHash, &m.Name, &m.Email,
		&m.AuthProvider, &m.ProviderID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		&m.DeletedAt, &m.RefreshTokenHash, &m.RefreshTokenExpiryTime,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *PgxUserRepository) findUserBy(ctx context.Context, condition string, notFoundID string, args ...any) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s AND deleted_at IS NULL`, userColumns, condition)
	model, err := scanUser(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", notFoundID))
		}
		return nil, apperrors.NewAppError(500, "failed to find user", err)
	}
	user := mapping.ToDomainUser(*model)
	return &user, nil
}

// FindUserByID retrieves a user by its unique identifier
func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findUserBy(ctx, "user_id = $1", userID, userID)
}

// FindUserByUsername retrieves a user by username, for login
func (r *PgxUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findUserBy(ctx, "username = $1", username, username)
}

// FindUserByProviderID retrieves a user by external auth provider subject
func (r *PgxUserRepository) FindUserByProviderID(ctx context.Context, provider string, providerID string) (*domain.User, error) {
	return r.findUserBy(ctx, "auth_provider = $1 AND provider_id = $2", providerID, provider, providerID)
}

// SaveUser persists a new user
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	model := mapping.ToModelUser(user)
	query := fmt.Sprintf(`INSERT INTO users (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`, userColumns)
	_, err := r.Pool.Exec(ctx, query,
		model.UserID, model.Username, model.PasswordHash, model.Name, model.Email,
		model.AuthProvider, model.ProviderID,
		model.CreatedAt, model.CreatedBy, model.LastUpdatedAt, model.LastUpdatedBy,
		model.DeletedAt, model.RefreshTokenHash, model.RefreshTokenExpiryTime,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "username already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to save user", err)
	}
	return nil
}

// UpdateRefreshToken stores the hash and expiry of a user's refresh token.
// Empty values clear the stored token on logout.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time, now time.Time) error {
	var hash sql.NullString
	if refreshTokenHash != "" {
		hash = sql.NullString{String: refreshTokenHash, Valid: true}
	}
	var expiry sql.NullTime
	if expiryTime != nil {
		expiry = sql.NullTime{Time: *expiryTime, Valid: true}
	}
	query := `UPDATE users
		SET refresh_token_hash = $2, refresh_token_expiry_time = $3, last_updated_at = $4, last_updated_by = $1
		WHERE user_id = $1 AND deleted_at IS NULL`
	tag, err := r.Pool.Exec(ctx, query, userID, hash, expiry, now)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update refresh token", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", userID))
	}
	return nil
}
