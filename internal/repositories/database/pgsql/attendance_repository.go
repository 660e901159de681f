package pgsql

import (
	"context"
	"errors"
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

// PgxAttendanceRepository implements AttendanceRepository using pgx
type PgxAttendanceRepository struct {
	BaseRepository
}

var _ portsrepo.AttendanceRepository = (*PgxAttendanceRepository)(nil)

// NewPgxAttendanceRepository creates a new attendance repository backed by a pgx pool
func NewPgxAttendanceRepository(pool *pgxpool.Pool) *PgxAttendanceRepository {
	return &PgxAttendanceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// UpsertAttendance writes one record per (employee, date), overwriting an
// existing mark for the same day. The whole batch runs in one round trip.
func (r *PgxAttendanceRepository) UpsertAttendance(ctx context.Context, records []domain.AttendanceRecord) error {
	if len(records) == 0 {
		return nil
	}
	query := `INSERT INTO attendance (employee_id, work_date, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (employee_id, work_date) DO UPDATE
		SET status = EXCLUDED.status, last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by`

	batch := &pgx.Batch{}
	for _, rec := range records {
		batch.Queue(query,
			rec.EmployeeID, rec.WorkDate, string(rec.Status),
			rec.CreatedAt, rec.CreatedBy, rec.LastUpdatedAt, rec.LastUpdatedBy,
		)
	}

	results := r.Pool.SendBatch(ctx, batch)
	defer results.Close()
	for range records {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23503" {
				return apperrors.NewAppError(404, "employee does not exist", apperrors.ErrNotFound)
			}
			return apperrors.NewAppError(500, "failed to upsert attendance", err)
		}
	}
	return nil
}

// ListAttendanceForMonth retrieves an employee's records for one calendar
// month, ordered by date.
func (r *PgxAttendanceRepository) ListAttendanceForMonth(ctx context.Context, employeeID string, year int, month time.Month) ([]domain.AttendanceRecord, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	query := `SELECT employee_id, work_date, status, created_at, created_by, last_updated_at, last_updated_by
		FROM attendance
		WHERE employee_id = $1 AND work_date >= $2 AND work_date < $3
		ORDER BY work_date ASC`

	rows, err := r.Pool.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list attendance", err)
	}
	defer rows.Close()

	records := []models.AttendanceRecord{}
	for rows.Next() {
		var m models.AttendanceRecord
		if err := rows.Scan(
			&m.EmployeeID, &m.WorkDate, &m.Status,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attendance row", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate attendance rows", err)
	}
	return mapping.ToDomainAttendanceSlice(records), nil
}
