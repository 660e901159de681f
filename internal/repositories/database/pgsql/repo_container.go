package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx repository over a shared pool
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		PartyRepo:      NewPgxPartyRepository(pool),
		LedgerRepo:     NewPgxLedgerRepository(pool),
		SequenceRepo:   NewPgxSequenceRepository(pool),
		EmployeeRepo:   NewPgxEmployeeRepository(pool),
		AttendanceRepo: NewPgxAttendanceRepository(pool),
		UserRepo:       NewPgxUserRepository(pool),
	}
}
