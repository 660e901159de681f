package repositories

// RepositoryProvider aggregates every repository the service layer needs.
type RepositoryProvider struct {
	PartyRepo      PartyRepositoryFacade
	LedgerRepo     LedgerRepositoryWithTx
	SequenceRepo   SequenceRepository
	EmployeeRepo   EmployeeRepositoryFacade
	AttendanceRepo AttendanceRepository
	UserRepo       UserRepositoryFacade
}
