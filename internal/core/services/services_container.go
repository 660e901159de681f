package services

import (
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	portssvc "github.com/quarrydesk/quarrydesk/internal/core/ports/services"
	"github.com/quarrydesk/quarrydesk/internal/platform/config"
)

// NewServiceContainer wires every service over the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	userSvc := NewUserService(repos.UserRepo)

	return &portssvc.ServiceContainer{
		Party:    NewPartyService(repos.PartyRepo),
		Ledger:   NewLedgerService(repos.LedgerRepo, repos.PartyRepo),
		Payment:  NewPaymentService(repos.LedgerRepo, repos.PartyRepo),
		Sequence: NewSequenceService(repos.SequenceRepo),
		Employee: NewEmployeeService(repos.EmployeeRepo),
		Payroll:  NewPayrollService(repos.EmployeeRepo, repos.AttendanceRepo),
		User:     userSvc,

		TokenService:       NewTokenService(cfg, userSvc),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
	}
}
