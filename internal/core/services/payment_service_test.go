package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	portssvc "github.com/quarrydesk/quarrydesk/internal/core/ports/services"
	"github.com/quarrydesk/quarrydesk/internal/core/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

// Ensure MockLedgerRepository implements the full interface
var _ portsrepo.LedgerRepositoryWithTx = (*MockLedgerRepository)(nil)

func (m *MockLedgerRepository) ListEventsByParty(ctx context.Context, partyID string, filter portsrepo.EventFilter) ([]domain.LedgerEvent, error) {
	args := m.Called(ctx, partyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEvent), args.Error(1)
}

func (m *MockLedgerRepository) CountEventsByParty(ctx context.Context, partyID string, filter portsrepo.EventFilter) (int64, error) {
	args := m.Called(ctx, partyID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) AppendEvent(ctx context.Context, event domain.LedgerEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockLedgerRepository) ListEventsByPartyInTx(ctx context.Context, tx pgx.Tx, partyID string) ([]domain.LedgerEvent, error) {
	args := m.Called(ctx, tx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEvent), args.Error(1)
}

func (m *MockLedgerRepository) AppendEventInTx(ctx context.Context, tx pgx.Tx, event domain.LedgerEvent) error {
	args := m.Called(ctx, tx, event)
	return args.Error(0)
}

func (m *MockLedgerRepository) InsertIdempotencyKeyInTx(ctx context.Context, tx pgx.Tx, key string, module string) error {
	args := m.Called(ctx, tx, key, module)
	return args.Error(0)
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock PartyRepository ---
type MockPartyRepository struct {
	mock.Mock
}

// Ensure MockPartyRepository implements the full interface
var _ portsrepo.PartyRepositoryFacade = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, kind *domain.PartyKind, limit int, offset int) ([]domain.Party, error) {
	args := m.Called(ctx, kind, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) UpdatePartyContact(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) FindPartyByIDForUpdate(ctx context.Context, tx pgx.Tx, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, tx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Party), args.Error(1)
}

// --- Test Suite Setup ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockPartyRepo  *MockPartyRepository
	service        portssvc.PaymentSvcFacade
	party          domain.Party
	userID         string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewPaymentService(suite.mockLedgerRepo, suite.mockPartyRepo)

	suite.userID = uuid.NewString()
	suite.party = domain.Party{
		PartyID: uuid.NewString(),
		Kind:    domain.Customer,
		Name:    "Sharma Constructions",
	}
}

func (suite *PaymentServiceTestSuite) charge(amount string, occurredAt time.Time) domain.LedgerEvent {
	return domain.LedgerEvent{
		EventID:    uuid.NewString(),
		PartyID:    suite.party.PartyID,
		Kind:       domain.EventCharge,
		SourceKind: domain.SourceSaleInvoice,
		Amount:     decimal.RequireFromString(amount),
		OccurredAt: occurredAt,
	}
}

func (suite *PaymentServiceTestSuite) adjustment(amount string, occurredAt time.Time) domain.LedgerEvent {
	return domain.LedgerEvent{
		EventID:    uuid.NewString(),
		PartyID:    suite.party.PartyID,
		Kind:       domain.EventAdjustment,
		SourceKind: domain.SourceAdjustment,
		Amount:     decimal.RequireFromString(amount),
		OccurredAt: occurredAt,
	}
}

func (suite *PaymentServiceTestSuite) payment(amount string, occurredAt time.Time) domain.LedgerEvent {
	return domain.LedgerEvent{
		EventID:    uuid.NewString(),
		PartyID:    suite.party.PartyID,
		Kind:       domain.EventPayment,
		Amount:     decimal.RequireFromString(amount),
		OccurredAt: occurredAt,
	}
}

// expectLockedHistory wires the happy transactional path up to validation:
// begin, lock the party row, read its history inside the tx.
func (suite *PaymentServiceTestSuite) expectLockedHistory(ctx context.Context, history []domain.LedgerEvent) {
	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	suite.mockPartyRepo.On("FindPartyByIDForUpdate", ctx, mock.Anything, suite.party.PartyID).Return(&suite.party, nil).Once()
	suite.mockLedgerRepo.On("ListEventsByPartyInTx", ctx, mock.Anything, suite.party.PartyID).Return(history, nil).Once()
}

// --- Test Cases ---

func (suite *PaymentServiceTestSuite) TestApplyPayment_Success() {
	ctx := context.Background()
	occurred := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	history := []domain.LedgerEvent{
		suite.charge("1000.00", occurred.AddDate(0, 0, -20)),
		suite.payment("250.00", occurred.AddDate(0, 0, -5)),
	}
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("400.00"),
		OccurredAt: occurred,
	}

	suite.expectLockedHistory(ctx, history)
	suite.mockLedgerRepo.On("AppendEventInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerEvent")).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	event, balance, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, "", suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(event)
	suite.Require().NotNil(balance)
	suite.NotEmpty(event.EventID)
	suite.Equal(domain.EventPayment, event.Kind)
	suite.Equal(suite.party.PartyID, event.PartyID)
	suite.True(event.Amount.Equal(req.Amount))
	suite.Equal(suite.userID, event.CreatedBy)
	suite.True(balance.TotalCharged.Equal(decimal.RequireFromString("1000.00")))
	suite.True(balance.TotalPaid.Equal(decimal.RequireFromString("650.00")))
	suite.True(balance.Outstanding.Equal(decimal.RequireFromString("350.00")))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockPartyRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "InsertIdempotencyKeyInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_ExactOutstandingAccepted() {
	ctx := context.Background()
	occurred := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	history := []domain.LedgerEvent{
		suite.charge("500.00", occurred.AddDate(0, 0, -10)),
		suite.payment("200.00", occurred.AddDate(0, 0, -2)),
	}
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("300.00"),
		OccurredAt: occurred,
	}

	suite.expectLockedHistory(ctx, history)
	suite.mockLedgerRepo.On("AppendEventInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerEvent")).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	_, balance, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, "", suite.userID)

	suite.Require().NoError(err)
	suite.True(balance.Outstanding.IsZero())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_ZeroAmountRejected() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount:     decimal.Zero,
		OccurredAt: time.Now(),
	}

	event, balance, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, "", suite.userID)

	suite.Require().ErrorIs(err, services.ErrInvalidAmount)
	suite.Nil(event)
	suite.Nil(balance)
	// Rejected before any transaction is opened.
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_NegativeAmountRejected() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("-50.00"),
		OccurredAt: time.Now(),
	}

	_, _, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, "", suite.userID)

	suite.Require().ErrorIs(err, services.ErrInvalidAmount)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_UnknownParty() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("100.00"),
		OccurredAt: time.Now(),
	}

	suite.mockLedgerRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", ctx, mock.Anything).Return(nil)
	suite.mockPartyRepo.On("FindPartyByIDForUpdate", ctx, mock.Anything, unknownID).
		Return(nil, apperrors.NewNotFoundError("party not found")).Once()

	_, _, err := suite.service.ApplyPayment(ctx, unknownID, req, "", suite.userID)

	suite.Require().ErrorIs(err, services.ErrUnknownParty)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEventInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_NoChargesRecorded() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("100.00"),
		OccurredAt: time.Now(),
	}

	suite.expectLockedHistory(ctx, []domain.LedgerEvent{})

	_, _, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, "", suite.userID)

	suite.Require().ErrorIs(err, services.ErrNoChargesRecorded)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEventInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_ChargesNettedToZero() {
	ctx := context.Background()
	occurred := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	// A charge fully reversed by an adjustment leaves nothing payable.
	history := []domain.LedgerEvent{
		suite.charge("500.00", occurred.AddDate(0, 0, -10)),
		suite.adjustment("-500.00", occurred.AddDate(0, 0, -9)),
	}
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("100.00"),
		OccurredAt: occurred,
	}

	suite.expectLockedHistory(ctx, history)

	_, _, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, "", suite.userID)

	suite.Require().ErrorIs(err, services.ErrNoChargesRecorded)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEventInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_NoOutstandingBalance() {
	ctx := context.Background()
	occurred := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	// The earlier payment settled the ledger exactly; the next attempt must
	// be rejected for having nothing left to pay against.
	history := []domain.LedgerEvent{
		suite.charge("500.00", occurred.AddDate(0, 0, -10)),
		suite.payment("500.00", occurred.AddDate(0, 0, -1)),
	}
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("0.01"),
		OccurredAt: occurred,
	}

	suite.expectLockedHistory(ctx, history)

	_, _, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, "", suite.userID)

	suite.Require().ErrorIs(err, services.ErrNoOutstandingBalance)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEventInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_ExceedsOutstanding() {
	ctx := context.Background()
	occurred := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	history := []domain.LedgerEvent{
		suite.charge("500.00", occurred.AddDate(0, 0, -10)),
		suite.payment("200.00", occurred.AddDate(0, 0, -2)),
	}
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("300.01"),
		OccurredAt: occurred,
	}

	suite.expectLockedHistory(ctx, history)

	_, _, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, "", suite.userID)

	suite.Require().ErrorIs(err, services.ErrPaymentExceedsOutstanding)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEventInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_NegativeOutstandingIsIntegrityViolation() {
	ctx := context.Background()
	occurred := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	// A negative adjustment posted after the payment drove the balance
	// below zero. Payments stop until someone reviews the ledger.
	history := []domain.LedgerEvent{
		suite.charge("500.00", occurred.AddDate(0, 0, -10)),
		suite.payment("400.00", occurred.AddDate(0, 0, -5)),
		suite.adjustment("-200.00", occurred.AddDate(0, 0, -1)),
	}
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("50.00"),
		OccurredAt: occurred,
	}

	suite.expectLockedHistory(ctx, history)

	_, _, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, "", suite.userID)

	suite.Require().ErrorIs(err, services.ErrDataIntegrityViolation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEventInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_IdempotencyKeyStored() {
	ctx := context.Background()
	occurred := time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)
	history := []domain.LedgerEvent{suite.charge("800.00", occurred.AddDate(0, 0, -3))}
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("100.00"),
		OccurredAt: occurred,
	}
	key := uuid.NewString()

	suite.expectLockedHistory(ctx, history)
	suite.mockLedgerRepo.On("InsertIdempotencyKeyInTx", ctx, mock.Anything, key, "payment").Return(nil).Once()
	suite.mockLedgerRepo.On("AppendEventInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerEvent")).Return(nil).Once()
	suite.mockLedgerRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	_, _, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, key, suite.userID)

	suite.Require().NoError(err)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_DuplicateIdempotencyKey() {
	ctx := context.Background()
	occurred := time.Date(2026, time.May, 2, 0, 0, 0, 0, time.UTC)
	history := []domain.LedgerEvent{suite.charge("800.00", occurred.AddDate(0, 0, -3))}
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("100.00"),
		OccurredAt: occurred,
	}
	key := uuid.NewString()

	suite.expectLockedHistory(ctx, history)
	suite.mockLedgerRepo.On("InsertIdempotencyKeyInTx", ctx, mock.Anything, key, "payment").
		Return(apperrors.NewAppError(409, "idempotency key already used", apperrors.ErrDuplicate)).Once()

	_, _, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, key, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEventInTx", mock.Anything, mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestApplyPayment_AppendFailureRollsBack() {
	ctx := context.Background()
	occurred := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	history := []domain.LedgerEvent{suite.charge("300.00", occurred.AddDate(0, 0, -7))}
	req := dto.CreatePaymentRequest{
		Amount:     decimal.RequireFromString("100.00"),
		OccurredAt: occurred,
	}

	suite.expectLockedHistory(ctx, history)
	suite.mockLedgerRepo.On("AppendEventInTx", ctx, mock.Anything, mock.AnythingOfType("domain.LedgerEvent")).
		Return(apperrors.NewAppError(500, "insert failed", apperrors.ErrInternal)).Once()

	event, balance, err := suite.service.ApplyPayment(ctx, suite.party.PartyID, req, "", suite.userID)

	suite.Require().Error(err)
	suite.Nil(event)
	suite.Nil(balance)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
	suite.mockLedgerRepo.AssertCalled(suite.T(), "Rollback", ctx, mock.Anything)
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
