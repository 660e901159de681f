package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
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

// --- Test Suite Setup ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockPartyRepo  *MockPartyRepository
	service        portssvc.LedgerSvcFacade
	party          domain.Party
	userID         string
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockPartyRepo = new(MockPartyRepository)
	suite.service = services.NewLedgerService(suite.mockLedgerRepo, suite.mockPartyRepo)

	suite.userID = uuid.NewString()
	suite.party = domain.Party{
		PartyID: uuid.NewString(),
		Kind:    domain.Supplier,
		Name:    "Verma Explosives",
	}
}

// --- Test Cases ---

func (suite *LedgerServiceTestSuite) TestAppendCharge_Success() {
	ctx := context.Background()
	req := dto.CreateChargeRequest{
		Amount:     decimal.RequireFromString("1500.00"),
		OccurredAt: time.Date(2026, time.February, 3, 0, 0, 0, 0, time.UTC),
		SourceKind: domain.SourcePurchaseBill,
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID).Return(&suite.party, nil).Once()
	suite.mockLedgerRepo.On("AppendEvent", ctx, mock.AnythingOfType("domain.LedgerEvent")).Return(nil).Once()

	event, err := suite.service.AppendCharge(ctx, suite.party.PartyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(event)
	suite.NotEmpty(event.EventID)
	suite.Equal(domain.EventCharge, event.Kind)
	suite.Equal(domain.SourcePurchaseBill, event.SourceKind)
	suite.True(event.Amount.Equal(req.Amount))
	suite.Equal(req.OccurredAt, event.OccurredAt)
	suite.Equal(suite.userID, event.CreatedBy)

	suite.mockLedgerRepo.AssertExpectations(suite.T())
	suite.mockPartyRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAppendCharge_NegativeAdjustmentAllowed() {
	ctx := context.Background()
	req := dto.CreateChargeRequest{
		Amount:     decimal.RequireFromString("-250.00"),
		OccurredAt: time.Date(2026, time.February, 5, 0, 0, 0, 0, time.UTC),
		SourceKind: domain.SourceAdjustment,
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID).Return(&suite.party, nil).Once()
	suite.mockLedgerRepo.On("AppendEvent", ctx, mock.AnythingOfType("domain.LedgerEvent")).Return(nil).Once()

	event, err := suite.service.AppendCharge(ctx, suite.party.PartyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.EventAdjustment, event.Kind)
	suite.True(event.Amount.IsNegative())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAppendCharge_ZeroAdjustmentRejected() {
	ctx := context.Background()
	req := dto.CreateChargeRequest{
		Amount:     decimal.Zero,
		OccurredAt: time.Now(),
		SourceKind: domain.SourceAdjustment,
	}

	event, err := suite.service.AppendCharge(ctx, suite.party.PartyID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(event)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEvent", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAppendCharge_NonPositiveChargeRejected() {
	ctx := context.Background()
	for _, amount := range []string{"0", "-100.00"} {
		req := dto.CreateChargeRequest{
			Amount:     decimal.RequireFromString(amount),
			OccurredAt: time.Now(),
			SourceKind: domain.SourceBlasting,
		}

		_, err := suite.service.AppendCharge(ctx, suite.party.PartyID, req, suite.userID)

		suite.Require().ErrorIs(err, apperrors.ErrValidation)
	}
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEvent", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestAppendCharge_UnknownParty() {
	ctx := context.Background()
	unknownID := uuid.NewString()
	req := dto.CreateChargeRequest{
		Amount:     decimal.RequireFromString("100.00"),
		OccurredAt: time.Now(),
		SourceKind: domain.SourceSaleInvoice,
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, unknownID).
		Return(nil, apperrors.NewNotFoundError("party not found")).Once()

	_, err := suite.service.AppendCharge(ctx, unknownID, req, suite.userID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "AppendEvent", mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestListCharges_MergesAdjustmentsInOccurredOrder() {
	ctx := context.Background()
	day := func(d int) time.Time {
		return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
	}
	charges := []domain.LedgerEvent{
		{EventID: "c1", PartyID: suite.party.PartyID, Kind: domain.EventCharge, OccurredAt: day(1)},
		{EventID: "c2", PartyID: suite.party.PartyID, Kind: domain.EventCharge, OccurredAt: day(9)},
	}
	adjustments := []domain.LedgerEvent{
		{EventID: "a1", PartyID: suite.party.PartyID, Kind: domain.EventAdjustment, OccurredAt: day(4)},
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID).Return(&suite.party, nil).Once()
	chargeKind := domain.EventCharge
	adjustmentKind := domain.EventAdjustment
	suite.mockLedgerRepo.On("ListEventsByParty", ctx, suite.party.PartyID, portsrepo.EventFilter{Kind: &chargeKind}).Return(charges, nil).Once()
	suite.mockLedgerRepo.On("ListEventsByParty", ctx, suite.party.PartyID, portsrepo.EventFilter{Kind: &adjustmentKind}).Return(adjustments, nil).Once()

	events, err := suite.service.ListCharges(ctx, suite.party.PartyID, dto.ListEventsParams{})

	suite.Require().NoError(err)
	suite.Require().Len(events, 3)
	suite.Equal("c1", events[0].EventID)
	suite.Equal("a1", events[1].EventID)
	suite.Equal("c2", events[2].EventID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestListPayments_PassesWindow() {
	ctx := context.Background()
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC)
	params := dto.ListEventsParams{From: &from, To: &to}
	paymentKind := domain.EventPayment
	payments := []domain.LedgerEvent{
		{EventID: "p1", PartyID: suite.party.PartyID, Kind: domain.EventPayment, OccurredAt: from.AddDate(0, 0, 10)},
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID).Return(&suite.party, nil).Once()
	suite.mockLedgerRepo.On("ListEventsByParty", ctx, suite.party.PartyID, portsrepo.EventFilter{Kind: &paymentKind, From: &from, To: &to}).Return(payments, nil).Once()

	events, err := suite.service.ListPayments(ctx, suite.party.PartyID, params)

	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal("p1", events[0].EventID)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestGetBalance_SumsHistory() {
	ctx := context.Background()
	history := []domain.LedgerEvent{
		{Kind: domain.EventCharge, Amount: decimal.RequireFromString("1000.00")},
		{Kind: domain.EventAdjustment, Amount: decimal.RequireFromString("-150.00")},
		{Kind: domain.EventPayment, Amount: decimal.RequireFromString("300.00")},
	}

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID).Return(&suite.party, nil).Once()
	suite.mockLedgerRepo.On("ListEventsByParty", ctx, suite.party.PartyID, portsrepo.EventFilter{}).Return(history, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.party.PartyID)

	suite.Require().NoError(err)
	suite.Equal(suite.party.PartyID, balance.PartyID)
	suite.True(balance.TotalCharged.Equal(decimal.RequireFromString("850.00")))
	suite.True(balance.TotalPaid.Equal(decimal.RequireFromString("300.00")))
	suite.True(balance.Outstanding.Equal(decimal.RequireFromString("550.00")))
}

func (suite *LedgerServiceTestSuite) TestGetBalance_EmptyHistoryIsZero() {
	ctx := context.Background()

	suite.mockPartyRepo.On("FindPartyByID", ctx, suite.party.PartyID).Return(&suite.party, nil).Once()
	suite.mockLedgerRepo.On("ListEventsByParty", ctx, suite.party.PartyID, portsrepo.EventFilter{}).Return([]domain.LedgerEvent{}, nil).Once()

	balance, err := suite.service.GetBalance(ctx, suite.party.PartyID)

	suite.Require().NoError(err)
	suite.True(balance.TotalCharged.IsZero())
	suite.True(balance.TotalPaid.IsZero())
	suite.True(balance.Outstanding.IsZero())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
