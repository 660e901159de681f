package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	"github.com/quarrydesk/quarrydesk/internal/core/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
)

func TestCreateParty_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPartyRepository)
	service := services.NewPartyService(mockRepo)
	userID := uuid.NewString()

	req := dto.CreatePartyRequest{
		Kind:    domain.Customer,
		Name:    "Gupta Builders",
		Phone:   "9876543210",
		Address: "NH-44, Jhansi",
	}

	mockRepo.On("SaveParty", ctx, mock.AnythingOfType("domain.Party")).Return(nil).Once()

	party, err := service.CreateParty(ctx, req, userID)

	require.NoError(t, err)
	require.NotNil(t, party)
	assert.NotEmpty(t, party.PartyID)
	assert.Equal(t, domain.Customer, party.Kind)
	assert.Equal(t, req.Name, party.Name)
	assert.Equal(t, req.Phone, party.Phone)
	assert.Equal(t, userID, party.CreatedBy)
	mockRepo.AssertExpectations(t)
}

func TestCreateParty_DuplicateName(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPartyRepository)
	service := services.NewPartyService(mockRepo)

	req := dto.CreatePartyRequest{Kind: domain.Supplier, Name: "Verma Explosives"}

	mockRepo.On("SaveParty", ctx, mock.AnythingOfType("domain.Party")).
		Return(apperrors.NewAppError(409, "party already exists", apperrors.ErrDuplicate)).Once()

	party, err := service.CreateParty(ctx, req, uuid.NewString())

	require.Error(t, err)
	assert.Nil(t, party)
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestListParties_DefaultsPagination(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPartyRepository)
	service := services.NewPartyService(mockRepo)

	mockRepo.On("ListParties", ctx, (*domain.PartyKind)(nil), 50, 0).
		Return([]domain.Party{{PartyID: uuid.NewString(), Name: "A"}}, nil).Once()

	parties, err := service.ListParties(ctx, dto.ListPartiesParams{Limit: 0, Offset: -5})

	require.NoError(t, err)
	assert.Len(t, parties, 1)
	mockRepo.AssertExpectations(t)
}

func TestListParties_FiltersByKind(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPartyRepository)
	service := services.NewPartyService(mockRepo)
	kind := domain.Supplier

	mockRepo.On("ListParties", ctx, &kind, 10, 20).
		Return([]domain.Party{}, nil).Once()

	_, err := service.ListParties(ctx, dto.ListPartiesParams{Kind: &kind, Limit: 10, Offset: 20})

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUpdateParty_PartialFields(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPartyRepository)
	service := services.NewPartyService(mockRepo)
	userID := uuid.NewString()

	existing := domain.Party{
		PartyID: uuid.NewString(),
		Kind:    domain.Customer,
		Name:    "Gupta Builders",
		Phone:   "9876543210",
		Address: "NH-44, Jhansi",
	}
	newPhone := "9000000001"

	mockRepo.On("FindPartyByID", ctx, existing.PartyID).Return(&existing, nil).Once()
	mockRepo.On("UpdatePartyContact", ctx, mock.MatchedBy(func(p domain.Party) bool {
		return p.PartyID == existing.PartyID &&
			p.Phone == newPhone &&
			p.Name == existing.Name &&
			p.Address == existing.Address &&
			p.LastUpdatedBy == userID
	})).Return(nil).Once()

	updated, err := service.UpdateParty(ctx, existing.PartyID, dto.UpdatePartyRequest{Phone: &newPhone}, userID)

	require.NoError(t, err)
	assert.Equal(t, newPhone, updated.Phone)
	assert.Equal(t, existing.Name, updated.Name)
	mockRepo.AssertExpectations(t)
}

func TestUpdateParty_NotFound(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockPartyRepository)
	service := services.NewPartyService(mockRepo)
	partyID := uuid.NewString()

	mockRepo.On("FindPartyByID", ctx, partyID).
		Return(nil, apperrors.NewNotFoundError("party not found")).Once()

	updated, err := service.UpdateParty(ctx, partyID, dto.UpdatePartyRequest{}, uuid.NewString())

	require.Error(t, err)
	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	mockRepo.AssertNotCalled(t, "UpdatePartyContact", mock.Anything, mock.Anything)
}
