package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/quarrydesk/quarrydesk/internal/apperrors"
	"github.com/quarrydesk/quarrydesk/internal/core/domain"
	portsrepo "github.com/quarrydesk/quarrydesk/internal/core/ports/repositories"
	"github.com/quarrydesk/quarrydesk/internal/core/services"
	"github.com/quarrydesk/quarrydesk/internal/dto"
	"github.com/quarrydesk/quarrydesk/internal/utils"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

// Ensure MockUserRepository implements the full interface
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider string, providerID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time, now time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime, now)
	return args.Error(0)
}

func TestCreateUser_HashesPassword(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	req := dto.CreateUserRequest{
		Username: "clerk1",
		Password: "s3cret-pass",
		Name:     "Office Clerk",
		Email:    "clerk@example.com",
	}

	var saved domain.User
	mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(domain.User)
		}).Return(nil).Once()

	user, err := service.CreateUser(ctx, req)

	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	assert.NotEqual(t, req.Password, saved.PasswordHash)
	assert.True(t, utils.CheckPasswordHash(req.Password, saved.PasswordHash))
	mockRepo.AssertExpectations(t)
}

func TestAuthenticateUser_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	user := domain.User{UserID: uuid.NewString(), Username: "clerk1", PasswordHash: hash}

	mockRepo.On("FindUserByUsername", ctx, "clerk1").Return(&user, nil).Once()

	got, err := service.AuthenticateUser(ctx, "clerk1", "correct-horse")

	require.NoError(t, err)
	assert.Equal(t, user.UserID, got.UserID)
}

func TestAuthenticateUser_WrongPassword(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	hash, err := utils.HashPassword("correct-horse")
	require.NoError(t, err)
	user := domain.User{UserID: uuid.NewString(), Username: "clerk1", PasswordHash: hash}

	mockRepo.On("FindUserByUsername", ctx, "clerk1").Return(&user, nil).Once()

	got, err := service.AuthenticateUser(ctx, "clerk1", "wrong-password")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Nil(t, got)
}

func TestAuthenticateUser_UnknownUserIsIndistinguishable(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	mockRepo.On("FindUserByUsername", ctx, "ghost").
		Return(nil, apperrors.NewNotFoundError("user not found")).Once()

	got, err := service.AuthenticateUser(ctx, "ghost", "anything")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	assert.Nil(t, got)
}

func TestAuthenticateUser_OAuthOnlyUserHasNoPassword(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	user := domain.User{UserID: uuid.NewString(), Username: "oauth-user", PasswordHash: ""}
	mockRepo.On("FindUserByUsername", ctx, "oauth-user").Return(&user, nil).Once()

	_, err := service.AuthenticateUser(ctx, "oauth-user", "anything")

	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestFindOrCreateOAuthUser_ExistingUser(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	existing := domain.User{UserID: uuid.NewString(), AuthProvider: "google", ProviderID: "sub-123"}
	mockRepo.On("FindUserByProviderID", ctx, "google", "sub-123").Return(&existing, nil).Once()

	user, err := service.FindOrCreateOAuthUser(ctx, "google", "sub-123", "u@example.com", "U")

	require.NoError(t, err)
	assert.Equal(t, existing.UserID, user.UserID)
	mockRepo.AssertNotCalled(t, "SaveUser", mock.Anything, mock.Anything)
}

func TestFindOrCreateOAuthUser_CreatesOnFirstLogin(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)

	mockRepo.On("FindUserByProviderID", ctx, "google", "sub-456").
		Return(nil, apperrors.NewNotFoundError("user not found")).Once()
	mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.AuthProvider == "google" &&
			u.ProviderID == "sub-456" &&
			u.Username == "new@example.com" &&
			u.PasswordHash == ""
	})).Return(nil).Once()

	user, err := service.FindOrCreateOAuthUser(ctx, "google", "sub-456", "new@example.com", "New User")

	require.NoError(t, err)
	assert.NotEmpty(t, user.UserID)
	mockRepo.AssertExpectations(t)
}

func TestClearRefreshToken(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockUserRepository)
	service := services.NewUserService(mockRepo)
	userID := uuid.NewString()

	mockRepo.On("UpdateRefreshToken", ctx, userID, "", (*time.Time)(nil), mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := service.ClearRefreshToken(ctx, userID)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
