package service

import (
	"context"
	"testing"
	"time"

	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/config"
	"github.com/dmehra2102/prod-golang-projects/clinichub/internal/domain"
	"github.com/dmehra2102/prod-golang-projects/clinichub/pkg/auth"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLoginAttempt(ctx context.Context, id uuid.UUID, success bool) error {
	args := m.Called(ctx, id, success)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func testJWTManager() *auth.JWTManager {
	return auth.NewJWTManager(config.JWTConfig{
		Secret:          "test-secret-at-least-32-characters!!",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		Issuer:          "clinichub-test",
	})
}

func testUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "nurse@clinic.test",
		PasswordHash: string(hash),
		FirstName:    "Meera",
		LastName:     "Kurian",
		Role:         domain.RoleNurse,
		IsActive:     true,
	}
}

func TestLoginSuccess(t *testing.T) {
	userRepo := &MockUserRepository{}
	svc := NewAuthService(userRepo, testJWTManager(), zap.NewNop())
	user := testUser(t, "correct horse battery")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("UpdateLoginAttempt", mock.Anything, user.ID, true).Return(nil)

	pair, err := svc.Login(context.Background(), user.Email, "correct horse battery", "10.0.0.1")

	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)
	userRepo.AssertExpectations(t)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := &MockUserRepository{}
	svc := NewAuthService(userRepo, testJWTManager(), zap.NewNop())
	user := testUser(t, "correct horse battery")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("UpdateLoginAttempt", mock.Anything, user.ID, false).Return(nil)

	pair, err := svc.Login(context.Background(), user.Email, "wrong", "10.0.0.1")

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	userRepo.AssertCalled(t, "UpdateLoginAttempt", mock.Anything, user.ID, false)
}

func TestLoginUnknownEmail(t *testing.T) {
	userRepo := &MockUserRepository{}
	svc := NewAuthService(userRepo, testJWTManager(), zap.NewNop())

	userRepo.On("GetByEmail", mock.Anything, "ghost@clinic.test").Return(nil, assert.AnError)

	pair, err := svc.Login(context.Background(), "ghost@clinic.test", "anything", "10.0.0.1")

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginLockedAccount(t *testing.T) {
	userRepo := &MockUserRepository{}
	svc := NewAuthService(userRepo, testJWTManager(), zap.NewNop())
	user := testUser(t, "correct horse battery")
	lockedUntil := time.Now().Add(10 * time.Minute)
	user.LockedUntil = &lockedUntil

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), user.Email, "correct horse battery", "10.0.0.1")

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestLoginInactiveAccount(t *testing.T) {
	userRepo := &MockUserRepository{}
	svc := NewAuthService(userRepo, testJWTManager(), zap.NewNop())
	user := testUser(t, "correct horse battery")
	user.IsActive = false

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)

	pair, err := svc.Login(context.Background(), user.Email, "correct horse battery", "10.0.0.1")

	assert.Nil(t, pair)
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	userRepo := &MockUserRepository{}
	svc := NewAuthService(userRepo, testJWTManager(), zap.NewNop())
	user := testUser(t, "correct horse battery")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("UpdateLoginAttempt", mock.Anything, user.ID, true).Return(nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), user.Email, "correct horse battery", "10.0.0.1")
	assert.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	userRepo := &MockUserRepository{}
	svc := NewAuthService(userRepo, testJWTManager(), zap.NewNop())
	user := testUser(t, "correct horse battery")

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("UpdateLoginAttempt", mock.Anything, user.ID, true).Return(nil)

	pair, err := svc.Login(context.Background(), user.Email, "correct horse battery", "10.0.0.1")
	assert.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.Nil(t, refreshed)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePasswordVerifiesCurrent(t *testing.T) {
	userRepo := &MockUserRepository{}
	svc := NewAuthService(userRepo, testJWTManager(), zap.NewNop())
	user := testUser(t, "correct horse battery")

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), user.ID, "not the password", "a brand new passphrase")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestChangePasswordEnforcesStrength(t *testing.T) {
	userRepo := &MockUserRepository{}
	svc := NewAuthService(userRepo, testJWTManager(), zap.NewNop())
	user := testUser(t, "correct horse battery")

	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), user.ID, "correct horse battery", "short")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}
