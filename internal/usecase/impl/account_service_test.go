package impl

import (
	"context"
	"strings"
	"testing"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	mockRepo "accounts/internal/mocks/repository"
	mockSvc "accounts/internal/mocks/service"
	"accounts/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// accountServiceFixtures holds all test dependencies for account service tests.
type accountServiceFixtures struct {
	service   usecase.AccountUsecase
	txManager *mockRepo.MockTransactionManager
	userRepo  *mockRepo.MockUserRepository
	roleRepo  *mockRepo.MockRoleRepository
	hasher    *mockSvc.MockPasswordHasher
	publisher *mockSvc.MockEventPublisher
	metrics   *mockSvc.MockAccountMetrics
}

func createTestAccountService(t *testing.T) accountServiceFixtures {
	fx := accountServiceFixtures{
		txManager: mockRepo.NewMockTransactionManager(t),
		userRepo:  mockRepo.NewMockUserRepository(t),
		roleRepo:  mockRepo.NewMockRoleRepository(t),
		hasher:    mockSvc.NewMockPasswordHasher(t),
		publisher: mockSvc.NewMockEventPublisher(t),
		metrics:   mockSvc.NewMockAccountMetrics(t),
	}
	fx.service = NewAccountService(fx.txManager, fx.userRepo, fx.hasher, fx.publisher, fx.metrics, newTestConfig(), newDiscardLogger())

	return fx
}

func eventOfType(eventType entity.EventType) any {
	return mock.MatchedBy(func(e *entity.AccountEvent) bool { return e.Type == eventType })
}

func TestAccountService_Register_ValidationHappensBeforeStorage(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.RegisterInput
	}{
		{name: "empty email", input: usecase.RegisterInput{Email: "  ", Password: "secret1"}},
		{name: "empty password", input: usecase.RegisterInput{Email: "a@x.com"}},
		{name: "too short", input: usecase.RegisterInput{Email: "a@x.com", Password: "abc"}},
		// 40 runes fit the policy but take 80 bytes, more than bcrypt hashes.
		{name: "over hasher byte limit", input: usecase.RegisterInput{Email: "a@x.com", Password: strings.Repeat("é", 40)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAccountService(t)
			fx.metrics.EXPECT().ObserveRegistration(registrationOutcomeInvalid).Once()

			user, err := fx.service.Register(context.Background(), &tt.input)

			require.Error(t, err)
			assert.Nil(t, user)
			assert.True(t, domainerrors.IsValidation(err))
			fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
		})
	}
}

func TestAccountService_Register_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	roleID := uuid.New()

	fx.hasher.EXPECT().Hash("secret1").Return("hashed", nil).Once()
	expectTransaction(fx.txManager, newMockFactory(t, fx.userRepo, fx.roleRepo))
	fx.roleRepo.EXPECT().FindByID(ctx, roleID).Return(&entity.Role{ID: roleID, Slug: "editors"}, nil).Once()
	fx.userRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.User")).
		RunAndReturn(func(_ context.Context, u *entity.User) error {
			u.ID = uuid.New()

			return nil
		}).Once()
	fx.metrics.EXPECT().ObserveRegistration(registrationOutcomeSuccess).Once()
	fx.publisher.EXPECT().Publish(ctx, eventOfType(entity.EventUserRegistered)).Return(nil).Once()

	user, err := fx.service.Register(ctx, &usecase.RegisterInput{
		Email:    " a@x.com ",
		Name:     "A",
		Password: "secret1",
		RoleID:   &roleID,
	})

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "hashed", user.HashedPassword)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsSuperuser)
	require.Len(t, user.Roles, 1)
	assert.Equal(t, roleID, user.Roles[0].RoleID)
}

func TestAccountService_Register_AdminEmailBecomesSuperuser(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret1").Return("hashed", nil).Once()
	expectTransaction(fx.txManager, newMockFactory(t, fx.userRepo, nil))
	fx.userRepo.EXPECT().Create(ctx, mock.MatchedBy(func(u *entity.User) bool { return u.IsSuperuser })).Return(nil).Once()
	fx.metrics.EXPECT().ObserveRegistration(registrationOutcomeSuccess).Once()
	fx.publisher.EXPECT().Publish(ctx, mock.Anything).Return(nil).Once()

	user, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "Admin@x.com", Password: "secret1"})

	require.NoError(t, err)
	assert.True(t, user.IsSuperuser)
}

func TestAccountService_Register_DuplicateEmailIsConflict(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret1").Return("hashed", nil).Once()
	expectTransaction(fx.txManager, newMockFactory(t, fx.userRepo, nil))
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).
		Return(domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already exists")).Once()
	fx.metrics.EXPECT().ObserveRegistration(registrationOutcomeConflict).Once()

	user, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "a@x.com", Password: "secret1"})

	assert.Nil(t, user)
	assert.True(t, domainerrors.IsConflict(err))
	assert.ErrorIs(t, err, domainerrors.ErrEmailAlreadyRegistered)
	fx.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestAccountService_Register_PublishFailureDoesNotFailRegistration(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()

	fx.hasher.EXPECT().Hash("secret1").Return("hashed", nil).Once()
	expectTransaction(fx.txManager, newMockFactory(t, fx.userRepo, nil))
	fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(nil).Once()
	fx.metrics.EXPECT().ObserveRegistration(registrationOutcomeSuccess).Once()
	fx.publisher.EXPECT().Publish(ctx, mock.Anything).Return(errors.New("broker down")).Once()

	user, err := fx.service.Register(ctx, &usecase.RegisterInput{Email: "a@x.com", Password: "secret1"})

	require.NoError(t, err)
	assert.NotNil(t, user)
}

func TestAccountService_Register_HashFailure(t *testing.T) {
	fx := createTestAccountService(t)

	fx.hasher.EXPECT().Hash("secret1").Return("", errors.New("rng failure")).Once()
	fx.metrics.EXPECT().ObserveRegistration(registrationOutcomeError).Once()

	_, err := fx.service.Register(context.Background(), &usecase.RegisterInput{Email: "a@x.com", Password: "secret1"})

	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestAccountService_Authenticate(t *testing.T) {
	active := &entity.User{ID: uuid.New(), Email: "a@x.com", HashedPassword: "hashed", IsActive: true}
	inactive := &entity.User{ID: uuid.New(), Email: "off@x.com", HashedPassword: "hashed"}
	oauthOnly := &entity.User{ID: uuid.New(), Email: "g@x.com", IsActive: true}

	tests := []struct {
		name    string
		email   string
		setup   func(fx accountServiceFixtures)
		outcome string
		wantErr error
	}{
		{
			name:  "success",
			email: "a@x.com",
			setup: func(fx accountServiceFixtures) {
				fx.userRepo.EXPECT().FindByEmail(mock.Anything, "a@x.com").Return(active, nil)
				fx.hasher.EXPECT().Check("pw", "hashed").Return(true)
			},
			outcome: service.AuthOutcomeSuccess,
		},
		{
			name:  "unknown user",
			email: "nobody@x.com",
			setup: func(fx accountServiceFixtures) {
				fx.userRepo.EXPECT().FindByEmail(mock.Anything, "nobody@x.com").Return(nil, repository.ErrUserNotFound)
			},
			outcome: service.AuthOutcomeInvalidCredentials,
			wantErr: domainerrors.ErrInvalidCredentials,
		},
		{
			name:  "wrong password",
			email: "a@x.com",
			setup: func(fx accountServiceFixtures) {
				fx.userRepo.EXPECT().FindByEmail(mock.Anything, "a@x.com").Return(active, nil)
				fx.hasher.EXPECT().Check("pw", "hashed").Return(false)
			},
			outcome: service.AuthOutcomeInvalidCredentials,
			wantErr: domainerrors.ErrInvalidCredentials,
		},
		{
			name:  "no stored password",
			email: "g@x.com",
			setup: func(fx accountServiceFixtures) {
				fx.userRepo.EXPECT().FindByEmail(mock.Anything, "g@x.com").Return(oauthOnly, nil)
			},
			outcome: service.AuthOutcomeInvalidCredentials,
			wantErr: domainerrors.ErrInvalidCredentials,
		},
		{
			name:  "inactive with correct password",
			email: "off@x.com",
			setup: func(fx accountServiceFixtures) {
				fx.userRepo.EXPECT().FindByEmail(mock.Anything, "off@x.com").Return(inactive, nil)
				fx.hasher.EXPECT().Check("pw", "hashed").Return(true)
			},
			outcome: service.AuthOutcomeInactive,
			wantErr: domainerrors.ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAccountService(t)
			tt.setup(fx)
			fx.metrics.EXPECT().ObserveAuthentication(tt.outcome).Once()

			user, err := fx.service.Authenticate(context.Background(), tt.email, "pw")

			if tt.wantErr != nil {
				assert.Nil(t, user)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, domainerrors.IsAuthentication(err))

				return
			}
			require.NoError(t, err)
			assert.Equal(t, active.ID, user.ID)
		})
	}
}

func TestAccountService_UpdatePassword_WrongCurrentDoesNotWrite(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), HashedPassword: "old-hash", IsActive: true}

	expectTransaction(fx.txManager, newMockFactory(t, fx.userRepo, nil))
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil).Once()
	fx.hasher.EXPECT().Check("wrong", "old-hash").Return(false).Once()

	err := fx.service.UpdatePassword(ctx, &usecase.UpdatePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "wrong",
		NewPassword:     "new-secret",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, "old-hash", user.HashedPassword)
	fx.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	fx.hasher.AssertNotCalled(t, "Hash", mock.Anything)
}

func TestAccountService_UpdatePassword_Success(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "a@x.com", HashedPassword: "old-hash", IsActive: true}

	expectTransaction(fx.txManager, newMockFactory(t, fx.userRepo, nil))
	fx.userRepo.EXPECT().FindByID(ctx, user.ID).Return(user, nil).Once()
	fx.hasher.EXPECT().Check("old-secret", "old-hash").Return(true).Once()
	fx.hasher.EXPECT().Hash("new-secret").Return("new-hash", nil).Once()
	fx.userRepo.EXPECT().Update(ctx, mock.MatchedBy(func(u *entity.User) bool { return u.HashedPassword == "new-hash" })).Return(nil).Once()
	fx.publisher.EXPECT().Publish(ctx, eventOfType(entity.EventUserPasswordChanged)).Return(nil).Once()

	err := fx.service.UpdatePassword(ctx, &usecase.UpdatePasswordInput{
		UserID:          user.ID,
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret",
	})

	require.NoError(t, err)
}

func TestAccountService_UpdatePassword_RejectsWeakPasswordFirst(t *testing.T) {
	fx := createTestAccountService(t)

	err := fx.service.UpdatePassword(context.Background(), &usecase.UpdatePasswordInput{
		UserID:          uuid.New(),
		CurrentPassword: "old-secret",
		NewPassword:     "abc",
	})

	assert.True(t, domainerrors.IsValidation(err))
	fx.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestAccountService_AppendRoleIfPresent(t *testing.T) {
	fx := createTestAccountService(t)
	existing := uuid.New()
	added := uuid.New()

	roles := []entity.UserRole{{RoleID: existing}}

	fx.service.AppendRoleIfPresent(nil, &roles)
	assert.Len(t, roles, 1)

	fx.service.AppendRoleIfPresent(&existing, &roles)
	assert.Len(t, roles, 1)

	fx.service.AppendRoleIfPresent(&added, &roles)
	require.Len(t, roles, 2)
	assert.Equal(t, added, roles[1].RoleID)
	assert.False(t, roles[1].AssignedAt.IsZero())
}

func TestAccountService_GetUser_MapsNotFound(t *testing.T) {
	fx := createTestAccountService(t)
	id := uuid.New()

	fx.userRepo.EXPECT().FindByID(mock.Anything, id).Return(nil, repository.ErrUserNotFound).Once()

	_, err := fx.service.GetUser(context.Background(), id)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAccountService_ListUsers_ClampsPageSize(t *testing.T) {
	fx := createTestAccountService(t)

	fx.userRepo.EXPECT().List(mock.Anything, repository.ListOptions{Limit: maxPageSize, Offset: 5}).Return([]*entity.User{}, nil).Once()
	fx.userRepo.EXPECT().Count(mock.Anything).Return(int64(7), nil).Once()

	users, total, err := fx.service.ListUsers(context.Background(), 1000, 5)

	require.NoError(t, err)
	assert.Empty(t, users)
	assert.EqualValues(t, 7, total)

	_, _, err = fx.service.ListUsers(context.Background(), -1, 0)
	assert.True(t, domainerrors.IsValidation(err))
}

func TestAccountService_DeleteUser(t *testing.T) {
	fx := createTestAccountService(t)
	ctx := context.Background()
	id := uuid.New()
	expectTransaction(fx.txManager, newMockFactory(t, fx.userRepo, nil))

	fx.userRepo.EXPECT().Delete(mock.Anything, id).Return(nil).Once()
	fx.publisher.EXPECT().Publish(mock.Anything, eventOfType(entity.EventUserDeleted)).Return(nil).Once()

	require.NoError(t, fx.service.DeleteUser(ctx, id))

	fx.userRepo.EXPECT().Delete(mock.Anything, id).Return(repository.ErrUserNotFound).Once()
	assert.ErrorIs(t, fx.service.DeleteUser(ctx, id), domainerrors.ErrUserNotFound)
}

func TestAccountService_DeleteUser_FailedTransactionPublishesNothing(t *testing.T) {
	fx := createTestAccountService(t)
	id := uuid.New()
	fx.txManager.EXPECT().Execute(mock.Anything, mock.Anything).Return(errors.New("connection reset")).Once()

	err := fx.service.DeleteUser(context.Background(), id)

	assert.ErrorContains(t, err, "connection reset")
	fx.userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	fx.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
