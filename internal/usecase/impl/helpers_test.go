package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"accounts/config"
	"accounts/internal/domain/repository"
	mockRepo "accounts/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			PasswordAlgorithm:   config.PasswordAlgorithmBcrypt,
			BcryptCost:          4,
			AdminEmailPromotion: true,
		},
		PasswordPolicy: &config.PasswordPolicyConfig{MinLength: 6, MaxLength: 72},
		Slug:           &config.SlugConfig{MaxAttempts: 100},
	}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"

	return cfg
}

// expectTransaction makes the transaction manager run the callback against factory.
func expectTransaction(txManager *mockRepo.MockTransactionManager, factory repository.RepositoryFactory) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

func newMockFactory(t *testing.T, users repository.UserRepository, roles repository.RoleRepository) *mockRepo.MockRepositoryFactory {
	factory := mockRepo.NewMockRepositoryFactory(t)
	if users != nil {
		factory.EXPECT().UserRepo().Return(users).Maybe()
	}
	if roles != nil {
		factory.EXPECT().RoleRepo().Return(roles).Maybe()
	}

	return factory
}
