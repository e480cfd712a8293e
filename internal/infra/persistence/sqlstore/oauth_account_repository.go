package sqlstore

import (
	"context"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type oauthAccountRepository struct {
	db *gorm.DB
}

// NewOAuthAccountRepository is the constructor for oauthAccountRepository.
func NewOAuthAccountRepository(db *gorm.DB) repository.OAuthAccountRepository {
	return &oauthAccountRepository{db: db}
}

func (repo *oauthAccountRepository) FindByProviderAccount(ctx context.Context, provider entity.ProviderType, accountID string) (*entity.OAuthAccount, error) {
	var accountM model.OAuthAccountModel
	err := repo.db.WithContext(ctx).
		Where("provider = ? AND account_id = ?", string(provider), accountID).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOAuthAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find oauth account")
	}

	return &entity.OAuthAccount{
		ID:           accountM.ID,
		UserID:       accountM.UserID,
		Provider:     entity.ProviderType(accountM.Provider),
		AccountID:    accountM.AccountID,
		AccountEmail: accountM.AccountEmail,
		CreatedAt:    accountM.CreatedAt,
	}, nil
}

func (repo *oauthAccountRepository) Create(ctx context.Context, account *entity.OAuthAccount) error {
	if account.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return errors.Wrap(err, "generate oauth account id")
		}
		account.ID = id
	}

	accountM := &model.OAuthAccountModel{
		ID:           account.ID,
		UserID:       account.UserID,
		Provider:     string(account.Provider),
		AccountID:    account.AccountID,
		AccountEmail: account.AccountEmail,
	}
	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrOAuthAccountLinked
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to link oauth account")
	}

	account.CreatedAt = accountM.CreatedAt

	return nil
}
