package memory

import (
	"context"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
)

type oauthAccountRepository struct {
	s    *Store
	inTx bool
}

func (r *oauthAccountRepository) FindByProviderAccount(ctx context.Context, provider entity.ProviderType, accountID string) (*entity.OAuthAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	account, ok := r.s.oauthAccounts[oauthKey{provider: provider, accountID: accountID}]
	if !ok {
		return nil, repository.ErrOAuthAccountNotFound
	}

	return &account, nil
}

func (r *oauthAccountRepository) Create(ctx context.Context, account *entity.OAuthAccount) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	defer r.s.lockWrite(r.inTx)()

	key := oauthKey{provider: account.Provider, accountID: account.AccountID}
	if _, taken := r.s.oauthAccounts[key]; taken {
		return domainerrors.ErrOAuthAccountLinked
	}

	user, ok := r.s.users[account.UserID]
	if !ok {
		return repository.ErrUserNotFound
	}

	if account.ID == uuid.Nil {
		account.ID = newID()
	}
	account.CreatedAt = time.Now()

	r.s.oauthAccounts[key] = *account
	user.OAuthAccounts = append(user.OAuthAccounts, *account)
	r.s.users[account.UserID] = user

	return nil
}
