package repository

import "context"

// TransactionManager runs fn atomically: every repository obtained from the
// factory shares one unit of work, committed when fn returns nil and rolled
// back otherwise.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the current transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	RoleRepo() RoleRepository
	OAuthAccountRepo() OAuthAccountRepository
}
