// Package memory keeps accounts in process memory. It backs the "memory" database
// driver and the service and HTTP tests.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"accounts/internal/domain/entity"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
)

// Store holds every table behind one RWMutex. txMu is held for the whole of a
// transaction and around every write made outside one.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users     map[uuid.UUID]entity.User
	userOrder []uuid.UUID
	emails    map[string]uuid.UUID

	roles     map[uuid.UUID]entity.Role
	roleNames map[string]uuid.UUID
	roleSlugs map[string]uuid.UUID

	oauthAccounts map[oauthKey]entity.OAuthAccount
}

type oauthKey struct {
	provider  entity.ProviderType
	accountID string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:         make(map[uuid.UUID]entity.User),
		emails:        make(map[string]uuid.UUID),
		roles:         make(map[uuid.UUID]entity.Role),
		roleNames:     make(map[string]uuid.UUID),
		roleSlugs:     make(map[string]uuid.UUID),
		oauthAccounts: make(map[oauthKey]entity.OAuthAccount),
	}
}

func (s *Store) UserRepo() repository.UserRepository {
	return &userRepository{s: s}
}

func (s *Store) RoleRepo() repository.RoleRepository {
	return &roleRepository{s: s}
}

func (s *Store) OAuthAccountRepo() repository.OAuthAccountRepository {
	return &oauthAccountRepository{s: s}
}

// Execute serializes transactions and restores the previous state when fn fails.
// Writes through the store's own repositories wait for a running transaction, so
// a rollback never discards them.
func (s *Store) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()

	defer func() {
		if r := recover(); r != nil {
			s.restore(snap)
			panic(r)
		}
	}()

	if err := fn(txScope{s: s}); err != nil {
		s.restore(snap)

		return err
	}

	return nil
}

// txScope hands out repositories that already run under txMu.
type txScope struct {
	s *Store
}

func (t txScope) UserRepo() repository.UserRepository {
	return &userRepository{s: t.s, inTx: true}
}

func (t txScope) RoleRepo() repository.RoleRepository {
	return &roleRepository{s: t.s, inTx: true}
}

func (t txScope) OAuthAccountRepo() repository.OAuthAccountRepository {
	return &oauthAccountRepository{s: t.s, inTx: true}
}

// lockWrite locks the tables for a write and returns the unlock function.
func (s *Store) lockWrite(inTx bool) func() {
	if !inTx {
		s.txMu.Lock()
	}
	s.mu.Lock()

	return func() {
		s.mu.Unlock()
		if !inTx {
			s.txMu.Unlock()
		}
	}
}

type snapshot struct {
	users         map[uuid.UUID]entity.User
	userOrder     []uuid.UUID
	emails        map[string]uuid.UUID
	roles         map[uuid.UUID]entity.Role
	roleNames     map[string]uuid.UUID
	roleSlugs     map[string]uuid.UUID
	oauthAccounts map[oauthKey]entity.OAuthAccount
}

func (s *Store) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make(map[uuid.UUID]entity.User, len(s.users))
	for id, u := range s.users {
		users[id] = cloneUser(u)
	}

	return snapshot{
		users:         users,
		userOrder:     slices.Clone(s.userOrder),
		emails:        maps.Clone(s.emails),
		roles:         maps.Clone(s.roles),
		roleNames:     maps.Clone(s.roleNames),
		roleSlugs:     maps.Clone(s.roleSlugs),
		oauthAccounts: maps.Clone(s.oauthAccounts),
	}
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = snap.users
	s.userOrder = snap.userOrder
	s.emails = snap.emails
	s.roles = snap.roles
	s.roleNames = snap.roleNames
	s.roleSlugs = snap.roleSlugs
	s.oauthAccounts = snap.oauthAccounts
}

func cloneUser(u entity.User) entity.User {
	u.Roles = slices.Clone(u.Roles)
	u.OAuthAccounts = slices.Clone(u.OAuthAccounts)

	return u
}

func paginate[T any](items []T, opts repository.ListOptions) []T {
	start := min(max(opts.Offset, 0), len(items))
	end := len(items)
	if opts.Limit > 0 {
		end = min(start+opts.Limit, len(items))
	}

	return items[start:end]
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}
