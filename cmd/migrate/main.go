// Command migrate creates the account tables and optionally seeds the first superuser.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"accounts/config"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/infra/auth"
	logs "accounts/internal/infra/log"
	"accounts/internal/infra/persistence/sqlstore"
	"accounts/internal/infra/pubsub"
	"accounts/internal/usecase"
	"accounts/internal/usecase/impl"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	envSeedEmail    = "SEED_SUPERUSER_EMAIL"
	envSeedPassword = "SEED_SUPERUSER_PASSWORD"
)

func main() {
	seed := flag.Bool("seed", false, "create a superuser from "+envSeedEmail+" and "+envSeedPassword)
	flag.Parse()

	if err := run(context.Background(), *seed); err != nil {
		slog.Error("Migration failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, seed bool) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger, err := logs.New(logs.Params{Config: cfg})
	if err != nil {
		return err
	}

	db, err := sqlstore.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	if err := sqlstore.Migrate(ctx, db); err != nil {
		return err
	}
	logger.Info("Schema migrated", slog.String("driver", cfg.Database.Driver))

	if !seed {
		return nil
	}

	return seedSuperuser(ctx, cfg, db, logger)
}

// seedSuperuser registers the configured account and grants it superuser. An
// existing account with the same email is left untouched.
func seedSuperuser(ctx context.Context, cfg *config.Config, db *gorm.DB, logger *slog.Logger) error {
	email, password := os.Getenv(envSeedEmail), os.Getenv(envSeedPassword)
	if email == "" || password == "" {
		return errors.Errorf("%s and %s must be set to seed a superuser", envSeedEmail, envSeedPassword)
	}

	accounts := impl.NewAccountService(
		sqlstore.NewTransactionManager(db),
		sqlstore.NewUserRepository(db),
		auth.NewPasswordHasher(cfg),
		pubsub.NewNoopPublisher(logger),
		nil,
		cfg,
		logger,
	)

	user, err := accounts.Register(ctx, &usecase.RegisterInput{Email: email, Name: "Superuser", Password: password})
	if domainerrors.IsConflict(err) {
		logger.Info("Superuser already exists", slog.String("email", email))

		return nil
	}
	if err != nil {
		return err
	}

	superuser, verified := true, true
	if _, err := accounts.UpdateUser(ctx, user.ID, &usecase.UpdateUserInput{IsSuperuser: &superuser, IsVerified: &verified}); err != nil {
		return err
	}
	logger.Info("Superuser created", slog.String("email", email), slog.String("userID", user.ID.String()))

	return nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close database", slog.Any("error", err))
	}
}
