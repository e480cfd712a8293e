package main

import (
	"context"
	"log/slog"
	"os"

	"accounts/config"
	"accounts/internal/delivery"
	"accounts/internal/delivery/api"
	apimiddleware "accounts/internal/delivery/api/middleware"
	"accounts/internal/delivery/api/router/handler"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/infra/auth"
	"accounts/internal/infra/auth/google"
	"accounts/internal/infra/cache/local"
	"accounts/internal/infra/cache/redis"
	logs "accounts/internal/infra/log"
	"accounts/internal/infra/metrics"
	"accounts/internal/infra/persistence/memory"
	"accounts/internal/infra/persistence/sqlstore"
	"accounts/internal/infra/pubsub"
	"accounts/internal/usecase"
	"accounts/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(appOptions()).Run()
}

func appOptions() fx.Option {
	return fx.Options(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	)
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.New,
	)
}

type storage struct {
	fx.Out

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	RoleRepo  repository.RoleRepository
}

// newStorage opens the configured backend. The memory driver keeps all state in-process.
func newStorage(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (storage, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn("Using in-memory storage, data is lost on restart")
		store := memory.NewStore()

		return storage{TxManager: store, UserRepo: store.UserRepo(), RoleRepo: store.RoleRepo()}, nil
	}

	db, err := sqlstore.New(sqlstore.Params{Lifecycle: lc, Config: cfg, Logger: logger})
	if err != nil {
		return storage{}, err
	}

	return storage{
		TxManager: sqlstore.NewTransactionManager(db),
		UserRepo:  sqlstore.NewUserRepository(db),
		RoleRepo:  sqlstore.NewRoleRepository(db),
	}, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newStorage,
		),
	)
}

type sessionStores struct {
	fx.Out

	Denylist service.TokenDenylist
	Throttle service.LoginThrottle
}

// newSessionStores shares revocations and attempt counters through Redis when
// it is enabled and keeps them per process otherwise.
func newSessionStores(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (sessionStores, error) {
	limit := cfg.RateLimit
	limited := limit != nil && limit.Enabled && limit.MaxAttempts > 0

	if cfg.Redis == nil || !cfg.Redis.Enabled {
		stores := sessionStores{Denylist: local.NewTokenDenylist(), Throttle: local.Unlimited{}}
		if limited {
			stores.Throttle = local.NewLoginThrottle(limit.MaxAttempts, limit.Window)
		}

		return stores, nil
	}

	client, err := redis.New(redis.Params{Lifecycle: lc, Config: cfg, Logger: logger})
	if err != nil {
		return sessionStores{}, err
	}
	prefix := redis.KeyPrefix(cfg.Redis)

	stores := sessionStores{Denylist: redis.NewTokenDenylist(client, prefix), Throttle: local.Unlimited{}}
	if limited {
		stores.Throttle = redis.NewLoginThrottle(client, prefix, limit.MaxAttempts, limit.Window)
	}

	return stores, nil
}

// newGoogleAuth returns nil when no client ID is configured, which disables Google sign-in.
func newGoogleAuth(cfg *config.Config, logger *slog.Logger) service.OAuthAuthService {
	if cfg.GoogleOAuth == nil || cfg.GoogleOAuth.ClientID == "" {
		return nil
	}

	return google.NewAuthService(cfg, logger)
}

func newSlugAssigner(cfg *config.Config, accountMetrics service.AccountMetrics) service.SlugAssigner {
	return impl.NewSlugAssigner(cfg.Slug.MaxAttempts, accountMetrics)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewPasswordHasher,
			auth.NewJWTService,
			metrics.NewAccountMetrics,
			pubsub.NewEventPublisher,
			newSessionStores,
			newGoogleAuth,
			newSlugAssigner,
		),
	)
}

type sessionServiceParams struct {
	fx.In

	Accounts     usecase.AccountUsecase
	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Denylist     service.TokenDenylist
	Throttle     service.LoginThrottle
	GoogleAuth   service.OAuthAuthService
	Metrics      service.AccountMetrics
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

func newSessionService(params sessionServiceParams) usecase.SessionUsecase {
	return impl.NewSessionService(impl.SessionDependencies{
		Accounts:     params.Accounts,
		TxManager:    params.TxManager,
		UserRepo:     params.UserRepo,
		TokenService: params.TokenService,
		Denylist:     params.Denylist,
		Throttle:     params.Throttle,
		GoogleAuth:   params.GoogleAuth,
		Metrics:      params.Metrics,
		Publisher:    params.Publisher,
		Logger:       params.Logger,
	})
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAccountService,
			impl.NewRoleService,
			newSessionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			func(accounts usecase.AccountUsecase, sessions usecase.SessionUsecase, cfg *config.Config) *handler.AccessHandler {
				return handler.NewAccessHandler(accounts, sessions, cfg.Auth.CookieSecure)
			},
			func(cfg *config.Config) *handler.SystemHandler {
				return handler.NewSystemHandler(cfg.Env.ServiceName, cfg.Env.Version)
			},
			handler.NewUserHandler,
			handler.NewRoleHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
