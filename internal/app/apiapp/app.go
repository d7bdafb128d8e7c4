package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/joaobatista235/know-your-fan/internal/config"
	s3infra "github.com/joaobatista235/know-your-fan/internal/infra/s3"
	pgrepo "github.com/joaobatista235/know-your-fan/internal/repo/postgres"
	redrepo "github.com/joaobatista235/know-your-fan/internal/repo/redis"
	authsvc "github.com/joaobatista235/know-your-fan/internal/services/auth"
	fanssvc "github.com/joaobatista235/know-your-fan/internal/services/fans"
	mediasvc "github.com/joaobatista235/know-your-fan/internal/services/media"
	ratesvc "github.com/joaobatista235/know-your-fan/internal/services/rate"
	"github.com/joaobatista235/know-your-fan/internal/services/social"
	"github.com/joaobatista235/know-your-fan/internal/services/verification"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)
	fanCacheRepo := redrepo.NewFanCacheRepo(redisClient, cfg.Fans.CacheTTL)
	fanRepo := pgrepo.NewFanRepo(pool)
	userRepo := pgrepo.NewUserRepo(pool)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}
	documentStorage := mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket, cfg.S3.BaseURL)

	oracle := verification.NewSimulatedOracle()
	if cfg.Verify.OracleSeed != 0 {
		oracle = verification.NewSeededOracle(cfg.Verify.OracleSeed)
	}

	fanService := fanssvc.NewService(fanssvc.Dependencies{
		Store:  fanRepo,
		Cache:  fanCacheRepo,
		Ledger: verification.NewLedger(oracle),
		Social: social.NewSimulatedProvider(),
		Blobs:  documentStorage,
	})

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	loginLimiter := ratesvc.NewLimiter(rateRepo, cfg.Auth.LoginPerMinute, cfg.Auth.LoginPerHour)
	authService := authsvc.NewService(jwtManager, userRepo, sessionRepo, fanRepo, loginLimiter, cfg.Auth.RefreshTTL)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService: authService,
		FanService:  fanService,
		Logger:      log,
		Config:      cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
