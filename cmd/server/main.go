package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/judgmentfleet/site/api/handler"
	"github.com/judgmentfleet/site/domain"
	"github.com/judgmentfleet/site/internal/config"
	"github.com/judgmentfleet/site/internal/infrastructure/buffer"
	"github.com/judgmentfleet/site/internal/infrastructure/localstore"
	"github.com/judgmentfleet/site/internal/infrastructure/monitor"
	pgInfra "github.com/judgmentfleet/site/internal/infrastructure/postgres"
	redisInfra "github.com/judgmentfleet/site/internal/infrastructure/redis"
	"github.com/judgmentfleet/site/internal/middleware"
	"github.com/judgmentfleet/site/internal/router"
	"github.com/judgmentfleet/site/internal/services"
	"github.com/judgmentfleet/site/internal/services/lifecycle"
	"github.com/judgmentfleet/site/pkg/httpcontext"
	"github.com/judgmentfleet/site/pkg/logger"
	boltRepo "github.com/judgmentfleet/site/repository/bolt"
	"github.com/judgmentfleet/site/repository/postgres"
	redisRepo "github.com/judgmentfleet/site/repository/redis"
	"github.com/judgmentfleet/site/usecase"
	authUC "github.com/judgmentfleet/site/usecase/auth"
	contentUC "github.com/judgmentfleet/site/usecase/content"
	"github.com/judgmentfleet/site/usecase/todo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
		Service:  cfg.AppName,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pgInfra.Close(pool, zapLogger)
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.RegisterCloser("redis", redisClient)

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.RegisterCloser("buffer", bufferStore)

	localStore, err := localstore.Open(cfg.TodoStore.Path, localstore.DefaultBucket)
	if err != nil {
		zapLogger.Fatal("failed to open todo store", zap.Error(err))
	}
	manager.RegisterCloser("todo_store", localStore)

	mon := monitor.New(pool, redisClient, bufferStore, localStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	contentRepos := contentUC.Repositories{
		Members:   postgres.NewMemberRepository(pool),
		Games:     postgres.NewBestGameRepository(pool),
		FAQs:      postgres.NewFAQRepository(pool),
		Resources: postgres.NewFooterResourceRepository(pool),
	}
	adminRepo := postgres.NewAdminRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, cfg.JWT.SessionTTL)
	changeFeed := redisRepo.NewChangeFeed(redisClient, cfg.Realtime.Channel, zapLogger)

	dispatcher := usecase.NewDispatcher()
	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		dispatcher,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
			MaxSize:    cfg.Buffer.MaxSize,
			Retention:  time.Duration(cfg.Buffer.RetentionHours) * time.Hour,
		},
	)
	bufferBridge := services.NewBufferBridge(bufferProcessor)

	contentUseCase := contentUC.New(contentRepos, bufferBridge, changeFeed, zapLogger)
	contentUseCase.RegisterReplays(dispatcher)
	zapLogger.Info("buffer replays registered", zap.Strings("commands", dispatcher.Commands()))

	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	authUseCase := authUC.New(adminRepo, sessionRepo, authUC.Config{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		TTL:      cfg.JWT.SessionTTL,
		HashCost: cfg.JWT.HashCost,
	}, zapLogger)
	bootstrapCtx, cancelBootstrap := context.WithTimeout(appCtx, cfg.Context.RequestTimeout)
	if _, err := authUseCase.Bootstrap(bootstrapCtx, cfg.JWT.BootstrapEmail, cfg.JWT.BootstrapPassword); err != nil {
		zapLogger.Error("failed to create primary admin", zap.Error(err))
	}
	cancelBootstrap()

	todoStore := todo.New(appCtx, boltRepo.NewTodoRepository(localStore), zapLogger.Named("todo"))

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout, domain.Locale(cfg.Locale.Default))

	handlers := router.Handlers{
		Health:       apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
		Todo:         apiHandler.NewTodoHandler(todoStore, ctxAdapter, zapLogger),
		Navigation:   apiHandler.NewNavigationHandler(ctxAdapter, zapLogger),
		Content:      apiHandler.NewContentHandler(contentUseCase, ctxAdapter, zapLogger),
		Changes:      apiHandler.NewChangesHandler(changeFeed, ctxAdapter, zapLogger),
		Auth:         apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, cfg.JWT.SessionTTL),
		AdminContent: apiHandler.NewAdminContentHandler(contentUseCase, ctxAdapter, zapLogger),
		Admins:       apiHandler.NewAdminHandler(authUseCase, ctxAdapter, zapLogger),
	}

	r := router.New(handlers, router.Guards{
		Session: middleware.JWTAuth(cfg.JWT.Secret, cfg.JWT.Issuer, zapLogger),
		Admin:   middleware.RequireAdmin(authUseCase, cfg.Context.RequestTimeout, zapLogger),
	})

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Concurrency:  cfg.HTTP.MaxConn,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.ShutdownWithContext(ctx)
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
