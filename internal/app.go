package internal

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"filetag-api/config"
	"filetag-api/internal/application/ports"
	"filetag-api/internal/application/services"
	"filetag-api/internal/infrastructure/db/postgres"
	accountDB "filetag-api/internal/infrastructure/db/postgres/account"
	directoryDB "filetag-api/internal/infrastructure/db/postgres/directory"
	shortcutDB "filetag-api/internal/infrastructure/db/postgres/shortcut"
	userDB "filetag-api/internal/infrastructure/db/postgres/user"
	"filetag-api/internal/infrastructure/flow"
	"filetag-api/internal/infrastructure/mail"
	"filetag-api/internal/infrastructure/metrics"
	"filetag-api/internal/infrastructure/mq"
	"filetag-api/internal/infrastructure/secrets"
	"filetag-api/internal/infrastructure/storage"
	"filetag-api/internal/interface/api/rest"
	"filetag-api/internal/interface/api/rest/middleware"
	"filetag-api/pkg/mailworker"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mailWorker ports.MailWorker
	files      *storage.Disk
	chunks     ports.ChunkReceiver

	accounts    ports.IdentityStore
	users       ports.UserStore
	directories ports.DirectoryStore
	shortcuts   ports.ShortcutStore
	notifier    ports.Notifier
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg := config.Load()

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:    ":" + cfg.App.Port,
		Handler: r,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// disk storage
	files := storage.NewDisk(logger)
	if err = files.EnsureRoot(cfg.Storage.UploadRoot); err != nil {
		logger.Fatal("failed to prepare upload root", zap.Error(err))
	}
	if err = files.EnsureRoot(cfg.Storage.ChunkDir); err != nil {
		logger.Fatal("failed to prepare chunk dir", zap.Error(err))
	}
	chunks := flow.New(cfg.Storage.ChunkDir)

	// mail secret: vault first, env fallback
	mailKey := cfg.Mail.SecretKey
	var vault ports.SecretProvider = secrets.New(logger, cfg.Vault)
	if key, serr := vault.Fetch(ctx, cfg.Vault.SecretName); serr == nil {
		mailKey = key
	} else if !errors.Is(serr, secrets.ErrNoVault) {
		logger.Warn("vault secret unavailable, using env key", zap.Error(serr))
	}
	mailer := mail.NewSendGrid(logger, cfg.Mail, mailKey)

	// rabbitMQ
	rabbitDsn, err := cfg.AMQPDSN()
	if err != nil {
		logger.Fatal("RabbitMQ config error", zap.Error(err))
	}
	rbMQ := mq.New(cfg.MQ, logger)
	if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
		logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
	}
	if err = rbMQ.Init(); err != nil {
		logger.Fatal("failed init rabbitMQ", zap.Error(err))
	}
	// mail worker
	worker := mailworker.New(cfg.MQ, logger, mailer)
	if err = worker.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect mail worker", zap.Error(err))
	}
	if err = worker.Init(); err != nil {
		logger.Fatal("failed to init mail worker", zap.Error(err))
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         rbMQ,
		mailWorker: worker,
		files:      files,
		chunks:     chunks,
	}, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.mq.GetConn() != nil {
		a.mq.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// InitStores builds the in-memory stores and warms them from the
// database. Users come first so account owner references resolve,
// then accounts, shortcuts and directories.
func (a *App) InitStores(ctx context.Context) error {
	a.users = services.NewUserService(userDB.NewRepository(a.db))
	a.accounts = services.NewIdentityService(accountDB.NewRepository(a.db), a.mCounter)
	a.shortcuts = services.NewShortcutService(shortcutDB.NewRepository(a.db))
	a.directories = services.NewDirectoryService(
		directoryDB.NewRepository(a.db),
		a.files,
		a.cfg.Storage.UploadRoot,
	)

	for _, load := range []func(context.Context) error{
		a.users.Load,
		a.accounts.Load,
		a.shortcuts.Load,
		a.directories.Load,
	} {
		if err := load(ctx); err != nil {
			return err
		}
	}

	a.logger.Info("stores warmed up")

	return nil
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	// "errgroup" instead of "WaitGroup" because:
	// - allows return an error from gorutine
	// - group errors from multiple gorutines into one
	// - wg.Add(1), wg.Done() - automatically under the hood, so never catch deadlock if you forget something ;-)
	// - allows orchestration of parallel processes through the context.Context(gracefull shut down)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.cfg.App.Host+":"+a.cfg.App.Port))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	g.Go(func() error {
		a.mailWorker.DeliveryWorker(ctx)
		return nil
	})

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	// services
	a.notifier = services.NewNotifyService(a.mq, a.cfg)
	transactions := services.NewTransactionService()
	uploadService := services.NewUploadService(
		a.accounts,
		a.users,
		a.directories,
		a.shortcuts,
		transactions,
		a.chunks,
		a.files,
		a.notifier,
		a.logger,
		a.mCounter,
		a.cfg,
	)
	downloadService := services.NewDownloadService(a.shortcuts, a.accounts, a.mCounter, a.cfg)

	// controllers
	rest.NewDownloadController(a.router, a.logger, downloadService, a.files)
	rest.NewAccountController(a.router, a.logger, a.accounts, downloadService, a.notifier)
	rest.NewUploadController(a.router, a.logger, uploadService, a.chunks, a.accounts)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
