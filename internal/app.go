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

	"excel-analytics-api/config"
	"excel-analytics-api/internal/application/ports"
	"excel-analytics-api/internal/application/services"
	"excel-analytics-api/internal/domain/history"
	"excel-analytics-api/internal/domain/user"
	"excel-analytics-api/internal/domain/user_file"
	"excel-analytics-api/internal/infrastructure/ai"
	"excel-analytics-api/internal/infrastructure/db/memory"
	"excel-analytics-api/internal/infrastructure/db/postgres"
	historyDB "excel-analytics-api/internal/infrastructure/db/postgres/history"
	userDB "excel-analytics-api/internal/infrastructure/db/postgres/user"
	userFileDB "excel-analytics-api/internal/infrastructure/db/postgres/user_file"
	"excel-analytics-api/internal/infrastructure/jwt"
	"excel-analytics-api/internal/infrastructure/metrics"
	"excel-analytics-api/internal/infrastructure/mq"
	"excel-analytics-api/internal/infrastructure/realtime"
	"excel-analytics-api/internal/infrastructure/spreadsheet"
	"excel-analytics-api/internal/infrastructure/storage"
	"excel-analytics-api/internal/interface/api/rest"
	"excel-analytics-api/internal/interface/api/rest/middleware"
	"excel-analytics-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	storage    ports.BlobStorage
	summarizer ports.Summarizer
	hub        *realtime.Hub
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	// rbMQ and mqConsumer stay nil when no broker is configured
	rbMQ       ports.RabbitMQ
	mq         ports.EventPublisher
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	// config; a missing .env is fine, the environment may carry everything
	if err = godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg := config.Load()
	if cfg.App.JWTSecret == "" {
		logger.Fatal("SERVICE_JWT_SECRET is required")
	}

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
	r.MaxMultipartMemory = cfg.App.MaxUploadBytes
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	var dbPool *pgxpool.Pool
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
	case config.StoreDriverPostgres:
		dbDsn, err := cfg.DBDSN()
		if err != nil {
			logger.Fatal("DB config error", zap.Error(err))
		}
		dbPool, err = postgres.New(ctx, logger, dbDsn)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		if err = postgres.Migrate(ctx, logger, dbPool); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	default:
		logger.Fatal("unknown STORE_DRIVER", zap.String("driver", cfg.App.StoreDriver))
	}

	// blob storage
	var blobs ports.BlobStorage
	switch cfg.Storage.Driver {
	case config.StorageDriverS3:
		blobs, err = storage.NewS3(ctx, logger, cfg.S3)
	case config.StorageDriverLocal:
		blobs, err = storage.NewLocal(logger, cfg.Storage.BaseDir)
	default:
		err = fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	if err != nil {
		logger.Fatal("failed to init blob storage", zap.Error(err))
	}

	// summarizer
	var summarizer ports.Summarizer = ai.Unavailable{}
	if cfg.AI.APIKey != "" {
		if summarizer, err = ai.NewGemini(ctx, logger, cfg.AI); err != nil {
			logger.Fatal("failed to init gemini client", zap.Error(err))
		}
	} else {
		logger.Warn("GEMINI_API_KEY is empty, ai analysis disabled")
	}

	app := &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		storage:    blobs,
		summarizer: summarizer,
		hub:        realtime.NewHub(logger),
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		mq:         mq.Nop{},
	}

	if !cfg.MQEnabled() {
		logger.Warn("RABBITMQ_HOST is empty, lifecycle events are discarded")
		return app, nil
	}

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
	//rmqConsumer
	rmqConsumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
	if err = rmqConsumer.Connect(rabbitDsn); err != nil {
		logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
	}
	if err = rmqConsumer.Init(); err != nil {
		logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
	}

	app.rbMQ = rbMQ
	app.mq = rbMQ
	app.mqConsumer = rmqConsumer

	return app, nil
}

func (a *App) Close() {
	if a.db != nil {
		a.db.Close()
	}
	if a.rbMQ != nil && a.rbMQ.GetConn() != nil {
		_ = a.rbMQ.GetConn().Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
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
	// - allows orchestration of parallel processes through the context.Context(gracefull shut down)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.hub.Run(ctx)
		return nil
	})

	if a.rbMQ != nil {
		g.Go(func() error {
			a.rbMQ.PublisherWorker(ctx)
			return nil
		})

		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

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

func (a *App) repositories() (user.Repository, user_file.Repository, history.Repository) {
	if a.db == nil {
		users := memory.NewUserRepository()
		return users, memory.NewUserFileRepository(users), memory.NewHistoryRepository()
	}

	return userDB.NewRepository(a.db), userFileDB.NewRepository(a.db), historyDB.NewRepository(a.db)
}

func (a *App) InitControllers() {
	// repos
	userRepo, userFileRepo, historyRepo := a.repositories()

	// services
	codec := spreadsheet.New()
	jwtService := jwt.New(a.cfg.App.JWTSecret)
	authService := services.NewAuthService(jwtService, a.cfg.App.TokenTTL)
	historyService := services.NewHistoryService(a.logger, historyRepo)
	userService := services.NewUserService(userRepo, a.mq, a.mCounter)
	userFileService := services.NewUserFileService(a.logger, a.storage, codec, userFileRepo, a.hub, a.mq, a.mCounter)
	analysisService := services.NewAnalysisService(a.logger, userFileRepo, a.storage, codec, a.summarizer, a.hub, a.mCounter)
	adminService := services.NewAdminService(a.logger, userRepo, userFileRepo, a.storage, a.mq, a.mCounter)

	// controllers
	rest.NewAuthController(a.router, a.logger, userService, authService, historyService)
	rest.NewUserFileController(a.router, userFileService, historyService, a.logger, jwtService, a.cfg.App.MaxUploadBytes)
	rest.NewAnalysisController(a.router, analysisService, historyService, a.logger, jwtService)
	rest.NewHistoryController(a.router, historyService, a.logger, jwtService)
	rest.NewAdminController(a.router, adminService, historyService, a.logger, jwtService)
	rest.NewRealtimeController(a.router, a.hub, a.logger, jwtService)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
