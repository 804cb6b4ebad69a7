package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/auth"
	authPostgres "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/auth/postgres"
	authRedis "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/auth/redis"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/email"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/report"
	reportPostgres "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/report/postgres"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/transport/rest"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/user"
	userPostgres "github.com/Faisal-Ahmad-dotlabs/webseed-website/internal/user/postgres"
	"github.com/Faisal-Ahmad-dotlabs/webseed-website/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger

	closers []func() error
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("received signal, shutting down", "signal", sig)
		ctx, cancel := internal.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("server shutdown error", "error", err)
		}
		for _, closeFn := range deps.closers {
			if err := closeFn(); err != nil {
				deps.Logger.Error("dependency close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}

	deps.Logger.Info("server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Server.Environment)
	log := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// gorm rides on the same pgx pool; TranslateError surfaces unique
	// violations as gorm.ErrDuplicatedKey
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize gorm: %w", err)
	}

	deps := &Dependencies{
		Config: config,
		Logger: log,
		DB:     db,
	}
	deps.closers = append(deps.closers, db.Close)

	// Ephemeral stores: Redis when configured, otherwise in-process
	var (
		otpStore       auth.OTPStore
		resetTokens    auth.ResetTokenStore
		otpStoreHealth rest.Pinger
	)
	if config.Redis.URL != "" {
		redisClient, err := authRedis.NewClient(context.Background(), config.Redis.URL, log)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		deps.closers = append(deps.closers, redisClient.Close)

		otpStore = authRedis.NewOTPStore(redisClient, config.Security.OTPTTL)
		resetTokens = authRedis.NewResetTokenStore(redisClient, config.Security.ResetTokenTTL)
		otpStoreHealth = authRedis.NewHealth(redisClient)
	} else {
		log.Warn("redis not configured, using in-process OTP store")
		otpStore = auth.NewMemoryOTPStore(config.Security.OTPTTL)
		resetTokens = auth.NewMemoryResetTokenStore(config.Security.ResetTokenTTL)
	}

	mailer := email.NewOTPMailer(email.NewSMTPSender(config.SMTP, log))

	codec := auth.NewTokenCodec(config.Security.SessionSecret, config.Security.SessionTTL)
	sessions := auth.NewSessionManager(codec, config.IsProduction())

	authService := auth.NewService(
		authPostgres.NewRepository(gormDB),
		otpStore,
		resetTokens,
		mailer,
		log,
		config.Security.BCryptCost,
	)
	authHandler := auth.NewHandler(authService, sessions)

	userService := user.NewService(userPostgres.NewUserRepository(gormDB), log, config.Security.BCryptCost)
	userHandler := user.NewHandler(userService)

	reportService := report.NewService(
		reportPostgres.NewReportRepository(gormDB),
		reportPostgres.NewAccessOverviewRepository(db),
		log,
	)
	reportHandler := report.NewHandler(reportService)

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, rest.RouterDeps{
		DB:             db.DB,
		OTPStoreHealth: otpStoreHealth,
		AuthHandler:    authHandler,
		UserHandler:    userHandler,
		ReportHandler:  reportHandler,
		LoginLimiter:   auth.NewLoginLimiter(config.Security.LoginRate, config.Security.LoginBurst),
		AllowedOrigins: config.Server.AllowedOrigins,
		Logger:         log,
	})
	deps.Router = router

	return deps, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
