package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/mcarbmont89/full-congreso-sub000/internal/common/pagination"
	"github.com/mcarbmont89/full-congreso-sub000/internal/config"
	pgRepo "github.com/mcarbmont89/full-congreso-sub000/internal/infra/adapter/persistence/postgres"
	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/db"
	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/notifier"
	"github.com/mcarbmont89/full-congreso-sub000/internal/infra/storage"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/logging"
	"github.com/mcarbmont89/full-congreso-sub000/internal/observability/tracing"
	"github.com/mcarbmont89/full-congreso-sub000/internal/resilience/circuitbreaker"

	homeUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/homepage"
	legUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/legislature"
	streamUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/livestream"
	newsUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/news"
	feedUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/newsfeed"
	"github.com/mcarbmont89/full-congreso-sub000/internal/usecase/notify"
	programUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/program"
	radioUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/radio"
	trUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/transparency"
	uploadUC "github.com/mcarbmont89/full-congreso-sub000/internal/usecase/upload"

	hhttp "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http"
	hauth "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/auth"
	hhome "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/homepage"
	hleg "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/legislature"
	hstream "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/livestream"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/middleware"
	hnews "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/news"
	hfeed "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/newsfeed"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/pathutil"
	hprogram "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/program"
	hradio "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/radio"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/requestid"
	"github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/respond"
	htr "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/transparency"
	hupload "github.com/mcarbmont89/full-congreso-sub000/internal/handler/http/upload"
	authservice "github.com/mcarbmont89/full-congreso-sub000/internal/service/auth"

	_ "github.com/mcarbmont89/full-congreso-sub000/docs" // swagger docs
)

// @title           Congreso CMS API
// @version         1.0
// @description     Content API of the Canal del Congreso website: news, live streams,
// @description     TV and radio programming, legislature directory, Defensoría de la
// @description     Audiencia, transparency portal and file uploads.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT obtained from POST /auth/token, sent as "Bearer {token}".

func main() {
	logger := initLogger()

	if err := config.LoadDotEnv(); err != nil {
		logger.Error("failed to load .env", slog.Any("error", err))
		os.Exit(1)
	}
	cfg, err := config.LoadServer()
	if err != nil {
		logger.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}
	validateCredentials(logger, cfg.Auth)

	shutdownTracing, err := tracing.Setup("cms-api", cfg.Version, cfg.TraceSampleRatio)
	if err != nil {
		logger.Error("failed to set up tracing", slog.Any("error", err))
		os.Exit(1)
	}

	database := initDatabase(logger, cfg.DatabaseURL)
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	components, err := setupServer(logger, database, cfg)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	runServer(logger, cfg, components)

	if err := shutdownTracing(context.Background()); err != nil {
		logger.Warn("tracer provider shutdown failed", slog.Any("error", err))
	}
}

func initLogger() *slog.Logger {
	logger := logging.NewLogger()
	slog.SetDefault(logger)
	return logger
}

// validateCredentials refuses to start with a missing or weak admin login.
// The editor login is checked in registerRoutes; a bad one only disables it.
func validateCredentials(logger *slog.Logger, a config.Auth) {
	if err := hauth.ValidateAdminCredentials(a.AdminUser, a.AdminPassword); err != nil {
		logger.Error("admin credentials validation failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func initDatabase(logger *slog.Logger, dsn string) *sql.DB {
	database, err := db.Open(context.Background(), dsn)
	if err != nil {
		logger.Error("failed to open database", slog.String("error", respond.SanitizeError(err)))
		os.Exit(1)
	}
	if err := db.MigrateUp(database); err != nil {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}
	return database
}

// ServerComponents holds what runServer needs besides the config.
type ServerComponents struct {
	Handler http.Handler
	Notify  notify.Service
}

func setupServer(logger *slog.Logger, database *sql.DB, cfg *config.Server) (*ServerComponents, error) {
	breaker := circuitbreaker.NewDBCircuitBreaker(database)

	notifySvc := notify.NewService([]notify.Channel{
		notify.NewDiscordChannel(notifier.DiscordConfig{
			Enabled:    cfg.Notify.DiscordEnabled,
			WebhookURL: cfg.Notify.DiscordWebhookURL,
			Timeout:    cfg.Notify.Timeout,
		}),
		notify.NewSlackChannel(notifier.SlackConfig{
			Enabled:    cfg.Notify.SlackEnabled,
			WebhookURL: cfg.Notify.SlackWebhookURL,
			Timeout:    cfg.Notify.Timeout,
		}),
	}, cfg.Notify.MaxConcurrent)

	policy, err := config.LoadUploadPolicy(cfg.Upload.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("load upload policy: %w", err)
	}
	store, err := storage.NewLocal(cfg.Upload.Dir, cfg.Upload.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("open upload storage: %w", err)
	}

	proxies, err := middleware.ParseTrustedProxies(cfg.RateLimit.TrustProxy, cfg.RateLimit.TrustedProxies)
	if err != nil {
		return nil, err
	}
	clientKey := middleware.KeyFunc(middleware.NewIPExtractor(proxies))
	if proxies.Enabled {
		logger.Info("rate limiting: trusted proxy mode enabled",
			slog.Int("trusted_proxies_count", len(proxies.AllowedCIDRs)))
	}

	mux := http.NewServeMux()
	registerRoutes(mux, logger, database, breaker, cfg, notifySvc, policy, store)

	var limit, authLimit func(http.Handler) http.Handler
	if cfg.RateLimit.Enabled {
		limit = middleware.RateLimit("api", cfg.RateLimit.Limit, cfg.RateLimit.Window, clientKey)
		authLimit = middleware.Only(http.MethodPost, "/auth/token",
			middleware.RateLimit("auth", cfg.RateLimit.AuthLimit, cfg.RateLimit.Window, clientKey))
		logger.Info("rate limiting initialized",
			slog.Int("limit", cfg.RateLimit.Limit),
			slog.Int("auth_limit", cfg.RateLimit.AuthLimit),
			slog.Duration("window", cfg.RateLimit.Window))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
		limit = func(next http.Handler) http.Handler { return next }
		authLimit = limit
	}

	logger.Info("CORS enabled", slog.Any("allowed_origins", cfg.CORS.AllowedOrigins))

	route := func(r *http.Request) string { return pathutil.NormalizePath(r.URL.Path) }
	handler := hhttp.Chain(hauth.Authz([]byte(cfg.Auth.JWTSecret))(mux),
		middleware.CORS(cfg.CORS),
		requestid.Middleware,
		limit,
		authLimit,
		tracing.Middleware(route),
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(cfg.MaxBodyBytes, "/api/upload"),
		hhttp.Timeout(cfg.RequestTimeout, "/api/upload"),
		hhttp.MetricsMiddleware,
	)

	return &ServerComponents{Handler: handler, Notify: notifySvc}, nil
}

func registerRoutes(
	mux *http.ServeMux,
	logger *slog.Logger,
	database *sql.DB,
	breaker *circuitbreaker.DBCircuitBreaker,
	cfg *config.Server,
	notifySvc notify.Service,
	policy *config.UploadPolicy,
	store *storage.Local,
) {
	paginationCfg := pagination.LoadConfig(logger)

	newsRepo := pgRepo.NewNewsRepo(breaker)
	streamRepo := pgRepo.NewLiveStreamRepo(breaker)
	programRepo := pgRepo.NewProgramRepo(breaker)
	radioCategoryRepo := pgRepo.NewRadioCategoryRepo(breaker)
	radioProgramRepo := pgRepo.NewRadioProgramRepo(breaker)
	groupRepo := pgRepo.NewParliamentaryGroupRepo(breaker)

	newsSvc := &newsUC.Service{Repo: newsRepo}
	streamSvc := &streamUC.Service{Repo: streamRepo, Notifier: notifySvc}
	programSvc := &programUC.Service{Repo: programRepo}
	homeCfgSvc := &homeUC.ConfigService{
		Repo:     pgRepo.NewHomepageConfigRepo(breaker),
		Streams:  streamRepo,
		Defaults: config.DefaultHomepageConfig,
	}

	// Auth
	accounts := []hauth.Account{{Username: cfg.Auth.AdminUser, Password: cfg.Auth.AdminPassword, Role: hauth.RoleAdmin}}
	if hauth.ValidateEditorCredentials(logger, cfg.Auth.AdminUser, cfg.Auth.EditorUser, cfg.Auth.EditorPassword) {
		accounts = append(accounts, hauth.Account{Username: cfg.Auth.EditorUser, Password: cfg.Auth.EditorPassword, Role: hauth.RoleEditor})
	}
	authSvc := authservice.NewAuthService(hauth.NewMultiUserAuthProvider(accounts...))
	mux.Handle("POST   /auth/token", hauth.TokenHandler{Svc: authSvc, Secret: []byte(cfg.Auth.JWTSecret), TTL: cfg.Auth.TokenTTL})

	// Probes and docs
	mux.Handle("GET    /health", &hhttp.HealthHandler{DB: database, Breaker: breaker, Version: cfg.Version})
	mux.Handle("GET    /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET    /live", hhttp.LiveHandler{})
	mux.Handle("GET    /metrics", hhttp.MetricsHandler())
	if cfg.SwaggerEnabled {
		mux.Handle("GET    /swagger/", httpSwagger.WrapHandler)
	}

	// Content
	hnews.Register(mux, newsSvc, paginationCfg, logger)
	hstream.Register(mux, streamSvc)
	hprogram.Register(mux, programSvc)
	hradio.Register(mux, hradio.Services{
		Categories: &radioUC.CategoryService{Repo: radioCategoryRepo},
		Programs:   &radioUC.ProgramService{Repo: radioProgramRepo, Categories: radioCategoryRepo},
		Episodes:   &radioUC.EpisodeService{Repo: pgRepo.NewRadioEpisodeRepo(breaker), Programs: radioProgramRepo},
	}, paginationCfg, logger)
	hleg.Register(mux, hleg.Services{
		Organs:      &legUC.OrganService{Repo: pgRepo.NewOrganRepo(breaker)},
		Groups:      &legUC.GroupService{Repo: groupRepo},
		Legislators: &legUC.LegislatorService{Repo: pgRepo.NewLegislatorRepo(breaker), Groups: groupRepo},
	})
	htr.Register(mux, htr.Services{
		Defensoria: &trUC.DefensoriaService{Repo: pgRepo.NewDefensoriaRepo(breaker)},
		Sections:   &trUC.SectionService{Repo: pgRepo.NewTransparencySectionRepo(breaker)},
		Documents:  &trUC.DocumentService{Repo: pgRepo.NewDocumentRepo(breaker)},
		Datasets:   &trUC.DatasetService{Repo: pgRepo.NewDatasetRepo(breaker)},
	}, paginationCfg, logger)
	hhome.Register(mux, homeCfgSvc, &homeUC.Aggregator{
		Config:        homeCfgSvc,
		News:          newsSvc,
		Streams:       streamRepo,
		Programs:      programRepo,
		RadioPrograms: radioProgramRepo,
		Logger:        logger,
	}, logger)
	hfeed.Register(mux, &feedUC.Service{Repo: pgRepo.NewNewsFeedRepo(breaker)})
	hupload.Register(mux, &uploadUC.Service{Policy: policy, Storage: store}, cfg.Upload.Dir)
}

func runServer(logger *slog.Logger, cfg *config.Server, components *ServerComponents) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	cancel()
	if err := components.Notify.Shutdown(shutdownCtx); err != nil {
		logger.Warn("notification shutdown incomplete", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
