// Package main is the entrypoint for the roktodan API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/roktodan/roktodan/internal/auth"
	"github.com/roktodan/roktodan/internal/cache"
	"github.com/roktodan/roktodan/internal/config"
	"github.com/roktodan/roktodan/internal/handler"
	"github.com/roktodan/roktodan/internal/metrics"
	"github.com/roktodan/roktodan/internal/middleware"
	"github.com/roktodan/roktodan/internal/repository"
	"github.com/roktodan/roktodan/internal/server"
	"github.com/roktodan/roktodan/internal/service"
	"github.com/roktodan/roktodan/internal/token"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize services
	recorder := metrics.NewInMemory()
	tokenService := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	donorService := service.NewDonorService(repo, recorder)
	profileService := service.NewProfileService(repo, recorder)
	requestService := service.NewRequestService(repo, recorder)
	roleResolver := auth.NewRoleResolver(repo, cacheClient)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	tokenHandler := handler.NewTokenHandler(tokenService, logger, recorder)
	userHandler := handler.NewUserHandler(repo, logger, recorder)
	donorHandler := handler.NewDonorHandler(donorService, logger)
	profileHandler := handler.NewProfileHandler(profileService, logger)
	requestHandler := handler.NewRequestHandler(requestService, logger)
	adminHandler := handler.NewAdminHandler(repo, cacheClient, recorder, logger)

	// Setup router
	r := setupRouter(routerDeps{
		base:     h,
		health:   healthHandler,
		tokens:   tokenHandler,
		users:    userHandler,
		donors:   donorHandler,
		profiles: profileHandler,
		requests: requestHandler,
		admin:    adminHandler,
		verifier: tokenService,
		roles:    roleResolver,
		limiter:  cacheClient,
		recorder: recorder,
		cfg:      cfg,
		logger:   logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"token_ttl", cfg.TokenTTL,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything the router needs.
type routerDeps struct {
	base     *handler.Handler
	health   *handler.HealthHandler
	tokens   *handler.TokenHandler
	users    *handler.UserHandler
	donors   *handler.DonorHandler
	profiles *handler.ProfileHandler
	requests *handler.RequestHandler
	admin    *handler.AdminHandler
	verifier middleware.TokenVerifier
	roles    middleware.RoleLookup
	limiter  middleware.IPRateLimiter
	recorder metrics.Recorder
	cfg      *config.Config
	logger   *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))

	// Health endpoints (no auth required)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)

	// Root info endpoint
	r.Get("/", d.base.Hello)

	authCfg := middleware.AuthConfig{
		Logger:  d.logger,
		Tokens:  d.verifier,
		Metrics: d.recorder,
	}
	adminCfg := middleware.AdminConfig{
		Logger:  d.logger,
		Roles:   d.roles,
		Metrics: d.recorder,
	}
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  d.logger,
		Limiter: d.limiter,
		Enabled: d.cfg.RateLimitTokenEnabled,
		RPS:     d.cfg.RateLimitTokenRPS,
		Burst:   d.cfg.RateLimitTokenBurst,
	}

	// Public endpoints
	r.With(middleware.RateLimitIP(rateLimitCfg)).Post("/jwt", d.tokens.Issue)
	r.Post("/users", d.users.Register)
	r.Get("/requests", d.requests.ListAll)
	r.Get("/donars", d.donors.Search)

	// Authenticated endpoints
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(authCfg))

		r.Post("/blood-request/new", d.requests.Create)
		r.Get("/requests/my", d.requests.ListMine)
		r.Delete("/requests/{id}", d.requests.Delete)
		r.Get("/donation-profile", d.profiles.Get)
		r.Patch("/donation-profile", d.profiles.Patch)
		r.Patch("/donation-profile/active", d.profiles.PatchActive)

		// Admin-only management surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(adminCfg))

			r.Get("/users", d.admin.ListUsers)
			r.Patch("/users/{email}/role", d.admin.UpdateRole)
			r.Get("/metrics", d.admin.Metrics)
		})
	})

	// 404 and 405 handlers
	r.NotFound(d.base.NotFound)
	r.MethodNotAllowed(d.base.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
