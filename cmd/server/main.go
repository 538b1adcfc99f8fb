// SocialPulse - Social Media Analytics Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/socialpulse

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/socialpulse/internal/analytics"
	"github.com/tomtom215/socialpulse/internal/api"
	"github.com/tomtom215/socialpulse/internal/audit"
	"github.com/tomtom215/socialpulse/internal/auth"
	"github.com/tomtom215/socialpulse/internal/authz"
	"github.com/tomtom215/socialpulse/internal/cache"
	"github.com/tomtom215/socialpulse/internal/config"
	"github.com/tomtom215/socialpulse/internal/dataset"
	"github.com/tomtom215/socialpulse/internal/logging"
	"github.com/tomtom215/socialpulse/internal/metrics"
	"github.com/tomtom215/socialpulse/internal/onboarding"
	"github.com/tomtom215/socialpulse/internal/sentiment"
	"github.com/tomtom215/socialpulse/internal/supervisor"
	"github.com/tomtom215/socialpulse/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("SocialPulse stopped with an error")
	}
}

//nolint:gocyclo // sequential setup steps
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Caller:  cfg.Logging.Caller,
		Version: version,
	})
	metrics.SetAppInfo(version, runtime.Version())

	logging.Info().
		Str("data_dir", cfg.Data.Dir).
		Str("auth_mode", cfg.Security.AuthMode).
		Str("storage", cfg.Storage.Backend).
		Bool("sentiment", cfg.Sentiment.Enabled).
		Msg("Starting SocialPulse")
	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin; set CORS_ORIGINS in production")
	}

	// Users and onboarding flags share one store.
	kv, closer, err := onboarding.OpenStore(cfg.Storage.Backend, cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	users := auth.NewUserStore(kv, bcrypt.DefaultCost)
	if err := users.EnsureAdmin(context.Background(), cfg.Security.AdminUsername, cfg.Security.AdminPassword); err != nil {
		return fmt.Errorf("seed admin account: %w", err)
	}

	var jwtManager *auth.JWTManager
	if cfg.Security.AuthMode != auth.AuthModeNone {
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			return fmt.Errorf("initialize JWT: %w", err)
		}
	} else {
		logging.Warn().Msg("Authentication disabled (AUTH_MODE=none); every request acts as an administrator")
	}
	session := auth.NewMiddleware(jwtManager, &cfg.Security)

	enforcer, err := authz.NewEnforcer(cfg.Security.CasbinPolicyPath)
	if err != nil {
		return fmt.Errorf("initialize authorization: %w", err)
	}

	ref := cfg.ReferenceTime()
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	loader := dataset.NewLoader(cfg.Data.Dir)

	deps := api.HandlerDeps{
		Users:      users,
		JWT:        jwtManager,
		Session:    session,
		Onboarding: onboarding.NewService(kv),
		Cache:      cache.New("responses", cfg.Data.CacheTTL),
		Version:    version,
		DataVersion: func(context.Context) (time.Time, error) {
			return loader.LatestModTime()
		},
		Readiness: map[string]api.ReadinessCheck{
			"dataset": func(context.Context) error {
				_, err := loader.LatestModTime()
				return err
			},
			"store": func(ctx context.Context) error {
				_, _, err := kv.Get(ctx, onboarding.KeyFor("readiness-probe"))
				return err
			},
		},
	}

	if cfg.Security.AuditEnabled {
		deps.Audit = audit.NewLogger(audit.NewMemoryStore(cfg.Security.AuditMaxEvents), audit.Config{
			RetentionDays: cfg.Security.AuditRetentionDays,
		})
	}

	var analyzer *sentiment.Analyzer
	if cfg.Sentiment.Enabled {
		client := sentiment.NewClient(&cfg.Sentiment)
		analyzer = sentiment.NewAnalyzer(loader, client, sentiment.NewCache(cfg.Sentiment.CachePath), brandIDs())
		deps.Analytics = analytics.NewService(loader, client, ref)
		deps.Sentiment = analyzer
	} else {
		deps.Analytics = analytics.NewService(loader, nil, ref)
	}

	handler := api.NewHandler(deps)
	router := api.NewRouter(
		handler,
		api.NewChiMiddleware(api.NewChiMiddlewareConfig(&cfg.Security)),
		session,
		authz.NewMiddleware(enforcer),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}
	tree.AddDataService(deps.Cache)
	if deps.Audit != nil {
		tree.AddDataService(deps.Audit)
	}
	if analyzer != nil {
		tree.AddDataService(services.NewRefreshService(analyzer, cfg.Sentiment.RefreshInterval, handler.ClearCache))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, services.DefaultShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := tree.ServeBackground(ctx)
	select {
	case <-ctx.Done():
		logging.Info().Msg("Received shutdown signal, waiting for services to stop")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	if unstopped, _ := tree.UnstoppedServiceReport(); len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("SocialPulse stopped gracefully")
	return nil
}

func brandIDs() []int {
	brands := dataset.Brands()
	ids := make([]int, 0, len(brands))
	for _, b := range brands {
		ids = append(ids, b.ID)
	}
	return ids
}
