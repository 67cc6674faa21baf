package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"gamevault/backend/internal/cache"
	"gamevault/backend/internal/config"
	"gamevault/backend/internal/database"
	"gamevault/backend/internal/handler"
	"gamevault/backend/internal/hub"
	"gamevault/backend/internal/library"
	"gamevault/backend/internal/logging"
	"gamevault/backend/internal/repository"
	"gamevault/backend/internal/service"
	"gamevault/backend/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// @title           Gamevault API
// @version         1.0
// @description     Personal game library aggregated across storefronts.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		slog.Error("server_exit", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewLogger(logging.Options{
		Level:      cfg.LogLevel,
		Dir:        cfg.LogDir,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if logging.ParseLevel(cfg.LogLevel) > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracing, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:     cfg.OTelEnabled,
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: cfg.OTelServiceName,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer shutdown(logger, "telemetry", tracing.Shutdown)

	db, err := database.Open(database.Options{Driver: cfg.DatabaseDriver, DSN: cfg.DatabaseURL})
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warn("database_close_failed", "err", err)
		}
	}()
	if err := database.Migrate(ctx, db); err != nil {
		return err
	}

	store, err := cache.NewStore(cfg.CacheURL, cfg.CacheTTL(), logger)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer store.Close()

	events := hub.NewHub(logger)
	repo := repository.New(db)
	games := service.NewGameService(repo, store, events, logger)
	syncer := library.NewSyncer(repo, events, library.Options{
		SteamLibraryPath: cfg.SteamLibraryPath,
		EpicManifestPath: cfg.EpicManifestPath,
		MinInterval:      cfg.SyncMinInterval(),
		OnChange:         games.Invalidate,
	}, logger)

	router := handler.NewRouter(handler.RouterDeps{
		Games:   games,
		Lookups: games,
		Syncer:  syncer,
		Hub:     events,
		Checks: map[string]handler.Checker{
			"database": func(ctx context.Context) error { return database.Ping(ctx, db) },
			"cache":    store.Ping,
		},
		Logger:    logger,
		JWTSecret: cfg.JWTSecret,
		Origins:   cfg.AllowedOrigins(),
		Tracing:   tracing.Middleware(),
	})

	server := newServer(cfg.Addr(), router, events)
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	logger.Info("server_start",
		"addr", server.Addr,
		"database", cfg.DatabaseDriver,
		"cache", store.Backend(),
		"tracing", tracing.IsEnabled(),
	)
	return serve(ctx, logger, server, ln)
}

// newServer builds the HTTP server. Shutdown closes the event hub first so
// open SSE and WebSocket streams end instead of holding the drain.
func newServer(addr string, h http.Handler, events *hub.Hub) *http.Server {
	server := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if events != nil {
		server.RegisterOnShutdown(events.Close)
	}
	return server
}

// serve runs the HTTP server on ln until ctx is cancelled, then drains it.
func serve(ctx context.Context, logger *slog.Logger, server *http.Server, ln net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server_shutdown", "timeout", shutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server_stopped")
	return nil
}

func shutdown(logger *slog.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.Warn("shutdown_failed", "component", name, "err", err)
	}
}
