package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/firepolicepension/jsoneditor/handlers"
	"github.com/firepolicepension/jsoneditor/internal/config"
	"github.com/firepolicepension/jsoneditor/internal/document/handler"
	"github.com/firepolicepension/jsoneditor/internal/document/service"
	"github.com/firepolicepension/jsoneditor/internal/export"
	"github.com/firepolicepension/jsoneditor/internal/storage"
	"github.com/firepolicepension/jsoneditor/pkg/logger"
	"github.com/firepolicepension/jsoneditor/pkg/metrics"
	"github.com/firepolicepension/jsoneditor/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const shutdownTimeout = 10 * time.Second

var startTime = time.Now()

func main() {
	if err := newRootCmd(config.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "editor [documentPath] [port]",
		Short: "Local web editor for the employee JSON document",
		Long: `Serves a browser editor for a JSON list of employee records.

documentPath defaults to ~/Documents/employees.json and port to 8080.
Open http://localhost:<port> once the server is up; stop it with Ctrl+C.`,
		Args:         cobra.MaximumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(v, args)
			if err != nil {
				return err
			}
			logger.Init(cfg.Log.Level)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return run(ctx, cfg)
		},
	}

	cmd.Flags().String("host", "", "interface to listen on (default all)")
	cmd.Flags().String("log-level", "", "debug|info|warn|error")
	cmd.Flags().String("admin-addr", "", "address for /health, /ready, /metrics and /swagger (disabled when empty)")
	_ = v.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	_ = v.BindPFlag("log.level", cmd.Flags().Lookup("log-level"))
	_ = v.BindPFlag("server.admin_addr", cmd.Flags().Lookup("admin-addr"))
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(gin.ReleaseMode)
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	store := objectStore(cfg)
	rdb := redisClient(ctx, cfg)
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
	}

	var uploader export.Uploader
	if store != nil {
		uploader = store
	}
	svc := service.NewFileService(cfg.Document.Path, uploader)

	var extra []gin.HandlerFunc
	if limiter := rateLimiter(cfg, rdb); limiter != nil {
		extra = append(extra, limiter)
	}
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler.NewRouter(svc, extra...),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	servers := []*http.Server{srv}
	if cfg.Server.AdminAddr != "" {
		admin := gin.New()
		admin.Use(middleware.Recovery())
		handlers.RegisterAdminRoutes(admin, readinessChecks(cfg, store, rdb), prometheus.DefaultGatherer, startTime)
		handlers.RegisterSwagger(admin)
		servers = append(servers, &http.Server{Addr: cfg.Server.AdminAddr, Handler: admin})
	}

	fmt.Printf("JSON File: %s\n", cfg.Document.Path)
	fmt.Printf("Port: %d\n", cfg.Server.Port)
	fmt.Printf("Open %s in your browser\n", cfg.Server.BrowserURL())
	logger.Infow("editor started", "addr", srv.Addr, "document", cfg.Document.Path, "admin", cfg.Server.AdminAddr,
		"objectstore", store != nil, "ratelimit", len(extra) > 0)

	errCh := make(chan error, len(servers))
	for _, s := range servers {
		go func(s *http.Server) {
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("listen %s: %w", s.Addr, err)
			}
		}(s)
	}

	var runErr error
	select {
	case <-ctx.Done():
		logger.Infof("shutting down")
	case runErr = <-errCh:
		logger.Errorf("server failed: %v", runErr)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Warnf("shutdown %s: %v", s.Addr, err)
		}
	}
	return runErr
}

// objectStore returns the MinIO-backed export sink, or nil when none is configured.
func objectStore(cfg *config.Config) *storage.ObjectStore {
	if !cfg.MinIO.Enabled() {
		return nil
	}
	store, err := storage.NewObjectStore(&cfg.MinIO)
	if err != nil {
		logger.Warnf("object store disabled: %v", err)
		return nil
	}
	logger.Infof("object store configured: %s", cfg.MinIO.Endpoint)
	return store
}

// redisClient connects only when the Redis limiter is requested. A failed ping
// leaves the in-memory limiter in charge.
func redisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	if !cfg.RateLimit.Enabled || !cfg.RateLimit.UseRedis || cfg.Redis.Host == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s): %v", cfg.Redis.Addr(), err)
		_ = rdb.Close()
		return nil
	}
	logger.Infof("connected to Redis for rate limiting: %s", cfg.Redis.Addr())
	return rdb
}

// rateLimiter picks the limiter for cfg; nil when rate limiting is off.
func rateLimiter(cfg *config.Config, rdb *redis.Client) gin.HandlerFunc {
	if !cfg.RateLimit.Enabled {
		return nil
	}
	if cfg.RateLimit.UseRedis && rdb != nil {
		win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		return middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
	}
	return middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

func readinessChecks(cfg *config.Config, store *storage.ObjectStore, rdb *redis.Client) handlers.Checks {
	checks := handlers.Checks{
		"document": func(context.Context) error { return writableDir(cfg.Document.Dir()) },
	}
	if store != nil {
		checks["objectstore"] = store.Ping
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.UseRedis && cfg.Redis.Host != "" {
		checks["redis"] = func(ctx context.Context) error {
			if rdb == nil {
				return errors.New("not connected")
			}
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}

// writableDir reports whether a file can be created in dir, or in its nearest
// existing ancestor when dir itself will only be created on first save.
func writableDir(dir string) error {
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			break
		}
		if !os.IsNotExist(err) {
			return err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return err
		}
		dir = parent
	}
	f, err := os.CreateTemp(dir, ".jsoneditor-ready-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
