package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/mfigueredo/amazon-sp-proxy/internal/amazon"
	"github.com/mfigueredo/amazon-sp-proxy/internal/api/handlers"
	"github.com/mfigueredo/amazon-sp-proxy/internal/api/middleware"
	"github.com/mfigueredo/amazon-sp-proxy/internal/config"
	"github.com/mfigueredo/amazon-sp-proxy/internal/credentials"
	"github.com/mfigueredo/amazon-sp-proxy/internal/identity"
	"github.com/mfigueredo/amazon-sp-proxy/internal/store"
	"github.com/mfigueredo/amazon-sp-proxy/pkg/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SP-API proxy server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	cmdLog := log.NewWithOptions(os.Stderr, log.Options{
		Level: parseLogLevel(cfg.Logging.Level),
	})
	appLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), cfg.Database.PoolSize)
	cancel()
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pg.Close()

	exchanger := amazon.NewExchangeClient(
		cfg.Amazon.ClientID,
		cfg.Amazon.ClientSecret,
		amazon.RegionTokens{
			USEast: cfg.Amazon.RefreshTokens.USEast,
			EUWest: cfg.Amazon.RefreshTokens.EUWest,
		},
		amazon.WithTokenURL(cfg.Amazon.TokenURL),
		amazon.WithHTTPClient(&http.Client{Timeout: cfg.Amazon.RequestTimeout}),
	)

	cache := credentials.NewCache(
		credentials.WithCacheTTL(cfg.Credentials.CacheTTL),
		credentials.WithCacheBuffer(cfg.Credentials.ExpiryBuffer),
	)
	manager := credentials.NewManager(pg, exchanger, cache,
		credentials.WithLogger(appLog),
		credentials.WithExpiryBuffer(cfg.Credentials.ExpiryBuffer),
		credentials.WithRefreshWindow(cfg.Credentials.RefreshWindow),
	)

	sweeper, err := credentials.NewSweeper(cache, cfg.Credentials.SweepInterval, appLog)
	if err != nil {
		return fmt.Errorf("creating cache sweeper: %w", err)
	}
	sweeper.Start()

	verifier := identity.NewHTTPVerifier(
		cfg.Identity.URL,
		cfg.Identity.APIKey,
		identity.WithVerifyHTTPClient(&http.Client{Timeout: cfg.Identity.Timeout}),
	)

	spClient := amazon.NewSPClient(manager)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Recovery(appLog))
	e.Use(middleware.RequestLog(appLog))
	e.Use(middleware.Metrics())
	e.Use(middleware.Auth(verifier, appLog))

	health := handlers.NewHealthHandler(pg)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Amazon SP-API Proxy", Version))
	handlers.RegisterCatalogRoutes(api, handlers.NewCatalogHandler(spClient))
	handlers.RegisterPricingRoutes(api, handlers.NewPricingHandler(spClient))
	handlers.RegisterCredentialRoutes(api, handlers.NewCredentialsHandler(manager))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	cmdLog.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cmdLog.Error("server error", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	cmdLog.Info("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	<-sweeper.Stop().Done()

	cmdLog.Info("server stopped")
	return nil
}

func parseLogLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
