package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	storefrontserver "github.com/Apurer/go-gin-storefront/go"

	callsmemory "github.com/Apurer/go-gin-storefront/internal/domains/calls/adapters/memory"
	callsobs "github.com/Apurer/go-gin-storefront/internal/domains/calls/adapters/observability"
	callspostgres "github.com/Apurer/go-gin-storefront/internal/domains/calls/adapters/persistence/postgres"
	callsvoice "github.com/Apurer/go-gin-storefront/internal/domains/calls/adapters/voice"
	callsapp "github.com/Apurer/go-gin-storefront/internal/domains/calls/application"
	callsports "github.com/Apurer/go-gin-storefront/internal/domains/calls/ports"

	cartinventory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/inventory"
	cartmemory "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/memory"
	cartobs "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/observability"
	cartworkflows "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/workflows"
	cartapp "github.com/Apurer/go-gin-storefront/internal/domains/cart/application"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"

	catalogmemory "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"

	platformobservability "github.com/Apurer/go-gin-storefront/internal/platform/observability"
	platformpostgres "github.com/Apurer/go-gin-storefront/internal/platform/postgres"
	platformtemporal "github.com/Apurer/go-gin-storefront/internal/platform/temporal"
)

const serviceName = "storefront-api"

// Run boots the storefront HTTP API and blocks until ctx is cancelled or the
// server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := platformpostgres.Open(ctx, cfg.PostgresDSN, logger)
	defer closeDB()

	catalogService := catalogobs.New(
		catalogapp.NewService(buildProductRepository(db),
			catalogapp.WithIdempotencyStore(buildIdempotencyStore(db)),
		),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	processor, closeProcessor := buildCheckoutProcessor(cfg, instruments)
	defer closeProcessor()
	sessions := cartmemory.NewSessionStore()
	defer sessions.CloseAll()
	cartService := cartobs.New(
		cartapp.NewService(sessions, cartinventory.NewCatalogReader(catalogService), processor,
			cartapp.WithSessionPollInterval(cfg.SnapshotPollInterval),
			cartapp.WithLogger(logger)),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	callsService := callsobs.New(
		callsapp.NewService(buildCallRepository(db), buildDialer(cfg, logger),
			callsapp.WithRateLimit(cfg.CallRatePerMinute, cfg.CallBurst),
			callsapp.WithLogger(logger)),
		callsobs.WithLogger(logger),
		callsobs.WithTracer(instruments.Tracer("internal.calls.application")),
		callsobs.WithMeter(instruments.Meter("internal.calls.application")),
	)

	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	storefrontserver.NewRouterWithGinEngine(router, storefrontserver.ApiHandleFunctions{
		ProductAPI: storefrontserver.NewProductAPI(catalogService),
		CartAPI:    storefrontserver.NewCartAPI(cartService),
		CallAPI:    storefrontserver.NewCallAPI(callsService),
	})
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("storefront API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("storefront API server exited: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		sessions.RunJanitor(gctx, cfg.SessionTTL, cfg.SessionSweepInterval, logger)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		logger.Info("shutting down storefront API")
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func buildProductRepository(db *gorm.DB) catalogports.Repository {
	if db == nil {
		return catalogmemory.NewRepository()
	}
	return catalogpostgres.NewRepository(db)
}

func buildIdempotencyStore(db *gorm.DB) catalogports.IdempotencyStore {
	if db == nil {
		return catalogmemory.NewIdempotencyStore()
	}
	return catalogpostgres.NewIdempotencyStore(db)
}

func buildCallRepository(db *gorm.DB) callsports.Repository {
	if db == nil {
		return callsmemory.NewRepository()
	}
	return callspostgres.NewRepository(db)
}

func buildDialer(cfg Config, logger *slog.Logger) callsports.Dialer {
	if cfg.VoiceServiceURL == "" {
		logger.Warn("VOICE_SERVICE_URL not set, outbound calls will fail")
		return nil
	}
	dialer, err := callsvoice.NewDialer(cfg.VoiceServiceURL)
	if err != nil {
		logger.Warn("invalid VOICE_SERVICE_URL, outbound calls will fail", slog.String("error", err.Error()))
		return nil
	}
	return dialer
}

func buildCheckoutProcessor(cfg Config, instruments *platformobservability.Instruments) (cartports.CheckoutProcessor, func()) {
	logger := instruments.Logger
	temporalClient, err := platformtemporal.Dial(platformtemporal.Options{
		Address:   cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Disabled:  cfg.TemporalDisabled,
		Logger:    logger,
		Tracer:    instruments.Tracer("temporal-client"),
	})
	if err != nil {
		logger.Warn("Temporal workflows unavailable, processing checkouts inline", slog.String("error", err.Error()))
		return cartworkflows.NewInlineCheckoutProcessor(cfg.CheckoutDelay), func() {}
	}
	logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	return cartworkflows.NewTemporalCheckoutProcessor(temporalClient, cfg.CheckoutDelay), temporalClient.Close
}
