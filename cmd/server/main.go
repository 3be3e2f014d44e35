package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appfulfillment "github.com/crossbuy/backend/internal/application/fulfillment"
	appordering "github.com/crossbuy/backend/internal/application/ordering"
	"github.com/crossbuy/backend/internal/infrastructure/config"
	"github.com/crossbuy/backend/internal/infrastructure/event"
	"github.com/crossbuy/backend/internal/infrastructure/logger"
	"github.com/crossbuy/backend/internal/infrastructure/persistence"
	httpiface "github.com/crossbuy/backend/internal/interfaces/http"
	"github.com/crossbuy/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	zapLogger, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync(zapLogger) }()

	zapLogger.Info("starting crossbuy backend",
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogger := logger.NewGormLogger(zapLogger, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := db.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	// Event bus
	eventBus := event.NewInMemoryEventBus(zapLogger.Named("events"))
	ctx := context.Background()
	if err := eventBus.Start(ctx); err != nil {
		return fmt.Errorf("start event bus: %w", err)
	}
	defer func() { _ = eventBus.Stop(ctx) }()

	// Repositories and services
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	scope := persistence.NewGormTransactionScope(db.DB)
	ledger := appfulfillment.NewLedgerService(zapLogger.Named("ledger"))

	orderService := appordering.NewOrderService(orderRepo, zapLogger.Named("orders"))
	orderService.SetEventPublisher(eventBus)

	purchaseService := appfulfillment.NewPurchaseService(scope, ledger, zapLogger.Named("purchases"))
	purchaseService.SetEventPublisher(eventBus)

	receptionService := appfulfillment.NewReceptionService(scope, ledger, zapLogger.Named("receptions"))
	receptionService.SetEventPublisher(eventBus)

	deliveryService := appfulfillment.NewDeliveryService(scope, ledger, zapLogger.Named("deliveries"))
	deliveryService.SetEventPublisher(eventBus)

	// HTTP layer
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := httpiface.NewRouter(httpiface.RouterConfig{
		Logger:             zapLogger,
		SystemHandler:      handler.NewSystemHandler(db),
		OrderHandler:       handler.NewOrderHandler(orderService),
		FulfillmentHandler: handler.NewFulfillmentHandler(purchaseService, receptionService, deliveryService),
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			return fmt.Errorf("set trusted proxies: %w", err)
		}
	}

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case sig := <-quit:
		zapLogger.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	zapLogger.Info("server stopped")
	return nil
}
