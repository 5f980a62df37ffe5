package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/ficmart-checkout/internal/application"
	"github.com/DanielPopoola/ficmart-checkout/internal/application/services"
	"github.com/DanielPopoola/ficmart-checkout/internal/config"
	"github.com/DanielPopoola/ficmart-checkout/internal/domain"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/memory"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/payment"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/postgres"
	"github.com/DanielPopoola/ficmart-checkout/internal/infrastructure/taxcache"
	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/ficmart-checkout/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/ficmart-checkout/internal/pricing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting checkout service",
		"port", cfg.Server.Port,
		"backend", cfg.Primary.Backend,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()

	var (
		catalog   application.ProductCatalog
		inventory application.Inventory
	)
	switch cfg.Primary.Backend {
	case "postgres":
		pool, err := postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		catalog = postgres.NewCatalogRepository(pool)
		inventory = postgres.NewInventoryRepository(pool)
	default:
		catalog = memory.NewCatalog(demoProducts()...)
		inventory = memory.NewInventory(map[string]int64{"P1": 10, "P2": 50})
	}

	cachedTax := taxcache.NewCachedTaxService(memory.NewTaxService(), cfg.TaxCache.TTL, logger)
	protectedPayment := payment.NewProtectedPaymentService(
		memory.NewPaymentService(logger),
		memory.NewStaticAccessChecker(application.PermissionPaymentExecute),
		logger,
	)

	checkoutService := services.NewCheckoutService(
		catalog,
		inventory,
		cachedTax,
		protectedPayment,
		memory.NewNotifier(logger),
		services.Options{
			RoundDigits: cfg.Checkout.RoundDigits,
			CallTimeout: cfg.Checkout.CallTimeout,
		},
		logger,
	)

	priceEngine := pricing.NewEngine(pricing.DefaultPolicies(), cfg.Checkout.RoundDigits)

	h := handlers.NewHandlers(checkoutService, priceEngine, logger)

	mux := http.NewServeMux()
	h.Register(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	sweeperCtx, cancelSweeper := context.WithCancel(context.Background())
	defer cancelSweeper()
	if cfg.TaxCache.SweepInterval > 0 {
		go cachedTax.StartSweeper(sweeperCtx, cfg.TaxCache.SweepInterval)
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelSweeper()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

func demoProducts() []domain.Product {
	return []domain.Product{
		{ID: "P1", Name: "Laptop", UnitPrice: domain.MoneyFromInt(1000)},
		{ID: "P2", Name: "Mouse", UnitPrice: domain.MoneyFromInt(50)},
	}
}
