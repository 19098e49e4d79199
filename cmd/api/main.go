package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/GESTIONMAX/my-vision-connect-sub001/api"
	"github.com/GESTIONMAX/my-vision-connect-sub001/api/controllers"
	"github.com/GESTIONMAX/my-vision-connect-sub001/api/routes"
	authsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/auth"
	cartsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/cart"
	checkoutsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/checkout"
	"github.com/GESTIONMAX/my-vision-connect-sub001/internal/paymentmethods"
	productsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/products"
	"github.com/GESTIONMAX/my-vision-connect-sub001/internal/users"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/auth/session"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/config"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/logger"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/metrics"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/migrate"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/redis"
)

const shutdownGrace = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	userRepo := users.NewRepository(dbClient.DB())
	productRepo := productsvc.NewRepository(dbClient.DB())
	cartRepo := cartsvc.NewRepository(dbClient.DB())

	productService, err := productsvc.NewService(productsvc.ServiceParams{Repo: productRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartsvc.ServiceParams{
		Repo:              cartRepo,
		Products:          productRepo,
		TransactionRunner: dbClient,
		Logger:            logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	redirects := controllers.NewRedirectRegistry()

	checkoutService, err := checkoutsvc.NewService(checkoutsvc.ServiceParams{
		Carts:        cartService,
		Methods:      paymentmethods.NewCatalog(),
		Navigator:    redirects,
		Logger:       logg,
		ConfirmDelay: cfg.Checkout.ConfirmRedirectDelay,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}
	defer checkoutService.Shutdown()

	authService, err := authsvc.NewService(authsvc.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		CartLinker:     cartService,
		Observers:      []authsvc.IdentityObserver{checkoutService},
		Logger:         logg,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	router := routes.NewRouter(routes.Deps{
		Config:          cfg,
		Logger:          logg,
		DBPinger:        dbClient,
		RedisClient:     redisClient,
		SessionChecker:  sessionManager,
		Users:           userRepo,
		AuthService:     authService,
		ProductService:  productService,
		CartService:     cartService,
		CheckoutService: checkoutService,
		Redirects:       redirects,
		HTTPMetrics:     httpMetrics,
		Gatherer:        registry,
	})

	server := api.NewServer(cfg, router)

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": server.Addr,
	})
	logg.Info(ctx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
