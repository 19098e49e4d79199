package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GESTIONMAX/my-vision-connect-sub001/api/controllers"
	"github.com/GESTIONMAX/my-vision-connect-sub001/api/middleware"
	authsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/auth"
	cartsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/cart"
	checkoutsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/checkout"
	productsvc "github.com/GESTIONMAX/my-vision-connect-sub001/internal/products"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/auth/session"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/config"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/db/models"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/logger"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/metrics"
	"github.com/GESTIONMAX/my-vision-connect-sub001/pkg/redis"
)

type accountLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DBPinger        db.Pinger
	RedisClient     *redis.Client
	SessionChecker  session.AccessSessionChecker
	Users           accountLoader
	AuthService     authsvc.Service
	ProductService  productsvc.Service
	CartService     cartsvc.Service
	CheckoutService checkoutsvc.Service
	Redirects       *controllers.RedirectRegistry
	HTTPMetrics     *metrics.HTTPMetrics
	Gatherer        prometheus.Gatherer
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(deps.HTTPMetrics),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	var redisPinger redis.Pinger
	if deps.RedisClient != nil {
		redisPinger = deps.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, redisPinger))
	})

	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	loginLimiter := passthrough()
	registerLimiter := passthrough()
	if deps.RedisClient != nil {
		loginLimiter = middleware.AuthRateLimit(loginPolicy, deps.RedisClient, logg)
		registerLimiter = middleware.AuthRateLimit(registerPolicy, deps.RedisClient, logg)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(middleware.OptionalShopperContext(logg))
		r.With(loginLimiter).Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.With(registerLimiter).Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.ProductService, logg))
		r.Get("/{slug}", controllers.ProductBySlug(deps.ProductService, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.ShopperContext(logg))
		r.Use(middleware.OptionalAuth(cfg.JWT, deps.SessionChecker, logg))
		r.Get("/", controllers.CartGet(deps.CartService, deps.Users, logg))
		r.Post("/items", controllers.CartAddItem(deps.CartService, deps.Users, logg))
		r.Patch("/items/{productId}", controllers.CartUpdateItem(deps.CartService, deps.Users, logg))
		r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.CartService, deps.Users, logg))
		r.Delete("/", controllers.CartClear(deps.CartService, deps.Users, logg))
	})

	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(middleware.ShopperContext(logg))
		r.Use(middleware.OptionalAuth(cfg.JWT, deps.SessionChecker, logg))
		r.Post("/start", controllers.CheckoutStart(deps.CheckoutService, deps.Users, logg))
		r.Get("/", controllers.CheckoutGet(deps.CheckoutService, logg))
		r.Post("/advance", controllers.CheckoutAdvance(deps.CheckoutService, deps.Users, logg))
		r.Post("/back", controllers.CheckoutBack(deps.CheckoutService, logg))
		r.Get("/payment-options", controllers.CheckoutPaymentOptions(deps.CheckoutService, logg))
		r.Post("/payment-method", controllers.CheckoutSelectPaymentMethod(deps.CheckoutService, logg))
		r.Post("/abandon", controllers.CheckoutAbandon(deps.CheckoutService, deps.Users, logg))
		r.Get("/redirect", controllers.CheckoutRedirect(deps.Redirects, logg))
	})

	return r
}

func passthrough() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler { return next }
}
