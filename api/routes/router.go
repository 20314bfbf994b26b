package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/novamart/storefront-backend/api/controllers"
	"github.com/novamart/storefront-backend/api/middleware"
	"github.com/novamart/storefront-backend/pkg/config"
	"github.com/novamart/storefront-backend/pkg/logger"
	"github.com/novamart/storefront-backend/pkg/metrics"
)

// Dependencies carries everything the router mounts.
type Dependencies struct {
	Logger     *logger.Logger
	Health     *controllers.HealthController
	Products   *controllers.ProductController
	Cart       *controllers.CartController
	Orders     *controllers.OrderController
	Newsletter *controllers.NewsletterController

	RateLimitStore  middleware.CounterStore
	RateLimitConfig config.NewsletterRateLimitConfig

	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry
}

// New assembles the HTTP surface.
func New(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(deps.HTTPMetrics.Middleware(func(req *http.Request) string {
		return chi.RouteContext(req.Context()).RoutePattern()
	}))

	r.Get("/health/live", deps.Health.Live)
	r.Get("/health/ready", deps.Health.Ready)

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/products", deps.Products.List)
		api.Get("/products/{id}", deps.Products.Detail)
		api.Get("/categories", deps.Products.Categories)

		api.Post("/cart/quote", deps.Cart.Quote)

		api.Route("/orders", func(orders chi.Router) {
			orders.Post("/", deps.Orders.Place)
			orders.Get("/", deps.Orders.List)
			orders.Get("/{id}", deps.Orders.Detail)
			orders.Post("/{id}/status", deps.Orders.UpdateStatus)
		})

		api.With(middleware.NewsletterRateLimit(deps.RateLimitStore, deps.RateLimitConfig, deps.Logger)).
			Post("/newsletter/subscribe", deps.Newsletter.Subscribe)
	})

	return r
}
