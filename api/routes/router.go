package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luckyegg/storefront-backend/api/controllers"
	"github.com/luckyegg/storefront-backend/api/middleware"
	"github.com/luckyegg/storefront-backend/internal/auth"
	"github.com/luckyegg/storefront-backend/internal/cards"
	"github.com/luckyegg/storefront-backend/internal/cart"
	"github.com/luckyegg/storefront-backend/internal/catalogwatch"
	"github.com/luckyegg/storefront-backend/internal/checkout"
	"github.com/luckyegg/storefront-backend/internal/media"
	"github.com/luckyegg/storefront-backend/internal/orders"
	"github.com/luckyegg/storefront-backend/internal/subscribers"
	"github.com/luckyegg/storefront-backend/pkg/auth/session"
	"github.com/luckyegg/storefront-backend/pkg/config"
	"github.com/luckyegg/storefront-backend/pkg/enums"
	"github.com/luckyegg/storefront-backend/pkg/logger"
	"github.com/luckyegg/storefront-backend/pkg/metrics"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Auth        auth.Service
	Cards       cards.Service
	Cart        *cart.Service
	Checkout    checkout.Service
	Orders      orders.Service
	Subscribers subscribers.Service
	Media       *media.Service
	Watcher     *catalogwatch.Watcher
	RateLimiter middleware.RateLimitStore

	Readiness map[string]controllers.Pinger
}

// New assembles the HTTP router.
func New(deps Deps) http.Handler {
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(middleware.Recoverer(logg))
	r.Use(middleware.RequestID(logg))
	r.Use(middleware.Logging(logg))
	r.Use(middleware.CORS(deps.Config.CORS))
	r.Use(middleware.Metrics(deps.HTTPMetrics))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(deps.Readiness, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", controllers.ListCards(deps.Cards, logg))
			if deps.Watcher != nil {
				r.Get("/events", controllers.CatalogEvents(deps.Watcher, logg))
			}
			r.Get("/{cardID}", controllers.GetCard(deps.Cards, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartToken(logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.GetCart(deps.Cart, logg))
				r.Delete("/", controllers.ClearCart(deps.Cart, logg))
				r.Post("/items", controllers.AddCartItem(deps.Cart, deps.Cards, logg))
				r.Patch("/items/{cardID}", controllers.SetCartItemQuantity(deps.Cart, logg))
				r.Delete("/items/{cardID}", controllers.RemoveCartItem(deps.Cart, logg))
				r.Post("/open", controllers.OpenCart(deps.Cart, logg))
				r.Post("/close", controllers.CloseCart(deps.Cart, logg))
				r.Post("/toggle", controllers.ToggleCart(deps.Cart, logg))
			})

			r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))
		})

		r.Post("/subscribers", controllers.SubscribeNewsletter(deps.Subscribers, logg))

		r.Route("/auth", func(r chi.Router) {
			rl := deps.Config.RateLimit
			register := middleware.NewAuthRateLimitPolicy("register", rl.AuthWindow, rl.AuthIPLimit, rl.AuthEmailLimit)
			login := middleware.NewAuthRateLimitPolicy("login", rl.AuthWindow, rl.AuthIPLimit, rl.AuthEmailLimit)

			r.With(middleware.AuthRateLimit(register, deps.RateLimiter, logg)).
				Post("/register", controllers.Register(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(login, deps.RateLimiter, logg)).
				Post("/login", controllers.Login(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(deps.Config.JWT, deps.Sessions, logg))
				r.Post("/logout", controllers.Logout(deps.Auth, logg))
				r.Get("/me", controllers.Me(deps.Auth, logg))
			})
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(deps.Config.JWT, deps.Sessions, logg))
		r.Use(middleware.RequireRole(logg, enums.UserRoleAdmin))

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", controllers.AdminListCards(deps.Cards, logg))
			r.Post("/", controllers.AdminCreateCard(deps.Cards, logg))
			r.Get("/{cardID}", controllers.AdminGetCard(deps.Cards, logg))
			r.Patch("/{cardID}", controllers.AdminUpdateCard(deps.Cards, logg))
			r.Delete("/{cardID}", controllers.AdminDeleteCard(deps.Cards, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(deps.Orders, logg))
			r.Get("/{orderID}", controllers.AdminGetOrder(deps.Orders, logg))
			r.Patch("/{orderID}/status", controllers.AdminUpdateOrderStatus(deps.Orders, logg))
			r.Patch("/{orderID}/payment-status", controllers.AdminUpdatePaymentStatus(deps.Orders, logg))
		})

		r.Route("/subscribers", func(r chi.Router) {
			r.Get("/", controllers.AdminListSubscribers(deps.Subscribers, logg))
			r.Delete("/{subscriberID}", controllers.AdminDeleteSubscriber(deps.Subscribers, logg))
		})

		r.Post("/media", controllers.UploadCardImage(deps.Media, deps.Config.Media.MaxUploadMB, logg))
	})

	return r
}
