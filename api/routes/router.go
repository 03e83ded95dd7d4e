package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/casamaria/storefront-backend/api/controllers"
	"github.com/casamaria/storefront-backend/api/middleware"
	authsvc "github.com/casamaria/storefront-backend/internal/auth"
	cartsvc "github.com/casamaria/storefront-backend/internal/cart"
	catalogsvc "github.com/casamaria/storefront-backend/internal/catalog"
	checkoutsvc "github.com/casamaria/storefront-backend/internal/checkout"
	chatsvc "github.com/casamaria/storefront-backend/internal/chat"
	mediasvc "github.com/casamaria/storefront-backend/internal/media"
	reviewsvc "github.com/casamaria/storefront-backend/internal/reviews"
	settingssvc "github.com/casamaria/storefront-backend/internal/settings"
	"github.com/casamaria/storefront-backend/pkg/auth/session"
	"github.com/casamaria/storefront-backend/pkg/config"
	"github.com/casamaria/storefront-backend/pkg/logger"
	"github.com/casamaria/storefront-backend/pkg/metrics"
	"github.com/casamaria/storefront-backend/pkg/money"
)

// Geocoder is the reverse geocoding surface the router wires in.
type Geocoder = controllers.ReverseGeocoder

// Deps bundles everything the router needs. Chat and Geocode may be nil
// when the upstream services are not configured.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              controllers.Pinger
	Sessions        *session.Manager
	Catalog         catalogsvc.Service
	Carts           *cartsvc.Manager
	Checkout        *checkoutsvc.Formatter
	Money           *money.Formatter
	Reviews         reviewsvc.Service
	Settings        settingssvc.Service
	Auth            authsvc.Service
	Media           *mediasvc.Normalizer
	Chat            *chatsvc.Service
	Geocode         Geocoder
	Metrics         *metrics.HTTPMetrics
	MetricsGatherer prometheus.Gatherer
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Config, d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.DB))
	})

	if d.MetricsGatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.MetricsGatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/menu", controllers.PublicListMenu(d.Catalog, logg))

		r.Route("/carts", func(r chi.Router) {
			r.Post("/", controllers.CreateCart(d.Carts, d.Money, logg))
			r.Route("/{cartID}", func(r chi.Router) {
				r.Get("/", controllers.GetCart(d.Carts, d.Money, logg))
				r.Delete("/", controllers.ClearCart(d.Carts, d.Money, logg))
				r.Post("/items", controllers.AddCartItem(d.Carts, d.Catalog, d.Money, logg))
				r.Put("/items/{itemID}", controllers.SetCartItemQuantity(d.Carts, d.Money, logg))
				r.Delete("/items/{itemID}", controllers.RemoveCartItem(d.Carts, d.Money, logg))
			})
		})

		r.Post("/checkout", controllers.Checkout(d.Carts, d.Checkout, logg))

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", controllers.PublicListReviews(d.Reviews, logg))
			r.Post("/", controllers.PublicCreateReview(d.Reviews, logg))
		})

		r.Get("/settings", controllers.PublicGetSettings(d.Settings, logg))
		r.Post("/chat", controllers.PublicChat(d.Chat, logg))
		r.Get("/geocode/reverse", controllers.PublicReverseGeocode(d.Geocode, logg))
		r.Get("/nav/resolve", controllers.NavResolve(cfg.JWT, d.Sessions, logg))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.AuthLogin(d.Auth, logg))
			r.With(middleware.Auth(cfg.JWT, d.Sessions, logg)).Post("/logout", controllers.AuthLogout(d.Auth, logg))
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

			r.Route("/menu", func(r chi.Router) {
				r.Post("/", controllers.AdminCreateItem(d.Catalog, logg))
				r.Post("/reset", controllers.AdminResetMenu(d.Catalog, logg))
				r.Patch("/{itemID}", controllers.AdminUpdateItem(d.Catalog, logg))
				r.Delete("/{itemID}", controllers.AdminDeleteItem(d.Catalog, logg))
			})

			r.Put("/settings", controllers.AdminUpdateSettings(d.Settings, logg))
			r.Post("/media/process", controllers.AdminProcessImage(d.Media, logg))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", controllers.AdminGetProfile(d.Auth, logg))
				r.Patch("/", controllers.AdminUpdateProfile(d.Auth, logg))
			})
		})
	})

	return r
}
