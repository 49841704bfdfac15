package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dfameublement/catalogue-backend/api/controllers"
	"github.com/dfameublement/catalogue-backend/api/middleware"
	"github.com/dfameublement/catalogue-backend/internal/cart"
	"github.com/dfameublement/catalogue-backend/internal/catalog"
	"github.com/dfameublement/catalogue-backend/internal/quotes"
	"github.com/dfameublement/catalogue-backend/pkg/config"
	"github.com/dfameublement/catalogue-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisP controllers.Pinger,
	cartManager *cart.Manager,
	catalogService catalog.Service,
	quotesService quotes.Service,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbP,
			"redis":    redisP,
		}))
	})

	if promRegistry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(catalogService, logg))
			r.Get("/{categorySlug}", controllers.GetCategory(catalogService, logg))
			r.Get("/{categorySlug}/subcategories", controllers.ListCategorySubcategories(catalogService, logg))
			r.Get("/{categorySlug}/products", controllers.ListCategoryProducts(catalogService, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(catalogService, logg))
			r.Get("/new", controllers.ListNewProducts(catalogService, logg))
			r.Get("/{productId}", controllers.GetProduct(catalogService, logg))
			r.Get("/{productId}/related", controllers.ListRelatedProducts(catalogService, logg))
		})

		r.Get("/filters", controllers.ListFilterOptions(catalogService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CartToken(cartManager, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(cartManager, logg))
				r.Delete("/", controllers.CartClear(cartManager, logg))
				r.Post("/items", controllers.CartAddItem(cartManager, cfg.Cart.MaxItemQuantity, logg))
				r.Patch("/items/{productId}", controllers.CartUpdateQuantity(cartManager, cfg.Cart.MaxItemQuantity, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(cartManager, logg))
			})

			r.Post("/quotes", controllers.SubmitQuote(quotesService, cartManager, logg))
		})
	})

	return r
}
