package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/middleware"
)

type RouterConfig struct {
	Logger           *zap.Logger
	CORSAllowOrigins []string
	// AdminEnabled exposes the weekly-limit reset endpoint.
	AdminEnabled bool
}

func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	origins := cfg.CORSAllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(origins))

	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/cart", h.GetCart)
		r.Post("/cart/items", h.AddItem)
		r.Post("/checkout", h.Checkout)
		r.Get("/pickup-date", h.PickupDate)

		if cfg.AdminEnabled {
			r.Post("/admin/limits/reset", h.ResetLimits)
		}
	})

	return r
}
