package router

import (
	"net/http"

	"github.com/RoyceAzure/lab/plantshop/internal/api"
	m "github.com/RoyceAzure/lab/plantshop/internal/api/middleware"
	"github.com/RoyceAzure/lab/plantshop/internal/limiter"
	"github.com/RoyceAzure/lab/plantshop/internal/token"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, tokenMaker token.Maker, rateLimiter limiter.ILimiter, logger *zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(m.RequestIdMiddleware)
	r.Use(middleware.RealIP)
	r.Use(m.AuthPayloadMiddleware(tokenMaker))
	r.Use(m.LoggerMiddleware(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Public catalog routes.
	r.Route("/products", func(r chi.Router) {
		r.Get("/", server.ProductHandler.ListProducts)
		r.Get("/categories", server.ProductHandler.ListCategories)
		r.Get("/{slug}", server.ProductHandler.GetProductBySlug)
	})

	// Cart and order routes require an authenticated identity.
	r.Group(func(r chi.Router) {
		r.Use(m.AuthMiddleware)
		if rateLimiter != nil {
			r.Use(m.RateLimitMiddleware(rateLimiter))
		}

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", server.CartHandler.GetCart)
			r.Post("/", server.CartHandler.AddItem)
			r.Delete("/", server.CartHandler.ClearCart)
			r.Put("/{id}", server.CartHandler.UpdateItem)
			r.Delete("/{id}", server.CartHandler.RemoveItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", server.OrderHandler.CreateOrder)
			r.Get("/", server.OrderHandler.ListOrders)
			r.Get("/{id}", server.OrderHandler.GetOrder)
		})
	})

	return r
}
