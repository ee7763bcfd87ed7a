package router

import (
	"github.com/SecretJA/Badminton-eweb/internal/api"
	m "github.com/SecretJA/Badminton-eweb/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func SetupRouter(server *api.Server, logger zerolog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// 全局中間件
	r.Use(m.RequestIdMiddleware)
	r.Use(chimiddleware.RealIP)
	r.Use(m.LoggerMiddleware(logger))

	// API 路由
	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(m.RequireAuth)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", server.CartHandler.GetCart)
				r.Post("/", server.CartHandler.AddItem)
				r.Delete("/", server.CartHandler.ClearCart)
				r.Put("/{itemId}", server.CartHandler.UpdateItem)
				r.Delete("/{itemId}", server.CartHandler.RemoveItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", server.OrderHandler.PlaceOrder)
				r.Get("/", server.OrderHandler.ListMyOrders)
				r.With(m.RequireAdmin).Get("/admin/all", server.OrderHandler.ListAllOrders)
				r.Get("/{id}", server.OrderHandler.GetOrder)
				r.Put("/{id}/cancel", server.OrderHandler.CancelOrder)
				r.With(m.RequireAdmin).Put("/{id}/status", server.OrderHandler.UpdateStatus)
				r.With(m.RequireAdmin).Put("/{id}/pay", server.OrderHandler.PayOrder)
				r.With(m.RequireAdmin).Delete("/{id}", server.OrderHandler.DeleteOrder)
			})
		})
	})

	return r
}
