package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	custommiddleware "github.com/mmeshcher/orderdesk-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware сервиса ордердеск.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/user/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Post("/user/logout", h.Logout)

			r.Post("/orders", h.SubmitOrder)
			r.Get("/orders", h.GetOrders)
			r.Post("/orders/{id}/decision", h.DecideOrder)

			r.Get("/users", h.GetUsers)

			r.Get("/notifications", h.GetNotifications)
			r.Delete("/notifications", h.ClearNotifications)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
