package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxRequestBodySize = 1 << 20 // 1MB

func NewRouter(menu *MenuHandler, cart *CartHandler, checkout *CheckoutHandler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(RequestIDHeader)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.RequestSize(maxRequestBodySize))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", menu.List)
			r.Get("/{id}", menu.Get)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.GetCart)
			r.Delete("/", cart.ClearCart)
			r.Post("/items", cart.AddItem)
			r.Put("/items/{line_id}", cart.UpdateQuantity)
			r.Delete("/items/{line_id}", cart.RemoveItem)
			r.Put("/order-type", cart.SetOrderType)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkout.Get)
			r.Post("/open", checkout.Open)
			r.Post("/proceed", checkout.Proceed)
			r.Post("/contact", checkout.SubmitContact)
			r.Post("/payment/confirm", checkout.ConfirmPayment)
			r.Post("/payment/cancel", checkout.CancelPayment)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
