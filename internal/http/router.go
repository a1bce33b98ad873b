package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the storefront API. All state-changing routes run
// through OwnerMiddleware so every operation is keyed by shopper
// identity.
func NewRouter(products *ProductHandler, carts *CartHandler, checkouts *CheckoutHandler, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(OwnerMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", products.ListProducts)
		r.Get("/products/{id}", products.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Post("/", carts.AddItem)
			r.Put("/{productId}", carts.SetQuantity)
			r.Delete("/{productId}", carts.RemoveItem)
		})

		r.Post("/checkout", checkouts.Checkout)
		r.Get("/receipts/{id}", checkouts.GetReceipt)
	})

	return r
}
