package httphandler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/shoe-store/internal/core/port"
	"github.com/niksmo/shoe-store/internal/core/service"
)

// GET    v1/cart                           (200 OK)
// DELETE v1/cart                           (200 OK)
// POST   v1/cart/items JSON                (200 OK, 404 Not found, 409 Conflict)
// PUT    v1/cart/items/{id} JSON           (200 OK, 400 Bad request)
// POST   v1/cart/items/{id}/increment      (200 OK)
// POST   v1/cart/items/{id}/decrement      (200 OK)
// DELETE v1/cart/items/{id}                (200 OK)
//
// Absent line items are not an error, the current cart is returned.

type CartHandler struct {
	cart port.CartManager
}

func RegisterCart(r chi.Router, cart port.CartManager) {
	h := CartHandler{cart}
	r.Route("/v1/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Delete("/", h.DeleteCart)
		r.Post("/items", h.PostItem)
		r.Put("/items/{id}", h.PutItem)
		r.Post("/items/{id}/increment", h.PostIncrement)
		r.Post("/items/{id}/decrement", h.PostDecrement)
		r.Delete("/items/{id}", h.DeleteItem)
	})
}

func (h CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r)
}

func (h CartHandler) DeleteCart(w http.ResponseWriter, r *http.Request) {
	h.cart.ClearCart(r.Context())
	h.respond(w, r)
}

func (h CartHandler) PostItem(w http.ResponseWriter, r *http.Request) {
	const op = "CartHandler.PostItem"
	log := slog.With("op", op)

	var v AddToCart
	if !readJSON(w, r, &v) {
		return
	}

	err := h.cart.AddToCart(r.Context(), v.ProductID)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrProductNotFound):
		http.Error(w, "product not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrOutOfStock):
		http.Error(w, "product is out of stock", http.StatusConflict)
		return
	default:
		log.Error("failed to add to cart", "err", err)
		http.Error(w, "failed to add to cart", http.StatusInternalServerError)
		return
	}

	h.respond(w, r)
}

func (h CartHandler) PutItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var v QuantityUpdate
	if !readJSON(w, r, &v) {
		return
	}
	h.cart.UpdateQuantity(r.Context(), id, v.Quantity)
	h.respond(w, r)
}

func (h CartHandler) PostIncrement(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	h.cart.IncrementQuantity(r.Context(), id)
	h.respond(w, r)
}

func (h CartHandler) PostDecrement(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	h.cart.DecrementQuantity(r.Context(), id)
	h.respond(w, r)
}

func (h CartHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	h.cart.RemoveFromCart(r.Context(), id)
	h.respond(w, r)
}

func (h CartHandler) respond(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, fromCart(h.cart.Cart()))
}
