package httphandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/niksmo/shoe-store/internal/core/port"
)

// Service is the storefront surface served over HTTP.
type Service interface {
	CatalogService
	port.ProductsEditor
	port.CartManager
}

// NewRouter builds the storefront routes. Background catalog fetches are
// bound to bgCtx.
func NewRouter(bgCtx context.Context, s Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(AllowJSON)

	RegisterCatalog(r, bgCtx, s)
	RegisterProducts(r, s)
	RegisterCart(r, s)

	return r
}
