package httphandler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/niksmo/shoe-store/internal/core/port"
)

// GET    v1/catalog                (200 OK)
// POST   v1/catalog/fetch          (202 Accepted) fetch runs in background
// GET    v1/catalog/visible        (200 OK)
// GET    v1/catalog/filters        (200 OK)
// PUT    v1/catalog/filters JSON   (200 OK, 400 Bad request)
// DELETE v1/catalog/filters        (200 OK)

type CatalogService interface {
	port.CatalogFetcher
	port.CatalogReader
	port.FilterSetter
}

type CatalogHandler struct {
	bgCtx   context.Context
	service CatalogService
}

// RegisterCatalog mounts the catalog routes. Fetches started over HTTP are
// bound to bgCtx rather than to the request.
func RegisterCatalog(
	r chi.Router, bgCtx context.Context, service CatalogService,
) {
	h := CatalogHandler{bgCtx, service}
	r.Route("/v1/catalog", func(r chi.Router) {
		r.Get("/", h.GetCatalog)
		r.Post("/fetch", h.PostFetch)
		r.Get("/visible", h.GetVisible)
		r.Get("/filters", h.GetFilters)
		r.Put("/filters", h.PutFilters)
		r.Delete("/filters", h.DeleteFilters)
	})
}

func (h CatalogHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, fromCatalog(h.service.Catalog()))
}

func (h CatalogHandler) PostFetch(w http.ResponseWriter, r *http.Request) {
	state := h.service.StartFetchCatalog(h.bgCtx)
	writeJSON(w, r, http.StatusAccepted, fromCatalog(state))
}

func (h CatalogHandler) GetVisible(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, fromProducts(h.service.VisibleProducts()))
}

func (h CatalogHandler) GetFilters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, fromFilterOptions(h.service.FilterOptions()))
}

func (h CatalogHandler) PutFilters(w http.ResponseWriter, r *http.Request) {
	var sel FilterSelection
	if !readJSON(w, r, &sel) {
		return
	}
	h.service.SetFilter(sel.toDomain())
	writeJSON(w, r, http.StatusOK, fromCatalog(h.service.Catalog()))
}

func (h CatalogHandler) DeleteFilters(w http.ResponseWriter, r *http.Request) {
	h.service.ResetFilters()
	writeJSON(w, r, http.StatusOK, fromCatalog(h.service.Catalog()))
}

// POST   v1/products JSON           (201 Created, 400 Bad request)
// GET    v1/products/{id}           (200 OK, 404 Not found)
// PATCH  v1/products/{id} JSON      (200 OK, 400 Bad request, 404 Not found)
// DELETE v1/products/{id}           (204 No content, 404 Not found)
// POST   v1/products/{id}/stock     (200 OK, 400 Bad request, 404 Not found)

type ProductsService interface {
	port.CatalogReader
	port.ProductsEditor
}

type ProductsHandler struct {
	service ProductsService
}

func RegisterProducts(r chi.Router, service ProductsService) {
	h := ProductsHandler{service}
	r.Route("/v1/products", func(r chi.Router) {
		r.Post("/", h.PostProduct)
		r.Get("/{id}", h.GetProduct)
		r.Patch("/{id}", h.PatchProduct)
		r.Delete("/{id}", h.DeleteProduct)
		r.Post("/{id}/stock", h.PostStock)
	})
}

func (h ProductsHandler) PostProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.PostProduct"

	var fields ProductFields
	if !readJSON(w, r, &fields) {
		return
	}
	p := h.service.AddProduct(fields.toDomain())
	slog.Info("product added", "op", op, "id", p.ID)
	writeJSON(w, r, http.StatusCreated, fromProduct(p))
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	p, found := h.service.Product(id)
	if !found {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	writeJSON(w, r, http.StatusOK, fromProduct(p))
}

func (h ProductsHandler) PatchProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var patch ProductPatch
	if !readJSON(w, r, &patch) {
		return
	}
	if !h.service.UpdateProduct(id, patch.toDomain()) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	h.GetProduct(w, r)
}

func (h ProductsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if !h.service.DeleteProduct(id) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h ProductsHandler) PostStock(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var v StockUpdate
	if !readJSON(w, r, &v) {
		return
	}
	if !h.service.UpdateStock(id, v.Quantity) {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	h.GetProduct(w, r)
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	const op = "httphandler.readJSON"

	err := json.NewDecoder(r.Body).Decode(v)
	if err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		slog.Warn("failed to parse JSON", "op", op, "path", r.URL.Path, "err", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	const op = "httphandler.writeJSON"

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(v)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("failed to write response body",
			"op", op, "path", r.URL.Path, "err", err)
	}
}
