package httphandler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/niksmo/shoe-store/internal/adapter/httphandler"
	"github.com/niksmo/shoe-store/internal/core/domain"
	"github.com/niksmo/shoe-store/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sourceFunc func(ctx context.Context, category string) ([]domain.Product, error)

func (f sourceFunc) FetchCategory(
	ctx context.Context, category string,
) ([]domain.Product, error) {
	return f(ctx, category)
}

var upstream = map[string][]domain.Product{
	domain.CategoryMensShoes: {
		{ID: 56, Name: "Nike Air Jordan 1 Red And Black", Category: domain.CategoryMensShoes, Brand: "Nike Air Jordan", Price: 149.99, Stock: 7},
		{ID: 57, Name: "Nike Baseball Cleats", Category: domain.CategoryMensShoes, Brand: "Nike", Price: 79.99, Stock: 0},
	},
	domain.CategoryWomensShoes: {
		{ID: 86, Name: "Black & Brown Slipper", Category: domain.CategoryWomensShoes, Brand: "Comfort Trends", Price: 19.99, Stock: 12},
	},
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	src := sourceFunc(func(_ context.Context, category string) ([]domain.Product, error) {
		return upstream[category], nil
	})
	catalog := service.NewCatalogStore(src,
		[]string{domain.CategoryMensShoes, domain.CategoryWomensShoes})
	s := service.New(catalog, service.NewCartStore(), nil)
	require.NoError(t, s.FetchCatalog(t.Context()))
	return httphandler.NewRouter(t.Context(), s)
}

func do(
	t *testing.T, h http.Handler, method, target, body string,
) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestCatalogRoutes(t *testing.T) {
	t.Run("GetCatalog", func(t *testing.T) {
		h := newTestRouter(t)
		rec := do(t, h, http.MethodGet, "/v1/catalog", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		c := decode[httphandler.Catalog](t, rec)
		assert.Len(t, c.Products, 3)
		assert.Equal(t, "succeeded", c.Status)
		assert.False(t, c.Loading)
		assert.Nil(t, c.Error)
		assert.Equal(t, "all", c.SelectedCategory)
	})

	t.Run("FilterAndReset", func(t *testing.T) {
		h := newTestRouter(t)
		rec := do(t, h, http.MethodPut, "/v1/catalog/filters",
			`{"category":"womens-shoes"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "womens-shoes", decode[httphandler.Catalog](t, rec).SelectedCategory)

		rec = do(t, h, http.MethodGet, "/v1/catalog/visible", "")
		require.Equal(t, http.StatusOK, rec.Code)
		visible := decode[[]httphandler.Product](t, rec)
		require.Len(t, visible, 1)
		assert.Equal(t, int64(86), visible[0].ID)

		rec = do(t, h, http.MethodPut, "/v1/catalog/filters",
			`{"priceRange":"0-50"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		c := decode[httphandler.Catalog](t, rec)
		assert.Equal(t, "0-50", c.SelectedPriceRange)
		assert.Equal(t, "womens-shoes", c.SelectedCategory)

		rec = do(t, h, http.MethodDelete, "/v1/catalog/filters", "")
		require.Equal(t, http.StatusOK, rec.Code)
		c = decode[httphandler.Catalog](t, rec)
		assert.Equal(t, "all", c.SelectedCategory)
		assert.Equal(t, "all", c.SelectedPriceRange)
	})

	t.Run("FilterOptions", func(t *testing.T) {
		h := newTestRouter(t)
		rec := do(t, h, http.MethodGet, "/v1/catalog/filters", "")
		require.Equal(t, http.StatusOK, rec.Code)

		opts := decode[httphandler.FilterOptions](t, rec)
		brands := make([]string, 0, len(opts.Brands))
		for _, b := range opts.Brands {
			brands = append(brands, b.ID)
		}
		assert.Equal(t,
			[]string{"all", "Nike Air Jordan", "Nike", "Comfort Trends"}, brands)
	})

	t.Run("Fetch", func(t *testing.T) {
		h := newTestRouter(t)
		rec := do(t, h, http.MethodPost, "/v1/catalog/fetch", "")
		require.Equal(t, http.StatusAccepted, rec.Code)
		c := decode[httphandler.Catalog](t, rec)
		assert.True(t, c.Loading)
		assert.Equal(t, "loading", c.Status)
		assert.Len(t, c.Products, 3, "previous products stay while loading")

		require.Eventually(t, func() bool {
			rec := do(t, h, http.MethodGet, "/v1/catalog", "")
			c := decode[httphandler.Catalog](t, rec)
			return c.Status == "succeeded" && len(c.Products) == 3
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		h := newTestRouter(t)
		rec := do(t, h, http.MethodPut, "/v1/catalog/filters", `{"category":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("InvalidMediaType", func(t *testing.T) {
		h := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPut, "/v1/catalog/filters",
			strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("JSONWithCharset", func(t *testing.T) {
		h := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPut, "/v1/catalog/filters",
			strings.NewReader(`{"brand":"Nike"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestProductsRoutes(t *testing.T) {
	t.Run("GetProduct", func(t *testing.T) {
		h := newTestRouter(t)
		rec := do(t, h, http.MethodGet, "/v1/products/56", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Nike Air Jordan 1 Red And Black",
			decode[httphandler.Product](t, rec).Name)

		rec = do(t, h, http.MethodGet, "/v1/products/1", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = do(t, h, http.MethodGet, "/v1/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("AddPatchDelete", func(t *testing.T) {
		h := newTestRouter(t)
		rec := do(t, h, http.MethodPost, "/v1/products",
			`{"name":"Trail Runner","category":"mens-shoes","brand":"Salomon","price":120,"stock":4}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		added := decode[httphandler.Product](t, rec)
		assert.NotZero(t, added.ID)
		assert.Equal(t, "Trail Runner", added.Name)

		path := "/v1/products/" + jsonNumber(added.ID)
		rec = do(t, h, http.MethodPatch, path, `{"price":99.5}`)
		require.Equal(t, http.StatusOK, rec.Code)
		patched := decode[httphandler.Product](t, rec)
		assert.Equal(t, 99.5, patched.Price)
		assert.Equal(t, "Trail Runner", patched.Name)

		rec = do(t, h, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, h, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Stock", func(t *testing.T) {
		h := newTestRouter(t)
		rec := do(t, h, http.MethodPost, "/v1/products/56/stock", `{"quantity":2}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5, decode[httphandler.Product](t, rec).Stock)

		rec = do(t, h, http.MethodPost, "/v1/products/57/stock", `{"quantity":2}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, -2, decode[httphandler.Product](t, rec).Stock,
			"stock is not clamped at zero")

		rec = do(t, h, http.MethodGet, "/v1/products/57", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, -2, decode[httphandler.Product](t, rec).Stock)

		rec = do(t, h, http.MethodPost, "/v1/products/1/stock", `{"quantity":2}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestCartRoutes(t *testing.T) {
	t.Run("AddAndQuantity", func(t *testing.T) {
		h := newTestRouter(t)
		rec := do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":56}`)
		require.Equal(t, http.StatusOK, rec.Code)
		cart := decode[httphandler.Cart](t, rec)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, 1, cart.ItemCount)
		assert.InDelta(t, 149.99, cart.Total, 1e-9)

		rec = do(t, h, http.MethodPost, "/v1/cart/items/56/increment", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 2, decode[httphandler.Cart](t, rec).ItemCount)

		rec = do(t, h, http.MethodPut, "/v1/cart/items/56", `{"quantity":5}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 5, decode[httphandler.Cart](t, rec).ItemCount)

		rec = do(t, h, http.MethodPost, "/v1/cart/items/56/decrement", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 4, decode[httphandler.Cart](t, rec).ItemCount)

		rec = do(t, h, http.MethodDelete, "/v1/cart/items/56", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[httphandler.Cart](t, rec).Items)
	})

	t.Run("Errors", func(t *testing.T) {
		h := newTestRouter(t)
		rec := do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":1}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":57}`)
		assert.Equal(t, http.StatusConflict, rec.Code)

		rec = do(t, h, http.MethodPut, "/v1/cart/items/x", `{"quantity":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Clear", func(t *testing.T) {
		h := newTestRouter(t)
		do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":56}`)
		do(t, h, http.MethodPost, "/v1/cart/items", `{"productId":86}`)

		rec := do(t, h, http.MethodGet, "/v1/cart", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decode[httphandler.Cart](t, rec).Items, 2)

		rec = do(t, h, http.MethodDelete, "/v1/cart", "")
		require.Equal(t, http.StatusOK, rec.Code)
		cart := decode[httphandler.Cart](t, rec)
		assert.Empty(t, cart.Items)
		assert.Zero(t, cart.Total)
		assert.Zero(t, cart.ItemCount)
	})
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
