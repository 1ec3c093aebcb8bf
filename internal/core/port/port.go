package port

import (
	"context"

	"github.com/niksmo/shoe-store/internal/core/domain"
)

// CatalogSource retrieves the products of one upstream category.
type CatalogSource interface {
	FetchCategory(ctx context.Context, category string) ([]domain.Product, error)
}

type CartEventsProducer interface {
	ProduceCartEvent(context.Context, domain.CartEvent) error
}

type CatalogFetcher interface {
	FetchCatalog(context.Context) error
	StartFetchCatalog(context.Context) domain.CatalogState
}

type CatalogReader interface {
	Catalog() domain.CatalogState
	VisibleProducts() []domain.Product
	FilterOptions() domain.FilterOptions
	Product(id int64) (domain.Product, bool)
}

type ProductsEditor interface {
	AddProduct(domain.ProductFields) domain.Product
	UpdateProduct(id int64, patch domain.ProductPatch) bool
	DeleteProduct(id int64) bool
	UpdateStock(id int64, quantity int) bool
}

type FilterSetter interface {
	SetFilter(domain.FilterSelection)
	ResetFilters()
}

type CartManager interface {
	Cart() domain.CartState
	AddToCart(ctx context.Context, productID int64) error
	UpdateQuantity(ctx context.Context, id int64, quantity int)
	IncrementQuantity(ctx context.Context, id int64)
	DecrementQuantity(ctx context.Context, id int64)
	RemoveFromCart(ctx context.Context, id int64)
	ClearCart(ctx context.Context)
}
