package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/niksmo/shoe-store/internal/core/domain"
	"github.com/niksmo/shoe-store/internal/core/port"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrOutOfStock      = errors.New("product is out of stock")
)

var _ port.CatalogFetcher = (*Service)(nil)
var _ port.CatalogReader = (*Service)(nil)
var _ port.ProductsEditor = (*Service)(nil)
var _ port.FilterSetter = (*Service)(nil)
var _ port.CartManager = (*Service)(nil)

// Service owns the catalog and the cart. Consumers get it as an explicit
// handle.
type Service struct {
	catalog          *CatalogStore
	cart             *CartStore
	cartEvtsProducer port.CartEventsProducer
}

func New(
	catalog *CatalogStore,
	cart *CartStore,
	cartEvtsProducer port.CartEventsProducer,
) *Service {
	return &Service{catalog, cart, cartEvtsProducer}
}

func (s *Service) FetchCatalog(ctx context.Context) error {
	const op = "Service.FetchCatalog"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.catalog.FetchCatalog(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// StartFetchCatalog starts a background fetch bound to ctx and returns the
// catalog state with loading set. Failures are kept in the catalog state.
func (s *Service) StartFetchCatalog(ctx context.Context) domain.CatalogState {
	const op = "Service.StartFetchCatalog"

	state, errc := s.catalog.StartFetch(ctx)
	go func() {
		if err := <-errc; err != nil {
			slog.Warn("catalog fetch failed", "op", op, "err", err)
		}
	}()
	return state
}

func (s *Service) Catalog() domain.CatalogState {
	return s.catalog.State()
}

func (s *Service) VisibleProducts() []domain.Product {
	return s.catalog.Visible()
}

func (s *Service) FilterOptions() domain.FilterOptions {
	return s.catalog.Options()
}

func (s *Service) Product(id int64) (domain.Product, bool) {
	return s.catalog.Product(id)
}

func (s *Service) AddProduct(fields domain.ProductFields) domain.Product {
	return s.catalog.AddProduct(fields)
}

func (s *Service) UpdateProduct(id int64, patch domain.ProductPatch) bool {
	return s.catalog.UpdateProduct(id, patch)
}

func (s *Service) DeleteProduct(id int64) bool {
	return s.catalog.DeleteProduct(id)
}

func (s *Service) UpdateStock(id int64, quantity int) bool {
	return s.catalog.UpdateStock(id, quantity)
}

// SetFilter writes the non-empty fields of sel. It never re-fetches.
func (s *Service) SetFilter(sel domain.FilterSelection) {
	if sel.Category != "" {
		s.catalog.SetSelectedCategory(sel.Category)
	}
	if sel.Brand != "" {
		s.catalog.SetSelectedBrand(sel.Brand)
	}
	if sel.PriceRange != "" {
		s.catalog.SetSelectedPriceRange(sel.PriceRange)
	}
	if sel.Color != "" {
		s.catalog.SetSelectedColor(sel.Color)
	}
	if sel.Rating != "" {
		s.catalog.SetSelectedRating(sel.Rating)
	}
}

func (s *Service) ResetFilters() {
	s.catalog.ResetFilters()
}

func (s *Service) Cart() domain.CartState {
	return s.cart.State()
}

// AddToCart looks the product up in the catalog. Products with no stock
// cannot be added.
func (s *Service) AddToCart(ctx context.Context, productID int64) error {
	const op = "Service.AddToCart"

	p, ok := s.catalog.Product(productID)
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrProductNotFound)
	}
	if !p.InStock() {
		return fmt.Errorf("%s: %w", op, ErrOutOfStock)
	}

	change := s.cart.AddToCart(p)
	s.publish(ctx, domain.CartItemAdded, p.ID, change)
	return nil
}

func (s *Service) UpdateQuantity(ctx context.Context, id int64, quantity int) {
	change, ok := s.cart.UpdateQuantity(id, quantity)
	if !ok {
		return
	}
	kind := domain.CartQuantityUpdated
	if change.Quantity == 0 {
		kind = domain.CartItemRemoved
	}
	s.publish(ctx, kind, id, change)
}

func (s *Service) IncrementQuantity(ctx context.Context, id int64) {
	if change, ok := s.cart.IncrementQuantity(id); ok {
		s.publish(ctx, domain.CartQuantityUpdated, id, change)
	}
}

func (s *Service) DecrementQuantity(ctx context.Context, id int64) {
	change, ok := s.cart.DecrementQuantity(id)
	if !ok {
		return
	}
	kind := domain.CartQuantityUpdated
	if change.Quantity == 0 {
		kind = domain.CartItemRemoved
	}
	s.publish(ctx, kind, id, change)
}

func (s *Service) RemoveFromCart(ctx context.Context, id int64) {
	if change, ok := s.cart.RemoveFromCart(id); ok {
		s.publish(ctx, domain.CartItemRemoved, id, change)
	}
}

func (s *Service) ClearCart(ctx context.Context) {
	if change, ok := s.cart.ClearCart(); ok {
		s.publish(ctx, domain.CartCleared, 0, change)
	}
}

// publish never fails the cart operation, errors are only logged. Only
// mutations that changed the cart are published.
func (s *Service) publish(
	ctx context.Context,
	kind domain.CartEventKind,
	productID int64,
	change CartChange,
) {
	const op = "Service.publish"

	if s.cartEvtsProducer == nil {
		return
	}

	evt := domain.CartEvent{
		Kind:      kind,
		ProductID: productID,
		Quantity:  change.Quantity,
		Total:     change.Total,
		ItemCount: change.ItemCount,
	}

	if err := s.cartEvtsProducer.ProduceCartEvent(ctx, evt); err != nil {
		slog.Error("failed to produce cart event",
			"op", op, "kind", kind, "err", err)
	}
}
