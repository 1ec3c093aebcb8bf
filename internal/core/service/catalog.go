package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/niksmo/shoe-store/internal/core/domain"
	"github.com/niksmo/shoe-store/internal/core/port"
	"golang.org/x/sync/errgroup"
)

// A CatalogStore holds the fetched products, the fetch status and the
// filter selection.
type CatalogStore struct {
	source     port.CatalogSource
	categories []string
	now        func() time.Time

	mu        sync.RWMutex
	products  []domain.Product
	status    domain.FetchStatus
	fetchErr  string
	selection domain.FilterSelection
}

type CatalogOpt func(*CatalogStore)

// CatalogClockOpt sets the clock used to derive new product ids.
func CatalogClockOpt(now func() time.Time) CatalogOpt {
	return func(s *CatalogStore) {
		s.now = now
	}
}

// CatalogProductsOpt seeds the collection, e.g. for tests.
func CatalogProductsOpt(ps []domain.Product) CatalogOpt {
	return func(s *CatalogStore) {
		s.products = domain.CloneProducts(ps)
	}
}

func NewCatalogStore(
	source port.CatalogSource, categories []string, opts ...CatalogOpt,
) *CatalogStore {
	s := &CatalogStore{
		source:     source,
		categories: slices.Clone(categories),
		now:        time.Now,
		selection:  domain.DefaultFilterSelection(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchCatalog retrieves every configured category concurrently and
// replaces the collection only if all of them succeed. The first failure
// cancels the remaining retrievals and leaves the collection untouched.
func (s *CatalogStore) FetchCatalog(ctx context.Context) error {
	s.mu.Lock()
	s.markLoading()
	s.mu.Unlock()

	return s.fetch(ctx)
}

// StartFetch marks the catalog as loading, starts FetchCatalog in the
// background and returns the loading state. The fetch result is sent on
// the returned channel.
func (s *CatalogStore) StartFetch(
	ctx context.Context,
) (domain.CatalogState, <-chan error) {
	s.mu.Lock()
	s.markLoading()
	state := s.state()
	s.mu.Unlock()

	errc := make(chan error, 1)
	go func() {
		errc <- s.fetch(ctx)
	}()
	return state, errc
}

// markLoading must be called with s.mu held.
func (s *CatalogStore) markLoading() {
	s.status = domain.FetchLoading
	s.fetchErr = ""
}

func (s *CatalogStore) fetch(ctx context.Context) error {
	const op = "CatalogStore.FetchCatalog"
	log := slog.With("op", op)

	ps, err := s.fetchAll(ctx)
	if err != nil {
		failure := domain.NewFetchFailure(err)

		s.mu.Lock()
		s.status = domain.FetchFailed
		s.fetchErr = failure.Message
		s.mu.Unlock()

		log.Warn("failed to fetch catalog", "err", err)
		return fmt.Errorf("%s: %w", op, failure)
	}

	s.mu.Lock()
	s.status = domain.FetchSucceeded
	s.products = ps
	s.mu.Unlock()

	log.Info("catalog fetched", "nProducts", len(ps))
	return nil
}

func (s *CatalogStore) fetchAll(ctx context.Context) ([]domain.Product, error) {
	results := make([][]domain.Product, len(s.categories))

	g, gCtx := errgroup.WithContext(ctx)
	for i, category := range s.categories {
		g.Go(func() error {
			ps, err := s.source.FetchCategory(gCtx, category)
			if err != nil {
				return err
			}
			results[i] = ps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []domain.Product
	for _, ps := range results {
		all = append(all, ps...)
	}
	if all == nil {
		all = []domain.Product{}
	}
	return all, nil
}

func (s *CatalogStore) State() domain.CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state()
}

// state must be called with s.mu held.
func (s *CatalogStore) state() domain.CatalogState {
	return domain.CatalogState{
		Products:           domain.CloneProducts(s.products),
		Status:             s.status,
		Loading:            s.status == domain.FetchLoading,
		Error:              s.fetchErr,
		SelectedCategory:   s.selection.Category,
		SelectedBrand:      s.selection.Brand,
		SelectedPriceRange: s.selection.PriceRange,
		SelectedColor:      s.selection.Color,
		SelectedRating:     s.selection.Rating,
	}
}

// Visible applies the current selection to the current products.
func (s *CatalogStore) Visible() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Visible(s.products, s.selection)
}

func (s *CatalogStore) Options() domain.FilterOptions {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Options(s.products)
}

func (s *CatalogStore) Product(id int64) (domain.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i != -1 {
		return s.products[i].Clone(), true
	}
	return domain.Product{}, false
}

// AddProduct appends a product with a timestamp-derived id.
func (s *CatalogStore) AddProduct(fields domain.ProductFields) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := fields.ToProduct(s.nextID())
	s.products = append(s.products, p)
	return p.Clone()
}

func (s *CatalogStore) nextID() int64 {
	id := s.now().UnixMilli()
	for _, p := range s.products {
		if p.ID >= id {
			id = p.ID + 1
		}
	}
	return id
}

func (s *CatalogStore) UpdateProduct(id int64, patch domain.ProductPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i == -1 {
		return false
	}
	s.products[i] = patch.Apply(s.products[i])
	return true
}

func (s *CatalogStore) DeleteProduct(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.products)
	s.products = slices.DeleteFunc(s.products, func(p domain.Product) bool {
		return p.ID == id
	})
	return len(s.products) != n
}

// UpdateStock subtracts quantity from the product stock. The result may be
// negative.
func (s *CatalogStore) UpdateStock(id int64, quantity int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i == -1 {
		return false
	}
	s.products[i].Stock -= quantity
	return true
}

func (s *CatalogStore) SetSelectedCategory(v string) {
	s.setSelection(func(sel *domain.FilterSelection) { sel.Category = v })
}

func (s *CatalogStore) SetSelectedBrand(v string) {
	s.setSelection(func(sel *domain.FilterSelection) { sel.Brand = v })
}

func (s *CatalogStore) SetSelectedPriceRange(v string) {
	s.setSelection(func(sel *domain.FilterSelection) { sel.PriceRange = v })
}

func (s *CatalogStore) SetSelectedColor(v string) {
	s.setSelection(func(sel *domain.FilterSelection) { sel.Color = v })
}

func (s *CatalogStore) SetSelectedRating(v string) {
	s.setSelection(func(sel *domain.FilterSelection) { sel.Rating = v })
}

func (s *CatalogStore) ResetFilters() {
	s.setSelection(func(sel *domain.FilterSelection) {
		*sel = domain.DefaultFilterSelection()
	})
}

func (s *CatalogStore) setSelection(fn func(*domain.FilterSelection)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.selection)
}

func (s *CatalogStore) indexOf(id int64) int {
	return slices.IndexFunc(s.products, func(p domain.Product) bool {
		return p.ID == id
	})
}
