package service

import (
	"slices"
	"sync"

	"github.com/niksmo/shoe-store/internal/core/domain"
)

// A CartStore holds the cart line items and their derived totals.
//
// Every operation recomputes the totals from scratch before it returns.
type CartStore struct {
	mu    sync.Mutex
	items []domain.CartLineItem
	total float64
	count int
}

func NewCartStore() *CartStore {
	return &CartStore{}
}

func (c *CartStore) State() domain.CartState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return domain.CartState{
		Items:     slices.Clone(c.items),
		Total:     c.total,
		ItemCount: c.count,
	}
}

// A CartChange is the cart right after a mutation, read under the same
// lock as the mutation itself.
type CartChange struct {
	Quantity  int // 0 when the line item is gone
	Total     float64
	ItemCount int
}

func (c *CartStore) AddToCart(p domain.Product) CartChange {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(p.ID); i != -1 {
		c.items[i].Quantity++
	} else {
		c.items = append(c.items, domain.NewCartLineItem(p))
	}
	c.recalculate()
	return c.change(p.ID)
}

// UpdateQuantity removes the line item when quantity is not positive.
// Absent line items are left alone and reported as unchanged.
func (c *CartStore) UpdateQuantity(id int64, quantity int) (CartChange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i == -1 || c.items[i].Quantity == quantity {
		return CartChange{}, false
	}
	if quantity <= 0 {
		c.remove(id)
	} else {
		c.items[i].Quantity = quantity
	}
	c.recalculate()
	return c.change(id), true
}

func (c *CartStore) IncrementQuantity(id int64) (CartChange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i == -1 {
		return CartChange{}, false
	}
	c.items[i].Quantity++
	c.recalculate()
	return c.change(id), true
}

// DecrementQuantity removes the line item when its quantity drops to 0.
func (c *CartStore) DecrementQuantity(id int64) (CartChange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i == -1 {
		return CartChange{}, false
	}
	if c.items[i].Quantity <= 1 {
		c.remove(id)
	} else {
		c.items[i].Quantity--
	}
	c.recalculate()
	return c.change(id), true
}

func (c *CartStore) RemoveFromCart(id int64) (CartChange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.indexOf(id) == -1 {
		return CartChange{}, false
	}
	c.remove(id)
	c.recalculate()
	return c.change(id), true
}

// ClearCart empties the cart. Clearing an empty cart changes nothing.
func (c *CartStore) ClearCart() (CartChange, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.items) == 0 {
		return CartChange{}, false
	}
	c.items = nil
	c.total = 0
	c.count = 0
	return CartChange{}, true
}

// change must be called with c.mu held.
func (c *CartStore) change(id int64) CartChange {
	ch := CartChange{Total: c.total, ItemCount: c.count}
	if i := c.indexOf(id); i != -1 {
		ch.Quantity = c.items[i].Quantity
	}
	return ch
}

func (c *CartStore) indexOf(id int64) int {
	return slices.IndexFunc(c.items, func(li domain.CartLineItem) bool {
		return li.ID == id
	})
}

func (c *CartStore) remove(id int64) {
	c.items = slices.DeleteFunc(c.items, func(li domain.CartLineItem) bool {
		return li.ID == id
	})
}

func (c *CartStore) recalculate() {
	c.total, c.count = domain.CartTotals(c.items)
}
