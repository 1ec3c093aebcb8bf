package domain

type (
	// CartLineItem holds the product name and price as they were when the
	// product was first added. They are not re-synced afterwards.
	CartLineItem struct {
		ID       int64
		Name     string
		Price    float64
		Quantity int
	}

	CartState struct {
		Items     []CartLineItem
		Total     float64
		ItemCount int
	}
)

func NewCartLineItem(p Product) CartLineItem {
	return CartLineItem{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Quantity: 1,
	}
}

func (li CartLineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

// CartTotals folds the whole line item list. It is never applied as a delta.
func CartTotals(items []CartLineItem) (total float64, itemCount int) {
	for _, li := range items {
		itemCount += li.Quantity
		total += li.Subtotal()
	}
	return total, itemCount
}

type CartEventKind string

const (
	CartItemAdded       CartEventKind = "item_added"
	CartQuantityUpdated CartEventKind = "quantity_updated"
	CartItemRemoved     CartEventKind = "item_removed"
	CartCleared         CartEventKind = "cleared"
)

// CartEvent describes a cart mutation and the cart totals after it.
type CartEvent struct {
	Kind      CartEventKind
	ProductID int64
	Quantity  int
	Total     float64
	ItemCount int
}
