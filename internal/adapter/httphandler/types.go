package httphandler

import "github.com/niksmo/shoe-store/internal/core/domain"

type (
	Product struct {
		ID                 int64    `json:"id"`
		Name               string   `json:"name"`
		Category           string   `json:"category"`
		Brand              string   `json:"brand"`
		Description        string   `json:"description"`
		Price              float64  `json:"price"`
		DiscountPercentage float64  `json:"discountPercentage"`
		Stock              int      `json:"stock"`
		Rating             *float64 `json:"rating,omitempty"`
		Image              string   `json:"image,omitempty"`
		Images             []string `json:"images,omitempty"`
	}

	ProductFields struct {
		Name               string   `json:"name"`
		Category           string   `json:"category"`
		Brand              string   `json:"brand"`
		Description        string   `json:"description"`
		Price              float64  `json:"price"`
		DiscountPercentage float64  `json:"discountPercentage"`
		Stock              int      `json:"stock"`
		Rating             *float64 `json:"rating"`
		Image              string   `json:"image"`
		Images             []string `json:"images"`
	}

	ProductPatch struct {
		Name               *string  `json:"name"`
		Category           *string  `json:"category"`
		Brand              *string  `json:"brand"`
		Description        *string  `json:"description"`
		Price              *float64 `json:"price"`
		DiscountPercentage *float64 `json:"discountPercentage"`
		Stock              *int     `json:"stock"`
		Rating             *float64 `json:"rating"`
		Image              *string  `json:"image"`
		Images             []string `json:"images"`
	}

	// Catalog is the catalog contract read by renderers.
	Catalog struct {
		Products           []Product `json:"products"`
		Status             string    `json:"status"`
		Loading            bool      `json:"loading"`
		Error              *string   `json:"error"`
		SelectedCategory   string    `json:"selectedCategory"`
		SelectedBrand      string    `json:"selectedBrand"`
		SelectedPriceRange string    `json:"selectedPriceRange"`
		SelectedColor      string    `json:"selectedColor"`
		SelectedRating     string    `json:"selectedRating"`
	}

	FilterSelection struct {
		Category   string `json:"category"`
		Brand      string `json:"brand"`
		PriceRange string `json:"priceRange"`
		Color      string `json:"color"`
		Rating     string `json:"rating"`
	}

	FilterOption struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	FilterOptions struct {
		Categories  []FilterOption `json:"categories"`
		Brands      []FilterOption `json:"brands"`
		PriceRanges []FilterOption `json:"priceRanges"`
		Colors      []FilterOption `json:"colors"`
		Ratings     []FilterOption `json:"ratings"`
	}

	StockUpdate struct {
		Quantity int `json:"quantity"`
	}

	CartLineItem struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
	}

	// Cart is the cart contract read by renderers.
	Cart struct {
		Items     []CartLineItem `json:"items"`
		Total     float64        `json:"total"`
		ItemCount int            `json:"itemCount"`
	}

	AddToCart struct {
		ProductID int64 `json:"productId"`
	}

	QuantityUpdate struct {
		Quantity int `json:"quantity"`
	}
)

func fromProduct(p domain.Product) Product {
	return Product{
		ID:                 p.ID,
		Name:               p.Name,
		Category:           p.Category,
		Brand:              p.Brand,
		Description:        p.Description,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Stock:              p.Stock,
		Rating:             p.Rating,
		Image:              p.Image,
		Images:             p.Images,
	}
}

func fromProducts(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, fromProduct(p))
	}
	return out
}

func (f ProductFields) toDomain() domain.ProductFields {
	return domain.ProductFields{
		Name:               f.Name,
		Category:           f.Category,
		Brand:              f.Brand,
		Description:        f.Description,
		Price:              f.Price,
		DiscountPercentage: f.DiscountPercentage,
		Stock:              f.Stock,
		Rating:             f.Rating,
		Image:              f.Image,
		Images:             f.Images,
	}
}

func (p ProductPatch) toDomain() domain.ProductPatch {
	return domain.ProductPatch{
		Name:               p.Name,
		Category:           p.Category,
		Brand:              p.Brand,
		Description:        p.Description,
		Price:              p.Price,
		DiscountPercentage: p.DiscountPercentage,
		Stock:              p.Stock,
		Rating:             p.Rating,
		Image:              p.Image,
		Images:             p.Images,
	}
}

func fromCatalog(s domain.CatalogState) Catalog {
	c := Catalog{
		Products:           fromProducts(s.Products),
		Status:             s.Status.String(),
		Loading:            s.Loading,
		SelectedCategory:   s.SelectedCategory,
		SelectedBrand:      s.SelectedBrand,
		SelectedPriceRange: s.SelectedPriceRange,
		SelectedColor:      s.SelectedColor,
		SelectedRating:     s.SelectedRating,
	}
	if s.Error != "" {
		msg := s.Error
		c.Error = &msg
	}
	return c
}

func (f FilterSelection) toDomain() domain.FilterSelection {
	return domain.FilterSelection{
		Category:   f.Category,
		Brand:      f.Brand,
		PriceRange: f.PriceRange,
		Color:      f.Color,
		Rating:     f.Rating,
	}
}

func fromOptions(opts []domain.FilterOption) []FilterOption {
	out := make([]FilterOption, 0, len(opts))
	for _, o := range opts {
		out = append(out, FilterOption{ID: o.ID, Name: o.Name})
	}
	return out
}

func fromFilterOptions(o domain.FilterOptions) FilterOptions {
	return FilterOptions{
		Categories:  fromOptions(o.Categories),
		Brands:      fromOptions(o.Brands),
		PriceRanges: fromOptions(o.PriceRanges),
		Colors:      fromOptions(o.Colors),
		Ratings:     fromOptions(o.Ratings),
	}
}

func fromCart(s domain.CartState) Cart {
	items := make([]CartLineItem, 0, len(s.Items))
	for _, li := range s.Items {
		items = append(items, CartLineItem{
			ID:       li.ID,
			Name:     li.Name,
			Price:    li.Price,
			Quantity: li.Quantity,
		})
	}
	return Cart{Items: items, Total: s.Total, ItemCount: s.ItemCount}
}
