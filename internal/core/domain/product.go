package domain

type (
	Product struct {
		ID                 int64
		Name               string
		Category           string
		Brand              string
		Description        string
		Price              float64
		DiscountPercentage float64
		Stock              int
		Rating             *float64
		Image              string
		Images             []string
	}

	// ProductFields holds everything a new product is created from.
	// The ID is assigned by the catalog.
	ProductFields struct {
		Name               string
		Category           string
		Brand              string
		Description        string
		Price              float64
		DiscountPercentage float64
		Stock              int
		Rating             *float64
		Image              string
		Images             []string
	}

	// ProductPatch is a partial update. Nil fields are left unchanged.
	ProductPatch struct {
		Name               *string
		Category           *string
		Brand              *string
		Description        *string
		Price              *float64
		DiscountPercentage *float64
		Stock              *int
		Rating             *float64
		Image              *string
		Images             []string
	}
)

func (p Product) InStock() bool {
	return p.Stock > 0
}

// Clone returns a copy that shares no memory with p.
func (p Product) Clone() Product {
	c := p
	if p.Rating != nil {
		r := *p.Rating
		c.Rating = &r
	}
	if p.Images != nil {
		c.Images = append([]string(nil), p.Images...)
	}
	return c
}

func (f ProductFields) ToProduct(id int64) Product {
	return Product{
		ID:                 id,
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
	}.Clone()
}

// Apply merges the non-nil patch fields into p.
func (patch ProductPatch) Apply(p Product) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.DiscountPercentage != nil {
		p.DiscountPercentage = *patch.DiscountPercentage
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Rating != nil {
		r := *patch.Rating
		p.Rating = &r
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Images != nil {
		p.Images = append([]string(nil), patch.Images...)
	}
	return p
}

func CloneProducts(ps []Product) []Product {
	if ps == nil {
		return nil
	}
	out := make([]Product, len(ps))
	for i := range ps {
		out[i] = ps[i].Clone()
	}
	return out
}
