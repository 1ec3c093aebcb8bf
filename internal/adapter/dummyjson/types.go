package dummyjson

import "github.com/niksmo/shoe-store/internal/core/domain"

type (
	categoryResponse struct {
		Products []product `json:"products"`
		Total    int       `json:"total"`
		Skip     int       `json:"skip"`
		Limit    int       `json:"limit"`
	}

	product struct {
		ID                 int64    `json:"id"`
		Title              string   `json:"title"`
		Price              float64  `json:"price"`
		Category           string   `json:"category"`
		Stock              int      `json:"stock"`
		Thumbnail          string   `json:"thumbnail"`
		Images             []string `json:"images"`
		Description        string   `json:"description"`
		Brand              string   `json:"brand"`
		Rating             *float64 `json:"rating"`
		DiscountPercentage float64  `json:"discountPercentage"`
	}
)

// toDomain renames title to Name and thumbnail to Image.
func (p product) toDomain() domain.Product {
	return domain.Product{
		ID:                 p.ID,
		Name:               p.Title,
		Price:              p.Price,
		Category:           p.Category,
		Stock:              p.Stock,
		Image:              p.Thumbnail,
		Images:             p.Images,
		Description:        p.Description,
		Brand:              p.Brand,
		Rating:             p.Rating,
		DiscountPercentage: p.DiscountPercentage,
	}
}

func toDomain(ps []product) []domain.Product {
	out := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.toDomain())
	}
	return out
}
