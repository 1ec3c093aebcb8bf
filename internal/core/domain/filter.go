package domain

import (
	"strconv"
	"strings"
)

const FilterAll = "all"

const (
	CategoryMensShoes   = "mens-shoes"
	CategoryWomensShoes = "womens-shoes"
)

type FilterSelection struct {
	Category   string
	Brand      string
	PriceRange string
	Color      string
	Rating     string
}

func DefaultFilterSelection() FilterSelection {
	return FilterSelection{
		Category:   FilterAll,
		Brand:      FilterAll,
		PriceRange: FilterAll,
		Color:      FilterAll,
		Rating:     FilterAll,
	}
}

// PriceBand bounds are inclusive. Max < 0 means unbounded and then Min is
// exclusive.
type PriceBand struct {
	ID   string
	Name string
	Min  float64
	Max  float64
}

func (b PriceBand) Contains(price float64) bool {
	if b.Max < 0 {
		return price > b.Min
	}
	return price >= b.Min && price <= b.Max
}

// Boundary prices (50, 100, 150) fall into two adjacent bands.
var PriceBands = []PriceBand{
	{ID: "0-50", Name: "$0 - $50", Min: 0, Max: 50},
	{ID: "50-100", Name: "$50 - $100", Min: 50, Max: 100},
	{ID: "100-150", Name: "$100 - $150", Min: 100, Max: 150},
	{ID: "over-150", Name: "Over $150", Min: 150, Max: -1},
}

func LookupPriceBand(id string) (PriceBand, bool) {
	for _, b := range PriceBands {
		if b.ID == id {
			return b, true
		}
	}
	return PriceBand{}, false
}

type FilterOption struct {
	ID   string
	Name string
}

type FilterOptions struct {
	Categories  []FilterOption
	Brands      []FilterOption
	PriceRanges []FilterOption
	Colors      []FilterOption
	Ratings     []FilterOption
}

var (
	categoryOptions = []FilterOption{
		{ID: FilterAll, Name: "All"},
		{ID: "sneakers", Name: "Sneakers"},
		{ID: "flats", Name: "Flats"},
		{ID: "sandals", Name: "Sandals"},
		{ID: "heels", Name: "Heels"},
	}

	colorOptions = []FilterOption{
		{ID: FilterAll, Name: "All"},
		{ID: "black", Name: "Black"},
		{ID: "blue", Name: "Blue"},
		{ID: "red", Name: "Red"},
		{ID: "green", Name: "Green"},
		{ID: "white", Name: "White"},
	}

	ratingOptions = []FilterOption{
		{ID: FilterAll, Name: "All"},
		{ID: "4", Name: "4+ stars"},
		{ID: "3", Name: "3+ stars"},
		{ID: "2", Name: "2+ stars"},
	}
)

// Options returns the facets a filter UI offers for ps. Brands are taken
// from the products in first-seen order.
func Options(ps []Product) FilterOptions {
	prices := []FilterOption{{ID: FilterAll, Name: "All"}}
	for _, b := range PriceBands {
		prices = append(prices, FilterOption{ID: b.ID, Name: b.Name})
	}

	brands := []FilterOption{{ID: FilterAll, Name: "All"}}
	seen := make(map[string]struct{})
	for _, p := range ps {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, FilterOption{ID: p.Brand, Name: p.Brand})
	}

	return FilterOptions{
		Categories:  append([]FilterOption(nil), categoryOptions...),
		Brands:      brands,
		PriceRanges: prices,
		Colors:      append([]FilterOption(nil), colorOptions...),
		Ratings:     append([]FilterOption(nil), ratingOptions...),
	}
}

// Visible returns the products matching every active constraint of sel,
// in input order. Inputs are not modified.
func Visible(ps []Product, sel FilterSelection) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		if sel.Match(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (sel FilterSelection) Match(p Product) bool {
	return matchCategory(p, sel.Category) &&
		matchBrand(p, sel.Brand) &&
		matchPriceRange(p, sel.PriceRange) &&
		matchColor(p, sel.Color) &&
		matchRating(p, sel.Rating)
}

func isAll(v string) bool {
	return v == "" || v == FilterAll
}

func isCanonicalCategory(v string) bool {
	return v == CategoryMensShoes || v == CategoryWomensShoes
}

// Upstream only knows mens-shoes and womens-shoes, so UI categories such
// as "sneakers" are searched for in the category and name.
func matchCategory(p Product, category string) bool {
	if isAll(category) {
		return true
	}
	if isCanonicalCategory(category) {
		return p.Category == category
	}
	haystack := strings.ToLower(p.Category + p.Name)
	return strings.Contains(haystack, strings.ToLower(category))
}

func matchBrand(p Product, brand string) bool {
	return isAll(brand) || p.Brand == brand
}

func matchPriceRange(p Product, id string) bool {
	if isAll(id) {
		return true
	}
	band, ok := LookupPriceBand(id)
	if !ok {
		return true
	}
	return band.Contains(p.Price)
}

// Color is not an upstream field.
func matchColor(p Product, color string) bool {
	if isAll(color) {
		return true
	}
	haystack := strings.ToLower(p.Name + p.Description)
	return strings.Contains(haystack, strings.ToLower(color))
}

func matchRating(p Product, rating string) bool {
	if isAll(rating) {
		return true
	}
	minRating, err := strconv.ParseFloat(rating, 64)
	if err != nil {
		return true
	}
	return p.Rating != nil && *p.Rating >= minRating
}
