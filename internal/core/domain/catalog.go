package domain

import (
	"errors"
	"fmt"
)

var ErrFetchFailure = errors.New("catalog fetch failed")

// FetchFailure is the only failure a catalog fetch surfaces.
type FetchFailure struct {
	Message string
}

func (e FetchFailure) Error() string {
	return e.Message
}

func (e FetchFailure) Is(target error) bool {
	return target == ErrFetchFailure
}

func NewFetchFailure(err error) FetchFailure {
	return FetchFailure{Message: err.Error()}
}

type FetchStatus int

const (
	FetchIdle FetchStatus = iota
	FetchLoading
	FetchSucceeded
	FetchFailed
)

func (s FetchStatus) String() string {
	switch s {
	case FetchIdle:
		return "idle"
	case FetchLoading:
		return "loading"
	case FetchSucceeded:
		return "succeeded"
	case FetchFailed:
		return "failed"
	}
	return fmt.Sprintf("FetchStatus(%d)", int(s))
}

// CatalogState is what renderers may read from the catalog.
type CatalogState struct {
	Products           []Product
	Status             FetchStatus
	Loading            bool
	Error              string
	SelectedCategory   string
	SelectedBrand      string
	SelectedPriceRange string
	SelectedColor      string
	SelectedRating     string
}

func (s CatalogState) Selection() FilterSelection {
	return FilterSelection{
		Category:   s.SelectedCategory,
		Brand:      s.SelectedBrand,
		PriceRange: s.SelectedPriceRange,
		Color:      s.SelectedColor,
		Rating:     s.SelectedRating,
	}
}
