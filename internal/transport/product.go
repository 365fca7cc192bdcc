package transport

import (
	"net/url"
	"strings"
)

const (
	SortDefault   = ""
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortNewest    = "newest"
	SortRating    = "rating"
)

type ProductFilter struct {
	Genders    []string
	Brands     []string
	Categories []string
	Query      string
	Sort       string
}

// ParseProductFilter normalizes catalog query parameters. Repeated keys and
// comma-joined values are both accepted for category.
func ParseProductFilter(v url.Values) ProductFilter {
	f := ProductFilter{
		Genders:    nonEmpty(v["gender"]),
		Brands:     nonEmpty(v["brand"]),
		Categories: SplitTokens(v["category"]...),
		Query:      strings.TrimSpace(v.Get("q")),
	}
	switch s := strings.TrimSpace(v.Get("sort")); s {
	case SortPriceLow, SortPriceHigh, SortNewest, SortRating:
		f.Sort = s
	default:
		f.Sort = SortDefault
	}
	return f
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ProductInput carries create and partial-update fields; nil means "not supplied".
type ProductInput struct {
	Name          *string    `json:"name"`
	Price         *float64   `json:"price"`
	OriginalPrice *float64   `json:"originalPrice"`
	Description   *string    `json:"description"`
	Image         *string    `json:"image"`
	Sizes         StringList `json:"sizes"`
	Colors        StringList `json:"colors"`
	Features      StringList `json:"features"`
	Category      StringList `json:"category"`
	Brand         *string    `json:"brand"`
	Gender        *string    `json:"gender"`
	Quantity      *int       `json:"quantity"`
	InStock       *bool      `json:"inStock"`
	Rating        *float64   `json:"rating"`
	Reviews       *int       `json:"reviews"`
}

type SearchHit struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Brand string  `json:"brand"`
	Price float64 `json:"price"`
	Image string  `json:"image"`
	Score float64 `json:"score"`
}

type SearchResponse struct {
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Size  int         `json:"size"`
	Items []SearchHit `json:"items"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}
