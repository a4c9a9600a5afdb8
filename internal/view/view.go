// Package view derives read-only projections from the catalog: dashboard
// aggregates and the filtered, sorted table. Nothing here mutates state;
// every function recomputes from the snapshot it is given.
package view

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sumith1510/commodities-manager/internal/models"
)

// lowStockThreshold is the exclusive stock bound below which a product
// counts as low-stock.
const lowStockThreshold = 20

// Dashboard holds the aggregate metrics shown to managers.
type Dashboard struct {
	// TotalSKUs is the number of products in the catalog.
	TotalSKUs int
	// TotalInventory is the sum of stock across all products.
	TotalInventory int
	// AveragePrice is the mean price formatted to two decimal places,
	// "0.00" for an empty catalog.
	AveragePrice string
	// LowStockCount is the number of products with stock below the
	// low-stock threshold.
	LowStockCount int
}

// Summarize computes the dashboard aggregates for a catalog snapshot.
func Summarize(products []models.Product) Dashboard {
	d := Dashboard{TotalSKUs: len(products), AveragePrice: "0.00"}

	sum := decimal.Zero
	for _, p := range products {
		d.TotalInventory += p.Stock
		sum = sum.Add(p.Price)
		if p.Stock < lowStockThreshold {
			d.LowStockCount++
		}
	}
	if len(products) > 0 {
		d.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(products)))).StringFixed(2)
	}
	return d
}

// SortKey names a sortable product column.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByCategory SortKey = "category"
	SortByPrice    SortKey = "price"
	SortByStock    SortKey = "stock"
	SortByUnit     SortKey = "unit"
)

// SortKeys lists the sortable columns in table order.
var SortKeys = []SortKey{SortByName, SortByCategory, SortByPrice, SortByStock, SortByUnit}

// Valid reports whether k names a sortable column.
func (k SortKey) Valid() bool {
	for _, known := range SortKeys {
		if k == known {
			return true
		}
	}
	return false
}

// SortSpec is the current table ordering: a column and a direction.
// The zero direction is ascending.
type SortSpec struct {
	Key  SortKey
	Desc bool
}

// Toggle returns the spec after the user selects key: a new key sorts
// ascending, re-selecting the current key flips the direction.
func (s SortSpec) Toggle(key SortKey) SortSpec {
	if s.Key == key {
		return SortSpec{Key: key, Desc: !s.Desc}
	}
	return SortSpec{Key: key}
}

// Table projects the catalog for display: products whose name, category,
// or unit contains query (case-insensitive; empty matches everything),
// stably ordered by spec. Equal keys keep their filtered order. The input
// slice is never modified.
func Table(products []models.Product, query string, spec SortSpec) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q == "" || matches(p, q) {
			out = append(out, p)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		less, equal := compare(out[i], out[j], spec.Key)
		if equal {
			return false
		}
		if spec.Desc {
			return !less
		}
		return less
	})
	return out
}

func matches(p models.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(strings.ToLower(string(p.Unit)), q)
}

// compare orders a and b by key ascending, reporting equality separately
// so descending order can flip without disturbing ties.
func compare(a, b models.Product, key SortKey) (less, equal bool) {
	switch key {
	case SortByCategory:
		return a.Category < b.Category, a.Category == b.Category
	case SortByPrice:
		cmp := a.Price.Cmp(b.Price)
		return cmp < 0, cmp == 0
	case SortByStock:
		return a.Stock < b.Stock, a.Stock == b.Stock
	case SortByUnit:
		return a.Unit < b.Unit, a.Unit == b.Unit
	default:
		return a.Name < b.Name, a.Name == b.Name
	}
}
