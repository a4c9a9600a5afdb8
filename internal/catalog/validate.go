package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sumith1510/commodities-manager/internal/models"
)

// ValidationError reports the first draft field that failed validation.
// No part of a draft is applied when any field fails.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// fields holds a draft after parsing, ready to apply to a product.
type fields struct {
	name     string
	category string
	price    decimal.Decimal
	stock    int
	unit     models.Unit
}

// parseDraft validates d field by field in a fixed order: name, category,
// price, stock, unit. The first failing field determines the error.
func parseDraft(d models.ProductDraft) (fields, *ValidationError) {
	var f fields

	f.name = strings.TrimSpace(d.Name)
	if f.name == "" {
		return f, &ValidationError{Field: "name", Reason: "name is required"}
	}

	f.category = strings.TrimSpace(d.Category)
	if f.category == "" {
		return f, &ValidationError{Field: "category", Reason: "category is required"}
	}

	price, err := decimal.NewFromString(strings.TrimSpace(d.Price))
	if err != nil || price.IsNegative() {
		return f, &ValidationError{Field: "price", Reason: "price must be a non-negative number"}
	}
	f.price = price

	stock, err := strconv.Atoi(strings.TrimSpace(d.Stock))
	if err != nil || stock < 0 {
		return f, &ValidationError{Field: "stock", Reason: "stock must be a non-negative integer"}
	}
	f.stock = stock

	f.unit = models.Unit(strings.TrimSpace(d.Unit))
	if !f.unit.Valid() {
		return f, &ValidationError{Field: "unit", Reason: fmt.Sprintf("unknown unit %q", d.Unit)}
	}

	return f, nil
}

// draftOf renders a product back into raw draft form, used to merge an
// edit patch over the current values before re-validating.
func draftOf(p models.Product) models.ProductDraft {
	return models.ProductDraft{
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price.String(),
		Stock:    strconv.Itoa(p.Stock),
		Unit:     string(p.Unit),
	}
}

// merge overlays the present patch fields onto a draft.
func merge(d models.ProductDraft, patch models.ProductPatch) models.ProductDraft {
	if patch.Name != nil {
		d.Name = *patch.Name
	}
	if patch.Category != nil {
		d.Category = *patch.Category
	}
	if patch.Price != nil {
		d.Price = *patch.Price
	}
	if patch.Stock != nil {
		d.Stock = *patch.Stock
	}
	if patch.Unit != nil {
		d.Unit = *patch.Unit
	}
	return d
}
