// Package catalog owns the product sequence: validated CRUD, capability
// gating on every mutation, and snapshot persistence after each change.
package catalog

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sumith1510/commodities-manager/internal/models"
	"github.com/sumith1510/commodities-manager/internal/policy"
	"github.com/sumith1510/commodities-manager/internal/storage"
)

// snapshotKey names the persisted catalog record.
const snapshotKey = "cm_products_v1"

// ErrNotFound is returned by Update when no product has the given id.
var ErrNotFound = errors.New("product not found")

// Catalog is the authoritative in-memory product sequence, mirrored to
// the record store on every mutation. It is the only writer of the
// snapshot record.
type Catalog struct {
	store *storage.Store
	log   *zap.Logger

	mu       sync.Mutex
	products []models.Product
}

// Open loads the persisted snapshot, or seeds the default product set
// when no usable snapshot exists. Seeding happens once per fresh storage:
// the seeded snapshot is persisted immediately.
func Open(store *storage.Store, log *zap.Logger) *Catalog {
	c := &Catalog{store: store, log: log}

	if data, ok := store.Read(snapshotKey); ok {
		if err := json.Unmarshal(data, &c.products); err == nil {
			return c
		}
		log.Warn("catalog snapshot corrupt, reseeding", zap.String("key", snapshotKey))
	}

	c.products = seedProducts()
	c.persist()
	log.Info("catalog seeded with defaults", zap.Int("count", len(c.products)))
	return c
}

// seedProducts builds the default catalog, assigning fresh ids.
func seedProducts() []models.Product {
	return []models.Product{
		{ID: uuid.NewString(), Name: "Wheat", Category: "Grain", Price: decimal.NewFromFloat(22.5), Stock: 120, Unit: models.UnitKilogram},
		{ID: uuid.NewString(), Name: "Rice", Category: "Grain", Price: decimal.NewFromFloat(28.9), Stock: 90, Unit: models.UnitKilogram},
		{ID: uuid.NewString(), Name: "Coffee Beans", Category: "Beverage", Price: decimal.NewFromFloat(180.0), Stock: 35, Unit: models.UnitKilogram},
		{ID: uuid.NewString(), Name: "Palm Oil", Category: "Oil", Price: decimal.NewFromFloat(96.0), Stock: 70, Unit: models.UnitLiter},
	}
}

// List returns a copy of the current product sequence, newest first.
func (c *Catalog) List() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Add validates draft and, on success, inserts a new product with a fresh
// id at the front of the sequence, persists the snapshot, and returns the
// created product. The acting role must hold the MutateCatalog capability.
func (c *Catalog) Add(role models.Role, draft models.ProductDraft) (models.Product, error) {
	if !policy.Can(role, models.MutateCatalog) {
		return models.Product{}, policy.ErrForbidden
	}

	f, verr := parseDraft(draft)
	if verr != nil {
		return models.Product{}, verr
	}

	product := models.Product{
		ID:       uuid.NewString(),
		Name:     f.name,
		Category: f.category,
		Price:    f.price,
		Stock:    f.stock,
		Unit:     f.unit,
	}

	c.mu.Lock()
	c.products = append([]models.Product{product}, c.products...)
	c.persist()
	c.mu.Unlock()

	c.log.Info("product added",
		zap.String("id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// Update merges the present patch fields over the product with the given
// id, re-validates the merged result with the same rules as Add, replaces
// the entry in place, and persists. Returns ErrNotFound when no product
// has that id. Nothing is applied on validation failure.
func (c *Catalog) Update(role models.Role, id string, patch models.ProductPatch) (models.Product, error) {
	if !policy.Can(role, models.MutateCatalog) {
		return models.Product{}, policy.ErrForbidden
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(id)
	if idx < 0 {
		return models.Product{}, ErrNotFound
	}

	f, verr := parseDraft(merge(draftOf(c.products[idx]), patch))
	if verr != nil {
		return models.Product{}, verr
	}

	product := models.Product{
		ID:       id,
		Name:     f.name,
		Category: f.category,
		Price:    f.price,
		Stock:    f.stock,
		Unit:     f.unit,
	}
	c.products[idx] = product
	c.persist()

	c.log.Info("product updated", zap.String("id", id))
	return product, nil
}

// Delete removes the product with the given id. Deleting an unknown id is
// a no-op, not an error. The snapshot is persisted afterward either way.
func (c *Catalog) Delete(role models.Role, id string) error {
	if !policy.Can(role, models.MutateCatalog) {
		return policy.ErrForbidden
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if idx := c.indexOf(id); idx >= 0 {
		c.products = append(c.products[:idx], c.products[idx+1:]...)
		c.log.Info("product deleted", zap.String("id", id))
	}
	c.persist()
	return nil
}

// indexOf returns the position of the product with the given id, or -1.
// Callers must hold c.mu.
func (c *Catalog) indexOf(id string) int {
	for i := range c.products {
		if c.products[i].ID == id {
			return i
		}
	}
	return -1
}

// persist mirrors the full snapshot to the record store. Storage failures
// are logged, not propagated: the in-memory state stays authoritative.
// Callers must hold c.mu.
func (c *Catalog) persist() {
	data, err := json.Marshal(c.products)
	if err != nil {
		c.log.Warn("failed to encode catalog snapshot", zap.Error(err))
		return
	}
	if err := c.store.Write(snapshotKey, data); err != nil {
		c.log.Warn("failed to persist catalog snapshot", zap.Error(err))
	}
}
