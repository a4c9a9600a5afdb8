package catalog

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sumith1510/commodities-manager/internal/models"
	"github.com/sumith1510/commodities-manager/internal/policy"
	"github.com/sumith1510/commodities-manager/internal/storage"
)

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.New(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("storage.New failed: %v", err)
	}
	return store
}

func strPtr(s string) *string { return &s }

func validDraft() models.ProductDraft {
	return models.ProductDraft{Name: "Maize", Category: "Grain", Price: "20", Stock: "50", Unit: "kg"}
}

func TestOpen_SeedsDefaults(t *testing.T) {
	store := newStore(t)
	c := Open(store, zap.NewNop())

	products := c.List()
	if len(products) != 4 {
		t.Fatalf("expected 4 seeded products, got %d", len(products))
	}
	if products[0].Name != "Wheat" || products[3].Name != "Palm Oil" {
		t.Errorf("unexpected seed order: %v, %v", products[0].Name, products[3].Name)
	}

	seen := map[string]bool{}
	for _, p := range products {
		if p.ID == "" || seen[p.ID] {
			t.Errorf("seed product %q has missing or duplicate id %q", p.Name, p.ID)
		}
		seen[p.ID] = true
	}

	// the seeded snapshot is persisted immediately
	if _, ok := store.Read(snapshotKey); !ok {
		t.Error("expected seeded snapshot to be persisted")
	}
}

func TestOpen_LoadsPersistedSnapshot(t *testing.T) {
	store := newStore(t)

	first := Open(store, zap.NewNop())
	added, err := first.Add(models.RoleManager, validDraft())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	want := first.List()

	// a seeded store is not reseeded; the snapshot loads verbatim
	second := Open(store, zap.NewNop())
	got := second.List()
	if len(got) != len(want) {
		t.Fatalf("reloaded %d products; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].Name != want[i].Name ||
			!got[i].Price.Equal(want[i].Price) || got[i].Stock != want[i].Stock {
			t.Errorf("product %d differs after reload: got %+v, want %+v", i, got[i], want[i])
		}
	}
	if got[0].ID != added.ID {
		t.Errorf("reloaded front product = %q; want last-added %q", got[0].ID, added.ID)
	}
}

func TestOpen_CorruptSnapshotReseeds(t *testing.T) {
	store := newStore(t)
	if err := store.Write(snapshotKey, []byte("{definitely not json")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	c := Open(store, zap.NewNop())
	if got := len(c.List()); got != 4 {
		t.Errorf("expected reseeded catalog of 4 products, got %d", got)
	}
}

func TestAdd_Success(t *testing.T) {
	c := Open(newStore(t), zap.NewNop())
	before := c.List()

	product, err := c.Add(models.RoleManager, validDraft())
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if product.ID == "" {
		t.Error("expected a generated id")
	}
	for _, p := range before {
		if p.ID == product.ID {
			t.Errorf("generated id %q collides with existing product", product.ID)
		}
	}
	if !product.Price.Equal(decimal.NewFromInt(20)) || product.Stock != 50 || product.Unit != models.UnitKilogram {
		t.Errorf("unexpected parsed product: %+v", product)
	}

	after := c.List()
	if len(after) != len(before)+1 {
		t.Fatalf("expected %d products, got %d", len(before)+1, len(after))
	}
	if after[0].ID != product.ID {
		t.Error("new product must be inserted at the front")
	}
}

func TestAdd_Validation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.ProductDraft)
		wantField string
	}{
		{"empty name", func(d *models.ProductDraft) { d.Name = "" }, "name"},
		{"whitespace name", func(d *models.ProductDraft) { d.Name = "   " }, "name"},
		{"empty category", func(d *models.ProductDraft) { d.Category = "" }, "category"},
		{"negative price", func(d *models.ProductDraft) { d.Price = "-1" }, "price"},
		{"unparsable price", func(d *models.ProductDraft) { d.Price = "cheap" }, "price"},
		{"negative stock", func(d *models.ProductDraft) { d.Stock = "-5" }, "stock"},
		{"fractional stock", func(d *models.ProductDraft) { d.Stock = "2.5" }, "stock"},
		{"unknown unit", func(d *models.ProductDraft) { d.Unit = "barrel" }, "unit"},
		{"first failure wins", func(d *models.ProductDraft) { d.Name = ""; d.Price = "bad" }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Open(newStore(t), zap.NewNop())
			before := len(c.List())

			draft := validDraft()
			tt.mutate(&draft)

			_, err := c.Add(models.RoleManager, draft)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Add error = %v; want ValidationError", err)
			}
			if verr.Field != tt.wantField {
				t.Errorf("failing field = %q; want %q", verr.Field, tt.wantField)
			}
			if got := len(c.List()); got != before {
				t.Errorf("catalog mutated on validation failure: %d products, had %d", got, before)
			}
		})
	}
}

func TestUpdate_Success(t *testing.T) {
	c := Open(newStore(t), zap.NewNop())
	products := c.List()
	target := products[1]

	updated, err := c.Update(models.RoleManager, target.ID, models.ProductPatch{Price: strPtr("10")})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if !updated.Price.Equal(decimal.NewFromInt(10)) {
		t.Errorf("price = %s; want 10", updated.Price)
	}
	if updated.Name != target.Name || updated.Stock != target.Stock || updated.Unit != target.Unit {
		t.Errorf("unpatched fields changed: %+v", updated)
	}

	after := c.List()
	if after[1].ID != target.ID {
		t.Error("updated product moved; position must be unchanged")
	}
	if !after[1].Price.Equal(decimal.NewFromInt(10)) {
		t.Error("update not reflected in catalog")
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	c := Open(newStore(t), zap.NewNop())

	_, err := c.Update(models.RoleManager, "no-such-id", models.ProductPatch{Price: strPtr("10")})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Update error = %v; want ErrNotFound", err)
	}
}

func TestUpdate_InvalidPatchLeavesProductUnchanged(t *testing.T) {
	c := Open(newStore(t), zap.NewNop())
	target := c.List()[0]

	_, err := c.Update(models.RoleManager, target.ID, models.ProductPatch{Stock: strPtr("-3")})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Update error = %v; want ValidationError", err)
	}

	got := c.List()[0]
	if got.Stock != target.Stock {
		t.Errorf("stock changed to %d on failed update; want %d", got.Stock, target.Stock)
	}
}

func TestDelete(t *testing.T) {
	c := Open(newStore(t), zap.NewNop())
	products := c.List()
	target := products[2]

	if err := c.Delete(models.RoleManager, target.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	after := c.List()
	if len(after) != len(products)-1 {
		t.Fatalf("expected %d products, got %d", len(products)-1, len(after))
	}
	for _, p := range after {
		if p.ID == target.ID {
			t.Error("deleted product still present")
		}
	}

	// deleting an unknown id is a no-op, not an error
	if err := c.Delete(models.RoleManager, "no-such-id"); err != nil {
		t.Errorf("Delete of unknown id returned error: %v", err)
	}
	if got := len(c.List()); got != len(after) {
		t.Errorf("catalog changed on no-op delete: %d products, had %d", got, len(after))
	}
}

func TestMutations_ForbiddenForStoreKeeper(t *testing.T) {
	c := Open(newStore(t), zap.NewNop())
	before := c.List()

	if _, err := c.Add(models.RoleStoreKeeper, validDraft()); !errors.Is(err, policy.ErrForbidden) {
		t.Errorf("Add error = %v; want ErrForbidden", err)
	}
	if _, err := c.Update(models.RoleStoreKeeper, before[0].ID, models.ProductPatch{Price: strPtr("1")}); !errors.Is(err, policy.ErrForbidden) {
		t.Errorf("Update error = %v; want ErrForbidden", err)
	}
	if err := c.Delete(models.RoleStoreKeeper, before[0].ID); !errors.Is(err, policy.ErrForbidden) {
		t.Errorf("Delete error = %v; want ErrForbidden", err)
	}

	if got := len(c.List()); got != len(before) {
		t.Errorf("catalog mutated by forbidden role: %d products, had %d", got, len(before))
	}
}

func TestList_ReturnsCopy(t *testing.T) {
	c := Open(newStore(t), zap.NewNop())

	view := c.List()
	view[0].Name = "Tampered"

	if c.List()[0].Name == "Tampered" {
		t.Error("List must not expose internal state to mutation")
	}
}
