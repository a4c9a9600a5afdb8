// Package models defines the core data structures for products,
// credentials, sessions, and role-based capabilities.
package models

import "github.com/shopspring/decimal"

func init() {
	// Persisted snapshots store prices as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Unit defines the set of valid measurement units for a product.
type Unit string

const (
	// UnitKilogram represents product stock measured in kilograms.
	UnitKilogram Unit = "kg"
	// UnitLiter represents product stock measured in liters.
	UnitLiter Unit = "L"
	// UnitTon represents product stock measured in metric tons.
	UnitTon Unit = "ton"
	// UnitBag represents product stock measured in bags.
	UnitBag Unit = "bag"
)

// Units lists every valid measurement unit.
var Units = []Unit{UnitKilogram, UnitLiter, UnitTon, UnitBag}

// Valid reports whether u is one of the enumerated units.
func (u Unit) Valid() bool {
	for _, known := range Units {
		if u == known {
			return true
		}
	}
	return false
}

// Product represents a single SKU in the catalog.
type Product struct {
	// ID is the unique identifier, assigned by the catalog at creation.
	ID string `json:"id"`
	// Name is the product name.
	Name string `json:"name"`
	// Category groups related products ("Grain", "Oil", ...).
	Category string `json:"category"`
	// Price is the unit price, never negative.
	Price decimal.Decimal `json:"price"`
	// Stock is the number of units on hand, never negative.
	Stock int `json:"stock"`
	// Unit is the measurement unit for Stock.
	Unit Unit `json:"unit"`
}

// ProductDraft carries raw form input for a product before validation.
// Every field is the string as typed; parsing happens during validation.
type ProductDraft struct {
	Name     string
	Category string
	Price    string
	Stock    string
	Unit     string
}

// ProductPatch holds the draft fields present in an edit.
// Nil fields keep the product's current value.
type ProductPatch struct {
	Name     *string
	Category *string
	Price    *string
	Stock    *string
	Unit     *string
}

// Role identifies the access level of a signed-in user.
type Role string

const (
	// RoleManager can view the dashboard and mutate the catalog.
	RoleManager Role = "Manager"
	// RoleStoreKeeper can only view the catalog.
	RoleStoreKeeper Role = "Store Keeper"
)

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleStoreKeeper
}

// Capability is a named permission granted per role.
type Capability string

const (
	// ViewDashboard permits viewing the aggregate dashboard.
	ViewDashboard Capability = "dashboard:view"
	// ViewCatalog permits viewing the product catalog.
	ViewCatalog Capability = "catalog:view"
	// MutateCatalog permits adding, editing, and deleting products.
	MutateCatalog Capability = "catalog:mutate"
)

// Credential is a compiled-in reference record used to authenticate a user.
// Secret holds either a plaintext password or a hash, depending on the
// verifier in use. Credentials are never persisted by the application.
type Credential struct {
	Username string
	Secret   string
	Role     Role
	Name     string
}

// Session is the public identity of the signed-in user: a credential
// stripped of its secret. It is persisted across restarts.
type Session struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Name     string `json:"name"`
}

// Theme is the display theme preference.
type Theme string

const (
	// ThemeLight is the default display theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark display theme.
	ThemeDark Theme = "dark"
)
