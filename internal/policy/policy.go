// Package policy maps roles to the capabilities they hold.
package policy

import (
	"errors"

	"github.com/sumith1510/commodities-manager/internal/models"
)

// ErrForbidden is returned when a role attempts an operation it does not
// hold the capability for.
var ErrForbidden = errors.New("operation not permitted for role")

// ordered lists every capability in display order, used to build menus.
var ordered = []models.Capability{
	models.ViewDashboard,
	models.ViewCatalog,
	models.MutateCatalog,
}

// grants is the static role → capability table.
var grants = map[models.Role]map[models.Capability]bool{
	models.RoleManager: {
		models.ViewDashboard: true,
		models.ViewCatalog:   true,
		models.MutateCatalog: true,
	},
	models.RoleStoreKeeper: {
		models.ViewCatalog: true,
	},
}

// Can reports whether role holds capability. Unknown roles and unknown
// capabilities are denied.
func Can(role models.Role, capability models.Capability) bool {
	return grants[role][capability]
}

// Capabilities returns the capabilities granted to role, in a fixed order.
func Capabilities(role models.Role) []models.Capability {
	var caps []models.Capability
	for _, c := range ordered {
		if grants[role][c] {
			caps = append(caps, c)
		}
	}
	return caps
}
