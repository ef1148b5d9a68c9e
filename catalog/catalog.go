// Package catalog holds the static vendor/pickup-point data set. The
// catalog is embedded into the binary, loaded once at startup and
// read-only afterwards; filtering and carts never mutate it.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"

	"baleafiya/models"
)

//go:embed data/catalog.json
var dataFS embed.FS

// Catalog is the full static data set supplied to the service layer.
type Catalog struct {
	Categories   []string             `json:"categories"`
	PickupPoints []models.PickupPoint `json:"pickup_points"`
	Vendors      []models.Vendor      `json:"vendors"`
}

// Load parses the embedded catalog. Called once from main.
func Load() (*Catalog, error) {
	raw, err := dataFS.ReadFile("data/catalog.json")
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Vendors) == 0 {
		return nil, fmt.Errorf("catalog has no vendors")
	}
	return &c, nil
}

// VendorByID returns the vendor with the given id, or nil.
func (c *Catalog) VendorByID(id string) *models.Vendor {
	for i := range c.Vendors {
		if c.Vendors[i].ID == id {
			return &c.Vendors[i]
		}
	}
	return nil
}

// MenuItem returns the menu item with the given id on the given vendor,
// or nil if the vendor or item is unknown.
func (c *Catalog) MenuItem(vendorID, itemID string) *models.MenuItem {
	v := c.VendorByID(vendorID)
	if v == nil {
		return nil
	}
	for i := range v.MenuItems {
		if v.MenuItems[i].ID == itemID {
			return &v.MenuItems[i]
		}
	}
	return nil
}

// PickupPointByID returns the pickup point with the given id, or nil.
func (c *Catalog) PickupPointByID(id string) *models.PickupPoint {
	for i := range c.PickupPoints {
		if c.PickupPoints[i].ID == id {
			return &c.PickupPoints[i]
		}
	}
	return nil
}
