package models

import "github.com/shopspring/decimal"

// DefaultPickupPointID is used when a user has never picked a point
// or when a persisted snapshot cannot be read.
const DefaultPickupPointID = "1"

// CartLine is one entry in a cart. Price is captured at add-time and
// never re-read from the catalog.
type CartLine struct {
	MenuItemID string          `json:"menu_item_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Qty        int             `json:"qty"`
	VendorID   string          `json:"vendor_id"`
	VendorName string          `json:"vendor_name"`
}

// CartSnapshot is the persisted shape of a cart: the line list and the
// selected pickup point. All lines share one vendor id.
type CartSnapshot struct {
	Lines         []CartLine `json:"lines"`
	PickupPointID string     `json:"pickup_point_id"`
}
