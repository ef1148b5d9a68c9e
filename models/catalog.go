package models

import "github.com/shopspring/decimal"

// Vendor is one food seller in the static catalog. Catalog data is
// read-only; nothing in the service layer mutates it.
type Vendor struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Categories      []string   `json:"categories"`
	Rating          float64    `json:"rating"`
	IsOpen          bool       `json:"is_open"`
	Phone           string     `json:"phone"`
	DeliveryTime    string     `json:"delivery_time"`
	DiscountPercent int        `json:"discount_percent,omitempty"`
	Description     string     `json:"description,omitempty"`
	Specialty       string     `json:"specialty,omitempty"`
	MenuItems       []MenuItem `json:"menu_items"`
}

// MenuItem is one purchasable item on a vendor's menu.
type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable bool            `json:"is_available"`
	Category    string          `json:"category"`
}

// PickupPoint is a predefined location where an order is collected.
type PickupPoint struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
