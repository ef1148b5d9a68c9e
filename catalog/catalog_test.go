package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Vendors) != 8 {
		t.Errorf("vendors = %d, want 8", len(c.Vendors))
	}
	if len(c.PickupPoints) != 4 {
		t.Errorf("pickup points = %d, want 4", len(c.PickupPoints))
	}
	if len(c.Categories) == 0 || c.Categories[0] != "الكل" {
		t.Errorf("first category tab = %v, want الكل", c.Categories)
	}

	seen := make(map[string]bool)
	for _, v := range c.Vendors {
		if v.ID == "" || v.Name == "" || v.Phone == "" {
			t.Errorf("vendor %q missing id/name/phone", v.Name)
		}
		if seen[v.ID] {
			t.Errorf("duplicate vendor id %q", v.ID)
		}
		seen[v.ID] = true
		for _, item := range v.MenuItems {
			if item.Price.LessThan(decimal.Zero) {
				t.Errorf("vendor %s item %s has negative price", v.ID, item.ID)
			}
		}
	}
}

func TestLookups(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if v := c.VendorByID("haboob"); v == nil || v.DiscountPercent != 20 {
		t.Errorf("VendorByID(haboob) = %+v, want discount 20", v)
	}
	if v := c.VendorByID("nope"); v != nil {
		t.Errorf("VendorByID(nope) = %+v, want nil", v)
	}

	item := c.MenuItem("1", "1-1")
	if item == nil {
		t.Fatal("MenuItem(1, 1-1) = nil")
	}
	if !item.Price.Equal(decimal.RequireFromString("1.65")) {
		t.Errorf("price = %s, want 1.65", item.Price)
	}
	if c.MenuItem("1", "2-1") != nil {
		t.Error("MenuItem must not find items across vendors")
	}

	if pp := c.PickupPointByID("1"); pp == nil || pp.Name == "" {
		t.Errorf("PickupPointByID(1) = %+v", pp)
	}
}
