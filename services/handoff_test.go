package services

import (
	"net/url"
	"strings"
	"testing"

	"baleafiya/models"

	"github.com/shopspring/decimal"
)

func testOrder() Order {
	lines := []models.CartLine{
		{MenuItemID: "1-1", Name: "سندويش شاورما دجاج", Price: decimal.RequireFromString("1.65"), Qty: 2, VendorID: "1", VendorName: "مطعم وشاورما المهندس"},
		{MenuItemID: "1-2", Name: "وجبة شاورما عادي", Price: decimal.RequireFromString("4.25"), Qty: 1, VendorID: "1", VendorName: "مطعم وشاورما المهندس"},
	}
	vendor := &models.Vendor{ID: "1", Name: "مطعم وشاورما المهندس", Phone: "+962791234567"}
	pickup := models.PickupPoint{ID: "2", Name: "بوابة الجامعة الرئيسية"}
	return NewOrder(lines, vendor, pickup, decimal.RequireFromString("7.55"))
}

func TestOrderSummary(t *testing.T) {
	o := testOrder()
	s := o.Summary()

	for _, want := range []string{
		"مطعم وشاورما المهندس",
		"سندويش شاورما دجاج × 2 = 3.30 د.أ",
		"وجبة شاورما عادي × 1 = 4.25 د.أ",
		"المجموع: 7.55 د.أ",
		"نقطة الاستلام: بوابة الجامعة الرئيسية",
		o.Ref,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}

func TestOrderRef(t *testing.T) {
	o := testOrder()
	if len(o.Ref) != 8 {
		t.Errorf("ref length = %d, want 8", len(o.Ref))
	}
	if o.Ref != strings.ToUpper(o.Ref) {
		t.Errorf("ref not uppercase: %s", o.Ref)
	}
	if o.Ref == testOrder().Ref {
		t.Error("two orders got the same ref")
	}
}

func TestWhatsAppLink(t *testing.T) {
	o := testOrder()
	link := o.WhatsAppLink()

	if !strings.HasPrefix(link, "https://wa.me/962791234567?text=") {
		t.Fatalf("link = %s", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	text := u.Query().Get("text")
	if text != o.Summary() {
		t.Errorf("decoded text does not round-trip to the summary:\n%s", text)
	}
}
