package services

import (
	"fmt"
	"net/url"
	"strings"

	"baleafiya/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a finalized cart ready to be handed off to the vendor over
// WhatsApp. There is no backend order processing: building the summary
// message and the deep link is where this system's job ends.
type Order struct {
	Ref         string
	Lines       []models.CartLine
	VendorName  string
	VendorPhone string
	PickupPoint models.PickupPoint
	Total       decimal.Decimal
}

// NewOrder assembles an Order from the finalized cart contents. The
// reference is a short random code the vendor can read back to the
// customer.
func NewOrder(lines []models.CartLine, vendor *models.Vendor, pickup models.PickupPoint, total decimal.Decimal) Order {
	o := Order{
		Ref:         strings.ToUpper(uuid.NewString()[:8]),
		Lines:       lines,
		PickupPoint: pickup,
		Total:       total,
	}
	if len(lines) > 0 {
		o.VendorName = lines[0].VendorName
	}
	if vendor != nil {
		o.VendorPhone = vendor.Phone
		o.VendorName = vendor.Name
	}
	return o
}

// Summary renders the human-readable order message sent to the vendor.
func (o Order) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "مرحبا، أريد طلب من %s:\n\n", o.VendorName)
	for _, l := range o.Lines {
		lineTotal := l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
		fmt.Fprintf(&b, "• %s × %d = %s د.أ\n", l.Name, l.Qty, lineTotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nالمجموع: %s د.أ\n", o.Total.StringFixed(2))
	fmt.Fprintf(&b, "نقطة الاستلام: %s\n", o.PickupPoint.Name)
	fmt.Fprintf(&b, "رقم الطلب: %s\n\n", o.Ref)
	b.WriteString("شكراً لكم")
	return b.String()
}

// WhatsAppLink builds the wa.me deep link that opens a chat with the
// vendor with the summary prefilled.
func (o Order) WhatsAppLink() string {
	phone := strings.TrimPrefix(o.VendorPhone, "+")
	return "https://wa.me/" + phone + "?text=" + url.QueryEscape(o.Summary())
}
