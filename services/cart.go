package services

import (
	"context"
	"log"
	"sync"

	"baleafiya/models"

	"github.com/shopspring/decimal"
)

// AddOutcome tags what AddItem did, so the surface layer can tell a
// normal add apart from the cart being dropped on a vendor switch.
type AddOutcome int

const (
	// OutcomeAdded means a new line was appended.
	OutcomeAdded AddOutcome = iota
	// OutcomeMerged means the quantity of an existing line was bumped.
	OutcomeMerged
	// OutcomeReplaced means the previous cart held another vendor and
	// was replaced wholesale with the new line.
	OutcomeReplaced
)

// CartEngine is the single writer for all cart state. A cart holds lines
// from at most one vendor; adding an item from a different vendor
// replaces the whole cart. Every mutation is written through to the
// store; a failed write is logged and ignored since the in-memory cart
// stays authoritative for the session.
type CartEngine struct {
	store CartStore

	mu    sync.Mutex
	carts map[int64]*models.CartSnapshot
}

func NewCartEngine(store CartStore) *CartEngine {
	return &CartEngine{
		store: store,
		carts: make(map[int64]*models.CartSnapshot),
	}
}

// cart returns the in-memory cart for userID, hydrating it from the
// store on first access. An absent or unreadable snapshot becomes an
// empty cart with the default pickup point. Caller must hold e.mu.
func (e *CartEngine) cart(ctx context.Context, userID int64) *models.CartSnapshot {
	if c, ok := e.carts[userID]; ok {
		return c
	}
	c := &models.CartSnapshot{PickupPointID: models.DefaultPickupPointID}
	snap, err := e.store.Load(ctx, userID)
	if err != nil {
		log.Printf("cart: load user %d: %v (starting empty)", userID, err)
	} else if snap != nil {
		c.Lines = snap.Lines
		if snap.PickupPointID != "" {
			c.PickupPointID = snap.PickupPointID
		}
	}
	e.carts[userID] = c
	return c
}

// persist writes the cart through to the store. Caller must hold e.mu.
func (e *CartEngine) persist(ctx context.Context, userID int64, c *models.CartSnapshot) {
	if err := e.store.Save(ctx, userID, c); err != nil {
		log.Printf("cart: save user %d: %v", userID, err)
	}
}

// AddItem puts one unit of the given menu item into the user's cart.
// If the cart already holds another vendor, it is replaced with a
// single line for this item; if the item is already in the cart its
// quantity is bumped; otherwise a new line is appended. Never fails:
// availability and open-hours policy belong to the calling surface.
func (e *CartEngine) AddItem(ctx context.Context, userID int64, item models.MenuItem, vendorID, vendorName string) AddOutcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.cart(ctx, userID)
	line := models.CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		Price:      item.Price,
		Qty:        1,
		VendorID:   vendorID,
		VendorName: vendorName,
	}

	outcome := OutcomeAdded
	if len(c.Lines) > 0 && c.Lines[0].VendorID != vendorID {
		c.Lines = []models.CartLine{line}
		outcome = OutcomeReplaced
	} else {
		merged := false
		for i := range c.Lines {
			if c.Lines[i].MenuItemID == item.ID {
				c.Lines[i].Qty++
				merged = true
				break
			}
		}
		if merged {
			outcome = OutcomeMerged
		} else {
			c.Lines = append(c.Lines, line)
		}
	}

	e.persist(ctx, userID, c)
	return outcome
}

// RemoveItem drops the line with the given menu item id. Unknown ids
// are a no-op.
func (e *CartEngine) RemoveItem(ctx context.Context, userID int64, menuItemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.cart(ctx, userID)
	kept := c.Lines[:0]
	for _, l := range c.Lines {
		if l.MenuItemID != menuItemID {
			kept = append(kept, l)
		}
	}
	c.Lines = kept
	e.persist(ctx, userID, c)
}

// UpdateQuantity sets the line's quantity to qty exactly. A quantity of
// zero or below removes the line. Unknown ids are a no-op.
func (e *CartEngine) UpdateQuantity(ctx context.Context, userID int64, menuItemID string, qty int) {
	if qty <= 0 {
		e.RemoveItem(ctx, userID, menuItemID)
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.cart(ctx, userID)
	for i := range c.Lines {
		if c.Lines[i].MenuItemID == menuItemID {
			c.Lines[i].Qty = qty
			break
		}
	}
	e.persist(ctx, userID, c)
}

// Clear empties the cart. The pickup point selection is kept.
func (e *CartEngine) Clear(ctx context.Context, userID int64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.cart(ctx, userID)
	c.Lines = nil
	e.persist(ctx, userID, c)
}

// SetPickupPoint records the selected pickup point id as-is; the id is
// not checked against the reference list here.
func (e *CartEngine) SetPickupPoint(ctx context.Context, userID int64, id string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.cart(ctx, userID)
	c.PickupPointID = id
	e.persist(ctx, userID, c)
}

// Lines returns a copy of the cart's lines in insertion order.
func (e *CartEngine) Lines(ctx context.Context, userID int64) []models.CartLine {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]models.CartLine(nil), e.cart(ctx, userID).Lines...)
}

// PickupPointID returns the selected pickup point id.
func (e *CartEngine) PickupPointID(ctx context.Context, userID int64) string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart(ctx, userID).PickupPointID
}

// Total returns the exact sum of price × quantity over all lines.
func (e *CartEngine) Total(ctx context.Context, userID int64) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := decimal.Zero
	for _, l := range e.cart(ctx, userID).Lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Qty))))
	}
	return total
}

// ItemCount returns the sum of all line quantities, for the badge.
func (e *CartEngine) ItemCount(ctx context.Context, userID int64) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	n := 0
	for _, l := range e.cart(ctx, userID).Lines {
		n += l.Qty
	}
	return n
}

// CurrentVendorID returns the vendor id the cart is bound to, or ""
// when the cart is empty.
func (e *CartEngine) CurrentVendorID(ctx context.Context, userID int64) string {
	e.mu.Lock()
	defer e.mu.Unlock()

	c := e.cart(ctx, userID)
	if len(c.Lines) == 0 {
		return ""
	}
	return c.Lines[0].VendorID
}
