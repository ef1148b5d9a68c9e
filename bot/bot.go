package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"baleafiya/catalog"
	"baleafiya/config"
	"baleafiya/services"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"
)

// Bot is the customer-facing chat surface: browse the catalog, fill a
// cart, pick a pickup point, and get the WhatsApp order link. All cart
// rules live in services.CartEngine; this layer only adds presentation
// policy (closed vendors and unavailable items are not offered).
type Bot struct {
	api     *tgbotapi.BotAPI
	catalog *catalog.Catalog
	engine  *services.CartEngine

	// live filter parameters per user, like the search box and
	// category tabs of a storefront
	userCategory map[int64]string
	userSearch   map[int64]string
	userFilterMu sync.RWMutex
}

func New(cfg *config.Config, cat *catalog.Catalog, engine *services.CartEngine) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		return nil, err
	}
	return &Bot{
		api:          api,
		catalog:      cat,
		engine:       engine,
		userCategory: make(map[int64]string),
		userSearch:   make(map[int64]string),
	}, nil
}

func (b *Bot) setBotCommands() error {
	cfg := tgbotapi.SetMyCommandsConfig{
		Commands: []tgbotapi.BotCommand{
			{Command: "start", Description: "القائمة الرئيسية"},
			{Command: "cart", Description: "سلة المشتريات"},
			{Command: "pickup", Description: "نقطة الاستلام"},
		},
	}
	_, err := b.api.Request(cfg)
	return err
}

func (b *Bot) Start() {
	_ = b.setBotCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.CallbackQuery != nil {
			b.handleCallback(update.CallbackQuery)
			continue
		}
		if update.Message == nil {
			continue
		}
		msg := update.Message
		userID := msg.From.ID
		text := strings.TrimSpace(msg.Text)

		switch {
		case text == "/start":
			b.resetFilter(userID)
			b.sendVendorList(msg.Chat.ID, userID)
		case text == "/cart":
			b.sendCart(msg.Chat.ID, userID)
		case text == "/pickup":
			b.sendPickupSelector(msg.Chat.ID, userID)
		case text != "":
			// any plain text is a search query
			b.setSearch(userID, text)
			b.sendVendorList(msg.Chat.ID, userID)
		}
	}
}

func (b *Bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	userID := cq.From.ID
	data := cq.Data

	b.api.Request(tgbotapi.NewCallback(cq.ID, ""))
	ctx := context.Background()

	switch {
	case data == "home":
		b.resetFilter(userID)
		b.sendVendorList(chatID, userID)
	case data == "cart":
		b.sendCart(chatID, userID)
	case data == "pickup":
		b.sendPickupSelector(chatID, userID)
	case data == "clear":
		b.engine.Clear(ctx, userID)
		b.send(chatID, "تم تفريغ السلة.")
	case data == "checkout":
		b.sendCheckout(chatID, userID)
	case strings.HasPrefix(data, "cat:"):
		b.setCategory(userID, strings.TrimPrefix(data, "cat:"))
		b.sendVendorList(chatID, userID)
	case strings.HasPrefix(data, "vendor:"):
		b.sendVendorMenu(chatID, strings.TrimPrefix(data, "vendor:"))
	case strings.HasPrefix(data, "add:"):
		parts := strings.SplitN(strings.TrimPrefix(data, "add:"), ":", 2)
		if len(parts) == 2 {
			b.addToCart(chatID, userID, parts[0], parts[1])
		}
	case strings.HasPrefix(data, "inc:"):
		b.bumpQuantity(ctx, userID, strings.TrimPrefix(data, "inc:"), +1)
		b.sendCart(chatID, userID)
	case strings.HasPrefix(data, "dec:"):
		b.bumpQuantity(ctx, userID, strings.TrimPrefix(data, "dec:"), -1)
		b.sendCart(chatID, userID)
	case strings.HasPrefix(data, "del:"):
		b.engine.RemoveItem(ctx, userID, strings.TrimPrefix(data, "del:"))
		b.sendCart(chatID, userID)
	case strings.HasPrefix(data, "pp:"):
		id := strings.TrimPrefix(data, "pp:")
		b.engine.SetPickupPoint(ctx, userID, id)
		if pp := b.catalog.PickupPointByID(id); pp != nil {
			b.send(chatID, "نقطة الاستلام: "+pp.Name)
		}
	}
}

// bumpQuantity applies a +1/-1 from the cart view buttons. The engine's
// UpdateQuantity takes an absolute value, so read the current one first.
func (b *Bot) bumpQuantity(ctx context.Context, userID int64, itemID string, delta int) {
	for _, l := range b.engine.Lines(ctx, userID) {
		if l.MenuItemID == itemID {
			b.engine.UpdateQuantity(ctx, userID, itemID, l.Qty+delta)
			return
		}
	}
}

func (b *Bot) resetFilter(userID int64) {
	b.userFilterMu.Lock()
	defer b.userFilterMu.Unlock()
	b.userCategory[userID] = services.CategoryAll
	b.userSearch[userID] = ""
}

func (b *Bot) setCategory(userID int64, category string) {
	b.userFilterMu.Lock()
	defer b.userFilterMu.Unlock()
	b.userCategory[userID] = category
}

func (b *Bot) setSearch(userID int64, q string) {
	b.userFilterMu.Lock()
	defer b.userFilterMu.Unlock()
	b.userSearch[userID] = q
}

func (b *Bot) filterParams(userID int64) (search, category string) {
	b.userFilterMu.RLock()
	defer b.userFilterMu.RUnlock()
	search = b.userSearch[userID]
	category = b.userCategory[userID]
	if category == "" {
		category = services.CategoryAll
	}
	return search, category
}

func (b *Bot) categoryKeyboardRows() [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, cat := range b.catalog.Categories {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(cat, "cat:"+cat))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func (b *Bot) sendVendorList(chatID int64, userID int64) {
	search, category := b.filterParams(userID)
	vendors := services.FilterVendors(b.catalog.Vendors, search, category)

	text := "أهلاً وسهلاً 👋\nشو نفسك تاكل اليوم؟"
	if search != "" {
		text = fmt.Sprintf("نتائج البحث عن \"%s\":", search)
	}
	if len(vendors) == 0 {
		text = "ما لقينا نتائج تناسب بحثك. جرّب كلمات أقل أو غيّر الفلاتر."
	}

	rows := b.categoryKeyboardRows()
	for _, v := range vendors {
		label := fmt.Sprintf("%s ⭐%.1f (%s)", v.Name, v.Rating, v.DeliveryTime)
		if !v.IsOpen {
			label = v.Name + " (مغلق)"
		} else if v.DiscountPercent > 0 {
			label = fmt.Sprintf("%s ⭐%.1f — خصم %d%%", v.Name, v.Rating, v.DiscountPercent)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "vendor:"+v.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🛒 السلة", "cart"),
		tgbotapi.NewInlineKeyboardButtonData("📍 نقطة الاستلام", "pickup"),
	))

	b.sendWithInline(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) sendVendorMenu(chatID int64, vendorID string) {
	v := b.catalog.VendorByID(vendorID)
	if v == nil {
		b.send(chatID, "المطعم غير موجود.")
		return
	}
	if !v.IsOpen {
		// closed vendors are browsable but nothing can be added
		b.send(chatID, v.Name+" مغلق حالياً.")
		return
	}

	text := fmt.Sprintf("📋 %s ⭐%.1f\n🕐 %s", v.Name, v.Rating, v.DeliveryTime)
	if v.Description != "" {
		text += "\n" + v.Description
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, item := range v.MenuItems {
		if !item.IsAvailable {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s — %s د.أ", item.Name, item.Price.StringFixed(2)),
				"add:"+v.ID+":"+item.ID,
			),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🛒 السلة", "cart")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⬅️ رجوع", "home")),
	)

	b.sendWithInline(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) addToCart(chatID int64, userID int64, vendorID, itemID string) {
	v := b.catalog.VendorByID(vendorID)
	item := b.catalog.MenuItem(vendorID, itemID)
	if v == nil || item == nil {
		b.send(chatID, "الصنف غير موجود.")
		return
	}
	if !v.IsOpen || !item.IsAvailable {
		b.send(chatID, "هذا الصنف غير متوفر حالياً.")
		return
	}

	ctx := context.Background()
	outcome := b.engine.AddItem(ctx, userID, *item, v.ID, v.Name)

	switch outcome {
	case services.OutcomeReplaced:
		b.send(chatID, fmt.Sprintf("تم تفريغ السلة السابقة وبدء طلب جديد من %s.\nأُضيف: %s", v.Name, item.Name))
	default:
		b.send(chatID, fmt.Sprintf("أُضيف: %s (المجموع: %s د.أ، %d صنف)",
			item.Name, b.engine.Total(ctx, userID).StringFixed(2), b.engine.ItemCount(ctx, userID)))
	}
}

func (b *Bot) sendCart(chatID int64, userID int64) {
	ctx := context.Background()
	lines := b.engine.Lines(ctx, userID)
	if len(lines) == 0 {
		b.sendWithInline(chatID, "سلتك فارغة.", tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⬅️ رجوع", "home")),
		))
		return
	}

	text := fmt.Sprintf("🛒 طلبك من %s:\n\n", lines[0].VendorName)
	for _, l := range lines {
		lineTotal := l.Price.Mul(decimal.NewFromInt(int64(l.Qty)))
		text += fmt.Sprintf("• %s × %d = %s د.أ\n", l.Name, l.Qty, lineTotal.StringFixed(2))
	}
	text += fmt.Sprintf("\nالمجموع: %s د.أ", b.engine.Total(ctx, userID).StringFixed(2))
	if pp := b.catalog.PickupPointByID(b.engine.PickupPointID(ctx, userID)); pp != nil {
		text += "\nنقطة الاستلام: " + pp.Name
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, l := range lines {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖", "dec:"+l.MenuItemID),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s ×%d", l.Name, l.Qty), "del:"+l.MenuItemID),
			tgbotapi.NewInlineKeyboardButtonData("➕", "inc:"+l.MenuItemID),
		))
	}
	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ إتمام الطلب", "checkout"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📍 نقطة الاستلام", "pickup"),
			tgbotapi.NewInlineKeyboardButtonData("🗑 تفريغ", "clear"),
		),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("⬅️ رجوع", "home")),
	)

	b.sendWithInline(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) sendPickupSelector(chatID int64, userID int64) {
	ctx := context.Background()
	selected := b.engine.PickupPointID(ctx, userID)

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, pp := range b.catalog.PickupPoints {
		label := pp.Name
		if pp.ID == selected {
			label = "✅ " + label
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, "pp:"+pp.ID),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ رجوع", "home"),
	))

	b.sendWithInline(chatID, "اختر نقطة الاستلام:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// sendCheckout hands the finalized cart off to WhatsApp: the order
// summary is prefilled in a chat with the vendor via a deep link.
func (b *Bot) sendCheckout(chatID int64, userID int64) {
	ctx := context.Background()
	lines := b.engine.Lines(ctx, userID)
	if len(lines) == 0 {
		b.send(chatID, "سلتك فارغة.")
		return
	}

	vendor := b.catalog.VendorByID(lines[0].VendorID)
	pickup := b.catalog.PickupPointByID(b.engine.PickupPointID(ctx, userID))
	if pickup == nil {
		b.sendPickupSelector(chatID, userID)
		return
	}

	order := services.NewOrder(lines, vendor, *pickup, b.engine.Total(ctx, userID))
	kb := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("📲 إرسال الطلب عبر واتساب", order.WhatsAppLink()),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ رجوع", "cart"),
		),
	)
	b.sendWithInline(chatID, order.Summary(), kb)
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}

func (b *Bot) sendWithInline(chatID int64, text string, kb tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("send error: %v", err)
	}
}
