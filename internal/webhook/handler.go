package webhook

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"timepiece-store/internal/domain"
	orderrepo "timepiece-store/internal/repository/order"
	"timepiece-store/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// archiveLimit caps how many orders one archive reply renders.
const archiveLimit = 50

type orderStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int64, status domain.Status) error
	ListSince(ctx context.Context, since time.Time, limit int) ([]domain.Order, error)
}

// Handler consumes Telegram webhook pushes: operator button presses that
// resolve orders, and the /orders archive command. The HTTP layer always
// acknowledges the platform with 200 regardless of what happens here,
// otherwise Telegram retries delivery indefinitely.
type Handler struct {
	orders   orderStore
	api      telegram.API
	adminIDs []int64
	now      func() time.Time
	logger   *log.Logger
}

func New(orders orderrepo.Repository, api telegram.API, adminIDs []int64, logger *log.Logger) *Handler {
	return &Handler{
		orders:   orders,
		api:      api,
		adminIDs: adminIDs,
		now:      time.Now,
		logger:   logger,
	}
}

// HandleUpdate dispatches one webhook push. Unknown payload shapes and
// non-allow-listed senders are ignored without error.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	if h.api == nil {
		return
	}
	if !h.allowed(update) {
		return
	}

	switch {
	case update.CallbackQuery != nil:
		h.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.Text != "":
		h.handleCommand(update.Message)
	}
}

// allowed gates on the operator allow-list. An empty list admits every
// caller; that is documented behavior, not an oversight.
func (h *Handler) allowed(update tgbotapi.Update) bool {
	if len(h.adminIDs) == 0 {
		return true
	}
	var from *tgbotapi.User
	switch {
	case update.Message != nil:
		from = update.Message.From
	case update.CallbackQuery != nil:
		from = update.CallbackQuery.From
	}
	if from == nil {
		return false
	}
	for _, id := range h.adminIDs {
		if id == from.ID {
			return true
		}
	}
	return false
}

func (h *Handler) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	action, value, found := strings.Cut(cq.Data, ":")
	if !found {
		h.answer(cq.ID, "Unknown action")
		return
	}

	switch action {
	case "deliver", "cancel":
		h.resolveOrder(ctx, cq, action, value)
	case "orders":
		h.sendArchive(ctx, cq, value)
	default:
		h.answer(cq.ID, "Unknown action")
	}
}

// resolveOrder applies the operator's verdict to the order and strips the
// inline keyboard so further presses on the message have no buttons.
func (h *Handler) resolveOrder(ctx context.Context, cq *tgbotapi.CallbackQuery, action, value string) {
	orderID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		h.answer(cq.ID, "Order not found")
		return
	}
	if _, err := h.orders.GetByID(ctx, orderID); err != nil {
		h.answer(cq.ID, "Order not found")
		return
	}

	wanted := "delivered"
	if action == "cancel" {
		wanted = "cancelled"
	}

	var text string
	if status, ok := domain.ParseStatus(wanted); ok {
		if err := h.orders.UpdateStatus(ctx, orderID, status); err != nil {
			h.logger.Printf("update order %d status: %v", orderID, err)
			text = "❗ Could not update order status"
		} else if status == domain.StatusDelivered {
			text = "✅ Order confirmed (Delivered)"
		} else {
			text = "❌ Order cancelled"
		}
	} else {
		text = "❗ Status " + wanted + " not recognized"
	}

	h.answer(cq.ID, text)

	if cq.Message != nil {
		edit := tgbotapi.NewEditMessageReplyMarkup(
			cq.Message.Chat.ID,
			cq.Message.MessageID,
			tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
		)
		if _, err := h.api.Request(edit); err != nil {
			h.logger.Printf("strip keyboard for order %d: %v", orderID, err)
		}
	}
}

// sendArchive replies with the orders created in the trailing window, newest
// first, capped at archiveLimit rows.
func (h *Handler) sendArchive(ctx context.Context, cq *tgbotapi.CallbackQuery, period string) {
	var window time.Duration
	var title string
	switch period {
	case "hour":
		window = time.Hour
		title = "🕐 Orders from the last hour"
	case "day":
		window = 24 * time.Hour
		title = "📅 Orders from the last day"
	default:
		window = 7 * 24 * time.Hour
		title = "🗓 Orders from the last week"
	}

	orders, err := h.orders.ListSince(ctx, h.now().Add(-window), archiveLimit)
	if err != nil {
		h.logger.Printf("list orders archive: %v", err)
		h.answer(cq.ID, "❗ Could not load orders")
		return
	}

	var msg string
	if len(orders) == 0 {
		msg = title + "\n\nNo orders."
	} else {
		lines := []string{title, ""}
		for _, ord := range orders {
			lines = append(lines, renderArchiveRow(ord))
		}
		msg = strings.Join(lines, "\n")
	}

	if cq.Message != nil {
		if _, err := h.api.Send(tgbotapi.NewMessage(cq.Message.Chat.ID, msg)); err != nil {
			h.logger.Printf("send orders archive: %v", err)
		}
	}
	h.answer(cq.ID, "Done")
}

func (h *Handler) handleCommand(msg *tgbotapi.Message) {
	if strings.TrimSpace(msg.Text) != "/orders" {
		return
	}
	reply := tgbotapi.NewMessage(msg.Chat.ID, "📦 Order archive — pick a period:")
	reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🕐 Last hour", "orders:hour")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("📅 Last day", "orders:day")),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("🗓 Last week", "orders:week")),
	)
	if _, err := h.api.Send(reply); err != nil {
		h.logger.Printf("send archive menu: %v", err)
	}
}

func (h *Handler) answer(callbackID, text string) {
	if _, err := h.api.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		h.logger.Printf("answer callback: %v", err)
	}
}

func renderArchiveRow(ord domain.Order) string {
	goods := make([]string, 0, len(ord.Items))
	for _, it := range ord.Items {
		goods = append(goods, it.WatchName+" ("+strconv.Itoa(it.Quantity)+")")
	}
	goodsText := "—"
	if len(goods) > 0 {
		goodsText = strings.Join(goods, ", ")
	}
	return "#" + strconv.FormatInt(ord.ID, 10) +
		" | " + ord.CreatedAt.Format("02.01 15:04") +
		" | " + ord.Status.Display() +
		" | " + strconv.FormatInt(ord.TotalAmount, 10) + " " + ord.Currency +
		" | " + ord.Phone +
		" | Items: " + goodsText
}
