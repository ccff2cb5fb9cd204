package notifier

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"timepiece-store/internal/domain"
	"timepiece-store/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// mediaGroupLimit is the Telegram API cap on photos per sendMediaGroup call.
const mediaGroupLimit = 10

// Notifier relays new orders to the fulfilment chat: one text message with a
// confirm/decline keyboard, then the product photos as threaded replies.
// Delivery is at-most-once; nothing is recorded locally about success.
type Notifier struct {
	text      telegram.API
	media     telegram.API
	chatID    int64
	mediaRoot string
	logger    *log.Logger
}

func New(textAPI, mediaAPI telegram.API, chatID int64, mediaRoot string, logger *log.Logger) *Notifier {
	return &Notifier{
		text:      textAPI,
		media:     mediaAPI,
		chatID:    chatID,
		mediaRoot: mediaRoot,
		logger:    logger,
	}
}

// OrderCreated sends the order summary and photos. It is a silent no-op when
// the bot token or chat id is unconfigured.
func (n *Notifier) OrderCreated(ctx context.Context, ord *domain.Order) error {
	if n.text == nil || n.chatID == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(n.chatID, renderOrder(ord))
	msg.ReplyMarkup = orderKeyboard(ord.ID)

	sent, err := n.text.Send(msg)
	if err != nil {
		return fmt.Errorf("send order message: %w", err)
	}

	n.sendPhotos(ord, sent.MessageID)
	return nil
}

// sendPhotos uploads one photo per item that has an image, batched at the
// API limit, each batch replying to the summary message so the chat renders
// the order as one unit. Batch failures are logged and skipped.
func (n *Notifier) sendPhotos(ord *domain.Order, replyTo int) {
	if n.media == nil {
		return
	}

	var media []interface{}
	var handles []*os.File
	defer func() {
		for _, f := range handles {
			f.Close()
		}
	}()

	for _, it := range ord.Items {
		if it.WatchImage == "" {
			continue
		}
		f, err := os.Open(filepath.Join(n.mediaRoot, it.WatchImage))
		if err != nil {
			n.logger.Printf("open photo for watch %d: %v", it.WatchID, err)
			continue
		}
		handles = append(handles, f)

		photo := tgbotapi.NewInputMediaPhoto(tgbotapi.FileReader{
			Name:   filepath.Base(it.WatchImage),
			Reader: f,
		})
		photo.Caption = fmt.Sprintf("%s\n%d pcs × %d %s", it.WatchName, it.Quantity, it.Price, ord.Currency)
		media = append(media, photo)
	}

	for start := 0; start < len(media); start += mediaGroupLimit {
		end := start + mediaGroupLimit
		if end > len(media) {
			end = len(media)
		}
		group := tgbotapi.NewMediaGroup(n.chatID, media[start:end])
		group.ReplyToMessageID = replyTo
		if _, err := n.media.SendMediaGroup(group); err != nil {
			n.logger.Printf("send media group for order %d: %v", ord.ID, err)
		}
	}
}

func orderKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm", fmt.Sprintf("deliver:%d", orderID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Decline", fmt.Sprintf("cancel:%d", orderID)),
		),
	)
}

func renderOrder(ord *domain.Order) string {
	lines := []string{
		fmt.Sprintf("🧾 New order #%d", ord.ID),
		fmt.Sprintf("Status: %s", ord.Status.Display()),
		fmt.Sprintf("Created: %s", ord.CreatedAt.Format("2006-01-02 15:04")),
		fmt.Sprintf("Phone: %s", ord.Phone),
		fmt.Sprintf("Address: %s", ord.Location),
	}
	if ord.Latitude != nil && ord.Longitude != nil {
		lat := strconv.FormatFloat(*ord.Latitude, 'f', -1, 64)
		lon := strconv.FormatFloat(*ord.Longitude, 'f', -1, 64)
		lines = append(lines,
			fmt.Sprintf("Coordinates: %s, %s", lat, lon),
			fmt.Sprintf("Map: https://www.google.com/maps?q=%s,%s", lat, lon),
		)
	}
	lines = append(lines,
		fmt.Sprintf("Total: %d %s", ord.TotalAmount, ord.Currency),
		"",
		"Items:",
	)
	for _, it := range ord.Items {
		lines = append(lines, fmt.Sprintf("• %s — %d pcs × %d %s", it.WatchName, it.Quantity, it.Price, ord.Currency))
	}
	return strings.Join(lines, "\n")
}
