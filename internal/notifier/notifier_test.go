package notifier

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"timepiece-store/internal/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type stubAPI struct {
	sent      []tgbotapi.Chattable
	sendErr   error
	messageID int
	groups    []tgbotapi.MediaGroupConfig
	groupErr  error
}

func (s *stubAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	s.sent = append(s.sent, c)
	if s.sendErr != nil {
		return tgbotapi.Message{}, s.sendErr
	}
	return tgbotapi.Message{MessageID: s.messageID}, nil
}

func (s *stubAPI) SendMediaGroup(cfg tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error) {
	s.groups = append(s.groups, cfg)
	return nil, s.groupErr
}

func (s *stubAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func testOrder() *domain.Order {
	lat, lon := 41.311, 69.28
	return &domain.Order{
		ID:          12,
		Location:    "Tashkent, Chilonzor 5",
		Phone:       "+998901234567",
		Latitude:    &lat,
		Longitude:   &lon,
		Status:      domain.StatusWaiting,
		TotalAmount: 4_800_000,
		Currency:    "UZS",
		CreatedAt:   time.Date(2026, 3, 14, 15, 9, 0, 0, time.UTC),
		Items: []domain.OrderItem{
			{WatchID: 1, WatchName: "Meridian Chrono 42", Quantity: 1, Price: 4_800_000},
		},
	}
}

func TestOrderCreatedUnconfiguredIsNoop(t *testing.T) {
	n := New(nil, nil, 0, "", testLogger())
	if err := n.OrderCreated(context.Background(), testOrder()); err != nil {
		t.Fatalf("unconfigured notifier must be a silent no-op, got %v", err)
	}
}

func TestOrderCreatedSendsTextWithKeyboard(t *testing.T) {
	api := &stubAPI{messageID: 99}
	n := New(api, api, 555, t.TempDir(), testLogger())

	if err := n.OrderCreated(context.Background(), testOrder()); err != nil {
		t.Fatalf("OrderCreated: %v", err)
	}
	if len(api.sent) != 1 {
		t.Fatalf("expected exactly one text message, got %d", len(api.sent))
	}

	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("expected MessageConfig, got %T", api.sent[0])
	}
	if msg.ChatID != 555 {
		t.Errorf("expected chat 555, got %d", msg.ChatID)
	}
	for _, want := range []string{"New order #12", "+998901234567", "Tashkent, Chilonzor 5", "4800000 UZS", "Meridian Chrono 42"} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("message text missing %q:\n%s", want, msg.Text)
		}
	}

	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok {
		t.Fatalf("expected inline keyboard, got %T", msg.ReplyMarkup)
	}
	if len(kb.InlineKeyboard) != 1 || len(kb.InlineKeyboard[0]) != 2 {
		t.Fatalf("expected one row with two buttons, got %+v", kb.InlineKeyboard)
	}
	if got := *kb.InlineKeyboard[0][0].CallbackData; got != "deliver:12" {
		t.Errorf("confirm callback = %q, want deliver:12", got)
	}
	if got := *kb.InlineKeyboard[0][1].CallbackData; got != "cancel:12" {
		t.Errorf("decline callback = %q, want cancel:12", got)
	}

	// The only item has no image, so no media group goes out.
	if len(api.groups) != 0 {
		t.Fatalf("expected no media groups, got %d", len(api.groups))
	}
}

func TestOrderCreatedBatchesPhotos(t *testing.T) {
	mediaRoot := t.TempDir()

	ord := testOrder()
	ord.Items = nil
	for i := 0; i < 23; i++ {
		name := fmt.Sprintf("watch%02d.jpg", i)
		if err := os.WriteFile(filepath.Join(mediaRoot, name), []byte("jpeg"), 0o644); err != nil {
			t.Fatalf("write photo: %v", err)
		}
		ord.Items = append(ord.Items, domain.OrderItem{
			WatchID:    int64(i + 1),
			WatchName:  fmt.Sprintf("Watch %d", i+1),
			WatchImage: name,
			Quantity:   1,
			Price:      100,
		})
	}

	api := &stubAPI{messageID: 42}
	n := New(api, api, 555, mediaRoot, testLogger())

	if err := n.OrderCreated(context.Background(), ord); err != nil {
		t.Fatalf("OrderCreated: %v", err)
	}

	if len(api.groups) != 3 {
		t.Fatalf("expected 3 media groups for 23 photos, got %d", len(api.groups))
	}
	for i, want := range []int{10, 10, 3} {
		if got := len(api.groups[i].Media); got != want {
			t.Errorf("group %d size = %d, want %d", i, got, want)
		}
		if api.groups[i].ReplyToMessageID != 42 {
			t.Errorf("group %d must reply to the summary message, got %d", i, api.groups[i].ReplyToMessageID)
		}
	}
}

func TestOrderCreatedSkipsMissingPhotos(t *testing.T) {
	mediaRoot := t.TempDir()
	if err := os.WriteFile(filepath.Join(mediaRoot, "present.jpg"), []byte("jpeg"), 0o644); err != nil {
		t.Fatalf("write photo: %v", err)
	}

	ord := testOrder()
	ord.Items = []domain.OrderItem{
		{WatchID: 1, WatchName: "A", WatchImage: "present.jpg", Quantity: 1, Price: 1},
		{WatchID: 2, WatchName: "B", WatchImage: "missing.jpg", Quantity: 1, Price: 1},
	}

	api := &stubAPI{messageID: 7}
	n := New(api, api, 555, mediaRoot, testLogger())

	if err := n.OrderCreated(context.Background(), ord); err != nil {
		t.Fatalf("OrderCreated: %v", err)
	}
	if len(api.groups) != 1 {
		t.Fatalf("expected one media group, got %d", len(api.groups))
	}
	if got := len(api.groups[0].Media); got != 1 {
		t.Fatalf("unopenable photo must be skipped, got %d media entries", got)
	}
}

func TestOrderCreatedReturnsSendError(t *testing.T) {
	api := &stubAPI{sendErr: errors.New("telegram down")}
	n := New(api, api, 555, t.TempDir(), testLogger())

	if err := n.OrderCreated(context.Background(), testOrder()); err == nil {
		t.Fatalf("expected the send error to surface to the caller for logging")
	}
	if len(api.groups) != 0 {
		t.Fatalf("no photos may be sent when the summary message failed")
	}
}
