package telegram

import (
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Text/control calls finish fast; media uploads get a longer budget. Both are
// hard client timeouts, there are no retries anywhere in the relay.
const (
	textTimeout  = 10 * time.Second
	mediaTimeout = 30 * time.Second
)

// API is the subset of bot methods the notifier and webhook handler use.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	SendMediaGroup(cfg tgbotapi.MediaGroupConfig) ([]tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// New returns one handle for text/control calls and one for media uploads.
// Both are nil when no token is configured, which downstream components treat
// as "relay disabled". The handles are built directly instead of through
// tgbotapi.NewBotAPI so startup never blocks on a getMe round-trip.
func New(token string) (textAPI, mediaAPI API) {
	if token == "" {
		return nil, nil
	}
	return newBot(token, textTimeout), newBot(token, mediaTimeout)
}

func newBot(token string, timeout time.Duration) *tgbotapi.BotAPI {
	bot := &tgbotapi.BotAPI{
		Token:  token,
		Client: &http.Client{Timeout: timeout},
		Buffer: 100,
	}
	bot.SetAPIEndpoint(tgbotapi.APIEndpoint)
	return bot
}
