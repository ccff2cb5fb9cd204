package httpserver

import (
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/gin-gonic/gin"
)

// telegramWebhook accepts the platform's push payloads. The response is
// always {"ok":true}: Telegram retries delivery indefinitely on anything
// else, so malformed or unhandled updates are acknowledged and dropped.
func (h *handlers) telegramWebhook(c *gin.Context) {
	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err == nil {
		h.deps.Webhook.HandleUpdate(c.Request.Context(), update)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
