package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *handlers) heroWatch(c *gin.Context) {
	item, err := h.deps.Catalog.Hero(c.Request.Context())
	if err != nil {
		h.logger.Printf("hero watch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if item == nil {
		c.JSON(http.StatusOK, gin.H{"item": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

func (h *handlers) featuredWatches(c *gin.Context) {
	items, err := h.deps.Catalog.Featured(c.Request.Context())
	if err != nil {
		h.logger.Printf("featured watches: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *handlers) allWatches(c *gin.Context) {
	items, err := h.deps.Catalog.All(c.Request.Context())
	if err != nil {
		h.logger.Printf("list watches: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
