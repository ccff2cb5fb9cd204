package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"timepiece-store/internal/domain"
	"timepiece-store/internal/session"

	"github.com/gin-gonic/gin"
)

type cartLineView struct {
	WatchID      int64  `json:"watch_id"`
	Name         string `json:"name"`
	ImageURL     string `json:"image_url"`
	Quantity     int    `json:"quantity"`
	Price        int64  `json:"price"`
	CurrentPrice int64  `json:"current_price"`
	LineTotal    int64  `json:"line_total"`
}

type checkoutForm struct {
	Location  string `json:"location"`
	Phone     string `json:"phone"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

type cartView struct {
	Lines []cartLineView `json:"lines"`
	Count int            `json:"count"`
	Total int64          `json:"total"`
	Form  *checkoutForm  `json:"form,omitempty"`
}

func (h *handlers) cartAdd(c *gin.Context) {
	watchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watch id"})
		return
	}

	w, err := h.deps.Watches.GetByID(c.Request.Context(), watchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "watch not found"})
			return
		}
		h.logger.Printf("get watch %d: %v", watchID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	quantity, err := strconv.Atoi(c.DefaultPostForm("quantity", "1"))
	if err != nil {
		quantity = 1
	}
	replace := c.PostForm("update") == "1"

	cart := h.deps.Sessions.Cart(c.Request)
	cart.Add(w.ID, quantity, w.Price, replace)
	if err := h.deps.Sessions.SaveCart(c.Request, c.Writer, cart); err != nil {
		h.logger.Printf("save cart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.renderCart(c, cart)
}

func (h *handlers) cartRemove(c *gin.Context) {
	watchID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid watch id"})
		return
	}

	cart := h.deps.Sessions.Cart(c.Request)
	cart.Remove(watchID)
	if err := h.deps.Sessions.SaveCart(c.Request, c.Writer, cart); err != nil {
		h.logger.Printf("save cart: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	h.renderCart(c, cart)
}

func (h *handlers) cartDetail(c *gin.Context) {
	cart := h.deps.Sessions.Cart(c.Request)
	h.renderCart(c, cart)
}

// renderCart resolves lines against live watch records for display. The
// prices frozen at add time stay authoritative for totals and checkout.
func (h *handlers) renderCart(c *gin.Context, cart *session.Cart) {
	lines := cart.Lines()
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.WatchID)
	}

	watches, err := h.deps.Watches.GetByIDs(c.Request.Context(), ids)
	if err != nil {
		h.logger.Printf("resolve cart watches: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	view := cartView{
		Lines: make([]cartLineView, 0, len(lines)),
		Count: cart.Len(),
		Total: cart.Total(),
	}
	for _, l := range lines {
		lv := cartLineView{
			WatchID:   l.WatchID,
			Quantity:  l.Quantity,
			Price:     l.Price,
			LineTotal: int64(l.Quantity) * l.Price,
		}
		if w, ok := watches[l.WatchID]; ok {
			lv.Name = w.Name
			lv.ImageURL = h.deps.Catalog.ImageURL(w.Image)
			lv.CurrentPrice = w.Price
		}
		view.Lines = append(view.Lines, lv)
	}

	// Prefill the delivery form for signed-in users.
	if uid := h.deps.Sessions.UserID(c.Request); uid != nil {
		if u, err := h.deps.Users.GetByID(c.Request.Context(), *uid); err == nil {
			view.Form = &checkoutForm{Location: u.Location, Phone: u.Phone}
		}
	}

	c.JSON(http.StatusOK, view)
}
