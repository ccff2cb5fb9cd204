package httpserver

import (
	"errors"
	"net/http"

	"timepiece-store/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

func (h *handlers) checkout(c *gin.Context) {
	cart := h.deps.Sessions.Cart(c.Request)

	form := checkoutForm{
		Location:  c.PostForm("location"),
		Phone:     c.PostForm("phone"),
		Latitude:  c.PostForm("latitude"),
		Longitude: c.PostForm("longitude"),
	}

	ord, fieldErrs, err := h.deps.Checkout.Submit(c.Request.Context(), checkout.SubmitInput{
		UserID:    h.deps.Sessions.UserID(c.Request),
		Lines:     cart.Lines(),
		Location:  form.Location,
		Phone:     form.Phone,
		Latitude:  form.Latitude,
		Longitude: form.Longitude,
	})
	if err != nil {
		h.logger.Printf("checkout: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if len(fieldErrs) > 0 {
		// Not a hard failure: the form re-renders with every field-level
		// message and the submitted values echoed back.
		c.JSON(http.StatusOK, gin.H{"errors": fieldErrs, "form": form})
		return
	}

	// The notifier already ran inside Submit; only now is the cart dropped,
	// so a failed notification never silently loses cart state.
	cart.Clear()
	if err := h.deps.Sessions.SaveCart(c.Request, c.Writer, cart); err != nil {
		h.logger.Printf("clear cart: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order_id": ord.ID})
}

func (h *handlers) apiCreateOrder(c *gin.Context) {
	var in checkout.APIInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	ord, err := h.deps.Checkout.CreateFromPayload(c.Request.Context(), in, h.deps.Sessions.UserID(c.Request))
	if err != nil {
		if errors.Is(err, checkout.ErrMissingFields) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
			return
		}
		h.logger.Printf("api create order: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "order_id": ord.ID})
}

// paymentCallback acknowledges the payment provider; the flow itself is not
// implemented yet.
func (h *handlers) paymentCallback(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"result": "ok"})
}
