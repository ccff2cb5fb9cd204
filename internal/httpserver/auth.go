package httpserver

import (
	"errors"
	"net/http"

	"timepiece-store/internal/domain"
	userrepo "timepiece-store/internal/repository/user"
	"timepiece-store/internal/service/auth"

	"github.com/gin-gonic/gin"
)

func (h *handlers) signup(c *gin.Context) {
	var in auth.SignupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	u, err := h.deps.Auth.Signup(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, userrepo.ErrUsernameTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Like the original flow, signup does not log the user in; the client
	// is expected to follow up with a login call.
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

func (h *handlers) login(c *gin.Context) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	u, err := h.deps.Auth.Login(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Printf("login: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if err := h.deps.Sessions.SetUserID(c.Request, c.Writer, u.ID); err != nil {
		h.logger.Printf("set session user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

func (h *handlers) logout(c *gin.Context) {
	if err := h.deps.Sessions.ClearUser(c.Request, c.Writer); err != nil {
		h.logger.Printf("clear session user: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *handlers) account(c *gin.Context) {
	uid := h.deps.Sessions.UserID(c.Request)
	if uid == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	orders, err := h.deps.Orders.ListByUser(c.Request.Context(), *uid)
	if err != nil {
		h.logger.Printf("list orders for user %d: %v", *uid, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}
