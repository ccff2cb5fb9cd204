package httpserver

import (
	"log"
	"net/http"

	"timepiece-store/internal/repository/order"
	"timepiece-store/internal/repository/user"
	"timepiece-store/internal/repository/watch"
	"timepiece-store/internal/service/auth"
	"timepiece-store/internal/service/catalog"
	"timepiece-store/internal/service/checkout"
	"timepiece-store/internal/session"
	"timepiece-store/internal/webhook"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps collects everything the route handlers need.
type Deps struct {
	Catalog     *catalog.Service
	Checkout    *checkout.Service
	Auth        *auth.Service
	Watches     watch.Repository
	Orders      order.Repository
	Users       user.Repository
	Sessions    *session.Store
	Webhook     *webhook.Handler
	MediaRoot   string
	CORSOrigins []string
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery(), requestIDMiddleware())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	// Telegram webhook pushes and the order API are POST-only; a wrong
	// method must be a 405, not gin's default 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Only POST allowed"})
	})

	h := &handlers{deps: deps, logger: logger}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	{
		api.GET("/watches/hero", h.heroWatch)
		api.GET("/watches/featured", h.featuredWatches)
		api.GET("/watches", h.allWatches)
		api.POST("/orders/create", h.apiCreateOrder)
	}

	cart := router.Group("/cart")
	{
		cart.GET("/", h.cartDetail)
		cart.POST("/add/:id", h.cartAdd)
		cart.GET("/remove/:id", h.cartRemove)
		cart.POST("/remove/:id", h.cartRemove)
	}

	router.POST("/checkout/", h.checkout)
	router.POST("/telegram/webhook/", h.telegramWebhook)
	router.POST("/payment/callback/", h.paymentCallback)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", h.signup)
		authGroup.POST("/login", h.login)
		authGroup.POST("/logout", h.logout)
	}

	router.GET("/account/", h.account)

	if deps.MediaRoot != "" {
		router.Static("/media", deps.MediaRoot)
	}

	return router
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
