package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"timepiece-store/internal/config"
	"timepiece-store/internal/db"
	"timepiece-store/internal/httpserver"
	"timepiece-store/internal/notifier"
	orderrepo "timepiece-store/internal/repository/order"
	userrepo "timepiece-store/internal/repository/user"
	watchrepo "timepiece-store/internal/repository/watch"
	authsvc "timepiece-store/internal/service/auth"
	catalogsvc "timepiece-store/internal/service/catalog"
	checkoutsvc "timepiece-store/internal/service/checkout"
	"timepiece-store/internal/session"
	"timepiece-store/internal/telegram"
	"timepiece-store/internal/webhook"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	watchRepo := watchrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool)
	userRepo := userrepo.NewPostgres(dbpool)

	textAPI, mediaAPI := telegram.New(cfg.TelegramBotToken)
	if textAPI == nil {
		logger.Printf("telegram relay disabled: no bot token configured")
	}
	orderNotifier := notifier.New(textAPI, mediaAPI, cfg.TelegramChatID, cfg.MediaRoot, logger)
	webhookHandler := webhook.New(orderRepo, textAPI, cfg.TelegramAdminIDs, logger)

	catalogService := catalogsvc.New(watchRepo, cfg.FileURLHost)
	checkoutService := checkoutsvc.New(orderRepo, userRepo, orderNotifier, logger)
	authService := authsvc.New(userRepo)
	sessionStore := session.NewStore(cfg.SessionKey)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		Catalog:     catalogService,
		Checkout:    checkoutService,
		Auth:        authService,
		Watches:     watchRepo,
		Orders:      orderRepo,
		Users:       userRepo,
		Sessions:    sessionStore,
		Webhook:     webhookHandler,
		MediaRoot:   cfg.MediaRoot,
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
