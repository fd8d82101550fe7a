// Package main запускает HTTP-сервер сервиса ордердеск.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/orderdesk-system/internal/config"
	"github.com/mmeshcher/orderdesk-system/internal/handler"
	"github.com/mmeshcher/orderdesk-system/internal/messenger"
	"github.com/mmeshcher/orderdesk-system/internal/middleware"
	"github.com/mmeshcher/orderdesk-system/internal/service"
	"github.com/mmeshcher/orderdesk-system/internal/store"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	sugar := logger.Sugar()

	cfg, err := config.Parse()
	if err != nil {
		sugar.Fatalw("configuration error", "error", err.Error())
	}

	st := store.New(cfg.StoreLatency)
	st.SeedUsers(store.DemoUsers()...)
	st.SeedOrders(store.DemoOrders()...)

	var messengerClient *messenger.Client
	if cfg.MessageSystemAddress != "" {
		messengerClient = messenger.NewClient(cfg.MessageSystemAddress)
	}

	svc := service.NewService(st, messengerClient)

	authMiddleware := middleware.NewAuthMiddleware("orderdesk-secret")
	h := handler.NewHandler(svc, logger, authMiddleware)

	r := h.SetupRouter()

	server := &http.Server{
		Addr:    cfg.RunAddress,
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting orderdesk server", "addr", cfg.RunAddress)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	if err := g.Wait(); err != nil {
		sugar.Fatalw("application terminated with error", "error", err)
	}
}
