// Karaoke Board — табло очереди исполнения.
//
// Board:
//   - Получает события об изменениях из RabbitMQ
//   - Пересчитывает очередь по согласованному снимку
//   - Периодически пересчитывает очередь на случай потерянных событий
//   - Уведомляет оператора о новых заявках в Discord
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shaiso/Karaoke/internal/board"
	"github.com/shaiso/Karaoke/internal/config"
	"github.com/shaiso/Karaoke/internal/mq"
	"github.com/shaiso/Karaoke/internal/notify"
	"github.com/shaiso/Karaoke/internal/repo"
	"github.com/shaiso/Karaoke/internal/telemetry"
)

func main() {
	cfg, err := config.LoadBoard()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// Инициализируем structured logging
	logger := telemetry.SetupLogger(cfg.LogLevel, cfg.LogFormat)
	logger.Info("starting karaoke-board")

	resync, err := board.ParseResync(cfg.Resync)
	if err != nil {
		logger.Error("invalid resync schedule", "error", err)
		os.Exit(1)
	}

	// graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DB pool
	pool, err := repo.NewPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("database connected")

	// Уведомления
	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if cfg.HasDiscord() {
		discord, err := notify.NewDiscordNotifier(cfg.DiscordWebhookID, cfg.DiscordWebhookToken)
		if err != nil {
			logger.Error("failed to create discord notifier", "error", err)
			os.Exit(1)
		}
		notifier = discord
		logger.Info("discord notifications enabled")
	}

	// RabbitMQ
	mqConn, err := mq.NewConnection(cfg.RabbitMQURL, logger)
	if err != nil {
		logger.Warn("RabbitMQ not available, running in resync-only mode", "error", err)
		mqConn = nil
	} else {
		defer mqConn.Close()
		logger.Info("RabbitMQ connected")

		if err := mq.SetupTopology(ctx, mqConn); err != nil {
			logger.Warn("failed to setup topology", "error", err)
		}
	}

	b := board.New(board.Config{
		Snapshots: repo.NewSnapshotRepo(pool),
		Notifier:  notifier,
		Conn:      mqConn,
		Resync:    resync,
		Logger:    logger,
	})

	if err := b.Start(ctx); err != nil {
		logger.Error("failed to start board", "error", err)
		os.Exit(1)
	}

	// HTTP mux: /healthz + /metrics + /api/v1/lineup
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	b.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "error", err)
			cancel()
		}
	}()

	// Ожидаем сигнал завершения
	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	// Останавливаем board
	if err := b.Stop(); err != nil {
		logger.Error("board stopped with error", "error", err)
	}
	logger.Info("karaoke-board stopped")
}
