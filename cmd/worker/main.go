package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"mitrahire-backend/internal/bootstrap"
	"mitrahire-backend/internal/queue"
	"mitrahire-backend/internal/shared/config"
	"mitrahire-backend/internal/workerproc"
)

const defaultSweepSeconds = 60

// Background worker: drains queued delete intents and periodically
// sweeps the intent table so a lost message still gets retried.
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}
	if app.DB != nil {
		defer app.DB.Close()
	}

	receiver, _ := app.Queue.(queue.Receiver)
	if receiver == nil {
		log.Printf("worker started without a queue; relying on periodic sweep only")
	}

	w := workerproc.NewWorker(receiver, app.ProjectsService)
	w.SweepInterval = time.Duration(envInt("MH_SWEEP_INTERVAL_SECONDS", defaultSweepSeconds)) * time.Second

	log.Printf("worker started sweep_interval=%s", w.SweepInterval)

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("worker error: %v", err)
	}
	log.Printf("worker stopped")
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return val
}
