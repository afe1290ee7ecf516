package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-FieldBookingService/internal/config"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage"
	reservationsService "github.com/m04kA/SMC-FieldBookingService/internal/service/reservations"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
)

// Sweeper переводит закончившиеся CONFIRMED брони в COMPLETED обычными вызовами жизненного цикла.
// Работает отдельным процессом, сервис бронирования сам статусы по времени не меняет.
func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-FieldBookingService sweeper (schedule=%q, batch=%d)", cfg.Sweeper.Schedule, cfg.Sweeper.BatchSize)

	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Sweeper uses its own in-memory store, reservations of the server process are not visible")
	}

	store, err := storage.Open(context.Background(), cfg, nil, log)
	if err != nil {
		log.Fatal("Failed to open storage (driver=%s): %v", cfg.Storage.Driver, err)
	}
	defer store.Close()

	reservationSvc := reservationsService.NewService(store.Reservations, store.Fields, nil, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err = c.AddFunc(cfg.Sweeper.Schedule, func() {
		sweep(ctx, reservationSvc, cfg.Sweeper.BatchSize, log)
	})
	if err != nil {
		log.Fatal("Invalid sweeper schedule %q: %v", cfg.Sweeper.Schedule, err)
	}
	c.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Stopping sweeper...")
	cancel()
	<-c.Stop().Done()
	log.Info("Sweeper stopped")
}

type elapsedCompleter interface {
	CompleteElapsed(ctx context.Context, now time.Time, batch int) (completed, fetched int, err error)
}

// sweep обрабатывает пачки, пока очередная выборка заполнена целиком.
// Итог по каждой пачке пишет сам сервис.
func sweep(ctx context.Context, svc elapsedCompleter, batch int, log *logger.Logger) {
	now := time.Now()
	total := 0
	for ctx.Err() == nil {
		completed, fetched, err := svc.CompleteElapsed(ctx, now, batch)
		if err != nil {
			log.Error("Sweep: failed after %d completed: %v", total+completed, err)
			return
		}
		total += completed
		if batch <= 0 || fetched < batch {
			return
		}
	}
}
