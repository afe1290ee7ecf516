package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-FieldBookingService/internal/api"
	"github.com/m04kA/SMC-FieldBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-FieldBookingService/internal/config"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage"
	"github.com/m04kA/SMC-FieldBookingService/internal/integrations/accessservice"
	reservationsService "github.com/m04kA/SMC-FieldBookingService/internal/service/reservations"
	schedulesService "github.com/m04kA/SMC-FieldBookingService/internal/service/schedules"
	computeSlotsUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/compute_slots"
	createReservationUC "github.com/m04kA/SMC-FieldBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-FieldBookingService/pkg/logger"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-FieldBookingService...")

	// Метрики (если включены). nil отключает запись во всех слоях.
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Хранилище: postgres или memory
	store, err := storage.Open(context.Background(), cfg, metricsCollector, log)
	if err != nil {
		log.Fatal("Failed to open storage (driver=%s): %v", cfg.Storage.Driver, err)
	}
	defer store.Close()

	// Проверка прав
	var authorizer middleware.Authorizer = accessservice.AllowAll{}
	if cfg.AccessService.Enabled {
		authorizer = accessservice.NewClient(
			cfg.AccessService.URL,
			time.Duration(cfg.AccessService.Timeout)*time.Second,
			log,
		)
		log.Info("AccessService client initialized (url=%s timeout=%ds)", cfg.AccessService.URL, cfg.AccessService.Timeout)
	} else {
		log.Warn("AccessService disabled, all mutations are allowed")
	}

	// Записи метрик в use case и сервисах принимают интерфейсы, typed nil туда не передаём
	var (
		attemptRecorder    createReservationUC.MetricsRecorder
		transitionRecorder reservationsService.MetricsRecorder
	)
	if metricsCollector != nil {
		attemptRecorder = metricsCollector
		transitionRecorder = metricsCollector
	}

	// Инициализируем сервисы
	scheduleSvc := schedulesService.NewService(store.Fields, store.Schedules, log)
	reservationSvc := reservationsService.NewService(store.Reservations, store.Fields, transitionRecorder, log)

	// Инициализируем use cases
	computeSlotsUseCase := computeSlotsUC.NewUseCase(
		store.Fields,
		store.Schedules,
		store.Reservations,
		cfg.Booking.MaxSlotRangeDays,
		log,
	)
	createReservationUseCase := createReservationUC.NewUseCase(
		store.Fields,
		store.Schedules,
		store.Reservations,
		store.TxManager,
		cfg.Booking.MaxReservationMinutes,
		attemptRecorder,
		log,
	)

	// Настраиваем роутер
	router := api.NewRouter(api.Deps{
		ComputeSlots:      computeSlotsUseCase,
		CreateReservation: createReservationUseCase,
		Schedules:         scheduleSvc,
		Reservations:      reservationSvc,
		Authorizer:        authorizer,
		Metrics:           metricsCollector,
		MetricsPath:       cfg.Metrics.Path,
		Logger:            log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
