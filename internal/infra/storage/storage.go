package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/m04kA/SMC-FieldBookingService/internal/config"
	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	fieldRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/field"
	"github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/memory"
	reservationRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/m04kA/SMC-FieldBookingService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/metrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/txmanager"
	"github.com/m04kA/SMC-FieldBookingService/pkg/types"
)

// Storage репозитории выбранного драйвера (postgres или memory)
type Storage struct {
	Fields       FieldRepository
	Schedules    ScheduleRepository
	Reservations ReservationRepository
	TxManager    TransactionManager

	db     *sql.DB
	stopCh chan struct{}
}

// Open поднимает хранилище по storage.driver. m может быть nil.
func Open(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log Logger) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		return openMemory(ctx, cfg.Storage.SeedFields, log)
	case config.StorageDriverPostgres:
		return openPostgres(ctx, cfg.Database, m, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Storage.Driver)
	}
}

// Close останавливает сбор статистики пула и закрывает соединение
func (s *Storage) Close() error {
	if s.stopCh != nil {
		close(s.stopCh)
		s.stopCh = nil
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, m *metrics.Metrics, log Logger) (*Storage, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping: %v", ErrConnect, err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", cfg.Host, cfg.Port, cfg.DBName)

	var stopCh chan struct{}
	if m != nil {
		stopCh = make(chan struct{})
		log.Info("Database metrics collection started")
	}
	wrapped := dbmetrics.WrapWithDefault(db, m, stopCh)

	return &Storage{
		Fields:       fieldRepo.NewRepository(wrapped),
		Schedules:    scheduleRepo.NewRepository(wrapped),
		Reservations: reservationRepo.NewRepository(wrapped),
		TxManager:    txmanager.NewTransactionManager(wrapped),
		db:           db,
		stopCh:       stopCh,
	}, nil
}

func openMemory(ctx context.Context, seeds []config.SeedFieldConfig, log Logger) (*Storage, error) {
	store := memory.NewStore()

	for _, seed := range seeds {
		f := store.AddField(domain.Field{
			ID:          seed.ID,
			TenantID:    seed.TenantID,
			Name:        seed.Name,
			SportType:   seed.SportType,
			Timezone:    seed.Timezone,
			HourlyPrice: seed.HourlyPrice,
			IsAvailable: true,
		})

		if seed.OpenTime != "" && seed.CloseTime != "" {
			if err := seedWeek(ctx, store, f.ID, seed.OpenTime, seed.CloseTime); err != nil {
				return nil, err
			}
		}
		log.Info("Seeded field id=%d tenant=%d name=%q", f.ID, f.TenantID, f.Name)
	}

	log.Info("Using in-memory storage (fields=%d)", len(seeds))
	return &Storage{
		Fields:       store.Fields(),
		Schedules:    store.Schedules(),
		Reservations: store.Reservations(),
		TxManager:    store.TxManager(),
	}, nil
}

func seedWeek(ctx context.Context, store *memory.Store, fieldID int64, openRaw, closeRaw string) error {
	open, err := types.NewTimeStringFromString(openRaw)
	if err != nil {
		return fmt.Errorf("%w: field id=%d open time: %v", ErrSeed, fieldID, err)
	}
	closeAt, err := types.NewTimeStringFromString(closeRaw)
	if err != nil {
		return fmt.Errorf("%w: field id=%d close time: %v", ErrSeed, fieldID, err)
	}

	for _, weekday := range domain.AllWeekdays() {
		schedule := &domain.WeeklySchedule{FieldID: fieldID, Weekday: weekday, OpenTime: open, CloseTime: closeAt}
		if err := schedule.Validate(); err != nil {
			return fmt.Errorf("%w: field id=%d: %v", ErrSeed, fieldID, err)
		}
		if _, err := store.Schedules().Upsert(ctx, schedule); err != nil {
			return fmt.Errorf("%w: field id=%d: %v", ErrSeed, fieldID, err)
		}
	}
	return nil
}
