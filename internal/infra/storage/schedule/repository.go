package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

var scheduleColumns = []string{
	"id",
	"field_id",
	"weekday",
	"open_time",
	"close_time",
	"created_at",
	"updated_at",
}

// Repository окна работы площадок по дням недели
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создаёт или заменяет окно на (field_id, weekday)
func (r *Repository) Upsert(ctx context.Context, s *domain.WeeklySchedule) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("weekly_schedules").
		Columns("field_id", "weekday", "open_time", "close_time").
		Values(s.FieldID, string(s.Weekday), s.OpenTime, s.CloseTime).
		Suffix("ON CONFLICT (field_id, weekday) DO UPDATE SET " +
			"open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time, updated_at = NOW() " +
			"RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	saved := *s
	err = executor.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	return &saved, nil
}

// Delete удаляет окно. Отсутствие записи ошибкой не считается.
func (r *Repository) Delete(ctx context.Context, fieldID int64, weekday domain.Weekday) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("weekly_schedules").
		Where(squirrel.Eq{"field_id": fieldID, "weekday": string(weekday)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByFieldAndWeekday окно площадки на конкретный день недели
func (r *Repository) GetByFieldAndWeekday(ctx context.Context, fieldID int64, weekday domain.Weekday) (*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("weekly_schedules").
		Where(squirrel.Eq{"field_id": fieldID, "weekday": string(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldAndWeekday - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSchedule(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFieldAndWeekday - scan schedule: %w", ErrScanRow, err)
	}

	return s, nil
}

// ListByField все окна площадки, порядок хранения не гарантирован
func (r *Repository) ListByField(ctx context.Context, fieldID int64) ([]*domain.WeeklySchedule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(scheduleColumns...).
		From("weekly_schedules").
		Where(squirrel.Eq{"field_id": fieldID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByField - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByField - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]*domain.WeeklySchedule, 0, 7)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByField - scan schedule: %w", ErrScanRow, err)
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByField - rows error: %w", ErrScanRow, err)
	}

	return schedules, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSchedule(row rowScanner) (*domain.WeeklySchedule, error) {
	var (
		s       domain.WeeklySchedule
		weekday string
	)
	if err := row.Scan(&s.ID, &s.FieldID, &weekday, &s.OpenTime, &s.CloseTime, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	s.Weekday = domain.Weekday(weekday)
	return &s, nil
}
