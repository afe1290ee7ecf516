package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/psqlbuilder"
)

// Коды ошибок Postgres
const (
	pgExclusionViolation = "23P01"
	pgUniqueViolation    = "23505"
)

var reservationColumns = []string{
	"id",
	"tenant_id",
	"field_id",
	"start_at",
	"end_at",
	"status",
	"amount",
	"user_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository журнал броней. Единственный источник истины для проверки пересечений.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория броней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert сохраняет новую бронь.
// Нарушение exclusion constraint на пересечение активных интервалов возвращается как ErrConflict.
func (r *Repository) Insert(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var guestName, guestEmail, guestPhone *string
	if res.Holder.Guest != nil {
		guestName = &res.Holder.Guest.Name
		guestEmail = nullIfEmpty(res.Holder.Guest.Email)
		guestPhone = nullIfEmpty(res.Holder.Guest.Phone)
	}

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"tenant_id",
			"field_id",
			"start_at",
			"end_at",
			"status",
			"amount",
			"user_id",
			"guest_name",
			"guest_email",
			"guest_phone",
		).
		Values(
			res.TenantID,
			res.FieldID,
			res.StartAt,
			res.EndAt,
			string(res.Status),
			res.Amount,
			res.Holder.UserID,
			guestName,
			guestEmail,
			guestPhone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	saved := *res
	err = executor.QueryRowContext(ctx, query, args...).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && (pqErr.Code == pgExclusionViolation || pqErr.Code == pgUniqueViolation) {
			return nil, fmt.Errorf("%w: Insert - %s", ErrConflict, pqErr.Constraint)
		}
		return nil, fmt.Errorf("%w: Insert - execute insert: %w", ErrExecQuery, err)
	}

	return &saved, nil
}

// GetByID получает бронь тенанта
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// FindOverlapping брони площадки, пересекающиеся с [start, end), кроме статусов exclude.
// exclude == nil означает domain.DefaultExcludedStatuses, пустой слайс отключает фильтр.
// Внутри транзакции найденные строки блокируются (FOR UPDATE).
func (r *Repository) FindOverlapping(ctx context.Context, fieldID int64, start, end time.Time, exclude []domain.ReservationStatus) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if exclude == nil {
		exclude = domain.DefaultExcludedStatuses
	}

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"field_id": fieldID}).
		Where(squirrel.Lt{"start_at": end}).
		Where(squirrel.Gt{"end_at": start})

	if len(exclude) > 0 {
		builder = builder.Where("NOT (status = ANY(?))", pq.Array(statusStrings(exclude)))
	}

	builder = builder.OrderBy("start_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows, "FindOverlapping")
}

// ListByField брони площадки с фильтрами по периоду и статусу.
// Без IncludeInactive отменённые и no-show не возвращаются.
func (r *Repository) ListByField(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"tenant_id": filter.TenantID, "field_id": filter.FieldID})

	// Фильтрация по периоду: бронь пересекается с [From, To)
	if filter.From != nil {
		builder = builder.Where(squirrel.Gt{"end_at": *filter.From})
	}
	if filter.To != nil {
		builder = builder.Where(squirrel.Lt{"start_at": *filter.To})
	}

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*filter.Status)})
	} else if !filter.IncludeInactive {
		builder = builder.Where(squirrel.NotEq{"status": statusStrings(domain.DefaultExcludedStatuses)})
	}

	query, args, err := builder.OrderBy("start_at ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByField - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByField - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows, "ListByField")
}

// ListEndedBefore брони в статусе status, закончившиеся до before. Используется sweeper'ом.
// Тенант не фильтруется: sweeper обслуживает все тенанты. limit <= 0 - без ограничения.
func (r *Repository) ListEndedBefore(ctx context.Context, status domain.ReservationStatus, before time.Time, limit int) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"status": string(status)}).
		Where(squirrel.LtOrEq{"end_at": before}).
		OrderBy("end_at ASC")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListEndedBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEndedBefore - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows, "ListEndedBefore")
}

// UpdateStatus условно меняет статус from -> to.
// Если статус уже не from, возвращает ErrStatusChanged и ничего не меняет.
func (r *Repository) UpdateStatus(ctx context.Context, tenantID, id int64, from, to domain.ReservationStatus, reason *string) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("reservations").
		Set("status", string(to)).
		Set("updated_at", squirrel.Expr("NOW()"))

	if to == domain.StatusCancelled {
		builder = builder.
			Set("cancellation_reason", reason).
			Set("cancelled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := builder.
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID, "status": string(from)}).
		Suffix("RETURNING " + strings.Join(reservationColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Либо брони нет, либо статус уже другой
		if _, getErr := r.GetByID(ctx, tenantID, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("%w: UpdateStatus - expected %s", ErrStatusChanged, from)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return res, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var (
		res                               domain.Reservation
		status                            string
		userID                            sql.NullInt64
		guestName, guestEmail, guestPhone sql.NullString
		cancellationReason                sql.NullString
		cancelledAt                       sql.NullTime
	)

	err := row.Scan(
		&res.ID,
		&res.TenantID,
		&res.FieldID,
		&res.StartAt,
		&res.EndAt,
		&status,
		&res.Amount,
		&userID,
		&guestName,
		&guestEmail,
		&guestPhone,
		&cancellationReason,
		&cancelledAt,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Status = domain.ReservationStatus(status)
	if userID.Valid {
		id := userID.Int64
		res.Holder.UserID = &id
	}
	if guestName.Valid {
		res.Holder.Guest = &domain.GuestContact{
			Name:  guestName.String,
			Email: guestEmail.String,
			Phone: guestPhone.String,
		}
	}
	if cancellationReason.Valid {
		reason := cancellationReason.String
		res.CancellationReason = &reason
	}
	if cancelledAt.Valid {
		at := cancelledAt.Time
		res.CancelledAt = &at
	}

	return &res, nil
}

func scanReservations(rows *sql.Rows, op string) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan reservation: %w", ErrScanRow, op, err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}
	return reservations, nil
}

func statusStrings(statuses []domain.ReservationStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
