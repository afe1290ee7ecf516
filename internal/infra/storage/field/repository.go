package field

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

var fieldColumns = []string{
	"id",
	"tenant_id",
	"sport_center_id",
	"sport_type",
	"name",
	"is_available",
	"hourly_price",
	"timezone",
	"created_at",
	"updated_at",
}

// Repository площадки. Сами площадки заводятся вне этого сервиса, здесь только чтение.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает площадку тенанта
func (r *Repository) GetByID(ctx context.Context, tenantID, fieldID int64) (*domain.Field, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(fieldColumns...).
		From("fields").
		Where(squirrel.Eq{"id": fieldID, "tenant_id": tenantID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var (
		f             domain.Field
		sportCenterID sql.NullInt64
		timezone      sql.NullString
	)
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&f.ID,
		&f.TenantID,
		&sportCenterID,
		&f.SportType,
		&f.Name,
		&f.IsAvailable,
		&f.HourlyPrice,
		&timezone,
		&f.CreatedAt,
		&f.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFieldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan field: %w", ErrScanRow, err)
	}

	if sportCenterID.Valid {
		id := sportCenterID.Int64
		f.SportCenterID = &id
	}
	f.Timezone = domain.DefaultTimezone
	if timezone.Valid && timezone.String != "" {
		f.Timezone = timezone.String
	}

	return &f, nil
}

// Lock блокирует строку площадки до конца транзакции (SELECT ... FOR UPDATE).
// Сериализует создание броней в рамках одной площадки. Вне транзакции просто проверяет существование.
func (r *Repository) Lock(ctx context.Context, tenantID, fieldID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id").
		From("fields").
		Where(squirrel.Eq{"id": fieldID, "tenant_id": tenantID})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Lock - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrFieldNotFound
	}
	if err != nil {
		return fmt.Errorf("%w: Lock - execute query: %w", ErrExecQuery, err)
	}

	return nil
}
