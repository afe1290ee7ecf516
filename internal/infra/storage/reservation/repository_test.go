package reservation

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-FieldBookingService/internal/domain"
	"github.com/m04kA/SMC-FieldBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-FieldBookingService/pkg/ptr"
)

var day = time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func newRepo(t *testing.T) (*Repository, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := dbmetrics.Wrap(sqlDB, nil, time.Second, nil)
	return NewRepository(db), db, mock
}

func reservationRow(id int64, status domain.ReservationStatus, start, end time.Time) []driver.Value {
	now := time.Now()
	return []driver.Value{id, int64(1), int64(5), start, end, string(status), 1500.0, int64(42), nil, nil, nil, nil, nil, now, now}
}

func TestInsert(t *testing.T) {
	repo, _, mock := newRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO reservations (tenant_id,field_id,start_at,end_at,status,amount,user_id,guest_name,guest_email,guest_phone)")).
		WithArgs(int64(1), int64(5), at(10, 0), at(11, 0), "PENDING", 1500.0, int64(42), nil, nil, nil).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(100), now, now))

	saved, err := repo.Insert(context.Background(), &domain.Reservation{
		TenantID: 1,
		FieldID:  5,
		StartAt:  at(10, 0),
		EndAt:    at(11, 0),
		Status:   domain.StatusPending,
		Amount:   1500,
		Holder:   domain.Holder{UserID: ptr.Ptr(int64(42))},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(100), saved.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_ExclusionViolationIsConflict(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("INSERT INTO reservations").
		WillReturnError(&pq.Error{Code: "23P01", Constraint: "reservations_no_overlap"})

	_, err := repo.Insert(context.Background(), &domain.Reservation{
		TenantID: 1,
		FieldID:  5,
		StartAt:  at(10, 0),
		EndAt:    at(11, 0),
		Status:   domain.StatusPending,
		Holder:   domain.Holder{Guest: &domain.GuestContact{Name: "Ivan", Phone: "+7000"}},
	})

	assert.ErrorIs(t, err, ErrConflict)
}

func TestFindOverlapping_Predicate(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE field_id = $1 AND start_at < $2 AND end_at > $3 AND NOT (status = ANY($4)) ORDER BY start_at ASC")).
		WithArgs(int64(5), at(11, 30), at(10, 30), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow(reservationRow(1, domain.StatusConfirmed, at(10, 0), at(11, 0))...))

	found, err := repo.FindOverlapping(context.Background(), 5, at(10, 30), at(11, 30), nil)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, domain.StatusConfirmed, found[0].Status)
	require.NotNil(t, found[0].Holder.UserID)
	assert.Equal(t, int64(42), *found[0].Holder.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOverlapping_InTransactionLocksRows(t *testing.T) {
	repo, db, mock := newRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY start_at ASC FOR UPDATE")).
		WillReturnRows(sqlmock.NewRows(reservationColumns))
	mock.ExpectCommit()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	found, err := repo.FindOverlapping(dbmetrics.WithTx(context.Background(), tx), 5, at(10, 0), at(11, 0), nil)
	require.NoError(t, err)
	assert.Empty(t, found)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindOverlapping_EmptyExcludeDisablesFilter(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE field_id = $1 AND start_at < $2 AND end_at > $3 ORDER BY")).
		WithArgs(int64(5), at(11, 0), at(10, 0)).
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	_, err := repo.FindOverlapping(context.Background(), 5, at(10, 0), at(11, 0), []domain.ReservationStatus{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE reservations SET status = $1, updated_at = NOW() WHERE id = $2 AND status = $3 AND tenant_id = $4 RETURNING id")).
		WithArgs("CONFIRMED", int64(1), "PENDING", int64(1)).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow(reservationRow(1, domain.StatusConfirmed, at(10, 0), at(11, 0))...))

	res, err := repo.UpdateStatus(context.Background(), 1, 1, domain.StatusPending, domain.StatusConfirmed, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, res.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus_CancelSetsReason(t *testing.T) {
	repo, _, mock := newRepo(t)
	reason := "rain"

	row := reservationRow(1, domain.StatusCancelled, at(10, 0), at(11, 0))
	row[11] = reason
	row[12] = time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SET status = $1, updated_at = NOW(), cancellation_reason = $2, cancelled_at = NOW()")).
		WithArgs("CANCELLED", reason, int64(1), "CONFIRMED", int64(1)).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow(row...))

	res, err := repo.UpdateStatus(context.Background(), 1, 1, domain.StatusConfirmed, domain.StatusCancelled, &reason)
	require.NoError(t, err)
	require.NotNil(t, res.CancellationReason)
	assert.Equal(t, "rain", *res.CancellationReason)
	assert.NotNil(t, res.CancelledAt)
}

func TestUpdateStatus_StatusChanged(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("UPDATE reservations").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("FROM reservations WHERE id = $1 AND tenant_id = $2")).
		WithArgs(int64(1), int64(1)).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow(reservationRow(1, domain.StatusCancelled, at(10, 0), at(11, 0))...))

	_, err := repo.UpdateStatus(context.Background(), 1, 1, domain.StatusPending, domain.StatusConfirmed, nil)
	assert.ErrorIs(t, err, ErrStatusChanged)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery("UPDATE reservations").WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("FROM reservations").WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateStatus(context.Background(), 1, 999, domain.StatusPending, domain.StatusConfirmed, nil)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestListByField_ExcludesInactiveByDefault(t *testing.T) {
	repo, _, mock := newRepo(t)
	from, to := at(0, 0), at(24, 0)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE field_id = $1 AND tenant_id = $2 AND end_at > $3 AND start_at < $4 AND status NOT IN ($5,$6) ORDER BY start_at ASC")).
		WithArgs(int64(5), int64(1), from, to, "CANCELLED", "NO_SHOW").
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	_, err := repo.ListByField(context.Background(), domain.ReservationsFilter{TenantID: 1, FieldID: 5, From: &from, To: &to})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListEndedBefore(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND end_at <= $2 ORDER BY end_at ASC LIMIT 50")).
		WithArgs("CONFIRMED", at(12, 0)).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow(reservationRow(7, domain.StatusConfirmed, at(10, 0), at(11, 0))...))

	list, err := repo.ListEndedBefore(context.Background(), domain.StatusConfirmed, at(12, 0), 50)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].ID)
}

func TestListEndedBefore_NoLimit(t *testing.T) {
	repo, _, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status = $1 AND end_at <= $2 ORDER BY end_at ASC") + "$").
		WithArgs("CONFIRMED", at(12, 0)).
		WillReturnRows(sqlmock.NewRows(reservationColumns).
			AddRow(reservationRow(7, domain.StatusConfirmed, at(8, 0), at(9, 0))...).
			AddRow(reservationRow(8, domain.StatusConfirmed, at(10, 0), at(11, 0))...))

	list, err := repo.ListEndedBefore(context.Background(), domain.StatusConfirmed, at(12, 0), 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
