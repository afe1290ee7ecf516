package dbmetrics

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedQuery struct {
	op  string
	err error
}

type fakeRecorder struct {
	mu      sync.Mutex
	queries []recordedQuery
}

func (f *fakeRecorder) RecordDBQuery(op string, _ time.Duration, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, recordedQuery{op: op, err: err})
}

func (f *fakeRecorder) SetDBStats(sql.DBStats) {}

func (f *fakeRecorder) ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.queries))
	for _, q := range f.queries {
		out = append(out, q.op)
	}
	return out
}

func TestDB_RecordsQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	rec := &fakeRecorder{}
	db := Wrap(sqlDB, rec, time.Second, nil)

	mock.ExpectExec("DELETE FROM weekly_schedules").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT id FROM fields").WillReturnError(errors.New("boom"))

	_, err = db.ExecContext(context.Background(), "DELETE FROM weekly_schedules WHERE field_id = $1", 1)
	require.NoError(t, err)
	_, err = db.QueryContext(context.Background(), "SELECT id FROM fields")
	require.Error(t, err)

	assert.Equal(t, []string{"exec", "query"}, rec.ops())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_TransactionInContext(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	rec := &fakeRecorder{}
	db := Wrap(sqlDB, rec, time.Second, nil)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE reservations").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
	assert.Same(t, db, GetExecutor(ctx, db))

	_, err = GetExecutor(txCtx, db).ExecContext(txCtx, "UPDATE reservations SET status = $1", "CONFIRMED")
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	assert.Equal(t, []string{"begin", "tx_exec", "commit"}, rec.ops())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_NilRecorder(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil, time.Second, make(chan struct{}))

	mock.ExpectExec("SELECT 1").WillReturnResult(sqlmock.NewResult(0, 0))
	_, err = db.ExecContext(context.Background(), "SELECT 1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
