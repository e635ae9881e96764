package database_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/crumbly/pkg/database"
	"github.com/tair/crumbly/pkg/database/dbtest"
)

type cakeRow struct {
	ID    uint
	Title string
}

func TestGormExecutor_Query(t *testing.T) {
	db, mock := dbtest.New(t)
	exec := database.NewExecutor(db, time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title FROM cakes WHERE category =")).
		WithArgs("birthday").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}).
			AddRow(1, "Chocolate").
			AddRow(2, "Vanilla"))

	var rows []cakeRow
	err := exec.Query(context.Background(), &rows, "SELECT id, title FROM cakes WHERE category = ?", "birthday")
	require.NoError(t, err)
	assert.Equal(t, []cakeRow{{ID: 1, Title: "Chocolate"}, {ID: 2, Title: "Vanilla"}}, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormExecutor_QueryScalar(t *testing.T) {
	db, mock := dbtest.New(t)
	exec := database.NewExecutor(db, time.Second)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM favorites")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	var count int64
	require.NoError(t, exec.Query(context.Background(), &count, "SELECT COUNT(*) FROM favorites WHERE user_id = ?", 7))
	assert.Equal(t, int64(3), count)
}

func TestGormExecutor_Exec(t *testing.T) {
	db, mock := dbtest.New(t)
	exec := database.NewExecutor(db, time.Second)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM cart WHERE cake_id =")).
		WithArgs(4, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := exec.Exec(context.Background(), "DELETE FROM cart WHERE cake_id = ? AND user_id = ?", 4, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormExecutor_TranslatesErrors(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		want    error
		wantRaw bool
	}{
		{name: "unique violation", dbErr: &pgconn.PgError{Code: "23505"}, want: database.ErrDuplicate},
		{name: "other driver error", dbErr: errors.New("connection reset"), wantRaw: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := dbtest.New(t)
			exec := database.NewExecutor(db, time.Second)

			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorites")).WillReturnError(tt.dbErr)

			_, err := exec.Exec(context.Background(), "INSERT INTO favorites (cake_id, user_id) VALUES (?, ?)", 1, 2)
			require.Error(t, err)
			if tt.wantRaw {
				assert.False(t, errors.Is(err, database.ErrDuplicate))
				assert.False(t, errors.Is(err, database.ErrTimeout))
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGormExecutor_Timeout(t *testing.T) {
	db, mock := dbtest.New(t)
	exec := database.NewExecutor(db, 20*time.Millisecond)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title FROM cakes")).
		WillDelayFor(500 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title"}))

	var rows []cakeRow
	err := exec.Query(context.Background(), &rows, "SELECT id, title FROM cakes")
	assert.ErrorIs(t, err, database.ErrTimeout)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, database.IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, database.IsUniqueViolation(errors.New("boom")))
}

func TestConfig_DSN(t *testing.T) {
	cfg := database.Config{
		Host: "db", Port: "5432", User: "u", Password: "p", DBName: "cakes", SSLMode: "disable",
		ConnectTimeout: 30 * time.Second,
	}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=cakes sslmode=disable connect_timeout=30", cfg.DSN())
}
