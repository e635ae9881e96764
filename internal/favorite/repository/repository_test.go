package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/tair/crumbly/internal/catalog/domain"
	"github.com/tair/crumbly/internal/favorite/domain"
	"github.com/tair/crumbly/pkg/database"
	"github.com/tair/crumbly/pkg/database/dbtest"
)

func newRepo(t *testing.T) (*SQLFavoriteRepository, sqlmock.Sqlmock) {
	db, mock := dbtest.New(t)
	return NewSQLFavoriteRepository(database.NewExecutor(db, time.Second)), mock
}

func TestFind(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, cake_id FROM favorites WHERE cake_id =")).
			WithArgs(9, 3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "cake_id"}).AddRow(11, 3, 9))

		fav, err := repo.Find(context.Background(), 3, 9)
		require.NoError(t, err)
		assert.Equal(t, &domain.Favorite{ID: 11, UserID: 3, CakeID: 9}, fav)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectQuery(regexp.QuoteMeta("FROM favorites WHERE cake_id =")).
			WithArgs(9, 3).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "cake_id"}))

		fav, err := repo.Find(context.Background(), 3, 9)
		require.NoError(t, err)
		assert.Nil(t, fav)
	})
}

func TestCreate(t *testing.T) {
	t.Run("inserted", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorites (cake_id, user_id)")).
			WithArgs(9, 3).
			WillReturnResult(sqlmock.NewResult(12, 1))

		require.NoError(t, repo.Create(context.Background(), 3, 9))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation", func(t *testing.T) {
		repo, mock := newRepo(t)
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO favorites")).
			WithArgs(9, 3).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_favorites_user_cake"})

		err := repo.Create(context.Background(), 3, 9)
		assert.ErrorIs(t, err, domain.ErrAlreadyFavorite)
	})
}

func TestDelete(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorites WHERE cake_id =")).
		WithArgs(9, 3).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM favorites WHERE id =")).
		WithArgs(11).
		WillReturnResult(sqlmock.NewResult(0, 1))

	affected, err := repo.Delete(context.Background(), 3, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	affected, err = repo.DeleteByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountByUser(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) AS likes FROM favorites WHERE user_id =")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow(4))

	count, err := repo.CountByUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
}

func TestListCakesByUser(t *testing.T) {
	repo, mock := newRepo(t)
	mock.ExpectQuery(regexp.QuoteMeta("JOIN favorites f ON c.id = f.cake_id WHERE f.user_id =")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "price", "image"}).
			AddRow(9, "Red Velvet", 15.5, "rv.png"))

	cakes, err := repo.ListCakesByUser(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, []catalog.CakeSummary{{ID: 9, Title: "Red Velvet", Price: 15.5, Image: "rv.png"}}, cakes)
}
