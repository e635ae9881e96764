package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/crumbly/internal/catalog/domain"
	"github.com/tair/crumbly/pkg/database"
	"github.com/tair/crumbly/pkg/database/dbtest"
)

func newRepo(t *testing.T) (*SQLCakeRepository, sqlmock.Sqlmock) {
	db, mock := dbtest.New(t)
	return NewSQLCakeRepository(database.NewExecutor(db, time.Second)), mock
}

func TestFindByCategory(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, image, category, price FROM cakes WHERE category =")).
		WithArgs("birthday").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "image", "category", "price"}).
			AddRow(1, "Chocolate", "choco.png", "birthday", 12.5))

	cakes, err := repo.FindByCategory(context.Background(), "birthday")
	require.NoError(t, err)
	assert.Equal(t, []domain.Cake{{ID: 1, Title: "Chocolate", Image: "choco.png", Category: "birthday", Price: 12.5}}, cakes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCategory_EmptyIsNotNil(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM cakes WHERE category =")).
		WithArgs("wedding").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "image", "category", "price"}))

	cakes, err := repo.FindByCategory(context.Background(), "wedding")
	require.NoError(t, err)
	assert.NotNil(t, cakes)
	assert.Empty(t, cakes)
}

func TestFindForViewer(t *testing.T) {
	viewer := uint(4)
	columns := []string{"id", "title", "image", "category", "price", "liked"}

	tests := []struct {
		name     string
		category string
		viewer   *uint
		args     []driver.Value
	}{
		{name: "all cakes with viewer", viewer: &viewer, args: []driver.Value{uint(4)}},
		{name: "all cakes anonymous", viewer: nil, args: []driver.Value{nil}},
		{name: "category with viewer", category: "birthday", viewer: &viewer, args: []driver.Value{uint(4), "birthday"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)

			expected := mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN favorites f ON c.id = f.cake_id AND f.user_id ="))
			expected.WithArgs(tt.args...).
				WillReturnRows(sqlmock.NewRows(columns).
					AddRow(1, "Chocolate", "choco.png", "birthday", 12.5, true).
					AddRow(2, "Vanilla", "vanilla.png", "birthday", 10.0, false))

			cakes, err := repo.FindForViewer(context.Background(), tt.category, tt.viewer)
			require.NoError(t, err)
			require.Len(t, cakes, 2)
			assert.True(t, cakes[0].Liked)
			assert.False(t, cakes[1].Liked)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFindForViewer_CategoryFilterInSQL(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.category =")).
		WithArgs(nil, "wedding").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "image", "category", "price", "liked"}))

	_, err := repo.FindForViewer(context.Background(), "wedding", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByCategory_DatabaseError(t *testing.T) {
	repo, mock := newRepo(t)
	dbErr := errors.New("relation cakes does not exist")

	mock.ExpectQuery(regexp.QuoteMeta("FROM cakes")).WillReturnError(dbErr)

	_, err := repo.FindByCategory(context.Background(), "birthday")
	assert.ErrorIs(t, err, dbErr)
}
