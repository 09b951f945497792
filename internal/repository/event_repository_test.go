package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"department-service/internal/model"
	repo "department-service/internal/repository"
)

func TestPostgresEventRepository_Create(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresEventRepository(sqlxDB)

	id := uuid.New()
	now := time.Now()
	mock.ExpectQuery(`INSERT INTO events`).
		WithArgs("Open Day", "Campus tour", "general", sqlmock.AnyArg(), "Main Hall", nil, true, "a@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))

	event := &model.Event{
		Title:       "Open Day",
		Description: "Campus tour",
		Category:    "general",
		Date:        now.Add(48 * time.Hour),
		Location:    "Main Hall",
		IsActive:    true,
		CreatedBy:   "a@x.com",
	}

	created, err := r.Create(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, id, created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEventRepository_ListActive_FiltersHidden(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresEventRepository(sqlxDB)

	rows := sqlmock.NewRows([]string{"id", "title", "is_active", "created_by"}).
		AddRow(uuid.New(), "Open Day", true, "a@x.com")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM events WHERE is_active = true ORDER BY date ASC`)).
		WillReturnRows(rows)

	eventList, err := r.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, eventList, 1)
	require.True(t, eventList[0].IsActive)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEventRepository_Delete_Missing(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresEventRepository(sqlxDB)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM events WHERE id = $1`)).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := r.Delete(context.Background(), uuid.New())
	require.NoError(t, err)
	require.False(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEventRepository_Update_Missing(t *testing.T) {
	sqlxDB, mock := newMockDB(t)
	r := repo.NewPostgresEventRepository(sqlxDB)

	mock.ExpectQuery(`UPDATE events`).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}))

	updated, err := r.Update(context.Background(), &model.Event{ID: uuid.New(), Title: "X", Date: time.Now()})
	require.NoError(t, err)
	require.Nil(t, updated)
	require.NoError(t, mock.ExpectationsWereMet())
}
