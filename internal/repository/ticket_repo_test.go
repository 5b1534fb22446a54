package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AchintyaNigam/my-rail/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestTicketRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	mock.ExpectExec(`INSERT INTO "tickets" .* ON CONFLICT \("id"\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), &models.Ticket{
		ID:         "6f1c1f7e-6a7b-4c1e-9c55-0d1a6c1b2a10",
		RecordID:   "rec123",
		FullName:   "Asha",
		TrainName:  "Chennai Express",
		Price:      100,
		Coach:      "Sleeper",
		Passengers: 1,
		BookedAt:   time.Now(),
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_FindByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)
	booked := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "record_id", "full_name", "train_name", "price", "coach", "passengers", "booked_at"}).
		AddRow("t1", "rec123", "Asha", "Chennai Express", 100, "Sleeper", 1, booked)
	mock.ExpectQuery(`SELECT \* FROM "tickets" WHERE id = \$1`).WillReturnRows(rows)

	ticket, err := repo.FindByID(context.Background(), "t1")

	require.NoError(t, err)
	assert.Equal(t, "rec123", ticket.RecordID)
	assert.Equal(t, 100, ticket.Price)
	assert.Equal(t, booked, ticket.BookedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepository_FindByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewTicketRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "tickets"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), "nope")

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
