package budget_test

import (
	"context"
	"testing"

	"wedplan/internal/budget"
	"wedplan/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	assert.NoError(t, err)

	return gormDB, mock
}

func TestAggregator_Recalculate(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	aggregator := budget.NewAggregator(gormDB)

	boardID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "boards" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_budget", "total_spent", "total_remaining"}).
			AddRow(boardID.String(), "Our Wedding", 10000.0, 0.0, 0.0))

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(cost\), 0\) as total FROM "tasks" WHERE board_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(3500.0))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "boards" SET .* WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := aggregator.Recalculate(context.Background(), boardID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregator_Recalculate_NoTasks(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	aggregator := budget.NewAggregator(gormDB)

	boardID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "boards" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "total_budget", "total_spent", "total_remaining"}).
			AddRow(boardID.String(), "Our Wedding", 10000.0, 2000.0, 8000.0))

	// COALESCE answers 0 when no tasks reference the board
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(cost\), 0\) as total FROM "tasks" WHERE board_id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(0.0))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "boards" SET .* WHERE id = .*`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := aggregator.Recalculate(context.Background(), boardID)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAggregator_Recalculate_BoardNotFound(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	aggregator := budget.NewAggregator(gormDB)

	boardID := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM "boards" WHERE id = .*`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Act
	err := aggregator.Recalculate(context.Background(), boardID)

	// Assert
	assert.ErrorIs(t, err, repository.ErrBoardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
