package postgres_test

import (
	"context"
	"testing"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository/postgres"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestPushQueueRepository_MarkRetry(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewPushQueueRepository(db)

	// Only attempts and last_error change; the row stays pending.
	mock.ExpectExec(`UPDATE push_notification_queue SET attempts=\$1, last_error=\$2 WHERE id=\$3`).
		WithArgs(int32(2), "endpoint returned status 500", "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.MarkRetry(context.Background(), "p1", 2, "endpoint returned status 500")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPushQueueRepository_MarkFailed(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := postgres.NewPushQueueRepository(db)

	mock.ExpectExec(`UPDATE push_notification_queue SET status=\$1, attempts=\$2, last_error=\$3, processed_at=\$4 WHERE id=\$5`).
		WithArgs(string(domain.PushQueueStatusFailed), int32(3), "gone for good", sqlmock.AnyArg(), "p1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.MarkFailed(context.Background(), "p1", 3, "gone for good")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
