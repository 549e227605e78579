package postgres_test

import (
	"context"
	"testing"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNotificationRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	note := &domain.Notification{
		ID: "n1", UserID: "u1", Type: "request_approved",
		Title: "Approved", Message: "Your request was approved",
		Category: "gear_request", Priority: "high",
		Metadata: map[string]string{"request_id": "r1"},
	}

	mock.ExpectExec("INSERT INTO notifications").
		WithArgs(note.ID, note.UserID, note.Type, note.Title, note.Message,
			note.IsRead, note.Category, note.Priority, []byte(`{"request_id":"r1"}`),
			note.Link, note.ExpiresAt, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(ctx, note))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM notifications WHERE user_id = \\$1").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	rows := sqlmock.NewRows([]string{"id", "user_id", "type", "title", "message", "is_read", "category", "priority", "metadata", "link", "expires_at", "created_at"}).
		AddRow("n2", "u1", "checkin_approved", "Approved", "ok", false, "checkin", "normal", []byte(`{"gear_id":"g1"}`), "", nil, time.Now()).
		AddRow("n1", "u1", "request_created", "New", "submitted", true, "gear_request", "normal", nil, "", nil, time.Now())

	mock.ExpectQuery("SELECT (.+) FROM notifications WHERE user_id = \\$1 ORDER BY created_at DESC").
		WithArgs("u1", int32(20), int32(0)).
		WillReturnRows(rows)

	notes, total, err := repo.List(ctx, "u1", 20, 0)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), total)
	assert.Len(t, notes, 2)
	assert.Equal(t, "g1", notes[0].Metadata["gear_id"])
	assert.Nil(t, notes[1].Metadata)
}

func TestNotificationRepository_MarkAsRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read = TRUE WHERE id = \\$1 AND user_id = \\$2").
			WithArgs("n1", "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.MarkAsRead(ctx, "n1", "u1"))
	})

	t.Run("Wrong Owner", func(t *testing.T) {
		mock.ExpectExec("UPDATE notifications SET is_read = TRUE WHERE id = \\$1 AND user_id = \\$2").
			WithArgs("n1", "u2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.MarkAsRead(ctx, "n1", "u2"), domain.ErrNotFound)
	})
}

func TestNotificationRepository_DeleteExpired(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := postgres.NewNotificationRepository(db)
	ctx := context.Background()
	now := time.Now()

	mock.ExpectExec("DELETE FROM notifications WHERE expires_at IS NOT NULL AND expires_at < \\$1").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpired(ctx, now)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
}
