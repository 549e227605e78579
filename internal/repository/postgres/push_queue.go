package postgres

import (
	"context"
	"database/sql"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository"
)

type pushQueueRepository struct {
	db *sql.DB
}

func NewPushQueueRepository(db *sql.DB) repository.PushQueueRepository {
	return &pushQueueRepository{db: db}
}

func (r *pushQueueRepository) Enqueue(ctx context.Context, item *domain.PushQueueItem) error {
	query := `INSERT INTO push_notification_queue (id, user_id, payload, status, attempts, last_error, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, item.ID, item.UserID, item.Payload,
		domain.PushQueueStatusPending, 0, "", time.Now())
	return err
}

// DequeuePending reads a batch of pending items oldest-first. The SKIP LOCKED
// row locks last only for the statement, so overlapping delivery is prevented
// only while the single cron worker assumption holds.
func (r *pushQueueRepository) DequeuePending(ctx context.Context, limit int32) ([]domain.PushQueueItem, error) {
	query := `SELECT id, user_id, payload, status, attempts, last_error, created_at, processed_at
	          FROM push_notification_queue
	          WHERE status = $1
	          ORDER BY created_at
	          LIMIT $2
	          FOR UPDATE SKIP LOCKED`
	rows, err := r.db.QueryContext(ctx, query, domain.PushQueueStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PushQueueItem
	for rows.Next() {
		var item domain.PushQueueItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Payload, &item.Status,
			&item.Attempts, &item.LastError, &item.CreatedAt, &item.ProcessedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *pushQueueRepository) MarkSent(ctx context.Context, id string) error {
	query := `UPDATE push_notification_queue SET status=$1, processed_at=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, domain.PushQueueStatusSent, time.Now(), id)
	return err
}

// MarkRetry records a failed attempt but leaves the item pending, so the next
// queue run picks it up again.
func (r *pushQueueRepository) MarkRetry(ctx context.Context, id string, attempts int32, lastError string) error {
	query := `UPDATE push_notification_queue SET attempts=$1, last_error=$2 WHERE id=$3`
	_, err := r.db.ExecContext(ctx, query, attempts, lastError, id)
	return err
}

func (r *pushQueueRepository) MarkFailed(ctx context.Context, id string, attempts int32, lastError string) error {
	query := `UPDATE push_notification_queue SET status=$1, attempts=$2, last_error=$3, processed_at=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, domain.PushQueueStatusFailed, attempts, lastError, time.Now(), id)
	return err
}

func (r *pushQueueRepository) SaveSubscription(ctx context.Context, sub *domain.PushSubscription) error {
	query := `INSERT INTO push_subscriptions (id, user_id, endpoint, p256dh, auth, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          ON CONFLICT (endpoint) DO UPDATE SET p256dh = EXCLUDED.p256dh, auth = EXCLUDED.auth`
	_, err := r.db.ExecContext(ctx, query, sub.ID, sub.UserID, sub.Endpoint, sub.P256dh, sub.Auth, time.Now())
	return err
}

func (r *pushQueueRepository) ListSubscriptions(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	query := `SELECT id, user_id, endpoint, p256dh, auth, created_at FROM push_subscriptions WHERE user_id = $1`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.PushSubscription
	for rows.Next() {
		var sub domain.PushSubscription
		if err := rows.Scan(&sub.ID, &sub.UserID, &sub.Endpoint, &sub.P256dh, &sub.Auth, &sub.CreatedAt); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (r *pushQueueRepository) DeleteSubscription(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM push_subscriptions WHERE id = $1`, id)
	return err
}
