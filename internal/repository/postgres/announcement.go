package postgres

import (
	"context"
	"database/sql"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository"
)

type announcementRepository struct {
	db *sql.DB
}

func NewAnnouncementRepository(db *sql.DB) repository.AnnouncementRepository {
	return &announcementRepository{db: db}
}

func (r *announcementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	query := `INSERT INTO announcements (id, title, content, author_id, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Title, a.Content, a.AuthorID, time.Now())
	return err
}

func (r *announcementRepository) List(ctx context.Context, limit int32) ([]domain.Announcement, error) {
	query := `SELECT id, title, content, author_id, created_at FROM announcements ORDER BY created_at DESC LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var announcements []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.CreatedAt); err != nil {
			return nil, err
		}
		announcements = append(announcements, a)
	}
	return announcements, rows.Err()
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
