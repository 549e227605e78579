package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository"
)

type requestRepository struct {
	db *sql.DB
}

func NewRequestRepository(db *sql.DB) repository.RequestRepository {
	return &requestRepository{db: db}
}

const requestColumns = `id, user_id, status, due_date, approved_at, admin_notes, created_at, updated_at`

func scanRequest(row interface{ Scan(...any) error }) (*domain.GearRequest, error) {
	req := &domain.GearRequest{}
	err := row.Scan(&req.ID, &req.UserID, &req.Status, &req.DueDate, &req.ApprovedAt,
		&req.AdminNotes, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// Create inserts the request and its line rows. The lines live in
// gear_request_gears keyed by request id.
func (r *requestRepository) Create(ctx context.Context, req *domain.GearRequest) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	query := `INSERT INTO gear_requests (id, user_id, status, due_date, approved_at, admin_notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := tx.ExecContext(ctx, query, req.ID, req.UserID, req.Status, req.DueDate, req.ApprovedAt, req.AdminNotes, now, now); err != nil {
		return err
	}

	lineQuery := `INSERT INTO gear_request_gears (request_id, gear_id, quantity) VALUES ($1, $2, $3)`
	for _, line := range req.Lines {
		if _, err := tx.ExecContext(ctx, lineQuery, req.ID, line.GearID, line.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.GearRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM gear_requests WHERE id = $1`
	req, err := scanRequest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *requestRepository) loadLines(ctx context.Context, req *domain.GearRequest) error {
	rows, err := r.db.QueryContext(ctx, `SELECT gear_id, quantity FROM gear_request_gears WHERE request_id = $1`, req.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.RequestLine
		if err := rows.Scan(&line.GearID, &line.Quantity); err != nil {
			return err
		}
		req.Lines = append(req.Lines, line)
	}
	return rows.Err()
}

func (r *requestRepository) Update(ctx context.Context, req *domain.GearRequest) error {
	query := `UPDATE gear_requests SET status=$1, due_date=$2, approved_at=$3, admin_notes=$4, updated_at=$5 WHERE id=$6`
	result, err := r.db.ExecContext(ctx, query, req.Status, req.DueDate, req.ApprovedAt, req.AdminNotes, time.Now(), req.ID)
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

func (r *requestRepository) ListByUser(ctx context.Context, userID, status string, page, pageSize int32) ([]domain.GearRequest, int32, error) {
	return r.list(ctx, "user_id = $1", []interface{}{userID}, status, page, pageSize)
}

func (r *requestRepository) ListAll(ctx context.Context, status string, page, pageSize int32) ([]domain.GearRequest, int32, error) {
	return r.list(ctx, "1=1", nil, status, page, pageSize)
}

func (r *requestRepository) list(ctx context.Context, where string, args []interface{}, status string, page, pageSize int32) ([]domain.GearRequest, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + requestColumns + ` FROM gear_requests WHERE ` + where

	argIdx := len(args) + 1
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, status)
		argIdx++
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") as sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []domain.GearRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	for i := range requests {
		if err := r.loadLines(ctx, &requests[i]); err != nil {
			return nil, 0, err
		}
	}
	return requests, count, nil
}
