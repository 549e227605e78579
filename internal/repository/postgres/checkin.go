package postgres

import (
	"context"
	"database/sql"
	"errors"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository"
)

type checkinRepository struct {
	db *sql.DB
}

func NewCheckinRepository(db *sql.DB) repository.CheckinRepository {
	return &checkinRepository{db: db}
}

const checkinColumns = `id, gear_id, user_id, request_id, status, condition, quantity, notes, damage_notes, checkin_date, approved_at, approved_by`

func scanCheckin(row interface{ Scan(...any) error }) (*domain.Checkin, error) {
	c := &domain.Checkin{}
	err := row.Scan(&c.ID, &c.GearID, &c.UserID, &c.RequestID, &c.Status, &c.Condition,
		&c.Quantity, &c.Notes, &c.DamageNotes, &c.CheckinDate, &c.ApprovedAt, &c.ApprovedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *checkinRepository) Create(ctx context.Context, c *domain.Checkin) error {
	query := `INSERT INTO checkins (id, gear_id, user_id, request_id, status, condition, quantity, notes, damage_notes, checkin_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.GearID, c.UserID, c.RequestID, c.Status,
		c.Condition, c.Quantity, c.Notes, c.DamageNotes, c.CheckinDate)
	return err
}

func (r *checkinRepository) GetByID(ctx context.Context, id string) (*domain.Checkin, error) {
	query := `SELECT ` + checkinColumns + ` FROM checkins WHERE id = $1`
	return scanCheckin(r.db.QueryRowContext(ctx, query, id))
}

func (r *checkinRepository) Update(ctx context.Context, c *domain.Checkin) error {
	query := `UPDATE checkins SET status=$1, condition=$2, notes=$3, damage_notes=$4, approved_at=$5, approved_by=$6 WHERE id=$7`
	result, err := r.db.ExecContext(ctx, query, c.Status, c.Condition, c.Notes, c.DamageNotes, c.ApprovedAt, c.ApprovedBy, c.ID)
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

func (r *checkinRepository) ListByUser(ctx context.Context, userID string, page, pageSize int32) ([]domain.Checkin, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM checkins WHERE user_id = $1`, userID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + checkinColumns + ` FROM checkins WHERE user_id = $1 ORDER BY checkin_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var checkins []domain.Checkin
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, 0, err
		}
		checkins = append(checkins, *c)
	}
	return checkins, count, rows.Err()
}

func (r *checkinRepository) ListPending(ctx context.Context) ([]domain.Checkin, error) {
	query := `SELECT ` + checkinColumns + ` FROM checkins WHERE status = $1 ORDER BY checkin_date`
	rows, err := r.db.QueryContext(ctx, query, domain.CheckinStatusPendingApproval)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkins []domain.Checkin
	for rows.Next() {
		c, err := scanCheckin(rows)
		if err != nil {
			return nil, err
		}
		checkins = append(checkins, *c)
	}
	return checkins, rows.Err()
}

// PendingGearIDs returns, per gear, the total quantity sitting in checkins
// that still await admin approval.
func (r *checkinRepository) PendingGearIDs(ctx context.Context) (map[string]int32, error) {
	query := `SELECT gear_id, COALESCE(SUM(quantity), 0) FROM checkins WHERE status = $1 GROUP BY gear_id`
	rows, err := r.db.QueryContext(ctx, query, domain.CheckinStatusPendingApproval)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pending := map[string]int32{}
	for rows.Next() {
		var gearID string
		var qty int32
		if err := rows.Scan(&gearID, &qty); err != nil {
			return nil, err
		}
		pending[gearID] = qty
	}
	return pending, rows.Err()
}
