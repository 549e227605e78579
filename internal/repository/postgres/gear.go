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

type gearRepository struct {
	db *sql.DB
}

func NewGearRepository(db *sql.DB) repository.GearRepository {
	return &gearRepository{db: db}
}

const gearColumns = `id, name, category, description, status, quantity, available_quantity, checked_out_to, due_date, current_request_id, condition, image_url, created_at, updated_at`

func scanGear(row interface{ Scan(...any) error }) (*domain.Gear, error) {
	g := &domain.Gear{}
	err := row.Scan(&g.ID, &g.Name, &g.Category, &g.Description, &g.Status, &g.Quantity,
		&g.AvailableQuantity, &g.CheckedOutTo, &g.DueDate, &g.CurrentRequestID,
		&g.Condition, &g.ImageURL, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *gearRepository) Create(ctx context.Context, g *domain.Gear) error {
	query := `INSERT INTO gears (id, name, category, description, status, quantity, available_quantity, checked_out_to, due_date, current_request_id, condition, image_url, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, g.ID, g.Name, g.Category, g.Description, g.Status,
		g.Quantity, g.AvailableQuantity, g.CheckedOutTo, g.DueDate, g.CurrentRequestID,
		g.Condition, g.ImageURL, now, now)
	return err
}

func (r *gearRepository) GetByID(ctx context.Context, id string) (*domain.Gear, error) {
	query := `SELECT ` + gearColumns + ` FROM gears WHERE id = $1`
	return scanGear(r.db.QueryRowContext(ctx, query, id))
}

func (r *gearRepository) Update(ctx context.Context, g *domain.Gear) error {
	query := `UPDATE gears SET name=$1, category=$2, description=$3, status=$4, quantity=$5, available_quantity=$6, checked_out_to=$7, due_date=$8, current_request_id=$9, condition=$10, image_url=$11, updated_at=$12 WHERE id=$13`
	result, err := r.db.ExecContext(ctx, query, g.Name, g.Category, g.Description, g.Status,
		g.Quantity, g.AvailableQuantity, g.CheckedOutTo, g.DueDate, g.CurrentRequestID,
		g.Condition, g.ImageURL, time.Now(), g.ID)
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

func (r *gearRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gears WHERE id = $1`, id)
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

func (r *gearRepository) List(ctx context.Context, category, status string, page, pageSize int32) ([]domain.Gear, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + gearColumns + ` FROM gears WHERE 1=1`

	args := []interface{}{}
	argIdx := 1
	if category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, category)
		argIdx++
	}
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

	query += fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var gears []domain.Gear
	for rows.Next() {
		g, err := scanGear(rows)
		if err != nil {
			return nil, 0, err
		}
		gears = append(gears, *g)
	}
	return gears, count, rows.Err()
}

func (r *gearRepository) ListAll(ctx context.Context) ([]domain.Gear, error) {
	query := `SELECT ` + gearColumns + ` FROM gears ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gears []domain.Gear
	for rows.Next() {
		g, err := scanGear(rows)
		if err != nil {
			return nil, err
		}
		gears = append(gears, *g)
	}
	return gears, rows.Err()
}
