package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

const profileColumns = `id, email, full_name, password_hash, role, status, notification_preferences, created_at, updated_at`

func scanProfile(row interface{ Scan(...any) error }) (*domain.Profile, error) {
	p := &domain.Profile{}
	var prefs []byte
	err := row.Scan(&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.Role, &p.Status, &prefs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(prefs) > 0 {
		if err := json.Unmarshal(prefs, &p.Preferences); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	prefs, err := json.Marshal(p.Preferences)
	if err != nil {
		return err
	}
	query := `INSERT INTO profiles (id, email, full_name, password_hash, role, status, notification_preferences, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	now := time.Now()
	_, err = r.db.ExecContext(ctx, query, p.ID, p.Email, p.FullName, p.PasswordHash, p.Role, p.Status, prefs, now, now)
	return err
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, id))
}

func (r *profileRepository) GetByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE email = $1`
	return scanProfile(r.db.QueryRowContext(ctx, query, email))
}

func (r *profileRepository) Update(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE profiles SET full_name=$1, role=$2, status=$3, updated_at=$4 WHERE id=$5`
	_, err := r.db.ExecContext(ctx, query, p.FullName, p.Role, p.Status, time.Now(), p.ID)
	return err
}

func (r *profileRepository) UpdatePreferences(ctx context.Context, id string, prefs domain.NotificationPreferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return err
	}
	query := `UPDATE profiles SET notification_preferences=$1, updated_at=$2 WHERE id=$3`
	result, err := r.db.ExecContext(ctx, query, raw, time.Now(), id)
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

func (r *profileRepository) ListActiveAdmins(ctx context.Context) ([]domain.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE role = $1 AND status = $2`
	rows, err := r.db.QueryContext(ctx, query, domain.ProfileRoleAdmin, domain.ProfileStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, *p)
	}
	return admins, rows.Err()
}
