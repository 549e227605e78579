package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gearflow-backend/internal/domain"
	"gearflow-backend/internal/repository"

	"github.com/google/uuid"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

const bookingColumns = `id, requester_id, employee_name, reason, destination, date_of_use, time_slot, status, assigned_car_id, request_id, created_at, updated_at`

func scanBooking(row interface{ Scan(...any) error }) (*domain.CarBooking, error) {
	b := &domain.CarBooking{}
	err := row.Scan(&b.ID, &b.RequesterID, &b.EmployeeName, &b.Reason, &b.Destination,
		&b.DateOfUse, &b.TimeSlot, &b.Status, &b.AssignedCarID, &b.RequestID,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.CarBooking) error {
	query := `INSERT INTO car_bookings (id, requester_id, employee_name, reason, destination, date_of_use, time_slot, status, assigned_car_id, request_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	now := time.Now()
	_, err := r.db.ExecContext(ctx, query, b.ID, b.RequesterID, b.EmployeeName, b.Reason,
		b.Destination, b.DateOfUse, b.TimeSlot, b.Status, b.AssignedCarID, b.RequestID, now, now)
	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.CarBooking, error) {
	query := `SELECT ` + bookingColumns + ` FROM car_bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.CarBooking) error {
	query := `UPDATE car_bookings SET employee_name=$1, reason=$2, destination=$3, date_of_use=$4, time_slot=$5, status=$6, assigned_car_id=$7, request_id=$8, updated_at=$9 WHERE id=$10`
	result, err := r.db.ExecContext(ctx, query, b.EmployeeName, b.Reason, b.Destination,
		b.DateOfUse, b.TimeSlot, b.Status, b.AssignedCarID, b.RequestID, time.Now(), b.ID)
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

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM car_bookings WHERE id = $1`, id)
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

func (r *bookingRepository) ListByRequester(ctx context.Context, requesterID string, page, pageSize int32) ([]domain.CarBooking, int32, error) {
	offset := (page - 1) * pageSize

	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM car_bookings WHERE requester_id = $1`, requesterID).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + bookingColumns + ` FROM car_bookings WHERE requester_id = $1 ORDER BY date_of_use DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, requesterID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var bookings []domain.CarBooking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, 0, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, count, rows.Err()
}

func (r *bookingRepository) GetAssignedCar(ctx context.Context, bookingID string) (*domain.Car, error) {
	query := `SELECT c.id, c.label, c.plate, c.model FROM cars c
	          JOIN car_assignment ca ON ca.car_id = c.id
	          WHERE ca.booking_id = $1`
	car := &domain.Car{}
	err := r.db.QueryRowContext(ctx, query, bookingID).Scan(&car.ID, &car.Label, &car.Plate, &car.Model)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

func (r *bookingRepository) AssignCar(ctx context.Context, bookingID, carID string) error {
	query := `INSERT INTO car_assignment (id, booking_id, car_id, created_at) VALUES ($1, $2, $3, $4)
	          ON CONFLICT (booking_id) DO UPDATE SET car_id = EXCLUDED.car_id`
	_, err := r.db.ExecContext(ctx, query, uuid.NewString(), bookingID, carID, time.Now())
	return err
}
