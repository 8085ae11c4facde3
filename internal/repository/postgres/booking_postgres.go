package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/model"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/repository"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique-constraint errors.
const uniqueViolation = "23505"

// BookingPostgres is a PostgreSQL implementation of repository.BookingRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type BookingPostgres struct {
	db *sql.DB
}

// NewBookingPostgres creates a new BookingPostgres repository.
func NewBookingPostgres(db *sql.DB) *BookingPostgres {
	return &BookingPostgres{db: db}
}

var _ repository.BookingRepository = (*BookingPostgres)(nil)

const bookingColumns = `booking_id, name, contact, aadhar, aadhar_photo, license, license_photo,
		pickup, drop_location, pickup_date, return_date, payment_mode, txn_id, id_verified, created_at`

// Create inserts a new booking row and returns the stored record.
func (r *BookingPostgres) Create(ctx context.Context, b *model.Booking) (*model.Booking, error) {
	const q = `
		INSERT INTO bookings (booking_id, name, contact, aadhar, aadhar_photo, license, license_photo,
			pickup, drop_location, pickup_date, return_date, payment_mode, txn_id, id_verified, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING ` + bookingColumns
	row := r.db.QueryRowContext(ctx, q,
		b.BookingID,
		b.Name,
		b.Contact,
		b.Aadhar,
		b.AadharPhoto,
		b.License,
		b.LicensePhoto,
		b.Pickup,
		b.Drop,
		b.PickupDate,
		b.ReturnDate,
		b.PaymentMode,
		b.TxnID,
		b.IDVerified,
		b.CreatedAt,
	)
	out, err := scanBooking(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, repository.ErrDuplicateBookingID
		}
		return nil, err
	}
	return out, nil
}

// FindByBookingID fetches a single booking by its public id.
func (r *BookingPostgres) FindByBookingID(ctx context.Context, bookingID string) (*model.Booking, error) {
	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE booking_id = $1
	`
	return scanBooking(r.db.QueryRowContext(ctx, q, bookingID))
}

// ListRecent returns bookings newest first, clamped to MaxListLimit.
func (r *BookingPostgres) ListRecent(ctx context.Context, limit int) ([]model.Booking, error) {
	if limit <= 0 || limit > repository.MaxListLimit {
		limit = repository.MaxListLimit
	}

	const q = `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC, booking_id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(
			&b.BookingID,
			&b.Name,
			&b.Contact,
			&b.Aadhar,
			&b.AadharPhoto,
			&b.License,
			&b.LicensePhoto,
			&b.Pickup,
			&b.Drop,
			&b.PickupDate,
			&b.ReturnDate,
			&b.PaymentMode,
			&b.TxnID,
			&b.IDVerified,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

func scanBooking(row *sql.Row) (*model.Booking, error) {
	var b model.Booking
	if err := row.Scan(
		&b.BookingID,
		&b.Name,
		&b.Contact,
		&b.Aadhar,
		&b.AadharPhoto,
		&b.License,
		&b.LicensePhoto,
		&b.Pickup,
		&b.Drop,
		&b.PickupDate,
		&b.ReturnDate,
		&b.PaymentMode,
		&b.TxnID,
		&b.IDVerified,
		&b.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &b, nil
}
