package repository

import (
	"context"
	"errors"

	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/model"
)

// Package repository contains data access abstractions. Implementations
// live in subpackages (e.g. postgres) and hold no business logic.

// ErrDuplicateBookingID is returned by Create when the booking id already
// exists. The id generator is collision resistant but uniqueness is only
// enforced here, by the store's primary-key constraint.
var ErrDuplicateBookingID = errors.New("booking id already exists")

// MaxListLimit is the hard ceiling on ListRecent regardless of the
// caller-requested size.
const MaxListLimit = 200

// BookingRepository defines data access for bookings. Bookings are created
// once and read many times; there are no update or delete operations.
type BookingRepository interface {
	// Create inserts a new booking row. Returns ErrDuplicateBookingID when
	// the booking id collides with an existing row.
	Create(ctx context.Context, b *model.Booking) (*model.Booking, error)

	// FindByBookingID returns a booking by its public id.
	// Returns sql.ErrNoRows when no such booking exists.
	FindByBookingID(ctx context.Context, bookingID string) (*model.Booking, error)

	// ListRecent returns up to limit bookings ordered by creation time,
	// newest first. limit is clamped to MaxListLimit.
	ListRecent(ctx context.Context, limit int) ([]model.Booking, error)
}
