package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/model"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/repository"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/storage"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/token"
)

// Sentinel errors double as the client-facing messages; the handler layer
// maps each kind to its HTTP status.
var (
	ErrMissingFields        = errors.New("All fields are required")
	ErrVerificationRequired = errors.New("Aadhaar must be verified before booking")
	ErrMissingDocuments     = errors.New("Aadhaar photo and License photo are required")
	ErrInvalidDate          = errors.New("Invalid pickup or return date")
	ErrUnsupportedMediaType = errors.New("Only image uploads are allowed")
	ErrPayloadTooLarge      = errors.New("File too large (max 5 MB)")
	ErrNotFound             = errors.New("Booking not found")
)

const (
	// MaxPhotoBytes is the per-file upload ceiling.
	MaxPhotoBytes = 5 << 20

	bookingIDPrefix   = "DH-"
	bookingIDTokenLen = 10

	// createAttempts bounds the regenerate-and-retry loop on a booking-id
	// collision before the error is surfaced to the caller.
	createAttempts = 3
)

// FileUpload is one photo part of a booking submission as received at the
// HTTP boundary. Reader is consumed exactly once, by the photo intake.
type FileUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// BookingInput carries the raw multipart form of a submission. All scalar
// fields are strings straight off the wire; normalization (dates, payment
// mode, verification flag) happens inside Submit, once, before any gate.
type BookingInput struct {
	Name        string
	Contact     string
	Aadhar      string
	License     string
	Pickup      string
	Drop        string
	PickupDate  string
	ReturnDate  string
	PaymentMode string
	TxnID       string
	IDVerified  string

	AadharPhoto  *FileUpload
	LicensePhoto *FileUpload
}

// BookingService defines the booking use cases.
type BookingService interface {
	// Submit runs the intake workflow: validation gates, photo storage,
	// id generation, and persistence. No compensating delete is performed
	// on the stored photos if persistence fails.
	Submit(ctx context.Context, in BookingInput) (*model.Booking, error)

	// Get returns a single booking by its public id.
	Get(ctx context.Context, bookingID string) (*model.Booking, error)

	// ListRecent returns up to limit bookings, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.Booking, error)
}

type bookingService struct {
	store storage.Storage
	repo  repository.BookingRepository
}

// NewBookingService constructs a new BookingService.
func NewBookingService(store storage.Storage, repo repository.BookingRepository) BookingService {
	return &bookingService{store: store, repo: repo}
}

// Truthy normalizes the verification flag from form-encoded transport.
// Only the literal "true" (any case, surrounding whitespace ignored)
// counts as set; absent, "false", and every other value do not.
func Truthy(v string) bool {
	return strings.EqualFold(strings.TrimSpace(v), "true")
}

func (s *bookingService) Submit(ctx context.Context, in BookingInput) (*model.Booking, error) {
	// Gate 1: all required text fields present
	required := []string{
		in.Name, in.Contact, in.Aadhar, in.License,
		in.Pickup, in.Drop, in.PickupDate, in.ReturnDate,
	}
	for _, v := range required {
		if strings.TrimSpace(v) == "" {
			return nil, ErrMissingFields
		}
	}

	// Gate 2: identity verification confirmed by the submitter
	if !Truthy(in.IDVerified) {
		return nil, ErrVerificationRequired
	}

	// Gate 3: both document photos attached
	if in.AadharPhoto == nil || in.LicensePhoto == nil {
		return nil, ErrMissingDocuments
	}

	pickupDate, err := parseDate(in.PickupDate)
	if err != nil {
		return nil, ErrInvalidDate
	}
	returnDate, err := parseDate(in.ReturnDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	aadharRef, err := s.storePhoto(ctx, in.AadharPhoto)
	if err != nil {
		return nil, err
	}
	licenseRef, err := s.storePhoto(ctx, in.LicensePhoto)
	if err != nil {
		return nil, err
	}

	paymentMode := normalizePaymentMode(in.PaymentMode)
	var txnID *string
	if t := strings.TrimSpace(in.TxnID); t != "" && paymentMode == model.PaymentModeUPI {
		txnID = &t
	}

	b := &model.Booking{
		Name:         strings.TrimSpace(in.Name),
		Contact:      strings.TrimSpace(in.Contact),
		Aadhar:       strings.TrimSpace(in.Aadhar),
		AadharPhoto:  aadharRef,
		License:      strings.TrimSpace(in.License),
		LicensePhoto: licenseRef,
		Pickup:       strings.TrimSpace(in.Pickup),
		Drop:         strings.TrimSpace(in.Drop),
		PickupDate:   pickupDate,
		ReturnDate:   returnDate,
		PaymentMode:  paymentMode,
		TxnID:        txnID,
		IDVerified:   true,
	}

	// Uniqueness lives in the store's key constraint; on the rare
	// collision, regenerate the id a bounded number of times. Stored
	// photos are deliberately left in place if persistence fails.
	var stored *model.Booking
	for attempt := 0; attempt < createAttempts; attempt++ {
		b.BookingID = bookingIDPrefix + token.New(bookingIDTokenLen)
		b.CreatedAt = time.Now().UTC()

		stored, err = s.repo.Create(ctx, b)
		if err == nil {
			return stored, nil
		}
		if !errors.Is(err, repository.ErrDuplicateBookingID) {
			return nil, fmt.Errorf("create booking: %w", err)
		}
	}
	return nil, fmt.Errorf("create booking: %w", err)
}

// Get returns a booking by its public id.
func (s *bookingService) Get(ctx context.Context, bookingID string) (*model.Booking, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, ErrNotFound
	}
	b, err := s.repo.FindByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// ListRecent returns bookings newest first, never more than the store ceiling.
func (s *bookingService) ListRecent(ctx context.Context, limit int) ([]model.Booking, error) {
	if limit <= 0 || limit > repository.MaxListLimit {
		limit = repository.MaxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

// storePhoto is the file intake for one declared slot: content-type filter,
// size ceiling, then storage under a generated name. The returned reference
// is the URL path the photo is served back under.
func (s *bookingService) storePhoto(ctx context.Context, f *FileUpload) (string, error) {
	if !strings.HasPrefix(f.ContentType, "image/") {
		return "", ErrUnsupportedMediaType
	}
	if f.Size > MaxPhotoBytes {
		return "", ErrPayloadTooLarge
	}

	ext := strings.ToLower(filepath.Ext(f.Filename))
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), token.New(8), ext)

	_, err := s.store.Put(ctx, name, f.Reader, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		Metadata: map[string]string{
			"original-filename": f.Filename,
		},
	})
	if err != nil {
		return "", fmt.Errorf("store photo: %w", err)
	}
	return "/uploads/" + name, nil
}

func parseDate(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

func normalizePaymentMode(v string) model.PaymentMode {
	if strings.EqualFold(strings.TrimSpace(v), string(model.PaymentModeCash)) {
		return model.PaymentModeCash
	}
	return model.PaymentModeUPI
}
