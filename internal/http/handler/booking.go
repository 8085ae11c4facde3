package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/repository"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/service"
	"github.com/Sudarshanjadhavsukhadev/goridezz/internal/storage"
)

// Root is the service banner endpoint.
func Root() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"msg": "Vehicle rental booking API is running"})
	}
}

// HealthCheck reports readiness by pinging the database.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness check with no dependencies.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// CreateBooking handles the multipart booking submission
// (POST /api/bookings). Field extraction happens here; every gate and all
// normalization live in the service.
func CreateBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		in := service.BookingInput{
			Name:        c.FormValue("name"),
			Contact:     c.FormValue("contact"),
			Aadhar:      c.FormValue("aadhar"),
			License:     c.FormValue("license"),
			Pickup:      c.FormValue("pickup"),
			Drop:        c.FormValue("drop"),
			PickupDate:  c.FormValue("pickupDate"),
			ReturnDate:  c.FormValue("returnDate"),
			PaymentMode: c.FormValue("paymentMode"),
			TxnID:       c.FormValue("txnId"),
			IDVerified:  c.FormValue("idVerified"),
		}

		aadharFile, aadharClose, err := openFormFile(c, "aadharPhoto")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Cannot read uploaded file")
		}
		if aadharClose != nil {
			defer aadharClose()
		}
		in.AadharPhoto = aadharFile

		licenseFile, licenseClose, err := openFormFile(c, "licensePhoto")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Cannot read uploaded file")
		}
		if licenseClose != nil {
			defer licenseClose()
		}
		in.LicensePhoto = licenseFile

		booking, err := svc.Submit(c.UserContext(), in)
		if err != nil {
			if status, ok := submitErrorStatus(err); ok {
				return writeError(c, status, err.Error())
			}
			log.Printf("create booking failed: %v", err)
			return writeError(c, fiber.StatusInternalServerError, "Server error")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message":   "Booking created successfully",
			"bookingId": booking.BookingID,
			"booking":   booking,
		})
	}
}

// GetBooking returns a single booking by its public id.
func GetBooking(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		booking, err := svc.Get(c.UserContext(), c.Params("bookingId"))
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, err.Error())
			}
			log.Printf("get booking failed: %v", err)
			return writeError(c, fiber.StatusInternalServerError, "Server error")
		}
		return c.JSON(fiber.Map{"booking": booking})
	}
}

// ListBookings returns recent bookings, newest first, capped at the store
// ceiling regardless of the requested limit.
func ListBookings(svc service.BookingService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", strconv.Itoa(repository.MaxListLimit))
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid limit")
		}

		bookings, err := svc.ListRecent(c.UserContext(), limit)
		if err != nil {
			log.Printf("list bookings failed: %v", err)
			return writeError(c, fiber.StatusInternalServerError, "Server error")
		}
		return c.JSON(fiber.Map{"bookings": bookings})
	}
}

// ServeUpload streams a previously stored photo (GET /uploads/:name).
// Going through the Storage interface keeps the route working for both the
// local-disk and object-store drivers.
func ServeUpload(store storage.Storage) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rc, info, err := store.Get(c.UserContext(), c.Params("name"))
		if err != nil {
			if errors.Is(err, storage.ErrKeyNotFound) {
				return writeError(c, fiber.StatusNotFound, "File not found")
			}
			log.Printf("serve upload failed: %v", err)
			return writeError(c, fiber.StatusInternalServerError, "Server error")
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		return c.SendStream(rc, int(info.Size))
	}
}

// openFormFile opens one optional multipart file part. A missing part is not
// an error here; absence is judged by the workflow's document gate.
func openFormFile(c *fiber.Ctx, field string) (*service.FileUpload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		// fiber reports both "no such part" and malformed bodies the same
		// way; treat either as an absent slot
		return nil, nil, nil
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}

	return &service.FileUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: formFileContentType(fh),
		Size:        fh.Size,
	}, func() { f.Close() }, nil
}

func formFileContentType(fh *multipart.FileHeader) string {
	if ct := fh.Header.Get(fiber.HeaderContentType); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func submitErrorStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrVerificationRequired),
		errors.Is(err, service.ErrMissingDocuments),
		errors.Is(err, service.ErrInvalidDate):
		return fiber.StatusBadRequest, true
	case errors.Is(err, service.ErrUnsupportedMediaType):
		return fiber.StatusUnsupportedMediaType, true
	case errors.Is(err, service.ErrPayloadTooLarge):
		return fiber.StatusRequestEntityTooLarge, true
	}
	return 0, false
}
