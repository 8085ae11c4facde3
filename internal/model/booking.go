package model

import "time"

// PaymentMode is how the customer pays for a rental.
type PaymentMode string

const (
	PaymentModeUPI  PaymentMode = "UPI"
	PaymentModeCash PaymentMode = "Cash"
)

// Booking represents a single vehicle-rental reservation with its
// identity-verification evidence. This is a pure domain model with no
// database-specific dependencies or tags; it is shared across the HTTP,
// service, and repository layers.
//
// AadharPhoto and LicensePhoto hold stored-file references (URL paths)
// produced by the photo intake, never raw client input. TxnID is nil unless
// the payment mode is UPI. A booking is created once and never updated.
type Booking struct {
	BookingID    string      `json:"bookingId"`
	Name         string      `json:"name"`
	Contact      string      `json:"contact"`
	Aadhar       string      `json:"aadhar"`
	AadharPhoto  string      `json:"aadharPhoto"`
	License      string      `json:"license"`
	LicensePhoto string      `json:"licensePhoto"`
	Pickup       string      `json:"pickup"`
	Drop         string      `json:"drop"`
	PickupDate   time.Time   `json:"pickupDate"`
	ReturnDate   time.Time   `json:"returnDate"`
	PaymentMode  PaymentMode `json:"paymentMode"`
	TxnID        *string     `json:"txnId"`
	IDVerified   bool        `json:"idVerified"`
	CreatedAt    time.Time   `json:"createdAt"`
}
