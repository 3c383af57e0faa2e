// repository/store.go
package repository

import (
	"errors"

	"github.com/rotatijuca/excursio-backend/models"
)

var (
	// ErrExcursionNotFound is returned for lookups of unknown excursion IDs.
	ErrExcursionNotFound = errors.New("excursion not found")
	// ErrBookingNotFound is returned for lookups of unknown booking codes.
	ErrBookingNotFound = errors.New("booking not found")
	// ErrPaymentNotFound is returned for lookups of unknown transaction IDs.
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrDuplicateBooking is returned when a user already holds a booking
	// for the same excursion.
	ErrDuplicateBooking = errors.New("booking already exists for this excursion")
	// ErrCorruptSnapshot is returned when persisted state exists but cannot
	// be parsed. Distinct from "no data yet", which seeds defaults.
	ErrCorruptSnapshot = errors.New("snapshot data is corrupt")
	// ErrUnsupportedSchema is returned when a snapshot carries an unknown
	// schema version.
	ErrUnsupportedSchema = errors.New("unsupported snapshot schema version")
)

// Store is the persistence boundary for the whole application. The in-memory
// implementation mirrors the product's single-user keyed-JSON storage; the
// Postgres implementation serves real deployments.
type Store interface {
	// Excursions
	ListExcursions() ([]models.Excursion, error)
	GetExcursion(id int) (*models.Excursion, error)
	CreateExcursion(e *models.Excursion) error
	UpdateExcursion(e *models.Excursion) error
	DeleteExcursion(id int) error

	// Payment ledger (append-only except refund mutation)
	AppendPayment(p *models.PaymentRecord) error
	ListPayments() ([]models.PaymentRecord, error)
	GetPayment(transactionID string) (*models.PaymentRecord, error)
	UpdatePayment(p *models.PaymentRecord) error

	// Bookings
	ListBookings(userName string) ([]models.Booking, error)
	GetBookingByCode(code string) (*models.Booking, error)
	AddBooking(b *models.Booking) error
	UpdateBooking(b *models.Booking) error

	// Ratings
	AddRating(r *models.Rating) error
	ListRatings(tripID int) ([]models.Rating, error)

	// Withdrawals
	AddWithdrawal(w *models.Withdrawal) error
	ListWithdrawals() ([]models.Withdrawal, error)

	// Chat
	AppendChatMessage(m *models.ChatMessage) error
	ListChatMessages(excursionID int) ([]models.ChatMessage, error)

	// Analytics
	GetAnalytics() (*models.AnalyticsData, error)
	SaveAnalytics(a *models.AnalyticsData) error
}
