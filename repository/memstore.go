// repository/memstore.go
package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/utils"
)

// SnapshotSchemaVersion tags the persisted JSON so future layouts can be
// migrated instead of silently misread.
const SnapshotSchemaVersion = 1

// snapshot is the on-disk shape of the store. The key names mirror the
// product's original storage keys.
type snapshot struct {
	SchemaVersion int                             `json:"schemaVersion"`
	Excursions    []models.Excursion              `json:"excursions_data"`
	Payments      []models.PaymentRecord          `json:"payments"`
	Bookings      []models.Booking                `json:"user_data"`
	Ratings       []models.Rating                 `json:"trip_ratings"`
	Withdrawals   []models.Withdrawal             `json:"withdrawals"`
	Chats         map[string][]models.ChatMessage `json:"chats"`
	Analytics     *models.AnalyticsData           `json:"user_analytics,omitempty"`
}

// MemStore is a mutex-guarded in-memory Store with an optional JSON snapshot
// file. Single writer; every mutation rewrites the snapshot.
type MemStore struct {
	mu           sync.Mutex
	snapshotPath string

	excursions  []models.Excursion
	payments    []models.PaymentRecord
	bookings    []models.Booking
	ratings     []models.Rating
	withdrawals []models.Withdrawal
	chats       map[int][]models.ChatMessage
	analytics   *models.AnalyticsData

	nextExcursionID  int
	nextRatingID     int
	nextWithdrawalID int64
	nextMessageID    int64
}

// NewMemStore creates a store seeded with sample data, or restored from the
// snapshot file when one exists. A missing file means "no data yet" and seeds
// defaults; an unreadable or unparseable file is reported, not replaced.
func NewMemStore(snapshotPath string) (*MemStore, error) {
	s := &MemStore{
		snapshotPath: snapshotPath,
		chats:        map[int][]models.ChatMessage{},
	}

	if snapshotPath != "" {
		data, err := os.ReadFile(snapshotPath)
		switch {
		case os.IsNotExist(err):
			s.seed()
			return s, nil
		case err != nil:
			return nil, fmt.Errorf("failed to read snapshot: %v", err)
		default:
			if err := s.restore(data); err != nil {
				return nil, err
			}
			return s, nil
		}
	}

	s.seed()
	return s, nil
}

func (s *MemStore) restore(data []byte) error {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if snap.SchemaVersion != SnapshotSchemaVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrUnsupportedSchema, snap.SchemaVersion, SnapshotSchemaVersion)
	}

	s.excursions = snap.Excursions
	s.payments = snap.Payments
	s.bookings = snap.Bookings
	s.ratings = snap.Ratings
	s.withdrawals = snap.Withdrawals
	s.chats = map[int][]models.ChatMessage{}
	for key, messages := range snap.Chats {
		id, err := strconv.Atoi(key)
		if err != nil {
			return fmt.Errorf("%w: bad chat key %q", ErrCorruptSnapshot, key)
		}
		s.chats[id] = messages
	}
	s.analytics = snap.Analytics

	for _, e := range s.excursions {
		if e.ID >= s.nextExcursionID {
			s.nextExcursionID = e.ID + 1
		}
	}
	for _, r := range s.ratings {
		if r.ID >= s.nextRatingID {
			s.nextRatingID = r.ID + 1
		}
	}
	for _, w := range s.withdrawals {
		if w.ID >= s.nextWithdrawalID {
			s.nextWithdrawalID = w.ID + 1
		}
	}
	for _, messages := range s.chats {
		for _, m := range messages {
			if m.ID >= s.nextMessageID {
				s.nextMessageID = m.ID + 1
			}
		}
	}
	return nil
}

// persist rewrites the snapshot file. Callers hold the mutex.
func (s *MemStore) persist() error {
	if s.snapshotPath == "" {
		return nil
	}

	snap := snapshot{
		SchemaVersion: SnapshotSchemaVersion,
		Excursions:    s.excursions,
		Payments:      s.payments,
		Bookings:      s.bookings,
		Ratings:       s.ratings,
		Withdrawals:   s.withdrawals,
		Chats:         map[string][]models.ChatMessage{},
		Analytics:     s.analytics,
	}
	for id, messages := range s.chats {
		snap.Chats[strconv.Itoa(id)] = messages
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %v", err)
	}

	tmp := s.snapshotPath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %v", err)
	}
	return os.Rename(tmp, s.snapshotPath)
}

// ListExcursions returns a copy of the catalog in insertion order.
func (s *MemStore) ListExcursions() ([]models.Excursion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Excursion, len(s.excursions))
	copy(out, s.excursions)
	return out, nil
}

// GetExcursion returns the excursion with the given ID.
func (s *MemStore) GetExcursion(id int) (*models.Excursion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.excursions {
		if e.ID == id {
			found := e
			return &found, nil
		}
	}
	return nil, ErrExcursionNotFound
}

// CreateExcursion stores a new excursion and assigns its ID.
func (s *MemStore) CreateExcursion(e *models.Excursion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e.ID = s.nextExcursionID
	s.nextExcursionID++
	s.excursions = append(s.excursions, *e)
	return s.persist()
}

// UpdateExcursion replaces the stored excursion with the same ID.
func (s *MemStore) UpdateExcursion(e *models.Excursion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.excursions {
		if s.excursions[i].ID == e.ID {
			s.excursions[i] = *e
			return s.persist()
		}
	}
	return ErrExcursionNotFound
}

// DeleteExcursion removes an excursion from the catalog.
func (s *MemStore) DeleteExcursion(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.excursions {
		if s.excursions[i].ID == id {
			s.excursions = append(s.excursions[:i], s.excursions[i+1:]...)
			return s.persist()
		}
	}
	return ErrExcursionNotFound
}

// AppendPayment adds a record to the end of the ledger.
func (s *MemStore) AppendPayment(p *models.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments = append(s.payments, *p)
	return s.persist()
}

// ListPayments returns the ledger in insertion order.
func (s *MemStore) ListPayments() ([]models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.PaymentRecord, len(s.payments))
	copy(out, s.payments)
	return out, nil
}

// GetPayment returns the record with the given transaction ID.
func (s *MemStore) GetPayment(transactionID string) (*models.PaymentRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.TransactionID == transactionID {
			found := p
			return &found, nil
		}
	}
	return nil, ErrPaymentNotFound
}

// UpdatePayment replaces the record with the same transaction ID.
func (s *MemStore) UpdatePayment(p *models.PaymentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.payments {
		if s.payments[i].TransactionID == p.TransactionID {
			s.payments[i] = *p
			return s.persist()
		}
	}
	return ErrPaymentNotFound
}

// ListBookings returns bookings, optionally restricted to one user. User
// names match case-insensitively, the same way the roster matches passengers.
func (s *MemStore) ListBookings(userName string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if userName == "" || utils.EqualNames(b.UserName, userName) {
			out = append(out, b)
		}
	}
	return out, nil
}

// GetBookingByCode returns the booking with the given code.
func (s *MemStore) GetBookingByCode(code string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bookings {
		if b.BookingCode == code {
			found := b
			return &found, nil
		}
	}
	return nil, ErrBookingNotFound
}

// AddBooking stores a booking, rejecting a second live booking by the same
// user against the same excursion.
func (s *MemStore) AddBooking(b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.bookings {
		if existing.ExcursionID == b.ExcursionID &&
			utils.EqualNames(existing.UserName, b.UserName) &&
			existing.Status != "Cancelada" {
			return ErrDuplicateBooking
		}
	}
	s.bookings = append(s.bookings, *b)
	return s.persist()
}

// UpdateBooking replaces the booking with the same code.
func (s *MemStore) UpdateBooking(b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bookings {
		if s.bookings[i].BookingCode == b.BookingCode {
			s.bookings[i] = *b
			return s.persist()
		}
	}
	return ErrBookingNotFound
}

// AddRating appends a rating and assigns its ID.
func (s *MemStore) AddRating(r *models.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.nextRatingID
	s.nextRatingID++
	s.ratings = append(s.ratings, *r)
	return s.persist()
}

// ListRatings returns ratings, optionally restricted to one excursion.
func (s *MemStore) ListRatings(tripID int) ([]models.Rating, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Rating
	for _, r := range s.ratings {
		if tripID == 0 || r.TripID == tripID {
			out = append(out, r)
		}
	}
	return out, nil
}

// AddWithdrawal appends a withdrawal record and assigns its ID.
func (s *MemStore) AddWithdrawal(w *models.Withdrawal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.ID = s.nextWithdrawalID
	s.nextWithdrawalID++
	s.withdrawals = append(s.withdrawals, *w)
	return s.persist()
}

// ListWithdrawals returns all withdrawal records in insertion order.
func (s *MemStore) ListWithdrawals() ([]models.Withdrawal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Withdrawal, len(s.withdrawals))
	copy(out, s.withdrawals)
	return out, nil
}

// AppendChatMessage stores a message in the excursion's chat and assigns its ID.
func (s *MemStore) AppendChatMessage(m *models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextMessageID
	s.nextMessageID++
	s.chats[m.ExcursionID] = append(s.chats[m.ExcursionID], *m)
	return s.persist()
}

// ListChatMessages returns an excursion's chat in insertion order.
func (s *MemStore) ListChatMessages(excursionID int) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := s.chats[excursionID]
	out := make([]models.ChatMessage, len(messages))
	copy(out, messages)
	return out, nil
}

// GetAnalytics returns the usage blob, creating a fresh session when absent.
func (s *MemStore) GetAnalytics() (*models.AnalyticsData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analytics == nil {
		now := time.Now()
		s.analytics = &models.AnalyticsData{
			Session: models.SessionInfo{StartTime: now, LastActivity: now},
		}
	}
	found := *s.analytics
	return &found, nil
}

// SaveAnalytics replaces the usage blob.
func (s *MemStore) SaveAnalytics(a *models.AnalyticsData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	saved := *a
	s.analytics = &saved
	return s.persist()
}
