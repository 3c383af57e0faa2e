// repository/postgres.go
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rotatijuca/excursio-backend/models"
)

// PostgresStore is the database/sql implementation of Store.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgresStore over an initialized connection.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the tables used by the store when they are missing.
func (s *PostgresStore) EnsureSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS excursions (
			id SERIAL PRIMARY KEY,
			destination TEXT NOT NULL,
			neighborhood TEXT NOT NULL,
			trip_date TEXT NOT NULL,
			trip_time TEXT NOT NULL,
			meeting_point TEXT NOT NULL,
			maps_url TEXT NOT NULL DEFAULT '',
			price NUMERIC(10,2) NOT NULL,
			category TEXT NOT NULL,
			image TEXT NOT NULL DEFAULT '',
			organizer_name TEXT NOT NULL,
			organizer_rating DOUBLE PRECISION NOT NULL DEFAULT 0,
			organizer_reviews INT NOT NULL DEFAULT 0,
			itinerary TEXT NOT NULL DEFAULT '',
			min_participants INT NOT NULL DEFAULT 0,
			current_participants INT NOT NULL DEFAULT 0,
			spots_left INT NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS excursion_passengers (
			excursion_id INT NOT NULL REFERENCES excursions(id) ON DELETE CASCADE,
			position INT NOT NULL,
			passenger TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS payments (
			transaction_id TEXT PRIMARY KEY,
			method TEXT NOT NULL,
			amount NUMERIC(10,2) NOT NULL,
			organizer_amount NUMERIC(10,2) NOT NULL,
			platform_amount NUMERIC(10,2) NOT NULL,
			status TEXT NOT NULL,
			trip_title TEXT NOT NULL,
			organizer_name TEXT NOT NULL,
			payer_name TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			refund_date TEXT NOT NULL DEFAULT '',
			refund_reason TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS bookings (
			booking_code TEXT PRIMARY KEY,
			excursion_id INT NOT NULL,
			user_name TEXT NOT NULL,
			user_email TEXT NOT NULL DEFAULT '',
			destination TEXT NOT NULL,
			trip_date TEXT NOT NULL,
			status TEXT NOT NULL,
			rated BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			id SERIAL PRIMARY KEY,
			user_name TEXT NOT NULL,
			user_email TEXT NOT NULL DEFAULT '',
			rating INT NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			rating_date TEXT NOT NULL,
			trip_id INT NOT NULL DEFAULT 0,
			trip_destination TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS withdrawals (
			id BIGSERIAL PRIMARY KEY,
			amount NUMERIC(10,2) NOT NULL,
			side TEXT NOT NULL,
			status TEXT NOT NULL,
			bank_account TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS chat_messages (
			id BIGSERIAL PRIMARY KEY,
			excursion_id INT NOT NULL,
			user_name TEXT NOT NULL,
			message TEXT NOT NULL,
			is_organizer BOOLEAN NOT NULL DEFAULT FALSE,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS analytics (
			id INT PRIMARY KEY DEFAULT 1,
			data JSONB NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %v", err)
		}
	}
	return nil
}

// ListExcursions retrieves the full catalog with passenger rosters.
func (s *PostgresStore) ListExcursions() ([]models.Excursion, error) {
	rows, err := s.db.Query(
		`SELECT id, destination, neighborhood, trip_date, trip_time, meeting_point,
		        maps_url, price, category, image, organizer_name, organizer_rating,
		        organizer_reviews, itinerary, min_participants, current_participants, spots_left
		 FROM excursions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list excursions: %v", err)
	}
	defer rows.Close()

	var excursions []models.Excursion
	for rows.Next() {
		var e models.Excursion
		if err := rows.Scan(
			&e.ID, &e.Destination, &e.Neighborhood, &e.Date, &e.Time, &e.MeetingPoint,
			&e.MapsURL, &e.Price, &e.Category, &e.Image, &e.Organizer.Name, &e.Organizer.Rating,
			&e.Organizer.Reviews, &e.Itinerary, &e.MinParticipants, &e.CurrentParticipants, &e.SpotsLeft,
		); err != nil {
			return nil, fmt.Errorf("failed to scan excursion: %v", err)
		}
		e.RefreshIsPast(time.Now())
		excursions = append(excursions, e)
	}

	for i := range excursions {
		passengers, err := s.listPassengers(excursions[i].ID)
		if err != nil {
			return nil, err
		}
		excursions[i].Passengers = passengers
	}
	return excursions, nil
}

// GetExcursion retrieves one excursion by ID.
func (s *PostgresStore) GetExcursion(id int) (*models.Excursion, error) {
	var e models.Excursion
	err := s.db.QueryRow(
		`SELECT id, destination, neighborhood, trip_date, trip_time, meeting_point,
		        maps_url, price, category, image, organizer_name, organizer_rating,
		        organizer_reviews, itinerary, min_participants, current_participants, spots_left
		 FROM excursions WHERE id = $1`, id,
	).Scan(
		&e.ID, &e.Destination, &e.Neighborhood, &e.Date, &e.Time, &e.MeetingPoint,
		&e.MapsURL, &e.Price, &e.Category, &e.Image, &e.Organizer.Name, &e.Organizer.Rating,
		&e.Organizer.Reviews, &e.Itinerary, &e.MinParticipants, &e.CurrentParticipants, &e.SpotsLeft,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrExcursionNotFound
		}
		return nil, fmt.Errorf("failed to get excursion: %v", err)
	}

	e.RefreshIsPast(time.Now())
	passengers, err := s.listPassengers(e.ID)
	if err != nil {
		return nil, err
	}
	e.Passengers = passengers
	return &e, nil
}

func (s *PostgresStore) listPassengers(excursionID int) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT passenger FROM excursion_passengers WHERE excursion_id = $1 ORDER BY position",
		excursionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get passengers: %v", err)
	}
	defer rows.Close()

	var passengers []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan passenger: %v", err)
		}
		passengers = append(passengers, p)
	}
	return passengers, nil
}

// CreateExcursion inserts an excursion and its roster, assigning the ID.
func (s *PostgresStore) CreateExcursion(e *models.Excursion) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO excursions (destination, neighborhood, trip_date, trip_time, meeting_point,
		       maps_url, price, category, image, organizer_name, organizer_rating,
		       organizer_reviews, itinerary, min_participants, current_participants, spots_left)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		 RETURNING id`,
		e.Destination, e.Neighborhood, e.Date, e.Time, e.MeetingPoint,
		e.MapsURL, e.Price, e.Category, e.Image, e.Organizer.Name, e.Organizer.Rating,
		e.Organizer.Reviews, e.Itinerary, e.MinParticipants, e.CurrentParticipants, e.SpotsLeft,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("failed to insert excursion: %v", err)
	}

	if err := insertPassengers(tx, e.ID, e.Passengers); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateExcursion rewrites an excursion row and its roster.
func (s *PostgresStore) UpdateExcursion(e *models.Excursion) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`UPDATE excursions SET destination=$1, neighborhood=$2, trip_date=$3, trip_time=$4,
		        meeting_point=$5, maps_url=$6, price=$7, category=$8, image=$9,
		        organizer_name=$10, organizer_rating=$11, organizer_reviews=$12, itinerary=$13,
		        min_participants=$14, current_participants=$15, spots_left=$16
		 WHERE id=$17`,
		e.Destination, e.Neighborhood, e.Date, e.Time,
		e.MeetingPoint, e.MapsURL, e.Price, e.Category, e.Image,
		e.Organizer.Name, e.Organizer.Rating, e.Organizer.Reviews, e.Itinerary,
		e.MinParticipants, e.CurrentParticipants, e.SpotsLeft, e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update excursion: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrExcursionNotFound
	}

	if _, err := tx.Exec("DELETE FROM excursion_passengers WHERE excursion_id = $1", e.ID); err != nil {
		return fmt.Errorf("failed to clear passengers: %v", err)
	}
	if err := insertPassengers(tx, e.ID, e.Passengers); err != nil {
		return err
	}
	return tx.Commit()
}

func insertPassengers(tx *sql.Tx, excursionID int, passengers []string) error {
	for i, p := range passengers {
		if _, err := tx.Exec(
			"INSERT INTO excursion_passengers (excursion_id, position, passenger) VALUES ($1, $2, $3)",
			excursionID, i, p,
		); err != nil {
			return fmt.Errorf("failed to insert passenger: %v", err)
		}
	}
	return nil
}

// DeleteExcursion removes an excursion and, via cascade, its roster.
func (s *PostgresStore) DeleteExcursion(id int) error {
	result, err := s.db.Exec("DELETE FROM excursions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete excursion: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrExcursionNotFound
	}
	return nil
}

// AppendPayment inserts a ledger record.
func (s *PostgresStore) AppendPayment(p *models.PaymentRecord) error {
	_, err := s.db.Exec(
		`INSERT INTO payments (transaction_id, method, amount, organizer_amount, platform_amount,
		        status, trip_title, organizer_name, payer_name, created_at, refund_date, refund_reason)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		p.TransactionID, p.Method, p.Amount, p.OrganizerAmount, p.PlatformAmount,
		p.Status, p.TripTitle, p.OrganizerName, p.PayerName, p.Timestamp, p.RefundDate, p.RefundReason,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %v", err)
	}
	return nil
}

// ListPayments retrieves the ledger in insertion order.
func (s *PostgresStore) ListPayments() ([]models.PaymentRecord, error) {
	rows, err := s.db.Query(
		`SELECT transaction_id, method, amount, organizer_amount, platform_amount,
		        status, trip_title, organizer_name, payer_name, created_at, refund_date, refund_reason
		 FROM payments ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %v", err)
	}
	defer rows.Close()

	var payments []models.PaymentRecord
	for rows.Next() {
		var p models.PaymentRecord
		if err := rows.Scan(
			&p.TransactionID, &p.Method, &p.Amount, &p.OrganizerAmount, &p.PlatformAmount,
			&p.Status, &p.TripTitle, &p.OrganizerName, &p.PayerName, &p.Timestamp, &p.RefundDate, &p.RefundReason,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %v", err)
		}
		payments = append(payments, p)
	}
	return payments, nil
}

// GetPayment retrieves one ledger record by transaction ID.
func (s *PostgresStore) GetPayment(transactionID string) (*models.PaymentRecord, error) {
	var p models.PaymentRecord
	err := s.db.QueryRow(
		`SELECT transaction_id, method, amount, organizer_amount, platform_amount,
		        status, trip_title, organizer_name, payer_name, created_at, refund_date, refund_reason
		 FROM payments WHERE transaction_id = $1`, transactionID,
	).Scan(
		&p.TransactionID, &p.Method, &p.Amount, &p.OrganizerAmount, &p.PlatformAmount,
		&p.Status, &p.TripTitle, &p.OrganizerName, &p.PayerName, &p.Timestamp, &p.RefundDate, &p.RefundReason,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %v", err)
	}
	return &p, nil
}

// UpdatePayment rewrites a ledger record (refund mutation).
func (s *PostgresStore) UpdatePayment(p *models.PaymentRecord) error {
	result, err := s.db.Exec(
		`UPDATE payments SET status=$1, refund_date=$2, refund_reason=$3 WHERE transaction_id=$4`,
		p.Status, p.RefundDate, p.RefundReason, p.TransactionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update payment: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// ListBookings retrieves bookings, optionally restricted to one user.
func (s *PostgresStore) ListBookings(userName string) ([]models.Booking, error) {
	query := `SELECT booking_code, excursion_id, user_name, user_email, destination,
	                 trip_date, status, rated, created_at
	          FROM bookings`
	args := []interface{}{}
	if userName != "" {
		query += " WHERE LOWER(user_name) = LOWER($1)"
		args = append(args, userName)
	}
	query += " ORDER BY created_at"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %v", err)
	}
	defer rows.Close()

	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		if err := rows.Scan(
			&b.BookingCode, &b.ExcursionID, &b.UserName, &b.UserEmail, &b.Destination,
			&b.Date, &b.Status, &b.Rated, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %v", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, nil
}

// GetBookingByCode retrieves one booking.
func (s *PostgresStore) GetBookingByCode(code string) (*models.Booking, error) {
	var b models.Booking
	err := s.db.QueryRow(
		`SELECT booking_code, excursion_id, user_name, user_email, destination,
		        trip_date, status, rated, created_at
		 FROM bookings WHERE booking_code = $1`, code,
	).Scan(
		&b.BookingCode, &b.ExcursionID, &b.UserName, &b.UserEmail, &b.Destination,
		&b.Date, &b.Status, &b.Rated, &b.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %v", err)
	}
	return &b, nil
}

// AddBooking inserts a booking, rejecting a second live one by the same user
// against the same excursion.
func (s *PostgresStore) AddBooking(b *models.Booking) error {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM bookings
		 WHERE excursion_id = $1 AND LOWER(user_name) = LOWER($2) AND status <> 'Cancelada'`,
		b.ExcursionID, b.UserName,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check booking: %v", err)
	}
	if count > 0 {
		return ErrDuplicateBooking
	}

	_, err = s.db.Exec(
		`INSERT INTO bookings (booking_code, excursion_id, user_name, user_email,
		        destination, trip_date, status, rated, created_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		b.BookingCode, b.ExcursionID, b.UserName, b.UserEmail,
		b.Destination, b.Date, b.Status, b.Rated, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %v", err)
	}
	return nil
}

// UpdateBooking rewrites a booking row.
func (s *PostgresStore) UpdateBooking(b *models.Booking) error {
	result, err := s.db.Exec(
		`UPDATE bookings SET status=$1, rated=$2 WHERE booking_code=$3`,
		b.Status, b.Rated, b.BookingCode,
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %v", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// AddRating inserts a rating and assigns the ID.
func (s *PostgresStore) AddRating(r *models.Rating) error {
	err := s.db.QueryRow(
		`INSERT INTO ratings (user_name, user_email, rating, comment, rating_date, trip_id, trip_destination)
		 VALUES ($1,$2,$3,$4,$5,$6,$7) RETURNING id`,
		r.UserName, r.UserEmail, r.Rating, r.Comment, r.Date, r.TripID, r.TripDestination,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("failed to insert rating: %v", err)
	}
	return nil
}

// ListRatings retrieves ratings, optionally restricted to one excursion.
func (s *PostgresStore) ListRatings(tripID int) ([]models.Rating, error) {
	query := `SELECT id, user_name, user_email, rating, comment, rating_date, trip_id, trip_destination
	          FROM ratings`
	args := []interface{}{}
	if tripID != 0 {
		query += " WHERE trip_id = $1"
		args = append(args, tripID)
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %v", err)
	}
	defer rows.Close()

	var ratings []models.Rating
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(
			&r.ID, &r.UserName, &r.UserEmail, &r.Rating, &r.Comment, &r.Date, &r.TripID, &r.TripDestination,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %v", err)
		}
		ratings = append(ratings, r)
	}
	return ratings, nil
}

// AddWithdrawal inserts a withdrawal record and assigns the ID.
func (s *PostgresStore) AddWithdrawal(w *models.Withdrawal) error {
	err := s.db.QueryRow(
		`INSERT INTO withdrawals (amount, side, status, bank_account, created_at)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		w.Amount, w.Type, w.Status, w.BankAccount, w.Timestamp,
	).Scan(&w.ID)
	if err != nil {
		return fmt.Errorf("failed to insert withdrawal: %v", err)
	}
	return nil
}

// ListWithdrawals retrieves all withdrawal records in insertion order.
func (s *PostgresStore) ListWithdrawals() ([]models.Withdrawal, error) {
	rows, err := s.db.Query(
		"SELECT id, amount, side, status, bank_account, created_at FROM withdrawals ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %v", err)
	}
	defer rows.Close()

	var withdrawals []models.Withdrawal
	for rows.Next() {
		var w models.Withdrawal
		if err := rows.Scan(&w.ID, &w.Amount, &w.Type, &w.Status, &w.BankAccount, &w.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan withdrawal: %v", err)
		}
		withdrawals = append(withdrawals, w)
	}
	return withdrawals, nil
}

// AppendChatMessage inserts a chat message and assigns the ID.
func (s *PostgresStore) AppendChatMessage(m *models.ChatMessage) error {
	err := s.db.QueryRow(
		`INSERT INTO chat_messages (excursion_id, user_name, message, is_organizer, created_at)
		 VALUES ($1,$2,$3,$4,$5) RETURNING id`,
		m.ExcursionID, m.User, m.Text, m.IsOrganizer, m.Timestamp,
	).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to insert chat message: %v", err)
	}
	return nil
}

// ListChatMessages retrieves an excursion's chat in insertion order.
func (s *PostgresStore) ListChatMessages(excursionID int) ([]models.ChatMessage, error) {
	rows, err := s.db.Query(
		`SELECT id, excursion_id, user_name, message, is_organizer, created_at
		 FROM chat_messages WHERE excursion_id = $1 ORDER BY id`, excursionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %v", err)
	}
	defer rows.Close()

	var messages []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.ExcursionID, &m.User, &m.Text, &m.IsOrganizer, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %v", err)
		}
		messages = append(messages, m)
	}
	return messages, nil
}

// GetAnalytics loads the usage blob, creating a fresh session when absent.
func (s *PostgresStore) GetAnalytics() (*models.AnalyticsData, error) {
	var raw []byte
	err := s.db.QueryRow("SELECT data FROM analytics WHERE id = 1").Scan(&raw)
	if err == sql.ErrNoRows {
		now := time.Now()
		return &models.AnalyticsData{
			Session: models.SessionInfo{StartTime: now, LastActivity: now},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analytics: %v", err)
	}

	var data models.AnalyticsData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return &data, nil
}

// SaveAnalytics upserts the usage blob.
func (s *PostgresStore) SaveAnalytics(a *models.AnalyticsData) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode analytics: %v", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO analytics (id, data) VALUES (1, $1)
		 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data`, raw)
	if err != nil {
		return fmt.Errorf("failed to save analytics: %v", err)
	}
	return nil
}
