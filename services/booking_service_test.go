package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/repository"
	"github.com/rotatijuca/excursio-backend/utils"
)

type bookingFixture struct {
	store      repository.Store
	excursions *ExcursionService
	bookings   *BookingService
	ledger     *LedgerService
}

func newBookingFixture(t *testing.T) *bookingFixture {
	store, err := repository.NewMemStore("")
	assert.NoError(t, err)
	return newBookingFixtureOver(store)
}

func newBookingFixtureOver(store repository.Store) *bookingFixture {
	hub := NewEventHub()
	ledger := NewLedgerService(store)
	excursions := NewExcursionService(store, hub)
	payments := NewPaymentService(ledger, NewSplitService(), hub, 0)
	return &bookingFixture{
		store:      store,
		excursions: excursions,
		bookings:   NewBookingService(store, excursions, payments, hub),
		ledger:     ledger,
	}
}

// faultyStore wraps a Store and fails selected booking writes.
type faultyStore struct {
	repository.Store
	failAddBooking      bool
	failUpdateBooking   bool
	failUpdateExcursion bool
}

func (s *faultyStore) AddBooking(b *models.Booking) error {
	if s.failAddBooking {
		return errors.New("write failed")
	}
	return s.Store.AddBooking(b)
}

func (s *faultyStore) UpdateBooking(b *models.Booking) error {
	if s.failUpdateBooking {
		return errors.New("write failed")
	}
	return s.Store.UpdateBooking(b)
}

func (s *faultyStore) UpdateExcursion(e *models.Excursion) error {
	if s.failUpdateExcursion {
		return errors.New("write failed")
	}
	return s.Store.UpdateExcursion(e)
}

// futureExcursion adds an upcoming trip to the catalog for booking tests.
func (f *bookingFixture) futureExcursion(t *testing.T, capacity, minParticipants int) *models.Excursion {
	e, err := f.excursions.Create(&models.CreateExcursionRequest{
		Destination:     "Praia Grande",
		Neighborhood:    "Tijuca",
		Date:            "2030-03-15",
		Time:            "07:00",
		MeetingPoint:    "Praça Saens Peña",
		Price:           95.50,
		Category:        utils.CategoryBeach,
		OrganizerName:   "Beto Viagens",
		Capacity:        capacity,
		MinParticipants: minParticipants,
	})
	assert.NoError(t, err)
	return e
}

func pixRequest(excursionID int, userName string) *models.BookRequest {
	return &models.BookRequest{
		UserName:    userName,
		UserEmail:   "user@email.com",
		ExcursionID: excursionID,
		Payment:     models.PaymentDetails{Method: utils.MethodPix},
	}
}

func TestBookingService_Book_ConfirmedWhenNoQuorum(t *testing.T) {
	f := newBookingFixture(t)
	e := f.futureExcursion(t, 10, 0)

	response, err := f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.NoError(t, err)

	booking := response.Booking
	assert.Equal(t, utils.BookingConfirmed, booking.Status)
	assert.Equal(t, "Praia Grande", booking.Destination)
	assert.False(t, booking.Rated)

	// Code shape: 5 letters of the destination, 2 of the user, 4 random.
	parts := strings.Split(booking.BookingCode, "-")
	assert.Len(t, parts, 3)
	assert.Equal(t, "PRAIA", parts[0])
	assert.Equal(t, "RA", parts[1])
	assert.Len(t, parts[2], 4)

	// The payment settled as completed with the 85/15 split.
	assert.Equal(t, utils.PaymentCompleted, response.Payment.Status)
	assert.Equal(t, 81.18, response.Payment.OrganizerAmount)
	assert.Equal(t, 14.32, response.Payment.PlatformAmount)

	// The seat was taken.
	after, err := f.excursions.GetByID(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, after.CurrentParticipants)
	assert.Equal(t, 9, after.SpotsLeft)
	assert.Contains(t, after.Passengers, "Rafael Mota")
}

func TestBookingService_Book_AwaitsGroupBelowQuorum(t *testing.T) {
	f := newBookingFixture(t)
	e := f.futureExcursion(t, 10, 3)

	response, err := f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.NoError(t, err)
	assert.Equal(t, utils.BookingAwaitingGroup, response.Booking.Status)
}

func TestBookingService_Book_DuplicateRejected(t *testing.T) {
	f := newBookingFixture(t)
	e := f.futureExcursion(t, 10, 0)

	_, err := f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.NoError(t, err)

	// Same user, different spacing and casing.
	_, err = f.bookings.Book(context.Background(), pixRequest(e.ID, "  Rafael  Mota "))
	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 409, appErr.Code)

	_, err = f.bookings.Book(context.Background(), pixRequest(e.ID, "RAFAEL MOTA"))
	assert.Error(t, err)
	appErr, ok = err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 409, appErr.Code)

	// Only one seat was taken.
	after, err := f.excursions.GetByID(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, after.CurrentParticipants)
}

func TestBookingService_Book_SoldOut(t *testing.T) {
	f := newBookingFixture(t)
	e := f.futureExcursion(t, 1, 0)

	_, err := f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.NoError(t, err)

	_, err = f.bookings.Book(context.Background(), pixRequest(e.ID, "Ana Silva"))
	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
}

func TestBookingService_Book_PastExcursion(t *testing.T) {
	f := newBookingFixture(t)

	// Seeded Petrópolis trip is dated 2024.
	_, err := f.bookings.Book(context.Background(), pixRequest(4, "Rafael Mota"))
	assert.Error(t, err)
}

func TestBookingService_Book_DeclinedPaymentTakesNoSeat(t *testing.T) {
	f := newBookingFixture(t)
	e := f.futureExcursion(t, 10, 0)

	request := pixRequest(e.ID, "Rafael Mota")
	request.Payment = models.PaymentDetails{
		Method:     utils.MethodCredit,
		CardNumber: "4242 4242 4242 4243",
		CardName:   "RAFAEL M MOTA",
		CardExpiry: "12/28",
		CardCVV:    "123",
	}

	_, err := f.bookings.Book(context.Background(), request)
	assert.Error(t, err)

	after, err := f.excursions.GetByID(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, after.CurrentParticipants)

	bookings, err := f.bookings.ListForUser("Rafael Mota")
	assert.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestBookingService_Book_StoreFailureBacksOutPaymentAndSeat(t *testing.T) {
	store, err := repository.NewMemStore("")
	assert.NoError(t, err)
	faulty := &faultyStore{Store: store, failAddBooking: true}
	f := newBookingFixtureOver(faulty)
	e := f.futureExcursion(t, 10, 0)

	_, err = f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.Error(t, err)

	// No booking exists and the seat was given back.
	bookings, err := f.bookings.ListForUser("Rafael Mota")
	assert.NoError(t, err)
	assert.Empty(t, bookings)

	after, err := f.excursions.GetByID(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, after.CurrentParticipants)
	assert.Equal(t, 10, after.SpotsLeft)

	// The payment was backed out of the ledger, so it cannot count toward
	// the withdrawable balances.
	records, err := f.ledger.List()
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, utils.PaymentRefunded, records[0].Status)

	summary, err := f.ledger.CompletedSummary()
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.TransactionCount)
	assert.Equal(t, 0.0, summary.OrganizerTotal)
}

func TestBookingService_Book_RosterFailureRefundsPayment(t *testing.T) {
	store, err := repository.NewMemStore("")
	assert.NoError(t, err)
	faulty := &faultyStore{Store: store}
	f := newBookingFixtureOver(faulty)
	e := f.futureExcursion(t, 10, 0)

	// The roster write fails after the payment has settled.
	faulty.failUpdateExcursion = true
	_, err = f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.Error(t, err)

	records, err := f.ledger.List()
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Equal(t, utils.PaymentRefunded, records[0].Status)

	summary, err := f.ledger.CompletedSummary()
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.TransactionCount)
}

func TestBookingService_Cancel_StoreFailureRestoresSeat(t *testing.T) {
	store, err := repository.NewMemStore("")
	assert.NoError(t, err)
	faulty := &faultyStore{Store: store}
	f := newBookingFixtureOver(faulty)
	e := f.futureExcursion(t, 10, 0)

	response, err := f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.NoError(t, err)

	faulty.failUpdateBooking = true
	_, err = f.bookings.Cancel(response.Booking.BookingCode)
	assert.Error(t, err)

	// The cancellation failed outright: the booking is still live and the
	// seat is still taken.
	booking, err := f.bookings.GetByCode(response.Booking.BookingCode)
	assert.NoError(t, err)
	assert.Equal(t, utils.BookingConfirmed, booking.Status)

	after, err := f.excursions.GetByID(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, 1, after.CurrentParticipants)
	assert.Contains(t, after.Passengers, "Rafael Mota")
}

func TestBookingService_Cancel_FreesSeat(t *testing.T) {
	f := newBookingFixture(t)
	e := f.futureExcursion(t, 10, 0)

	response, err := f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.NoError(t, err)

	cancelled, err := f.bookings.Cancel(response.Booking.BookingCode)
	assert.NoError(t, err)
	assert.Equal(t, utils.BookingCancelled, cancelled.Status)

	after, err := f.excursions.GetByID(e.ID)
	assert.NoError(t, err)
	assert.Equal(t, 0, after.CurrentParticipants)
	assert.Equal(t, 10, after.SpotsLeft)

	// Cancelling twice is a conflict.
	_, err = f.bookings.Cancel(response.Booking.BookingCode)
	assert.Error(t, err)

	// A cancelled booking no longer blocks rebooking.
	_, err = f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.NoError(t, err)
}

func TestBookingService_UpdateStatus(t *testing.T) {
	f := newBookingFixture(t)
	e := f.futureExcursion(t, 10, 0)

	response, err := f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.NoError(t, err)

	updated, err := f.bookings.UpdateStatus(response.Booking.BookingCode, utils.BookingCompleted)
	assert.NoError(t, err)
	assert.Equal(t, utils.BookingCompleted, updated.Status)

	_, err = f.bookings.UpdateStatus(response.Booking.BookingCode, "Pendente")
	assert.Error(t, err)

	_, err = f.bookings.UpdateStatus("NOPE-XX-0000", utils.BookingConfirmed)
	assert.Error(t, err)
}

func TestBookingService_Rate(t *testing.T) {
	f := newBookingFixture(t)

	// A completed trip from last year.
	booking := &models.Booking{
		ExcursionID: 4,
		UserName:    "Maria Clara",
		Destination: "Tour Histórico em Petrópolis",
		Date:        "2024-07-20",
		Status:      utils.BookingCompleted,
		BookingCode: "TOURH-MC-AB12",
		CreatedAt:   time.Now(),
	}
	assert.NoError(t, f.store.AddBooking(booking))

	rating, err := f.bookings.Rate("TOURH-MC-AB12", &models.RateTripRequest{Rating: 5, Comment: "Excelente!"})
	assert.NoError(t, err)
	assert.Equal(t, 5, rating.Rating)
	assert.Equal(t, 4, rating.TripID)
	assert.Equal(t, "Maria Clara", rating.UserName)

	// The rating shows up in the trip's review list.
	ratings, err := f.bookings.RatingsForTrip(4)
	assert.NoError(t, err)
	assert.Len(t, ratings, 1)

	// A booking can be rated only once.
	_, err = f.bookings.Rate("TOURH-MC-AB12", &models.RateTripRequest{Rating: 4})
	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 409, appErr.Code)
}

func TestBookingService_Rate_Validation(t *testing.T) {
	f := newBookingFixture(t)
	e := f.futureExcursion(t, 10, 0)

	response, err := f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.NoError(t, err)

	// Upcoming trips cannot be rated yet.
	_, err = f.bookings.Rate(response.Booking.BookingCode, &models.RateTripRequest{Rating: 5})
	assert.Error(t, err)

	// The scale is 1..5.
	_, err = f.bookings.Rate(response.Booking.BookingCode, &models.RateTripRequest{Rating: 6})
	assert.Error(t, err)
	_, err = f.bookings.Rate(response.Booking.BookingCode, &models.RateTripRequest{Rating: 0})
	assert.Error(t, err)
}

func TestBookingService_ListForUser(t *testing.T) {
	f := newBookingFixture(t)
	e := f.futureExcursion(t, 10, 0)

	_, err := f.bookings.Book(context.Background(), pixRequest(e.ID, "Rafael Mota"))
	assert.NoError(t, err)

	mine, err := f.bookings.ListForUser("Rafael Mota")
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.False(t, mine[0].IsPast)

	others, err := f.bookings.ListForUser("Ana Silva")
	assert.NoError(t, err)
	assert.Empty(t, others)
}
