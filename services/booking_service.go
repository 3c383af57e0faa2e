package services

import (
	"context"
	"log"
	"time"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/repository"
	"github.com/rotatijuca/excursio-backend/utils"
)

// BookingService handles per-user reservations: booking with payment,
// cancellation, status transitions and post-trip ratings.
type BookingService struct {
	store      repository.Store
	excursions *ExcursionService
	payments   *PaymentService
	hub        *EventHub
}

// NewBookingService creates a booking service.
func NewBookingService(store repository.Store, excursions *ExcursionService, payments *PaymentService, hub *EventHub) *BookingService {
	return &BookingService{
		store:      store,
		excursions: excursions,
		payments:   payments,
		hub:        hub,
	}
}

// validBookingStatuses are the admin-facing booking states.
var validBookingStatuses = []string{
	utils.BookingAwaitingGroup,
	utils.BookingConfirmed,
	utils.BookingCompleted,
	utils.BookingCancelled,
}

// Book reserves a seat: processes the payment, joins the roster and creates
// the booking record. One live booking per user per excursion.
func (s *BookingService) Book(ctx context.Context, req *models.BookRequest) (*models.BookResponse, error) {
	userName := utils.NormalizeName(req.UserName)
	if err := utils.ValidateRequired(userName, "user name"); err != nil {
		return nil, err
	}

	excursion, err := s.excursions.GetByID(req.ExcursionID)
	if err != nil {
		return nil, err
	}
	if excursion.IsPast {
		return nil, utils.NewValidationError("cannot book a past excursion")
	}
	if excursion.SpotsLeft == 0 {
		return nil, utils.NewCapacityError(excursion.Destination)
	}

	existing, err := s.store.ListBookings(userName)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	for _, b := range existing {
		if b.ExcursionID == excursion.ID && b.Status != utils.BookingCancelled {
			return nil, utils.NewConflictError("you already booked this excursion")
		}
	}

	payment, err := s.payments.Process(ctx, req.Payment, excursion, userName)
	if err != nil {
		return nil, err
	}

	excursion, err = s.excursions.AddParticipant(excursion.ID, userName)
	if err != nil {
		s.refundAbandonedPayment(payment.TransactionID)
		return nil, err
	}

	status := utils.BookingAwaitingGroup
	if s.excursions.QuorumStatus(excursion).Met {
		status = utils.BookingConfirmed
	}

	booking := &models.Booking{
		ExcursionID: excursion.ID,
		UserName:    userName,
		UserEmail:   req.UserEmail,
		Destination: excursion.Destination,
		Date:        excursion.Date,
		Status:      status,
		BookingCode: utils.GenerateBookingCode(excursion.Destination, userName),
		IsPast:      excursion.IsPast,
		CreatedAt:   time.Now(),
	}
	if err := s.store.AddBooking(booking); err != nil {
		s.excursions.RemoveParticipant(excursion.ID, userName)
		s.refundAbandonedPayment(payment.TransactionID)
		if err == repository.ErrDuplicateBooking {
			return nil, utils.NewConflictError("you already booked this excursion")
		}
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	s.hub.Publish(Event{Type: "booking", Data: booking})
	return &models.BookResponse{Booking: *booking, Payment: *payment}, nil
}

// refundAbandonedPayment backs a completed payment out of the ledger when the
// booking it paid for never materialized, so it cannot count toward the
// withdrawable balances. Best effort: the refund failure is logged, not
// surfaced over the booking error it accompanies.
func (s *BookingService) refundAbandonedPayment(transactionID string) {
	if _, err := s.payments.Refund(transactionID, "booking was not completed"); err != nil {
		log.Printf("Warning: failed to refund abandoned payment %s: %v", transactionID, err)
	}
}

// ListForUser returns a user's bookings with the IsPast flag refreshed.
func (s *BookingService) ListForUser(userName string) ([]models.Booking, error) {
	bookings, err := s.store.ListBookings(utils.NormalizeName(userName))
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	now := time.Now().Truncate(24 * time.Hour)
	for i := range bookings {
		if d, err := time.Parse("2006-01-02", bookings[i].Date); err == nil {
			bookings[i].IsPast = d.Before(now)
		}
	}
	return bookings, nil
}

// GetByCode returns one booking.
func (s *BookingService) GetByCode(code string) (*models.Booking, error) {
	booking, err := s.store.GetBookingByCode(code)
	if err != nil {
		if err == repository.ErrBookingNotFound {
			return nil, utils.NewNotFoundError("booking")
		}
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return booking, nil
}

// Cancel sets a booking to Cancelada and frees the seat.
func (s *BookingService) Cancel(code string) (*models.Booking, error) {
	booking, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if booking.Status == utils.BookingCancelled {
		return nil, utils.NewConflictError("booking is already cancelled")
	}
	if booking.Status == utils.BookingCompleted {
		return nil, utils.NewConflictError("completed trips cannot be cancelled")
	}

	// Free the roster seat before flipping the status, so a roster failure
	// never strands a seat behind a cancelled booking. The passenger may
	// already be gone if the admin removed them first.
	seatFreed := false
	if _, err := s.excursions.RemoveParticipant(booking.ExcursionID, booking.UserName); err != nil {
		if appErr, ok := err.(*utils.AppError); !ok || appErr.Code != 404 {
			return nil, err
		}
	} else {
		seatFreed = true
	}

	booking.Status = utils.BookingCancelled
	if err := s.store.UpdateBooking(booking); err != nil {
		if seatFreed {
			s.excursions.AddParticipant(booking.ExcursionID, booking.UserName)
		}
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	s.hub.Publish(Event{Type: "booking", Data: booking})
	return booking, nil
}

// UpdateStatus applies an admin-driven status transition.
func (s *BookingService) UpdateStatus(code, status string) (*models.Booking, error) {
	if err := utils.ValidateOneOf(status, "status", validBookingStatuses); err != nil {
		return nil, err
	}

	booking, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}

	booking.Status = status
	if err := s.store.UpdateBooking(booking); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	s.hub.Publish(Event{Type: "booking", Data: booking})
	return booking, nil
}

// Rate records a 1-5 review of the organizer for a completed trip and marks
// the booking rated. Each booking can be rated once.
func (s *BookingService) Rate(code string, req *models.RateTripRequest) (*models.Rating, error) {
	if err := utils.ValidateRating(req.Rating); err != nil {
		return nil, err
	}

	booking, err := s.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if booking.Rated {
		return nil, utils.NewConflictError("trip has already been rated")
	}
	if d, err := time.Parse("2006-01-02", booking.Date); err == nil {
		if !d.Before(time.Now().Truncate(24 * time.Hour)) {
			return nil, utils.NewValidationError("only past trips can be rated")
		}
	}

	rating := &models.Rating{
		UserName:        booking.UserName,
		UserEmail:       booking.UserEmail,
		Rating:          req.Rating,
		Comment:         req.Comment,
		Date:            time.Now().Format("2006-01-02"),
		TripID:          booking.ExcursionID,
		TripDestination: booking.Destination,
	}
	if err := s.store.AddRating(rating); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	booking.Rated = true
	if err := s.store.UpdateBooking(booking); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	s.hub.Publish(Event{Type: "rating", Data: rating})
	return rating, nil
}

// RatingsForTrip lists the reviews left for one excursion.
func (s *BookingService) RatingsForTrip(tripID int) ([]models.Rating, error) {
	ratings, err := s.store.ListRatings(tripID)
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return ratings, nil
}
