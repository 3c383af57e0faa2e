package services

import (
	"context"
	"time"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/utils"
)

// PaymentService simulates the payment provider. There is no real money
// movement; the processing delay and the failure branches stand in for the
// provider round trip.
type PaymentService struct {
	ledger          *LedgerService
	split           *SplitService
	hub             *EventHub
	processingDelay time.Duration
}

// NewPaymentService creates a payment service. The delay applies to every
// processed payment (0 disables it, used by tests).
func NewPaymentService(ledger *LedgerService, split *SplitService, hub *EventHub, processingDelay time.Duration) *PaymentService {
	return &PaymentService{
		ledger:          ledger,
		split:           split,
		hub:             hub,
		processingDelay: processingDelay,
	}
}

// Process validates the payment details, simulates provider processing and
// appends a completed record to the ledger. Declined or timed-out payments
// never reach the ledger.
func (s *PaymentService) Process(ctx context.Context, details models.PaymentDetails, excursion *models.Excursion, payerName string) (*models.PaymentRecord, error) {
	if err := utils.ValidateOneOf(details.Method, "payment method", utils.ValidMethods); err != nil {
		return nil, err
	}

	if details.Method == utils.MethodCredit || details.Method == utils.MethodDebit {
		if err := s.validateCard(details); err != nil {
			return nil, err
		}
	}

	if err := s.simulateProcessing(ctx); err != nil {
		return nil, err
	}

	organizerAmount, platformAmount, err := s.split.Split(excursion.Price)
	if err != nil {
		return nil, err
	}

	record := &models.PaymentRecord{
		Method:          details.Method,
		Amount:          utils.Round(excursion.Price),
		OrganizerAmount: organizerAmount,
		PlatformAmount:  platformAmount,
		Status:          utils.PaymentCompleted,
		TransactionID:   utils.GenerateTransactionID(),
		TripTitle:       excursion.Destination,
		OrganizerName:   excursion.Organizer.Name,
		PayerName:       payerName,
		Timestamp:       time.Now(),
	}
	if err := s.ledger.Append(record); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}

	s.hub.Publish(Event{Type: "payment", Data: record})
	return record, nil
}

// validateCard checks the card fields and runs the Luhn check. A bad card
// number is the simulated decline branch.
func (s *PaymentService) validateCard(details models.PaymentDetails) error {
	if err := utils.ValidateRequired(details.CardNumber, "card number"); err != nil {
		return err
	}
	if err := utils.ValidateRequired(details.CardName, "card holder name"); err != nil {
		return err
	}
	if err := utils.ValidateRequired(details.CardExpiry, "card expiry"); err != nil {
		return err
	}
	if err := utils.ValidateRequired(details.CardCVV, "card cvv"); err != nil {
		return err
	}
	if !utils.ValidateLuhn(details.CardNumber) {
		return utils.NewPaymentDeclinedError("card number rejected by issuer")
	}
	return nil
}

// simulateProcessing waits out the provider delay, honoring cancellation.
func (s *PaymentService) simulateProcessing(ctx context.Context) error {
	if s.processingDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.processingDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return utils.NewPaymentDeclinedError("processing timed out")
	}
}

// Refund marks a completed payment refunded (admin operation).
func (s *PaymentService) Refund(transactionID, reason string) (*models.PaymentRecord, error) {
	record, err := s.ledger.MarkRefunded(transactionID, reason)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(Event{Type: "refund", Data: record})
	return record, nil
}
