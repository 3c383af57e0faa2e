package services

import (
	"time"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/repository"
	"github.com/rotatijuca/excursio-backend/utils"
)

// LedgerService owns the append-only list of payment records and its
// aggregation queries.
type LedgerService struct {
	store repository.Store
}

// NewLedgerService creates a ledger service over the given store.
func NewLedgerService(store repository.Store) *LedgerService {
	return &LedgerService{store: store}
}

// Append validates and stores a payment record, filling the transaction ID
// and timestamp when the caller left them empty.
func (l *LedgerService) Append(record *models.PaymentRecord) error {
	if err := utils.ValidateOneOf(record.Method, "method", utils.ValidMethods); err != nil {
		return err
	}
	if err := utils.ValidatePositive(record.Amount, "amount"); err != nil {
		return err
	}
	if record.TransactionID == "" {
		record.TransactionID = utils.GenerateTransactionID()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now()
	}

	return l.store.AppendPayment(record)
}

// List returns the whole ledger in insertion order.
func (l *LedgerService) List() ([]models.PaymentRecord, error) {
	return l.store.ListPayments()
}

// Filter returns the records passing the filter, order preserved.
func (l *LedgerService) Filter(filter models.PaymentFilter) ([]models.PaymentRecord, error) {
	records, err := l.store.ListPayments()
	if err != nil {
		return nil, err
	}

	var out []models.PaymentRecord
	for _, r := range records {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Get returns the record with the given transaction ID.
func (l *LedgerService) Get(transactionID string) (*models.PaymentRecord, error) {
	record, err := l.store.GetPayment(transactionID)
	if err != nil {
		if err == repository.ErrPaymentNotFound {
			return nil, utils.NewNotFoundError("payment")
		}
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	return record, nil
}

// MarkRefunded flips a completed record to refunded with a reason and date.
// Only completed records can be refunded.
func (l *LedgerService) MarkRefunded(transactionID, reason string) (*models.PaymentRecord, error) {
	if err := utils.ValidateRequired(reason, "refund reason"); err != nil {
		return nil, err
	}

	record, err := l.Get(transactionID)
	if err != nil {
		return nil, err
	}
	if record.Status != utils.PaymentCompleted {
		return nil, utils.NewConflictError("only completed payments can be refunded")
	}

	record.Status = utils.PaymentRefunded
	record.RefundDate = time.Now().Format("2006-01-02")
	record.RefundReason = reason
	if err := l.store.UpdatePayment(record); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return record, nil
}

// Aggregate sums a record list into the dashboard summary. An empty list
// yields all zeros; the average guards against divide-by-zero.
func (l *LedgerService) Aggregate(records []models.PaymentRecord) models.SplitSummary {
	var summary models.SplitSummary
	for _, r := range records {
		summary.TotalRevenue += r.Amount
		summary.OrganizerTotal += r.OrganizerAmount
		summary.PlatformTotal += r.PlatformAmount
	}
	summary.TransactionCount = len(records)
	if summary.TransactionCount > 0 {
		summary.AverageTicket = utils.Round(summary.TotalRevenue / float64(summary.TransactionCount))
	}

	summary.TotalRevenue = utils.Round(summary.TotalRevenue)
	summary.OrganizerTotal = utils.Round(summary.OrganizerTotal)
	summary.PlatformTotal = utils.Round(summary.PlatformTotal)
	return summary
}

// Summary aggregates the full ledger.
func (l *LedgerService) Summary() (models.SplitSummary, error) {
	records, err := l.store.ListPayments()
	if err != nil {
		return models.SplitSummary{}, err
	}
	return l.Aggregate(records), nil
}

// CompletedSummary aggregates only completed records; refunded and failed
// entries do not count toward withdrawable balances.
func (l *LedgerService) CompletedSummary() (models.SplitSummary, error) {
	records, err := l.Filter(models.PaymentFilter{Status: utils.PaymentCompleted})
	if err != nil {
		return models.SplitSummary{}, err
	}
	return l.Aggregate(records), nil
}
