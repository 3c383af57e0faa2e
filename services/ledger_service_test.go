package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/repository"
	"github.com/rotatijuca/excursio-backend/utils"
)

// newTestStore builds an in-memory store without a snapshot file. It starts
// with the seeded catalog but an empty payment ledger.
func newTestStore(t *testing.T) repository.Store {
	store, err := repository.NewMemStore("")
	assert.NoError(t, err)
	return store
}

func completedRecord(method string, amount float64) *models.PaymentRecord {
	organizer := utils.Round(amount * 0.85)
	return &models.PaymentRecord{
		Method:          method,
		Amount:          amount,
		OrganizerAmount: organizer,
		PlatformAmount:  utils.Round(amount - organizer),
		Status:          utils.PaymentCompleted,
		TripTitle:       "Passeio em Angra dos Reis",
		OrganizerName:   "Beto Viagens",
	}
}

func TestLedgerService_Aggregate_EmptyLedgerIsAllZeros(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t))

	summary, err := ledger.Summary()
	assert.NoError(t, err)
	assert.Equal(t, models.SplitSummary{}, summary)
}

func TestLedgerService_Summary_ThreePayments(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t))

	// 95.50 + 70.00 + 180.00 = 345.50 gross
	// organizer: 81.18 + 59.50 + 153.00 = 293.68
	// platform:  14.32 + 10.50 +  27.00 =  51.82
	// average:   345.50 / 3 = 115.1666... rounds to 115.17
	assert.NoError(t, ledger.Append(completedRecord(utils.MethodPix, 95.50)))
	assert.NoError(t, ledger.Append(completedRecord(utils.MethodCredit, 70.00)))
	assert.NoError(t, ledger.Append(completedRecord(utils.MethodDebit, 180.00)))

	summary, err := ledger.Summary()
	assert.NoError(t, err)
	assert.Equal(t, 345.50, summary.TotalRevenue)
	assert.Equal(t, 293.68, summary.OrganizerTotal)
	assert.Equal(t, 51.82, summary.PlatformTotal)
	assert.Equal(t, 3, summary.TransactionCount)
	assert.Equal(t, 115.17, summary.AverageTicket)
}

func TestLedgerService_Append_FillsIDAndTimestamp(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t))

	record := completedRecord(utils.MethodPix, 70.00)
	assert.NoError(t, ledger.Append(record))
	assert.NotEmpty(t, record.TransactionID)
	assert.Contains(t, record.TransactionID, "MP-")
	assert.False(t, record.Timestamp.IsZero())
}

func TestLedgerService_Append_RejectsBadRecords(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t))

	bad := completedRecord("boleto", 70.00)
	assert.Error(t, ledger.Append(bad))

	zero := completedRecord(utils.MethodPix, 0)
	assert.Error(t, ledger.Append(zero))

	records, err := ledger.List()
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestLedgerService_Filter_ByMethodStatusAndWindow(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t))

	old := completedRecord(utils.MethodPix, 95.50)
	old.Timestamp = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
	assert.NoError(t, ledger.Append(old))

	recent := completedRecord(utils.MethodCredit, 180.00)
	recent.Timestamp = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	assert.NoError(t, ledger.Append(recent))

	byMethod, err := ledger.Filter(models.PaymentFilter{Method: utils.MethodPix})
	assert.NoError(t, err)
	assert.Len(t, byMethod, 1)
	assert.Equal(t, 95.50, byMethod[0].Amount)

	byWindow, err := ledger.Filter(models.PaymentFilter{
		From: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	assert.Len(t, byWindow, 1)
	assert.Equal(t, utils.MethodCredit, byWindow[0].Method)

	byStatus, err := ledger.Filter(models.PaymentFilter{Status: utils.PaymentRefunded})
	assert.NoError(t, err)
	assert.Empty(t, byStatus)
}

func TestLedgerService_MarkRefunded(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t))

	record := completedRecord(utils.MethodPix, 95.50)
	assert.NoError(t, ledger.Append(record))

	refunded, err := ledger.MarkRefunded(record.TransactionID, "trip cancelled by organizer")
	assert.NoError(t, err)
	assert.Equal(t, utils.PaymentRefunded, refunded.Status)
	assert.Equal(t, "trip cancelled by organizer", refunded.RefundReason)
	assert.NotEmpty(t, refunded.RefundDate)

	// A refunded record cannot be refunded again.
	_, err = ledger.MarkRefunded(record.TransactionID, "again")
	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 409, appErr.Code)

	// Refunded records fall out of the completed aggregation.
	summary, err := ledger.CompletedSummary()
	assert.NoError(t, err)
	assert.Equal(t, 0, summary.TransactionCount)
}

func TestLedgerService_MarkRefunded_UnknownTransaction(t *testing.T) {
	ledger := NewLedgerService(newTestStore(t))

	_, err := ledger.MarkRefunded("MP-missing", "whatever")
	assert.Error(t, err)
	appErr, ok := err.(*utils.AppError)
	assert.True(t, ok)
	assert.Equal(t, 404, appErr.Code)
}
