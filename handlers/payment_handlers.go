// handlers/payment_handlers.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/utils"
)

// ListPayments handles the admin ledger query with optional filters:
// ?method=pix&status=completed&from=2025-01-01&to=2025-12-31
func (a *API) ListPayments(c *gin.Context) {
	filter := models.PaymentFilter{
		Method: c.Query("method"),
		Status: c.Query("status"),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			utils.HandleError(c, utils.NewBadRequestError("from must be YYYY-MM-DD"))
			return
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			utils.HandleError(c, utils.NewBadRequestError("to must be YYYY-MM-DD"))
			return
		}
		// Inclusive end of day
		filter.To = t.Add(24*time.Hour - time.Nanosecond)
	}

	records, err := a.Ledger.Filter(filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, gin.H{
		"payments": records,
		"summary":  a.Ledger.Aggregate(records),
	})
}

// PaymentsSummary handles the dashboard aggregate query
func (a *API) PaymentsSummary(c *gin.Context) {
	summary, err := a.Ledger.Summary()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, summary)
}

// RefundPayment handles the admin refund mutation
func (a *API) RefundPayment(c *gin.Context) {
	var request models.RefundRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	record, err := a.Payments.Refund(c.Param("transactionId"), request.Reason)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, record)
}

// ListWithdrawals handles the withdrawal history query
func (a *API) ListWithdrawals(c *gin.Context) {
	withdrawals, err := a.Withdrawals.List()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, withdrawals)
}

// GetBalance handles the available-balance query: ?type=organizer|platform
func (a *API) GetBalance(c *gin.Context) {
	balance, err := a.Withdrawals.Balance(c.Query("type"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, balance)
}

// CreateWithdrawal handles the simulated payout request
func (a *API) CreateWithdrawal(c *gin.Context) {
	var request models.WithdrawalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewBadRequestError(utils.ErrInvalidRequest))
		return
	}

	withdrawal, err := a.Withdrawals.Request(request.Amount, request.Type)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.HandleSuccess(c, withdrawal)
}
