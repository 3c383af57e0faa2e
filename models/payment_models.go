// models/payment_models.go
package models

import "time"

// PaymentDetails is the payment instruction attached to a booking request
type PaymentDetails struct {
	Method     string `json:"method" binding:"required"`
	CardNumber string `json:"cardNumber"`
	CardName   string `json:"cardName"`
	CardExpiry string `json:"cardExpiry"`
	CardCVV    string `json:"cardCvv"`
}

// PaymentRecord is one completed transaction in the ledger. Records are
// immutable after creation except for the refund fields.
type PaymentRecord struct {
	Method          string    `json:"method"`
	Amount          float64   `json:"amount"`
	OrganizerAmount float64   `json:"organizerAmount"`
	PlatformAmount  float64   `json:"platformAmount"`
	Status          string    `json:"status"`
	TransactionID   string    `json:"transactionId"`
	TripTitle       string    `json:"tripTitle"`
	OrganizerName   string    `json:"organizerName"`
	PayerName       string    `json:"payerName,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	RefundDate      string    `json:"refundDate,omitempty"`
	RefundReason    string    `json:"refundReason,omitempty"`
}

// SplitSummary aggregates the ledger for the dashboard
type SplitSummary struct {
	TotalRevenue     float64 `json:"totalRevenue"`
	OrganizerTotal   float64 `json:"organizerTotal"`
	PlatformTotal    float64 `json:"platformTotal"`
	TransactionCount int     `json:"transactionCount"`
	AverageTicket    float64 `json:"averageTicket"`
}

// PaymentFilter narrows ledger queries. Zero values mean "no constraint".
type PaymentFilter struct {
	Method string
	Status string
	From   time.Time
	To     time.Time
}

// Matches reports whether a record passes the filter
func (f PaymentFilter) Matches(r PaymentRecord) bool {
	if f.Method != "" && r.Method != f.Method {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && r.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && r.Timestamp.After(f.To) {
		return false
	}
	return true
}

// Withdrawal records a simulated payout against an aggregated balance
type Withdrawal struct {
	ID          int64     `json:"id"`
	Amount      float64   `json:"amount"`
	Type        string    `json:"type"` // organizer | platform
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	BankAccount string    `json:"bankAccount"`
}

// WithdrawalRequest request model (admin)
type WithdrawalRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Type   string  `json:"type" binding:"required"`
}

// RefundRequest request model (admin)
type RefundRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// BalanceResponse reports the withdrawable balance for one side of the split
type BalanceResponse struct {
	Type      string  `json:"type"`
	Earned    float64 `json:"earned"`
	Withdrawn float64 `json:"withdrawn"`
	Available float64 `json:"available"`
}
