package services

import (
	"time"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/repository"
	"github.com/rotatijuca/excursio-backend/utils"
)

// WithdrawalService simulates payouts against the aggregated balances.
// Withdrawn-to-date is tracked per side so the same balance cannot be paid
// out twice.
type WithdrawalService struct {
	store  repository.Store
	ledger *LedgerService
}

// NewWithdrawalService creates a withdrawal service.
func NewWithdrawalService(store repository.Store, ledger *LedgerService) *WithdrawalService {
	return &WithdrawalService{store: store, ledger: ledger}
}

// Balance reports earned, withdrawn and available amounts for one side of
// the split. Only completed ledger records count as earned.
func (s *WithdrawalService) Balance(side string) (*models.BalanceResponse, error) {
	if err := utils.ValidateOneOf(side, "type", []string{utils.SideOrganizer, utils.SidePlatform}); err != nil {
		return nil, err
	}

	summary, err := s.ledger.CompletedSummary()
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}

	earned := summary.OrganizerTotal
	if side == utils.SidePlatform {
		earned = summary.PlatformTotal
	}

	withdrawals, err := s.store.ListWithdrawals()
	if err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToRetrieve)
	}
	var withdrawn float64
	for _, w := range withdrawals {
		if w.Type == side {
			withdrawn += w.Amount
		}
	}

	return &models.BalanceResponse{
		Type:      side,
		Earned:    earned,
		Withdrawn: utils.Round(withdrawn),
		Available: utils.Round(earned - withdrawn),
	}, nil
}

// Request records a payout. The simulated bank settles immediately, but the
// amount must fit inside the available balance.
func (s *WithdrawalService) Request(amount float64, side string) (*models.Withdrawal, error) {
	if err := utils.ValidatePositive(amount, "amount"); err != nil {
		return nil, err
	}

	balance, err := s.Balance(side)
	if err != nil {
		return nil, err
	}
	if amount > balance.Available {
		return nil, utils.NewInsufficientBalanceError(amount, balance.Available)
	}

	bankAccount := "Conta do Organizador"
	if side == utils.SidePlatform {
		bankAccount = "Conta da Plataforma"
	}

	withdrawal := &models.Withdrawal{
		Amount:      utils.Round(amount),
		Type:        side,
		Status:      utils.PaymentCompleted,
		Timestamp:   time.Now(),
		BankAccount: bankAccount,
	}
	if err := s.store.AddWithdrawal(withdrawal); err != nil {
		return nil, utils.NewInternalError(utils.ErrFailedToStore)
	}
	return withdrawal, nil
}

// List returns all recorded withdrawals.
func (s *WithdrawalService) List() ([]models.Withdrawal, error) {
	return s.store.ListWithdrawals()
}
