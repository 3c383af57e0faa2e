package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/rotatijuca/excursio-backend/models"
	"github.com/rotatijuca/excursio-backend/utils"
)

// ExcelService builds the admin's downloadable workbooks.
type ExcelService struct {
	ledger      *LedgerService
	withdrawals *WithdrawalService
	excursions  *ExcursionService
}

// NewExcelService creates an Excel service.
func NewExcelService(ledger *LedgerService, withdrawals *WithdrawalService, excursions *ExcursionService) *ExcelService {
	return &ExcelService{
		ledger:      ledger,
		withdrawals: withdrawals,
		excursions:  excursions,
	}
}

// PaymentsReport generates the payments workbook: a summary sheet with the
// split totals and balances, the transaction history and the withdrawals.
func (s *ExcelService) PaymentsReport() (*excelize.File, string, error) {
	records, err := s.ledger.List()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get payments: %v", err)
	}
	summary := s.ledger.Aggregate(records)

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Summary")

	f.SetCellValue("Summary", "A1", "Payments Report")
	f.SetCellValue("Summary", "A2", "Generated")
	f.SetCellValue("Summary", "B2", time.Now().Format("2006-01-02 15:04"))

	f.SetCellValue("Summary", "A4", "Total Revenue")
	f.SetCellValue("Summary", "B4", summary.TotalRevenue)
	f.SetCellValue("Summary", "A5", "Organizer Total (85%)")
	f.SetCellValue("Summary", "B5", summary.OrganizerTotal)
	f.SetCellValue("Summary", "A6", "Platform Total (15%)")
	f.SetCellValue("Summary", "B6", summary.PlatformTotal)
	f.SetCellValue("Summary", "A7", "Transactions")
	f.SetCellValue("Summary", "B7", summary.TransactionCount)
	f.SetCellValue("Summary", "A8", "Average Ticket")
	f.SetCellValue("Summary", "B8", summary.AverageTicket)

	row := 10
	for _, side := range []string{utils.SideOrganizer, utils.SidePlatform} {
		balance, err := s.withdrawals.Balance(side)
		if err != nil {
			return nil, "", fmt.Errorf("failed to get %s balance: %v", side, err)
		}
		f.SetCellValue("Summary", fmt.Sprintf("A%d", row), fmt.Sprintf("Available (%s)", side))
		f.SetCellValue("Summary", fmt.Sprintf("B%d", row), balance.Available)
		row++
	}

	s.addTransactionsSheet(f, records)
	if err := s.addWithdrawalsSheet(f); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("payments_report_%s.xlsx", time.Now().Format("2006-01-02"))
	return f, filename, nil
}

func (s *ExcelService) addTransactionsSheet(f *excelize.File, records []models.PaymentRecord) {
	sheet := "Transactions"
	f.NewSheet(sheet)

	headers := []string{"Transaction ID", "Trip", "Organizer", "Payer", "Method",
		"Amount", "Organizer Amount", "Platform Amount", "Status", "Date", "Refund Reason"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, r := range records {
		row := i + 2
		values := []interface{}{
			r.TransactionID, r.TripTitle, r.OrganizerName, r.PayerName, r.Method,
			r.Amount, r.OrganizerAmount, r.PlatformAmount, r.Status,
			r.Timestamp.Format("2006-01-02 15:04"), r.RefundReason,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
}

func (s *ExcelService) addWithdrawalsSheet(f *excelize.File) error {
	withdrawals, err := s.withdrawals.List()
	if err != nil {
		return fmt.Errorf("failed to get withdrawals: %v", err)
	}

	sheet := "Withdrawals"
	f.NewSheet(sheet)

	headers := []string{"ID", "Type", "Amount", "Status", "Bank Account", "Date"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for i, w := range withdrawals {
		row := i + 2
		values := []interface{}{
			w.ID, w.Type, w.Amount, w.Status, w.BankAccount,
			w.Timestamp.Format("2006-01-02 15:04"),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
	return nil
}

// PassengerManifest generates the roster workbook for one excursion.
func (s *ExcelService) PassengerManifest(excursionID int) (*excelize.File, string, error) {
	excursion, err := s.excursions.GetByID(excursionID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	f.SetSheetName("Sheet1", "Manifest")

	f.SetCellValue("Manifest", "A1", excursion.Destination)
	f.SetCellValue("Manifest", "A2", "Date")
	f.SetCellValue("Manifest", "B2", excursion.Date)
	f.SetCellValue("Manifest", "A3", "Time")
	f.SetCellValue("Manifest", "B3", excursion.Time)
	f.SetCellValue("Manifest", "A4", "Meeting Point")
	f.SetCellValue("Manifest", "B4", excursion.MeetingPoint)
	f.SetCellValue("Manifest", "A5", "Organizer")
	f.SetCellValue("Manifest", "B5", excursion.Organizer.Name)
	f.SetCellValue("Manifest", "A6", "Participants")
	f.SetCellValue("Manifest", "B6", fmt.Sprintf("%d / %d", excursion.CurrentParticipants, excursion.Capacity()))

	f.SetCellValue("Manifest", "A8", "#")
	f.SetCellValue("Manifest", "B8", "Passenger")
	for i, p := range excursion.Passengers {
		f.SetCellValue("Manifest", fmt.Sprintf("A%d", i+9), i+1)
		f.SetCellValue("Manifest", fmt.Sprintf("B%d", i+9), p)
	}

	filename := fmt.Sprintf("%s_manifest.xlsx", utils.CleanFileName(excursion.Destination))
	return f, filename, nil
}
