package services

import (
	"github.com/rotatijuca/excursio-backend/utils"
)

// SplitService computes the fixed-percentage division of a gross payment
// between the organizer and the platform.
type SplitService struct {
	commissionRate float64
}

// NewSplitService creates a split service with the platform's standard
// commission rate.
func NewSplitService() *SplitService {
	return &SplitService{commissionRate: utils.PlatformCommissionRate}
}

// Split divides a gross amount into organizer and platform shares. The
// organizer share is rounded to cents (half away from zero) and the platform
// takes the remainder, so the two always sum exactly to the input.
func (s *SplitService) Split(amount float64) (organizerAmount, platformAmount float64, err error) {
	if amount < 0 {
		return 0, 0, utils.NewValidationError("amount cannot be negative")
	}

	organizerAmount = utils.Round(amount * (1 - s.commissionRate))
	platformAmount = utils.Round(amount - organizerAmount)
	return organizerAmount, platformAmount, nil
}
