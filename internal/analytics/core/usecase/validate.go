package usecase

import (
	"errors"

	"seller-analytics-service/internal/analytics/core/ports"
)

var (
	ErrInvalidDateRange = errors.New("start_date is after end_date")
	ErrInvalidSellerID  = errors.New("seller_id must be positive")
	ErrInvalidLimit     = errors.New("limit must be positive")
)

// validateFilters rejects criteria no provider should ever see. Absent
// fields are always valid.
func validateFilters(f ports.FilterCriteria) error {
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return ErrInvalidDateRange
	}
	if f.SellerID != nil && *f.SellerID <= 0 {
		return ErrInvalidSellerID
	}
	return nil
}

func validateSellerFocus(sellerID *int) error {
	if sellerID != nil && *sellerID <= 0 {
		return ErrInvalidSellerID
	}
	return nil
}
