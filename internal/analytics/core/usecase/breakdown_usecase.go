package usecase

import (
	"context"
	"time"

	"seller-analytics-service/internal/analytics/core/domain"
	"seller-analytics-service/internal/analytics/core/ports"
)

// BreakdownUseCase serves the single-seller drill-down view.
type BreakdownUseCase struct {
	provider ports.AnalyticsProviderPort
}

func NewBreakdownUseCase(provider ports.AnalyticsProviderPort) *BreakdownUseCase {
	return &BreakdownUseCase{provider: provider}
}

func (uc *BreakdownUseCase) FullSellerBreakdown(ctx context.Context, sellerID int, start, end *time.Time) (*domain.SellerBreakdown, error) {
	if sellerID <= 0 {
		return nil, ErrInvalidSellerID
	}
	if start != nil && end != nil && start.After(*end) {
		return nil, ErrInvalidDateRange
	}
	return uc.provider.FullSellerBreakdown(ctx, sellerID, start, end)
}
