package usecase

import (
	"context"

	"seller-analytics-service/internal/analytics/core/domain"
	"seller-analytics-service/internal/analytics/core/ports"
)

// TrendsUseCase serves the time-series and distribution views.
type TrendsUseCase struct {
	provider ports.AnalyticsProviderPort
}

func NewTrendsUseCase(provider ports.AnalyticsProviderPort) *TrendsUseCase {
	return &TrendsUseCase{provider: provider}
}

func (uc *TrendsUseCase) MonthlyTrend(ctx context.Context, sellerID *int, f ports.FilterCriteria) ([]domain.TrendRow, error) {
	if err := validateSellerFocus(sellerID); err != nil {
		return nil, err
	}
	if err := validateFilters(f); err != nil {
		return nil, err
	}
	return uc.provider.MonthlyTrend(ctx, sellerID, f)
}

func (uc *TrendsUseCase) OrderStatusDistribution(ctx context.Context, sellerID *int, f ports.FilterCriteria) ([]domain.StatusRow, error) {
	if err := validateSellerFocus(sellerID); err != nil {
		return nil, err
	}
	if err := validateFilters(f); err != nil {
		return nil, err
	}
	return uc.provider.OrderStatusDistribution(ctx, sellerID, f)
}

func (uc *TrendsUseCase) RatingsReturnsCorrelation(ctx context.Context, f ports.FilterCriteria) ([]domain.CorrelationRow, error) {
	if err := validateFilters(f); err != nil {
		return nil, err
	}
	return uc.provider.RatingsReturnsCorrelation(ctx, f)
}
