package usecase

import (
	"context"

	"seller-analytics-service/internal/analytics/core/domain"
	"seller-analytics-service/internal/analytics/core/ports"
)

// DashboardUseCase serves the dashboard's landing surface: the filter
// dimensions and the per-seller KPI table.
type DashboardUseCase struct {
	provider ports.AnalyticsProviderPort
}

func NewDashboardUseCase(provider ports.AnalyticsProviderPort) *DashboardUseCase {
	return &DashboardUseCase{provider: provider}
}

func (uc *DashboardUseCase) DateRange(ctx context.Context) (domain.DateRange, error) {
	return uc.provider.DateRange(ctx)
}

func (uc *DashboardUseCase) Locations(ctx context.Context) ([]string, error) {
	return uc.provider.Locations(ctx)
}

func (uc *DashboardUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.provider.Categories(ctx)
}

func (uc *DashboardUseCase) AllSellers(ctx context.Context) ([]domain.SellerRef, error) {
	return uc.provider.AllSellers(ctx)
}

func (uc *DashboardUseCase) KPIDashboard(ctx context.Context, f ports.FilterCriteria) ([]domain.KPIRow, error) {
	if err := validateFilters(f); err != nil {
		return nil, err
	}
	return uc.provider.KPIDashboard(ctx, f)
}

func (uc *DashboardUseCase) TopSellers(ctx context.Context, limit int, f ports.FilterCriteria) ([]domain.KPIRow, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if err := validateFilters(f); err != nil {
		return nil, err
	}
	return uc.provider.TopSellers(ctx, limit, f)
}
