package ports

import (
	"context"
	"time"

	"seller-analytics-service/internal/analytics/core/domain"
)

// FilterCriteria narrows which records an operation considers. Every field is
// optional; nil means no constraint on that dimension. Criteria compose with
// AND. Date bounds are inclusive on both ends.
type FilterCriteria struct {
	StartDate *time.Time
	EndDate   *time.Time
	Location  *string // exact match on seller_location
	Category  *string // exact match on product_category
	SellerID  *int
}

// AnalyticsProviderPort is the read contract the dashboard consumes. Two
// implementations exist: the postgres adapter and the in-memory synthetic
// adapter. For identical underlying data they must return numerically equal
// aggregates.
//
// A query that matches no rows returns an empty (or zero-filled) result and a
// nil error; errors are reserved for connectivity and malformed-query
// failures.
type AnalyticsProviderPort interface {
	DateRange(ctx context.Context) (domain.DateRange, error)
	Locations(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
	AllSellers(ctx context.Context) ([]domain.SellerRef, error)

	KPIDashboard(ctx context.Context, f FilterCriteria) ([]domain.KPIRow, error)
	TopSellers(ctx context.Context, limit int, f FilterCriteria) ([]domain.KPIRow, error)
	MonthlyTrend(ctx context.Context, sellerID *int, f FilterCriteria) ([]domain.TrendRow, error)
	OrderStatusDistribution(ctx context.Context, sellerID *int, f FilterCriteria) ([]domain.StatusRow, error)
	RatingsReturnsCorrelation(ctx context.Context, f FilterCriteria) ([]domain.CorrelationRow, error)
	FullSellerBreakdown(ctx context.Context, sellerID int, start, end *time.Time) (*domain.SellerBreakdown, error)
	FilteredExport(ctx context.Context, f FilterCriteria) ([]domain.ExportRow, error)

	// Close releases provider resources. Safe to call more than once.
	Close() error
}
