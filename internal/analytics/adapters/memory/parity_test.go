package memory

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgadapter "seller-analytics-service/internal/analytics/adapters/postgres"
	"seller-analytics-service/internal/analytics/core/domain"
	"seller-analytics-service/internal/analytics/core/ports"
)

// Both providers must return numerically equal aggregates for the same
// underlying data. This suite loads the shared fixture into postgres and
// compares every contract operation against the in-memory provider.
//
// Requires TEST_DATABASE_URL; skipped otherwise. The fixture is loaded into
// session-local temp tables over a single-connection pool, so nothing
// persists and concurrent runs do not collide.

const parityTolerance = 1e-9

func parityRepository(t *testing.T, ds *domain.Dataset) ports.AnalyticsProviderPort {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Ping())

	loadDataset(t, db, ds)
	return pgadapter.NewAnalyticsRepository(pgadapter.NewSQLDB(db))
}

func loadDataset(t *testing.T, db *sql.DB, ds *domain.Dataset) {
	t.Helper()

	ddl := []string{
		`CREATE TEMP TABLE sellers (
			seller_id INT PRIMARY KEY,
			seller_name TEXT NOT NULL,
			seller_location TEXT NOT NULL,
			category_specialization TEXT NOT NULL,
			join_date DATE NOT NULL
		)`,
		`CREATE TEMP TABLE orders (
			order_id INT PRIMARY KEY,
			seller_id INT NOT NULL,
			order_date DATE NOT NULL,
			shipped_date DATE,
			delivered_date DATE,
			order_status TEXT NOT NULL,
			product_category TEXT NOT NULL,
			order_value DOUBLE PRECISION NOT NULL
		)`,
		`CREATE TEMP TABLE ratings (
			rating_id INT PRIMARY KEY,
			order_id INT NOT NULL,
			seller_id INT NOT NULL,
			rating_score INT NOT NULL,
			rating_date DATE NOT NULL
		)`,
		`CREATE TEMP TABLE returns (
			return_id INT PRIMARY KEY,
			order_id INT NOT NULL,
			seller_id INT NOT NULL,
			return_reason TEXT NOT NULL,
			return_date DATE NOT NULL
		)`,
	}
	for _, stmt := range ddl {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	for _, s := range ds.Sellers {
		_, err := db.Exec(
			`INSERT INTO sellers VALUES ($1, $2, $3, $4, $5)`,
			s.SellerID, s.SellerName, s.SellerLocation, s.CategorySpecialization, s.JoinDate,
		)
		require.NoError(t, err)
	}
	for _, o := range ds.Orders {
		_, err := db.Exec(
			`INSERT INTO orders VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			o.OrderID, o.SellerID, o.OrderDate, o.ShippedDate, o.DeliveredDate,
			string(o.OrderStatus), o.ProductCategory, o.OrderValue,
		)
		require.NoError(t, err)
	}
	for _, r := range ds.Ratings {
		_, err := db.Exec(
			`INSERT INTO ratings VALUES ($1, $2, $3, $4, $5)`,
			r.RatingID, r.OrderID, r.SellerID, r.RatingScore, r.RatingDate,
		)
		require.NoError(t, err)
	}
	for _, rt := range ds.Returns {
		_, err := db.Exec(
			`INSERT INTO returns VALUES ($1, $2, $3, $4, $5)`,
			rt.ReturnID, rt.OrderID, rt.SellerID, rt.ReturnReason, rt.ReturnDate,
		)
		require.NoError(t, err)
	}
}

func sameTime(t *testing.T, want, got time.Time, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, want.Equal(got), msgAndArgs...)
}

func sameTimePtr(t *testing.T, want, got *time.Time, msgAndArgs ...any) {
	t.Helper()
	if want == nil || got == nil {
		assert.Equal(t, want, got, msgAndArgs...)
		return
	}
	sameTime(t, *want, *got, msgAndArgs...)
}

func sameKPIRows(t *testing.T, want, got []domain.KPIRow) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].SellerID, got[i].SellerID, "row %d seller id", i)
		assert.Equal(t, want[i].SellerName, got[i].SellerName, "row %d name", i)
		assert.Equal(t, want[i].SellerLocation, got[i].SellerLocation, "row %d location", i)
		sameTime(t, want[i].JoinDate, got[i].JoinDate, "row %d join date", i)
		assert.Equal(t, want[i].TotalOrders, got[i].TotalOrders, "row %d total orders", i)
		assert.InDelta(t, want[i].TotalRevenue, got[i].TotalRevenue, parityTolerance, "row %d revenue", i)
		assert.InDelta(t, want[i].AverageOrderValue, got[i].AverageOrderValue, parityTolerance, "row %d avg order value", i)
		assert.InDelta(t, want[i].AverageRating, got[i].AverageRating, parityTolerance, "row %d avg rating", i)
		assert.Equal(t, want[i].TotalReviewCount, got[i].TotalReviewCount, "row %d review count", i)
		assert.InDelta(t, want[i].ReturnRate, got[i].ReturnRate, parityTolerance, "row %d return rate", i)
	}
}

func sameTrendRows(t *testing.T, want, got []domain.TrendRow) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].SellerID, got[i].SellerID, "row %d", i)
		assert.Equal(t, want[i].SellerName, got[i].SellerName, "row %d", i)
		assert.Equal(t, want[i].Month, got[i].Month, "row %d", i)
		assert.Equal(t, want[i].TotalOrders, got[i].TotalOrders, "row %d", i)
		assert.InDelta(t, want[i].MonthlyRevenue, got[i].MonthlyRevenue, parityTolerance, "row %d", i)
	}
}

func sameStatusRows(t *testing.T, want, got []domain.StatusRow) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].OrderStatus, got[i].OrderStatus, "row %d", i)
		assert.Equal(t, want[i].OrderCount, got[i].OrderCount, "row %d", i)
		assert.InDelta(t, want[i].Percentage, got[i].Percentage, parityTolerance, "row %d", i)
	}
}

func sameCorrelationRows(t *testing.T, want, got []domain.CorrelationRow) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].SellerID, got[i].SellerID, "row %d", i)
		assert.Equal(t, want[i].SellerName, got[i].SellerName, "row %d", i)
		assert.InDelta(t, want[i].AverageRating, got[i].AverageRating, parityTolerance, "row %d", i)
		assert.InDelta(t, want[i].ReturnRate, got[i].ReturnRate, parityTolerance, "row %d", i)
		assert.Equal(t, want[i].TotalOrders, got[i].TotalOrders, "row %d", i)
		assert.InDelta(t, want[i].TotalRevenue, got[i].TotalRevenue, parityTolerance, "row %d", i)
	}
}

func sameCategoryRows(t *testing.T, want, got []domain.CategoryRow) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ProductCategory, got[i].ProductCategory, "row %d", i)
		assert.Equal(t, want[i].OrderCount, got[i].OrderCount, "row %d", i)
		assert.InDelta(t, want[i].CategoryRevenue, got[i].CategoryRevenue, parityTolerance, "row %d", i)
		assert.InDelta(t, want[i].Percentage, got[i].Percentage, parityTolerance, "row %d", i)
	}
}

func sameRatingBuckets(t *testing.T, want, got []domain.RatingBucket) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].RatingScore, got[i].RatingScore, "bucket %d", i)
		assert.Equal(t, want[i].RatingCount, got[i].RatingCount, "bucket %d", i)
		assert.InDelta(t, want[i].Percentage, got[i].Percentage, parityTolerance, "bucket %d", i)
	}
}

func sameReturnRows(t *testing.T, want, got []domain.ReturnReasonRow) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ReturnReason, got[i].ReturnReason, "row %d", i)
		assert.Equal(t, want[i].ReturnCount, got[i].ReturnCount, "row %d", i)
		assert.InDelta(t, want[i].Percentage, got[i].Percentage, parityTolerance, "row %d", i)
	}
}

func sameExportRows(t *testing.T, want, got []domain.ExportRow) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].SellerID, got[i].SellerID, "row %d", i)
		assert.Equal(t, want[i].SellerName, got[i].SellerName, "row %d", i)
		assert.Equal(t, want[i].SellerLocation, got[i].SellerLocation, "row %d", i)
		assert.Equal(t, want[i].CategorySpecialization, got[i].CategorySpecialization, "row %d", i)
		sameTime(t, want[i].JoinDate, got[i].JoinDate, "row %d join date", i)
		assert.Equal(t, want[i].OrderID, got[i].OrderID, "row %d", i)
		sameTime(t, want[i].OrderDate, got[i].OrderDate, "row %d order date", i)
		sameTimePtr(t, want[i].ShippedDate, got[i].ShippedDate, "row %d shipped", i)
		sameTimePtr(t, want[i].DeliveredDate, got[i].DeliveredDate, "row %d delivered", i)
		assert.Equal(t, want[i].OrderStatus, got[i].OrderStatus, "row %d", i)
		assert.Equal(t, want[i].ProductCategory, got[i].ProductCategory, "row %d", i)
		assert.InDelta(t, want[i].OrderValue, got[i].OrderValue, parityTolerance, "row %d", i)
		assert.Equal(t, want[i].RatingID, got[i].RatingID, "row %d rating id", i)
		assert.Equal(t, want[i].RatingScore, got[i].RatingScore, "row %d rating score", i)
		assert.Equal(t, want[i].ReturnID, got[i].ReturnID, "row %d return id", i)
		assert.Equal(t, want[i].ReturnReason, got[i].ReturnReason, "row %d return reason", i)
		sameTimePtr(t, want[i].ReturnDate, got[i].ReturnDate, "row %d return date", i)
	}
}

func TestProviderParity(t *testing.T) {
	ds := fixtureDataset()
	relational := parityRepository(t, ds)
	synthetic := NewProviderFromDataset(ds)
	ctx := context.Background()

	filterCases := map[string]ports.FilterCriteria{
		"no filters":  {},
		"date window": {StartDate: datePtr(2024, time.February, 1), EndDate: datePtr(2024, time.March, 31)},
		"location":    {Location: strPtr("New York")},
		"category":    {Category: strPtr("Fashion")},
		"seller":      {SellerID: intPtr(2)},
	}

	t.Run("DateRange", func(t *testing.T) {
		want, err := synthetic.DateRange(ctx)
		require.NoError(t, err)
		got, err := relational.DateRange(ctx)
		require.NoError(t, err)
		sameTime(t, want.MinDate, got.MinDate)
		sameTime(t, want.MaxDate, got.MaxDate)
	})

	t.Run("Locations", func(t *testing.T) {
		want, err := synthetic.Locations(ctx)
		require.NoError(t, err)
		got, err := relational.Locations(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Categories", func(t *testing.T) {
		want, err := synthetic.Categories(ctx)
		require.NoError(t, err)
		got, err := relational.Categories(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("AllSellers", func(t *testing.T) {
		want, err := synthetic.AllSellers(ctx)
		require.NoError(t, err)
		got, err := relational.AllSellers(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("KPIDashboard", func(t *testing.T) {
		for name, f := range filterCases {
			want, err := synthetic.KPIDashboard(ctx, f)
			require.NoError(t, err, name)
			got, err := relational.KPIDashboard(ctx, f)
			require.NoError(t, err, name)
			sameKPIRows(t, want, got)
		}
	})

	t.Run("TopSellers", func(t *testing.T) {
		for _, limit := range []int{1, 2, 10} {
			want, err := synthetic.TopSellers(ctx, limit, ports.FilterCriteria{})
			require.NoError(t, err)
			got, err := relational.TopSellers(ctx, limit, ports.FilterCriteria{})
			require.NoError(t, err)
			sameKPIRows(t, want, got)
		}
	})

	t.Run("MonthlyTrend", func(t *testing.T) {
		for _, focus := range []*int{nil, intPtr(1)} {
			for name, f := range filterCases {
				want, err := synthetic.MonthlyTrend(ctx, focus, f)
				require.NoError(t, err, name)
				got, err := relational.MonthlyTrend(ctx, focus, f)
				require.NoError(t, err, name)
				sameTrendRows(t, want, got)
			}
		}
	})

	t.Run("OrderStatusDistribution", func(t *testing.T) {
		for _, focus := range []*int{nil, intPtr(2)} {
			for name, f := range filterCases {
				want, err := synthetic.OrderStatusDistribution(ctx, focus, f)
				require.NoError(t, err, name)
				got, err := relational.OrderStatusDistribution(ctx, focus, f)
				require.NoError(t, err, name)
				sameStatusRows(t, want, got)
			}
		}
	})

	t.Run("RatingsReturnsCorrelation", func(t *testing.T) {
		for name, f := range filterCases {
			want, err := synthetic.RatingsReturnsCorrelation(ctx, f)
			require.NoError(t, err, name)
			got, err := relational.RatingsReturnsCorrelation(ctx, f)
			require.NoError(t, err, name)
			sameCorrelationRows(t, want, got)
		}
	})

	t.Run("FullSellerBreakdown", func(t *testing.T) {
		for _, sellerID := range []int{1, 2, 3} {
			want, err := synthetic.FullSellerBreakdown(ctx, sellerID, nil, nil)
			require.NoError(t, err)
			got, err := relational.FullSellerBreakdown(ctx, sellerID, nil, nil)
			require.NoError(t, err)

			assert.Equal(t, want.SellerInfo.SellerID, got.SellerInfo.SellerID)
			assert.Equal(t, want.SellerInfo.SellerName, got.SellerInfo.SellerName)
			assert.Equal(t, want.SellerInfo.SellerLocation, got.SellerInfo.SellerLocation)
			assert.Equal(t, want.SellerInfo.CategorySpecialization, got.SellerInfo.CategorySpecialization)
			sameTime(t, want.SellerInfo.JoinDate, got.SellerInfo.JoinDate)

			sameKPIRows(t, []domain.KPIRow{want.KPIData.KPIRow}, []domain.KPIRow{got.KPIData.KPIRow})
			assert.InDelta(t, want.KPIData.CancellationRate, got.KPIData.CancellationRate, parityTolerance)
			assert.Equal(t, want.KPIData.NegativeReviewCount, got.KPIData.NegativeReviewCount)

			sameTrendRows(t, want.TrendData, got.TrendData)
			sameStatusRows(t, want.StatusData, got.StatusData)
			sameCategoryRows(t, want.CategoryData, got.CategoryData)
			sameRatingBuckets(t, want.RatingData, got.RatingData)
			sameReturnRows(t, want.ReturnData, got.ReturnData)
		}
	})

	t.Run("FullSellerBreakdownWindowed", func(t *testing.T) {
		start, end := datePtr(2024, time.January, 1), datePtr(2024, time.February, 29)
		want, err := synthetic.FullSellerBreakdown(ctx, 1, start, end)
		require.NoError(t, err)
		got, err := relational.FullSellerBreakdown(ctx, 1, start, end)
		require.NoError(t, err)

		sameKPIRows(t, []domain.KPIRow{want.KPIData.KPIRow}, []domain.KPIRow{got.KPIData.KPIRow})
		assert.InDelta(t, want.KPIData.CancellationRate, got.KPIData.CancellationRate, parityTolerance)
		sameTrendRows(t, want.TrendData, got.TrendData)
		sameStatusRows(t, want.StatusData, got.StatusData)
		sameCategoryRows(t, want.CategoryData, got.CategoryData)
		sameRatingBuckets(t, want.RatingData, got.RatingData)
		sameReturnRows(t, want.ReturnData, got.ReturnData)
	})

	t.Run("FilteredExport", func(t *testing.T) {
		for name, f := range filterCases {
			want, err := synthetic.FilteredExport(ctx, f)
			require.NoError(t, err, name)
			got, err := relational.FilteredExport(ctx, f)
			require.NoError(t, err, name)
			sameExportRows(t, want, got)
		}
	})
}
