package postgres

import (
	"context"
	"database/sql"
	"math"
	"sort"
	"sync"
	"time"

	"seller-analytics-service/internal/analytics/core/domain"
	"seller-analytics-service/internal/analytics/core/ports"
)

// Sellers with this many matching orders or fewer are dropped from the
// ratings/returns correlation. The synthetic provider applies the same
// constant.
const minCorrelationOrders = 5

// AnalyticsRepository is the relational provider: every contract operation
// becomes one parameterized query (or a small set of them) against the
// sellers/orders/ratings/returns tables. Filter values are always bound,
// never interpolated.
type AnalyticsRepository struct {
	db        DB
	closeOnce sync.Once
	closeErr  error
}

var _ ports.AnalyticsProviderPort = (*AnalyticsRepository)(nil)

func NewAnalyticsRepository(db DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) DateRange(ctx context.Context) (domain.DateRange, error) {
	const op = "date_range"
	const query = `
SELECT
    MIN(order_date) AS min_date,
    MAX(order_date) AS max_date
FROM orders`

	var dr domain.DateRange
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return dr, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	if rows.Next() {
		var minDate, maxDate sql.NullTime
		if err := rows.Scan(&minDate, &maxDate); err != nil {
			return dr, ports.NewQueryError(op, err)
		}
		if minDate.Valid {
			dr.MinDate = minDate.Time
		}
		if maxDate.Valid {
			dr.MaxDate = maxDate.Time
		}
	}
	if err := rows.Err(); err != nil {
		return dr, ports.NewQueryError(op, err)
	}
	return dr, nil
}

func (r *AnalyticsRepository) Locations(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, "locations", `
SELECT DISTINCT seller_location
FROM sellers
ORDER BY seller_location`)
}

func (r *AnalyticsRepository) Categories(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, "categories", `
SELECT DISTINCT product_category
FROM orders
ORDER BY product_category`)
}

func (r *AnalyticsRepository) AllSellers(ctx context.Context) ([]domain.SellerRef, error) {
	const op = "all_sellers"
	const query = `
SELECT seller_id, seller_name
FROM sellers
ORDER BY seller_name, seller_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	refs := []domain.SellerRef{}
	for rows.Next() {
		var ref domain.SellerRef
		if err := rows.Scan(&ref.SellerID, &ref.SellerName); err != nil {
			return nil, ports.NewQueryError(op, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	return refs, nil
}

// kpiQuery builds the dashboard aggregation. Order-level filters narrow the
// CTE; seller-level filters narrow the outer join, so sellers stay visible
// (zero-filled) when only their orders are filtered away.
func kpiQuery(f ports.FilterCriteria, limit *int) (string, []any) {
	b := &whereBuilder{}
	b.orderFilters("o", f)
	cteFilter := b.and()

	query := `
WITH filtered_orders AS (
    SELECT
        o.order_id,
        o.seller_id,
        o.order_value,
        o.order_status,
        r.rating_id,
        r.rating_score
    FROM orders o
    LEFT JOIN ratings r ON r.order_id = o.order_id
    WHERE 1=1` + cteFilter + `
)
SELECT
    s.seller_id,
    s.seller_name,
    s.seller_location,
    s.join_date,
    COUNT(fo.order_id) AS total_orders,
    COALESCE(SUM(CASE WHEN fo.order_status NOT IN ('cancelled', 'returned') THEN fo.order_value ELSE 0 END), 0) AS total_revenue,
    COALESCE(
        SUM(CASE WHEN fo.order_status NOT IN ('cancelled', 'returned') THEN fo.order_value ELSE 0 END) /
        NULLIF(COUNT(CASE WHEN fo.order_status NOT IN ('cancelled', 'returned') THEN 1 END), 0),
        0
    ) AS average_order_value,
    COALESCE(AVG(fo.rating_score), 0) AS average_rating,
    COUNT(fo.rating_id) AS total_review_count,
    COALESCE(
        COUNT(CASE WHEN fo.order_status = 'returned' THEN 1 END) * 100.0 /
        NULLIF(COUNT(fo.order_id), 0),
        0
    ) AS return_rate
FROM sellers s
LEFT JOIN filtered_orders fo ON fo.seller_id = s.seller_id`

	outer := &whereBuilder{args: b.args}
	outer.sellerFilters("s", f)
	query += outer.where() + `
GROUP BY s.seller_id, s.seller_name, s.seller_location, s.join_date
ORDER BY total_revenue DESC, s.seller_id`

	if limit != nil {
		query += "\nLIMIT " + outer.bind(*limit)
	}
	return query, outer.args
}

func (r *AnalyticsRepository) KPIDashboard(ctx context.Context, f ports.FilterCriteria) ([]domain.KPIRow, error) {
	query, args := kpiQuery(f, nil)
	return r.queryKPIRows(ctx, "kpi_dashboard", query, args)
}

func (r *AnalyticsRepository) TopSellers(ctx context.Context, limit int, f ports.FilterCriteria) ([]domain.KPIRow, error) {
	query, args := kpiQuery(f, &limit)
	return r.queryKPIRows(ctx, "top_sellers", query, args)
}

func (r *AnalyticsRepository) queryKPIRows(ctx context.Context, op, query string, args []any) ([]domain.KPIRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	out := []domain.KPIRow{}
	for rows.Next() {
		var row domain.KPIRow
		if err := rows.Scan(
			&row.SellerID,
			&row.SellerName,
			&row.SellerLocation,
			&row.JoinDate,
			&row.TotalOrders,
			&row.TotalRevenue,
			&row.AverageOrderValue,
			&row.AverageRating,
			&row.TotalReviewCount,
			&row.ReturnRate,
		); err != nil {
			return nil, ports.NewQueryError(op, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	return out, nil
}

func (r *AnalyticsRepository) MonthlyTrend(ctx context.Context, sellerID *int, f ports.FilterCriteria) ([]domain.TrendRow, error) {
	const op = "monthly_trend"

	b := &whereBuilder{}
	if sellerID != nil {
		b.add("o.seller_id =", *sellerID)
	}
	b.sellerFilters("s", f)
	b.orderFilters("o", f)

	query := `
SELECT
    s.seller_id,
    s.seller_name,
    TO_CHAR(o.order_date, 'YYYY-MM') AS month,
    COUNT(o.order_id) AS total_orders,
    COALESCE(SUM(CASE WHEN o.order_status NOT IN ('cancelled', 'returned') THEN o.order_value ELSE 0 END), 0) AS monthly_revenue
FROM orders o
JOIN sellers s ON s.seller_id = o.seller_id` + b.where() + `
GROUP BY s.seller_id, s.seller_name, month
ORDER BY s.seller_name, s.seller_id, month`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	out := []domain.TrendRow{}
	for rows.Next() {
		var row domain.TrendRow
		if err := rows.Scan(&row.SellerID, &row.SellerName, &row.Month, &row.TotalOrders, &row.MonthlyRevenue); err != nil {
			return nil, ports.NewQueryError(op, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	return out, nil
}

func (r *AnalyticsRepository) OrderStatusDistribution(ctx context.Context, sellerID *int, f ports.FilterCriteria) ([]domain.StatusRow, error) {
	const op = "order_status_distribution"

	b := &whereBuilder{}
	if sellerID != nil {
		b.add("o.seller_id =", *sellerID)
	}
	b.sellerFilters("s", f)
	b.orderFilters("o", f)

	query := `
SELECT
    o.order_status,
    COUNT(o.order_id) AS order_count,
    ROUND(COUNT(o.order_id)::NUMERIC * 100 / NULLIF(SUM(COUNT(o.order_id)) OVER (), 0), 2) AS percentage
FROM orders o
JOIN sellers s ON s.seller_id = o.seller_id` + b.where() + `
GROUP BY o.order_status
ORDER BY o.order_status`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	out := []domain.StatusRow{}
	for rows.Next() {
		var row domain.StatusRow
		if err := rows.Scan(&row.OrderStatus, &row.OrderCount, &row.Percentage); err != nil {
			return nil, ports.NewQueryError(op, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	return out, nil
}

func (r *AnalyticsRepository) RatingsReturnsCorrelation(ctx context.Context, f ports.FilterCriteria) ([]domain.CorrelationRow, error) {
	const op = "ratings_returns_correlation"

	b := &whereBuilder{}
	b.orderFilters("o", f)
	cteFilter := b.and()

	query := `
WITH filtered_orders AS (
    SELECT
        o.order_id,
        o.seller_id,
        o.order_value,
        o.order_status,
        r.rating_score
    FROM orders o
    LEFT JOIN ratings r ON r.order_id = o.order_id
    WHERE 1=1` + cteFilter + `
)
SELECT
    s.seller_id,
    s.seller_name,
    COALESCE(ROUND(AVG(fo.rating_score)::NUMERIC, 2), 0) AS average_rating,
    COALESCE(
        ROUND(COUNT(CASE WHEN fo.order_status = 'returned' THEN 1 END) * 100.0 /
        NULLIF(COUNT(fo.order_id), 0), 2),
        0
    ) AS return_rate,
    COUNT(fo.order_id) AS total_orders,
    COALESCE(SUM(CASE WHEN fo.order_status NOT IN ('cancelled', 'returned') THEN fo.order_value ELSE 0 END), 0) AS total_revenue
FROM sellers s
JOIN filtered_orders fo ON fo.seller_id = s.seller_id`

	outer := &whereBuilder{args: b.args}
	outer.sellerFilters("s", f)
	query += outer.where() + `
GROUP BY s.seller_id, s.seller_name
HAVING COUNT(fo.order_id) > ` + outer.bind(minCorrelationOrders) + `
ORDER BY s.seller_name, s.seller_id`

	rows, err := r.db.QueryContext(ctx, query, outer.args...)
	if err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	out := []domain.CorrelationRow{}
	for rows.Next() {
		var row domain.CorrelationRow
		if err := rows.Scan(&row.SellerID, &row.SellerName, &row.AverageRating, &row.ReturnRate, &row.TotalOrders, &row.TotalRevenue); err != nil {
			return nil, ports.NewQueryError(op, err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	return out, nil
}

func (r *AnalyticsRepository) FullSellerBreakdown(ctx context.Context, sellerID int, start, end *time.Time) (*domain.SellerBreakdown, error) {
	bd := &domain.SellerBreakdown{
		TrendData:    []domain.TrendRow{},
		StatusData:   []domain.StatusRow{},
		CategoryData: []domain.CategoryRow{},
		RatingData:   emptyRatingBuckets(),
		ReturnData:   []domain.ReturnReasonRow{},
	}

	seller, found, err := r.sellerInfo(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	if !found {
		return bd, nil
	}
	bd.SellerInfo = seller

	f := ports.FilterCriteria{StartDate: start, EndDate: end, SellerID: &sellerID}

	kpiRows, err := r.KPIDashboard(ctx, f)
	if err != nil {
		return nil, err
	}
	if len(kpiRows) > 0 {
		bd.KPIData = domain.BreakdownKPI{KPIRow: kpiRows[0]}
	}

	bd.TrendData, err = r.MonthlyTrend(ctx, &sellerID, ports.FilterCriteria{StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}

	bd.StatusData, err = r.OrderStatusDistribution(ctx, &sellerID, ports.FilterCriteria{StartDate: start, EndDate: end})
	if err != nil {
		return nil, err
	}

	var totalOrders, cancelled int64
	for _, s := range bd.StatusData {
		totalOrders += s.OrderCount
		if s.OrderStatus == domain.StatusCancelled {
			cancelled = s.OrderCount
		}
	}
	bd.KPIData.CancellationRate = safeDiv(float64(cancelled)*100, float64(totalOrders))

	bd.CategoryData, err = r.categoryBreakdown(ctx, sellerID, start, end)
	if err != nil {
		return nil, err
	}

	bd.RatingData, err = r.ratingBreakdown(ctx, sellerID, start, end)
	if err != nil {
		return nil, err
	}
	bd.KPIData.NegativeReviewCount = bd.RatingData[0].RatingCount + bd.RatingData[1].RatingCount

	bd.ReturnData, err = r.returnBreakdown(ctx, sellerID, start, end)
	if err != nil {
		return nil, err
	}

	return bd, nil
}

func (r *AnalyticsRepository) FilteredExport(ctx context.Context, f ports.FilterCriteria) ([]domain.ExportRow, error) {
	const op = "filtered_export"

	b := &whereBuilder{}
	b.sellerFilters("s", f)
	b.orderFilters("o", f)

	query := `
SELECT
    s.seller_id,
    s.seller_name,
    s.seller_location,
    s.category_specialization,
    s.join_date,
    o.order_id,
    o.order_date,
    o.shipped_date,
    o.delivered_date,
    o.order_status,
    o.product_category,
    o.order_value,
    r.rating_id,
    r.rating_score,
    rt.return_id,
    rt.return_reason,
    rt.return_date
FROM sellers s
JOIN orders o ON o.seller_id = s.seller_id
LEFT JOIN ratings r ON r.order_id = o.order_id
LEFT JOIN returns rt ON rt.order_id = o.order_id` + b.where() + `
ORDER BY s.seller_name, o.order_date DESC, o.order_id`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	out := []domain.ExportRow{}
	for rows.Next() {
		var (
			row           domain.ExportRow
			shipped       sql.NullTime
			delivered     sql.NullTime
			ratingID      sql.NullInt64
			ratingScore   sql.NullInt64
			returnID      sql.NullInt64
			returnReason  sql.NullString
			returnDate    sql.NullTime
		)
		if err := rows.Scan(
			&row.SellerID,
			&row.SellerName,
			&row.SellerLocation,
			&row.CategorySpecialization,
			&row.JoinDate,
			&row.OrderID,
			&row.OrderDate,
			&shipped,
			&delivered,
			&row.OrderStatus,
			&row.ProductCategory,
			&row.OrderValue,
			&ratingID,
			&ratingScore,
			&returnID,
			&returnReason,
			&returnDate,
		); err != nil {
			return nil, ports.NewQueryError(op, err)
		}
		if shipped.Valid {
			row.ShippedDate = &shipped.Time
		}
		if delivered.Valid {
			row.DeliveredDate = &delivered.Time
		}
		if ratingID.Valid {
			id, score := int(ratingID.Int64), int(ratingScore.Int64)
			row.RatingID = &id
			row.RatingScore = &score
		}
		if returnID.Valid {
			id := int(returnID.Int64)
			row.ReturnID = &id
			row.ReturnReason = &returnReason.String
			row.ReturnDate = &returnDate.Time
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	return out, nil
}

// Close releases the underlying connection pool. Idempotent.
func (r *AnalyticsRepository) Close() error {
	r.closeOnce.Do(func() {
		r.closeErr = r.db.Close()
	})
	return r.closeErr
}

func (r *AnalyticsRepository) sellerInfo(ctx context.Context, sellerID int) (domain.Seller, bool, error) {
	const op = "seller_info"
	const query = `
SELECT seller_id, seller_name, seller_location, category_specialization, join_date
FROM sellers
WHERE seller_id = $1`

	var s domain.Seller
	rows, err := r.db.QueryContext(ctx, query, sellerID)
	if err != nil {
		return s, false, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return s, false, ports.NewQueryError(op, err)
		}
		return s, false, nil
	}
	if err := rows.Scan(&s.SellerID, &s.SellerName, &s.SellerLocation, &s.CategorySpecialization, &s.JoinDate); err != nil {
		return s, false, ports.NewQueryError(op, err)
	}
	return s, true, nil
}

func (r *AnalyticsRepository) categoryBreakdown(ctx context.Context, sellerID int, start, end *time.Time) ([]domain.CategoryRow, error) {
	const op = "category_breakdown"

	b := &whereBuilder{}
	b.add("o.seller_id =", sellerID)
	b.orderFilters("o", ports.FilterCriteria{StartDate: start, EndDate: end})

	query := `
SELECT
    o.product_category,
    COUNT(o.order_id) AS order_count,
    COALESCE(SUM(CASE WHEN o.order_status NOT IN ('cancelled', 'returned') THEN o.order_value ELSE 0 END), 0) AS category_revenue
FROM orders o` + b.where() + `
GROUP BY o.product_category`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	out := []domain.CategoryRow{}
	var totalRevenue float64
	for rows.Next() {
		var row domain.CategoryRow
		if err := rows.Scan(&row.ProductCategory, &row.OrderCount, &row.CategoryRevenue); err != nil {
			return nil, ports.NewQueryError(op, err)
		}
		totalRevenue += row.CategoryRevenue
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewQueryError(op, err)
	}

	for i := range out {
		out[i].Percentage = round2(safeDiv(out[i].CategoryRevenue*100, totalRevenue))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CategoryRevenue != out[j].CategoryRevenue {
			return out[i].CategoryRevenue > out[j].CategoryRevenue
		}
		return out[i].ProductCategory < out[j].ProductCategory
	})
	return out, nil
}

// ratingBreakdown returns all five score buckets, zero-padded for scores
// with no ratings.
func (r *AnalyticsRepository) ratingBreakdown(ctx context.Context, sellerID int, start, end *time.Time) ([]domain.RatingBucket, error) {
	const op = "rating_breakdown"

	b := &whereBuilder{}
	b.add("r.seller_id =", sellerID)
	b.orderFilters("o", ports.FilterCriteria{StartDate: start, EndDate: end})

	query := `
SELECT
    r.rating_score,
    COUNT(r.rating_id) AS rating_count
FROM ratings r
JOIN orders o ON o.order_id = r.order_id` + b.where() + `
GROUP BY r.rating_score`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	buckets := emptyRatingBuckets()
	var total int64
	for rows.Next() {
		var score int
		var count int64
		if err := rows.Scan(&score, &count); err != nil {
			return nil, ports.NewQueryError(op, err)
		}
		if score >= 1 && score <= 5 {
			buckets[score-1].RatingCount = count
			total += count
		}
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewQueryError(op, err)
	}

	for i := range buckets {
		buckets[i].Percentage = round2(safeDiv(float64(buckets[i].RatingCount)*100, float64(total)))
	}
	return buckets, nil
}

func (r *AnalyticsRepository) returnBreakdown(ctx context.Context, sellerID int, start, end *time.Time) ([]domain.ReturnReasonRow, error) {
	const op = "return_breakdown"

	b := &whereBuilder{}
	b.add("rt.seller_id =", sellerID)
	b.orderFilters("o", ports.FilterCriteria{StartDate: start, EndDate: end})

	query := `
SELECT
    rt.return_reason,
    COUNT(rt.return_id) AS return_count
FROM returns rt
JOIN orders o ON o.order_id = rt.order_id` + b.where() + `
GROUP BY rt.return_reason`

	rows, err := r.db.QueryContext(ctx, query, b.args...)
	if err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	out := []domain.ReturnReasonRow{}
	var total int64
	for rows.Next() {
		var row domain.ReturnReasonRow
		if err := rows.Scan(&row.ReturnReason, &row.ReturnCount); err != nil {
			return nil, ports.NewQueryError(op, err)
		}
		total += row.ReturnCount
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewQueryError(op, err)
	}

	for i := range out {
		out[i].Percentage = round2(safeDiv(float64(out[i].ReturnCount)*100, float64(total)))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReturnCount != out[j].ReturnCount {
			return out[i].ReturnCount > out[j].ReturnCount
		}
		return out[i].ReturnReason < out[j].ReturnReason
	})
	return out, nil
}

func (r *AnalyticsRepository) queryStrings(ctx context.Context, op, query string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, ports.NewQueryError(op, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, ports.NewQueryError(op, err)
	}
	return out, nil
}

func emptyRatingBuckets() []domain.RatingBucket {
	buckets := make([]domain.RatingBucket, 5)
	for i := range buckets {
		buckets[i].RatingScore = i + 1
	}
	return buckets
}

func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
