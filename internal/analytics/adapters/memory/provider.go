package memory

import (
	"context"
	"math"
	"sort"
	"time"

	"seller-analytics-service/internal/analytics/core/domain"
	"seller-analytics-service/internal/analytics/core/ports"
)

// Sellers with this many matching orders or fewer are dropped from the
// ratings/returns correlation, mirroring the relational provider's HAVING
// clause.
const minCorrelationOrders = 5

// Provider answers the analytics contract from a dataset generated once at
// construction and never mutated, so it is safe for concurrent readers. It
// cannot fail: unknown sellers and empty filter scopes yield zero-filled
// results, never errors.
type Provider struct {
	ds *domain.Dataset

	sellersByID  map[int]domain.Seller
	ratingsByOrd map[int]domain.Rating
	returnsByOrd map[int]domain.Return
}

var _ ports.AnalyticsProviderPort = (*Provider)(nil)

// NewProvider generates a seeded synthetic dataset anchored at the current
// time. The same seed reproduces the same dataset for a given anchor.
func NewProvider(seed int64) *Provider {
	return NewProviderFromDataset(NewGenerator(seed).Generate(time.Now()))
}

// NewProviderFromDataset wraps an existing dataset. Used by tests and by any
// caller that wants to load fixture data instead of generated data.
func NewProviderFromDataset(ds *domain.Dataset) *Provider {
	p := &Provider{
		ds:           ds,
		sellersByID:  make(map[int]domain.Seller, len(ds.Sellers)),
		ratingsByOrd: make(map[int]domain.Rating, len(ds.Ratings)),
		returnsByOrd: make(map[int]domain.Return, len(ds.Returns)),
	}
	for _, s := range ds.Sellers {
		p.sellersByID[s.SellerID] = s
	}
	for _, r := range ds.Ratings {
		p.ratingsByOrd[r.OrderID] = r
	}
	for _, r := range ds.Returns {
		p.returnsByOrd[r.OrderID] = r
	}
	return p
}

func (p *Provider) DateRange(ctx context.Context) (domain.DateRange, error) {
	var dr domain.DateRange
	for i, o := range p.ds.Orders {
		if i == 0 {
			dr.MinDate, dr.MaxDate = o.OrderDate, o.OrderDate
			continue
		}
		if o.OrderDate.Before(dr.MinDate) {
			dr.MinDate = o.OrderDate
		}
		if o.OrderDate.After(dr.MaxDate) {
			dr.MaxDate = o.OrderDate
		}
	}
	return dr, nil
}

func (p *Provider) Locations(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range p.ds.Sellers {
		if _, ok := seen[s.SellerLocation]; ok {
			continue
		}
		seen[s.SellerLocation] = struct{}{}
		out = append(out, s.SellerLocation)
	}
	sort.Strings(out)
	return out, nil
}

func (p *Provider) Categories(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, o := range p.ds.Orders {
		if _, ok := seen[o.ProductCategory]; ok {
			continue
		}
		seen[o.ProductCategory] = struct{}{}
		out = append(out, o.ProductCategory)
	}
	sort.Strings(out)
	return out, nil
}

func (p *Provider) AllSellers(ctx context.Context) ([]domain.SellerRef, error) {
	refs := make([]domain.SellerRef, 0, len(p.ds.Sellers))
	for _, s := range p.ds.Sellers {
		refs = append(refs, domain.SellerRef{SellerID: s.SellerID, SellerName: s.SellerName})
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].SellerName != refs[j].SellerName {
			return refs[i].SellerName < refs[j].SellerName
		}
		return refs[i].SellerID < refs[j].SellerID
	})
	return refs, nil
}

func (p *Provider) KPIDashboard(ctx context.Context, f ports.FilterCriteria) ([]domain.KPIRow, error) {
	rows := make([]domain.KPIRow, 0, len(p.ds.Sellers))
	for _, s := range p.ds.Sellers {
		if !sellerMatches(s, f) {
			continue
		}
		rows = append(rows, p.kpiRowFor(s, f))
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalRevenue != rows[j].TotalRevenue {
			return rows[i].TotalRevenue > rows[j].TotalRevenue
		}
		return rows[i].SellerID < rows[j].SellerID
	})
	return rows, nil
}

func (p *Provider) TopSellers(ctx context.Context, limit int, f ports.FilterCriteria) ([]domain.KPIRow, error) {
	rows, err := p.KPIDashboard(ctx, f)
	if err != nil {
		return nil, err
	}
	if limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (p *Provider) MonthlyTrend(ctx context.Context, sellerID *int, f ports.FilterCriteria) ([]domain.TrendRow, error) {
	type key struct {
		sellerID int
		month    string
	}
	buckets := make(map[key]*domain.TrendRow)

	for _, o := range p.scopedOrders(sellerID, f) {
		k := key{o.SellerID, o.OrderDate.Format("2006-01")}
		row, ok := buckets[k]
		if !ok {
			row = &domain.TrendRow{
				SellerID:   o.SellerID,
				SellerName: p.sellersByID[o.SellerID].SellerName,
				Month:      k.month,
			}
			buckets[k] = row
		}
		row.TotalOrders++
		if o.OrderStatus.RevenueEligible() {
			row.MonthlyRevenue += o.OrderValue
		}
	}

	rows := make([]domain.TrendRow, 0, len(buckets))
	for _, r := range buckets {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SellerName != rows[j].SellerName {
			return rows[i].SellerName < rows[j].SellerName
		}
		if rows[i].SellerID != rows[j].SellerID {
			return rows[i].SellerID < rows[j].SellerID
		}
		return rows[i].Month < rows[j].Month
	})
	return rows, nil
}

func (p *Provider) OrderStatusDistribution(ctx context.Context, sellerID *int, f ports.FilterCriteria) ([]domain.StatusRow, error) {
	counts := make(map[domain.OrderStatus]int64)
	var total int64
	for _, o := range p.scopedOrders(sellerID, f) {
		counts[o.OrderStatus]++
		total++
	}
	if total == 0 {
		return []domain.StatusRow{}, nil
	}

	rows := make([]domain.StatusRow, 0, len(counts))
	for status, n := range counts {
		rows = append(rows, domain.StatusRow{
			OrderStatus: status,
			OrderCount:  n,
			Percentage:  round2(safeDiv(float64(n)*100, float64(total))),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].OrderStatus < rows[j].OrderStatus
	})
	return rows, nil
}

func (p *Provider) RatingsReturnsCorrelation(ctx context.Context, f ports.FilterCriteria) ([]domain.CorrelationRow, error) {
	var rows []domain.CorrelationRow
	for _, s := range p.ds.Sellers {
		if !sellerMatches(s, f) {
			continue
		}
		kpi := p.kpiRowFor(s, f)
		if kpi.TotalOrders <= minCorrelationOrders {
			continue
		}
		rows = append(rows, domain.CorrelationRow{
			SellerID:      s.SellerID,
			SellerName:    s.SellerName,
			AverageRating: round2(kpi.AverageRating),
			ReturnRate:    round2(kpi.ReturnRate),
			TotalOrders:   kpi.TotalOrders,
			TotalRevenue:  kpi.TotalRevenue,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SellerName != rows[j].SellerName {
			return rows[i].SellerName < rows[j].SellerName
		}
		return rows[i].SellerID < rows[j].SellerID
	})
	return rows, nil
}

func (p *Provider) FullSellerBreakdown(ctx context.Context, sellerID int, start, end *time.Time) (*domain.SellerBreakdown, error) {
	bd := &domain.SellerBreakdown{
		TrendData:    []domain.TrendRow{},
		StatusData:   []domain.StatusRow{},
		CategoryData: []domain.CategoryRow{},
		RatingData:   emptyRatingBuckets(),
		ReturnData:   []domain.ReturnReasonRow{},
	}

	seller, ok := p.sellersByID[sellerID]
	if !ok {
		// Unknown seller: zeroed composite, not an error.
		return bd, nil
	}
	bd.SellerInfo = seller

	f := ports.FilterCriteria{StartDate: start, EndDate: end}

	kpi := p.kpiRowFor(seller, f)
	bd.KPIData = domain.BreakdownKPI{KPIRow: kpi}

	var orders []domain.Order
	for _, o := range p.ds.Orders {
		if o.SellerID == sellerID && orderMatches(o, f) {
			orders = append(orders, o)
		}
	}

	var cancelled int64
	for _, o := range orders {
		if o.OrderStatus == domain.StatusCancelled {
			cancelled++
		}
	}
	bd.KPIData.CancellationRate = safeDiv(float64(cancelled)*100, float64(len(orders)))

	trend, err := p.MonthlyTrend(ctx, &sellerID, f)
	if err != nil {
		return nil, err
	}
	bd.TrendData = trend

	status, err := p.OrderStatusDistribution(ctx, &sellerID, f)
	if err != nil {
		return nil, err
	}
	bd.StatusData = status

	bd.CategoryData = categoryBreakdown(orders)
	bd.RatingData, bd.KPIData.NegativeReviewCount = p.ratingBreakdown(orders)
	bd.ReturnData = p.returnBreakdown(orders)

	return bd, nil
}

func (p *Provider) FilteredExport(ctx context.Context, f ports.FilterCriteria) ([]domain.ExportRow, error) {
	rows := []domain.ExportRow{}
	for _, o := range p.ds.Orders {
		s, ok := p.sellersByID[o.SellerID]
		if !ok || !sellerMatches(s, f) || !orderMatches(o, f) {
			continue
		}
		row := domain.ExportRow{
			SellerID:               s.SellerID,
			SellerName:             s.SellerName,
			SellerLocation:         s.SellerLocation,
			CategorySpecialization: s.CategorySpecialization,
			JoinDate:               s.JoinDate,
			OrderID:                o.OrderID,
			OrderDate:              o.OrderDate,
			ShippedDate:            o.ShippedDate,
			DeliveredDate:          o.DeliveredDate,
			OrderStatus:            o.OrderStatus,
			ProductCategory:        o.ProductCategory,
			OrderValue:             o.OrderValue,
		}
		if r, ok := p.ratingsByOrd[o.OrderID]; ok {
			id, score := r.RatingID, r.RatingScore
			row.RatingID = &id
			row.RatingScore = &score
		}
		if rt, ok := p.returnsByOrd[o.OrderID]; ok {
			id, reason, date := rt.ReturnID, rt.ReturnReason, rt.ReturnDate
			row.ReturnID = &id
			row.ReturnReason = &reason
			row.ReturnDate = &date
		}
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SellerName != rows[j].SellerName {
			return rows[i].SellerName < rows[j].SellerName
		}
		if !rows[i].OrderDate.Equal(rows[j].OrderDate) {
			return rows[i].OrderDate.After(rows[j].OrderDate)
		}
		return rows[i].OrderID < rows[j].OrderID
	})
	return rows, nil
}

// Close is a no-op: the dataset lives in process memory.
func (p *Provider) Close() error {
	return nil
}

// kpiRowFor computes one seller's dashboard aggregates under the order-level
// filters (dates, category). Seller-level filters are the caller's concern.
func (p *Provider) kpiRowFor(s domain.Seller, f ports.FilterCriteria) domain.KPIRow {
	row := domain.KPIRow{
		SellerID:       s.SellerID,
		SellerName:     s.SellerName,
		SellerLocation: s.SellerLocation,
		JoinDate:       s.JoinDate,
	}

	var (
		eligibleCount int64
		returnedCount int64
		ratingSum     int64
	)
	for _, o := range p.ds.Orders {
		if o.SellerID != s.SellerID || !orderMatches(o, f) {
			continue
		}
		row.TotalOrders++
		if o.OrderStatus.RevenueEligible() {
			row.TotalRevenue += o.OrderValue
			eligibleCount++
		}
		if o.OrderStatus == domain.StatusReturned {
			returnedCount++
		}
		if r, ok := p.ratingsByOrd[o.OrderID]; ok {
			row.TotalReviewCount++
			ratingSum += int64(r.RatingScore)
		}
	}

	row.AverageOrderValue = safeDiv(row.TotalRevenue, float64(eligibleCount))
	row.AverageRating = safeDiv(float64(ratingSum), float64(row.TotalReviewCount))
	row.ReturnRate = safeDiv(float64(returnedCount)*100, float64(row.TotalOrders))
	return row
}

// scopedOrders returns orders passing the order-level filters whose seller
// passes the seller-level filters, optionally narrowed to one seller.
func (p *Provider) scopedOrders(sellerID *int, f ports.FilterCriteria) []domain.Order {
	var out []domain.Order
	for _, o := range p.ds.Orders {
		if sellerID != nil && o.SellerID != *sellerID {
			continue
		}
		s, ok := p.sellersByID[o.SellerID]
		if !ok || !sellerMatches(s, f) || !orderMatches(o, f) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func categoryBreakdown(orders []domain.Order) []domain.CategoryRow {
	byCategory := make(map[string]*domain.CategoryRow)
	var totalRevenue float64
	for _, o := range orders {
		row, ok := byCategory[o.ProductCategory]
		if !ok {
			row = &domain.CategoryRow{ProductCategory: o.ProductCategory}
			byCategory[o.ProductCategory] = row
		}
		row.OrderCount++
		if o.OrderStatus.RevenueEligible() {
			row.CategoryRevenue += o.OrderValue
			totalRevenue += o.OrderValue
		}
	}

	rows := make([]domain.CategoryRow, 0, len(byCategory))
	for _, r := range byCategory {
		r.Percentage = round2(safeDiv(r.CategoryRevenue*100, totalRevenue))
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CategoryRevenue != rows[j].CategoryRevenue {
			return rows[i].CategoryRevenue > rows[j].CategoryRevenue
		}
		return rows[i].ProductCategory < rows[j].ProductCategory
	})
	return rows
}

// ratingBreakdown buckets the matching orders' ratings by score. All five
// buckets are always present, zero-padded. Also reports the negative (<= 2)
// review count.
func (p *Provider) ratingBreakdown(orders []domain.Order) ([]domain.RatingBucket, int64) {
	buckets := emptyRatingBuckets()
	var total, negative int64
	for _, o := range orders {
		r, ok := p.ratingsByOrd[o.OrderID]
		if !ok {
			continue
		}
		buckets[r.RatingScore-1].RatingCount++
		total++
		if r.RatingScore <= 2 {
			negative++
		}
	}
	for i := range buckets {
		buckets[i].Percentage = round2(safeDiv(float64(buckets[i].RatingCount)*100, float64(total)))
	}
	return buckets, negative
}

func (p *Provider) returnBreakdown(orders []domain.Order) []domain.ReturnReasonRow {
	byReason := make(map[string]int64)
	var total int64
	for _, o := range orders {
		rt, ok := p.returnsByOrd[o.OrderID]
		if !ok {
			continue
		}
		byReason[rt.ReturnReason]++
		total++
	}

	rows := make([]domain.ReturnReasonRow, 0, len(byReason))
	for reason, n := range byReason {
		rows = append(rows, domain.ReturnReasonRow{
			ReturnReason: reason,
			ReturnCount:  n,
			Percentage:   round2(safeDiv(float64(n)*100, float64(total))),
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ReturnCount != rows[j].ReturnCount {
			return rows[i].ReturnCount > rows[j].ReturnCount
		}
		return rows[i].ReturnReason < rows[j].ReturnReason
	})
	return rows
}

func emptyRatingBuckets() []domain.RatingBucket {
	buckets := make([]domain.RatingBucket, 5)
	for i := range buckets {
		buckets[i].RatingScore = i + 1
	}
	return buckets
}

func sellerMatches(s domain.Seller, f ports.FilterCriteria) bool {
	if f.Location != nil && s.SellerLocation != *f.Location {
		return false
	}
	if f.SellerID != nil && s.SellerID != *f.SellerID {
		return false
	}
	return true
}

// orderMatches applies the order-level criteria. Both date bounds are
// inclusive.
func orderMatches(o domain.Order, f ports.FilterCriteria) bool {
	if f.StartDate != nil && o.OrderDate.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && o.OrderDate.After(*f.EndDate) {
		return false
	}
	if f.Category != nil && o.ProductCategory != *f.Category {
		return false
	}
	return true
}

// safeDiv divides, mapping a zero denominator to 0 rather than NaN or Inf.
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
