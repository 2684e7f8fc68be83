package domain

import "time"

// DateRange holds the global bounds over all order dates. Zero-valued when
// there are no orders at all.
type DateRange struct {
	MinDate time.Time
	MaxDate time.Time
}

type SellerRef struct {
	SellerID   int
	SellerName string
}

// KPIRow is one seller's aggregate line on the dashboard. A seller with no
// matching orders still gets a row, zero-filled.
type KPIRow struct {
	SellerID          int
	SellerName        string
	SellerLocation    string
	JoinDate          time.Time
	TotalOrders       int64
	TotalRevenue      float64
	AverageOrderValue float64
	AverageRating     float64
	TotalReviewCount  int64
	ReturnRate        float64 // percent, base = all matching orders
}

type TrendRow struct {
	SellerID       int
	SellerName     string
	Month          string // "YYYY-MM"
	TotalOrders    int64
	MonthlyRevenue float64
}

type StatusRow struct {
	OrderStatus OrderStatus
	OrderCount  int64
	Percentage  float64
}

type CorrelationRow struct {
	SellerID      int
	SellerName    string
	AverageRating float64
	ReturnRate    float64
	TotalOrders   int64
	TotalRevenue  float64
}

type CategoryRow struct {
	ProductCategory string
	OrderCount      int64
	CategoryRevenue float64
	Percentage      float64 // share of the seller's category revenue
}

type RatingBucket struct {
	RatingScore int
	RatingCount int64
	Percentage  float64
}

type ReturnReasonRow struct {
	ReturnReason string
	ReturnCount  int64
	Percentage   float64
}

// BreakdownKPI extends the dashboard row with single-seller drill-down
// metrics.
type BreakdownKPI struct {
	KPIRow
	CancellationRate    float64
	NegativeReviewCount int64
}

// SellerBreakdown is the deep-dive composite for one seller. RatingData
// always carries all five score buckets, zero-padded.
type SellerBreakdown struct {
	SellerInfo   Seller
	KPIData      BreakdownKPI
	TrendData    []TrendRow
	StatusData   []StatusRow
	CategoryData []CategoryRow
	RatingData   []RatingBucket
	ReturnData   []ReturnReasonRow
}

// ExportRow is one denormalized order line for bulk export: the order
// left-joined with its rating and return, if any.
type ExportRow struct {
	SellerID               int
	SellerName             string
	SellerLocation         string
	CategorySpecialization string
	JoinDate               time.Time
	OrderID                int
	OrderDate              time.Time
	ShippedDate            *time.Time
	DeliveredDate          *time.Time
	OrderStatus            OrderStatus
	ProductCategory        string
	OrderValue             float64
	RatingID               *int
	RatingScore            *int
	ReturnID               *int
	ReturnReason           *string
	ReturnDate             *time.Time
}
