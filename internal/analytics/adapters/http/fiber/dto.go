package fiber

type DateRangeResponse struct {
	MinDate string `json:"min_date"`
	MaxDate string `json:"max_date"`
}

type SellerRefResponse struct {
	SellerID   int    `json:"seller_id"`
	SellerName string `json:"seller_name"`
}

type KPIRowResponse struct {
	SellerID          int     `json:"seller_id"`
	SellerName        string  `json:"seller_name"`
	SellerLocation    string  `json:"seller_location"`
	JoinDate          string  `json:"join_date"`
	TotalOrders       int64   `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	AverageOrderValue float64 `json:"average_order_value"`
	AverageRating     float64 `json:"average_rating"`
	TotalReviewCount  int64   `json:"total_review_count"`
	ReturnRate        float64 `json:"return_rate"`
}

type TrendRowResponse struct {
	SellerID       int     `json:"seller_id"`
	SellerName     string  `json:"seller_name"`
	Month          string  `json:"month"`
	TotalOrders    int64   `json:"total_orders"`
	MonthlyRevenue float64 `json:"monthly_revenue"`
}

type StatusRowResponse struct {
	OrderStatus string  `json:"order_status"`
	OrderCount  int64   `json:"order_count"`
	Percentage  float64 `json:"percentage"`
}

type CorrelationRowResponse struct {
	SellerID      int     `json:"seller_id"`
	SellerName    string  `json:"seller_name"`
	AverageRating float64 `json:"average_rating"`
	ReturnRate    float64 `json:"return_rate"`
	TotalOrders   int64   `json:"total_orders"`
	TotalRevenue  float64 `json:"total_revenue"`
}

type CategoryRowResponse struct {
	ProductCategory string  `json:"product_category"`
	OrderCount      int64   `json:"order_count"`
	CategoryRevenue float64 `json:"category_revenue"`
	Percentage      float64 `json:"percentage"`
}

type RatingBucketResponse struct {
	RatingScore int     `json:"rating_score"`
	RatingCount int64   `json:"rating_count"`
	Percentage  float64 `json:"percentage"`
}

type ReturnReasonResponse struct {
	ReturnReason string  `json:"return_reason"`
	ReturnCount  int64   `json:"return_count"`
	Percentage   float64 `json:"percentage"`
}

type SellerInfoResponse struct {
	SellerID               int    `json:"seller_id"`
	SellerName             string `json:"seller_name"`
	SellerLocation         string `json:"seller_location"`
	CategorySpecialization string `json:"category_specialization"`
	JoinDate               string `json:"join_date"`
}

type BreakdownKPIResponse struct {
	KPIRowResponse
	CancellationRate    float64 `json:"cancellation_rate"`
	NegativeReviewCount int64   `json:"negative_review_count"`
}

type SellerBreakdownResponse struct {
	SellerInfo   SellerInfoResponse     `json:"seller_info"`
	KPIData      BreakdownKPIResponse   `json:"kpi_data"`
	TrendData    []TrendRowResponse     `json:"trend_data"`
	StatusData   []StatusRowResponse    `json:"status_data"`
	CategoryData []CategoryRowResponse  `json:"category_data"`
	RatingData   []RatingBucketResponse `json:"rating_data"`
	ReturnData   []ReturnReasonResponse `json:"return_data"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message,omitempty" example:"start_date is after end_date"`
}
