package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"seller-analytics-service/internal/analytics/core/domain"
	"seller-analytics-service/internal/analytics/core/ports"
	"seller-analytics-service/internal/analytics/core/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type DashboardUseCase interface {
	DateRange(ctx context.Context) (domain.DateRange, error)
	Locations(ctx context.Context) ([]string, error)
	Categories(ctx context.Context) ([]string, error)
	AllSellers(ctx context.Context) ([]domain.SellerRef, error)
	KPIDashboard(ctx context.Context, f ports.FilterCriteria) ([]domain.KPIRow, error)
	TopSellers(ctx context.Context, limit int, f ports.FilterCriteria) ([]domain.KPIRow, error)
}

type TrendsUseCase interface {
	MonthlyTrend(ctx context.Context, sellerID *int, f ports.FilterCriteria) ([]domain.TrendRow, error)
	OrderStatusDistribution(ctx context.Context, sellerID *int, f ports.FilterCriteria) ([]domain.StatusRow, error)
	RatingsReturnsCorrelation(ctx context.Context, f ports.FilterCriteria) ([]domain.CorrelationRow, error)
}

type BreakdownUseCase interface {
	FullSellerBreakdown(ctx context.Context, sellerID int, start, end *time.Time) (*domain.SellerBreakdown, error)
}

type ExportUseCase interface {
	ExportCSV(ctx context.Context, f ports.FilterCriteria) ([]byte, error)
}

type AnalyticsHandler struct {
	dashboard DashboardUseCase
	trends    TrendsUseCase
	breakdown BreakdownUseCase
	export    ExportUseCase
}

func NewAnalyticsHandler(dashboard DashboardUseCase, trends TrendsUseCase, breakdown BreakdownUseCase, export ExportUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{
		dashboard: dashboard,
		trends:    trends,
		breakdown: breakdown,
		export:    export,
	}
}

// DateRange godoc
// @Summary Global order date bounds
// @Tags Meta
// @Produce json
// @Success 200 {object} DateRangeResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/meta/date-range [get]
func (h *AnalyticsHandler) DateRange(c *fiber.Ctx) error {
	dr, err := h.dashboard.DateRange(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	resp := DateRangeResponse{}
	if !dr.MinDate.IsZero() {
		resp.MinDate = dr.MinDate.Format(dateLayout)
		resp.MaxDate = dr.MaxDate.Format(dateLayout)
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// Locations godoc
// @Summary Distinct seller locations
// @Tags Meta
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} ErrorResponse
// @Router /api/meta/locations [get]
func (h *AnalyticsHandler) Locations(c *fiber.Ctx) error {
	locations, err := h.dashboard.Locations(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(locations)
}

// Categories godoc
// @Summary Distinct product categories
// @Tags Meta
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} ErrorResponse
// @Router /api/meta/categories [get]
func (h *AnalyticsHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.dashboard.Categories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(categories)
}

// AllSellers godoc
// @Summary All sellers, sorted by name
// @Tags Sellers
// @Produce json
// @Success 200 {array} SellerRefResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/sellers [get]
func (h *AnalyticsHandler) AllSellers(c *fiber.Ctx) error {
	sellers, err := h.dashboard.AllSellers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]SellerRefResponse, 0, len(sellers))
	for _, s := range sellers {
		resp = append(resp, SellerRefResponse{SellerID: s.SellerID, SellerName: s.SellerName})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// KPIDashboard godoc
// @Summary Per-seller KPI aggregates under the given filters
// @Tags KPI
// @Produce json
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param location query string false "Exact seller location"
// @Param category query string false "Exact product category"
// @Param seller_id query int false "Single seller focus"
// @Success 200 {array} KPIRowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/kpi [get]
func (h *AnalyticsHandler) KPIDashboard(c *fiber.Ctx) error {
	f, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err)
	}
	rows, err := h.dashboard.KPIDashboard(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toKPIResponses(rows))
}

// TopSellers godoc
// @Summary Top N sellers by total revenue
// @Tags KPI
// @Produce json
// @Param limit query int false "Row limit (default 10)"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param location query string false "Exact seller location"
// @Param category query string false "Exact product category"
// @Success 200 {array} KPIRowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/sellers/top [get]
func (h *AnalyticsHandler) TopSellers(c *fiber.Ctx) error {
	limit := 10
	if raw := c.Query("limit", ""); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return badRequest(c, errors.New("invalid 'limit' parameter"))
		}
		limit = n
	}
	f, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err)
	}
	rows, err := h.dashboard.TopSellers(c.Context(), limit, f)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toKPIResponses(rows))
}

// MonthlyTrend godoc
// @Summary Monthly order and revenue trend
// @Tags Trends
// @Produce json
// @Param seller_id query int false "Single seller focus"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param location query string false "Exact seller location"
// @Param category query string false "Exact product category"
// @Success 200 {array} TrendRowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/trend/monthly [get]
func (h *AnalyticsHandler) MonthlyTrend(c *fiber.Ctx) error {
	sellerID, err := parseOptionalInt(c, "seller_id")
	if err != nil {
		return badRequest(c, err)
	}
	f, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err)
	}
	f.SellerID = nil // the focus parameter stands alone

	rows, err := h.trends.MonthlyTrend(c.Context(), sellerID, f)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]TrendRowResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, TrendRowResponse{
			SellerID:       r.SellerID,
			SellerName:     r.SellerName,
			Month:          r.Month,
			TotalOrders:    r.TotalOrders,
			MonthlyRevenue: r.MonthlyRevenue,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// OrderStatusDistribution godoc
// @Summary Order counts and percentages per status
// @Tags Trends
// @Produce json
// @Param seller_id query int false "Single seller focus"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param location query string false "Exact seller location"
// @Param category query string false "Exact product category"
// @Success 200 {array} StatusRowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/orders/status [get]
func (h *AnalyticsHandler) OrderStatusDistribution(c *fiber.Ctx) error {
	sellerID, err := parseOptionalInt(c, "seller_id")
	if err != nil {
		return badRequest(c, err)
	}
	f, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err)
	}
	f.SellerID = nil

	rows, err := h.trends.OrderStatusDistribution(c.Context(), sellerID, f)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]StatusRowResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, StatusRowResponse{
			OrderStatus: string(r.OrderStatus),
			OrderCount:  r.OrderCount,
			Percentage:  r.Percentage,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// RatingsReturnsCorrelation godoc
// @Summary Average rating vs return rate per seller
// @Description Sellers with five or fewer matching orders are excluded
// @Tags Analysis
// @Produce json
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param location query string false "Exact seller location"
// @Param category query string false "Exact product category"
// @Success 200 {array} CorrelationRowResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/analysis/ratings-returns [get]
func (h *AnalyticsHandler) RatingsReturnsCorrelation(c *fiber.Ctx) error {
	f, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err)
	}
	rows, err := h.trends.RatingsReturnsCorrelation(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]CorrelationRowResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, CorrelationRowResponse{
			SellerID:      r.SellerID,
			SellerName:    r.SellerName,
			AverageRating: r.AverageRating,
			ReturnRate:    r.ReturnRate,
			TotalOrders:   r.TotalOrders,
			TotalRevenue:  r.TotalRevenue,
		})
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// FullSellerBreakdown godoc
// @Summary Deep-dive composite for one seller
// @Tags Sellers
// @Produce json
// @Param seller_id path int true "Seller ID"
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Success 200 {object} SellerBreakdownResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/sellers/{seller_id}/breakdown [get]
func (h *AnalyticsHandler) FullSellerBreakdown(c *fiber.Ctx) error {
	sellerID, err := c.ParamsInt("seller_id")
	if err != nil {
		return badRequest(c, errors.New("invalid 'seller_id' parameter"))
	}
	start, err := parseOptionalDate(c, "start_date")
	if err != nil {
		return badRequest(c, err)
	}
	end, err := parseOptionalDate(c, "end_date")
	if err != nil {
		return badRequest(c, err)
	}

	bd, err := h.breakdown.FullSellerBreakdown(c.Context(), sellerID, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toBreakdownResponse(bd))
}

// Export godoc
// @Summary Filtered order-level data as CSV
// @Tags Export
// @Produce text/csv
// @Param start_date query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param location query string false "Exact seller location"
// @Param category query string false "Exact product category"
// @Param seller_id query int false "Single seller focus"
// @Success 200 {string} string "CSV document"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/export [get]
func (h *AnalyticsHandler) Export(c *fiber.Ctx) error {
	f, err := parseFilters(c)
	if err != nil {
		return badRequest(c, err)
	}
	data, err := h.export.ExportCSV(c.Context(), f)
	if err != nil {
		return respondError(c, err)
	}

	filename := "seller_export_" + uuid.NewString() + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Status(http.StatusOK).Send(data)
}

func parseFilters(c *fiber.Ctx) (ports.FilterCriteria, error) {
	var f ports.FilterCriteria

	start, err := parseOptionalDate(c, "start_date")
	if err != nil {
		return f, err
	}
	end, err := parseOptionalDate(c, "end_date")
	if err != nil {
		return f, err
	}
	f.StartDate = start
	f.EndDate = end

	if location := c.Query("location", ""); location != "" {
		f.Location = &location
	}
	if category := c.Query("category", ""); category != "" {
		f.Category = &category
	}

	sellerID, err := parseOptionalInt(c, "seller_id")
	if err != nil {
		return f, err
	}
	f.SellerID = sellerID
	return f, nil
}

func parseOptionalDate(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name, "")
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, errors.New("invalid '" + name + "' parameter, expected YYYY-MM-DD")
	}
	return &t, nil
}

func parseOptionalInt(c *fiber.Ctx, name string) (*int, error) {
	raw := c.Query(name, "")
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, errors.New("invalid '" + name + "' parameter")
	}
	return &n, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: err.Error(),
	})
}

func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrInvalidSellerID),
		errors.Is(err, usecase.ErrInvalidLimit):
		return badRequest(c, err)
	case errors.Is(err, ports.ErrConnectivity):
		return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
			Error: "store_unavailable",
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func toKPIResponses(rows []domain.KPIRow) []KPIRowResponse {
	resp := make([]KPIRowResponse, 0, len(rows))
	for _, r := range rows {
		resp = append(resp, toKPIResponse(r))
	}
	return resp
}

func toKPIResponse(r domain.KPIRow) KPIRowResponse {
	joinDate := ""
	if !r.JoinDate.IsZero() {
		joinDate = r.JoinDate.Format(dateLayout)
	}
	return KPIRowResponse{
		SellerID:          r.SellerID,
		SellerName:        r.SellerName,
		SellerLocation:    r.SellerLocation,
		JoinDate:          joinDate,
		TotalOrders:       r.TotalOrders,
		TotalRevenue:      r.TotalRevenue,
		AverageOrderValue: r.AverageOrderValue,
		AverageRating:     r.AverageRating,
		TotalReviewCount:  r.TotalReviewCount,
		ReturnRate:        r.ReturnRate,
	}
}

func toBreakdownResponse(bd *domain.SellerBreakdown) SellerBreakdownResponse {
	resp := SellerBreakdownResponse{
		SellerInfo: SellerInfoResponse{
			SellerID:               bd.SellerInfo.SellerID,
			SellerName:             bd.SellerInfo.SellerName,
			SellerLocation:         bd.SellerInfo.SellerLocation,
			CategorySpecialization: bd.SellerInfo.CategorySpecialization,
		},
		KPIData: BreakdownKPIResponse{
			KPIRowResponse:      toKPIResponse(bd.KPIData.KPIRow),
			CancellationRate:    bd.KPIData.CancellationRate,
			NegativeReviewCount: bd.KPIData.NegativeReviewCount,
		},
		TrendData:    make([]TrendRowResponse, 0, len(bd.TrendData)),
		StatusData:   make([]StatusRowResponse, 0, len(bd.StatusData)),
		CategoryData: make([]CategoryRowResponse, 0, len(bd.CategoryData)),
		RatingData:   make([]RatingBucketResponse, 0, len(bd.RatingData)),
		ReturnData:   make([]ReturnReasonResponse, 0, len(bd.ReturnData)),
	}
	if !bd.SellerInfo.JoinDate.IsZero() {
		resp.SellerInfo.JoinDate = bd.SellerInfo.JoinDate.Format(dateLayout)
	}
	for _, r := range bd.TrendData {
		resp.TrendData = append(resp.TrendData, TrendRowResponse{
			SellerID:       r.SellerID,
			SellerName:     r.SellerName,
			Month:          r.Month,
			TotalOrders:    r.TotalOrders,
			MonthlyRevenue: r.MonthlyRevenue,
		})
	}
	for _, r := range bd.StatusData {
		resp.StatusData = append(resp.StatusData, StatusRowResponse{
			OrderStatus: string(r.OrderStatus),
			OrderCount:  r.OrderCount,
			Percentage:  r.Percentage,
		})
	}
	for _, r := range bd.CategoryData {
		resp.CategoryData = append(resp.CategoryData, CategoryRowResponse{
			ProductCategory: r.ProductCategory,
			OrderCount:      r.OrderCount,
			CategoryRevenue: r.CategoryRevenue,
			Percentage:      r.Percentage,
		})
	}
	for _, r := range bd.RatingData {
		resp.RatingData = append(resp.RatingData, RatingBucketResponse{
			RatingScore: r.RatingScore,
			RatingCount: r.RatingCount,
			Percentage:  r.Percentage,
		})
	}
	for _, r := range bd.ReturnData {
		resp.ReturnData = append(resp.ReturnData, ReturnReasonResponse{
			ReturnReason: r.ReturnReason,
			ReturnCount:  r.ReturnCount,
			Percentage:   r.Percentage,
		})
	}
	return resp
}
