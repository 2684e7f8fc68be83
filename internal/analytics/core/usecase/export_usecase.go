package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"
	"time"

	"seller-analytics-service/internal/analytics/core/domain"
	"seller-analytics-service/internal/analytics/core/ports"
)

const exportDateLayout = "2006-01-02"

var exportHeader = []string{
	"seller_id", "seller_name", "seller_location", "category_specialization", "join_date",
	"order_id", "order_date", "shipped_date", "delivered_date", "order_status",
	"product_category", "order_value",
	"rating_id", "rating_score",
	"return_id", "return_reason", "return_date",
}

// ExportUseCase produces the denormalized order-level export, one row per
// matching order with its rating and return left-joined.
type ExportUseCase struct {
	provider ports.AnalyticsProviderPort
}

func NewExportUseCase(provider ports.AnalyticsProviderPort) *ExportUseCase {
	return &ExportUseCase{provider: provider}
}

func (uc *ExportUseCase) FilteredExport(ctx context.Context, f ports.FilterCriteria) ([]domain.ExportRow, error) {
	if err := validateFilters(f); err != nil {
		return nil, err
	}
	return uc.provider.FilteredExport(ctx, f)
}

// ExportCSV renders the filtered rows as a CSV document with a fixed header.
func (uc *ExportUseCase) ExportCSV(ctx context.Context, f ports.FilterCriteria) ([]byte, error) {
	rows, err := uc.FilteredExport(ctx, f)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write(exportRecord(r)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportRecord(r domain.ExportRow) []string {
	return []string{
		strconv.Itoa(r.SellerID),
		r.SellerName,
		r.SellerLocation,
		r.CategorySpecialization,
		r.JoinDate.Format(exportDateLayout),
		strconv.Itoa(r.OrderID),
		r.OrderDate.Format(exportDateLayout),
		formatDate(r.ShippedDate),
		formatDate(r.DeliveredDate),
		string(r.OrderStatus),
		r.ProductCategory,
		strconv.FormatFloat(r.OrderValue, 'f', 2, 64),
		formatInt(r.RatingID),
		formatInt(r.RatingScore),
		formatInt(r.ReturnID),
		formatString(r.ReturnReason),
		formatDate(r.ReturnDate),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(exportDateLayout)
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func formatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
