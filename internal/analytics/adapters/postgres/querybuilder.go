package postgres

import (
	"fmt"
	"strings"

	"seller-analytics-service/internal/analytics/core/ports"
)

// whereBuilder composes named predicate clauses with $n placeholders. A
// clause is only added when its filter value is present, so absent criteria
// never reach the query text.
type whereBuilder struct {
	clauses []string
	args    []any
}

// add appends "expr $n" with the value bound at position n.
func (b *whereBuilder) add(expr string, value any) {
	b.args = append(b.args, value)
	b.clauses = append(b.clauses, fmt.Sprintf("%s $%d", expr, len(b.args)))
}

// bind registers a non-predicate argument (e.g. a LIMIT value) and returns
// its placeholder.
func (b *whereBuilder) bind(value any) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// where renders " WHERE c1 AND c2", or "" when no clause was added.
func (b *whereBuilder) where() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.clauses, " AND ")
}

// and renders " AND c1 AND c2" for queries that already opened their WHERE
// with a constant predicate.
func (b *whereBuilder) and() string {
	if len(b.clauses) == 0 {
		return ""
	}
	return " AND " + strings.Join(b.clauses, " AND ")
}

// orderFilters adds the order-level criteria (inclusive date bounds,
// category) against the given table alias.
func (b *whereBuilder) orderFilters(alias string, f ports.FilterCriteria) {
	if f.StartDate != nil {
		b.add(alias+".order_date >=", *f.StartDate)
	}
	if f.EndDate != nil {
		b.add(alias+".order_date <=", *f.EndDate)
	}
	if f.Category != nil {
		b.add(alias+".product_category =", *f.Category)
	}
}

// sellerFilters adds the seller-level criteria (location, seller identity)
// against the given table alias.
func (b *whereBuilder) sellerFilters(alias string, f ports.FilterCriteria) {
	if f.Location != nil {
		b.add(alias+".seller_location =", *f.Location)
	}
	if f.SellerID != nil {
		b.add(alias+".seller_id =", *f.SellerID)
	}
}
