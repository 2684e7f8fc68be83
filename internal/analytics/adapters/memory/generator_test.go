package memory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seller-analytics-service/internal/analytics/core/domain"
)

var anchor = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestGenerate_Deterministic(t *testing.T) {
	a := NewGenerator(42).Generate(anchor)
	b := NewGenerator(42).Generate(anchor)

	assert.Equal(t, a.Sellers, b.Sellers)
	assert.Equal(t, a.Orders, b.Orders)
	assert.Equal(t, a.Ratings, b.Ratings)
	assert.Equal(t, a.Returns, b.Returns)
}

func TestGenerate_DifferentSeedsDiffer(t *testing.T) {
	a := NewGenerator(1).Generate(anchor)
	b := NewGenerator(2).Generate(anchor)

	assert.NotEqual(t, a.Orders, b.Orders)
}

func TestGenerate_Shape(t *testing.T) {
	ds := NewGenerator(42).Generate(anchor)

	assert.Len(t, ds.Sellers, defaultSellerCount)
	assert.GreaterOrEqual(t, len(ds.Orders), minOrderCount)

	for i, s := range ds.Sellers {
		assert.Equal(t, i+1, s.SellerID)
		assert.NotEmpty(t, s.SellerName)
		assert.Contains(t, demoLocations, s.SellerLocation)
		assert.Contains(t, demoCategories, s.CategorySpecialization)
		assert.True(t, s.JoinDate.Before(anchor))
	}
}

func TestGenerate_OrderInvariants(t *testing.T) {
	ds := NewGenerator(42).Generate(anchor)

	yearAgo := anchor.AddDate(0, 0, -365)
	statusCounts := map[domain.OrderStatus]int{}
	for _, o := range ds.Orders {
		assert.GreaterOrEqual(t, o.OrderValue, 5.0)
		assert.LessOrEqual(t, o.OrderValue, 500.0)
		assert.False(t, o.OrderDate.Before(yearAgo), "order %d older than a year", o.OrderID)
		assert.False(t, o.OrderDate.After(anchor), "order %d in the future", o.OrderID)
		statusCounts[o.OrderStatus]++

		if o.OrderStatus == domain.StatusDelivered {
			require.NotNil(t, o.ShippedDate)
			require.NotNil(t, o.DeliveredDate)
			assert.True(t, o.ShippedDate.After(o.OrderDate))
			assert.True(t, o.DeliveredDate.After(*o.ShippedDate))
		} else {
			assert.Nil(t, o.ShippedDate)
			assert.Nil(t, o.DeliveredDate)
		}
	}

	// The 85/8/7 split should hold roughly over ~2500 orders.
	total := float64(len(ds.Orders))
	assert.InDelta(t, 0.85, float64(statusCounts[domain.StatusDelivered])/total, 0.05)
	assert.InDelta(t, 0.08, float64(statusCounts[domain.StatusCancelled])/total, 0.04)
	assert.InDelta(t, 0.07, float64(statusCounts[domain.StatusReturned])/total, 0.04)
}

func TestGenerate_RatingsOnlyForDeliveredOrders(t *testing.T) {
	ds := NewGenerator(42).Generate(anchor)

	ordersByID := map[int]domain.Order{}
	deliveredCount := 0
	for _, o := range ds.Orders {
		ordersByID[o.OrderID] = o
		if o.OrderStatus == domain.StatusDelivered {
			deliveredCount++
		}
	}

	seen := map[int]bool{}
	for _, r := range ds.Ratings {
		o, ok := ordersByID[r.OrderID]
		require.True(t, ok, "rating %d references unknown order", r.RatingID)
		assert.Equal(t, domain.StatusDelivered, o.OrderStatus)
		assert.Equal(t, o.SellerID, r.SellerID, "rating seller must match order seller")
		assert.GreaterOrEqual(t, r.RatingScore, 1)
		assert.LessOrEqual(t, r.RatingScore, 5)
		assert.False(t, seen[r.OrderID], "at most one rating per order")
		seen[r.OrderID] = true
	}

	// Roughly 40% of delivered orders carry a rating.
	assert.InDelta(t, ratedShareOfDelivered, float64(len(ds.Ratings))/float64(deliveredCount), 0.05)
}

func TestGenerate_ReturnsForEveryReturnedOrder(t *testing.T) {
	ds := NewGenerator(42).Generate(anchor)

	returnedOrders := map[int]domain.Order{}
	for _, o := range ds.Orders {
		if o.OrderStatus == domain.StatusReturned {
			returnedOrders[o.OrderID] = o
		}
	}

	require.Len(t, ds.Returns, len(returnedOrders))
	for _, rt := range ds.Returns {
		o, ok := returnedOrders[rt.OrderID]
		require.True(t, ok, "return %d references a non-returned order", rt.ReturnID)
		assert.Equal(t, o.SellerID, rt.SellerID)
		assert.Contains(t, returnReasons, rt.ReturnReason)
		assert.True(t, rt.ReturnDate.After(o.OrderDate))
	}
}

func TestGenerate_RatingDistributionPositivityBias(t *testing.T) {
	ds := NewGenerator(42).Generate(anchor)

	counts := map[int]int{}
	for _, r := range ds.Ratings {
		counts[r.RatingScore]++
	}
	total := float64(len(ds.Ratings))
	require.NotZero(t, total)

	// 4s and 5s should dominate (85% expected share).
	highShare := float64(counts[4]+counts[5]) / total
	assert.Greater(t, highShare, 0.7)
}
