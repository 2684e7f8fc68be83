package memory

import (
	"math"
	"math/rand"
	"strconv"
	"time"

	"seller-analytics-service/internal/analytics/core/domain"
)

const (
	defaultSellerCount = 50
	ordersPerSeller    = 50
	minOrderCount      = 1000

	ratedShareOfDelivered = 0.40
	specializationShare   = 0.80
)

var demoLocations = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix",
	"Philadelphia", "San Antonio", "San Diego", "Dallas", "San Jose",
}

var demoCategories = []string{
	"Electronics", "Fashion", "Home & Kitchen", "Books", "Toys",
	"Beauty", "Sports", "Automotive", "Grocery", "Health",
}

var returnReasons = []string{
	"Damaged during shipping",
	"Not as described",
	"Wrong item received",
	"Changed mind",
	"Defective product",
	"Better price elsewhere",
	"Late delivery",
	"Missing parts",
}

// Cumulative weights for rating scores 1..5. Positivity-biased, as real
// rating systems are: 2% / 3% / 10% / 30% / 55%.
var ratingCDF = []float64{0.02, 0.05, 0.15, 0.45, 1.00}

// Generator produces a self-consistent random dataset. The seed is an
// explicit constructor parameter: two generators with the same seed and the
// same reference time produce identical datasets.
type Generator struct {
	rng         *rand.Rand
	sellerCount int
}

func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng:         rand.New(rand.NewSource(seed)),
		sellerCount: defaultSellerCount,
	}
}

// Generate builds the full dataset anchored at the given reference time.
// Order dates fall within the year preceding it, skewed toward recency.
func (g *Generator) Generate(now time.Time) *domain.Dataset {
	ds := &domain.Dataset{}
	ds.Sellers = g.generateSellers(now)
	ds.Orders = g.generateOrders(ds.Sellers, now)
	ds.Ratings = g.generateRatings(ds.Orders)
	ds.Returns = g.generateReturns(ds.Orders)
	return ds
}

func (g *Generator) generateSellers(now time.Time) []domain.Seller {
	sellers := make([]domain.Seller, 0, g.sellerCount)
	for i := 1; i <= g.sellerCount; i++ {
		sellers = append(sellers, domain.Seller{
			SellerID:               i,
			SellerName:             sellerName(i),
			SellerLocation:         demoLocations[g.rng.Intn(len(demoLocations))],
			CategorySpecialization: demoCategories[g.rng.Intn(len(demoCategories))],
			JoinDate:               now.AddDate(0, 0, -(30 + g.rng.Intn(970))),
		})
	}
	return sellers
}

func (g *Generator) generateOrders(sellers []domain.Seller, now time.Time) []domain.Order {
	count := len(sellers) * ordersPerSeller
	if count < minOrderCount {
		count = minOrderCount
	}

	orders := make([]domain.Order, 0, count)
	for i := 1; i <= count; i++ {
		seller := sellers[g.rng.Intn(len(sellers))]

		// Exponential skew toward recent dates, capped at one year back.
		daysAgo := int(g.rng.ExpFloat64() * 100)
		if daysAgo > 365 {
			daysAgo = 365
		}
		orderDate := now.AddDate(0, 0, -daysAgo)

		o := domain.Order{
			OrderID:         i,
			SellerID:        seller.SellerID,
			OrderDate:       orderDate,
			ProductCategory: g.pickCategory(seller.CategorySpecialization),
			OrderValue:      g.orderValue(),
			OrderStatus:     g.orderStatus(),
		}
		if o.OrderStatus == domain.StatusDelivered {
			shipped := orderDate.AddDate(0, 0, 1+g.rng.Intn(3))
			delivered := shipped.AddDate(0, 0, 2+g.rng.Intn(6))
			o.ShippedDate = &shipped
			o.DeliveredDate = &delivered
		}
		orders = append(orders, o)
	}
	return orders
}

func (g *Generator) generateRatings(orders []domain.Order) []domain.Rating {
	var ratings []domain.Rating
	nextID := 1
	for _, o := range orders {
		if o.OrderStatus != domain.StatusDelivered {
			continue
		}
		if g.rng.Float64() >= ratedShareOfDelivered {
			continue
		}
		ratings = append(ratings, domain.Rating{
			RatingID:    nextID,
			OrderID:     o.OrderID,
			SellerID:    o.SellerID,
			RatingScore: g.ratingScore(),
			RatingDate:  o.OrderDate.AddDate(0, 0, 1+g.rng.Intn(13)),
		})
		nextID++
	}
	return ratings
}

func (g *Generator) generateReturns(orders []domain.Order) []domain.Return {
	var returns []domain.Return
	nextID := 1
	for _, o := range orders {
		if o.OrderStatus != domain.StatusReturned {
			continue
		}
		returns = append(returns, domain.Return{
			ReturnID:     nextID,
			OrderID:      o.OrderID,
			SellerID:     o.SellerID,
			ReturnReason: returnReasons[g.rng.Intn(len(returnReasons))],
			ReturnDate:   o.OrderDate.AddDate(0, 0, 2+g.rng.Intn(8)),
		})
		nextID++
	}
	return returns
}

func (g *Generator) pickCategory(specialization string) string {
	if g.rng.Float64() < specializationShare {
		return specialization
	}
	// Uniform pick over the remaining categories.
	for {
		c := demoCategories[g.rng.Intn(len(demoCategories))]
		if c != specialization {
			return c
		}
	}
}

// orderValue draws from a lognormal distribution, which gives the
// right-skewed shape typical of order values, clipped to [5, 500].
func (g *Generator) orderValue() float64 {
	v := math.Exp(3.5 + 0.7*g.rng.NormFloat64())
	if v < 5 {
		v = 5
	}
	if v > 500 {
		v = 500
	}
	return v
}

// orderStatus draws from the fixed categorical split:
// 85% delivered, 8% cancelled, 7% returned.
func (g *Generator) orderStatus() domain.OrderStatus {
	r := g.rng.Float64()
	switch {
	case r < 0.85:
		return domain.StatusDelivered
	case r < 0.93:
		return domain.StatusCancelled
	default:
		return domain.StatusReturned
	}
}

func (g *Generator) ratingScore() int {
	r := g.rng.Float64()
	for score, cum := range ratingCDF {
		if r < cum {
			return score + 1
		}
	}
	return 5
}

func sellerName(id int) string {
	return "Seller " + strconv.Itoa(id)
}
