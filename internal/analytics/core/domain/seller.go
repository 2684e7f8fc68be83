package domain

import "time"

type OrderStatus string

const (
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
	StatusReturned  OrderStatus = "returned"
)

// RevenueEligible reports whether an order with this status counts toward
// revenue sums and average order value.
func (s OrderStatus) RevenueEligible() bool {
	return s != StatusCancelled && s != StatusReturned
}

type Seller struct {
	SellerID               int
	SellerName             string
	SellerLocation         string
	CategorySpecialization string
	JoinDate               time.Time
}

type Order struct {
	OrderID         int
	SellerID        int
	OrderDate       time.Time
	ProductCategory string
	OrderValue      float64
	OrderStatus     OrderStatus

	// Present only for delivered orders.
	ShippedDate   *time.Time
	DeliveredDate *time.Time
}

type Rating struct {
	RatingID    int
	OrderID     int
	SellerID    int
	RatingScore int // 1..5
	RatingDate  time.Time
}

type Return struct {
	ReturnID     int
	OrderID      int
	SellerID     int
	ReturnReason string
	ReturnDate   time.Time
}

// Dataset is a full snapshot of the four entity tables, read-only after
// construction.
type Dataset struct {
	Sellers []Seller
	Orders  []Order
	Ratings []Rating
	Returns []Return
}
