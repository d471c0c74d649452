package model

import "time"

// Statistics are derived on demand from the order collection; they are
// disposable snapshots, never an authoritative record.

type SummaryStats struct {
	TotalProducts int64   `json:"totalProducts"`
	TotalOrders   int64   `json:"totalOrders"`
	TotalUsers    int64   `json:"totalUsers"`
	TotalItems    int64   `json:"totalItems"`
	TotalRevenue  float64 `json:"totalRevenue"`
	NetRevenue    float64 `json:"netRevenue"`
}

type DailyStats struct {
	Date         time.Time `json:"date"`
	TotalOrders  int64     `json:"totalOrders"`
	TotalItems   int64     `json:"totalItems"`
	TotalRevenue float64   `json:"totalRevenue"`
}

type TopProduct struct {
	ProductName  string  `json:"productName"`
	TotalSold    int64   `json:"totalSold"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type SizeCount struct {
	Size  string `json:"size"`
	Count int64  `json:"count"`
}

type PublicStats struct {
	TotalOrders  int64   `json:"totalOrders"`
	TotalItems   int64   `json:"totalItems"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// RevenueTotals is the aggregate the order repository computes over
// revenue-recognized orders (paid and not cancelled).
type RevenueTotals struct {
	Orders   int64   `bson:"orders" json:"orders"`
	Items    int64   `bson:"items" json:"items"`
	Revenue  float64 `bson:"revenue" json:"revenue"`
	Shipping float64 `bson:"shipping" json:"shipping"`
}
