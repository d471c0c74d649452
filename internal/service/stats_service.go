package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"charity-merch-api/internal/cache"
	"charity-merch-api/internal/model"
)

// StatsRepository is the read-only slice of the order store the
// aggregator consumes. It never mutates anything.
type StatsRepository interface {
	CountOrders(ctx context.Context) (int64, error)
	RevenueTotals(ctx context.Context, since *time.Time) (model.RevenueTotals, error)
	FindNonCancelled(ctx context.Context) ([]*model.Order, error)
}

type ProductCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

const (
	// Per-report bound on the product ranking.
	TopProductsLimit = 10

	publicStatsTTL = 30 * time.Second
)

// StatsService answers the reporting queries by recomputing from the
// current order collection. Revenue is recognized iff the payment is
// paid and the order is not cancelled, uniformly across every report.
type StatsService struct {
	orders   StatsRepository
	products ProductCounter
	users    UserCounter
	cache    cache.Provider
	logger   *slog.Logger
}

func NewStatsService(orders StatsRepository, products ProductCounter, users UserCounter, cacheProvider cache.Provider, logger *slog.Logger) *StatsService {
	return &StatsService{
		orders:   orders,
		products: products,
		users:    users,
		cache:    cacheProvider,
		logger:   logger,
	}
}

func (s *StatsService) Summary(ctx context.Context) (model.SummaryStats, error) {
	totalProducts, err := s.products.CountActive(ctx)
	if err != nil {
		return model.SummaryStats{}, err
	}
	totalOrders, err := s.orders.CountOrders(ctx)
	if err != nil {
		return model.SummaryStats{}, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return model.SummaryStats{}, err
	}
	rev, err := s.orders.RevenueTotals(ctx, nil)
	if err != nil {
		return model.SummaryStats{}, err
	}

	return model.SummaryStats{
		TotalProducts: totalProducts,
		TotalOrders:   totalOrders,
		TotalUsers:    totalUsers,
		TotalItems:    rev.Items,
		TotalRevenue:  rev.Revenue,
		NetRevenue:    rev.Revenue - rev.Shipping,
	}, nil
}

// Daily covers orders created since local midnight.
func (s *StatsService) Daily(ctx context.Context) (model.DailyStats, error) {
	midnight := startOfDay(time.Now())
	rev, err := s.orders.RevenueTotals(ctx, &midnight)
	if err != nil {
		return model.DailyStats{}, err
	}
	return model.DailyStats{
		Date:         midnight,
		TotalOrders:  rev.Orders,
		TotalItems:   rev.Items,
		TotalRevenue: rev.Revenue,
	}, nil
}

// TopProducts ranks line items of non-cancelled orders by quantity
// sold. Ties break on name so repeated runs return identical output.
func (s *StatsService) TopProducts(ctx context.Context) ([]model.TopProduct, error) {
	orders, err := s.orders.FindNonCancelled(ctx)
	if err != nil {
		return nil, err
	}

	type group struct {
		name    string
		sold    int64
		revenue float64
	}
	groups := make(map[string]*group)
	for _, o := range orders {
		for _, it := range o.Items {
			key := it.ProductID
			if key == "" {
				key = it.ProductName
			}
			g, ok := groups[key]
			if !ok {
				g = &group{name: it.ProductName}
				groups[key] = g
			}
			g.sold += int64(it.Quantity)
			g.revenue += it.Subtotal
		}
	}

	out := make([]model.TopProduct, 0, len(groups))
	for _, g := range groups {
		out = append(out, model.TopProduct{
			ProductName:  g.name,
			TotalSold:    g.sold,
			TotalRevenue: g.revenue,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSold != out[j].TotalSold {
			return out[i].TotalSold > out[j].TotalSold
		}
		return out[i].ProductName < out[j].ProductName
	})
	if len(out) > TopProductsLimit {
		out = out[:TopProductsLimit]
	}
	return out, nil
}

// SizeDistribution sums quantities per size label across non-cancelled
// orders, largest first.
func (s *StatsService) SizeDistribution(ctx context.Context) ([]model.SizeCount, error) {
	orders, err := s.orders.FindNonCancelled(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64)
	for _, o := range orders {
		for _, it := range o.Items {
			counts[it.Size] += int64(it.Quantity)
		}
	}

	out := make([]model.SizeCount, 0, len(counts))
	for size, count := range counts {
		out = append(out, model.SizeCount{Size: size, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Size < out[j].Size
	})
	return out, nil
}

// Public is the storefront campaign counter. It is served through a
// short-lived cache; a cache miss or failure just recomputes.
func (s *StatsService) Public(ctx context.Context) (model.PublicStats, error) {
	key := cache.StatsKey("public")
	if cached, err := s.cache.Get(ctx, key); err == nil {
		var ps model.PublicStats
		if err := json.Unmarshal([]byte(cached), &ps); err == nil {
			return ps, nil
		}
	}

	totalOrders, err := s.orders.CountOrders(ctx)
	if err != nil {
		return model.PublicStats{}, err
	}
	rev, err := s.orders.RevenueTotals(ctx, nil)
	if err != nil {
		return model.PublicStats{}, err
	}
	ps := model.PublicStats{
		TotalOrders:  totalOrders,
		TotalItems:   rev.Items,
		TotalRevenue: rev.Revenue,
	}

	if b, err := json.Marshal(ps); err == nil {
		if err := s.cache.Set(ctx, key, string(b), publicStatsTTL); err != nil {
			s.logger.Warn("failed to cache public stats", "error", err)
		}
	}
	return ps, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
