package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"charity-merch-api/internal/model"
	"charity-merch-api/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeOrderRepo struct {
	orders map[string]*model.Order

	insertCalls      int
	duplicateInserts int // fail this many inserts with a duplicate key first

	// Applied to the stored order right before the first ApplyTransition
	// reports a conflict, simulating a concurrent writer.
	conflictOnce func(o *model.Order)
	conflicted   bool
}

func newFakeOrderRepo(orders ...*model.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: make(map[string]*model.Order)}
	for _, o := range orders {
		if o.ID.IsZero() {
			o.ID = primitive.NewObjectID()
		}
		r.orders[o.ID.Hex()] = o
	}
	return r
}

func (r *fakeOrderRepo) Insert(ctx context.Context, o *model.Order) error {
	r.insertCalls++
	if r.insertCalls <= r.duplicateInserts {
		return repository.ErrDuplicateOrderNumber
	}
	o.ID = primitive.NewObjectID()
	r.orders[o.ID.Hex()] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *o
	cp.History = append([]model.StatusRecord(nil), o.History...)
	return &cp, nil
}

func (r *fakeOrderRepo) FindByUserID(ctx context.Context, userID string) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) FindAll(ctx context.Context) ([]*model.Order, error) {
	var out []*model.Order
	for _, o := range r.orders {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdatePayment(ctx context.Context, id string, payment model.Payment) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	o.Payment = payment
	o.UpdatedAt = time.Now().UTC()
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) ApplyTransition(ctx context.Context, id string, from, to model.OrderStatus, rec model.StatusRecord) error {
	o, ok := r.orders[id]
	if !ok {
		return repository.ErrNotFound
	}
	if r.conflictOnce != nil && !r.conflicted {
		r.conflicted = true
		r.conflictOnce(o)
		return repository.ErrStatusConflict
	}
	if o.Status != from {
		return repository.ErrStatusConflict
	}
	o.Status = to
	o.History = append(o.History, rec)
	o.UpdatedAt = rec.Timestamp
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

type fakeCatalog struct {
	products map[string]*model.Product
}

func (c *fakeCatalog) FindByID(ctx context.Context, id string) (*model.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

type fakePublisher struct {
	events []string
}

func (p *fakePublisher) Publish(ctx context.Context, event string, payload any) error {
	p.events = append(p.events, event)
	return nil
}

type fakeUserRepo struct {
	users map[string]*model.User // by id hex
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*model.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID.Hex()] = u
	}
	return r
}

func (r *fakeUserRepo) Insert(ctx context.Context, u *model.User) error {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return repository.ErrEmailTaken
		}
	}
	u.ID = primitive.NewObjectID()
	r.users[u.ID.Hex()] = u
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id string) error {
	if u, ok := r.users[id]; ok {
		u.LastLogin = time.Now().UTC()
	}
	return nil
}

type fakeStatsRepo struct {
	orders []*model.Order

	countCalls   int
	revenueCalls int
	findCalls    int
}

func (r *fakeStatsRepo) CountOrders(ctx context.Context) (int64, error) {
	r.countCalls++
	return int64(len(r.orders)), nil
}

func (r *fakeStatsRepo) RevenueTotals(ctx context.Context, since *time.Time) (model.RevenueTotals, error) {
	r.revenueCalls++
	var totals model.RevenueTotals
	for _, o := range r.orders {
		if o.Payment.Status != model.PaymentPaid || o.Status == model.StatusCancelled {
			continue
		}
		if since != nil && o.CreatedAt.Before(*since) {
			continue
		}
		totals.Orders++
		totals.Items += int64(o.TotalItems())
		totals.Revenue += o.Pricing.Total
		totals.Shipping += o.Pricing.ShippingFee
	}
	return totals, nil
}

func (r *fakeStatsRepo) FindNonCancelled(ctx context.Context) ([]*model.Order, error) {
	r.findCalls++
	var out []*model.Order
	for _, o := range r.orders {
		if o.Status != model.StatusCancelled {
			out = append(out, o)
		}
	}
	return out, nil
}

type fakeProductCounter struct{ active int64 }

func (c fakeProductCounter) CountActive(ctx context.Context) (int64, error) {
	return c.active, nil
}

type fakeUserCounter struct{ users int64 }

func (c fakeUserCounter) Count(ctx context.Context) (int64, error) {
	return c.users, nil
}
