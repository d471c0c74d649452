package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"charity-merch-api/internal/dto"
	"charity-merch-api/internal/events"
	"charity-merch-api/internal/model"
	"charity-merch-api/internal/repository"
)

// OrderRepository is what the order engine needs from the durable store.
type OrderRepository interface {
	Insert(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]*model.Order, error)
	FindAll(ctx context.Context) ([]*model.Order, error)
	UpdatePayment(ctx context.Context, id string, payment model.Payment) (*model.Order, error)
	ApplyTransition(ctx context.Context, id string, from, to model.OrderStatus, rec model.StatusRecord) error
	Delete(ctx context.Context, id string) error
}

// ProductCatalog is the read-only slice of the catalog collaborator
// used to resolve item references. Stock is never reserved here.
type ProductCatalog interface {
	FindByID(ctx context.Context, id string) (*model.Product, error)
}

// Business errors the controllers map onto the HTTP taxonomy.
var (
	ErrForbidden            = errors.New("forbidden")
	ErrUnknownStatus        = errors.New("unknown order status")
	ErrInvalidTransition    = errors.New("invalid status transition")
	ErrTerminalState        = errors.New("order is in a terminal state")
	ErrUnknownProduct       = errors.New("unknown product reference")
	ErrOrderNumberExhausted = errors.New("could not allocate a unique order number")
)

const (
	// Collisions on the coarse timestamp component are expected now and
	// then; regenerating a handful of times is always enough in practice.
	orderNumberAttempts = 5
	transitionAttempts  = 3
)

type OrderService struct {
	repo        OrderRepository
	catalog     ProductCatalog
	publisher   events.Publisher
	logger      *slog.Logger
	shippingFee float64
}

func NewOrderService(repo OrderRepository, catalog ProductCatalog, publisher events.Publisher, logger *slog.Logger, shippingFee float64) *OrderService {
	return &OrderService{
		repo:        repo,
		catalog:     catalog,
		publisher:   publisher,
		logger:      logger,
		shippingFee: shippingFee,
	}
}

// Create builds a pending order for the authenticated identity. Pricing
// is recomputed server side; totals in the request body are ignored.
func (s *OrderService) Create(ctx context.Context, ident model.Identity, req dto.CreateOrderRequest) (*model.Order, error) {
	items := make([]model.OrderItem, len(req.Items))
	for i, it := range req.Items {
		item := model.OrderItem{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Size:        it.Size,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		}
		if it.ProductID != "" {
			p, err := s.catalog.FindByID(ctx, it.ProductID)
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrUnknownProduct
			}
			if err != nil {
				return nil, err
			}
			if item.ProductName == "" {
				item.ProductName = p.Name
			}
			if item.UnitPrice == 0 {
				item.UnitPrice = p.Price
			}
		}
		items[i] = item
	}

	items, pricing, err := model.ComputePricing(items, s.shippingFee, req.Discount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &model.Order{
		UserID: ident.ID,
		Customer: model.Customer{
			Name:  fallback(req.CustomerName, ident.Name),
			Phone: req.Phone,
			Email: fallback(req.Email, ident.Email),
			Address: model.Address{
				FullAddress: req.Address.FullAddress,
				PostalCode:  req.Address.PostalCode,
			},
		},
		Items:   items,
		Pricing: pricing,
		Payment: model.Payment{
			Method: model.DefaultPaymentMethod,
			Status: model.PaymentPending,
		},
		Status: model.StatusPending,
		History: []model.StatusRecord{
			{
				Status:    model.StatusPending,
				Timestamp: now,
				UpdatedBy: ident.ID,
				Note:      "order created",
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = model.NewOrderNumber()
		err = s.repo.Insert(ctx, order)
		if err == nil {
			s.publish(ctx, events.OrderCreated, eventPayload(order))
			return order, nil
		}
		if !errors.Is(err, repository.ErrDuplicateOrderNumber) {
			return nil, err
		}
		// Unique index hit: regenerate and try again.
	}
	return nil, ErrOrderNumberExhausted
}

// Get returns an order to its owner or to an admin.
func (s *OrderService) Get(ctx context.Context, ident model.Identity, id string) (*model.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.IsAdmin() && !o.IsOwnedBy(ident.ID) {
		return nil, ErrForbidden
	}
	return o, nil
}

func (s *OrderService) ListByUser(ctx context.Context, ident model.Identity) ([]*model.Order, error) {
	return s.repo.FindByUserID(ctx, ident.ID)
}

func (s *OrderService) ListAll(ctx context.Context) ([]*model.Order, error) {
	return s.repo.FindAll(ctx)
}

// AttachPayment records uploaded slip evidence and marks the payment
// paid. This is the customer's claim, not a settlement confirmation;
// fulfillment status is untouched and staff confirm separately.
// Resubmitting overwrites the previous slip.
func (s *OrderService) AttachPayment(ctx context.Context, ident model.Identity, id string, req dto.AttachPaymentRequest) (*model.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.IsAdmin() && !o.IsOwnedBy(ident.ID) {
		return nil, ErrForbidden
	}

	paidAt := time.Now().UTC()
	if req.PaidAt != nil && !req.PaidAt.IsZero() {
		paidAt = req.PaidAt.UTC()
	}
	method := o.Payment.Method
	if req.Method != "" {
		method = req.Method
	}
	if method == "" {
		method = model.DefaultPaymentMethod
	}

	payment := model.Payment{
		Method:        method,
		Status:        model.PaymentPaid,
		SlipURL:       req.SlipImage,
		PaidAt:        &paidAt,
		TransactionID: uuid.NewString(),
	}
	updated, err := s.repo.UpdatePayment(ctx, id, payment)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.OrderPaid, eventPayload(updated))
	return updated, nil
}

// Transition moves the fulfillment status along a permitted edge.
// Staff only.
func (s *OrderService) Transition(ctx context.Context, ident model.Identity, id string, newStatus model.OrderStatus, note string) (*model.Order, error) {
	if !ident.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.transition(ctx, ident, id, newStatus, note)
}

// Cancel is transition-to-cancelled, additionally open to the order's
// owner. The edge table still applies: a shipped order cannot be
// cancelled any more.
func (s *OrderService) Cancel(ctx context.Context, ident model.Identity, id string, note string) (*model.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ident.IsAdmin() && !o.IsOwnedBy(ident.ID) {
		return nil, ErrForbidden
	}
	return s.transition(ctx, ident, id, model.StatusCancelled, note)
}

func (s *OrderService) transition(ctx context.Context, ident model.Identity, id string, newStatus model.OrderStatus, note string) (*model.Order, error) {
	if !newStatus.Valid() {
		return nil, ErrUnknownStatus
	}
	for attempt := 0; attempt < transitionAttempts; attempt++ {
		o, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if o.Status.Terminal() {
			return nil, ErrTerminalState
		}
		if !o.Status.CanTransitionTo(newStatus) {
			return nil, ErrInvalidTransition
		}

		rec := model.StatusRecord{
			Status:    newStatus,
			Timestamp: time.Now().UTC(),
			UpdatedBy: ident.ID,
			Note:      note,
		}
		err = s.repo.ApplyTransition(ctx, id, o.Status, newStatus, rec)
		if errors.Is(err, repository.ErrStatusConflict) {
			// Someone else moved the status first; re-validate the edge
			// against whatever it is now.
			continue
		}
		if err != nil {
			return nil, err
		}

		o.Status = newStatus
		o.History = append(o.History, rec)
		o.UpdatedAt = rec.Timestamp
		s.publish(ctx, events.OrderStatusChanged, eventPayload(o))
		return o, nil
	}
	return nil, repository.ErrStatusConflict
}

// Delete removes an order permanently. The route is admin gated; the
// deletion event is published so an external audit consumer can keep
// what it needs.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.OrderDeleted, eventPayload(o))
	return nil
}

func (s *OrderService) publish(ctx context.Context, event string, payload any) {
	if err := s.publisher.Publish(ctx, event, payload); err != nil {
		s.logger.Warn("failed to publish event", "event", event, "error", err)
	}
}

type orderEvent struct {
	OrderID     string            `json:"orderId"`
	OrderNumber string            `json:"orderNumber"`
	UserID      string            `json:"userId"`
	Status      model.OrderStatus `json:"status"`
	Total       float64           `json:"total"`
}

func eventPayload(o *model.Order) orderEvent {
	return orderEvent{
		OrderID:     o.ID.Hex(),
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Status:      o.Status,
		Total:       o.Pricing.Total,
	}
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
