package services

import (
	"context"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/rcoffee/events"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
)

type OrderItemInput struct {
	MenuItemID uint    `json:"menu_item_id" validate:"required"`
	Name       string  `json:"name" validate:"max=255"`
	Price      float64 `json:"price" validate:"gte=0"`
	Quantity   int     `json:"quantity" validate:"required,min=1"`
}

type CreateOrderInput struct {
	Items []OrderItemInput `json:"items" validate:"required,min=1,dive"`
	// Total is what the client computed; when sent it must match the items.
	Total *float64 `json:"total" validate:"omitempty,gte=0"`
}

type OrderService struct {
	orders OrderStore
	menu   MenuStore
	events events.Publisher
	// strict applies the transition graph to status updates. Without it
	// any known status is accepted.
	strict bool
}

func NewOrderService(orders OrderStore, menu MenuStore, pub events.Publisher, strict bool) *OrderService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &OrderService{orders: orders, menu: menu, events: pub, strict: strict}
}

// Create places a pending order. Items keep the name and price the client
// saw; blanks are filled from the menu.
func (s *OrderService) Create(ctx context.Context, userID uint, in CreateOrderInput) (*models.Order, error) {
	if userID == 0 {
		return nil, validationError("user is required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	order := &models.Order{UserID: userID, Status: models.OrderPending}
	for _, it := range in.Items {
		item, err := s.menu.FindByID(ctx, it.MenuItemID)
		if err != nil {
			return nil, storeErr("menu item", err)
		}
		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = item.Name
		}
		price := it.Price
		if price == 0 {
			price = item.Price
		}
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       name,
			Price:      price,
			Quantity:   it.Quantity,
		})
	}

	order.Total = roundCents(order.ItemsTotal())
	if in.Total != nil && math.Abs(*in.Total-order.Total) > 0.005 {
		return nil, validationError("total %.2f does not match items total %.2f", *in.Total, order.Total)
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, storeErr("order", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  userID,
		"total":    order.Total,
	}).Info("order created")
	publish(ctx, s.events, events.New(events.OrderCreated, order.ID, order.UserID, order))
	return order, nil
}

// UpdateStatus changes an order's status. Order changes do not notify the
// customer.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, to models.OrderStatus) (*models.Order, error) {
	if !to.Valid() {
		return nil, validationError("status must be pending, processing, completed or cancelled")
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("order", err)
	}

	from := order.Status
	if s.strict && !CanTransitionOrder(from, to) {
		return nil, invalidTransition("order", from, to)
	}
	if from == to {
		return order, nil
	}
	if err := s.orders.UpdateStatus(ctx, order, to); err != nil {
		return nil, storeErr("order", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"from":     from,
		"to":       to,
	}).Info("order status changed")
	publish(ctx, s.events, events.New(events.OrderStatusChanged, order.ID, order.UserID, map[string]interface{}{
		"from":  from,
		"to":    to,
		"order": order,
	}))
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, viewer *models.User, id uint) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("order", err)
	}
	if viewer == nil || (!viewer.IsStaff() && viewer.ID != order.UserID) {
		return nil, ErrForbidden
	}
	return order, nil
}

// ListForUser returns the user's orders newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.orders.List(ctx, userID)
	if err != nil {
		return nil, storeErr("orders", err)
	}
	return orders, nil
}

func (s *OrderService) ListAll(ctx context.Context) ([]models.Order, error) {
	return s.ListForUser(ctx, 0)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
