package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"shopper-backend/models"
	"shopper-backend/notify"
	"shopper-backend/store"
)

// OrderService places orders and moves them through their statuses.
type OrderService struct {
	orders      store.OrderStore
	users       store.UserStore
	carts       *CartService
	notifier    notify.Notifier
	shippingFee float64
}

// NewOrderService charges shippingFee on every order. A nil notifier sends nothing.
func NewOrderService(orders store.OrderStore, users store.UserStore, carts *CartService, notifier notify.Notifier, shippingFee float64) *OrderService {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &OrderService{
		orders:      orders,
		users:       users,
		carts:       carts,
		notifier:    notifier,
		shippingFee: shippingFee,
	}
}

// PlacedOrder is the result of PlaceOrder. CartCleared is false when the
// order was saved but the cart could not be reset afterwards.
type PlacedOrder struct {
	Order       *models.Order
	CartCleared bool
}

// PlaceOrder stores a snapshot of the request for userID and then clears the
// cart. Prices and totals are taken from the client as sent. The two writes
// are independent: a failed cart reset does not undo the order.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, req models.PlaceOrderRequest) (*PlacedOrder, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	if err := validate(&req); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return nil, userErr(err)
	}

	payment := req.PaymentInfo
	if payment.Status == "" {
		payment.Status = models.PaymentStatusPending
	}
	if payment.Method == models.PaymentMethodCash {
		payment.CardLastFour = ""
		payment.CardHolderName = ""
	}

	now := time.Now()
	order := &models.Order{
		UserID:       uid,
		Items:        append([]models.OrderItem(nil), req.Items...),
		ShippingInfo: req.ShippingInfo,
		PaymentInfo:  payment,
		TotalAmount:  req.TotalAmount,
		ShippingFee:  s.shippingFee,
		Status:       models.OrderStatusProcessing,
		OrderDate:    now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.orders.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}

	placed := &PlacedOrder{Order: order, CartCleared: true}
	if err := s.carts.ClearCart(ctx, uid); err != nil {
		log.Printf("Order %s saved but cart of user %s was not cleared: %v", order.ID.Hex(), userID, err)
		placed.CartCleared = false
	}

	if err := s.notifier.OrderPlaced(ctx, user.Email, order); err != nil {
		log.Printf("Order %s confirmation email failed: %v", order.ID.Hex(), err)
	}
	return placed, nil
}

// GetOrder returns an order only if userID owns it.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (*models.Order, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	oid, err := parseID(orderID, "order")
	if err != nil {
		return nil, notFoundf("order not found")
	}
	order, err := s.orders.FindForUser(ctx, oid, uid)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

// ListOrders returns the orders of userID, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]models.Order, error) {
	uid, err := parseID(userID, "user")
	if err != nil {
		return nil, err
	}
	return s.orders.ListByUser(ctx, uid)
}

// ListAllOrders returns every order with its owner, newest first.
func (s *OrderService) ListAllOrders(ctx context.Context) ([]models.OrderWithUser, error) {
	return s.orders.ListWithUsers(ctx)
}

// UpdateStatus sets any of the known statuses; no transition order is enforced.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID, status string) (*models.Order, error) {
	if !models.OrderStatuses[status] {
		return nil, validationf("invalid status %q: must be Processing, Shipped, Delivered or Cancelled", status)
	}
	oid, err := parseID(orderID, "order")
	if err != nil {
		return nil, err
	}
	order, err := s.orders.UpdateStatus(ctx, oid, status)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundf("order not found")
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return order, nil
}
