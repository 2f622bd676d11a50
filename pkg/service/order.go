package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/example/storefront/pkg/models"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PaymentMethods is the fixed set of labels accepted at checkout.
var PaymentMethods = []string{"Credit Card", "Debit Card", "PayPal", "Cash on Delivery"}

// OrderService owns the cart-to-order workflow: snapshotting cart lines,
// computing the total, and applying order creation, cart clearing and stock
// decrements as one transaction.
type OrderService struct {
	carts    CartStore
	products ProductStore
	orders   OrderStore
	tx       TxRunner
	locker   SubmitLocker
	notifier Notifier
	logger   *zap.Logger
}

func NewOrderService(
	carts CartStore,
	products ProductStore,
	orders OrderStore,
	tx TxRunner,
	locker SubmitLocker,
	notifier Notifier,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		carts:    carts,
		products: products,
		orders:   orders,
		tx:       tx,
		locker:   locker,
		notifier: notifier,
		logger:   logger,
	}
}

// Submit turns the user's cart into an order. Line prices are captured at
// submission time; the order insert, cart clear and stock decrements commit
// or abort together. Submissions for the same user are serialized by a
// per-user lock, and insufficient stock rejects the whole order.
func (s *OrderService) Submit(ctx context.Context, userID primitive.ObjectID, shippingAddress, paymentMethod string) (*models.Order, error) {
	if strings.TrimSpace(shippingAddress) == "" {
		return nil, fmt.Errorf("%w: shipping address is required", ErrValidation)
	}
	if !validPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, paymentMethod)
	}

	token, err := s.locker.Lock(ctx, userID.Hex())
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.locker.Unlock(ctx, userID.Hex(), token); err != nil {
			s.logger.Warn("Failed to release submit lock",
				zap.String("user_id", userID.Hex()), zap.Error(err))
		}
	}()

	items, err := s.carts.ListResolved(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lines := make([]models.OrderLine, len(items))
	total := decimal.Zero
	for i, item := range items {
		lines[i] = models.OrderLine{
			ProductID: item.Product.ID,
			Name:      item.Product.Name,
			ImageURL:  item.Product.ImageURL,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
		}
		subtotal := decimal.NewFromFloat(item.Product.Price).
			Mul(decimal.NewFromInt32(item.Quantity))
		total = total.Add(subtotal)
	}

	order := &models.Order{
		UserID:          userID,
		Items:           lines,
		TotalAmount:     total.Round(2).InexactFloat64(),
		ShippingAddress: shippingAddress,
		PaymentMethod:   paymentMethod,
		Status:          models.OrderStatusPending,
		OrderDate:       time.Now(),
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.orders.Insert(ctx, order); err != nil {
			return err
		}
		if err := s.carts.Clear(ctx, userID); err != nil {
			return err
		}
		for _, line := range lines {
			if err := s.products.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Order placed",
		zap.String("order_id", order.ID.Hex()),
		zap.String("user_id", userID.Hex()),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Int("line_count", len(lines)))

	if s.notifier != nil {
		s.notifier.OrderPlaced(order)
	}

	return order, nil
}

func (s *OrderService) Get(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	return s.orders.Get(ctx, userID, orderID)
}

func (s *OrderService) List(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

func validPaymentMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
