package service

import (
	"context"
	"fmt"

	"github.com/example/storefront/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type CartService struct {
	carts    CartStore
	products ProductStore
	logger   *zap.Logger
}

func NewCartService(carts CartStore, products ProductStore, logger *zap.Logger) *CartService {
	return &CartService{carts: carts, products: products, logger: logger}
}

func (s *CartService) List(ctx context.Context, userID primitive.ObjectID) ([]models.ResolvedCartItem, error) {
	return s.carts.ListResolved(ctx, userID)
}

// Add puts a product into the user's cart. Adding a product already in the
// cart increments its quantity instead of creating a second line.
func (s *CartService) Add(ctx context.Context, userID, productID primitive.ObjectID, qty int32) (*models.CartItem, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}

	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	return s.carts.Upsert(ctx, userID, productID, qty)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID primitive.ObjectID, qty int32) (*models.CartItem, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	return s.carts.UpdateQuantity(ctx, userID, itemID, qty)
}

func (s *CartService) Remove(ctx context.Context, userID, itemID primitive.ObjectID) error {
	return s.carts.Delete(ctx, userID, itemID)
}

func (s *CartService) Clear(ctx context.Context, userID primitive.ObjectID) error {
	return s.carts.Clear(ctx, userID)
}
