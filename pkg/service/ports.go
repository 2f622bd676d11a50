package service

import (
	"context"

	"github.com/example/storefront/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductFilter narrows and orders catalog listings.
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Sort     string // price-asc, price-desc, name; empty means newest first
}

type ProductStore interface {
	List(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	Categories(ctx context.Context) ([]string, error)
	SetReviews(ctx context.Context, id primitive.ObjectID, reviews []models.Review, rating float64) error
	// DecrementStock subtracts qty from the product's stock. It fails with
	// ErrInsufficientStock when the remaining stock would go negative.
	DecrementStock(ctx context.Context, id primitive.ObjectID, qty int32) error
}

type CartStore interface {
	ListResolved(ctx context.Context, userID primitive.ObjectID) ([]models.ResolvedCartItem, error)
	Upsert(ctx context.Context, userID, productID primitive.ObjectID, qty int32) (*models.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, itemID primitive.ObjectID, qty int32) (*models.CartItem, error)
	Delete(ctx context.Context, userID, itemID primitive.ObjectID) error
	Clear(ctx context.Context, userID primitive.ObjectID) error
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
}

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

// TxRunner executes fn inside a single storage transaction. All store calls
// made with the ctx passed to fn commit or abort together.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// SubmitLocker serializes order submission per user.
type SubmitLocker interface {
	Lock(ctx context.Context, userID string) (token string, err error)
	Unlock(ctx context.Context, userID, token string) error
}

// ProfileCache fronts the user store for profile reads.
type ProfileCache interface {
	CacheProfile(ctx context.Context, user *models.User) error
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	InvalidateUserCache(ctx context.Context, userID string) error
}

// Notifier receives post-commit order events.
type Notifier interface {
	OrderPlaced(order *models.Order)
}
