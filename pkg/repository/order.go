package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/service"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	mongo *MongoRepository
}

func NewOrderRepository(m *MongoRepository) *OrderRepository {
	return &OrderRepository{mongo: m}
}

func (r *OrderRepository) collection() *mongo.Collection {
	return r.mongo.database.Collection(collOrders)
}

func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	result, err := r.collection().InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("%w: insert order: %w", service.ErrStorage, err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		order.ID = oid
	}
	return nil
}

// Get is scoped to the owning user; an order owned by someone else is
// indistinguishable from one that does not exist.
func (r *OrderRepository) Get(ctx context.Context, userID, orderID primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := r.collection().FindOne(ctx, bson.M{"_id": orderID, "user_id": userID}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: order", service.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get order: %w", service.ErrStorage, err)
	}
	return &order, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order_date", Value: -1}})

	cursor, err := r.collection().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: list orders: %w", service.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err = cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("%w: decode orders: %w", service.ErrStorage, err)
	}

	return orders, nil
}
