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

type CartRepository struct {
	mongo *MongoRepository
}

func NewCartRepository(m *MongoRepository) *CartRepository {
	return &CartRepository{mongo: m}
}

func (r *CartRepository) collection() *mongo.Collection {
	return r.mongo.database.Collection(collCartItems)
}

// ListResolved returns the user's cart items joined with their current
// product documents. Items whose product vanished are dropped by the join.
func (r *CartRepository) ListResolved(ctx context.Context, userID primitive.ObjectID) ([]models.ResolvedCartItem, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collProducts,
			"localField":   "product_id",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: "$product"}},
	}

	cursor, err := r.collection().Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("%w: list cart items: %w", service.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	items := []models.ResolvedCartItem{}
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("%w: decode cart items: %w", service.ErrStorage, err)
	}

	return items, nil
}

// Upsert creates the (user, product) cart line or increments its quantity.
// The unique index on (user_id, product_id) keeps this race-free.
func (r *CartRepository) Upsert(ctx context.Context, userID, productID primitive.ObjectID, qty int32) (*models.CartItem, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var item models.CartItem
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"user_id": userID, "product_id": productID},
		bson.M{
			"$inc":         bson.M{"quantity": qty},
			"$setOnInsert": bson.M{"user_id": userID, "product_id": productID},
		},
		opts,
	).Decode(&item)
	if err != nil {
		return nil, fmt.Errorf("%w: upsert cart item: %w", service.ErrStorage, err)
	}

	return &item, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, itemID primitive.ObjectID, qty int32) (*models.CartItem, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var item models.CartItem
	err := r.collection().FindOneAndUpdate(ctx,
		bson.M{"_id": itemID, "user_id": userID},
		bson.M{"$set": bson.M{"quantity": qty}},
		opts,
	).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: cart item", service.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: update cart item: %w", service.ErrStorage, err)
	}

	return &item, nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, itemID primitive.ObjectID) error {
	result, err := r.collection().DeleteOne(ctx, bson.M{"_id": itemID, "user_id": userID})
	if err != nil {
		return fmt.Errorf("%w: delete cart item: %w", service.ErrStorage, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: cart item", service.ErrNotFound)
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := r.collection().DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return fmt.Errorf("%w: clear cart: %w", service.ErrStorage, err)
	}
	return nil
}
