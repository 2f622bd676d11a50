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

type ProductRepository struct {
	mongo *MongoRepository
}

func NewProductRepository(m *MongoRepository) *ProductRepository {
	return &ProductRepository{mongo: m}
}

func (r *ProductRepository) collection() *mongo.Collection {
	return r.mongo.database.Collection(collProducts)
}

func (r *ProductRepository) List(ctx context.Context, filter service.ProductFilter) ([]models.Product, error) {
	query := bson.M{}

	if filter.Category != "" && filter.Category != "All" {
		query["category"] = filter.Category
	}

	if filter.MinPrice != nil || filter.MaxPrice != nil {
		price := bson.M{}
		if filter.MinPrice != nil {
			price["$gte"] = *filter.MinPrice
		}
		if filter.MaxPrice != nil {
			price["$lte"] = *filter.MaxPrice
		}
		query["price"] = price
	}

	if filter.Search != "" {
		query["$or"] = bson.A{
			bson.M{"name": bson.M{"$regex": filter.Search, "$options": "i"}},
			bson.M{"description": bson.M{"$regex": filter.Search, "$options": "i"}},
		}
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	switch filter.Sort {
	case "price-asc":
		sort = bson.D{{Key: "price", Value: 1}}
	case "price-desc":
		sort = bson.D{{Key: "price", Value: -1}}
	case "name":
		sort = bson.D{{Key: "name", Value: 1}}
	}

	cursor, err := r.collection().Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("%w: list products: %w", service.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err = cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("%w: decode products: %w", service.ErrStorage, err)
	}

	return products, nil
}

func (r *ProductRepository) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: product", service.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get product: %w", service.ErrStorage, err)
	}
	return &product, nil
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	values, err := r.collection().Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, fmt.Errorf("%w: list categories: %w", service.ErrStorage, err)
	}

	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

func (r *ProductRepository) SetReviews(ctx context.Context, id primitive.ObjectID, reviews []models.Review, rating float64) error {
	result, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"reviews": reviews, "rating": rating}},
	)
	if err != nil {
		return fmt.Errorf("%w: update reviews: %w", service.ErrStorage, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: product", service.ErrNotFound)
	}
	return nil
}

// DecrementStock is a guarded conditional write: it only matches when the
// product has at least qty units left, so stock never goes negative.
func (r *ProductRepository) DecrementStock(ctx context.Context, id primitive.ObjectID, qty int32) error {
	result, err := r.collection().UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return fmt.Errorf("%w: decrement stock: %w", service.ErrStorage, err)
	}
	if result.MatchedCount == 0 {
		exists, err := r.collection().CountDocuments(ctx, bson.M{"_id": id})
		if err == nil && exists == 0 {
			return fmt.Errorf("%w: product", service.ErrNotFound)
		}
		return service.ErrInsufficientStock
	}
	return nil
}

func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	result, err := r.collection().InsertOne(ctx, product)
	if err != nil {
		return fmt.Errorf("%w: insert product: %w", service.ErrStorage, err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}
	return nil
}
