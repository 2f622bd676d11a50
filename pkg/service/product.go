package service

import (
	"context"
	"fmt"
	"time"

	"github.com/example/storefront/pkg/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type ProductService struct {
	products ProductStore
	logger   *zap.Logger
}

func NewProductService(products ProductStore, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

func (s *ProductService) List(ctx context.Context, filter ProductFilter) ([]models.Product, error) {
	return s.products.List(ctx, filter)
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.products.Categories(ctx)
}

// AddReview appends a review and recomputes the product rating as the
// arithmetic mean over all reviews, the new one included.
func (s *ProductService) AddReview(ctx context.Context, productID primitive.ObjectID, userName, comment string, rating float64) (*models.Product, error) {
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 0 and 5", ErrValidation)
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}

	reviews := append(product.Reviews, models.Review{
		User:    userName,
		Comment: comment,
		Rating:  rating,
		Date:    time.Now(),
	})

	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	mean := sum / float64(len(reviews))

	if err := s.products.SetReviews(ctx, productID, reviews, mean); err != nil {
		return nil, err
	}

	product.Reviews = reviews
	product.Rating = mean

	s.logger.Info("Review added",
		zap.String("product_id", productID.Hex()),
		zap.Float64("rating", rating),
		zap.Float64("new_mean", mean))

	return product, nil
}
