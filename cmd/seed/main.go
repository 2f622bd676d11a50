package main

import (
	"context"
	"fmt"
	"time"

	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/repository"
	"go.uber.org/zap"
)

var sampleProducts = []models.Product{
	{
		Name:        "iPhone 14 Pro",
		Description: "Latest Apple smartphone with A16 Bionic chip, 48MP camera, and Dynamic Island.",
		Price:       999.99,
		ImageURL:    "https://images.unsplash.com/photo-1678652197831-534a85862aff?w=400",
		Category:    "Electronics",
		Stock:       50,
		Rating:      4.8,
	},
	{
		Name:        "Samsung Galaxy S23",
		Description: "Premium Android phone with Snapdragon 8 Gen 2, 50MP camera.",
		Price:       799.99,
		ImageURL:    "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=400",
		Category:    "Electronics",
		Stock:       45,
		Rating:      4.6,
	},
	{
		Name:        "Sony WH-1000XM5",
		Description: "Industry-leading noise canceling wireless headphones.",
		Price:       399.99,
		ImageURL:    "https://images.unsplash.com/photo-1545127398-14699f92334b?w=400",
		Category:    "Electronics",
		Stock:       30,
		Rating:      4.9,
	},
	{
		Name:        "MacBook Pro 14",
		Description: "Apple M2 Pro chip, 16GB RAM, 512GB SSD. Perfect for professionals.",
		Price:       1999.99,
		ImageURL:    "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=400",
		Category:    "Electronics",
		Stock:       20,
		Rating:      4.9,
	},
	{
		Name:        "Nike Air Max 270",
		Description: "Comfortable running shoes with Max Air cushioning.",
		Price:       150.00,
		ImageURL:    "https://images.unsplash.com/photo-1542291026-7eec264c27ff?w=400",
		Category:    "Sports",
		Stock:       100,
		Rating:      4.5,
	},
	{
		Name:        "Adidas Ultraboost",
		Description: "Premium running shoes with responsive Boost cushioning.",
		Price:       180.00,
		ImageURL:    "https://images.unsplash.com/photo-1608231387042-66d1773070a5?w=400",
		Category:    "Sports",
		Stock:       80,
		Rating:      4.7,
	},
}

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic(fmt.Sprintf("Failed to create logger: %v", err))
	}
	defer logger.Sync()

	ctx := context.Background()

	mongoRepo, err := repository.NewMongoRepository(&cfg.MongoDB)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer mongoRepo.Close(ctx)

	if err := mongoRepo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("Failed to create indexes", zap.Error(err))
	}

	productRepo := repository.NewProductRepository(mongoRepo)
	for i := range sampleProducts {
		product := sampleProducts[i]
		product.Reviews = []models.Review{}
		product.CreatedAt = time.Now()

		if err := productRepo.Insert(ctx, &product); err != nil {
			logger.Fatal("Failed to insert product",
				zap.String("name", product.Name), zap.Error(err))
		}
		logger.Info("Seeded product",
			zap.String("id", product.ID.Hex()),
			zap.String("name", product.Name))
	}

	logger.Info("Seeding complete", zap.Int("count", len(sampleProducts)))
}
