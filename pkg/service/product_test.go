package service

import (
	"context"
	"testing"
	"time"

	"github.com/example/storefront/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestAddReviewRecomputesMeanRating(t *testing.T) {
	products := newFakeProductStore()
	svc := NewProductService(products, zap.NewNop())
	ctx := context.Background()

	productID := products.add(models.Product{
		Name:   "Widget",
		Rating: 4.5,
		Reviews: []models.Review{
			{User: "alice", Rating: 4, Date: time.Now()},
			{User: "bob", Rating: 5, Date: time.Now()},
		},
	})

	updated, err := svc.AddReview(ctx, productID, "carol", "decent", 3)
	require.NoError(t, err)

	require.Len(t, updated.Reviews, 3)
	assert.Equal(t, 4.0, updated.Rating)
	assert.Equal(t, "carol", updated.Reviews[2].User)
	assert.False(t, updated.Reviews[2].Date.IsZero())

	// The stored product matches what was returned.
	stored, err := svc.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, stored.Rating)
	assert.Len(t, stored.Reviews, 3)
}

func TestAddReviewUnknownProduct(t *testing.T) {
	svc := NewProductService(newFakeProductStore(), zap.NewNop())

	_, err := svc.AddReview(context.Background(), primitive.NewObjectID(), "alice", "great", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddReviewRejectsOutOfRangeRating(t *testing.T) {
	products := newFakeProductStore()
	svc := NewProductService(products, zap.NewNop())
	productID := products.add(models.Product{Name: "Widget"})

	_, err := svc.AddReview(context.Background(), productID, "alice", "meh", 5.5)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AddReview(context.Background(), productID, "alice", "meh", -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestListAppliesFilterAndSort(t *testing.T) {
	products := newFakeProductStore()
	svc := NewProductService(products, zap.NewNop())
	ctx := context.Background()

	products.add(models.Product{Name: "Phone", Description: "smart", Category: "Electronics", Price: 900})
	products.add(models.Product{Name: "Headphones", Description: "wireless", Category: "Electronics", Price: 300})
	products.add(models.Product{Name: "Sneakers", Description: "running", Category: "Sports", Price: 120})

	electronics, err := svc.List(ctx, ProductFilter{Category: "Electronics", Sort: "price-asc"})
	require.NoError(t, err)
	require.Len(t, electronics, 2)
	assert.Equal(t, "Headphones", electronics[0].Name)
	assert.Equal(t, "Phone", electronics[1].Name)

	maxPrice := 500.0
	cheap, err := svc.List(ctx, ProductFilter{MaxPrice: &maxPrice})
	require.NoError(t, err)
	assert.Len(t, cheap, 2)

	categories, err := svc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Sports"}, categories)
}
