package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/service"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	mongo *MongoRepository
}

func NewUserRepository(m *MongoRepository) *UserRepository {
	return &UserRepository{mongo: m}
}

func (r *UserRepository) collection() *mongo.Collection {
	return r.mongo.database.Collection(collUsers)
}

func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection().InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: email already registered", service.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("%w: insert user: %w", service.ErrStorage, err)
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user", service.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %w", service.ErrStorage, err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: user", service.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: find user: %w", service.ErrStorage, err)
	}
	return &user, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()

	result, err := r.collection().ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return fmt.Errorf("%w: update user: %w", service.ErrStorage, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: user", service.ErrNotFound)
	}
	return nil
}
