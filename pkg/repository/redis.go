package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/storefront/pkg/config"
	"github.com/example/storefront/pkg/models"
	"github.com/example/storefront/pkg/service"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RedisRepository struct {
	client *redis.Client
	config *config.RedisConfig
}

func NewRedisRepository(cfg *config.RedisConfig) *RedisRepository {
	return &RedisRepository{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
			PoolSize: cfg.PoolSize,
		}),
		config: cfg,
	}
}

func (r *RedisRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisRepository) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

func (r *RedisRepository) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *RedisRepository) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisRepository) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, expiration).Err()
}

func (r *RedisRepository) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dest)
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// Cache for user data
type UserCache struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r *RedisRepository) CacheUser(ctx context.Context, user *UserCache) error {
	key := fmt.Sprintf("user:%s", user.ID)
	return r.SetJSON(ctx, key, user, 30*time.Minute)
}

func (r *RedisRepository) GetUserCache(ctx context.Context, userID string) (*UserCache, error) {
	key := fmt.Sprintf("user:%s", userID)
	var user UserCache
	err := r.GetJSON(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *RedisRepository) InvalidateUserCache(ctx context.Context, userID string) error {
	return r.Del(ctx, fmt.Sprintf("user:%s", userID))
}

// CacheProfile stores the public part of a user document. Password hashes
// never enter the cache.
func (r *RedisRepository) CacheProfile(ctx context.Context, user *models.User) error {
	return r.CacheUser(ctx, &UserCache{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	})
}

func (r *RedisRepository) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	cached, err := r.GetUserCache(ctx, userID)
	if err != nil {
		return nil, err
	}
	id, err := primitive.ObjectIDFromHex(cached.ID)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:    id,
		Name:  cached.Name,
		Email: cached.Email,
		Phone: cached.Phone,
	}, nil
}

const submitLockTTL = 30 * time.Second

// unlockScript deletes the lock only when the caller still holds it.
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Lock acquires the per-user order-submission lock. A held lock means
// another submission for the same user is in flight.
func (r *RedisRepository) Lock(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	key := fmt.Sprintf("order_submit:%s", userID)

	ok, err := r.client.SetNX(ctx, key, token, submitLockTTL).Result()
	if err != nil {
		return "", fmt.Errorf("%w: acquire submit lock: %w", service.ErrStorage, err)
	}
	if !ok {
		return "", fmt.Errorf("%w: order submission already in progress", service.ErrConflict)
	}
	return token, nil
}

func (r *RedisRepository) Unlock(ctx context.Context, userID, token string) error {
	key := fmt.Sprintf("order_submit:%s", userID)
	return unlockScript.Run(ctx, r.client, []string{key}, token).Err()
}
