package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nexttalk-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisRoomCache keeps the serialized room list under a single key.
type RedisRoomCache struct {
	client *redis.Client
	key    string
}

func NewRedisRoomCache(addr, password string, db int) (*RedisRoomCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisRoomCache{client: client, key: "nexttalk:rooms"}, nil
}

func (c *RedisRoomCache) GetRooms(ctx context.Context) ([]models.Room, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var rooms []models.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}
	return rooms, nil
}

func (c *RedisRoomCache) SetRooms(ctx context.Context, rooms []models.Room, ttl time.Duration) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, c.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}
	return nil
}

func (c *RedisRoomCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

func (c *RedisRoomCache) Close() error {
	return c.client.Close()
}
