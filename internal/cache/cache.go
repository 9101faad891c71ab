package cache

import (
	"context"
	"errors"
	"time"

	"nexttalk-backend/internal/models"
)

var ErrCacheMiss = errors.New("cache miss")

// RoomCache holds the room list between reads. Implementations may drop
// entries at any time; callers fall back to the store on ErrCacheMiss.
type RoomCache interface {
	GetRooms(ctx context.Context) ([]models.Room, error)
	SetRooms(ctx context.Context, rooms []models.Room, ttl time.Duration) error
	Invalidate(ctx context.Context) error
	Close() error
}

// Noop disables caching; every read misses.
type Noop struct{}

func (Noop) GetRooms(ctx context.Context) ([]models.Room, error) { return nil, ErrCacheMiss }

func (Noop) SetRooms(ctx context.Context, rooms []models.Room, ttl time.Duration) error { return nil }

func (Noop) Invalidate(ctx context.Context) error { return nil }

func (Noop) Close() error { return nil }
