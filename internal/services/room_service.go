package services

import (
	"context"
	"errors"
	"time"

	"nexttalk-backend/internal/cache"
	"nexttalk-backend/internal/models"
	"nexttalk-backend/internal/store"
	"nexttalk-backend/internal/utils"
)

var ErrRoomNotFound = errors.New("room not found")

const roomListTTL = 30 * time.Second

// RoomService is the room directory: it lists rooms and keeps the derived
// last_activity and unread_count fields consistent.
type RoomService struct {
	rooms store.RoomStore
	cache cache.RoomCache
}

func NewRoomService(rooms store.RoomStore, c cache.RoomCache) *RoomService {
	return &RoomService{rooms: rooms, cache: c}
}

func (s *RoomService) ListRooms(ctx context.Context) ([]models.Room, error) {
	if cached, err := s.cache.GetRooms(ctx); err == nil {
		return cached, nil
	}

	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = []models.Room{}
	}

	utils.LogError(s.cache.SetRooms(ctx, rooms, roomListTTL), "SetRooms")
	return rooms, nil
}

func (s *RoomService) GetRoom(ctx context.Context, roomID string) (*models.Room, error) {
	room, err := s.rooms.Get(ctx, roomID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return room, nil
}

// TouchActivity records at as the room's most recent activity. It is called
// after a successful message insert, so a missing room here means the room
// vanished mid-flight; callers treat the update as best effort.
func (s *RoomService) TouchActivity(ctx context.Context, roomID string, at time.Time) error {
	if err := s.rooms.SetLastActivity(ctx, roomID, at); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

// MarkRead resets the room's unread counter. Marking an already-read room is
// a no-op that still succeeds.
func (s *RoomService) MarkRead(ctx context.Context, roomID string) error {
	if err := s.rooms.ResetUnread(ctx, roomID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrRoomNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	utils.LogError(s.cache.Invalidate(ctx), "InvalidateRoomCache")
}
