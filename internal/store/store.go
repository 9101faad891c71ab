package store

import (
	"context"
	"errors"
	"time"

	"nexttalk-backend/internal/models"
)

// ErrNotFound is returned when a referenced room or message does not exist.
var ErrNotFound = errors.New("not found")

// RoomStore persists rooms and their derived activity/unread fields.
type RoomStore interface {
	List(ctx context.Context) ([]models.Room, error)
	Get(ctx context.Context, id string) (*models.Room, error)
	Insert(ctx context.Context, room *models.Room) error
	Count(ctx context.Context) (int64, error)
	SetLastActivity(ctx context.Context, id string, at time.Time) error
	ResetUnread(ctx context.Context, id string) error
}

// MessageStore persists the per-room message log and its reactions.
type MessageStore interface {
	// ListRecent returns at most limit messages for the room, newest first.
	ListRecent(ctx context.Context, roomID string, limit int) ([]models.Message, error)
	Get(ctx context.Context, id string) (*models.Message, error)
	Insert(ctx context.Context, msg *models.Message) error
	// ReplaceReaction atomically removes the acting user's existing reaction
	// on the message, if any, and appends the new one at the end of the
	// sequence. Returns ErrNotFound if the message does not exist.
	ReplaceReaction(ctx context.Context, messageID string, r models.Reaction) error
}

// UserStore holds the denormalized user records written during seeding.
type UserStore interface {
	InsertUsers(ctx context.Context, users []models.User) error
}
