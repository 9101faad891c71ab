package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"nexttalk-backend/internal/models"
	"nexttalk-backend/internal/store"
	"nexttalk-backend/internal/utils"

	"github.com/google/uuid"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrEmptyContent    = errors.New("message content is empty")
)

const defaultMessageLimit = 50

// ChatService is the message ledger: it appends messages, lists them in
// chronological order and manages per-message reactions.
type ChatService struct {
	messages store.MessageStore
	rooms    *RoomService
}

func NewChatService(messages store.MessageStore, rooms *RoomService) *ChatService {
	return &ChatService{messages: messages, rooms: rooms}
}

// ListMessages returns the limit most recent messages of the room, oldest
// first. A non-positive limit means the default of 50.
func (s *ChatService) ListMessages(ctx context.Context, roomID string, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = defaultMessageLimit
	}

	messages, err := s.messages.ListRecent(ctx, roomID, limit)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []models.Message{}
	}

	// Reverse to show oldest first
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

// SendMessage appends a new message to the room's log and records the send
// time as the room's last activity.
func (s *ChatService) SendMessage(ctx context.Context, roomID string, actor models.Actor, content string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if _, err := s.rooms.GetRoom(ctx, roomID); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:         uuid.New().String(),
		RoomID:     roomID,
		SenderID:   actor.ID,
		SenderName: actor.Name,
		Content:    content,
		Timestamp:  time.Now().UTC(),
		Reactions:  []models.Reaction{},
		IsSystem:   false,
	}

	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, err
	}

	// The message is persisted at this point; the activity timestamp is best
	// effort and must not fail the send.
	utils.LogError(s.rooms.TouchActivity(ctx, roomID, msg.Timestamp), "TouchActivity")

	return msg, nil
}

// AddReaction sets the actor's reaction on the message, replacing any
// previous one. Last writer wins per user; the surviving entry sits at the
// end of the message's reaction sequence.
func (s *ChatService) AddReaction(ctx context.Context, messageID string, actor models.Actor, emoji string) error {
	reaction := models.Reaction{
		Emoji:    emoji,
		UserID:   actor.ID,
		Username: actor.Name,
	}

	if err := s.messages.ReplaceReaction(ctx, messageID, reaction); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrMessageNotFound
		}
		return err
	}
	return nil
}
