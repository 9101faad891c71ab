package seed

import (
	"context"
	"time"

	"nexttalk-backend/internal/models"
	"nexttalk-backend/internal/store"
)

// Run inserts the fixture data set on first startup. It is a no-op when any
// rooms already exist, so restarts keep the stored state.
func Run(ctx context.Context, rooms store.RoomStore, messages store.MessageStore, users store.UserStore) error {
	count, err := rooms.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := users.InsertUsers(ctx, fixtureUsers()); err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, r := range fixtureRooms(now) {
		room := r
		if err := rooms.Insert(ctx, &room); err != nil {
			return err
		}
	}

	for _, f := range fixtureMessages(now) {
		msg := f.message
		if err := messages.Insert(ctx, &msg); err != nil {
			return err
		}
		for _, reaction := range f.reactions {
			if err := messages.ReplaceReaction(ctx, msg.ID, reaction); err != nil {
				return err
			}
		}
	}

	return nil
}

func fixtureUsers() []models.User {
	return []models.User{
		{ID: "user1", Username: "Alice Johnson", IsOnline: true},
		{ID: "user2", Username: "Bob Smith", IsOnline: true},
		{ID: "user3", Username: "Carol Davis", IsOnline: false},
		{ID: "current_user", Username: "You", IsOnline: true},
	}
}

func fixtureRooms(now time.Time) []models.Room {
	return []models.Room{
		{
			ID:           "room1",
			Name:         "General Discussion",
			Description:  "Main team chat",
			Participants: []string{"user1", "user2", "user3", "current_user"},
			CreatedAt:    now,
			LastActivity: now,
			UnreadCount:  3,
		},
		{
			ID:           "room2",
			Name:         "Project Alpha",
			Description:  "Alpha project coordination",
			Participants: []string{"user1", "current_user"},
			CreatedAt:    now,
			LastActivity: now,
			UnreadCount:  1,
		},
		{
			ID:           "room3",
			Name:         "Random",
			Description:  "Casual conversations",
			Participants: []string{"user2", "user3", "current_user"},
			CreatedAt:    now,
			LastActivity: now,
			UnreadCount:  0,
		},
	}
}

type fixtureMessage struct {
	message   models.Message
	reactions []models.Reaction
}

func fixtureMessages(now time.Time) []fixtureMessage {
	return []fixtureMessage{
		{
			message: models.Message{
				ID:         "msg1",
				RoomID:     "room1",
				SenderID:   "user1",
				SenderName: "Alice Johnson",
				Content:    "Hey everyone! How's the project coming along?",
				Timestamp:  now.Add(-30 * time.Minute),
				Reactions:  []models.Reaction{},
			},
			reactions: []models.Reaction{
				{Emoji: "👍", UserID: "user2", Username: "Bob Smith"},
			},
		},
		{
			message: models.Message{
				ID:         "msg2",
				RoomID:     "room1",
				SenderID:   "user2",
				SenderName: "Bob Smith",
				Content:    "Making good progress! Just finished the backend API.",
				Timestamp:  now.Add(-20 * time.Minute),
				Reactions:  []models.Reaction{},
			},
			reactions: []models.Reaction{
				{Emoji: "🚀", UserID: "user1", Username: "Alice Johnson"},
			},
		},
		{
			message: models.Message{
				ID:         "msg3",
				RoomID:     "room1",
				SenderID:   "user3",
				SenderName: "Carol Davis",
				Content:    "Awesome work team! Frontend is looking great too.",
				Timestamp:  now.Add(-10 * time.Minute),
				Reactions:  []models.Reaction{},
			},
		},
		{
			message: models.Message{
				ID:         "msg4",
				RoomID:     "room2",
				SenderID:   "user1",
				SenderName: "Alice Johnson",
				Content:    "Can we schedule a review meeting for tomorrow?",
				Timestamp:  now.Add(-5 * time.Minute),
				Reactions:  []models.Reaction{},
			},
		},
	}
}
