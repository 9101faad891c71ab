package store

import (
	"context"
	"testing"
	"time"

	"nexttalk-backend/internal/models"
)

func insertMessage(t *testing.T, s *MemoryMessageStore, id, roomID string, ts time.Time) {
	t.Helper()
	msg := &models.Message{
		ID:         id,
		RoomID:     roomID,
		SenderID:   "user1",
		SenderName: "Alice Johnson",
		Content:    "content of " + id,
		Timestamp:  ts,
		Reactions:  []models.Reaction{},
	}
	if err := s.Insert(context.Background(), msg); err != nil {
		t.Fatalf("insert %s: %v", id, err)
	}
}

func TestMemoryListRecentReturnsNewestFirst(t *testing.T) {
	s := NewMemoryMessageStore()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"m1", "m2", "m3", "m4", "m5"} {
		insertMessage(t, s, id, "room1", base.Add(time.Duration(i)*time.Minute))
	}
	insertMessage(t, s, "other", "room2", base.Add(time.Hour))

	msgs, err := s.ListRecent(context.Background(), "room1", 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	for i, want := range []string{"m5", "m4", "m3"} {
		if msgs[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, msgs[i].ID)
		}
	}
}

func TestMemoryListRecentBreaksTimestampTiesByArrival(t *testing.T) {
	s := NewMemoryMessageStore()
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	insertMessage(t, s, "first", "room1", ts)
	insertMessage(t, s, "second", "room1", ts)

	msgs, err := s.ListRecent(context.Background(), "room1", 50)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].ID != "second" || msgs[1].ID != "first" {
		t.Errorf("expected arrival order tie-break, got [%s %s]", msgs[0].ID, msgs[1].ID)
	}
}

func TestMemoryReplaceReactionDedupesPerUser(t *testing.T) {
	s := NewMemoryMessageStore()
	insertMessage(t, s, "m1", "room1", time.Now().UTC())
	ctx := context.Background()

	if err := s.ReplaceReaction(ctx, "m1", models.Reaction{Emoji: "🔥", UserID: "u9", Username: "Nina"}); err != nil {
		t.Fatalf("first reaction: %v", err)
	}
	if err := s.ReplaceReaction(ctx, "m1", models.Reaction{Emoji: "🎉", UserID: "u9", Username: "Nina"}); err != nil {
		t.Fatalf("second reaction: %v", err)
	}

	msg, err := s.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(msg.Reactions) != 1 {
		t.Fatalf("expected 1 reaction, got %d", len(msg.Reactions))
	}
	if msg.Reactions[0].Emoji != "🎉" {
		t.Errorf("expected last-written emoji 🎉, got %s", msg.Reactions[0].Emoji)
	}
}

func TestMemoryReplaceReactionMovesEntryToEnd(t *testing.T) {
	s := NewMemoryMessageStore()
	insertMessage(t, s, "m1", "room1", time.Now().UTC())
	ctx := context.Background()

	_ = s.ReplaceReaction(ctx, "m1", models.Reaction{Emoji: "👍", UserID: "u1", Username: "Alice Johnson"})
	_ = s.ReplaceReaction(ctx, "m1", models.Reaction{Emoji: "🚀", UserID: "u2", Username: "Bob Smith"})
	if err := s.ReplaceReaction(ctx, "m1", models.Reaction{Emoji: "🎉", UserID: "u1", Username: "Alice Johnson"}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	msg, err := s.Get(ctx, "m1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(msg.Reactions) != 2 {
		t.Fatalf("expected 2 reactions, got %d", len(msg.Reactions))
	}
	if msg.Reactions[0].UserID != "u2" {
		t.Errorf("expected u2 first, got %s", msg.Reactions[0].UserID)
	}
	if msg.Reactions[1].UserID != "u1" || msg.Reactions[1].Emoji != "🎉" {
		t.Errorf("expected replaced u1 entry at the end, got %+v", msg.Reactions[1])
	}
}

func TestMemoryReplaceReactionUnknownMessage(t *testing.T) {
	s := NewMemoryMessageStore()
	err := s.ReplaceReaction(context.Background(), "nope", models.Reaction{Emoji: "🔥", UserID: "u9", Username: "Nina"})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryGetReturnsCopies(t *testing.T) {
	s := NewMemoryMessageStore()
	insertMessage(t, s, "m1", "room1", time.Now().UTC())
	ctx := context.Background()

	msg, _ := s.Get(ctx, "m1")
	msg.Reactions = append(msg.Reactions, models.Reaction{Emoji: "🔥", UserID: "u9", Username: "Nina"})
	msg.Content = "mutated"

	again, _ := s.Get(ctx, "m1")
	if len(again.Reactions) != 0 {
		t.Errorf("stored reactions mutated through returned copy")
	}
	if again.Content == "mutated" {
		t.Errorf("stored content mutated through returned copy")
	}
}

func TestMemoryRoomStoreActivityAndUnread(t *testing.T) {
	s := NewMemoryRoomStore()
	ctx := context.Background()
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	room := &models.Room{
		ID:           "room1",
		Name:         "General Discussion",
		Participants: []string{"user1", "current_user"},
		CreatedAt:    created,
		LastActivity: created,
		UnreadCount:  3,
	}
	if err := s.Insert(ctx, room); err != nil {
		t.Fatalf("insert: %v", err)
	}

	at := created.Add(time.Hour)
	if err := s.SetLastActivity(ctx, "room1", at); err != nil {
		t.Fatalf("SetLastActivity: %v", err)
	}
	if err := s.ResetUnread(ctx, "room1"); err != nil {
		t.Fatalf("ResetUnread: %v", err)
	}

	got, err := s.Get(ctx, "room1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.LastActivity.Equal(at) {
		t.Errorf("expected last_activity %v, got %v", at, got.LastActivity)
	}
	if got.UnreadCount != 0 {
		t.Errorf("expected unread_count 0, got %d", got.UnreadCount)
	}

	if err := s.SetLastActivity(ctx, "missing", at); err != ErrNotFound {
		t.Errorf("SetLastActivity on unknown room: expected ErrNotFound, got %v", err)
	}
	if err := s.ResetUnread(ctx, "missing"); err != ErrNotFound {
		t.Errorf("ResetUnread on unknown room: expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRoomStoreListPreservesInsertionOrder(t *testing.T) {
	s := NewMemoryRoomStore()
	ctx := context.Background()
	now := time.Now().UTC()

	for _, id := range []string{"room1", "room2", "room3"} {
		if err := s.Insert(ctx, &models.Room{ID: id, Name: id, CreatedAt: now, LastActivity: now}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}

	rooms, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rooms) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(rooms))
	}
	for i, want := range []string{"room1", "room2", "room3"} {
		if rooms[i].ID != want {
			t.Errorf("position %d: expected %s, got %s", i, want, rooms[i].ID)
		}
	}
}
