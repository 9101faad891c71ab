package seed

import (
	"context"
	"testing"

	"nexttalk-backend/internal/store"
)

func TestRunPopulatesEmptyStore(t *testing.T) {
	rooms := store.NewMemoryRoomStore()
	messages := store.NewMemoryMessageStore()
	users := store.NewMemoryUserStore()
	ctx := context.Background()

	if err := Run(ctx, rooms, messages, users); err != nil {
		t.Fatalf("Run: %v", err)
	}

	all, err := rooms.List(ctx)
	if err != nil {
		t.Fatalf("List rooms: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rooms, got %d", len(all))
	}
	if all[0].ID != "room1" || all[0].UnreadCount != 3 {
		t.Errorf("unexpected first room %s unread=%d", all[0].ID, all[0].UnreadCount)
	}

	room1, err := messages.ListRecent(ctx, "room1", 50)
	if err != nil {
		t.Fatalf("ListRecent room1: %v", err)
	}
	if len(room1) != 3 {
		t.Fatalf("expected 3 messages in room1, got %d", len(room1))
	}

	msg1, err := messages.Get(ctx, "msg1")
	if err != nil {
		t.Fatalf("Get msg1: %v", err)
	}
	if len(msg1.Reactions) != 1 || msg1.Reactions[0].UserID != "user2" {
		t.Errorf("expected msg1 to carry Bob's seeded reaction, got %+v", msg1.Reactions)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	rooms := store.NewMemoryRoomStore()
	messages := store.NewMemoryMessageStore()
	users := store.NewMemoryUserStore()
	ctx := context.Background()

	if err := Run(ctx, rooms, messages, users); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	if err := Run(ctx, rooms, messages, users); err != nil {
		t.Fatalf("second Run: %v", err)
	}

	count, err := rooms.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rooms after a second Run, got %d", count)
	}
}
