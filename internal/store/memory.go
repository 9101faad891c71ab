package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"nexttalk-backend/internal/models"
)

// MemoryRoomStore is a mutex-guarded in-memory RoomStore. It backs local runs
// without a database and the test suite.
type MemoryRoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*models.Room
	order []string
}

func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{rooms: make(map[string]*models.Room)}
}

func copyRoom(r *models.Room) models.Room {
	cp := *r
	cp.Participants = append([]string{}, r.Participants...)
	return cp
}

func (s *MemoryRoomStore) List(ctx context.Context) ([]models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]models.Room, 0, len(s.order))
	for _, id := range s.order {
		rooms = append(rooms, copyRoom(s.rooms[id]))
	}
	return rooms, nil
}

func (s *MemoryRoomStore) Get(ctx context.Context, id string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rooms[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyRoom(r)
	return &cp, nil
}

func (s *MemoryRoomStore) Insert(ctx context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := copyRoom(room)
	if _, exists := s.rooms[room.ID]; !exists {
		s.order = append(s.order, room.ID)
	}
	s.rooms[room.ID] = &cp
	return nil
}

func (s *MemoryRoomStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rooms)), nil
}

func (s *MemoryRoomStore) SetLastActivity(ctx context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[id]
	if !ok {
		return ErrNotFound
	}
	r.LastActivity = at
	return nil
}

func (s *MemoryRoomStore) ResetUnread(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rooms[id]
	if !ok {
		return ErrNotFound
	}
	r.UnreadCount = 0
	return nil
}

// MemoryMessageStore is a mutex-guarded in-memory MessageStore.
type MemoryMessageStore struct {
	mu       sync.RWMutex
	messages map[string]*models.Message
	order    []string
}

func NewMemoryMessageStore() *MemoryMessageStore {
	return &MemoryMessageStore{messages: make(map[string]*models.Message)}
}

func copyMessage(m *models.Message) models.Message {
	cp := *m
	cp.Reactions = append([]models.Reaction{}, m.Reactions...)
	return cp
}

func (s *MemoryMessageStore) ListRecent(ctx context.Context, roomID string, limit int) ([]models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Walk in insertion order so a stable sort keeps arrival order between
	// equal timestamps.
	var chrono []*models.Message
	for _, id := range s.order {
		if m := s.messages[id]; m.RoomID == roomID {
			chrono = append(chrono, m)
		}
	}
	sort.SliceStable(chrono, func(i, j int) bool {
		return chrono[i].Timestamp.Before(chrono[j].Timestamp)
	})

	if limit > 0 && len(chrono) > limit {
		chrono = chrono[len(chrono)-limit:]
	}

	// Newest first, per the store contract.
	out := make([]models.Message, 0, len(chrono))
	for i := len(chrono) - 1; i >= 0; i-- {
		out = append(out, copyMessage(chrono[i]))
	}
	return out, nil
}

func (s *MemoryMessageStore) Get(ctx context.Context, id string) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.messages[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyMessage(m)
	return &cp, nil
}

func (s *MemoryMessageStore) Insert(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := copyMessage(msg)
	if _, exists := s.messages[msg.ID]; !exists {
		s.order = append(s.order, msg.ID)
	}
	s.messages[msg.ID] = &cp
	return nil
}

func (s *MemoryMessageStore) ReplaceReaction(ctx context.Context, messageID string, r models.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.messages[messageID]
	if !ok {
		return ErrNotFound
	}

	// Build the new sequence and swap it in: drop the user's previous entry,
	// append the new one at the end.
	next := make([]models.Reaction, 0, len(m.Reactions)+1)
	for _, existing := range m.Reactions {
		if existing.UserID != r.UserID {
			next = append(next, existing)
		}
	}
	next = append(next, r)
	m.Reactions = next
	return nil
}

// MemoryUserStore is a mutex-guarded in-memory UserStore.
type MemoryUserStore struct {
	mu    sync.Mutex
	users map[string]models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[string]models.User)}
}

func (s *MemoryUserStore) InsertUsers(ctx context.Context, users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		s.users[u.ID] = u
	}
	return nil
}
