package store

import (
	"context"
	"errors"
	"time"

	"nexttalk-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRoomStore implements RoomStore against a pgx connection pool.
type PostgresRoomStore struct {
	pool *pgxpool.Pool
}

func NewPostgresRoomStore(pool *pgxpool.Pool) *PostgresRoomStore {
	return &PostgresRoomStore{pool: pool}
}

func (s *PostgresRoomStore) List(ctx context.Context) ([]models.Room, error) {
	query := `SELECT id, name, description, participants, created_at, last_activity, unread_count FROM rooms ORDER BY created_at`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var r models.Room
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Participants, &r.CreatedAt, &r.LastActivity, &r.UnreadCount); err != nil {
			return nil, err
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

func (s *PostgresRoomStore) Get(ctx context.Context, id string) (*models.Room, error) {
	query := `SELECT id, name, description, participants, created_at, last_activity, unread_count FROM rooms WHERE id = $1`
	var r models.Room
	err := s.pool.QueryRow(ctx, query, id).Scan(&r.ID, &r.Name, &r.Description, &r.Participants, &r.CreatedAt, &r.LastActivity, &r.UnreadCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

func (s *PostgresRoomStore) Insert(ctx context.Context, room *models.Room) error {
	query := `INSERT INTO rooms (id, name, description, participants, created_at, last_activity, unread_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.pool.Exec(ctx, query, room.ID, room.Name, room.Description, room.Participants, room.CreatedAt, room.LastActivity, room.UnreadCount)
	return err
}

func (s *PostgresRoomStore) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM rooms`).Scan(&n)
	return n, err
}

func (s *PostgresRoomStore) SetLastActivity(ctx context.Context, id string, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `UPDATE rooms SET last_activity = $2 WHERE id = $1`, id, at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresRoomStore) ResetUnread(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE rooms SET unread_count = 0 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// PostgresMessageStore implements MessageStore against a pgx connection pool.
type PostgresMessageStore struct {
	pool *pgxpool.Pool
}

func NewPostgresMessageStore(pool *pgxpool.Pool) *PostgresMessageStore {
	return &PostgresMessageStore{pool: pool}
}

func (s *PostgresMessageStore) ListRecent(ctx context.Context, roomID string, limit int) ([]models.Message, error) {
	// seq breaks ties between equal timestamps by insertion order.
	query := `SELECT id, room_id, sender_id, sender_name, content, timestamp, is_system
		FROM messages WHERE room_id = $1 ORDER BY timestamp DESC, seq DESC LIMIT $2`
	rows, err := s.pool.Query(ctx, query, roomID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.SenderID, &m.SenderName, &m.Content, &m.Timestamp, &m.IsSystem); err != nil {
			return nil, err
		}
		m.Reactions = []models.Reaction{}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.attachReactions(ctx, messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *PostgresMessageStore) Get(ctx context.Context, id string) (*models.Message, error) {
	query := `SELECT id, room_id, sender_id, sender_name, content, timestamp, is_system FROM messages WHERE id = $1`
	var m models.Message
	err := s.pool.QueryRow(ctx, query, id).Scan(&m.ID, &m.RoomID, &m.SenderID, &m.SenderName, &m.Content, &m.Timestamp, &m.IsSystem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	m.Reactions = []models.Reaction{}

	msgs := []models.Message{m}
	if err := s.attachReactions(ctx, msgs); err != nil {
		return nil, err
	}
	return &msgs[0], nil
}

func (s *PostgresMessageStore) attachReactions(ctx context.Context, messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}
	ids := make([]string, len(messages))
	byID := make(map[string]int, len(messages))
	for i, m := range messages {
		ids[i] = m.ID
		byID[m.ID] = i
	}

	// Reaction rows are ordered by their serial id, which doubles as the
	// sequence position: a replaced reaction gets a fresh id and so moves to
	// the end.
	query := `SELECT message_id, emoji, user_id, username FROM reactions WHERE message_id = ANY($1) ORDER BY id`
	rows, err := s.pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var msgID string
		var r models.Reaction
		if err := rows.Scan(&msgID, &r.Emoji, &r.UserID, &r.Username); err != nil {
			return err
		}
		i := byID[msgID]
		messages[i].Reactions = append(messages[i].Reactions, r)
	}
	return rows.Err()
}

func (s *PostgresMessageStore) Insert(ctx context.Context, msg *models.Message) error {
	query := `INSERT INTO messages (id, room_id, sender_id, sender_name, content, timestamp, is_system)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := s.pool.Exec(ctx, query, msg.ID, msg.RoomID, msg.SenderID, msg.SenderName, msg.Content, msg.Timestamp, msg.IsSystem)
	return err
}

func (s *PostgresMessageStore) ReplaceReaction(ctx context.Context, messageID string, r models.Reaction) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Lock the message row so concurrent reactors serialize per message.
	var one int
	if err := tx.QueryRow(ctx, `SELECT 1 FROM messages WHERE id = $1 FOR UPDATE`, messageID).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM reactions WHERE message_id = $1 AND user_id = $2`, messageID, r.UserID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO reactions (message_id, emoji, user_id, username) VALUES ($1, $2, $3, $4)`,
		messageID, r.Emoji, r.UserID, r.Username); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// PostgresUserStore implements UserStore against a pgx connection pool.
type PostgresUserStore struct {
	pool *pgxpool.Pool
}

func NewPostgresUserStore(pool *pgxpool.Pool) *PostgresUserStore {
	return &PostgresUserStore{pool: pool}
}

func (s *PostgresUserStore) InsertUsers(ctx context.Context, users []models.User) error {
	for _, u := range users {
		_, err := s.pool.Exec(ctx, `INSERT INTO users (id, username, avatar_url, is_online) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			u.ID, u.Username, u.AvatarURL, u.IsOnline)
		if err != nil {
			return err
		}
	}
	return nil
}
