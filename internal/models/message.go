package models

import "time"

type Message struct {
	ID         string     `json:"id"`
	RoomID     string     `json:"room_id"`
	SenderID   string     `json:"sender_id"`
	SenderName string     `json:"sender_name"`
	Content    string     `json:"content"`
	Timestamp  time.Time  `json:"timestamp"`
	Reactions  []Reaction `json:"reactions"`
	IsSystem   bool       `json:"is_system"`
}

// Reaction is a per-user emoji annotation on a message. A message holds at
// most one reaction per user; replacing it moves the entry to the end of the
// sequence.
type Reaction struct {
	Emoji    string `json:"emoji"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Actor is the identity attributed to a write operation. It is supplied by
// the transport layer, not looked up by the services.
type Actor struct {
	ID   string
	Name string
}

type SendMessageRequest struct {
	RoomID  string `json:"room_id"`
	Content string `json:"content"`
}

type ReactionRequest struct {
	MessageID string `json:"message_id"`
	Emoji     string `json:"emoji"`
}

type SummaryResponse struct {
	SummaryPoints []string `json:"summary_points"`
	MessageCount  int      `json:"message_count"`
	TimeRange     string   `json:"time_range"`
}
