package models

import "time"

// Message is an internal mail item. It is visible to a user when they are
// the sender or the recipient.
type Message struct {
	ID            string    `json:"id"`
	SenderID      string    `json:"sender_id"`
	SenderName    string    `json:"sender_name"`
	SenderRole    UserRole  `json:"sender_role"`
	RecipientID   string    `json:"recipient_id"`
	RecipientName string    `json:"recipient_name"`
	RecipientRole UserRole  `json:"recipient_role"`
	Subject       string    `json:"subject"`
	Body          string    `json:"body"`
	AttachmentRef string    `json:"attachment_ref,omitempty"`
	Read          bool      `json:"read"`
	SentAt        time.Time `json:"sent_at"`
}

// ActivityLog is an append-only audit line scoped to a tenant.
// Global-admin actions log against the platform's home tenant.
type ActivityLog struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	Role       UserRole  `json:"role"`
	Action     string    `json:"action"`
	Detail     string    `json:"detail"`
	RecordedAt time.Time `json:"recorded_at"`
}
