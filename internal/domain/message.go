package domain

import "time"

// Message is append-only: there is no update or delete path.
type Message struct {
	ID        string    `db:"id" json:"id"`
	ProjectID string    `db:"project_id" json:"project_id"`
	SenderID  string    `db:"sender_id" json:"sender_id"`
	Body      string    `db:"body" json:"body"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
