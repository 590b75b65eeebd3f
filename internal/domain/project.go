package domain

import "time"

type Project struct {
	ID        string    `db:"id" json:"id"`
	OwnerID   string    `db:"owner_id" json:"owner_id"`
	Title     string    `db:"title" json:"title"`
	Brief     *string   `db:"brief" json:"brief"`
	IsPublic  bool      `db:"is_public" json:"is_public"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
