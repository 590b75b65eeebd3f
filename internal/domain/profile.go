package domain

import "time"

type Profile struct {
	ID           string    `db:"id" json:"id"`
	Handle       string    `db:"handle" json:"handle"`
	DisplayName  string    `db:"display_name" json:"display_name"`
	Email        string    `db:"email" json:"email,omitempty"`
	PasswordHash string    `db:"password_hash" json:"-"`
	City         *string   `db:"city" json:"city,omitempty"`
	Bio          *string   `db:"bio" json:"bio,omitempty"`
	AvatarURL    *string   `db:"avatar_url" json:"avatar_url,omitempty"`
	Mediums      []string  `db:"mediums" json:"mediums"`
	Intents      []string  `db:"intents" json:"intents"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
